package fighter

import (
	"math"
	"time"

	"github.com/lixenwraith/clash-fighter/constants"
	"github.com/lixenwraith/clash-fighter/input"
	"github.com/lixenwraith/clash-fighter/vmath"
)

// Update advances the combatant by one tick against opp
// opp is a non-owning reference supplied by the match each call
func (c *Combatant) Update(dt time.Duration, opp *Combatant) {
	now := c.clock.Now()
	c.ticks++
	c.isBlockingDamage = false

	if c.state == StateDeath {
		c.updateDeath(now, dt)
		return
	}

	// 1. Mirror opponent offense
	c.opponentAttack = opp.attackType
	c.opponentAttackEnd = opp.attackEndTime

	// 2. Movement
	c.handleMovement(now, dt, opp)
	c.isBlocking = c.direction == -opp.direction

	// 3. Jumping and gravity
	c.handleJump(dt, opp)

	// 4. Attack initiation
	c.handleAttack(now)

	// 5. Timers, clash, knockback, regen
	c.resolveTimers(now, dt, opp)

	c.advanceAnimation(dt)
}

// inert reports the knockback delay or slide, during which no action is taken
func (c *Combatant) inert() bool {
	return c.knockbackActive || c.knockbackDelay > 0
}

// busy reports states that suppress landing/airborne state changes and jumping
func (c *Combatant) busy() bool {
	return c.state == StateAttacking || c.state == StateHit || c.recovering || c.clashing
}

func (c *Combatant) handleMovement(now time.Time, dt time.Duration, opp *Combatant) {
	if c.state == StateAttacking || c.state == StateHit || c.clashing || c.inert() {
		return
	}
	secs := dt.Seconds()

	if c.dashing {
		if now.Before(c.dashEndTime) {
			c.moveHorizontal(c.dashDir*c.traits.Dash.Speed*secs, opp)
			return
		}
		c.dashing = false
	}

	if c.tryDash(now) {
		return
	}

	dx := 0.0
	if c.input.IsHeld(input.ActionMoveLeft) {
		dx--
	}
	if c.input.IsHeld(input.ActionMoveRight) {
		dx++
	}
	if dx != 0 {
		c.direction = int(dx)
		c.moveHorizontal(dx*c.traits.Speed*secs, opp)
	}

	if !c.airborne {
		if dx != 0 {
			c.SetState(StateRun)
		} else {
			c.SetState(StateIdle)
		}
	}
}

// tryDash starts a dash on a double tap of the same direction inside DoubleTapWindow
// Insufficient stamina fails silently and leaves ordinary movement to run
func (c *Combatant) tryDash(now time.Time) bool {
	if c.airborne {
		return false
	}

	dirs := [2]input.Action{input.ActionMoveLeft, input.ActionMoveRight}
	for i, a := range dirs {
		if !c.input.WasJustPressed(a) {
			continue
		}
		prev := c.lastTap[i]
		c.lastTap[i] = now
		if prev.IsZero() || now.Sub(prev) > constants.DoubleTapWindow {
			continue
		}
		if c.stamina < c.traits.Dash.StaminaCost {
			continue
		}

		// Consumed; a third tap starts a new double-tap sequence
		c.lastTap[i] = time.Time{}
		c.stamina -= c.traits.Dash.StaminaCost
		c.dashing = true
		c.dashDir = float64(2*i - 1)
		c.direction = 2*i - 1
		c.dashEndTime = now.Add(c.traits.Dash.Duration)
		c.SetState(StateRun)
		c.sounds.Play(SoundDash)
		return true
	}
	return false
}

// moveHorizontal applies dx clamped to the arena, suppressed if it would newly overlap opp
func (c *Combatant) moveHorizontal(dx float64, opp *Combatant) bool {
	newX := vmath.Clamp(c.x+dx, 0, c.maxX())
	if newX == c.x {
		return false
	}

	oppBox := opp.Box()
	next := vmath.Rect{X: newX, Y: c.y, Width: c.width, Height: c.height}
	// Already-overlapping fighters may separate
	if next.Overlaps(oppBox) && !c.Box().Overlaps(oppBox) {
		return false
	}
	c.x = newX
	return true
}

func (c *Combatant) handleJump(dt time.Duration, opp *Combatant) {
	secs := dt.Seconds()
	busy := c.busy()

	c.dy += c.traits.Gravity * secs
	newY := c.y + c.dy*secs
	ground := c.groundY()

	oppBox := opp.Box()
	next := vmath.Rect{X: c.x, Y: newY, Width: c.width, Height: c.height}

	switch {
	case newY >= ground:
		c.y = ground
		c.dy = 0
		c.airborne = false
		if !busy && c.state == StateJump {
			c.land()
		}

	case newY <= 0:
		c.y = 0
		c.dy = 0
		c.airborne = true

	case next.Overlaps(oppBox) && !c.Box().Overlaps(oppBox):
		if c.dy > 0 {
			// Falling onto the opponent: stand on its top edge
			c.y = oppBox.Y - c.height
			c.dy = 0
			c.airborne = false
			if !busy && c.state == StateJump {
				c.land()
			}
		} else {
			// Rising into the opponent: stop, keep position
			c.dy = 0
		}

	default:
		c.y = newY
		c.airborne = true
		if !busy {
			c.SetState(StateJump)
		}
	}

	if c.airborne || busy || c.inert() {
		return
	}
	if c.input.WasJustPressed(input.ActionJump) {
		c.dy = -c.traits.JumpStrength
		c.airborne = true
		c.dashing = false
		c.SetState(StateJump)
		c.sounds.Play(SoundJump)
	}
}

// land picks the grounded state from current horizontal input
func (c *Combatant) land() {
	if c.input.IsHeld(input.ActionMoveLeft) != c.input.IsHeld(input.ActionMoveRight) {
		c.SetState(StateRun)
		return
	}
	c.SetState(StateIdle)
}

func (c *Combatant) handleAttack(now time.Time) {
	if c.state == StateAttacking || c.state == StateHit || c.recovering || c.inert() {
		return
	}
	for _, a := range input.AttackActions {
		if c.input.WasJustPressed(a) {
			c.startAttack(attackForAction(a), now)
			return
		}
	}
}

func (c *Combatant) startAttack(at AttackType, now time.Time) {
	c.dashing = false
	c.attackType = at
	c.lastAttackType = at
	c.damageApplied = false
	c.attackEndTime = now.Add(c.hitboxes[at].Duration)
	c.SetState(StateAttacking)
	c.sounds.Play(SoundSwing)
}

func (c *Combatant) resolveTimers(now time.Time, dt time.Duration, opp *Combatant) {
	if c.state == StateAttacking && !now.Before(c.attackEndTime) {
		c.attackType = AttackNone
		if c.airborne {
			c.SetState(StateJump)
		} else {
			c.SetState(StateIdle)
		}
		if !c.recovering {
			c.recovering = true
			c.recoveryEndTime = now.Add(c.hitboxes[c.lastAttackType].Recovery)
		}
	}

	if c.recovering && !now.Before(c.recoveryEndTime) {
		c.recovering = false
	}

	if c.state == StateHit && !now.Before(c.hitEndTime) {
		c.SetState(StateIdle)
	}

	if !c.clashing {
		c.detectClash(now, opp)
	} else if now.Sub(c.clashTime) >= constants.ClashDisplayDuration {
		c.clashing = false
	}

	if c.inert() {
		c.updateKnockback(dt)
	}

	if c.state == StateIdle && c.stamina < c.maxStamina {
		regen := c.traits.Dash.StaminaCost * dt.Seconds()
		c.stamina = math.Min(c.maxStamina, c.stamina+regen)
	}
}

func (c *Combatant) updateDeath(now time.Time, dt time.Duration) {
	c.advanceAnimation(dt)
	if !c.deathFinished && now.Sub(c.deathStartTime) >= c.traits.DeathDuration {
		c.deathFinished = true
		c.freezeAnimation()
	}
}
