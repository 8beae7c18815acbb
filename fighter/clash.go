package fighter

import (
	"log"
	"math"
	"time"

	"github.com/lixenwraith/clash-fighter/constants"
	"github.com/lixenwraith/clash-fighter/vmath"
)

// detectClash fires when both fighters are mid-attack, neither recovering, and hitboxes overlap
func (c *Combatant) detectClash(now time.Time, opp *Combatant) {
	if c.state != StateAttacking || opp.state != StateAttacking {
		return
	}
	// Mirrored offense: an opponent swing that expired this tick cannot clash
	if c.opponentAttack == AttackNone || !now.Before(c.opponentAttackEnd) {
		return
	}
	if c.recovering || opp.recovering {
		return
	}
	// Both swings already spent on each other
	if c.damageApplied && opp.damageApplied {
		return
	}

	mine, ok := c.AttackHitbox()
	if !ok {
		return
	}
	theirs, ok := opp.AttackHitbox()
	if !ok || !mine.Overlaps(theirs) {
		return
	}

	resolveClash(c, opp, now)
}

// resolveClash adjudicates one clash event between a and b
func resolveClash(a, b *Combatant, now time.Time) {
	a.stamina = math.Max(0, a.stamina-constants.ClashStaminaCost)
	b.stamina = math.Max(0, b.stamina-constants.ClashStaminaCost)

	// Both swings are spent on each other
	a.damageApplied = true
	b.damageApplied = true

	if a.stamina == 0 && b.stamina == 0 {
		a.clashing, b.clashing = false, false
		a.lostClash, b.lostClash = false, false
		log.Printf("[fighter] clash voided: %s and %s both exhausted", a.name, b.name)
		return
	}

	a.clashing, b.clashing = true, true
	a.clashTime, b.clashTime = now, now
	a.sounds.Play(SoundClash)

	// a detected the clash inside its own update, so its count is the current tick for both
	tick := a.ticks

	if a.attackType == b.attackType {
		a.lostClash, b.lostClash = false, false
		a.applyKnockback(a.attackType, tick)
		b.applyKnockback(b.attackType, tick)
		log.Printf("[fighter] clash even: %s %s vs %s %s", a.name, a.attackType, b.name, b.attackType)
		return
	}

	winner, loser := a, b
	switch {
	case a.stamina == 0:
		winner, loser = b, a
	case b.stamina == 0:
	case b.attackType.Weight() > a.attackType.Weight():
		winner, loser = b, a
	}
	winner.winClash(loser, tick)
	log.Printf("[fighter] clash won: %s %s over %s %s (pending %.1f)",
		winner.name, winner.attackType, loser.name, loser.attackType, loser.pendingDamage)
}

// winClash defers half the winner's hitbox damage onto the loser until its knockback ends
func (c *Combatant) winClash(loser *Combatant, tick uint64) {
	c.lostClash = false
	loser.lostClash = true
	loser.pendingDamage = c.hitboxes[c.attackType].Damage / constants.ClashDamageDivisor
	loser.knockbackApplied = true
	loser.applyKnockback(c.attackType, tick)
}

// applyKnockback arms a delayed slide of KnockbackDistance away from the facing direction
// source is the attack that caused it and sets the extra delay; tick is the arming tick
func (c *Combatant) applyKnockback(source AttackType, tick uint64) {
	c.knockbackTargetX = c.x - float64(c.direction)*constants.KnockbackDistance

	delay := c.traits.Knockback.BaseDelay
	switch source {
	case AttackMedium:
		delay += constants.KnockbackMediumExtraDelay
	case AttackHeavy:
		delay += constants.KnockbackHeavyExtraDelay
	}
	c.knockbackDelay = delay
	c.knockbackArmedTick = tick
	c.knockbackActive = false
	c.dashing = false
}

// updateKnockback counts down the delay, then slides toward the target
func (c *Combatant) updateKnockback(dt time.Duration) {
	if c.knockbackDelay > 0 {
		if c.ticks == c.knockbackArmedTick {
			return
		}
		c.knockbackDelay -= dt
		if c.knockbackDelay <= 0 {
			c.knockbackDelay = 0
			c.knockbackActive = true
		}
		return
	}
	if !c.knockbackActive {
		return
	}

	step := c.traits.Knockback.Speed * dt.Seconds()
	dist := c.knockbackTargetX - c.x
	newX := c.knockbackTargetX
	if math.Abs(dist) > step {
		newX = c.x + vmath.Sign(dist)*step
	}

	hitBound := false
	switch maxX := c.maxX(); {
	case newX <= 0:
		newX = 0
		hitBound = true
	case newX >= maxX:
		newX = maxX
		hitBound = true
	}
	c.x = newX

	if hitBound || math.Abs(c.knockbackTargetX-c.x) < constants.KnockbackArrivalEpsilon {
		c.finishKnockback()
	}
}

// finishKnockback ends the slide and applies any deferred clash damage
func (c *Combatant) finishKnockback() {
	c.knockbackActive = false
	c.knockbackApplied = false
	c.clashing = false

	if c.pendingDamage > 0 {
		dmg := c.pendingDamage
		c.pendingDamage = 0
		c.TakeDamage(dmg)
	}
}
