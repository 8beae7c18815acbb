package fighter

import (
	"log"
	"math"
)

// IsHit reports whether attacker's current swing lands on c
// A landed hit marks the attacker's damageApplied so one swing damages at most once;
// a blocked hit leaves it clear so each later check in the window is blocked independently
func (c *Combatant) IsHit(attacker *Combatant) bool {
	if attacker.state != StateAttacking || c.state == StateDeath {
		return false
	}
	hb, ok := attacker.AttackHitbox()
	if !ok || !hb.Overlaps(c.Box()) || attacker.damageApplied {
		return false
	}

	if c.isBlocking {
		c.isBlockingDamage = true
		c.sounds.Play(SoundBlock)
		return false
	}

	attacker.damageApplied = true
	return true
}

// TakeDamage subtracts amount from health, clamped at 0
// Reaching 0 enters death once; later calls while dead are no-ops
func (c *Combatant) TakeDamage(amount float64) {
	if c.state == StateDeath || amount <= 0 {
		return
	}

	c.health = math.Max(0, c.health-amount)
	c.attackType = AttackNone
	c.dashing = false
	now := c.clock.Now()

	if c.health == 0 {
		c.SetState(StateDeath)
		c.deathStartTime = now
		c.sounds.Play(SoundKnockout)
		log.Printf("[fighter] %s knocked out", c.name)
		return
	}

	c.SetState(StateHit)
	c.hitEndTime = now.Add(c.traits.HitDuration)
	c.sounds.Play(SoundHit)
}
