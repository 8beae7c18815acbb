// Package ai drives a combatant through the same input surface a human uses
package ai

import (
	"log"
	"time"

	"github.com/lixenwraith/clash-fighter/config"
	"github.com/lixenwraith/clash-fighter/constants"
	"github.com/lixenwraith/clash-fighter/fighter"
	"github.com/lixenwraith/clash-fighter/input"
	"github.com/lixenwraith/clash-fighter/vmath"
)

// Body is the read-only view of a combatant the controller decides from
// *fighter.Combatant satisfies it
type Body interface {
	X() float64
	Width() float64
	Direction() int
	Stamina() float64
	MaxStamina() float64
	State() fighter.State
	IsRecovering() bool
	IsAirborne() bool
	IsAlive() bool
	LostClash() bool
	Traits() *config.Fighter
}

// Controller is an input.Source fed by Observe once per tick,
// before the controlled combatant's update
type Controller struct {
	rng  *vmath.FastRand
	snap *input.Snapshot

	nextDecision time.Time
	retreatUntil time.Time
	sawLoss      bool

	// Direction pressed on the previous tick to be pressed again for a dash
	dashArmed input.Action
}

var (
	_ input.Source = (*Controller)(nil)
	_ Body         = (*fighter.Combatant)(nil)
)

// New creates a controller; the same seed replays the same decisions for the same observations
func New(seed uint64) *Controller {
	return &Controller{
		rng:  vmath.NewFastRand(seed),
		snap: input.NewSnapshot(),
	}
}

func (c *Controller) IsHeld(a input.Action) bool {
	return c.snap.IsHeld(a)
}

func (c *Controller) WasJustPressed(a input.Action) bool {
	return c.snap.WasJustPressed(a)
}

// Observe decides this tick's actions from the two combatants
func (c *Controller) Observe(now time.Time, self, opp Body) {
	c.snap.EndTick()

	if !self.IsAlive() || !opp.IsAlive() {
		c.snap.Reset()
		c.dashArmed = input.ActionNone
		return
	}

	toward, away := input.ActionMoveRight, input.ActionMoveLeft
	if opp.X() < self.X() {
		toward, away = away, toward
	}

	// Second tap of a dash
	if c.dashArmed != input.ActionNone {
		c.snap.Press(c.dashArmed)
		c.dashArmed = input.ActionNone
		return
	}

	lost := self.LostClash()
	if lost && !c.sawLoss {
		c.retreatUntil = now.Add(constants.AIRetreatDuration)
		c.nextDecision = c.retreatUntil
		c.snap.Reset()
		c.snap.Hold(away)
	}
	c.sawLoss = lost

	if now.Before(c.nextDecision) {
		return
	}
	c.nextDecision = now.Add(constants.AIReactionInterval)
	c.snap.Reset()

	c.decide(self, opp, toward)
}

func (c *Controller) decide(self, opp Body, toward input.Action) {
	gap := self.X() - (opp.X() + opp.Width())
	if opp.X() > self.X() {
		gap = opp.X() - (self.X() + self.Width())
	}

	switch {
	case gap > constants.AIDashDistance &&
		!self.IsAirborne() &&
		self.Stamina() >= self.Traits().Dash.StaminaCost &&
		c.rng.Chance(0.3):
		c.snap.Press(toward)
		c.dashArmed = toward

	case gap > constants.AIReach:
		c.snap.Hold(toward)
		if c.rng.Chance(0.05) {
			c.snap.Press(input.ActionJump)
		}

	case !faces(self, opp):
		// Turn to face; facing is also what blocks
		c.snap.Hold(toward)

	case self.State() == fighter.StateAttacking || self.IsRecovering():
		// wait out the swing

	default:
		if a := c.pickAttack(self); a != input.ActionNone {
			c.snap.Press(a)
		}
	}
}

// pickAttack favors heavier attacks with more stamina; ActionNone holds guard
func (c *Controller) pickAttack(self Body) input.Action {
	ratio := self.Stamina() / self.MaxStamina()
	switch {
	case ratio > 0.6 && c.rng.Chance(0.35):
		return input.ActionHeavy
	case ratio > 0.3 && c.rng.Chance(0.45):
		return input.ActionMedium
	case c.rng.Chance(0.8):
		return input.ActionLight
	}
	log.Printf("[ai] holding guard at stamina %.0f", self.Stamina())
	return input.ActionNone
}

func faces(self, opp Body) bool {
	return (opp.X() > self.X()) == (self.Direction() > 0)
}
