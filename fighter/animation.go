package fighter

import (
	"log"
	"time"

	"github.com/lixenwraith/clash-fighter/config"
)

// animState tracks the animation of the current state
// Entering a state restarts it at frame 0; the same state never restarts it
type animState struct {
	name     string
	anim     config.Animation
	resolved bool
	frame    int
	elapsed  time.Duration
	frozen   bool
}

// animationName maps a state to its animation key
// Attacks use lastAttackType so the sprite survives the attackType reset
func (c *Combatant) animationName() string {
	if c.state == StateAttacking {
		return "attack_" + c.lastAttackType.String()
	}
	return c.state.String()
}

func (c *Combatant) startAnimation() {
	name := c.animationName()
	anim, ok := c.traits.Animations[name]
	if !ok && !c.missingAnims[name] {
		// Degrades to a static frame; callers never depend on animation progress
		if c.missingAnims == nil {
			c.missingAnims = make(map[string]bool)
		}
		c.missingAnims[name] = true
		log.Printf("[fighter] %s: no animation %q, holding frame 0", c.name, name)
	}
	c.anim = animState{name: name, anim: anim, resolved: ok}
}

func (c *Combatant) advanceAnimation(dt time.Duration) {
	a := &c.anim
	a.elapsed += dt
	if !a.resolved || a.frozen {
		return
	}

	frame := int(a.elapsed / a.anim.FrameDuration)
	if a.anim.Loop {
		frame %= a.anim.Frames
	} else if frame >= a.anim.Frames {
		frame = a.anim.Frames - 1
	}
	a.frame = frame
}

// freezeAnimation pins the last frame
func (c *Combatant) freezeAnimation() {
	a := &c.anim
	if a.resolved {
		a.frame = a.anim.Frames - 1
	}
	a.frozen = true
}

// AnimationName returns the key of the playing animation
func (c *Combatant) AnimationName() string {
	return c.anim.name
}

// Frame returns the current animation frame index
func (c *Combatant) Frame() int {
	return c.anim.frame
}

// TimeInState returns time elapsed since the current state was entered
func (c *Combatant) TimeInState() time.Duration {
	return c.anim.elapsed
}

// SetState is the single state transition entry point
// Same-state is a no-op; death is terminal
func (c *Combatant) SetState(s State) {
	if c.state == s || c.state == StateDeath {
		return
	}
	c.state = s
	c.startAnimation()
}
