package config

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/lixenwraith/clash-fighter/constants"
)

var (
	// ErrMissingField reports a required trait or hitbox field absent from the config
	ErrMissingField = errors.New("missing field")

	// ErrInvalidValue reports a present but unusable value (non-positive size, zero frames)
	ErrInvalidValue = errors.New("invalid value")

	// ErrUnknownFighter reports a lookup of a fighter id not in the roster
	ErrUnknownFighter = errors.New("unknown fighter")
)

// checker reads required fields, keeping only the first failure
type checker struct {
	ctx string
	err error
}

func (c *checker) fail(sentinel error, field string) {
	if c.err == nil {
		c.err = fmt.Errorf("%s: %w %q", c.ctx, sentinel, field)
	}
}

// positive reads a required field that must be > 0
func (c *checker) positive(p *float64, field string) float64 {
	if p == nil {
		c.fail(ErrMissingField, field)
		return 0
	}
	if *p <= 0 {
		c.fail(ErrInvalidValue, field)
		return 0
	}
	return *p
}

// number reads a required field with no range restriction
func (c *checker) number(p *float64, field string) float64 {
	if p == nil {
		c.fail(ErrMissingField, field)
		return 0
	}
	return *p
}

// millis reads a required millisecond field that must be > 0
func (c *checker) millis(p *int, field string) time.Duration {
	if p == nil {
		c.fail(ErrMissingField, field)
		return 0
	}
	if *p <= 0 {
		c.fail(ErrInvalidValue, field)
		return 0
	}
	return time.Duration(*p) * time.Millisecond
}

// build converts a raw fighter into a validated Fighter
func (r *rawFighter) build(id string) (*Fighter, error) {
	if r == nil {
		return nil, fmt.Errorf("fighter %q: %w %q", id, ErrMissingField, "fighters."+id)
	}

	c := &checker{ctx: fmt.Sprintf("fighter %q", id)}
	f := &Fighter{ID: id}

	name := id
	if r.Name != nil && *r.Name != "" {
		name = *r.Name
	}
	f.Name = DisplayName(name)

	f.Width = c.positive(r.Width, "width")
	f.Height = c.positive(r.Height, "height")
	f.MaxHealth = c.positive(r.MaxHealth, "max_health")
	f.MaxStamina = c.positive(r.MaxStamina, "max_stamina")
	f.Speed = c.positive(r.Speed, "speed")
	f.JumpStrength = c.positive(r.JumpStrength, "jump_strength")
	f.Gravity = c.positive(r.Gravity, "gravity")
	f.HitDuration = c.millis(r.HitDurationMs, "hit_duration_ms")
	f.DeathDuration = c.millis(r.DeathDurationMs, "death_duration_ms")

	if r.Dash == nil {
		c.fail(ErrMissingField, "dash")
	} else {
		f.Dash = Dash{
			Speed:       c.positive(r.Dash.Speed, "dash.speed"),
			Duration:    c.millis(r.Dash.DurationMs, "dash.duration_ms"),
			StaminaCost: c.positive(r.Dash.StaminaCost, "dash.stamina_cost"),
		}
	}

	if r.Knockback == nil {
		c.fail(ErrMissingField, "knockback")
	} else {
		f.Knockback = Knockback{
			Speed:     c.positive(r.Knockback.Speed, "knockback.speed"),
			BaseDelay: constants.KnockbackBaseDelay,
		}
		if r.Knockback.BaseDelayMs != nil {
			f.Knockback.BaseDelay = c.millis(r.Knockback.BaseDelayMs, "knockback.base_delay_ms")
		}
	}
	if c.err != nil {
		return nil, c.err
	}

	f.Hitboxes = make(map[string]Hitbox, len(AttackTypes))
	for _, at := range AttackTypes {
		raw, ok := r.Hitboxes[at]
		if !ok || raw == nil {
			return nil, fmt.Errorf("fighter %q: %w %q", id, ErrMissingField, "hitboxes."+at)
		}
		hc := &checker{ctx: fmt.Sprintf("fighter %q: hitbox %s", id, at)}
		hb := Hitbox{
			OffsetX:  hc.number(raw.OffsetX, "offset_x"),
			OffsetY:  hc.number(raw.OffsetY, "offset_y"),
			Width:    hc.positive(raw.Width, "width"),
			Height:   hc.positive(raw.Height, "height"),
			Duration: hc.millis(raw.DurationMs, "duration_ms"),
			Recovery: hc.millis(raw.RecoveryMs, "recovery_ms"),
			Damage:   hc.positive(raw.Damage, "damage"),
		}
		if hc.err != nil {
			return nil, hc.err
		}
		f.Hitboxes[at] = hb
	}

	// Animations are optional; an unresolvable one degrades to a static frame at runtime
	f.Animations = make(map[string]Animation, len(r.Animations))
	for name, raw := range r.Animations {
		if raw == nil {
			continue
		}
		ac := &checker{ctx: fmt.Sprintf("fighter %q: animation %s", id, name)}
		frames := 0
		if raw.Frames == nil {
			ac.fail(ErrMissingField, "frames")
		} else if *raw.Frames <= 0 {
			ac.fail(ErrInvalidValue, "frames")
		} else {
			frames = *raw.Frames
		}
		frame := ac.millis(raw.FrameMs, "frame_ms")
		if ac.err != nil {
			return nil, ac.err
		}
		f.Animations[name] = Animation{Frames: frames, FrameDuration: frame, Loop: raw.Loop}
	}

	return f, nil
}

// Validate checks a programmatically built Fighter
// Loaded fighters are already valid; this guards hand-assembled ones
func (f *Fighter) Validate() error {
	if f == nil {
		return fmt.Errorf("fighter: %w %q", ErrMissingField, "fighter")
	}
	ctx := fmt.Sprintf("fighter %q", f.ID)

	scalars := []struct {
		name  string
		value float64
	}{
		{"width", f.Width},
		{"height", f.Height},
		{"max_health", f.MaxHealth},
		{"max_stamina", f.MaxStamina},
		{"speed", f.Speed},
		{"jump_strength", f.JumpStrength},
		{"gravity", f.Gravity},
		{"dash.speed", f.Dash.Speed},
		{"dash.stamina_cost", f.Dash.StaminaCost},
		{"knockback.speed", f.Knockback.Speed},
	}
	for _, s := range scalars {
		if s.value <= 0 {
			return fmt.Errorf("%s: %w %q", ctx, ErrMissingField, s.name)
		}
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"hit_duration_ms", f.HitDuration},
		{"death_duration_ms", f.DeathDuration},
		{"dash.duration_ms", f.Dash.Duration},
		{"knockback.base_delay_ms", f.Knockback.BaseDelay},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return fmt.Errorf("%s: %w %q", ctx, ErrMissingField, d.name)
		}
	}

	for _, at := range AttackTypes {
		hb, ok := f.Hitboxes[at]
		if !ok {
			return fmt.Errorf("%s: %w %q", ctx, ErrMissingField, "hitboxes."+at)
		}
		hctx := fmt.Sprintf("%s: hitbox %s", ctx, at)
		switch {
		case hb.Width <= 0:
			return fmt.Errorf("%s: %w %q", hctx, ErrMissingField, "width")
		case hb.Height <= 0:
			return fmt.Errorf("%s: %w %q", hctx, ErrMissingField, "height")
		case hb.Duration <= 0:
			return fmt.Errorf("%s: %w %q", hctx, ErrMissingField, "duration_ms")
		case hb.Recovery <= 0:
			return fmt.Errorf("%s: %w %q", hctx, ErrMissingField, "recovery_ms")
		case hb.Damage <= 0:
			return fmt.Errorf("%s: %w %q", hctx, ErrMissingField, "damage")
		}
	}

	names := make([]string, 0, len(f.Animations))
	for name := range f.Animations {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		a := f.Animations[name]
		actx := fmt.Sprintf("%s: animation %s", ctx, name)
		switch {
		case a.Frames <= 0:
			return fmt.Errorf("%s: %w %q", actx, ErrInvalidValue, "frames")
		case a.FrameDuration <= 0:
			return fmt.Errorf("%s: %w %q", actx, ErrInvalidValue, "frame_ms")
		}
	}
	return nil
}
