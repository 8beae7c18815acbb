// Package fighter is the combatant simulation: movement, jumping, attacks, blocking,
// clashes, knockback and damage, driven once per tick by the match controller.
//
// Single-writer model: both combatants of a match are updated from the same goroutine.
// Clash resolution and knockback mutate the opponent from inside the caller's Update,
// so the two updates must never run concurrently.
package fighter

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/clash-fighter/config"
	"github.com/lixenwraith/clash-fighter/engine"
	"github.com/lixenwraith/clash-fighter/input"
	"github.com/lixenwraith/clash-fighter/vmath"
)

// Options wires a combatant to its collaborators
type Options struct {
	ID        int     // 1 or 2
	X         float64 // starting x; y starts on the ground
	Direction int     // +1 faces right, -1 faces left; 0 means +1
	IsAI      bool

	Clock  engine.TimeProvider // required
	Bounds engine.Bounds       // required
	Input  input.Source        // nil means no input
	Sounds Sounds              // nil means silent
}

// Combatant is one side of a match
type Combatant struct {
	// Identity
	id        int
	name      string
	direction int
	isAI      bool

	traits   *config.Fighter
	hitboxes [attackTypeCount]config.Hitbox

	clock  engine.TimeProvider
	bounds engine.Bounds
	input  input.Source
	sounds Sounds

	// Spatial
	x, y          float64
	width, height float64
	dy            float64
	airborne      bool

	// Vitals
	health, maxHealth   float64
	stamina, maxStamina float64

	// Combat state
	state          State
	attackType     AttackType
	lastAttackType AttackType
	damageApplied  bool

	// Absolute deadlines against clock
	attackEndTime   time.Time
	recoveryEndTime time.Time
	hitEndTime      time.Time
	dashEndTime     time.Time
	clashTime       time.Time
	deathStartTime  time.Time

	// Countdown, not a deadline
	knockbackDelay time.Duration

	// Updates run so far; the delay is not counted down on the tick it was armed
	ticks              uint64
	knockbackArmedTick uint64

	// Flags
	isBlocking       bool
	isBlockingDamage bool
	recovering       bool
	dashing          bool
	clashing         bool
	lostClash        bool
	knockbackActive  bool
	knockbackApplied bool
	deathFinished    bool

	pendingDamage    float64
	knockbackTargetX float64
	dashDir          float64

	// Last fresh press of move-left [0] and move-right [1], for double-tap dash
	lastTap [2]time.Time

	// Opponent offense mirrored at the start of the tick
	opponentAttack    AttackType
	opponentAttackEnd time.Time

	anim         animState
	missingAnims map[string]bool
}

// New builds a combatant from validated traits
// Invalid traits or missing collaborators are fatal: no partial combatant is returned
func New(traits *config.Fighter, opts Options) (*Combatant, error) {
	if err := traits.Validate(); err != nil {
		return nil, fmt.Errorf("fighter %d: %w", opts.ID, err)
	}
	if opts.Clock == nil {
		return nil, errors.New("fighter: clock is required")
	}
	if opts.Bounds == nil {
		return nil, errors.New("fighter: bounds are required")
	}

	dir := opts.Direction
	switch {
	case dir == 0:
		dir = 1
	case dir != 1 && dir != -1:
		return nil, fmt.Errorf("fighter %d: direction must be +1 or -1, got %d", opts.ID, dir)
	}

	c := &Combatant{
		id:         opts.ID,
		name:       traits.Name,
		direction:  dir,
		isAI:       opts.IsAI,
		traits:     traits,
		clock:      opts.Clock,
		bounds:     opts.Bounds,
		input:      opts.Input,
		sounds:     opts.Sounds,
		width:      traits.Width,
		height:     traits.Height,
		health:     traits.MaxHealth,
		maxHealth:  traits.MaxHealth,
		stamina:    traits.MaxStamina,
		maxStamina: traits.MaxStamina,
		state:      StateIdle,
	}
	if c.input == nil {
		c.input = input.Idle{}
	}
	if c.sounds == nil {
		c.sounds = silent{}
	}

	c.hitboxes[AttackLight] = traits.Hitboxes[config.AttackLight]
	c.hitboxes[AttackMedium] = traits.Hitboxes[config.AttackMedium]
	c.hitboxes[AttackHeavy] = traits.Hitboxes[config.AttackHeavy]

	c.x = vmath.Clamp(opts.X, 0, c.maxX())
	c.y = c.groundY()
	c.startAnimation()

	return c, nil
}

func (c *Combatant) maxX() float64 {
	return c.bounds.Width() - c.width
}

func (c *Combatant) groundY() float64 {
	return c.bounds.Height() - c.height
}

// Box returns the body rectangle
func (c *Combatant) Box() vmath.Rect {
	return vmath.Rect{X: c.x, Y: c.y, Width: c.width, Height: c.height}
}

// AttackHitbox returns the current attack's damage region, if attacking
func (c *Combatant) AttackHitbox() (vmath.Rect, bool) {
	if c.state != StateAttacking || c.attackType == AttackNone {
		return vmath.Rect{}, false
	}
	return c.hitboxRect(c.attackType), true
}

// hitboxRect positions a hitbox in front of the fighter, mirrored when facing left
func (c *Combatant) hitboxRect(at AttackType) vmath.Rect {
	hb := c.hitboxes[at]
	x := c.x + hb.OffsetX
	if c.direction < 0 {
		x = c.x + c.width - hb.OffsetX - hb.Width
	}
	return vmath.Rect{X: x, Y: c.y + hb.OffsetY, Width: hb.Width, Height: hb.Height}
}

// AttackDamage returns the damage of the attack in progress, 0 if not attacking
func (c *Combatant) AttackDamage() float64 {
	if c.state != StateAttacking {
		return 0
	}
	return c.hitboxes[c.attackType].Damage
}

// === Read accessors ===

func (c *Combatant) ID() int                    { return c.id }
func (c *Combatant) Name() string               { return c.name }
func (c *Combatant) Direction() int             { return c.direction }
func (c *Combatant) IsAI() bool                 { return c.isAI }
func (c *Combatant) Traits() *config.Fighter    { return c.traits }
func (c *Combatant) X() float64                 { return c.x }
func (c *Combatant) Y() float64                 { return c.y }
func (c *Combatant) Width() float64             { return c.width }
func (c *Combatant) Height() float64            { return c.height }
func (c *Combatant) DY() float64                { return c.dy }
func (c *Combatant) IsAirborne() bool           { return c.airborne }
func (c *Combatant) Health() float64            { return c.health }
func (c *Combatant) MaxHealth() float64         { return c.maxHealth }
func (c *Combatant) Stamina() float64           { return c.stamina }
func (c *Combatant) MaxStamina() float64        { return c.maxStamina }
func (c *Combatant) State() State               { return c.state }
func (c *Combatant) AttackType() AttackType     { return c.attackType }
func (c *Combatant) LastAttackType() AttackType { return c.lastAttackType }
func (c *Combatant) DamageApplied() bool        { return c.damageApplied }
func (c *Combatant) IsBlocking() bool           { return c.isBlocking }
func (c *Combatant) IsBlockingDamage() bool     { return c.isBlockingDamage }
func (c *Combatant) IsRecovering() bool         { return c.recovering }
func (c *Combatant) IsDashing() bool            { return c.dashing }
func (c *Combatant) IsClashing() bool           { return c.clashing }
func (c *Combatant) LostClash() bool            { return c.lostClash }
func (c *Combatant) KnockbackActive() bool      { return c.knockbackActive }
func (c *Combatant) KnockbackApplied() bool     { return c.knockbackApplied }
func (c *Combatant) PendingDamage() float64     { return c.pendingDamage }
func (c *Combatant) ClashTime() time.Time       { return c.clashTime }
func (c *Combatant) DeathFinished() bool        { return c.deathFinished }

// KnockbackPending reports the inert delay before a knockback slide
func (c *Combatant) KnockbackPending() bool {
	return c.knockbackDelay > 0
}

// OpponentAttack returns the opponent attack mirrored at the start of the last tick
func (c *Combatant) OpponentAttack() AttackType {
	return c.opponentAttack
}

// IsAlive reports health above zero
func (c *Combatant) IsAlive() bool {
	return c.health > 0
}
