package config

import "time"

// Attack type keys used in the hitbox table and animation names
const (
	AttackLight  = "light"
	AttackMedium = "medium"
	AttackHeavy  = "heavy"
)

// AttackTypes lists every attack type a fighter must configure, in ascending weight
var AttackTypes = []string{AttackLight, AttackMedium, AttackHeavy}

// Roster is the validated set of fighters keyed by id
type Roster struct {
	Fighters map[string]*Fighter
}

// Fighter holds the static traits of one fighter; read-only after construction
type Fighter struct {
	ID   string
	Name string // display name, title-cased

	Width, Height float64

	MaxHealth  float64
	MaxStamina float64

	Speed        float64 // units/s
	JumpStrength float64 // initial upward speed, units/s
	Gravity      float64 // units/s²

	HitDuration   time.Duration
	DeathDuration time.Duration

	Dash      Dash
	Knockback Knockback

	Hitboxes   map[string]Hitbox
	Animations map[string]Animation
}

// Dash traits
type Dash struct {
	Speed       float64
	Duration    time.Duration
	StaminaCost float64
}

// Knockback traits
type Knockback struct {
	Speed     float64
	BaseDelay time.Duration
}

// Hitbox describes one attack type
// Offsets are relative to the fighter's top-left when facing right and mirrored when facing left
type Hitbox struct {
	OffsetX, OffsetY float64
	Width, Height    float64
	Duration         time.Duration // attack window
	Recovery         time.Duration // post-attack lockout
	Damage           float64
}

// Animation is frame timing for one visual state
type Animation struct {
	Frames        int
	FrameDuration time.Duration
	Loop          bool
}

// rawRoster mirrors the YAML; pointers detect missing required fields
type rawRoster struct {
	Fighters map[string]*rawFighter `yaml:"fighters"`
}

type rawFighter struct {
	Name            *string                  `yaml:"name"`
	Width           *float64                 `yaml:"width"`
	Height          *float64                 `yaml:"height"`
	MaxHealth       *float64                 `yaml:"max_health"`
	MaxStamina      *float64                 `yaml:"max_stamina"`
	Speed           *float64                 `yaml:"speed"`
	JumpStrength    *float64                 `yaml:"jump_strength"`
	Gravity         *float64                 `yaml:"gravity"`
	HitDurationMs   *int                     `yaml:"hit_duration_ms"`
	DeathDurationMs *int                     `yaml:"death_duration_ms"`
	Dash            *rawDash                 `yaml:"dash"`
	Knockback       *rawKnockback            `yaml:"knockback"`
	Hitboxes        map[string]*rawHitbox    `yaml:"hitboxes"`
	Animations      map[string]*rawAnimation `yaml:"animations"`
}

type rawDash struct {
	Speed       *float64 `yaml:"speed"`
	DurationMs  *int     `yaml:"duration_ms"`
	StaminaCost *float64 `yaml:"stamina_cost"`
}

type rawKnockback struct {
	Speed       *float64 `yaml:"speed"`
	BaseDelayMs *int     `yaml:"base_delay_ms"`
}

type rawHitbox struct {
	OffsetX    *float64 `yaml:"offset_x"`
	OffsetY    *float64 `yaml:"offset_y"`
	Width      *float64 `yaml:"width"`
	Height     *float64 `yaml:"height"`
	DurationMs *int     `yaml:"duration_ms"`
	RecoveryMs *int     `yaml:"recovery_ms"`
	Damage     *float64 `yaml:"damage"`
}

type rawAnimation struct {
	Frames  *int `yaml:"frames"`
	FrameMs *int `yaml:"frame_ms"`
	Loop    bool `yaml:"loop"`
}
