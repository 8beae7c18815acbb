package fighter

import (
	"github.com/lixenwraith/clash-fighter/config"
	"github.com/lixenwraith/clash-fighter/constants"
	"github.com/lixenwraith/clash-fighter/input"
)

// State is the single source of truth for what a fighter may do this tick
type State uint8

const (
	StateIdle State = iota
	StateRun
	StateJump
	StateAttacking
	StateHit
	StateDeath
)

var stateNames = [...]string{"idle", "run", "jump", "attacking", "hit", "death"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// AttackType is the attack in progress; None outside StateAttacking
type AttackType uint8

const (
	AttackNone AttackType = iota
	AttackLight
	AttackMedium
	AttackHeavy

	attackTypeCount
)

var attackKeys = [...]string{"none", config.AttackLight, config.AttackMedium, config.AttackHeavy}

func (a AttackType) String() string {
	if int(a) < len(attackKeys) {
		return attackKeys[a]
	}
	return "unknown"
}

// Weight orders attacks for clash adjudication: light < medium < heavy
func (a AttackType) Weight() int {
	switch a {
	case AttackLight:
		return constants.WeightLight
	case AttackMedium:
		return constants.WeightMedium
	case AttackHeavy:
		return constants.WeightHeavy
	}
	return 0
}

func attackForAction(a input.Action) AttackType {
	switch a {
	case input.ActionLight:
		return AttackLight
	case input.ActionMedium:
		return AttackMedium
	case input.ActionHeavy:
		return AttackHeavy
	}
	return AttackNone
}

// Sound is a fire-and-forget cue emitted by the simulation
type Sound uint8

const (
	SoundSwing Sound = iota
	SoundHit
	SoundBlock
	SoundClash
	SoundJump
	SoundDash
	SoundKnockout
)

var soundNames = [...]string{"swing", "hit", "block", "clash", "jump", "dash", "knockout"}

func (s Sound) String() string {
	if int(s) < len(soundNames) {
		return soundNames[s]
	}
	return "unknown"
}

// Sounds receives cues; implementations must not block the tick
type Sounds interface {
	Play(s Sound)
}

type silent struct{}

func (silent) Play(Sound) {}
