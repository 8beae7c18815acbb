package constants

import "time"

// Clash Resolution
const (
	// ClashStaminaCost is deducted from both fighters on every clash
	ClashStaminaCost = 10.0

	// ClashDisplayDuration is how long IsClashing stays up without a new clash or knockback end
	ClashDisplayDuration = 1 * time.Second

	// ClashDamageDivisor divides the winner's hitbox damage into the loser's pending damage
	ClashDamageDivisor = 2.0
)

// Knockback
const (
	// KnockbackDistance is the slide length, opposite the knocked fighter's facing
	KnockbackDistance = 100.0

	// KnockbackArrivalEpsilon ends the slide once this close to the target
	KnockbackArrivalEpsilon = 1.0

	// KnockbackBaseDelay is the inert period before the slide starts
	KnockbackBaseDelay = 300 * time.Millisecond

	// KnockbackMediumExtraDelay is added when the knockback came from a medium attack
	KnockbackMediumExtraDelay = 200 * time.Millisecond

	// KnockbackHeavyExtraDelay is added when the knockback came from a heavy attack
	KnockbackHeavyExtraDelay = 400 * time.Millisecond
)

// Movement
const (
	// DoubleTapWindow is the max gap between two presses of the same direction to start a dash
	DoubleTapWindow = 300 * time.Millisecond
)

// Attack weights for clash adjudication
const (
	WeightLight  = 1
	WeightMedium = 2
	WeightHeavy  = 3
)
