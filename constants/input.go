package constants

import "time"

// Keyboard hold emulation
// Terminals report key presses and auto-repeats but never releases
const (
	// KeyHoldWindow is how long after the last press/repeat a key still counts as held
	KeyHoldWindow = 150 * time.Millisecond
)

// AI Controller
const (
	// AIReactionInterval is the minimum gap between AI decisions
	AIReactionInterval = 120 * time.Millisecond

	// AIReach is the horizontal gap (logical units) under which the AI starts swinging
	AIReach = 70.0

	// AIDashDistance is the gap above which the AI considers a dash-in
	AIDashDistance = 320.0

	// AIRetreatDuration is how long the AI backs off after losing a clash
	AIRetreatDuration = 400 * time.Millisecond
)
