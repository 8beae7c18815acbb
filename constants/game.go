package constants

import "time"

// Game Loop Timing Constants
const (
	// FrameUpdateInterval is the rendering and simulation tick interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxFrameDelta caps dt after a stall (terminal suspend, debugger) so timers do not skip
	MaxFrameDelta = 100 * time.Millisecond

	// EventChannelSize is the buffered capacity of the terminal event channel
	EventChannelSize = 256
)

// Arena dimensions in logical units
// Rendering scales these to the terminal grid; the simulation never sees cells
const (
	ArenaWidth  = 800.0
	ArenaHeight = 400.0

	// SpawnInset is the distance from each arena edge to a fighter's starting x
	SpawnInset = 120.0
)

// Match flow
const (
	// ResultScreenDelay is the minimum time the result screen stays up before accepting input
	ResultScreenDelay = 1 * time.Second
)
