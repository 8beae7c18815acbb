package input

// Action is a logical fighter action, independent of the device that produced it
type Action uint8

const (
	ActionNone Action = iota
	ActionMoveLeft
	ActionMoveRight
	ActionJump
	ActionLight
	ActionMedium
	ActionHeavy

	actionCount
)

// Source is everything a fighter knows about its controls
// Human keyboards and the AI controller both implement it; the fighter cannot tell them apart
type Source interface {
	// IsHeld reports whether the action is currently held
	IsHeld(a Action) bool
	// WasJustPressed reports a fresh press during the current tick
	WasJustPressed(a Action) bool
}

// Snapshot is a Source whose state is set explicitly
// Just-pressed flags last until EndTick
type Snapshot struct {
	held    [actionCount]bool
	pressed [actionCount]bool
}

// NewSnapshot returns an empty snapshot (nothing held)
func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

func (s *Snapshot) IsHeld(a Action) bool {
	return a < actionCount && s.held[a]
}

func (s *Snapshot) WasJustPressed(a Action) bool {
	return a < actionCount && s.pressed[a]
}

// Press marks a fresh press and holds the action
func (s *Snapshot) Press(a Action) {
	if a >= actionCount {
		return
	}
	s.pressed[a] = true
	s.held[a] = true
}

// Hold holds the action without a fresh press edge
func (s *Snapshot) Hold(a Action) {
	if a < actionCount {
		s.held[a] = true
	}
}

// Release drops the held flag
func (s *Snapshot) Release(a Action) {
	if a < actionCount {
		s.held[a] = false
	}
}

// Tap is Press followed by a release at end of tick
func (s *Snapshot) Tap(a Action) {
	if a < actionCount {
		s.pressed[a] = true
	}
}

// EndTick clears just-pressed edges
func (s *Snapshot) EndTick() {
	s.pressed = [actionCount]bool{}
}

// Reset clears everything
func (s *Snapshot) Reset() {
	s.held = [actionCount]bool{}
	s.pressed = [actionCount]bool{}
}

// Idle is a Source that never reports anything
type Idle struct{}

func (Idle) IsHeld(Action) bool         { return false }
func (Idle) WasJustPressed(Action) bool { return false }
