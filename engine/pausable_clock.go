package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// PausableClock provides match time that stops while the game is paused
// Fighter deadlines are stamped against it so a pause never expires an attack or knockback
type PausableClock struct {
	mu sync.RWMutex

	realStartTime time.Time
	gameStartTime time.Time

	isPaused        atomic.Bool
	pauseStartTime  time.Time
	totalPausedTime time.Duration

	realTimeProvider TimeProvider
}

// NewPausableClock creates a pausable clock backed by the monotonic wall clock
func NewPausableClock() *PausableClock {
	return NewPausableClockWith(NewMonotonicTimeProvider())
}

// NewPausableClockWith creates a pausable clock over an arbitrary real time source
func NewPausableClockWith(real TimeProvider) *PausableClock {
	now := real.Now()
	return &PausableClock{
		realStartTime:    now,
		gameStartTime:    now,
		realTimeProvider: real,
	}
}

// Now returns current game time (frozen while paused)
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.isPaused.Load() {
		return pc.gameStartTime.Add(pc.pauseStartTime.Sub(pc.realStartTime) - pc.totalPausedTime)
	}

	realElapsed := pc.realTimeProvider.Now().Sub(pc.realStartTime)
	return pc.gameStartTime.Add(realElapsed - pc.totalPausedTime)
}

// Pause stops game time advancement
func (pc *PausableClock) Pause() {
	if pc.isPaused.CompareAndSwap(false, true) {
		pc.mu.Lock()
		defer pc.mu.Unlock()
		pc.pauseStartTime = pc.realTimeProvider.Now()
	}
}

// Resume continues game time advancement
func (pc *PausableClock) Resume() {
	if pc.isPaused.CompareAndSwap(true, false) {
		pc.mu.Lock()
		defer pc.mu.Unlock()

		if !pc.pauseStartTime.IsZero() {
			pc.totalPausedTime += pc.realTimeProvider.Now().Sub(pc.pauseStartTime)
			pc.pauseStartTime = time.Time{}
		}
	}
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	return pc.isPaused.Load()
}

// TotalPauseDuration returns cumulative pause time including an in-progress pause
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPausedTime
	if pc.isPaused.Load() && !pc.pauseStartTime.IsZero() {
		total += pc.realTimeProvider.Now().Sub(pc.pauseStartTime)
	}
	return total
}
