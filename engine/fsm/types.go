package fsm

import (
	"errors"
	"time"
)

// ErrUnknownState is returned when a machine is built with, or asked to enter, an undefined state
var ErrUnknownState = errors.New("fsm: unknown state")

// State is one screen of the application
// E is the input event type routed to the active state (e.g., *tcell.EventKey)
type State[E any] interface {
	// Enter runs when the machine switches into the state
	Enter()
	// Exit runs when the machine switches away from the state
	Exit()
	// Update advances the state by dt
	Update(dt time.Duration)
	// Render draws the state; never mutates simulation data
	Render()
	// HandleInput returns true if the event was consumed
	HandleInput(ev E) bool
}

// Funcs adapts plain functions to State; nil hooks are no-ops
type Funcs[E any] struct {
	OnEnter  func()
	OnExit   func()
	OnUpdate func(dt time.Duration)
	OnRender func()
	OnInput  func(ev E) bool
}

func (f Funcs[E]) Enter() {
	if f.OnEnter != nil {
		f.OnEnter()
	}
}

func (f Funcs[E]) Exit() {
	if f.OnExit != nil {
		f.OnExit()
	}
}

func (f Funcs[E]) Update(dt time.Duration) {
	if f.OnUpdate != nil {
		f.OnUpdate(dt)
	}
}

func (f Funcs[E]) Render() {
	if f.OnRender != nil {
		f.OnRender()
	}
}

func (f Funcs[E]) HandleInput(ev E) bool {
	if f.OnInput != nil {
		return f.OnInput(ev)
	}
	return false
}
