package fsm

import (
	"fmt"
	"sort"
	"time"
)

// Machine is a flat named-state container
// Exactly one state is active; enter/exit hooks run on every real change
type Machine[E any] struct {
	states map[string]State[E]

	active      string
	timeInState time.Duration

	// Pending change requested from inside a hook, applied after the hook returns
	pending    string
	hasPending bool
}

// New builds a machine over states and enters initial
// Fails with ErrUnknownState if initial is not among states
func New[E any](states map[string]State[E], initial string) (*Machine[E], error) {
	if _, ok := states[initial]; !ok {
		return nil, fmt.Errorf("%w: initial state %q", ErrUnknownState, initial)
	}
	for name, st := range states {
		if st == nil {
			return nil, fmt.Errorf("fsm: state %q is nil", name)
		}
	}

	m := &Machine[E]{
		states: make(map[string]State[E], len(states)),
		active: initial,
	}
	for name, st := range states {
		m.states[name] = st
	}

	m.states[initial].Enter()
	m.flushPending()
	return m, nil
}

// Change switches to the named state
// Changing to the active state is a no-op; an undefined target returns ErrUnknownState
func (m *Machine[E]) Change(name string) error {
	if _, ok := m.states[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownState, name)
	}
	if name == m.active {
		return nil
	}

	m.states[m.active].Exit()
	m.active = name
	m.timeInState = 0
	m.states[name].Enter()
	m.flushPending()
	return nil
}

// Defer requests a change that is applied once the current hook or Update returns
// Used by states that decide to leave from inside their own Update
func (m *Machine[E]) Defer(name string) error {
	if _, ok := m.states[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownState, name)
	}
	m.pending = name
	m.hasPending = true
	return nil
}

// Update advances the active state
func (m *Machine[E]) Update(dt time.Duration) {
	m.timeInState += dt
	m.states[m.active].Update(dt)
	m.flushPending()
}

// Render draws the active state
func (m *Machine[E]) Render() {
	m.states[m.active].Render()
}

// HandleInput routes an event to the active state
func (m *Machine[E]) HandleInput(ev E) bool {
	handled := m.states[m.active].HandleInput(ev)
	m.flushPending()
	return handled
}

// Current returns the active state name
func (m *Machine[E]) Current() string {
	return m.active
}

// TimeInState returns time accumulated by Update since the last change
func (m *Machine[E]) TimeInState() time.Duration {
	return m.timeInState
}

// Names returns all state names in sorted order
func (m *Machine[E]) Names() []string {
	names := make([]string, 0, len(m.states))
	for name := range m.states {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *Machine[E]) flushPending() {
	for m.hasPending {
		next := m.pending
		m.hasPending = false
		// Validated in Defer
		_ = m.Change(next)
	}
}
