package input

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/clash-fighter/constants"
)

// Keyboard turns tcell key events into a Source for one player
// Terminals never report key release, so a key counts as held for KeyHoldWindow after its
// last press or auto-repeat; a press arriving while still held is a repeat, not a fresh press
//
// Thread-Safety: HandleKey may run on the input goroutine; Latch and the Source
// methods run on the game loop
type Keyboard struct {
	mu sync.Mutex

	table      *KeyTable
	holdWindow time.Duration

	lastPress [actionCount]time.Time
	queued    [actionCount]bool // fresh presses since last Latch
	fresh     [actionCount]bool // presses visible this tick
	now       time.Time
}

// NewKeyboard creates a keyboard source over the given bindings
func NewKeyboard(table *KeyTable) *Keyboard {
	return &Keyboard{
		table:      table,
		holdWindow: constants.KeyHoldWindow,
	}
}

// HandleKey records a key event; returns true if the key is bound for this player
func (k *Keyboard) HandleKey(ev *tcell.EventKey) bool {
	a, ok := k.table.Lookup(ev)
	if !ok {
		return false
	}
	k.Record(a, ev.When())
	return true
}

// Record registers a press of a at time t
func (k *Keyboard) Record(a Action, t time.Time) {
	k.mu.Lock()
	defer k.mu.Unlock()

	last := k.lastPress[a]
	if last.IsZero() || t.Sub(last) >= k.holdWindow {
		k.queued[a] = true
	}
	k.lastPress[a] = t
}

// Latch publishes presses queued since the previous call as this tick's just-pressed set
// Called once per tick before fighters update
func (k *Keyboard) Latch(now time.Time) {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.now = now
	k.fresh = k.queued
	k.queued = [actionCount]bool{}
}

func (k *Keyboard) IsHeld(a Action) bool {
	if a >= actionCount {
		return false
	}
	k.mu.Lock()
	defer k.mu.Unlock()

	last := k.lastPress[a]
	return !last.IsZero() && k.now.Sub(last) < k.holdWindow
}

func (k *Keyboard) WasJustPressed(a Action) bool {
	if a >= actionCount {
		return false
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.fresh[a]
}

// Reset forgets all key state (screen changes)
func (k *Keyboard) Reset() {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.lastPress = [actionCount]time.Time{}
	k.queued = [actionCount]bool{}
	k.fresh = [actionCount]bool{}
}
