package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/clash-fighter/ai"
	"github.com/lixenwraith/clash-fighter/config"
	"github.com/lixenwraith/clash-fighter/constants"
	"github.com/lixenwraith/clash-fighter/engine"
	"github.com/lixenwraith/clash-fighter/engine/fsm"
	"github.com/lixenwraith/clash-fighter/fighter"
	"github.com/lixenwraith/clash-fighter/input"
	"github.com/lixenwraith/clash-fighter/match"
	"github.com/lixenwraith/clash-fighter/render"
)

// Screen names
const (
	screenTitle  = "title"
	screenFight  = "fight"
	screenResult = "result"
)

// appOptions are the resolved inputs of one session
type appOptions struct {
	roster *config.Roster
	p1, p2 string
	p2AI   bool
	seed   uint64

	screen tcell.Screen
	clock  *engine.PausableClock
	sounds fighter.Sounds
	// toggleMute flips audio and reports the new state; nil hides the toggle
	toggleMute func() bool
}

// app owns the screen machine and the current match
// All methods run on the main loop goroutine
type app struct {
	opts     appOptions
	names    [2]string
	arena    *engine.Arena
	renderer *render.TerminalRenderer
	keys     [2]*input.Keyboard
	ai       *ai.Controller

	machine  *fsm.Machine[*tcell.EventKey]
	match    *match.Match
	lastTick time.Time
	overAt   time.Time
	rounds   int
	quit     bool
}

func newApp(opts appOptions) (*app, error) {
	a := &app{
		opts:  opts,
		arena: engine.NewArena(constants.ArenaWidth, constants.ArenaHeight),
		keys:  [2]*input.Keyboard{input.NewKeyboard(input.DefaultKeyTable(1)), input.NewKeyboard(input.DefaultKeyTable(2))},
	}
	a.renderer = render.NewTerminalRenderer(opts.screen, a.arena)

	// Resolve both fighters up front so an unknown id fails before the first frame
	for i, id := range []string{opts.p1, opts.p2} {
		f, err := opts.roster.Get(id)
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", i+1, err)
		}
		a.names[i] = f.Name
	}

	machine, err := fsm.New(map[string]fsm.State[*tcell.EventKey]{
		screenTitle: fsm.Funcs[*tcell.EventKey]{
			OnRender: a.renderTitle,
			OnInput:  a.titleInput,
		},
		screenFight: fsm.Funcs[*tcell.EventKey]{
			OnEnter:  a.enterFight,
			OnExit:   a.exitFight,
			OnUpdate: a.updateFight,
			OnRender: a.renderFight,
			OnInput:  a.fightInput,
		},
		screenResult: fsm.Funcs[*tcell.EventKey]{
			OnRender: a.renderResult,
			OnInput:  a.resultInput,
		},
	}, screenTitle)
	if err != nil {
		return nil, err
	}
	a.machine = machine
	return a, nil
}

// newMatch reconstructs both combatants for a fresh round
func (a *app) newMatch() (*match.Match, error) {
	var sources [2]input.Source
	sources[0] = a.keys[0]
	sources[1] = a.keys[1]
	a.ai = nil
	if a.opts.p2AI {
		a.ai = ai.New(a.opts.seed + uint64(a.rounds))
		sources[1] = a.ai
	}

	var cs [2]*fighter.Combatant
	for i, id := range []string{a.opts.p1, a.opts.p2} {
		traits, err := a.opts.roster.Get(id)
		if err != nil {
			return nil, err
		}
		x, dir := constants.SpawnInset, 1
		if i == 1 {
			x, dir = constants.ArenaWidth-constants.SpawnInset-traits.Width, -1
		}
		c, err := fighter.New(traits, fighter.Options{
			ID:        i + 1,
			X:         x,
			Direction: dir,
			IsAI:      i == 1 && a.opts.p2AI,
			Clock:     a.opts.clock,
			Bounds:    a.arena,
			Input:     sources[i],
			Sounds:    a.opts.sounds,
		})
		if err != nil {
			return nil, err
		}
		cs[i] = c
	}
	return match.New(cs[0], cs[1])
}

// handleKey routes a key event; returns false when the app should exit
func (a *app) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		a.quit = true
	}
	if !a.quit {
		a.machine.HandleInput(ev)
	}
	return !a.quit
}

// === title ===

func (a *app) renderTitle() {
	a.renderer.RenderTitle(a.names[0], a.names[1], a.opts.p2AI)
}

func (a *app) titleInput(ev *tcell.EventKey) bool {
	switch {
	case ev.Key() == tcell.KeyEnter:
		m, err := a.newMatch()
		if err != nil {
			log.Printf("[app] cannot start match: %v", err)
			return true
		}
		a.match = m
		a.rounds++
		_ = a.machine.Defer(screenFight)
	case ev.Key() == tcell.KeyEscape:
		a.quit = true
	case ev.Key() == tcell.KeyRune && ev.Rune() == 'm':
		a.toggleMute()
	default:
		return false
	}
	return true
}

func (a *app) toggleMute() {
	if a.opts.toggleMute != nil {
		log.Printf("[app] muted=%v", a.opts.toggleMute())
	}
}

// === fight ===

func (a *app) enterFight() {
	a.keys[0].Reset()
	a.keys[1].Reset()
	a.opts.clock.Resume()
	a.lastTick = a.opts.clock.Now()
	a.overAt = time.Time{}
}

func (a *app) exitFight() {
	a.opts.clock.Resume()
}

// updateFight ticks the match on game time so a pause never expires a timer
func (a *app) updateFight(time.Duration) {
	if a.opts.clock.IsPaused() {
		return
	}
	now := a.opts.clock.Now()
	dt := min(now.Sub(a.lastTick), constants.MaxFrameDelta)
	a.lastTick = now

	wall := time.Now()
	a.keys[0].Latch(wall)
	a.keys[1].Latch(wall)
	if a.ai != nil {
		a.ai.Observe(now, a.match.P2(), a.match.P1())
	}

	a.match.Tick(dt)

	if !a.match.Over() {
		return
	}
	if a.overAt.IsZero() {
		a.overAt = now
	}
	if now.Sub(a.overAt) >= constants.ResultScreenDelay {
		_ = a.machine.Defer(screenResult)
	}
}

func (a *app) renderFight() {
	a.renderer.RenderFight(a.match, a.opts.clock.IsPaused())
}

func (a *app) fightInput(ev *tcell.EventKey) bool {
	switch {
	case ev.Key() == tcell.KeyEscape:
		_ = a.machine.Defer(screenTitle)
		return true
	case ev.Key() == tcell.KeyRune && ev.Rune() == 'p':
		if a.opts.clock.IsPaused() {
			a.opts.clock.Resume()
		} else {
			a.opts.clock.Pause()
		}
		return true
	case ev.Key() == tcell.KeyRune && ev.Rune() == 'm':
		a.toggleMute()
		return true
	}
	if a.opts.clock.IsPaused() {
		return false
	}

	handled := a.keys[0].HandleKey(ev)
	if !a.opts.p2AI && a.keys[1].HandleKey(ev) {
		handled = true
	}
	return handled
}

// === result ===

func (a *app) renderResult() {
	a.renderer.RenderResult(a.match)
}

func (a *app) resultInput(ev *tcell.EventKey) bool {
	// Swallow keys still held from the fight
	if a.machine.TimeInState() < constants.ResultScreenDelay {
		return true
	}
	switch ev.Key() {
	case tcell.KeyEnter:
		_ = a.machine.Defer(screenTitle)
	case tcell.KeyEscape:
		a.quit = true
	default:
		return false
	}
	return true
}
