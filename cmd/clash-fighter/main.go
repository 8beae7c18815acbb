package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/clash-fighter/audio"
	"github.com/lixenwraith/clash-fighter/config"
	"github.com/lixenwraith/clash-fighter/constants"
	"github.com/lixenwraith/clash-fighter/core"
	"github.com/lixenwraith/clash-fighter/engine"
)

var (
	p1Flag       = flag.String("p1", "ronin", "Fighter id for player 1")
	p2Flag       = flag.String("p2", "brute", "Fighter id for player 2")
	aiFlag       = flag.Bool("ai", true, "Player 2 is computer controlled")
	seedFlag     = flag.Uint64("seed", 0, "AI random seed (0 = time based)")
	fightersFlag = flag.String("fighters", "", "Fighter roster YAML (default: config/fighters.yaml, then built-in)")
	debugFlag    = flag.Bool("debug", false, "Write a debug log to logs/clash-fighter.log")
	muteFlag     = flag.Bool("mute", false, "Start with audio muted")
)

func main() {
	// Ensure terminal is reset even if the main goroutine panics
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	if f := setupLogging(*debugFlag); f != nil {
		defer f.Close()
	}

	// Roster problems are reported before the terminal switches to raw mode
	roster, err := config.LoadAuto(*fightersFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load fighters: %v\n", err)
		os.Exit(1)
	}
	for _, id := range []string{*p1Flag, *p2Flag} {
		if _, err := roster.Get(id); err != nil {
			fmt.Fprintf(os.Stderr, "%v (available: %v)\n", err, roster.IDs())
			os.Exit(1)
		}
	}

	seed := *seedFlag
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	core.RegisterScreen(screen)
	defer func() {
		core.RegisterScreen(nil)
		screen.Fini()
	}()

	clock := engine.NewPausableClock()

	audioCfg := audio.LoadAudioConfig()
	if *muteFlag {
		audioCfg.Enabled = false
	}
	sounds := audio.NewSoundManager(audioCfg, clock)
	if err := sounds.Initialize(); err != nil {
		log.Printf("[main] audio unavailable: %v (continuing without audio)", err)
	}
	defer sounds.Cleanup()

	a, err := newApp(appOptions{
		roster:     roster,
		p1:         *p1Flag,
		p2:         *p2Flag,
		p2AI:       *aiFlag,
		seed:       seed,
		screen:     screen,
		clock:      clock,
		sounds:     sounds,
		toggleMute: sounds.ToggleMute,
	})
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}

	log.Printf("[main] p1=%s p2=%s ai=%v seed=%d", *p1Flag, *p2Flag, *aiFlag, seed)
	run(a, screen)
}

// run is the frame loop: drain terminal events, step the active screen, draw it
func run(a *app, screen tcell.Screen) {
	eventChan := make(chan tcell.Event, constants.EventChannelSize)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			// nil after Fini
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	})

	frameTicker := time.NewTicker(constants.FrameUpdateInterval)
	defer frameTicker.Stop()

	last := time.Now()
	a.machine.Render()

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !a.handleKey(ev) {
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case now := <-frameTicker.C:
			dt := min(now.Sub(last), constants.MaxFrameDelta)
			last = now
			a.machine.Update(dt)
			if a.quit {
				return
			}
			a.machine.Render()
		}
	}
}
