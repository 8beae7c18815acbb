// Package audio plays procedural fighter cues through the beep speaker
// Audio is optional: every operation is a safe no-op until Initialize succeeds
package audio

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/clash-fighter/constants"
	"github.com/lixenwraith/clash-fighter/engine"
	"github.com/lixenwraith/clash-fighter/fighter"
)

// SoundManager mixes fire-and-forget cues into a single speaker stream
// Implements fighter.Sounds; Play never blocks the tick beyond a short lock
type SoundManager struct {
	mu          sync.Mutex
	config      *AudioConfig
	clock       engine.TimeProvider
	mixer       *beep.Mixer
	initialized bool
	muted       bool

	lastPlayed map[fighter.Sound]time.Time
	played     map[fighter.Sound]int
}

var _ fighter.Sounds = (*SoundManager)(nil)

// NewSoundManager creates an uninitialized manager; nil cfg uses DefaultAudioConfig
func NewSoundManager(cfg *AudioConfig, clock engine.TimeProvider) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	if clock == nil {
		clock = engine.NewMonotonicTimeProvider()
	}
	return &SoundManager{
		config:     cfg,
		clock:      clock,
		mixer:      &beep.Mixer{},
		muted:      !cfg.Enabled,
		lastPlayed: make(map[fighter.Sound]time.Time),
		played:     make(map[fighter.Sound]int),
	}
}

// Initialize opens the speaker; failure leaves the manager silent
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	rate := beep.SampleRate(sm.config.SampleRate)
	if err := speaker.Init(rate, rate.N(constants.SpeakerBufferDuration)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	log.Printf("[audio] speaker ready at %d Hz", sm.config.SampleRate)
	return nil
}

// Cleanup silences every playing cue
// beep has no speaker close; clearing the mixer leaves it streaming silence
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// Play queues cue s unless muted or the same cue played within MinSoundGap
func (sm *SoundManager) Play(s fighter.Sound) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.muted {
		return
	}
	now := sm.clock.Now()
	if last, ok := sm.lastPlayed[s]; ok && now.Sub(last) < constants.MinSoundGap {
		return
	}
	sm.lastPlayed[s] = now
	sm.played[s]++

	if !sm.initialized {
		return
	}
	st := CreateCue(s, sm.config)
	if st == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(st)
	speaker.Unlock()
}

// SetMuted toggles playback
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = muted
	if muted && sm.initialized {
		speaker.Lock()
		sm.mixer.Clear()
		speaker.Unlock()
	}
}

// ToggleMute flips mute and returns the new state
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	muted := !sm.muted
	sm.mu.Unlock()
	sm.SetMuted(muted)
	return muted
}

func (sm *SoundManager) IsMuted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// Played returns how many times cue s passed the mute and rate gates
func (sm *SoundManager) Played(s fighter.Sound) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played[s]
}
