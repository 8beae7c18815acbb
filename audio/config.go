package audio

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/lixenwraith/clash-fighter/constants"
	"github.com/lixenwraith/clash-fighter/fighter"
)

// Environment overrides
const (
	EnvAudioEnabled = "CLASH_FIGHTER_AUDIO_ENABLED"
	EnvMasterVolume = "CLASH_FIGHTER_MASTER_VOLUME" // 0-100
	EnvSFXVolumes   = "CLASH_FIGHTER_SFX_VOLUMES"   // JSON object keyed by cue name
	EnvSampleRate   = "CLASH_FIGHTER_SAMPLE_RATE"
)

// AudioConfig controls cue synthesis and playback
type AudioConfig struct {
	Enabled       bool
	SampleRate    int
	MasterVolume  float64 // 0.0-1.0
	EffectVolumes map[fighter.Sound]float64
}

var cues = []fighter.Sound{
	fighter.SoundSwing,
	fighter.SoundHit,
	fighter.SoundBlock,
	fighter.SoundClash,
	fighter.SoundJump,
	fighter.SoundDash,
	fighter.SoundKnockout,
}

// DefaultAudioConfig returns the built-in mix
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		SampleRate:   constants.AudioSampleRate,
		MasterVolume: 0.5,
		EffectVolumes: map[fighter.Sound]float64{
			fighter.SoundSwing:    0.4,
			fighter.SoundHit:      0.8,
			fighter.SoundBlock:    0.6,
			fighter.SoundClash:    1.0,
			fighter.SoundJump:     0.3,
			fighter.SoundDash:     0.4,
			fighter.SoundKnockout: 0.9,
		},
	}
}

// LoadAudioConfig applies environment overrides to the defaults
// Unparseable values are ignored
func LoadAudioConfig() *AudioConfig {
	cfg := DefaultAudioConfig()

	if enabled := os.Getenv(EnvAudioEnabled); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	if volume := os.Getenv(EnvMasterVolume); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = clampUnit(float64(val) / 100.0)
		}
	}

	if raw := os.Getenv(EnvSFXVolumes); raw != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(raw), &volumes); err == nil {
			for _, s := range cues {
				if v, ok := volumes[s.String()]; ok {
					cfg.EffectVolumes[s] = clampUnit(v)
				}
			}
		}
	}

	if rate := os.Getenv(EnvSampleRate); rate != "" {
		if val, err := strconv.Atoi(rate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}

func clampUnit(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
