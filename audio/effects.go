package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/clash-fighter/constants"
	"github.com/lixenwraith/clash-fighter/fighter"
	"github.com/lixenwraith/clash-fighter/vmath"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw wave, optionally gliding linearly from freq to endFreq
type oscillator struct {
	freq, endFreq float64
	phase         float64
	duration      int
	position      int
	wave          WaveType
	rate          beep.SampleRate
	rng           *vmath.FastRand
}

// NewOscillator creates a fixed-pitch oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewGlide(freq, freq, duration, wave, rate)
}

// NewGlide creates an oscillator sweeping from startFreq to endFreq over duration
func NewGlide(startFreq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     startFreq,
		endFreq:  endFreq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      vmath.NewFastRand(uint64(startFreq*1000) + 1),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.endFreq-o.freq)*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release shaping
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope wraps s with an attack/sustain/release envelope of the given total duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: max(total-att-rel, 0),
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if releaseStart := e.attackSamples + e.sustainSamples; e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales linearly; 0 is silent since log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func shaped(osc beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(osc, d, attack, release, rate)
}

// CreateCue synthesizes the streamer for one fighter cue, nil for unknown cues
func CreateCue(s fighter.Sound, cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	var st beep.Streamer

	switch s {
	case fighter.SoundSwing:
		// Air whoosh: filtered-sounding noise under a falling saw
		d := constants.SwingSoundDuration
		st = beep.Mix(
			newVolume(shaped(NewOscillator(0, d, WaveNoise, rate), d, constants.SwingSoundAttack, constants.SwingSoundRelease, rate), 0.6),
			newVolume(shaped(NewGlide(320, 140, d, WaveSaw, rate), d, constants.SwingSoundAttack, constants.SwingSoundRelease, rate), 0.2),
		)

	case fighter.SoundHit:
		d := constants.HitSoundDuration
		st = beep.Mix(
			newVolume(shaped(NewGlide(180, 60, d, WaveSine, rate), d, constants.HitSoundAttack, constants.HitSoundRelease, rate), 0.8),
			newVolume(shaped(NewOscillator(0, d, WaveNoise, rate), d, constants.HitSoundAttack, constants.HitSoundRelease/2, rate), 0.3),
		)

	case fighter.SoundBlock:
		d := constants.BlockSoundDuration
		st = shaped(NewOscillator(220, d, WaveSquare, rate), d, constants.BlockSoundAttack, constants.BlockSoundRelease, rate)

	case fighter.SoundClash:
		// Metallic ring: inharmonic partials
		d := constants.ClashSoundDuration
		st = beep.Mix(
			newVolume(shaped(NewOscillator(1046.5, d, WaveSine, rate), d, constants.ClashSoundAttack, constants.ClashSoundRelease, rate), 0.5),
			newVolume(shaped(NewOscillator(1480.0, d, WaveSine, rate), d, constants.ClashSoundAttack, constants.ClashSoundRelease*2/3, rate), 0.3),
			newVolume(shaped(NewOscillator(0, d, WaveNoise, rate), d, constants.ClashSoundAttack, constants.ClashSoundRelease/4, rate), 0.2),
		)

	case fighter.SoundJump:
		d := constants.JumpSoundDuration
		st = shaped(NewGlide(260, 520, d, WaveSquare, rate), d, constants.JumpSoundAttack, constants.JumpSoundRelease, rate)

	case fighter.SoundDash:
		d := constants.DashSoundDuration
		st = shaped(NewOscillator(0, d, WaveNoise, rate), d, constants.DashSoundAttack, constants.DashSoundRelease, rate)

	case fighter.SoundKnockout:
		// Two falling notes
		d := constants.KnockoutSoundDuration / 2
		st = beep.Seq(
			shaped(NewGlide(392, 330, d, WaveSaw, rate), d, constants.KnockoutSoundAttack, d/2, rate),
			shaped(NewGlide(262, 98, d, WaveSaw, rate), d, constants.KnockoutSoundAttack, constants.KnockoutSoundRelease/2, rate),
		)

	default:
		return nil
	}

	return newVolume(st, cfg.EffectVolumes[s]*cfg.MasterVolume)
}
