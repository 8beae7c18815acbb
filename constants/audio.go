package constants

import "time"

// Audio Engine
const (
	// AudioSampleRate is the speaker sample rate in Hz
	AudioSampleRate = 48000

	// SpeakerBufferDuration is the speaker buffer length
	SpeakerBufferDuration = 100 * time.Millisecond

	// MinSoundGap is the minimum gap between two plays of the same cue
	MinSoundGap = 50 * time.Millisecond
)

// Cue Timing
const (
	SwingSoundDuration = 120 * time.Millisecond
	SwingSoundAttack   = 10 * time.Millisecond
	SwingSoundRelease  = 80 * time.Millisecond

	HitSoundDuration = 150 * time.Millisecond
	HitSoundAttack   = 2 * time.Millisecond
	HitSoundRelease  = 100 * time.Millisecond

	BlockSoundDuration = 90 * time.Millisecond
	BlockSoundAttack   = 2 * time.Millisecond
	BlockSoundRelease  = 60 * time.Millisecond

	ClashSoundDuration = 400 * time.Millisecond
	ClashSoundAttack   = 2 * time.Millisecond
	ClashSoundRelease  = 300 * time.Millisecond

	JumpSoundDuration = 140 * time.Millisecond
	JumpSoundAttack   = 10 * time.Millisecond
	JumpSoundRelease  = 60 * time.Millisecond

	DashSoundDuration = 200 * time.Millisecond
	DashSoundAttack   = 60 * time.Millisecond
	DashSoundRelease  = 120 * time.Millisecond

	KnockoutSoundDuration = 900 * time.Millisecond
	KnockoutSoundAttack   = 5 * time.Millisecond
	KnockoutSoundRelease  = 700 * time.Millisecond
)
