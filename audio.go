package main

import (
	"math"

	"github.com/veandco/go-sdl2/sdl"
)

const (
	/// Playback sampling rate.
	///
	sampleRate = 48000

	/// Output volume of the square wave.
	///
	volume = 0.05
)

var (
	/// The opened audio device.
	///
	Audio sdl.AudioDeviceID

	/// Playback position within the audio pattern, in bits.
	///
	patternPhase float64
)

/// defaultPattern is a plain square wave used when the program never
/// loaded an XO-CHIP pattern.
///
var defaultPattern = [16]byte{
	0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
}

/// InitAudio opens an audio device for the CHIP-8 sound timer.
///
func InitAudio() {
	spec := &sdl.AudioSpec{
		Freq:     sampleRate,
		Format:   sdl.AUDIO_F32SYS,
		Channels: 1,
		Samples:  1024,
	}

	var err error
	if Audio, err = sdl.OpenAudioDevice("", false, spec, nil, 0); err != nil {
		panic(err)
	}

	// start playing immediately; silence is queued while the gate is
	// off
	sdl.PauseAudioDevice(Audio, false)
}

/// PumpAudio queues one frame worth of samples derived from the
/// pattern bitstream while the sound gate is on.
///
func PumpAudio() {
	// keep roughly two frames queued
	if sdl.GetQueuedAudioSize(Audio) > sampleRate/30*4 {
		return
	}

	samples := make([]float32, sampleRate/60)

	if VM.SoundGate() {
		pattern := VM.AudioPattern()

		// a program that never loads a pattern gets a plain beep
		if pattern == [16]byte{} {
			pattern = defaultPattern
		}

		// bits per second at the programmed pitch
		rate := 4000 * math.Pow(2, (float64(VM.AudioPitch())-64)/48)
		step := rate / sampleRate

		for i := range samples {
			bit := uint(patternPhase) & 127

			if pattern[bit>>3]&(0x80>>(bit&7)) != 0 {
				samples[i] = volume
			}

			patternPhase += step
			if patternPhase >= 128 {
				patternPhase -= 128
			}
		}
	} else {
		patternPhase = 0
	}

	buf := make([]byte, 0, len(samples)*4)
	for _, s := range samples {
		bits := math.Float32bits(s)
		buf = append(buf, byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24))
	}

	// audio is best effort; a failed queue just drops the frame
	_ = sdl.QueueAudio(Audio, buf)
}
