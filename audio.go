package main

import (
	"sync"

	"github.com/ebitengine/oto/v3"
)

const audioSampleRate = 44100

var (
	audioOnce sync.Once
	audioCtx  *oto.Context
	audioErr  error
)

// initAudioContext opens the shared oto context once. Every caller gets the
// same context; audio stays disabled for the whole run if it fails to open.
func initAudioContext() (*oto.Context, int, error) {
	audioOnce.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   audioSampleRate,
			ChannelCount: 2,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			audioErr = err
			return
		}
		<-ready
		audioCtx = ctx
	})
	return audioCtx, audioSampleRate, audioErr
}
