package main

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"
)

func TestClampVolume(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.42, 0.42},
		{1, 1},
		{1.8, 1},
	}
	for _, tt := range tests {
		if got := clampVolume(tt.in); got != tt.want {
			t.Errorf("clampVolume(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTonesForEventAllDefined(t *testing.T) {
	events := []SoundEvent{SoundApple, SoundTurn, SoundPause, SoundMenuMove, SoundMenuSelect, SoundGameOver, SoundWin}
	for _, event := range events {
		if len(tonesForEvent(event)) == 0 {
			t.Errorf("event %d has no tone sequence", event)
		}
	}
	if tonesForEvent(SoundEvent(99)) != nil {
		t.Error("unknown events must be silent")
	}
}

func TestRenderToneSequenceLength(t *testing.T) {
	sequence := []toneSpec{
		{frequency: 440, duration: 100 * time.Millisecond, volume: 0.3},
		{frequency: 550, duration: 50 * time.Millisecond, volume: 0.3},
	}
	rate := 8000
	buffer := renderToneSequence(sequence, rate, 1)
	// 100ms + 10ms gap + 50ms at 4 bytes per stereo sample.
	want := (800 + 80 + 400) * 4
	if len(buffer) != want {
		t.Fatalf("buffer length %d, want %d", len(buffer), want)
	}
	if bytes.Count(buffer, []byte{0}) == len(buffer) {
		t.Error("tone buffer must not be all silence")
	}
}

func TestRenderToneSequenceZeroVolumeIsSilent(t *testing.T) {
	sequence := []toneSpec{{frequency: 440, duration: 20 * time.Millisecond, volume: 0.3}}
	buffer := renderToneSequence(sequence, 8000, 0)
	for i, b := range buffer {
		if b != 0 {
			t.Fatalf("expected silence at zero master volume, byte %d = %d", i, b)
		}
	}
}

func TestRenderMelodyLengthAndRests(t *testing.T) {
	notes := []melodyNote{
		{440, 50 * time.Millisecond},
		{0, 30 * time.Millisecond}, // rest
	}
	rate := 8000
	buffer := renderMelody(notes, rate)
	want := (400 + 240) * 4
	if len(buffer) != want {
		t.Fatalf("buffer length %d, want %d", len(buffer), want)
	}
	restStart := 400 * 4
	for i := restStart; i < len(buffer); i++ {
		if buffer[i] != 0 {
			t.Fatalf("rest must be silent, byte %d = %d", i, buffer[i])
		}
	}
}

func TestLoopReaderWrapsAround(t *testing.T) {
	loop := &loopReader{buffer: []byte{1, 2, 3}}
	out := make([]byte, 8)
	n, err := loop.Read(out)
	if err != nil || n != 8 {
		t.Fatalf("Read = %d, %v", n, err)
	}
	want := []byte{1, 2, 3, 1, 2, 3, 1, 2}
	if !bytes.Equal(out, want) {
		t.Errorf("looped read = %v, want %v", out, want)
	}
}

func TestLoopReaderEmpty(t *testing.T) {
	loop := &loopReader{}
	if _, err := loop.Read(make([]byte, 4)); err == nil {
		t.Error("an empty loop must report EOF instead of spinning")
	}
}

func TestVolumeReaderScalesSamples(t *testing.T) {
	raw := make([]byte, 4)
	binary.LittleEndian.PutUint16(raw[0:], uint16(int16(1000)))
	binary.LittleEndian.PutUint16(raw[2:], uint16(int16(-1000)))
	v := &volumeReader{
		reader:    bytes.NewReader(raw),
		getVolume: func() float64 { return 0.5 },
	}
	out := make([]byte, 4)
	n, _ := v.Read(out)
	if n != 4 {
		t.Fatalf("short read: %d", n)
	}
	left := int16(binary.LittleEndian.Uint16(out[0:]))
	right := int16(binary.LittleEndian.Uint16(out[2:]))
	if left != 500 || right != -500 {
		t.Errorf("scaled samples = %d, %d; want 500, -500", left, right)
	}
}

func TestVolumeReaderFullVolumePassthrough(t *testing.T) {
	raw := []byte{0x12, 0x34, 0x56, 0x78}
	v := &volumeReader{
		reader:    bytes.NewReader(raw),
		getVolume: func() float64 { return 1 },
	}
	out := make([]byte, 4)
	v.Read(out)
	if !bytes.Equal(out, raw) {
		t.Errorf("full volume must pass samples through unchanged, got %v", out)
	}
}

func TestSoundEngineWithoutContext(t *testing.T) {
	engine := NewSoundEngine(nil, 0, true)
	engine.Play(SoundApple) // must not panic without an audio device
	engine.SetEnabled(true)
	engine.SetVolume(0.5)
}

func TestMusicPlayerNilSafety(t *testing.T) {
	if NewMusicPlayer(nil, audioSampleRate, 0.5) != nil {
		t.Fatal("no audio context must mean no player")
	}
	var m *MusicPlayer
	m.StartGame()
	m.Stop()
	m.SetVolume(0.3)
}
