package main

import (
	"encoding/binary"
	"io"
	"math"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ebitengine/oto/v3"
)

// gameMelody is the looping background tune, synthesized at play time.
// Frequencies in Hz; zero means a rest.
var gameMelody = []melodyNote{
	{330, 180 * time.Millisecond},
	{392, 180 * time.Millisecond},
	{440, 360 * time.Millisecond},
	{392, 180 * time.Millisecond},
	{330, 180 * time.Millisecond},
	{294, 360 * time.Millisecond},
	{0, 120 * time.Millisecond},
	{330, 180 * time.Millisecond},
	{440, 180 * time.Millisecond},
	{494, 360 * time.Millisecond},
	{440, 180 * time.Millisecond},
	{392, 180 * time.Millisecond},
	{330, 540 * time.Millisecond},
	{0, 240 * time.Millisecond},
}

type melodyNote struct {
	frequency float64
	duration  time.Duration
}

type MusicPlayer struct {
	ctx        *oto.Context
	sampleRate int
	mu         sync.Mutex
	player     *oto.Player
	volume     float64
}

func NewMusicPlayer(ctx *oto.Context, sampleRate int, volume float64) *MusicPlayer {
	if ctx == nil {
		return nil
	}
	if sampleRate <= 0 {
		sampleRate = audioSampleRate
	}
	return &MusicPlayer{
		ctx:        ctx,
		sampleRate: sampleRate,
		volume:     clampVolume(volume),
	}
}

func (m *MusicPlayer) SetVolume(volume float64) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.volume = clampVolume(volume)
	m.mu.Unlock()
}

func (m *MusicPlayer) StartGameCmd() tea.Cmd {
	return func() tea.Msg {
		m.StartGame()
		return nil
	}
}

// StartGame begins the looping melody. Starting while already playing is a
// no-op, so restarts mid-session do not stutter the loop.
func (m *MusicPlayer) StartGame() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.player != nil {
		return
	}
	loop := &loopReader{buffer: renderMelody(gameMelody, m.sampleRate)}
	player := m.ctx.NewPlayer(&volumeReader{
		reader:    loop,
		getVolume: m.volumeValue,
	})
	player.Play()
	m.player = player
}

func (m *MusicPlayer) Stop() {
	if m == nil {
		return
	}
	m.mu.Lock()
	if m.player != nil {
		_ = m.player.Close()
		m.player = nil
	}
	m.mu.Unlock()
}

func (m *MusicPlayer) volumeValue() float64 {
	m.mu.Lock()
	volume := m.volume
	m.mu.Unlock()
	return volume
}

// renderMelody synthesizes the note table to 16-bit stereo PCM, with a short
// fade at each note edge to avoid clicks.
func renderMelody(notes []melodyNote, sampleRate int) []byte {
	const maxInt16 = 1<<15 - 1
	const noteVolume = 0.16
	totalSamples := 0
	for _, note := range notes {
		totalSamples += int(float64(sampleRate) * note.duration.Seconds())
	}
	buffer := make([]byte, totalSamples*4)
	index := 0
	fadeSamples := int(float64(sampleRate) * 0.004)
	for _, note := range notes {
		samples := int(float64(sampleRate) * note.duration.Seconds())
		for i := 0; i < samples; i++ {
			var value int16
			if note.frequency > 0 {
				env := 1.0
				if fadeSamples > 0 {
					if i < fadeSamples {
						env = float64(i) / float64(fadeSamples)
					} else if i > samples-fadeSamples {
						env = float64(samples-i) / float64(fadeSamples)
					}
					if env < 0 {
						env = 0
					}
				}
				sample := math.Sin(2 * math.Pi * note.frequency * float64(i) / float64(sampleRate))
				value = int16(sample * noteVolume * env * maxInt16)
			}
			binary.LittleEndian.PutUint16(buffer[index:], uint16(value))
			binary.LittleEndian.PutUint16(buffer[index+2:], uint16(value))
			index += 4
		}
	}
	return buffer
}

// loopReader replays its buffer forever.
type loopReader struct {
	buffer []byte
	pos    int
}

func (l *loopReader) Read(p []byte) (int, error) {
	if len(l.buffer) == 0 {
		return 0, io.EOF
	}
	n := 0
	for n < len(p) {
		copied := copy(p[n:], l.buffer[l.pos:])
		n += copied
		l.pos += copied
		if l.pos >= len(l.buffer) {
			l.pos = 0
		}
	}
	return n, nil
}

// volumeReader scales 16-bit little-endian samples by the current volume on
// the way through, so volume changes apply to audio already queued.
type volumeReader struct {
	reader    io.Reader
	getVolume func() float64
}

func (v *volumeReader) Read(p []byte) (int, error) {
	n, err := v.reader.Read(p)
	volume := clampVolume(v.getVolume())
	if volume >= 0.999 {
		return n, err
	}
	for i := 0; i+1 < n; i += 2 {
		sample := int16(binary.LittleEndian.Uint16(p[i:]))
		scaled := int16(float64(sample) * volume)
		binary.LittleEndian.PutUint16(p[i:], uint16(scaled))
	}
	return n, err
}
