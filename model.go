package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type Screen int

const (
	screenMenu Screen = iota
	screenGame
	screenGameOver
	screenResized
	screenTooSmall
	screenScores
	screenConfig
)

type tickMsg time.Time
type soundMsg struct{}
type syncTickMsg struct{}
type scoresLoadedMsg struct {
	scores []ScoreEntry
	err    error
}
type scoreUploadedMsg struct {
	err error
}

// renderInterval is the fixed cadence of the render loop. Simulation steps
// run zero or more times per render tick, paid for out of the accumulator.
const renderInterval = 50 * time.Millisecond

// A stall (terminal resize drag, suspended process) must not be repaid as a
// burst of catch-up steps, so the accumulator is capped at a few intervals.
const maxPendingIntervals = 3

type Model struct {
	screen       Screen
	width        int
	height       int
	menuIndex    int
	configIndex  int
	scoresOffset int
	themeIndex   int
	config       Config
	scores       []ScoreEntry
	game         *Game

	// Terminal dimensions captured when the play session started. Any
	// mid-session change ends the session on the Resized screen.
	sessionWidth  int
	sessionHeight int

	// Move scheduler state.
	lastTick time.Time
	acc      time.Duration

	sound       *SoundEngine
	music       *MusicPlayer
	sync        *ScoreSync
	syncWarning string
	syncLoading bool
	syncDots    int
}

func NewModel() Model {
	config, _ := loadConfig()
	index := themeIndexByName(config.Theme)
	if index < 0 {
		index = 0
		config.Theme = themes[index].Name
	}
	sync := NewScoreSyncFromEnv(config.Sync)
	scores, _ := loadScores()
	ctx, sampleRate, err := initAudioContext()
	if err != nil {
		DebugLogf("audio context init error: %v", err)
	}
	sound := NewSoundEngine(ctx, sampleRate, config.Sound)
	sound.SetVolume(volumeFromPercent(config.Volume))
	return Model{
		screen:     screenMenu,
		config:     config,
		scores:     scores,
		themeIndex: index,
		sound:      sound,
		sync:       sync,
		music:      NewMusicPlayer(ctx, sampleRate, volumeFromPercent(config.Volume)),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.screen == screenGame && (msg.Width != m.sessionWidth || msg.Height != m.sessionHeight) {
			DebugLogf("resize during play: %dx%d -> %dx%d", m.sessionWidth, m.sessionHeight, msg.Width, msg.Height)
			return m, m.endSession(screenResized)
		}
		return m, nil
	case tickMsg:
		return m.updateTick(time.Time(msg))
	case soundMsg:
		return m, nil
	case syncTickMsg:
		if m.syncLoading {
			m.syncDots = (m.syncDots + 1) % 4
			return m, syncTickCmd()
		}
		return m, nil
	case scoresLoadedMsg:
		if msg.err != nil {
			DebugLogf("scores fetch error: %v", msg.err)
			m.syncWarning = "Offline: showing local scores."
			m.syncLoading = false
			return m, nil
		}
		m.syncWarning = ""
		m.syncLoading = false
		m.scores = msg.scores
		// The remote list can be shorter than the local log the user was
		// scrolling; the offset must stay within the new list.
		m.scoresOffset = clampScoresOffset(m.scoresOffset, len(m.scores))
		return m, nil
	case scoreUploadedMsg:
		if msg.err != nil {
			DebugLogf("score upload error: %v", msg.err)
			m.syncWarning = "Offline: score not synced."
		}
		m.syncLoading = false
		return m, nil
	case tea.KeyMsg:
		switch m.screen {
		case screenMenu:
			return m, m.updateMenu(msg)
		case screenGame:
			return m, m.updateGame(msg)
		case screenGameOver:
			return m, m.updateEndScreen(msg)
		case screenResized:
			return m, m.updateEndScreen(msg)
		case screenTooSmall:
			return m, m.updateEndScreen(msg)
		case screenScores:
			return m, m.updateScores(msg)
		case screenConfig:
			return m, m.updateConfig(msg)
		}
	}
	return m, nil
}

func (m Model) View() string {
	switch m.screen {
	case screenMenu:
		return viewMenu(m)
	case screenGame:
		return viewGame(m)
	case screenGameOver:
		return viewGameOver(m)
	case screenResized:
		return viewResized(m)
	case screenTooSmall:
		return viewTooSmall(m)
	case screenScores:
		return viewScores(m)
	case screenConfig:
		return viewConfig(m)
	default:
		return ""
	}
}

// updateTick runs the move scheduler for one render frame: accumulate the
// wall-clock time since the previous frame, then pay for as many simulation
// steps as the accumulator covers at the current move interval.
func (m Model) updateTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.screen != screenGame || m.game == nil || m.game.Over {
		return m, nil
	}
	if m.lastTick.IsZero() {
		m.lastTick = now
		return m, tickCmd()
	}
	elapsed := now.Sub(m.lastTick)
	m.lastTick = now

	m.game.AdvanceFrame()

	if m.game.Paused {
		m.acc = 0
		return m, tickCmd()
	}

	interval := m.game.MoveInterval()
	m.acc += elapsed
	if max := time.Duration(maxPendingIntervals) * interval; m.acc > max {
		m.acc = max
	}

	var cmds []tea.Cmd
	for m.acc >= interval && !m.game.Over {
		outcome := m.game.Step()
		m.acc -= interval
		m.game.PromoteQueued()
		// Interval depends on score and direction, both of which the
		// step may have changed.
		interval = m.game.MoveInterval()

		if outcome != StepContinue {
			return m, m.finishSession(outcome)
		}
	}
	if m.game.Score != m.game.prevScore && m.config.Sound {
		cmds = append(cmds, playSound(m.sound, SoundApple))
	}
	cmds = append(cmds, tickCmd())
	return m, tea.Batch(cmds...)
}

func (m *Model) updateMenu(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
			return m.menuMoveSound()
		}
	case "down", "j":
		if m.menuIndex < len(menuItems)-1 {
			m.menuIndex++
			return m.menuMoveSound()
		}
	case "enter", " ":
		return m.selectMenuItem(m.menuIndex)
	case "1":
		return m.selectMenuItem(0)
	case "2":
		return m.selectMenuItem(1)
	case "3":
		return m.selectMenuItem(2)
	case "q", "esc":
		return tea.Quit
	}
	return nil
}

func (m *Model) selectMenuItem(index int) tea.Cmd {
	m.menuIndex = index
	var cmd tea.Cmd
	if m.config.Sound {
		cmd = playSound(m.sound, SoundMenuSelect)
	}
	switch index {
	case 0:
		return tea.Batch(cmd, m.startGame())
	case 1:
		m.scoresOffset = 0
		return tea.Batch(cmd, m.openScores())
	case 2:
		m.screen = screenConfig
		return cmd
	case 3:
		return tea.Quit
	}
	return cmd
}

func (m *Model) openScores() tea.Cmd {
	m.screen = screenScores
	if m.sync != nil && m.sync.Enabled() {
		m.syncLoading = true
		m.syncDots = 0
		return tea.Batch(m.sync.FetchScoresCmd(), syncTickCmd())
	}
	m.scores, _ = loadScores()
	return nil
}

// startGame begins a fresh play session, or lands on the TooSmall screen
// when the terminal cannot fit the board plus its chrome.
func (m *Model) startGame() tea.Cmd {
	minW, minH := minGameSize()
	if m.width > 0 && m.height > 0 && (m.width < minW || m.height < minH) {
		m.screen = screenTooSmall
		m.music.Stop()
		return nil
	}
	m.game = NewGame(nil)
	m.sessionWidth = m.width
	m.sessionHeight = m.height
	m.lastTick = time.Time{}
	m.acc = 0
	m.screen = screenGame
	var musicCmd tea.Cmd
	if m.config.Music {
		musicCmd = m.music.StartGameCmd()
	}
	return tea.Batch(tickCmd(), musicCmd)
}

// endSession abandons the current session without recording a score.
func (m *Model) endSession(next Screen) tea.Cmd {
	m.screen = next
	m.game = nil
	m.music.Stop()
	return nil
}

// finishSession records the terminal outcome of a session: the score is
// persisted (best effort), the leaderboard is refreshed, and the end screen
// takes over.
func (m *Model) finishSession(outcome StepOutcome) tea.Cmd {
	m.screen = screenGameOver
	m.music.Stop()
	score := m.game.Score
	saveScore(score)
	m.scores, _ = loadScores()
	var cmds []tea.Cmd
	if m.config.Sound {
		event := SoundGameOver
		if outcome == StepWon {
			event = SoundWin
		}
		cmds = append(cmds, playSound(m.sound, event))
	}
	if m.sync != nil && m.sync.Enabled() {
		m.syncLoading = true
		m.syncDots = 0
		entry := ScoreEntry{Timestamp: currentTimestamp(), Score: score}
		cmds = append(cmds, m.sync.UploadScoreCmd(entry), m.sync.FetchScoresCmd(), syncTickCmd())
	}
	return tea.Batch(cmds...)
}

func (m *Model) updateGame(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "Q":
		return tea.Quit
	case "esc":
		return m.endSession(screenMenu)
	case "r", "R":
		return m.startGame()
	case "p", "P":
		m.game.Paused = !m.game.Paused
		if m.config.Sound {
			return playSound(m.sound, SoundPause)
		}
		return nil
	}
	if m.game.Paused {
		return nil
	}
	dir, ok := directionForKey(msg.String())
	if !ok {
		return nil
	}
	if m.game.TryChangeDirection(dir) && m.config.Sound {
		return playSound(m.sound, SoundTurn)
	}
	return nil
}

// directionForKey maps arrows, WASD and HJKL (either case) onto the four
// logical directions.
func directionForKey(key string) (Direction, bool) {
	switch key {
	case "up", "w", "W", "k", "K":
		return DirUp, true
	case "down", "s", "S", "j", "J":
		return DirDown, true
	case "left", "a", "A", "h", "H":
		return DirLeft, true
	case "right", "d", "D", "l", "L":
		return DirRight, true
	}
	return 0, false
}

// updateEndScreen handles GameOver, Resized and TooSmall alike: restart,
// back to menu, or quit.
func (m *Model) updateEndScreen(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "r", "R":
		return m.startGame()
	case "enter", " ", "esc":
		m.screen = screenMenu
		m.game = nil
		if m.config.Sound {
			return playSound(m.sound, SoundMenuSelect)
		}
	case "q", "Q":
		return tea.Quit
	}
	return nil
}

func (m *Model) updateScores(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "Q":
		return tea.Quit
	case "esc", "enter":
		m.screen = screenMenu
		if m.config.Sound {
			return playSound(m.sound, SoundMenuSelect)
		}
	case "up", "k":
		if m.scoresOffset > 0 {
			m.scoresOffset--
		}
	case "down", "j":
		m.scoresOffset = clampScoresOffset(m.scoresOffset+1, len(m.scores))
	}
	return nil
}

func (m *Model) updateConfig(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.configIndex > 0 {
			m.configIndex--
			return m.menuMoveSound()
		}
	case "down", "j":
		if m.configIndex < len(configItems)-1 {
			m.configIndex++
			return m.menuMoveSound()
		}
	case "enter", " ":
		switch m.configIndex {
		case 0:
			m.cycleTheme(1)
		case 1:
			m.config.Sound = !m.config.Sound
			m.sound.SetEnabled(m.config.Sound)
			_ = saveConfig(m.config)
		case 2:
			m.config.Music = !m.config.Music
			_ = saveConfig(m.config)
			if !m.config.Music {
				m.music.Stop()
			}
		case 3:
			m.adjustVolume(5)
		case 4:
			m.config.Sync = !m.config.Sync
			if m.sync != nil {
				m.sync.SetEnabled(m.config.Sync)
			}
			_ = saveConfig(m.config)
		}
		if m.config.Sound {
			return playSound(m.sound, SoundMenuSelect)
		}
	case "left", "h":
		switch m.configIndex {
		case 0:
			m.cycleTheme(-1)
			return m.menuMoveSound()
		case 3:
			m.adjustVolume(-5)
			return m.menuMoveSound()
		}
	case "right", "l":
		switch m.configIndex {
		case 0:
			m.cycleTheme(1)
			return m.menuMoveSound()
		case 3:
			m.adjustVolume(5)
			return m.menuMoveSound()
		}
	case "q", "esc":
		m.screen = screenMenu
	}
	return nil
}

func (m *Model) cycleTheme(delta int) {
	m.themeIndex = (m.themeIndex + delta + len(themes)) % len(themes)
	m.config.Theme = themes[m.themeIndex].Name
	_ = saveConfig(m.config)
}

func (m *Model) adjustVolume(delta int) {
	volume := m.config.Volume + delta
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	if volume == m.config.Volume {
		return
	}
	m.config.Volume = volume
	m.sound.SetVolume(volumeFromPercent(volume))
	m.music.SetVolume(volumeFromPercent(volume))
	_ = saveConfig(m.config)
}

func (m *Model) menuMoveSound() tea.Cmd {
	if m.config.Sound {
		return playSound(m.sound, SoundMenuMove)
	}
	return nil
}

var menuItems = []string{
	"Play",
	"Leaderboard",
	"Config",
	"Quit",
}

var configItems = []string{
	"Theme",
	"Sound Effects",
	"Music",
	"Volume",
	"Score Sync",
}

func tickCmd() tea.Cmd {
	return tea.Tick(renderInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func syncTickCmd() tea.Cmd {
	return tea.Tick(300*time.Millisecond, func(time.Time) tea.Msg { return syncTickMsg{} })
}

func playSound(engine *SoundEngine, event SoundEvent) tea.Cmd {
	return func() tea.Msg {
		if engine != nil {
			engine.Play(event)
		}
		return soundMsg{}
	}
}

func volumeFromPercent(value int) float64 {
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	return float64(value) / 100
}
