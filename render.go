package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Name          string
	BorderColor   lipgloss.Color
	TextColor     lipgloss.Color
	AccentColor   lipgloss.Color
	HeadColors    [2]lipgloss.Color // alternated by the glow phase
	BodyColors    [4]lipgloss.Color // head-adjacent zone first, tail zone last
	AppleColor    lipgloss.Color
	AppleDimColor lipgloss.Color
	SparkleColors []lipgloss.Color
}

var themes = []Theme{
	{
		Name:          "Classic Green",
		BorderColor:   lipgloss.Color("36"),
		TextColor:     lipgloss.Color("250"),
		AccentColor:   lipgloss.Color("226"),
		HeadColors:    [2]lipgloss.Color{"46", "51"},
		BodyColors:    [4]lipgloss.Color{"46", "40", "34", "22"},
		AppleColor:    lipgloss.Color("196"),
		AppleDimColor: lipgloss.Color("88"),
		SparkleColors: []lipgloss.Color{"196", "203", "210", "203"},
	},
	{
		Name:          "Amber Terminal",
		BorderColor:   lipgloss.Color("214"),
		TextColor:     lipgloss.Color("223"),
		AccentColor:   lipgloss.Color("208"),
		HeadColors:    [2]lipgloss.Color{"220", "228"},
		BodyColors:    [4]lipgloss.Color{"220", "214", "172", "94"},
		AppleColor:    lipgloss.Color("202"),
		AppleDimColor: lipgloss.Color("130"),
		SparkleColors: []lipgloss.Color{"202", "208", "214", "208"},
	},
	{
		Name:          "Ocean Neon",
		BorderColor:   lipgloss.Color("33"),
		TextColor:     lipgloss.Color("159"),
		AccentColor:   lipgloss.Color("39"),
		HeadColors:    [2]lipgloss.Color{"51", "87"},
		BodyColors:    [4]lipgloss.Color{"45", "39", "33", "24"},
		AppleColor:    lipgloss.Color("213"),
		AppleDimColor: lipgloss.Color("96"),
		SparkleColors: []lipgloss.Color{"213", "219", "225", "219"},
	},
	{
		Name:          "Mono Matrix",
		BorderColor:   lipgloss.Color("250"),
		TextColor:     lipgloss.Color("245"),
		AccentColor:   lipgloss.Color("82"),
		HeadColors:    [2]lipgloss.Color{"255", "250"},
		BodyColors:    [4]lipgloss.Color{"252", "248", "244", "240"},
		AppleColor:    lipgloss.Color("82"),
		AppleDimColor: lipgloss.Color("28"),
		SparkleColors: []lipgloss.Color{"82", "118", "154", "118"},
	},
	{
		Name:          "Volcanic",
		BorderColor:   lipgloss.Color("203"),
		TextColor:     lipgloss.Color("223"),
		AccentColor:   lipgloss.Color("214"),
		HeadColors:    [2]lipgloss.Color{"208", "214"},
		BodyColors:    [4]lipgloss.Color{"202", "166", "124", "52"},
		AppleColor:    lipgloss.Color("226"),
		AppleDimColor: lipgloss.Color("100"),
		SparkleColors: []lipgloss.Color{"226", "220", "214", "220"},
	},
}

func themeIndexByName(name string) int {
	for i, theme := range themes {
		if theme.Name == name {
			return i
		}
	}
	return -1
}

const scoresPageSize = 10

// clampScoresOffset keeps a scroll offset within a leaderboard of the given
// length, so the visible window always slices inside the list.
func clampScoresOffset(offset, total int) int {
	max := total - scoresPageSize
	if max < 0 {
		max = 0
	}
	if offset > max {
		return max
	}
	if offset < 0 {
		return 0
	}
	return offset
}

func viewMenu(m Model) string {
	theme := themes[m.themeIndex]
	content := renderMenu("V S N A K E", menuItems, m.menuIndex, "Enter to select, 1-3 to jump, Q to quit", theme)
	return center(m.width, m.height, content)
}

func viewScores(m Model) string {
	theme := themes[m.themeIndex]
	var b strings.Builder
	b.WriteString(titleStyle(theme).Render("Leaderboard"))
	b.WriteString("\n\n")
	if len(m.scores) == 0 {
		b.WriteString("(no scores yet)\n")
	} else {
		start := clampScoresOffset(m.scoresOffset, len(m.scores))
		end := start + scoresPageSize
		if end > len(m.scores) {
			end = len(m.scores)
		}
		for i, entry := range m.scores[start:end] {
			line := fmt.Sprintf("%2d. %-19s  |  %6d", start+i+1, entry.Timestamp, entry.Score)
			b.WriteString(line)
			b.WriteString("\n")
		}
		if len(m.scores) > scoresPageSize {
			b.WriteString("\n")
			b.WriteString(helpStyle(theme).Render("Use Up/Down to scroll"))
			b.WriteString("\n")
		}
	}
	if m.syncWarning != "" {
		b.WriteString("\n")
		b.WriteString(warningStyle().Render(m.syncWarning))
		b.WriteString("\n")
	}
	if m.syncLoading {
		b.WriteString("\n")
		b.WriteString(helpStyle(theme).Render(renderSyncLoader(m.syncDots)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle(theme).Render("Enter: menu | Q: quit"))
	return center(m.width, m.height, b.String())
}

func viewConfig(m Model) string {
	theme := themes[m.themeIndex]
	items := make([]string, 0, len(configItems))
	for i, item := range configItems {
		switch i {
		case 0:
			items = append(items, fmt.Sprintf("%s: %s", item, m.config.Theme))
		case 1:
			items = append(items, fmt.Sprintf("%s: %s", item, onOff(m.config.Sound)))
		case 2:
			items = append(items, fmt.Sprintf("%s: %s", item, onOff(m.config.Music)))
		case 3:
			items = append(items, fmt.Sprintf("%s: %d%%", item, m.config.Volume))
		case 4:
			items = append(items, fmt.Sprintf("%s: %s", item, onOff(m.config.Sync)))
		}
	}
	content := renderMenu("Config", items, m.configIndex, "Enter to toggle, Left/Right to adjust, Esc to back", theme)
	return center(m.width, m.height, content)
}

func onOff(value bool) string {
	if value {
		return "ON"
	}
	return "OFF"
}

func viewGame(m Model) string {
	theme := themes[m.themeIndex]
	g := m.game
	if g == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(renderScoreLine(g, theme))
	b.WriteString("\n")
	b.WriteString(renderBoard(g, theme))
	b.WriteString("\n")
	b.WriteString(helpStyle(theme).Render("Move: WASD/HJKL/Arrows | P: Pause | R: Restart | Q: Quit"))
	return center(m.width, m.height, b.String())
}

// renderScoreLine styles the score with its flash bands: bright white in the
// first half of the flash window, accent in the second, plain accent at rest.
func renderScoreLine(g *Game, theme Theme) string {
	text := fmt.Sprintf("Score: %d", g.Score)
	switch {
	case g.ScoreFlashTimer > flashFrames/2:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true).Render(text)
	case g.ScoreFlashTimer > 0:
		return lipgloss.NewStyle().Foreground(theme.AccentColor).Bold(true).Render(text)
	default:
		return titleStyle(theme).Render(text)
	}
}

// renderBoard composes the full board from scratch each frame: border, every
// cell by occupant, and the pause banner spliced over the middle row. Nothing
// here mutates game state; the frame counter alone drives the phases.
func renderBoard(g *Game, theme Theme) string {
	border := lipgloss.NewStyle().Foreground(theme.BorderColor)
	horizontal := border.Render(strings.Repeat("#", boardWidth*2+4))
	side := border.Render("##")

	headGlow := blinkOn(g.FrameCount, headGlowPeriod)
	appleVisible := blinkOn(g.FrameCount, appleBlinkHalf)
	sparkle := theme.AppleColor
	if len(theme.SparkleColors) > 0 {
		sparkle = theme.SparkleColors[sparklePhase(g.FrameCount, appleSparklePeriod, len(theme.SparkleColors))]
	}

	grid := make(map[Cell]string, len(g.Snake)+1)
	bodyLen := len(g.Snake) - 1
	for i := 1; i < len(g.Snake); i++ {
		zone := 0
		if bodyLen > 0 {
			zone = (i - 1) * 4 / bodyLen
		}
		if zone > 3 {
			zone = 3
		}
		style := lipgloss.NewStyle().Foreground(theme.BodyColors[zone])
		if zone == 0 {
			style = style.Bold(true)
		}
		if zone == 3 {
			style = style.Faint(true)
		}
		grid[g.Snake[i]] = style.Render("oo")
	}

	headColor := theme.HeadColors[1]
	if headGlow {
		headColor = theme.HeadColors[0]
	}
	grid[g.Snake[0]] = lipgloss.NewStyle().Foreground(headColor).Bold(true).Render("OO")

	grid[g.Apple] = renderApple(g, theme, appleVisible, sparkle)

	var b strings.Builder
	b.WriteString(horizontal)
	b.WriteString("\n")
	pauseRow := -1
	if g.Paused {
		pauseRow = boardHeight / 2
	}
	for y := 0; y < boardHeight; y++ {
		if y == pauseRow {
			b.WriteString(renderPauseRow(theme, side))
			b.WriteString("\n")
			continue
		}
		b.WriteString(side)
		for x := 0; x < boardWidth; x++ {
			if cell, ok := grid[Cell{x, y}]; ok {
				b.WriteString(cell)
			} else {
				b.WriteString("  ")
			}
		}
		b.WriteString(side)
		b.WriteString("\n")
	}
	b.WriteString(horizontal)
	return b.String()
}

func renderApple(g *Game, theme Theme, visible bool, sparkle lipgloss.Color) string {
	switch {
	case g.AppleFlashTimer > flashFrames/2:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true).Render("@@")
	case g.AppleFlashTimer > 0:
		return lipgloss.NewStyle().Foreground(theme.AccentColor).Bold(true).Render("@@")
	case visible:
		return lipgloss.NewStyle().Foreground(sparkle).Bold(true).Render("@@")
	default:
		return lipgloss.NewStyle().Foreground(theme.AppleDimColor).Faint(true).Render("@@")
	}
}

func renderPauseRow(theme Theme, side string) string {
	message := " PAUSED -- Press P to resume "
	inner := boardWidth * 2
	pad := inner - len(message)
	if pad < 0 {
		message = message[:inner]
		pad = 0
	}
	left := pad / 2
	right := pad - left
	banner := lipgloss.NewStyle().Foreground(theme.AccentColor).Bold(true).Reverse(true).Render(message)
	return side + strings.Repeat(" ", left) + banner + strings.Repeat(" ", right) + side
}

func viewGameOver(m Model) string {
	theme := themes[m.themeIndex]
	won := m.game != nil && m.game.Won
	score := 0
	if m.game != nil {
		score = m.game.Score
	}
	divider := lipgloss.NewStyle().Foreground(theme.BorderColor).Render(strings.Repeat("=", 29))
	title := warningStyle().Render("G A M E   O V E R")
	if won {
		title = lipgloss.NewStyle().Foreground(theme.HeadColors[0]).Bold(true).Render("Y O U   W I N !")
	}
	var b strings.Builder
	b.WriteString(divider)
	b.WriteString("\n")
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(divider)
	b.WriteString("\n\n")
	b.WriteString(highlightStyle(theme).Render(fmt.Sprintf("Final Score: %d", score)))
	b.WriteString("\n\n")
	b.WriteString(titleStyle(theme).Render("Top Scores:"))
	b.WriteString("\n")
	if len(m.scores) == 0 {
		b.WriteString("(no scores yet)\n")
	}
	limit := len(m.scores)
	if limit > 10 {
		limit = 10
	}
	for i, entry := range m.scores[:limit] {
		b.WriteString(fmt.Sprintf("%2d. %-19s  |  %6d", i+1, entry.Timestamp, entry.Score))
		b.WriteString("\n")
	}
	if m.syncWarning != "" {
		b.WriteString("\n")
		b.WriteString(warningStyle().Render(m.syncWarning))
		b.WriteString("\n")
	}
	if m.syncLoading {
		b.WriteString("\n")
		b.WriteString(helpStyle(theme).Render(renderSyncLoader(m.syncDots)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle(theme).Render("R: play again | Enter: menu | Q: quit"))
	return center(m.width, m.height, b.String())
}

func viewResized(m Model) string {
	theme := themes[m.themeIndex]
	var b strings.Builder
	b.WriteString(warningStyle().Render("Terminal resized during game"))
	b.WriteString("\n\n")
	b.WriteString(helpStyle(theme).Render("R: play again | Enter: menu | Q: quit"))
	return center(m.width, m.height, b.String())
}

func viewTooSmall(m Model) string {
	theme := themes[m.themeIndex]
	minW, minH := minGameSize()
	var b strings.Builder
	b.WriteString(warningStyle().Render("Terminal too small!"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Minimum size: %d x %d. Current: %d x %d.", minW, minH, m.width, m.height))
	b.WriteString("\n\n")
	b.WriteString(helpStyle(theme).Render("Resize your terminal, then press R to retry or Q to quit."))
	return center(m.width, m.height, b.String())
}

// minGameSize is the smallest terminal that fits the board plus its chrome
// (side borders, score line, instructions, margins).
func minGameSize() (int, int) {
	return boardWidth*2 + 8, boardHeight + 7
}

func titleStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.AccentColor).Bold(true)
}

func highlightStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.AccentColor).Bold(true)
}

func helpStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.TextColor)
}

func warningStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
}

func center(width, height int, content string) string {
	if width == 0 || height == 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func renderSyncLoader(dots int) string {
	if dots < 0 {
		dots = 0
	}
	return "Syncing" + strings.Repeat(".", dots%4)
}

func renderMenu(title string, items []string, selected int, footer string, theme Theme) string {
	maxWidth := lipgloss.Width(title)
	for _, item := range items {
		if width := lipgloss.Width(item); width > maxWidth {
			maxWidth = width
		}
	}
	if width := lipgloss.Width(footer); width > maxWidth {
		maxWidth = width
	}
	lineStyle := lipgloss.NewStyle().Width(maxWidth).Align(lipgloss.Center)
	var b strings.Builder
	b.WriteString(lineStyle.Render(titleStyle(theme).Render(title)))
	b.WriteString("\n\n")
	for i, item := range items {
		if i == selected {
			b.WriteString(lineStyle.Render(highlightStyle(theme).Render(item)))
		} else {
			b.WriteString(lineStyle.Render(item))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(lineStyle.Render(helpStyle(theme).Render(footer)))
	return b.String()
}
