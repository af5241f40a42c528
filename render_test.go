package main

import (
	"strings"
	"testing"
)

func TestRenderBoardShape(t *testing.T) {
	g := testGame(30)
	board := renderBoard(g, themes[0])
	lines := strings.Split(board, "\n")
	if len(lines) != boardHeight+2 {
		t.Fatalf("expected %d lines, got %d", boardHeight+2, len(lines))
	}
	if !strings.Contains(lines[0], "#") || !strings.Contains(lines[len(lines)-1], "#") {
		t.Error("board must be framed by border rows")
	}
	if got := strings.Count(board, "OO"); got != 1 {
		t.Errorf("expected exactly one head glyph, found %d", got)
	}
	if got := strings.Count(board, "oo"); got != len(g.Snake)-1 {
		t.Errorf("expected %d body glyphs, found %d", len(g.Snake)-1, got)
	}
	if got := strings.Count(board, "@@"); got != 1 {
		t.Errorf("expected exactly one apple glyph, found %d", got)
	}
}

func TestRenderBoardPauseBanner(t *testing.T) {
	g := testGame(31)
	if board := renderBoard(g, themes[0]); strings.Contains(board, "PAUSED") {
		t.Fatal("unpaused board must not show the banner")
	}
	g.Paused = true
	if board := renderBoard(g, themes[0]); !strings.Contains(board, "PAUSED") {
		t.Error("paused board must show the banner")
	}
}

func TestViewGame(t *testing.T) {
	m := Model{screen: screenGame, game: testGame(32), width: 100, height: 40}
	out := viewGame(m)
	if !strings.Contains(out, "Score: 0") {
		t.Error("game view must show the score line")
	}
	if !strings.Contains(out, "Pause") {
		t.Error("game view must show the key help")
	}
	m.game = nil
	if viewGame(m) != "" {
		t.Error("game view without a session must be empty")
	}
}

func TestViewGameOver(t *testing.T) {
	g := testGame(33)
	g.Score = 120
	m := Model{screen: screenGameOver, game: g}
	out := viewGameOver(m)
	if !strings.Contains(out, "G A M E   O V E R") {
		t.Error("loss must show the game-over title")
	}
	if !strings.Contains(out, "Final Score: 120") {
		t.Error("end screen must show the final score")
	}

	g.Won = true
	if out := viewGameOver(m); !strings.Contains(out, "W I N") {
		t.Error("a won session must show the win title")
	}
}

func TestViewTooSmall(t *testing.T) {
	minW, minH := minGameSize()
	m := Model{screen: screenTooSmall, width: 30, height: 10}
	out := viewTooSmall(m)
	if !strings.Contains(out, "too small") {
		t.Error("expected the too-small warning")
	}
	want := "Minimum size: 60 x 23"
	if minW != 60 || minH != 23 {
		t.Fatalf("unexpected minimum size %d x %d", minW, minH)
	}
	if !strings.Contains(out, want) {
		t.Errorf("expected %q in the view", want)
	}
}

func TestViewScoresPaging(t *testing.T) {
	m := Model{screen: screenScores}
	for i := 0; i < scoresPageSize+3; i++ {
		m.scores = append(m.scores, ScoreEntry{Timestamp: "2024-01-01 00:00:00", Score: 100 - i})
	}
	out := viewScores(m)
	if !strings.Contains(out, "Leaderboard") {
		t.Error("expected the leaderboard title")
	}
	if got := strings.Count(out, "2024-01-01"); got != scoresPageSize {
		t.Errorf("expected one page of %d rows, got %d", scoresPageSize, got)
	}
	if !strings.Contains(out, "scroll") {
		t.Error("an overfull leaderboard must hint at scrolling")
	}

	m.scores = nil
	if out := viewScores(m); !strings.Contains(out, "no scores yet") {
		t.Error("an empty leaderboard needs a placeholder")
	}
}

func TestThemeIndexByName(t *testing.T) {
	for i, theme := range themes {
		if got := themeIndexByName(theme.Name); got != i {
			t.Errorf("themeIndexByName(%q) = %d, want %d", theme.Name, got, i)
		}
	}
	if got := themeIndexByName("No Such Theme"); got != -1 {
		t.Errorf("unknown theme must map to -1, got %d", got)
	}
}

func TestRenderMenuHighlight(t *testing.T) {
	out := renderMenu("Title", []string{"First", "Second"}, 1, "footer", themes[0])
	for _, want := range []string{"Title", "First", "Second", "footer"} {
		if !strings.Contains(out, want) {
			t.Errorf("menu output missing %q", want)
		}
	}
}

func TestRenderSyncLoader(t *testing.T) {
	tests := []struct {
		dots int
		want string
	}{
		{0, "Syncing"},
		{1, "Syncing."},
		{3, "Syncing..."},
		{4, "Syncing"},
		{-2, "Syncing"},
	}
	for _, tt := range tests {
		if got := renderSyncLoader(tt.dots); got != tt.want {
			t.Errorf("renderSyncLoader(%d) = %q, want %q", tt.dots, got, tt.want)
		}
	}
}
