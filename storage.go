package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	appDirName    = "vsnake"
	scoreFilename = "snake_scores.txt"

	scoreSeparator  = " | "
	timestampLayout = "2006-01-02 15:04:05"
)

type Config struct {
	Theme  string `json:"theme"`
	Sound  bool   `json:"sound"`
	Music  bool   `json:"music"`
	Volume int    `json:"volume"`
	Sync   bool   `json:"sync"`
}

// ScoreEntry is one line of the score log. Entries are append-only and never
// edited; the leaderboard orders them by score, then recency.
type ScoreEntry struct {
	Timestamp string `json:"when"`
	Score     int    `json:"score"`
}

func defaultConfig() Config {
	return Config{
		Theme:  themes[0].Name,
		Sound:  true,
		Music:  false,
		Volume: 70,
	}
}

func loadConfig() (Config, error) {
	config := defaultConfig()
	path, err := configPath()
	if err != nil {
		return config, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return config, nil
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return defaultConfig(), err
	}
	if config.Theme == "" {
		config.Theme = themes[0].Name
	}
	if config.Volume < 0 {
		config.Volume = 0
	}
	if config.Volume > 100 {
		config.Volume = 100
	}
	return config, nil
}

func saveConfig(config Config) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func configPath() (string, error) {
	root, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(root, appDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// scoreFilePath resolves the score log location XDG-style:
// $XDG_DATA_HOME/vsnake, then $HOME/.local/share/vsnake, then the working
// directory as a last resort.
func scoreFilePath() string {
	var dataDir string
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		dataDir = filepath.Join(xdg, appDirName)
	} else if home := os.Getenv("HOME"); home != "" {
		dataDir = filepath.Join(home, ".local", "share", appDirName)
	}
	if dataDir != "" {
		if err := os.MkdirAll(dataDir, 0o755); err == nil {
			return filepath.Join(dataDir, scoreFilename)
		}
	}
	return scoreFilename
}

func currentTimestamp() string {
	return time.Now().Format(timestampLayout)
}

// saveScore appends one entry to the score log. Saving is best effort; an
// unwritable path loses the entry, not the session.
func saveScore(score int) {
	path := scoreFilePath()
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		DebugLogf("score save error: %v", err)
		return
	}
	defer file.Close()
	if _, err := fmt.Fprintf(file, "%s%s%d\n", currentTimestamp(), scoreSeparator, score); err != nil {
		DebugLogf("score write error: %v", err)
	}
}

// loadScores reads the score log, skipping lines that do not parse. A missing
// or unreadable file is an empty leaderboard.
func loadScores() ([]ScoreEntry, error) {
	file, err := os.Open(scoreFilePath())
	if err != nil {
		return []ScoreEntry{}, nil
	}
	defer file.Close()
	var scores []ScoreEntry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if entry, ok := parseScoreLine(scanner.Text()); ok {
			scores = append(scores, entry)
		}
	}
	sortScores(scores)
	return scores, nil
}

func parseScoreLine(line string) (ScoreEntry, bool) {
	sep := strings.Index(line, scoreSeparator)
	if sep < 0 {
		return ScoreEntry{}, false
	}
	score, err := strconv.Atoi(strings.TrimSpace(line[sep+len(scoreSeparator):]))
	if err != nil {
		return ScoreEntry{}, false
	}
	return ScoreEntry{Timestamp: line[:sep], Score: score}, true
}

// sortScores orders entries for display: highest score first, most recent
// first among equals. The timestamp layout compares correctly as a string.
func sortScores(scores []ScoreEntry) {
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Timestamp > scores[j].Timestamp
	})
}
