package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var (
	debugEnabled bool
	debugMu      sync.Mutex
	debugFile    *os.File
	debugStart   time.Time
)

func EnableDebugLogging(enabled bool) {
	debugEnabled = enabled
	if enabled && debugStart.IsZero() {
		debugStart = time.Now()
	}
}

func DebugLogf(format string, args ...any) {
	if !debugEnabled {
		return
	}
	debugMu.Lock()
	defer debugMu.Unlock()
	if debugFile == nil {
		path := filepath.Join(os.TempDir(), "vsnake-debug.log")
		file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return
		}
		debugFile = file
	}
	timestamp := time.Now().Format(time.RFC3339)
	message := fmt.Sprintf(format, args...)
	message = strings.ReplaceAll(message, "\n", " ")
	// Elapsed time since enable makes tick-loop timing readable at a glance.
	elapsed := time.Since(debugStart).Seconds()
	_, _ = fmt.Fprintf(debugFile, "%s +%09.3fs %s\n", timestamp, elapsed, message)
}
