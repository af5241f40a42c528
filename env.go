package main

import "os"

// Overridable at build time with -ldflags "-X main.defaultScoreAPIURL=...".
var (
	defaultScoreAPIURL string
	defaultScoreAPIKey string
)

func loadEmbeddedEnv() {
	if defaultScoreAPIURL != "" {
		if _, exists := os.LookupEnv("VSNAKE_SCORE_API_URL"); !exists {
			_ = os.Setenv("VSNAKE_SCORE_API_URL", defaultScoreAPIURL)
		}
	}
	if defaultScoreAPIKey != "" {
		if _, exists := os.LookupEnv("VSNAKE_SCORE_API_KEY"); !exists {
			_ = os.Setenv("VSNAKE_SCORE_API_KEY", defaultScoreAPIKey)
		}
	}
}
