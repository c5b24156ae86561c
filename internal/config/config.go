package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all server tunables. Values are per-process; per-call
// bounds (depth, breadth) are clamped against the caps here.
type Config struct {
	BaseURL        string
	AlgoliaURL     string
	RequestTimeout time.Duration
	MaxConcurrent  int

	DefaultMaxDepth   int
	DefaultMaxBreadth int
	MaxDepthCap       int
	MaxBreadthCap     int

	DefaultStoryLimit int
	MaxStoryLimit     int

	LogLevel string
}

func Default() Config {
	return Config{
		BaseURL:           "https://hacker-news.firebaseio.com/v0",
		AlgoliaURL:        "https://hn.algolia.com/api/v1",
		RequestTimeout:    10 * time.Second,
		MaxConcurrent:     10,
		DefaultMaxDepth:   3,
		DefaultMaxBreadth: 20,
		MaxDepthCap:       10,
		MaxBreadthCap:     50,
		DefaultStoryLimit: 10,
		MaxStoryLimit:     100,
		LogLevel:          "info",
	}
}

// FromEnv returns the default config with HNMCP_* environment overrides
// applied. Unset or unparsable variables leave the default in place.
func FromEnv() Config {
	cfg := Default()
	envString(&cfg.BaseURL, "HNMCP_BASE_URL")
	envString(&cfg.AlgoliaURL, "HNMCP_ALGOLIA_URL")
	envDuration(&cfg.RequestTimeout, "HNMCP_REQUEST_TIMEOUT")
	envInt(&cfg.MaxConcurrent, "HNMCP_MAX_CONCURRENT")
	envInt(&cfg.DefaultMaxDepth, "HNMCP_DEFAULT_MAX_DEPTH")
	envInt(&cfg.DefaultMaxBreadth, "HNMCP_DEFAULT_MAX_BREADTH")
	envInt(&cfg.MaxDepthCap, "HNMCP_MAX_DEPTH_CAP")
	envInt(&cfg.MaxBreadthCap, "HNMCP_MAX_BREADTH_CAP")
	envInt(&cfg.DefaultStoryLimit, "HNMCP_DEFAULT_STORY_LIMIT")
	envInt(&cfg.MaxStoryLimit, "HNMCP_MAX_STORY_LIMIT")
	envString(&cfg.LogLevel, "HNMCP_LOG_LEVEL")
	return cfg
}

func envString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			*dst = n
		}
	}
}

func envDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			*dst = d
		}
	}
}
