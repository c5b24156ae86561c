// Command hnmcp is an MCP server exposing read-only Hacker News tools
// over stdio: story lists, single items, user profiles, full-text
// search, and bounded nested comment threads.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/fragmede/hnmcp/internal/config"
	"github.com/fragmede/hnmcp/internal/hn"
	"github.com/fragmede/hnmcp/internal/tools"
)

func main() {
	// Optional .env for local development; real env vars win.
	_ = godotenv.Load()
	cfg := config.FromEnv()

	// stdout carries the MCP transport, so all logging goes to stderr.
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	client := hn.NewClient(cfg)
	s := tools.New(cfg, client, logger)

	logger.Info().Str("version", tools.Version).Msg("serving hnmcp over stdio")
	if err := tools.ServeStdio(s); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}
