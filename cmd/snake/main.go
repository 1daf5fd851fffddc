//go:build wasip1

// Command snake is the program loaded into the arena host, one instance per
// snake. Build with GOOS=wasip1 GOARCH=wasm.
//
// Tuning comes from the environment since the host passes no arguments:
//
//	SNAKE_SPEAK_EVERY  ticks between status lines (0 disables)
//	SNAKE_LEAP_HEALTH  minimum health for leaping (0 disables)
//	SNAKE_SPLIT        split when long enough (true/false)
//	SNAKE_LOG_LEVEL    debug, info, warn or error
package main

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/brensch/snekarena/agent"
	"github.com/brensch/snekarena/agentlog"
	"github.com/brensch/snekarena/sdk"
)

func main() {
	defaults := agent.DefaultConfig()
	cfg := agent.Config{
		SpeakEvery: uint64(getEnvIntOrDefault("SNAKE_SPEAK_EVERY", int(defaults.SpeakEvery))),
		LeapHealth: uint32(getEnvIntOrDefault("SNAKE_LEAP_HEALTH", int(defaults.LeapHealth))),
		Split:      getEnvBoolOrDefault("SNAKE_SPLIT", defaults.Split),
	}

	client := sdk.Default()
	level := parseLevel(getEnvOrDefault("SNAKE_LOG_LEVEL", "info"))
	logger := slog.New(agentlog.NewHandler(client, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	logger.Info("start", "id", client.ID(), "team", client.TeamID())
	agent.New(client, cfg, logger).Run()
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvIntOrDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func getEnvBoolOrDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
