package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ironsheep/blur-faces-mcp/internal/imaging"
	"github.com/ironsheep/blur-faces-mcp/internal/server"
)

// configFromEnv builds the server configuration from environment variables.
// getenv is os.Getenv outside of tests.
func configFromEnv(getenv func(string) string) (server.Config, error) {
	cfg := server.DefaultConfig()

	if getenv("BLUR_FACES_LOG_LEVEL") == "debug" {
		cfg.Debug = true
	}

	if suffix := getenv("BLUR_FACES_SUFFIX"); suffix != "" {
		cfg.OutputSuffix = suffix
	}

	if hex := getenv("BLUR_FACES_OVERLAY"); hex != "" {
		c, err := imaging.ParseColor(hex)
		if err != nil {
			return cfg, fmt.Errorf("BLUR_FACES_OVERLAY: %w", err)
		}
		cfg.Overlay = c
	}

	if size := getenv("BLUR_FACES_MAX_PREVIEW"); size != "" {
		w, h, err := parseSize(size)
		if err != nil {
			return cfg, fmt.Errorf("BLUR_FACES_MAX_PREVIEW: %w", err)
		}
		cfg.MaxPreviewWidth = w
		cfg.MaxPreviewHeight = h
	}

	return cfg, nil
}

// parseSize parses "WIDTHxHEIGHT", e.g. "1280x720". Both values must be positive.
func parseSize(s string) (int, int, error) {
	parts := strings.Split(strings.ToLower(s), "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size '%s': want WIDTHxHEIGHT", s)
	}
	w, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width in '%s': %w", s, err)
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height in '%s': %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid size '%s': dimensions must be positive", s)
	}
	return w, h, nil
}
