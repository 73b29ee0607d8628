package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/eyefictl/internal/protocol/session"
)

type fileConfig struct {
	PollRetries    int    `toml:"poll_retries"`
	PollInterval   string `toml:"poll_interval"`
	PollIntervalMS int64  `toml:"poll_interval_ms"`
	BufSize        int    `toml:"buf_size"`
	Mount          string `toml:"mount"`
}

// loadConfig overlays a TOML file onto the session defaults. The second
// return value is an optional fixed mount point that skips the card scan.
func loadConfig(path string) (session.Config, string, error) {
	cfg := session.DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return session.Config{}, "", fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("poll_retries") {
		if raw.PollRetries <= 0 {
			return session.Config{}, "", fmt.Errorf("poll_retries must be positive, got %d", raw.PollRetries)
		}
		cfg.PollRetries = raw.PollRetries
	}

	if meta.IsDefined("poll_interval") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.PollInterval))
		if err != nil {
			return session.Config{}, "", fmt.Errorf("parse poll_interval: %w", err)
		}
		cfg.PollInterval = d
	}

	if meta.IsDefined("poll_interval_ms") {
		cfg.PollInterval = time.Duration(raw.PollIntervalMS) * time.Millisecond
	}

	if meta.IsDefined("buf_size") {
		cfg.BufSize = raw.BufSize
	}

	mnt := ""
	if meta.IsDefined("mount") {
		mnt = strings.TrimSpace(raw.Mount)
	}

	return cfg, mnt, nil
}
