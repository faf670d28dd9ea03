// Package config reads process configuration from the environment.
package config

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the settings shared by the command line tools. Flags
// override these values where a command offers one.
type Config struct {
	ContentDir string `env:"CARDCRAWL_CONTENT_DIR"`
	Seed       int64  `env:"CARDCRAWL_SEED"`
	HandSize   int    `env:"CARDCRAWL_HAND_SIZE" envDefault:"5"`
	LogLevel   string `env:"CARDCRAWL_LOG_LEVEL" envDefault:"info"`
	Hero       string `env:"CARDCRAWL_HERO" envDefault:"ironclad"`
	MaxTurns   int    `env:"CARDCRAWL_MAX_TURNS" envDefault:"50"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// NewLogger builds a console logger writing to stderr at the configured
// level. Stdout stays free for transcripts and the MCP stdio transport.
func (c Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// RunSeed returns the configured seed, or a fresh random one when unset.
func (c Config) RunSeed() (int64, error) {
	if c.Seed != 0 {
		return c.Seed, nil
	}
	return NewSeed()
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
