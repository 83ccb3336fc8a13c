package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Environment variable names.
const (
	EnvBank     = "IOEQUIZ_BANK"
	EnvPlayer   = "IOEQUIZ_PLAYER"
	EnvSeed     = "IOEQUIZ_SEED"
	EnvLogFile  = "IOEQUIZ_LOG_FILE"
	EnvLogLevel = "IOEQUIZ_LOG_LEVEL"
	EnvAudioCmd = "IOEQUIZ_AUDIO_CMD"
)

// MaxPlayerNameLen bounds the player name shown in the header.
const MaxPlayerNameLen = 24

// Config holds the runtime settings of a quiz run.
type Config struct {
	// BankPath is the question bank file. Empty means the embedded sample.
	BankPath string

	// Player is the learner's display name. Empty means ask on the
	// welcome screen.
	Player string

	// Seed drives hint randomness. Zero means time-based.
	Seed uint64

	// LogFile receives structured logs. Empty discards them, because the
	// TUI owns the terminal.
	LogFile string

	// LogLevel is a logrus level name. Default: "info".
	LogLevel string

	// AudioCmd is the external command used to play audio prompts, e.g.
	// "mpv --really-quiet". Empty disables audio.
	AudioCmd string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
	}
}

// LoadDotEnv loads variables from a .env file in the working directory.
// Variables already set in the environment win. A missing file is not an
// error.
func LoadDotEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for unset values.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()

	cfg.BankPath = getEnv(EnvBank, cfg.BankPath)
	cfg.Player = getEnv(EnvPlayer, cfg.Player)
	cfg.LogFile = getEnv(EnvLogFile, cfg.LogFile)
	cfg.LogLevel = getEnv(EnvLogLevel, cfg.LogLevel)
	cfg.AudioCmd = getEnv(EnvAudioCmd, cfg.AudioCmd)

	if s := os.Getenv(EnvSeed); s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("%s: invalid seed %q: %w", EnvSeed, s, err)
		}
		cfg.Seed = seed
	}

	return cfg, nil
}

// Validate checks the settings that can be checked without side effects.
func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if len([]rune(c.Player)) > MaxPlayerNameLen {
		return fmt.Errorf("player name longer than %d characters", MaxPlayerNameLen)
	}
	if c.BankPath != "" {
		info, err := os.Stat(c.BankPath)
		if err != nil {
			return fmt.Errorf("bank: %w", err)
		}
		if info.IsDir() {
			return fmt.Errorf("bank: %s is a directory", c.BankPath)
		}
	}
	return nil
}

// EffectiveSeed returns the configured seed, or a time-based one when
// none was set.
func (c Config) EffectiveSeed() uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(time.Now().UnixNano())
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
