package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvBank, EnvPlayer, EnvSeed, EnvLogFile, EnvLogLevel, EnvAudioCmd} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.BankPath)
	assert.Zero(t, cfg.Seed)
	assert.NoError(t, cfg.Validate())
}

func TestFromEnv(t *testing.T) {
	clearEnv(t)
	bank := filepath.Join(t.TempDir(), "bank.json")
	require.NoError(t, os.WriteFile(bank, []byte("{}"), 0o644))

	t.Setenv(EnvBank, bank)
	t.Setenv(EnvPlayer, "Minh")
	t.Setenv(EnvSeed, "42")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvAudioCmd, "mpv --really-quiet")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, bank, cfg.BankPath)
	assert.Equal(t, "Minh", cfg.Player)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, uint64(42), cfg.EffectiveSeed())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "mpv --really-quiet", cfg.AudioCmd)
	assert.NoError(t, cfg.Validate())
}

func TestFromEnv_BadSeed(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvSeed, "lots")

	_, err := FromEnv()
	assert.ErrorContains(t, err, EnvSeed)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		mod  func(*Config)
		ok   bool
	}{
		{"defaults", func(*Config) {}, true},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, false},
		{"missing bank", func(c *Config) { c.BankPath = filepath.Join(dir, "nope.json") }, false},
		{"bank is dir", func(c *Config) { c.BankPath = dir }, false},
		{"long name", func(c *Config) { c.Player = "abcdefghijklmnopqrstuvwxyz" }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mod(&cfg)
			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv(EnvPlayer)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(EnvPlayer+"=Lan\n"), 0o644))

	require.NoError(t, LoadDotEnv(path))
	t.Cleanup(func() { os.Unsetenv(EnvPlayer) })

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "Lan", cfg.Player)
}

func TestLoadDotEnv_Missing(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
}
