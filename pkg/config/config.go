// Package config loads the crush configuration file.
//
// The file is YAML. All keys are optional:
//
//	channel-buffer-size: 128
//	history: true
//	prompt: "crush> "
//	log: /tmp/crush.log
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	"src.crush.sh/pkg/eval/stream"
)

// Config keeps the settings read from the configuration file.
type Config struct {
	// Number of rows buffered between two stages of a job.
	ChannelBufferSize int `yaml:"channel-buffer-size"`
	// Whether interactive sessions record commands in the history database.
	History bool `yaml:"history"`
	// Prompt of interactive sessions.
	Prompt string `yaml:"prompt"`
	// A file to write debug log to. The -log flag takes precedence.
	Log string `yaml:"log"`
	// Path of the history database. The -db flag takes precedence.
	DB string `yaml:"db"`
}

// Default returns the configuration used when there is no configuration file.
func Default() *Config {
	return &Config{
		ChannelBufferSize: stream.DefaultBufferSize,
		History:           true,
		Prompt:            "crush> ",
	}
}

// Load reads the configuration file at path. Keys absent from the file keep
// their default values. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	} else if err != nil {
		return nil, err
	}
	if err := Parse(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML data into cfg and validates the result.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	if cfg.ChannelBufferSize < 1 {
		return fmt.Errorf("channel-buffer-size must be positive, got %d", cfg.ChannelBufferSize)
	}
	return nil
}

// Path returns the default path of the configuration file,
// $XDG_CONFIG_HOME/crush/config.yaml, falling back to ~/.config when
// XDG_CONFIG_HOME is not set.
func Path() (string, error) {
	dir, err := xdgDir("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "crush", "config.yaml"), nil
}

// DBPath returns the default path of the history database,
// $XDG_STATE_HOME/crush/db.bolt, falling back to ~/.local/state.
func DBPath() (string, error) {
	dir, err := xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "crush", "db.bolt"), nil
}

func xdgDir(env, fallback string) (string, error) {
	if dir := os.Getenv(env); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, fallback), nil
}
