// Package config loads the user's configuration file and watches it
// for live reload.
//
// The file is TOML, with one [[binding]] table per key binding:
//
//	[[binding]]
//	keys = "ctrl+q"
//	command = "exit"
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/quilltext/quill/internal/input/keymap"
)

// Config is the user-editable configuration.
type Config struct {
	Bindings []keymap.Binding `toml:"binding"`
}

// DefaultPath returns the conventional location of the config file.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "quill", "config.toml"), nil
}

// Load reads the configuration at path. A missing file is not an
// error; it yields the zero config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}
