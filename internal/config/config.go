// Package config loads the persisted colorize settings and merges them with
// command-line overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const appName = "colorize"

// File is the schema of the config file. Every field is optional; unset
// fields fall through to the built-in defaults.
type File struct {
	Delimiter *string `yaml:"delimiter,omitempty" toml:"delimiter,omitempty"`
	Column    *int    `yaml:"column,omitempty" toml:"column,omitempty"`
	Filter    *string `yaml:"filter,omitempty" toml:"filter,omitempty"`
	Debug     *bool   `yaml:"debug,omitempty" toml:"debug,omitempty"`
	MinColor  *uint8  `yaml:"min_color,omitempty" toml:"min_color,omitempty"`
	MaxColor  *uint8  `yaml:"max_color,omitempty" toml:"max_color,omitempty"`
	Color     *string `yaml:"color,omitempty" toml:"color,omitempty"`
}

// DefaultPath returns the config file location under the XDG config home.
// An existing config.toml is used when there is no config.yaml.
func DefaultPath() string {
	for _, name := range []string{"config.yaml", "config.yml", "config.toml"} {
		if p, err := xdg.SearchConfigFile(filepath.Join(appName, name)); err == nil {
			return p
		}
	}
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

// About returns the long description of the command, naming the config
// file path.
func About(path string) string {
	return "Colorize lines from a file, or stdin, by grouping lines according to a " +
		"given delimiter and column. Configuration data is stored in " + path
}

// Load reads the config file at path. A missing file yields an empty File
// unless required is set.
func Load(path string, required bool) (File, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !required {
		return File{}, nil
	}
	if err != nil {
		return File{}, fmt.Errorf("read config: %w", err)
	}
	var f File
	if isTOML(path) {
		err = toml.Unmarshal(data, &f)
	} else {
		err = yaml.Unmarshal(data, &f)
	}
	if err != nil {
		return File{}, fmt.Errorf("parse config %q: %w", path, err)
	}
	return f, nil
}

// Save writes f to path, creating parent directories.
func Save(path string, f File) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(f)
	} else {
		data, err = yaml.Marshal(f)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
