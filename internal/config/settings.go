package config

import (
	"errors"
	"fmt"

	"github.com/atomikpanda/colorize/internal/color"
	"github.com/atomikpanda/colorize/internal/column"
	"github.com/atomikpanda/colorize/internal/palette"
)

var ErrInvalidSettings = errors.New("invalid settings")

// Settings are the fully resolved options for a run.
type Settings struct {
	Delimiter string     `yaml:"delimiter"`
	Column    int        `yaml:"column"`
	Filter    string     `yaml:"filter"`
	Debug     bool       `yaml:"debug"`
	MinColor  uint8      `yaml:"min_color"`
	MaxColor  uint8      `yaml:"max_color"`
	Color     color.Mode `yaml:"color"`
}

// Overrides carries values given on the command line. A nil field was not
// set and defers to the config file.
type Overrides File

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Delimiter: column.DefaultDelimiter,
		Column:    0,
		Filter:    palette.DefaultFilter,
		Debug:     false,
		MinColor:  uint8(palette.DefaultMin),
		MaxColor:  uint8(palette.DefaultMax),
		Color:     color.ModeAuto,
	}
}

// Resolve picks each field from cli if set, else from file, else the
// default.
func Resolve(cli Overrides, file File) Settings {
	d := Defaults()
	return Settings{
		Delimiter: pick(cli.Delimiter, file.Delimiter, d.Delimiter),
		Column:    pick(cli.Column, file.Column, d.Column),
		Filter:    pick(cli.Filter, file.Filter, d.Filter),
		Debug:     pick(cli.Debug, file.Debug, d.Debug),
		MinColor:  pick(cli.MinColor, file.MinColor, d.MinColor),
		MaxColor:  pick(cli.MaxColor, file.MaxColor, d.MaxColor),
		Color:     color.Mode(pick(cli.Color, file.Color, string(d.Color))),
	}
}

func pick[T any](cli, file *T, def T) T {
	if cli != nil {
		return *cli
	}
	if file != nil {
		return *file
	}
	return def
}

// Validate checks the fields that cannot be checked by building the
// extractor and palette.
func (s Settings) Validate() error {
	if s.Column < 0 {
		return fmt.Errorf("%w: column must not be negative, got %d", ErrInvalidSettings, s.Column)
	}
	if _, err := color.ParseMode(string(s.Color)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return nil
}

// File converts s back into a config file with every field set.
func (s Settings) File() File {
	mode := string(s.Color)
	return File{
		Delimiter: &s.Delimiter,
		Column:    &s.Column,
		Filter:    &s.Filter,
		Debug:     &s.Debug,
		MinColor:  &s.MinColor,
		MaxColor:  &s.MaxColor,
		Color:     &mode,
	}
}

// Palette builds the initial palette for these settings.
func (s Settings) Palette() (*palette.Palette, error) {
	return palette.Build(palette.ColorID(s.MinColor), palette.ColorID(s.MaxColor), s.Filter)
}

// Extractor builds the column extractor for these settings.
func (s Settings) Extractor() (*column.Extractor, error) {
	return column.New(s.Delimiter, s.Column)
}
