// Package prompt asks the user for config values when writing a new
// config file interactively.
package prompt

import (
	"errors"
	"strconv"

	"github.com/atomikpanda/colorize/internal/color"
	"github.com/atomikpanda/colorize/internal/column"
	"github.com/atomikpanda/colorize/internal/config"
	"github.com/atomikpanda/colorize/internal/palette"
)

// ErrNonInteractive is returned when prompting in non-interactive mode.
var ErrNonInteractive = errors.New("cannot prompt in non-interactive mode")

// Prompter defines the interface for interactive user prompts.
type Prompter interface {
	// Input prompts for text, pre-filled with defaultValue. validate may
	// be nil.
	Input(title, defaultValue string, validate func(string) error) (string, error)

	// Confirm prompts for yes/no.
	Confirm(title string, defaultValue bool) (bool, error)

	// Select presents options and returns the selected value.
	Select(title string, options []string, defaultValue string) (string, error)
}

// NoopPrompter returns errors for all prompts (non-interactive mode).
type NoopPrompter struct{}

func (NoopPrompter) Input(string, string, func(string) error) (string, error) {
	return "", ErrNonInteractive
}

func (NoopPrompter) Confirm(string, bool) (bool, error) {
	return false, ErrNonInteractive
}

func (NoopPrompter) Select(string, []string, string) (string, error) {
	return "", ErrNonInteractive
}

// Settings walks the user through every setting, starting from s.
func Settings(p Prompter, s config.Settings) (config.Settings, error) {
	var err error
	if s.Delimiter, err = p.Input("Column delimiter (regular expression)", s.Delimiter, validateDelimiter); err != nil {
		return s, err
	}
	col, err := p.Input("Column to colour by (0 is the first)", strconv.Itoa(s.Column), validateColumn)
	if err != nil {
		return s, err
	}
	s.Column, _ = strconv.Atoi(col)
	if s.Filter, err = p.Input("Colours to skip (comma separated)", s.Filter, validateFilter); err != nil {
		return s, err
	}
	mode, err := p.Select("Colour output", []string{
		string(color.ModeAuto), string(color.ModeAlways), string(color.ModeNever),
	}, string(s.Color))
	if err != nil {
		return s, err
	}
	s.Color = color.Mode(mode)
	if s.Debug, err = p.Confirm("Prefix lines with their colour id?", s.Debug); err != nil {
		return s, err
	}
	return s, nil
}

func validateDelimiter(s string) error {
	_, err := column.New(s, 0)
	return err
}

func validateColumn(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return errors.New("column must be a non-negative integer")
	}
	return nil
}

func validateFilter(s string) error {
	_, err := palette.ParseFilter(s)
	return err
}
