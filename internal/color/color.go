// Package color provides ANSI colour helpers for terminal output and the
// renderer that paints whole lines in 256-colour mode.
// All helpers are no-ops when Enabled is false, so callers need not guard
// their output; just call Init once at program start.
package color

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// Mode selects when colour is emitted.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeAlways Mode = "always"
	ModeNever  Mode = "never"
)

// ParseMode validates s as a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeAuto, ModeAlways, ModeNever:
		return m, nil
	case "":
		return ModeAuto, nil
	default:
		return "", fmt.Errorf("invalid colour mode %q: want auto, always or never", s)
	}
}

// Enabled is true when ANSI colour output is wanted.
// Call Init once at program start to set it.
var Enabled bool

// Init sets Enabled for the given mode. In auto mode colour is suppressed
// when:
//   - NO_COLOR env var is set (https://no-color.org)
//   - TERM=dumb
//   - stdout is not a terminal (piped, redirected, etc.)
func Init(mode Mode) {
	Enabled = detect(mode, term.IsTerminal(int(os.Stdout.Fd())))
}

func detect(mode Mode, tty bool) bool {
	switch mode {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return tty
}

func seq(code, s string) string {
	if !Enabled || s == "" {
		return s
	}
	return "\x1b[" + code + "m" + s + "\x1b[0m"
}

func Bold(s string) string    { return seq("1", s) }
func Dim(s string) string     { return seq("2", s) }
func Yellow(s string) string  { return seq("33", s) }
func BoldRed(s string) string { return seq("1;31", s) }
