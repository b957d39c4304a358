package color

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"

	"github.com/atomikpanda/colorize/internal/palette"
)

// Renderer paints lines with a palette colour. With debug set each line is
// prefixed by its colour id, or a dash when it has none.
type Renderer struct {
	out   *termenv.Output
	debug bool
}

// NewRenderer returns a renderer for profile. termenv.Ascii disables
// escape sequences while keeping the debug prefix.
func NewRenderer(profile termenv.Profile, debug bool) *Renderer {
	return &Renderer{
		out:   termenv.NewOutput(io.Discard, termenv.WithProfile(profile)),
		debug: debug,
	}
}

// Profile picks the termenv profile matching Enabled.
func Profile() termenv.Profile {
	if Enabled {
		return termenv.ANSI256
	}
	return termenv.Ascii
}

// Render returns line styled with colour id. ok is false for lines that
// have no colour; those are returned unchanged apart from the debug prefix.
func (r *Renderer) Render(line string, id palette.ColorID, ok bool) string {
	if !ok {
		if r.debug {
			return "[  -] " + line
		}
		return line
	}
	if r.debug {
		line = fmt.Sprintf("[%3d] %s", id, line)
	}
	return r.paint(line, id)
}

// Swatch renders the colour id itself in its own colour.
func (r *Renderer) Swatch(id palette.ColorID) string {
	return r.paint(fmt.Sprintf("%3d", id), id)
}

func (r *Renderer) paint(s string, id palette.ColorID) string {
	c := r.out.Convert(termenv.ANSI256Color(id))
	return r.out.String(s).Foreground(c).String()
}
