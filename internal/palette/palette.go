// Package palette owns the finite set of terminal colours handed out to
// column values, and the assigner that maps each value to a stable colour.
package palette

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ColorID identifies one 256-colour terminal colour.
type ColorID uint8

const (
	DefaultMin ColorID = 1
	DefaultMax ColorID = 254

	// DefaultFilter drops colours that are hard to read on common
	// dark backgrounds.
	DefaultFilter = "8,10,11,16,17,18,19,52,54"
)

var (
	ErrInvalidFilter = errors.New("invalid colour filter entry")
	ErrInvalidRange  = errors.New("invalid colour range")
	ErrEmptyPalette  = errors.New("colour filter leaves an empty palette")
)

// Palette is the ascending list of colours not yet permanently assigned.
// It never holds duplicates and, once built, only shrinks.
type Palette struct {
	colors []ColorID
}

// New returns the colours in [lo, hi] minus exclude, in ascending order.
func New(lo, hi ColorID, exclude []ColorID) (*Palette, error) {
	if lo > hi {
		return nil, fmt.Errorf("%w: min %d is greater than max %d", ErrInvalidRange, lo, hi)
	}
	skip := make(map[ColorID]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}
	colors := make([]ColorID, 0, int(hi)-int(lo)+1)
	for i := int(lo); i <= int(hi); i++ {
		if !skip[ColorID(i)] {
			colors = append(colors, ColorID(i))
		}
	}
	if len(colors) == 0 {
		return nil, fmt.Errorf("%w (range %d-%d)", ErrEmptyPalette, lo, hi)
	}
	return &Palette{colors: colors}, nil
}

// FromColors builds a palette from an explicit ordered list.
func FromColors(colors ...ColorID) (*Palette, error) {
	if len(colors) == 0 {
		return nil, ErrEmptyPalette
	}
	seen := make(map[ColorID]bool, len(colors))
	for _, id := range colors {
		if seen[id] {
			return nil, fmt.Errorf("duplicate colour %d in palette", id)
		}
		seen[id] = true
	}
	return &Palette{colors: append([]ColorID(nil), colors...)}, nil
}

// Len returns the number of colours remaining.
func (p *Palette) Len() int { return len(p.colors) }

// Colors returns a copy of the remaining colours in order.
func (p *Palette) Colors() []ColorID {
	return append([]ColorID(nil), p.colors...)
}

// First returns the lowest-ordered remaining colour.
func (p *Palette) First() ColorID { return p.colors[0] }

// take removes and returns the first colour. Callers must not drain the
// palette below one entry.
func (p *Palette) take() ColorID {
	id := p.colors[0]
	p.colors = p.colors[1:]
	return id
}

// ParseFilter parses a comma-separated list of colour ids. Whitespace
// around entries is ignored, as are blank entries.
func ParseFilter(s string) ([]ColorID, error) {
	var ids []ColorID
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.ParseUint(field, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("%w %q: must be an integer between 0 and 255", ErrInvalidFilter, field)
		}
		ids = append(ids, ColorID(n))
	}
	return ids, nil
}

// Build parses filter and returns the palette for [lo, hi] without the
// filtered colours.
func Build(lo, hi ColorID, filter string) (*Palette, error) {
	exclude, err := ParseFilter(filter)
	if err != nil {
		return nil, err
	}
	return New(lo, hi, exclude)
}
