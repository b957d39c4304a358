package palette

// Assigner hands out colours to keys. A key keeps its colour for the rest
// of the run once it has been recorded.
//
// When the palette is down to its last colour that colour is returned for
// every unseen key without recording the key or removing the colour, so
// the palette is never drained.
type Assigner struct {
	keys    map[string]ColorID
	palette *Palette
}

// NewAssigner returns an Assigner drawing from p. The assigner takes
// ownership of p.
func NewAssigner(p *Palette) *Assigner {
	return &Assigner{
		keys:    make(map[string]ColorID),
		palette: p,
	}
}

// Assign returns the colour for key. ok reports whether a key was present
// at all; when it is false no colour is returned and nothing changes.
func (a *Assigner) Assign(key string, ok bool) (ColorID, bool) {
	if !ok {
		return 0, false
	}
	if id, seen := a.keys[key]; seen {
		return id, true
	}
	if a.palette.Len() == 1 {
		return a.palette.First(), true
	}
	id := a.palette.take()
	a.keys[key] = id
	return id, true
}

// Lookup returns the recorded colour for key without assigning one.
func (a *Assigner) Lookup(key string) (ColorID, bool) {
	id, ok := a.keys[key]
	return id, ok
}

// Len returns the number of recorded keys.
func (a *Assigner) Len() int { return len(a.keys) }

// Palette returns the remaining palette.
func (a *Assigner) Palette() *Palette { return a.palette }
