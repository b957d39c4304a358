// Package column splits lines on a delimiter pattern and picks out a single
// zero-based column.
package column

import (
	"errors"
	"fmt"
	"regexp"
)

// DefaultDelimiter separates columns on runs of spaces and tabs.
const DefaultDelimiter = "[ \t]+"

var (
	ErrInvalidDelimiter = errors.New("invalid delimiter pattern")
	ErrInvalidColumn    = errors.New("invalid column index")
)

// Extractor returns the token at a fixed column of each line it is given.
// It holds no per-line state and may be reused for an entire run.
type Extractor struct {
	re     *regexp.Regexp
	column int
}

// New compiles pattern and returns an Extractor for the given column.
func New(pattern string, column int) (*Extractor, error) {
	if column < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidColumn, column)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidDelimiter, pattern, err)
	}
	return &Extractor{re: re, column: column}, nil
}

// Column returns the configured column index.
func (e *Extractor) Column() int { return e.column }

// Pattern returns the delimiter source pattern.
func (e *Extractor) Pattern() string { return e.re.String() }

// Extract returns the token at the extractor's column, and false when the
// line has fewer columns than that.
func (e *Extractor) Extract(line string) (string, bool) {
	tokens := Split(e.re, line)
	if e.column >= len(tokens) {
		return "", false
	}
	return tokens[e.column], true
}

// Split splits line around every match of re. An empty line yields a
// single empty token. Nothing is trimmed beyond what re consumes.
func Split(re *regexp.Regexp, line string) []string {
	if line == "" {
		return []string{""}
	}
	return re.Split(line, -1)
}
