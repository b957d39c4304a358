// Package input opens the line source, either a file or standard input,
// and reads it one line at a time.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Stdin is the input name that selects standard input.
const Stdin = "-"

var ErrUnreadableInput = errors.New("cannot open input")

// Open returns a reader for path. "-" and "" select standard input, which
// is left open when the returned reader is closed.
func Open(path string) (io.ReadCloser, error) {
	if path == "" || path == Stdin {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrUnreadableInput, path, err)
	}
	return f, nil
}

// ExpandPath expands a leading "~/" and environment variables in path.
func ExpandPath(path string) string {
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return os.ExpandEnv(path)
}

// LineReader yields lines without their trailing "\n" or "\r\n".
type LineReader struct {
	r *bufio.Reader
}

func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReader(r)}
}

// Next returns the next line. A final line without a newline is still
// returned; io.EOF follows once the input is exhausted.
func (l *LineReader) Next() (string, error) {
	line, err := l.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return trimEOL(line), nil
		}
		return "", err
	}
	return trimEOL(line), nil
}

func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
