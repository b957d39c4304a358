// Package runner drives a colorize run: it reads lines from a source, picks
// a colour for each one and writes the rendered result in input order.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/atomikpanda/colorize/internal/column"
	"github.com/atomikpanda/colorize/internal/palette"
)

// MaxConsecutiveReadErrors ends a run whose source keeps failing.
const MaxConsecutiveReadErrors = 16

var ErrSourceFailed = errors.New("input keeps failing")

// LineSource yields input lines without line terminators and io.EOF at
// the end. Any other error affects only the line being read.
type LineSource interface {
	Next() (string, error)
}

// Renderer turns a line and its optional colour into output text.
type Renderer interface {
	Render(line string, id palette.ColorID, ok bool) string
}

// Stats summarises a run.
type Stats struct {
	Lines       int
	Colored     int
	Passthrough int
	ReadErrors  int
	Keys        int
}

// Runner owns the extractor, the assigner and the output for one run.
type Runner struct {
	Extractor *column.Extractor
	Assigner  *palette.Assigner
	Renderer  Renderer
	Out       io.Writer
	Log       *slog.Logger
}

// New creates a Runner. A nil log discards diagnostics.
func New(ex *column.Extractor, as *palette.Assigner, r Renderer, out io.Writer, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{
		Extractor: ex,
		Assigner:  as,
		Renderer:  r,
		Out:       out,
		Log:       log,
	}
}

// Run processes src until it is exhausted, the context is cancelled or
// writing fails. Each line is written before the next one is read.
func (r *Runner) Run(ctx context.Context, src LineSource) (Stats, error) {
	var st Stats
	failures := 0
	for {
		if err := ctx.Err(); err != nil {
			return r.finish(st), err
		}
		line, err := src.Next()
		if errors.Is(err, io.EOF) {
			return r.finish(st), nil
		}
		if err != nil {
			st.ReadErrors++
			failures++
			r.Log.Warn("failed to read line", "line", st.Lines+st.ReadErrors, "error", err)
			if failures >= MaxConsecutiveReadErrors {
				return r.finish(st), fmt.Errorf("%w: %d consecutive read errors: %w", ErrSourceFailed, failures, err)
			}
			continue
		}
		failures = 0
		st.Lines++

		id, ok := r.Color(line)
		if ok {
			st.Colored++
		} else {
			st.Passthrough++
		}
		if _, err := io.WriteString(r.Out, r.Renderer.Render(line, id, ok)+"\n"); err != nil {
			return r.finish(st), fmt.Errorf("write output: %w", err)
		}
	}
}

// Color extracts the key column from line and returns its colour.
func (r *Runner) Color(line string) (palette.ColorID, bool) {
	return r.Assigner.Assign(r.Extractor.Extract(line))
}

func (r *Runner) finish(st Stats) Stats {
	st.Keys = r.Assigner.Len()
	r.Log.Debug("run finished",
		"lines", st.Lines,
		"colored", st.Colored,
		"passthrough", st.Passthrough,
		"read_errors", st.ReadErrors,
		"keys", st.Keys,
		"palette_left", r.Assigner.Palette().Len(),
	)
	return st
}
