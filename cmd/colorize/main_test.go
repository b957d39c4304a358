package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/atomikpanda/colorize/internal/color"
	"github.com/atomikpanda/colorize/internal/config"
	"github.com/atomikpanda/colorize/internal/input"
	"github.com/atomikpanda/colorize/internal/palette"
)

// isolate points the XDG config home at a temp dir so no user config leaks in.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CONFIG_DIRS", filepath.Join(dir, "none"))
	t.Setenv("NO_COLOR", "")
	xdg.Reload()
	t.Cleanup(func() {
		xdg.Reload()
		color.Enabled = false
	})
	return dir
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := buildRoot("test about")
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestBuildRoot(t *testing.T) {
	root := buildRoot("about text")
	if root.Use != "colorize [INPUT]" {
		t.Errorf("Use = %q", root.Use)
	}
	if root.Long != "about text" {
		t.Errorf("Long = %q", root.Long)
	}

	names := make(map[string]bool)
	for _, cmd := range root.Commands() {
		names[cmd.Name()] = true
	}
	for _, name := range []string{"palette", "config"} {
		if !names[name] {
			t.Errorf("missing subcommand %q", name)
		}
	}

	for _, flag := range []string{"delimiter", "column", "filter", "debug", "min-color", "max-color", "color", "config"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("missing flag --%s", flag)
		}
	}
}

func TestColorizeDebug(t *testing.T) {
	isolate(t)
	path := writeInput(t, "a b\nc b\na d\n")

	out, _, err := execute(t, "--color", "never", "--debug", "-d", " ", "--min-color", "1", "--max-color", "2", "-f", "", path)
	if err != nil {
		t.Fatal(err)
	}
	want := "[  1] a b\n[  2] c b\n[  1] a d\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestColorizeColumn(t *testing.T) {
	isolate(t)
	path := writeInput(t, "x key y\nx other y\nx key z\nshort\n")

	out, _, err := execute(t, "--color", "never", "--debug", "-c", "1", path)
	if err != nil {
		t.Fatal(err)
	}
	// 8 is filtered by default, so the first two keys get 1 and 2.
	want := "[  1] x key y\n[  2] x other y\n[  1] x key z\n[  -] short\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestColorizeAlwaysEmitsEscapes(t *testing.T) {
	isolate(t)
	path := writeInput(t, "one\n")

	out, _, err := execute(t, "--color", "always", path)
	if err != nil {
		t.Fatal(err)
	}
	if out != "\x1b[38;5;1mone\x1b[0m\n" {
		t.Errorf("output = %q", out)
	}
}

func TestColorizeUsesConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "colorize", "config.yaml")
	delim, col, mode, dbg := ",", 1, "never", true
	if err := config.Save(path, config.File{Delimiter: &delim, Column: &col, Color: &mode, Debug: &dbg}); err != nil {
		t.Fatal(err)
	}
	in := writeInput(t, "a,k1\nb,k2\nc,k1\n")

	out, _, err := execute(t, in)
	if err != nil {
		t.Fatal(err)
	}
	if out != "[  1] a,k1\n[  2] b,k2\n[  1] c,k1\n" {
		t.Errorf("output = %q", out)
	}

	// A flag overrides the config file.
	out, _, err = execute(t, "-c", "0", in)
	if err != nil {
		t.Fatal(err)
	}
	if out != "[  1] a,k1\n[  2] b,k2\n[  3] c,k1\n" {
		t.Errorf("output with -c 0 = %q", out)
	}
}

func TestColorizeSetupErrors(t *testing.T) {
	isolate(t)
	in := writeInput(t, "a\n")
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"bad delimiter", []string{"-d", "(", in}, nil},
		{"bad filter", []string{"-f", "1,red", in}, palette.ErrInvalidFilter},
		{"empty palette", []string{"--min-color", "8", "--max-color", "8", in}, palette.ErrEmptyPalette},
		{"negative column", []string{"-c", "-1", in}, config.ErrInvalidSettings},
		{"bad colour mode", []string{"--color", "rainbow", in}, config.ErrInvalidSettings},
		{"missing explicit config", []string{"--config", filepath.Join(t.TempDir(), "nope.yaml"), in}, os.ErrNotExist},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			if out != "" {
				t.Errorf("no output expected before setup succeeds, got %q", out)
			}
			if exitCode(err) != exitError {
				t.Errorf("exitCode = %d, want %d", exitCode(err), exitError)
			}
		})
	}
}

func TestColorizeUnreadableInput(t *testing.T) {
	isolate(t)
	out, _, err := execute(t, filepath.Join(t.TempDir(), "missing.log"))
	if !errors.Is(err, input.ErrUnreadableInput) {
		t.Fatalf("error = %v, want ErrUnreadableInput", err)
	}
	if out != "" {
		t.Errorf("output = %q, want none", out)
	}
	if exitCode(err) != exitInputFailed {
		t.Errorf("exitCode = %d, want %d", exitCode(err), exitInputFailed)
	}
}

func TestColorizeTooManyArgs(t *testing.T) {
	isolate(t)
	if _, _, err := execute(t, "a", "b"); err == nil {
		t.Error("expected error for two inputs")
	}
}

func TestPaletteCmd(t *testing.T) {
	isolate(t)
	out, _, err := execute(t, "palette", "--color", "never", "--min-color", "1", "--max-color", "20", "-f", "8,10")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("palette output = %q", out)
	}
	if !strings.HasPrefix(lines[0], "18 colours (range 1-20") {
		t.Errorf("header = %q", lines[0])
	}
	if strings.Contains(out, "  8 ") || strings.Contains(out, " 10 ") {
		t.Errorf("filtered colours shown: %q", out)
	}
}

func TestFormatSwatches(t *testing.T) {
	r := color.NewRenderer(termenv.Ascii, false)
	got := formatSwatches(r, []palette.ColorID{1, 2, 3, 4, 5}, 2)
	want := "  1   2\n  3   4\n  5\n"
	if got != want {
		t.Errorf("formatSwatches() = %q, want %q", got, want)
	}
	if formatSwatches(r, nil, 4) != "" {
		t.Error("no swatches should render nothing")
	}
}

func TestConfigPathCmd(t *testing.T) {
	dir := isolate(t)
	out, _, err := execute(t, "config", "path")
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "colorize", "config.yaml") + "\n"
	if out != want {
		t.Errorf("config path = %q, want %q", out, want)
	}

	out, _, err = execute(t, "--config", "/tmp/custom.toml", "config", "path")
	if err != nil {
		t.Fatal(err)
	}
	if out != "/tmp/custom.toml\n" {
		t.Errorf("config path with --config = %q", out)
	}
}

func TestConfigShowCmd(t *testing.T) {
	isolate(t)
	out, _, err := execute(t, "-c", "3", "config", "show")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"column: 3", "min_color: 1", "max_color: 254", "color: auto"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show missing %q:\n%s", want, out)
		}
	}
}

func TestConfigInitCmd(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "conf", "colorize.yaml")

	out, _, err := execute(t, "--config", path, "-c", "2", "config", "init")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("output = %q", out)
	}
	f, err := config.Load(path, true)
	if err != nil {
		t.Fatal(err)
	}
	if got := config.Resolve(config.Overrides{}, f); got.Column != 2 || got.Filter != palette.DefaultFilter {
		t.Errorf("written settings = %+v", got)
	}

	if _, _, err := execute(t, "--config", path, "config", "init"); err == nil {
		t.Error("expected refusal to overwrite existing config")
	}
	if _, _, err := execute(t, "--config", path, "config", "init", "--force"); err != nil {
		t.Errorf("--force should overwrite: %v", err)
	}
}

func TestConfigInitInteractiveWithoutTerminal(t *testing.T) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		t.Skip("stdin is a terminal")
	}
	isolate(t)
	path := filepath.Join(t.TempDir(), "colorize.yaml")
	if _, _, err := execute(t, "--config", path, "config", "init", "--interactive"); err == nil {
		t.Error("expected error when prompting without a terminal")
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Error("no config should be written when prompting fails")
	}
}

func TestExitCode(t *testing.T) {
	if got := exitCode(errors.New("boom")); got != exitError {
		t.Errorf("exitCode(generic) = %d", got)
	}
	if got := exitCode(input.ErrUnreadableInput); got != exitInputFailed {
		t.Errorf("exitCode(unreadable) = %d", got)
	}
}
