package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/atomikpanda/colorize/internal/color"
	"github.com/atomikpanda/colorize/internal/config"
	"github.com/atomikpanda/colorize/internal/input"
	"github.com/atomikpanda/colorize/internal/logging"
	"github.com/atomikpanda/colorize/internal/palette"
	"github.com/atomikpanda/colorize/internal/prompt"
	"github.com/atomikpanda/colorize/internal/runner"
)

const (
	exitError       = 1
	exitInputFailed = 2
)

var (
	configFile string
	delimiter  string
	columnIdx  int
	filter     string
	debug      bool
	minColor   uint8
	maxColor   uint8
	colorMode  string
)

func main() {
	root := buildRoot(config.About(config.DefaultPath()))
	if err := root.Execute(); err != nil {
		color.Init(color.ModeAuto)
		fmt.Fprintln(os.Stderr, color.BoldRed("colorize: "+err.Error()))
		os.Exit(exitCode(err))
	}
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	if errors.Is(err, input.ErrUnreadableInput) {
		return exitInputFailed
	}
	return exitError
}

func buildRoot(about string) *cobra.Command {
	d := config.Defaults()
	root := &cobra.Command{
		Use:   "colorize [INPUT]",
		Short: "Colour lines by the value of one column",
		Long:  about,
		Example: `  tail -f app.log | colorize -c 2
  colorize -d ',' -c 1 data.csv
  colorize --debug -f 8,10,11 access.log`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := input.Stdin
			if len(args) == 1 {
				path = args[0]
			}
			return colorizeInput(cmd, path)
		},
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "path to config file (default "+config.DefaultPath()+")")

	flags := root.PersistentFlags()
	flags.StringVarP(&delimiter, "delimiter", "d", d.Delimiter, "the column delimiter to use (regular expression)")
	flags.IntVarP(&columnIdx, "column", "c", d.Column, "which column to utilize for colorization")
	flags.StringVarP(&filter, "filter", "f", d.Filter, "comma-separated colour ids to leave out of the palette")
	flags.BoolVar(&debug, "debug", d.Debug, "prefix every line with its colour id and log diagnostics")
	flags.Uint8Var(&minColor, "min-color", d.MinColor, "lowest colour id in the palette")
	flags.Uint8Var(&maxColor, "max-color", d.MaxColor, "highest colour id in the palette")
	flags.StringVar(&colorMode, "color", string(d.Color), "when to emit colour: auto, always or never")

	root.AddCommand(
		paletteCmd(),
		configCmd(),
	)
	return root
}

// overrides collects the flags the user actually set.
func overrides(cmd *cobra.Command) config.Overrides {
	var o config.Overrides
	f := cmd.Flags()
	if f.Changed("delimiter") {
		o.Delimiter = &delimiter
	}
	if f.Changed("column") {
		o.Column = &columnIdx
	}
	if f.Changed("filter") {
		o.Filter = &filter
	}
	if f.Changed("debug") {
		o.Debug = &debug
	}
	if f.Changed("min-color") {
		o.MinColor = &minColor
	}
	if f.Changed("max-color") {
		o.MaxColor = &maxColor
	}
	if f.Changed("color") {
		o.Color = &colorMode
	}
	return o
}

// configPath returns the config file to use and whether it must exist.
func configPath() (string, bool) {
	if configFile != "" {
		return input.ExpandPath(configFile), true
	}
	return config.DefaultPath(), false
}

// loadSettings merges flags with the config file and validates the result.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	path, required := configPath()
	file, err := config.Load(path, required)
	if err != nil {
		return config.Settings{}, err
	}
	s := config.Resolve(overrides(cmd), file)
	if err := s.Validate(); err != nil {
		return config.Settings{}, err
	}
	return s, nil
}

func colorizeInput(cmd *cobra.Command, path string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	ex, err := s.Extractor()
	if err != nil {
		return err
	}
	p, err := s.Palette()
	if err != nil {
		return err
	}

	in, err := input.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	color.Init(s.Color)
	log := logging.New(cmd.ErrOrStderr(), s.Debug)
	log.Debug("starting",
		"input", path,
		"delimiter", ex.Pattern(),
		"column", ex.Column(),
		"palette_size", p.Len(),
	)

	r := runner.New(ex, palette.NewAssigner(p), color.NewRenderer(color.Profile(), s.Debug), cmd.OutOrStdout(), log)
	_, err = r.Run(cmd.Context(), input.NewLineReader(in))
	return err
}

// --- palette -----------------------------------------------------------------

func paletteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "palette",
		Short: "Show the colours available after filtering",
		Example: `  colorize palette
  colorize palette -f 0,15,16 --color always`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			p, err := s.Palette()
			if err != nil {
				return err
			}
			color.Init(s.Color)
			r := color.NewRenderer(color.Profile(), false)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, color.Bold(fmt.Sprintf("%d colours (range %d-%d, filter %q)",
				p.Len(), s.MinColor, s.MaxColor, s.Filter)))
			fmt.Fprint(out, formatSwatches(r, p.Colors(), 16))
			return nil
		},
	}
}

// formatSwatches lays ids out perRow to a line.
func formatSwatches(r *color.Renderer, ids []palette.ColorID, perRow int) string {
	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			if i%perRow == 0 {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString(r.Swatch(id))
	}
	if len(ids) > 0 {
		b.WriteByte('\n')
	}
	return b.String()
}

// --- config ------------------------------------------------------------------

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	var force, interactive bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the defaults and any flags given",
		Example: `  colorize config init
  colorize config init --interactive
  colorize -c 2 config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := configPath()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
			}
			// Start from the defaults and flags; an existing file is replaced, not merged.
			s := config.Resolve(overrides(cmd), config.File{})
			if err := s.Validate(); err != nil {
				return err
			}
			if interactive {
				var err error
				var p prompt.Prompter = prompt.NoopPrompter{}
				if term.IsTerminal(int(os.Stdin.Fd())) {
					p = prompt.NewHuhPrompter()
				}
				if s, err = prompt.Settings(p, s); err != nil {
					return err
				}
			}
			if err := config.Save(path, s.File()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	initCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "prompt for each setting")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file path",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				path, _ := configPath()
				fmt.Fprintln(cmd.OutOrStdout(), path)
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective settings",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := loadSettings(cmd)
				if err != nil {
					return err
				}
				data, err := yaml.Marshal(s)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			},
		},
		initCmd,
	)
	return cmd
}
