package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/shiroinock/pretty-history-for-claude-code/parser"
)

// fallbackWidth is used when the output is not a terminal and no --width
// was given.
const fallbackWidth = 100

type options struct {
	theme      string
	baseDir    string
	project    string
	output     string
	width      int
	noColor    bool
	forceColor bool
	list       bool
	listThemes bool
	selectPick bool
	follow     bool
	verbose    bool
}

func main() {
	log.SetOutput(os.Stderr)
	log.SetReportTimestamp(false)

	if err := newRootCmd().Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "pretty-history [file]",
		Short: "Render Claude Code session transcripts as readable text",
		Long: `pretty-history renders the JSONL session transcripts Claude Code writes
under ~/.claude/projects as themed, human-readable text.

With no arguments it renders the most recently modified session. Pass a
file path to render a specific session, or "-" to read from stdin.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.theme, "theme", "t", "", "output theme (default, minimal, classic, plain)")
	f.StringVarP(&opts.baseDir, "base-dir", "b", "", "history base directory (default: $CLAUDE_HISTORY_DIR or ~/.claude/projects)")
	f.StringVarP(&opts.project, "project", "p", "", "render the latest session of a project")
	f.StringVarP(&opts.output, "output", "o", "", "write to a file instead of stdout")
	f.IntVar(&opts.width, "width", 0, "wrap width (default: terminal width)")
	f.BoolVar(&opts.noColor, "no-color", false, "never emit color escape codes")
	f.BoolVar(&opts.forceColor, "force-color", false, "emit color even when output is not a terminal")
	f.BoolVarP(&opts.list, "list", "l", false, "list discovered sessions and exit")
	f.BoolVar(&opts.listThemes, "list-themes", false, "list available themes and exit")
	f.BoolVarP(&opts.selectPick, "select", "s", false, "pick a session interactively")
	f.BoolVarP(&opts.follow, "follow", "f", false, "keep rendering as the session grows")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log skipped lines and debug detail")

	return cmd
}

func run(cmd *cobra.Command, args []string, opts options) error {
	if opts.verbose {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := LoadConfig(configPath())
	if err != nil {
		// A broken config file should not block rendering.
		log.Warn("ignoring config", "err", err)
		cfg = Config{}
	}
	applyConfig(&opts, cfg, cmd)

	if opts.listThemes {
		for _, name := range ThemeNames() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	}

	// Theme resolution fails before any input is read.
	theme, err := LookupTheme(opts.theme)
	if err != nil {
		return err
	}

	baseDir := opts.baseDir
	if baseDir == "" {
		baseDir = parser.DefaultBaseDir()
	}

	if opts.list {
		return listSessions(cmd.OutOrStdout(), baseDir)
	}

	var arg string
	if len(args) == 1 {
		arg = args[0]
	}
	path, err := resolveInput(arg, baseDir, opts)
	if errors.Is(err, ErrPickerCancelled) {
		log.Debug("picker cancelled")
		return nil
	}
	if err != nil {
		return err
	}
	log.Debug("reading", "file", path)

	if path == "-" && opts.follow {
		return fmt.Errorf("--follow requires a file, not stdin")
	}

	out, closeOut, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer closeOut()

	mode := colorAuto
	switch {
	case opts.noColor:
		mode = colorNever
	case opts.forceColor:
		mode = colorAlways
	}
	profile := resolveProfile(theme, mode, out)
	st := NewStyles(profile, detectDarkBackground(out))

	width := opts.width
	if width == 0 {
		if w, _, err := term.GetSize(int(out.Fd())); err == nil && w > 0 {
			width = w
		} else {
			width = fallbackWidth
		}
	}

	ren := NewRenderer(theme, st, width)
	sink := NewSink(out)
	warn := func(line int, err error) {
		log.Warn("skipping line", "line", line, "err", err)
	}

	if opts.follow {
		// The follower renders the existing content itself: its decoder
		// reports the exact offset it stopped at, so lines appended while
		// the initial pass runs are never skipped.
		f := &follower{path: path, ren: ren, sink: sink, warn: warn}
		if err := f.drain(); err != nil {
			return err
		}
		log.Debug("following", "path", path)
		return f.run()
	}

	if err := renderSession(path, ren, sink, warn); err != nil {
		return err
	}
	if opts.output != "" {
		log.Info("output written", "path", opts.output)
	}
	return nil
}

// applyConfig fills unset options from the config file. Flags the user set
// explicitly always win.
func applyConfig(opts *options, cfg Config, cmd *cobra.Command) {
	if opts.theme == "" {
		opts.theme = cfg.Theme
	}
	if opts.theme == "" {
		opts.theme = "default"
	}
	if opts.baseDir == "" {
		opts.baseDir = cfg.BaseDir
	}
	if opts.width == 0 && cfg.Width > 0 {
		opts.width = cfg.Width
	}
	if !cmd.Flags().Changed("no-color") && !cmd.Flags().Changed("force-color") {
		switch cfg.Color {
		case "never":
			opts.noColor = true
		case "always":
			opts.forceColor = true
		}
	}
}

// resolveInput decides which session file to render: the explicit argument,
// the interactive picker, the newest session of a project, or the newest
// session overall.
func resolveInput(arg, baseDir string, opts options) (string, error) {
	if arg != "" {
		if arg == "-" {
			return arg, nil
		}
		if _, err := os.Stat(arg); err != nil {
			if os.IsNotExist(err) {
				return "", fmt.Errorf("file not found: %s", arg)
			}
			return "", err
		}
		return arg, nil
	}

	if opts.selectPick {
		sessions, err := parser.FindHistoryFiles(baseDir)
		if err != nil {
			return "", err
		}
		picked, err := pickSession(sessions)
		if err != nil {
			return "", err
		}
		return picked.Path, nil
	}

	if opts.project != "" {
		sessions, err := parser.ProjectSessions(baseDir, opts.project)
		if err != nil {
			return "", err
		}
		return sessions[0].Path, nil
	}

	latest, err := parser.LatestSession(baseDir)
	if err != nil {
		return "", err
	}
	log.Debug("auto-discovered session", "path", latest.Path)
	return latest.Path, nil
}

func openOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	return f, func() { f.Close() }, nil
}

// renderSession streams one session through the renderer into the sink,
// emitting the welcome banner before the first block.
func renderSession(path string, ren *Renderer, sink *Sink, warn parser.WarnFunc) error {
	var in io.Reader
	if path == "-" {
		in = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("file not found: %s", path)
			}
			return err
		}
		defer f.Close()
		in = f
	}

	d := parser.NewDecoder(in, warn)
	first := true
	for {
		rec, ok := d.Next()
		if !ok {
			break
		}
		if first {
			if err := sink.WriteBlock(ren.Banner(rec.Cwd)); err != nil {
				return err
			}
			first = false
		}
		if err := sink.WriteBlock(ren.Render(rec)); err != nil {
			return err
		}
	}
	if err := d.Err(); err != nil {
		return err
	}
	if n := d.Skipped(); n > 0 {
		log.Warn("skipped malformed lines", "count", n)
	}
	return nil
}

// listSessions prints the discovered sessions, newest first.
func listSessions(w io.Writer, baseDir string) error {
	sessions, err := parser.FindHistoryFiles(baseDir)
	if err != nil {
		return err
	}
	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			s.Project, s.Session,
			s.ModTime.Format("2006-01-02 15:04"),
			strings.TrimSpace(formatSize(s.Size)))
	}
	return nil
}
