package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ErrWriteFailure marks sink I/O errors: closed pipes, full disks,
// unwritable output paths.
var ErrWriteFailure = errors.New("write failure")

// Sink writes rendered blocks to a destination, one blank line between
// blocks. The first write error sticks; later writes are dropped so a
// broken pipe fails once instead of once per line.
type Sink struct {
	w     io.Writer
	wrote bool
	err   error
}

func NewSink(w io.Writer) *Sink {
	return &Sink{w: w}
}

// WriteBlock writes all lines of b. Empty blocks write nothing.
func (s *Sink) WriteBlock(b Block) error {
	if s.err != nil {
		return s.err
	}
	if len(b.Lines) == 0 {
		return nil
	}
	if s.wrote {
		if err := s.write("\n"); err != nil {
			return err
		}
	}
	for _, line := range b.Lines {
		if err := s.write(line + "\n"); err != nil {
			return err
		}
	}
	s.wrote = true
	return nil
}

func (s *Sink) write(text string) error {
	if _, err := io.WriteString(s.w, text); err != nil {
		s.err = fmt.Errorf("%w: %v", ErrWriteFailure, err)
		return s.err
	}
	return nil
}

// Err returns the sticky write error, if any.
func (s *Sink) Err() error {
	return s.err
}

// colorMode is the tri-state the --no-color/--force-color flags resolve to.
type colorMode int

const (
	colorAuto colorMode = iota
	colorNever
	colorAlways
)

// resolveProfile decides the escape-code budget for a run.
//
// Monochrome themes never emit escapes, whatever the flags say. --no-color
// wins over --force-color. Otherwise color engages only when out is a
// terminal, at whatever depth the environment supports; --force-color
// pretends a terminal is present (for piping into a pager).
func resolveProfile(theme Theme, mode colorMode, out *os.File) termenv.Profile {
	if !theme.Colorized || mode == colorNever {
		return termenv.Ascii
	}
	isTTY := out != nil && term.IsTerminal(int(out.Fd()))
	if !isTTY && mode != colorAlways {
		return termenv.Ascii
	}

	detected := colorprofile.Detect(out, os.Environ())
	switch detected {
	case colorprofile.TrueColor:
		return termenv.TrueColor
	case colorprofile.ANSI256:
		return termenv.ANSI256
	case colorprofile.ANSI:
		return termenv.ANSI
	default:
		if mode == colorAlways {
			// Forced color with no detectable terminal: assume basic ANSI.
			return termenv.ANSI
		}
		return termenv.Ascii
	}
}

// detectDarkBackground queries the terminal, defaulting to dark when the
// output is not a terminal (forced-color pipes, tests).
func detectDarkBackground(out *os.File) bool {
	if out == nil || !term.IsTerminal(int(out.Fd())) {
		return true
	}
	return termenv.NewOutput(out).HasDarkBackground()
}
