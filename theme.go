package main

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ErrUnknownTheme is returned when a theme name does not resolve. Surfaced
// before any input is read so a typo never half-renders a session.
var ErrUnknownTheme = errors.New("unknown theme")

// Theme is a pure lookup table of glyphs plus a colorization flag. Layout
// logic never branches on the theme name, only on these fields.
type Theme struct {
	Name      string
	User      string // user message prefix
	Assistant string // assistant message prefix
	Nest      string // tool result nesting prefix
	TodoDone  string
	TodoOpen  string
	Colorized bool // false means no escape codes ever, regardless of terminal
}

var themes = map[string]Theme{
	"default": {
		Name:      "default",
		User:      "▶",
		Assistant: ">",
		Nest:      "│",
		TodoDone:  "✓",
		TodoOpen:  "○",
		Colorized: true,
	},
	"minimal": {
		Name:      "minimal",
		User:      "-",
		Assistant: ">",
		Nest:      " ",
		TodoDone:  "[x]",
		TodoOpen:  "[ ]",
		Colorized: false,
	},
	"classic": {
		Name:      "classic",
		User:      "●",
		Assistant: ">",
		Nest:      "⎿",
		TodoDone:  "✓",
		TodoOpen:  "○",
		Colorized: true,
	},
	"plain": {
		Name:      "plain",
		User:      "*",
		Assistant: ">",
		Nest:      "  ",
		TodoDone:  "[x]",
		TodoOpen:  "[ ]",
		Colorized: false,
	},
}

// LookupTheme resolves a theme by name, case-sensitively.
func LookupTheme(name string) (Theme, error) {
	t, ok := themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownTheme, name, ThemeNames())
	}
	return t, nil
}

// ThemeNames returns the registered theme names, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// -- Colors ---------------------------------------------------------------
// AdaptiveColor throughout for dark/light terminal support. Light values
// use ANSI 0-15 for accents and 256-color codes for grays; dark values are
// 256-color codes tuned for dark backgrounds.

var (
	colorUser      = ac("4", "75")  // blue
	colorAssistant = ac("0", "252") // primary text
	colorTool      = ac("6", "80")  // cyan
	colorDim       = ac("242", "243")
	colorMuted     = ac("245", "240")
	colorError     = ac("1", "196")
	colorCost      = ac("3", "208")
	colorDiffAdd   = ac("2", "114")
	colorDiffDel   = ac("1", "204")
	colorLineNo    = ac("245", "240")
)

// ac is a shorthand constructor for lipgloss.AdaptiveColor.
func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

// Styles holds the resolved lipgloss styles for one render run. Built from
// an explicit color profile so output is byte-deterministic: the same
// profile always yields the same bytes, and termenv.Ascii yields none.
type Styles struct {
	profile   termenv.Profile
	dark      bool
	User      lipgloss.Style
	Assistant lipgloss.Style
	Tool      lipgloss.Style
	Detail    lipgloss.Style
	Dim       lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Cost      lipgloss.Style
	DiffAdd   lipgloss.Style
	DiffDel   lipgloss.Style
	DiffAddHi lipgloss.Style
	DiffDelHi lipgloss.Style
	LineNo    lipgloss.Style
}

// NewStyles builds styles against the given profile and background. The
// renderer writes nothing; it only carries profile state for the styles.
func NewStyles(profile termenv.Profile, darkBackground bool) *Styles {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(profile)
	r.SetHasDarkBackground(darkBackground)

	return &Styles{
		profile:   profile,
		dark:      darkBackground,
		User:      r.NewStyle().Bold(true).Foreground(colorUser),
		Assistant: r.NewStyle().Foreground(colorAssistant),
		Tool:      r.NewStyle().Bold(true).Foreground(colorTool),
		Detail:    r.NewStyle().Foreground(colorDim),
		Dim:       r.NewStyle().Foreground(colorDim),
		Muted:     r.NewStyle().Foreground(colorMuted),
		Error:     r.NewStyle().Bold(true).Foreground(colorError),
		Cost:      r.NewStyle().Foreground(colorCost),
		DiffAdd:   r.NewStyle().Foreground(colorDiffAdd),
		DiffDel:   r.NewStyle().Foreground(colorDiffDel),
		DiffAddHi: r.NewStyle().Foreground(colorDiffAdd).Reverse(true),
		DiffDelHi: r.NewStyle().Foreground(colorDiffDel).Reverse(true),
		LineNo:    r.NewStyle().Foreground(colorLineNo),
	}
}

// Colorized reports whether this style set can emit escape codes at all.
func (s *Styles) Colorized() bool {
	return s.profile != termenv.Ascii
}
