package main

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

// mdRenderer caches a glamour terminal renderer at a specific width.
// Recreates the renderer when the width changes. Only used when the run is
// colorized; monochrome output keeps assistant text verbatim so piped
// output stays stable.
type mdRenderer struct {
	renderer *glamour.TermRenderer
	style    ansi.StyleConfig
	width    int
}

func newMarkdownRenderer(darkBackground bool) *mdRenderer {
	style := styles.LightStyleConfig
	if darkBackground {
		style = styles.DarkStyleConfig
	}
	// Lipgloss containers handle their own padding.
	style.Document.Margin = uintPtr(0)
	return &mdRenderer{style: style}
}

func uintPtr(v uint) *uint { return &v }

// render renders markdown for terminal display. Returns the original
// content on any error.
func (r *mdRenderer) render(content string, width int) string {
	if width <= 0 {
		return content
	}
	if r.renderer == nil || r.width != width {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStyles(r.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return content
		}
		r.renderer = renderer
		r.width = width
	}
	out, err := r.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}
