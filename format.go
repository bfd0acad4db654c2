package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/shiroinock/pretty-history-for-claude-code/parser"
)

// formatCost renders the cost annotation line: "Cost: $0.0234 (5.2s)".
// Four decimals for costs a cent and up, six below so tiny costs don't
// flatten to $0.0000. Nil means no annotation at all.
func formatCost(c *parser.CostInfo) string {
	if c == nil {
		return ""
	}
	var cost string
	if c.USD >= 0.01 {
		cost = fmt.Sprintf("$%.4f", c.USD)
	} else {
		cost = fmt.Sprintf("$%.6f", c.USD)
	}
	if c.DurationMs > 0 {
		return fmt.Sprintf("Cost: %s (%.1fs)", cost, float64(c.DurationMs)/1000)
	}
	return "Cost: " + cost
}

// formatSize renders a byte count for the picker, e.g. "1.2 MB".
func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// formatRelativeTime renders an mtime for the picker: "3m ago", "2h ago",
// "5d ago", falling back to a date beyond a month.
func formatRelativeTime(t time.Time, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}

// wrapText wraps s to width columns on word boundaries. Words longer than
// the width are kept intact on their own line rather than broken. Existing
// newlines are respected as paragraph breaks.
func wrapText(s string, width int) []string {
	if width <= 0 {
		return strings.Split(s, "\n")
	}

	var out []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if len(line)+1+len(w) <= width {
				line += " " + w
			} else {
				out = append(out, line)
				line = w
			}
		}
		out = append(out, line)
	}
	return out
}
