package main

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/shiroinock/pretty-history-for-claude-code/parser"
)

// renderPatch renders structured patch hunks the way an editor shows an
// applied edit: right-aligned line numbers, - and + gutters, and inline
// reverse-video highlights on the changed spans of paired lines.
func renderPatch(hunks []parser.PatchHunk, st *Styles) []string {
	var out []string
	for hi, h := range hunks {
		if hi > 0 {
			out = append(out, st.Dim.Render("⋮"))
		}
		out = append(out, renderHunk(h, st)...)
	}
	return out
}

func renderHunk(h parser.PatchHunk, st *Styles) []string {
	numWidth := lineNumWidth(h)
	oldLn := h.OldStart
	newLn := h.NewStart

	var out []string
	for i := 0; i < len(h.Lines); i++ {
		line := h.Lines[i]
		if line == "" {
			continue
		}
		marker, body := line[:1], line[1:]

		switch marker {
		case "-":
			// A removal followed directly by exactly one addition is a
			// modified line; highlight the changed spans inside both.
			if i+1 < len(h.Lines) && strings.HasPrefix(h.Lines[i+1], "+") &&
				(i+2 >= len(h.Lines) || !strings.HasPrefix(h.Lines[i+2], "+")) &&
				!strings.HasPrefix(h.Lines[i+1], "++") {
				added := h.Lines[i+1][1:]
				delHi, addHi := highlightInline(body, added, st)
				out = append(out, gutter(oldLn, numWidth, st)+st.DiffDel.Render("- ")+delHi)
				out = append(out, gutter(newLn, numWidth, st)+st.DiffAdd.Render("+ ")+addHi)
				oldLn++
				newLn++
				i++
				continue
			}
			out = append(out, gutter(oldLn, numWidth, st)+st.DiffDel.Render("- "+body))
			oldLn++
		case "+":
			out = append(out, gutter(newLn, numWidth, st)+st.DiffAdd.Render("+ "+body))
			newLn++
		default:
			out = append(out, gutter(newLn, numWidth, st)+"  "+body)
			oldLn++
			newLn++
		}
	}
	return out
}

func gutter(ln, width int, st *Styles) string {
	return st.LineNo.Render(fmt.Sprintf("%*d ", width, ln))
}

func lineNumWidth(h parser.PatchHunk) int {
	max := h.OldStart + len(h.Lines)
	if n := h.NewStart + len(h.Lines); n > max {
		max = n
	}
	width := len(fmt.Sprintf("%d", max))
	if width < 4 {
		width = 4
	}
	return width
}

// highlightInline diffs two lines character by character and renders the
// differing spans in reverse video. Equal spans keep the diff colors.
func highlightInline(old, new string, st *Styles) (string, string) {
	a, b := explode(old), explode(new)
	m := difflib.NewMatcher(a, b)

	var delOut, addOut strings.Builder
	for _, op := range m.GetOpCodes() {
		oldSpan := strings.Join(a[op.I1:op.I2], "")
		newSpan := strings.Join(b[op.J1:op.J2], "")
		switch op.Tag {
		case 'e':
			delOut.WriteString(st.DiffDel.Render(oldSpan))
			addOut.WriteString(st.DiffAdd.Render(newSpan))
		case 'r':
			delOut.WriteString(st.DiffDelHi.Render(oldSpan))
			addOut.WriteString(st.DiffAddHi.Render(newSpan))
		case 'd':
			delOut.WriteString(st.DiffDelHi.Render(oldSpan))
		case 'i':
			addOut.WriteString(st.DiffAddHi.Render(newSpan))
		}
	}
	return delOut.String(), addOut.String()
}

// explode splits a string into single-rune elements for the matcher, so
// highlight spans never cut a multibyte character in half.
func explode(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// unifiedDiff renders a classic unified diff for edits that carry only the
// old and new strings, with no structured patch.
func unifiedDiff(old, new string, st *Styles) []string {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:       difflib.SplitLines(old),
		B:       difflib.SplitLines(new),
		Context: 2,
	})
	if err != nil || text == "" {
		return nil
	}

	var out []string
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
			// File headers carry no information here.
		case strings.HasPrefix(line, "@@"):
			out = append(out, st.Dim.Render(line))
		case strings.HasPrefix(line, "+"):
			out = append(out, st.DiffAdd.Render(line))
		case strings.HasPrefix(line, "-"):
			out = append(out, st.DiffDel.Render(line))
		default:
			out = append(out, line)
		}
	}
	return out
}
