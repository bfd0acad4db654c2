package main

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/muesli/termenv"

	"github.com/shiroinock/pretty-history-for-claude-code/parser"
)

func TestRenderPatch_LineNumbersAndMarkers(t *testing.T) {
	st := NewStyles(termenv.Ascii, true)
	hunks := []parser.PatchHunk{{
		OldStart: 3, OldLines: 2, NewStart: 3, NewLines: 2,
		Lines: []string{" keep", "-removed", "+added", " tail"},
	}}

	out := renderPatch(hunks, st)
	if len(out) != 4 {
		t.Fatalf("got %d lines: %v", len(out), out)
	}
	if out[0] != "   3   keep" {
		t.Errorf("context line = %q", out[0])
	}
	if !strings.Contains(out[1], "- removed") {
		t.Errorf("removal line = %q", out[1])
	}
	if !strings.Contains(out[2], "+ added") {
		t.Errorf("addition line = %q", out[2])
	}
	// Line numbers advance independently per side.
	if !strings.HasPrefix(out[1], "   4 ") || !strings.HasPrefix(out[2], "   4 ") {
		t.Errorf("gutters = %q / %q", out[1], out[2])
	}
	if !strings.HasPrefix(out[3], "   5 ") {
		t.Errorf("tail gutter = %q", out[3])
	}
}

func TestRenderPatch_HunkSeparator(t *testing.T) {
	st := NewStyles(termenv.Ascii, true)
	hunks := []parser.PatchHunk{
		{OldStart: 1, NewStart: 1, Lines: []string{"+a"}},
		{OldStart: 50, NewStart: 51, Lines: []string{"+b"}},
	}
	out := renderPatch(hunks, st)
	if len(out) != 3 || out[1] != "⋮" {
		t.Fatalf("expected separator between hunks: %v", out)
	}
}

func TestHighlightInline_Ascii(t *testing.T) {
	st := NewStyles(termenv.Ascii, true)
	del, add := highlightInline("return nil, err", "return x, err", st)
	if del != "return nil, err" {
		t.Errorf("del = %q", del)
	}
	if add != "return x, err" {
		t.Errorf("add = %q", add)
	}
}

func TestHighlightInline_MultibyteRunesKeptWhole(t *testing.T) {
	// Highlight spans must fall on rune boundaries; a byte-granular diff
	// would split é/á across a style reset.
	st := NewStyles(termenv.ANSI, true)
	del, add := highlightInline("héllo wörld", "hállo wörld", st)

	for _, s := range []string{del, add} {
		if !utf8.ValidString(s) {
			t.Errorf("invalid UTF-8 in output: %q", s)
		}
	}
	if !strings.Contains(del, "é") {
		t.Errorf("changed rune split in del: %q", del)
	}
	if !strings.Contains(add, "á") {
		t.Errorf("changed rune split in add: %q", add)
	}
	if !strings.Contains(del, "wörld") || !strings.Contains(add, "wörld") {
		t.Errorf("equal span mangled: %q / %q", del, add)
	}
}

func TestUnifiedDiff(t *testing.T) {
	st := NewStyles(termenv.Ascii, true)
	out := unifiedDiff("a\nb\nc\n", "a\nx\nc\n", st)

	joined := strings.Join(out, "\n")
	if strings.Contains(joined, "---") || strings.Contains(joined, "+++") {
		t.Errorf("file headers should be dropped:\n%s", joined)
	}
	if !strings.Contains(joined, "-b") || !strings.Contains(joined, "+x") {
		t.Errorf("missing change lines:\n%s", joined)
	}
	if !strings.Contains(joined, "@@") {
		t.Errorf("missing hunk header:\n%s", joined)
	}
}

func TestUnifiedDiff_Identical(t *testing.T) {
	st := NewStyles(termenv.Ascii, true)
	if out := unifiedDiff("same\n", "same\n", st); out != nil {
		t.Errorf("identical input should produce nothing, got %v", out)
	}
}
