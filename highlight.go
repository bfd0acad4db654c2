package main

import (
	"bytes"
	"encoding/json"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/muesli/termenv"
)

// jsonHL syntax-highlights JSON tool inputs for terminal display. Built
// against an explicit color profile so the same run always emits the same
// bytes. Chroma objects are safe for reuse.
type jsonHL struct {
	lexer     chroma.Lexer
	formatter chroma.Formatter
	style     *chroma.Style
}

func newJSONHL(profile termenv.Profile, darkBackground bool) *jsonHL {
	styleName := "github"
	if darkBackground {
		styleName = "dracula"
	}
	return &jsonHL{
		lexer:     chroma.Coalesce(lexers.Get("json")),
		formatter: formatters.Get(chromaFormatter(profile)),
		style:     styles.Get(styleName),
	}
}

// highlight validates, pretty-prints, and syntax-highlights a JSON string.
// Returns ("", false) for non-JSON input so the caller falls back to plain
// rendering.
func (h *jsonHL) highlight(s string) (string, bool) {
	raw := []byte(s)
	if !json.Valid(raw) {
		return "", false
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", false
	}

	iterator, err := h.lexer.Tokenise(nil, buf.String())
	if err != nil {
		return "", false
	}

	var out bytes.Buffer
	if err := h.formatter.Format(&out, h.style, iterator); err != nil {
		return "", false
	}
	return out.String(), true
}

// chromaFormatter maps termenv profiles to chroma terminal formatter names.
func chromaFormatter(profile termenv.Profile) string {
	switch profile {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	case termenv.ANSI:
		return "terminal16"
	default:
		return "noop"
	}
}
