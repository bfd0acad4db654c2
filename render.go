package main

import (
	"fmt"
	"strings"

	"github.com/shiroinock/pretty-history-for-claude-code/parser"
)

const (
	// userWrapWidth caps user message lines regardless of terminal width.
	userWrapWidth = 76

	// todoWrapWidth caps todo item lines.
	todoWrapWidth = 70

	// outputHeadLines is how many leading lines of tool output are shown
	// before eliding to "… (N more lines)" plus the final line.
	outputHeadLines = 8

	// bannerMinWidth is the minimum inner width of the welcome banner.
	bannerMinWidth = 53
)

// Block is the rendered form of exactly one Record: a group of lines the
// sink writes together, separated from neighbors by a blank line.
type Block struct {
	Lines []string
}

// Renderer turns classified records into themed text blocks. It keeps one
// piece of state across records: the map of tool invocations seen so far,
// keyed by tool_use_id, so each result renders under the call that produced
// it. Results whose id was never seen render standalone.
type Renderer struct {
	theme Theme
	st    *Styles
	width int
	md    *mdRenderer
	hl    *jsonHL
	calls map[string]parser.ToolUse
}

// NewRenderer builds a renderer for one output run. Markdown and syntax
// highlighting only engage when both the theme and the style profile are
// colorized; monochrome runs pass text through verbatim.
func NewRenderer(theme Theme, st *Styles, width int) *Renderer {
	r := &Renderer{
		theme: theme,
		st:    st,
		width: width,
		calls: make(map[string]parser.ToolUse),
	}
	if theme.Colorized && st.Colorized() {
		r.md = newMarkdownRenderer(st.dark)
		r.hl = newJSONHL(st.profile, st.dark)
	}
	return r
}

// Banner renders the session welcome box, shown once before the first
// record. cwd comes from the first decoded record and may be empty.
func (r *Renderer) Banner(cwd string) Block {
	if r.theme.Name == "plain" {
		line := "=== Session"
		if cwd != "" {
			line += ": " + parser.ShortPath(cwd)
		}
		return Block{Lines: []string{line + " ==="}}
	}

	title := "✻ Welcome to Claude Code!"
	lines := []string{title}
	if cwd != "" {
		lines = append(lines, "", "  cwd: "+parser.ShortPath(cwd))
	}

	inner := bannerMinWidth
	for _, l := range lines {
		if n := len([]rune(l)) + 2; n > inner {
			inner = n
		}
	}

	var out []string
	out = append(out, r.st.Dim.Render("╭"+strings.Repeat("─", inner)+"╮"))
	for _, l := range lines {
		pad := inner - len([]rune(l)) - 1
		out = append(out, r.st.Dim.Render("│")+" "+l+strings.Repeat(" ", pad)+r.st.Dim.Render("│"))
	}
	out = append(out, r.st.Dim.Render("╰"+strings.Repeat("─", inner)+"╯"))
	return Block{Lines: out}
}

// Render produces exactly one Block for rec, whatever its kind.
func (r *Renderer) Render(rec parser.Record) Block {
	switch rec.Kind {
	case parser.KindUser:
		return r.renderUser(rec)
	case parser.KindAssistant:
		return r.renderAssistant(rec)
	case parser.KindToolUse:
		return r.renderToolUse(rec)
	case parser.KindToolResult:
		return r.renderToolResult(rec)
	default:
		return r.renderMeta(rec)
	}
}

func (r *Renderer) renderUser(rec parser.Record) Block {
	prefix := r.theme.User + " "
	indent := strings.Repeat(" ", len([]rune(prefix)))

	var out []string
	for i, line := range wrapText(rec.Text, userWrapWidth) {
		if i == 0 {
			out = append(out, r.st.User.Render(prefix+line))
		} else {
			out = append(out, r.st.User.Render(indent+line))
		}
	}
	if len(out) == 0 {
		out = append(out, r.st.User.Render(prefix))
	}
	return Block{Lines: out}
}

func (r *Renderer) renderAssistant(rec parser.Record) Block {
	var out []string

	// Markdown layout only in colorized interactive runs; monochrome
	// output keeps the source line structure byte for byte.
	text := rec.Text
	if r.md != nil {
		text = r.md.render(text, r.width)
	}
	for i, line := range strings.Split(text, "\n") {
		if i == 0 {
			out = append(out, r.st.Assistant.Render(r.theme.Assistant+" ")+line)
		} else {
			out = append(out, "  "+line)
		}
	}

	if cost := formatCost(rec.Cost); cost != "" {
		out = append(out, r.st.Cost.Render("  "+cost))
	}
	return Block{Lines: out}
}

func (r *Renderer) renderToolUse(rec parser.Record) Block {
	tu := *rec.Tool
	if tu.ID != "" {
		r.calls[tu.ID] = tu
	}

	header := tu.Name
	detail := parser.ToolDetail(tu)
	if detail != "" {
		header += "(" + detail + ")"
	}
	out := []string{r.st.Tool.Render(r.theme.Assistant+" ") + r.st.Tool.Render(header)}

	// Tools with no one-line summary show their raw input, highlighted
	// when the run is colorized.
	if detail == "" && len(tu.Input) > 0 && string(tu.Input) != "{}" {
		input := string(tu.Input)
		if r.hl != nil {
			if hi, ok := r.hl.highlight(input); ok {
				input = strings.TrimRight(hi, "\n")
			}
		}
		for _, line := range capOutput(strings.Split(input, "\n")) {
			out = append(out, r.theme.Nest+" "+line)
		}
	}

	if cost := formatCost(rec.Cost); cost != "" {
		out = append(out, r.st.Cost.Render("  "+cost))
	}
	return Block{Lines: out}
}

func (r *Renderer) renderToolResult(rec parser.Record) Block {
	res := *rec.Result
	call, paired := r.calls[res.ToolUseID]

	var body []string
	payload := parser.DecodePayload(res.Payload)
	switch {
	case res.IsError:
		body = r.errorBody(res)
	case paired:
		body = r.toolBody(call, res, payload)
	default:
		body = r.genericBody(res, payload)
	}
	if len(body) == 0 {
		body = []string{r.st.Dim.Render("(no output)")}
	}

	out := make([]string, 0, len(body)+1)
	if !paired {
		// Result with no visible invocation, e.g. a truncated session.
		out = append(out, r.st.Dim.Render(r.theme.Assistant+" (tool result)"))
	}
	for _, line := range body {
		out = append(out, r.theme.Nest+" "+line)
	}
	return Block{Lines: out}
}

// toolBody renders a result in the shape of the tool that produced it.
func (r *Renderer) toolBody(call parser.ToolUse, res parser.ToolResult, p *parser.ToolPayload) []string {
	switch call.Name {
	case "Bash":
		return r.bashBody(res, p)
	case "Edit", "MultiEdit", "NotebookEdit":
		return r.editBody(res, p)
	case "Read":
		return r.readBody(res, p)
	case "Write":
		return r.writeBody(p)
	case "TodoWrite", "TodoRead":
		return r.todoBody(p)
	default:
		return r.genericBody(res, p)
	}
}

func (r *Renderer) errorBody(res parser.ToolResult) []string {
	text := parser.SanitizeANSI(strings.TrimSpace(res.Content))
	if text == "" {
		text = "(error)"
	}
	var out []string
	for _, line := range capOutput(strings.Split(text, "\n")) {
		out = append(out, r.st.Error.Render(line))
	}
	return out
}

func (r *Renderer) bashBody(res parser.ToolResult, p *parser.ToolPayload) []string {
	stdout, stderr := res.Content, ""
	if p != nil {
		if p.Stdout != "" || p.Stderr != "" {
			stdout, stderr = p.Stdout, p.Stderr
		}
		if p.Interrupted {
			return []string{r.st.Error.Render("(interrupted)")}
		}
	}

	var out []string
	if s := strings.TrimSpace(parser.SanitizeANSI(stdout)); s != "" {
		out = append(out, capOutput(strings.Split(s, "\n"))...)
	}
	if s := strings.TrimSpace(parser.SanitizeANSI(stderr)); s != "" {
		for _, line := range capOutput(strings.Split(s, "\n")) {
			out = append(out, r.st.Error.Render(line))
		}
	}
	return out
}

func (r *Renderer) editBody(res parser.ToolResult, p *parser.ToolPayload) []string {
	if p != nil {
		if len(p.StructuredPatch) > 0 {
			out := []string{r.st.Dim.Render("Updated " + shortFile(p.FilePath))}
			return append(out, renderPatch(p.StructuredPatch, r.st)...)
		}
		if p.OldString != "" || p.NewString != "" {
			out := []string{r.st.Dim.Render("Updated " + shortFile(p.FilePath))}
			return append(out, unifiedDiff(p.OldString, p.NewString, r.st)...)
		}
	}
	return r.genericBody(res, p)
}

func (r *Renderer) readBody(res parser.ToolResult, p *parser.ToolPayload) []string {
	if p != nil && p.File != nil {
		return []string{r.st.Dim.Render(fmt.Sprintf("Read %d lines", p.File.NumLines))}
	}
	if p != nil && p.Content != "" {
		n := strings.Count(p.Content, "\n") + 1
		return []string{r.st.Dim.Render(fmt.Sprintf("Read %d lines", n))}
	}
	return r.genericBody(res, p)
}

func (r *Renderer) writeBody(p *parser.ToolPayload) []string {
	if p != nil && p.FilePath != "" {
		n := 0
		if p.Content != "" {
			n = strings.Count(p.Content, "\n") + 1
		}
		return []string{r.st.Dim.Render(fmt.Sprintf("Wrote %d lines to %s", n, shortFile(p.FilePath)))}
	}
	return []string{r.st.Dim.Render("Wrote file")}
}

func (r *Renderer) todoBody(p *parser.ToolPayload) []string {
	var todos []parser.TodoItem
	if p != nil {
		switch {
		case len(p.NewTodos) > 0:
			todos = p.NewTodos
		case len(p.Todos) > 0:
			todos = p.Todos
		case len(p.OldTodos) > 0:
			todos = p.OldTodos
		}
	}
	if len(todos) == 0 {
		return []string{r.st.Dim.Render("(empty todo list)")}
	}

	var out []string
	for _, t := range todos {
		glyph := r.theme.TodoOpen
		style := r.st.Assistant
		if t.Status == "completed" {
			glyph = r.theme.TodoDone
			style = r.st.Dim
		}
		indent := strings.Repeat(" ", len([]rune(glyph))+1)
		for i, line := range wrapText(t.Content, todoWrapWidth) {
			if i == 0 {
				out = append(out, style.Render(glyph+" "+line))
			} else {
				out = append(out, style.Render(indent+line))
			}
		}
	}
	return out
}

func (r *Renderer) genericBody(res parser.ToolResult, p *parser.ToolPayload) []string {
	text := res.Content
	if text == "" && p != nil {
		text = p.Content
		if text == "" {
			text = p.Stdout
		}
	}
	text = strings.TrimSpace(parser.SanitizeANSI(text))
	if text == "" {
		return nil
	}
	return capOutput(strings.Split(text, "\n"))
}

func (r *Renderer) renderMeta(rec parser.Record) Block {
	return Block{Lines: []string{r.st.Muted.Render(rec.Text)}}
}

// capOutput elides long output to its head plus the final line, with an
// elision marker counting what was dropped.
func capOutput(lines []string) []string {
	if len(lines) <= outputHeadLines+2 {
		return lines
	}
	hidden := len(lines) - outputHeadLines - 1
	out := make([]string, 0, outputHeadLines+2)
	out = append(out, lines[:outputHeadLines]...)
	out = append(out, fmt.Sprintf("… (%d more lines)", hidden))
	out = append(out, lines[len(lines)-1])
	return out
}

func shortFile(p string) string {
	if p == "" {
		return "file"
	}
	return parser.ShortPath(p)
}
