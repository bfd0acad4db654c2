package parser

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// InputString returns the string value of a key in a tool input object, or
// "" when the key is absent or not a string.
func InputString(input json.RawMessage, key string) string {
	if len(input) == 0 {
		return ""
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(input, &m); err != nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(m[key], &s); err != nil {
		return ""
	}
	return s
}

// ToolDetail produces the short parenthetical shown next to a tool name in
// the transcript, e.g. `Read(main.go)` or `Bash(ls -la)`. Tools with no
// useful summary return "".
func ToolDetail(tu ToolUse) string {
	switch tu.Name {
	case "Read", "Write", "Edit", "MultiEdit", "NotebookEdit":
		if p := InputString(tu.Input, "file_path"); p != "" {
			return filepath.Base(p)
		}
	case "Glob", "Grep":
		return InputString(tu.Input, "pattern")
	case "Bash":
		return Truncate(strings.ReplaceAll(InputString(tu.Input, "command"), "\n", " "), 60)
	case "Task":
		return Truncate(InputString(tu.Input, "description"), 60)
	case "WebFetch":
		if raw := InputString(tu.Input, "url"); raw != "" {
			if u, err := url.Parse(raw); err == nil && u.Host != "" {
				return u.Host
			}
			return Truncate(raw, 60)
		}
	case "WebSearch":
		return Truncate(InputString(tu.Input, "query"), 60)
	case "TodoWrite":
		var m struct {
			Todos []json.RawMessage `json:"todos"`
		}
		if err := json.Unmarshal(tu.Input, &m); err == nil && len(m.Todos) > 0 {
			return strconv.Itoa(len(m.Todos)) + " items"
		}
	}
	return ""
}

// Truncate shortens s to max runes, appending an ellipsis when trimmed.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return strings.TrimRight(string(runes[:max-1]), " ") + "…"
}

// ShortPath replaces a home directory prefix with ~ for display.
func ShortPath(p string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return p
	}
	if p == home {
		return "~"
	}
	if strings.HasPrefix(p, home+string(filepath.Separator)) {
		return "~" + p[len(home):]
	}
	return p
}
