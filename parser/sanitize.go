package parser

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Noise tag patterns - producer-generated metadata stripped from display content.
var noiseTagPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<local-command-caveat>.*?</local-command-caveat>`),
	regexp.MustCompile(`(?is)<system-reminder>.*?</system-reminder>`),
}

// Command tag patterns - removed after extracting the display form.
var commandTagPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<command-name>.*?</command-name>`),
	regexp.MustCompile(`(?is)<command-message>.*?</command-message>`),
	regexp.MustCompile(`(?is)<command-args>.*?</command-args>`),
}

// safeANSIPatterns is the allowlist of escape sequences that survive
// SanitizeANSI: basic SGR colors and 256-color fore/background codes.
// Cursor movement, screen clearing, and OSC sequences never do.
var safeANSIPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\x1b\[[0-9]{1,2}m`),
	regexp.MustCompile(`\x1b\[[0-9]{1,2};[0-9]{1,2}m`),
	regexp.MustCompile(`\x1b\[38;5;[0-9]{1,3}m`),
	regexp.MustCompile(`\x1b\[48;5;[0-9]{1,3}m`),
}

var anyANSIPattern = regexp.MustCompile(`\x1b\[[^m]*m`)

// SanitizeANSI removes escape sequences from untrusted content. Content
// containing only allowlisted color codes passes through unchanged; if any
// sequence outside the allowlist is present, every sequence is stripped.
func SanitizeANSI(s string) string {
	if !strings.Contains(s, "\x1b[") {
		return s
	}
	rest := s
	for _, pat := range safeANSIPatterns {
		rest = pat.ReplaceAllString(rest, "")
	}
	if strings.Contains(rest, "\x1b[") {
		return anyANSIPattern.ReplaceAllString(s, "")
	}
	return s
}

// SanitizeContent removes noise XML tags, converts command tags into a
// human-readable slash command form, and sanitizes escape sequences.
func SanitizeContent(s string) string {
	if IsCommandOutput(s) {
		if out := ExtractCommandOutput(s); out != "" {
			return SanitizeANSI(out)
		}
	}

	if strings.HasPrefix(s, "<command-name>") || strings.HasPrefix(s, "<command-message>") {
		if display := extractCommandDisplay(s); display != "" {
			return display
		}
	}

	result := s
	for _, pat := range noiseTagPatterns {
		result = pat.ReplaceAllString(result, "")
	}
	for _, pat := range commandTagPatterns {
		result = pat.ReplaceAllString(result, "")
	}

	return SanitizeANSI(strings.TrimSpace(result))
}

// extractCommandDisplay converts
// <command-name>/foo</command-name><command-args>bar</command-args>
// into "/foo bar".
func extractCommandDisplay(s string) string {
	m := reCommandName.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	name := "/" + strings.TrimSpace(m[1])
	if am := reCommandArgs.FindStringSubmatch(s); am != nil {
		if args := strings.TrimSpace(am[1]); args != "" {
			return name + " " + args
		}
	}
	return name
}

// ExtractText pulls display text from a json.RawMessage that is either a
// JSON string or an array of content blocks. Text blocks are joined with
// newlines.
func ExtractText(content json.RawMessage) string {
	if len(content) == 0 {
		return ""
	}

	// Try string first (the common case for user messages).
	var s string
	if err := json.Unmarshal(content, &s); err == nil {
		return s
	}

	var blocks []textBlockJSON
	if err := json.Unmarshal(content, &blocks); err != nil {
		return ""
	}

	var parts []string
	for _, b := range blocks {
		if b.Type == "text" && b.Text != "" {
			parts = append(parts, b.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// ExtractCommandOutput returns the inner text from <local-command-stdout>
// or <local-command-stderr> wrapper tags. Returns "" if neither is found.
func ExtractCommandOutput(s string) string {
	if m := reStdout.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := reStderr.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// IsCommandOutput returns true when content starts with a local-command output tag.
func IsCommandOutput(s string) bool {
	return strings.HasPrefix(s, localCommandStdoutTag) || strings.HasPrefix(s, localCommandStderrTag)
}
