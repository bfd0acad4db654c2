package parser_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shiroinock/pretty-history-for-claude-code/parser"
)

func TestSanitizeANSI_SafeColorsPass(t *testing.T) {
	in := "\x1b[31mred\x1b[0m and \x1b[38;5;208morange\x1b[0m"
	if got := parser.SanitizeANSI(in); got != in {
		t.Errorf("safe colors stripped: %q", got)
	}
}

func TestSanitizeANSI_UnsafeStripsAll(t *testing.T) {
	in := "\x1b[31mred\x1b[0m \x1b[2J\x1b[Hcleared"
	got := parser.SanitizeANSI(in)
	if strings.Contains(got, "\x1b[31m") {
		t.Errorf("one unsafe sequence must strip every sequence, got %q", got)
	}
}

func TestSanitizeANSI_NoEscapes(t *testing.T) {
	if got := parser.SanitizeANSI("plain text"); got != "plain text" {
		t.Errorf("got %q", got)
	}
}

func TestSanitizeContent_CommandTags(t *testing.T) {
	in := "<command-name>/compact</command-name><command-args>focus on tests</command-args>"
	if got := parser.SanitizeContent(in); got != "/compact focus on tests" {
		t.Errorf("got %q", got)
	}
}

func TestSanitizeContent_CommandNoArgs(t *testing.T) {
	in := "<command-name>/exit</command-name><command-args></command-args>"
	if got := parser.SanitizeContent(in); got != "/exit" {
		t.Errorf("got %q", got)
	}
}

func TestSanitizeContent_CommandOutput(t *testing.T) {
	in := "<local-command-stdout>Goodbye!</local-command-stdout>"
	if got := parser.SanitizeContent(in); got != "Goodbye!" {
		t.Errorf("got %q", got)
	}
}

func TestSanitizeContent_StripsReminders(t *testing.T) {
	in := "real question <system-reminder>internal stuff</system-reminder>"
	if got := parser.SanitizeContent(in); got != "real question" {
		t.Errorf("got %q", got)
	}
}

func TestExtractText_String(t *testing.T) {
	got := parser.ExtractText(json.RawMessage(`"hello"`))
	if got != "hello" {
		t.Errorf("got %q", got)
	}
}

func TestExtractText_Blocks(t *testing.T) {
	raw := json.RawMessage(`[{"type":"text","text":"one"},{"type":"tool_use","id":"x"},{"type":"text","text":"two"}]`)
	got := parser.ExtractText(raw)
	if got != "one\ntwo" {
		t.Errorf("got %q", got)
	}
}

func TestExtractText_Empty(t *testing.T) {
	if got := parser.ExtractText(nil); got != "" {
		t.Errorf("got %q", got)
	}
}
