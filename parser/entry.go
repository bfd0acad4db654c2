package parser

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedRecord marks lines that cannot be decoded into an Entry.
// Callers skip these lines with a warning; they are never fatal.
var ErrMalformedRecord = errors.New("malformed record")

// Entry represents a raw JSONL line from a session history file.
// Fields map directly to the on-disk format at
// ~/.claude/projects/{project}/{session}.jsonl.
//
// Two aliases are accepted for forward compatibility with simplified
// producers: a top-level "kind" stands in for "type", and a top-level
// "content" stands in for "message.content" when no message object is
// present.
type Entry struct {
	Type        string          `json:"type"`
	Kind        string          `json:"kind"`
	UUID        string          `json:"uuid"`
	Timestamp   string          `json:"timestamp"`
	Cwd         string          `json:"cwd"`
	IsMeta      bool            `json:"isMeta"`
	IsSidechain bool            `json:"isSidechain"`
	CostUSD     *float64        `json:"costUSD"`
	DurationMs  *int64          `json:"durationMs"`
	Content     json.RawMessage `json:"content"`
	Message     struct {
		Role    string          `json:"role"`
		Content json.RawMessage `json:"content"`
		Model   string          `json:"model"`
		Usage   struct {
			InputTokens              int `json:"input_tokens"`
			OutputTokens             int `json:"output_tokens"`
			CacheReadInputTokens     int `json:"cache_read_input_tokens"`
			CacheCreationInputTokens int `json:"cache_creation_input_tokens"`
		} `json:"usage"`
	} `json:"message"`
	ToolUseResult json.RawMessage `json:"toolUseResult"`
}

// ParseEntry parses a single JSONL line into an Entry. Invalid JSON and
// entries with no record type return an error wrapping ErrMalformedRecord.
func ParseEntry(line []byte) (Entry, error) {
	var e Entry
	if err := json.Unmarshal(line, &e); err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if e.Type == "" {
		e.Type = e.Kind
	}
	if len(e.Message.Content) == 0 && len(e.Content) > 0 {
		e.Message.Content = e.Content
	}
	if e.Type == "" {
		return Entry{}, fmt.Errorf("%w: missing type field", ErrMalformedRecord)
	}
	return e, nil
}
