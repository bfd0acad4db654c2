package parser

import (
	"encoding/json"
	"strings"
	"time"
)

// RecordKind discriminates the classified record categories.
type RecordKind int

const (
	KindUser RecordKind = iota
	KindAssistant
	KindToolUse
	KindToolResult
	KindMeta
)

func (k RecordKind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindAssistant:
		return "assistant"
	case KindToolUse:
		return "tool_use"
	case KindToolResult:
		return "tool_result"
	default:
		return "meta"
	}
}

// Usage holds token counts for a single API response.
type Usage struct {
	InputTokens         int
	OutputTokens        int
	CacheReadTokens     int
	CacheCreationTokens int
}

// TotalTokens returns the sum of all token fields.
func (u Usage) TotalTokens() int {
	return u.InputTokens + u.OutputTokens + u.CacheReadTokens + u.CacheCreationTokens
}

// CostInfo carries the optional cost/duration metadata an entry may stamp
// on its records. A nil *CostInfo means the metadata was absent, which
// renders nothing (no placeholder).
type CostInfo struct {
	USD        float64
	DurationMs int64
	Usage      Usage
}

// ToolUse describes a tool invocation block.
type ToolUse struct {
	ID    string
	Name  string
	Input json.RawMessage
}

// ToolResult describes a tool result block. ToolUseID is the pairing key:
// it must equal the ID of the invoking ToolUse. Payload holds the
// producer's typed toolUseResult object for tool-specific rendering.
type ToolResult struct {
	ToolUseID string
	Content   string
	IsError   bool
	Payload   json.RawMessage
}

// Record is one classified, immutable unit of the transcript. Exactly one
// rendered block is produced per Record, in input order.
type Record struct {
	Kind      RecordKind
	Timestamp time.Time
	Cwd       string
	Text      string
	Model     string
	Tool      *ToolUse
	Result    *ToolResult
	Cost      *CostInfo
}

// noiseEntryTypes never produce visible records.
var noiseEntryTypes = map[string]bool{
	"summary":               true,
	"file-history-snapshot": true,
	"queue-operation":       true,
	"progress":              true,
}

// hardNoiseTags are XML tags whose sole presence means the entire user
// message is producer-internal noise.
var hardNoiseTags = []string{
	"<local-command-caveat>",
	"<system-reminder>",
}

// Classify maps a raw Entry to zero or more Records. An assistant entry
// fans out into one KindAssistant record for its text plus one KindToolUse
// per tool_use block; a user entry carrying tool results fans out into one
// KindToolResult per tool_result block. Noise entries produce nothing.
// Entry types this tool does not recognize degrade to a single KindMeta
// record so future producer fields never abort a render.
func Classify(e Entry) []Record {
	if e.IsSidechain || noiseEntryTypes[e.Type] {
		return nil
	}

	ts := parseTimestamp(e.Timestamp)

	switch e.Type {
	case "user":
		return classifyUser(e, ts)
	case "assistant":
		return classifyAssistant(e, ts)
	default:
		text := Truncate(SanitizeContent(ExtractText(e.Message.Content)), 120)
		if text == "" {
			text = "(" + e.Type + ")"
		}
		return []Record{{
			Kind:      KindMeta,
			Timestamp: ts,
			Cwd:       e.Cwd,
			Text:      text,
		}}
	}
}

func classifyUser(e Entry, ts time.Time) []Record {
	// Tool results ride on user-type entries.
	if results := extractToolResults(e.Message.Content); len(results) > 0 {
		recs := make([]Record, 0, len(results))
		for i := range results {
			results[i].Payload = e.ToolUseResult
			recs = append(recs, Record{
				Kind:      KindToolResult,
				Timestamp: ts,
				Cwd:       e.Cwd,
				Result:    &results[i],
			})
		}
		return recs
	}
	if len(e.ToolUseResult) > 0 {
		// Result payload without content blocks (truncated or hand-edited
		// file). No pairing key -- renders standalone.
		return []Record{{
			Kind:      KindToolResult,
			Timestamp: ts,
			Cwd:       e.Cwd,
			Result:    &ToolResult{Payload: e.ToolUseResult},
		}}
	}

	content := ExtractText(e.Message.Content)
	trimmed := strings.TrimSpace(content)

	// Producer-internal noise: caveats, reminders, interruptions,
	// empty command output.
	if e.IsMeta || trimmed == "" {
		return nil
	}
	for _, tag := range hardNoiseTags {
		closeTag := strings.Replace(tag, "<", "</", 1)
		if strings.HasPrefix(trimmed, tag) && strings.HasSuffix(trimmed, closeTag) {
			return nil
		}
	}
	if strings.HasPrefix(trimmed, "[Request interrupted by user") {
		return nil
	}

	text := SanitizeContent(content)
	if text == "" {
		return nil
	}
	return []Record{{
		Kind:      KindUser,
		Timestamp: ts,
		Cwd:       e.Cwd,
		Text:      text,
	}}
}

func classifyAssistant(e Entry, ts time.Time) []Record {
	if e.Message.Model == "<synthetic>" {
		return nil
	}

	var recs []Record

	if text := SanitizeContent(ExtractText(e.Message.Content)); text != "" {
		recs = append(recs, Record{
			Kind:      KindAssistant,
			Timestamp: ts,
			Cwd:       e.Cwd,
			Text:      text,
			Model:     e.Message.Model,
		})
	}

	for _, tu := range extractToolUses(e.Message.Content) {
		tu := tu
		recs = append(recs, Record{
			Kind:      KindToolUse,
			Timestamp: ts,
			Cwd:       e.Cwd,
			Model:     e.Message.Model,
			Tool:      &tu,
		})
	}

	// Cost metadata attaches to the first record of the response, matching
	// the "shown once at the top" layout of the transcript.
	if len(recs) > 0 {
		if cost := costInfo(e); cost != nil {
			recs[0].Cost = cost
		}
	}
	return recs
}

// costInfo builds CostInfo when the entry carries cost or duration fields.
// Returns nil when both are absent so the renderer emits no annotation.
func costInfo(e Entry) *CostInfo {
	if e.CostUSD == nil && e.DurationMs == nil {
		return nil
	}
	c := &CostInfo{
		Usage: Usage{
			InputTokens:         e.Message.Usage.InputTokens,
			OutputTokens:        e.Message.Usage.OutputTokens,
			CacheReadTokens:     e.Message.Usage.CacheReadInputTokens,
			CacheCreationTokens: e.Message.Usage.CacheCreationInputTokens,
		},
	}
	if e.CostUSD != nil {
		c.USD = *e.CostUSD
	}
	if e.DurationMs != nil {
		c.DurationMs = *e.DurationMs
	}
	return c
}

// extractToolUses pulls tool_use blocks from an assistant content array.
func extractToolUses(raw json.RawMessage) []ToolUse {
	var blocks []contentBlockJSON
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return nil
	}
	var uses []ToolUse
	for _, b := range blocks {
		if b.Type == "tool_use" && b.Name != "" {
			uses = append(uses, ToolUse{ID: b.ID, Name: b.Name, Input: b.Input})
		}
	}
	return uses
}

// extractToolResults pulls tool_result blocks from a user content array.
func extractToolResults(raw json.RawMessage) []ToolResult {
	var blocks []contentBlockJSON
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return nil
	}
	var results []ToolResult
	for _, b := range blocks {
		if b.Type != "tool_result" {
			continue
		}
		results = append(results, ToolResult{
			ToolUseID: b.ToolUseID,
			Content:   stringifyContent(b.Content),
			IsError:   b.IsError,
		})
	}
	return results
}

// stringifyContent converts tool_result content (a string or an array of
// text blocks) to a plain string.
func stringifyContent(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var blocks []textBlockJSON
	if err := json.Unmarshal(raw, &blocks); err == nil {
		var parts []string
		for _, b := range blocks {
			if b.Text != "" {
				parts = append(parts, b.Text)
			}
		}
		return strings.Join(parts, "\n")
	}

	return string(raw)
}

// parseTimestamp parses an ISO 8601 timestamp. Returns zero time on failure.
func parseTimestamp(s string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	// Format without timezone that some producers emit.
	if t, err := time.Parse("2006-01-02T15:04:05.999999999", s); err == nil {
		return t
	}
	return time.Time{}
}
