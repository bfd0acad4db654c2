package parser

import (
	"encoding/json"
)

// PatchHunk mirrors one hunk of the structured patch an Edit result carries.
// Lines keep their leading +, - or space marker.
type PatchHunk struct {
	OldStart int      `json:"oldStart"`
	OldLines int      `json:"oldLines"`
	NewStart int      `json:"newStart"`
	NewLines int      `json:"newLines"`
	Lines    []string `json:"lines"`
}

// FileInfo describes the file a Read or Write result touched.
type FileInfo struct {
	FilePath string `json:"filePath"`
	NumLines int    `json:"numLines"`
}

// TodoItem is one entry of a TodoWrite list.
type TodoItem struct {
	Content string `json:"content"`
	Status  string `json:"status"`
}

// ToolPayload is the decoded form of the producer's typed toolUseResult
// object. Only the fields the renderer consumes are mapped; everything else
// stays in the raw JSON.
type ToolPayload struct {
	Stdout          string      `json:"stdout"`
	Stderr          string      `json:"stderr"`
	Interrupted     bool        `json:"interrupted"`
	FilePath        string      `json:"filePath"`
	Content         string      `json:"content"`
	OldString       string      `json:"oldString"`
	NewString       string      `json:"newString"`
	StructuredPatch []PatchHunk `json:"structuredPatch"`
	File            *FileInfo   `json:"file"`
	Todos           []TodoItem  `json:"todos"`
	NewTodos        []TodoItem  `json:"newTodos"`
	OldTodos        []TodoItem  `json:"oldTodos"`
}

// DecodePayload decodes a toolUseResult value. The producer writes three
// shapes: an object (the common case), a bare string (some Bash results),
// and a list of content blocks (agent results). Non-object shapes fold into
// the Content field. Returns nil when the payload is empty or undecodable.
func DecodePayload(raw json.RawMessage) *ToolPayload {
	if len(raw) == 0 {
		return nil
	}

	var p ToolPayload
	if err := json.Unmarshal(raw, &p); err == nil {
		return &p
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return &ToolPayload{Content: s}
	}

	var blocks []textBlockJSON
	if err := json.Unmarshal(raw, &blocks); err == nil {
		var buf []byte
		for _, b := range blocks {
			if b.Text == "" {
				continue
			}
			if len(buf) > 0 {
				buf = append(buf, '\n')
			}
			buf = append(buf, b.Text...)
		}
		return &ToolPayload{Content: string(buf)}
	}

	return nil
}
