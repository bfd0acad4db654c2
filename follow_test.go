package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

func TestFollower_DrainIncremental(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.jsonl")
	line1 := `{"type":"user","message":{"content":"first"}}` + "\n"
	if err := os.WriteFile(path, []byte(line1), 0o644); err != nil {
		t.Fatal(err)
	}

	th, err := LookupTheme("plain")
	if err != nil {
		t.Fatal(err)
	}
	var out strings.Builder
	f := &follower{
		path: path,
		ren:  NewRenderer(th, NewStyles(termenv.Ascii, true), 100),
		sink: NewSink(&out),
	}

	if err := f.drain(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "* first") {
		t.Fatalf("initial drain output = %q", out.String())
	}
	if f.offset != int64(len(line1)) {
		t.Errorf("offset = %d, want %d", f.offset, len(line1))
	}

	// Append a second entry and drain again: only the new record renders.
	line2 := `{"type":"user","message":{"content":"second"}}` + "\n"
	appendFile(t, path, line2)
	before := out.Len()
	if err := f.drain(); err != nil {
		t.Fatal(err)
	}
	added := out.String()[before:]
	if strings.Contains(added, "first") {
		t.Errorf("old records re-rendered: %q", added)
	}
	if !strings.Contains(added, "* second") {
		t.Errorf("new record missing: %q", added)
	}
	if f.offset != int64(len(line1)+len(line2)) {
		t.Errorf("offset = %d", f.offset)
	}
	if n := strings.Count(out.String(), "=== Session"); n != 1 {
		t.Errorf("banner rendered %d times", n)
	}
}

func TestFollower_TornLineHeldUntilComplete(t *testing.T) {
	// A record torn across appends must not be warned about or rendered
	// until its newline arrives, and must render exactly once after.
	path := filepath.Join(t.TempDir(), "session.jsonl")
	whole := `{"type":"user","message":{"content":"whole"}}` + "\n"
	entry := `{"type":"user","message":{"content":"later"}}` + "\n"
	cut := 20
	if err := os.WriteFile(path, []byte(whole+entry[:cut]), 0o644); err != nil {
		t.Fatal(err)
	}

	th, err := LookupTheme("plain")
	if err != nil {
		t.Fatal(err)
	}
	var out strings.Builder
	var warned int
	f := &follower{
		path: path,
		ren:  NewRenderer(th, NewStyles(termenv.Ascii, true), 100),
		sink: NewSink(&out),
		warn: func(int, error) { warned++ },
	}

	if err := f.drain(); err != nil {
		t.Fatal(err)
	}
	if warned != 0 {
		t.Fatalf("partial trailing line warned about %d time(s)", warned)
	}
	if strings.Contains(out.String(), "later") {
		t.Fatalf("partial line rendered: %q", out.String())
	}
	if f.offset != int64(len(whole)) {
		t.Errorf("offset = %d, want %d", f.offset, len(whole))
	}

	appendFile(t, path, entry[cut:])
	before := out.Len()
	if err := f.drain(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String()[before:], "* later") {
		t.Errorf("completed record missing: %q", out.String()[before:])
	}
	if n := strings.Count(out.String(), "later"); n != 1 {
		t.Errorf("record rendered %d times:\n%s", n, out.String())
	}
	if warned != 0 {
		t.Errorf("warned %d time(s)", warned)
	}
	if f.offset != int64(len(whole)+len(entry)) {
		t.Errorf("final offset = %d, want %d", f.offset, len(whole)+len(entry))
	}
}

func TestFollower_DrainNothingNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.jsonl")
	content := `{"type":"user","message":{"content":"x"}}` + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	th, _ := LookupTheme("plain")
	var out strings.Builder
	f := &follower{
		path:   path,
		offset: int64(len(content)),
		ren:    NewRenderer(th, NewStyles(termenv.Ascii, true), 100),
		sink:   NewSink(&out),
	}
	if err := f.drain(); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Errorf("nothing new to render, got %q", out.String())
	}
}

func appendFile(t *testing.T, path, data string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := f.WriteString(data); err != nil {
		t.Fatal(err)
	}
}
