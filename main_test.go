package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeHistory(t *testing.T, base, project, session string, mtime time.Time) string {
	t.Helper()
	dir := filepath.Join(base, project)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, session+".jsonl")
	if err := os.WriteFile(path, []byte(`{"type":"user","message":{"content":"x"}}`+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolveInput_ExplicitFile(t *testing.T) {
	base := t.TempDir()
	path := writeHistory(t, base, "-p", "s", time.Now())

	got, err := resolveInput(path, base, options{})
	if err != nil {
		t.Fatal(err)
	}
	if got != path {
		t.Errorf("got %q", got)
	}
}

func TestResolveInput_Stdin(t *testing.T) {
	got, err := resolveInput("-", t.TempDir(), options{})
	if err != nil || got != "-" {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestResolveInput_MissingFile(t *testing.T) {
	_, err := resolveInput(filepath.Join(t.TempDir(), "gone.jsonl"), t.TempDir(), options{})
	if err == nil || !strings.Contains(err.Error(), "file not found") {
		t.Fatalf("err = %v", err)
	}
}

func TestResolveInput_LatestSession(t *testing.T) {
	base := t.TempDir()
	writeHistory(t, base, "-a", "old", time.Now().Add(-time.Hour))
	newest := writeHistory(t, base, "-b", "new", time.Now())

	got, err := resolveInput("", base, options{})
	if err != nil {
		t.Fatal(err)
	}
	if got != newest {
		t.Errorf("got %q, want %q", got, newest)
	}
}

func TestResolveInput_Project(t *testing.T) {
	base := t.TempDir()
	writeHistory(t, base, "-home-me-other", "s1", time.Now())
	want := writeHistory(t, base, "-home-me-target", "s2", time.Now().Add(-time.Minute))

	got, err := resolveInput("", base, options{project: "target"})
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestListSessions(t *testing.T) {
	base := t.TempDir()
	writeHistory(t, base, "-proj", "abc123", time.Now())

	var out strings.Builder
	if err := listSessions(&out, base); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "-proj") || !strings.Contains(out.String(), "abc123") {
		t.Errorf("output = %q", out.String())
	}
}

func TestApplyConfig_FlagsWin(t *testing.T) {
	cmd := newRootCmd()
	opts := options{theme: "plain"}
	applyConfig(&opts, Config{Theme: "classic", Width: 120}, cmd)

	if opts.theme != "plain" {
		t.Errorf("explicit theme overridden: %q", opts.theme)
	}
	if opts.width != 120 {
		t.Errorf("config width not applied: %d", opts.width)
	}
}

func TestApplyConfig_Defaults(t *testing.T) {
	cmd := newRootCmd()
	opts := options{}
	applyConfig(&opts, Config{}, cmd)
	if opts.theme != "default" {
		t.Errorf("theme = %q", opts.theme)
	}
}

func TestApplyConfig_ColorNever(t *testing.T) {
	cmd := newRootCmd()
	opts := options{}
	applyConfig(&opts, Config{Color: "never"}, cmd)
	if !opts.noColor {
		t.Error("color: never should set noColor")
	}
}
