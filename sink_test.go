package main

import (
	"errors"
	"strings"
	"testing"
)

func TestSink_BlankLineBetweenBlocks(t *testing.T) {
	var out strings.Builder
	s := NewSink(&out)

	if err := s.WriteBlock(Block{Lines: []string{"a1", "a2"}}); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteBlock(Block{Lines: []string{"b1"}}); err != nil {
		t.Fatal(err)
	}

	want := "a1\na2\n\nb1\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestSink_EmptyBlockWritesNothing(t *testing.T) {
	var out strings.Builder
	s := NewSink(&out)

	if err := s.WriteBlock(Block{}); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteBlock(Block{Lines: []string{"x"}}); err != nil {
		t.Fatal(err)
	}
	if out.String() != "x\n" {
		t.Errorf("output = %q", out.String())
	}
}

type failingWriter struct{ err error }

func (w failingWriter) Write(p []byte) (int, error) { return 0, w.err }

func TestSink_WriteErrorSticks(t *testing.T) {
	s := NewSink(failingWriter{err: errors.New("pipe closed")})

	err := s.WriteBlock(Block{Lines: []string{"x"}})
	if !errors.Is(err, ErrWriteFailure) {
		t.Fatalf("expected ErrWriteFailure, got %v", err)
	}
	if err2 := s.WriteBlock(Block{Lines: []string{"y"}}); !errors.Is(err2, ErrWriteFailure) {
		t.Fatalf("later writes must return the sticky error, got %v", err2)
	}
	if s.Err() == nil {
		t.Error("Err() should report the failure")
	}
}
