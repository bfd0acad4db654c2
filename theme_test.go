package main

import (
	"errors"
	"reflect"
	"testing"

	"github.com/muesli/termenv"
)

func TestLookupTheme_Known(t *testing.T) {
	th, err := LookupTheme("default")
	if err != nil {
		t.Fatalf("LookupTheme: %v", err)
	}
	if th.User != "▶" || th.Nest != "│" || !th.Colorized {
		t.Errorf("default theme = %+v", th)
	}
}

func TestLookupTheme_Unknown(t *testing.T) {
	_, err := LookupTheme("neon")
	if !errors.Is(err, ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme, got %v", err)
	}
}

func TestThemeNames_Sorted(t *testing.T) {
	want := []string{"classic", "default", "minimal", "plain"}
	if got := ThemeNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("ThemeNames = %v, want %v", got, want)
	}
}

func TestMonochromeThemesNeverColorize(t *testing.T) {
	for _, name := range []string{"minimal", "plain"} {
		th, err := LookupTheme(name)
		if err != nil {
			t.Fatal(err)
		}
		if th.Colorized {
			t.Errorf("theme %q must not be colorized", name)
		}
	}
}

func TestStyles_AsciiEmitsNoEscapes(t *testing.T) {
	st := NewStyles(termenv.Ascii, true)
	if st.Colorized() {
		t.Fatal("Ascii styles must report not colorized")
	}
	cases := []struct {
		name string
		got  string
		want string
	}{
		{"user", st.User.Render("hello"), "hello"},
		{"error", st.Error.Render("boom"), "boom"},
		{"diff highlight", st.DiffAddHi.Render("x"), "x"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("%s style altered text under Ascii: %q", c.name, c.got)
		}
	}
}
