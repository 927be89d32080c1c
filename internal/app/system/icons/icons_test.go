package icons

import (
	"strings"
	"testing"
)

func TestLookup_KnownName(t *testing.T) {
	got := string(Lookup("file-text"))
	if !strings.HasPrefix(got, "<svg") || !strings.HasSuffix(got, "</svg>") {
		t.Fatalf("Lookup(file-text) is not an svg: %q", got)
	}
	if got == string(Lookup(FallbackName)) {
		t.Error("Lookup(file-text) returned the fallback icon")
	}
}

func TestLookup_Normalizes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Graduation Cap", "graduation-cap"},
		{"  CLOCK ", "clock"},
		{"book_open", "book-open"},
		{"email", "mail"},
	}
	for _, tt := range tests {
		if Lookup(tt.in) != Lookup(tt.want) {
			t.Errorf("Lookup(%q) != Lookup(%q)", tt.in, tt.want)
		}
		if !Known(tt.in) {
			t.Errorf("Known(%q) = false", tt.in)
		}
	}
}

func TestLookup_UnknownUsesFallback(t *testing.T) {
	for _, name := range []string{"", "grad-cap-typo", "<script>"} {
		if Lookup(name) != Lookup(FallbackName) {
			t.Errorf("Lookup(%q) did not return fallback", name)
		}
		if Known(name) {
			t.Errorf("Known(%q) = true", name)
		}
	}
}

func TestNames_SortedAndComplete(t *testing.T) {
	names := Names()
	if len(names) != len(paths) {
		t.Fatalf("len(Names()) = %d, want %d", len(names), len(paths))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("Names() not sorted at %d: %q >= %q", i, names[i-1], names[i])
		}
	}
	for alias, target := range aliases {
		if _, ok := paths[target]; !ok {
			t.Errorf("alias %q points at missing icon %q", alias, target)
		}
	}
}
