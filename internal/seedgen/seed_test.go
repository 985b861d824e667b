package seedgen

import "testing"

func TestParseCamelCase(t *testing.T) {
	p, err := Parse("MistyForge")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Adjective != "misty" || p.Noun != "forge" {
		t.Fatalf("got adjective=%q noun=%q", p.Adjective, p.Noun)
	}
	if p.Canonical != "mistyforge" {
		t.Fatalf("canonical = %q", p.Canonical)
	}
}

func TestParseCaseInsensitiveRoundTrip(t *testing.T) {
	variants := []string{"mistyforge", "MISTYFORGE", "MistyForge"}
	var want ParsedSeed
	for i, v := range variants {
		got, err := Parse(v)
		if err != nil {
			t.Fatalf("Parse(%q): %v", v, err)
		}
		if i == 0 {
			want = got
			continue
		}
		if got.Canonical != want.Canonical || got.SeedHash != want.SeedHash {
			t.Fatalf("variant %q diverged: %+v vs %+v", v, got, want)
		}
	}
}

func TestParseRejectsNonASCII(t *testing.T) {
	if _, err := Parse("misty-forge"); err == nil {
		t.Fatalf("expected error for hyphenated seed")
	} else if pe, ok := err.(*ParseError); !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	} else if !containsExamples(pe.Error()) {
		t.Fatalf("error message missing Examples: %q", pe.Error())
	}
}

func TestReparsingCanonicalIsStable(t *testing.T) {
	p1, err := Parse("MistyForge")
	if err != nil {
		t.Fatal(err)
	}
	p2, err := Parse(p1.Canonical)
	if err != nil {
		t.Fatalf("reparsing canonical failed: %v", err)
	}
	if p2.Canonical != p1.Canonical || p2.SeedHash != p1.SeedHash {
		t.Fatalf("round-trip mismatch: %+v vs %+v", p1, p2)
	}
}

func containsExamples(s string) bool {
	return len(s) > 0 && (indexOf(s, "Examples:") >= 0)
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
