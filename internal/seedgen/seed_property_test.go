package seedgen

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Every adjective+noun pair from the closed dictionaries must parse
// successfully in CamelCase form, reproduce the same canonical seed and
// hash on every call, and survive reparsing its own canonical form.
func TestParseCamelCaseRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		adj := rapid.SampledFrom(adjectives).Draw(rt, "adjective")
		noun := rapid.SampledFrom(nouns).Draw(rt, "noun")
		camel := capitalize(adj) + capitalize(noun)

		first, err := Parse(camel)
		if err != nil {
			rt.Fatalf("Parse(%q) failed: %v", camel, err)
		}
		if first.Canonical != adj+noun {
			rt.Fatalf("canonical = %q, want %q", first.Canonical, adj+noun)
		}

		second, err := Parse(camel)
		if err != nil {
			rt.Fatalf("re-Parse(%q) failed: %v", camel, err)
		}
		if second.SeedHash != first.SeedHash {
			rt.Fatalf("seed hash not deterministic for %q: %d vs %d", camel, first.SeedHash, second.SeedHash)
		}

		reparsed, err := Parse(first.Canonical)
		if err != nil {
			rt.Fatalf("Parse(canonical %q) failed: %v", first.Canonical, err)
		}
		if reparsed.SeedHash != first.SeedHash || reparsed.Canonical != first.Canonical {
			rt.Fatalf("reparsing canonical %q diverged: %+v vs %+v", first.Canonical, reparsed, first)
		}
	})
}
