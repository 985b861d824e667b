package seedgen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dantero/continent-gen/internal/rng"
)

// canonicalPersonalization is the fixed BLAKE2b personalization tag for
// canonical seed hashing. It is part of the determinism contract and must
// never change.
const canonicalPersonalization = "terrainm0"

// ParsedSeed is the immutable result of parsing a user-supplied seed string.
type ParsedSeed struct {
	Original  string
	Adjective string
	Noun      string
	Canonical string
	SeedHash  uint64
}

// ParseError is a user error: malformed, ambiguous, or unknown seed text.
// Exit code 2 at the CLI boundary (see internal/pipeline).
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s Examples: %s", e.Reason, strings.Join(exampleSeeds, ", "))
}

var alphaOnly = regexp.MustCompile(`^[A-Za-z]+$`)

// Parse splits a seed string into adjective+noun, validates it against the
// closed dictionaries, and computes its canonical hash.
func Parse(seedText string) (ParsedSeed, error) {
	trimmed := strings.TrimSpace(seedText)
	if trimmed == "" {
		return ParsedSeed{}, &ParseError{Reason: "seed must not be empty."}
	}
	if !alphaOnly.MatchString(trimmed) {
		return ParsedSeed{}, &ParseError{Reason: fmt.Sprintf("seed %q must contain ASCII letters only.", seedText)}
	}

	if adj, noun, ok := splitCamelCase(trimmed); ok {
		return finish(seedText, adj, noun)
	}

	adj, noun, err := splitConcatenated(strings.ToLower(trimmed))
	if err != nil {
		return ParsedSeed{}, err
	}
	return finish(seedText, adj, noun)
}

func finish(original, adj, noun string) (ParsedSeed, error) {
	canonical := strings.ToLower(adj) + strings.ToLower(noun)
	hash := rng.KeyedHash64(canonical, canonicalPersonalization)
	return ParsedSeed{
		Original:  original,
		Adjective: strings.ToLower(adj),
		Noun:      strings.ToLower(noun),
		Canonical: canonical,
		SeedHash:  hash,
	}, nil
}

// splitCamelCase tries a two-word camelCase split (e.g. "MistyForge"): the
// boundary is the second uppercase letter encountered, which must begin the
// second word. Go's RE2 engine has no lookahead, so unlike the original
// reference implementation's regex-based splitter this walks runes by hand.
func splitCamelCase(text string) (adj, noun string, ok bool) {
	runes := []rune(text)
	if len(runes) < 2 || !isUpper(runes[0]) {
		return "", "", false
	}
	boundary := -1
	for i := 1; i < len(runes); i++ {
		if isUpper(runes[i]) {
			boundary = i
			break
		}
	}
	if boundary <= 0 || boundary >= len(runes) {
		return "", "", false
	}
	a := strings.ToLower(string(runes[:boundary]))
	n := strings.ToLower(string(runes[boundary:]))
	if adjectiveSet[a] && nounSet[n] {
		return a, n, true
	}
	return "", "", false
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }

// splitConcatenated scans every split point of a fully lowercase, no-boundary
// string (e.g. "mistyforge") against the adjective/noun dictionaries.
// Ambiguous matches (more than one valid split) are a user error.
func splitConcatenated(lower string) (adj, noun string, err error) {
	type candidate struct{ adj, noun string }
	var candidates []candidate

	for i := 2; i < len(lower)-1; i++ {
		a, n := lower[:i], lower[i:]
		if adjectiveSet[a] && nounSet[n] {
			candidates = append(candidates, candidate{a, n})
		}
	}

	switch len(candidates) {
	case 0:
		return "", "", &ParseError{Reason: fmt.Sprintf("seed %q does not match a known adjective+noun pair.", lower)}
	case 1:
		return candidates[0].adj, candidates[0].noun, nil
	default:
		var parts []string
		for _, c := range candidates {
			parts = append(parts, fmt.Sprintf("%s+%s", c.adj, c.noun))
		}
		return "", "", &ParseError{Reason: fmt.Sprintf("seed %q is ambiguous between: %s.", lower, strings.Join(parts, ", "))}
	}
}
