package keywords

import (
	"fmt"
	"strings"
)

// MatchMode selects how a keyword is found in a candidate's normalized text.
type MatchMode string

const (
	// MatchSubstring counts a keyword when it occurs anywhere in the text, so
	// "java" also matches "javascript".
	MatchSubstring MatchMode = "substring"
	// MatchToken counts a keyword only on whole-token boundaries. Multi-word
	// keywords match a run of consecutive tokens.
	MatchToken MatchMode = "token"
)

// ParseMatchMode parses a mode name. Empty means MatchSubstring.
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", MatchSubstring:
		return MatchSubstring, nil
	case MatchToken:
		return MatchToken, nil
	default:
		return "", fmt.Errorf("unknown keyword match mode: %q", s)
	}
}

// Scorer sums keyword weights found in a candidate text.
type Scorer struct {
	Keywords Set
	Mode     MatchMode
}

// Raw returns the sum of weights of every keyword present in the normalized
// tokens. Each keyword counts once regardless of how often it occurs.
func (s Scorer) Raw(tokens []string) float64 {
	text := strings.Join(tokens, " ")
	if s.Mode == MatchToken {
		text = " " + text + " "
	}

	var score float64
	for _, kw := range s.Keywords {
		needle := kw.Term
		if s.Mode == MatchToken {
			needle = " " + needle + " "
		}
		if strings.Contains(text, needle) {
			score += kw.Weight
		}
	}

	return score
}

// NormalizeScores divides every raw score by the batch maximum. When the
// maximum is not positive every normalized score is 0.
func NormalizeScores(raw []float64) []float64 {
	normalized := make([]float64, len(raw))

	var highest float64
	for _, score := range raw {
		if score > highest {
			highest = score
		}
	}
	if highest <= 0 {
		return normalized
	}

	for i, score := range raw {
		normalized[i] = score / highest
	}

	return normalized
}
