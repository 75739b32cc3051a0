// Package keywords builds the weighted keyword set of a job description and
// scores candidate texts by keyword presence.
package keywords

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/resume-ranker/internal/textnorm"
)

const (
	// DerivedLimit is how many of the most frequent query terms are considered
	// when no explicit keywords are given.
	DerivedLimit = 20
	// DerivedMinLength is the shortest derived keyword, in runes.
	DerivedMinLength = 4
	// DefaultWeight is the weight of every derived keyword.
	DefaultWeight = 1.0
)

var (
	ErrEmptyKeyword  = errors.New("keyword must not be empty")
	ErrInvalidWeight = errors.New("keyword weight must be a positive finite number")
)

// Keyword is a single lower-cased term with its weight.
type Keyword struct {
	Term   string  `json:"term" yaml:"term"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// Set is an ordered keyword list.
type Set []Keyword

// Terms returns the keyword terms in order.
func (s Set) Terms() []string {
	terms := make([]string, 0, len(s))
	for _, kw := range s {
		terms = append(terms, kw.Term)
	}
	return terms
}

// Weights returns the term to weight mapping.
func (s Set) Weights() map[string]float64 {
	weights := make(map[string]float64, len(s))
	for _, kw := range s {
		weights[kw.Term] = kw.Weight
	}
	return weights
}

// Derive picks keywords from the query text itself: the DerivedLimit most
// frequent normalized terms, of which those with at least DerivedMinLength
// runes are kept with DefaultWeight. Equal frequencies keep first-occurrence
// order, so which terms make the cut at the boundary is implementation-defined.
func Derive(text string) Set {
	tokens := textnorm.Normalize(text)

	counts := make(map[string]int, len(tokens))
	order := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, seen := counts[token]; !seen {
			order = append(order, token)
		}
		counts[token]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > DerivedLimit {
		order = order[:DerivedLimit]
	}

	set := make(Set, 0, len(order))
	for _, term := range order {
		if utf8.RuneCountInString(term) < DerivedMinLength {
			continue
		}
		set = append(set, Keyword{Term: term, Weight: DefaultWeight})
	}

	return set
}

// FromWeights builds a Set from an explicit mapping, lower-casing every key
// and otherwise keeping it verbatim. Blank keys are rejected. Keys that collide after lower-casing resolve to the weight of the
// lexicographically last original key. The result is sorted by term.
func FromWeights(weights map[string]float64) (Set, error) {
	keys := make([]string, 0, len(weights))
	for key := range weights {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	merged := make(map[string]float64, len(weights))
	for _, key := range keys {
		if strings.TrimSpace(key) == "" {
			return nil, ErrEmptyKeyword
		}
		term := strings.ToLower(key)
		weight := weights[key]
		if weight <= 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
			return nil, fmt.Errorf("%w: %q=%v", ErrInvalidWeight, key, weight)
		}
		merged[term] = weight
	}

	set := make(Set, 0, len(merged))
	for term, weight := range merged {
		set = append(set, Keyword{Term: term, Weight: weight})
	}
	sort.Slice(set, func(i, j int) bool { return set[i].Term < set[j].Term })

	return set, nil
}

// ParseWeights decodes a loosely typed keyword mapping, as found in config
// files and JSON bodies, into term weights. Numeric strings are accepted.
func ParseWeights(raw any) (map[string]float64, error) {
	if raw == nil {
		return nil, nil
	}

	var weights map[string]float64
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &weights,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decoding keywords: %w", err)
	}

	return weights, nil
}
