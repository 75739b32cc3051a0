// Package textnorm turns raw resume and job description text into the token
// stream used for scoring: lower-cased, punctuation-free, stop-word-free.
package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinTokenLength is the shortest token kept. Shorter tokens are noise
// ("5", "c", "js") for term weighting.
const MinTokenLength = 3

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {}, "being": {},
	"have": {}, "has": {}, "had": {}, "do": {}, "does": {}, "did": {},
	"will": {}, "would": {}, "could": {}, "should": {}, "may": {}, "might": {},
	"must": {}, "can": {}, "this": {}, "that": {}, "these": {}, "those": {},
	"i": {}, "you": {}, "he": {}, "she": {}, "it": {}, "we": {}, "they": {},
	"me": {}, "him": {}, "her": {}, "us": {}, "them": {},
}

// IsStopWord reports whether word is in the fixed stop-word list. The word
// must already be lower-cased.
func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}

// Normalize lower-cases text, replaces everything that is not a letter, digit
// or whitespace with a space, splits on whitespace and drops stop-words and
// tokens shorter than MinTokenLength. Order and duplicates are preserved.
func Normalize(text string) []string {
	if text == "" {
		return []string{}
	}

	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, strings.ToLower(text))

	words := strings.Fields(cleaned)
	tokens := make([]string, 0, len(words))
	for _, word := range words {
		if utf8.RuneCountInString(word) < MinTokenLength {
			continue
		}
		if IsStopWord(word) {
			continue
		}
		tokens = append(tokens, word)
	}

	return tokens
}

// Join renders tokens back into the single-spaced text form the keyword
// scorer matches against.
func Join(tokens []string) string {
	return strings.Join(tokens, " ")
}
