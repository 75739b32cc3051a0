package tfidf

// Vocabulary is the set of distinct terms seen across one scoring pass. Every
// term gets a stable integer index in first-occurrence order (query first,
// then documents in insertion order), and carries its document frequency and
// IDF for that pass. A Vocabulary is never reused across passes.
type Vocabulary struct {
	terms []string
	index map[string]int
	df    []int
	idf   []float64
}

func newVocabulary(capacity int) *Vocabulary {
	return &Vocabulary{
		terms: make([]string, 0, capacity),
		index: make(map[string]int, capacity),
	}
}

// add returns the index of term, assigning the next free one if needed.
func (v *Vocabulary) add(term string) int {
	if idx, ok := v.index[term]; ok {
		return idx
	}
	idx := len(v.terms)
	v.terms = append(v.terms, term)
	v.index[term] = idx
	v.df = append(v.df, 0)
	return idx
}

// Len returns the number of distinct terms.
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.terms)
}

// Terms returns the terms in index order.
func (v *Vocabulary) Terms() []string {
	if v == nil {
		return nil
	}
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// Index returns the canonical index of term in this pass.
func (v *Vocabulary) Index(term string) (int, bool) {
	if v == nil {
		return 0, false
	}
	idx, ok := v.index[term]
	return idx, ok
}

// DocumentFrequency returns how many documents of the pass contain term.
func (v *Vocabulary) DocumentFrequency(term string) int {
	idx, ok := v.Index(term)
	if !ok {
		return 0
	}
	return v.df[idx]
}

// IDF returns the inverse document frequency of term, or 0 for unknown terms.
// Terms present in every document have a negative IDF.
func (v *Vocabulary) IDF(term string) float64 {
	idx, ok := v.Index(term)
	if !ok || idx >= len(v.idf) {
		return 0
	}
	return v.idf[idx]
}
