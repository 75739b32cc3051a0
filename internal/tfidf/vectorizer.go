// Package tfidf builds TF-IDF vectors over a shared per-pass vocabulary and
// compares them with cosine similarity.
//
// Term frequency is the raw occurrence count, with no document length
// normalization, so longer documents are not penalized. IDF is
// ln(N / (1 + df)) and is not clamped: a term present in every
// document gets a negative weight.
package tfidf

import (
	"math"

	"golang.org/x/sync/errgroup"
)

// Vector is a dense TF-IDF vector indexed by Vocabulary term index.
type Vector []float64

// Norm returns the Euclidean norm of the vector.
func (vec Vector) Norm() float64 {
	var sum float64
	for _, w := range vec {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Map returns the term-keyed view of the vector. Every vocabulary term is
// present, including zero weights.
func (vec Vector) Map(vocab *Vocabulary) map[string]float64 {
	out := make(map[string]float64, vocab.Len())
	for idx, term := range vocab.terms {
		var w float64
		if idx < len(vec) {
			w = vec[idx]
		}
		out[term] = w
	}
	return out
}

// Vectorizer computes TF-IDF vectors for an ordered list of tokenized
// documents. By convention documents[0] is the query.
type Vectorizer struct {
	// Workers > 1 counts terms and builds vectors concurrently. The IDF table
	// is always computed once, after every document has been counted.
	Workers int
}

type termCounts struct {
	order  []string
	counts map[string]int
}

func countTerms(tokens []string) termCounts {
	tc := termCounts{
		order:  make([]string, 0, len(tokens)),
		counts: make(map[string]int, len(tokens)),
	}
	for _, token := range tokens {
		if _, seen := tc.counts[token]; !seen {
			tc.order = append(tc.order, token)
		}
		tc.counts[token]++
	}
	return tc
}

// Vectorize returns one vector per document, all defined over the returned
// Vocabulary. An empty document list yields no vectors and an empty
// vocabulary.
func (vz Vectorizer) Vectorize(documents [][]string) ([]Vector, *Vocabulary) {
	if len(documents) == 0 {
		return []Vector{}, newVocabulary(0)
	}

	tfs := make([]termCounts, len(documents))
	ForEach(vz.Workers, len(documents), func(i int) {
		tfs[i] = countTerms(documents[i])
	})

	vocab := newVocabulary(len(tfs[0].order))
	for _, tf := range tfs {
		for _, term := range tf.order {
			vocab.df[vocab.add(term)]++
		}
	}

	n := float64(len(documents))
	vocab.idf = make([]float64, len(vocab.terms))
	for idx, df := range vocab.df {
		vocab.idf[idx] = math.Log(n / float64(1+df))
	}

	vectors := make([]Vector, len(documents))
	ForEach(vz.Workers, len(documents), func(i int) {
		vec := make(Vector, len(vocab.terms))
		for term, count := range tfs[i].counts {
			idx := vocab.index[term]
			vec[idx] = float64(count) * vocab.idf[idx]
		}
		vectors[i] = vec
	})

	return vectors, vocab
}

// ForEach calls fn for every index in [0, n). With workers > 1 the calls run
// on at most workers goroutines and ForEach returns once all of them are done.
func ForEach(workers, n int, fn func(i int)) {
	if workers <= 1 || n <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	// fn never fails.
	_ = g.Wait()
}
