package tfidf

import "math"

// Cosine returns the cosine similarity of a and b. Entries missing from the
// shorter vector count as zero. When either norm is zero the similarity is 0.
func Cosine(a, b Vector) float64 {
	var dot, normA, normB float64

	for i, w := range a {
		normA += w * w
		if i < len(b) {
			dot += w * b[i]
		}
	}
	for _, w := range b {
		normB += w * w
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	// rounding can push |sim| a hair past 1
	return math.Max(-1, math.Min(1, sim))
}
