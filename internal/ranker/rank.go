package ranker

import (
	"math"
	"sort"
)

// Fusion weights. They are fixed: callers wanting another blend compute
// their own score from Record.Similarity and Record.KeywordScore.
const (
	SimilarityWeight = 0.7
	KeywordWeight    = 0.3
)

// Record is the full scoring breakdown of one document in a ranking pass.
type Record struct {
	// Index is the insertion position of the document in its session.
	Index        int     `json:"index" yaml:"index"`
	ID           string  `json:"id" yaml:"id"`
	Similarity   float64 `json:"similarity" yaml:"similarity"`
	KeywordRaw   float64 `json:"keyword_raw" yaml:"keyword_raw"`
	KeywordScore float64 `json:"keyword_score" yaml:"keyword_score"`
	Fused        float64 `json:"fused" yaml:"fused"`
	Rank         int     `json:"rank" yaml:"rank"`
}

// Result is the externally visible ranking row. Score and
// SimilarityPercentage carry the same value, the fused score as a
// percentage; both are kept for consumers that read either one.
type Result struct {
	Rank                 int     `json:"rank" yaml:"rank"`
	ID                   string  `json:"id" yaml:"id"`
	Score                float64 `json:"score" yaml:"score"`
	SimilarityPercentage float64 `json:"similarity_percentage" yaml:"similarity_percentage"`
}

// Fuse blends cosine similarity and normalized keyword score.
func Fuse(similarity, keywordScore float64) float64 {
	return SimilarityWeight*similarity + KeywordWeight*keywordScore
}

// Percentage converts a fused score into a percentage rounded to 2 decimals.
func Percentage(fused float64) float64 {
	return math.Round(fused*100*100) / 100
}

// Rank returns a copy of records sorted by descending fused score, with
// ranks assigned from 1. Equal scores keep their input order.
func Rank(records []Record) []Record {
	ranked := make([]Record, len(records))
	copy(ranked, records)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Fused > ranked[j].Fused
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	return ranked
}

// Result converts the record into its external shape.
func (r Record) Result() Result {
	pct := Percentage(r.Fused)
	return Result{
		Rank:                 r.Rank,
		ID:                   r.ID,
		Score:                pct,
		SimilarityPercentage: pct,
	}
}

// Results converts ranked records into external rows, keeping order.
func Results(records []Record) []Result {
	results := make([]Result, 0, len(records))
	for _, record := range records {
		results = append(results, record.Result())
	}
	return results
}
