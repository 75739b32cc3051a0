package report

import (
	"math"

	"github.com/spigell/resume-ranker/internal/ranker"
)

// Summary aggregates the scores of a ranking.
type Summary struct {
	Total   int     `json:"total_resumes" yaml:"total_resumes"`
	Average float64 `json:"average_score" yaml:"average_score"`
	Highest float64 `json:"highest_score" yaml:"highest_score"`
	Lowest  float64 `json:"lowest_score" yaml:"lowest_score"`
}

// Summarize computes the summary of results. Scores are rounded to 2
// decimals; an empty list yields zeros.
func Summarize(results []ranker.Result) Summary {
	if len(results) == 0 {
		return Summary{}
	}

	sum := 0.0
	highest := math.Inf(-1)
	lowest := math.Inf(1)
	for _, r := range results {
		sum += r.Score
		highest = math.Max(highest, r.Score)
		lowest = math.Min(lowest, r.Score)
	}

	return Summary{
		Total:   len(results),
		Average: round2(sum / float64(len(results))),
		Highest: round2(highest),
		Lowest:  round2(lowest),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
