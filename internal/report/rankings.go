// Package report renders rankings for people and tools and keeps the list
// of candidates excluded from future runs.
package report

import (
	"encoding/json"
	"os"

	"github.com/spigell/resume-ranker/internal/ranker"
)

// Rankings is an ordered list of ranking rows.
type Rankings struct {
	Items []ranker.Result `json:"results"`
}

// New wraps results.
func New(results []ranker.Result) *Rankings {
	return &Rankings{Items: results}
}

func (r *Rankings) Len() int {
	return len(r.Items)
}

// IDs returns candidate IDs in ranking order.
func (r *Rankings) IDs() []string {
	ids := make([]string, 0, len(r.Items))
	for _, item := range r.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

// Exclude removes every row whose ID is in ids and returns the removed IDs.
// Ranking order and ranks of the remaining rows are kept.
func (r *Rankings) Exclude(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}

	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	return r.Keep(func(item ranker.Result) bool {
		_, ok := drop[item.ID]
		return !ok
	})
}

// Keep retains the rows for which keep returns true and returns the IDs of
// the removed rows.
func (r *Rankings) Keep(keep func(ranker.Result) bool) []string {
	var removed []string
	kept := make([]ranker.Result, 0, len(r.Items))
	for _, item := range r.Items {
		if !keep(item) {
			removed = append(removed, item.ID)
			continue
		}
		kept = append(kept, item)
	}
	r.Items = kept

	return removed
}

// Truncate keeps at most the first n rows.
func (r *Rankings) Truncate(n int) {
	if n >= 0 && n < len(r.Items) {
		r.Items = r.Items[:n:n]
	}
}

// DumpToTmpFile writes the rankings as indented JSON into a new temporary
// file and returns its name.
func (r *Rankings) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "rankings_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}
