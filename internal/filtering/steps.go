package filtering

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/ranker"
	"github.com/spigell/resume-ranker/internal/report"
)

type minimumScoreFilter struct {
	toggle
	minimum float64
}

// NewMinimumScore creates a filter that drops rows scoring below the
// configured minimum percentage.
func NewMinimumScore() Filter {
	return &minimumScoreFilter{}
}

func (f *minimumScoreFilter) Name() string { return "minimum_score" }

func (f *minimumScoreFilter) Validate(cfg *Config) error {
	if cfg.MinimumScore < 0 || cfg.MinimumScore > 100 {
		return fmt.Errorf("minimum score must be within [0, 100], got %v", cfg.MinimumScore)
	}
	f.minimum = cfg.MinimumScore
	return nil
}

func (f *minimumScoreFilter) Apply(_ context.Context, deps Deps, r *report.Rankings) (*report.Rankings, Step, error) {
	initial := r.Len()
	if f.minimum == 0 {
		return r, Step{Initial: initial, Left: initial}, nil
	}

	excluded := r.Keep(func(item ranker.Result) bool {
		return item.Score >= f.minimum
	})
	if len(excluded) > 0 {
		deps.Logger.Debug("excluding candidates below minimum score",
			zap.Float64("minimum_score", f.minimum),
			zap.Strings("excluded_candidates", excluded),
			zap.Int("candidates_left", r.Len()),
		)
	}

	return r, Step{Initial: initial, Dropped: len(excluded), Left: r.Len()}, nil
}

func (f *minimumScoreFilter) Status() Status {
	details := map[string]string{
		"minimum_score": strconv.FormatFloat(f.minimum, 'f', 2, 64),
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

type excludedCandidatesFilter struct {
	toggle
	ids []string
}

// NewExcludedCandidates creates a filter that removes candidates listed in
// the configuration.
func NewExcludedCandidates() Filter {
	return &excludedCandidatesFilter{}
}

func (f *excludedCandidatesFilter) Name() string { return "excluded_candidates" }

func (f *excludedCandidatesFilter) Validate(cfg *Config) error {
	f.ids = f.ids[:0]
	for _, id := range cfg.Exclude {
		if id = strings.TrimSpace(id); id != "" {
			f.ids = append(f.ids, id)
		}
	}
	return nil
}

func (f *excludedCandidatesFilter) Apply(_ context.Context, deps Deps, r *report.Rankings) (*report.Rankings, Step, error) {
	initial := r.Len()
	excluded := r.Exclude(f.ids)
	if len(excluded) > 0 {
		deps.Logger.Debug("excluding candidates by config",
			zap.Strings("excluded_candidates", excluded),
			zap.Int("candidates_left", r.Len()),
		)
	}

	return r, Step{Initial: initial, Dropped: len(excluded), Left: r.Len()}, nil
}

func (f *excludedCandidatesFilter) Status() Status {
	details := map[string]string{}
	if len(f.ids) > 0 {
		details["candidates"] = strings.Join(f.ids, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

type excludeFileFilter struct {
	toggle
	path string
}

// NewExcludeFile creates a filter that removes candidates contained in the
// exclude file.
func NewExcludeFile() Filter {
	return &excludeFileFilter{}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Validate(cfg *Config) error {
	f.path = strings.TrimSpace(cfg.ExcludeFile)
	return nil
}

func (f *excludeFileFilter) Apply(_ context.Context, deps Deps, r *report.Rankings) (*report.Rankings, Step, error) {
	initial := r.Len()
	if f.path == "" {
		return r, Step{Initial: initial, Left: initial}, nil
	}

	excluded, err := report.GetExcludedFromFile(f.path)
	if err != nil {
		return r, Step{}, fmt.Errorf("getting excluded candidates from file: %w", err)
	}

	removed := r.Exclude(excluded.IDs())
	if len(removed) > 0 {
		deps.Logger.Debug("excluding candidates based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_candidates", removed),
			zap.Int("candidates_left", r.Len()),
		)
	}

	return r, Step{Initial: initial, Dropped: len(removed), Left: r.Len()}, nil
}

func (f *excludeFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

var errNegativeTop = errors.New("top must not be negative")

type topFilter struct {
	toggle
	limit int
}

// NewTop creates a filter that keeps only the first N rows. Zero keeps all.
func NewTop() Filter {
	return &topFilter{}
}

func (f *topFilter) Name() string { return "top" }

func (f *topFilter) Validate(cfg *Config) error {
	if cfg.Top < 0 {
		return errNegativeTop
	}
	f.limit = cfg.Top
	return nil
}

func (f *topFilter) Apply(_ context.Context, _ Deps, r *report.Rankings) (*report.Rankings, Step, error) {
	initial := r.Len()
	if f.limit == 0 || initial <= f.limit {
		return r, Step{Initial: initial, Left: initial}, nil
	}

	r.Truncate(f.limit)

	return r, Step{Initial: initial, Dropped: initial - r.Len(), Left: r.Len()}, nil
}

func (f *topFilter) Status() Status {
	details := map[string]string{"limit": strconv.Itoa(f.limit)}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
