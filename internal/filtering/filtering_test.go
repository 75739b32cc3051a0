package filtering

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resume-ranker/internal/ranker"
	"github.com/spigell/resume-ranker/internal/report"
)

func rankings() *report.Rankings {
	return report.New([]ranker.Result{
		{Rank: 1, ID: "alice", Score: 91.2, SimilarityPercentage: 91.2},
		{Rank: 2, ID: "dave", Score: 64, SimilarityPercentage: 64},
		{Rank: 3, ID: "carol", Score: 40.5, SimilarityPercentage: 40.5},
		{Rank: 4, ID: "erin", Score: 12, SimilarityPercentage: 12},
		{Rank: 5, ID: "bob", Score: 0, SimilarityPercentage: 0},
	})
}

func TestRunDefaults(t *testing.T) {
	t.Parallel()

	excludeFile := filepath.Join(t.TempDir(), "exclude.json")
	stored := report.New([]ranker.Result{{ID: "dave", Score: 64}}).ToExcluded(time.Now())
	if err := stored.ToFile(excludeFile); err != nil {
		t.Fatalf("writing exclude file: %v", err)
	}

	cfg := &Config{
		MinimumScore: 10,
		Exclude:      []string{" alice ", ""},
		ExcludeFile:  excludeFile,
		Top:          1,
	}

	core, observed := observer.New(zapcore.InfoLevel)
	got, err := Run(context.Background(), cfg, Deps{Logger: zap.New(core)}, Defaults(), rankings())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(got.IDs(), []string{"carol"}) {
		t.Fatalf("unexpected candidates left: %v", got.IDs())
	}
	if got.Items[0].Rank != 3 {
		t.Fatalf("filters must keep original ranks, got %d", got.Items[0].Rank)
	}

	entries := observed.FilterMessage("filter step").All()
	if len(entries) != 4 {
		t.Fatalf("expected 4 filter step entries, got %d", len(entries))
	}
	wantDropped := map[string]int64{
		"excluded_candidates": 1,
		"exclude_file":        1,
		"minimum_score":       1,
		"top":                 1,
	}
	for _, entry := range entries {
		ctx := entry.ContextMap()
		name := ctx["name"].(string)
		if ctx["dropped"] != wantDropped[name] {
			t.Fatalf("%s: expected %d dropped, got %v", name, wantDropped[name], ctx["dropped"])
		}
	}
}

func TestRunNoConfigKeepsEverything(t *testing.T) {
	t.Parallel()

	got, err := Run(context.Background(), nil, Deps{}, Defaults(), rankings())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Len() != 5 {
		t.Fatalf("expected 5 candidates, got %d", got.Len())
	}
}

func TestRunValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  *Config
	}{
		{name: "negative minimum", cfg: &Config{MinimumScore: -1}},
		{name: "minimum above 100", cfg: &Config{MinimumScore: 101}},
		{name: "negative top", cfg: &Config{Top: -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Run(context.Background(), tt.cfg, Deps{}, Defaults(), rankings()); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestRunSkipsDisabled(t *testing.T) {
	t.Parallel()

	steps := Defaults()
	if !DisableByName(steps, "top", "requested") {
		t.Fatalf("expected top filter to be found")
	}
	if DisableByName(steps, "missing", "requested") {
		t.Fatalf("unexpected match for an unknown filter")
	}

	got, err := Run(context.Background(), &Config{Top: -1}, Deps{}, steps, rankings())
	if err != nil {
		t.Fatalf("disabled filters must not be validated: %v", err)
	}
	if got.Len() != 5 {
		t.Fatalf("expected 5 candidates, got %d", got.Len())
	}

	for _, status := range Describe(steps) {
		if status.Name == "top" && (status.Enabled || status.Reason != "requested") {
			t.Fatalf("unexpected top status: %+v", status)
		}
	}
}

func TestRunCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Run(ctx, nil, Deps{}, Defaults(), rankings()); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestMinimumScoreKeepsDuplicateIDsIndependently(t *testing.T) {
	t.Parallel()

	r := report.New([]ranker.Result{
		{Rank: 1, ID: "cv.txt", Score: 70},
		{Rank: 2, ID: "cv.txt", Score: 5},
	})

	got, err := Run(context.Background(), &Config{MinimumScore: 50}, Deps{}, []Filter{NewMinimumScore()}, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Len() != 1 || got.Items[0].Score != 70 {
		t.Fatalf("unexpected rows left: %+v", got.Items)
	}
}

func TestExcludeFileErrors(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "exclude.json")
	if err := os.WriteFile(path, []byte("[broken"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Run(context.Background(), &Config{ExcludeFile: path}, Deps{}, Defaults(), rankings()); err == nil {
		t.Fatalf("expected error for broken exclude file")
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	steps := Defaults()
	cfg := &Config{MinimumScore: 25, Exclude: []string{"bob"}, ExcludeFile: "/tmp/x.json", Top: 3}
	for _, step := range steps {
		if err := step.Validate(cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	got := Describe(steps)
	want := []Status{
		{Name: "excluded_candidates", Enabled: true, Details: map[string]string{"candidates": "bob"}},
		{Name: "exclude_file", Enabled: true, Details: map[string]string{"path": "/tmp/x.json"}},
		{Name: "minimum_score", Enabled: true, Details: map[string]string{"minimum_score": "25.00"}},
		{Name: "top", Enabled: true, Details: map[string]string{"limit": "3"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected statuses:\n got %+v\nwant %+v", got, want)
	}
}

func TestPrepare(t *testing.T) {
	t.Parallel()

	steps, err := Prepare(&Config{Disabled: []string{"minimum_score", " top "}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	enabled := map[string]bool{}
	for _, status := range Describe(steps) {
		enabled[status.Name] = status.Enabled
	}
	want := map[string]bool{
		"excluded_candidates": true,
		"exclude_file":        true,
		"minimum_score":       false,
		"top":                 false,
	}
	if !reflect.DeepEqual(enabled, want) {
		t.Fatalf("unexpected filters: %v", enabled)
	}

	if _, err := Prepare(&Config{Disabled: []string{"ai_fit"}}); err == nil {
		t.Fatalf("expected error for an unknown filter")
	}

	steps, err = Prepare(nil)
	if err != nil || len(steps) != 4 {
		t.Fatalf("expected the default chain, got %d filters, %v", len(steps), err)
	}
}
