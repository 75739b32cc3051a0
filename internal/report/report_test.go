package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/spigell/resume-ranker/internal/ranker"
)

func sampleResults() []ranker.Result {
	return []ranker.Result{
		{Rank: 1, ID: "alice.txt", Score: 82.5, SimilarityPercentage: 82.5},
		{Rank: 2, ID: "carol.md", Score: 40.25, SimilarityPercentage: 40.25},
		{Rank: 3, ID: "bob.txt", Score: 0, SimilarityPercentage: 0},
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	s := Summarize(sampleResults())
	require.Equal(t, Summary{Total: 3, Average: 40.92, Highest: 82.5, Lowest: 0}, s)

	require.Equal(t, Summary{}, Summarize(nil))
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	f, err := ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatTable, f)

	f, err = ParseFormat(" YAML ")
	require.NoError(t, err)
	require.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	require.Error(t, err)
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sampleResults()))

	var got struct {
		Results []map[string]any `json:"results"`
		Summary Summary          `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Results, 3)
	require.Equal(t, "alice.txt", got.Results[0]["id"])
	require.Equal(t, 82.5, got.Results[0]["similarity_percentage"])
	require.Equal(t, 3, got.Summary.Total)
}

func TestWriteJSONEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, nil))
	require.Contains(t, buf.String(), `"results": []`)
}

func TestWriteYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, sampleResults()))

	var got document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, sampleResults(), got.Results)
	require.Equal(t, 82.5, got.Summary.Highest)
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, sampleResults()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Equal(t, []string{
		"Rank,Resume,Score,Similarity %",
		"1,alice.txt,82.50,82.50",
		"2,carol.md,40.25,40.25",
		"3,bob.txt,0.00,0.00",
	}, lines)
}

func TestWriteXLSX(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleResults()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{RankingsSheet, SummarySheet}, f.GetSheetList())

	rows, err := f.GetRows(RankingsSheet)
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"Rank", "Resume", "Score", "Similarity %"},
		{"1", "alice.txt", "82.5", "82.5"},
		{"2", "carol.md", "40.25", "40.25"},
		{"3", "bob.txt", "0", "0"},
	}, rows)

	rows, err = f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"Metric", "Value"},
		{"Total Resumes", "3"},
		{"Average Score", "40.92"},
		{"Highest Score", "82.5"},
		{"Lowest Score", "0"},
	}, rows)
}

func TestWriteXLSXEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Equal(t, []string{"Total Resumes", "0"}, rows[1])
}

func TestWriteTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatTable, sampleResults()))

	out := buf.String()
	require.Contains(t, out, "alice.txt")
	require.Contains(t, out, "40.25")
	require.Contains(t, out, "total: 3")
	require.Less(t, strings.Index(out, "alice.txt"), strings.Index(out, "bob.txt"))
}

func TestReportFilename(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	require.Equal(t, "resume_rankings_20240305_140709.xlsx", ReportFilename(ts))
}

func TestRankingsExclude(t *testing.T) {
	t.Parallel()

	results := sampleResults()
	rankings := New(results)

	removed := rankings.Exclude([]string{"carol.md", "unknown"})
	require.Equal(t, []string{"carol.md"}, removed)
	require.Equal(t, []string{"alice.txt", "bob.txt"}, rankings.IDs())
	require.Equal(t, 3, rankings.Items[1].Rank)

	// the caller's slice is untouched
	require.Equal(t, "carol.md", results[1].ID)
}

func TestRankingsDumpToTmpFile(t *testing.T) {
	t.Parallel()

	name, err := New(sampleResults()).DumpToTmpFile()
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(name) })

	data, err := os.ReadFile(name)
	require.NoError(t, err)

	var got Rankings
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, sampleResults(), got.Items)
}

func TestExcludedCandidatesRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "exclude.json")

	excluded, err := GetExcludedFromFile(path)
	require.NoError(t, err)
	require.Empty(t, excluded.Items)

	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	excluded.Append(New(sampleResults()[:2]).ToExcluded(now))
	excluded.Append(New(sampleResults()[1:]).ToExcluded(now))
	require.Equal(t, []string{"alice.txt", "carol.md", "bob.txt"}, excluded.IDs())

	require.NoError(t, excluded.ToFile(path))

	// rewriting a shorter list must not leave stale bytes behind
	short := &ExcludedCandidates{Items: excluded.Items[:1]}
	require.NoError(t, short.ToFile(path))

	loaded, err := GetExcludedFromFile(path)
	require.NoError(t, err)
	require.Equal(t, []string{"alice.txt"}, loaded.IDs())
	require.Equal(t, 82.5, loaded.Items[0].Score)
	require.True(t, loaded.Items[0].ExcludedAt.Equal(now))
}

func TestGetExcludedFromFileInvalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "exclude.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := GetExcludedFromFile(path)
	require.Error(t, err)
}
