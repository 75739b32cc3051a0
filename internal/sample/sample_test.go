package sample

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/spigell/resume-ranker/internal/corpus"
	"github.com/spigell/resume-ranker/internal/keywords"
	"github.com/spigell/resume-ranker/internal/ranker"
)

var clock = time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

func TestWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	written, err := New(nil, 42, clock).Write(dir)
	require.NoError(t, err)

	require.Len(t, written.Resumes, len(Candidates))
	require.Len(t, written.Jobs, len(JobDescriptions))

	for i, c := range Candidates {
		data, err := os.ReadFile(written.Resumes[i])
		require.NoError(t, err)

		text := string(data)
		require.True(t, strings.HasPrefix(text, strings.ToUpper(c.Name)+"\n"), text)
		require.Contains(t, text, "Technical Skills: "+strings.Join(c.Skills, ", "))
		require.Contains(t, text, "with "+strconv.Itoa(c.Experience)+" years of experience")
		require.Contains(t, text, c.Education)
	}

	job := written.Jobs[0]
	require.Equal(t, "Senior Python Developer", job.Title)
	require.Equal(t, filepath.Join(dir, JobsDir, "senior-python-developer.txt"), job.DescriptionFile)

	data, err := os.ReadFile(job.KeywordsFile)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(data, &raw))
	weights, err := keywords.ParseWeights(raw)
	require.NoError(t, err)
	require.Equal(t, JobDescriptions[0].Keywords, weights)
}

func TestWriteIsDeterministic(t *testing.T) {
	t.Parallel()

	first := New(nil, 7, clock).Resume(Candidates[0])
	second := New(nil, 7, clock).Resume(Candidates[0])
	require.Equal(t, first, second)
}

func TestSlug(t *testing.T) {
	t.Parallel()

	require.Equal(t, "machine-learning-engineer", Slug("  Machine Learning   Engineer "))
}

func TestSampleDataRanks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	written, err := New(nil, 1, clock).Write(dir)
	require.NoError(t, err)

	docs, err := corpus.New(nil).LoadDir(filepath.Join(dir, ResumesDir))
	require.NoError(t, err)
	require.Len(t, docs, len(Candidates))

	description, err := os.ReadFile(written.Jobs[1].DescriptionFile)
	require.NoError(t, err)

	session := ranker.New()
	for _, doc := range docs {
		session.AddDocument(doc.ID, doc.Text)
	}
	require.NoError(t, session.SetQuery(string(description), JobDescriptions[1].Keywords))

	results, err := session.ComputeRanking()
	require.NoError(t, err)
	require.Len(t, results, len(Candidates))
	for i, r := range results {
		require.Equal(t, i+1, r.Rank)
		if i > 0 {
			require.LessOrEqual(t, r.Score, results[i-1].Score)
		}
	}
}
