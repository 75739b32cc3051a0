package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/spigell/resume-ranker/internal/ranker"
)

// Format is an output format for rankings.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatCSV   Format = "csv"
	FormatXLSX  Format = "xlsx"
)

var csvHeader = []string{"Rank", "Resume", "Score", "Similarity %"}

// ParseFormat validates a format name. Empty means table.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatYAML, FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// document is the shape written by the json and yaml formats.
type document struct {
	Results []ranker.Result `json:"results" yaml:"results"`
	Summary Summary         `json:"summary" yaml:"summary"`
}

// Write renders results in the given format.
func Write(w io.Writer, format Format, results []ranker.Result) error {
	switch format {
	case FormatTable, "":
		return writeTable(w, results)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(document{Results: nonNil(results), Summary: Summarize(results)})
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(document{Results: nonNil(results), Summary: Summarize(results)}); err != nil {
			return err
		}
		return enc.Close()
	case FormatCSV:
		return WriteCSV(w, results)
	case FormatXLSX:
		return WriteXLSX(w, results)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteCSV writes one row per result under a header row.
func WriteCSV(w io.Writer, results []ranker.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range results {
		if err := cw.Write([]string{
			strconv.Itoa(r.Rank),
			r.ID,
			formatScore(r.Score),
			formatScore(r.SimilarityPercentage),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeTable(w io.Writer, results []ranker.Result) error {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	numberStyle := cellStyle.Align(lipgloss.Right)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(csvHeader...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 1:
				return cellStyle
			default:
				return numberStyle
			}
		})

	for _, r := range results {
		t.Row(strconv.Itoa(r.Rank), r.ID, formatScore(r.Score), formatScore(r.SimilarityPercentage))
	}

	s := Summarize(results)
	footer := fmt.Sprintf("total: %d  average: %s  highest: %s  lowest: %s",
		s.Total, formatScore(s.Average), formatScore(s.Highest), formatScore(s.Lowest))

	_, err := fmt.Fprintf(w, "%s\n%s\n", t.Render(), footer)
	return err
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func nonNil(results []ranker.Result) []ranker.Result {
	if results == nil {
		return []ranker.Result{}
	}
	return results
}
