package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/spigell/resume-ranker/internal/ranker"
)

// Sheet names of the workbook written by WriteXLSX.
const (
	RankingsSheet = "Resume Rankings"
	SummarySheet  = "Summary"
)

// XLSXContentType is the media type of the workbook.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteXLSX writes a workbook with one row per result on the rankings sheet
// and total, average, highest and lowest score on the summary sheet.
func WriteXLSX(w io.Writer, results []ranker.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), RankingsSheet); err != nil {
		return fmt.Errorf("naming rankings sheet: %w", err)
	}

	rows := make([][]any, 0, len(results)+1)
	rows = append(rows, []any{csvHeader[0], csvHeader[1], csvHeader[2], csvHeader[3]})
	for _, r := range results {
		rows = append(rows, []any{r.Rank, r.ID, r.Score, r.SimilarityPercentage})
	}
	if err := setRows(f, RankingsSheet, rows); err != nil {
		return err
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}

	s := Summarize(results)
	if err := setRows(f, SummarySheet, [][]any{
		{"Metric", "Value"},
		{"Total Resumes", s.Total},
		{"Average Score", s.Average},
		{"Highest Score", s.Highest},
		{"Lowest Score", s.Lowest},
	}); err != nil {
		return err
	}

	return f.Write(w)
}

// ReportFilename returns the attachment name of a workbook created at t.
func ReportFilename(t time.Time) string {
	return fmt.Sprintf("resume_rankings_%s.xlsx", t.Format("20060102_150405"))
}

func setRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
