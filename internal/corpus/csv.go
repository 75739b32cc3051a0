package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Default column names of the public resume dataset.
const (
	DefaultIDColumn       = "ID"
	DefaultTextColumn     = "Resume_str"
	DefaultHTMLColumn     = "Resume_html"
	DefaultCategoryColumn = "Category"
)

// CSVOptions describes how to read a resume dataset.
type CSVOptions struct {
	Path           string `mapstructure:"path"`
	IDColumn       string `mapstructure:"id-column"`
	TextColumn     string `mapstructure:"text-column"`
	HTMLColumn     string `mapstructure:"html-column"`
	CategoryColumn string `mapstructure:"category-column"`
	// Category keeps only rows of this category (case-insensitive).
	Category string `mapstructure:"category"`
}

func (o CSVOptions) withDefaults() CSVOptions {
	if o.IDColumn == "" {
		o.IDColumn = DefaultIDColumn
	}
	if o.TextColumn == "" {
		o.TextColumn = DefaultTextColumn
	}
	if o.HTMLColumn == "" {
		o.HTMLColumn = DefaultHTMLColumn
	}
	if o.CategoryColumn == "" {
		o.CategoryColumn = DefaultCategoryColumn
	}
	return o
}

// LoadCSV reads documents from the dataset at opts.Path.
func (l *Loader) LoadCSV(opts CSVOptions) ([]Document, error) {
	f, err := os.Open(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	return l.ReadCSV(f, opts)
}

// ReadCSV reads documents from a CSV stream with a header row. Rows without
// an ID get "row-<n>". When the text column is empty the HTML column is
// converted instead; rows with neither are skipped.
func (l *Loader) ReadCSV(r io.Reader, opts CSVOptions) ([]Document, error) {
	opts = opts.withDefaults()

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []Document{}, nil
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}

	textIdx, hasText := columns[opts.TextColumn]
	htmlIdx, hasHTML := columns[opts.HTMLColumn]
	if !hasText && !hasHTML {
		return nil, fmt.Errorf("dataset has neither %q nor %q column", opts.TextColumn, opts.HTMLColumn)
	}
	idIdx, hasID := columns[opts.IDColumn]
	categoryIdx, hasCategory := columns[opts.CategoryColumn]

	source := opts.Path
	if source == "" {
		source = "csv"
	}

	docs := []Document{}
	skipped := 0
	for row := 1; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", row, err)
		}

		category := field(record, categoryIdx, hasCategory)
		if opts.Category != "" && !strings.EqualFold(category, opts.Category) {
			continue
		}

		text := field(record, textIdx, hasText)
		if strings.TrimSpace(text) == "" {
			text, err = htmlToText(field(record, htmlIdx, hasHTML))
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", row, err)
			}
		}
		if strings.TrimSpace(text) == "" {
			skipped++
			continue
		}

		id := strings.TrimSpace(field(record, idIdx, hasID))
		if id == "" {
			id = "row-" + strconv.Itoa(row)
		}

		docs = append(docs, Document{
			ID:       id,
			Text:     text,
			Category: category,
			Source:   source,
		})
	}

	l.logger.Debug("dataset loaded",
		zap.String("source", source),
		zap.Int("documents", len(docs)),
		zap.Int("skipped", skipped),
	)

	return docs, nil
}

func field(record []string, idx int, ok bool) string {
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}
