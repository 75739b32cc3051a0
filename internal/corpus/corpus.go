// Package corpus loads candidate resumes from files, directories and CSV
// datasets and extracts the plain text the ranker works on.
package corpus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"go.uber.org/zap"
)

var (
	// ErrUnsupportedFormat is returned for files with an extension that is not accepted.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrUnreadableDocument is returned when an accepted file cannot be parsed.
	ErrUnreadableDocument = errors.New("unreadable document")
)

var extensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".html": true,
	".htm":  true,
	".pdf":  true,
	".docx": true,
}

// Document is a loaded candidate.
type Document struct {
	ID       string
	Text     string
	Category string
	// Source is the file or dataset the document was read from.
	Source string
}

// Loader reads documents from disk.
type Loader struct {
	logger *zap.Logger
}

// New creates a Loader. A nil logger disables logging.
func New(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger}
}

// Extensions lists accepted file extensions in sorted order.
func Extensions() []string {
	exts := make([]string, 0, len(extensions))
	for ext := range extensions {
		exts = append(exts, strings.TrimPrefix(ext, "."))
	}
	sort.Strings(exts)
	return exts
}

// Supported reports whether a file name has an accepted extension.
func Supported(name string) bool {
	return extensions[strings.ToLower(filepath.Ext(name))]
}

// BaseName strips directories from an uploaded file name. It returns an
// empty string for names that have no usable base.
func BaseName(name string) string {
	name = strings.ReplaceAll(strings.TrimSpace(name), `\`, "/")
	base := filepath.Base(filepath.Clean("/" + name))
	if base == "/" || base == "." || base == ".." {
		return ""
	}
	return base
}

// Extract returns the text of a document named name. HTML is converted to
// markdown so that markup does not leak into the vocabulary.
func Extract(name string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md":
		return string(data), nil
	case ".html", ".htm":
		return htmlToText(string(data))
	case ".pdf":
		return pdfToText(name, data)
	case ".docx":
		return docxToText(name, data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

func htmlToText(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}
	md, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting html: %w", err)
	}
	return md, nil
}

// LoadFiles reads the given files. The document ID is the file base name.
func (l *Loader) LoadFiles(paths ...string) ([]Document, error) {
	return l.load(paths, false)
}

func (l *Loader) load(paths []string, skipUnreadable bool) ([]Document, error) {
	docs := make([]Document, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		text, err := Extract(path, data)
		if skipUnreadable && errors.Is(err, ErrUnreadableDocument) {
			l.logger.Warn("skipping unreadable file", zap.String("file", path), zap.Error(err))
			continue
		}
		if err != nil {
			return nil, err
		}

		docs = append(docs, Document{
			ID:     filepath.Base(path),
			Text:   text,
			Source: path,
		})
	}

	l.logger.Debug("files loaded", zap.Int("documents", len(docs)))

	return docs, nil
}

// LoadDir reads every supported file directly inside dir, in name order.
// Subdirectories, unsupported files and files that fail to parse are skipped.
func (l *Loader) LoadDir(dir string) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %q: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !Supported(entry.Name()) {
			l.logger.Debug("skipping unsupported file", zap.String("file", entry.Name()))
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	return l.load(paths, true)
}
