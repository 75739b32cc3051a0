// Package ranker scores a working set of candidate documents against a job
// description and ranks them.
//
// A Session is owned by its caller and holds no locks: the caller must not
// mutate a session while a ranking pass on it is running.
package ranker

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/keywords"
	"github.com/spigell/resume-ranker/internal/textnorm"
	"github.com/spigell/resume-ranker/internal/tfidf"
	"github.com/spigell/resume-ranker/internal/utils"
)

const queryPreviewLength = 80

// ErrNoQuerySet is returned when ranking is requested before SetQuery.
var ErrNoQuerySet = errors.New("no job description set")

// Document is a candidate in the working set.
type Document struct {
	ID     string
	Text   string
	Tokens []string
}

// Query is the active job description.
type Query struct {
	Text     string
	Tokens   []string
	Keywords keywords.Set
	// Explicit is true when Keywords came from the caller rather than being
	// derived from Text.
	Explicit bool
}

// Session is one ranking working set: candidate documents plus at most one
// query.
type Session struct {
	docs    []Document
	query   *Query
	logger  *zap.Logger
	workers int
	mode    keywords.MatchMode
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithWorkers enables concurrent vectorization and scoring on up to n
// goroutines. Results are identical to the sequential pass.
func WithWorkers(n int) Option {
	return func(s *Session) {
		s.workers = n
	}
}

// WithMatchMode selects the keyword match mode.
func WithMatchMode(mode keywords.MatchMode) Option {
	return func(s *Session) {
		if mode != "" {
			s.mode = mode
		}
	}
}

// New creates an empty session.
func New(opts ...Option) *Session {
	s := &Session{
		logger:  zap.NewNop(),
		workers: 1,
		mode:    keywords.MatchSubstring,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddDocument appends a candidate. Text must already be extracted from its
// source format. IDs are not required to be unique.
func (s *Session) AddDocument(id, text string) {
	tokens := textnorm.Normalize(text)
	s.docs = append(s.docs, Document{ID: id, Text: text, Tokens: tokens})

	s.logger.Debug("document added",
		zap.String("id", id),
		zap.Int("tokens", len(tokens)),
		zap.Int("documents", len(s.docs)),
	)
}

// SetQuery replaces the active job description. With no explicit keywords
// (nil or empty map) the keyword set is derived from text.
func (s *Session) SetQuery(text string, explicit map[string]float64) error {
	q := &Query{
		Text:   text,
		Tokens: textnorm.Normalize(text),
	}

	if len(explicit) > 0 {
		set, err := keywords.FromWeights(explicit)
		if err != nil {
			return fmt.Errorf("setting keywords: %w", err)
		}
		q.Keywords = set
		q.Explicit = true
	} else {
		q.Keywords = keywords.Derive(text)
	}

	s.query = q

	s.logger.Debug("job description set",
		zap.String("preview", utils.TruncateForLog(text, queryPreviewLength)),
		zap.Int("tokens", len(q.Tokens)),
		zap.Strings("keywords", q.Keywords.Terms()),
		zap.Bool("explicit_keywords", q.Explicit),
	)

	return nil
}

// Reset drops every document and the query.
func (s *Session) Reset() {
	s.docs = nil
	s.query = nil
	s.logger.Debug("session reset")
}

// Len returns the number of documents.
func (s *Session) Len() int {
	return len(s.docs)
}

// Query returns the active query, or nil.
func (s *Session) Query() *Query {
	return s.query
}

// Scores runs a full scoring pass and returns ranked records. With no
// documents it returns an empty list even when no query is set.
func (s *Session) Scores() ([]Record, error) {
	if len(s.docs) == 0 {
		return []Record{}, nil
	}
	if s.query == nil {
		return nil, ErrNoQuerySet
	}

	corpus := make([][]string, 0, len(s.docs)+1)
	corpus = append(corpus, s.query.Tokens)
	for _, doc := range s.docs {
		corpus = append(corpus, doc.Tokens)
	}

	vectors, vocab := tfidf.Vectorizer{Workers: s.workers}.Vectorize(corpus)
	queryVector := vectors[0]
	scorer := keywords.Scorer{Keywords: s.query.Keywords, Mode: s.mode}

	records := make([]Record, len(s.docs))
	raw := make([]float64, len(s.docs))
	tfidf.ForEach(s.workers, len(s.docs), func(i int) {
		records[i] = Record{
			Index:      i,
			ID:         s.docs[i].ID,
			Similarity: tfidf.Cosine(queryVector, vectors[i+1]),
		}
		raw[i] = scorer.Raw(s.docs[i].Tokens)
	})

	normalized := keywords.NormalizeScores(raw)
	for i := range records {
		records[i].KeywordRaw = raw[i]
		records[i].KeywordScore = normalized[i]
		records[i].Fused = Fuse(records[i].Similarity, normalized[i])
	}

	ranked := Rank(records)

	s.logger.Debug("ranking pass completed",
		zap.Int("documents", len(s.docs)),
		zap.Int("vocabulary", vocab.Len()),
		zap.Int("keywords", len(s.query.Keywords)),
		zap.String("match_mode", string(s.mode)),
		zap.Int("workers", s.workers),
	)

	return ranked, nil
}

// ComputeRanking runs a scoring pass and returns the external ranking rows.
func (s *Session) ComputeRanking() ([]Result, error) {
	records, err := s.Scores()
	if err != nil {
		return nil, err
	}
	return Results(records), nil
}
