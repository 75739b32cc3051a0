package server

import (
	"errors"
	"net/http"

	"github.com/spigell/resume-ranker/internal/corpus"
	"github.com/spigell/resume-ranker/internal/keywords"
	"github.com/spigell/resume-ranker/internal/ranker"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNoDocuments  = errors.New("no resumes uploaded")
	ErrUnauthorized = errors.New("unauthorized")
)

// HTTPStatusCode maps an error returned by a handler to a response status.
func HTTPStatusCode(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, corpus.ErrUnsupportedFormat),
		errors.Is(err, corpus.ErrUnreadableDocument):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrNoDocuments),
		errors.Is(err, ErrNoSession),
		errors.Is(err, ranker.ErrNoQuerySet),
		errors.Is(err, keywords.ErrInvalidWeight),
		errors.Is(err, keywords.ErrEmptyKeyword):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
