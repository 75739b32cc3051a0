package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldSession is the structured log field key for the ranking session ID.
	FieldSession = "session"
	// FieldSource is the structured log field key for where documents came from.
	FieldSource = "source"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// SessionFields returns the fields that identify a ranking session and the
// origin of its documents. Empty values are dropped.
func SessionFields(session, source string) []zap.Field {
	return StringFields(
		StringField{Key: FieldSession, Value: session},
		StringField{Key: FieldSource, Value: source},
	)
}

// WithSession attaches SessionFields to the logger.
func WithSession(logger *zap.Logger, session, source string) *zap.Logger {
	return WithFields(logger, SessionFields(session, source)...)
}
