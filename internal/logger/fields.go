package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProfileID is the structured log field key for the candidate profile id.
	FieldProfileID = "profile_id"
	// FieldJobID is the structured log field key for a job id.
	FieldJobID = "job_id"
	// FieldSource tells where profiles and jobs were loaded from.
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

// WithFields attaches fields to the logger, falling back to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	logger = OrNop(logger)

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CandidateFields describes which profile is being matched and where the data came from.
func CandidateFields(profileID, source string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProfileID, Value: profileID},
		StringField{Key: FieldSource, Value: source},
	)
}

// WithCandidate attaches CandidateFields to the logger.
func WithCandidate(logger *zap.Logger, profileID, source string) *zap.Logger {
	return WithFields(logger, CandidateFields(profileID, source)...)
}
