package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProvider is the structured log field key for the AI provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the AI model identifier.
	FieldModel = "ai_model"
	// FieldTier names the extraction tier that produced a profile.
	FieldTier = "extraction_tier"
	// FieldFilename is the document name a log entry refers to.
	FieldFilename = "filename"
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
		value := strings.TrimSpace(field.Value)
		if key == "" || value == "" {
			continue
		}
		result = append(result, zap.String(key, value))
	}
	return result
}

// WithFields attaches fields to the logger, defaulting to a no-op logger when nil.
func WithFields(l *zap.Logger, fields ...zap.Field) *zap.Logger {
	l = OrNop(l)
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}

// CommonFields returns fields describing the AI provider and model.
// Empty values are skipped.
func CommonFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

// WithCommonFields attaches the common AI fields to the provided logger.
func WithCommonFields(l *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(l, CommonFields(provider, model)...)
}

// Coverage is a named count of extracted entries, e.g. "skills": 12.
type Coverage struct {
	Name  string
	Count int
}

// CoverageFields renders extraction coverage counts as integer fields.
// Entries with an empty name are dropped; zero counts are kept.
func CoverageFields(tier string, coverage ...Coverage) []zap.Field {
	fields := StringFields(StringField{Key: FieldTier, Value: tier})
	for _, c := range coverage {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			continue
		}
		fields = append(fields, zap.Int(name, c.Count))
	}
	return fields
}
