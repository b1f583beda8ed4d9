package application

import (
	"fmt"
	"strings"

	"studytrack/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "tableType" -> "table type")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"tableType": "table type",
		"subject":   "subject",
		"delta":     "delta",
		"seconds":   "seconds",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateTableType checks that value names a known table type
func ValidateTableType(fieldName, value string) error {
	if _, ok := domain.ParseTableType(value); !ok {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("expected theory or practice, got: %s", value),
		}
	}
	return nil
}

// ValidateDelta rejects a zero delta, which would be a no-op round trip
func ValidateDelta(fieldName string, delta int) error {
	if delta == 0 {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s must be non-zero", formatFieldName(fieldName)),
		}
	}
	return nil
}
