package validator

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// shortCodeRegex validates short code format (alphanumeric, hyphens, underscores)
	shortCodeRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// ValidateShortCode checks if a short code has valid format
func ValidateShortCode(code string) bool {
	if len(code) < 1 || len(code) > 50 {
		return false
	}
	return shortCodeRegex.MatchString(code)
}

// ParseID parses a positive numeric identifier from a path parameter
func ParseID(field, raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil || id == 0 {
		return 0, &ValidationError{Field: field, Message: "must be a positive integer"}
	}
	return uint(id), nil
}

// ClampInt parses raw as an integer and clamps it to [min, max].
// Empty or malformed input yields def.
func ClampInt(raw string, def, min, max int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
