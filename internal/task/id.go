package task

import (
	"strings"

	"github.com/google/uuid"
)

const (
	// MinPrefixLength is the shortest ID prefix accepted for lookups.
	MinPrefixLength = 3
	shortIDLength   = 8
)

// NewID returns a fresh random task ID.
func NewID() uuid.UUID {
	return uuid.New()
}

// ParseID parses a task ID, reporting whether s was a valid UUID.
func ParseID(s string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// ShortID returns the display form of an ID.
func ShortID(id uuid.UUID) string {
	return id.String()[:shortIDLength]
}

// HasPrefix reports whether the canonical form of id starts with prefix.
// Prefixes shorter than MinPrefixLength never match.
func HasPrefix(id uuid.UUID, prefix string) bool {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if len(prefix) < MinPrefixLength {
		return false
	}
	return strings.HasPrefix(id.String(), prefix)
}
