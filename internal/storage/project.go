package storage

import (
	"regexp"
	"strings"
)

//nolint:gochecknoglobals // Compiled once, read-only
var unsafeChars = regexp.MustCompile(`[^a-z0-9]+`)

// SanitizeName converts a project name to a safe file name.
// "Home Renovation!" -> "home-renovation"
func SanitizeName(name string) string {
	result := strings.ToLower(name)

	// Replace non-alphanumeric chars with dash
	result = unsafeChars.ReplaceAllString(result, "-")

	// Trim leading/trailing dashes
	return strings.Trim(result, "-")
}
