// Package stringutil provides small string validation and extraction
// helpers shared by the validation engine and its adapters.
package stringutil

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// IsValidEmail checks if s is a valid email address.
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// LastPathSegment returns the final non-empty segment of an HTTP request
// path, ignoring any trailing slash. It returns "" for "/" and for paths
// made of slashes only.
func LastPathSegment(path string) string {
	trimmed := strings.TrimRight(path, "/")
	if i := strings.LastIndexByte(trimmed, '/'); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}
