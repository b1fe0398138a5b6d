package id

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// New returns a fresh random identifier.
func New() uuid.UUID {
	return uuid.New()
}

// Parse parses a textual identifier. The nil UUID is rejected.
func Parse(s string) (uuid.UUID, error) {
	u, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q: %w", s, err)
	}
	if u == uuid.Nil {
		return uuid.Nil, fmt.Errorf("invalid id %q: nil uuid", s)
	}
	return u, nil
}

// ParseOptional is Parse, except that empty input yields uuid.Nil.
func ParseOptional(s string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, nil
	}
	return Parse(s)
}

// Format renders an identifier for storage; uuid.Nil renders empty.
func Format(u uuid.UUID) string {
	if u == uuid.Nil {
		return ""
	}
	return u.String()
}

// Short returns the first 8 characters of an identifier, for display.
// "0b6c1f9e-2d4a-4c7e-9a1b-3f5e6d7c8b9a" -> "0b6c1f9e"
func Short(u uuid.UUID) string {
	if u == uuid.Nil {
		return "-"
	}
	return u.String()[:8]
}
