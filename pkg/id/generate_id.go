package id

import (
	"strings"

	"github.com/google/uuid"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NewToken returns 64 hex characters for single-use secrets such as reset links.
func NewToken() string {
	return NewID32() + NewID32()
}
