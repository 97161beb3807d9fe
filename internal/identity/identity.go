// Package identity derives stable card identifiers from card content.
// The id survives re-parsing a deck file as long as the term and definition
// are textually equivalent after normalization.
package identity

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// Normalize cleans each part and joins them. It trims whitespace, lowercases,
// and unifies line endings, so cosmetic edits to a deck file do not orphan a
// card's scheduling state.
func Normalize(term, definition string) string {
	normalizePart := func(part string) string {
		p := strings.ToLower(part)
		p = strings.TrimSpace(p)
		p = strings.ReplaceAll(p, "\r\n", "\n")
		return p
	}

	// Joined with a newline so distinct fields cannot collide by
	// concatenation, e.g. "ab"+"c" vs "a"+"bc".
	return strings.Join([]string{normalizePart(term), normalizePart(definition)}, "\n")
}

// Hash returns the card's identity: the SHA-256 of its normalized content as
// a hex string.
func Hash(term, definition string) string {
	sum := sha256.Sum256([]byte(Normalize(term, definition)))
	return fmt.Sprintf("%x", sum)
}
