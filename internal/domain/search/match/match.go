// Package match implements the case-insensitive comparisons used by the
// catalogue: exact equality, literal substring search and slug matching.
//
// Case folding is ASCII only. Non-ASCII letters compare by exact code point,
// so "É" and "é" are different values.
package match

import (
	"regexp"
	"strings"
)

// slugSeparator is the character class a slug hyphen matches in a pattern.
const slugSeparator = "[- ]"

// Fold lower-cases the ASCII letters of s and leaves every other byte intact.
func Fold(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 'A' && c <= 'Z' {
			return foldFrom(s, i)
		}
	}
	return s
}

func foldFrom(s string, start int) string {
	b := []byte(s)
	for i := start; i < len(b); i++ {
		if c := b[i]; c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// Equal reports whether a and b are equal under ASCII case folding.
func Equal(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if foldByte(a[i]) != foldByte(b[i]) {
			return false
		}
	}
	return true
}

// Contains reports whether term occurs in s as a literal, case-insensitive
// substring. The empty term is contained in every string.
func Contains(s, term string) bool {
	return strings.Contains(Fold(s), Fold(term))
}

// Slug reports whether candidate matches the human-entered slug pattern.
// Comparison is case-insensitive and a hyphen or a space on either side
// matches a hyphen or a space on the other.
//
// Names that contain a literal hyphen ("BIG-G 137B") are ambiguous: their
// slug also matches a name spelled with a space at that position.
func Slug(candidate, pattern string) bool {
	if len(candidate) != len(pattern) {
		return false
	}
	for i := 0; i < len(candidate); i++ {
		if slugByte(candidate[i]) != slugByte(pattern[i]) {
			return false
		}
	}
	return true
}

// SlugKey returns the canonical slug form of s: folded, with spaces turned
// into hyphens. Slug(a, b) holds exactly when SlugKey(a) == SlugKey(b).
func SlugKey(s string) string {
	b := []byte(s)
	for i := range b {
		b[i] = slugByte(b[i])
	}
	return string(b)
}

// EscapePattern quotes every regular expression metacharacter in s.
// Any string built from user input must go through it before it reaches a
// pattern engine.
func EscapePattern(s string) string {
	return regexp.QuoteMeta(s)
}

// SubstringPattern returns an unanchored pattern matching term literally.
// Case-insensitivity is left to the engine option ("i", ~*).
func SubstringPattern(term string) string {
	return EscapePattern(term)
}

// ExactPattern returns an anchored pattern matching value literally.
func ExactPattern(value string) string {
	return "^" + EscapePattern(value) + "$"
}

// SlugPattern returns an anchored pattern in which every hyphen or space of
// slug matches either a literal hyphen or a literal space. All other
// characters are quoted.
func SlugPattern(slug string) string {
	var sb strings.Builder
	sb.WriteByte('^')
	start := 0
	for i := 0; i < len(slug); i++ {
		if slug[i] == '-' || slug[i] == ' ' {
			sb.WriteString(EscapePattern(slug[start:i]))
			sb.WriteString(slugSeparator)
			start = i + 1
		}
	}
	sb.WriteString(EscapePattern(slug[start:]))
	sb.WriteByte('$')
	return sb.String()
}

func foldByte(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func slugByte(c byte) byte {
	if c == ' ' {
		return '-'
	}
	return foldByte(c)
}
