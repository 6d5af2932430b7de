// Package slug derives URL identifiers and display fields from content.
package slug

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fallback is used when a title has no characters that survive slugging.
const Fallback = "item"

// MaxAttempts bounds the suffix search in Unique.
const MaxAttempts = 1000

// WordsPerMinute is the reading speed behind ReadTime.
const WordsPerMinute = 200

// ErrExhausted is returned when no free suffix was found within MaxAttempts.
var ErrExhausted = errors.New("slug: no free suffix")

// Generate converts a title to a lowercase, hyphen-separated slug.
// Accents are stripped, other scripts are transliterated to ASCII, and every
// run of characters outside [a-z0-9] becomes a single hyphen.
func Generate(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, title)
	if err != nil {
		s = title
	}
	s = strings.ToLower(unidecode.Unidecode(s))

	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	if b.Len() == 0 {
		return Fallback
	}
	return b.String()
}

// ExistsFunc reports whether candidate is already taken. Implementations
// exclude the record being edited.
type ExistsFunc func(ctx context.Context, candidate string) (bool, error)

// Unique returns base if it is free, otherwise the first free base-1, base-2, …
// Errors from exists are returned as-is.
func Unique(ctx context.Context, base string, exists ExistsFunc) (string, error) {
	candidate := base
	for i := 0; i < MaxAttempts; i++ {
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d", base, i)
		}
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %q after %d attempts", ErrExhausted, base, MaxAttempts)
}

// ReadTime estimates reading time at WordsPerMinute, rounded up, with a
// minimum of one minute.
func ReadTime(content string) string {
	return fmt.Sprintf("%d min read", ReadMinutes(content))
}

// ReadMinutes is the numeric form of ReadTime.
func ReadMinutes(content string) int {
	words := len(strings.Fields(content))
	minutes := int(math.Ceil(float64(words) / WordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// IsValid reports whether s already has slug shape: non-empty, [a-z0-9-],
// no leading, trailing or doubled hyphens.
func IsValid(s string) bool {
	if s == "" || s[0] == '-' || s[len(s)-1] == '-' || strings.Contains(s, "--") {
		return false
	}
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}
	return true
}
