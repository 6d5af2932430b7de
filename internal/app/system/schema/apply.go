package schema

import (
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
)

// Set copies *src into *dst when src was sent.
func Set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// SetTrim copies a trimmed string when src was sent.
func SetTrim(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

// SetTags replaces dst with the normalized tag set when src was sent.
func SetTags(dst *[]string, src *[]string) {
	if src != nil {
		*dst = NormalizeTags(*src)
	}
}

// NormalizeTags trims tags, drops blanks and removes case-insensitive
// duplicates, keeping the first spelling seen. The result is never nil.
func NormalizeTags(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := text.Fold(t)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}
