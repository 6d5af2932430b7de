package schema

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dalemusser/edupath/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Checker accumulates field errors. In partial mode, Required only rejects
// fields that were sent blank; absent fields are fine.
//
//	c := schema.NewChecker(partial)
//	c.Required("title", in.Title)
//	c.Enum("status", in.Status, models.ContentStatuses...)
//	return c.Errors()
type Checker struct {
	partial bool
	errs    Errors
}

// NewChecker returns a Checker for a create (partial=false) or an update.
func NewChecker(partial bool) *Checker {
	return &Checker{partial: partial}
}

// Errors returns everything collected so far.
func (c *Checker) Errors() Errors { return c.errs }

// Add records an error on field unless that field already has one, so each
// field reports its first problem only.
func (c *Checker) Add(field, format string, args ...any) {
	if c.errs.Has(field) {
		return
	}
	c.errs = append(c.errs, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Required rejects a missing field (create only) and a blank one (always).
func (c *Checker) Required(field string, v *string) {
	if v == nil {
		if !c.partial {
			c.Add(field, "is required")
		}
		return
	}
	if strings.TrimSpace(*v) == "" {
		c.Add(field, "must not be empty")
	}
}

// Present rejects a missing non-string field on create.
func Present[T any](c *Checker, field string, v *T) {
	if v == nil && !c.partial {
		c.Add(field, "is required")
	}
}

// MaxLen limits the length of a string in runes.
func (c *Checker) MaxLen(field string, v *string, max int) {
	if v == nil {
		return
	}
	if utf8.RuneCountInString(strings.TrimSpace(*v)) > max {
		c.Add(field, "must be at most %d characters", max)
	}
}

// Enum rejects values outside the closed set. Matching is exact.
func (c *Checker) Enum(field string, v *string, allowed ...string) {
	if v == nil {
		return
	}
	s := strings.TrimSpace(*v)
	for _, a := range allowed {
		if s == a {
			return
		}
	}
	c.Add(field, "must be one of: %s", strings.Join(allowed, ", "))
}

// URL rejects anything that is not an absolute http(s) URL. Blank values are
// left to Required.
func (c *Checker) URL(field string, v *string) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return
	}
	if !urlutil.IsValidAbsHTTPURL(strings.TrimSpace(*v)) {
		c.Add(field, "must be a valid http(s) URL")
	}
}

// Link accepts an absolute http(s) URL or a site-relative path ("/events").
func (c *Checker) Link(field string, v *string) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return
	}
	s := strings.TrimSpace(*v)
	if strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "//") {
		return
	}
	if !urlutil.IsValidAbsHTTPURL(s) {
		c.Add(field, "must be a URL or a path starting with /")
	}
}

// Email rejects malformed addresses and display-name forms.
func (c *Checker) Email(field string, v *string) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return
	}
	s := strings.TrimSpace(*v)
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		c.Add(field, "must be a valid email address")
	}
}

// IntRange rejects integers outside [min, max].
func (c *Checker) IntRange(field string, v *int, min, max int) {
	if v == nil {
		return
	}
	if *v < min || *v > max {
		c.Add(field, "must be between %d and %d", min, max)
	}
}

// NonNegative rejects negative sizes and counts.
func (c *Checker) NonNegative(field string, v *int64) {
	if v != nil && *v < 0 {
		c.Add(field, "must not be negative")
	}
}

// HexColor accepts #rgb and #rrggbb.
func (c *Checker) HexColor(field string, v *string) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return
	}
	if !hexColor.MatchString(strings.TrimSpace(*v)) {
		c.Add(field, "must be a hex color like #1a73e8")
	}
}

// ObjectID rejects strings that are not 24-character hex ids.
func (c *Checker) ObjectID(field string, v *string) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return
	}
	if _, err := primitive.ObjectIDFromHex(strings.TrimSpace(*v)); err != nil {
		c.Add(field, "must be a valid id")
	}
}

// Media validates a URL-or-label slot. A url kind must be a real URL; a label
// must be short enough to render in place of an image.
func (c *Checker) Media(field string, v *models.MediaRef, required bool) {
	if v == nil {
		if required && !c.partial {
			c.Add(field, "is required")
		}
		return
	}
	if v.IsZero() {
		if required {
			c.Add(field, "must not be empty")
		}
		return
	}
	switch v.Kind {
	case models.MediaURL:
		if !urlutil.IsValidAbsHTTPURL(v.Value) {
			c.Add(field, "must be a valid http(s) URL")
		}
	case models.MediaLabel:
		if utf8.RuneCountInString(v.Value) > 40 {
			c.Add(field, "label must be at most 40 characters")
		}
	default:
		c.Add(field, "kind must be url or label")
	}
}

// Tags limits the number and length of tags.
func (c *Checker) Tags(field string, v *[]string, maxCount, maxLen int) {
	if v == nil {
		return
	}
	if len(*v) > maxCount {
		c.Add(field, "must have at most %d entries", maxCount)
		return
	}
	for _, t := range *v {
		if utf8.RuneCountInString(strings.TrimSpace(t)) > maxLen {
			c.Add(field, "entries must be at most %d characters", maxLen)
			return
		}
	}
}
