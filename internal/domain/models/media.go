// internal/domain/models/media.go
package models

import (
	"encoding/json"
	"strings"
)

// MediaKind tells a MediaRef apart as a link or a display label.
type MediaKind string

const (
	MediaURL   MediaKind = "url"
	MediaLabel MediaKind = "label"
)

// MediaRef is a logo/icon/image slot that holds either a URL to an image or a
// short text label shown in place of one (an emoji, initials, an icon name).
//
// The kind is decided once, when the value enters the system, instead of
// being re-sniffed from the string every time it is rendered.
type MediaRef struct {
	Kind  MediaKind `bson:"kind" json:"kind"`
	Value string    `bson:"value" json:"value"`
}

// URLRef returns a MediaRef holding a link.
func URLRef(u string) MediaRef { return MediaRef{Kind: MediaURL, Value: u} }

// LabelRef returns a MediaRef holding a text label.
func LabelRef(s string) MediaRef { return MediaRef{Kind: MediaLabel, Value: s} }

// ClassifyMedia turns a bare string into a MediaRef. Strings with an
// http(s) scheme are links; anything else is a label.
func ClassifyMedia(s string) MediaRef {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return URLRef(s)
	}
	return LabelRef(s)
}

// IsZero reports whether the slot is empty.
func (m MediaRef) IsZero() bool { return strings.TrimSpace(m.Value) == "" }

// IsURL reports whether the slot holds a link.
func (m MediaRef) IsURL() bool { return m.Kind == MediaURL }

// UnmarshalJSON accepts either the tagged object form
// {"kind":"url","value":"https://..."} or a bare string, which is classified
// with ClassifyMedia. An object without a kind is classified the same way.
func (m *MediaRef) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*m = ClassifyMedia(s)
		return nil
	}
	type raw MediaRef
	var r raw
	if err := json.Unmarshal(b, &r); err != nil {
		return err
	}
	if r.Kind == "" {
		*m = ClassifyMedia(r.Value)
		return nil
	}
	r.Value = strings.TrimSpace(r.Value)
	*m = MediaRef(r)
	return nil
}
