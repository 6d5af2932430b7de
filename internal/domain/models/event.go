// internal/domain/models/event.go
package models

import "time"

// Event is a seminar, fair or webinar that visitors can register for.
// Status and PublishedAt follow the same rules as Blog.
type Event struct {
	Base `bson:",inline"`

	Title       string     `bson:"title" json:"title"`
	Slug        string     `bson:"slug" json:"slug"`
	Description string     `bson:"description,omitempty" json:"description"`
	Location    string     `bson:"location" json:"location"`
	StartsAt    time.Time  `bson:"starts_at" json:"startsAt"`
	EndsAt      *time.Time `bson:"ends_at,omitempty" json:"endsAt,omitempty"`
	Capacity    int        `bson:"capacity" json:"capacity"`
	Fee         string     `bson:"fee,omitempty" json:"fee"`
	Image       string     `bson:"image,omitempty" json:"image"`
	Status      string     `bson:"status" json:"status"`
	PublishedAt *time.Time `bson:"published_at,omitempty" json:"publishedAt,omitempty"`
}
