// internal/domain/models/feature.go
package models

// Feature is a "why choose us" selling point.
type Feature struct {
	Base `bson:",inline"`

	Title       string   `bson:"title" json:"title"`
	Slug        string   `bson:"slug" json:"slug"`
	Description string   `bson:"description" json:"description"`
	Icon        MediaRef `bson:"icon" json:"icon"`
	Active      bool     `bson:"active" json:"active"`
	Order       int      `bson:"order" json:"order"`
}
