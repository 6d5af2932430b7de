// internal/domain/models/award.go
package models

// Award is a recognition the consultancy has received.
type Award struct {
	Base `bson:",inline"`

	Title       string `bson:"title" json:"title"`
	Slug        string `bson:"slug" json:"slug"`
	Issuer      string `bson:"issuer,omitempty" json:"issuer"`
	Year        int    `bson:"year,omitempty" json:"year"`
	Description string `bson:"description,omitempty" json:"description"`
	Image       string `bson:"image,omitempty" json:"image"`
	Active      bool   `bson:"active" json:"active"`
	Order       int    `bson:"order" json:"order"`
}
