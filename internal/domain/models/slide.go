// internal/domain/models/slide.go
package models

// Slide is one panel of the home page hero carousel.
type Slide struct {
	Base `bson:",inline"`

	Title    string `bson:"title" json:"title"`
	Slug     string `bson:"slug" json:"slug"`
	Subtitle string `bson:"subtitle,omitempty" json:"subtitle"`
	Image    string `bson:"image" json:"image"`
	CTALabel string `bson:"cta_label,omitempty" json:"ctaLabel"`
	CTALink  string `bson:"cta_link,omitempty" json:"ctaLink"`
	Active   bool   `bson:"active" json:"active"`
	Order    int    `bson:"order" json:"order"`
}
