// internal/domain/models/partner.go
package models

// Partner is a university or institution the consultancy works with.
//
// LegacyID is the numeric id the old site used in links; it is kept apart
// from the store identifier and assigned as max+1 when not supplied.
type Partner struct {
	Base `bson:",inline"`

	LegacyID    int      `bson:"legacy_id" json:"legacyId"`
	Name        string   `bson:"name" json:"name"`
	Slug        string   `bson:"slug" json:"slug"`
	Category    string   `bson:"category,omitempty" json:"category"`
	Country     string   `bson:"country,omitempty" json:"country"`
	Logo        MediaRef `bson:"logo" json:"logo"`
	BrandColor  string   `bson:"brand_color,omitempty" json:"brandColor"`
	Description string   `bson:"description,omitempty" json:"description"`
	Website     string   `bson:"website,omitempty" json:"website"`
	Active      bool     `bson:"active" json:"active"`
	Order       int      `bson:"order" json:"order"`
}
