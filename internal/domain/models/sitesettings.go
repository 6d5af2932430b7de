// internal/domain/models/sitesettings.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultSiteName is used when no settings document has been saved yet.
const DefaultSiteName = "EduPath Consultancy"

// SocialLinks are the footer profile links.
type SocialLinks struct {
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
	LinkedIn  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	YouTube   string `bson:"youtube,omitempty" json:"youtube,omitempty"`
	X         string `bson:"x,omitempty" json:"x,omitempty"`
}

// SiteSettings is the single settings document for the marketing site.
type SiteSettings struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SiteName     string             `bson:"site_name" json:"siteName"`
	Tagline      string             `bson:"tagline,omitempty" json:"tagline"`
	ContactEmail string             `bson:"contact_email,omitempty" json:"contactEmail"`
	ContactPhone string             `bson:"contact_phone,omitempty" json:"contactPhone"`
	WhatsApp     string             `bson:"whatsapp,omitempty" json:"whatsapp"`
	Address      string             `bson:"address,omitempty" json:"address"`
	Social       SocialLinks        `bson:"social" json:"social"`

	UpdatedAt     *time.Time          `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
	UpdatedByID   *primitive.ObjectID `bson:"updated_by_id,omitempty" json:"updatedById,omitempty"`
	UpdatedByName string              `bson:"updated_by_name,omitempty" json:"updatedByName,omitempty"`
}
