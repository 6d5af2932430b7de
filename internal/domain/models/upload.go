// internal/domain/models/upload.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Upload records a file stored on the external image host. The bytes never
// pass through this service; only the resulting URL and metadata do.
type Upload struct {
	Base `bson:",inline"`

	PublicID    string              `bson:"public_id" json:"publicId"`
	UserID      *primitive.ObjectID `bson:"user_id,omitempty" json:"userId,omitempty"`
	FileName    string              `bson:"file_name" json:"fileName"`
	URL         string              `bson:"url" json:"url"`
	ContentType string              `bson:"content_type,omitempty" json:"contentType"`
	Size        int64               `bson:"size" json:"size"`
	Alt         string              `bson:"alt,omitempty" json:"alt"`
}
