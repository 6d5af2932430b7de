// internal/domain/models/base.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Base holds the fields every stored content record carries. Models embed it
// inline so the store-generated _id and the timestamps live at the top level
// of each document.
//
// ObjectID marshals to JSON as its 24-character hex string, so callers never
// see the driver's native identifier type.
type Base struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Touch stamps UpdatedAt, and CreatedAt as well when created is true.
func (b *Base) Touch(now time.Time, created bool) {
	if created {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}
