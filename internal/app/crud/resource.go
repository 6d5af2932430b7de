package crud

import (
	"context"
	"time"

	"github.com/dalemusser/edupath/internal/app/system/schema"
	"github.com/dalemusser/edupath/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Resource describes one content type to the generic service. T is the
// stored document, I the request input (pointer fields, nil = not sent).
type Resource[T any, I schema.Validator] struct {
	// Name is the singular JSON key and audit name ("blog").
	Name string
	// Plural is the list JSON key ("blogs").
	Plural string
	// Collection is the MongoDB collection.
	Collection string

	// SearchFields are matched case-insensitively by the "search" parameter.
	SearchFields []string
	// Filters are the exact-match query parameters the list accepts.
	Filters []Filter
	// OrderField, when set, sorts lists ascending and enables reorder.
	OrderField string

	// Defaults returns a new document before input is applied.
	Defaults func() T
	// Apply copies the sent fields of in onto doc.
	Apply func(doc *T, in I)
	// Base exposes the embedded id and timestamps.
	Base func(doc *T) *models.Base

	// Slug, when set, derives a unique slug from a source field.
	Slug *SlugRule[T]
	// Order exposes the order field; a zero order on create is set to max+1.
	Order func(doc *T) *int

	// Derive computes the remaining derived fields and enforces lifecycle
	// rules. prev is nil on create.
	Derive func(ctx context.Context, prev, next *T, now time.Time) error
	// Decorate fills in computed, unstored fields on listed or fetched docs.
	Decorate func(ctx context.Context, docs []T) error

	// UniqueFields maps unique-indexed bson fields to the JSON field that
	// a duplicate key should be reported on.
	UniqueFields map[string]string
}

// SlugRule reads the slug source and exposes the slug target.
type SlugRule[T any] struct {
	Field  string // bson field, default "slug"
	Source func(doc *T) string
	Target func(doc *T) *string
}

func (r *SlugRule[T]) field() string {
	if r.Field == "" {
		return "slug"
	}
	return r.Field
}

// Filter maps a query parameter to an exact-match condition.
type Filter struct {
	Param  string
	Field  string
	Values []string // allowed values; empty accepts anything
	Bool   bool     // parse "true"/"false"
	ID     bool     // parse a hex ObjectID
}

// FilterAll is the value clients send to mean "no filter".
const FilterAll = "all"

func (f Filter) condition(v string) (any, error) {
	if f.Bool {
		switch v {
		case "true", "1":
			return true, nil
		case "false", "0":
			return false, nil
		}
		return nil, schema.Field(f.Param, "must be true or false")
	}
	if f.ID {
		oid, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			return nil, schema.Field(f.Param, "must be a valid id")
		}
		return oid, nil
	}
	if len(f.Values) == 0 {
		return v, nil
	}
	for _, a := range f.Values {
		if v == a {
			return v, nil
		}
	}
	return nil, schema.Field(f.Param, "must be one of %v", f.Values)
}

func (r *Resource[T, I]) sort() bson.D {
	if r.OrderField != "" {
		return bson.D{{Key: r.OrderField, Value: 1}, {Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}
	}
	return bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}
}

func (r *Resource[T, I]) blank() T {
	if r.Defaults != nil {
		return r.Defaults()
	}
	var zero T
	return zero
}
