// internal/app/store/content/collection.go
package content

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when an id or filter matches no document.
var ErrNotFound = errors.New("content: document not found")

// Source hands out the database handle. *gateway.Gateway satisfies it.
type Source interface {
	Handle(ctx context.Context) (*mongo.Database, error)
}

// Static wraps an already-connected database as a Source.
func Static(db *mongo.Database) Source { return staticSource{db} }

type staticSource struct{ db *mongo.Database }

func (s staticSource) Handle(context.Context) (*mongo.Database, error) { return s.db, nil }

// Collection is typed access to one collection. The handle is resolved on
// every call, so a Collection can be built before the store is reachable.
type Collection[T any] struct {
	src  Source
	name string
}

// New returns a Collection named name.
func New[T any](src Source, name string) *Collection[T] {
	return &Collection[T]{src: src, name: name}
}

// Name is the collection name.
func (s *Collection[T]) Name() string { return s.name }

func (s *Collection[T]) coll(ctx context.Context) (*mongo.Collection, error) {
	db, err := s.src.Handle(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(s.name), nil
}

// Insert writes doc as a new document. Callers assign the _id.
func (s *Collection[T]) Insert(ctx context.Context, doc T) error {
	c, err := s.coll(ctx)
	if err != nil {
		return err
	}
	_, err = c.InsertOne(ctx, doc)
	return err
}

// Get loads the document with the given id.
func (s *Collection[T]) Get(ctx context.Context, id primitive.ObjectID) (T, error) {
	return s.FindOne(ctx, bson.M{"_id": id})
}

// FindOne returns the first document matching filter.
func (s *Collection[T]) FindOne(ctx context.Context, filter bson.M) (T, error) {
	var out T
	c, err := s.coll(ctx)
	if err != nil {
		return out, err
	}
	err = c.FindOne(ctx, filter).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return out, ErrNotFound
	}
	return out, err
}

// Find returns one page of documents. A zero limit means no limit.
// The result is never nil.
func (s *Collection[T]) Find(ctx context.Context, filter bson.M, sort bson.D, skip, limit int64) ([]T, error) {
	c, err := s.coll(ctx)
	if err != nil {
		return nil, err
	}
	opts := options.Find()
	if len(sort) > 0 {
		opts.SetSort(sort)
	}
	if skip > 0 {
		opts.SetSkip(skip)
	}
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of documents matching filter.
func (s *Collection[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	c, err := s.coll(ctx)
	if err != nil {
		return 0, err
	}
	return c.CountDocuments(ctx, filter)
}

// Exists reports whether any document matches filter.
func (s *Collection[T]) Exists(ctx context.Context, filter bson.M) (bool, error) {
	c, err := s.coll(ctx)
	if err != nil {
		return false, err
	}
	err = c.FindOne(ctx, filter, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Replace overwrites the document with the given id. It returns ErrNotFound
// when nothing matched.
func (s *Collection[T]) Replace(ctx context.Context, id primitive.ObjectID, doc T) error {
	c, err := s.coll(ctx)
	if err != nil {
		return err
	}
	res, err := c.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetFields applies a $set to one document and reports whether it matched.
func (s *Collection[T]) SetFields(ctx context.Context, id primitive.ObjectID, set bson.M) (bool, error) {
	c, err := s.coll(ctx)
	if err != nil {
		return false, err
	}
	res, err := c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// Delete removes the document with the given id and returns the count
// removed (0 or 1).
func (s *Collection[T]) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	c, err := s.coll(ctx)
	if err != nil {
		return 0, err
	}
	res, err := c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteMany removes every document matching filter.
func (s *Collection[T]) DeleteMany(ctx context.Context, filter bson.M) (int64, error) {
	c, err := s.coll(ctx)
	if err != nil {
		return 0, err
	}
	res, err := c.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// MaxInt returns the largest integer value of field, or 0 for an empty
// collection.
func (s *Collection[T]) MaxInt(ctx context.Context, field string) (int, error) {
	c, err := s.coll(ctx)
	if err != nil {
		return 0, err
	}
	var row bson.M
	opts := options.FindOne().
		SetSort(bson.D{{Key: field, Value: -1}}).
		SetProjection(bson.M{field: 1})
	err = c.FindOne(ctx, bson.M{field: bson.M{"$exists": true}}, opts).Decode(&row)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	switch v := row[field].(type) {
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("content: %s.%s is %T, not a number", s.name, field, v)
	}
}
