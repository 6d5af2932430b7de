// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/edupath/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	// Publishable content
	ensure("blogs", blogsSchema())
	ensure("events", eventsSchema())

	// Ordered marketing content
	ensure("partners", partnersSchema())
	ensure("awards", titledSchema())
	ensure("study_steps", stepsSchema())
	ensure("features", titledSchema())
	ensure("slides", slidesSchema())
	ensure("offices", officesSchema())

	// People and records
	ensure("event_registrations", registrationsSchema())
	ensure("users", usersSchema())
	ensure("uploads", uploadsSchema())

	// These don't strictly need validators; we still ensure the collections exist.
	ensure("site_settings", nil)
	ensure("audit_events", nil)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists.
// Uses ListCollectionNames to avoid "created collection" log when it didn't.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

var (
	nonBlank = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}
	slugStr  = bson.M{"bsonType": "string", "pattern": "^[a-z0-9]+(?:-[a-z0-9]+)*$"}
	number   = bson.M{"bsonType": bson.A{"int", "long"}}
	date     = bson.M{"bsonType": "date"}
	flag     = bson.M{"bsonType": "bool"}
	media    = bson.M{
		"bsonType": "object",
		"required": bson.A{"kind", "value"},
		"properties": bson.M{
			"kind":  bson.M{"enum": bson.A{string(models.MediaURL), string(models.MediaLabel)}},
			"value": bson.M{"bsonType": "string"},
		},
	}
)

func enum(values []string) bson.M {
	a := make(bson.A, len(values))
	for i, v := range values {
		a[i] = v
	}
	return bson.M{"enum": a}
}

func object(required []string, props bson.M) bson.M {
	req := make(bson.A, len(required))
	for i, r := range required {
		req[i] = r
	}
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType":   "object",
			"required":   req,
			"properties": props,
		},
	}
}

func blogsSchema() bson.M {
	return object([]string{"title", "slug", "content", "status"}, bson.M{
		"title":        nonBlank,
		"slug":         slugStr,
		"content":      bson.M{"bsonType": "string"},
		"category":     enum(models.BlogCategories),
		"tags":         bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}},
		"status":       enum(models.ContentStatuses),
		"published_at": date,
		"order":        number,
	})
}

func eventsSchema() bson.M {
	return object([]string{"title", "slug", "starts_at", "status"}, bson.M{
		"title":        nonBlank,
		"slug":         slugStr,
		"starts_at":    date,
		"ends_at":      date,
		"capacity":     bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
		"status":       enum(models.ContentStatuses),
		"published_at": date,
	})
}

func partnersSchema() bson.M {
	return object([]string{"name", "slug", "legacy_id"}, bson.M{
		"name":      nonBlank,
		"slug":      slugStr,
		"legacy_id": number,
		"logo":      media,
		"active":    flag,
		"order":     number,
	})
}

func titledSchema() bson.M {
	return object([]string{"title", "slug"}, bson.M{
		"title":  nonBlank,
		"slug":   slugStr,
		"icon":   media,
		"active": flag,
		"order":  number,
	})
}

func stepsSchema() bson.M {
	return object([]string{"title", "slug", "step_number"}, bson.M{
		"title":       nonBlank,
		"slug":        slugStr,
		"icon":        media,
		"step_number": bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 1, "maximum": 50},
		"active":      flag,
		"order":       number,
	})
}

func slidesSchema() bson.M {
	return object([]string{"title", "slug", "image"}, bson.M{
		"title":  nonBlank,
		"slug":   slugStr,
		"image":  nonBlank,
		"active": flag,
		"order":  number,
	})
}

func officesSchema() bson.M {
	return object([]string{"city", "phone"}, bson.M{
		"city":   nonBlank,
		"phone":  nonBlank,
		"active": flag,
		"order":  number,
	})
}

func registrationsSchema() bson.M {
	return object([]string{"event_id", "name", "email", "status", "payment_status", "registration_date"}, bson.M{
		"event_id":          bson.M{"bsonType": "objectId"},
		"name":              nonBlank,
		"email":             nonBlank,
		"status":            enum(models.RegistrationStatuses),
		"payment_status":    enum(models.PaymentStatuses),
		"registration_date": date,
	})
}

func usersSchema() bson.M {
	return object([]string{"name", "email", "email_ci", "role"}, bson.M{
		"name":           nonBlank,
		"email":          nonBlank,
		"email_ci":       nonBlank,
		"role":           enum(models.UserRoles),
		"email_verified": date,
	})
}

func uploadsSchema() bson.M {
	return object([]string{"public_id", "file_name", "url", "size"}, bson.M{
		"public_id": nonBlank,
		"file_name": nonBlank,
		"url":       nonBlank,
		"user_id":   bson.M{"bsonType": "objectId"},
		"size":      bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
	})
}
