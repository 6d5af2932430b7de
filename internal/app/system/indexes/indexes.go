// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Set is the desired index set for one collection.
type Set struct {
	Collection string
	Indexes    []mongo.IndexModel
}

/*
EnsureAll is called at startup. Reconciling a set is idempotent.
Errors are aggregated so every problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	var problems []string
	for _, s := range All() {
		if err := ensureIndexSet(ctx, db.Collection(s.Collection), s.Indexes, logger); err != nil {
			problems = append(problems, s.Collection+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func idx(name string, keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetName(name)}
}

func unique(name string, keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetName(name).SetUnique(true)}
}

// ordered is the index set shared by slugged, hand-ordered content.
func ordered(coll string) Set {
	return Set{Collection: coll, Indexes: []mongo.IndexModel{
		unique("uniq_"+coll+"_slug", bson.D{{Key: "slug", Value: 1}}),
		idx("idx_"+coll+"_active_order", bson.D{{Key: "active", Value: 1}, {Key: "order", Value: 1}}),
	}}
}

// All returns every collection's desired indexes.
func All() []Set {
	return []Set{
		{Collection: "blogs", Indexes: []mongo.IndexModel{
			unique("uniq_blogs_slug", bson.D{{Key: "slug", Value: 1}}),
			idx("idx_blogs_status_created", bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}),
			idx("idx_blogs_category_order", bson.D{{Key: "category", Value: 1}, {Key: "order", Value: 1}}),
			idx("idx_blogs_tags", bson.D{{Key: "tags", Value: 1}}),
		}},
		{Collection: "partners", Indexes: []mongo.IndexModel{
			unique("uniq_partners_slug", bson.D{{Key: "slug", Value: 1}}),
			unique("uniq_partners_legacy_id", bson.D{{Key: "legacy_id", Value: 1}}),
			idx("idx_partners_active_order", bson.D{{Key: "active", Value: 1}, {Key: "order", Value: 1}}),
			idx("idx_partners_category", bson.D{{Key: "category", Value: 1}}),
		}},
		ordered("awards"),
		ordered("study_steps"),
		ordered("features"),
		ordered("slides"),
		{Collection: "offices", Indexes: []mongo.IndexModel{
			idx("idx_offices_active_order", bson.D{{Key: "active", Value: 1}, {Key: "order", Value: 1}}),
			idx("idx_offices_city", bson.D{{Key: "city", Value: 1}}),
		}},
		{Collection: "events", Indexes: []mongo.IndexModel{
			unique("uniq_events_slug", bson.D{{Key: "slug", Value: 1}}),
			idx("idx_events_status_starts", bson.D{{Key: "status", Value: 1}, {Key: "starts_at", Value: 1}}),
		}},
		{Collection: "event_registrations", Indexes: []mongo.IndexModel{
			idx("idx_registrations_event_created", bson.D{{Key: "event_id", Value: 1}, {Key: "created_at", Value: -1}}),
			idx("idx_registrations_status_created", bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}),
			idx("idx_registrations_email", bson.D{{Key: "email", Value: 1}}),
		}},
		{Collection: "users", Indexes: []mongo.IndexModel{
			unique("uniq_users_email_ci", bson.D{{Key: "email_ci", Value: 1}}),
			idx("idx_users_role_created", bson.D{{Key: "role", Value: 1}, {Key: "created_at", Value: -1}}),
		}},
		{Collection: "uploads", Indexes: []mongo.IndexModel{
			unique("uniq_uploads_public_id", bson.D{{Key: "public_id", Value: 1}}),
			idx("idx_uploads_user_created", bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}),
		}},
		{Collection: "audit_events", Indexes: []mongo.IndexModel{
			idx("idx_audit_timestamp", bson.D{{Key: "timestamp", Value: -1}}),
			idx("idx_audit_resource", bson.D{{Key: "resource", Value: 1}, {Key: "resource_id", Value: 1}, {Key: "timestamp", Value: -1}}),
			idx("idx_audit_actor", bson.D{{Key: "actor_id", Value: 1}, {Key: "timestamp", Value: -1}}),
		}},
	}
}

/* -------------------------------------------------------------------------- */
/* Reconcile a set of desired indexes for one collection                      */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func boolValue(b *bool) bool { return b != nil && *b }

func listIndexes(ctx context.Context, coll *mongo.Collection) (map[string]existingIndex, error) {
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	existing := map[string]existingIndex{}
	for cur.Next(ctx) {
		var ix existingIndex
		if err := cur.Decode(&ix); err != nil {
			continue
		}
		existing[keySig(ix.Key)] = ix
	}
	return existing, cur.Err()
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel, logger *zap.Logger) error {
	existing, err := listIndexes(ctx, coll)
	if err != nil {
		// A collection that does not exist yet has no indexes.
		existing = map[string]existingIndex{}
	}

	var errs []string
	for _, m := range models {
		name := *m.Options.Name
		wantUnique := boolValue(m.Options.Unique)
		sig := keySig(m.Keys.(bson.D))
		start := time.Now()
		log := logger.With(
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig),
			zap.Bool("unique", wantUnique))

		if ex, ok := existing[sig]; ok {
			if boolValue(ex.Unique) == wantUnique && ex.Name == name {
				log.Debug("reusing existing index")
				continue
			}
			// Same keys under another name or with other options: drop and recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				log.Warn("drop existing index failed", zap.String("existing", ex.Name), zap.Error(err))
				errs = append(errs, fmt.Sprintf("%s: drop %s failed: %v", name, ex.Name, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if wafflemongo.IsDup(err) && wantUnique {
				errs = append(errs, fmt.Sprintf("%s: cannot create unique index (duplicates present on %s)", name, sig))
			} else {
				errs = append(errs, fmt.Sprintf("%s: %v", name, err))
			}
			log.Warn("index ensure failed", zap.Error(err))
			continue
		}
		log.Info("index ensured", zap.Duration("took", time.Since(start)))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
