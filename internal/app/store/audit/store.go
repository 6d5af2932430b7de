// internal/app/store/audit/store.go
package audit

import (
	"context"
	"time"

	"github.com/dalemusser/edupath/internal/app/store/content"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection is where audit events are kept.
const Collection = "audit_events"

// Event categories
const (
	CategoryAdmin  = "admin"
	CategoryPublic = "public"
)

// Event type suffixes; the full type is "<resource>_<action>", e.g. "blog_created".
const (
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionDeleted   = "deleted"
	ActionReordered = "reordered"
)

// Singleton event types
const (
	EventSettingsUpdated       = "settings_updated"
	EventRegistrationSubmitted = "event_registration_submitted"
)

// Event is one recorded mutation.
type Event struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`

	Category  string `bson:"category" json:"category"`
	EventType string `bson:"event_type" json:"eventType"`

	// Who
	ActorID   string `bson:"actor_id,omitempty" json:"actorId,omitempty"`
	ActorName string `bson:"actor_name,omitempty" json:"actorName,omitempty"`
	ActorRole string `bson:"actor_role,omitempty" json:"actorRole,omitempty"`

	// What
	Resource   string `bson:"resource" json:"resource"`
	ResourceID string `bson:"resource_id,omitempty" json:"resourceId,omitempty"`

	// Context
	IP        string `bson:"ip" json:"ip"`
	UserAgent string `bson:"user_agent,omitempty" json:"userAgent,omitempty"`
	RequestID string `bson:"request_id,omitempty" json:"requestId,omitempty"`

	Details map[string]string `bson:"details,omitempty" json:"details,omitempty"`
}

// QueryFilter narrows a Query. Zero fields are ignored.
type QueryFilter struct {
	Category   string
	EventType  string
	Resource   string
	ResourceID string
	ActorID    string
	StartTime  *time.Time
	EndTime    *time.Time
	Limit      int64
	Offset     int64
}

func (f QueryFilter) bson() bson.M {
	q := bson.M{}
	if f.Category != "" {
		q["category"] = f.Category
	}
	if f.EventType != "" {
		q["event_type"] = f.EventType
	}
	if f.Resource != "" {
		q["resource"] = f.Resource
	}
	if f.ResourceID != "" {
		q["resource_id"] = f.ResourceID
	}
	if f.ActorID != "" {
		q["actor_id"] = f.ActorID
	}
	if f.StartTime != nil || f.EndTime != nil {
		tq := bson.M{}
		if f.StartTime != nil {
			tq["$gte"] = *f.StartTime
		}
		if f.EndTime != nil {
			tq["$lte"] = *f.EndTime
		}
		q["timestamp"] = tq
	}
	return q
}

// Store manages audit event records.
type Store struct {
	c *content.Collection[Event]
}

// New creates a new audit Store.
func New(src content.Source) *Store {
	return &Store{c: content.New[Event](src, Collection)}
}

// Log records an audit event, filling in the id and timestamp when unset.
func (s *Store) Log(ctx context.Context, event Event) error {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	return s.c.Insert(ctx, event)
}

// Query returns matching events, newest first. Limit defaults to 100.
func (s *Store) Query(ctx context.Context, f QueryFilter) ([]Event, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	return s.c.Find(ctx, f.bson(), bson.D{{Key: "timestamp", Value: -1}}, f.Offset, limit)
}

// Count returns the number of events matching f.
func (s *Store) Count(ctx context.Context, f QueryFilter) (int64, error) {
	return s.c.Count(ctx, f.bson())
}

// PurgeBefore deletes events recorded before cutoff.
func (s *Store) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.c.DeleteMany(ctx, bson.M{"timestamp": bson.M{"$lt": cutoff}})
}

// ForResource returns the history of one record, newest first.
func (s *Store) ForResource(ctx context.Context, resource, id string, limit int64) ([]Event, error) {
	return s.Query(ctx, QueryFilter{Resource: resource, ResourceID: id, Limit: limit})
}
