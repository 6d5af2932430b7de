// Package crud is the generic create/read/update/delete service and JSON
// surface shared by every content resource. A resource supplies a
// Resource descriptor; everything else is common.
package crud

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/dalemusser/edupath/internal/app/store/content"
	"github.com/dalemusser/edupath/internal/app/system/paging"
	"github.com/dalemusser/edupath/internal/app/system/reporting"
	"github.com/dalemusser/edupath/internal/app/system/schema"
	"github.com/dalemusser/edupath/internal/app/system/search"
	"github.com/dalemusser/edupath/internal/app/system/slug"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// slugRetries bounds re-resolution when a concurrent insert takes the slug
// between the lookup and the write.
const slugRetries = 3

// ListQuery selects one page of a list.
type ListQuery struct {
	Page    paging.Params
	Search  string
	Filters map[string]string // query parameter -> value
	Where   bson.M            // fixed constraints added by the caller
}

// Service runs the CRUD operations for one resource.
type Service[T any, I schema.Validator] struct {
	res  Resource[T, I]
	coll *content.Collection[T]
	log  *zap.Logger
	now  func() time.Time
}

// NewService binds res to its collection on src.
func NewService[T any, I schema.Validator](src content.Source, res Resource[T, I], logger *zap.Logger) *Service[T, I] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service[T, I]{
		res:  res,
		coll: content.New[T](src, res.Collection),
		log:  logger.With(zap.String("resource", res.Name)),
		now:  func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// Resource returns the descriptor.
func (s *Service[T, I]) Resource() Resource[T, I] { return s.res }

// Collection returns the typed collection for resource-specific queries.
func (s *Service[T, I]) Collection() *content.Collection[T] { return s.coll }

// SetClock replaces the time source. Tests use it to pin timestamps.
func (s *Service[T, I]) SetClock(now func() time.Time) { s.now = now }

// ID returns the hex id of doc.
func (s *Service[T, I]) ID(doc *T) string { return s.res.Base(doc).ID.Hex() }

// Create validates in, derives fields, and inserts a new document.
func (s *Service[T, I]) Create(ctx context.Context, in I) (T, error) {
	var zero T
	if errs := in.Validate(false); len(errs) > 0 {
		return zero, errs
	}

	doc := s.res.blank()
	s.res.Apply(&doc, in)

	now := s.now()
	b := s.res.Base(&doc)
	b.ID = primitive.NewObjectID()
	b.Touch(now, true)

	if err := s.derive(ctx, "create", nil, &doc, now); err != nil {
		return zero, err
	}
	if err := s.assignOrder(ctx, &doc); err != nil {
		return zero, s.fail(ctx, "create", b.ID.Hex(), err)
	}

	for attempt := 0; ; attempt++ {
		if s.res.Slug != nil {
			if err := s.assignSlug(ctx, &doc, primitive.NilObjectID); err != nil {
				return zero, s.fail(ctx, "create", b.ID.Hex(), err)
			}
		}
		err := s.coll.Insert(ctx, doc)
		if err == nil {
			s.log.Info("created", zap.String("op", "create"), zap.String("id", b.ID.Hex()))
			s.decorateWritten(ctx, "create", &doc)
			return doc, nil
		}
		if s.slugTaken(err) && attempt < slugRetries {
			continue
		}
		return zero, s.writeFailure(ctx, "create", b.ID.Hex(), err)
	}
}

// CreateJSON decodes a create payload and runs Create.
func (s *Service[T, I]) CreateJSON(ctx context.Context, r io.Reader, max int64) (T, error) {
	in, err := schema.Decode[I](r, max)
	if err != nil {
		var zero T
		return zero, err
	}
	return s.Create(ctx, in)
}

// Get loads one document by hex id.
func (s *Service[T, I]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return zero, ErrNotFound
	}
	doc, err := s.coll.Get(ctx, oid)
	if err != nil {
		if IsNotFound(err) {
			return zero, ErrNotFound
		}
		return zero, s.fail(ctx, "get", id, err)
	}
	if err := s.decorateOne(ctx, &doc); err != nil {
		return zero, err
	}
	return doc, nil
}

// GetBy loads the first document matching filter.
func (s *Service[T, I]) GetBy(ctx context.Context, filter bson.M) (T, error) {
	var zero T
	doc, err := s.coll.FindOne(ctx, filter)
	if err != nil {
		if IsNotFound(err) {
			return zero, ErrNotFound
		}
		return zero, s.fail(ctx, "get", "", err)
	}
	if err := s.decorateOne(ctx, &doc); err != nil {
		return zero, err
	}
	return doc, nil
}

// GetBySlug loads a document by slug, optionally constrained by where.
func (s *Service[T, I]) GetBySlug(ctx context.Context, value string, where bson.M) (T, error) {
	field := "slug"
	if s.res.Slug != nil {
		field = s.res.Slug.field()
	}
	return s.GetBy(ctx, search.And(bson.M{field: value}, where))
}

// List returns one page. No matches is an empty page, not an error.
func (s *Service[T, I]) List(ctx context.Context, q ListQuery) (paging.Page[T], error) {
	q.Page = q.Page.Normalize()
	filter, err := s.listFilter(q)
	if err != nil {
		return paging.Page[T]{}, err
	}

	total, err := s.coll.Count(ctx, filter)
	if err != nil {
		return paging.Page[T]{}, s.fail(ctx, "list", "", err)
	}
	items, err := s.coll.Find(ctx, filter, s.res.sort(), q.Page.Skip(), int64(q.Page.Limit))
	if err != nil {
		return paging.Page[T]{}, s.fail(ctx, "list", "", err)
	}
	if s.res.Decorate != nil && len(items) > 0 {
		if err := s.res.Decorate(ctx, items); err != nil {
			return paging.Page[T]{}, s.fail(ctx, "list", "", err)
		}
	}
	return paging.NewPage(items, q.Page, total), nil
}

// All returns every document matching where in list order, without paging.
func (s *Service[T, I]) All(ctx context.Context, where bson.M) ([]T, error) {
	if where == nil {
		where = bson.M{}
	}
	items, err := s.coll.Find(ctx, where, s.res.sort(), 0, 0)
	if err != nil {
		return nil, s.fail(ctx, "list", "", err)
	}
	return items, nil
}

// Matching returns up to limit documents for q's search and filters in list
// order, ignoring q.Page. A limit of zero means no cap.
func (s *Service[T, I]) Matching(ctx context.Context, q ListQuery, limit int64) ([]T, error) {
	filter, err := s.listFilter(q)
	if err != nil {
		return nil, err
	}
	items, err := s.coll.Find(ctx, filter, s.res.sort(), 0, limit)
	if err != nil {
		return nil, s.fail(ctx, "list", "", err)
	}
	return items, nil
}

func (s *Service[T, I]) listFilter(q ListQuery) (bson.M, error) {
	var errs schema.Errors
	conds := bson.M{}
	for _, f := range s.res.Filters {
		v := strings.TrimSpace(q.Filters[f.Param])
		if v == "" || v == FilterAll {
			continue
		}
		c, err := f.condition(v)
		if err != nil {
			var fe schema.Errors
			if errors.As(err, &fe) {
				errs = append(errs, fe...)
			}
			continue
		}
		conds[f.Field] = c
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return search.And(conds, search.Filter(q.Search, s.res.SearchFields...), q.Where), nil
}

// Update applies a partial payload to an existing document. Only the derived
// fields whose inputs changed are recomputed.
func (s *Service[T, I]) Update(ctx context.Context, id string, in I) (T, error) {
	var zero T
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return zero, ErrNotFound
	}
	if errs := in.Validate(true); len(errs) > 0 {
		return zero, errs
	}

	prev, err := s.coll.Get(ctx, oid)
	if err != nil {
		if IsNotFound(err) {
			return zero, ErrNotFound
		}
		return zero, s.fail(ctx, "update", id, err)
	}

	next := prev
	s.res.Apply(&next, in)
	now := s.now()

	if err := s.derive(ctx, "update", &prev, &next, now); err != nil {
		return zero, err
	}

	slugChanged := s.res.Slug != nil && s.res.Slug.Source(&prev) != s.res.Slug.Source(&next)
	b := s.res.Base(&next)
	b.ID = oid
	b.Touch(now, false)

	for attempt := 0; ; attempt++ {
		if slugChanged {
			if err := s.assignSlug(ctx, &next, oid); err != nil {
				return zero, s.fail(ctx, "update", id, err)
			}
		}
		err := s.coll.Replace(ctx, oid, next)
		if err == nil {
			s.log.Info("updated", zap.String("op", "update"), zap.String("id", id))
			s.decorateWritten(ctx, "update", &next)
			return next, nil
		}
		if IsNotFound(err) {
			return zero, ErrNotFound
		}
		if slugChanged && s.slugTaken(err) && attempt < slugRetries {
			continue
		}
		return zero, s.writeFailure(ctx, "update", id, err)
	}
}

// Delete hard-deletes one document. A missing id is ErrNotFound every time.
func (s *Service[T, I]) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return ErrNotFound
	}
	n, err := s.coll.Delete(ctx, oid)
	if err != nil {
		return s.fail(ctx, "delete", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	s.log.Info("deleted", zap.String("op", "delete"), zap.String("id", id))
	return nil
}

// Reorder sets the order field to each id's 1-based position in ids. The
// writes are independent; a failure part way leaves earlier writes applied.
// Ids that match nothing are skipped and reported as ErrNotFound after the
// rest are written.
func (s *Service[T, I]) Reorder(ctx context.Context, ids []string) (int, error) {
	if s.res.OrderField == "" {
		return 0, schema.Field("ids", "%s cannot be reordered", s.res.Plural)
	}
	if len(ids) == 0 {
		return 0, schema.Field("ids", "must not be empty")
	}
	oids := make([]primitive.ObjectID, len(ids))
	seen := make(map[primitive.ObjectID]bool, len(ids))
	for i, id := range ids {
		oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
		if err != nil {
			return 0, schema.Field("ids", "entry %d is not a valid id", i)
		}
		if seen[oid] {
			return 0, schema.Field("ids", "entry %d is repeated", i)
		}
		seen[oid] = true
		oids[i] = oid
	}

	now := s.now()
	updated, missing := 0, 0
	for i, oid := range oids {
		ok, err := s.coll.SetFields(ctx, oid, bson.M{s.res.OrderField: i + 1, "updated_at": now})
		if err != nil {
			return updated, s.fail(ctx, "reorder", oid.Hex(), err)
		}
		if ok {
			updated++
		} else {
			missing++
		}
	}
	s.log.Info("reordered", zap.String("op", "reorder"), zap.Int("updated", updated), zap.Int("missing", missing))
	if missing > 0 {
		return updated, ErrNotFound
	}
	return updated, nil
}

func (s *Service[T, I]) derive(ctx context.Context, op string, prev, next *T, now time.Time) error {
	if s.res.Derive == nil {
		return nil
	}
	err := s.res.Derive(ctx, prev, next, now)
	if err == nil {
		return nil
	}
	if errs, ok := AsValidation(err); ok {
		return errs
	}
	if IsNotFound(err) {
		return err
	}
	return s.fail(ctx, op, s.res.Base(next).ID.Hex(), err)
}

func (s *Service[T, I]) assignOrder(ctx context.Context, doc *T) error {
	if s.res.Order == nil || s.res.OrderField == "" {
		return nil
	}
	o := s.res.Order(doc)
	if *o != 0 {
		return nil
	}
	max, err := s.coll.MaxInt(ctx, s.res.OrderField)
	if err != nil {
		return err
	}
	*o = max + 1
	return nil
}

func (s *Service[T, I]) assignSlug(ctx context.Context, doc *T, self primitive.ObjectID) error {
	rule := s.res.Slug
	field := rule.field()
	base := slug.Generate(rule.Source(doc))
	val, err := slug.Unique(ctx, base, func(ctx context.Context, candidate string) (bool, error) {
		f := bson.M{field: candidate}
		if !self.IsZero() {
			f["_id"] = bson.M{"$ne": self}
		}
		return s.coll.Exists(ctx, f)
	})
	if err != nil {
		return err
	}
	*rule.Target(doc) = val
	return nil
}

func (s *Service[T, I]) decorateOne(ctx context.Context, doc *T) error {
	if s.res.Decorate == nil {
		return nil
	}
	one := []T{*doc}
	if err := s.res.Decorate(ctx, one); err != nil {
		return s.fail(ctx, "decorate", s.ID(doc), err)
	}
	*doc = one[0]
	return nil
}

// decorateWritten decorates a document that is already stored. The write
// has succeeded, so a failure here is logged and the undecorated doc kept.
func (s *Service[T, I]) decorateWritten(ctx context.Context, op string, doc *T) {
	if s.res.Decorate == nil {
		return
	}
	one := []T{*doc}
	if err := s.res.Decorate(ctx, one); err != nil {
		s.log.Warn("decorate after write failed",
			zap.String("op", op),
			zap.String("id", s.ID(doc)),
			zap.Error(err))
		return
	}
	*doc = one[0]
}

func (s *Service[T, I]) slugTaken(err error) bool {
	return s.res.Slug != nil && wafflemongo.IsDup(err) && strings.Contains(err.Error(), s.res.Slug.field())
}

// writeFailure maps unique-index violations to field errors and everything
// else to a PersistenceError.
func (s *Service[T, I]) writeFailure(ctx context.Context, op, id string, err error) error {
	if wafflemongo.IsDup(err) {
		for field, jsonField := range s.res.UniqueFields {
			if strings.Contains(err.Error(), field) {
				return schema.Field(jsonField, "is already in use")
			}
		}
	}
	return s.fail(ctx, op, id, err)
}

// fail logs and reports a store error and returns the safe wrapper.
func (s *Service[T, I]) fail(ctx context.Context, op, id string, err error) error {
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	s.log.Error("persistence failure",
		zap.String("op", op),
		zap.String("id", id),
		zap.Error(err))
	reporting.Capture(ctx, err, map[string]string{"resource": s.res.Name, "op": op})
	return &PersistenceError{Resource: s.res.Name, Op: op, Err: err}
}
