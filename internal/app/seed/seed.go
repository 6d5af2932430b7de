// Package seed loads initial site content from a YAML file through the
// same CRUD services the admin API uses, so validation, slugs and ordering
// apply exactly as they would for an editor.
package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dalemusser/edupath/internal/app/crud"
	"github.com/dalemusser/edupath/internal/app/features/awards"
	"github.com/dalemusser/edupath/internal/app/features/blogs"
	"github.com/dalemusser/edupath/internal/app/features/events"
	"github.com/dalemusser/edupath/internal/app/features/features"
	"github.com/dalemusser/edupath/internal/app/features/offices"
	"github.com/dalemusser/edupath/internal/app/features/partners"
	"github.com/dalemusser/edupath/internal/app/features/slides"
	"github.com/dalemusser/edupath/internal/app/features/steps"
	"github.com/dalemusser/edupath/internal/app/store/content"
	"github.com/dalemusser/edupath/internal/app/system/schema"
	"github.com/dalemusser/edupath/internal/domain/models"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// maxItemBytes caps one encoded seed item.
const maxItemBytes = 1 << 20

// Item is one record as written in the seed file. Keys are the admin API's
// JSON field names.
type Item map[string]any

// File is the seed document. Sections load in the order listed here.
type File struct {
	Offices  []Item `yaml:"offices"`
	Steps    []Item `yaml:"steps"`
	Features []Item `yaml:"features"`
	Partners []Item `yaml:"partners"`
	Slides   []Item `yaml:"slides"`
	Awards   []Item `yaml:"awards"`
	Blogs    []Item `yaml:"blogs"`
	Events   []Item `yaml:"events"`
}

// Parse reads a seed file.
func Parse(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("parse seed file: %w", err)
	}
	return f, nil
}

// Failure is one item that did not load.
type Failure struct {
	Section string
	Index   int
	Err     error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s[%d]: %v", f.Section, f.Index, f.Err)
}

// Report summarizes a run.
type Report struct {
	Loaded   map[string]int
	Failures []Failure
}

// OK reports whether every item loaded.
func (r Report) OK() bool { return len(r.Failures) == 0 }

type loader interface {
	name() string
	items(f File) []Item
	load(ctx context.Context, raw []byte, dryRun bool) error
}

type section[T any, I schema.Validator] struct {
	key  string
	pick func(File) []Item
	svc  *crud.Service[T, I]
}

func (s section[T, I]) name() string { return s.key }
func (s section[T, I]) items(f File) []Item { return s.pick(f) }

// load decodes raw into the resource's input. A dry run stops after field
// validation; rules that need the database, like slug collisions, are only
// checked by a real run.
func (s section[T, I]) load(ctx context.Context, raw []byte, dryRun bool) error {
	in, err := schema.Decode[I](bytes.NewReader(raw), maxItemBytes)
	if err != nil {
		return err
	}
	if dryRun {
		return in.Validate(false).Err()
	}
	_, err = s.svc.Create(ctx, in)
	return err
}

// Seeder loads seed files.
type Seeder struct {
	loaders []loader
	log     *zap.Logger
}

// New builds a Seeder writing through src. A dry run never touches src.
func New(src content.Source, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		log: logger,
		loaders: []loader{
			section[models.Office, offices.Input]{"offices", func(f File) []Item { return f.Offices }, offices.NewService(src, logger)},
			section[models.Step, steps.Input]{"steps", func(f File) []Item { return f.Steps }, steps.NewService(src, logger)},
			section[models.Feature, features.Input]{"features", func(f File) []Item { return f.Features }, features.NewService(src, logger)},
			section[models.Partner, partners.Input]{"partners", func(f File) []Item { return f.Partners }, partners.NewService(src, logger)},
			section[models.Slide, slides.Input]{"slides", func(f File) []Item { return f.Slides }, slides.NewService(src, logger)},
			section[models.Award, awards.Input]{"awards", func(f File) []Item { return f.Awards }, awards.NewService(src, logger)},
			section[models.Blog, blogs.Input]{"blogs", func(f File) []Item { return f.Blogs }, blogs.NewService(src, logger)},
			section[models.Event, events.Input]{"events", func(f File) []Item { return f.Events }, events.NewService(src, logger)},
		},
	}
}

// Run loads every section of f. A failed item is recorded and the run
// continues; ctx cancellation stops it.
func (s *Seeder) Run(ctx context.Context, f File, dryRun bool) (Report, error) {
	rep := Report{Loaded: map[string]int{}}
	for _, l := range s.loaders {
		for i, item := range l.items(f) {
			if err := ctx.Err(); err != nil {
				return rep, err
			}
			raw, err := json.Marshal(item)
			if err != nil {
				rep.Failures = append(rep.Failures, Failure{l.name(), i, err})
				continue
			}
			if err := l.load(ctx, raw, dryRun); err != nil {
				s.log.Warn("seed item failed",
					zap.String("section", l.name()), zap.Int("index", i), zap.Error(err))
				rep.Failures = append(rep.Failures, Failure{l.name(), i, err})
				continue
			}
			rep.Loaded[l.name()]++
		}
		if n := rep.Loaded[l.name()]; n > 0 {
			s.log.Info("seeded section", zap.String("section", l.name()), zap.Int("count", n), zap.Bool("dry_run", dryRun))
		}
	}
	return rep, nil
}
