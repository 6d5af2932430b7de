// internal/app/system/paging/paging.go
package paging

import (
	"math"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// DefaultLimit is the page size when the request does not ask for one.
const DefaultLimit = 10

// MaxLimit caps the page size a client may request.
const MaxLimit = 100

// MaxPage caps the page number so Skip stays well inside int64.
const MaxPage = math.MaxInt32

// Params is a 1-based page request.
type Params struct {
	Page  int
	Limit int
}

// Parse reads "page" and "limit" from the query string. Missing or invalid
// values fall back to page 1 and DefaultLimit; limit is capped at MaxLimit
// and page at MaxPage.
func Parse(r *http.Request) Params {
	return ParseWithDefault(r, DefaultLimit)
}

// ParseWithDefault is Parse with a configurable default page size.
func ParseWithDefault(r *http.Request, defLimit int) Params {
	if defLimit < 1 || defLimit > MaxLimit {
		defLimit = DefaultLimit
	}
	return Params{
		Page:  positiveInt(query.Get(r, "page"), 1),
		Limit: positiveInt(query.Get(r, "limit"), defLimit),
	}.Normalize()
}

// Normalize clamps p to valid bounds.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Skip is the number of documents before this page.
func (p Params) Skip() int64 {
	p = p.Normalize()
	return int64(p.Page-1) * int64(p.Limit)
}

func positiveInt(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// Page is one slice of a list result. Items is never nil so it encodes as [].
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPage wraps items with the paging metadata for p.
func NewPage[T any](items []T, p Params, total int64) Page[T] {
	p = p.Normalize()
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: TotalPages(total, p.Limit),
	}
}

// TotalPages is ceil(total/limit), zero when there is nothing to show.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
