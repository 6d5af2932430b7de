package adminclient

import (
	"context"
	"slices"
	"sync"
)

// State is a snapshot of what an admin screen shows.
type State[T any, F any] struct {
	Form    F
	Loading bool
	Err     string
	Items   []T
	Page    int
	Limit   int
	Total   int64
	Pages   int
	Query   ListParams
}

// Controller drives one admin screen: a table of items and an edit form.
//
// Every action follows the same contract: loading is set while the request
// is in flight; on success the error is cleared and the held data updated;
// on failure the error is set and the held data left as it was. Nothing is
// retried and nothing changes before the server confirms it.
type Controller[T any, F any] struct {
	res     *Resource[T]
	idOf    func(T) string
	newForm func() F

	mu       sync.Mutex
	inflight int
	form     F
	err      string
	items    []T
	page     Page[T]
	query    ListParams
	// refreshes counts Refresh calls; only the latest may apply its result.
	refreshes uint64
}

// NewController builds a Controller. idOf extracts a document's id so held
// items can be replaced or removed; newForm returns a blank form.
func NewController[T any, F any](res *Resource[T], idOf func(T) string, newForm func() F) *Controller[T, F] {
	if newForm == nil {
		newForm = func() F { var f F; return f }
	}
	return &Controller[T, F]{res: res, idOf: idOf, newForm: newForm, form: newForm(), items: []T{}}
}

// State returns a copy of the current state.
func (c *Controller[T, F]) State() State[T, F] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State[T, F]{
		Form:    c.form,
		Loading: c.inflight > 0,
		Err:     c.err,
		Items:   slices.Clone(c.items),
		Page:    c.page.Page,
		Limit:   c.page.Limit,
		Total:   c.page.Total,
		Pages:   c.page.TotalPages,
		Query:   c.query,
	}
}

// SetForm replaces the form contents.
func (c *Controller[T, F]) SetForm(f F) {
	c.mu.Lock()
	c.form = f
	c.mu.Unlock()
}

// ResetForm clears the form.
func (c *Controller[T, F]) ResetForm() {
	c.mu.Lock()
	c.form = c.newForm()
	c.mu.Unlock()
}

// SetQuery changes the list query used by Refresh.
func (c *Controller[T, F]) SetQuery(q ListParams) {
	c.mu.Lock()
	c.query = q
	c.mu.Unlock()
}

func (c *Controller[T, F]) begin() {
	c.mu.Lock()
	c.inflight++
	c.mu.Unlock()
}

// finish records the outcome of one action. apply runs under the lock and
// only on success.
func (c *Controller[T, F]) finish(err error, apply func()) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight--
	return c.settle(err, apply)
}

// settle must be called with mu held.
func (c *Controller[T, F]) settle(err error, apply func()) error {
	if err != nil {
		c.err = Message(err)
		return err
	}
	c.err = ""
	if apply != nil {
		apply()
	}
	return nil
}

// Refresh reloads the current page. When refreshes overlap, only the most
// recently started one updates the state; earlier ones still return their
// own error but leave the state alone.
func (c *Controller[T, F]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.inflight++
	c.refreshes++
	seq := c.refreshes
	q := c.query
	c.mu.Unlock()

	page, err := c.res.List(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight--
	if seq != c.refreshes {
		return err
	}
	return c.settle(err, func() {
		c.page = page
		c.items = page.Items
	})
}

// Create submits the form as a new document. The form is reset and the
// stored document added to the front of the held items.
func (c *Controller[T, F]) Create(ctx context.Context) error {
	c.begin()
	c.mu.Lock()
	form := c.form
	c.mu.Unlock()

	doc, err := c.res.Create(ctx, form)
	return c.finish(err, func() {
		c.items = append([]T{doc}, c.items...)
		c.page.Total++
		c.form = c.newForm()
	})
}

// Update submits the form as changes to document id and replaces the held
// copy with the server's.
func (c *Controller[T, F]) Update(ctx context.Context, id string) error {
	c.begin()
	c.mu.Lock()
	form := c.form
	c.mu.Unlock()

	doc, err := c.res.Update(ctx, id, form)
	return c.finish(err, func() {
		if i := c.index(id); i >= 0 {
			c.items[i] = doc
		}
	})
}

// Delete removes document id.
func (c *Controller[T, F]) Delete(ctx context.Context, id string) error {
	c.begin()
	err := c.res.Delete(ctx, id)
	return c.finish(err, func() {
		if i := c.index(id); i >= 0 {
			c.items = slices.Delete(c.items, i, i+1)
			if c.page.Total > 0 {
				c.page.Total--
			}
		}
	})
}

// index must be called with mu held.
func (c *Controller[T, F]) index(id string) int {
	return slices.IndexFunc(c.items, func(v T) bool { return c.idOf(v) == id })
}
