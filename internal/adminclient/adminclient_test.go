package adminclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type office struct {
	ID    string `json:"id"`
	City  string `json:"city"`
	Phone string `json:"phone"`
}

type officeForm struct {
	City  string `json:"city,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// fakeAPI serves /api/offices with the same envelopes as the real server.
type fakeAPI struct {
	mu      sync.Mutex
	offices []office
	next    int
	fail    bool
	calls   atomic.Int32
	cookie  string
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	guard := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			f.calls.Add(1)
			if ck, err := r.Cookie("edupath-session"); err == nil {
				f.mu.Lock()
				f.cookie = ck.Value
				f.mu.Unlock()
			}
			f.mu.Lock()
			fail := f.fail
			f.mu.Unlock()
			if fail {
				writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "internal server error"})
				return
			}
			h(w, r)
		}
	}
	mux.HandleFunc("GET /api/offices", guard(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true, "offices": f.offices,
			"page": 1, "limit": 10, "total": len(f.offices), "totalPages": 1,
		})
	}))
	mux.HandleFunc("POST /api/offices", guard(func(w http.ResponseWriter, r *http.Request) {
		var in officeForm
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.City == "" {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"success": false, "error": "validation failed",
				"details": []FieldError{{Field: "city", Message: "is required"}},
			})
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		f.next++
		o := office{ID: fmt.Sprintf("o%d", f.next), City: in.City, Phone: in.Phone}
		f.offices = append(f.offices, o)
		writeJSON(w, http.StatusCreated, map[string]any{"success": true, "office": o})
	}))
	mux.HandleFunc("PATCH /api/offices/{id}", guard(func(w http.ResponseWriter, r *http.Request) {
		var in officeForm
		_ = json.NewDecoder(r.Body).Decode(&in)
		f.mu.Lock()
		defer f.mu.Unlock()
		for i := range f.offices {
			if f.offices[i].ID == r.PathValue("id") {
				if in.City != "" {
					f.offices[i].City = in.City
				}
				if in.Phone != "" {
					f.offices[i].Phone = in.Phone
				}
				writeJSON(w, http.StatusOK, map[string]any{"success": true, "office": f.offices[i]})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "office not found"})
	}))
	mux.HandleFunc("DELETE /api/offices/{id}", guard(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		for i := range f.offices {
			if f.offices[i].ID == r.PathValue("id") {
				f.offices = append(f.offices[:i], f.offices[i+1:]...)
				writeJSON(w, http.StatusOK, map[string]any{"success": true, "id": r.PathValue("id")})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "office not found"})
	}))
	return mux
}

func (f *fakeAPI) setFail(v bool) {
	f.mu.Lock()
	f.fail = v
	f.mu.Unlock()
}

func newController(t *testing.T, api *fakeAPI, opts ...Option) *Controller[office, officeForm] {
	t.Helper()
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, opts...)
	require.NoError(t, err)
	res := NewResource[office](c, "/api/offices", "office", "offices")
	return NewController(res, func(o office) string { return o.ID }, func() officeForm { return officeForm{} })
}

func TestNew_RejectsBadScheme(t *testing.T) {
	_, err := New("ftp://example.com")
	assert.Error(t, err)
}

func TestRefresh_LoadsItems(t *testing.T) {
	api := &fakeAPI{offices: []office{{ID: "a", City: "Kathmandu"}, {ID: "b", City: "Pokhara"}}}
	ctl := newController(t, api, WithCookie(&http.Cookie{Name: "edupath-session", Value: "abc"}))

	require.NoError(t, ctl.Refresh(context.Background()))

	st := ctl.State()
	assert.False(t, st.Loading)
	assert.Empty(t, st.Err)
	require.Len(t, st.Items, 2)
	assert.Equal(t, "Pokhara", st.Items[1].City)
	assert.EqualValues(t, 2, st.Total)
	assert.Equal(t, "abc", api.cookie)
}

func TestCreate_ResetsFormOnSuccess(t *testing.T) {
	api := &fakeAPI{}
	ctl := newController(t, api)
	ctl.SetForm(officeForm{City: "Sydney", Phone: "+61 2 0000"})

	require.NoError(t, ctl.Create(context.Background()))

	st := ctl.State()
	assert.Equal(t, officeForm{}, st.Form)
	require.Len(t, st.Items, 1)
	assert.Equal(t, "Sydney", st.Items[0].City)
	assert.EqualValues(t, 1, st.Total)
	assert.Empty(t, st.Err)
}

func TestCreate_ValidationErrorKeepsState(t *testing.T) {
	api := &fakeAPI{offices: []office{{ID: "a", City: "Kathmandu"}}}
	ctl := newController(t, api)
	require.NoError(t, ctl.Refresh(context.Background()))

	ctl.SetForm(officeForm{Phone: "123"})
	err := ctl.Create(context.Background())
	require.Error(t, err)

	var ae *APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusBadRequest, ae.Status)

	st := ctl.State()
	assert.Equal(t, "validation failed: city: is required", st.Err)
	assert.Equal(t, officeForm{Phone: "123"}, st.Form)
	require.Len(t, st.Items, 1)
	assert.False(t, st.Loading)
}

func TestUpdate_ReplacesHeldItem(t *testing.T) {
	api := &fakeAPI{offices: []office{{ID: "a", City: "Kathmandu", Phone: "1"}}}
	ctl := newController(t, api)
	require.NoError(t, ctl.Refresh(context.Background()))

	ctl.SetForm(officeForm{Phone: "2"})
	require.NoError(t, ctl.Update(context.Background(), "a"))

	st := ctl.State()
	assert.Equal(t, office{ID: "a", City: "Kathmandu", Phone: "2"}, st.Items[0])
	assert.Equal(t, officeForm{Phone: "2"}, st.Form)
}

func TestDelete_NotFoundKeepsItems(t *testing.T) {
	api := &fakeAPI{offices: []office{{ID: "a", City: "Kathmandu"}}}
	ctl := newController(t, api)
	require.NoError(t, ctl.Refresh(context.Background()))

	err := ctl.Delete(context.Background(), "missing")
	assert.True(t, IsNotFound(err))

	st := ctl.State()
	assert.Equal(t, "office not found", st.Err)
	assert.Len(t, st.Items, 1)

	require.NoError(t, ctl.Delete(context.Background(), "a"))
	st = ctl.State()
	assert.Empty(t, st.Err)
	assert.Empty(t, st.Items)
	assert.EqualValues(t, 0, st.Total)
}

func TestServerError_NoRetry(t *testing.T) {
	api := &fakeAPI{offices: []office{{ID: "a", City: "Kathmandu"}}}
	ctl := newController(t, api)
	require.NoError(t, ctl.Refresh(context.Background()))

	api.setFail(true)
	before := api.calls.Load()
	require.Error(t, ctl.Refresh(context.Background()))

	assert.Equal(t, before+1, api.calls.Load())
	st := ctl.State()
	assert.Equal(t, "internal server error", st.Err)
	assert.Len(t, st.Items, 1)

	api.setFail(false)
	require.NoError(t, ctl.Refresh(context.Background()))
	assert.Empty(t, ctl.State().Err)
}

func TestUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(url)
	require.NoError(t, err)
	ctl := NewController[office, officeForm](NewResource[office](c, "/api/offices", "office", "offices"),
		func(o office) string { return o.ID }, nil)

	require.Error(t, ctl.Refresh(context.Background()))
	assert.Equal(t, "could not reach the server, please try again", ctl.State().Err)
}

func TestController_ConcurrentUse(t *testing.T) {
	api := &fakeAPI{}
	ctl := newController(t, api)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctl.SetForm(officeForm{City: fmt.Sprintf("City %d", i)})
			_ = ctl.Create(context.Background())
			_ = ctl.Refresh(context.Background())
			_ = ctl.State()
		}()
	}
	wg.Wait()

	require.NoError(t, ctl.Refresh(context.Background()))
	st := ctl.State()
	assert.False(t, st.Loading)
	assert.Len(t, st.Items, len(api.offices))
}

func TestRefresh_LatestQueryWins(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/offices", func(w http.ResponseWriter, r *http.Request) {
		city := r.URL.Query().Get("search")
		if city == "Sydney" {
			close(started)
			<-release
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true, "offices": []office{{ID: city, City: city}},
			"page": 1, "limit": 10, "total": 1, "totalPages": 1,
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := New(srv.URL)
	require.NoError(t, err)
	ctrl := NewController[office, officeForm](NewResource[office](client, "/api/offices", "office", "offices"),
		func(o office) string { return o.ID }, nil)

	ctrl.SetQuery(ListParams{Search: "Sydney"})
	older := make(chan error, 1)
	go func() { older <- ctrl.Refresh(context.Background()) }()
	<-started

	ctrl.SetQuery(ListParams{Search: "Dhaka"})
	require.NoError(t, ctrl.Refresh(context.Background()))
	assert.Equal(t, "Dhaka", ctrl.State().Items[0].City)

	close(release)
	require.NoError(t, <-older)

	st := ctrl.State()
	require.Len(t, st.Items, 1)
	assert.Equal(t, "Dhaka", st.Items[0].City, "older refresh must not overwrite newer results")
	assert.False(t, st.Loading)
}
