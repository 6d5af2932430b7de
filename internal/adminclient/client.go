// Package adminclient is a Go client for the admin JSON API, plus a
// form/table Controller that admin tools build on.
package adminclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// FieldError is one field-level validation message from the server.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is a non-2xx response in the {success:false, error, details}
// envelope.
type APIError struct {
	Status  int
	Message string
	Details []FieldError
}

func (e *APIError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("%d: %s", e.Status, e.Message)
	}
	parts := make([]string, len(e.Details))
	for i, d := range e.Details {
		parts[i] = d.Field + " " + d.Message
	}
	return fmt.Sprintf("%d: %s (%s)", e.Status, e.Message, strings.Join(parts, "; "))
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == http.StatusNotFound
}

// Message turns err into text fit to show a user. API errors keep the
// server's message and field details; transport failures get a generic one.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ae *APIError
	if errors.As(err, &ae) {
		if len(ae.Details) == 0 {
			return ae.Message
		}
		parts := make([]string, len(ae.Details))
		for i, d := range ae.Details {
			parts[i] = d.Field + ": " + d.Message
		}
		return ae.Message + ": " + strings.Join(parts, ", ")
	}
	if errors.Is(err, context.Canceled) {
		return "request cancelled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "the server took too long to respond"
	}
	return "could not reach the server, please try again"
}

// Client sends requests to one API base URL.
type Client struct {
	base   *url.URL
	http   *http.Client
	cookie *http.Cookie
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }

// WithCookie attaches the session cookie to every request.
func WithCookie(ck *http.Cookie) Option { return func(c *Client) { c.cookie = ck } }

// New returns a Client for baseURL, e.g. "https://edupath.example".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("adminclient: base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("adminclient: base url must be http or https, got %q", baseURL)
	}
	c := &Client{base: u, http: &http.Client{Timeout: 30 * time.Second}}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// do sends one request and decodes the success envelope into a map of raw
// payload keys. It never retries.
func (c *Client) do(ctx context.Context, method, path string, q url.Values, body any) (map[string]json.RawMessage, error) {
	u := *c.base
	u.Path += path
	u.RawQuery = q.Encode()

	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("adminclient: encode body: %w", err)
		}
		rd = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return nil, decodeError(resp.StatusCode, raw)
	}
	env := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return env, nil
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("adminclient: decode response: %w", err)
	}
	return env, nil
}

func decodeError(status int, raw []byte) error {
	var body struct {
		Error   string       `json:"error"`
		Details []FieldError `json:"details"`
	}
	if json.Unmarshal(raw, &body) != nil || body.Error == "" {
		body.Error = http.StatusText(status)
	}
	return &APIError{Status: status, Message: body.Error, Details: body.Details}
}

// ListParams select one page of a list.
type ListParams struct {
	Page    int
	Limit   int
	Search  string
	Filters map[string]string
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	for k, v := range p.Filters {
		if v != "" {
			q.Set(k, v)
		}
	}
	return q
}

// Page is one page of a list response.
type Page[T any] struct {
	Items      []T
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// Resource is the typed API of one collection, e.g. /api/offices.
type Resource[T any] struct {
	c        *Client
	path     string
	singular string
	plural   string
}

// NewResource binds a resource path and its envelope keys:
//
//	offices := adminclient.NewResource[models.Office](c, "/api/offices", "office", "offices")
func NewResource[T any](c *Client, path, singular, plural string) *Resource[T] {
	return &Resource[T]{c: c, path: strings.TrimRight(path, "/"), singular: singular, plural: plural}
}

func (r *Resource[T]) item(env map[string]json.RawMessage) (T, error) {
	var v T
	raw, ok := env[r.singular]
	if !ok {
		return v, fmt.Errorf("adminclient: response has no %q", r.singular)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("adminclient: decode %s: %w", r.singular, err)
	}
	return v, nil
}

// List fetches one page.
func (r *Resource[T]) List(ctx context.Context, p ListParams) (Page[T], error) {
	env, err := r.c.do(ctx, http.MethodGet, r.path, p.values(), nil)
	if err != nil {
		return Page[T]{}, err
	}
	var page Page[T]
	for key, dst := range map[string]any{
		r.plural:     &page.Items,
		"page":       &page.Page,
		"limit":      &page.Limit,
		"total":      &page.Total,
		"totalPages": &page.TotalPages,
	} {
		raw, ok := env[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return Page[T]{}, fmt.Errorf("adminclient: decode %s: %w", key, err)
		}
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	return page, nil
}

// Get fetches one document by id.
func (r *Resource[T]) Get(ctx context.Context, id string) (T, error) {
	env, err := r.c.do(ctx, http.MethodGet, r.path+"/"+url.PathEscape(id), nil, nil)
	if err != nil {
		var zero T
		return zero, err
	}
	return r.item(env)
}

// Create posts body and returns the stored document.
func (r *Resource[T]) Create(ctx context.Context, body any) (T, error) {
	env, err := r.c.do(ctx, http.MethodPost, r.path, nil, body)
	if err != nil {
		var zero T
		return zero, err
	}
	return r.item(env)
}

// Update sends a partial update and returns the stored document.
func (r *Resource[T]) Update(ctx context.Context, id string, body any) (T, error) {
	env, err := r.c.do(ctx, http.MethodPatch, r.path+"/"+url.PathEscape(id), nil, body)
	if err != nil {
		var zero T
		return zero, err
	}
	return r.item(env)
}

// Delete removes one document.
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	_, err := r.c.do(ctx, http.MethodDelete, r.path+"/"+url.PathEscape(id), nil, nil)
	return err
}
