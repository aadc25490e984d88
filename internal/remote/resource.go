// Package remote implements the HTTP clients for the roster API collections.
package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultTimeout bounds a single request when no http.Client is supplied.
	DefaultTimeout = 10 * time.Second

	// HeaderRequestID carries the per-request correlation id.
	HeaderRequestID = "X-Request-ID"

	maxErrorBody = 1 << 20
)

type options struct {
	client *http.Client
	log    *zap.SugaredLogger
}

// Option configures a Resource.
type Option func(*options)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.client = c
		}
	}
}

// WithTimeout sets the timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.client = &http.Client{Timeout: d}
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// Resource performs CRUD calls against one collection endpoint.
// E is the read shape, ID the identity type and D the write (draft) shape.
type Resource[E any, ID comparable, D any] struct {
	client     *http.Client
	log        *zap.SugaredLogger
	collection string
	endpoint   string
}

// NewResource creates a client for <baseURL>/<collection>/.
func NewResource[E any, ID comparable, D any](baseURL, collection string, opts ...Option) (*Resource[E, ID, D], error) {
	o := options{
		client: &http.Client{Timeout: DefaultTimeout},
		log:    zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host are required", baseURL)
	}
	collection = strings.Trim(collection, "/")
	if collection == "" {
		return nil, fmt.Errorf("collection is required")
	}

	return &Resource[E, ID, D]{
		client:     o.client,
		log:        o.log.Named("remote." + collection),
		collection: collection,
		endpoint:   strings.TrimRight(u.String(), "/") + "/" + collection + "/",
	}, nil
}

// List fetches the whole collection.
func (r *Resource[E, ID, D]) List(ctx context.Context) ([]E, error) {
	var out []E
	if err := r.do(ctx, http.MethodGet, r.endpoint, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []E{}
	}
	return out, nil
}

// Get fetches one entity by id.
func (r *Resource[E, ID, D]) Get(ctx context.Context, id ID) (E, error) {
	var out E
	err := r.do(ctx, http.MethodGet, r.itemURL(id), nil, &out)
	return out, err
}

// Create posts a draft and returns the stored entity.
func (r *Resource[E, ID, D]) Create(ctx context.Context, draft D) (E, error) {
	var out E
	err := r.do(ctx, http.MethodPost, r.endpoint, draft, &out)
	return out, err
}

// Update replaces the entity with the given id.
func (r *Resource[E, ID, D]) Update(ctx context.Context, id ID, draft D) (E, error) {
	var out E
	err := r.do(ctx, http.MethodPut, r.itemURL(id), draft, &out)
	return out, err
}

// Delete removes the entity with the given id.
func (r *Resource[E, ID, D]) Delete(ctx context.Context, id ID) error {
	return r.do(ctx, http.MethodDelete, r.itemURL(id), nil, nil)
}

func (r *Resource[E, ID, D]) itemURL(id ID) string {
	return r.endpoint + url.PathEscape(fmt.Sprint(id)) + "/"
}

func (r *Resource[E, ID, D]) do(ctx context.Context, method, target string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s body: %w", r.collection, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		r.log.Debugw("request failed", "method", method, "url", target, "request_id", reqID, "error", err)
		return &Error{Status: StatusConnectivity, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	r.log.Debugw("request",
		"method", method,
		"url", target,
		"status", resp.StatusCode,
		"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
		"request_id", reqID,
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &Error{Status: resp.StatusCode, Message: errorMessage(raw)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{
			Status:  resp.StatusCode,
			Message: "malformed response body",
			Err:     fmt.Errorf("failed to decode %s response: %w", r.collection, err),
		}
	}
	return nil
}

// errorMessage pulls a human readable message out of the common error bodies:
// {"error":{"message":...}}, {"error":"..."}, {"message":...} and {"detail":...}.
func errorMessage(raw []byte) string {
	if len(bytes.TrimSpace(raw)) == 0 {
		return ""
	}

	var body struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
		Detail  string          `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}

	if len(body.Error) > 0 {
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body.Error, &nested); err == nil && nested.Message != "" {
			return nested.Message
		}
		var flat string
		if err := json.Unmarshal(body.Error, &flat); err == nil && flat != "" {
			return flat
		}
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Detail
}
