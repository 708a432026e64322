// Package gateway is the HTTP client for the aluno resource.
//
// It knows one collection path, /api/alunos/, and one verb per
// operation. Failures are decoded once, here, into *ConnectionError,
// *ValidationError or *ServerError; callers match them with errors.As.
//
// There are no retries and no timeout beyond what the injected
// *http.Client enforces (none for the default one).
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/aanand-mishra/alunos/internal/types"
)

const collectionPath = "/api/alunos/"

// Client talks to a single aluno API.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default (zero-value) *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request traces.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New returns a Client for the API rooted at baseURL, e.g.
// "http://127.0.0.1:8000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List fetches the whole collection.
func (c *Client) List(ctx context.Context) ([]types.Student, error) {
	var out []types.Student
	if err := c.do(ctx, http.MethodGet, c.collectionURL(), nil, &out); err != nil {
		return nil, fmt.Errorf("gateway.List: %w", err)
	}
	if out == nil {
		out = []types.Student{}
	}
	return out, nil
}

// Create posts a new student and returns the stored record, including
// the id the server assigned.
func (c *Client) Create(ctx context.Context, in types.StudentInput) (types.Student, error) {
	var out types.Student
	if err := c.do(ctx, http.MethodPost, c.collectionURL(), in, &out); err != nil {
		return types.Student{}, fmt.Errorf("gateway.Create: %w", err)
	}
	return out, nil
}

// Update replaces every mutable field of student id. The response body
// is ignored.
func (c *Client) Update(ctx context.Context, id int64, in types.StudentInput) error {
	if err := c.do(ctx, http.MethodPut, c.itemURL(id), in, nil); err != nil {
		return fmt.Errorf("gateway.Update %d: %w", id, err)
	}
	return nil
}

// Remove deletes student id.
func (c *Client) Remove(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, c.itemURL(id), nil, nil); err != nil {
		return fmt.Errorf("gateway.Remove %d: %w", id, err)
	}
	return nil
}

func (c *Client) collectionURL() string {
	return c.baseURL + collectionPath
}

func (c *Client) itemURL(id int64) string {
	return c.baseURL + collectionPath + strconv.FormatInt(id, 10) + "/"
}

// do sends one request. payload, when non-nil, is sent as JSON; out,
// when non-nil, receives the decoded 2xx body.
func (c *Client) do(ctx context.Context, method, url string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode payload: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.log.With(
		slog.String("method", method),
		slog.String("url", url),
		slog.String("request_id", requestID),
	)
	log.Debug("sending request")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug("request failed", slog.String("error", err.Error()))
		return &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Debug("reading response failed", slog.String("error", err.Error()))
		return &ConnectionError{Err: err}
	}

	log.Debug("response received", slog.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeFailure(resp, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
