// Package syncer keeps one session's document tree in step with its remote
// JSON document: initial load-or-create, debounced push, background poll,
// manual refresh, and a degraded offline mode when no remote can be reached.
package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"time"

	"github.com/bgrant/devnotes/internal/domain"
)

// DefaultTimeout bounds every remote call. A timeout is treated identically
// to a network failure.
const DefaultTimeout = 5 * time.Second

var (
	// ErrNotFound indicates the remote document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrBadShape indicates the response body is not a list of projects.
	ErrBadShape = errors.New("document body is not a list of projects")
	// ErrNoLocation indicates a create response without location metadata.
	ErrNoLocation = errors.New("create response missing Location header")
)

// Client speaks the remote document protocol: CREATE, GET and PUT against an
// opaque document identifier.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout overrides the per-call timeout bound.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.timeout = d }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// NewClient creates a client for the document collection at baseURL
// (e.g. "http://localhost:8080/api/documents").
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Create stores a new remote document seeded with projects and returns the
// identifier extracted from the response's Location header.
func (c *Client) Create(ctx context.Context, projects []domain.Project) (string, error) {
	body, err := json.Marshal(projects)
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to create document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("create returned status %d", resp.StatusCode)
	}

	loc := resp.Header.Get("Location")
	if loc == "" {
		return "", ErrNoLocation
	}
	id := path.Base(loc)
	if id == "" || id == "." || id == "/" {
		return "", ErrNoLocation
	}
	return id, nil
}

// Get fetches the remote document. Success requires both an OK status and a
// body that is a plain JSON array of projects; anything else is an error.
func (c *Client) Get(ctx context.Context, id string) ([]domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("document %s: %w", id, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrBadShape
	}
	var projects []domain.Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadShape, err)
	}
	return projects, nil
}

// Put overwrites the remote document wholesale with projects. Last writer
// wins; the protocol carries no version.
func (c *Client) Put(ctx context.Context, id string, projects []domain.Project) error {
	body, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/"+id, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("document %s: %w", id, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("put returned status %d", resp.StatusCode)
	}
	return nil
}
