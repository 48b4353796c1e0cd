// Package appwrite implements the platform contract against an
// Appwrite-compatible REST API.
package appwrite

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/thenoetrevino/faena/internal/platform"
)

// ResponseFormat pins the response schema the client decodes
const ResponseFormat = "1.5.0"

// Client talks to the platform REST API
type Client struct {
	baseURL    string
	projectID  string
	apiKey     string
	databaseID string
	httpClient *http.Client

	mu      sync.RWMutex
	session string
}

// Option customises client instantiation
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithAPIKey sets the server key used for admin calls
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = strings.TrimSpace(key)
	}
}

// WithDatabase sets the database holding the collections
func WithDatabase(id string) Option {
	return func(c *Client) {
		c.databaseID = id
	}
}

// WithSelfSigned accepts self-signed TLS certificates (local installs)
func WithSelfSigned(enabled bool) Option {
	return func(c *Client) {
		if !enabled {
			return
		}
		c.httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // opt-in for local installs
		}
	}
}

// New constructs a Client for endpoint, e.g. https://cloud.appwrite.io/v1
func New(endpoint, projectID string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		trimmed = "https://" + trimmed
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	if strings.TrimSpace(projectID) == "" {
		return nil, fmt.Errorf("project id is required")
	}

	c := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		projectID:  projectID,
		databaseID: "default",
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Backend exposes the client as the platform services
func (c *Client) Backend() platform.Backend {
	return platform.Backend{
		Accounts:  &accounts{c: c},
		Databases: &databases{c: c},
		Teams:     &teams{c: c},
		Admin:     &admin{c: c},
	}
}

func (c *Client) setSession(secret string) {
	c.mu.Lock()
	c.session = secret
	c.mu.Unlock()
}

func (c *Client) sessionSecret() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// APIError is an error response from the platform
type APIError struct {
	Status  int
	Message string
	Type    string
}

func (e APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api request failed with status %d", e.Status)
	}
	return fmt.Sprintf("api request failed (%d): %s", e.Status, e.Message)
}

// Unwrap maps the status onto the platform sentinel errors
func (e APIError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return platform.ErrNotFound
	case http.StatusUnauthorized:
		return platform.ErrUnauthorized
	case http.StatusForbidden:
		return platform.ErrForbidden
	case http.StatusConflict:
		return platform.ErrConflict
	}
	return nil
}

type authMode int

const (
	authSession authMode = iota
	authAdmin
	authNone
)

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	auth   authMode
}

func (c *Client) do(ctx context.Context, r request, v any) (http.Header, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if r.auth == authAdmin && c.apiKey == "" {
		return nil, fmt.Errorf("admin operation requires an api key: %w", platform.ErrUnauthorized)
	}

	endpoint := c.baseURL + r.path
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}

	var reader io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Appwrite-Project", c.projectID)
	req.Header.Set("X-Appwrite-Response-Format", ResponseFormat)
	switch r.auth {
	case authSession:
		if secret := c.sessionSecret(); secret != "" {
			req.Header.Set("X-Appwrite-Session", secret)
		}
	case authAdmin:
		req.Header.Set("X-Appwrite-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return resp.Header, extractError(resp.StatusCode, resp.Body)
	}

	if v == nil || resp.StatusCode == http.StatusNoContent {
		return resp.Header, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return resp.Header, fmt.Errorf("decode response: %w", err)
	}
	return resp.Header, nil
}

func extractError(status int, body io.Reader) error {
	apiErr := APIError{Status: status}
	data, err := io.ReadAll(body)
	if err != nil || len(data) == 0 {
		return apiErr
	}
	var payload struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		apiErr.Message = strings.TrimSpace(string(data))
		return apiErr
	}
	apiErr.Message = strings.TrimSpace(payload.Message)
	apiErr.Type = payload.Type
	return apiErr
}

func queryValues(queries []platform.Query) url.Values {
	if len(queries) == 0 {
		return nil
	}
	values := url.Values{}
	for _, q := range queries {
		values.Add("queries[]", q.String())
	}
	return values
}

func pathEscape(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(p))
	}
	return b.String()
}
