package parse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/bchastanier/esltrack/internal/store"
)

// Authentication headers of the Parse REST protocol. The application
// identity travels on every request; the REST API key only when configured.
const (
	headerApplicationID = "X-Parse-Application-Id"
	headerAPIKey        = "X-Parse-REST-API-Key"
)

// defaultTimeout bounds a single HTTP round trip when the caller's context
// carries no earlier deadline.
const defaultTimeout = 10 * time.Second

// Config carries the connection settings of the object store, read once at
// client construction.
type Config struct {
	// ApplicationID is the required application identity header value.
	ApplicationID string

	// APIKey is the optional REST API key header value.
	APIKey string

	// ServerURL is the root URL of the object store.
	ServerURL string

	// Timeout bounds each HTTP round trip; zero means defaultTimeout.
	Timeout time.Duration
}

// Client is a minimal Parse REST API client: create, query and update of
// objects in a named collection. It is safe for concurrent use.
type Client struct {
	applicationID string
	apiKey        string
	baseURL       *url.URL
	httpClient    *http.Client
	logger        *slog.Logger
}

// Created is the response body of a successful object creation.
type Created struct {
	CreatedAt string `json:"createdAt"`
	ObjectID  string `json:"objectId"`
}

// queryResponse is the envelope of the Parse query API.
type queryResponse struct {
	Results json.RawMessage `json:"results"`
}

// errorResponse is the structured error body of Parse API rejections.
type errorResponse struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// NewClient builds a client from the given configuration.
// A missing application id is a configuration error; a server URL that does
// not parse into an absolute URL fails with store.ErrBadURL.
// If logger is nil, a default logger will be used.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.ApplicationID == "" {
		return nil, fmt.Errorf("parse client requires an application id")
	}

	baseURL, err := url.Parse(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", store.ErrBadURL, cfg.ServerURL, err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("%w: %q is not an absolute URL", store.ErrBadURL, cfg.ServerURL)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		applicationID: cfg.ApplicationID,
		apiKey:        cfg.APIKey,
		baseURL:       baseURL,
		httpClient:    &http.Client{Timeout: timeout},
		logger:        logger.With(slog.String("component", "parse_client")),
	}, nil
}

// Create saves a new object by POSTing it to the collection.
// A 201 response yields the backend-assigned creation metadata; any other
// status is a platform rejection.
func (c *Client) Create(ctx context.Context, class string, object any) (*Created, error) {
	var created Created
	err := c.do(ctx, http.MethodPost, c.objectURL(class, ""), object, http.StatusCreated, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Query fetches the objects matching the predicate, which travels as a
// JSON-encoded `where` query parameter. The results envelope is decoded
// into the given slice pointer.
func (c *Client) Query(ctx context.Context, class string, where Predicate, results any) error {
	payload, err := json.Marshal(where)
	if err != nil {
		return fmt.Errorf("%w: failed to encode predicate: %v", store.ErrSerialization, err)
	}

	u := c.objectURL(class, "")
	q := u.Query()
	q.Set("where", string(payload))
	u.RawQuery = q.Encode()

	var envelope queryResponse
	if err := c.do(ctx, http.MethodGet, u, nil, http.StatusOK, &envelope); err != nil {
		return err
	}

	if len(envelope.Results) == 0 {
		envelope.Results = json.RawMessage("[]")
	}
	if err := json.Unmarshal(envelope.Results, results); err != nil {
		return fmt.Errorf("%w: failed to decode query results: %v", store.ErrSerialization, err)
	}
	return nil
}

// Update applies a partial JSON update to the object with the given id.
// A 200 response is success; no body parsing is required.
func (c *Client) Update(ctx context.Context, class, objectID string, patch any) error {
	return c.do(ctx, http.MethodPut, c.objectURL(class, objectID), patch, http.StatusOK, nil)
}

// objectURL merges the server root with the collection and an optional
// object id.
func (c *Client) objectURL(class, objectID string) *url.URL {
	if objectID == "" {
		return c.baseURL.JoinPath(class)
	}
	return c.baseURL.JoinPath(class, objectID)
}

// do runs one request against the object store and normalizes every
// failure into the store error taxonomy. A response with any status other
// than expectStatus is read as a structured error body and surfaced as a
// PlatformError carrying the server's message verbatim.
func (c *Client) do(
	ctx context.Context,
	method string,
	u *url.URL,
	body any,
	expectStatus int,
	out any,
) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request body: %v", store.ErrSerialization, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return fmt.Errorf("%w: failed to build request for %q: %v", store.ErrBadURL, u.String(), err)
	}

	req.Header.Set(headerApplicationID, c.applicationID)
	if c.apiKey != "" {
		req.Header.Set(headerAPIKey, c.apiKey)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("parse request",
		slog.String("method", method),
		slog.String("url", u.Redacted()))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("parse request failed",
			slog.String("method", method),
			slog.String("url", u.Redacted()),
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: %s %s: %v", store.ErrTransport, method, u.Redacted(), err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("failed to close response body", slog.String("error", err.Error()))
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response body: %v", store.ErrIO, err)
	}

	if resp.StatusCode != expectStatus {
		var platformErr errorResponse
		if err := json.Unmarshal(respBody, &platformErr); err != nil {
			return fmt.Errorf("%w: undecodable error body for status %d: %v",
				store.ErrSerialization, resp.StatusCode, err)
		}

		c.logger.Warn("parse rejected request",
			slog.String("method", method),
			slog.String("url", u.Redacted()),
			slog.Int("status", resp.StatusCode),
			slog.Int("code", platformErr.Code),
			slog.String("cause", platformErr.Error))
		return &store.PlatformError{Status: resp.StatusCode, Cause: platformErr.Error}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("%w: failed to decode response body: %v", store.ErrSerialization, err)
		}
	}

	return nil
}
