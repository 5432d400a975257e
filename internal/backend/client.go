package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/SttarkMax/sistema/pkg/errors"
)

const (
	defaultTimeout             = 15 * time.Second
	responseBodyLimit    int64 = 4 << 20
	errorBodyLimit       int64 = 16 << 10
	headerContentType          = "Content-Type"
	contentTypeJSON            = "application/json"
	genericFailureFormat       = "Request failed with status: %d"
)

var errBaseURLRequired = errors.New("backend base url is required")

// Observer records backend calls. status is 0 when no response was received.
type Observer interface {
	Observe(method, path string, status int, elapsed time.Duration)
}

// Client talks to the REST backend that owns persistence and authentication.
type Client struct {
	httpClient *http.Client
	baseURL    string
	observer   Observer
	now        func() time.Time
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithObserver attaches call metrics.
func WithObserver(observer Observer) Option {
	return func(c *Client) {
		c.observer = observer
	}
}

// NewClient builds a backend client rooted at baseURL (for example http://localhost:3001/api).
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errBaseURLRequired
	}

	client := &Client{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: defaultTimeout},
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return client, nil
}

// do sends one JSON request. A 204 or an empty body leaves out untouched.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode backend request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build backend request")
	}
	req.Header.Set(headerContentType, contentTypeJSON)
	req.Header.Set("Accept", contentTypeJSON)

	creds := CredentialsFrom(ctx)
	creds.apply(req)

	started := c.now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(method, path, 0, started)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "backend unreachable").
			WithDetails(pkgerrors.UpstreamDetails{Path: path})
	}
	defer resp.Body.Close()
	c.observe(method, path, resp.StatusCode, started)

	creds.absorb(resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp, path)
	}
	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyLimit))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read backend response")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode backend response").
			WithDetails(pkgerrors.UpstreamDetails{Status: resp.StatusCode, Path: path})
	}
	return nil
}

func (c *Client) observe(method, path string, status int, started time.Time) {
	if c.observer == nil {
		return
	}
	c.observer.Observe(method, path, status, c.now().Sub(started))
}

func statusError(resp *http.Response, path string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	message := extractMessage(body)
	if message == "" {
		message = fmt.Sprintf(genericFailureFormat, resp.StatusCode)
	}
	return pkgerrors.New(codeForStatus(resp.StatusCode), message).
		WithDetails(pkgerrors.UpstreamDetails{
			Status:  resp.StatusCode,
			Path:    path,
			Message: message,
		})
}

// extractMessage reads the backend's {"message": "..."} error body.
func extractMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		Message any `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	switch msg := payload.Message.(type) {
	case string:
		return strings.TrimSpace(msg)
	case []any:
		parts := make([]string, 0, len(msg))
		for _, item := range msg {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				parts = append(parts, strings.TrimSpace(s))
			}
		}
		return strings.Join(parts, "; ")
	default:
		return ""
	}
}

func codeForStatus(status int) pkgerrors.Code {
	switch status {
	case http.StatusUnauthorized:
		return pkgerrors.CodeUnauthorized
	case http.StatusForbidden:
		return pkgerrors.CodeForbidden
	case http.StatusNotFound:
		return pkgerrors.CodeNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return pkgerrors.CodeValidation
	case http.StatusConflict:
		return pkgerrors.CodeConflict
	case http.StatusTooManyRequests:
		return pkgerrors.CodeRateLimit
	default:
		return pkgerrors.CodeDependency
	}
}

// StatusOf returns the backend HTTP status carried by err, or 0.
func StatusOf(err error) int {
	if details, ok := pkgerrors.Upstream(err); ok {
		return details.Status
	}
	return 0
}

func resourcePath(collection, id string) string {
	return collection + "/" + escapeID(id)
}

func escapeID(id string) string {
	return url.PathEscape(strings.TrimSpace(id))
}

// save creates when id is empty and updates otherwise.
func save[T any](ctx context.Context, c *Client, collection, id string, in T) (T, error) {
	var out T
	var err error
	if strings.TrimSpace(id) == "" {
		err = c.do(ctx, http.MethodPost, collection, in, &out)
	} else {
		err = c.do(ctx, http.MethodPut, resourcePath(collection, id), in, &out)
	}
	return out, err
}

func list[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var out []T
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func get[T any](ctx context.Context, c *Client, collection, id string) (T, error) {
	var out T
	err := c.do(ctx, http.MethodGet, resourcePath(collection, id), nil, &out)
	return out, err
}

func (c *Client) remove(ctx context.Context, collection, id string) error {
	return c.do(ctx, http.MethodDelete, resourcePath(collection, id), nil, nil)
}
