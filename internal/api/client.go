// Package api is the client library for the Chatto backend REST API.
//
// Two configured clients exist side by side: the public client carries no
// credentials and serves signup/login and the unauthenticated share/quiz
// guest reads, while the authorized client injects a bearer token from the
// session store on every request. All analysis is computed server-side; this
// package only submits forms and returns whatever JSON the backend produced.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

const defaultTimeout = 30 * time.Second

// TokenSource supplies the current access token, or "" when logged out.
type TokenSource interface {
	AccessToken() string
}

// TokenFunc adapts a plain function to TokenSource.
type TokenFunc func() string

func (f TokenFunc) AccessToken() string { return f() }

// Client talks to one Chatto backend instance.
type Client struct {
	baseURL   string
	http      *http.Client
	tokens    TokenSource
	csrfToken string
	logger    *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger attaches a request logger. Defaults to a nop logger so the TUI
// can run without frames being interleaved with log lines.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithCSRFToken attaches the legacy csrftoken cookie to every request.
func WithCSRFToken(token string) Option {
	return func(c *Client) { c.csrfToken = token }
}

// NewPublic returns the unauthenticated client instance.
func NewPublic(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewAuthorized returns the bearer-token client instance. Every request reads
// the token from src at send time, so a login/logout in the same process is
// picked up without rebuilding the client.
func NewAuthorized(baseURL string, src TokenSource, opts ...Option) *Client {
	c := NewPublic(baseURL, opts...)
	c.tokens = src
	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// do runs one JSON round-trip. body may be nil; out may be nil for endpoints
// whose response body is discarded. Non-2xx statuses are translated through
// the override map into a user-facing *Error.
func (c *Client) do(ctx context.Context, method, path string, body, out any, override messages) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out, override)
}

// upload runs one multipart round-trip with the export file under the "file"
// form field.
func (c *Client) upload(ctx context.Context, path, filename string, file io.Reader, out any, override messages) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("read upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.send(req, out, override)
}

func (c *Client) send(req *http.Request, out any, override messages) error {
	if c.tokens != nil {
		if token := c.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	if c.csrfToken != "" {
		req.AddCookie(&http.Cookie{Name: "csrftoken", Value: c.csrfToken})
		req.Header.Set("X-CSRFToken", c.csrfToken)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("서버에 연결할 수 없습니다: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api request",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Body is intentionally discarded: the UI shows the mapped
		// message, never raw backend text.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return statusError(resp.StatusCode, override)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return decodeError(err)
	}
	return nil
}
