package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	// maxErrorMessageLen caps the message extracted from an error response.
	maxErrorMessageLen = 600

	// maxBodyBytes bounds how much of any response is read into memory.
	maxBodyBytes = 1 << 20 // 1MB

	defaultTimeout = 10 * time.Second
)

// ExecutionContext selects the origin-resolution strategy. Requests made on
// behalf of the public site use the public origin; server-internal calls
// (render paths, warmup) need the internal origin unless the public one is
// already an absolute URL.
type ExecutionContext int

const (
	ContextPublic ExecutionContext = iota
	ContextInternal
)

// TokenStore supplies the optional bearer token for authenticated calls and
// wipes it after a forbidden response.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	Reset(ctx context.Context) error
}

// Config holds the client's origins. PublicOrigin is required for public
// execution; InternalOrigin only matters for internal execution when the
// public origin is not absolute.
type Config struct {
	PublicOrigin   string
	InternalOrigin string
	ExecContext    ExecutionContext
	Timeout        time.Duration
}

// Client performs all calls against the clinic backend. Every operation
// either returns its typed payload or a classified *Error; callers never see
// raw transport failures.
type Client struct {
	httpClient     *http.Client
	publicOrigin   string
	internalOrigin string
	execContext    ExecutionContext
	tokens         TokenStore
}

// NewClient builds a backend client. tokens may be nil for a purely
// anonymous client.
func NewClient(cfg Config, tokens TokenStore) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		publicOrigin:   strings.TrimRight(cfg.PublicOrigin, "/"),
		internalOrigin: strings.TrimRight(cfg.InternalOrigin, "/"),
		execContext:    cfg.ExecContext,
		tokens:         tokens,
	}
}

type requestOptions struct {
	method string
	body   any
	auth   bool
}

// resolveOrigin picks the origin for the configured execution context. It
// fails before any network attempt when no usable origin exists.
func (c *Client) resolveOrigin() (string, error) {
	if c.execContext == ContextPublic {
		if c.publicOrigin == "" {
			return "", &Error{Kind: KindConfig, Message: "public server URL is not configured"}
		}
		return c.publicOrigin, nil
	}
	if isAbsoluteOrigin(c.publicOrigin) {
		return c.publicOrigin, nil
	}
	if c.internalOrigin == "" {
		return "", &Error{Kind: KindConfig, Message: "internal server URL is required for internal execution"}
	}
	return c.internalOrigin, nil
}

func isAbsoluteOrigin(origin string) bool {
	return strings.HasPrefix(origin, "http://") || strings.HasPrefix(origin, "https://")
}

// fetchJSON runs one request through the full pipeline: origin resolution,
// header construction, token injection, outcome classification.
func fetchJSON[T any](ctx context.Context, c *Client, path string, opts requestOptions) (T, error) {
	var zero T

	origin, err := c.resolveOrigin()
	if err != nil {
		return zero, err
	}
	url := origin + path

	method := opts.method
	if method == "" {
		method = http.MethodGet
	}

	var bodyReader io.Reader
	if opts.body != nil {
		payload, err := json.Marshal(opts.body)
		if err != nil {
			return zero, fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return zero, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if opts.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Bearer tokens only travel on public-context calls that opted in.
	if opts.auth && c.execContext == ContextPublic && c.tokens != nil {
		if token, err := c.tokens.Token(ctx); err == nil && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zero, &Error{
			Kind:    KindTransport,
			Message: "could not connect to the server",
			URL:     url,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden && opts.auth && c.execContext == ContextPublic {
		// The stored session is no longer valid: wipe it so the visitor
		// starts over from the site root. Anonymous 403s skip this.
		if c.tokens != nil {
			if resetErr := c.tokens.Reset(ctx); resetErr != nil {
				log.Printf("token reset error: %v", resetErr)
			}
		}
		return zero, &Error{
			Kind:    KindForbidden,
			Message: "session expired or access denied",
			Status:  resp.StatusCode,
			URL:     url,
		}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return zero, &Error{
			Kind:    KindTransport,
			Message: "could not read the server response",
			Status:  resp.StatusCode,
			URL:     url,
		}
	}
	text := string(raw)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return zero, &Error{
			Kind:    KindHTTP,
			Message: errorMessageFrom(raw, resp.StatusCode),
			Status:  resp.StatusCode,
			URL:     url,
			Body:    truncate(text, maxErrorMessageLen),
		}
	}

	if resp.StatusCode == http.StatusNoContent {
		return zero, nil
	}

	var parsed T
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return zero, &Error{
			Kind:    KindInvalidResponse,
			Message: "server returned a response that is not valid JSON",
			Status:  resp.StatusCode,
			URL:     url,
			Body:    truncate(text, maxErrorMessageLen),
		}
	}
	return parsed, nil
}

// errorMessageFrom prefers a message/error field from a JSON error body, then
// the truncated raw text, then a generic HTTP status line.
func errorMessageFrom(raw []byte, status int) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return truncate(body.Message, maxErrorMessageLen)
		}
		if body.Error != "" {
			return truncate(body.Error, maxErrorMessageLen)
		}
	}
	if text := strings.TrimSpace(string(raw)); text != "" {
		return truncate(text, maxErrorMessageLen)
	}
	return fmt.Sprintf("HTTP %d", status)
}

// truncate caps at max characters, never splitting a rune; backend messages
// are Spanish and byte slicing could cut one mid-sequence.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
