package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/skylane/flightkit/pkg/session"
)

// FlightPrefix is the sub-path the flight operations live under.
const FlightPrefix = "/api/flight"

// Session is the slice of the session manager the interceptors use.
type Session interface {
	// Store exposes the token store consulted before each dispatch.
	Store() *session.TokenStore

	// Logout is triggered on a transport-level 401.
	Logout()
}

// Client is an HTTP client bound to one API base URL with the auth
// interceptors installed.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client. Its transport is wrapped
// by the auth interceptor.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a client rooted at the configured API base URL.
func New(cfg session.Config, sess Session, opts ...Option) *Client {
	return newClient(cfg.APIBaseURL, sess, opts...)
}

// NewFlightClient creates a client rooted at the flight sub-path.
func NewFlightClient(cfg session.Config, sess Session, opts ...Option) *Client {
	return newClient(cfg.APIBaseURL+FlightPrefix, sess, opts...)
}

func newClient(baseURL string, sess Session, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		c.http = &http.Client{}
	}

	next := c.http.Transport
	if next == nil {
		next = http.DefaultTransport
	}

	// Copy so the interceptor never leaks into a shared client.
	c.http = &http.Client{
		Timeout:   c.http.Timeout,
		Transport: &authTransport{next: next, session: sess, logger: c.logger},
	}

	return c
}

// Response is the envelope every backend endpoint wraps its payload in. The
// protocol-level status inside the body is distinct from the transport
// status code.
type Response[T any] struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// Get issues a GET request and unwraps the envelope.
func Get[T any](ctx context.Context, c *Client, path string) (T, error) {
	return call[T](ctx, c, http.MethodGet, path, nil)
}

// Post issues a POST request with a JSON body and unwraps the envelope.
func Post[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return call[T](ctx, c, http.MethodPost, path, body)
}

// Put issues a PUT request with a JSON body and unwraps the envelope.
func Put[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return call[T](ctx, c, http.MethodPut, path, body)
}

// Delete issues a DELETE request. The envelope payload, if any, is
// discarded.
func Delete(ctx context.Context, c *Client, path string) error {
	_, err := call[json.RawMessage](ctx, c, http.MethodDelete, path, nil)
	return err
}

func call[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var zero T

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return zero, fmt.Errorf("%w: encode request: %w", ErrRequestFailed, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("apiclient: no response", "method", method, "path", path, "error", err)
		return zero, fmt.Errorf("%w: %s %s: %w", ErrRequestFailed, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, fmt.Errorf("%w: read response: %w", ErrRequestFailed, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Logout already ran in the interceptor; surface the error to the
		// caller unchanged.
		return zero, &APIError{Status: resp.StatusCode, Message: envelopeMessage(raw), err: ErrUnauthorized}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("apiclient: error response",
			"method", method, "path", path, "status", resp.StatusCode)
		return zero, &APIError{Status: resp.StatusCode, Message: envelopeMessage(raw), err: ErrRequestFailed}
	}

	var env Response[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		return zero, fmt.Errorf("%w: decode response: %w", ErrRequestFailed, err)
	}

	if env.Status >= 400 {
		return zero, &APIError{Status: env.Status, Message: env.Message, Protocol: true, err: ErrRequestFailed}
	}

	return env.Data, nil
}

// envelopeMessage pulls the backend's message out of an error body when it
// is a well-formed envelope.
func envelopeMessage(raw []byte) string {
	var env Response[json.RawMessage]
	if err := json.Unmarshal(raw, &env); err != nil {
		return ""
	}
	return env.Message
}
