// Package gateway is the single egress point for backend REST calls. It
// attaches the stored bearer credential to every request and centralizes
// the status-driven notification side effects so individual screens and
// commands never duplicate that logic.
package gateway

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

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog/log"

	"github.com/campusworks/careerdeck/internal/notify"
)

// User-facing messages published for cross-cutting failures.
const (
	MsgSessionExpired = "Session expired. Please log in again."
	MsgAccessDenied   = "Access Denied: You do not have permission for this action."
	MsgServerError    = "Server Error: The Command Center is currently unreachable."
	MsgNetworkError   = "Network Error: Check your connection to the campus network."
)

// TokenSource supplies the current bearer token. *credentials.Store
// satisfies this; absence of a token is reported as an error and is not
// itself a request failure.
type TokenSource interface {
	Read() (string, error)
}

// Notifier publishes user-visible notifications. *notify.Bus satisfies
// this. The gateway never holds UI state directly; the notifier is
// injected at construction time.
type Notifier interface {
	Publish(message string, kind notify.Kind)
}

// StatusError is returned for any non-2xx backend response so callers
// can branch on the status code without string matching.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status %d", e.Code)
}

// Client wraps an http.Client with credential injection, failure
// notifications and optional retry/caching behavior.
type Client struct {
	base     *url.URL
	http     *http.Client
	notifier Notifier
	maxTries uint
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. The auth transport
// still wraps whatever transport the client carries.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithRetry enables exponential-backoff retries for idempotent GET
// requests that fail in transit or with a 5xx. The failure notification
// fires once, after retries are exhausted.
func WithRetry(maxTries uint) Option {
	return func(c *Client) {
		c.maxTries = maxTries
	}
}

// New creates a gateway client rooted at baseURL.
func New(baseURL string, tokens TokenSource, notifier Notifier, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	c := &Client{
		base:     base,
		http:     &http.Client{Timeout: 30 * time.Second},
		notifier: notifier,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.http.Transport = &authTransport{base: c.http.Transport, tokens: tokens}

	return c, nil
}

// Get issues a GET and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPut, path, in, out)
}

// Patch issues a PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPatch, path, in, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// GetRaw issues a GET and returns the raw body, for CSV/PDF exports.
func (c *Client) GetRaw(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.roundTrip(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	resp, err := c.roundTrip(ctx, method, path, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// roundTrip performs the request and applies the response-interception
// contract: 401/403/5xx/network failures publish a notification, any
// other 4xx is left to the caller, and in every case the original error
// is still returned.
func (c *Client) roundTrip(ctx context.Context, method, path string, in any) (*http.Response, error) {
	var payload []byte
	if in != nil {
		var err error
		payload, err = json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	operation := func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, bytes.NewReader(payload))
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		if in != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			// Transport failure, retryable when retries are enabled.
			return nil, err
		}

		if resp.StatusCode >= 500 {
			body := drain(resp)
			return nil, &StatusError{Code: resp.StatusCode, Body: body}
		}

		if resp.StatusCode >= 400 {
			body := drain(resp)
			return nil, backoff.Permanent(&StatusError{Code: resp.StatusCode, Body: body})
		}

		return resp, nil
	}

	var resp *http.Response
	var err error
	if c.maxTries > 1 && method == http.MethodGet {
		resp, err = backoff.Retry(ctx, operation,
			backoff.WithBackOff(backoff.NewExponentialBackOff()),
			backoff.WithMaxTries(c.maxTries))
	} else {
		resp, err = operation()
	}

	if err != nil {
		c.notifyFailure(err)
		return nil, err
	}

	return resp, nil
}

func (c *Client) notifyFailure(err error) {
	if c.notifier == nil {
		return
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		c.notifier.Publish(MsgNetworkError, notify.KindError)
		return
	}

	switch {
	case statusErr.Code == http.StatusUnauthorized:
		c.notifier.Publish(MsgSessionExpired, notify.KindError)
	case statusErr.Code == http.StatusForbidden:
		c.notifier.Publish(MsgAccessDenied, notify.KindError)
	case statusErr.Code >= 500:
		c.notifier.Publish(MsgServerError, notify.KindError)
	default:
		// Other 4xx are the calling screen's business.
	}
}

func drain(resp *http.Response) string {
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 8*1024))
	if err != nil {
		log.Debug().Err(err).Msg("failed to read error body")
		return ""
	}
	return string(body)
}
