// Package api provides HTTP clients for the four Bartr backend
// services: user/profile, matching, chat, and notification.
package api

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

	"github.com/AkhandAgrawal/Bartr/internal/logging"
)

// ErrUnauthorized is returned when a service rejects the bearer token.
// The client has already cleared local auth state by the time callers
// see it; they should route the user back to login.
var ErrUnauthorized = errors.New("unauthorized")

// TokenFunc resolves the bearer token attached to each request.
// Returning "" sends the request unauthenticated.
type TokenFunc func() string

// Client is a JSON HTTP client for one backend service.
type Client struct {
	base           string
	http           *http.Client
	token          TokenFunc
	onUnauthorized func()
	log            *logging.Logger
}

// NewClient creates a client for the service at base.
func NewClient(base string, token TokenFunc, log *logging.Logger) *Client {
	return &Client{
		base:  strings.TrimRight(base, "/"),
		http:  &http.Client{Timeout: 30 * time.Second},
		token: token,
		log:   log,
	}
}

// OnUnauthorized registers a hook invoked once per 401 response, after
// the error is mapped to ErrUnauthorized. Used to clear tokens and
// prompt re-login.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string, query url.Values) error {
	return c.do(ctx, http.MethodDelete, path, query, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.log.Warn().Str("method", method).Str("path", path).Msg("request rejected, clearing session")
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode >= 500 {
			c.log.Error().Int("status", resp.StatusCode).Str("path", path).Msg("server error")
		}
		return fmt.Errorf("service error (%d): %s", resp.StatusCode, truncate(respBody, 200))
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
