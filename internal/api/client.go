// Package api is the HTTP collaborator for the NetDash backend. It owns
// bearer-token injection, request logging, and the translation of backend
// failures into the human-readable messages the stores surface.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/netdash/netdash/internal/token"
)

// TokenSource supplies the current bearer token, or "" when no session is
// held.
type TokenSource func() string

// Client talks to the NetDash backend API.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	logger      *slog.Logger
	tokenSource TokenSource

	// onUnauthorized is invoked on any 401 outside the login endpoint.
	// Navigation is the caller's decision; the client only reports.
	onUnauthorized func()
}

// NewClient creates a backend client. logger may be nil.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// SetTokenSource wires the supplier of the current bearer token.
func (c *Client) SetTokenSource(fn TokenSource) {
	c.tokenSource = fn
}

// SetUnauthorizedHook wires the callback fired when the backend rejects a
// request with 401.
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.onUnauthorized = fn
}

// do issues one request and decodes the response into out (when non-nil).
// fireHook controls whether a 401 reaches the unauthorized hook; the login
// endpoint opts out because a rejected login is a credential error, not a
// dead session.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, fireHook bool) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	requestID := uuid.New().String()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	// The token validator gates every outbound authenticated request; an
	// expired token is never sent.
	if c.tokenSource != nil {
		if t := c.tokenSource(); t != "" && !token.ExpiredNow(t) {
			req.Header.Set("Authorization", "Bearer "+t)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error("Request failed",
			"request_id", requestID,
			"method", method,
			"path", path,
			"duration_ms", duration.Milliseconds(),
			"error", err,
		)
		return transportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(err)
	}

	c.logger.Info("Request completed",
		"request_id", requestID,
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", duration.Milliseconds(),
	)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out != nil && len(respBody) > 0 {
			if err := json.Unmarshal(respBody, out); err != nil {
				return fmt.Errorf("failed to decode response: %w", err)
			}
		}
		return nil
	}

	if resp.StatusCode == http.StatusUnauthorized && fireHook && c.onUnauthorized != nil {
		c.onUnauthorized()
	}

	return statusError(resp.StatusCode, respBody)
}

// transportError maps connection-level failures onto the generic
// connectivity messages shown to the user.
func transportError(err error) error {
	var ne interface{ Timeout() bool }
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return &Error{Message: msgTimeout}
	}
	return &Error{Message: msgNetwork}
}
