// Package api is the single outgoing request pipeline for the Authway backend.
//
// Every backend call flows through Client: it attaches the stored bearer
// token, transparently repairs an expired access token with a one-shot
// refresh-and-replay, and on refresh failure ends the local session. Resource
// methods (users, organizations, licenses, database, system, audit) are thin
// request builders on top of the pipeline.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/authway/adminctl/internal/errors"
	"github.com/authway/adminctl/internal/log"
	"github.com/authway/adminctl/internal/store"
)

// Client is the Authway backend API client.
type Client struct {
	baseURL string
	http    *http.Client
	store   *store.Store
	logger  *log.Logger

	// refresh coalesces concurrent refresh attempts for the same refresh
	// token into one backend call.
	refresh singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger sets the logger used for pipeline diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a backend client. The store supplies bearer tokens and
// receives refreshed ones; it is never nil.
func NewClient(baseURL string, st *store.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		store:   st,
		logger:  log.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Error is a non-2xx backend response.
type Error struct {
	StatusCode int
	Detail     string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// AsError unwraps err into a backend *Error when there is one in the chain.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if stderrors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsSessionExpired reports whether err means the local session ended because
// a token refresh failed.
func IsSessionExpired(err error) bool {
	var adminErr *errors.AdminError
	return stderrors.As(err, &adminErr) && adminErr.Code == errors.ErrCodeAuthSessionExpired
}

// replayState tags one pass through the authenticated pipeline. The state is
// an explicit per-call value; caller-supplied inputs are never mutated.
type replayState int

const (
	stateFresh replayState = iota
	stateReplayed
)

// call runs one authenticated request through the pipeline.
//
// On a 401 for a fresh request it performs exactly one refresh and one
// replay; the caller observes the replayed response, never the intermediate
// 401. If the refresh itself fails the entire store is cleared and the caller
// gets a session-expired error. Any other failure passes through unchanged.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body, out any) error {
	payload, err := marshalBody(body)
	if err != nil {
		return err
	}

	state := stateFresh
	for {
		token, _ := c.store.Get(store.KeyAccessToken)
		resp, err := c.send(ctx, method, path, query, payload, token)
		if err != nil {
			return errors.NewAPIUnreachableError(c.baseURL, err)
		}

		if resp.StatusCode == http.StatusUnauthorized && state == stateFresh {
			drain(resp)
			// Marked before the refresh runs: a second 401 surfaces as-is.
			state = stateReplayed

			if err := c.refreshTokens(ctx); err != nil {
				c.logger.WithError(err).DebugContext(ctx, "token refresh failed, ending session")
				if clearErr := c.store.Clear(); clearErr != nil {
					c.logger.WithError(clearErr).Warn("failed to clear session store")
				}
				return errors.NewSessionExpiredError(err)
			}

			c.logger.DebugContext(ctx, "access token refreshed, replaying request",
				"method", method, "path", path)
			continue
		}

		return decodeResponse(resp, out)
	}
}

// public runs one request without bearer attachment or 401 interception.
// Login and refresh use it so an invalid credential can never recurse into
// another refresh.
func (c *Client) public(ctx context.Context, method, path string, body, out any) error {
	payload, err := marshalBody(body)
	if err != nil {
		return err
	}

	resp, err := c.send(ctx, method, path, nil, payload, "")
	if err != nil {
		return errors.NewAPIUnreachableError(c.baseURL, err)
	}
	return decodeResponse(resp, out)
}

// send issues a single HTTP request. A fresh *http.Request is built per
// attempt so replays never reuse a consumed body.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload []byte, token string) (*http.Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.http.Do(req)
}

// refreshRequest is the body of POST /auth/refresh.
type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// refreshTokens exchanges the stored refresh token for new tokens and
// persists both. Concurrent callers holding the same refresh token share one
// backend call.
func (c *Client) refreshTokens(ctx context.Context) error {
	refreshToken, ok := c.store.Get(store.KeyRefreshToken)
	if !ok || refreshToken == "" {
		return errors.New(errors.ErrCodeAuthInvalidToken, "no refresh token in store")
	}

	_, err, _ := c.refresh.Do(refreshToken, func() (any, error) {
		var tokens Token
		if err := c.public(ctx, http.MethodPost, "/auth/refresh", refreshRequest{RefreshToken: refreshToken}, &tokens); err != nil {
			return nil, err
		}
		if tokens.AccessToken == "" {
			return nil, errors.New(errors.ErrCodeAPIBadResponse, "refresh response missing access token")
		}
		if err := c.store.Set(store.KeyAccessToken, tokens.AccessToken); err != nil {
			return nil, err
		}
		if tokens.RefreshToken != "" {
			if err := c.store.Set(store.KeyRefreshToken, tokens.RefreshToken); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}

func marshalBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return payload, nil
}

// decodeResponse parses the response body into out, turning non-2xx
// responses into *Error carrying the backend detail message.
func decodeResponse(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)

		// FastAPI-style {"detail": "..."} error bodies.
		var detail struct {
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(body, &detail); err == nil && detail.Detail != "" {
			return &Error{StatusCode: resp.StatusCode, Detail: detail.Detail}
		}

		return &Error{StatusCode: resp.StatusCode, Detail: strings.TrimSpace(string(body))}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrap(errors.ErrCodeAPIBadResponse, "failed to decode response", err)
		}
	}

	return nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
}
