package api

import (
	"context"
	"net/http"
)

// loginRequest is the body of POST /auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// validateRequest is the body of POST /auth/validate.
type validateRequest struct {
	UserID         string `json:"user_id"`
	OrganizationID string `json:"organization_id"`
}

// Login authenticates with email and password and returns the issued tokens
// plus the cached user and license. It does not persist anything; that is the
// session manager's job.
//
// Login bypasses the authenticated pipeline: a 401 here means bad
// credentials, not an expired session.
func (c *Client) Login(ctx context.Context, email, password string) (*Token, error) {
	var tokens Token
	if err := c.public(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &tokens); err != nil {
		return nil, err
	}
	return &tokens, nil
}

// Logout invalidates the refresh token server-side. The response body is
// ignored; callers treat failures as best-effort.
func (c *Client) Logout(ctx context.Context) error {
	return c.call(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

// Validate checks a user's token and license standing.
func (c *Client) Validate(ctx context.Context, userID, organizationID string) (*ValidateResult, error) {
	var result ValidateResult
	if err := c.call(ctx, http.MethodPost, "/auth/validate", nil, validateRequest{UserID: userID, OrganizationID: organizationID}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
