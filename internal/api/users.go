package api

import (
	"context"
	"net/http"
	"net/url"
)

// CreateUser creates a user in the given organization.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	var user User
	if err := c.call(ctx, http.MethodPost, "/admin/users", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns users, optionally scoped to one organization.
func (c *Client) ListUsers(ctx context.Context, organizationID string) ([]User, error) {
	var query url.Values
	if organizationID != "" {
		query = url.Values{"organization_id": {organizationID}}
	}

	var users []User
	if err := c.call(ctx, http.MethodGet, "/admin/users", query, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser patches a user; nil request fields are left unchanged.
func (c *Client) UpdateUser(ctx context.Context, userID string, req UpdateUserRequest) (*User, error) {
	var user User
	if err := c.call(ctx, http.MethodPatch, "/admin/users/"+userID, nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user.
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	return c.call(ctx, http.MethodDelete, "/admin/users/"+userID, nil, nil, nil)
}
