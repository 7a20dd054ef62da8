package api

import (
	"context"
	"net/http"
)

// CreateOrganization creates a tenant organization.
func (c *Client) CreateOrganization(ctx context.Context, req CreateOrganizationRequest) (*Organization, error) {
	var org Organization
	if err := c.call(ctx, http.MethodPost, "/admin/organizations", nil, req, &org); err != nil {
		return nil, err
	}
	return &org, nil
}

// ListOrganizations returns all organizations.
func (c *Client) ListOrganizations(ctx context.Context) ([]Organization, error) {
	var orgs []Organization
	if err := c.call(ctx, http.MethodGet, "/admin/organizations", nil, nil, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

// UpdateOrganization patches an organization; nil request fields are left
// unchanged.
func (c *Client) UpdateOrganization(ctx context.Context, organizationID string, req UpdateOrganizationRequest) (*Organization, error) {
	var org Organization
	if err := c.call(ctx, http.MethodPatch, "/admin/organizations/"+organizationID, nil, req, &org); err != nil {
		return nil, err
	}
	return &org, nil
}
