package api

import (
	"context"
	"net/http"
)

// LicenseStatus returns the license standing of the caller's organization.
func (c *Client) LicenseStatus(ctx context.Context) (*LicenseStatus, error) {
	var status LicenseStatus
	if err := c.call(ctx, http.MethodGet, "/license/status", nil, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// CheckLicense checks whether a specific organization's license is valid.
func (c *Client) CheckLicense(ctx context.Context, organizationID string) (*LicenseCheck, error) {
	var check LicenseCheck
	if err := c.call(ctx, http.MethodGet, "/license/check/"+organizationID, nil, nil, &check); err != nil {
		return nil, err
	}
	return &check, nil
}
