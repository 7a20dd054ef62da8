package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// AuditLogs returns audit trail entries matching the filter. Zero-valued
// filter fields are omitted from the query.
func (c *Client) AuditLogs(ctx context.Context, filter AuditLogFilter) ([]AuditLog, error) {
	query := url.Values{}
	if filter.OrganizationID != "" {
		query.Set("organization_id", filter.OrganizationID)
	}
	if filter.Action != "" {
		query.Set("action", filter.Action)
	}
	if filter.Days > 0 {
		query.Set("days", strconv.Itoa(filter.Days))
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}

	var logs []AuditLog
	if err := c.call(ctx, http.MethodGet, "/admin/audit/logs", query, nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
