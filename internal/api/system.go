package api

import (
	"context"
	"net/http"
)

// DashboardStats returns the aggregate numbers backing the dashboard view.
func (c *Client) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.call(ctx, http.MethodGet, "/admin/stats/dashboard", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// SystemStats returns the monitoring counters and the condensed API health.
func (c *Client) SystemStats(ctx context.Context) (*SystemStats, error) {
	var stats SystemStats
	if err := c.call(ctx, http.MethodGet, "/admin/system/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// APIHealth returns per-endpoint backend health details.
func (c *Client) APIHealth(ctx context.Context) (*APIHealthReport, error) {
	var report APIHealthReport
	if err := c.call(ctx, http.MethodGet, "/admin/system/api-health", nil, nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
