package health

import (
	"context"
	"fmt"

	"github.com/authway/adminctl/internal/api"
)

// BackendChecker checks the health of the backend API.
// It calls the backend's own health report endpoint and mirrors its verdict,
// so the console and the web dashboard agree on what "healthy" means.
type BackendChecker struct {
	client *api.Client
}

// NewBackendChecker creates a new backend API health checker.
func NewBackendChecker(client *api.Client) *BackendChecker {
	return &BackendChecker{client: client}
}

// Name returns the name of this health check.
func (c *BackendChecker) Name() string {
	return "backend-api"
}

// Check verifies the backend API is reachable and reports on its endpoints.
// Returns:
//   - Healthy if the backend reports all endpoints healthy
//   - Degraded if the backend reports some endpoints degraded
//   - Unhealthy if the backend is unreachable or reports unhealthy
func (c *BackendChecker) Check(ctx context.Context) *Result {
	report, err := c.client.APIHealth(ctx)
	if err != nil {
		return Unhealthy("backend unreachable").
			WithDetail("url", c.client.BaseURL()).
			WithDetail("error", err.Error())
	}

	healthyCount := 0
	endpointDetails := make(map[string]interface{})
	for _, endpoint := range report.Endpoints {
		if endpoint.Status == "healthy" {
			healthyCount++
		}
		endpointDetails[endpoint.Name] = map[string]interface{}{
			"status":           endpoint.Status,
			"response_time_ms": endpoint.ResponseTime,
		}
	}

	result := &Result{Details: make(map[string]interface{})}
	result.Details["url"] = c.client.BaseURL()
	result.Details["total_endpoints"] = len(report.Endpoints)
	result.Details["healthy_endpoints"] = healthyCount
	result.Details["endpoints"] = endpointDetails

	switch report.OverallStatus {
	case "healthy":
		result.Status = StatusHealthy
		result.Message = fmt.Sprintf("all endpoints healthy (%d/%d)", healthyCount, len(report.Endpoints))
	case "degraded":
		result.Status = StatusDegraded
		result.Message = fmt.Sprintf("some endpoints degraded (%d/%d healthy)", healthyCount, len(report.Endpoints))
	default:
		result.Status = StatusUnhealthy
		result.Message = fmt.Sprintf("backend reports %q", report.OverallStatus)
	}
	return result
}
