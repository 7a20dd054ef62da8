package health

import (
	"context"
	"fmt"

	"github.com/authway/adminctl/internal/api"
	"github.com/authway/adminctl/internal/session"
)

// expiryWarningDays is how close to expiry a valid license is reported as
// degraded rather than healthy.
const expiryWarningDays = 14

// LicenseChecker checks the standing of the logged-in organization's license.
type LicenseChecker struct {
	client  *api.Client
	session *session.Manager
}

// NewLicenseChecker creates a new license health checker.
func NewLicenseChecker(client *api.Client, sess *session.Manager) *LicenseChecker {
	return &LicenseChecker{client: client, session: sess}
}

// Name returns the name of this health check.
func (c *LicenseChecker) Name() string {
	return "license"
}

// Check queries the backend for the current license status.
// Returns:
//   - Healthy if the license is valid with comfortable time remaining
//   - Degraded when anonymous, or valid but within the expiry warning window
//   - Unhealthy if the license is invalid or expired
func (c *LicenseChecker) Check(ctx context.Context) *Result {
	if !c.session.IsAuthenticated() {
		return Degraded("not logged in, license standing unknown").
			WithDetail("suggestion", "Run 'adminctl auth login'")
	}

	status, err := c.client.LicenseStatus(ctx)
	if err != nil {
		return Unhealthy("license status unavailable").
			WithDetail("error", err.Error())
	}

	result := &Result{Details: make(map[string]interface{})}
	result.Details["organization"] = status.OrganizationName
	result.Details["type"] = status.LicenseType
	result.Details["days_remaining"] = status.DaysRemaining
	result.Details["max_users"] = status.MaxUsers

	switch {
	case !status.IsValid:
		result.Status = StatusUnhealthy
		result.Message = fmt.Sprintf("%s license is invalid or expired", status.LicenseType)
	case status.DaysRemaining <= expiryWarningDays:
		result.Status = StatusDegraded
		result.Message = fmt.Sprintf("%s license expires in %d days", status.LicenseType, status.DaysRemaining)
	default:
		result.Status = StatusHealthy
		result.Message = fmt.Sprintf("%s license valid, %d days remaining", status.LicenseType, status.DaysRemaining)
	}
	return result
}
