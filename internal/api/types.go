package api

import "time"

// SessionUser is the cached identity returned by login and refresh.
type SessionUser struct {
	ID               string   `json:"id"`
	Email            string   `json:"email"`
	FullName         string   `json:"full_name"`
	Role             string   `json:"role"`
	OrganizationID   string   `json:"organization_id"`
	OrganizationName string   `json:"organization_name"`
	Permissions      []string `json:"permissions"`
}

// SessionLicense is the cached license summary returned by login and refresh.
type SessionLicense struct {
	Type      string   `json:"type"`
	ExpiresAt string   `json:"expires_at"`
	Features  []string `json:"features"`
	IsValid   bool     `json:"is_valid"`
}

// Token is the response of the login and refresh endpoints.
type Token struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	TokenType    string         `json:"token_type"`
	User         SessionUser    `json:"user"`
	License      SessionLicense `json:"license"`
}

// ValidateResult is the response of POST /auth/validate.
type ValidateResult struct {
	Valid         bool       `json:"valid"`
	LicenseStatus string     `json:"license_status"`
	ExpiresAt     *time.Time `json:"expires_at"`
	Permissions   []string   `json:"permissions"`
}

// User is a managed user as returned by the admin endpoints.
type User struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	FullName       string     `json:"full_name"`
	Role           string     `json:"role"`
	OrganizationID string     `json:"organization_id"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	LastLogin      *time.Time `json:"last_login"`
	Permissions    []string   `json:"permissions"`

	// Populated by list responses only.
	OrganizationName string     `json:"organization_name,omitempty"`
	LicenseExpiresAt *time.Time `json:"license_expires_at,omitempty"`
	FeaturesEnabled  []string   `json:"features_enabled,omitempty"`
}

// CreateUserRequest is the body of POST /admin/users.
type CreateUserRequest struct {
	Email          string `json:"email"`
	FullName       string `json:"full_name,omitempty"`
	Password       string `json:"password"`
	Role           string `json:"role"`
	OrganizationID string `json:"organization_id"`
}

// UpdateUserRequest is the body of PATCH /admin/users/{id}.
// Nil fields are left unchanged.
type UpdateUserRequest struct {
	FullName *string `json:"full_name,omitempty"`
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// Organization is a tenant as returned by the admin endpoints.
type Organization struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	LicenseType      string    `json:"license_type"`
	LicenseExpiresAt time.Time `json:"license_expires_at"`
	MaxUsers         int       `json:"max_users"`
	FeaturesEnabled  []string  `json:"features_enabled"`
	AllowedIPs       []string  `json:"allowed_ips"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UserCount        int       `json:"user_count"`
}

// CreateOrganizationRequest is the body of POST /admin/organizations.
type CreateOrganizationRequest struct {
	Name             string    `json:"name"`
	LicenseType      string    `json:"license_type"`
	LicenseExpiresAt time.Time `json:"license_expires_at"`
	MaxUsers         int       `json:"max_users"`
	FeaturesEnabled  []string  `json:"features_enabled"`
	AllowedIPs       []string  `json:"allowed_ips"`
}

// UpdateOrganizationRequest is the body of PATCH /admin/organizations/{id}.
// Nil fields are left unchanged.
type UpdateOrganizationRequest struct {
	Name             *string    `json:"name,omitempty"`
	LicenseType      *string    `json:"license_type,omitempty"`
	LicenseExpiresAt *time.Time `json:"license_expires_at,omitempty"`
	MaxUsers         *int       `json:"max_users,omitempty"`
	FeaturesEnabled  []string   `json:"features_enabled,omitempty"`
	AllowedIPs       []string   `json:"allowed_ips,omitempty"`
	IsActive         *bool      `json:"is_active,omitempty"`
}

// LicenseStatus is the response of GET /license/status.
type LicenseStatus struct {
	OrganizationID   string    `json:"organization_id"`
	OrganizationName string    `json:"organization_name"`
	LicenseType      string    `json:"license_type"`
	IsValid          bool      `json:"is_valid"`
	ExpiresAt        time.Time `json:"expires_at"`
	DaysRemaining    int       `json:"days_remaining"`
	FeaturesEnabled  []string  `json:"features_enabled"`
	MaxUsers         int       `json:"max_users"`
	CurrentUsers     int       `json:"current_users"`
}

// LicenseCheck is the response of GET /license/check/{organizationID}.
type LicenseCheck struct {
	Valid       bool     `json:"valid"`
	Reason      string   `json:"reason,omitempty"`
	LicenseType string   `json:"license_type,omitempty"`
	ExpiresAt   string   `json:"expires_at,omitempty"`
	Features    []string `json:"features,omitempty"`
}

// TableInfo summarizes one database table.
type TableInfo struct {
	Name    string `json:"name"`
	Columns int    `json:"columns"`
	Rows    int    `json:"rows"`
}

// TableData is a paginated slice of a table's rows.
type TableData struct {
	Columns    []string `json:"columns"`
	Rows       [][]any  `json:"rows"`
	TotalCount int      `json:"total_count"`
	Limit      int      `json:"limit"`
	Offset     int      `json:"offset"`
}

// QueryResult is the response of POST /database/query.
type QueryResult struct {
	Columns  []string `json:"columns"`
	Rows     [][]any  `json:"rows"`
	RowCount int      `json:"row_count"`
}

// RecentUser is a compact user entry on the dashboard.
type RecentUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// RecentOrganization is a compact organization entry on the dashboard.
type RecentOrganization struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	LicenseType string `json:"license_type"`
	CreatedAt   string `json:"created_at"`
}

// DashboardStats is the response of GET /admin/stats/dashboard.
type DashboardStats struct {
	TotalUsers          int                  `json:"total_users"`
	TotalOrganizations  int                  `json:"total_organizations"`
	ActiveLicenses      int                  `json:"active_licenses"`
	ExpiringSoon        int                  `json:"expiring_soon"`
	NewUsersWeek        int                  `json:"new_users_week"`
	ActiveUsersMonth    int                  `json:"active_users_month"`
	LicenseDistribution map[string]int       `json:"license_distribution"`
	UserRoles           map[string]int       `json:"user_roles"`
	RecentUsers         []RecentUser         `json:"recent_users"`
	RecentOrganizations []RecentOrganization `json:"recent_organizations"`
}

// APIHealthSummary is the condensed health block inside SystemStats.
type APIHealthSummary struct {
	Status       string `json:"status"`
	ResponseTime int    `json:"response_time"`
	Message      string `json:"message"`
}

// SystemStats is the response of GET /admin/system/stats.
type SystemStats struct {
	TotalOrganizations  int              `json:"total_organizations"`
	ActiveOrganizations int              `json:"active_organizations"`
	PausedOrganizations int              `json:"paused_organizations"`
	TotalUsers          int              `json:"total_users"`
	ActiveUsers         int              `json:"active_users"`
	ExpiredLicenses     int              `json:"expired_licenses"`
	ExpiringSoon        int              `json:"expiring_soon"`
	FailedLoginsToday   int              `json:"failed_logins_today"`
	IPViolationsToday   int              `json:"ip_violations_today"`
	APIHealth           APIHealthSummary `json:"api_health"`
}

// EndpointHealth is the status of one backend API surface.
type EndpointHealth struct {
	Name         string `json:"name"`
	Endpoint     string `json:"endpoint"`
	Status       string `json:"status"`
	ResponseTime int    `json:"response_time"`
	Message      string `json:"message"`
}

// APIHealthReport is the response of GET /admin/system/api-health.
type APIHealthReport struct {
	OverallStatus  string           `json:"overall_status"`
	OverallMessage string           `json:"overall_message"`
	TotalEndpoints int              `json:"total_endpoints"`
	HealthyCount   int              `json:"healthy_count"`
	SlowCount      int              `json:"slow_count"`
	FailedCount    int              `json:"failed_count"`
	Endpoints      []EndpointHealth `json:"endpoints"`
}

// AuditLog is one audit trail entry.
type AuditLog struct {
	ID             string         `json:"id"`
	Timestamp      time.Time      `json:"timestamp"`
	Action         string         `json:"action"`
	UserEmail      string         `json:"user_email"`
	OrganizationID string         `json:"organization_id"`
	TargetType     string         `json:"target_type"`
	IPAddress      string         `json:"ip_address"`
	Status         string         `json:"status"`
	Details        map[string]any `json:"details"`
}

// AuditLogFilter narrows GET /admin/audit/logs.
type AuditLogFilter struct {
	OrganizationID string
	Action         string
	Days           int
	Limit          int
}
