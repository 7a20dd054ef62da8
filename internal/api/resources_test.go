package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authway/adminctl/internal/store"
)

// newAuthedClient returns a client with a stored session against server.
func newAuthedClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	st := newTestStore(t)
	require.NoError(t, st.Set(store.KeyAccessToken, "tok"))
	require.NoError(t, st.Set(store.KeyRefreshToken, "ref"))
	return NewClient(serverURL, st)
}

func TestClient_Login(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"), "login is an unauthenticated call")

		var req loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Email != "admin@example.com" || req.Password != "pw" {
			writeJSON(t, w, http.StatusUnauthorized, map[string]string{"detail": "Invalid email or password"})
			return
		}

		writeJSON(t, w, http.StatusOK, Token{
			AccessToken:  "A",
			RefreshToken: "R",
			TokenType:    "bearer",
			User:         SessionUser{ID: "u1", Email: req.Email, Role: "admin"},
			License:      SessionLicense{Type: "enterprise", IsValid: true},
		})
	}))

	client := NewClient(server.URL, newTestStore(t))

	tokens, err := client.Login(context.Background(), "admin@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "A", tokens.AccessToken)
	assert.Equal(t, "R", tokens.RefreshToken)
	assert.Equal(t, "u1", tokens.User.ID)
	assert.True(t, tokens.License.IsValid)

	_, err = client.Login(context.Background(), "admin@example.com", "wrong")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid email or password", apiErr.Detail)
}

func TestClient_ListUsers_OrgScope(t *testing.T) {
	var gotQuery string
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/users", r.URL.Path)
		gotQuery = r.URL.RawQuery
		writeJSON(t, w, http.StatusOK, []User{{ID: "u1", Email: "a@x.com"}})
	}))

	client := newAuthedClient(t, server.URL)

	_, err := client.ListUsers(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, gotQuery, "no organization filter when unset")

	users, err := client.ListUsers(context.Background(), "org-1")
	require.NoError(t, err)
	assert.Equal(t, "organization_id=org-1", gotQuery)
	require.Len(t, users, 1)
	assert.Equal(t, "u1", users[0].ID)
}

func TestClient_UpdateUser_PartialPatch(t *testing.T) {
	var gotBody map[string]any
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/admin/users/u1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		writeJSON(t, w, http.StatusOK, User{ID: "u1", Role: "manager"})
	}))

	client := newAuthedClient(t, server.URL)

	role := "manager"
	user, err := client.UpdateUser(context.Background(), "u1", UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, "manager", user.Role)

	// Unset fields must be omitted so the backend leaves them unchanged.
	assert.Equal(t, map[string]any{"role": "manager"}, gotBody)
}

func TestClient_DeleteUser(t *testing.T) {
	var gotMethod, gotPath string
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		writeJSON(t, w, http.StatusOK, map[string]string{"message": "User deleted"})
	}))

	client := newAuthedClient(t, server.URL)
	require.NoError(t, client.DeleteUser(context.Background(), "u9"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/admin/users/u9", gotPath)
}

func TestClient_Organizations(t *testing.T) {
	expires := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)

	mux := http.NewServeMux()
	mux.HandleFunc("/admin/organizations", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			var req CreateOrganizationRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			writeJSON(t, w, http.StatusOK, Organization{
				ID: "org-1", Name: req.Name, LicenseType: req.LicenseType,
				LicenseExpiresAt: req.LicenseExpiresAt, MaxUsers: req.MaxUsers, IsActive: true,
			})
		case http.MethodGet:
			writeJSON(t, w, http.StatusOK, []Organization{{ID: "org-1", Name: "Acme"}})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	server := newTestServer(t, mux)

	client := newAuthedClient(t, server.URL)

	org, err := client.CreateOrganization(context.Background(), CreateOrganizationRequest{
		Name:             "Acme",
		LicenseType:      "enterprise",
		LicenseExpiresAt: expires,
		MaxUsers:         50,
	})
	require.NoError(t, err)
	assert.Equal(t, "org-1", org.ID)
	assert.Equal(t, expires, org.LicenseExpiresAt)

	orgs, err := client.ListOrganizations(context.Background())
	require.NoError(t, err)
	require.Len(t, orgs, 1)
	assert.Equal(t, "Acme", orgs[0].Name)
}

func TestClient_LicenseEndpoints(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/license/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, LicenseStatus{
			OrganizationName: "Acme", LicenseType: "pro", IsValid: true, DaysRemaining: 90,
		})
	})
	mux.HandleFunc("/license/check/org-2", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, LicenseCheck{Valid: false, Reason: "license_expired"})
	})
	server := newTestServer(t, mux)

	client := newAuthedClient(t, server.URL)

	status, err := client.LicenseStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, status.IsValid)
	assert.Equal(t, 90, status.DaysRemaining)

	check, err := client.CheckLicense(context.Background(), "org-2")
	require.NoError(t, err)
	assert.False(t, check.Valid)
	assert.Equal(t, "license_expired", check.Reason)
}

func TestClient_DatabaseEndpoints(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/database/tables", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, []TableInfo{{Name: "users", Columns: 6, Rows: 120}})
	})
	mux.HandleFunc("/database/tables/users/data", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		assert.Equal(t, "50", r.URL.Query().Get("offset"))
		writeJSON(t, w, http.StatusOK, TableData{
			Columns: []string{"id", "email"}, Rows: [][]any{{"u1", "a@x.com"}},
			TotalCount: 120, Limit: 25, Offset: 50,
		})
	})
	mux.HandleFunc("/database/query", func(w http.ResponseWriter, r *http.Request) {
		var req queryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Query != "SELECT count(*) FROM users" {
			writeJSON(t, w, http.StatusBadRequest, map[string]string{"detail": "Only SELECT queries are allowed for safety"})
			return
		}
		writeJSON(t, w, http.StatusOK, QueryResult{Columns: []string{"count"}, Rows: [][]any{{float64(120)}}, RowCount: 1})
	})
	server := newTestServer(t, mux)

	client := newAuthedClient(t, server.URL)

	tables, err := client.Tables(context.Background())
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, 120, tables[0].Rows)

	data, err := client.TableData(context.Background(), "users", 25, 50)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "email"}, data.Columns)
	assert.Equal(t, 120, data.TotalCount)

	result, err := client.Query(context.Background(), "SELECT count(*) FROM users")
	require.NoError(t, err)
	assert.Equal(t, 1, result.RowCount)

	_, err = client.Query(context.Background(), "DROP TABLE users")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Detail, "SELECT")
}

func TestClient_AuditLogs_Filter(t *testing.T) {
	var gotQuery map[string][]string
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/audit/logs", r.URL.Path)
		gotQuery = r.URL.Query()
		writeJSON(t, w, http.StatusOK, []AuditLog{{ID: "log-1", Action: "login_failed", Status: "failed"}})
	}))

	client := newAuthedClient(t, server.URL)

	logs, err := client.AuditLogs(context.Background(), AuditLogFilter{
		OrganizationID: "org-1",
		Action:         "login_failed",
		Days:           7,
		Limit:          50,
	})
	require.NoError(t, err)
	require.Len(t, logs, 1)

	assert.Equal(t, []string{"org-1"}, gotQuery["organization_id"])
	assert.Equal(t, []string{"login_failed"}, gotQuery["action"])
	assert.Equal(t, []string{"7"}, gotQuery["days"])
	assert.Equal(t, []string{"50"}, gotQuery["limit"])
}

func TestClient_SystemEndpoints(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/stats/dashboard", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, DashboardStats{
			TotalUsers: 10, TotalOrganizations: 3,
			LicenseDistribution: map[string]int{"pro": 2, "enterprise": 1},
		})
	})
	mux.HandleFunc("/admin/system/stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, SystemStats{
			TotalUsers: 10,
			APIHealth:  APIHealthSummary{Status: "healthy", Message: "API Operational"},
		})
	})
	mux.HandleFunc("/admin/system/api-health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, APIHealthReport{
			OverallStatus: "healthy",
			Endpoints:     []EndpointHealth{{Name: "Authentication API", Status: "healthy"}},
		})
	})
	server := newTestServer(t, mux)

	client := newAuthedClient(t, server.URL)

	stats, err := client.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, stats.TotalUsers)
	assert.Equal(t, 2, stats.LicenseDistribution["pro"])

	sys, err := client.SystemStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", sys.APIHealth.Status)

	health, err := client.APIHealth(context.Background())
	require.NoError(t, err)
	require.Len(t, health.Endpoints, 1)
	assert.Equal(t, "Authentication API", health.Endpoints[0].Name)
}

func TestClient_Validate(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/validate", r.URL.Path)

		var req validateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "u1", req.UserID)
		assert.Equal(t, "org-1", req.OrganizationID)

		writeJSON(t, w, http.StatusOK, ValidateResult{Valid: true, LicenseStatus: "active"})
	}))

	client := newAuthedClient(t, server.URL)
	result, err := client.Validate(context.Background(), "u1", "org-1")
	require.NoError(t, err)
	assert.True(t, result.Valid)
}
