package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestAdminError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AdminError
		contains []string
	}{
		{
			name:     "code and message",
			err:      New(ErrCodeAuthLoginFailed, "login failed"),
			contains: []string{"[AUTH-001]", "login failed"},
		},
		{
			name:     "with cause",
			err:      Wrap(ErrCodeAPIUnreachable, "cannot reach backend", fmt.Errorf("dial tcp: connection refused")),
			contains: []string{"[API-001]", "cannot reach backend", "connection refused"},
		},
		{
			name: "with suggestions",
			err: New(ErrCodeAuthNotLoggedIn, "not logged in").
				WithSuggestion("Run 'adminctl auth login' to authenticate"),
			contains: []string{"Suggestions:", "adminctl auth login"},
		},
		{
			name: "with docs",
			err: New(ErrCodeConfigInvalid, "bad config").
				WithDocs("https://example.com/docs"),
			contains: []string{"Documentation: https://example.com/docs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(msg, want) {
					t.Errorf("Error() = %q, expected to contain %q", msg, want)
				}
			}
		})
	}
}

func TestAdminError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying failure")
	err := Wrap(ErrCodeStoreWriteFailed, "write failed", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should match the wrapped cause")
	}

	var adminErr *AdminError
	if !errors.As(err, &adminErr) {
		t.Fatal("errors.As should extract *AdminError")
	}
	if adminErr.Code != ErrCodeStoreWriteFailed {
		t.Errorf("expected code %s, got %s", ErrCodeStoreWriteFailed, adminErr.Code)
	}
}

func TestAdminError_WithSuggestions(t *testing.T) {
	err := New(ErrCodeAPIBadResponse, "bad response").
		WithSuggestions("check one", "check two")

	if len(err.Suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(err.Suggestions))
	}
}

func TestNewSessionExpiredError(t *testing.T) {
	cause := fmt.Errorf("refresh returned 401")
	err := NewSessionExpiredError(cause)

	if err.Code != ErrCodeAuthSessionExpired {
		t.Errorf("expected code %s, got %s", ErrCodeAuthSessionExpired, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Error("session expired error should wrap its cause")
	}
	if len(err.Suggestions) == 0 {
		t.Error("expected a login suggestion")
	}
}
