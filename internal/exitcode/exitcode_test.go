package exitcode

import (
	"fmt"
	"testing"

	"github.com/authway/adminctl/internal/errors"
)

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "nil error",
			err:  nil,
			want: Success,
		},
		{
			name: "session expired admin error",
			err:  errors.NewSessionExpiredError(fmt.Errorf("refresh rejected")),
			want: SessionExpired,
		},
		{
			name: "login failed admin error",
			err:  errors.New(errors.ErrCodeAuthLoginFailed, "Invalid email or password"),
			want: AuthError,
		},
		{
			name: "not logged in admin error",
			err:  errors.NewNotLoggedInError(),
			want: AuthError,
		},
		{
			name: "api unreachable admin error",
			err:  errors.NewAPIUnreachableError("http://localhost:8000", fmt.Errorf("dial tcp")),
			want: NetworkError,
		},
		{
			name: "wrapped admin error",
			err:  fmt.Errorf("users list: %w", errors.NewSessionExpiredError(fmt.Errorf("401"))),
			want: SessionExpired,
		},
		{
			name: "generic unauthorized",
			err:  fmt.Errorf("request unauthorized"),
			want: AuthError,
		},
		{
			name: "connection refused",
			err:  fmt.Errorf("dial tcp 127.0.0.1:8000: connection refused"),
			want: NetworkError,
		},
		{
			name: "unknown command",
			err:  fmt.Errorf(`unknown command "userz" for "adminctl"`),
			want: UsageError,
		},
		{
			name: "anything else",
			err:  fmt.Errorf("something broke"),
			want: GeneralError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineExitCode(tt.err); got != tt.want {
				t.Errorf("DetermineExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGetExitCodeDescription(t *testing.T) {
	for _, code := range []int{Success, GeneralError, UsageError, AuthError, SessionExpired, NetworkError, Interrupted} {
		if GetExitCodeDescription(code) == "Unknown error" {
			t.Errorf("code %d should have a description", code)
		}
	}
	if GetExitCodeDescription(99) != "Unknown error" {
		t.Error("unknown code should map to 'Unknown error'")
	}
}
