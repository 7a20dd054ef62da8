package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Authentication errors (AUTH-001 to AUTH-099)
	ErrCodeAuthLoginFailed    ErrorCode = "AUTH-001"
	ErrCodeAuthInvalidToken   ErrorCode = "AUTH-002"
	ErrCodeAuthSessionExpired ErrorCode = "AUTH-003"
	ErrCodeAuthNotLoggedIn    ErrorCode = "AUTH-004"

	// Session errors (SESSION-001 to SESSION-099)
	ErrCodeSessionPartial       ErrorCode = "SESSION-001"
	ErrCodeSessionPersistFailed ErrorCode = "SESSION-002"

	// API errors (API-001 to API-099)
	ErrCodeAPIUnreachable ErrorCode = "API-001"
	ErrCodeAPIBadResponse ErrorCode = "API-002"
	ErrCodeAPIForbidden   ErrorCode = "API-003"
	ErrCodeAPINotFound    ErrorCode = "API-004"
	ErrCodeAPIQuota       ErrorCode = "API-005"

	// Store errors (STORE-001 to STORE-099)
	ErrCodeStoreOpenFailed  ErrorCode = "STORE-001"
	ErrCodeStoreReadFailed  ErrorCode = "STORE-002"
	ErrCodeStoreWriteFailed ErrorCode = "STORE-003"
	ErrCodeStoreCorrupt     ErrorCode = "STORE-004"

	// Config errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigInvalid     ErrorCode = "CONFIG-001"
	ErrCodeConfigLoadFailed  ErrorCode = "CONFIG-002"
	ErrCodeConfigWriteFailed ErrorCode = "CONFIG-003"

	// Docs errors (DOCS-001 to DOCS-099)
	ErrCodeDocsLoadFailed ErrorCode = "DOCS-001"
	ErrCodeDocsInvalid    ErrorCode = "DOCS-002"
)

// AdminError represents an enhanced error with code, suggestions, and documentation
type AdminError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *AdminError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *AdminError) Unwrap() error {
	return e.Cause
}

// New creates a new AdminError
func New(code ErrorCode, message string) *AdminError {
	return &AdminError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AdminError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *AdminError {
	return &AdminError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *AdminError) WithSuggestion(suggestion string) *AdminError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *AdminError) WithSuggestions(suggestions ...string) *AdminError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *AdminError) WithDocs(url string) *AdminError {
	e.DocsURL = url
	return e
}

// Common error constructors for frequently used errors

// NewNotLoggedInError creates an error for commands that require a session
func NewNotLoggedInError() *AdminError {
	return New(ErrCodeAuthNotLoggedIn, "not logged in").
		WithSuggestion("Run 'adminctl auth login' to authenticate").
		WithSuggestion("Check AUTHWAY_API_URL points at the right backend")
}

// NewSessionExpiredError creates an error for a session that could not be refreshed
func NewSessionExpiredError(cause error) *AdminError {
	return Wrap(ErrCodeAuthSessionExpired, "session expired", cause).
		WithSuggestion("Run 'adminctl auth login' to start a new session")
}

// NewAPIUnreachableError creates a network failure error
func NewAPIUnreachableError(baseURL string, cause error) *AdminError {
	return Wrap(ErrCodeAPIUnreachable, fmt.Sprintf("cannot reach backend at %s", baseURL), cause).
		WithSuggestion("Check the backend is running and reachable").
		WithSuggestion("Set AUTHWAY_API_URL or api_url in the config file")
}

// NewStoreOpenError creates a token store open failure error
func NewStoreOpenError(path string, cause error) *AdminError {
	return Wrap(ErrCodeStoreOpenFailed, fmt.Sprintf("cannot open session store: %s", path), cause).
		WithSuggestion("Check the state directory exists and is writable").
		WithSuggestion("Remove the store file to reset local session state")
}

// NewConfigLoadError creates a configuration load failure error
func NewConfigLoadError(cause error) *AdminError {
	return Wrap(ErrCodeConfigLoadFailed, "failed to load configuration", cause).
		WithSuggestion("Run 'adminctl config init' to write a default config file").
		WithSuggestion("Check the config file is valid YAML")
}
