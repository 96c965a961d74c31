package model

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMissingToken indicates no GitHub token was configured for an
	// operation that requires one.
	ErrMissingToken = errors.New("github token is not configured")

	// ErrPRNotFound indicates the requested pull request does not exist.
	ErrPRNotFound = errors.New("pull request not found")

	// ErrNoOpenPRs indicates the repository has no open pull requests to
	// fall back to when no PR number was given.
	ErrNoOpenPRs = errors.New("no open pull requests")
)

// APIError wraps a remote API failure with its HTTP status so callers can
// distinguish auth problems from transient server errors.
type APIError struct {
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github api (HTTP %d): %v", e.StatusCode, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsAuth reports whether the failure is an authentication/authorization
// rejection that no retry will fix.
func (e *APIError) IsAuth() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsTransient reports whether the failure is worth retrying.
func (e *APIError) IsTransient() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}
