package services

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrNotFound is returned when GitHub answers with a non-success status
	ErrNotFound = errors.New("not found")
	// ErrEmptyUsername is returned for a blank username
	ErrEmptyUsername = errors.New("username is required")
	// ErrInvalidUsername is returned for names GitHub cannot have; it matches ErrNotFound
	ErrInvalidUsername = fmt.Errorf("%w: invalid GitHub username", ErrNotFound)
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]{0,38}$`)

// validateUsername rejects names that are not GitHub logins, such as "." or ".."
// which would otherwise resolve to other API paths
func validateUsername(username string) error {
	if username == "" {
		return ErrEmptyUsername
	}
	if !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

// StatusError records the endpoint and status of a failed GitHub call.
// It matches ErrNotFound with errors.Is.
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GitHub %s returned status %d", e.Endpoint, e.StatusCode)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound
}
