package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound      = errors.New("not found")
	ErrNotConfigured = errors.New("store not configured")
	ErrInvalidInput  = errors.New("invalid input")
	ErrNoDocument    = errors.New("no document open")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// RowNotFoundError reports a delta that matched no progress row, neither
// exactly nor after accent/case folding
type RowNotFoundError struct {
	Subject   string
	TableType string
}

func (e *RowNotFoundError) Error() string {
	return fmt.Sprintf("no progress row for subject %q and table type %q", e.Subject, e.TableType)
}

func (e *RowNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// RemoteError is a non-2xx answer from the progress API
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote error (%d)", e.Status)
	}
	return fmt.Sprintf("remote error (%d): %s", e.Status, e.Message)
}

// Is maps well-known statuses onto the sentinels
func (e *RemoteError) Is(target error) bool {
	switch e.Status {
	case 400:
		return target == ErrInvalidInput
	case 404:
		return target == ErrNotFound
	case 503:
		return target == ErrNotConfigured
	}
	return false
}
