package reset

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAuthHeader is returned when the request carries no Authorization header.
	ErrMissingAuthHeader = errors.New("Missing Authorization header") //nolint:staticcheck // client visible

	// ErrUnauthorized is returned for invalid or expired tokens.
	ErrUnauthorized = errors.New("Unauthorized") //nolint:staticcheck // client visible

	// ErrAdminStatusUnknown is returned when the admin registry can not be read.
	ErrAdminStatusUnknown = errors.New("Failed to verify admin status") //nolint:staticcheck // client visible

	// ErrNotAdmin is returned when the caller is not listed in the admin registry.
	ErrNotAdmin = errors.New("Unauthorized: Not an admin user") //nolint:staticcheck // client visible

	// ErrInvalidResetType is returned for reset types other than full and partial.
	ErrInvalidResetType = errors.New("Invalid reset type") //nolint:staticcheck // client visible

	// ErrUnknownTable is returned when a partial reset names a table that can not be reset.
	ErrUnknownTable = errors.New("Unknown table") //nolint:staticcheck // client visible

	// ErrInProgress is returned when another reset or restore holds the reset lease.
	ErrInProgress = errors.New("A system reset is already in progress") //nolint:staticcheck // client visible

	// ErrBackupNotFound is returned when no backup exists under the key.
	ErrBackupNotFound = errors.New("Backup not found") //nolint:staticcheck // client visible

	// ErrCorruptBackup is returned when a backup payload is not a JSON object.
	ErrCorruptBackup = errors.New("Backup is corrupt") //nolint:staticcheck // client visible
)

// Phase names the step of a reset that failed.
type Phase string

// Reset phases.
const (
	PhaseSnapshot Phase = "snapshot"
	PhaseDelete   Phase = "delete"
)

// PhaseError is returned when a reset fails after authorization and validation.
// A snapshot failure left every table untouched. A delete failure was rolled back
// and BackupKey locates the intact snapshot.
type PhaseError struct {
	Phase     Phase
	BackupKey string
	Err       error
}

// Error returns the message of the failing step.
func (e *PhaseError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *PhaseError) Unwrap() error {
	return e.Err
}

func unknownTable(name string) error {
	return fmt.Errorf("%w: %s", ErrUnknownTable, name)
}
