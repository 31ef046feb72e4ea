// Package lock provides named leases serialising the setup and reset workflows.
//
// A lease expires after its TTL so a crashed holder never blocks the workflows forever.
// Two backends exist: the settings table (Store) and redis (Redis).
package lock

import (
	"context"
	"errors"
)

// Lease names.
const (
	NameSetup = "system_setup"
	NameReset = "system_reset"
)

var (
	// ErrLocked is returned when the lease is held by someone else.
	ErrLocked = errors.New("operation already in progress")
	// ErrNotHeld is returned when releasing a lease that expired and was taken over.
	ErrNotHeld = errors.New("lease is not held")
)

// Locker hands out named leases.
type Locker interface {
	Acquire(ctx context.Context, name string) (Lease, error)
}

// Lease is a held lock.
type Lease interface {
	Release(ctx context.Context) error
}
