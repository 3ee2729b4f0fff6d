package ports

import "go.trai.ch/rove/internal/core/domain"

// LockfileStore reads and writes dependency snapshots.
//
//go:generate mockgen -source=lockfile.go -destination=mocks/mock_lockfile.go -package=mocks
type LockfileStore interface {
	// Read loads the snapshot at path. Returns nil, nil when the file does
	// not exist. Returns domain.ErrCorruptLockfile (wrapped in
	// domain.ErrLockfileReadFailed) when it exists but is inconsistent.
	Read(path string) (*domain.Snapshot, error)

	// Write persists the snapshot atomically (temp file plus rename).
	// Rewriting an unchanged snapshot must leave the file bytes untouched.
	Write(path string, snapshot *domain.Snapshot) error
}
