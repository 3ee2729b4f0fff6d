package ports

import "go.trai.ch/rove/internal/core/domain"

// PackageStore is the content-addressed on-disk store of extracted package
// folders, keyed by name, version and integrity.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type PackageStore interface {
	// Get returns the cache entry for an identity at a given integrity.
	// Returns nil, nil on a miss, including when the stored content no
	// longer matches the recorded hash (tampered or deleted out-of-band).
	Get(nv domain.PackageNv, integrity string) (*domain.CacheEntry, error)

	// Put extracts a tarball into the store under the identity and integrity.
	// Safe to race: the folder is written to a temp path and renamed into
	// place, so it is never observed half-written. Last writer wins.
	Put(nv domain.PackageNv, integrity string, tarball []byte) (*domain.CacheEntry, error)
}
