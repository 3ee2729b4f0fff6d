package ports

import (
	"context"

	"go.trai.ch/rove/internal/core/domain"
)

// RegistryClient performs HTTP fetches of npm registry metadata and tarballs.
//
//go:generate mockgen -source=registry.go -destination=mocks/mock_registry.go -package=mocks
type RegistryClient interface {
	// Metadata fetches the registry document for a package name. Transient
	// failures are retried once before being surfaced.
	Metadata(ctx context.Context, name string) (*domain.RegistryMetadata, error)

	// Tarball downloads a package archive.
	Tarball(ctx context.Context, url string) ([]byte, error)

	// TarballURL reconstructs the conventional archive URL for a package
	// version. Used when the lockfile pins a package whose registry
	// document has not been fetched this run.
	TarballURL(name, version string) string
}
