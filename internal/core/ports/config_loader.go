package ports

import "go.trai.ch/rove/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration discovered from the given working
	// directory, applying defaults for anything unset. A missing rove.yaml
	// is not an error: defaults rooted at cwd are returned.
	Load(cwd string) (*domain.Config, error)

	// DiscoverRoot walks up from cwd to the directory containing rove.yaml.
	DiscoverRoot(cwd string) (string, error)
}
