// Package config provides the project configuration loader for rove.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/rove/internal/core/domain"
	"go.trai.ch/rove/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file discovered by
// walking up from the working directory.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new config loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// DiscoverRoot walks up from cwd to find the directory containing rove.yaml.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	dir, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.Wrap(domain.ErrConfigNotFound, err.Error())
	}

	for {
		candidate := filepath.Join(dir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "no configuration file in this or any parent directory"), "cwd", cwd)
		}
		dir = parent
	}
}

// Load reads the configuration discovered from cwd. A missing rove.yaml is
// not an error: defaults rooted at cwd are returned.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	root, err := l.DiscoverRoot(cwd)
	if err != nil {
		if errors.Is(err, domain.ErrConfigNotFound) {
			abs, absErr := filepath.Abs(cwd)
			if absErr != nil {
				return nil, zerr.Wrap(domain.ErrConfigReadFailed, absErr.Error())
			}
			return applyDefaults(&domain.Config{Root: abs}), nil
		}
		return nil, err
	}

	path := filepath.Join(root, domain.ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // path is discovered from the user's tree
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return applyDefaults(&domain.Config{Root: root}), nil
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", path)
	}

	var file roveFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, err.Error()), "path", path)
	}

	cfg := &domain.Config{
		Root:        root,
		ConfigPath:  path,
		Entry:       file.Entry,
		Command:     file.Run.Command,
		RegistryURL: file.Registry.URL,
		CacheDir:    file.Registry.CacheDir,
		WatchPaths:  file.Watch.Paths,
	}
	cfg.LockfilePath = file.Lock

	if file.Watch.Debounce != "" {
		window, err := time.ParseDuration(file.Watch.Debounce)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, err.Error()), "field", "watch.debounce")
		}
		cfg.DebounceWindow = window
	}

	return applyDefaults(cfg), nil
}

// applyDefaults fills in every unset field.
func applyDefaults(cfg *domain.Config) *domain.Config {
	if len(cfg.Command) == 0 {
		cfg.Command = []string{"node"}
	}
	if cfg.RegistryURL == "" {
		cfg.RegistryURL = domain.DefaultRegistryURL
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = domain.DefaultCachePath()
	}
	if cfg.LockfilePath == "" {
		cfg.LockfilePath = domain.LockfileName
	}
	if !filepath.IsAbs(cfg.LockfilePath) {
		cfg.LockfilePath = filepath.Join(cfg.Root, cfg.LockfilePath)
	}
	if cfg.DebounceWindow <= 0 {
		cfg.DebounceWindow = domain.DefaultDebounceWindow
	}
	return cfg
}
