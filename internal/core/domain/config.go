package domain

import "time"

// Config is the loaded project configuration.
type Config struct {
	// Root is the directory containing rove.yaml.
	Root string

	// ConfigPath is the absolute path of the loaded rove.yaml, empty when
	// running on defaults without a config file.
	ConfigPath string

	// Entry is the default entry file, relative to Root.
	Entry string

	// Command is the argv prefix used to execute the entry (default "node").
	Command []string

	// RegistryURL is the npm registry base URL.
	RegistryURL string

	// CacheDir is the package cache directory.
	CacheDir string

	// LockfilePath is the lockfile location, relative paths resolved
	// against Root.
	LockfilePath string

	// DebounceWindow is the watch quiescence window.
	DebounceWindow time.Duration

	// WatchPaths are extra roots watched in addition to the module graph's
	// local paths.
	WatchPaths []string
}
