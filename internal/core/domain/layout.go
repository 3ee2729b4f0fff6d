package domain

import (
	"os"
	"path/filepath"
	"time"
)

const (
	// RoveDirName is the name of the user-level cache directory.
	RoveDirName = "rove"

	// PackagesDirName is the name of the extracted package store directory.
	PackagesDirName = "packages"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "rove.yaml"

	// LockfileName is the name of the dependency lockfile.
	LockfileName = "rove.lock"

	// NodeModulesDirName is the local dependency folder materialized with
	// --node-modules-dir.
	NodeModulesDirName = "node_modules"

	// DefaultRegistryURL is the npm registry used when the config names none.
	DefaultRegistryURL = "https://registry.npmjs.org"

	// DefaultDebounceWindow is the quiescence window used to coalesce bursts
	// of file-system events into one logical change notification.
	DefaultDebounceWindow = 200 * time.Millisecond

	// DefaultDownloadParallelism bounds concurrent tarball downloads.
	DefaultDownloadParallelism = 8

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultCachePath returns the user-level package cache directory,
// falling back to a project-local folder when the OS cache dir is unknown.
func DefaultCachePath() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(".rove", "cache")
	}
	return filepath.Join(base, RoveDirName)
}
