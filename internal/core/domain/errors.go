package domain

import "go.trai.ch/zerr"

var (
	// ErrCorruptLockfile is returned when the lockfile references packages that
	// are missing from its package list or cannot be parsed.
	ErrCorruptLockfile = zerr.New("the lockfile is corrupt, recreate it with --lock-write")

	// ErrIntegrityMismatch is returned when a downloaded or cached package does
	// not match its recorded integrity hash. Never retried silently.
	ErrIntegrityMismatch = zerr.New("package integrity mismatch")

	// ErrNotFoundInCache is returned in cached-only mode when a required
	// package has no usable cache entry.
	ErrNotFoundInCache = zerr.New("package not found in cache, run without --cached-only to download it")

	// ErrNotFoundInRegistry is returned when the registry has no package or no
	// version satisfying the requested range.
	ErrNotFoundInRegistry = zerr.New("package not found in registry")

	// ErrNoMatchingVersion is returned when the registry knows the package but
	// no published version satisfies the requested range.
	ErrNoMatchingVersion = zerr.New("no version matching requirement")

	// ErrInvalidSpecifier is returned when an npm specifier cannot be parsed.
	ErrInvalidSpecifier = zerr.New("invalid npm specifier")

	// ErrInvalidPackageNv is returned when a name@version identity string
	// cannot be parsed.
	ErrInvalidPackageNv = zerr.New("invalid package name and version")

	// ErrInvalidVersionRange is returned when a semver range cannot be parsed.
	ErrInvalidVersionRange = zerr.New("invalid version requirement")

	// ErrMetadataFetchFailed is returned when registry metadata cannot be
	// fetched after the retry.
	ErrMetadataFetchFailed = zerr.New("failed to fetch registry metadata")

	// ErrTarballFetchFailed is returned when a package tarball download fails.
	ErrTarballFetchFailed = zerr.New("failed to download package tarball")

	// ErrLockfileReadFailed is returned when the lockfile exists but cannot be read.
	ErrLockfileReadFailed = zerr.New("failed reading lockfile")

	// ErrLockfileWriteFailed is returned when the lockfile cannot be written.
	ErrLockfileWriteFailed = zerr.New("failed writing lockfile")

	// ErrCacheReadFailed is returned when a cache entry cannot be read.
	ErrCacheReadFailed = zerr.New("failed to read package cache entry")

	// ErrCacheWriteFailed is returned when a cache entry cannot be written.
	// Propagated, not retried. The caller decides whether to retry resolution.
	ErrCacheWriteFailed = zerr.New("failed to write package cache entry")

	// ErrTarballExtractFailed is returned when a tarball cannot be unpacked.
	ErrTarballExtractFailed = zerr.New("failed to extract package tarball")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when no rove.yaml is found walking up from cwd.
	ErrConfigNotFound = zerr.New("could not find rove.yaml")

	// ErrNoEntrySpecified is returned when run is invoked without an entry file
	// and the config declares none.
	ErrNoEntrySpecified = zerr.New("no entry file specified")

	// ErrEntryNotFound is returned when the entry file does not exist.
	ErrEntryNotFound = zerr.New("entry file not found")

	// ErrRunFailed is returned when the supervised subcommand exits non-zero.
	ErrRunFailed = zerr.New("process failed")

	// ErrNoPathsToWatch is returned when the dependency graph yields no
	// watchable roots. This terminates the watch supervisor.
	ErrNoPathsToWatch = zerr.New("no paths to watch")

	// ErrGraphBuildFailed is returned when the module graph cannot be built.
	ErrGraphBuildFailed = zerr.New("failed to build module graph")

	// ErrNodeModulesSetupFailed is returned when the node_modules directory
	// cannot be materialized from the cache.
	ErrNodeModulesSetupFailed = zerr.New("failed to set up node_modules directory")
)

// Exit codes surfaced to the user.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a generic subcommand error.
	ExitError = 1

	// ExitLockfileError distinguishes lockfile integrity and corruption
	// failures from general runtime errors.
	ExitLockfileError = 10
)
