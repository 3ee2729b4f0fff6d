// Package lockfile implements the v2 JSON lockfile codec.
package lockfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/rove/internal/core/domain"
	"go.trai.ch/rove/internal/core/ports"
	"go.trai.ch/zerr"
)

// formatVersion is the only lockfile format version this codec accepts.
const formatVersion = "2"

var _ ports.LockfileStore = (*Store)(nil)

// Store implements ports.LockfileStore over a JSON file on disk.
type Store struct {
	logger ports.Logger
}

// NewStore creates a new lockfile store.
func NewStore(logger ports.Logger) *Store {
	return &Store{logger: logger}
}

// fileFormat mirrors the on-disk lockfile shape.
type fileFormat struct {
	Version string            `json:"version"`
	Remote  map[string]string `json:"remote"`
	Npm     *npmSection       `json:"npm,omitempty"`
}

type npmSection struct {
	Specifiers map[string]string      `json:"specifiers"`
	Packages   map[string]filePackage `json:"packages"`
}

type filePackage struct {
	Integrity    string            `json:"integrity"`
	Dependencies map[string]string `json:"dependencies"`
}

// Read loads and verifies the lockfile at path. A missing file is not an
// error and yields a nil snapshot.
func (s *Store) Read(path string) (*domain.Snapshot, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from project configuration
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrLockfileReadFailed, err.Error()), "path", path)
	}

	var file fileFormat
	if err := json.Unmarshal(data, &file); err != nil {
		corrupt := zerr.Wrap(domain.ErrCorruptLockfile, err.Error())
		return nil, zerr.With(zerr.Wrap(corrupt, "failed reading lockfile"), "path", path)
	}
	if file.Version != formatVersion {
		corrupt := zerr.With(zerr.Wrap(domain.ErrCorruptLockfile, "unsupported lockfile version"), "version", file.Version)
		return nil, zerr.With(zerr.Wrap(corrupt, "failed reading lockfile"), "path", path)
	}

	snapshot, err := toSnapshot(&file)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed reading lockfile"), "path", path)
	}
	if err := snapshot.Verify(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed reading lockfile"), "path", path)
	}
	return snapshot, nil
}

// Write persists the snapshot at path. The file is written through a
// temporary sibling and renamed into place. When the serialized bytes equal
// the bytes already on disk the file is left untouched.
func (s *Store) Write(path string, snapshot *domain.Snapshot) error {
	data, err := marshal(snapshot)
	if err != nil {
		return zerr.Wrap(domain.ErrLockfileWriteFailed, err.Error())
	}

	existing, err := os.ReadFile(path) //nolint:gosec // path comes from project configuration
	if err == nil && bytes.Equal(existing, data) {
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrLockfileWriteFailed, err.Error()), "path", path)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-")
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrLockfileWriteFailed, err.Error()), "path", path)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return zerr.With(zerr.Wrap(domain.ErrLockfileWriteFailed, err.Error()), "path", path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrLockfileWriteFailed, err.Error()), "path", path)
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrLockfileWriteFailed, err.Error()), "path", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrLockfileWriteFailed, err.Error()), "path", path)
	}
	return nil
}

// marshal serializes a snapshot deterministically. encoding/json sorts map
// keys, so equal snapshots always produce identical bytes.
func marshal(snapshot *domain.Snapshot) ([]byte, error) {
	file := fileFormat{
		Version: formatVersion,
		Remote:  snapshot.Remote,
	}
	if file.Remote == nil {
		file.Remote = map[string]string{}
	}

	if len(snapshot.Specifiers) > 0 || len(snapshot.Packages) > 0 {
		npm := &npmSection{
			Specifiers: make(map[string]string, len(snapshot.Specifiers)),
			Packages:   make(map[string]filePackage, len(snapshot.Packages)),
		}
		for text, nv := range snapshot.Specifiers {
			npm.Specifiers[text] = nv.String()
		}
		for nv, entry := range snapshot.Packages {
			deps := make(map[string]string, len(entry.Dependencies))
			for name, dep := range entry.Dependencies {
				deps[name] = dep.String()
			}
			npm.Packages[nv.String()] = filePackage{
				Integrity:    entry.Integrity,
				Dependencies: deps,
			}
		}
		file.Npm = npm
	}

	data, err := json.MarshalIndent(&file, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func toSnapshot(file *fileFormat) (*domain.Snapshot, error) {
	snapshot := domain.NewSnapshot()
	for url, hash := range file.Remote {
		snapshot.Remote[url] = hash
	}
	if file.Npm == nil {
		return snapshot, nil
	}

	for text, id := range file.Npm.Specifiers {
		nv, err := domain.ParsePackageNv(id)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrCorruptLockfile, err.Error()), "specifier", text)
		}
		snapshot.Specifiers[text] = nv
	}
	for id, pkg := range file.Npm.Packages {
		nv, err := domain.ParsePackageNv(id)
		if err != nil {
			return nil, zerr.Wrap(domain.ErrCorruptLockfile, err.Error())
		}
		deps := make(map[string]domain.PackageNv, len(pkg.Dependencies))
		for name, depID := range pkg.Dependencies {
			dep, err := domain.ParsePackageNv(depID)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(domain.ErrCorruptLockfile, err.Error()), "required_by", id)
			}
			deps[name] = dep
		}
		snapshot.Packages[nv] = domain.SnapshotEntry{
			Nv:           nv,
			Integrity:    pkg.Integrity,
			Dependencies: deps,
		}
	}
	return snapshot, nil
}
