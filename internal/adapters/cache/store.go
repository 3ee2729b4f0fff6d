// Package cache implements the on-disk package cache for downloaded npm
// tarballs, keyed by package identity and content integrity.
package cache

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/rove/internal/core/domain"
	"go.trai.ch/rove/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// integrityFileName records the integrity string and content hash of an
	// extracted package so Get can detect tampering.
	integrityFileName = ".rove-integrity"

	// contentDirName is the directory the tarball contents are extracted into.
	contentDirName = "package"
)

var _ ports.PackageStore = (*Store)(nil)

// Store implements ports.PackageStore using an extracted-tree layout under a
// single cache root, one directory per package identity and integrity.
type Store struct {
	root   string
	logger ports.Logger
}

// NewStore creates a package store rooted at the given cache directory.
func NewStore(root string, logger ports.Logger) *Store {
	return &Store{root: root, logger: logger}
}

// Get returns the cache entry for the given package, or nil when the package
// is not cached. A cached tree whose recorded integrity or content hash no
// longer matches is treated as absent.
func (s *Store) Get(nv domain.PackageNv, integrity string) (*domain.CacheEntry, error) {
	dir := s.packageDir(nv, integrity)
	contentDir := filepath.Join(dir, contentDirName)

	record, err := os.ReadFile(filepath.Join(dir, integrityFileName)) //nolint:gosec // path is derived from the cache root
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(domain.ErrCacheReadFailed, err.Error())
	}

	recordedIntegrity, recordedHash, ok := parseRecord(record)
	if !ok || recordedIntegrity != integrity {
		s.logger.Warn("discarding cache entry with mismatched integrity record", "package", nv.String())
		return nil, nil
	}

	actualHash, err := hashTree(contentDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(domain.ErrCacheReadFailed, err.Error())
	}
	if actualHash != recordedHash {
		s.logger.Warn("discarding tampered cache entry", "package", nv.String())
		return nil, nil
	}

	return &domain.CacheEntry{Nv: nv, Integrity: integrity, Dir: contentDir}, nil
}

// Put extracts the tarball into the cache. The extraction happens in a
// temporary directory which is renamed into place, so concurrent readers
// never observe a partially extracted package.
func (s *Store) Put(nv domain.PackageNv, integrity string, tarball []byte) (*domain.CacheEntry, error) {
	dir := s.packageDir(nv, integrity)
	if err := os.MkdirAll(filepath.Dir(dir), domain.DirPerm); err != nil {
		return nil, zerr.Wrap(domain.ErrCacheWriteFailed, err.Error())
	}

	tmp, err := os.MkdirTemp(filepath.Dir(dir), filepath.Base(dir)+".tmp-")
	if err != nil {
		return nil, zerr.Wrap(domain.ErrCacheWriteFailed, err.Error())
	}
	defer os.RemoveAll(tmp)

	contentDir := filepath.Join(tmp, contentDirName)
	if err := extractTarball(tarball, contentDir); err != nil {
		return nil, zerr.With(err, "package", nv.String())
	}

	contentHash, err := hashTree(contentDir)
	if err != nil {
		return nil, zerr.Wrap(domain.ErrCacheWriteFailed, err.Error())
	}

	record := integrity + "\n" + contentHash + "\n"
	if err := os.WriteFile(filepath.Join(tmp, integrityFileName), []byte(record), domain.FilePerm); err != nil {
		return nil, zerr.Wrap(domain.ErrCacheWriteFailed, err.Error())
	}

	// A competing extraction may have won the rename already. Its content is
	// equivalent, so drop ours and use the existing tree.
	if err := os.Rename(tmp, dir); err != nil {
		if _, statErr := os.Stat(dir); statErr == nil {
			return s.Get(nv, integrity)
		}
		return nil, zerr.Wrap(domain.ErrCacheWriteFailed, err.Error())
	}

	return &domain.CacheEntry{Nv: nv, Integrity: integrity, Dir: filepath.Join(dir, contentDirName)}, nil
}

// Clean removes the entire cache root.
func (s *Store) Clean() error {
	if err := os.RemoveAll(filepath.Join(s.root, domain.PackagesDirName)); err != nil {
		return zerr.Wrap(domain.ErrCacheWriteFailed, err.Error())
	}
	return nil
}

// packageDir returns the directory for one package version. The integrity
// hash participates in the name so re-published tarballs never collide with
// previously cached content. Copy instances share cached content, so the
// copy index never reaches the directory name.
func (s *Store) packageDir(nv domain.PackageNv, integrity string) string {
	suffix := strconv.FormatUint(xxhash.Sum64String(integrity), 16)
	return filepath.Join(s.root, domain.PackagesDirName, nv.Name, nv.Version+"_"+suffix)
}

func parseRecord(data []byte) (integrity, contentHash string, ok bool) {
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 || lines[0] == "" || lines[1] == "" {
		return "", "", false
	}
	return lines[0], lines[1], true
}

// extractTarball unpacks a gzipped npm tarball into dest, stripping the
// single top-level directory npm tarballs carry (usually "package/").
func extractTarball(tarball []byte, dest string) error {
	gz, err := gzip.NewReader(bytes.NewReader(tarball))
	if err != nil {
		return zerr.Wrap(domain.ErrTarballExtractFailed, err.Error())
	}
	defer gz.Close()

	if err := os.MkdirAll(dest, domain.DirPerm); err != nil {
		return zerr.Wrap(domain.ErrTarballExtractFailed, err.Error())
	}

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return zerr.Wrap(domain.ErrTarballExtractFailed, err.Error())
		}

		name := stripTopDir(hdr.Name)
		if name == "" {
			continue
		}
		target := filepath.Join(dest, filepath.FromSlash(name))
		if !strings.HasPrefix(target, dest+string(os.PathSeparator)) {
			return zerr.With(zerr.Wrap(domain.ErrTarballExtractFailed, "entry escapes the package root"), "entry", hdr.Name)
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, domain.DirPerm); err != nil {
				return zerr.Wrap(domain.ErrTarballExtractFailed, err.Error())
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
				return zerr.Wrap(domain.ErrTarballExtractFailed, err.Error())
			}
			if err := writeEntry(target, tr, hdr.FileInfo().Mode().Perm()); err != nil {
				return err
			}
		default:
			// Symlinks and devices do not occur in npm tarballs, skip them.
			continue
		}
	}
}

func writeEntry(target string, r io.Reader, perm fs.FileMode) error {
	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm|0o200) //nolint:gosec // target is validated against the extraction root
	if err != nil {
		return zerr.Wrap(domain.ErrTarballExtractFailed, err.Error())
	}
	if _, err := io.Copy(f, r); err != nil { //nolint:gosec // tarball size is bounded by the registry response
		f.Close()
		return zerr.Wrap(domain.ErrTarballExtractFailed, err.Error())
	}
	if err := f.Close(); err != nil {
		return zerr.Wrap(domain.ErrTarballExtractFailed, err.Error())
	}
	return nil
}

func stripTopDir(name string) string {
	name = strings.TrimPrefix(path.Clean(name), "./")
	if i := strings.IndexByte(name, '/'); i >= 0 {
		return name[i+1:]
	}
	return ""
}

// hashTree computes a stable digest over every regular file in the tree,
// covering relative paths and contents.
func hashTree(root string) (string, error) {
	type entry struct {
		rel  string
		path string
	}
	var entries []entry
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			rel, relErr := filepath.Rel(root, p)
			if relErr != nil {
				return relErr
			}
			entries = append(entries, entry{rel: filepath.ToSlash(rel), path: p})
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].rel < entries[j].rel })

	h := sha512.New()
	for _, e := range entries {
		h.Write([]byte(e.rel))
		h.Write([]byte{0})
		f, err := os.Open(e.path) //nolint:gosec // path comes from walking the cache tree
		if err != nil {
			return "", err
		}
		if _, err := io.Copy(h, f); err != nil {
			f.Close()
			return "", err
		}
		f.Close()
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
