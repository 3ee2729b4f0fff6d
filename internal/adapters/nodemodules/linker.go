// Package nodemodules materializes a local node_modules directory from the
// package cache using a symlinked virtual store.
package nodemodules

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/rove/internal/core/domain"
	"go.trai.ch/rove/internal/core/ports"
	"go.trai.ch/zerr"
)

// virtualStoreDirName holds one folder per package instance. Top-level
// node_modules entries are symlinks into it, so dependency isolation follows
// the snapshot's edges rather than hoisting.
const virtualStoreDirName = ".rove"

// Linker materializes node_modules trees.
type Linker struct {
	store  ports.PackageStore
	logger ports.Logger
}

// NewLinker creates a linker backed by the given package store.
func NewLinker(store ports.PackageStore, logger ports.Logger) *Linker {
	return &Linker{store: store, logger: logger}
}

// Materialize builds <root>/node_modules from the snapshot. Every reachable
// package gets a folder in the virtual store named after its identity, with
// its content symlinked from the cache and its dependencies symlinked
// between store folders. Root specifier pins get top-level links.
func (l *Linker) Materialize(root string, snapshot *domain.Snapshot) error {
	nmDir := filepath.Join(root, domain.NodeModulesDirName)
	storeDir := filepath.Join(nmDir, virtualStoreDirName)
	if err := os.MkdirAll(storeDir, domain.DirPerm); err != nil {
		return zerr.Wrap(domain.ErrNodeModulesSetupFailed, err.Error())
	}

	var linkErr error
	snapshot.Walk(func(entry domain.SnapshotEntry) bool {
		if err := l.linkInstance(storeDir, entry); err != nil {
			linkErr = err
			return false
		}
		return true
	})
	if linkErr != nil {
		return linkErr
	}

	for _, nv := range snapshot.Specifiers {
		target := filepath.Join(storeDir, instanceDirName(nv), domain.NodeModulesDirName, filepath.FromSlash(nv.Name))
		link := filepath.Join(nmDir, filepath.FromSlash(nv.Name))
		if err := replaceLink(target, link); err != nil {
			return err
		}
	}
	return nil
}

// linkInstance creates the virtual store folder for one package instance.
func (l *Linker) linkInstance(storeDir string, entry domain.SnapshotEntry) error {
	cached, err := l.store.Get(entry.Nv.WithCopyIndex(0), entry.Integrity)
	if err != nil {
		return err
	}
	if cached == nil {
		return zerr.With(zerr.Wrap(domain.ErrNotFoundInCache, "package missing from the local cache"), "package", entry.Nv.String())
	}

	instanceNm := filepath.Join(storeDir, instanceDirName(entry.Nv), domain.NodeModulesDirName)

	self := filepath.Join(instanceNm, filepath.FromSlash(entry.Nv.Name))
	if err := replaceLink(cached.Dir, self); err != nil {
		return err
	}

	for name, dep := range entry.Dependencies {
		target := filepath.Join(storeDir, instanceDirName(dep), domain.NodeModulesDirName, filepath.FromSlash(dep.Name))
		link := filepath.Join(instanceNm, filepath.FromSlash(name))
		if err := replaceLink(target, link); err != nil {
			return err
		}
	}
	return nil
}

// instanceDirName flattens an identity into a single folder name. Scope
// separators are not legal in one path segment.
func instanceDirName(nv domain.PackageNv) string {
	return strings.ReplaceAll(nv.String(), "/", "+")
}

// replaceLink points link at target, replacing whatever was there before.
func replaceLink(target, link string) error {
	if existing, err := os.Readlink(link); err == nil && existing == target {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(link), domain.DirPerm); err != nil {
		return zerr.Wrap(domain.ErrNodeModulesSetupFailed, err.Error())
	}
	if err := os.RemoveAll(link); err != nil {
		return zerr.Wrap(domain.ErrNodeModulesSetupFailed, err.Error())
	}
	if err := os.Symlink(target, link); err != nil {
		return zerr.Wrap(domain.ErrNodeModulesSetupFailed, err.Error())
	}
	return nil
}
