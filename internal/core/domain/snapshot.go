package domain

import (
	"slices"

	"go.trai.ch/zerr"
)

// Snapshot is one authoritative dependency snapshot reconciled from the
// lockfile, the requested specifiers, and the cache/registry.
//
// It is read from disk at resolution start, mutated in memory by exactly one
// resolution pass, and written back atomically on success.
type Snapshot struct {
	// Specifiers maps specifier text to the identity it resolved to.
	Specifiers map[string]PackageNv

	// Packages maps identities to their resolved entries. Every identity
	// referenced as a dependency value must have an entry here, else the
	// snapshot is corrupt.
	Packages map[PackageNv]SnapshotEntry

	// Remote carries non-npm remote module hashes from the lockfile. Opaque
	// here, preserved byte for byte on rewrite.
	Remote map[string]string
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Specifiers: make(map[string]PackageNv),
		Packages:   make(map[PackageNv]SnapshotEntry),
		Remote:     make(map[string]string),
	}
}

// Clone returns a deep copy, so a resolution pass can mutate freely and throw
// the copy away on failure.
func (s *Snapshot) Clone() *Snapshot {
	clone := &Snapshot{
		Specifiers: make(map[string]PackageNv, len(s.Specifiers)),
		Packages:   make(map[PackageNv]SnapshotEntry, len(s.Packages)),
		Remote:     make(map[string]string, len(s.Remote)),
	}
	for text, nv := range s.Specifiers {
		clone.Specifiers[text] = nv
	}
	for nv, entry := range s.Packages {
		clone.Packages[nv] = entry.Clone()
	}
	for url, hash := range s.Remote {
		clone.Remote[url] = hash
	}
	return clone
}

// Verify checks referential integrity: every identity referenced by a
// specifier or a dependency edge must have a package entry.
func (s *Snapshot) Verify() error {
	for text, nv := range s.Specifiers {
		if _, ok := s.Packages[nv]; !ok {
			err := zerr.Wrap(ErrCorruptLockfile, "could not find referenced package in the list of packages")
			err = zerr.With(err, "package", nv.String())
			return zerr.With(err, "specifier", text)
		}
	}
	for from, entry := range s.Packages {
		for name, nv := range entry.Dependencies {
			if _, ok := s.Packages[nv]; !ok {
				err := zerr.Wrap(ErrCorruptLockfile, "could not find referenced package in the list of packages")
				err = zerr.With(err, "package", nv.String())
				err = zerr.With(err, "dependency", name)
				return zerr.With(err, "required_by", from.String())
			}
		}
	}
	return nil
}

// Walk visits every package reachable from the snapshot's specifiers in
// breadth-first order. Traversal uses a visited set so dependency cycles
// terminate. Specifiers and dependency edges are walked in sorted order, so
// the visit sequence is deterministic for a given snapshot.
func (s *Snapshot) Walk(visit func(entry SnapshotEntry) bool) {
	texts := make([]string, 0, len(s.Specifiers))
	for text := range s.Specifiers {
		texts = append(texts, text)
	}
	slices.Sort(texts)

	queue := make([]PackageNv, 0, len(s.Specifiers))
	visited := make(map[PackageNv]bool, len(s.Packages))
	for _, text := range texts {
		nv := s.Specifiers[text]
		if !visited[nv] {
			visited[nv] = true
			queue = append(queue, nv)
		}
	}

	for len(queue) > 0 {
		nv := queue[0]
		queue = queue[1:]

		entry, ok := s.Packages[nv]
		if !ok {
			continue
		}
		if !visit(entry) {
			return
		}

		names := make([]string, 0, len(entry.Dependencies))
		for name := range entry.Dependencies {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			dep := entry.Dependencies[name]
			if !visited[dep] {
				visited[dep] = true
				queue = append(queue, dep)
			}
		}
	}
}

// ResolveMode controls how a resolution pass treats existing state.
type ResolveMode uint8

const (
	// ModeDefault trusts the lockfile and the cache, downloading only what
	// is missing.
	ModeDefault ResolveMode = iota

	// ModeCachedOnly forbids network access, failing instead of downloading
	// on a cache miss.
	ModeCachedOnly

	// ModeReload discards existing specifier pins and re-resolves against
	// the registry.
	ModeReload
)

// String returns the mode's flag-facing name.
func (m ResolveMode) String() string {
	switch m {
	case ModeCachedOnly:
		return "cached-only"
	case ModeReload:
		return "reload"
	default:
		return "default"
	}
}
