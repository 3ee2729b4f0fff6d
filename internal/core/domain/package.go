package domain

import (
	"fmt"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// PackageNv uniquely identifies one resolved package instance. It is not a
// specifier: a specifier may resolve to different identities over time.
type PackageNv struct {
	// Name is the package name, possibly scoped (e.g., "@scope/pkg").
	Name string

	// Version is the exact resolved semantic version (e.g., "1.5.0").
	Version string

	// CopyIndex distinguishes secondary copies of the same name and version
	// created for incompatible peer-dependency bindings. Zero for the
	// canonical instance.
	CopyIndex int
}

// String renders the identity in lockfile form: "name@version", with a
// "_<n>" suffix for peer-binding copies.
func (nv PackageNv) String() string {
	if nv.CopyIndex > 0 {
		return fmt.Sprintf("%s@%s_%d", nv.Name, nv.Version, nv.CopyIndex)
	}
	return nv.Name + "@" + nv.Version
}

// WithCopyIndex returns the same name and version under a different copy index.
func (nv PackageNv) WithCopyIndex(index int) PackageNv {
	nv.CopyIndex = index
	return nv
}

// ParsePackageNv parses an identity string of the form "name@version" or
// "name@version_<n>". The separator is the last "@" so that scoped names
// ("@scope/pkg@1.0.0") parse correctly.
func ParsePackageNv(s string) (PackageNv, error) {
	at := strings.LastIndex(s, "@")
	if at <= 0 || at == len(s)-1 {
		return PackageNv{}, zerr.With(zerr.Wrap(ErrInvalidPackageNv, "missing version separator"), "text", s)
	}

	nv := PackageNv{Name: s[:at], Version: s[at+1:]}
	if under := strings.LastIndex(nv.Version, "_"); under > 0 {
		if index, err := strconv.Atoi(nv.Version[under+1:]); err == nil {
			nv.CopyIndex = index
			nv.Version = nv.Version[:under]
		}
	}

	if nv.Version == "" {
		return PackageNv{}, zerr.With(zerr.Wrap(ErrInvalidPackageNv, "empty version"), "text", s)
	}
	return nv, nil
}

// NpmSpecifier is a parsed textual package request as written in source,
// prior to resolution (e.g., "npm:chalk@5" or "cowsay").
type NpmSpecifier struct {
	// Name is the requested package name.
	Name string

	// Range is the requested version range, dist-tag, or exact pin.
	// Empty means "latest".
	Range string
}

// String renders the specifier in lockfile key form.
func (s NpmSpecifier) String() string {
	if s.Range == "" {
		return s.Name
	}
	return s.Name + "@" + s.Range
}

// ParseNpmSpecifier parses a specifier, tolerating an "npm:" scheme prefix.
func ParseNpmSpecifier(text string) (NpmSpecifier, error) {
	raw := strings.TrimPrefix(text, "npm:")
	if raw == "" {
		return NpmSpecifier{}, zerr.With(zerr.Wrap(ErrInvalidSpecifier, "empty specifier"), "text", text)
	}

	// The version separator is the last "@"; a leading "@" belongs to a scope.
	at := strings.LastIndex(raw, "@")
	if at <= 0 {
		return NpmSpecifier{Name: raw}, nil
	}
	name, rng := raw[:at], raw[at+1:]
	if name == "" || strings.HasSuffix(name, "/") {
		return NpmSpecifier{}, zerr.With(zerr.Wrap(ErrInvalidSpecifier, "missing package name"), "text", text)
	}
	return NpmSpecifier{Name: name, Range: rng}, nil
}

// SnapshotEntry is one resolved package in a lockfile snapshot.
type SnapshotEntry struct {
	// Nv identifies the package instance.
	Nv PackageNv

	// Integrity is the registry-advertised content hash of the tarball in
	// SRI form (e.g., "sha512-...").
	Integrity string

	// Dependencies maps dependency names to resolved identities. Cycles are
	// permitted; traversal must use a visited set.
	Dependencies map[string]PackageNv
}

// Clone returns a deep copy of the entry.
func (e SnapshotEntry) Clone() SnapshotEntry {
	deps := make(map[string]PackageNv, len(e.Dependencies))
	for name, nv := range e.Dependencies {
		deps[name] = nv
	}
	e.Dependencies = deps
	return e
}

// CacheEntry describes an extracted package folder in the on-disk cache.
// Content-addressed: never mutated after creation.
type CacheEntry struct {
	// Nv identifies the cached package.
	Nv PackageNv

	// Integrity is the hash the entry was stored under.
	Integrity string

	// Dir is the absolute path of the extracted package folder.
	Dir string
}
