package domain

// RegistryDist describes where and how to fetch one published version.
type RegistryDist struct {
	// Tarball is the download URL for the package archive.
	Tarball string `json:"tarball"`

	// Integrity is the SRI hash of the archive (e.g., "sha512-...").
	Integrity string `json:"integrity"`
}

// RegistryVersion is the registry metadata for one published version.
type RegistryVersion struct {
	Version string       `json:"version"`
	Dist    RegistryDist `json:"dist"`

	// Dependencies maps dependency names to version ranges.
	Dependencies map[string]string `json:"dependencies"`

	// PeerDependencies maps peer names to version ranges. Peers are resolved
	// by the consumer's context, not by this package.
	PeerDependencies map[string]string `json:"peerDependencies"`

	// OptionalDependencies maps optional names to version ranges. Failures
	// resolving these are recorded and skipped, not propagated.
	OptionalDependencies map[string]string `json:"optionalDependencies"`
}

// RegistryMetadata is the full registry document for one package name.
type RegistryMetadata struct {
	Name string `json:"name"`

	// DistTags maps tag names ("latest", "next") to versions.
	DistTags map[string]string `json:"dist-tags"`

	// Versions maps version strings to their metadata.
	Versions map[string]RegistryVersion `json:"versions"`
}
