// Package resolver reconciles requested npm specifiers against the lockfile,
// the package cache, and the registry, producing one consistent snapshot.
package resolver

import (
	"context"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/rove/internal/core/domain"
	"go.trai.ch/rove/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Options configures one resolution pass.
type Options struct {
	// Mode selects how existing lockfile and cache state is treated.
	Mode domain.ResolveMode

	// LockfilePath is where the snapshot is read from and written back to.
	LockfilePath string

	// Recreate discards the existing lockfile, even a corrupt one, and
	// rebuilds it from scratch.
	Recreate bool
}

// Resolver owns resolution passes. Exactly one pass runs at a time per
// process; the snapshot is read once, mutated in memory, and written back
// atomically on success.
type Resolver struct {
	registry    ports.RegistryClient
	store       ports.PackageStore
	lockfile    ports.LockfileStore
	logger      ports.Logger
	tracer      ports.Tracer
	parallelism int
}

// New creates a resolver.
func New(
	registry ports.RegistryClient,
	store ports.PackageStore,
	lockfile ports.LockfileStore,
	logger ports.Logger,
	tracer ports.Tracer,
	parallelism int,
) *Resolver {
	if parallelism <= 0 {
		parallelism = domain.DefaultDownloadParallelism
	}
	return &Resolver{
		registry:    registry,
		store:       store,
		lockfile:    lockfile,
		logger:      logger,
		tracer:      tracer,
		parallelism: parallelism,
	}
}

// Resolve runs one pass over the given specifier texts. On success every
// specifier is pinned, every reachable package has a cache entry, and the
// lockfile reflects the result.
func (r *Resolver) Resolve(ctx context.Context, specifiers []string, opts Options) (*domain.Snapshot, error) {
	ctx, span := r.tracer.Start(ctx, "resolve", ports.WithAttribute("specifiers", len(specifiers)))
	defer span.End()

	snapshot := domain.NewSnapshot()
	if !opts.Recreate {
		read, err := r.lockfile.Read(opts.LockfilePath)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		if read != nil {
			snapshot = read
		}
	}

	// All mutation happens on a copy so a failed pass leaves the lockfile's
	// in-memory view untouched.
	work := snapshot.Clone()
	if opts.Mode == domain.ModeReload {
		work.Specifiers = make(map[string]domain.PackageNv)
		work.Packages = make(map[domain.PackageNv]domain.SnapshotEntry)
	}

	pass := &resolutionPass{
		resolver: r,
		mode:     opts.Mode,
		work:     work,
		metadata: make(map[string]*domain.RegistryMetadata),
		docs:     make(map[domain.PackageNv]*domain.RegistryVersion),
	}

	for _, text := range specifiers {
		if err := pass.resolveSpecifier(ctx, text); err != nil {
			span.RecordError(err)
			return nil, err
		}
	}

	pass.splitPeerCopies(ctx)

	if err := work.Verify(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := r.ensureCached(ctx, pass); err != nil {
		span.RecordError(err)
		return nil, err
	}

	// A cached-only pass is a verification: it must not touch the lockfile.
	if opts.Mode != domain.ModeCachedOnly {
		if err := r.lockfile.Write(opts.LockfilePath, work); err != nil {
			span.RecordError(err)
			return nil, err
		}
	}

	return work, nil
}

// resolutionPass carries the per-pass state: the working snapshot, the
// registry documents fetched so far, and the version docs of every package
// resolved fresh this pass (lockfile-reused packages have none).
type resolutionPass struct {
	resolver *Resolver
	mode     domain.ResolveMode
	work     *domain.Snapshot
	metadata map[string]*domain.RegistryMetadata
	docs     map[domain.PackageNv]*domain.RegistryVersion
}

// resolveSpecifier pins one specifier text. Pins already present in the
// lockfile are trusted as-is.
func (p *resolutionPass) resolveSpecifier(ctx context.Context, text string) error {
	if _, ok := p.work.Specifiers[text]; ok {
		return nil
	}

	spec, err := domain.ParseNpmSpecifier(text)
	if err != nil {
		return err
	}

	nv, err := p.resolvePackage(ctx, spec.Name, spec.Range)
	if err != nil {
		return zerr.With(err, "specifier", text)
	}
	p.work.Specifiers[text] = nv
	return nil
}

// resolvePackage resolves a name and range to an identity with a complete
// snapshot entry, descending into the dependency closure.
func (p *resolutionPass) resolvePackage(ctx context.Context, name, rng string) (domain.PackageNv, error) {
	// Prefer an already-resolved instance that satisfies the range. This is
	// what keeps repeat resolutions stable without touching the network.
	if nv, ok := p.findExisting(name, rng); ok {
		return nv, nil
	}

	meta, err := p.fetchMetadata(ctx, name)
	if err != nil {
		return domain.PackageNv{}, err
	}
	version, err := pickVersion(meta, rng)
	if err != nil {
		return domain.PackageNv{}, err
	}

	nv := domain.PackageNv{Name: name, Version: version}
	if _, ok := p.work.Packages[nv]; ok {
		return nv, nil
	}

	doc, ok := meta.Versions[version]
	if !ok {
		err := zerr.With(zerr.Wrap(domain.ErrNoMatchingVersion, "version document missing from registry metadata"), "package", name)
		return domain.PackageNv{}, zerr.With(err, "version", version)
	}
	p.docs[nv] = &doc

	// Insert the entry before descending so dependency cycles terminate.
	entry := domain.SnapshotEntry{
		Nv:           nv,
		Integrity:    doc.Dist.Integrity,
		Dependencies: make(map[string]domain.PackageNv, len(doc.Dependencies)),
	}
	p.work.Packages[nv] = entry

	for _, depName := range sortedKeys(doc.Dependencies) {
		depNv, err := p.resolvePackage(ctx, depName, doc.Dependencies[depName])
		if err != nil {
			return domain.PackageNv{}, zerr.With(err, "required_by", nv.String())
		}
		entry.Dependencies[depName] = depNv
	}
	for _, optName := range sortedKeys(doc.OptionalDependencies) {
		depNv, err := p.resolvePackage(ctx, optName, doc.OptionalDependencies[optName])
		if err != nil {
			p.resolver.logger.Warn("skipping unresolvable optional dependency",
				"package", optName, "required_by", nv.String(), "error", err)
			continue
		}
		entry.Dependencies[optName] = depNv
	}
	p.work.Packages[nv] = entry

	return nv, nil
}

// findExisting returns the highest already-resolved canonical instance of
// name that satisfies rng.
func (p *resolutionPass) findExisting(name, rng string) (domain.PackageNv, bool) {
	constraint := parseConstraint(rng)

	var best domain.PackageNv
	var bestVersion *semver.Version
	for nv := range p.work.Packages {
		if nv.Name != name || nv.CopyIndex != 0 {
			continue
		}
		v, err := semver.NewVersion(nv.Version)
		if err != nil {
			continue
		}
		if constraint != nil && !constraint.Check(v) {
			continue
		}
		if constraint == nil && rng != "" && rng != nv.Version {
			// A dist-tag or unparsable range only matches an exact pin.
			continue
		}
		if bestVersion == nil || v.GreaterThan(bestVersion) {
			best, bestVersion = nv, v
		}
	}
	return best, bestVersion != nil
}

// fetchMetadata returns the registry document for name, memoized per pass.
// Cached-only passes never reach the registry.
func (p *resolutionPass) fetchMetadata(ctx context.Context, name string) (*domain.RegistryMetadata, error) {
	if meta, ok := p.metadata[name]; ok {
		return meta, nil
	}
	if p.mode == domain.ModeCachedOnly {
		return nil, zerr.With(zerr.Wrap(domain.ErrNotFoundInCache, "package is not pinned and cached-only mode forbids the registry"), "package", name)
	}
	meta, err := p.resolver.registry.Metadata(ctx, name)
	if err != nil {
		return nil, err
	}
	p.metadata[name] = meta
	return meta, nil
}

// splitPeerCopies materializes peer dependency bindings. Each dependent of a
// package with peers resolves those peers from its own context; dependents
// whose bindings differ from the first observed binding get a numbered copy
// of the package wired to their peers.
func (p *resolutionPass) splitPeerCopies(ctx context.Context) {
	for _, nv := range sortedIdentities(p.docs) {
		doc := p.docs[nv]
		if len(doc.PeerDependencies) == 0 {
			continue
		}
		p.splitOne(ctx, nv, doc)
	}
}

type peerParent struct {
	// exactly one of pkg/specifier is set
	pkg       *domain.PackageNv
	specifier string
	depName   string
}

func (p *resolutionPass) splitOne(ctx context.Context, nv domain.PackageNv, doc *domain.RegistryVersion) {
	parents := p.parentsOf(nv)
	if len(parents) == 0 {
		return
	}

	type group struct {
		binding string
		peers   map[string]domain.PackageNv
		parents []peerParent
	}
	groups := make(map[string]*group)
	for _, parent := range parents {
		peers := p.resolvePeers(ctx, parent, doc.PeerDependencies)
		binding := bindingKey(peers)
		g, ok := groups[binding]
		if !ok {
			g = &group{binding: binding, peers: peers}
			groups[binding] = g
		}
		g.parents = append(g.parents, parent)
	}

	bindings := make([]string, 0, len(groups))
	for binding := range groups {
		bindings = append(bindings, binding)
	}
	sort.Strings(bindings)

	// Pristine copy taken before any group adds its peer edges.
	base := p.work.Packages[nv].Clone()
	for i, binding := range bindings {
		g := groups[binding]

		target := nv
		entry := p.work.Packages[nv]
		if i > 0 {
			target = nv.WithCopyIndex(i)
			entry = base.Clone()
			entry.Nv = target
		}
		for name, peer := range g.peers {
			entry.Dependencies[name] = peer
		}
		p.work.Packages[target] = entry

		if i == 0 {
			continue
		}
		for _, parent := range g.parents {
			if parent.pkg != nil {
				parentEntry := p.work.Packages[*parent.pkg]
				parentEntry.Dependencies[parent.depName] = target
				p.work.Packages[*parent.pkg] = parentEntry
			} else {
				p.work.Specifiers[parent.specifier] = target
			}
		}
	}
}

// parentsOf finds every dependent of nv: packages with a dependency edge to
// it and root specifiers pinned to it.
func (p *resolutionPass) parentsOf(nv domain.PackageNv) []peerParent {
	var parents []peerParent
	for owner, entry := range p.work.Packages {
		if owner == nv {
			continue
		}
		for depName, dep := range entry.Dependencies {
			if dep == nv {
				o := owner
				parents = append(parents, peerParent{pkg: &o, depName: depName})
			}
		}
	}
	for text, pinned := range p.work.Specifiers {
		if pinned == nv {
			parents = append(parents, peerParent{specifier: text})
		}
	}

	sort.Slice(parents, func(i, j int) bool {
		return parentKey(parents[i]) < parentKey(parents[j])
	})
	return parents
}

func parentKey(parent peerParent) string {
	if parent.pkg != nil {
		return "pkg:" + parent.pkg.String() + ":" + parent.depName
	}
	return "spec:" + parent.specifier
}

// resolvePeers resolves peer ranges from a parent's context: the parent's
// own dependencies first, then the root pins, then the registry.
func (p *resolutionPass) resolvePeers(ctx context.Context, parent peerParent, peers map[string]string) map[string]domain.PackageNv {
	resolved := make(map[string]domain.PackageNv, len(peers))
	for _, peerName := range sortedKeys(peers) {
		rng := peers[peerName]

		if parent.pkg != nil {
			if sibling, ok := p.work.Packages[*parent.pkg].Dependencies[peerName]; ok {
				resolved[peerName] = sibling
				continue
			}
		}
		if nv, ok := p.rootPin(peerName); ok {
			resolved[peerName] = nv
			continue
		}
		nv, err := p.resolvePackage(ctx, peerName, rng)
		if err != nil {
			p.resolver.logger.Warn("skipping unresolvable peer dependency",
				"package", peerName, "range", rng, "error", err)
			continue
		}
		resolved[peerName] = nv
	}
	return resolved
}

func (p *resolutionPass) rootPin(name string) (domain.PackageNv, bool) {
	for _, nv := range p.work.Specifiers {
		if nv.Name == name {
			return nv, true
		}
	}
	return domain.PackageNv{}, false
}

// bindingKey is the canonical text of one peer binding. Identical bindings
// share one package instance.
func bindingKey(peers map[string]domain.PackageNv) string {
	parts := make([]string, 0, len(peers))
	for name, nv := range peers {
		parts = append(parts, name+"="+nv.String())
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

// ensureCached guarantees every reachable package has a verified cache
// entry, downloading in parallel what is missing.
func (r *Resolver) ensureCached(ctx context.Context, pass *resolutionPass) error {
	var missing []domain.SnapshotEntry
	seen := make(map[string]bool)
	var checkErr error
	pass.work.Walk(func(entry domain.SnapshotEntry) bool {
		// Copies share the canonical instance's tarball.
		key := entry.Nv.WithCopyIndex(0).String()
		if seen[key] {
			return true
		}
		seen[key] = true

		cached, err := r.store.Get(entry.Nv.WithCopyIndex(0), entry.Integrity)
		if err != nil {
			checkErr = err
			return false
		}
		if cached == nil {
			missing = append(missing, entry)
		}
		return true
	})
	if checkErr != nil {
		return checkErr
	}
	if len(missing) == 0 {
		return nil
	}

	if pass.mode == domain.ModeCachedOnly {
		nv := missing[0].Nv.WithCopyIndex(0)
		return zerr.With(zerr.Wrap(domain.ErrNotFoundInCache, "package missing from the local cache"), "package", nv.String())
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.parallelism)
	for _, entry := range missing {
		group.Go(func() error {
			return r.download(groupCtx, pass, entry)
		})
	}
	return group.Wait()
}

func (r *Resolver) download(ctx context.Context, pass *resolutionPass, entry domain.SnapshotEntry) error {
	nv := entry.Nv.WithCopyIndex(0)

	url := ""
	if doc, ok := pass.docs[nv]; ok {
		url = doc.Dist.Tarball
	}
	if url == "" {
		url = r.registry.TarballURL(nv.Name, nv.Version)
	}

	tarball, err := r.registry.Tarball(ctx, url)
	if err != nil {
		return zerr.With(err, "package", nv.String())
	}
	if err := verifyIntegrity(tarball, entry.Integrity); err != nil {
		return zerr.With(err, "package", nv.String())
	}
	if _, err := r.store.Put(nv, entry.Integrity, tarball); err != nil {
		return err
	}
	r.logger.Info("cached package", "package", nv.String())
	return nil
}

// pickVersion chooses the version a range resolves to: a dist-tag match, an
// exact published version, or the highest version satisfying the range.
func pickVersion(meta *domain.RegistryMetadata, rng string) (string, error) {
	if rng == "" {
		rng = "latest"
	}
	if version, ok := meta.DistTags[rng]; ok {
		return version, nil
	}
	if _, ok := meta.Versions[rng]; ok {
		return rng, nil
	}

	constraint, err := semver.NewConstraint(rng)
	if err != nil {
		wrapped := zerr.With(zerr.Wrap(domain.ErrInvalidVersionRange, err.Error()), "package", meta.Name)
		return "", zerr.With(wrapped, "range", rng)
	}

	var best *semver.Version
	for candidate := range meta.Versions {
		v, err := semver.NewVersion(candidate)
		if err != nil {
			continue
		}
		if constraint.Check(v) && (best == nil || v.GreaterThan(best)) {
			best = v
		}
	}
	if best == nil {
		err := zerr.With(zerr.Wrap(domain.ErrNoMatchingVersion, "no published version satisfies the range"), "package", meta.Name)
		return "", zerr.With(err, "range", rng)
	}
	return best.Original(), nil
}

func parseConstraint(rng string) *semver.Constraints {
	if rng == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(rng)
	if err != nil {
		return nil
	}
	return constraint
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedIdentities(m map[domain.PackageNv]*domain.RegistryVersion) []domain.PackageNv {
	ids := make([]domain.PackageNv, 0, len(m))
	for nv := range m {
		ids = append(ids, nv)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}
