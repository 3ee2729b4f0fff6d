package modgraph

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/rove/internal/core/domain"
	"go.trai.ch/rove/internal/core/ports"
	"go.trai.ch/zerr"
)

// Import specifiers appear in three syntactic positions: static imports and
// re-exports with a from clause, side-effect imports, and dynamic import
// calls.
var (
	fromImportRe  = regexp.MustCompile(`(?m)^\s*(?:import|export)\s+[^'";]*?\bfrom\s*['"]([^'"]+)['"]`)
	bareImportRe  = regexp.MustCompile(`(?m)^\s*import\s*['"]([^'"]+)['"]`)
	dynamicCallRe = regexp.MustCompile(`\bimport\s*\(\s*['"]([^'"]+)['"]\s*\)`)
)

// candidateExtensions are probed in order when a relative specifier does not
// name an existing file directly.
var candidateExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".json"}

var _ ports.GraphBuilder = (*Builder)(nil)

// Builder implements ports.GraphBuilder with a text scan of the entry files
// and everything reachable from them through relative imports.
type Builder struct {
	logger ports.Logger
}

// NewBuilder creates a new graph builder.
func NewBuilder(logger ports.Logger) *Builder {
	return &Builder{logger: logger}
}

// Build scans from the given entry files. Relative specifiers are followed
// transitively, npm and bare specifiers are collected for the resolver, and
// remote URL specifiers are ignored.
func (b *Builder) Build(ctx context.Context, entries []string) (ports.ModuleGraph, error) {
	graph := newGraph()

	queue := make([]string, 0, len(entries))
	for _, entry := range entries {
		abs, err := filepath.Abs(entry)
		if err != nil {
			return nil, zerr.Wrap(domain.ErrGraphBuildFailed, err.Error())
		}
		if _, err := os.Stat(abs); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, zerr.With(zerr.Wrap(domain.ErrEntryNotFound, "entry module does not exist"), "entry", entry)
			}
			return nil, zerr.Wrap(domain.ErrGraphBuildFailed, err.Error())
		}
		queue = append(queue, abs)
	}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		file := queue[0]
		queue = queue[1:]
		if graph.localPaths[file] {
			continue
		}
		graph.localPaths[file] = true

		specifiers, err := b.scanFile(file)
		if err != nil {
			return nil, err
		}

		for _, spec := range specifiers {
			switch classify(spec) {
			case specifierNpm:
				graph.npmSpecifiers[strings.TrimPrefix(spec, "npm:")] = true
			case specifierLocal:
				resolved, ok := resolveLocal(filepath.Dir(file), spec)
				if !ok {
					b.logger.Warn("could not resolve local import", "specifier", spec, "from", file)
					continue
				}
				if !graph.localPaths[resolved] {
					queue = append(queue, resolved)
				}
			case specifierRemote:
				// Remote modules are recorded in the lockfile's remote section
				// when present, never scanned.
				continue
			}
		}
	}

	return graph, nil
}

func (b *Builder) scanFile(path string) ([]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is part of the user's module graph
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrGraphBuildFailed, err.Error()), "path", path)
	}

	var specifiers []string
	for _, re := range []*regexp.Regexp{fromImportRe, bareImportRe, dynamicCallRe} {
		for _, match := range re.FindAllSubmatch(data, -1) {
			specifiers = append(specifiers, string(match[1]))
		}
	}
	return specifiers, nil
}

type specifierKind uint8

const (
	specifierLocal specifierKind = iota
	specifierNpm
	specifierRemote
)

func classify(spec string) specifierKind {
	switch {
	case strings.HasPrefix(spec, "./"), strings.HasPrefix(spec, "../"), strings.HasPrefix(spec, "/"):
		return specifierLocal
	case strings.HasPrefix(spec, "http://"), strings.HasPrefix(spec, "https://"):
		return specifierRemote
	default:
		// npm: prefixed and bare specifiers both resolve against the registry.
		return specifierNpm
	}
}

// resolveLocal maps a relative specifier to an existing file, probing for
// known extensions and index files when the literal path does not exist.
func resolveLocal(baseDir, spec string) (string, bool) {
	target := spec
	if !filepath.IsAbs(target) {
		target = filepath.Join(baseDir, filepath.FromSlash(spec))
	}

	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		return target, true
	}
	for _, ext := range candidateExtensions {
		if info, err := os.Stat(target + ext); err == nil && !info.IsDir() {
			return target + ext, true
		}
	}
	for _, ext := range candidateExtensions {
		index := filepath.Join(target, "index"+ext)
		if info, err := os.Stat(index); err == nil && !info.IsDir() {
			return index, true
		}
	}
	return "", false
}
