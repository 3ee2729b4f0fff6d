package modgraph_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rove/internal/core/domain"
	"go.trai.ch/rove/internal/core/ports/mocks"
	"go.trai.ch/rove/internal/modgraph"
	"go.uber.org/mock/gomock"
)

func newBuilder(t *testing.T) *modgraph.Builder {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
	return modgraph.NewBuilder(logger)
}

// writeTree creates the given files under a fresh temp dir and returns it.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func build(t *testing.T, dir, entry string) (locals []string, npm []string) {
	t.Helper()
	graph, err := newBuilder(t).Build(context.Background(), []string{filepath.Join(dir, entry)})
	require.NoError(t, err)
	for _, p := range graph.LocalPaths() {
		rel, err := filepath.Rel(dir, p)
		require.NoError(t, err)
		locals = append(locals, filepath.ToSlash(rel))
	}
	return locals, graph.NpmSpecifiers()
}

func TestBuilder_FollowsRelativeImports(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"main.ts":      `import { greet } from "./lib/greet.ts";`,
		"lib/greet.ts": `export function greet() {}`,
	})

	locals, npm := build(t, dir, "main.ts")
	assert.Equal(t, []string{"lib/greet.ts", "main.ts"}, locals)
	assert.Empty(t, npm)
}

func TestBuilder_CollectsNpmSpecifiers(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"main.ts": `
import cowsay from "npm:cowsay@^1.5.0";
import express from "express";
import "./side.ts";
`,
		"side.ts": `import { z } from "npm:zod";`,
	})

	locals, npm := build(t, dir, "main.ts")
	assert.Equal(t, []string{"main.ts", "side.ts"}, locals)
	assert.Equal(t, []string{"cowsay@^1.5.0", "express", "zod"}, npm)
}

func TestBuilder_ResolvesExtensionlessImports(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"main.ts":        "import { a } from \"./util\";\nimport { b } from \"./pkg\";",
		"util.ts":        `export const a = 1;`,
		"pkg/index.js":   `export const b = 2;`,
		"unreachable.ts": `export const c = 3;`,
	})

	locals, _ := build(t, dir, "main.ts")
	assert.Equal(t, []string{"main.ts", "pkg/index.js", "util.ts"}, locals)
}

func TestBuilder_HandlesDynamicAndReExports(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"main.ts": `
export { helper } from "./helper.ts";
const mod = await import("./lazy.ts");
`,
		"helper.ts": `export const helper = 1;`,
		"lazy.ts":   `export default {};`,
	})

	locals, _ := build(t, dir, "main.ts")
	assert.Equal(t, []string{"helper.ts", "lazy.ts", "main.ts"}, locals)
}

func TestBuilder_IgnoresRemoteImports(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"main.ts": `import { h } from "https://esm.sh/preact@10.19.2";`,
	})

	locals, npm := build(t, dir, "main.ts")
	assert.Equal(t, []string{"main.ts"}, locals)
	assert.Empty(t, npm)
}

func TestBuilder_CyclicImportsTerminate(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.ts": `import { b } from "./b.ts";`,
		"b.ts": `import { a } from "./a.ts";`,
	})

	locals, _ := build(t, dir, "a.ts")
	assert.Equal(t, []string{"a.ts", "b.ts"}, locals)
}

func TestBuilder_UnresolvableLocalImportIsSkipped(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"main.ts": `import { gone } from "./missing.ts";`,
	})

	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn("could not resolve local import", gomock.Any()).Times(1)

	graph, err := modgraph.NewBuilder(logger).Build(context.Background(), []string{filepath.Join(dir, "main.ts")})
	require.NoError(t, err)
	assert.Len(t, graph.LocalPaths(), 1)
}

func TestBuilder_MissingEntryFails(t *testing.T) {
	_, err := newBuilder(t).Build(context.Background(), []string{filepath.Join(t.TempDir(), "absent.ts")})
	require.ErrorIs(t, err, domain.ErrEntryNotFound)
}

func TestBuilder_CancelledContext(t *testing.T) {
	dir := writeTree(t, map[string]string{"main.ts": ""})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newBuilder(t).Build(ctx, []string{filepath.Join(dir, "main.ts")})
	require.ErrorIs(t, err, context.Canceled)
}
