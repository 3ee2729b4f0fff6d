package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rove/internal/adapters/config"
	"go.trai.ch/rove/internal/core/domain"
	"go.trai.ch/rove/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
	return config.NewLoader(logger)
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), 0o644))
}

func TestLoader_LoadFullConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
entry: src/main.ts
lock: deps.lock
run:
  command: [tsx, --trace-warnings]
watch:
  paths: [assets]
  debounce: 350ms
registry:
  url: https://registry.example.com
  cache_dir: /tmp/rove-cache
`)

	cfg, err := newLoader(t).Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Root)
	assert.Equal(t, filepath.Join(dir, domain.ConfigFileName), cfg.ConfigPath)
	assert.Equal(t, "src/main.ts", cfg.Entry)
	assert.Equal(t, []string{"tsx", "--trace-warnings"}, cfg.Command)
	assert.Equal(t, []string{"assets"}, cfg.WatchPaths)
	assert.Equal(t, 350*time.Millisecond, cfg.DebounceWindow)
	assert.Equal(t, "https://registry.example.com", cfg.RegistryURL)
	assert.Equal(t, "/tmp/rove-cache", cfg.CacheDir)
	assert.Equal(t, filepath.Join(dir, "deps.lock"), cfg.LockfilePath)
}

func TestLoader_MissingConfigYieldsDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := newLoader(t).Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Root)
	assert.Empty(t, cfg.ConfigPath)
	assert.Equal(t, []string{"node"}, cfg.Command)
	assert.Equal(t, domain.DefaultRegistryURL, cfg.RegistryURL)
	assert.Equal(t, filepath.Join(dir, domain.LockfileName), cfg.LockfilePath)
	assert.Equal(t, domain.DefaultDebounceWindow, cfg.DebounceWindow)
}

func TestLoader_DiscoverRootWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "entry: main.ts\n")
	nested := filepath.Join(root, "src", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, err := newLoader(t).DiscoverRoot(nested)
	require.NoError(t, err)
	assert.Equal(t, root, found)

	cfg, err := newLoader(t).Load(nested)
	require.NoError(t, err)
	assert.Equal(t, root, cfg.Root)
	assert.Equal(t, "main.ts", cfg.Entry)
}

func TestLoader_DiscoverRootNotFound(t *testing.T) {
	_, err := newLoader(t).DiscoverRoot(t.TempDir())
	require.ErrorIs(t, err, domain.ErrConfigNotFound)
}

func TestLoader_RejectsMalformedYaml(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "entry: [unclosed\n")

	_, err := newLoader(t).Load(dir)
	require.ErrorIs(t, err, domain.ErrConfigParseFailed)
}

func TestLoader_RejectsBadDebounce(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "watch:\n  debounce: sometimes\n")

	_, err := newLoader(t).Load(dir)
	require.ErrorIs(t, err, domain.ErrConfigParseFailed)
}

func TestLoader_AbsoluteLockPathKept(t *testing.T) {
	dir := t.TempDir()
	lock := filepath.Join(t.TempDir(), "custom.lock")
	writeConfig(t, dir, "lock: "+lock+"\n")

	cfg, err := newLoader(t).Load(dir)
	require.NoError(t, err)
	assert.Equal(t, lock, cfg.LockfilePath)
}
