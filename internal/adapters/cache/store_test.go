package cache_test

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rove/internal/adapters/cache"
	"go.trai.ch/rove/internal/core/domain"
	"go.trai.ch/rove/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func makeTarball(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, content := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name: "package/" + name,
			Mode: 0o644,
			Size: int64(len(content)),
		}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func newStore(t *testing.T) *cache.Store {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
	return cache.NewStore(t.TempDir(), logger)
}

func TestStore_PutThenGet(t *testing.T) {
	store := newStore(t)
	nv := domain.PackageNv{Name: "cowsay", Version: "1.5.0"}
	tarball := makeTarball(t, map[string]string{
		"package.json": `{"name":"cowsay"}`,
		"lib/index.js": "module.exports = moo\n",
	})

	entry, err := store.Put(nv, "sha512-abc", tarball)
	require.NoError(t, err)
	require.NotNil(t, entry)

	content, err := os.ReadFile(filepath.Join(entry.Dir, "lib", "index.js"))
	require.NoError(t, err)
	assert.Equal(t, "module.exports = moo\n", string(content))

	got, err := store.Get(nv, "sha512-abc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entry.Dir, got.Dir)
}

func TestStore_GetMissReturnsNil(t *testing.T) {
	store := newStore(t)

	got, err := store.Get(domain.PackageNv{Name: "cowsay", Version: "1.5.0"}, "sha512-abc")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_DifferentIntegrityIsDifferentEntry(t *testing.T) {
	store := newStore(t)
	nv := domain.PackageNv{Name: "cowsay", Version: "1.5.0"}
	tarball := makeTarball(t, map[string]string{"package.json": "{}"})

	_, err := store.Put(nv, "sha512-one", tarball)
	require.NoError(t, err)

	// A re-published tarball with a different hash does not collide.
	got, err := store.Get(nv, "sha512-two")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_TamperedContentIsAMiss(t *testing.T) {
	store := newStore(t)
	nv := domain.PackageNv{Name: "cowsay", Version: "1.5.0"}
	tarball := makeTarball(t, map[string]string{"lib/index.js": "original\n"})

	entry, err := store.Put(nv, "sha512-abc", tarball)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(entry.Dir, "lib", "index.js"), []byte("tampered\n"), 0o644))

	got, err := store.Get(nv, "sha512-abc")
	require.NoError(t, err)
	assert.Nil(t, got, "modified cache content must read as absent")
}

func TestStore_RejectsPathTraversal(t *testing.T) {
	store := newStore(t)
	nv := domain.PackageNv{Name: "evil", Version: "1.0.0"}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name: "package/../../../escape.txt",
		Mode: 0o644,
		Size: 4,
	}))
	_, err := io.WriteString(tw, "oops")
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())

	_, err = store.Put(nv, "sha512-abc", buf.Bytes())
	require.ErrorIs(t, err, domain.ErrTarballExtractFailed)
}

func TestStore_CleanRemovesEverything(t *testing.T) {
	store := newStore(t)
	nv := domain.PackageNv{Name: "cowsay", Version: "1.5.0"}
	_, err := store.Put(nv, "sha512-abc", makeTarball(t, map[string]string{"package.json": "{}"}))
	require.NoError(t, err)

	require.NoError(t, store.Clean())

	got, err := store.Get(nv, "sha512-abc")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_CopyInstancesShareContent(t *testing.T) {
	store := newStore(t)
	canonical := domain.PackageNv{Name: "form", Version: "1.0.0"}
	tarball := makeTarball(t, map[string]string{"package.json": "{}"})

	_, err := store.Put(canonical, "sha512-abc", tarball)
	require.NoError(t, err)

	// Peer-binding copies resolve to the same cached folder.
	got, err := store.Get(canonical.WithCopyIndex(1), "sha512-abc")
	require.NoError(t, err)
	require.NotNil(t, got)
}
