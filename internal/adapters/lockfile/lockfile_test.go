package lockfile_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rove/internal/adapters/lockfile"
	"go.trai.ch/rove/internal/core/domain"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...any) {}
func (noopLogger) Warn(string, ...any) {}
func (noopLogger) Error(error)         {}
func (noopLogger) SetOutput(io.Writer) {}

func sampleSnapshot() *domain.Snapshot {
	snapshot := domain.NewSnapshot()
	cowsay := domain.PackageNv{Name: "cowsay", Version: "1.5.0"}
	snapshot.Specifiers["cowsay"] = cowsay
	snapshot.Packages[cowsay] = domain.SnapshotEntry{
		Nv:           cowsay,
		Integrity:    "sha512-8Ipzr54Z8zROr/62C8H8F8kMH2178fIHCLNXoQwvVRLtYgGUrpkF/MM3Ld+v9wv+sBivicNOvlqTUCY+tmyY7A==",
		Dependencies: map[string]domain.PackageNv{},
	}
	return snapshot
}

func TestStore_WriteReadRoundTrip(t *testing.T) {
	store := lockfile.NewStore(noopLogger{})
	path := filepath.Join(t.TempDir(), "rove.lock")

	want := sampleSnapshot()
	require.NoError(t, store.Write(path, want))

	got, err := store.Read(path)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.Specifiers, got.Specifiers)
	assert.Equal(t, want.Packages, got.Packages)
}

func TestStore_Golden(t *testing.T) {
	store := lockfile.NewStore(noopLogger{})
	path := filepath.Join(t.TempDir(), "rove.lock")

	require.NoError(t, store.Write(path, sampleSnapshot()))
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "lockfile_v2", data)
}

func TestStore_ReadMissingReturnsNil(t *testing.T) {
	store := lockfile.NewStore(noopLogger{})

	got, err := store.Read(filepath.Join(t.TempDir(), "rove.lock"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_ReadRejectsMalformedJSON(t *testing.T) {
	store := lockfile.NewStore(noopLogger{})
	path := filepath.Join(t.TempDir(), "rove.lock")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := store.Read(path)
	require.ErrorIs(t, err, domain.ErrCorruptLockfile)
}

func TestStore_ReadRejectsUnknownVersion(t *testing.T) {
	store := lockfile.NewStore(noopLogger{})
	path := filepath.Join(t.TempDir(), "rove.lock")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"9","remote":{}}`), 0o644))

	_, err := store.Read(path)
	require.ErrorIs(t, err, domain.ErrCorruptLockfile)
}

func TestStore_ReadRejectsDanglingReference(t *testing.T) {
	store := lockfile.NewStore(noopLogger{})
	path := filepath.Join(t.TempDir(), "rove.lock")

	content := `{
  "version": "2",
  "remote": {},
  "npm": {
    "specifiers": {"cowsay": "cowsay@1.5.0"},
    "packages": {}
  }
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := store.Read(path)
	require.ErrorIs(t, err, domain.ErrCorruptLockfile)
}

func TestStore_UnchangedWriteLeavesFileUntouched(t *testing.T) {
	store := lockfile.NewStore(noopLogger{})
	path := filepath.Join(t.TempDir(), "rove.lock")

	require.NoError(t, store.Write(path, sampleSnapshot()))
	before, err := os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, store.Write(path, sampleSnapshot()))
	after, err := os.Stat(path)
	require.NoError(t, err)

	assert.Equal(t, before.ModTime(), after.ModTime())
}

func TestStore_OutputIsDeterministic(t *testing.T) {
	store := lockfile.NewStore(noopLogger{})
	dir := t.TempDir()

	// Two snapshots built in different insertion orders.
	first := domain.NewSnapshot()
	second := domain.NewSnapshot()
	nvs := []domain.PackageNv{
		{Name: "a", Version: "1.0.0"},
		{Name: "b", Version: "2.0.0"},
		{Name: "c", Version: "3.0.0"},
	}
	for _, nv := range nvs {
		first.Specifiers[nv.Name] = nv
		first.Packages[nv] = domain.SnapshotEntry{Nv: nv, Integrity: "sha512-x", Dependencies: map[string]domain.PackageNv{}}
	}
	for i := len(nvs) - 1; i >= 0; i-- {
		nv := nvs[i]
		second.Specifiers[nv.Name] = nv
		second.Packages[nv] = domain.SnapshotEntry{Nv: nv, Integrity: "sha512-x", Dependencies: map[string]domain.PackageNv{}}
	}

	pathA := filepath.Join(dir, "a.lock")
	pathB := filepath.Join(dir, "b.lock")
	require.NoError(t, store.Write(pathA, first))
	require.NoError(t, store.Write(pathB, second))

	bytesA, err := os.ReadFile(pathA)
	require.NoError(t, err)
	bytesB, err := os.ReadFile(pathB)
	require.NoError(t, err)
	assert.Equal(t, bytesA, bytesB)
}
