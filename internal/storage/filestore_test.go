package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/richat-staffing/internal/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var at = time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)

func TestFileName(t *testing.T) {
	assert.Equal(t, "standardized_cv_42_20240305143000.pdf", FileName("42", at))
}

func TestFileStore_SaveAndLatest(t *testing.T) {
	s := NewFileStoreFs(afero.NewMemMapFs(), "/data")

	first, err := s.Save("42", []byte("%PDF-1.3 first"), at)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/data", Dir, "standardized_cv_42_20240305143000.pdf"), first)

	second, err := s.Save("42", []byte("%PDF-1.3 second"), at.Add(time.Hour))
	require.NoError(t, err)
	_, err = s.Save("42_1", []byte("%PDF-1.3 other"), at.Add(48*time.Hour))
	require.NoError(t, err)
	_, err = s.Save("420", []byte("%PDF-1.3 other"), at.Add(48*time.Hour))
	require.NoError(t, err)

	latest, err := s.Latest("42")
	require.NoError(t, err)
	assert.Equal(t, second, latest)

	data, err := s.Open(latest)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3 second", string(data))
}

func TestFileStore_SaveConvertsToUTC(t *testing.T) {
	s := NewFileStoreFs(afero.NewMemMapFs(), "root")
	local := at.In(time.FixedZone("GMT+1", 3600))

	path, err := s.Save("7", []byte("x"), local)
	require.NoError(t, err)
	assert.Equal(t, "standardized_cv_7_20240305143000.pdf", filepath.Base(path))
}

func TestFileStore_LeavesNoTemporaryFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewFileStoreFs(fs, "/data")
	_, err := s.Save("42", []byte("pdf"), at)
	require.NoError(t, err)

	entries, err := afero.ReadDir(fs, filepath.Join("/data", Dir))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "standardized_cv_42_20240305143000.pdf", entries[0].Name())
}

func TestFileStore_LatestNotFound(t *testing.T) {
	s := NewFileStoreFs(afero.NewMemMapFs(), "/data")

	_, err := s.Latest("42")
	assert.Equal(t, types.CodeNotFound, types.CodeOf(err))

	_, err = s.Save("43", []byte("pdf"), at)
	require.NoError(t, err)
	_, err = s.Latest("42")
	assert.Equal(t, types.CodeNotFound, types.CodeOf(err))
}

func TestFileStore_RejectsUnsafeIDs(t *testing.T) {
	s := NewFileStoreFs(afero.NewMemMapFs(), "/data")
	for _, id := range []string{"", "  ", "../etc", "a/b", `a\b`} {
		_, err := s.Save(id, []byte("pdf"), at)
		assert.Equal(t, types.CodeStorageWriteFailed, types.CodeOf(err), id)
	}
}

func TestFileStore_ReadOnlyFilesystem(t *testing.T) {
	s := NewFileStoreFs(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/data")
	_, err := s.Save("42", []byte("pdf"), at)
	require.Error(t, err)
	assert.Equal(t, types.CodeStorageWriteFailed, types.CodeOf(err))
}

func TestFileStore_OnDisk(t *testing.T) {
	s := NewFileStore(t.TempDir())
	path, err := s.Save("42", []byte("%PDF-"), at)
	require.NoError(t, err)

	latest, err := s.Latest("42")
	require.NoError(t, err)
	assert.Equal(t, path, latest)
}
