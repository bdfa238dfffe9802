//go:build cgo

package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pastepal.sqlite")

	s, err := NewSQLiteStorage(StorageConfig{Path: path})
	require.NoError(t, err)

	_, err = s.Get("clipboardItems")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set("clipboardItems", []byte(`[]`)))
	require.NoError(t, s.Set("clipboardItems", []byte(`[{"id":"1"}]`)))

	v, err := s.Get("clipboardItems")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"1"}]`), v)

	require.NoError(t, s.Set("empty", nil))
	v, err = s.Get("empty")
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, s.Close())

	reopened, err := Open(StorageConfig{Backend: BackendSQLite, Path: path})
	require.NoError(t, err)
	defer reopened.Close()

	v, err = reopened.Get("clipboardItems")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"1"}]`), v)
}
