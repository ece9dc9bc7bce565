package credentials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	t.Run("creates directory with correct permissions", func(t *testing.T) {
		tmpDir := t.TempDir()
		credDir := filepath.Join(tmpDir, "creds")

		store, err := NewStore(credDir)
		require.NoError(t, err)
		assert.NotNil(t, store)

		info, err := os.Stat(credDir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
		assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
	})

	t.Run("uses default directory when baseDir is empty", func(t *testing.T) {
		store, err := NewStore("")
		if err != nil {
			assert.Contains(t, err.Error(), "home directory")
		} else {
			assert.NotNil(t, store)
		}
	})
}

func TestStore_RoundTrip(t *testing.T) {
	t.Run("read returns the identical written token", func(t *testing.T) {
		store, err := NewStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Write("eyJhbGciOiJIUzI1NiJ9.payload.sig"))

		token, err := store.Read()
		require.NoError(t, err)
		assert.Equal(t, "eyJhbGciOiJIUzI1NiJ9.payload.sig", token)
	})

	t.Run("token file is private", func(t *testing.T) {
		dir := t.TempDir()
		store, err := NewStore(dir)
		require.NoError(t, err)

		require.NoError(t, store.Write("secret"))

		info, err := os.Stat(filepath.Join(dir, "token"))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})

	t.Run("write replaces the previous token", func(t *testing.T) {
		store, err := NewStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Write("first"))
		require.NoError(t, store.Write("second"))

		token, err := store.Read()
		require.NoError(t, err)
		assert.Equal(t, "second", token)
	})
}

func TestStore_Read(t *testing.T) {
	t.Run("returns ErrNoToken when nothing stored", func(t *testing.T) {
		store, err := NewStore(t.TempDir())
		require.NoError(t, err)

		_, err = store.Read()
		assert.ErrorIs(t, err, ErrNoToken)
	})

	t.Run("treats an empty file as no token", func(t *testing.T) {
		dir := t.TempDir()
		store, err := NewStore(dir)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(dir, "token"), []byte("  \n"), 0600))

		_, err = store.Read()
		assert.ErrorIs(t, err, ErrNoToken)
	})
}

func TestStore_Clear(t *testing.T) {
	t.Run("subsequent reads return ErrNoToken", func(t *testing.T) {
		store, err := NewStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Write("about-to-go"))
		require.NoError(t, store.Clear())

		_, err = store.Read()
		assert.ErrorIs(t, err, ErrNoToken)
	})

	t.Run("clearing an empty store succeeds", func(t *testing.T) {
		store, err := NewStore(t.TempDir())
		require.NoError(t, err)

		assert.NoError(t, store.Clear())
	})
}
