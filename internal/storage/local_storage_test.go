package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s, err := NewLocalStorage("http://localhost:8080/api/v1/files/", root)
	require.NoError(t, err)

	t.Run("Save and open", func(t *testing.T) {
		n, err := s.Save(ctx, "motors/a.png", strings.NewReader("png-bytes"))
		require.NoError(t, err)
		assert.Equal(t, int64(9), n)

		rc, err := s.Open(ctx, "motors/a.png")
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "png-bytes", string(data))

		exists, size, err := s.Exists(ctx, "motors/a.png")
		require.NoError(t, err)
		assert.True(t, exists)
		assert.Equal(t, int64(9), size)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := s.Open(ctx, "motors/missing.png")
		assert.ErrorIs(t, err, ErrNotFound)

		exists, _, err := s.Exists(ctx, "motors/missing.png")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Delete is idempotent", func(t *testing.T) {
		_, err := s.Save(ctx, "blogs/b.jpg", strings.NewReader("x"))
		require.NoError(t, err)
		require.NoError(t, s.Delete(ctx, "blogs/b.jpg"))
		require.NoError(t, s.Delete(ctx, "blogs/b.jpg"))

		_, err = os.Stat(filepath.Join(root, "blogs", "b.jpg"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("Keys cannot escape the root", func(t *testing.T) {
		_, err := s.Save(ctx, "../../etc/evil", strings.NewReader("x"))
		require.NoError(t, err)
		_, err = os.Stat(filepath.Join(root, "etc", "evil"))
		assert.NoError(t, err)

		_, err = s.Save(ctx, "/", strings.NewReader("x"))
		assert.Error(t, err)
	})

	t.Run("URL", func(t *testing.T) {
		assert.Equal(t, "http://localhost:8080/api/v1/files/motors/a.png", s.URL("motors/a.png"))
	})
}

func TestNewKey(t *testing.T) {
	key := NewKey("/motors/", "Photo.JPG")
	assert.True(t, strings.HasPrefix(key, "motors/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	assert.NotEqual(t, key, NewKey("motors", "Photo.JPG"))

	assert.False(t, strings.Contains(NewKey("", "a.png"), "/"))
}
