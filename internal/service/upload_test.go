package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"rentalmotor-backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadService(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewLocalStorage("http://localhost:8080/api/v1/files", t.TempDir())
	require.NoError(t, err)
	svc := NewUploadService(store, []string{"image/jpeg", "image/png"}, 16)

	t.Run("Save and open", func(t *testing.T) {
		file, err := svc.Save(ctx, "Motors", "scoopy.jpeg", "image/jpeg", 5, strings.NewReader("jpeg!"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(file.Key, "motors/"))
		assert.True(t, strings.HasSuffix(file.Key, ".jpg"))
		assert.Equal(t, "http://localhost:8080/api/v1/files/"+file.Key, file.URL)
		assert.Equal(t, int64(5), file.Size)

		rc, err := svc.Open(ctx, file.Key)
		require.NoError(t, err)
		defer rc.Close()
		data, _ := io.ReadAll(rc)
		assert.Equal(t, "jpeg!", string(data))
	})

	t.Run("Content type parameters are ignored", func(t *testing.T) {
		_, err := svc.Save(ctx, "", "a.png", "image/png; charset=binary", 1, strings.NewReader("x"))
		assert.NoError(t, err)
	})

	t.Run("Unsupported type", func(t *testing.T) {
		_, err := svc.Save(ctx, "motors", "doc.pdf", "application/pdf", 3, strings.NewReader("pdf"))
		assert.ErrorIs(t, err, ErrUnsupportedFileType)
	})

	t.Run("Declared size too large", func(t *testing.T) {
		_, err := svc.Save(ctx, "motors", "a.png", "image/png", 17, strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrFileTooLarge)
	})

	t.Run("Stream larger than declared", func(t *testing.T) {
		_, err := svc.Save(ctx, "motors", "a.png", "image/png", -1, strings.NewReader(strings.Repeat("x", 40)))
		assert.ErrorIs(t, err, ErrFileTooLarge)
	})

	t.Run("Delete", func(t *testing.T) {
		file, err := svc.Save(ctx, "blogs", "c.png", "image/png", 1, strings.NewReader("x"))
		require.NoError(t, err)
		require.NoError(t, svc.Delete(ctx, file.Key))
		_, err = svc.Open(ctx, file.Key)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}
