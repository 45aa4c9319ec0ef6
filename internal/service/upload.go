package service

import (
	"context"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"rentalmotor-backend/internal/domain"
	"rentalmotor-backend/internal/logger"
	"rentalmotor-backend/internal/storage"
)

const defaultUploadFolder = "misc"

var extensionsByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type uploadService struct {
	store        storage.FileStorage
	allowedTypes map[string]bool
	maxBytes     int64
}

func NewUploadService(store storage.FileStorage, allowedTypes []string, maxBytes int64) UploadService {
	allowed := make(map[string]bool, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[strings.ToLower(strings.TrimSpace(t))] = true
	}
	return &uploadService{
		store:        store,
		allowedTypes: allowed,
		maxBytes:     maxBytes,
	}
}

// cleanFolder keeps only lowercase letters, digits and dashes
func cleanFolder(folder string) string {
	folder = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return -1
	}, folder)
	if folder == "" {
		return defaultUploadFolder
	}
	return folder
}

func (s *uploadService) Save(ctx context.Context, folder, filename, contentType string, size int64, reader io.Reader) (*domain.StoredFile, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !s.allowedTypes[mediaType] {
		return nil, ErrUnsupportedFileType
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		return nil, ErrFileTooLarge
	}

	ext, ok := extensionsByType[mediaType]
	if !ok {
		ext = strings.ToLower(filepath.Ext(filename))
	}
	key := storage.NewKey(cleanFolder(folder), "upload"+ext)

	src := reader
	if s.maxBytes > 0 {
		src = io.LimitReader(reader, s.maxBytes+1)
	}
	written, err := s.store.Save(ctx, key, src)
	if err != nil {
		return nil, err
	}
	if s.maxBytes > 0 && written > s.maxBytes {
		if err := s.store.Delete(ctx, key); err != nil {
			logger.Warn("Failed to remove oversized upload", "key", key, "error", err)
		}
		return nil, ErrFileTooLarge
	}

	logger.Info("File uploaded", "key", key, "size", written, "contentType", mediaType)
	return &domain.StoredFile{
		Key:         key,
		URL:         s.store.URL(key),
		Size:        written,
		ContentType: mediaType,
	}, nil
}

func (s *uploadService) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.store.Open(ctx, key)
}

func (s *uploadService) Delete(ctx context.Context, key string) error {
	return s.store.Delete(ctx, key)
}
