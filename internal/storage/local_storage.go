package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStorage keeps uploads on the local filesystem and serves them through the API
type LocalStorage struct {
	baseURL string // public prefix, e.g. "http://localhost:8080/api/v1/files"
	rootDir string
}

// NewLocalStorage creates the upload directory if needed
func NewLocalStorage(baseURL, rootDir string) (*LocalStorage, error) {
	if err := os.MkdirAll(rootDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{
		baseURL: strings.TrimRight(baseURL, "/"),
		rootDir: rootDir,
	}, nil
}

// NewKey builds a unique key inside folder keeping the extension of filename
func NewKey(folder, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	name := uuid.NewString() + ext
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return name
	}
	return path.Join(folder, name)
}

// resolve maps a key to a path under rootDir, refusing keys that escape it
func (s *LocalStorage) resolve(key string) (string, error) {
	clean := path.Clean("/" + key)
	if clean == "/" {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.rootDir, filepath.FromSlash(clean[1:])), nil
}

func (s *LocalStorage) Save(ctx context.Context, key string, reader io.Reader) (int64, error) {
	fullPath, err := s.resolve(key)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return 0, fmt.Errorf("failed to create directories: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	n, err := io.Copy(file, reader)
	if err != nil {
		os.Remove(fullPath)
		return 0, fmt.Errorf("failed to write file: %w", err)
	}
	return n, nil
}

func (s *LocalStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	fullPath, err := s.resolve(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

func (s *LocalStorage) Exists(ctx context.Context, key string) (bool, int64, error) {
	fullPath, err := s.resolve(key)
	if err != nil {
		return false, 0, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, 0, nil
		}
		return false, 0, err
	}
	if info.IsDir() {
		return false, 0, nil
	}
	return true, info.Size(), nil
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	fullPath, err := s.resolve(key)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *LocalStorage) URL(key string) string {
	return s.baseURL + "/" + strings.TrimLeft(key, "/")
}
