package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalBackend serves bare filesystem paths and file:// locations.
type LocalBackend struct{}

// NewLocalBackend creates a local filesystem backend.
func NewLocalBackend() *LocalBackend {
	return &LocalBackend{}
}

func (lb *LocalBackend) resolve(loc string) (string, error) {
	scheme, path, err := ParseLocation(loc)
	if err != nil {
		return "", err
	}
	if scheme != "file" {
		return "", fmt.Errorf("local backend cannot serve %s:// locations", scheme)
	}
	return path, nil
}

// Get opens a local file for reading.
func (lb *LocalBackend) Get(ctx context.Context, loc string) (io.ReadCloser, error) {
	path, err := lb.resolve(loc)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// Put writes data to a local file, creating parent directories.
func (lb *LocalBackend) Put(ctx context.Context, loc string, data io.Reader) error {
	path, err := lb.resolve(loc)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, data); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// Exists checks whether a local file exists.
func (lb *LocalBackend) Exists(ctx context.Context, loc string) (bool, error) {
	path, err := lb.resolve(loc)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
