package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"invoicetracker/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LocalStorage keeps uploaded documents on the local filesystem under opaque
// generated names, so a hostile original filename never reaches the disk
// layout. Stored names are flat; path separators in them are rejected.
type LocalStorage struct {
	baseDir string
	log     zerolog.Logger
}

var _ interfaces.IFileStorage = (*LocalStorage)(nil)

func NewLocalStorage(baseDir string, log zerolog.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage dir: %w", err)
	}
	return &LocalStorage{baseDir: baseDir, log: log}, nil
}

func (s *LocalStorage) Store(_ context.Context, data []byte, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	storedName := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.baseDir, storedName), data, 0o644); err != nil {
		return "", fmt.Errorf("writing stored file: %w", err)
	}
	s.log.Debug().Str("stored_name", storedName).Int("size", len(data)).Msg("stored uploaded document")
	return storedName, nil
}

func (s *LocalStorage) Load(_ context.Context, storedName string) ([]byte, error) {
	path, err := s.resolve(storedName)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

func (s *LocalStorage) Delete(_ context.Context, storedName string) error {
	path, err := s.resolve(storedName)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

func (s *LocalStorage) resolve(storedName string) (string, error) {
	if storedName == "" || storedName != filepath.Base(storedName) {
		return "", fmt.Errorf("invalid stored file name %q", storedName)
	}
	return filepath.Join(s.baseDir, storedName), nil
}
