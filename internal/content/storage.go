package content

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"study-game/internal/domain"
)

// Storage abstracts where pack CSVs live. Keys are slugs; the backend
// owns the slug-to-object mapping.
type Storage interface {
	Get(ctx context.Context, slug string) ([]byte, error)
	Put(ctx context.Context, slug string, data []byte) error
	List(ctx context.Context) ([]string, error)
}

// LocalStorage serves packs from a directory tree of CSV files, mirroring
// the slug as a relative path: <base>/math/grade1/20l.csv.
type LocalStorage struct {
	base string
}

func NewLocalStorage(base string) *LocalStorage {
	return &LocalStorage{base: base}
}

func (s *LocalStorage) path(slug string) string {
	return filepath.Join(s.base, filepath.FromSlash(slug)+".csv")
}

func (s *LocalStorage) Get(_ context.Context, slug string) ([]byte, error) {
	data, err := os.ReadFile(s.path(slug))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.NewPackNotFoundError(slug)
		}
		return nil, domain.NewInternalError("failed to read pack file", err)
	}
	return data, nil
}

func (s *LocalStorage) Put(_ context.Context, slug string, data []byte) error {
	path := s.path(slug)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return domain.NewInternalError("failed to create pack directory", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return domain.NewInternalError("failed to write pack file", err)
	}
	return nil
}

func (s *LocalStorage) List(_ context.Context) ([]string, error) {
	var slugs []string
	err := filepath.WalkDir(s.base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".csv") {
			return nil
		}
		rel, err := filepath.Rel(s.base, path)
		if err != nil {
			return err
		}
		slug := filepath.ToSlash(strings.TrimSuffix(rel, ".csv"))
		slugs = append(slugs, slug)
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, domain.NewInternalError("failed to list pack directory", err)
	}
	return slugs, nil
}
