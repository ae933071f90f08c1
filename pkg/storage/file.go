package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileStore keeps each record as a JSON file in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based store.
// If baseDir is empty, defaults to $XDG_DATA_HOME/boxflow/layouts, falling
// back to ~/.local/share/boxflow/layouts.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		baseDir = dir
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create layout dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// DefaultDir returns the directory used by NewFileStore("").
func DefaultDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "boxflow", "layouts"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", "boxflow", "layouts"), nil
}

func (s *FileStore) recordPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Get(ctx context.Context, id string) (*Record, error) {
	if err := ValidateID(id); err != nil {
		return nil, notFound(id)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, err := readRecord(s.recordPath(id))
	if os.IsNotExist(err) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, err
	}
	if rec.IsExpired() {
		os.Remove(s.recordPath(id))
		return nil, notFound(id)
	}
	return rec, nil
}

func (s *FileStore) Put(ctx context.Context, rec *Record) error {
	if err := ValidateID(rec.ID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal layout: %w", err)
	}
	if err := os.WriteFile(s.recordPath(rec.ID), data, 0600); err != nil {
		return fmt.Errorf("write layout file: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return notFound(id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.recordPath(id)); err != nil {
		if os.IsNotExist(err) {
			return notFound(id)
		}
		return fmt.Errorf("remove layout file: %w", err)
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Record
	err := s.each(func(path string, rec *Record) error {
		if !rec.IsExpired() {
			out = append(out, rec)
		}
		return ctx.Err()
	})
	if err != nil {
		return nil, err
	}
	sortByCreation(out)
	return out, nil
}

func (s *FileStore) Cleanup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	return s.each(func(path string, rec *Record) error {
		if !rec.ExpiresAt.IsZero() && now.After(rec.ExpiresAt) {
			os.Remove(path)
		}
		return ctx.Err()
	})
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for layout files.
func (s *FileStore) Path() string {
	return s.baseDir
}

// each calls fn for every readable record file; unreadable files are skipped.
func (s *FileStore) each(fn func(path string, rec *Record) error) error {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return fmt.Errorf("read layout dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(s.baseDir, entry.Name())
		rec, err := readRecord(path)
		if err != nil {
			continue
		}
		if err := fn(path, rec); err != nil {
			return err
		}
	}
	return nil
}

func readRecord(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse layout %s: %w", filepath.Base(path), err)
	}
	return &rec, nil
}

var _ Store = (*FileStore)(nil)
