package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"vimeo-albums/internal/model"
)

// Store remembers the last modified_time seen for each album URI.
type Store struct {
	path string

	mu   sync.Mutex
	seen map[string]string
}

// NewStore initializes state from path if present.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path: path,
		seen: make(map[string]string),
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read state file %s: %w", path, err)
	}

	if err := json.Unmarshal(b, &s.seen); err != nil {
		return nil, fmt.Errorf("parse state file %s: %w", path, err)
	}
	if s.seen == nil {
		s.seen = make(map[string]string)
	}

	return s, nil
}

func stamp(album model.Album) string {
	if album.ModifiedTime == nil {
		return ""
	}
	return album.ModifiedTime.UTC().Format(time.RFC3339)
}

// Changed reports whether album is new or was modified since it was last
// recorded. Albums without a URI cannot be tracked and always count as changed.
func (s *Store) Changed(album model.Album) bool {
	if album.URI == nil {
		return true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.seen[*album.URI]
	return !ok || prev != stamp(album)
}

// Record stores the current modification stamp of each album and persists
// state atomically.
func (s *Store) Record(albums ...model.Album) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dirty := false
	for _, album := range albums {
		if album.URI == nil {
			continue
		}
		st := stamp(album)
		if prev, ok := s.seen[*album.URI]; ok && prev == st {
			continue
		}
		s.seen[*album.URI] = st
		dirty = true
	}
	if !dirty {
		return nil
	}

	payload, err := json.MarshalIndent(s.seen, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state parent dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temporary state file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temporary state file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temporary state file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("atomic replace state file: %w", err)
	}

	return nil
}
