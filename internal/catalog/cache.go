package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"vimeo-albums/internal/model"
)

// Cache persists a fetched album list for one owner.
type Cache struct {
	path string
	now  func() time.Time
}

// NewCache creates an album catalog cache at a target path.
func NewCache(path string) *Cache {
	return &Cache{path: path, now: time.Now}
}

type payload struct {
	FetchedAt string        `json:"fetchedAt"`
	Owner     string        `json:"owner,omitempty"`
	Albums    []model.Album `json:"albums"`
}

// Entry is a loaded catalog.
type Entry struct {
	Owner     string
	FetchedAt time.Time
	Albums    []model.Album
}

// Fresh reports whether the entry was fetched within ttl of now. A zero ttl
// never expires; a missing timestamp is always stale.
func (e Entry) Fresh(ttl time.Duration, now time.Time) bool {
	if e.FetchedAt.IsZero() {
		return false
	}
	if ttl <= 0 {
		return true
	}
	return now.Sub(e.FetchedAt) < ttl
}

// Load reads cached albums. If the file does not exist, os.ErrNotExist is returned.
func (c *Cache) Load() (Entry, error) {
	b, err := os.ReadFile(c.path)
	if err != nil {
		return Entry{}, err
	}

	var p payload
	if err := json.Unmarshal(b, &p); err != nil {
		return Entry{}, fmt.Errorf("parse album cache %s: %w", c.path, err)
	}

	var fetchedAt time.Time
	if p.FetchedAt != "" {
		parsed, err := time.Parse(time.RFC3339, p.FetchedAt)
		if err != nil {
			return Entry{}, fmt.Errorf("parse fetchedAt in album cache %s: %w", c.path, err)
		}
		fetchedAt = parsed
	}

	return Entry{Owner: p.Owner, FetchedAt: fetchedAt, Albums: p.Albums}, nil
}

// Save writes the album list for owner atomically.
func (c *Cache) Save(owner string, albums []model.Album) error {
	p := payload{
		FetchedAt: c.now().UTC().Format(time.RFC3339),
		Owner:     owner,
		Albums:    albums,
	}
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal album cache: %w", err)
	}

	if err := writeFileAtomic(c.path, b); err != nil {
		return fmt.Errorf("write album cache: %w", err)
	}
	return nil
}

// Path returns the cache file path.
func (c *Cache) Path() string {
	return c.path
}

func writeFileAtomic(path string, b []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("atomic replace: %w", err)
	}
	return nil
}
