package leetcode

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ionut-t/leetshell/logging"
)

const (
	ProblemListTTL   = time.Hour
	ProblemDetailTTL = 24 * time.Hour
)

// Cache stores JSON documents as <dir>/<key>.json and expires them by
// modification time.
type Cache struct {
	dir string
	now func() time.Time
}

func NewCache(dir string) *Cache {
	return &Cache{dir: dir, now: time.Now}
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, sanitizeKey(key)+".json")
}

func sanitizeKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, key)
}

// Get decodes a fresh entry into out and reports whether it did.
func (c *Cache) Get(key string, ttl time.Duration, out any) bool {
	path := c.path(key)
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if c.now().Sub(info.ModTime()) > ttl {
		return false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		logging.Warn("cache: discarding %s: %v", path, err)
		return false
	}
	return true
}

func (c *Cache) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal cache entry %s: %w", key, err)
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	if err := os.WriteFile(c.path(key), data, 0o644); err != nil {
		return fmt.Errorf("write cache entry %s: %w", key, err)
	}
	return nil
}

func (c *Cache) Invalidate(key string) error {
	err := os.Remove(c.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
