package digikey

import (
	"os"
	"path/filepath"
	"regexp"
)

var cacheKeyRe = regexp.MustCompile(`[^\w.\-]`)

// Cache stores raw API responses as JSON files keyed by part number.
type Cache struct {
	dir string
}

// NewCache creates a cache rooted at dir. The directory is created
// lazily on the first Put.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

// Dir returns the cache root directory.
func (c *Cache) Dir() string {
	return c.dir
}

func (c *Cache) path(partNumber string) string {
	name := cacheKeyRe.ReplaceAllString(partNumber, "_")
	return filepath.Join(c.dir, name+".json")
}

// Get returns the cached response for partNumber, if present.
func (c *Cache) Get(partNumber string) ([]byte, bool) {
	data, err := os.ReadFile(c.path(partNumber))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Put stores a raw response for partNumber.
func (c *Cache) Put(partNumber string, data []byte) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(c.path(partNumber), data, 0o644)
}
