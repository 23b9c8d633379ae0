package malegislature

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DiskCache provides persistent, file-based caching for fetched law
// texts, so repeated markup runs against the same bill skip the network.
// Each entry is a JSON file keyed by a SHA-256 hash of the law URL.
type DiskCache struct {
	cacheDir string
	cacheTTL time.Duration
}

// diskCacheEntry wraps a cached law text with an expiration timestamp.
type diskCacheEntry struct {
	LawText   string    `json:"law_text"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewDiskCache creates a disk cache in the given directory with the
// specified TTL, creating the directory if needed.
func NewDiskCache(cacheDir string, cacheTTL time.Duration) (*DiskCache, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", cacheDir, err)
	}
	return &DiskCache{cacheDir: cacheDir, cacheTTL: cacheTTL}, nil
}

// Get retrieves the cached law text for a URL. Returns the text and true
// if found and not expired.
func (cache *DiskCache) Get(lawURL string) (string, bool) {
	data, err := os.ReadFile(cache.pathFor(lawURL))
	if err != nil {
		return "", false
	}

	var entry diskCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return "", false
	}

	if time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(cache.pathFor(lawURL))
		return "", false
	}

	return entry.LawText, true
}

// Set stores a law text in the cache for the given URL.
func (cache *DiskCache) Set(lawURL, lawText string) error {
	entry := diskCacheEntry{
		LawText:   lawText,
		ExpiresAt: time.Now().Add(cache.cacheTTL),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	cacheFilePath := cache.pathFor(lawURL)
	if err := os.WriteFile(cacheFilePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache file %s: %w", cacheFilePath, err)
	}
	return nil
}

func (cache *DiskCache) pathFor(lawURL string) string {
	hash := sha256.Sum256([]byte(lawURL))
	return filepath.Join(cache.cacheDir, hex.EncodeToString(hash[:])+".json")
}
