package internal

import (
	"crypto/md5"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	tt "github.com/gnolang/hlin/internal/types"
)

const cacheFileName = "lint_cache.gob"

type fileMetadata struct {
	Hash         string
	LastModified time.Time
}

type CacheEntry struct {
	Metadata     fileMetadata
	Fingerprint  string
	Issues       []tt.Issue
	CreatedAt    time.Time
	LastAccessed time.Time
}

// Cache persists lint results per file. An entry is reused only while the
// file content, the rule configuration and the entry age all still match.
type Cache struct {
	CacheDir string
	entries  map[string]CacheEntry
	mutex    sync.Mutex
	maxAge   time.Duration
}

func NewCache(cacheDir string) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	cache := &Cache{
		CacheDir: cacheDir,
		entries:  make(map[string]CacheEntry),
	}

	if err := cache.load(); err != nil {
		return nil, fmt.Errorf("failed to load cache: %w", err)
	}

	return cache, nil
}

func (c *Cache) load() error {
	file, err := os.Open(filepath.Join(c.CacheDir, cacheFileName))
	if os.IsNotExist(err) {
		return nil // cache file doesn't exist yet. This is fine.
	}
	if err != nil {
		return fmt.Errorf("failed to open cache file: %w", err)
	}
	defer file.Close()

	decoder := gob.NewDecoder(file)
	if err := decoder.Decode(&c.entries); err != nil {
		return fmt.Errorf("failed to decode cache file: %w", err)
	}

	return nil
}

func (c *Cache) save() error {
	file, err := os.Create(filepath.Join(c.CacheDir, cacheFileName))
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer file.Close()

	encoder := gob.NewEncoder(file)
	if err := encoder.Encode(c.entries); err != nil {
		return fmt.Errorf("failed to encode cache file: %w", err)
	}

	return nil
}

func (c *Cache) Set(filename, fingerprint string, issues []tt.Issue) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	metadata, err := getFileMetadata(filename)
	if err != nil {
		return fmt.Errorf("failed to get file metadata: %w", err)
	}

	now := time.Now()
	c.entries[filename] = CacheEntry{
		Metadata:     metadata,
		Fingerprint:  fingerprint,
		Issues:       issues,
		CreatedAt:    now,
		LastAccessed: now,
	}

	return c.save()
}

func (c *Cache) Get(filename, fingerprint string) ([]tt.Issue, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.entries[filename]
	if !exists {
		return nil, false
	}

	if c.isEntryInvalid(filename, fingerprint, entry) {
		delete(c.entries, filename)
		return nil, false
	}

	entry.LastAccessed = time.Now()
	c.entries[filename] = entry

	return entry.Issues, true
}

func (c *Cache) isEntryInvalid(filename, fingerprint string, entry CacheEntry) bool {
	if c.maxAge > 0 && time.Since(entry.CreatedAt) > c.maxAge {
		return true
	}

	if entry.Fingerprint != fingerprint {
		return true
	}

	currentMetadata, err := getFileMetadata(filename)
	return err != nil || !currentMetadata.equal(entry.Metadata)
}

// SetMaxAge bounds how long an entry stays valid. Zero means no limit.
func (c *Cache) SetMaxAge(duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.maxAge = duration
}

func (c *Cache) InvalidateAll() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]CacheEntry)
	_ = c.save() // ignore error as this is a manual operation
}

func (m fileMetadata) equal(other fileMetadata) bool {
	return m.Hash == other.Hash && m.LastModified.Equal(other.LastModified)
}

func getFileMetadata(filename string) (fileMetadata, error) {
	file, err := os.Open(filename)
	if err != nil {
		return fileMetadata{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return fileMetadata{}, fmt.Errorf("failed to calculate hash: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		return fileMetadata{}, fmt.Errorf("failed to get file info: %w", err)
	}

	return fileMetadata{
		Hash:         fmt.Sprintf("%x", hash.Sum(nil)),
		LastModified: info.ModTime(),
	}, nil
}

// fingerprint identifies the effective rule configuration of an engine.
func (e *Engine) fingerprint() string {
	parts := make([]string, 0, len(e.severities))
	for rule := range e.severities {
		parts = append(parts, rule+"="+e.Severity(rule).String())
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}
