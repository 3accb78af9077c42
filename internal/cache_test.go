package internal

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/gnolang/hlin/internal/types"
)

func testIssues(filename string) []tt.Issue {
	return []tt.Issue{{
		Rule:     "unclosed-tag",
		Filename: filename,
		Line:     2,
		Column:   1,
		Message:  "Unclosed <p> tag",
		Severity: tt.SeverityError,
	}}
}

func TestCache(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	cache, err := NewCache(filepath.Join(tmpDir, "cache"))
	require.NoError(t, err)

	t.Run("SaveAndLoad", func(t *testing.T) {
		filename := writeFile(t, tmpDir, "saved.html", "<p>\n")
		issues := testIssues(filename)

		require.NoError(t, cache.Set(filename, "cfg", issues))

		loaded, found := cache.Get(filename, "cfg")
		assert.True(t, found)
		assert.Equal(t, issues, loaded)

		reopened, err := NewCache(cache.CacheDir)
		require.NoError(t, err)
		loaded, found = reopened.Get(filename, "cfg")
		assert.True(t, found)
		assert.Equal(t, issues, loaded)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, found := cache.Get("nonexistent.html", "cfg")
		assert.False(t, found)
	})

	t.Run("ConfigChanged", func(t *testing.T) {
		filename := writeFile(t, tmpDir, "config.html", "<p>\n")
		require.NoError(t, cache.Set(filename, "cfg-a", testIssues(filename)))

		_, found := cache.Get(filename, "cfg-b")
		assert.False(t, found)
	})

	t.Run("FileModified", func(t *testing.T) {
		filename := writeFile(t, tmpDir, "modified.html", "<p>\n")
		require.NoError(t, cache.Set(filename, "cfg", testIssues(filename)))

		require.NoError(t, os.WriteFile(filename, []byte("<p></p>\n"), 0o644))

		_, found := cache.Get(filename, "cfg")
		assert.False(t, found)
	})
}

func TestCache_MaxAge(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()
	cache, err := NewCache(filepath.Join(tmpDir, "cache"))
	require.NoError(t, err)
	cache.SetMaxAge(time.Nanosecond)

	filename := writeFile(t, tmpDir, "old.html", "<p>\n")
	require.NoError(t, cache.Set(filename, "cfg", testIssues(filename)))
	time.Sleep(time.Millisecond)

	_, found := cache.Get(filename, "cfg")
	assert.False(t, found)
}

func TestCache_InvalidateAll(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()
	cache, err := NewCache(filepath.Join(tmpDir, "cache"))
	require.NoError(t, err)

	filename := writeFile(t, tmpDir, "page.html", "<p>\n")
	require.NoError(t, cache.Set(filename, "cfg", testIssues(filename)))
	cache.InvalidateAll()

	_, found := cache.Get(filename, "cfg")
	assert.False(t, found)
}

func TestCacheWithEngine(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()
	cache, err := NewCache(filepath.Join(tmpDir, "cache"))
	require.NoError(t, err)

	engine, err := NewEngine(nil)
	require.NoError(t, err)
	engine.SetCache(cache)

	filename := writeFile(t, tmpDir, "index.html", brokenPage)

	issues, err := engine.Run(filename)
	require.NoError(t, err)
	require.NotEmpty(t, issues)

	_, found := cache.Get(filename, engine.fingerprint())
	assert.True(t, found)

	cached, err := engine.Run(filename)
	require.NoError(t, err)
	assert.Equal(t, issues, cached)

	engine.IgnoreRule("duplicate-id")
	_, found = cache.Get(filename, engine.fingerprint())
	assert.False(t, found, "ignoring a rule changes the fingerprint")
}

func TestCacheConcurrency(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()
	cache, err := NewCache(filepath.Join(tmpDir, "cache"))
	require.NoError(t, err)

	filename := writeFile(t, tmpDir, "page.html", "<p>\n")
	issues := testIssues(filename)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, cache.Set(filename, "cfg", issues))
		}()
		go func() {
			defer wg.Done()
			_, _ = cache.Get(filename, "cfg")
		}()
	}
	wg.Wait()
}
