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

func TestEngine_Watch(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	engine, err := NewEngine(nil)
	require.NoError(t, err)
	engine.WatchDirs(dir)

	var (
		mu       sync.Mutex
		reported = make(map[string][]tt.Issue)
	)
	engine.OnReport(func(filename string, issues []tt.Issue) {
		mu.Lock()
		defer mu.Unlock()
		reported[filepath.Base(filename)] = issues
	})

	require.NoError(t, engine.StartWatching())
	assert.Error(t, engine.StartWatching(), "second start must fail")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "page.html"), []byte(brokenPage), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("<p>"), 0o644))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(reported["page.html"]) > 0
	}, 5*time.Second, 50*time.Millisecond)

	mu.Lock()
	_, sawText := reported["notes.txt"]
	mu.Unlock()
	assert.False(t, sawText)

	require.NoError(t, engine.StopWatching())
	assert.ErrorIs(t, engine.StopWatching(), errNotWatching)
}
