package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/hlin/internal/lints"
	tt "github.com/gnolang/hlin/internal/types"
)

const brokenPage = `<div id="a">
<p>
</div>
<span id="a"></span>
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewEngine(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(nil)
	require.NoError(t, err)
	assert.Equal(t, lints.DefaultSeverities, engine.severities)
}

func TestNewEngine_ConfigOverrides(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(map[string]tt.ConfigRule{
		lints.DuplicateID:    {Severity: tt.SeverityError},
		lints.MissingDoctype: {Severity: tt.SeverityOff},
		lints.UnknownElement: {Severity: tt.SeverityWarning},
		"no-such-rule":       {Severity: tt.SeverityError},
	})
	require.NoError(t, err)

	assert.Equal(t, tt.SeverityError, engine.Severity(lints.DuplicateID))
	assert.Equal(t, tt.SeverityOff, engine.Severity(lints.MissingDoctype))
	assert.Equal(t, tt.SeverityWarning, engine.Severity(lints.UnknownElement))
	assert.Equal(t, tt.SeverityOff, engine.Severity("no-such-rule"))
}

func TestEngine_RunSourceMatchesLintHTML(t *testing.T) {
	t.Parallel()
	engine, err := NewEngine(nil)
	require.NoError(t, err)

	issues, err := engine.RunSource([]byte(brokenPage))
	require.NoError(t, err)
	assert.Equal(t, lints.LintHTML(brokenPage), issues)
}

func TestEngine_IgnoreRule(t *testing.T) {
	t.Parallel()
	engine, err := NewEngine(nil)
	require.NoError(t, err)
	engine.IgnoreRule(lints.DuplicateID)
	engine.IgnoreRule(lints.MissingDoctype)

	issues, err := engine.RunSource([]byte(brokenPage))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, lints.UnclosedTag, issues[0].Rule)
	assert.Equal(t, 2, issues[0].Line)
}

func TestEngine_SeverityOverride(t *testing.T) {
	t.Parallel()
	engine, err := NewEngine(map[string]tt.ConfigRule{
		lints.DuplicateID: {Severity: tt.SeverityError},
	})
	require.NoError(t, err)

	issues, err := engine.RunSource([]byte(brokenPage))
	require.NoError(t, err)
	for _, issue := range issues {
		if issue.Rule == lints.DuplicateID {
			assert.Equal(t, tt.SeverityError, issue.Severity)
		}
	}
}

func TestEngine_EnableOptionalRule(t *testing.T) {
	t.Parallel()
	engine, err := NewEngine(map[string]tt.ConfigRule{
		lints.UnknownElement: {Severity: tt.SeverityWarning},
	})
	require.NoError(t, err)

	issues, err := engine.RunSource([]byte("<!DOCTYPE html>\n<blorp></blorp>\n"))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, lints.UnknownElement, issues[0].Rule)
	assert.Equal(t, tt.SeverityWarning, issues[0].Severity)
}

func TestEngine_Nolint(t *testing.T) {
	t.Parallel()
	engine, err := NewEngine(nil)
	require.NoError(t, err)

	src := "<!-- nolint:missing-doctype -->\n<div>\n<p> <!-- nolint:unclosed-tag -->\n</div>\n"
	issues, err := engine.RunSource([]byte(src))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestEngine_Run(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "index.html", brokenPage)

	engine, err := NewEngine(nil)
	require.NoError(t, err)

	issues, err := engine.Run(path)
	require.NoError(t, err)
	require.NotEmpty(t, issues)
	for _, issue := range issues {
		assert.Equal(t, path, issue.Filename)
	}

	_, err = engine.Run(filepath.Join(dir, "missing.html"))
	assert.Error(t, err)
}

func TestEngine_IgnorePath(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	vendor := filepath.Join(dir, "vendor")
	require.NoError(t, os.Mkdir(vendor, 0o755))
	vendored := writeFile(t, vendor, "lib.html", brokenPage)
	generated := writeFile(t, dir, "page.gen.html", brokenPage)
	kept := writeFile(t, dir, "page.html", brokenPage)

	engine, err := NewEngine(nil)
	require.NoError(t, err)
	engine.IgnorePath(vendor)
	engine.IgnorePath("*.gen.html")

	for _, path := range []string{vendored, generated} {
		issues, err := engine.Run(path)
		require.NoError(t, err)
		assert.Empty(t, issues, path)
	}

	issues, err := engine.Run(kept)
	require.NoError(t, err)
	assert.NotEmpty(t, issues)
}

func TestIsHTMLFile(t *testing.T) {
	t.Parallel()
	assert.True(t, IsHTMLFile("a/b/index.html"))
	assert.True(t, IsHTMLFile("old.htm"))
	assert.False(t, IsHTMLFile("main.go"))
	assert.False(t, IsHTMLFile("lint_cache.gob"))
}

func TestReadSourceCode(t *testing.T) {
	t.Parallel()
	path := writeFile(t, t.TempDir(), "crlf.html", "<p>\r\n</p>\r\n")

	src, err := ReadSourceCode(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"<p>", "</p>", ""}, src.Lines)
}
