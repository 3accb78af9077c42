package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sourcegraph/conc/iter"
	"go.uber.org/zap"

	"github.com/gnolang/hlin/internal/lints"
	"github.com/gnolang/hlin/internal/nolint"
	tt "github.com/gnolang/hlin/internal/types"
)

// Engine manages the linting process.
type Engine struct {
	ignoredRules map[string]bool
	ignoredPaths []string
	severities   map[string]tt.Severity

	cache  *Cache
	logger *zap.Logger

	mu         sync.Mutex
	watcher    *fsnotify.Watcher
	watchDirs  []string
	isWatching bool
	reportFunc func(filename string, issues []tt.Issue)
}

// NewEngine creates a new lint engine. rules overrides the default severity
// of individual rules; unknown rule names are ignored.
func NewEngine(rules map[string]tt.ConfigRule) (*Engine, error) {
	engine := &Engine{logger: zap.NewNop()}
	engine.applyRules(rules)

	return engine, nil
}

func (e *Engine) applyRules(rules map[string]tt.ConfigRule) {
	e.severities = make(map[string]tt.Severity, len(lints.DefaultSeverities))
	for name, severity := range lints.DefaultSeverities {
		e.severities[name] = severity
	}

	for key, rule := range rules {
		if _, ok := e.severities[key]; !ok {
			// Unknown rule, continue to the next one
			continue
		}
		e.severities[key] = rule.Severity
	}
}

// SetLogger replaces the engine logger. A nil logger disables logging.
func (e *Engine) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	e.logger = logger
}

// SetCache enables result caching for Run.
func (e *Engine) SetCache(cache *Cache) {
	e.cache = cache
}

// Severity returns the effective severity of a rule.
func (e *Engine) Severity(rule string) tt.Severity {
	if e.ignoredRules[rule] {
		return tt.SeverityOff
	}
	severity, ok := e.severities[rule]
	if !ok {
		return tt.SeverityOff
	}
	return severity
}

// Run lints the given file and returns a slice of Issues.
func (e *Engine) Run(filename string) ([]tt.Issue, error) {
	if e.isIgnoredPath(filename) {
		return nil, nil
	}

	if e.cache != nil {
		if issues, ok := e.cache.Get(filename, e.fingerprint()); ok {
			e.logger.Debug("cache hit", zap.String("file", filename))
			return issues, nil
		}
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	issues, err := e.RunSource(content)
	if err != nil {
		return nil, fmt.Errorf("error linting %s: %w", filename, err)
	}
	for i := range issues {
		issues[i].Filename = filename
	}

	if e.cache != nil {
		if err := e.cache.Set(filename, e.fingerprint(), issues); err != nil {
			e.logger.Warn("failed to update cache", zap.String("file", filename), zap.Error(err))
		}
	}

	return issues, nil
}

// RunSource lints the given source and returns a slice of Issues.
func (e *Engine) RunSource(source []byte) ([]tt.Issue, error) {
	doc := lints.Analyze(string(source))
	nolintMgr := nolint.ParseComments(doc)

	var passes []lints.Pass
	for _, p := range lints.Passes {
		if e.passEnabled(p) {
			passes = append(passes, p)
		}
	}

	// passes share doc read-only; iter.Map keeps their order
	results := iter.Map(passes, func(p *lints.Pass) []tt.Issue {
		return p.Check(doc)
	})

	allIssues := []tt.Issue{}
	for _, issues := range results {
		for _, issue := range issues {
			severity := e.Severity(issue.Rule)
			if severity == tt.SeverityOff || nolintMgr.IsNolint(issue.Line, issue.Rule) {
				continue
			}
			issue.Severity = severity
			allIssues = append(allIssues, issue)
		}
	}
	lints.SortIssues(allIssues)

	return allIssues, nil
}

func (e *Engine) passEnabled(p lints.Pass) bool {
	for _, rule := range p.Rules {
		if e.Severity(rule) != tt.SeverityOff {
			return true
		}
	}
	return false
}

func (e *Engine) IgnoreRule(rule string) {
	if e.ignoredRules == nil {
		e.ignoredRules = make(map[string]bool)
	}
	e.ignoredRules[rule] = true
}

// IgnorePath skips files matching a glob pattern, either against the full
// path or its base name, or lying under a directory prefix.
func (e *Engine) IgnorePath(path string) {
	e.ignoredPaths = append(e.ignoredPaths, filepath.Clean(path))
}

func (e *Engine) isIgnoredPath(path string) bool {
	path = filepath.Clean(path)
	for _, pattern := range e.ignoredPaths {
		if ok, _ := filepath.Match(pattern, path); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, filepath.Base(path)); ok {
			return true
		}
		if strings.HasPrefix(path, pattern+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
