package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	tt "github.com/gnolang/hlin/internal/types"
)

// debounce groups the burst of write events editors emit for one save.
const debounce = 100 * time.Millisecond

var errNotWatching = errors.New("not watching")

// WatchDirs sets the directories observed by StartWatching.
func (e *Engine) WatchDirs(dirs ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.watchDirs = append(e.watchDirs, dirs...)
}

// OnReport replaces the default logging of issues found in watch mode.
func (e *Engine) OnReport(fn func(filename string, issues []tt.Issue)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reportFunc = fn
}

func (e *Engine) StartWatching() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.isWatching {
		return fmt.Errorf("already watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}

	for _, dir := range e.watchDirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			watcher.Close()
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	e.watcher = watcher
	e.isWatching = true
	go e.watchLoop(watcher)
	return nil
}

func (e *Engine) StopWatching() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.isWatching {
		return errNotWatching
	}

	e.isWatching = false
	return e.watcher.Close()
}

func (e *Engine) watchLoop(watcher *fsnotify.Watcher) {
	pending := make(map[string]struct{})
	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 || !IsHTMLFile(event.Name) {
				continue
			}
			pending[event.Name] = struct{}{}
			timer.Reset(debounce)
		case <-timer.C:
			for name := range pending {
				e.handleFileChange(name)
			}
			pending = make(map[string]struct{})
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			e.logger.Error("watcher error", zap.Error(err))
		}
	}
}

func (e *Engine) handleFileChange(filename string) {
	issues, err := e.Run(filename)
	if err != nil {
		e.logger.Error("failed to lint changed file", zap.String("file", filename), zap.Error(err))
		return
	}

	e.mu.Lock()
	report := e.reportFunc
	e.mu.Unlock()

	if report != nil {
		report(filename, issues)
		return
	}
	e.reportIssues(filename, issues)
}

func (e *Engine) reportIssues(filename string, issues []tt.Issue) {
	if len(issues) == 0 {
		e.logger.Info("no issues found", zap.String("file", filename))
		return
	}

	e.logger.Info("found issues", zap.String("file", filename), zap.Int("count", len(issues)))
	for _, issue := range issues {
		e.logger.Info(issue.Message,
			zap.String("rule", issue.Rule),
			zap.Stringer("severity", issue.Severity),
			zap.Int("line", issue.Line))
	}
}

var htmlExtensions = map[string]bool{
	".html": true,
	".htm":  true,
}

// IsHTMLFile reports whether path has an HTML file extension.
func IsHTMLFile(path string) bool {
	return htmlExtensions[strings.ToLower(filepath.Ext(path))]
}
