package scanner

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

type FileInfo struct {
	Path string
	Size int64
}

// Scanner finds the files to lint below a root directory.
type Scanner struct {
	rootDir    string
	extensions map[string]bool
	skipDirs   map[string]bool
}

// New creates a scanner matching the given extensions (all files when none
// are given). Hidden directories and node_modules are never entered.
func New(rootDir string, extensions ...string) *Scanner {
	s := &Scanner{
		rootDir:    rootDir,
		extensions: make(map[string]bool, len(extensions)),
		skipDirs:   map[string]bool{"node_modules": true},
	}
	for _, ext := range extensions {
		s.extensions[strings.ToLower(ext)] = true
	}
	return s
}

// SkipDir excludes every directory with the given base name.
func (s *Scanner) SkipDir(name string) *Scanner {
	s.skipDirs[name] = true
	return s
}

// Scan walks the root and returns matching files sorted by path.
func (s *Scanner) Scan() ([]FileInfo, error) {
	var files []FileInfo

	err := filepath.WalkDir(s.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != s.rootDir && s.shouldSkipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.isTargetFile(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, FileInfo{Path: path, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", s.rootDir, err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

func (s *Scanner) shouldSkipDir(name string) bool {
	return s.skipDirs[name] || (strings.HasPrefix(name, ".") && name != "." && name != "..")
}

func (s *Scanner) isTargetFile(path string) bool {
	if len(s.extensions) == 0 {
		return true
	}
	return s.extensions[strings.ToLower(filepath.Ext(path))]
}
