// Package internal provides the core functionality of the hlin HTML linter.
//
// Key components:
//
// Engine: coordinates the linting process. It runs the passes of package
// lints over an analyzed document, applies the configured rule severities
// and nolint comments, and optionally caches results or watches directories.
//
// Cache: a gob-backed store of lint results keyed by file, invalidated when
// the file content or the rule configuration changes.
//
// SourceCode: the lines of a source file, used when rendering issues.
//
// Usage:
//
//	engine, err := internal.NewEngine(nil)
//	if err != nil {
//	    // handle error
//	}
//
//	issues, err := engine.Run("path/to/index.html")
//	if err != nil {
//	    // handle error
//	}
//
//	for _, issue := range issues {
//	    fmt.Printf("%s:%d: %s\n", issue.Filename, issue.Line, issue.Message)
//	}
//
// This package is intended for internal use within the linting tool and should not be
// imported by external packages.
package internal
