package lint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/gnolang/hlin/internal"
	"github.com/gnolang/hlin/internal/lints"
	tt "github.com/gnolang/hlin/internal/types"
	"github.com/gnolang/hlin/scanner"
)

type LintEngine interface {
	Run(filePath string) ([]tt.Issue, error)
	RunSource(source []byte) ([]tt.Issue, error)
	IgnoreRule(rule string)
	IgnorePath(path string)
}

// New creates a lint engine configured from the YAML file at
// configurationPath. An empty or missing path yields the default rules.
func New(configurationPath string) (*internal.Engine, error) {
	config, err := parseConfigurationFile(configurationPath)
	if err != nil {
		return nil, err
	}

	return internal.NewEngine(config.Rules)
}

// LintHTML lints an HTML document with the default rules.
func LintHTML(html string) []tt.Issue {
	return lints.LintHTML(html)
}

func ProcessSources(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	sources [][]byte,
	processor func(LintEngine, []byte) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for i, source := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		issues, err := processor(engine, source)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing source", zap.Int("source", i), zap.Error(err))
			}
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, nil
}

func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	paths []string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for _, path := range paths {
		issues, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, nil
}

// ProcessPath lints a single file or every HTML file below a directory.
// Files of a directory are linted concurrently; a file that fails is logged
// and skipped.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	path string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !internal.IsHTMLFile(path) {
			return nil, nil
		}
		return processor(engine, path)
	}

	files, err := collectFiles(path)
	if err != nil {
		return nil, err
	}

	bar := newProgressBar(path, len(files))

	p := pool.NewWithResults[[]tt.Issue]().
		WithContext(ctx).
		WithMaxGoroutines(runtime.NumCPU())

	for _, fp := range files {
		p.Go(func(ctx context.Context) ([]tt.Issue, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			defer bar.Add(1)

			fileIssues, err := processor(engine, fp)
			if err != nil {
				if logger != nil {
					logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
				}
				return nil, nil
			}
			return fileIssues, nil
		})
	}

	results, err := p.Wait()
	_ = bar.Finish()
	if err != nil {
		return nil, err
	}

	var issues []tt.Issue
	for _, result := range results {
		issues = append(issues, result...)
	}
	sortByFile(issues)

	return issues, nil
}

func collectFiles(root string) ([]string, error) {
	found, err := scanner.New(root, ".html", ".htm").Scan()
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(found))
	for _, f := range found {
		files = append(files, f.Path)
	}
	return files, nil
}

// newProgressBar draws on stderr only when it is a terminal.
func newProgressBar(description string, total int) *progressbar.ProgressBar {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return progressbar.DefaultSilent(int64(total))
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

// sortByFile orders issues by filename, keeping each file's own order.
func sortByFile(issues []tt.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Filename < issues[j].Filename
	})
}

func ProcessFile(engine LintEngine, filePath string) ([]tt.Issue, error) {
	return engine.Run(filePath)
}

func ProcessSource(engine LintEngine, source []byte) ([]tt.Issue, error) {
	return engine.RunSource(source)
}

// Config represents the overall configuration with a name and a slice of rules.
type Config struct {
	Name  string                   `yaml:"name"`
	Rules map[string]tt.ConfigRule `yaml:"rules"`
}

// DefaultConfig lists every known rule with its default severity.
func DefaultConfig() Config {
	config := Config{
		Name:  "hlin",
		Rules: make(map[string]tt.ConfigRule, len(lints.DefaultSeverities)),
	}
	for name, severity := range lints.DefaultSeverities {
		config.Rules[name] = tt.ConfigRule{Severity: severity}
	}
	return config
}

func parseConfigurationFile(configurationPath string) (Config, error) {
	var config Config
	if configurationPath == "" {
		return config, nil
	}

	f, err := os.Open(configurationPath)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("error opening configuration: %w", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("error parsing configuration %s: %w", configurationPath, err)
	}

	return config, nil
}
