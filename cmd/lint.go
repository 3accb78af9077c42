package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/hlin/formatter"
	"github.com/gnolang/hlin/internal"
	tt "github.com/gnolang/hlin/internal/types"
	"github.com/gnolang/hlin/lint"
)

var (
	ignoreRules    string
	ignorePaths    string
	lintJsonOutput bool
	outPath        string
	cacheDir       string
)

var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Lint HTML files and directories",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := newEngine()
		if err != nil {
			exitWithError("Failed to initialize lint engine", err)
		}

		runNormalLintProcess(ctx, logger, engine, args, lintJsonOutput, outPath)
	},
}

func init() {
	lintCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of lint rules to ignore")
	lintCmd.Flags().StringVar(&ignorePaths, "ignore-paths", "", "Comma-separated list of paths or glob patterns to ignore")
	lintCmd.Flags().BoolVar(&lintJsonOutput, "json", false, "Output issues in JSON format")
	lintCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
	lintCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Directory used to cache lint results")
}

// newEngine builds an engine from the configuration file and the lint flags.
func newEngine() (*internal.Engine, error) {
	engine, err := lint.New(cfgFile)
	if err != nil {
		return nil, err
	}
	engine.SetLogger(logger)

	for _, rule := range splitList(ignoreRules) {
		engine.IgnoreRule(rule)
	}
	for _, path := range splitList(ignorePaths) {
		engine.IgnorePath(path)
	}

	if cacheDir != "" {
		cache, err := internal.NewCache(cacheDir)
		if err != nil {
			return nil, err
		}
		engine.SetCache(cache)
	}

	return engine, nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func runNormalLintProcess(ctx context.Context, logger *zap.Logger, engine lint.LintEngine, paths []string, isJson bool, jsonOutput string) {
	issues, err := lint.ProcessFiles(ctx, logger, engine, paths, lint.ProcessFile)
	if err != nil {
		exitWithError("Error processing files", err)
	}

	if err := printIssues(os.Stdout, logger, issues, isJson, jsonOutput); err != nil {
		exitWithError("Error printing issues", err)
	}

	if hasErrors(issues) {
		_ = logger.Sync()
		os.Exit(1)
	}
}

// hasErrors reports whether any issue has error severity; warnings alone
// do not fail the run.
func hasErrors(issues []tt.Issue) bool {
	for _, issue := range issues {
		if issue.Severity == tt.SeverityError {
			return true
		}
	}
	return false
}

func groupByFile(issues []tt.Issue) (map[string][]tt.Issue, []string) {
	issuesByFile := make(map[string][]tt.Issue)
	for _, issue := range issues {
		issuesByFile[issue.Filename] = append(issuesByFile[issue.Filename], issue)
	}

	sortedFiles := make([]string, 0, len(issuesByFile))
	for filename := range issuesByFile {
		sortedFiles = append(sortedFiles, filename)
	}
	sort.Strings(sortedFiles)
	return issuesByFile, sortedFiles
}

func printIssues(w io.Writer, logger *zap.Logger, issues []tt.Issue, isJson bool, jsonOutput string) error {
	issuesByFile, sortedFiles := groupByFile(issues)

	if !isJson {
		for _, filename := range sortedFiles {
			fileIssues := issuesByFile[filename]
			sourceCode, err := internal.ReadSourceCode(filename)
			if err != nil {
				logger.Error("Error reading source file", zap.String("file", filename), zap.Error(err))
				continue
			}
			fmt.Fprintln(w, formatter.GenerateFormattedIssue(fileIssues, sourceCode))
		}
		return nil
	}

	d, err := json.Marshal(issuesByFile)
	if err != nil {
		return fmt.Errorf("error marshalling issues to JSON: %w", err)
	}
	if jsonOutput == "" {
		_, err = fmt.Fprintln(w, string(d))
		return err
	}
	if err := os.WriteFile(jsonOutput, d, 0o644); err != nil {
		return fmt.Errorf("error writing JSON output file: %w", err)
	}
	return nil
}
