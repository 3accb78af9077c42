package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gnolang/hlin/formatter"
	"github.com/gnolang/hlin/internal"
	tt "github.com/gnolang/hlin/internal/types"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Re-lint HTML files whenever they change",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			args = []string{"."}
		}

		engine, err := newEngine()
		if err != nil {
			exitWithError("Failed to initialize lint engine", err)
		}
		engine.WatchDirs(args...)
		engine.OnReport(printWatchReport)

		if err := engine.StartWatching(); err != nil {
			exitWithError("Failed to start watching", err)
		}
		fmt.Printf("Watching %v for changes (Ctrl+C to stop)\n", args)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()

		if err := engine.StopWatching(); err != nil {
			exitWithError("Failed to stop watching", err)
		}
	},
}

func init() {
	watchCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of lint rules to ignore")
	watchCmd.Flags().StringVar(&ignorePaths, "ignore-paths", "", "Comma-separated list of paths or glob patterns to ignore")
}

func printWatchReport(filename string, issues []tt.Issue) {
	if len(issues) == 0 {
		fmt.Printf("%s: no issues\n", filename)
		return
	}
	sourceCode, err := internal.ReadSourceCode(filename)
	if err != nil {
		sourceCode = nil
	}
	fmt.Println(formatter.GenerateFormattedIssue(issues, sourceCode))
}
