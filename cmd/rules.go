package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gnolang/hlin/internal/lints"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the available rules and their default severity",
	Run: func(cmd *cobra.Command, args []string) {
		_ = printRules(os.Stdout)
	},
}

func printRules(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RULE\tDEFAULT")
	for _, name := range lints.RuleNames() {
		fmt.Fprintf(tw, "%s\t%s\n", name, strings.ToLower(lints.DefaultSeverities[name].String()))
	}
	return tw.Flush()
}
