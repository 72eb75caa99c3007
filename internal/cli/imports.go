package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "imports",
		Short: "Show CSV import history",
		Run:   runImports,
	}

	cmd.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(cmd)
}

func runImports(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	l, err := openLedger()
	if err != nil {
		exitErr("open ledger", err)
	}
	defer l.Close()

	imports, err := l.List(cmd.Context(), limit)
	if err != nil {
		exitErr("imports", err)
	}

	if !textOutput() {
		printJSON(cmd, imports)
		return
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BATCH\tIMPORTED\tROWS\tSOURCE")
	for _, imp := range imports {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", imp.ID, imp.ImportedAt.Local().Format("2006-01-02 15:04"), imp.Rows, imp.Source)
	}
	tw.Flush()
}
