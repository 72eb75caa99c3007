package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/training-journal/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Per-exercise totals",
		Long:  "Sum repetitions and weight per exercise over the selected entries. Text output adds a bar chart.",
		Run:   runStats,
	}

	addFilterFlags(cmd)

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	entries, err := openStore().List(cmd.Context(), filterParams(cmd))
	if err != nil {
		exitErr("stats", err)
	}

	sum, err := store.Aggregate(entries)
	if err != nil {
		exitErr("stats", err)
	}
	printStats(cmd, sum)
}
