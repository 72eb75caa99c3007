package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/training-journal/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries",
		Run:   runList,
	}

	addFilterFlags(cmd)
	cmd.Flags().IntP("limit", "l", 0, "Show only the newest N entries")

	RootCmd.AddCommand(cmd)
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("start", "", "First day (YYYY-MM-DD), inclusive")
	cmd.Flags().String("end", "", "Last day (YYYY-MM-DD), inclusive")
	cmd.Flags().StringP("exercise", "e", "", "Only this exercise")
}

func filterParams(cmd *cobra.Command) store.FilterParams {
	start, _ := cmd.Flags().GetString("start")
	end, _ := cmd.Flags().GetString("end")
	exercise, _ := cmd.Flags().GetString("exercise")
	return store.FilterParams{Start: start, End: end, Exercise: exercise}
}

func runList(cmd *cobra.Command, args []string) {
	p := filterParams(cmd)
	p.Limit, _ = cmd.Flags().GetInt("limit")

	entries, err := openStore().List(cmd.Context(), p)
	if err != nil {
		exitErr("list", err)
	}
	printEntries(cmd, entries)
}
