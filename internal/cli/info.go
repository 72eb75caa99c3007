package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show store file statistics",
		Run:   runInfo,
	}

	RootCmd.AddCommand(cmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	info, err := openStore().Info(cmd.Context())
	if err != nil {
		exitErr("info", err)
	}

	if !textOutput() {
		printJSON(cmd, info)
		return
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "file:      %s (%s)\n", info.Path, humanize.Bytes(uint64(info.SizeBytes)))
	fmt.Fprintf(w, "entries:   %s\n", humanize.Comma(int64(info.Entries)))
	fmt.Fprintf(w, "exercises: %d\n", info.Exercises)
	if info.Entries > 0 {
		fmt.Fprintf(w, "range:     %s .. %s\n", info.First, info.Last)
	}
	fmt.Fprintf(w, "next id:   %d\n", info.NextID)
}
