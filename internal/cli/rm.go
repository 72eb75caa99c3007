package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		Run:   runRm,
	}

	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	id := parseID(args[0])

	if err := openStore().Delete(cmd.Context(), id); err != nil {
		exitErr("rm", err)
	}

	printReply(cmd, fmt.Sprintf(`{"ok":true,"id":%d}`, id), fmt.Sprintf("deleted entry %d", id))
}
