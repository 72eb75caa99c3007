package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/training-journal/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Change an entry",
		Long:  "Change an entry. Only the flags given are changed; the id is kept.",
		Args:  cobra.ExactArgs(1),
		Run:   runUpdate,
	}

	cmd.Flags().StringP("exercise", "e", "", "Exercise name")
	cmd.Flags().StringP("weight", "w", "", "Weight")
	cmd.Flags().StringP("reps", "r", "", "Repetitions")
	cmd.Flags().String("date", "", "Date (YYYY-MM-DD or YYYY-MM-DD HH:MM:SS)")

	RootCmd.AddCommand(cmd)
}

func runUpdate(cmd *cobra.Command, args []string) {
	id := parseID(args[0])

	changed := func(name string) *string {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		v, _ := cmd.Flags().GetString(name)
		return &v
	}
	p := store.UpdateParams{
		ID:          id,
		Exercise:    changed("exercise"),
		Weight:      changed("weight"),
		Repetitions: changed("reps"),
		Date:        changed("date"),
	}
	if p.Exercise == nil && p.Weight == nil && p.Repetitions == nil && p.Date == nil {
		exitErr("update", fmt.Errorf("%w: nothing to change", store.ErrValidation))
	}

	e, err := openStore().Update(cmd.Context(), p)
	if err != nil {
		exitErr("update", err)
	}
	printEntry(cmd, e)
}
