package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/training-journal/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a set",
		Long:  "Log a set. Exercise, weight and repetitions are required; the date defaults to now.",
		Args:  cobra.NoArgs,
		Run:   runAdd,
	}

	cmd.Flags().StringP("exercise", "e", "", "Exercise name")
	cmd.Flags().StringP("weight", "w", "", "Weight")
	cmd.Flags().StringP("reps", "r", "", "Repetitions")
	cmd.Flags().String("date", "", "Date (YYYY-MM-DD or YYYY-MM-DD HH:MM:SS), default now")

	RootCmd.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	exercise, _ := cmd.Flags().GetString("exercise")
	weight, _ := cmd.Flags().GetString("weight")
	reps, _ := cmd.Flags().GetString("reps")
	date, _ := cmd.Flags().GetString("date")

	e, err := openStore().Add(cmd.Context(), store.AddParams{
		Exercise:    exercise,
		Weight:      weight,
		Repetitions: reps,
		Date:        date,
	})
	if err != nil {
		exitErr("add", err)
	}

	log.Debug("entry added", "id", e.ID, "exercise", e.Exercise)
	printEntry(cmd, e)
}
