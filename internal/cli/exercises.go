package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "exercises",
		Short: "List preset and logged exercise names",
		Run:   runExercises,
	}

	RootCmd.AddCommand(cmd)
}

type exerciseName struct {
	Name   string `json:"name"`
	Preset bool   `json:"preset"`
	Logged bool   `json:"logged"`
}

func runExercises(cmd *cobra.Command, args []string) {
	logged, err := openStore().Exercises(cmd.Context())
	if err != nil {
		exitErr("exercises", err)
	}

	var names []exerciseName
	index := map[string]int{}
	for _, n := range cfg.Exercises {
		if _, ok := index[n]; ok {
			continue
		}
		index[n] = len(names)
		names = append(names, exerciseName{Name: n, Preset: true})
	}
	for _, n := range logged {
		if i, ok := index[n]; ok {
			names[i].Logged = true
			continue
		}
		index[n] = len(names)
		names = append(names, exerciseName{Name: n, Logged: true})
	}

	if textOutput() {
		for _, n := range names {
			fmt.Fprintln(cmd.OutOrStdout(), n.Name)
		}
		return
	}
	printJSON(cmd, names)
}
