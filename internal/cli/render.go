package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/rcliao/training-journal/internal/model"
	"github.com/rcliao/training-journal/internal/store"
)

const chartWidth = 30

func printJSON(cmd *cobra.Command, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}

func textOutput() bool { return formatFlag == "text" }

// printReply prints the one-line JSON acknowledgement of an action, or text
// when --format text is set.
func printReply(cmd *cobra.Command, jsonLine, text string) {
	if textOutput() {
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), jsonLine)
}

func printEntries(cmd *cobra.Command, entries []model.Entry) {
	if !textOutput() {
		printJSON(cmd, entries)
		return
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tEXERCISE\tWEIGHT\tREPS")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", e.ID, e.Date, e.Exercise, e.Weight, e.Repetitions)
	}
	tw.Flush()
}

func printEntry(cmd *cobra.Command, e *model.Entry) {
	if !textOutput() {
		printJSON(cmd, e)
		return
	}
	printEntries(cmd, []model.Entry{*e})
}

// statsRow is the JSON shape of one exercise in stats output.
type statsRow struct {
	store.ExerciseTotals
	AvgWeightPerRep *float64 `json:"avg_weight_per_rep"`
}

type statsOutput struct {
	Entries     int        `json:"entries"`
	TotalReps   int        `json:"total_reps"`
	TotalWeight int        `json:"total_weight"`
	Exercises   []statsRow `json:"exercises"`
}

func newStatsOutput(sum *store.Summary) statsOutput {
	out := statsOutput{
		Entries:     sum.Entries,
		TotalReps:   sum.TotalReps,
		TotalWeight: sum.TotalWeight,
		Exercises:   []statsRow{},
	}
	for _, t := range sum.Exercises {
		row := statsRow{ExerciseTotals: t}
		if avg, err := t.AvgWeightPerRep(); err == nil {
			row.AvgWeightPerRep = &avg
		}
		out.Exercises = append(out.Exercises, row)
	}
	return out
}

func printStats(cmd *cobra.Command, sum *store.Summary) {
	if !textOutput() {
		printJSON(cmd, newStatsOutput(sum))
		return
	}
	w := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "EXERCISE\tSETS\tTOTAL REPS\tTOTAL WEIGHT\tAVG WEIGHT/REP")
	for _, t := range sum.Exercises {
		avg := "n/a"
		if v, err := t.AvgWeightPerRep(); err == nil {
			avg = humanize.FormatFloat("#,###.##", v)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", t.Exercise, t.Sets,
			humanize.Comma(int64(t.TotalReps)), humanize.Comma(int64(t.TotalWeight)), avg)
	}
	fmt.Fprintf(tw, "TOTAL\t%d\t%s\t%s\t\n", sum.Entries,
		humanize.Comma(int64(sum.TotalReps)), humanize.Comma(int64(sum.TotalWeight)))
	tw.Flush()

	if len(sum.Exercises) > 0 {
		fmt.Fprintln(w)
		writeChart(w, sum)
	}
}

// writeChart draws repetitions and weight per exercise as horizontal bars,
// each series scaled to its own maximum.
func writeChart(w io.Writer, sum *store.Summary) {
	maxReps, maxWeight := 0, 0
	for _, t := range sum.Exercises {
		maxReps = max(maxReps, t.TotalReps)
		maxWeight = max(maxWeight, t.TotalWeight)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	for _, t := range sum.Exercises {
		fmt.Fprintf(tw, "%s\treps\t%s %d\n", t.Exercise, bar(t.TotalReps, maxReps), t.TotalReps)
		fmt.Fprintf(tw, "\tweight\t%s %d\n", bar(t.TotalWeight, maxWeight), t.TotalWeight)
	}
	tw.Flush()
}

func bar(v, top int) string {
	if top <= 0 || v <= 0 {
		return ""
	}
	n := v * chartWidth / top
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}
