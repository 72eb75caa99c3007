package store

import (
	"strconv"
	"strings"

	"github.com/rcliao/training-journal/internal/model"
)

// ExerciseTotals holds per-exercise sums.
type ExerciseTotals struct {
	Exercise    string `json:"exercise"`
	Sets        int    `json:"sets"`
	TotalReps   int    `json:"total_reps"`
	TotalWeight int    `json:"total_weight"`
}

// AvgWeightPerRep returns TotalWeight / TotalReps.
func (t ExerciseTotals) AvgWeightPerRep() (float64, error) {
	if t.TotalReps == 0 {
		return 0, ErrDivideByZero
	}
	return float64(t.TotalWeight) / float64(t.TotalReps), nil
}

// Summary is the aggregate over a sequence of entries.
type Summary struct {
	Entries     int              `json:"entries"`
	TotalReps   int              `json:"total_reps"`
	TotalWeight int              `json:"total_weight"`
	Exercises   []ExerciseTotals `json:"exercises"`
}

// Totals returns the totals for one exercise.
func (s *Summary) Totals(exercise string) (ExerciseTotals, bool) {
	for _, t := range s.Exercises {
		if t.Exercise == exercise {
			return t, true
		}
	}
	return ExerciseTotals{}, false
}

// Aggregate groups entries by exercise, in first-appearance order, and sums
// repetitions and weight. A non-integer value is returned as *ParseError.
func Aggregate(entries []model.Entry) (*Summary, error) {
	sum := &Summary{Exercises: []ExerciseTotals{}}
	index := map[string]int{}

	for _, e := range entries {
		reps, err := parseInt(e, "repetitions", e.Repetitions)
		if err != nil {
			return nil, err
		}
		weight, err := parseInt(e, "weight", e.Weight)
		if err != nil {
			return nil, err
		}

		i, ok := index[e.Exercise]
		if !ok {
			i = len(sum.Exercises)
			index[e.Exercise] = i
			sum.Exercises = append(sum.Exercises, ExerciseTotals{Exercise: e.Exercise})
		}
		t := &sum.Exercises[i]
		t.Sets++
		t.TotalReps += reps
		t.TotalWeight += weight

		sum.Entries++
		sum.TotalReps += reps
		sum.TotalWeight += weight
	}
	return sum, nil
}

func parseInt(e model.Entry, field, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, &ParseError{ID: e.ID, Field: field, Value: value, Err: err}
	}
	return n, nil
}
