// Package model defines the core training journal data types.
package model

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	// TimestampLayout is the layout of Entry.Date.
	TimestampLayout = "2006-01-02 15:04:05"
	// DateLayout is the layout of the date part of Entry.Date and of filter bounds.
	DateLayout = "2006-01-02"
)

// Entry represents one logged exercise set.
//
// Weight and Repetitions are kept as text, the way they were typed; they
// only need to parse as integers when aggregated.
type Entry struct {
	ID          int    `json:"id"`
	Date        string `json:"date"`
	Exercise    string `json:"exercise"`
	Weight      string `json:"weight"`
	Repetitions string `json:"repetitions"`
}

// Day parses the YYYY-MM-DD prefix of Date. ok is false when it is malformed.
func (e Entry) Day() (day time.Time, ok bool) {
	if len(e.Date) < len(DateLayout) {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, e.Date[:len(DateLayout)])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// UnmarshalJSON accepts "timestamp" as an alias for "date", and JSON numbers
// as well as strings for id, weight and repetitions.
func (e *Entry) UnmarshalJSON(b []byte) error {
	type plain Entry
	var aux struct {
		plain
		ID          json.Number  `json:"id"`
		Weight      textOrNumber `json:"weight"`
		Repetitions textOrNumber `json:"repetitions"`
		Timestamp   string       `json:"timestamp"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*e = Entry(aux.plain)
	if aux.ID != "" {
		id, err := aux.ID.Int64()
		if err != nil {
			return fmt.Errorf("id %q: %w", aux.ID, err)
		}
		e.ID = int(id)
	}
	e.Weight = string(aux.Weight)
	e.Repetitions = string(aux.Repetitions)
	if e.Date == "" {
		e.Date = aux.Timestamp
	}
	return nil
}

// textOrNumber decodes a JSON string or number into its text form.
type textOrNumber string

func (t *textOrNumber) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = textOrNumber(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("want string or number, got %s", b)
	}
	*t = textOrNumber(n.String())
	return nil
}

// DefaultExercises is the preset exercise list offered when none is configured.
var DefaultExercises = []string{
	"Приседание",
	"Жим лежа",
	"Подтягивание",
}
