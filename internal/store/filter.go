package store

import (
	"strings"
	"time"

	"github.com/rcliao/training-journal/internal/model"
)

// Filter returns the entries whose day lies within [p.Start, p.End] and whose
// exercise equals p.Exercise. Empty bounds and an empty exercise match
// everything. Order is preserved; p.Limit is ignored here.
func Filter(entries []model.Entry, p FilterParams) ([]model.Entry, error) {
	start, hasStart, err := parseBound("start", p.Start)
	if err != nil {
		return nil, err
	}
	end, hasEnd, err := parseBound("end", p.End)
	if err != nil {
		return nil, err
	}
	if hasStart && hasEnd && start.After(end) {
		return nil, validationErr("start %s is after end %s", p.Start, p.End)
	}
	exercise := strings.TrimSpace(p.Exercise)

	out := []model.Entry{}
	for _, e := range entries {
		if exercise != "" && e.Exercise != exercise {
			continue
		}
		if hasStart || hasEnd {
			day, ok := e.Day()
			if !ok {
				continue
			}
			if hasStart && day.Before(start) {
				continue
			}
			if hasEnd && day.After(end) {
				continue
			}
		}
		out = append(out, e)
	}
	return out, nil
}

func parseBound(name, s string) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, nil
	}
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return time.Time{}, false, validationErr("%s date %q must be YYYY-MM-DD", name, s)
	}
	return t, true, nil
}
