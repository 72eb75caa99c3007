package store

import (
	"context"
	"os"
)

// Info holds store file statistics.
type Info struct {
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
	Entries   int    `json:"entries"`
	Exercises int    `json:"exercises"`
	First     string `json:"first,omitempty"`
	Last      string `json:"last,omitempty"`
	NextID    int    `json:"next_id"`
}

// Info returns statistics about the backing file.
func (s *JSONStore) Info(ctx context.Context) (*Info, error) {
	info := &Info{Path: s.path}

	if fi, err := os.Stat(s.path); err == nil {
		info.SizeBytes = fi.Size()
	}

	entries, err := s.Load(ctx)
	if err != nil {
		return info, err
	}
	info.Entries = len(entries)
	info.NextID = nextID(entries)

	seen := map[string]bool{}
	for _, e := range entries {
		seen[e.Exercise] = true
		if info.First == "" || e.Date < info.First {
			info.First = e.Date
		}
		if e.Date > info.Last {
			info.Last = e.Date
		}
	}
	info.Exercises = len(seen)
	return info, nil
}
