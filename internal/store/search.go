package store

import (
	"context"
	"strings"

	"github.com/rcliao/training-journal/internal/model"
)

// SearchParams holds parameters for searching entries by exercise name.
type SearchParams struct {
	Query string
	Limit int
}

// Search finds entries whose exercise contains the query, case-insensitively, newest first.
func (s *JSONStore) Search(ctx context.Context, p SearchParams) ([]model.Entry, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}
	query := strings.ToLower(strings.TrimSpace(p.Query))

	entries, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	results := []model.Entry{}
	for i := len(entries) - 1; i >= 0 && len(results) < limit; i-- {
		if strings.Contains(strings.ToLower(entries[i].Exercise), query) {
			results = append(results, entries[i])
		}
	}
	return results, nil
}
