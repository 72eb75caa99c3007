package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rcliao/training-journal/internal/model"
)

var _ Store = (*JSONStore)(nil)

// JSONStore implements Store over a single pretty-printed JSON file.
// Every operation re-reads the file; nothing is cached between calls.
type JSONStore struct {
	path string
	log  *slog.Logger

	// Now stamps new entries. Defaults to time.Now.
	Now func() time.Time
}

// NewJSONStore returns a store backed by the file at path. The file need not exist.
func NewJSONStore(path string, log *slog.Logger) *JSONStore {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &JSONStore{path: path, log: log, Now: time.Now}
}

// Path returns the backing file path.
func (s *JSONStore) Path() string { return s.path }

func (s *JSONStore) Load(ctx context.Context) ([]model.Entry, error) {
	entries, _, err := s.load(ctx)
	return entries, err
}

// load is Load that also reports whether an existing file could not be
// read or decoded.
func (s *JSONStore) load(ctx context.Context) (entries []model.Entry, damaged bool, err error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []model.Entry{}, false, nil
	}
	if err != nil {
		s.log.Warn("store unreadable, treating as empty", "path", s.path, "error", err)
		return []model.Entry{}, true, nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []model.Entry{}, false, nil
	}

	if err := json.Unmarshal(data, &entries); err != nil {
		s.log.Warn("store corrupt, treating as empty", "path", s.path, "error", err)
		return []model.Entry{}, true, nil
	}
	if entries == nil {
		entries = []model.Entry{}
	}
	return entries, false, nil
}

// loadForWrite loads entries ahead of a rewrite. A damaged file is renamed
// to <path>.corrupt-<timestamp> first so the rewrite cannot destroy it.
func (s *JSONStore) loadForWrite(ctx context.Context) ([]model.Entry, error) {
	entries, damaged, err := s.load(ctx)
	if err != nil || !damaged {
		return entries, err
	}
	aside := s.path + ".corrupt-" + s.Now().Format("20060102-150405")
	if err := os.Rename(s.path, aside); err != nil {
		return nil, fmt.Errorf("%w: set aside damaged %s: %v", ErrIO, s.path, err)
	}
	s.log.Warn("damaged store set aside", "path", s.path, "moved_to", aside)
	return entries, nil
}

func (s *JSONStore) Save(ctx context.Context, entries []model.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if entries == nil {
		entries = []model.Entry{}
	}

	data, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	data = append(data, '\n')

	if err := writeFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrIO, s.path, err)
	}
	s.log.Debug("store saved", "path", s.path, "entries", len(entries))
	return nil
}

func (s *JSONStore) Add(ctx context.Context, p AddParams) (*model.Entry, error) {
	entries, err := s.AddBatch(ctx, []AddParams{p})
	if err != nil {
		return nil, err
	}
	return &entries[0], nil
}

func (s *JSONStore) AddBatch(ctx context.Context, rows []AddParams) ([]model.Entry, error) {
	now := s.Now().Format(model.TimestampLayout)

	added := make([]model.Entry, 0, len(rows))
	for i, p := range rows {
		e, err := newEntry(p, now)
		if err != nil {
			if len(rows) > 1 {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			return nil, err
		}
		added = append(added, e)
	}

	entries, err := s.loadForWrite(ctx)
	if err != nil {
		return nil, err
	}
	next := nextID(entries)
	for i := range added {
		added[i].ID = next + i
	}
	entries = append(entries, added...)

	if err := s.Save(ctx, entries); err != nil {
		return nil, err
	}
	return added, nil
}

func (s *JSONStore) Get(ctx context.Context, id int) (*model.Entry, error) {
	entries, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(entries, id)
	if i < 0 {
		return nil, notFound(id)
	}
	return &entries[i], nil
}

func (s *JSONStore) Update(ctx context.Context, p UpdateParams) (*model.Entry, error) {
	entries, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(entries, p.ID)
	if i < 0 {
		return nil, notFound(p.ID)
	}

	e := entries[i]
	fields := []struct {
		name string
		src  *string
		dst  *string
	}{
		{"exercise", p.Exercise, &e.Exercise},
		{"weight", p.Weight, &e.Weight},
		{"repetitions", p.Repetitions, &e.Repetitions},
	}
	for _, f := range fields {
		if f.src == nil {
			continue
		}
		v := strings.TrimSpace(*f.src)
		if v == "" {
			return nil, validationErr("%s is required", f.name)
		}
		*f.dst = v
	}
	if p.Date != nil {
		d, err := normalizeDate(*p.Date)
		if err != nil {
			return nil, err
		}
		e.Date = d
	}

	entries[i] = e
	if err := s.Save(ctx, entries); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *JSONStore) Delete(ctx context.Context, id int) error {
	entries, err := s.Load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(entries, id)
	if i < 0 {
		return notFound(id)
	}
	entries = append(entries[:i], entries[i+1:]...)
	return s.Save(ctx, entries)
}

func (s *JSONStore) List(ctx context.Context, p FilterParams) ([]model.Entry, error) {
	entries, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	out, err := Filter(entries, p)
	if err != nil {
		return nil, err
	}
	if p.Limit > 0 && len(out) > p.Limit {
		out = out[len(out)-p.Limit:]
	}
	return out, nil
}

// Exercises returns the distinct exercise names in first-appearance order.
func (s *JSONStore) Exercises(ctx context.Context) ([]string, error) {
	entries, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	names := []string{}
	for _, e := range entries {
		if seen[e.Exercise] {
			continue
		}
		seen[e.Exercise] = true
		names = append(names, e.Exercise)
	}
	return names, nil
}

func newEntry(p AddParams, now string) (model.Entry, error) {
	e := model.Entry{
		Date:        now,
		Exercise:    strings.TrimSpace(p.Exercise),
		Weight:      strings.TrimSpace(p.Weight),
		Repetitions: strings.TrimSpace(p.Repetitions),
	}
	var missing []string
	if e.Exercise == "" {
		missing = append(missing, "exercise")
	}
	if e.Weight == "" {
		missing = append(missing, "weight")
	}
	if e.Repetitions == "" {
		missing = append(missing, "repetitions")
	}
	if len(missing) > 0 {
		return e, validationErr("%s required", strings.Join(missing, ", "))
	}
	if strings.TrimSpace(p.Date) != "" {
		d, err := normalizeDate(p.Date)
		if err != nil {
			return e, err
		}
		e.Date = d
	}
	return e, nil
}

// normalizeDate accepts a full timestamp or a bare date (taken as midnight).
func normalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(model.TimestampLayout, s); err == nil {
		return t.Format(model.TimestampLayout), nil
	}
	if t, err := time.Parse(model.DateLayout, s); err == nil {
		return t.Format(model.TimestampLayout), nil
	}
	return "", validationErr("date %q must be YYYY-MM-DD or YYYY-MM-DD HH:MM:SS", s)
}

func nextID(entries []model.Entry) int {
	top := 0
	for _, e := range entries {
		if e.ID > top {
			top = e.ID
		}
	}
	return top + 1
}

func indexOf(entries []model.Entry, id int) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// writeFileAtomic writes data to a temp file beside path, syncs it and renames it over path.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return nil
}
