package store

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/rcliao/training-journal/internal/model"
)

func newTestStore(t *testing.T) *JSONStore {
	t.Helper()
	s := NewJSONStore(filepath.Join(t.TempDir(), "training_log.json"), nil)
	s.Now = func() time.Time { return time.Date(2024, 1, 15, 18, 30, 0, 0, time.Local) }
	return s
}

func mustAdd(t *testing.T, s *JSONStore, exercise, weight, reps string) *model.Entry {
	t.Helper()
	e, err := s.Add(context.Background(), AddParams{Exercise: exercise, Weight: weight, Repetitions: reps})
	if err != nil {
		t.Fatalf("add %s: %v", exercise, err)
	}
	return e
}

func TestLoadMissingFile(t *testing.T) {
	s := newTestStore(t)

	entries, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", entries)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	for _, content := range []string{"{not json", "", "   \n", `{"id": 1}`, "null"} {
		s := newTestStore(t)
		if err := os.WriteFile(s.Path(), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		entries, err := s.Load(context.Background())
		if err != nil {
			t.Errorf("load %q: %v", content, err)
		}
		if len(entries) != 0 {
			t.Errorf("load %q: expected empty, got %d entries", content, len(entries))
		}
	}
}

func TestLoadTimestampAlias(t *testing.T) {
	s := newTestStore(t)
	legacy := `[{"id": 3, "timestamp": "2024-02-01 07:00:00", "exercise": "Squat", "weight": "100", "repetitions": "5"}]`
	if err := os.WriteFile(s.Path(), []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, _ := s.Load(context.Background())
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Date != "2024-02-01 07:00:00" {
		t.Errorf("expected date from timestamp key, got %q", entries[0].Date)
	}
}

func TestLoadNumericFields(t *testing.T) {
	s := newTestStore(t)
	raw := `[
    {"id": 1, "date": "2024-01-10 08:00:00", "exercise": "Squat", "weight": "100", "repetitions": "5"},
    {"id": "2", "date": "2024-01-11 08:00:00", "exercise": "Squat", "weight": 102.5, "repetitions": 5}
]`
	if err := os.WriteFile(s.Path(), []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []model.Entry{
		{ID: 1, Date: "2024-01-10 08:00:00", Exercise: "Squat", Weight: "100", Repetitions: "5"},
		{ID: 2, Date: "2024-01-11 08:00:00", Exercise: "Squat", Weight: "102.5", Repetitions: "5"},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}

	added := mustAdd(t, s, "Bench", "80", "8")
	if added.ID != 3 {
		t.Errorf("expected id 3 after numeric entries, got %d", added.ID)
	}
	entries, _ = s.Load(context.Background())
	if len(entries) != 3 {
		t.Errorf("expected 3 entries after add, got %d", len(entries))
	}
}

func TestAddSetsAsideCorruptFile(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	original := []byte(`[{"id": 1, "exercise": "Squat", "weight": {"kg": 100}}]`)
	if err := os.WriteFile(s.Path(), original, 0o644); err != nil {
		t.Fatal(err)
	}

	mustAdd(t, s, "Bench", "80", "8")

	aside, err := filepath.Glob(s.Path() + ".corrupt-*")
	if err != nil {
		t.Fatal(err)
	}
	if len(aside) != 1 {
		t.Fatalf("expected one set-aside file, got %v", aside)
	}
	if got := filepath.Base(aside[0]); got != "training_log.json.corrupt-20240115-183000" {
		t.Errorf("unexpected set-aside name %q", got)
	}
	kept, err := os.ReadFile(aside[0])
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(kept, original) {
		t.Errorf("set-aside content changed: %s", kept)
	}

	entries, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 1 || entries[0].Exercise != "Bench" {
		t.Errorf("expected only the new entry, got %+v", entries)
	}
}

func TestLoadCorruptFileLeavesItInPlace(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(s.Path(), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.List(context.Background(), FilterParams{}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := os.Stat(s.Path()); err != nil {
		t.Errorf("read-only operation moved the store: %v", err)
	}
	aside, _ := filepath.Glob(s.Path() + ".corrupt-*")
	if len(aside) != 0 {
		t.Errorf("unexpected set-aside files %v", aside)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	mustAdd(t, s, "Squat", "100", "5")
	mustAdd(t, s, "Жим лежа", "80", "8")

	before, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}

	entries, _ := s.Load(ctx)
	if err := s.Save(ctx, entries); err != nil {
		t.Fatalf("save: %v", err)
	}

	after, _ := os.ReadFile(s.Path())
	if !bytes.Equal(before, after) {
		t.Errorf("save(load()) changed the file:\n%s", cmp.Diff(string(before), string(after)))
	}

	reloaded, _ := s.Load(ctx)
	if diff := cmp.Diff(entries, reloaded); diff != "" {
		t.Errorf("reloaded entries differ (-want +got):\n%s", diff)
	}
}

func TestSaveFormat(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "Squat", "100", "5")

	data, _ := os.ReadFile(s.Path())
	want := `[
    {
        "id": 1,
        "date": "2024-01-15 18:30:00",
        "exercise": "Squat",
        "weight": "100",
        "repetitions": "5"
    }
]
`
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("file content (-want +got):\n%s", diff)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "Squat", "100", "5")
	mustAdd(t, s, "Squat", "100", "5")

	files, _ := os.ReadDir(filepath.Dir(s.Path()))
	if len(files) != 1 {
		var names []string
		for _, f := range files {
			names = append(names, f.Name())
		}
		t.Errorf("expected only the store file, got %v", names)
	}
}

func TestAdd(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	first := mustAdd(t, s, "Squat", "100", "5")
	if first.ID != 1 {
		t.Errorf("expected id 1, got %d", first.ID)
	}
	if first.Date != "2024-01-15 18:30:00" {
		t.Errorf("expected clock timestamp, got %q", first.Date)
	}

	before, _ := s.Load(ctx)
	e, err := s.Add(ctx, AddParams{Exercise: " Deadlift ", Weight: "140", Repetitions: "3"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	after, _ := s.Load(ctx)

	if len(after) != len(before)+1 {
		t.Fatalf("expected %d entries, got %d", len(before)+1, len(after))
	}
	want := model.Entry{ID: 2, Date: "2024-01-15 18:30:00", Exercise: "Deadlift", Weight: "140", Repetitions: "3"}
	if diff := cmp.Diff(want, *e); diff != "" {
		t.Errorf("returned entry (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, after[len(after)-1]); diff != "" {
		t.Errorf("stored entry (-want +got):\n%s", diff)
	}
}

func TestAddValidation(t *testing.T) {
	tests := []struct {
		name string
		p    AddParams
	}{
		{"no exercise", AddParams{Weight: "100", Repetitions: "5"}},
		{"no weight", AddParams{Exercise: "Squat", Repetitions: "5"}},
		{"no reps", AddParams{Exercise: "Squat", Weight: "100"}},
		{"blank exercise", AddParams{Exercise: "   ", Weight: "100", Repetitions: "5"}},
		{"bad date", AddParams{Exercise: "Squat", Weight: "100", Repetitions: "5", Date: "15.01.2024"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			_, err := s.Add(context.Background(), tt.p)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if _, statErr := os.Stat(s.Path()); statErr == nil {
				t.Error("store file should not be written on validation failure")
			}
		})
	}
}

func TestAddExplicitDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e, err := s.Add(ctx, AddParams{Exercise: "Squat", Weight: "100", Repetitions: "5", Date: "2023-12-31"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if e.Date != "2023-12-31 00:00:00" {
		t.Errorf("expected midnight timestamp, got %q", e.Date)
	}

	e, _ = s.Add(ctx, AddParams{Exercise: "Squat", Weight: "100", Repetitions: "5", Date: "2023-12-31 09:15:00"})
	if e.Date != "2023-12-31 09:15:00" {
		t.Errorf("expected timestamp kept, got %q", e.Date)
	}
}

func TestIDsNotReusedAfterDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	mustAdd(t, s, "Squat", "100", "5")
	second := mustAdd(t, s, "Squat", "100", "5")
	third := mustAdd(t, s, "Squat", "100", "5")

	if err := s.Delete(ctx, second.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	next := mustAdd(t, s, "Squat", "100", "5")
	if next.ID != third.ID+1 {
		t.Errorf("expected id %d, got %d", third.ID+1, next.ID)
	}

	entries, _ := s.Load(ctx)
	seen := map[int]bool{}
	for _, e := range entries {
		if seen[e.ID] {
			t.Errorf("duplicate id %d", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestAddBatch(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	mustAdd(t, s, "Squat", "100", "5")

	added, err := s.AddBatch(ctx, []AddParams{
		{Exercise: "Bench", Weight: "80", Repetitions: "8", Date: "2024-01-02 10:00:00"},
		{Exercise: "Row", Weight: "60", Repetitions: "10", Date: "2024-01-03 10:00:00"},
	})
	if err != nil {
		t.Fatalf("add batch: %v", err)
	}
	if len(added) != 2 || added[0].ID != 2 || added[1].ID != 3 {
		t.Errorf("unexpected ids: %+v", added)
	}

	entries, _ := s.Load(ctx)
	if len(entries) != 3 {
		t.Errorf("expected 3 entries, got %d", len(entries))
	}
}

func TestAddBatchAllOrNothing(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	mustAdd(t, s, "Squat", "100", "5")

	_, err := s.AddBatch(ctx, []AddParams{
		{Exercise: "Bench", Weight: "80", Repetitions: "8"},
		{Exercise: "Row", Weight: "", Repetitions: "10"},
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	entries, _ := s.Load(ctx)
	if len(entries) != 1 {
		t.Errorf("expected batch to be rejected whole, got %d entries", len(entries))
	}
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	e := mustAdd(t, s, "Squat", "100", "5")

	got, err := s.Get(ctx, e.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Exercise != "Squat" {
		t.Errorf("expected Squat, got %q", got.Exercise)
	}

	if _, err := s.Get(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	mustAdd(t, s, "Squat", "100", "5")
	e := mustAdd(t, s, "Squat", "100", "5")

	weight := "105"
	date := "2024-01-14"
	got, err := s.Update(ctx, UpdateParams{ID: e.ID, Weight: &weight, Date: &date})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	want := model.Entry{ID: e.ID, Date: "2024-01-14 00:00:00", Exercise: "Squat", Weight: "105", Repetitions: "5"}
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Errorf("updated entry (-want +got):\n%s", diff)
	}

	entries, _ := s.Load(ctx)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if diff := cmp.Diff(want, entries[1]); diff != "" {
		t.Errorf("stored entry (-want +got):\n%s", diff)
	}
	if entries[0].Weight != "100" {
		t.Error("other entries must be untouched")
	}
}

func TestUpdateErrors(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	e := mustAdd(t, s, "Squat", "100", "5")

	empty := " "
	if _, err := s.Update(ctx, UpdateParams{ID: e.ID, Exercise: &empty}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
	bad := "yesterday"
	if _, err := s.Update(ctx, UpdateParams{ID: e.ID, Date: &bad}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for date, got %v", err)
	}
	reps := "6"
	if _, err := s.Update(ctx, UpdateParams{ID: 42, Repetitions: &reps}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	got, _ := s.Get(ctx, e.ID)
	if got.Exercise != "Squat" {
		t.Error("failed update must not modify the entry")
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	mustAdd(t, s, "Squat", "100", "5")
	victim := mustAdd(t, s, "Bench", "80", "8")
	mustAdd(t, s, "Squat", "100", "5")

	if err := s.Delete(ctx, victim.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	entries, _ := s.Load(ctx)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.ID == victim.ID {
			t.Errorf("entry %d still present", victim.ID)
		}
	}

	benches, _ := s.List(ctx, FilterParams{Exercise: "Bench"})
	if len(benches) != 0 {
		t.Errorf("filter still returns deleted entry: %+v", benches)
	}
	sum, err := Aggregate(entries)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if _, ok := sum.Totals("Bench"); ok {
		t.Error("aggregate still includes deleted exercise")
	}
}

func TestDeleteNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	mustAdd(t, s, "Squat", "100", "5")

	err := s.Delete(ctx, 7)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	entries, _ := s.Load(ctx)
	if len(entries) != 1 {
		t.Errorf("expected store unchanged, got %d entries", len(entries))
	}
}

func TestListLimitKeepsNewest(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 5; i++ {
		mustAdd(t, s, "Squat", "100", "5")
	}

	got, err := s.List(context.Background(), FilterParams{Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != 4 || got[1].ID != 5 {
		t.Errorf("expected ids 4,5 got %+v", got)
	}
}

func TestExercises(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "Squat", "100", "5")
	mustAdd(t, s, "Bench", "80", "8")
	mustAdd(t, s, "Squat", "100", "5")

	got, err := s.Exercises(context.Background())
	if err != nil {
		t.Fatalf("exercises: %v", err)
	}
	if diff := cmp.Diff([]string{"Squat", "Bench"}, got); diff != "" {
		t.Errorf("exercises (-want +got):\n%s", diff)
	}
}

func TestSaveUnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewJSONStore(filepath.Join(blocker, "training_log.json"), nil)

	err := s.Save(context.Background(), []model.Entry{{ID: 1}})
	if !errors.Is(err, ErrIO) {
		t.Errorf("expected ErrIO, got %v", err)
	}
}

func TestCancelledContext(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Load(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
