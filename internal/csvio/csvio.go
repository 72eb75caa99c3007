// Package csvio encodes and decodes the four-column CSV interchange file.
package csvio

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rcliao/training-journal/internal/model"
	"github.com/rcliao/training-journal/internal/store"
)

// Column order of an exported file.
const (
	ColDate = iota
	ColExercise
	ColWeight
	ColRepetitions
	numCols
)

// Headers are the localized header rows, keyed by language.
var Headers = map[string][]string{
	"ru": {"Дата", "Упражнение", "Вес", "Повторения"},
	"en": {"Date", "Exercise", "Weight", "Repetitions"},
}

// DefaultLang is the header language used when none is configured.
const DefaultLang = "ru"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrHeader indicates the header row does not name every required column.
var ErrHeader = errors.New("unrecognized csv header")

// Row is one decoded data row. Values are untrimmed and unvalidated.
type Row struct {
	Line        int
	Date        string
	Exercise    string
	Weight      string
	Repetitions string
}

// Write encodes entries with a header in the given language.
func Write(w io.Writer, entries []model.Entry, lang string) error {
	header, ok := Headers[lang]
	if !ok {
		return fmt.Errorf("unknown header language %q", lang)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write([]string{e.Date, e.Exercise, e.Weight, e.Repetitions}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read decodes a file produced by Write in any supported language.
// Columns are located by header name, so their order may differ.
func Read(r io.Reader) ([]Row, error) {
	br := bufio.NewReader(r)
	if bom, err := br.Peek(3); err == nil && bytes.Equal(bom, utf8BOM) {
		br.Discard(3)
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file", ErrHeader)
	}
	if err != nil {
		return nil, err
	}
	pos, err := columns(header)
	if err != nil {
		return nil, err
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if blank(rec) {
			continue
		}
		line, _ := cr.FieldPos(0)
		rows = append(rows, Row{
			Line:        line,
			Date:        field(rec, pos[ColDate]),
			Exercise:    field(rec, pos[ColExercise]),
			Weight:      field(rec, pos[ColWeight]),
			Repetitions: field(rec, pos[ColRepetitions]),
		})
	}
	return rows, nil
}

// columns maps each logical column to its index in header.
func columns(header []string) ([numCols]int, error) {
	var pos [numCols]int
	for i := range pos {
		pos[i] = -1
	}
	for i, name := range header {
		name = strings.TrimSpace(name)
		for _, names := range Headers {
			for col, want := range names {
				if strings.EqualFold(name, want) && pos[col] < 0 {
					pos[col] = i
				}
			}
		}
	}

	var missing []string
	for col, p := range pos {
		if p < 0 {
			missing = append(missing, Headers["en"][col])
		}
	}
	if len(missing) > 0 {
		return pos, fmt.Errorf("%w: missing %s", ErrHeader, strings.Join(missing, ", "))
	}
	return pos, nil
}

func field(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// ToAddParams converts decoded rows into store input, keeping each row's date.
func ToAddParams(rows []Row) []store.AddParams {
	out := make([]store.AddParams, 0, len(rows))
	for _, r := range rows {
		out = append(out, store.AddParams{
			Exercise:    r.Exercise,
			Weight:      r.Weight,
			Repetitions: r.Repetitions,
			Date:        r.Date,
		})
	}
	return out
}
