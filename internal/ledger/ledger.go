// Package ledger records which CSV files have already been imported.
package ledger

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// Import is one recorded CSV import batch.
type Import struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	SHA256     string    `json:"sha256"`
	Rows       int       `json:"rows"`
	ImportedAt time.Time `json:"imported_at"`
}

// Ledger is a SQLite-backed import history.
type Ledger struct {
	db      *sql.DB
	log     *slog.Logger
	entropy io.Reader
}

// Open opens or creates the ledger database at path.
func Open(path string, log *slog.Logger) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create ledger dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)")
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS imports (
		id          TEXT PRIMARY KEY,
		source      TEXT NOT NULL,
		sha256      TEXT NOT NULL,
		row_count   INTEGER NOT NULL,
		imported_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_imports_sha ON imports(sha256);`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create imports table: %w", err)
	}

	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Ledger{
		db:      db,
		log:     log,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}, nil
}

func (l *Ledger) newID(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), l.entropy).String()
}

// Seen returns the earliest import of content with the given hash, or nil.
func (l *Ledger) Seen(ctx context.Context, sha string) (*Import, error) {
	row := l.db.QueryRowContext(ctx,
		`SELECT id, source, sha256, row_count, imported_at FROM imports
		 WHERE sha256 = ? ORDER BY id LIMIT 1`, sha)
	imp, err := scanImport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &imp, nil
}

// Record stores a new import batch.
func (l *Ledger) Record(ctx context.Context, source, sha string, rows int) (*Import, error) {
	now := time.Now().UTC()
	imp := &Import{
		ID:         l.newID(now),
		Source:     source,
		SHA256:     sha,
		Rows:       rows,
		ImportedAt: now.Truncate(time.Second),
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO imports (id, source, sha256, row_count, imported_at) VALUES (?, ?, ?, ?, ?)`,
		imp.ID, imp.Source, imp.SHA256, imp.Rows, now.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("insert import: %w", err)
	}
	l.log.Debug("import recorded", "id", imp.ID, "source", source, "rows", rows)
	return imp, nil
}

// List returns recorded imports, newest first.
func (l *Ledger) List(ctx context.Context, limit int) ([]Import, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, source, sha256, row_count, imported_at FROM imports
		 ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	imports := []Import{}
	for rows.Next() {
		imp, err := scanImport(rows)
		if err != nil {
			return nil, err
		}
		imports = append(imports, imp)
	}
	return imports, rows.Err()
}

// Close closes the database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanImport(row scanner) (Import, error) {
	var imp Import
	var importedAt string
	if err := row.Scan(&imp.ID, &imp.Source, &imp.SHA256, &imp.Rows, &importedAt); err != nil {
		return imp, err
	}
	imp.ImportedAt, _ = time.Parse(time.RFC3339, importedAt)
	return imp, nil
}

// HashFile returns the hex sha256 of the file at path.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
