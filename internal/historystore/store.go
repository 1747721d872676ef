// Package historystore is the opt-in, ambient persistence layer of
// SPEC_FULL.md §6.3: a local SQLite record of past apply_edit/batch calls,
// written by the CLI after the core returns an EditResult. Nothing in
// internal/booster imports this package — the core stays free of I/O
// (spec.md §1, §5); historystore only ever reads results the core already
// produced.
//
// Grounded on the teacher's internal/storage (schema.go, chunk_writer.go):
// mattn/go-sqlite3 driver, Masterminds/squirrel for query building, a
// versioned schema_version row checked/created on open.
package historystore

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

// maxStoredTextBytes truncates original/edit/merged text before storage,
// matching the teacher's chunk_writer.go practice of keeping stored rows
// bounded regardless of input size.
const maxStoredTextBytes = 16 * 1024

// Record is one persisted apply_edit outcome.
type Record struct {
	RequestID    string
	CreatedAt    time.Time
	Language     string
	Strategy     string
	Confidence   float64
	ChunksFound  int
	SyntaxValid  bool
	TemplateID   string
	OriginalText string
	EditText     string
	MergedText   string
}

// Store wraps a single SQLite database file holding edit_records.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the history database at path,
// running createSchema on a fresh file.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("historystore: open %s: %w", path, err)
	}

	version, err := getSchemaVersion(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	if version == "0" {
		if err := createSchema(db); err != nil {
			db.Close()
			return nil, err
		}
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func truncate(s string) string {
	if len(s) <= maxStoredTextBytes {
		return s
	}
	return s[:maxStoredTextBytes]
}

// Insert persists rec, replacing any existing row with the same RequestID.
func (s *Store) Insert(rec Record) error {
	_, err := sq.Insert("edit_records").
		Columns("request_id", "created_at", "language", "strategy", "confidence",
			"chunks_found", "syntax_valid", "template_id", "original_text", "edit_text", "merged_text").
		Values(
			rec.RequestID,
			rec.CreatedAt.UTC().Format(time.RFC3339),
			rec.Language,
			rec.Strategy,
			rec.Confidence,
			rec.ChunksFound,
			boolToInt(rec.SyntaxValid),
			rec.TemplateID,
			truncate(rec.OriginalText),
			truncate(rec.EditText),
			truncate(rec.MergedText),
		).
		Suffix(`ON CONFLICT(request_id) DO UPDATE SET
			created_at = excluded.created_at,
			language = excluded.language,
			strategy = excluded.strategy,
			confidence = excluded.confidence,
			chunks_found = excluded.chunks_found,
			syntax_valid = excluded.syntax_valid,
			template_id = excluded.template_id,
			original_text = excluded.original_text,
			edit_text = excluded.edit_text,
			merged_text = excluded.merged_text`).
		RunWith(s.db).
		Exec()
	if err != nil {
		return fmt.Errorf("historystore: insert %s: %w", rec.RequestID, err)
	}
	return nil
}

// List returns the most recent limit records, newest first. A limit of 0
// means no bound.
func (s *Store) List(limit int) ([]Record, error) {
	q := sq.Select("request_id", "created_at", "language", "strategy", "confidence",
		"chunks_found", "syntax_valid", "template_id", "original_text", "edit_text", "merged_text").
		From("edit_records").
		OrderBy("created_at DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	rows, err := q.RunWith(s.db).Query()
	if err != nil {
		return nil, fmt.Errorf("historystore: list: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Get returns the record for requestID, if present.
func (s *Store) Get(requestID string) (Record, bool, error) {
	rows, err := sq.Select("request_id", "created_at", "language", "strategy", "confidence",
		"chunks_found", "syntax_valid", "template_id", "original_text", "edit_text", "merged_text").
		From("edit_records").
		Where(sq.Eq{"request_id": requestID}).
		RunWith(s.db).
		Query()
	if err != nil {
		return Record{}, false, fmt.Errorf("historystore: get %s: %w", requestID, err)
	}
	defer rows.Close()

	recs, err := scanRecords(rows)
	if err != nil {
		return Record{}, false, err
	}
	if len(recs) == 0 {
		return Record{}, false, nil
	}
	return recs[0], true, nil
}

// All returns every record in the store, used by internal/historyindex to
// build its in-memory search indexes lazily.
func (s *Store) All() ([]Record, error) {
	return s.List(0)
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var out []Record
	for rows.Next() {
		var rec Record
		var createdAt string
		var syntaxValid int
		if err := rows.Scan(
			&rec.RequestID, &createdAt, &rec.Language, &rec.Strategy, &rec.Confidence,
			&rec.ChunksFound, &syntaxValid, &rec.TemplateID,
			&rec.OriginalText, &rec.EditText, &rec.MergedText,
		); err != nil {
			return nil, fmt.Errorf("historystore: scan row: %w", err)
		}
		t, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("historystore: parse created_at: %w", err)
		}
		rec.CreatedAt = t
		rec.SyntaxValid = syntaxValid != 0
		out = append(out, rec)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
