package historystore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Test Plan: Open creates a fresh schema; Insert/Get/List round-trip a
// record including the upsert-on-conflict path; truncation clips oversized
// text fields rather than erroring.

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenCreatesSchema(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	version, err := getSchemaVersion(s.db)
	require.NoError(t, err)
	require.Equal(t, schemaVersion, version)
}

func TestInsertAndGet(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	rec := Record{
		RequestID:    "req-1",
		CreatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Language:     "typescript",
		Strategy:     "fuzzy_replace",
		Confidence:   0.82,
		ChunksFound:  3,
		SyntaxValid:  true,
		TemplateID:   "",
		OriginalText: "function f() {}",
		EditText:     "function f(): void {}",
		MergedText:   "function f(): void {}",
	}
	require.NoError(t, s.Insert(rec))

	got, ok, err := s.Get("req-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, rec.Language, got.Language)
	require.Equal(t, rec.Strategy, got.Strategy)
	require.InDelta(t, rec.Confidence, got.Confidence, 1e-9)
	require.True(t, got.CreatedAt.Equal(rec.CreatedAt))
}

func TestInsertUpsertsOnDuplicateRequestID(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	rec := Record{RequestID: "req-1", CreatedAt: time.Now().UTC(), Language: "go", Strategy: "append"}
	require.NoError(t, s.Insert(rec))

	rec.Strategy = "exact_replace"
	rec.Confidence = 0.99
	require.NoError(t, s.Insert(rec))

	got, ok, err := s.Get("req-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "exact_replace", got.Strategy)
	require.InDelta(t, 0.99, got.Confidence, 1e-9)

	all, err := s.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestListOrdersNewestFirst(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.Insert(Record{
			RequestID: id,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			Language:  "go",
			Strategy:  "append",
		}))
	}

	recs, err := s.List(0)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	require.Equal(t, "c", recs[0].RequestID)
	require.Equal(t, "a", recs[2].RequestID)
}

func TestTextTruncation(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	big := make([]byte, maxStoredTextBytes+100)
	for i := range big {
		big[i] = 'x'
	}
	require.NoError(t, s.Insert(Record{
		RequestID:    "req-big",
		CreatedAt:    time.Now().UTC(),
		Language:     "go",
		Strategy:     "append",
		OriginalText: string(big),
	}))

	got, ok, err := s.Get("req-big")
	require.NoError(t, err)
	require.True(t, ok)
	require.LessOrEqual(t, len(got.OriginalText), maxStoredTextBytes)
}
