package historyindex

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/agent-booster/internal/historystore"
	"github.com/mvp-joe/agent-booster/internal/language"
)

// Test Plan: Build indexes whatever is in the store at call time; Keyword
// finds records by substring in their stored text; Semantic ranks a
// structurally close record above an unrelated one.

func newStoreWithRecords(t *testing.T, recs ...historystore.Record) *historystore.Store {
	t.Helper()
	s, err := historystore.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	for _, r := range recs {
		require.NoError(t, s.Insert(r))
	}
	return s
}

func TestKeywordFindsMatchingRecord(t *testing.T) {
	t.Parallel()

	store := newStoreWithRecords(t,
		historystore.Record{RequestID: "a", CreatedAt: time.Now().UTC(), Language: "go", Strategy: "append", EditText: "func validateInput(x int) error"},
		historystore.Record{RequestID: "b", CreatedAt: time.Now().UTC(), Language: "go", Strategy: "append", EditText: "func renderTemplate(name string) string"},
	)

	idx, err := Build(store)
	require.NoError(t, err)
	defer idx.Close()

	hits, err := idx.Keyword("validateInput", 10)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	require.Equal(t, "a", hits[0].RequestID)
}

func TestSemanticRanksStructurallySimilarHigher(t *testing.T) {
	t.Parallel()

	store := newStoreWithRecords(t,
		historystore.Record{
			RequestID: "close", CreatedAt: time.Now().UTC(), Language: "go", Strategy: "append",
			EditText: "if err != nil {\n\treturn fmt.Errorf(\"wrap: %w\", err)\n}",
		},
		historystore.Record{
			RequestID: "far", CreatedAt: time.Now().UTC(), Language: "go", Strategy: "append",
			EditText: "x = x + 1",
		},
	)

	idx, err := Build(store)
	require.NoError(t, err)
	defer idx.Close()

	hits, err := idx.Semantic(context.Background(), "if err != nil {\n\treturn fmt.Errorf(\"oops: %w\", err)\n}", language.Go, 10)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	require.Equal(t, "close", hits[0].RequestID)
}

func TestBuildOnEmptyStore(t *testing.T) {
	t.Parallel()

	store := newStoreWithRecords(t)
	idx, err := Build(store)
	require.NoError(t, err)
	defer idx.Close()

	hits, err := idx.Keyword("anything", 10)
	require.NoError(t, err)
	require.Empty(t, hits)
}
