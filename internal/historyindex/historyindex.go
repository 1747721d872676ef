// Package historyindex builds the two read paths SPEC_FULL.md §6.3
// describes over a historystore.Store: a keyword index (bleve) and a
// "similar edit" structural-vector index (chromem-go, the same
// deterministic embedding approach internal/similarity/prefilter.go uses).
// Both indexes are built lazily, in memory, from whatever rows are in the
// store at construction time — neither is consulted by internal/booster.
//
// Grounded on the teacher's internal/mcp/exact_searcher.go for the bleve
// in-memory index construction and search-request shape, and on
// internal/similarity/prefilter.go for the chromem-go collection pattern.
package historyindex

import (
	"context"
	"fmt"

	"github.com/blevesearch/bleve/v2"
	chromem "github.com/philippgille/chromem-go"

	"github.com/mvp-joe/agent-booster/internal/historystore"
	"github.com/mvp-joe/agent-booster/internal/language"
	"github.com/mvp-joe/agent-booster/internal/similarity"
)

// Hit is one search result, regardless of which path produced it.
type Hit struct {
	RequestID string
	Score     float64
	Record    historystore.Record
}

// Index wraps both search paths over a fixed snapshot of history records.
// Rebuild to pick up records written after construction.
type Index struct {
	records map[string]historystore.Record
	keyword bleve.Index
}

func recordDocument(r historystore.Record) map[string]interface{} {
	return map[string]interface{}{
		"request_id": r.RequestID,
		"language":   r.Language,
		"original":   r.OriginalText,
		"edit":       r.EditText,
		"merged":     r.MergedText,
	}
}

// Build indexes every record currently in store for keyword search. The
// semantic ("similar edit") path is built by Semantic itself, anew on
// every call, since it requires a language's keyword table and most callers only ever
// want one of the two search modes.
func Build(store *historystore.Store) (*Index, error) {
	recs, err := store.All()
	if err != nil {
		return nil, fmt.Errorf("historyindex: load records: %w", err)
	}

	mapping := bleve.NewIndexMapping()
	idx, err := bleve.NewMemOnly(mapping)
	if err != nil {
		return nil, fmt.Errorf("historyindex: create bleve index: %w", err)
	}

	batch := idx.NewBatch()
	byID := make(map[string]historystore.Record, len(recs))
	for _, r := range recs {
		byID[r.RequestID] = r
		if err := batch.Index(r.RequestID, recordDocument(r)); err != nil {
			idx.Close()
			return nil, fmt.Errorf("historyindex: index %s: %w", r.RequestID, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		idx.Close()
		return nil, fmt.Errorf("historyindex: run batch: %w", err)
	}

	return &Index{records: byID, keyword: idx}, nil
}

// Close releases the in-memory bleve index.
func (x *Index) Close() error {
	return x.keyword.Close()
}

// Keyword runs a bleve query-string search over original/edit/merged text
// across all records, most relevant first.
func (x *Index) Keyword(queryStr string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 15
	}

	req := bleve.NewSearchRequestOptions(bleve.NewQueryStringQuery(queryStr), limit, 0, false)
	result, err := x.keyword.Search(req)
	if err != nil {
		return nil, fmt.Errorf("historyindex: keyword search: %w", err)
	}

	hits := make([]Hit, 0, len(result.Hits))
	for _, h := range result.Hits {
		rec, ok := x.records[h.ID]
		if !ok {
			continue
		}
		hits = append(hits, Hit{RequestID: h.ID, Score: h.Score, Record: rec})
	}
	return hits, nil
}

// Semantic finds past records whose EditText is structurally similar to
// query, using the same deterministic count-vector embedding as the
// similarity engine's prefilter — never a learned model. lang selects
// which keyword table the structural vector is built against.
func (x *Index) Semantic(ctx context.Context, query string, lang language.Language, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 15
	}
	desc := language.Get(lang)

	db := chromem.NewDB()
	embed := structuralEmbeddingFunc(desc.Keywords)
	col, err := db.CreateCollection("history-semantic", nil, embed)
	if err != nil {
		return nil, fmt.Errorf("historyindex: create semantic collection: %w", err)
	}

	docs := make([]chromem.Document, 0, len(x.records))
	for id, rec := range x.records {
		docs = append(docs, chromem.Document{ID: id, Content: rec.EditText})
	}
	if len(docs) == 0 {
		return nil, nil
	}
	if err := col.AddDocuments(ctx, docs, 1); err != nil {
		return nil, fmt.Errorf("historyindex: index records for semantic search: %w", err)
	}

	queryVec, err := embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("historyindex: embed query: %w", err)
	}

	n := limit
	if n > len(docs) {
		n = len(docs)
	}
	results, err := col.QueryEmbedding(ctx, queryVec, n, nil)
	if err != nil {
		return nil, fmt.Errorf("historyindex: query semantic collection: %w", err)
	}

	hits := make([]Hit, 0, len(results))
	for _, r := range results {
		rec, ok := x.records[r.ID]
		if !ok {
			continue
		}
		hits = append(hits, Hit{RequestID: r.ID, Score: float64(r.Similarity), Record: rec})
	}
	return hits, nil
}

// structuralEmbeddingFunc mirrors internal/similarity's unexported
// equivalent; duplicated rather than exported cross-package since the two
// packages embed different document kinds (chunk text vs. history edit
// text) and have no other reason to share an API surface.
func structuralEmbeddingFunc(keywords []string) chromem.EmbeddingFunc {
	return func(_ context.Context, text string) ([]float32, error) {
		v := similarity.Vector(text, keywords)
		out := make([]float32, len(v))
		for i, x := range v {
			out[i] = float32(x)
		}
		return out, nil
	}
}
