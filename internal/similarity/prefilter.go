package similarity

import (
	"context"
	"fmt"

	chromem "github.com/philippgille/chromem-go"
)

// structuralEmbeddingFunc adapts Vector into a chromem.EmbeddingFunc: a
// pure, deterministic arithmetic transform of text, never a network or ML
// call. It exists solely so the prefilter can reuse chromem-go's
// cosine-distance nearest-neighbor search instead of re-implementing it,
// per SPEC_FULL.md §4.3.1.
func structuralEmbeddingFunc(keywords []string) chromem.EmbeddingFunc {
	return func(_ context.Context, text string) ([]float32, error) {
		v := Vector(text, keywords)
		out := make([]float32, len(v))
		for i, x := range v {
			out[i] = float32(x)
		}
		return out, nil
	}
}

// Prefilter narrows a large chunk-text candidate set down to at most topK
// entries, ranked by cosine similarity of their structural vectors to the
// edit snippet's own vector. It is used only when the caller has more
// candidates than it wants to run full Levenshtein scoring against
// (SPEC_FULL.md §4.3.1); the returned indices are a subset of
// [0,len(chunkTexts)) in no particular order. The chromem-go collection
// backing the search is created fresh and discarded when this call
// returns — nothing persists, and no result depends on wall-clock time or
// prior calls.
func Prefilter(ctx context.Context, edit string, chunkTexts []string, keywords []string, topK int) ([]int, error) {
	if topK <= 0 || topK >= len(chunkTexts) {
		all := make([]int, len(chunkTexts))
		for i := range all {
			all[i] = i
		}
		return all, nil
	}

	db := chromem.NewDB()
	col, err := db.CreateCollection("prefilter", nil, structuralEmbeddingFunc(keywords))
	if err != nil {
		return nil, fmt.Errorf("similarity: create prefilter collection: %w", err)
	}

	docs := make([]chromem.Document, 0, len(chunkTexts))
	for i, text := range chunkTexts {
		docs = append(docs, chromem.Document{
			ID:      fmt.Sprintf("%d", i),
			Content: text,
		})
	}
	if err := col.AddDocuments(ctx, docs, 1); err != nil {
		return nil, fmt.Errorf("similarity: index chunks for prefilter: %w", err)
	}

	editVec, err := structuralEmbeddingFunc(keywords)(ctx, edit)
	if err != nil {
		return nil, fmt.Errorf("similarity: embed edit snippet: %w", err)
	}

	n := topK
	if n > len(chunkTexts) {
		n = len(chunkTexts)
	}
	results, err := col.QueryEmbedding(ctx, editVec, n, nil)
	if err != nil {
		return nil, fmt.Errorf("similarity: query prefilter collection: %w", err)
	}

	indices := make([]int, 0, len(results))
	for _, r := range results {
		var idx int
		if _, err := fmt.Sscanf(r.ID, "%d", &idx); err == nil {
			indices = append(indices, idx)
		}
	}
	return indices, nil
}
