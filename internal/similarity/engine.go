package similarity

import (
	"context"

	"github.com/mvp-joe/agent-booster/internal/chunk"
)

// Engine scores an edit snippet against a set of extracted chunks,
// optionally narrowing the candidate set first via Prefilter when there
// are many chunks (SPEC_FULL.md §4.3.1). The zero value is usable and
// disables the prefilter (every chunk is always scored).
type Engine struct {
	PrefilterThreshold int
	PrefilterTopK      int
}

// NewEngine builds an Engine with the given prefilter knobs. A
// prefilterThreshold of 0 disables the prefilter entirely.
func NewEngine(prefilterThreshold, prefilterTopK int) Engine {
	return Engine{PrefilterThreshold: prefilterThreshold, PrefilterTopK: prefilterTopK}
}

// ScoreCache is the minimal interface internal/scorecache.Cache satisfies.
// It is declared here, not there, so scorecache (which must import
// similarity for the Score type) doesn't create an import cycle.
type ScoreCache interface {
	Get(key string) (Score, bool)
	Set(key string, score Score)
}

// ScoreAllCached behaves like ScoreAll but consults cache before computing
// each chunk's score and populates it afterwards. A nil cache makes this
// identical to ScoreAll. Used only by Batch (SPEC_FULL.md §4.3.1); a
// standalone ApplyEdit call never allocates a cache.
func (e Engine) ScoreAllCached(ctx context.Context, edit string, chunks []chunk.Chunk, keywords []string, cache ScoreCache) []Score {
	scores := make([]Score, len(chunks))

	candidates := allIndices(len(chunks))
	if e.PrefilterThreshold > 0 && len(chunks) > e.PrefilterThreshold {
		texts := make([]string, len(chunks))
		for i, c := range chunks {
			texts[i] = c.Text
		}
		if idx, err := Prefilter(ctx, edit, texts, keywords, e.PrefilterTopK); err == nil {
			candidates = idx
		}
	}

	for _, i := range candidates {
		if cache != nil {
			key := CacheKey(edit, chunks[i].Text)
			if s, ok := cache.Get(key); ok {
				scores[i] = s
				continue
			}
			s := Score(edit, chunks[i].Text, keywords)
			cache.Set(key, s)
			scores[i] = s
			continue
		}
		scores[i] = Score(edit, chunks[i].Text, keywords)
	}
	return scores
}

// ScoreAll scores edit against every chunk in chunks, returning one Score
// per chunk in the same order. Chunks excluded by the prefilter receive
// the zero Score (total 0), matching SPEC_FULL.md §4.3.1's description of
// the prefilter as "only a performance accelerator": a request with few
// enough chunks to skip the prefilter entirely always gets exact scores
// for everything, and the merge strategist only ever needs the arg-max.
func (e Engine) ScoreAll(ctx context.Context, edit string, chunks []chunk.Chunk, keywords []string) []Score {
	scores := make([]Score, len(chunks))

	candidates := allIndices(len(chunks))
	if e.PrefilterThreshold > 0 && len(chunks) > e.PrefilterThreshold {
		texts := make([]string, len(chunks))
		for i, c := range chunks {
			texts[i] = c.Text
		}
		if idx, err := Prefilter(ctx, edit, texts, keywords, e.PrefilterTopK); err == nil {
			candidates = idx
		}
		// On prefilter error, fall back to scoring every chunk: the
		// prefilter is an accelerator, never a correctness requirement.
	}

	for _, i := range candidates {
		scores[i] = Score(edit, chunks[i].Text, keywords)
	}
	return scores
}

func allIndices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}
