// Package booster is the orchestrator of spec.md §4.7: the public
// ApplyEdit/Batch entry points that wire the template matcher, chunk
// extractor, similarity engine, merge strategist, and validator together.
// It is a pure, synchronous function of its inputs — no network or
// filesystem I/O, no state surviving between calls (spec.md §1, §5).
package booster

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mvp-joe/agent-booster/internal/chunk"
	"github.com/mvp-joe/agent-booster/internal/language"
	"github.com/mvp-joe/agent-booster/internal/merge"
	"github.com/mvp-joe/agent-booster/internal/scorecache"
	"github.com/mvp-joe/agent-booster/internal/similarity"
	"github.com/mvp-joe/agent-booster/internal/template"
	"github.com/mvp-joe/agent-booster/internal/validate"
)

// Sentinel errors for the "invalid argument" taxonomy of spec.md §7. They
// are never returned alongside a partial EditResult.
var (
	ErrInvalidMaxChunks = errors.New("booster: max_chunks must be >= 1")
	ErrInvalidThreshold = errors.New("booster: confidence_threshold must be in [0,1]")
	ErrInvalidLanguage  = errors.New("booster: unrecognized language")
)

// EditRequest is spec.md §3's EditRequest, plus the SPEC_FULL.md §3
// RequestID field and the §4.2.1 AST-extractor opt-in.
type EditRequest struct {
	RequestID           string
	OriginalCode        string
	EditSnippet         string
	Language            language.Language
	ConfidenceThreshold float64
	MaxChunks           int
	UseASTExtractor     bool
}

// EditResult is spec.md §3's EditResult, plus implementation-local
// diagnostics (BestChunkIndex, per-component Scores, TemplateID) spec.md
// explicitly allows ("implementation-local diagnostics").
type EditResult struct {
	RequestID      string
	MergedCode     string
	Confidence     float64
	Strategy       merge.Strategy
	ChunksFound    int
	SyntaxValid    bool
	BestChunkIndex int // -1 when no chunk informed the result
	Scores         similarity.Score
	TemplateID     string // empty unless the template matcher short-circuited
	Err            error  // non-nil means this element failed; other fields are zero value
}

// Config bundles the tunables SPEC_FULL.md §4.3.1 adds on top of spec.md's
// fixed per-call fields: the vector-prefilter knobs. The AST-backed
// extractor is opted into per request (EditRequest.UseASTExtractor), not
// here.
type Config struct {
	PrefilterThreshold int // 0 disables the prefilter
	PrefilterTopK      int
}

// DefaultConfig matches SPEC_FULL.md §4.2.1/§4.3.1's stated defaults.
func DefaultConfig() Config {
	return Config{PrefilterThreshold: 32, PrefilterTopK: 40}
}

// Engine is the orchestrator. The zero value is not usable; construct one
// with New.
type Engine struct {
	cfg       Config
	regex     chunk.Extractor
	treeitter chunk.TreeSitterExtractor
	sim       similarity.Engine
}

// New builds an Engine from cfg.
func New(cfg Config) *Engine {
	return &Engine{
		cfg:   cfg,
		regex: chunk.DefaultExtractor,
		sim:   similarity.NewEngine(cfg.PrefilterThreshold, cfg.PrefilterTopK),
	}
}

// validateRequest applies the invalid-argument checks of spec.md §7.
// defaults are filled in (confidence_threshold 0.5, max_chunks 100) when
// the caller leaves them at the Go zero value, matching spec.md §3's
// stated defaults rather than rejecting a zero-value request outright.
func validateRequest(req *EditRequest) error {
	if req.MaxChunks == 0 {
		req.MaxChunks = 100
	}
	if req.MaxChunks < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxChunks, req.MaxChunks)
	}
	if req.ConfidenceThreshold == 0 {
		req.ConfidenceThreshold = 0.5
	}
	if req.ConfidenceThreshold < 0 || req.ConfidenceThreshold > 1 {
		return fmt.Errorf("%w: got %f", ErrInvalidThreshold, req.ConfidenceThreshold)
	}
	if _, ok := language.Descriptors[req.Language]; !ok {
		return fmt.Errorf("%w: %v", ErrInvalidLanguage, req.Language)
	}
	return nil
}

// ApplyEdit implements spec.md §4.7's apply_edit contract.
func (e *Engine) ApplyEdit(ctx context.Context, req EditRequest) (EditResult, error) {
	return e.applyEdit(ctx, req, nil)
}

func (e *Engine) applyEdit(ctx context.Context, req EditRequest, cache similarity.ScoreCache) (EditResult, error) {
	if err := validateRequest(&req); err != nil {
		return EditResult{}, err
	}
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	result := EditResult{RequestID: req.RequestID, BestChunkIndex: -1}

	// Degenerate input, spec.md §7.
	if req.OriginalCode == "" {
		result.MergedCode = merge.AppendFallback("", req.EditSnippet)
		result.Strategy = merge.Append
		result.Confidence = 0
		result.ChunksFound = 0
		result.SyntaxValid = validate.Validate(result.MergedCode, req.Language)
		return result, nil
	}
	if req.EditSnippet == "" {
		chunks := e.extract(req)
		result.MergedCode = req.OriginalCode
		result.Strategy = merge.Append
		result.Confidence = 0
		result.ChunksFound = len(chunks)
		result.SyntaxValid = validate.Validate(result.MergedCode, req.Language)
		return result, nil
	}

	// Template matcher: tried first, short-circuits on a hit.
	if hit, ok := template.Match(ctx, e.extractorFor(req), e.sim, req.OriginalCode, req.EditSnippet, req.Language, req.MaxChunks); ok {
		result.MergedCode = hit.MergedCode
		result.Confidence = hit.Confidence
		result.Strategy = hit.Strategy
		result.ChunksFound = hit.ChunksFound
		result.TemplateID = hit.TemplateID
		result.SyntaxValid = validate.Validate(result.MergedCode, req.Language)
		return result, nil
	}

	chunks := e.extract(req)
	result.ChunksFound = len(chunks)

	if len(chunks) == 0 {
		result.MergedCode = merge.AppendFallback(req.OriginalCode, req.EditSnippet)
		result.Strategy = merge.Append
		result.Confidence = 0
		result.SyntaxValid = validate.Validate(result.MergedCode, req.Language)
		return result, nil
	}

	desc := language.Get(req.Language)
	scores := e.sim.ScoreAllCached(ctx, req.EditSnippet, chunks, desc.Keywords, cache)

	bestIdx := 0
	for i := 1; i < len(scores); i++ {
		if scores[i].Total > scores[bestIdx].Total {
			bestIdx = i
		}
	}
	best := scores[bestIdx]

	strategy := merge.SelectStrategy(best.Total, req.ConfidenceThreshold)
	var mergedCode string
	if strategy == merge.Append {
		mergedCode = merge.AppendFallback(req.OriginalCode, req.EditSnippet)
	} else {
		mergedCode = merge.Merge(req.OriginalCode, req.EditSnippet, chunks[bestIdx], strategy)
	}

	result.MergedCode = mergedCode
	result.Confidence = best.Total
	result.Strategy = strategy
	result.BestChunkIndex = bestIdx
	result.Scores = best
	result.SyntaxValid = validate.Validate(mergedCode, req.Language)
	return result, nil
}

func (e *Engine) extract(req EditRequest) []chunk.Chunk {
	return e.extractorFor(req).Extract(req.OriginalCode, req.Language, req.MaxChunks)
}

// extractorFor resolves which Extractor a request should use: the
// AST-backed one only when requested AND a grammar is bundled for the
// language, falling back to the regex extractor silently otherwise
// (SPEC_FULL.md §4.2.1).
func (e *Engine) extractorFor(req EditRequest) chunk.Extractor {
	if req.UseASTExtractor && e.treeitter.Supports(req.Language) {
		return e.treeitter
	}
	return e.regex
}

// Batch implements spec.md §4.7's batch contract: apply ApplyEdit to each
// request independently, in order, with no shared state across requests
// other than the read-only language/template tables — plus, per
// SPEC_FULL.md §4.3.1, a score-memoization cache scoped to this one Batch
// call. Per spec.md §7, a request that fails validation or processing
// does not abort the batch: its failure is isolated into that element's
// EditResult.Err and every other element still gets its real result. The
// returned error is reserved for something outside per-request scope,
// which today never happens.
func (e *Engine) Batch(ctx context.Context, requests []EditRequest) ([]EditResult, error) {
	cache, err := scorecache.New(4096)
	if err != nil {
		// The cache is an accelerator, not a correctness requirement: fall
		// back to uncached scoring rather than failing the whole batch.
		cache = nil
	}

	results := make([]EditResult, len(requests))
	for i, req := range requests {
		res, err := e.applyEdit(ctx, req, cache)
		if err != nil {
			results[i] = EditResult{
				RequestID:      req.RequestID,
				BestChunkIndex: -1,
				Err:            fmt.Errorf("booster: request %d: %w", i, err),
			}
			continue
		}
		results[i] = res
	}
	return results, nil
}
