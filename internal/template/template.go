// Package template implements the template matcher of spec.md §4.4: a
// fixed, ordered registry of (detector, applier) pairs that recognizes
// common edit intents and short-circuits the rest of the pipeline with a
// nominal confidence.
package template

import (
	"context"
	"regexp"

	"github.com/mvp-joe/agent-booster/internal/chunk"
	"github.com/mvp-joe/agent-booster/internal/language"
	"github.com/mvp-joe/agent-booster/internal/merge"
	"github.com/mvp-joe/agent-booster/internal/similarity"
)

// Template is the static record spec.md §3 describes: an id, a detector, a
// nominal confidence, and a designated strategy. Templates are registered
// once at package init and never mutated (spec.md §9's "Process-wide
// state").
type Template struct {
	ID                string
	Detect            func(original, edit string, lang language.Language) bool
	NominalConfidence float64
	Strategy          merge.Strategy
}

// Registry is the fixed, ordered list consulted by Match. Detectors are
// evaluated in this order; the first match wins (spec.md §4.4).
var Registry = []Template{
	{
		ID:                "try_catch_wrap",
		Detect:            detectTryCatchWrap,
		NominalConfidence: 0.90,
		Strategy:          merge.FuzzyReplace,
	},
	{
		ID:                "null_guard",
		Detect:            detectNullGuard,
		NominalConfidence: 0.85,
		Strategy:          merge.InsertBefore,
	},
	{
		ID:                "input_validation",
		Detect:            detectInputValidation,
		NominalConfidence: 0.90,
		Strategy:          merge.InsertBefore,
	},
	{
		ID:                "type_annotation",
		Detect:            detectTypeAnnotation,
		NominalConfidence: 0.80,
		Strategy:          merge.FuzzyReplace,
	},
	{
		ID:                "promise_to_async_await",
		Detect:            detectPromiseToAsyncAwait,
		NominalConfidence: 0.85,
		Strategy:          merge.FuzzyReplace,
	},
	{
		ID:                "generic_error_wrapper",
		Detect:            detectGenericErrorWrapper,
		NominalConfidence: 0.85,
		Strategy:          merge.FuzzyReplace,
	},
	{
		ID:                "docstring_prepend",
		Detect:            detectDocstringPrepend,
		NominalConfidence: 0.80,
		Strategy:          merge.InsertBefore,
	},
}

// Result is what a template match produces: everything the orchestrator
// needs to build an EditResult without consulting the similarity engine or
// merge strategist's threshold logic.
type Result struct {
	TemplateID   string
	MergedCode   string
	Confidence   float64
	Strategy     merge.Strategy
	ChunksFound  int
	BestChunk    *chunk.Chunk
}

// Match runs the registry against (original, edit, lang) in order and
// returns the first hit, or ok=false on a miss (never an error, per
// spec.md §4.4's failure policy). On a hit it also extracts chunks from
// original (purely to report ChunksFound and to locate a splice point for
// the template's designated Strategy) and picks the best-scoring chunk the
// same way the main pipeline would — but uses the template's fixed
// Strategy and NominalConfidence instead of thresholding the score.
func Match(ctx context.Context, extractor chunk.Extractor, engine similarity.Engine, original, edit string, lang language.Language, maxChunks int) (Result, bool) {
	var hit *Template
	for i := range Registry {
		if Registry[i].Detect(original, edit, lang) {
			hit = &Registry[i]
			break
		}
	}
	if hit == nil {
		return Result{}, false
	}

	desc := language.Get(lang)
	chunks := extractor.Extract(original, lang, maxChunks)

	if len(chunks) == 0 {
		return Result{
			TemplateID:  hit.ID,
			MergedCode:  merge.AppendFallback(original, edit),
			Confidence:  hit.NominalConfidence,
			Strategy:    merge.Append,
			ChunksFound: 0,
		}, true
	}

	scores := engine.ScoreAll(ctx, edit, chunks, desc.Keywords)
	bestIdx := 0
	for i := 1; i < len(scores); i++ {
		if scores[i].Total > scores[bestIdx].Total {
			bestIdx = i
		}
	}
	best := chunks[bestIdx]

	return Result{
		TemplateID:  hit.ID,
		MergedCode:  merge.Merge(original, edit, best, hit.Strategy),
		Confidence:  hit.NominalConfidence,
		Strategy:    hit.Strategy,
		ChunksFound: len(chunks),
		BestChunk:   &best,
	}, true
}

var (
	reTryCatch     = regexp.MustCompile(`(?s)\btry\b\s*\{.*\bcatch\b`)
	rePyTryExcept  = regexp.MustCompile(`(?s)\btry\s*:.*\bexcept\b`)
	reNullGuardJS  = regexp.MustCompile(`\bif\s*\([^)]*(==|===)\s*null[^)]*\)`)
	reNullGuardPy  = regexp.MustCompile(`\bif\s+\w+\s+is\s+None\b`)
	reNullGuardGo  = regexp.MustCompile(`\bif\s+\w+\s*==\s*nil\b`)
	reValidation   = regexp.MustCompile(`\b(?:throw new \w*Error|raise \w+Error|ValueError|TypeError|assert\s)\b`)
	reTypedParam   = regexp.MustCompile(`\(\s*\w+\s*:\s*[\w<>\[\]]+`)
	reReturnType   = regexp.MustCompile(`\)\s*:\s*[\w<>\[\]]+\s*\{`)
	reThenCall     = regexp.MustCompile(`\.then\s*\(`)
	reAsyncAwait   = regexp.MustCompile(`\basync\b.*\bawait\b`)
	reCatchChain   = regexp.MustCompile(`\.catch\s*\(`)
	reCommentBlock = regexp.MustCompile(`^\s*(?://|/\*|#|"""|'''|\*)`)
)

func detectTryCatchWrap(original, edit string, _ language.Language) bool {
	editHasTry := reTryCatch.MatchString(edit) || rePyTryExcept.MatchString(edit)
	if !editHasTry {
		return false
	}
	originalHasTry := reTryCatch.MatchString(original) || rePyTryExcept.MatchString(original)
	return !originalHasTry
}

func detectNullGuard(original, edit string, _ language.Language) bool {
	hasGuard := reNullGuardJS.MatchString(edit) || reNullGuardPy.MatchString(edit) || reNullGuardGo.MatchString(edit)
	if !hasGuard {
		return false
	}
	hadGuard := reNullGuardJS.MatchString(original) || reNullGuardPy.MatchString(original) || reNullGuardGo.MatchString(original)
	return !hadGuard
}

func detectInputValidation(original, edit string, _ language.Language) bool {
	return reValidation.MatchString(edit) && !reValidation.MatchString(original)
}

func detectTypeAnnotation(original, edit string, lang language.Language) bool {
	if lang != language.TypeScript && lang != language.Python {
		return false
	}
	editTyped := reTypedParam.MatchString(edit) || reReturnType.MatchString(edit)
	originalTyped := reTypedParam.MatchString(original) || reReturnType.MatchString(original)
	return editTyped && !originalTyped
}

func detectPromiseToAsyncAwait(original, edit string, _ language.Language) bool {
	return reThenCall.MatchString(original) && reAsyncAwait.MatchString(edit) && !reThenCall.MatchString(edit)
}

func detectGenericErrorWrapper(original, edit string, _ language.Language) bool {
	return reCatchChain.MatchString(edit) && !reCatchChain.MatchString(original)
}

func detectDocstringPrepend(original, edit string, _ language.Language) bool {
	if !reCommentBlock.MatchString(edit) {
		return false
	}
	// The edit must be (mostly) a comment: require that removing comment
	// lines leaves little or no code, distinguishing "prepend a docstring"
	// from "add a commented-out line inside a larger rewrite."
	return isMostlyComment(edit) && !isMostlyComment(original)
}

func isMostlyComment(s string) bool {
	lines := 0
	commentLines := 0
	for _, line := range splitLines(s) {
		trimmed := trimSpace(line)
		if trimmed == "" {
			continue
		}
		lines++
		if reCommentBlock.MatchString(trimmed) {
			commentLines++
		}
	}
	if lines == 0 {
		return false
	}
	return float64(commentLines)/float64(lines) >= 0.5
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}

func trimSpace(s string) string {
	start, end := 0, len(s)
	for start < end && (s[start] == ' ' || s[start] == '\t' || s[start] == '\r') {
		start++
	}
	for end > start && (s[end-1] == ' ' || s[end-1] == '\t' || s[end-1] == '\r') {
		end--
	}
	return s[start:end]
}
