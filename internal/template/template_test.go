package template

// Test Plan:
// - Match on a try/catch-wrap edit returns the try_catch_wrap template hit
// - Match falls back to Append when the extractor finds no chunks
// - Match returns ok=false when no detector fires
// - detectTypeAnnotation only fires for TypeScript/Python
// - detectTryCatchWrap requires the original to not already have a try block

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/agent-booster/internal/chunk"
	"github.com/mvp-joe/agent-booster/internal/language"
	"github.com/mvp-joe/agent-booster/internal/merge"
	"github.com/mvp-joe/agent-booster/internal/similarity"
)

func TestMatchDetectsTryCatchWrap(t *testing.T) {
	t.Parallel()

	original := "function risky() {\n  doWork();\n}\n"
	edit := "function risky() {\n  try {\n    doWork();\n  } catch (e) {\n    log(e);\n  }\n}"

	result, ok := Match(context.Background(), chunk.DefaultExtractor, similarity.NewEngine(0, 0), original, edit, language.JavaScript, 100)
	require.True(t, ok)
	assert.Equal(t, "try_catch_wrap", result.TemplateID)
	assert.Equal(t, merge.FuzzyReplace, result.Strategy)
	assert.Equal(t, 0.90, result.Confidence)
	assert.Equal(t, 1, result.ChunksFound)
}

func TestMatchFallsBackToAppendWhenNoChunks(t *testing.T) {
	t.Parallel()

	original := "   \n" // whitespace only, no extractable chunk
	edit := "try {\n  risky();\n} catch (e) {\n  handle(e);\n}"

	result, ok := Match(context.Background(), chunk.DefaultExtractor, similarity.NewEngine(0, 0), original, edit, language.JavaScript, 100)
	require.True(t, ok)
	assert.Equal(t, merge.Append, result.Strategy)
	assert.Equal(t, 0, result.ChunksFound)
	assert.Contains(t, result.MergedCode, "risky()")
}

func TestMatchReturnsFalseOnNoDetectorHit(t *testing.T) {
	t.Parallel()

	_, ok := Match(context.Background(), chunk.DefaultExtractor, similarity.NewEngine(0, 0), "function f() {}", "someOtherCode();", language.JavaScript, 100)
	assert.False(t, ok)
}

func TestDetectTypeAnnotationOnlyFiresForTSAndPython(t *testing.T) {
	t.Parallel()

	original := "function add(a, b) { return a + b; }"
	edit := "function add(a: number, b: number): number { return a + b; }"

	assert.True(t, detectTypeAnnotation(original, edit, language.TypeScript))
	assert.False(t, detectTypeAnnotation(original, edit, language.JavaScript))
}

func TestDetectTryCatchWrapRequiresOriginalWithoutTry(t *testing.T) {
	t.Parallel()

	original := "function risky() {\n  try {\n    doWork();\n  } catch (e) {}\n}"
	edit := "function risky() {\n  try {\n    doWork();\n  } catch (e) {\n    log(e);\n  }\n}"

	assert.False(t, detectTryCatchWrap(original, edit, language.JavaScript))
}
