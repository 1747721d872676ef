package booster

// Test Plan (end-to-end scenarios from spec.md §8):
// - Type annotation edit on TypeScript short-circuits via the template matcher
// - Try/catch wrap edit on JavaScript short-circuits via the template matcher
// - Insert-after new function on Rust (no template, similarity in [0.30,0.50))
// - Empty original_code degenerates to Append with confidence 0
// - No matching chunk (Go source with no extractable chunk) falls back to Append
// - Batch preserves request order and isolates nothing across elements
// - Invalid max_chunks/confidence_threshold are rejected

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/agent-booster/internal/language"
	"github.com/mvp-joe/agent-booster/internal/merge"
)

func TestApplyEditTypeAnnotationTypeScript(t *testing.T) {
	t.Parallel()

	e := New(DefaultConfig())
	req := EditRequest{
		OriginalCode: "function add(a, b) { return a + b; }",
		EditSnippet:  "function add(a: number, b: number): number { return a + b; }",
		Language:     language.TypeScript,
	}

	result, err := e.ApplyEdit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "type_annotation", result.TemplateID)
	assert.Equal(t, merge.FuzzyReplace, result.Strategy)
	assert.True(t, result.SyntaxValid)
}

func TestApplyEditTryCatchWrapJavaScript(t *testing.T) {
	t.Parallel()

	e := New(DefaultConfig())
	req := EditRequest{
		OriginalCode: "function risky() {\n  doWork();\n}\n",
		EditSnippet:  "function risky() {\n  try {\n    doWork();\n  } catch (e) {\n    log(e);\n  }\n}",
		Language:     language.JavaScript,
	}

	result, err := e.ApplyEdit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "try_catch_wrap", result.TemplateID)
	assert.Equal(t, merge.FuzzyReplace, result.Strategy)
	assert.Contains(t, result.MergedCode, "catch (e)")
}

func TestApplyEditInsertAfterNewFunctionRust(t *testing.T) {
	t.Parallel()

	e := New(DefaultConfig())
	req := EditRequest{
		OriginalCode: "fn add(a: i32, b: i32) -> i32 { a + b }",
		EditSnippet:  "fn sub(a: i32, b: i32) -> i32 { a - b }",
		Language:     language.Rust,
	}

	result, err := e.ApplyEdit(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, result.TemplateID)
	assert.Equal(t, 1, result.ChunksFound)
	assert.Equal(t, merge.InsertAfter, result.Strategy)
	assert.GreaterOrEqual(t, result.Confidence, 0.30)
	assert.Less(t, result.Confidence, 0.50)
	assert.Contains(t, result.MergedCode, "fn add")
	assert.Contains(t, result.MergedCode, "fn sub")
	assert.True(t, result.SyntaxValid)
}

func TestApplyEditEmptyOriginalDegeneratesToAppend(t *testing.T) {
	t.Parallel()

	e := New(DefaultConfig())
	result, err := e.ApplyEdit(context.Background(), EditRequest{
		OriginalCode: "",
		EditSnippet:  "function f() {}",
		Language:     language.JavaScript,
	})
	require.NoError(t, err)
	assert.Equal(t, merge.Append, result.Strategy)
	assert.Equal(t, 0.0, result.Confidence)
	assert.Equal(t, 0, result.ChunksFound)
}

func TestApplyEditNoMatchingChunkGo(t *testing.T) {
	t.Parallel()

	e := New(DefaultConfig())
	result, err := e.ApplyEdit(context.Background(), EditRequest{
		OriginalCode: "// just a comment, no declarations\n",
		EditSnippet:  "func NewThing() *Thing { return &Thing{} }",
		Language:     language.Go,
	})
	require.NoError(t, err)
	assert.Equal(t, merge.Append, result.Strategy)
	assert.Equal(t, 0, result.ChunksFound)
	assert.Contains(t, result.MergedCode, "NewThing")
}

func TestBatchPreservesRequestOrder(t *testing.T) {
	t.Parallel()

	e := New(DefaultConfig())
	requests := []EditRequest{
		{RequestID: "a", OriginalCode: "func A() {}\n", EditSnippet: "func A() { doA() }", Language: language.Go},
		{RequestID: "b", OriginalCode: "func B() {}\n", EditSnippet: "func B() { doB() }", Language: language.Go},
		{RequestID: "c", OriginalCode: "func C() {}\n", EditSnippet: "func C() { doC() }", Language: language.Go},
	}

	results, err := e.Batch(context.Background(), requests)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "a", results[0].RequestID)
	assert.Equal(t, "b", results[1].RequestID)
	assert.Equal(t, "c", results[2].RequestID)
}

func TestBatchIsolatesPerRequestErrors(t *testing.T) {
	t.Parallel()

	e := New(DefaultConfig())
	requests := []EditRequest{
		{RequestID: "good-1", OriginalCode: "func A() {}\n", EditSnippet: "func A() { doA() }", Language: language.Go},
		{RequestID: "bad", OriginalCode: "x", EditSnippet: "y", Language: language.Go, MaxChunks: -1},
		{RequestID: "good-2", OriginalCode: "func B() {}\n", EditSnippet: "func B() { doB() }", Language: language.Go},
	}

	results, err := e.Batch(context.Background(), requests)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.Equal(t, merge.FuzzyReplace, results[0].Strategy)

	require.Error(t, results[1].Err)
	assert.ErrorIs(t, results[1].Err, ErrInvalidMaxChunks)
	assert.Equal(t, "bad", results[1].RequestID)

	assert.NoError(t, results[2].Err)
	assert.Equal(t, merge.FuzzyReplace, results[2].Strategy)
}

func TestApplyEditRejectsInvalidMaxChunks(t *testing.T) {
	t.Parallel()

	e := New(DefaultConfig())
	_, err := e.ApplyEdit(context.Background(), EditRequest{
		OriginalCode: "x",
		EditSnippet:  "y",
		Language:     language.Go,
		MaxChunks:    -1,
	})
	assert.ErrorIs(t, err, ErrInvalidMaxChunks)
}

func TestApplyEditRejectsInvalidThreshold(t *testing.T) {
	t.Parallel()

	e := New(DefaultConfig())
	_, err := e.ApplyEdit(context.Background(), EditRequest{
		OriginalCode:        "x",
		EditSnippet:         "y",
		Language:            language.Go,
		ConfidenceThreshold: 1.5,
	})
	assert.ErrorIs(t, err, ErrInvalidThreshold)
}
