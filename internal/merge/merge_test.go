package merge

// Test Plan:
// - SelectStrategy boundary values resolve to the documented strategy
// - ExactReplace splices edit verbatim at the chunk's byte range
// - InsertAfter/InsertBefore indent edit to the chunk's column and keep original intact
// - AppendFallback handles empty original, empty edit, and the normal case
// - Strategy.String renders the snake_case host-facing names

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mvp-joe/agent-booster/internal/chunk"
	"github.com/mvp-joe/agent-booster/internal/language"
)

func TestSelectStrategyBoundaries(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ExactReplace, SelectStrategy(0.90, 0.5))
	assert.Equal(t, ExactReplace, SelectStrategy(1.0, 0.5))
	assert.Equal(t, FuzzyReplace, SelectStrategy(0.50, 0.5))
	assert.Equal(t, FuzzyReplace, SelectStrategy(0.89, 0.5))
	assert.Equal(t, InsertAfter, SelectStrategy(0.30, 0.1))
	assert.Equal(t, InsertBefore, SelectStrategy(0.2, 0.2))
	assert.Equal(t, Append, SelectStrategy(0.1, 0.2))
}

func TestMergeExactReplace(t *testing.T) {
	t.Parallel()

	original := "function add(a, b) {\n  return a + b;\n}\n"
	c := chunk.Chunk{Kind: language.KindFunction, StartByte: 0, EndByte: len(original) - 1}
	edit := "function add(a, b) {\n  return a + b + 1;\n}"

	got := Merge(original, edit, c, ExactReplace)
	assert.Equal(t, edit+"\n", got)
}

func TestMergeInsertAfterIndentsToChunkColumn(t *testing.T) {
	t.Parallel()

	original := "class Foo {\n  bar() {}\n}\n"
	barStart := 14 // byte offset of "bar() {}"
	barEnd := barStart + len("bar() {}")
	c := chunk.Chunk{Kind: language.KindMethod, StartByte: barStart, EndByte: barEnd}

	edit := "baz() {}"
	got := Merge(original, edit, c, InsertAfter)

	assert.Contains(t, got, "  baz() {}")
	assert.Contains(t, got, original[:barEnd]) // original content preserved up to the splice point
}

func TestMergeInsertBeforePreservesOriginalTail(t *testing.T) {
	t.Parallel()

	original := "  existingLine();\n"
	c := chunk.Chunk{StartByte: 2, EndByte: len(original) - 1}

	got := Merge(original, "newLine();", c, InsertBefore)
	assert.Contains(t, got, "newLine();")
	assert.Contains(t, got, "existingLine();")
}

func TestAppendFallback(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "\n\nedit", AppendFallback("", "edit"))
	assert.Equal(t, "original", AppendFallback("original", ""))
	assert.Equal(t, "original\n\nedit", AppendFallback("original", "edit"))
}

func TestStrategyStringsAreSnakeCase(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "exact_replace", ExactReplace.String())
	assert.Equal(t, "fuzzy_replace", FuzzyReplace.String())
	assert.Equal(t, "insert_after", InsertAfter.String())
	assert.Equal(t, "insert_before", InsertBefore.String())
	assert.Equal(t, "append", Append.String())
}
