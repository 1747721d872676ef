package similarity

// Test Plan:
// - Score on identical text yields Total 1 (within floating tolerance)
// - Score is weighted 0.5/0.3/0.2 of its components
// - Score never goes outside [0,1]
// - CacheKey is stable and distinguishes differing inputs
// - levenshtein matches known distances
// - tokenOverlapScore treats duplicates as a Jaccard-over-multiset
// - structuralScore is 0 for texts with no shared keywords/delimiters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreIdenticalTextIsMaximal(t *testing.T) {
	t.Parallel()

	text := "function add(a, b) { return a + b; }"
	s := Score(text, text, []string{"function", "return"})
	assert.InDelta(t, 1.0, s.Total, 1e-9)
	assert.InDelta(t, 1.0, s.EditDistance, 1e-9)
	assert.InDelta(t, 1.0, s.TokenOverlap, 1e-9)
	assert.InDelta(t, 1.0, s.Structural, 1e-9)
}

func TestScoreIsWeightedCombination(t *testing.T) {
	t.Parallel()

	s := Score("function foo() {}", "function bar(x) { return x; }", []string{"function", "return"})
	expected := weightEditDistance*s.EditDistance + weightTokenOverlap*s.TokenOverlap + weightStructural*s.Structural
	assert.InDelta(t, expected, s.Total, 1e-9)
}

func TestScoreStaysWithinUnitRange(t *testing.T) {
	t.Parallel()

	s := Score("", "anything at all", []string{"function"})
	assert.GreaterOrEqual(t, s.Total, 0.0)
	assert.LessOrEqual(t, s.Total, 1.0)
}

func TestCacheKeyStability(t *testing.T) {
	t.Parallel()

	a := CacheKey("edit text", "chunk text")
	b := CacheKey("edit text", "chunk text")
	c := CacheKey("edit text", "different chunk")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestLevenshteinKnownDistances(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, levenshtein("abc", "abc"))
	assert.Equal(t, 3, levenshtein("kitten", "sitting"))
	assert.Equal(t, 1, levenshtein("a", ""))
}

func TestTokenOverlapDuplicatesContribute(t *testing.T) {
	t.Parallel()

	// "a a b" vs "a b b": intersection = min(2,1)+min(1,2) = 1+1 = 2
	// union = max(2,1)+max(1,2) = 2+2 = 4 -> 0.5
	score := tokenOverlapScore("a a b", "a b b")
	assert.InDelta(t, 0.5, score, 1e-9)
}

func TestTokenOverlapEmptyInputIsZero(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, tokenOverlapScore("", "anything"))
	assert.Equal(t, 0.0, tokenOverlapScore("anything", ""))
}

func TestStructuralScoreZeroWhenNoSharedFeatures(t *testing.T) {
	t.Parallel()

	score := structuralScore("plain text sentence", "another plain sentence", []string{"function"})
	assert.Equal(t, 0.0, score)
}
