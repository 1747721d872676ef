package chunkgraph

import (
	"strings"
	"testing"

	"github.com/mvp-joe/agent-booster/internal/chunk"
	"github.com/mvp-joe/agent-booster/internal/language"
)

// Test Plan: containment nesting produces the expected parent/child edges
// and a topological order that always lists a parent before its children;
// disjoint top-level chunks stay unordered relative to each other but each
// still precedes its own descendants.
func TestBuildNesting(t *testing.T) {
	t.Parallel()

	outer := chunk.Chunk{Kind: language.KindClass, StartByte: 0, EndByte: 100, Text: "class Foo {"}
	inner := chunk.Chunk{Kind: language.KindMethod, StartByte: 10, EndByte: 50, Text: "  method bar() {"}
	sibling := chunk.Chunk{Kind: language.KindFunction, StartByte: 200, EndByte: 250, Text: "function baz() {"}

	g := Build([]chunk.Chunk{sibling, outer, inner})

	order, err := g.TopologicalOrder()
	if err != nil {
		t.Fatalf("TopologicalOrder: %v", err)
	}

	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}

	outerID, innerID := nodeID(outer), nodeID(inner)
	if pos[outerID] >= pos[innerID] {
		t.Fatalf("expected outer chunk before inner chunk in topological order, got %v", order)
	}
}

func TestRenderIndentsChildrenUnderParent(t *testing.T) {
	t.Parallel()

	outer := chunk.Chunk{Kind: language.KindClass, StartByte: 0, EndByte: 100, Text: "class Foo {"}
	inner := chunk.Chunk{Kind: language.KindMethod, StartByte: 10, EndByte: 50, Text: "  method bar() {"}

	g := Build([]chunk.Chunk{outer, inner})
	out := g.Render()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rendered lines, got %d: %q", len(lines), out)
	}
	if strings.HasPrefix(lines[0], " ") {
		t.Fatalf("root line should not be indented: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "  ") {
		t.Fatalf("child line should be indented under its parent: %q", lines[1])
	}
}

func TestDisjointChunksHaveNoEdge(t *testing.T) {
	t.Parallel()

	a := chunk.Chunk{Kind: language.KindFunction, StartByte: 0, EndByte: 10, Text: "function a() {}"}
	b := chunk.Chunk{Kind: language.KindFunction, StartByte: 20, EndByte: 30, Text: "function b() {}"}

	g := Build([]chunk.Chunk{a, b})
	dot := g.Dot()
	if strings.Contains(dot, "->") {
		t.Fatalf("disjoint chunks should produce no containment edge, got:\n%s", dot)
	}
}

func TestEmptyChunkSet(t *testing.T) {
	t.Parallel()

	g := Build(nil)
	order, err := g.TopologicalOrder()
	if err != nil {
		t.Fatalf("TopologicalOrder on empty graph: %v", err)
	}
	if len(order) != 0 {
		t.Fatalf("expected empty order, got %v", order)
	}
	if g.Render() != "" {
		t.Fatalf("expected empty render, got %q", g.Render())
	}
}
