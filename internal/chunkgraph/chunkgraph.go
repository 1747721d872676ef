// Package chunkgraph builds the chunk-containment graph that the "explain"
// CLI diagnostic renders (SPEC_FULL.md §4.7.1). It is not part of the
// apply_edit/batch pipeline proper — nothing in internal/booster imports
// it — it exists purely so a caller can see how the chunk extractor
// decomposed a file into nested blocks.
//
// Grounded on internal/graph/searcher.go's dominikbraun/graph usage:
// graph.New(hashFunc, graph.Directed()), AddVertex, AddEdge,
// graph.ShortestPath. That package builds a call/import graph over an
// indexed codebase; this one builds a much smaller one-shot graph over a
// single file's chunks, but follows the same construction idiom.
package chunkgraph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dominikbraun/graph"

	"github.com/mvp-joe/agent-booster/internal/chunk"
)

// Node is a graph vertex wrapping one extracted chunk. ID is the
// "start:end" byte-range string used both as the dominikbraun/graph hash
// and as the human-readable vertex label.
type Node struct {
	ID    string
	Chunk chunk.Chunk
}

func nodeID(c chunk.Chunk) string {
	return fmt.Sprintf("%d:%d", c.StartByte, c.EndByte)
}

// Graph is the chunk-containment DAG: a directed edge parent -> child
// exists when parent's byte range strictly contains child's.
type Graph struct {
	g     graph.Graph[string, *Node]
	order []string // insertion order, for deterministic rendering
}

// Build constructs the containment graph for chunks. Chunks need not
// already be sorted; Build does not mutate the input slice.
func Build(chunks []chunk.Chunk) *Graph {
	sorted := make([]chunk.Chunk, len(chunks))
	copy(sorted, chunks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].StartByte != sorted[j].StartByte {
			return sorted[i].StartByte < sorted[j].StartByte
		}
		return sorted[i].EndByte > sorted[j].EndByte // wider range first
	})

	g := graph.New(func(n *Node) string { return n.ID }, graph.Directed(), graph.PreventCycles())

	cg := &Graph{g: g}
	for _, c := range sorted {
		n := &Node{ID: nodeID(c), Chunk: c}
		if err := g.AddVertex(n); err != nil {
			// Two chunks can share an identical byte range (a template hit
			// re-extracting the same chunk twice); keep the first.
			continue
		}
		cg.order = append(cg.order, n.ID)
	}

	// Strict containment, narrowest enclosing parent only: for each chunk,
	// its parent is the smallest already-seen range that strictly contains
	// it. Since sorted puts wider ranges first among equal start bytes and
	// chunks are processed in start-byte order, a simple "last containing
	// ancestor on a stack" walk suffices.
	var stack []chunk.Chunk
	for _, c := range sorted {
		for len(stack) > 0 && !strictlyContains(stack[len(stack)-1], c) {
			stack = stack[:len(stack)-1]
		}
		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			_ = g.AddEdge(nodeID(parent), nodeID(c)) // ignore dup/self-loop errors
		}
		stack = append(stack, c)
	}

	return cg
}

func strictlyContains(parent, child chunk.Chunk) bool {
	if parent.StartByte == child.StartByte && parent.EndByte == child.EndByte {
		return false
	}
	return parent.StartByte <= child.StartByte && child.EndByte <= parent.EndByte
}

// TopologicalOrder returns chunk IDs ("start:end") in topological order:
// every parent appears before its children. Returns an error only if the
// graph somehow contains a cycle, which PreventCycles() at construction
// time makes unreachable in practice.
func (cg *Graph) TopologicalOrder() ([]string, error) {
	return graph.TopologicalSort(cg.g)
}

// Render produces a Graphviz-style indented tree for terminal display, one
// line per chunk, children indented two spaces under their parent. Roots
// (chunks with no containing chunk) are listed in source order.
func (cg *Graph) Render() string {
	var b strings.Builder
	visited := make(map[string]bool, len(cg.order))

	var walk func(id string, depth int)
	walk = func(id string, depth int) {
		if visited[id] {
			return
		}
		visited[id] = true
		n, err := cg.g.Vertex(id)
		if err != nil {
			return
		}
		fmt.Fprintf(&b, "%s%s [%s] %d:%d\n",
			strings.Repeat("  ", depth), n.Chunk.Kind, headerLine(n.Chunk.Text), n.Chunk.StartByte, n.Chunk.EndByte)

		adj, err := cg.g.AdjacencyMap()
		if err != nil {
			return
		}
		children := make([]string, 0, len(adj[id]))
		for childID := range adj[id] {
			children = append(children, childID)
		}
		sort.Strings(children)
		for _, childID := range children {
			walk(childID, depth+1)
		}
	}

	for _, id := range cg.order {
		walk(id, 0)
	}
	return b.String()
}

func headerLine(text string) string {
	line := text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		line = text[:i]
	}
	return strings.TrimSpace(line)
}

// Dot renders the graph in Graphviz DOT format.
func (cg *Graph) Dot() string {
	var b strings.Builder
	b.WriteString("digraph chunks {\n")
	for _, id := range cg.order {
		n, err := cg.g.Vertex(id)
		if err != nil {
			continue
		}
		fmt.Fprintf(&b, "  %q [label=%q];\n", id, fmt.Sprintf("%s %s", n.Chunk.Kind, headerLine(n.Chunk.Text)))
	}
	adj, err := cg.g.AdjacencyMap()
	if err == nil {
		for from, edges := range adj {
			targets := make([]string, 0, len(edges))
			for to := range edges {
				targets = append(targets, to)
			}
			sort.Strings(targets)
			for _, to := range targets {
				fmt.Fprintf(&b, "  %q -> %q;\n", from, to)
			}
		}
	}
	b.WriteString("}\n")
	return b.String()
}
