// Package graph implements the weighted directed call graph that the rest
// of the pipeline traverses, expands, and compresses.
package graph

import "github.com/ctxslice/ctxslice/internal/ir"

// EdgeMeta carries the per-edge metadata the IR's CallEdge contributes.
type EdgeMeta struct {
	CallCount       int
	RuntimeObserved bool
	IsStatic        bool
}

// Edge is one out-edge: a callee id plus its metadata.
type Edge struct {
	CalleeID string
	Meta     EdgeMeta
}

// Graph is an adjacency-list directed graph. Nodes and edges hold
// references into the merged IR's storage — the IR must outlive the graph.
type Graph struct {
	nodes    map[string]ir.Symbol
	outEdges map[string][]Edge
	fileMap  map[string]string // symbol id -> file path
	order    []string          // insertion order of node ids, for deterministic iteration
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]ir.Symbol),
		outEdges: make(map[string][]Edge),
	}
}

// AddNode is idempotent: a second add with the same id is a no-op,
// preserving the first insertion (and its insertion-order position).
func (g *Graph) AddNode(sym ir.Symbol) {
	if _, exists := g.nodes[sym.ID]; exists {
		return
	}
	g.nodes[sym.ID] = sym
	g.order = append(g.order, sym.ID)
}

// SetFile records where a symbol lives, for later file-path resolution.
func (g *Graph) SetFile(symbolID, path string) {
	if g.fileMap == nil {
		g.fileMap = make(map[string]string)
	}
	g.fileMap[symbolID] = path
}

// File returns the file path recorded for symbolID, if any.
func (g *Graph) File(symbolID string) (string, bool) {
	path, ok := g.fileMap[symbolID]
	return path, ok
}

// AddEdge appends a new out-edge; duplicates are allowed and resolved
// downstream by package filter.
func (g *Graph) AddEdge(callerID, calleeID string, meta EdgeMeta) {
	g.outEdges[callerID] = append(g.outEdges[callerID], Edge{CalleeID: calleeID, Meta: meta})
}

// OutEdges returns id's out-edges, or an empty slice for an unknown id —
// this never fails.
func (g *Graph) OutEdges(id string) []Edge {
	return g.outEdges[id]
}

// Node returns the symbol for id, if present.
func (g *Graph) Node(id string) (ir.Symbol, bool) {
	sym, ok := g.nodes[id]
	return sym, ok
}

// NodeOrder returns node ids in the order they were first added.
func (g *Graph) NodeOrder() []string {
	return g.order
}

// NodeCount and EdgeCount are counters, used only for logging.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

func (g *Graph) EdgeCount() int {
	n := 0
	for _, edges := range g.outEdges {
		n += len(edges)
	}
	return n
}

// ReverseEdges computes the full reverse adjacency: for every callee id,
// the list of caller ids with an edge into it. Callers that compute
// in-neighbors for more than one node (expansion's radius-1 step) should
// call this once rather than scanning the graph per node.
func (g *Graph) ReverseEdges() map[string][]string {
	rev := make(map[string][]string)
	seen := make(map[string]map[string]bool)
	for _, callerID := range g.order {
		for _, e := range g.outEdges[callerID] {
			if seen[e.CalleeID] == nil {
				seen[e.CalleeID] = make(map[string]bool)
			}
			if seen[e.CalleeID][callerID] {
				continue
			}
			seen[e.CalleeID][callerID] = true
			rev[e.CalleeID] = append(rev[e.CalleeID], callerID)
		}
	}
	return rev
}
