// Package expand grows the runtime hot path by one hop plus interface
// resolution, producing the symbol set the compressor works from.
package expand

import (
	"github.com/ctxslice/ctxslice/internal/graph"
	"github.com/ctxslice/ctxslice/internal/ir"
)

// Graph is the expanded symbol set: the union of the hot path, its
// radius-1 neighborhood, and interface resolution. Order is the order
// symbols were first added by the three rules, and is stable given a
// stable hot path and a stable graph build — the compressor relies on
// this for deterministic topological-sort seeding and cycle-tail output.
type Graph struct {
	order []string
	set   map[string]bool
}

// Contains reports whether id is in the expanded set.
func (eg *Graph) Contains(id string) bool {
	return eg.set[id]
}

// Order returns expanded symbol ids in first-added order.
func (eg *Graph) Order() []string {
	return eg.order
}

func (eg *Graph) add(id string) {
	if eg.set[id] {
		return
	}
	eg.set[id] = true
	eg.order = append(eg.order, id)
}

// Expand computes the expanded set for g given its hot path.
func Expand(g *graph.Graph, hotPath []string) *Graph {
	eg := &Graph{set: make(map[string]bool)}

	// Rule 1: the hot-path symbols themselves.
	for _, id := range hotPath {
		eg.add(id)
	}

	reverse := g.ReverseEdges()

	// Rule 2: radius-1 neighborhood — every direct out- and in-neighbor of
	// each hot-path node, when present in the graph.
	for _, id := range hotPath {
		for _, e := range g.OutEdges(id) {
			if _, ok := g.Node(e.CalleeID); ok {
				eg.add(e.CalleeID)
			}
		}
		for _, callerID := range reverse[id] {
			if _, ok := g.Node(callerID); ok {
				eg.add(callerID)
			}
		}
	}

	// Rule 3: interface resolution. Collect interface symbols that are
	// either in the hot path or the callee of a hot-path out-edge, then add
	// every symbol elsewhere in the graph whose out-edges target one of
	// those interfaces.
	interfaceSet := make(map[string]bool)
	var interfaceOrder []string
	markInterface := func(id string) {
		if interfaceSet[id] {
			return
		}
		interfaceSet[id] = true
		interfaceOrder = append(interfaceOrder, id)
	}
	for _, id := range hotPath {
		if isInterface(g, id) {
			markInterface(id)
		}
		for _, e := range g.OutEdges(id) {
			if isInterface(g, e.CalleeID) {
				markInterface(e.CalleeID)
			}
		}
	}
	for _, callerID := range g.NodeOrder() {
		for _, e := range g.OutEdges(callerID) {
			if interfaceSet[e.CalleeID] {
				eg.add(callerID)
			}
		}
	}
	for _, ifaceID := range interfaceOrder {
		eg.add(ifaceID)
	}

	return eg
}

func isInterface(g *graph.Graph, id string) bool {
	sym, ok := g.Node(id)
	return ok && sym.Kind == ir.KindInterface
}
