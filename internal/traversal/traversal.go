// Package traversal computes the runtime "hot path" over a built graph and
// provides a breadth-first walk helper over out-edges.
package traversal

import (
	"sort"

	"github.com/ctxslice/ctxslice/internal/graph"
)

// HotPath returns every symbol that is the caller or callee of at least one
// edge with CallCount > 0, ordered descending by the maximum such count
// attached to the symbol. Ties are broken by ascending symbol id, for
// determinism independent of map iteration order (see the open question in
// the design notes on hot-path tie-breaking).
//
// If no edge has a positive call count the result is empty — this is a
// deliberate degradation (an empty scenario slice), not an error.
func HotPath(g *graph.Graph) []string {
	maxCount := make(map[string]int)
	touch := func(id string, count int) {
		if count <= 0 {
			return
		}
		if count > maxCount[id] {
			maxCount[id] = count
		}
	}

	for _, callerID := range g.NodeOrder() {
		for _, e := range g.OutEdges(callerID) {
			if e.Meta.CallCount <= 0 {
				continue
			}
			touch(callerID, e.Meta.CallCount)
			touch(e.CalleeID, e.Meta.CallCount)
		}
	}

	ids := make([]string, 0, len(maxCount))
	for id := range maxCount {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if maxCount[ids[i]] != maxCount[ids[j]] {
			return maxCount[ids[i]] > maxCount[ids[j]]
		}
		return ids[i] < ids[j]
	})
	return ids
}

// BFS walks the graph breadth-first from roots, visiting out-neighbors
// only, calling visit(id) exactly once per reachable node (including the
// roots themselves). It never revisits a node, so cycles terminate.
func BFS(g *graph.Graph, roots []string, visit func(id string)) {
	visited := make(map[string]bool, len(roots))
	queue := append([]string{}, roots...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		visited[id] = true
		visit(id)
		for _, e := range g.OutEdges(id) {
			if !visited[e.CalleeID] {
				queue = append(queue, e.CalleeID)
			}
		}
	}
}
