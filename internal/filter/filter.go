// Package filter removes framework noise from an expanded symbol set and
// normalizes the edge list the compressor will order: one edge per
// (caller, callee) pair, and a single representative direction for any
// 2-node cycle.
package filter

import (
	"sort"

	"github.com/ctxslice/ctxslice/internal/graph"
	"github.com/ctxslice/ctxslice/internal/ir"
)

// pairSep separates caller/callee in the dedup key — a byte that cannot
// appear in a symbol id.
const pairSep = "\x00"

// FrameworkFilter removes any symbol in ids where IsFramework is true and
// the id is not in protected, along with the effect that has on later edge
// extraction (the caller is expected to re-derive edges from the returned
// set). Order is preserved.
func FrameworkFilter(g *graph.Graph, ids []string, protected map[string]bool) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		sym, ok := g.Node(id)
		if ok && sym.IsFramework && !protected[id] {
			continue
		}
		out = append(out, id)
	}
	return out
}

// DedupEdges collapses edges sharing a (caller, callee) pair into one,
// summing CallCount and OR-ing RuntimeObserved/IsStatic. Output order is
// first-occurrence order of the pair.
func DedupEdges(edges []ir.CallEdge) []ir.CallEdge {
	index := make(map[string]int, len(edges))
	var out []ir.CallEdge
	for _, e := range edges {
		key := e.CallerID + pairSep + e.CalleeID
		if i, ok := index[key]; ok {
			out[i].CallCount += e.CallCount
			out[i].RuntimeObserved = out[i].RuntimeObserved || e.RuntimeObserved
			out[i].IsStatic = out[i].IsStatic || e.IsStatic
			continue
		}
		index[key] = len(out)
		out = append(out, e)
	}
	return out
}

// CollapseCycles drops the lexicographically larger caller's back-edge for
// every 2-node cycle (A->B and B->A both present), leaving a single
// representative direction. Longer cycles are untouched.
func CollapseCycles(edges []ir.CallEdge) []ir.CallEdge {
	present := make(map[string]bool, len(edges))
	for _, e := range edges {
		present[e.CallerID+pairSep+e.CalleeID] = true
	}

	out := make([]ir.CallEdge, 0, len(edges))
	for _, e := range edges {
		if e.CallerID == e.CalleeID {
			out = append(out, e)
			continue
		}
		reverseKey := e.CalleeID + pairSep + e.CallerID
		if present[reverseKey] && e.CallerID > e.CalleeID {
			// this is the back-edge of a 2-cycle; drop it
			continue
		}
		out = append(out, e)
	}
	return out
}

// SortedIDs is a small helper for callers that need deterministic id
// ordering outside of graph/expanded-set iteration order (e.g. building a
// protected set for the framework filter).
func SortedIDs(ids map[string]bool) []string {
	out := make([]string, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
