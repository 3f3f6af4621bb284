// Package compress turns an expanded symbol set into a Slice: a
// deterministic topological ordering of its symbols, the deduplicated
// source files they live in, the config keys that influence them, and the
// edge list the packager writes to call_graph.json.
package compress

import (
	"github.com/ctxslice/ctxslice/internal/filter"
	"github.com/ctxslice/ctxslice/internal/graph"
	"github.com/ctxslice/ctxslice/internal/ir"
	"github.com/ctxslice/ctxslice/internal/merge"
)

// ConfigInfluence groups every config_reads entry for one key into a single
// record naming the first resolved value observed and every symbol that
// read it.
type ConfigInfluence struct {
	ConfigKey     string   `json:"config_key"`
	ResolvedValue *string  `json:"resolved_value,omitempty"`
	InfluencedBy  []string `json:"influenced_by"`
}

// Slice is the compressor's output: everything the packager needs to
// render architecture.md, relevant_files.txt, call_graph.json, and
// metadata.json.
type Slice struct {
	Symbols          []string
	RelevantFiles    []string
	ConfigInfluences []ConfigInfluence
	Edges            []ir.CallEdge
	CyclicComponents int
}

// Compress builds a Slice from expandedIDs (already framework-filtered, in
// the order package expand and package filter produced) plus the merged IR
// those ids were drawn from.
func Compress(g *graph.Graph, m *merge.MergedIr, expandedIDs []string) *Slice {
	set := make(map[string]bool, len(expandedIDs))
	for _, id := range expandedIDs {
		set[id] = true
	}

	// Step 2: every merged edge whose caller and callee are both in the
	// expanded set.
	var qualifying []ir.CallEdge
	for _, e := range m.CallEdges {
		if set[e.CallerID] && set[e.CalleeID] {
			qualifying = append(qualifying, e)
		}
	}

	// Step 3: edge dedup (§4.6), then 2-cycle collapse.
	edges := filter.DedupEdges(qualifying)
	edges = filter.CollapseCycles(edges)

	// Step 4: topological order, Kahn's algorithm, seeded in expanded-set
	// order, with a deterministic cycle tail.
	symbols := topoSort(expandedIDs, edges)

	// Step 5: relevant file paths, deduped, first-appearance-in-topo-order.
	relevantFiles := relevantFilePaths(g, symbols)

	// Step 6: config influence groups.
	influences := configInfluences(m.ConfigReads, set)

	return &Slice{
		Symbols:          symbols,
		RelevantFiles:    relevantFiles,
		ConfigInfluences: influences,
		Edges:            edges,
		CyclicComponents: countCyclicComponents(expandedIDs, edges),
	}
}

// topoSort runs Kahn's algorithm over expandedIDs and edges. The queue is
// seeded with every zero-in-degree id in expanded-set order; ids whose
// in-degree drops to zero later are enqueued in edge order. Any ids left
// over once the queue runs dry (the cycle tail) are appended in
// expanded-set order.
func topoSort(expandedIDs []string, edges []ir.CallEdge) []string {
	inDegree := make(map[string]int, len(expandedIDs))
	adj := make(map[string][]string, len(expandedIDs))
	for _, id := range expandedIDs {
		inDegree[id] = 0
	}
	for _, e := range edges {
		if _, ok := inDegree[e.CalleeID]; !ok {
			continue
		}
		if _, ok := inDegree[e.CallerID]; !ok {
			continue
		}
		inDegree[e.CalleeID]++
		adj[e.CallerID] = append(adj[e.CallerID], e.CalleeID)
	}

	var queue []string
	for _, id := range expandedIDs {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	visited := make(map[string]bool, len(expandedIDs))
	var out []string
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		visited[id] = true
		out = append(out, id)
		for _, next := range adj[id] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	// Cycle tail: anything Kahn's algorithm never emitted, in expanded-set
	// order.
	for _, id := range expandedIDs {
		if !visited[id] {
			out = append(out, id)
		}
	}
	return out
}

func relevantFilePaths(g *graph.Graph, symbols []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, id := range symbols {
		path, ok := g.File(id)
		if !ok || seen[path] {
			continue
		}
		seen[path] = true
		out = append(out, path)
	}
	return out
}

// configInfluences groups config reads whose symbol is in the expanded set
// by config_key, in first-occurrence order. The resolved value recorded is
// the first one observed for that key; influenced_by lists every distinct
// symbol that read it, in first-occurrence order.
func configInfluences(reads []ir.ConfigRead, set map[string]bool) []ConfigInfluence {
	index := make(map[string]int)
	var out []ConfigInfluence
	for _, r := range reads {
		if !set[r.SymbolID] {
			continue
		}
		i, ok := index[r.ConfigKey]
		if !ok {
			index[r.ConfigKey] = len(out)
			out = append(out, ConfigInfluence{
				ConfigKey:     r.ConfigKey,
				ResolvedValue: r.ResolvedValue,
				InfluencedBy:  []string{r.SymbolID},
			})
			continue
		}
		already := false
		for _, sid := range out[i].InfluencedBy {
			if sid == r.SymbolID {
				already = true
				break
			}
		}
		if !already {
			out[i].InfluencedBy = append(out[i].InfluencedBy, r.SymbolID)
		}
	}
	return out
}
