package compress

import "github.com/ctxslice/ctxslice/internal/ir"

// sccState holds Tarjan's algorithm state for a single node.
type sccState struct {
	index   int
	lowlink int
	onStack bool
}

// countCyclicComponents runs Tarjan's algorithm over the compressed edge
// set, restricted to ids, and counts the strongly connected components
// that aren't a single node without a self-loop. This is a diagnostic
// surfaced in metadata.json — it does not change Symbols or Edges.
func countCyclicComponents(ids []string, edges []ir.CallEdge) int {
	adj := make(map[string][]string)
	selfLoop := make(map[string]bool)
	for _, e := range edges {
		if e.CallerID == e.CalleeID {
			selfLoop[e.CallerID] = true
			continue
		}
		adj[e.CallerID] = append(adj[e.CallerID], e.CalleeID)
	}

	var (
		index int
		stack []string
		state = make(map[string]*sccState)
		count int
	)

	var strongConnect func(v string)
	strongConnect = func(v string) {
		state[v] = &sccState{index: index, lowlink: index, onStack: true}
		index++
		stack = append(stack, v)

		for _, w := range adj[v] {
			if state[w] == nil {
				strongConnect(w)
				if state[w].lowlink < state[v].lowlink {
					state[v].lowlink = state[w].lowlink
				}
			} else if state[w].onStack {
				if state[w].index < state[v].lowlink {
					state[v].lowlink = state[w].index
				}
			}
		}

		if state[v].lowlink == state[v].index {
			var members []string
			for {
				n := len(stack) - 1
				w := stack[n]
				stack = stack[:n]
				state[w].onStack = false
				members = append(members, w)
				if w == v {
					break
				}
			}
			if len(members) > 1 || selfLoop[members[0]] {
				count++
			}
		}
	}

	for _, id := range ids {
		if state[id] == nil {
			strongConnect(id)
		}
	}
	return count
}
