package graph

import "github.com/ctxslice/ctxslice/internal/merge"

// Build populates a new Graph from a MergedIr in two passes: every symbol
// first (establishing the file map), then every merged edge.
func Build(m *merge.MergedIr) *Graph {
	g := New()

	fileByID := make(map[string]string, len(m.Files))
	for _, f := range m.Files {
		fileByID[f.ID] = f.Path
	}

	for _, sym := range m.Symbols {
		g.AddNode(sym)
		if sym.FileID != nil {
			if path, ok := fileByID[*sym.FileID]; ok {
				g.SetFile(sym.ID, path)
			}
		}
	}

	for _, e := range m.CallEdges {
		g.AddEdge(e.CallerID, e.CalleeID, EdgeMeta{
			CallCount:       e.CallCount,
			RuntimeObserved: e.RuntimeObserved,
			IsStatic:        e.IsStatic,
		})
	}

	return g
}
