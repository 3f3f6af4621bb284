package graph

import (
	"testing"

	"github.com/ctxslice/ctxslice/internal/ir"
	"github.com/ctxslice/ctxslice/internal/merge"
)

func TestBuildPopulatesNodesEdgesAndFileMap(t *testing.T) {
	fileID := "f1"
	m := &merge.MergedIr{
		Files:   []ir.File{{ID: "f1", Path: "Order.java"}},
		Symbols: []ir.Symbol{{ID: "a", FileID: &fileID}, {ID: "b"}},
		CallEdges: []ir.CallEdge{
			{CallerID: "a", CalleeID: "b", CallCount: 2, RuntimeObserved: true, IsStatic: true},
		},
	}
	g := Build(m)

	if g.NodeCount() != 2 {
		t.Fatalf("expected 2 nodes, got %d", g.NodeCount())
	}
	path, ok := g.File("a")
	if !ok || path != "Order.java" {
		t.Errorf("expected file map for a, got %q ok=%v", path, ok)
	}
	if _, ok := g.File("b"); ok {
		t.Errorf("expected no file mapping for b")
	}
	edges := g.OutEdges("a")
	if len(edges) != 1 || edges[0].CalleeID != "b" || edges[0].Meta.CallCount != 2 {
		t.Fatalf("unexpected edges: %+v", edges)
	}
}
