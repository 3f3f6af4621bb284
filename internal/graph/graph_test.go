package graph

import (
	"testing"

	"github.com/ctxslice/ctxslice/internal/ir"
)

func TestNewGraph(t *testing.T) {
	g := New()
	if g.NodeCount() != 0 || g.EdgeCount() != 0 {
		t.Fatal("New() should start empty")
	}
}

func TestAddNodeIsIdempotent(t *testing.T) {
	g := New()
	g.AddNode(ir.Symbol{ID: "a", Name: "first"})
	g.AddNode(ir.Symbol{ID: "a", Name: "second"})
	if g.NodeCount() != 1 {
		t.Fatalf("expected 1 node, got %d", g.NodeCount())
	}
	sym, _ := g.Node("a")
	if sym.Name != "first" {
		t.Errorf("expected first insertion to win, got %q", sym.Name)
	}
}

func TestOutEdgesUnknownIDIsEmpty(t *testing.T) {
	g := New()
	if edges := g.OutEdges("missing"); len(edges) != 0 {
		t.Fatalf("expected empty slice, got %v", edges)
	}
}

func TestReverseEdges(t *testing.T) {
	g := New()
	g.AddEdge("a", "b", EdgeMeta{})
	g.AddEdge("a", "c", EdgeMeta{})
	g.AddEdge("d", "b", EdgeMeta{})

	rev := g.ReverseEdges()
	if len(rev["b"]) != 2 {
		t.Fatalf("b should have 2 reverse edges, got %v", rev["b"])
	}
	if len(rev["c"]) != 1 || rev["c"][0] != "a" {
		t.Fatalf("c should have 1 reverse edge from a, got %v", rev["c"])
	}
	if len(rev["a"]) != 0 {
		t.Fatalf("a has no reverse edges, got %v", rev["a"])
	}
}

func TestReverseEdgesEmpty(t *testing.T) {
	g := New()
	if rev := g.ReverseEdges(); len(rev) != 0 {
		t.Fatalf("expected empty reverse edges, got %v", rev)
	}
}

func TestNodeOrderPreservesInsertion(t *testing.T) {
	g := New()
	g.AddNode(ir.Symbol{ID: "z"})
	g.AddNode(ir.Symbol{ID: "a"})
	g.AddNode(ir.Symbol{ID: "z"}) // duplicate, no-op
	order := g.NodeOrder()
	if len(order) != 2 || order[0] != "z" || order[1] != "a" {
		t.Fatalf("unexpected order: %v", order)
	}
}
