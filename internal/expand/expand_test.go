package expand

import (
	"testing"

	"github.com/ctxslice/ctxslice/internal/graph"
	"github.com/ctxslice/ctxslice/internal/ir"
)

func TestExpandClosureIncludesHotPath(t *testing.T) {
	g := graph.New()
	for _, id := range []string{"A", "B", "C"} {
		g.AddNode(ir.Symbol{ID: id})
	}
	g.AddEdge("A", "B", graph.EdgeMeta{CallCount: 3})
	g.AddEdge("B", "C", graph.EdgeMeta{})

	hp := []string{"A", "B"}
	eg := Expand(g, hp)

	for _, id := range hp {
		if !eg.Contains(id) {
			t.Errorf("expected hot-path symbol %s to be in expanded set", id)
		}
	}
	if !eg.Contains("C") {
		t.Errorf("expected radius-1 callee C to be in expanded set")
	}
}

func TestExpandRadius1IncludesCallers(t *testing.T) {
	g := graph.New()
	for _, id := range []string{"Root", "Hot", "Caller"} {
		g.AddNode(ir.Symbol{ID: id})
	}
	g.AddEdge("Caller", "Hot", graph.EdgeMeta{})
	g.AddEdge("Hot", "Root", graph.EdgeMeta{CallCount: 1})

	eg := Expand(g, []string{"Hot"})
	if !eg.Contains("Caller") {
		t.Errorf("expected in-neighbor Caller to be in expanded set")
	}
}

func TestExpandInterfaceResolution(t *testing.T) {
	g := graph.New()
	g.AddNode(ir.Symbol{ID: "IFace", Kind: ir.KindInterface})
	g.AddNode(ir.Symbol{ID: "ImplX"})
	g.AddNode(ir.Symbol{ID: "ImplY"})
	g.AddNode(ir.Symbol{ID: "Caller"})

	g.AddEdge("Caller", "IFace", graph.EdgeMeta{IsStatic: true})
	g.AddEdge("ImplX", "IFace", graph.EdgeMeta{IsStatic: true})
	g.AddEdge("ImplY", "IFace", graph.EdgeMeta{IsStatic: true})
	g.AddEdge("Caller", "ImplX", graph.EdgeMeta{CallCount: 1, RuntimeObserved: true})

	eg := Expand(g, []string{"Caller", "ImplX"})

	for _, id := range []string{"IFace", "ImplX", "ImplY", "Caller"} {
		if !eg.Contains(id) {
			t.Errorf("expected %s in expanded set via interface resolution", id)
		}
	}
}

func TestExpandIsIdempotentAcrossRules(t *testing.T) {
	g := graph.New()
	g.AddNode(ir.Symbol{ID: "A"})
	g.AddNode(ir.Symbol{ID: "B"})
	g.AddEdge("A", "B", graph.EdgeMeta{CallCount: 1})
	g.AddEdge("B", "A", graph.EdgeMeta{CallCount: 1})

	eg := Expand(g, []string{"A", "B"})
	seen := map[string]int{}
	for _, id := range eg.Order() {
		seen[id]++
	}
	for id, count := range seen {
		if count != 1 {
			t.Errorf("expected %s exactly once in Order(), got %d", id, count)
		}
	}
}
