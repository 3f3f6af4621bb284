package slice

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ctxslice/ctxslice/internal/ir"
)

func writeTestIR(t *testing.T, ctxDir string) {
	t.Helper()
	if err := os.MkdirAll(ctxDir, 0o755); err != nil {
		t.Fatal(err)
	}
	root := ir.IrRoot{
		IrVersion:      ir.SchemaVersion,
		Language:       "java",
		AdapterVersion: "test-adapter/1.0",
		Files: []ir.File{
			{ID: "f1", Path: "Order.java", Language: "java", Hash: "abc"},
		},
		Symbols: []ir.Symbol{
			{ID: "java::Order::submit()", Kind: ir.KindMethod, Name: "submit", Language: "java", FileID: strPtr("f1")},
			{ID: "java::Order::validate()", Kind: ir.KindMethod, Name: "validate", Language: "java", FileID: strPtr("f1")},
		},
		CallEdges: []ir.CallEdge{
			{CallerID: "java::Order::submit()", CalleeID: "java::Order::validate()", IsStatic: true},
		},
	}
	b, err := json.Marshal(root)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(ctxDir, "static_ir.json"), b, 0o644); err != nil {
		t.Fatal(err)
	}
	trace := ir.RuntimeTrace{
		ObservedEdges: []ir.ObservedEdge{
			{Caller: "java::Order::submit()", Callee: "java::Order::validate()", CallCount: 1},
		},
	}
	tb, err := json.Marshal(trace)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(ctxDir, "runtime_trace.json"), tb, 0o644); err != nil {
		t.Fatal(err)
	}
}

func strPtr(s string) *string { return &s }

func TestRunWritesArtifacts(t *testing.T) {
	testDir := t.TempDir()
	ctxDir := filepath.Join(testDir, ".context-slice")
	writeTestIR(t, ctxDir)

	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)
	if err := os.Chdir(testDir); err != nil {
		t.Fatal(err)
	}

	if code := Run([]string{"--scenario", "checkout"}, false); code != 0 {
		t.Fatalf("Run: exit code %d", code)
	}

	for _, name := range []string{"architecture.md", "relevant_files.txt", "call_graph.json", "metadata.json"} {
		if _, err := os.Stat(filepath.Join(ctxDir, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}
}

func TestRunNoRecordedSliceFails(t *testing.T) {
	testDir := t.TempDir()
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)
	if err := os.Chdir(testDir); err != nil {
		t.Fatal(err)
	}

	if code := Run([]string{}, false); code == 0 {
		t.Fatal("expected non-zero exit when no static_ir.json is recorded")
	}
}
