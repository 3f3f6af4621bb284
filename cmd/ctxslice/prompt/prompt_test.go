package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSlice(t *testing.T, ctxDir string) {
	t.Helper()
	if err := os.MkdirAll(ctxDir, 0o755); err != nil {
		t.Fatal(err)
	}
	arch := "# Architecture: checkout\n\n## Call Path\n\n1. Order.submit\n2. Order.validate\n\n## Source Files\n\n- Order.java\n"
	if err := os.WriteFile(filepath.Join(ctxDir, "architecture.md"), []byte(arch), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(ctxDir, "relevant_files.txt"), []byte("Order.java\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRunAssemblesPrompt(t *testing.T) {
	testDir := t.TempDir()
	writeSlice(t, filepath.Join(testDir, ".context-slice"))

	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)
	if err := os.Chdir(testDir); err != nil {
		t.Fatal(err)
	}

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	code := Run([]string{"fix the checkout bug"}, false)
	w.Close()
	os.Stdout = old

	if code != 0 {
		t.Fatalf("Run: exit code %d", code)
	}
	buf := make([]byte, 8192)
	n, _ := r.Read(buf)
	out := string(buf[:n])

	if !strings.Contains(out, "fix the checkout bug") {
		t.Error("expected task text in assembled prompt")
	}
	if !strings.Contains(out, "Order.submit") {
		t.Error("expected architecture content in assembled prompt")
	}
	if !strings.Contains(out, "Order.java") {
		t.Error("expected relevant files content in assembled prompt")
	}
}

func TestRunNoSliceFails(t *testing.T) {
	testDir := t.TempDir()
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)
	if err := os.Chdir(testDir); err != nil {
		t.Fatal(err)
	}

	if code := Run([]string{"do something"}, false); code == 0 {
		t.Fatal("expected non-zero exit when no slice has been packaged")
	}
}

func TestRunWrongArgCountFails(t *testing.T) {
	if code := Run([]string{}, false); code == 0 {
		t.Fatal("expected non-zero exit with no task argument")
	}
	if code := Run([]string{"a", "b"}, false); code == 0 {
		t.Fatal("expected non-zero exit with more than one task argument")
	}
}
