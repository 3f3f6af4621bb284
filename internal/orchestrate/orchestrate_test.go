package orchestrate

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ctxslice/ctxslice/internal/logging"
)

func testLogger() *logging.Logger {
	return logging.New(&bytes.Buffer{}, true)
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDetectLanguagePomTakesPriority(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "pom.xml"))
	writeFile(t, filepath.Join(dir, "go.mod"))
	lang, err := DetectLanguage(testLogger(), dir)
	if err != nil {
		t.Fatalf("DetectLanguage: %v", err)
	}
	if lang != LanguageJava {
		t.Fatalf("expected Java, got %s", lang)
	}
}

func TestDetectLanguageGradle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "build.gradle.kts"))
	lang, err := DetectLanguage(testLogger(), dir)
	if err != nil || lang != LanguageJava {
		t.Fatalf("expected Java, got %s, err %v", lang, err)
	}
}

func TestDetectLanguageGoMod(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "go.mod"))
	lang, err := DetectLanguage(testLogger(), dir)
	if err != nil || lang != LanguageGo {
		t.Fatalf("expected Go, got %s, err %v", lang, err)
	}
}

func TestDetectLanguagePython(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "pyproject.toml"))
	lang, err := DetectLanguage(testLogger(), dir)
	if err != nil || lang != LanguagePython {
		t.Fatalf("expected Python, got %s, err %v", lang, err)
	}
}

func TestDetectLanguageUnknownReturnsError(t *testing.T) {
	dir := t.TempDir()
	_, err := DetectLanguage(testLogger(), dir)
	if err == nil {
		t.Fatal("expected ErrUnsupportedLanguage")
	}
}

func TestEnsureOutputDirCreatesDotContextSlice(t *testing.T) {
	dir := t.TempDir()
	out, err := EnsureOutputDir(dir)
	if err != nil {
		t.Fatalf("EnsureOutputDir: %v", err)
	}
	if filepath.Base(out) != ".context-slice" {
		t.Fatalf("expected .context-slice, got %s", out)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected dir to exist: %v", err)
	}
}

func TestWriteManifestBeforeSpawnOrder(t *testing.T) {
	dir := t.TempDir()
	m := Manifest{ScenarioName: "checkout", EntryPoints: []string{"Main.main"}, OutputDir: dir}
	if err := WriteManifest(dir, m); err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var got Manifest
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ScenarioName != "checkout" {
		t.Fatalf("unexpected manifest: %+v", got)
	}
}

func TestJavaAdapterArgsShape(t *testing.T) {
	args := JavaAdapterArgs("adapter.jar", "/m.json", "/out", "agent.jar", "ns")
	want := []string{"-jar", "adapter.jar", "record", "--manifest", "/m.json", "--output", "/out", "--agent", "agent.jar", "--namespace", "ns"}
	if len(args) != len(want) {
		t.Fatalf("got %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Fatalf("got %v, want %v", args, want)
		}
	}
}

func TestRunSucceedsAndDrainsStderr(t *testing.T) {
	err := Run(context.Background(), testLogger(), "sh", []string{"-c", "echo to stderr 1>&2; exit 0"}, time.Second)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
}

func TestRunNonZeroExitReturnsAdapterFailedWithStderrTail(t *testing.T) {
	err := Run(context.Background(), testLogger(), "sh", []string{"-c", "echo boom 1>&2; exit 7"}, time.Second)
	var af *AdapterFailed
	if err == nil {
		t.Fatal("expected AdapterFailed")
	}
	if !asAdapterFailed(err, &af) {
		t.Fatalf("expected *AdapterFailed, got %T: %v", err, err)
	}
	if af.ExitCode != 7 {
		t.Fatalf("expected exit code 7, got %d", af.ExitCode)
	}
	if af.StderrTail == "" {
		t.Fatalf("expected non-empty stderr tail")
	}
}

func TestRunDrainsLargeStderrWithoutDeadlock(t *testing.T) {
	// Emit more than one pipe buffer's worth (64KiB) of stderr output and
	// confirm the subprocess still exits cleanly instead of blocking on a
	// full pipe.
	err := Run(context.Background(), testLogger(), "sh", []string{"-c", "yes x | head -c 200000 1>&2; exit 0"}, 5*time.Second)
	if err != nil {
		t.Fatalf("expected success despite large stderr, got %v", err)
	}
}

func TestRunTimesOutAndEscalatesToKill(t *testing.T) {
	old := GracePeriod
	GracePeriod = 100 * time.Millisecond
	defer func() { GracePeriod = old }()

	err := Run(context.Background(), testLogger(), "sh", []string{"-c", "trap '' TERM; sleep 30"}, 100*time.Millisecond)
	if err == nil {
		t.Fatal("expected timeout failure")
	}
}

func TestRunUnknownBinaryReturnsNotFound(t *testing.T) {
	err := Run(context.Background(), testLogger(), "definitely-not-a-real-binary", nil, time.Second)
	var nf *AdapterNotFound
	if !asAdapterNotFound(err, &nf) {
		t.Fatalf("expected *AdapterNotFound, got %T: %v", err, err)
	}
}

func asAdapterFailed(err error, target **AdapterFailed) bool {
	af, ok := err.(*AdapterFailed)
	if ok {
		*target = af
	}
	return ok
}

func asAdapterNotFound(err error, target **AdapterNotFound) bool {
	nf, ok := err.(*AdapterNotFound)
	if ok {
		*target = nf
	}
	return ok
}
