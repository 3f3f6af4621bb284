// Package slice implements the "slice" subcommand: run the core pipeline
// against an already-recorded static_ir.json/runtime_trace.json and
// package the result into .context-slice/.
package slice

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ctxslice/ctxslice/internal/logging"
	"github.com/ctxslice/ctxslice/internal/pack"
	"github.com/ctxslice/ctxslice/internal/pipeline"
)

func Run(args []string, verbose bool) int {
	fs := flag.NewFlagSet("slice", flag.ExitOnError)
	scenarioName := fs.String("scenario", "", "scenario name, for architecture.md's heading and metadata.json")
	fs.Parse(args)

	log := logging.Default(verbose)

	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	ctxDir := filepath.Join(dir, ".context-slice")
	staticIRPath := filepath.Join(ctxDir, "static_ir.json")
	runtimeTracePath := filepath.Join(ctxDir, "runtime_trace.json")
	if _, err := os.Stat(staticIRPath); err != nil {
		fmt.Fprintln(os.Stderr, "slice: no recorded slice found; run `ctxslice record` first")
		return 1
	}

	res, err := pipeline.RunFromFiles(staticIRPath, runtimeTracePath, pipeline.Options{Logger: log})
	if err != nil {
		fmt.Fprintln(os.Stderr, "slice:", err)
		return 2
	}

	name := *scenarioName
	if name == "" {
		name = filepath.Base(dir)
	}

	now := time.Now().UTC()
	meta := pack.Metadata{
		AdapterVersion:  res.AdapterVersion,
		Language:        res.Language,
		Timestamp:       now.Format(time.RFC3339),
		TimestampUnix:   now.Unix(),
		RuntimeCaptured: res.RuntimeCaptured,
	}
	if err := pack.Write(ctxDir, name, res.Slice, meta); err != nil {
		fmt.Fprintln(os.Stderr, "slice:", err)
		return 2
	}

	fmt.Printf("slice written to %s (%d symbols, %d files, %d cyclic components)\n",
		ctxDir, len(res.Slice.Symbols), len(res.Slice.RelevantFiles), res.Slice.CyclicComponents)
	return 0
}
