// Package pipeline is the composition root: it wires Loader, Validator,
// Merger, Graph Builder, Traversal, Expansion, Filter, and Compressor into
// a single synchronous call, the way cmd/gorisk/scan composed analyzer,
// capability, taint, and report in the teacher repo.
package pipeline

import (
	"fmt"

	"github.com/ctxslice/ctxslice/internal/compress"
	"github.com/ctxslice/ctxslice/internal/expand"
	"github.com/ctxslice/ctxslice/internal/filter"
	"github.com/ctxslice/ctxslice/internal/graph"
	"github.com/ctxslice/ctxslice/internal/ir"
	"github.com/ctxslice/ctxslice/internal/loader"
	"github.com/ctxslice/ctxslice/internal/logging"
	"github.com/ctxslice/ctxslice/internal/merge"
	"github.com/ctxslice/ctxslice/internal/traversal"
	"github.com/ctxslice/ctxslice/internal/validate"
)

// Result is everything a caller (the CLI, or an embedder) might want back
// from a single pipeline run: the final Slice plus the intermediate
// validator warnings, useful for diagnostics without re-running anything.
type Result struct {
	Slice           *compress.Slice
	Warnings        []validate.Warning
	Language        string
	AdapterVersion  string
	RuntimeCaptured bool
}

// Options controls the parts of the pipeline that have real choices: which
// framework symbols are protected from the filter, and where to log.
type Options struct {
	// ProtectedFrameworkIDs are framework symbols that survive the
	// framework filter regardless of is_framework. Typically the hot path
	// and its interface-resolution additions.
	ProtectedFrameworkIDs []string
	Logger                *logging.Logger
}

// Run executes the full pipeline against already-loaded static IR and
// runtime trace documents.
func Run(staticIR *ir.IrRoot, trace *ir.RuntimeTrace, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = logging.Default(false)
	}

	validated, err := validate.Validate(staticIR)
	if err != nil {
		return nil, fmt.Errorf("pipeline: validate: %w", err)
	}
	for _, w := range validated.Warnings {
		log.Warnf("quarantined %s", w.String())
	}

	merged := merge.Merge(validated, trace)
	log.Debugf("merged %d symbols, %d edges, %d config reads", len(merged.Symbols), len(merged.CallEdges), len(merged.ConfigReads))

	g := graph.Build(merged)
	hotPath := traversal.HotPath(g)
	log.Debugf("hot path: %d symbols", len(hotPath))

	expanded := expand.Expand(g, hotPath)
	log.Debugf("expanded set: %d symbols", len(expanded.Order()))

	protected := make(map[string]bool, len(hotPath)+len(opts.ProtectedFrameworkIDs))
	for _, id := range hotPath {
		protected[id] = true
	}
	for _, id := range opts.ProtectedFrameworkIDs {
		protected[id] = true
	}
	filtered := filter.FrameworkFilter(g, expanded.Order(), protected)
	log.Debugf("after framework filter: %d symbols", len(filtered))

	slice := compress.Compress(g, merged, filtered)
	log.Debugf("slice: %d symbols, %d files, %d edges, %d cyclic components",
		len(slice.Symbols), len(slice.RelevantFiles), len(slice.Edges), slice.CyclicComponents)

	return &Result{
		Slice:           slice,
		Warnings:        validated.Warnings,
		Language:        staticIR.Language,
		AdapterVersion:  staticIR.AdapterVersion,
		RuntimeCaptured: len(trace.ObservedSymbols) > 0 || len(trace.ObservedEdges) > 0,
	}, nil
}

// RunFromFiles loads static_ir.json and runtime_trace.json from disk and
// runs Run.
func RunFromFiles(staticIRPath, runtimeTracePath string, opts Options) (*Result, error) {
	staticIR, err := loader.LoadStaticIR(staticIRPath)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	trace, err := loader.LoadRuntimeTrace(runtimeTracePath)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	return Run(staticIR, trace, opts)
}
