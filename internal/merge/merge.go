// Package merge joins a validated static IR with a runtime trace into a
// single MergedIr: deduplicated symbols, edges augmented with runtime
// observation, runtime-only edges for dispatches static analysis can't
// see, and concatenated config reads.
package merge

import (
	"github.com/ctxslice/ctxslice/internal/ir"
	"github.com/ctxslice/ctxslice/internal/validate"
)

// pairSep separates caller/callee in an internal lookup key. It cannot
// appear in a symbol id (ids are `::`-delimited language/FQN strings), so
// there is no ambiguity.
const pairSep = "\x00"

// MergedIr is the output of Merge: the storage the graph builder and
// everything downstream borrows from.
type MergedIr struct {
	Files       []ir.File
	Symbols     []ir.Symbol
	CallEdges   []ir.CallEdge
	ConfigReads []ir.ConfigRead
}

// Merge combines a validator Result with a runtime trace.
func Merge(validated *validate.Result, trace *ir.RuntimeTrace) *MergedIr {
	out := &MergedIr{
		Files: validated.Files,
	}

	// Step 1: dedup symbols, first occurrence wins.
	seen := make(map[string]bool, len(validated.Symbols))
	for _, sym := range validated.Symbols {
		if seen[sym.ID] {
			continue
		}
		seen[sym.ID] = true
		out.Symbols = append(out.Symbols, sym)
	}

	// Step 2: index runtime edges by (caller, callee).
	runtimeCounts := make(map[string]int, len(trace.ObservedEdges))
	for _, oe := range trace.ObservedEdges {
		runtimeCounts[oe.Caller+pairSep+oe.Callee] = oe.CallCount
	}

	// Step 3: augment static edges with runtime observation.
	matched := make(map[string]bool, len(validated.CallEdges))
	for _, e := range validated.CallEdges {
		key := e.CallerID + pairSep + e.CalleeID
		if count, ok := runtimeCounts[key]; ok {
			e.RuntimeObserved = true
			e.CallCount = count
			matched[key] = true
		} else {
			e.RuntimeObserved = false
			e.CallCount = 0
		}
		out.CallEdges = append(out.CallEdges, e)
	}

	// Step 4: add runtime-only edges for pairs step 3 didn't produce, as
	// long as both endpoints survived validation.
	for _, oe := range trace.ObservedEdges {
		key := oe.Caller + pairSep + oe.Callee
		if matched[key] {
			continue
		}
		if !seen[oe.Caller] || !seen[oe.Callee] {
			continue
		}
		out.CallEdges = append(out.CallEdges, ir.CallEdge{
			CallerID:        oe.Caller,
			CalleeID:        oe.Callee,
			IsStatic:        false,
			RuntimeObserved: true,
			CallCount:       oe.CallCount,
		})
		matched[key] = true
	}

	// Step 5: config reads, static then runtime, no deduplication.
	out.ConfigReads = append(out.ConfigReads, validated.ConfigReads...)
	out.ConfigReads = append(out.ConfigReads, trace.ConfigReads...)

	return out
}
