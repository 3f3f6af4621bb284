// Package validate checks a loaded IR root against the schema invariants
// and quarantines symbols/edges that violate them. The validator is the
// sole gate for IR content correctness; everything downstream trusts its
// output and must never fail because of invalid IR content.
package validate

import (
	"errors"
	"fmt"

	"github.com/ctxslice/ctxslice/internal/ir"
)

// ErrIncompatibleIrVersion is returned (wrapped with the version found)
// when ir_version doesn't exactly match ir.SchemaVersion.
var ErrIncompatibleIrVersion = errors.New("incompatible ir_version")

// WarningKind classifies a non-fatal validation warning.
type WarningKind string

const (
	WarnInvalidFileID   WarningKind = "InvalidFileId"
	WarnInvalidCallerID WarningKind = "InvalidCallerId"
	WarnInvalidCalleeID WarningKind = "InvalidCalleeId"
)

// Warning is one quarantine event. SubjectID is the symbol or edge id (for
// edges, "caller->callee") that was dropped.
type Warning struct {
	Kind      WarningKind
	SubjectID string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s(%s)", w.Kind, w.SubjectID)
}

// Result is the surviving, validated subset of an IrRoot plus the
// quarantine warnings collected along the way.
type Result struct {
	Files       []ir.File
	Symbols     []ir.Symbol
	CallEdges   []ir.CallEdge
	ConfigReads []ir.ConfigRead
	Warnings    []Warning
}

// Validate enforces the schema invariants described in the IR data model:
// exact schema version, symbol file_id resolution, and call edge endpoint
// resolution. It never returns an error for content problems — those are
// quarantined and recorded as warnings — only for the fatal version
// mismatch.
func Validate(root *ir.IrRoot) (*Result, error) {
	if root.IrVersion != ir.SchemaVersion {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrIncompatibleIrVersion, root.IrVersion, ir.SchemaVersion)
	}

	validFiles := make(map[string]bool, len(root.Files))
	for _, f := range root.Files {
		validFiles[f.ID] = true
	}

	res := &Result{Files: root.Files}
	validSymbols := make(map[string]bool, len(root.Symbols))
	for _, sym := range root.Symbols {
		if sym.FileID == nil || !validFiles[*sym.FileID] {
			res.Warnings = append(res.Warnings, Warning{Kind: WarnInvalidFileID, SubjectID: sym.ID})
			continue
		}
		res.Symbols = append(res.Symbols, sym)
		validSymbols[sym.ID] = true
	}

	for _, e := range root.CallEdges {
		if !validSymbols[e.CallerID] {
			res.Warnings = append(res.Warnings, Warning{Kind: WarnInvalidCallerID, SubjectID: edgeID(e)})
			continue
		}
		if !validSymbols[e.CalleeID] {
			res.Warnings = append(res.Warnings, Warning{Kind: WarnInvalidCalleeID, SubjectID: edgeID(e)})
			continue
		}
		res.CallEdges = append(res.CallEdges, e)
	}

	res.ConfigReads = root.ConfigReads
	return res, nil
}

func edgeID(e ir.CallEdge) string {
	return e.CallerID + "->" + e.CalleeID
}
