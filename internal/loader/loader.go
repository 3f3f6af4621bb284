// Package loader parses static_ir.json and runtime_trace.json into ir
// values. It never panics: a missing file or a decode failure is one of the
// two sentinel errors below, wrapped with the offending path; any other
// read error is returned wrapped with the path but without a sentinel.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ctxslice/ctxslice/internal/ir"
)

// ErrFileNotFound is returned (wrapped) when the input path does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrParseFailure is returned (wrapped) when the input is not valid JSON or
// does not match the expected structure.
var ErrParseFailure = errors.New("parse failure")

// LoadStaticIR reads and decodes a static_ir.json document.
func LoadStaticIR(path string) (*ir.IrRoot, error) {
	data, err := read(path)
	if err != nil {
		return nil, err
	}
	var root ir.IrRoot
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParseFailure, path, err)
	}
	normalizeStaticIR(&root)
	return &root, nil
}

// LoadRuntimeTrace reads and decodes a runtime_trace.json document.
func LoadRuntimeTrace(path string) (*ir.RuntimeTrace, error) {
	data, err := read(path)
	if err != nil {
		return nil, err
	}
	var trace ir.RuntimeTrace
	if err := json.Unmarshal(data, &trace); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParseFailure, path, err)
	}
	normalizeRuntimeTrace(&trace)
	return &trace, nil
}

func read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// normalizeStaticIR maps absent JSON arrays to empty (non-nil) slices, so
// downstream code never has to special-case nil vs. empty.
func normalizeStaticIR(root *ir.IrRoot) {
	if root.Files == nil {
		root.Files = []ir.File{}
	}
	if root.Symbols == nil {
		root.Symbols = []ir.Symbol{}
	}
	if root.CallEdges == nil {
		root.CallEdges = []ir.CallEdge{}
	}
	if root.ConfigReads == nil {
		root.ConfigReads = []ir.ConfigRead{}
	}
	if root.Scenario.EntryPoints == nil {
		root.Scenario.EntryPoints = []string{}
	}
	for i := range root.Symbols {
		if root.Symbols[i].Annotations == nil {
			root.Symbols[i].Annotations = []string{}
		}
	}
}

func normalizeRuntimeTrace(trace *ir.RuntimeTrace) {
	if trace.ObservedSymbols == nil {
		trace.ObservedSymbols = []ir.ObservedSymbol{}
	}
	if trace.ObservedEdges == nil {
		trace.ObservedEdges = []ir.ObservedEdge{}
	}
	if trace.ConfigReads == nil {
		trace.ConfigReads = []ir.ConfigRead{}
	}
}
