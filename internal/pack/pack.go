// Package pack is the Packager: it serializes a compress.Slice into the
// fixed four-file artifact set the spec's downstream consumers (including
// the optional AI-prompt assembler) read from .context-slice/.
package pack

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ctxslice/ctxslice/internal/compress"
	"github.com/ctxslice/ctxslice/internal/ioutil"
)

// CoreVersion is the packager's own version identifier, written into every
// metadata.json as the "core version" the spec requires.
const CoreVersion = "ctxslice/0.1"

// Metadata is the document written to metadata.json. Supplemented fields
// (CyclicComponents, EdgeSemantics) are additions beyond the spec's
// required minimum.
type Metadata struct {
	ScenarioName     string `json:"scenarioName"`
	AdapterVersion   string `json:"adapterVersion"`
	Language         string `json:"language"`
	Timestamp        string `json:"timestamp"`
	TimestampUnix    int64  `json:"timestampUnix"`
	RuntimeCaptured  bool   `json:"runtimeCaptured"`
	CoreVersion      string `json:"coreVersion"`
	CyclicComponents int    `json:"cyclicComponents"`
	EdgeSemantics    string `json:"edgeSemantics"`
}

// EdgeSemanticsNote documents the decision (SPEC_FULL.md §9) that an
// interface's static edge and a concrete implementation's runtime-observed
// edge are never merged into one edge, even though both may touch the
// same interface symbol.
const EdgeSemanticsNote = "interface static edges and concrete runtime-observed edges are kept separate; see call_graph.json for both"

// callGraphDoc is the call_graph.json document shape.
type callGraphDoc struct {
	Edges []callGraphEdge `json:"edges"`
}

type callGraphEdge struct {
	Caller          string `json:"caller"`
	Callee          string `json:"callee"`
	CallCount       int    `json:"call_count"`
	RuntimeObserved bool   `json:"runtime_observed"`
	IsStatic        bool   `json:"is_static"`
}

// Write emits architecture.md, relevant_files.txt, call_graph.json, and
// metadata.json into dir, creating it if absent. Every write is
// idempotent: re-packing the same Slice overwrites with identical bytes.
func Write(dir string, scenarioName string, s *compress.Slice, meta Metadata) error {
	if err := writeArchitecture(dir, scenarioName, s); err != nil {
		return fmt.Errorf("pack: architecture.md: %w", err)
	}
	if err := writeRelevantFiles(dir, s); err != nil {
		return fmt.Errorf("pack: relevant_files.txt: %w", err)
	}
	if err := writeCallGraph(dir, s); err != nil {
		return fmt.Errorf("pack: call_graph.json: %w", err)
	}
	meta.ScenarioName = scenarioName
	meta.CoreVersion = CoreVersion
	meta.CyclicComponents = s.CyclicComponents
	meta.EdgeSemantics = EdgeSemanticsNote
	if err := ioutil.WriteJSON(dir+"/metadata.json", meta); err != nil {
		return fmt.Errorf("pack: metadata.json: %w", err)
	}
	return nil
}

func writeArchitecture(dir, scenarioName string, s *compress.Slice) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# Architecture: %s\n\n", scenarioName)
	b.WriteString("## Call Path\n\n")
	for i, id := range s.Symbols {
		fmt.Fprintf(&b, "%d. %s\n", i+1, displayName(id))
	}
	b.WriteString("\n## Source Files\n\n")
	for _, path := range s.RelevantFiles {
		fmt.Fprintf(&b, "- %s\n", path)
	}
	return ioutil.WriteFile(dir+"/architecture.md", []byte(b.String()))
}

// displayName returns the substring after the first "::" of a symbol id —
// the class/method portion without the language prefix.
func displayName(id string) string {
	if i := strings.Index(id, "::"); i >= 0 {
		return id[i+2:]
	}
	return id
}

func writeRelevantFiles(dir string, s *compress.Slice) error {
	paths := append([]string(nil), s.RelevantFiles...)
	sort.Strings(paths)
	dedup := paths[:0]
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		if seen[p] {
			continue
		}
		seen[p] = true
		dedup = append(dedup, p)
	}
	var b strings.Builder
	for _, p := range dedup {
		b.WriteString(p)
		b.WriteByte('\n')
	}
	return ioutil.WriteFile(dir+"/relevant_files.txt", []byte(b.String()))
}

func writeCallGraph(dir string, s *compress.Slice) error {
	doc := callGraphDoc{Edges: make([]callGraphEdge, 0, len(s.Edges))}
	for _, e := range s.Edges {
		doc.Edges = append(doc.Edges, callGraphEdge{
			Caller:          e.CallerID,
			Callee:          e.CalleeID,
			CallCount:       e.CallCount,
			RuntimeObserved: e.RuntimeObserved,
			IsStatic:        e.IsStatic,
		})
	}
	return ioutil.WriteJSON(dir+"/call_graph.json", doc)
}
