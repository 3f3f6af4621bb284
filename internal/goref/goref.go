// Package goref is a reference static-IR producer for Go projects. It is
// not the language-specific adapter the spec's Orchestrator shells out to
// (that is an out-of-process subprocess, possibly written in any
// language) — it exists so the Orchestrator's Go branch, and the pipeline
// downstream of it, can be exercised end-to-end against a realistic
// static_ir.json without needing a real external adapter binary in tests.
//
// It is grounded on the teacher's reachability analysis: golang.org/x/tools
// packages.Load feeding go/ssa via ssautil.AllPackages, then RTA for the
// call graph.
package goref

import (
	"fmt"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/callgraph"
	"golang.org/x/tools/go/callgraph/rta"
	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"

	"github.com/ctxslice/ctxslice/internal/ioutil"
	"github.com/ctxslice/ctxslice/internal/ir"
)

// Extract loads every package under dir and produces a static IR root
// describing its functions, methods, and interface types, plus the static
// call edges RTA discovers from each main package's main and init
// functions (or, absent a main package, from every function recorded as a
// symbol, exported or not, as a root).
func Extract(dir, scenarioName string) (*ir.IrRoot, error) {
	cfg := &packages.Config{
		Dir: dir,
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedCompiledGoFiles |
			packages.NeedImports |
			packages.NeedDeps |
			packages.NeedTypes |
			packages.NeedSyntax |
			packages.NeedTypesInfo,
		Fset: token.NewFileSet(),
	}

	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, fmt.Errorf("goref: load %s: %w", dir, err)
	}

	prog, ssaPkgs := ssautil.AllPackages(pkgs, ssa.InstantiateGenerics)
	prog.Build()

	root := &ir.IrRoot{
		IrVersion:      ir.SchemaVersion,
		Language:       "go",
		RepoRoot:       dir,
		AdapterVersion: "goref/reference",
		Scenario:       ir.Scenario{Name: scenarioName, EntryPoints: []string{}},
	}

	b := &builder{root: root, fileIDs: make(map[string]string), symbolIDs: make(map[*ssa.Function]string)}
	for i, lp := range pkgs {
		b.addPackageFiles(lp)
		if i < len(ssaPkgs) && ssaPkgs[i] != nil {
			b.addPackageSymbols(ssaPkgs[i])
		}
	}

	roots := b.callGraphRoots(ssaPkgs)
	if len(roots) > 0 {
		result := rta.Analyze(roots, true)
		result.CallGraph.DeleteSyntheticNodes()
		callgraph.GraphVisitEdges(result.CallGraph, func(e *callgraph.Edge) error {
			b.addEdge(e)
			return nil
		})
	}

	if root.Files == nil {
		root.Files = []ir.File{}
	}
	if root.Symbols == nil {
		root.Symbols = []ir.Symbol{}
	}
	if root.CallEdges == nil {
		root.CallEdges = []ir.CallEdge{}
	}
	root.ConfigReads = []ir.ConfigRead{}
	return root, nil
}

type builder struct {
	root      *ir.IrRoot
	fileIDs   map[string]string // file path -> file id
	symbolIDs map[*ssa.Function]string
}

func (b *builder) addPackageFiles(lp *packages.Package) {
	for _, f := range lp.GoFiles {
		if _, ok := b.fileIDs[f]; ok {
			continue
		}
		id := fmt.Sprintf("file%d", len(b.fileIDs))
		b.fileIDs[f] = id
		hash, err := ioutil.HashFile(f)
		if err != nil {
			hash = ""
		}
		b.root.Files = append(b.root.Files, ir.File{ID: id, Path: f, Language: "go", Hash: hash})
	}
}

func (b *builder) addPackageSymbols(pkg *ssa.Package) {
	for _, member := range pkg.Members {
		switch m := member.(type) {
		case *ssa.Function:
			b.addFunction(m)
		case *ssa.Type:
			if iface, ok := m.Type().Underlying().(*types.Interface); ok {
				b.addInterface(pkg, m.Name(), iface)
			}
		}
	}
	for _, m := range pkg.Members {
		if t, ok := m.(*ssa.Type); ok {
			for _, sel := range typeMethods(pkg.Prog, t.Type()) {
				b.addFunction(sel)
			}
		}
	}
}

func typeMethods(prog *ssa.Program, t types.Type) []*ssa.Function {
	ms := types.NewMethodSet(types.NewPointer(t))
	var out []*ssa.Function
	for i := 0; i < ms.Len(); i++ {
		fn := prog.MethodValue(ms.At(i))
		if fn != nil {
			out = append(out, fn)
		}
	}
	return out
}

func (b *builder) addFunction(fn *ssa.Function) {
	if fn == nil || fn.Pkg == nil {
		return
	}
	if _, exists := b.symbolIDs[fn]; exists {
		return
	}
	id := symbolID(fn)
	b.symbolIDs[fn] = id

	kind := ir.KindMethod
	if fn.Name() == "init" && fn.Signature.Recv() == nil {
		kind = ir.KindMethod
	}
	isCtor := fn.Signature.Recv() == nil && fn.Name() == "New"

	var fileID *string
	if fn.Prog != nil {
		if pos := fn.Pos(); pos.IsValid() {
			path := fn.Prog.Fset.Position(pos).Filename
			if fid, ok := b.fileIDs[path]; ok {
				fileID = &fid
			}
		}
	}

	sym := ir.Symbol{
		ID:          id,
		Kind:        kind,
		Name:        fn.Name(),
		Language:    "go",
		FileID:      fileID,
		Visibility:  visibility(fn.Name()),
		Annotations: []string{},
	}
	if isCtor {
		sym.Kind = ir.KindConstructor
	}
	if fn.Pos().IsValid() && fn.Prog != nil {
		pos := fn.Prog.Fset.Position(fn.Pos())
		sym.LineStart = pos.Line
		sym.LineEnd = pos.Line
	}
	b.root.Symbols = append(b.root.Symbols, sym)
}

func (b *builder) addInterface(pkg *ssa.Package, name string, _ *types.Interface) {
	id := fmt.Sprintf("go::%s.%s", pkg.Pkg.Path(), name)
	b.root.Symbols = append(b.root.Symbols, ir.Symbol{
		ID:          id,
		Kind:        ir.KindInterface,
		Name:        name,
		Language:    "go",
		Visibility:  visibility(name),
		Annotations: []string{},
	})
}

func (b *builder) addEdge(e *callgraph.Edge) {
	if e.Caller == nil || e.Callee == nil || e.Caller.Func == nil || e.Callee.Func == nil {
		return
	}
	callerID, ok := b.symbolIDs[e.Caller.Func]
	if !ok {
		return
	}
	calleeID, ok := b.symbolIDs[e.Callee.Func]
	if !ok {
		return
	}
	b.root.CallEdges = append(b.root.CallEdges, ir.CallEdge{
		CallerID: callerID,
		CalleeID: calleeID,
		IsStatic: true,
	})
}

func (b *builder) callGraphRoots(ssaPkgs []*ssa.Package) []*ssa.Function {
	var roots []*ssa.Function
	var mains []*ssa.Package
	for _, p := range ssaPkgs {
		if p != nil && p.Pkg.Name() == "main" {
			mains = append(mains, p)
		}
	}
	if len(mains) > 0 {
		for _, m := range mains {
			if f := m.Func("main"); f != nil {
				roots = append(roots, f)
			}
			if f := m.Func("init"); f != nil {
				roots = append(roots, f)
			}
		}
		return roots
	}
	// No main package (a library): every known symbol is a potential
	// root, since there is no single entry point to trace from.
	for fn := range b.symbolIDs {
		roots = append(roots, fn)
	}
	return roots
}

func symbolID(fn *ssa.Function) string {
	pkgPath := fn.Pkg.Pkg.Path()
	if recv := fn.Signature.Recv(); recv != nil {
		typeName := recv.Type().String()
		return fmt.Sprintf("go::%s::%s(%s)", typeName, fn.Name(), paramTypes(fn.Signature))
	}
	return fmt.Sprintf("go::%s::%s(%s)", pkgPath, fn.Name(), paramTypes(fn.Signature))
}

func paramTypes(sig *types.Signature) string {
	params := sig.Params()
	out := ""
	for i := 0; i < params.Len(); i++ {
		if i > 0 {
			out += ","
		}
		out += params.At(i).Type().String()
	}
	return out
}

func visibility(name string) string {
	if len(name) == 0 {
		return "private"
	}
	if name[0] >= 'A' && name[0] <= 'Z' {
		return "public"
	}
	return "private"
}
