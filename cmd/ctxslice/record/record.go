// Package record implements the "record" subcommand: detect the project's
// language, write the adapter manifest, and run the extractor subprocess
// to produce static_ir.json and runtime_trace.json under .context-slice/.
package record

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ctxslice/ctxslice/internal/adapterprofile"
	"github.com/ctxslice/ctxslice/internal/goref"
	"github.com/ctxslice/ctxslice/internal/ioutil"
	"github.com/ctxslice/ctxslice/internal/ir"
	"github.com/ctxslice/ctxslice/internal/logging"
	"github.com/ctxslice/ctxslice/internal/orchestrate"
)

func Run(args []string, verbose bool) int {
	fs := flag.NewFlagSet("record", flag.ExitOnError)
	configFile := fs.String("config", "", "config file for the scenario; its path is recorded in the manifest's config_files (the file is not read)")
	runArgs := fs.String("args", "", "run args passed to the scenario, space separated")
	adapterJar := fs.String("adapter", "", "path to the Java adapter jar (required for Java projects)")
	agentJar := fs.String("agent", "", "path to the Java agent jar (required for Java projects)")
	namespace := fs.String("namespace", "", "instrumentation namespace passed to the agent (defaults per detected language)")
	timeout := fs.Duration("timeout", orchestrate.DefaultTimeout, "adapter subprocess timeout")
	fs.Parse(args)

	rest := fs.Args()
	if len(rest) != 1 {
		fmt.Fprintln(os.Stderr, "usage: ctxslice record [--config file] [--args \"...\"] <scenario-name>")
		return 1
	}
	scenarioName := rest[0]

	log := logging.Default(verbose)

	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	lang, err := orchestrate.DetectLanguage(log, dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	log.Infof("detected project language: %s", lang)

	profile, err := adapterprofile.Load(strings.ToLower(string(lang)))
	if err != nil {
		fmt.Fprintln(os.Stderr, "record:", err)
		return 2
	}

	outputDir, err := orchestrate.EnsureOutputDir(dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	manifest := orchestrate.Manifest{
		ScenarioName:                   scenarioName,
		EntryPoints:                    []string{},
		RunArgs:                        splitArgs(*runArgs),
		ConfigFiles:                    configFiles(*configFile),
		OutputDir:                      outputDir,
		TransformsEnabled:              true,
		TransformDepth:                 profile.TransformDepth,
		TransformMaxCollectionElements: profile.TransformMaxCollectionElements,
	}
	if err := orchestrate.WriteManifest(outputDir, manifest); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if lang == orchestrate.LanguageGo {
		return recordGo(log, dir, scenarioName, outputDir)
	}
	if lang != orchestrate.LanguageJava {
		fmt.Fprintf(os.Stderr, "record: no extractor subprocess wired for %s yet; manifest written to %s\n", lang, outputDir)
		return 1
	}
	if *adapterJar == "" || *agentJar == "" {
		fmt.Fprintln(os.Stderr, "record: --adapter and --agent are required for Java projects")
		return 1
	}
	ns := *namespace
	if ns == "" {
		ns = profile.DefaultNamespace
	}

	manifestPath := filepath.Join(outputDir, "manifest.json")
	argv := orchestrate.JavaAdapterArgs(*adapterJar, manifestPath, outputDir, *agentJar, ns)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := orchestrate.Run(ctx, log, "java", argv, *timeout); err != nil {
		fmt.Fprintln(os.Stderr, "record:", err)
		return 2
	}
	fmt.Printf("recorded scenario %q to %s\n", scenarioName, outputDir)
	return 0
}

// recordGo is the Go project's extractor: in place of an out-of-process
// adapter subprocess it runs internal/goref in-process against dir, since
// Go's own toolchain (go/packages, go/ssa) already gives us everything an
// external adapter would report over the wire.
func recordGo(log *logging.Logger, dir, scenarioName, outputDir string) int {
	root, err := goref.Extract(dir, scenarioName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "record:", err)
		return 2
	}
	if err := ioutil.WriteJSON(filepath.Join(outputDir, "static_ir.json"), root); err != nil {
		fmt.Fprintln(os.Stderr, "record:", err)
		return 2
	}
	trace := ir.RuntimeTrace{
		ObservedSymbols: []ir.ObservedSymbol{},
		ObservedEdges:   []ir.ObservedEdge{},
		ConfigReads:     []ir.ConfigRead{},
	}
	if err := ioutil.WriteJSON(filepath.Join(outputDir, "runtime_trace.json"), trace); err != nil {
		fmt.Fprintln(os.Stderr, "record:", err)
		return 2
	}
	log.Infof("goref: extracted %d symbols, %d call edges", len(root.Symbols), len(root.CallEdges))
	fmt.Printf("recorded scenario %q to %s\n", scenarioName, outputDir)
	return 0
}

func splitArgs(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	return strings.Fields(s)
}

func configFiles(s string) []string {
	if s == "" {
		return []string{}
	}
	return []string{s}
}
