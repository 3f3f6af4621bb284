// Package prompt implements the "prompt" subcommand: the optional
// AI-prompt assembler. It reads the artifacts package pack wrote to
// .context-slice/ and combines them with a task description into a single
// prompt document, the way a caller would hand context to an assistant.
package prompt

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvAPIKey is the environment variable this subcommand (and only this
// subcommand) consults, per the CLI surface spec.
const EnvAPIKey = "ANTHROPIC_API_KEY"

func Run(args []string, verbose bool) int {
	fs := flag.NewFlagSet("prompt", flag.ExitOnError)
	fs.Parse(args)

	rest := fs.Args()
	if len(rest) != 1 {
		fmt.Fprintln(os.Stderr, `usage: ctxslice prompt "<task>"`)
		return 1
	}
	task := rest[0]

	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	ctxDir := filepath.Join(dir, ".context-slice")

	architecture, err := os.ReadFile(filepath.Join(ctxDir, "architecture.md"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "prompt: no slice found; run `ctxslice slice` first")
		return 1
	}
	relevantFiles, err := os.ReadFile(filepath.Join(ctxDir, "relevant_files.txt"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "prompt: no slice found; run `ctxslice slice` first")
		return 1
	}

	if os.Getenv(EnvAPIKey) == "" && verbose {
		fmt.Fprintln(os.Stderr, "prompt: "+EnvAPIKey+" not set; assembling a local prompt document only")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Task\n\n%s\n\n", task)
	b.Write(architecture)
	b.WriteString("\n## Relevant Files\n\n")
	for _, line := range strings.Split(strings.TrimRight(string(relevantFiles), "\n"), "\n") {
		if line == "" {
			continue
		}
		fmt.Fprintf(&b, "- %s\n", line)
	}

	fmt.Print(b.String())
	return 0
}
