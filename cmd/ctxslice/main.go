package main

import (
	"fmt"
	"os"

	"github.com/ctxslice/ctxslice/cmd/ctxslice/prompt"
	"github.com/ctxslice/ctxslice/cmd/ctxslice/record"
	"github.com/ctxslice/ctxslice/cmd/ctxslice/slice"
)

var version = "dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	verbose := false
	args := os.Args[2:]
	if len(args) > 0 && (args[0] == "--verbose" || args[0] == "-verbose") {
		verbose = true
		args = args[1:]
	}

	switch os.Args[1] {
	case "record":
		os.Exit(record.Run(args, verbose))
	case "slice":
		os.Exit(slice.Run(args, verbose))
	case "prompt":
		os.Exit(prompt.Run(args, verbose))
	case "version":
		fmt.Println(version)
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand: %s\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `ctxslice — context-slice extraction pipeline for AI coding assistants

Usage:
  ctxslice record [--verbose] [--config file] [--args "..."] <scenario-name>
  ctxslice slice  [--verbose] [--scenario name]
  ctxslice prompt [--verbose] "<task>"
  ctxslice version`)
}
