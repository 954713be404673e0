//go:build !js && !wasm

package main

import (
	"flag"
	"fmt"
	"os"

	"ember/internal/compiler"
	"ember/internal/context_v2"
	"ember/internal/utils/fs"
)

const version = "0.1.0"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "repl" {
		os.Exit(runREPL(os.Args[2:]))
	}

	// Define flags
	debug := flag.Bool("d", false, "Enable debug output")
	showVersion := flag.Bool("v", false, "Show version")
	flag.BoolVar(debug, "debug", false, "Enable debug output")
	flag.BoolVar(showVersion, "version", false, "Show version")
	project := flag.String("p", "", "Project file listing the trees to run (default ./"+context_v2.ProjectFile+" when no trees are given)")
	dumpCFG := flag.Bool("cfg", false, "Dump the control flow graph of every lowered body")
	seed := flag.Int64("seed", 0, "Seed for random(); 0 picks one from the clock")

	flag.Parse()

	// Handle version
	if *showVersion {
		fmt.Printf("ember version %s\n", version)
		os.Exit(0)
	}

	trees := flag.Args()
	if *project == "" && len(trees) == 0 {
		if fs.IsValidFile(context_v2.ProjectFile) {
			*project = context_v2.ProjectFile
		}
	}
	if *project == "" && len(trees) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: ember [options] <tree.yaml|dir>...")
		fmt.Fprintln(os.Stderr, "       ember repl [options]")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	result := compiler.Run(&compiler.Options{
		ProjectFile: *project,
		Trees:       trees,
		Debug:       *debug,
		DumpCFG:     *dumpCFG,
		Seed:        *seed,
		LogFormat:   compiler.ANSI,
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
	})

	if result.Output != "" {
		fmt.Fprintln(os.Stderr, result.Output)
	}
	if !result.Success {
		os.Exit(1)
	}
}
