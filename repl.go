//go:build !js && !wasm

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"ember/colors"
	"ember/internal/compiler"
	"ember/internal/context_v2"
	"ember/internal/diagnostics"
	"ember/internal/evaluator"
	"ember/internal/frontend/ast"
	"ember/internal/pipeline"
)

const (
	historyFile = ".ember_history"
	promptMain  = "ember> "
	promptCont  = "  ...  "
)

const replHelp = `Enter a syntax-tree document (members: [...]) and finish it with an empty line.
REPL commands:
  :load <file>  Submit a syntax-tree file
  :globals      Show global values
  :quit         Exit the REPL
`

func runREPL(args []string) int {
	fs := flag.NewFlagSet("repl", flag.ExitOnError)
	debug := fs.Bool("d", false, "Enable debug output")
	dumpCFG := fs.Bool("cfg", false, "Dump the control flow graph of every lowered body")
	seed := fs.Int64("seed", 0, "Seed for random(); 0 picks one from the clock")
	_ = fs.Parse(args)

	config := context_v2.DefaultConfig()
	config.Debug = *debug
	config.DumpCFG = *dumpCFG
	config.Seed = *seed
	session := compiler.NewSession(config)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	colors.CYAN.Printf("ember %s REPL\n", version)
	fmt.Println("Ctrl+C cancels input, Ctrl+D exits. Type :help for commands.")

	for {
		doc, ok := readDocument(ln)
		if !ok {
			fmt.Println()
			return 0
		}
		text := strings.TrimSpace(doc)
		if text == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(doc, "\n", " "))

		if strings.HasPrefix(text, ":") {
			if quit := replCommand(session, text); quit {
				return 0
			}
			continue
		}
		report(session.SubmitDocument(doc))
	}
}

// readDocument reads lines until an empty line. A command is a single line.
func readDocument(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() == 0 && strings.HasPrefix(strings.TrimSpace(line), ":") {
			return line, true
		}
		if strings.TrimSpace(line) == "" {
			return b.String(), true
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
}

func replCommand(session *compiler.Session, cmd string) bool {
	fields := strings.Fields(cmd)
	switch fields[0] {
	case ":quit":
		return true
	case ":help":
		fmt.Print(replHelp)
	case ":globals":
		globals := session.Globals()
		names := make([]string, 0, len(globals))
		for name := range globals {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("%s = %s\n", name, colors.GREEN.Sprint(evaluator.Format(globals[name])))
		}
	case ":load":
		if len(fields) != 2 {
			colors.RED.Println("usage: :load <file>")
			return false
		}
		tree, err := ast.ParseFile(fields[1])
		if err != nil {
			colors.RED.Println(err.Error())
			return false
		}
		report(session.Submit(tree))
	default:
		fmt.Println("unknown command. Type :help for commands.")
	}
	return false
}

func report(sub *compiler.Submission, err error) {
	if sub != nil && len(sub.Diagnostics) > 0 {
		emitter := diagnostics.NewEmitter(os.Stderr)
		for _, d := range sub.Diagnostics {
			emitter.Emit(d)
		}
	}
	switch {
	case err == nil:
		if sub.Value != nil {
			fmt.Println(colors.GREEN.Sprint(evaluator.Format(sub.Value)))
		}
	case errors.Is(err, pipeline.ErrDiagnostics), sub != nil && sub.Fault != nil:
		// already reported
	default:
		colors.RED.Fprintln(os.Stderr, err.Error())
	}
}
