//go:build js && wasm

package main

import (
	"syscall/js"

	"ember/internal/compiler"
)

func main() {
	js.Global().Set("emberRun", js.FuncOf(run))
	js.Global().Set("emberWasmVersion", "0.1.0")
	println("ember WASM runner ready")
	<-make(chan struct{})
}

// run takes a syntax-tree document and a debug flag, and returns the
// program's output and diagnostics as HTML.
func run(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return map[string]any{
			"success": false,
			"output":  "Invalid arguments: expected (tree: string, debug: bool)",
		}
	}

	result := compiler.Run(&compiler.Options{
		Code:      args[0].String(),
		Debug:     args[1].Bool(),
		LogFormat: compiler.HTML,
	})

	return map[string]any{
		"success": result.Success,
		"output":  result.Output,
	}
}
