// Roost is an interpreter for the Roost programming language, a small
// dynamically typed language with first-class functions, classes and ranges.
// It runs scripts, provides a REPL and a language server.
package main

import (
	"os"

	"github.com/RubixDev/Roost/pkg/buildinfo"
	"github.com/RubixDev/Roost/pkg/lsp"
	"github.com/RubixDev/Roost/pkg/prog"
	"github.com/RubixDev/Roost/pkg/shell"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(buildinfo.Program, lsp.Program{}, shell.Program{})))
}
