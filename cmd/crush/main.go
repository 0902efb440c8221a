// Crush is a shell for structured data. Commands are joined into pipelines
// that pass tables of typed rows from one stage to the next, each stage
// running concurrently with the others.
package main

import (
	"os"

	"src.crush.sh/pkg/buildinfo"
	"src.crush.sh/pkg/lsp"
	"src.crush.sh/pkg/prog"
	"src.crush.sh/pkg/shell"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(buildinfo.Program{}, lsp.Program{}, shell.Program{})))
}
