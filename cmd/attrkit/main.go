// Attrkit inspects and edits the attribute documents kept in a dico store.
package main

import (
	"os"

	"src.attrkit.dev/pkg/prog"
	"src.attrkit.dev/pkg/storecmd"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args, storecmd.Program{}))
}
