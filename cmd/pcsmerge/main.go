// Command pcsmerge interprets a merged PCS (Parent-Child-Successor) change
// set into a syntax tree and reports the conflicts it could not resolve on
// its own.
package main

import (
	"fmt"
	"os"

	"github.com/spork3dm/pcsmerge/internal/cli"
)

func main() {
	root := cli.NewRootCommand(os.Stdout)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "pcsmerge:", err)
		os.Exit(1)
	}
}
