// cmd/nano/main.go
//
// NANO's CLI: one positional source-file argument, no flags, no stdin
// program, no REPL. Reads the file, then hands it to the engine to lex,
// parse, and interpret.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/daios-ai/nano"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: nano <source-file>")
		os.Exit(1)
	}

	src, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "nano: %v\n", err)
		os.Exit(1)
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	rep := nano.NewReporter()
	nano.RunSource(string(src), out, rep)
}
