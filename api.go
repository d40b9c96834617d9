// api.go
//
// Package-level entry points so the interpreter is usable as a library, not
// just through the CLI: callable directly by a host program or by tests,
// without shelling out to cmd/nano.
package nano

import "io"

// RunSource lexes, parses, and executes src, writing `print`/`inspect`
// output to stdout and diagnostics to the Reporter's writer. It always
// returns (there is no hard-fail path): lex/parse/runtime errors are
// reported and recovered from.
func RunSource(src string, stdout io.Writer, rep *Reporter) {
	tokens := NewLexer(src, rep).Scan()
	stmts := NewParser(tokens, rep).Parse()
	NewInterpreter(rep, stdout).Run(stmts)
}
