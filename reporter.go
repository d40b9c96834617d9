// reporter.go
//
// Central diagnostic sink. Every stage (lexer, parser, evaluator) reports
// through the same Reporter rather than returning a hard error, writing
// diagnostics straight to stderr rather than through a logging framework.
package nano

import (
	"fmt"
	"io"
	"os"
)

// Reporter collects whether any error was reported and writes each one to
// its configured writer (stderr by default). HadError is set by every
// diagnostic reported through the Reporter's own methods.
type Reporter struct {
	Out      io.Writer
	HadError bool
}

// NewReporter returns a Reporter writing to os.Stderr.
func NewReporter() *Reporter {
	return &Reporter{Out: os.Stderr}
}

func (r *Reporter) report(err error) {
	r.HadError = true
	fmt.Fprintln(r.Out, err.Error())
}

func (r *Reporter) lexError(line int, format string, args ...interface{}) {
	r.report(&LexError{Line: line, Msg: fmt.Sprintf(format, args...)})
}

func (r *Reporter) parseError(tok Token, msg string) {
	r.report(&ParseError{Line: tok.Line, AtEnd: tok.Type == EOF, Lexeme: tok.Lexeme, Msg: msg})
}

func (r *Reporter) runtimeErrorf(line int, format string, args ...interface{}) {
	r.report(newRuntimeError(line, format, args...))
}

// undefinedVariable reports a read of an unbound name as "Undefined
// variable '<name>' at line <n>", kept distinct from the generic
// "Runtime Error: " prefix used for type/arity/arithmetic errors.
func (r *Reporter) undefinedVariable(name string, line int) {
	r.HadError = true
	fmt.Fprintf(r.Out, "Undefined variable '%s' at line %d\n", name, line)
}
