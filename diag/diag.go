// Package diag renders positioned errors from the lexer and parser
// into single-line diagnostics and, at the CLI boundary only, prints
// them and terminates the process the way the spec's fatal-only error
// model describes. The lexer and parser packages themselves never
// call os.Exit; they return ordinary Go errors, and it is this
// package's Fatal that plays the "print to stderr and terminate"
// role for a command-line entry point.
package diag

import (
	"fmt"
	"os"

	"github.com/ccuetoh-maqui-lang-student/langfront/token"
)

// Positioned is implemented by any error that carries a source
// Position, which covers both lexer.Error and parser.Error.
type Positioned interface {
	error
	Pos() token.Position
}

// Render formats err as "<file>:<line>:<col>: <message>". Positioned
// errors (lexer.Error, parser.Error) already produce exactly that form
// from their own Error() method; Render exists so callers have one
// name to reach for regardless of error kind.
func Render(err error) string {
	return err.Error()
}

// Fatal prints err to stderr, appending a newline, and terminates the
// process with a non-zero exit code. This is the single place in the
// module that calls os.Exit; lexer and parser diagnostics reach it
// only through a cmd/ entry point.
func Fatal(err error) {
	fmt.Fprintln(os.Stderr, Render(err))
	os.Exit(1)
}
