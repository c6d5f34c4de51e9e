// Command maquic is a one-shot front-end driver: it lexes and parses a
// single source file and reports either "Ok" or the first positioned
// diagnostic, exactly the shape of the teacher's own cmd/main.go
// (one positional filename argument, no subcommands, no REPL).
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/ccuetoh-maqui-lang-student/langfront/ast"
	"github.com/ccuetoh-maqui-lang-student/langfront/diag"
	"github.com/ccuetoh-maqui-lang-student/langfront/lexer"
	"github.com/ccuetoh-maqui-lang-student/langfront/parser"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Println("Expected one argument: source location")
		return
	}

	source := os.Args[1]

	buf, err := os.ReadFile(source)
	if err != nil {
		diag.Fatal(err)
	}

	file, err := compile(buf, source)
	if err != nil {
		color.New(color.FgRed, color.Bold).Fprint(os.Stderr, "error: ")
		diag.Fatal(err)
	}

	fmt.Printf("Ok (%d top-level declarations)\n", len(file.Decls))
}

func compile(buf []byte, filename string) (*ast.File, error) {
	tokens, err := lexer.Lex(buf, filename)
	if err != nil {
		return nil, err
	}

	return parser.Parse(tokens, filename)
}
