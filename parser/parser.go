// Package parser implements a recursive-descent, operator-precedence
// parser that consumes a token.Token stream and produces a typed
// ast.File. Parsing is single-threaded and synchronous: the full token
// stream must already be materialized (see package lexer) before
// Parse is called, and Parse returns in one pass with no suspension
// points.
//
// There is no error recovery. The first ParseError encountered aborts
// the parse and is returned to the caller; no further tokens or nodes
// are produced past that point.
package parser

import (
	"fmt"

	"github.com/ccuetoh-maqui-lang-student/langfront/ast"
	"github.com/ccuetoh-maqui-lang-student/langfront/token"
)

// maxDepth bounds expression nesting so a pathologically nested
// expression fails with a positioned error instead of overflowing the
// goroutine stack. The depth is counted in suffixExpr, which every
// nested expression passes through; nesting of statements (blocks,
// ifs, loops) is not counted.
const maxDepth = 250

// Error is a positioned parse error. The first one raised is also the
// last: parsing aborts immediately.
type Error struct {
	Position token.Position
	Message  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Position, e.Message)
}

// Pos satisfies diag.Positioned.
func (e *Error) Pos() token.Position { return e.Position }

// Parser is the token-stream cursor plus the arena backing the tree it
// builds. peek/chomp/chompIf/expect are the only legal ways to
// advance; no production reaches into the raw token slice.
type Parser struct {
	filename string
	tokens   []token.Token
	pos      int
	arena    *ast.Arena
	depth    int
}

// New creates a parser over an already-lexed token stream.
func New(tokens []token.Token, filename string) *Parser {
	return &Parser{
		filename: filename,
		tokens:   tokens,
		arena:    ast.NewArena(),
	}
}

// Parse lexes nothing itself; it drives New(tokens, filename).Parse()
// over a stream produced by the lexer, and is the package's usual
// entry point.
func Parse(tokens []token.Token, filename string) (*ast.File, error) {
	return New(tokens, filename).Parse()
}

// Parse consumes the whole token stream and returns the resulting
// File, or the first positioned Error encountered.
func (p *Parser) Parse() (*ast.File, error) {
	file := &ast.File{Filename: p.filename}

	for p.peek().Kind != token.EOF {
		decl, err := p.topLevel()
		if err != nil {
			return nil, err
		}
		file.Decls = append(file.Decls, decl)
	}

	return file, nil
}

// Arena exposes the arena backing this parser's tree, mainly for
// tests that want to assert on node counts.
func (p *Parser) Arena() *ast.Arena {
	return p.arena
}

// ---- cursor primitives ----------------------------------------------

// peek returns the current token without advancing.
func (p *Parser) peek() token.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF sentinel
	}
	return p.tokens[p.pos]
}

// peekAhead returns the token n positions past the current one without
// advancing.
func (p *Parser) peekAhead(n int) token.Token {
	i := p.pos + n
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

// chomp returns the current token and advances by one. It never
// advances past the trailing EOF sentinel.
func (p *Parser) chomp() token.Token {
	tok := p.peek()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

// chompIf consumes and returns the current token if its kind equals
// kind; otherwise it leaves the cursor untouched and returns false.
func (p *Parser) chompIf(kind token.Kind) (token.Token, bool) {
	if p.peek().Kind != kind {
		return token.Token{}, false
	}
	return p.chomp(), true
}

// check reports whether the current token has the given kind, without
// consuming it.
func (p *Parser) check(kind token.Kind) bool {
	return p.peek().Kind == kind
}

// expect behaves like chompIf, but raises a positioned *Error on
// mismatch instead of returning false.
func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	tok := p.peek()
	if tok.Kind != kind {
		return token.Token{}, p.errorf(tok.Position, "expected %s; found %s", kind, tok.Kind)
	}
	return p.chomp(), nil
}

func (p *Parser) errorf(pos token.Position, format string, args ...interface{}) error {
	return &Error{Position: pos, Message: fmt.Sprintf(format, args...)}
}

// enter/leave bound recursive-descent nesting depth.
func (p *Parser) enter(pos token.Position) error {
	p.depth++
	if p.depth > maxDepth {
		return p.errorf(pos, "expression nested too deeply")
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}
