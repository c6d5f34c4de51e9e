package parser

import (
	"github.com/ccuetoh-maqui-lang-student/langfront/ast"
	"github.com/ccuetoh-maqui-lang-student/langfront/token"
)

// typeExpr parses a sequence of prefix type operators (pointer `*`,
// slice `[]`, optional `?`) applied to a suffix expression, which for
// this grammar is always a bare identifier naming the base type.
func (p *Parser) typeExpr() (*ast.TypeExpr, error) {
	start := p.peek().Position

	var prefixes []ast.TypePrefixKind
	for {
		switch {
		case p.check(token.MULT):
			p.chomp()
			prefixes = append(prefixes, ast.TypePtr)
		case p.check(token.LSQUAREBRACK) && p.peekAhead(1).Kind == token.RSQUAREBRACK:
			p.chomp()
			p.chomp()
			prefixes = append(prefixes, ast.TypeSlice)
		case p.check(token.QUESTION):
			p.chomp()
			prefixes = append(prefixes, ast.TypeOptional)
		default:
			base, err := p.typeBase()
			if err != nil {
				return nil, err
			}
			return ast.New(p.arena, &ast.TypeExpr{StartPos: start, Prefixes: prefixes, Base: base}), nil
		}
	}
}

// typeBase parses the suffix expression a type expression's prefix
// operators apply to: a bare identifier naming the base type.
func (p *Parser) typeBase() (ast.Expr, error) {
	tok, err := p.expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	return ast.New(p.arena, &ast.Identifier{StartPos: tok.Position, Name: tok.Lexeme}), nil
}
