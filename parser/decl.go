package parser

import (
	"github.com/ccuetoh-maqui-lang-student/langfront/ast"
	"github.com/ccuetoh-maqui-lang-student/langfront/token"
)

// topLevel dispatches on the first token: a function declaration, or
// any statement (most commonly a variable declaration).
func (p *Parser) topLevel() (ast.Node, error) {
	if p.check(token.FUNC) {
		return p.funcDecl()
	}
	return p.statement()
}

// funcDecl parses `FuncProto Block`.
func (p *Parser) funcDecl() (*ast.FuncDecl, error) {
	start := p.peek().Position

	proto, err := p.funcProto()
	if err != nil {
		return nil, err
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}

	return ast.New(p.arena, &ast.FuncDecl{
		StartPos: start,
		Proto:    proto,
		Body:     body,
	}), nil
}

// funcProto parses `func IDENT ( ParamList ) (-> ReturnType)?`.
func (p *Parser) funcProto() (*ast.FuncProto, error) {
	start := p.peek().Position

	if _, err := p.expect(token.FUNC); err != nil {
		return nil, err
	}

	name, err := p.expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	params, err := p.paramList()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	var ret *ast.TypeExpr
	if _, ok := p.chompIf(token.RARROW); ok {
		ret, err = p.typeExpr()
		if err != nil {
			return nil, err
		}
	}

	return ast.New(p.arena, &ast.FuncProto{
		StartPos:   start,
		Name:       name.Lexeme,
		Params:     params,
		ReturnType: ret,
	}), nil
}

// paramList parses a comma-separated parameter list admitting a
// trailing comma, enforcing that at most one parameter is variadic
// and, if present, that it is last.
func (p *Parser) paramList() ([]*ast.Param, error) {
	var params []*ast.Param
	variadicSeen := false

	for !p.check(token.RPAREN) && !p.check(token.EOF) {
		start := p.peek().Position

		variadic := false
		if _, ok := p.chompIf(token.ELLIPSIS); ok {
			variadic = true
		}

		if variadic && variadicSeen {
			return nil, p.errorf(start, "cannot have multiple variadic arguments in function prototype")
		}

		name, err := p.expect(token.IDENTIFIER)
		if err != nil {
			return nil, err
		}

		var typ *ast.TypeExpr
		if !p.check(token.COMMA) && !p.check(token.RPAREN) {
			typ, err = p.typeExpr()
			if err != nil {
				return nil, err
			}
		}

		params = append(params, &ast.Param{
			StartPos: start,
			Name:     name.Lexeme,
			Type:     typ,
			Variadic: variadic,
		})

		if variadic {
			variadicSeen = true
			if !p.check(token.RPAREN) {
				return nil, p.errorf(p.peek().Position, "cannot have multiple variadic arguments in function prototype")
			}
		}

		if _, ok := p.chompIf(token.COMMA); !ok {
			break
		}
	}

	return params, nil
}

// variableDecl parses `export? (mutable|const)? Type? IDENT (= Expr)? ;`.
func (p *Parser) variableDecl() (*ast.VariableDecl, error) {
	start := p.peek().Position

	decl := &ast.VariableDecl{StartPos: start}

	if _, ok := p.chompIf(token.EXPORT); ok {
		decl.Export = true
	}

	_, hasMutable := p.chompIf(token.MUTABLE)
	_, hasConst := p.chompIf(token.CONST)
	if hasMutable && hasConst {
		return nil, p.errorf(start, "cannot decorate a variable as both mutable and const")
	}
	decl.Mutable = hasMutable
	decl.Const = hasConst

	// An explicit type is present whenever a type-prefix operator
	// leads, or the current identifier is followed by something other
	// than the declaration's own tail ('=' or ';'), i.e. there's
	// something besides the name before the declaration's tail.
	if p.startsExplicitType() {
		typ, err := p.typeExpr()
		if err != nil {
			return nil, err
		}
		decl.Type = typ
	}

	name, err := p.expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	decl.Name = name.Lexeme

	if _, ok := p.chompIf(token.EQUALS); ok {
		value, err := p.assignmentExpr()
		if err != nil {
			return nil, err
		}
		decl.Value = value
	}

	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}

	return ast.New(p.arena, decl), nil
}

func isDeclTail(k token.Kind) bool {
	return k == token.EQUALS || k == token.SEMICOLON
}

// startsExplicitType reports whether the cursor is positioned at an
// explicit type expression preceding a variable declaration's name,
// rather than directly at the name itself.
func (p *Parser) startsExplicitType() bool {
	switch {
	case p.check(token.MULT), p.check(token.QUESTION):
		return true
	case p.check(token.LSQUAREBRACK) && p.peekAhead(1).Kind == token.RSQUAREBRACK:
		return true
	case p.check(token.IDENTIFIER):
		return !isDeclTail(p.peekAhead(1).Kind)
	default:
		return false
	}
}
