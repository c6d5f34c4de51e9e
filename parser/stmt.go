package parser

import (
	"github.com/ccuetoh-maqui-lang-student/langfront/ast"
	"github.com/ccuetoh-maqui-lang-student/langfront/token"
)

// statement dispatches on the first token's lookahead. Productions
// that do not match their expected lead token restore the cursor by
// construction: each branch below is only entered once its lead token
// has already been confirmed with check(), never consumed speculatively.
func (p *Parser) statement() (ast.Stmt, error) {
	switch {
	case p.check(token.EXPORT), p.check(token.MUTABLE), p.check(token.CONST):
		return p.variableDecl()
	case p.check(token.IDENTIFIER) && (p.looksLikeTypedVarDecl() || p.peekAhead(1).Kind == token.EQUALS):
		return p.variableDecl()
	case p.check(token.MULT), p.check(token.QUESTION):
		// A bare '*' or '?' can only legally begin a variable
		// declaration's type prefix here: neither is a valid unary or
		// primary expression starter in this grammar.
		return p.variableDecl()
	case p.check(token.LSQUAREBRACK) && p.peekAhead(1).Kind == token.RSQUAREBRACK:
		// '[]' is the slice type-prefix operator, never an expression
		// starter (index/slice suffixes only ever follow a primary).
		return p.variableDecl()
	case p.check(token.DEFER):
		return p.deferStmt()
	case p.check(token.IF):
		return p.ifStmt()
	case p.check(token.FOR), p.check(token.INLINE):
		return p.loopStmt()
	case p.check(token.LBRACE):
		return p.block()
	case p.check(token.IDENTIFIER) && p.peekAhead(1).Kind == token.COLON:
		return p.labeledStmt()
	default:
		return p.exprStmt()
	}
}

// looksLikeTypedVarDecl reports whether the current identifier begins
// a variable declaration with an explicit type, i.e. it is followed by
// something other than the declaration's own tail ('=' or ';'),
// COLON (which would mean a label) or an operator that would make it
// an expression statement instead.
func (p *Parser) looksLikeTypedVarDecl() bool {
	next := p.peekAhead(1).Kind
	if next == token.COLON || isDeclTail(next) {
		return false
	}
	// A second identifier immediately following is the clearest
	// signal of `Type Name`.
	return next == token.IDENTIFIER
}

// block parses `{ Stmt* }`. An empty block is accepted. An unterminated
// block (missing '}') is a fatal error.
func (p *Parser) block() (*ast.Block, error) {
	open, err := p.expect(token.LBRACE)
	if err != nil {
		return nil, err
	}

	blk := &ast.Block{StartPos: open.Position}

	for !p.check(token.RBRACE) {
		if p.check(token.EOF) {
			return nil, p.errorf(p.peek().Position, "unclosed block statement")
		}

		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		blk.Stmts = append(blk.Stmts, stmt)
	}

	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}

	return ast.New(p.arena, blk), nil
}

// ifStmt parses `if ( Expr ) Body (else Stmt)?`, where Body is either
// a block or an assignment expression. Dangling else binds to the
// innermost unbound if by construction: this call consumes its own
// "else" greedily before returning to its caller.
func (p *Parser) ifStmt() (*ast.IfStmt, error) {
	start := p.peek().Position
	if _, err := p.expect(token.IF); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	cond, err := p.assignmentExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	then, err := p.ifBody()
	if err != nil {
		return nil, err
	}

	stmt := &ast.IfStmt{StartPos: start, Cond: cond, Then: then}

	if _, ok := p.chompIf(token.ELSE); ok {
		elseStmt, err := p.ifBody()
		if err != nil {
			return nil, err
		}
		stmt.HasElse = true
		stmt.Else = elseStmt
	}

	return ast.New(p.arena, stmt), nil
}

// ifBody parses an if/else body: a block, a nested if statement (so a
// dangling else binds to the innermost if), or a single assignment
// expression statement. A missing body is fatal.
func (p *Parser) ifBody() (ast.Stmt, error) {
	if p.check(token.LBRACE) {
		return p.block()
	}

	if p.check(token.IF) {
		return p.ifStmt()
	}

	if p.check(token.SEMICOLON) || p.check(token.EOF) || p.check(token.ELSE) {
		return nil, p.errorf(p.peek().Position, "expected if body")
	}

	return p.exprStmt()
}

// labeledStmt parses `IDENT : (Block | LoopStmt)`. A label that binds
// to neither is a fatal error.
func (p *Parser) labeledStmt() (*ast.LabeledStmt, error) {
	name, err := p.expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}

	var target ast.Stmt
	switch {
	case p.check(token.LBRACE):
		target, err = p.block()
	case p.check(token.FOR), p.check(token.INLINE):
		target, err = p.loopStmt()
	default:
		return nil, p.errorf(p.peek().Position, "label %q must be attached to a block or loop", name.Lexeme)
	}
	if err != nil {
		return nil, err
	}

	return ast.New(p.arena, &ast.LabeledStmt{
		StartPos: name.Position,
		Label:    name.Lexeme,
		Target:   target,
	}), nil
}

// loopStmt parses an optional `inline` modifier followed by one of the
// three loop forms. `inline` without a following loop is fatal.
func (p *Parser) loopStmt() (*ast.LoopStmt, error) {
	start := p.peek().Position

	inline := false
	if _, ok := p.chompIf(token.INLINE); ok {
		inline = true
		if !p.check(token.FOR) {
			return nil, p.errorf(p.peek().Position, "expected loop after inline")
		}
	}

	if _, err := p.expect(token.FOR); err != nil {
		return nil, err
	}

	loop := &ast.LoopStmt{StartPos: start, Inline: inline}

	switch {
	case p.check(token.IDENTIFIER) && p.peekAhead(1).Kind == token.IN:
		name, _ := p.expect(token.IDENTIFIER)
		p.chomp() // 'in'
		expr, err := p.assignmentExpr()
		if err != nil {
			return nil, err
		}
		loop.Kind = ast.LoopIn
		loop.InName = name.Lexeme
		loop.InExpr = expr
	case p.startsForClause():
		if err := p.parseCClause(loop); err != nil {
			return nil, err
		}
	default:
		loop.Kind = ast.LoopWhile
		cond, err := p.assignmentExpr()
		if err != nil {
			return nil, err
		}
		loop.Cond = cond
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}
	loop.Body = body

	return ast.New(p.arena, loop), nil
}

// startsForClause distinguishes the C-style `init; cond; post` form
// from the while-style bare-condition form: the former always has a
// top-level semicolon before its opening brace.
func (p *Parser) startsForClause() bool {
	depth := 0
	for i := 0; ; i++ {
		tok := p.peekAhead(i)
		switch tok.Kind {
		case token.LPAREN, token.LSQUAREBRACK:
			depth++
		case token.RPAREN, token.RSQUAREBRACK:
			depth--
		case token.SEMICOLON:
			if depth == 0 {
				return true
			}
		case token.LBRACE, token.EOF:
			return false
		}
	}
}

// parseCClause parses the C-style loop's `init; cond; post` clauses
// into loop.
func (p *Parser) parseCClause(loop *ast.LoopStmt) error {
	loop.Kind = ast.LoopC

	if !p.check(token.SEMICOLON) {
		init, err := p.statement()
		if err != nil {
			return err
		}
		loop.Init = init
	} else {
		p.chomp()
	}

	if !p.check(token.SEMICOLON) {
		cond, err := p.assignmentExpr()
		if err != nil {
			return err
		}
		loop.Cond = cond
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return err
	}

	if !p.check(token.LBRACE) {
		postExpr, err := p.assignmentExpr()
		if err != nil {
			return err
		}
		loop.Post = &ast.ExprStmt{StartPos: postExpr.Pos(), X: postExpr}
	}

	return nil
}

// deferStmt parses `defer Stmt`.
func (p *Parser) deferStmt() (*ast.DeferStmt, error) {
	start := p.peek().Position
	if _, err := p.expect(token.DEFER); err != nil {
		return nil, err
	}

	stmt, err := p.statement()
	if err != nil {
		return nil, err
	}

	return ast.New(p.arena, &ast.DeferStmt{StartPos: start, Stmt: stmt}), nil
}

// exprStmt parses a bare assignment-expression statement terminated by
// a semicolon. A variable-declaration statement whose production
// already consumes its own trailing ';' never reaches here; its own
// statement() branch returns directly.
func (p *Parser) exprStmt() (*ast.ExprStmt, error) {
	start := p.peek().Position

	x, err := p.assignmentExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}

	return ast.New(p.arena, &ast.ExprStmt{StartPos: start, X: x}), nil
}
