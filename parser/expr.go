package parser

import (
	"github.com/ccuetoh-maqui-lang-student/langfront/ast"
	"github.com/ccuetoh-maqui-lang-student/langfront/token"
)

// levels caches the precedence table's distinct levels, loosest first,
// so assignmentExpr's climb chain doesn't recompute them per call.
var levels = ast.Levels()

// assignmentExpr is the parser's name for what the statement grammar
// calls "AssignmentExpr": the full binary-operator precedence chain,
// bottoming out at unaryExpr. It is also what if/match/loop conditions
// and variable-declaration initializers parse with.
func (p *Parser) assignmentExpr() (ast.Expr, error) {
	return p.binaryLevel(0)
}

// binaryLevel climbs precedence level i (loosest-to-tightest order),
// delegating to the next tighter level as its child parser, and to
// unaryExpr once every level has been consumed.
func (p *Parser) binaryLevel(i int) (ast.Expr, error) {
	if i >= len(levels) {
		return p.unaryExpr()
	}

	child := func() (ast.Expr, error) { return p.binaryLevel(i + 1) }
	return ast.Climb(p.arena, ast.Infinity, ast.AtLevel(levels[i]), p.peek, p.chomp, child)
}

var prefixOps = map[token.Kind]ast.PrefixOpKind{
	token.MINUS:       ast.OpNegate,
	token.EXCLAMATION: ast.OpNot,
	token.TILDA:       ast.OpBitComplement,
	token.PLUS_PLUS:   ast.OpPreInc,
	token.MINUS_MINUS: ast.OpPreDec,
}

// unaryExpr parses zero or more prefix operators applied to a suffix
// expression; each operator's operand is parsed by unaryExpr again, so
// `++--a` nests as ++(--a).
func (p *Parser) unaryExpr() (ast.Expr, error) {
	if op, ok := prefixOps[p.peek().Kind]; ok {
		start := p.chomp().Position
		operand, err := p.unaryExpr()
		if err != nil {
			return nil, err
		}
		return ast.New(p.arena, &ast.PrefixExpr{StartPos: start, Op: op, Operand: operand}), nil
	}

	return p.suffixExpr()
}

// suffixExpr parses a primary expression followed by any mix of
// call-argument lists, index/slice suffixes and postfix inc/dec,
// associating left.
func (p *Parser) suffixExpr() (ast.Expr, error) {
	if err := p.enter(p.peek().Position); err != nil {
		return nil, err
	}
	defer p.leave()

	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.check(token.LPAREN):
			expr, err = p.callSuffix(expr)
		case p.check(token.LSQUAREBRACK):
			expr, err = p.indexOrSliceSuffix(expr)
		case p.check(token.PLUS_PLUS):
			pos := p.chomp().Position
			expr = ast.New(p.arena, &ast.SuffixExpr{StartPos: pos, Op: ast.OpPostInc, Operand: expr})
		case p.check(token.MINUS_MINUS):
			pos := p.chomp().Position
			expr = ast.New(p.arena, &ast.SuffixExpr{StartPos: pos, Op: ast.OpPostDec, Operand: expr})
		default:
			return expr, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// callSuffix parses `( Args,* )` with an optional trailing comma.
func (p *Parser) callSuffix(callee ast.Expr) (ast.Expr, error) {
	start, _ := p.expect(token.LPAREN)

	var args []ast.Expr
	for !p.check(token.RPAREN) {
		arg, err := p.assignmentExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if _, ok := p.chompIf(token.COMMA); !ok {
			break
		}
	}

	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	return ast.New(p.arena, &ast.FuncCallExpr{StartPos: start.Position, Callee: callee, Args: args}), nil
}

// indexOrSliceSuffix parses `[ Index ]` or `[ Low? : High? ]`.
func (p *Parser) indexOrSliceSuffix(target ast.Expr) (ast.Expr, error) {
	start, _ := p.expect(token.LSQUAREBRACK)

	var low ast.Expr
	var err error
	if !p.check(token.COLON) && !p.check(token.RSQUAREBRACK) {
		low, err = p.assignmentExpr()
		if err != nil {
			return nil, err
		}
	}

	if _, ok := p.chompIf(token.COLON); ok {
		var high ast.Expr
		if !p.check(token.RSQUAREBRACK) {
			high, err = p.assignmentExpr()
			if err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(token.RSQUAREBRACK); err != nil {
			return nil, err
		}
		return ast.New(p.arena, &ast.SliceExpr{StartPos: start.Position, Target: target, Low: low, High: high}), nil
	}

	if _, err := p.expect(token.RSQUAREBRACK); err != nil {
		return nil, err
	}

	return ast.New(p.arena, &ast.IndexExpr{StartPos: start.Position, Target: target, Index: low}), nil
}

// primary parses a single leaf: literals, break/continue/return,
// if-expression, match-expression, a block, an init-list, or a
// parenthesized expression.
func (p *Parser) primary() (ast.Expr, error) {
	tok := p.peek()

	switch tok.Kind {
	case token.INTEGER:
		p.chomp()
		return ast.New(p.arena, &ast.Literal{StartPos: tok.Position, Kind: ast.LitInteger, Value: tok.Lexeme}), nil
	case token.FLOAT_LIT:
		p.chomp()
		return ast.New(p.arena, &ast.Literal{StartPos: tok.Position, Kind: ast.LitFloat, Value: tok.Lexeme}), nil
	case token.CHAR:
		p.chomp()
		return ast.New(p.arena, &ast.Literal{StartPos: tok.Position, Kind: ast.LitChar, Value: tok.Lexeme}), nil
	case token.STRING:
		p.chomp()
		return ast.New(p.arena, &ast.Literal{StartPos: tok.Position, Kind: ast.LitString, Value: tok.Lexeme}), nil
	case token.TOK_TRUE:
		p.chomp()
		return ast.New(p.arena, &ast.Literal{StartPos: tok.Position, Kind: ast.LitBool, Value: "true"}), nil
	case token.TOK_FALSE:
		p.chomp()
		return ast.New(p.arena, &ast.Literal{StartPos: tok.Position, Kind: ast.LitBool, Value: "false"}), nil
	case token.TOK_NULL:
		p.chomp()
		return ast.New(p.arena, &ast.Literal{StartPos: tok.Position, Kind: ast.LitNull}), nil
	case token.UNREACHABLE:
		p.chomp()
		return ast.New(p.arena, &ast.Literal{StartPos: tok.Position, Kind: ast.LitUnreachable}), nil
	case token.IDENTIFIER:
		p.chomp()
		return ast.New(p.arena, &ast.Identifier{StartPos: tok.Position, Name: tok.Lexeme}), nil
	case token.BREAK:
		return p.breakExpr()
	case token.CONTINUE:
		return p.continueExpr()
	case token.RETURN:
		return p.returnExpr()
	case token.IF:
		return p.ifExpr()
	case token.MATCH:
		return p.matchExpr()
	case token.LPAREN:
		return p.parenExpr()
	case token.LBRACE:
		return p.braceExpr()
	default:
		p.chomp()
		return nil, p.errorf(tok.Position, "invalid token: %s", tok.Kind)
	}
}

func (p *Parser) breakExpr() (ast.Expr, error) {
	start := p.chomp().Position // 'break'

	expr := &ast.BreakExpr{StartPos: start}
	if p.check(token.IDENTIFIER) {
		// Treat as a label only when nothing else could follow it
		// inside the same expression (no suffix/binary continuation).
		if isExprTerminator(p.peekAhead(1).Kind) {
			label := p.chomp()
			expr.Label = label.Lexeme
			return ast.New(p.arena, expr), nil
		}
	}

	if !isExprTerminator(p.peek().Kind) {
		value, err := p.assignmentExpr()
		if err != nil {
			return nil, err
		}
		expr.Value = value
	}

	return ast.New(p.arena, expr), nil
}

func (p *Parser) continueExpr() (ast.Expr, error) {
	start := p.chomp().Position // 'continue'

	expr := &ast.ContinueExpr{StartPos: start}
	if p.check(token.IDENTIFIER) {
		label := p.chomp()
		expr.Label = label.Lexeme
	}

	return ast.New(p.arena, expr), nil
}

func (p *Parser) returnExpr() (ast.Expr, error) {
	start := p.chomp().Position // 'return'

	expr := &ast.ReturnExpr{StartPos: start}
	if !isExprTerminator(p.peek().Kind) {
		value, err := p.assignmentExpr()
		if err != nil {
			return nil, err
		}
		expr.Value = value
	}

	return ast.New(p.arena, expr), nil
}

// isExprTerminator reports whether kind can never start an expression,
// i.e. it always closes whatever expression-bearing construct
// contains the current position.
func isExprTerminator(kind token.Kind) bool {
	switch kind {
	case token.SEMICOLON, token.RPAREN, token.RBRACE, token.RSQUAREBRACK,
		token.COMMA, token.COLON, token.EQUALS_ARROW, token.EOF, token.ELSE:
		return true
	default:
		return false
	}
}

// ifExpr is the expression form of if/else.
func (p *Parser) ifExpr() (ast.Expr, error) {
	start := p.chomp().Position // 'if'
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

	then, err := p.exprBody()
	if err != nil {
		return nil, err
	}

	expr := &ast.IfExpr{StartPos: start, Cond: cond, Then: then}

	if _, ok := p.chompIf(token.ELSE); ok {
		elseExpr, err := p.exprBody()
		if err != nil {
			return nil, err
		}
		expr.HasElse = true
		expr.Else = elseExpr
	}

	return ast.New(p.arena, expr), nil
}

// exprBody parses the block-or-expression then/else body of an
// if-expression.
func (p *Parser) exprBody() (ast.Expr, error) {
	if p.check(token.LBRACE) {
		return p.braceExpr()
	}
	return p.assignmentExpr()
}

// parenExpr parses `( Expr )`.
func (p *Parser) parenExpr() (ast.Expr, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	expr, err := p.assignmentExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	return expr, nil
}

// braceExpr resolves the `{` ambiguity between a statement block used
// in expression position and a brace-delimited init-list, by scanning
// ahead (without consuming) for a top-level ';' before the matching
// '}'. An empty `{}` parses as an empty block.
func (p *Parser) braceExpr() (ast.Expr, error) {
	if p.bracesHoldStatements() {
		blk, err := p.block()
		if err != nil {
			return nil, err
		}
		return ast.New(p.arena, &ast.BlockExpr{StartPos: blk.StartPos, Body: blk}), nil
	}

	start, _ := p.expect(token.LBRACE)

	var elems []ast.Expr
	for !p.check(token.RBRACE) {
		elem, err := p.assignmentExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)

		if _, ok := p.chompIf(token.COMMA); !ok {
			break
		}
	}

	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}

	return ast.New(p.arena, &ast.InitListExpr{StartPos: start.Position, Elements: elems}), nil
}

// bracesHoldStatements looks ahead from the current '{' to its
// matching '}' for a top-level ';'.
func (p *Parser) bracesHoldStatements() bool {
	if p.peekAhead(1).Kind == token.RBRACE {
		return true // `{}` is the empty block
	}

	depth := 0
	for i := 0; ; i++ {
		tok := p.peekAhead(i)
		switch tok.Kind {
		case token.LBRACE:
			depth++
		case token.RBRACE:
			depth--
			if depth == 0 {
				return false
			}
		case token.SEMICOLON:
			if depth == 1 {
				return true
			}
		case token.EOF:
			return false
		}
	}
}

// matchExpr parses `match (Expr)? { MatchBranch,* ,? }`, where the
// parentheses around the subject expression are optional.
func (p *Parser) matchExpr() (ast.Expr, error) {
	start := p.chomp().Position // 'match'

	var subject ast.Expr
	var err error
	if _, ok := p.chompIf(token.LPAREN); ok {
		subject, err = p.assignmentExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
	} else {
		subject, err = p.assignmentExpr()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}

	var branches []*ast.MatchBranch
	for !p.check(token.RBRACE) {
		branch, err := p.matchBranch()
		if err != nil {
			return nil, err
		}
		branches = append(branches, branch)

		if _, ok := p.chompIf(token.COMMA); !ok {
			break
		}
	}

	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}

	return ast.New(p.arena, &ast.MatchExpr{StartPos: start, Subject: subject, Branches: branches}), nil
}

// matchBranch parses `MatchCase (: | =>) AssignmentExpr`, where
// MatchCase is `MatchItem (, MatchItem)* | else`.
func (p *Parser) matchBranch() (*ast.MatchBranch, error) {
	start := p.peek().Position
	branch := &ast.MatchBranch{StartPos: start}

	if _, ok := p.chompIf(token.ELSE); ok {
		branch.IsElse = true
	} else {
		for {
			item, err := p.assignmentExpr()
			if err != nil {
				return nil, err
			}
			branch.Items = append(branch.Items, item)

			if p.check(token.COLON) || p.check(token.EQUALS_ARROW) {
				break
			}
			if _, ok := p.chompIf(token.COMMA); !ok {
				break
			}
		}
	}

	switch {
	case p.check(token.COLON):
		p.chomp()
		branch.UsesArrow = false
	case p.check(token.EQUALS_ARROW):
		p.chomp()
		branch.UsesArrow = true
	default:
		return nil, p.errorf(p.peek().Position, "missing `:` or `=>` after `case`")
	}

	body, err := p.assignmentExpr()
	if err != nil {
		return nil, err
	}
	branch.Body = body

	return branch, nil
}
