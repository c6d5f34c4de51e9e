package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccuetoh-maqui-lang-student/langfront/ast"
	"github.com/ccuetoh-maqui-lang-student/langfront/lexer"
	"github.com/ccuetoh-maqui-lang-student/langfront/token"
)

// parse is the test helper every *_test.go file in this package uses:
// lex src and parse it in one call, failing the test immediately on a
// lex error (parse errors are returned to the caller, since several
// cases below assert on them directly).
func parse(t *testing.T, src string) (*ast.File, error) {
	t.Helper()
	stream, err := lexer.Lex([]byte(src), "test.mq")
	require.NoError(t, err)
	return Parse(stream, "test.mq")
}

func mustParse(t *testing.T, src string) *ast.File {
	t.Helper()
	file, err := parse(t, src)
	require.NoError(t, err)
	return file
}

// ---- spec.md §8 literal scenarios -----------------------------------

func TestScenario_EmptyStringLiteralLexesAlone(t *testing.T) {
	stream, err := lexer.Lex([]byte(`""`), "test.mq")
	require.NoError(t, err)
	require.Len(t, stream, 2)
	assert.Equal(t, token.STRING, stream[0].Kind)
	assert.Equal(t, "", stream[0].Lexeme)
	assert.Equal(t, token.EOF, stream[1].Kind)
}

func TestScenario_AssignmentWithPrecedence(t *testing.T) {
	file := mustParse(t, "x = 1 + 2 * 3;")
	require.Len(t, file.Decls, 1)

	decl, ok := file.Decls[0].(*ast.VariableDecl)
	require.True(t, ok, "expected *ast.VariableDecl, got %T", file.Decls[0])
	assert.Equal(t, "x", decl.Name)
	assert.Nil(t, decl.Type)

	add, ok := decl.Value.(*ast.BinaryExpr)
	require.True(t, ok, "expected *ast.BinaryExpr, got %T", decl.Value)
	assert.Equal(t, ast.OpAdd, add.Op)
	assertIntLit(t, add.Left, "1")

	mul, ok := add.Right.(*ast.BinaryExpr)
	require.True(t, ok, "expected *ast.BinaryExpr, got %T", add.Right)
	assert.Equal(t, ast.OpMul, mul.Op)
	assertIntLit(t, mul.Left, "2")
	assertIntLit(t, mul.Right, "3")
}

func TestScenario_IfElseStatement(t *testing.T) {
	file := mustParse(t, "if (a) b; else c;")
	require.Len(t, file.Decls, 1)

	ifStmt, ok := file.Decls[0].(*ast.IfStmt)
	require.True(t, ok, "expected *ast.IfStmt, got %T", file.Decls[0])

	assertIdent(t, ifStmt.Cond, "a")

	then, ok := ifStmt.Then.(*ast.ExprStmt)
	require.True(t, ok)
	assertIdent(t, then.X, "b")

	require.True(t, ifStmt.HasElse)
	els, ok := ifStmt.Else.(*ast.ExprStmt)
	require.True(t, ok)
	assertIdent(t, els.X, "c")
}

func TestScenario_FuncDeclWithReturnTypeAndBody(t *testing.T) {
	file := mustParse(t, "func f() -> Int { return 0; }")
	require.Len(t, file.Decls, 1)

	fn, ok := file.Decls[0].(*ast.FuncDecl)
	require.True(t, ok, "expected *ast.FuncDecl, got %T", file.Decls[0])

	assert.Equal(t, "f", fn.Proto.Name)
	assert.Empty(t, fn.Proto.Params)
	require.NotNil(t, fn.Proto.ReturnType)
	assertIdent(t, fn.Proto.ReturnType.Base, "Int")

	require.Len(t, fn.Body.Stmts, 1)
	ret, ok := fn.Body.Stmts[0].(*ast.ExprStmt)
	require.True(t, ok)
	retExpr, ok := ret.X.(*ast.ReturnExpr)
	require.True(t, ok)
	assertIntLit(t, retExpr.Value, "0")
}

func TestScenario_UnterminatedBlockCommentIsLexError(t *testing.T) {
	_, err := lexer.Lex([]byte("/* unterminated"), "test.mq")
	require.Error(t, err)

	lexErr, ok := err.(*lexer.Error)
	require.True(t, ok, "expected *lexer.Error, got %T", err)
	assert.Equal(t, 1, lexErr.Position.Line)
	assert.Equal(t, 1, lexErr.Position.Column)
}

func TestScenario_MutableConstIsParseError(t *testing.T) {
	_, err := parse(t, "mutable const x = 1;")
	require.Error(t, err)

	parseErr, ok := err.(*Error)
	require.True(t, ok, "expected *parser.Error, got %T", err)
	assert.Contains(t, parseErr.Message, "cannot decorate a variable as both mutable and const")
}

// ---- precedence / associativity properties ---------------------------

func TestLeftAssociativityAtOneLevel(t *testing.T) {
	file := mustParse(t, "a + b + c;")
	stmt := file.Decls[0].(*ast.ExprStmt)

	outer := stmt.X.(*ast.BinaryExpr)
	assert.Equal(t, ast.OpAdd, outer.Op)
	assertIdent(t, outer.Right, "c")

	inner := outer.Left.(*ast.BinaryExpr)
	assert.Equal(t, ast.OpAdd, inner.Op)
	assertIdent(t, inner.Left, "a")
	assertIdent(t, inner.Right, "b")
}

func TestHigherPrecedenceBindsTighter(t *testing.T) {
	file := mustParse(t, "a + b * c;")
	stmt := file.Decls[0].(*ast.ExprStmt)

	outer := stmt.X.(*ast.BinaryExpr)
	assert.Equal(t, ast.OpAdd, outer.Op)
	assertIdent(t, outer.Left, "a")

	inner := outer.Right.(*ast.BinaryExpr)
	assert.Equal(t, ast.OpMul, inner.Op)
	assertIdent(t, inner.Left, "b")
	assertIdent(t, inner.Right, "c")
}

// TestChompIfIdempotentOnMismatch exercises the chomp_if-leaves-cursor-
// unchanged property of spec.md §8 directly against the cursor.
func TestChompIfIdempotentOnMismatch(t *testing.T) {
	stream, err := lexer.Lex([]byte("a b"), "test.mq")
	require.NoError(t, err)

	p := New(stream, "test.mq")
	before := p.pos

	_, ok := p.chompIf(token.SEMICOLON)
	assert.False(t, ok)
	assert.Equal(t, before, p.pos)

	_, ok = p.chompIf(token.SEMICOLON)
	assert.False(t, ok)
	assert.Equal(t, before, p.pos)
}

func TestEveryTokenVectorEndsInEOF(t *testing.T) {
	for _, src := range []string{"", "x;", "func f() {}", "1 + 2 * 3;"} {
		stream, err := lexer.Lex([]byte(src), "test.mq")
		require.NoError(t, err)
		require.NotEmpty(t, stream)
		assert.Equal(t, token.EOF, stream.Last().Kind)
	}
}

// ---- shared assertion helpers, used by decl_test.go/stmt_test.go/expr_test.go too ----

func assertIdent(t *testing.T, e ast.Expr, name string) {
	t.Helper()
	id, ok := e.(*ast.Identifier)
	require.True(t, ok, "expected *ast.Identifier, got %T", e)
	assert.Equal(t, name, id.Name)
}

func assertIntLit(t *testing.T, e ast.Expr, value string) {
	t.Helper()
	lit, ok := e.(*ast.Literal)
	require.True(t, ok, "expected *ast.Literal, got %T", e)
	assert.Equal(t, ast.LitInteger, lit.Kind)
	assert.Equal(t, value, lit.Value)
}
