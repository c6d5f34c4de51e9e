package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccuetoh-maqui-lang-student/langfront/ast"
)

func TestFuncProtoParamsAndTypes(t *testing.T) {
	file := mustParse(t, "func add(a Int, b Int) -> Int { return a + b; }")
	fn := file.Decls[0].(*ast.FuncDecl)

	require.Len(t, fn.Proto.Params, 2)
	assert.Equal(t, "a", fn.Proto.Params[0].Name)
	assertIdent(t, fn.Proto.Params[0].Type.Base, "Int")
	assert.Equal(t, "b", fn.Proto.Params[1].Name)
	assertIdent(t, fn.Proto.Params[1].Type.Base, "Int")
}

func TestFuncProtoUntypedParam(t *testing.T) {
	file := mustParse(t, "func id(x) { return x; }")
	fn := file.Decls[0].(*ast.FuncDecl)

	require.Len(t, fn.Proto.Params, 1)
	assert.Nil(t, fn.Proto.Params[0].Type)
}

func TestFuncProtoTrailingCommaInParamList(t *testing.T) {
	file := mustParse(t, "func f(a, b,) {}")
	fn := file.Decls[0].(*ast.FuncDecl)
	require.Len(t, fn.Proto.Params, 2)
}

func TestFuncProtoVariadicParamMustBeLast(t *testing.T) {
	_, err := parse(t, "func f(...a, b) {}")
	require.Error(t, err)
	assert.Contains(t, err.(*Error).Message, "cannot have multiple variadic arguments")
}

func TestFuncProtoVariadicParam(t *testing.T) {
	file := mustParse(t, "func f(a, ...rest) {}")
	fn := file.Decls[0].(*ast.FuncDecl)

	require.Len(t, fn.Proto.Params, 2)
	assert.False(t, fn.Proto.Params[0].Variadic)
	assert.True(t, fn.Proto.Params[1].Variadic)
}

func TestVariableDeclExportMutable(t *testing.T) {
	file := mustParse(t, "export mutable x = 1;")
	decl := file.Decls[0].(*ast.VariableDecl)

	assert.True(t, decl.Export)
	assert.True(t, decl.Mutable)
	assert.False(t, decl.Const)
	assert.Equal(t, "x", decl.Name)
	assertIntLit(t, decl.Value, "1")
}

func TestVariableDeclWithExplicitType(t *testing.T) {
	file := mustParse(t, "Int x = 1;")
	decl := file.Decls[0].(*ast.VariableDecl)

	require.NotNil(t, decl.Type)
	assertIdent(t, decl.Type.Base, "Int")
	assert.Equal(t, "x", decl.Name)
}

func TestVariableDeclWithoutInitializer(t *testing.T) {
	file := mustParse(t, "mutable Int x;")
	decl := file.Decls[0].(*ast.VariableDecl)

	assert.True(t, decl.Mutable)
	require.NotNil(t, decl.Type)
	assert.Nil(t, decl.Value)
}

func TestVariableDeclBareAssignmentHasNoExplicitType(t *testing.T) {
	file := mustParse(t, "x = 1;")
	decl := file.Decls[0].(*ast.VariableDecl)

	assert.Nil(t, decl.Type)
	assert.Equal(t, "x", decl.Name)
}

func TestTypeExprPointerSliceOptionalPrefixes(t *testing.T) {
	file := mustParse(t, "*[]?Int x;")
	decl := file.Decls[0].(*ast.VariableDecl)

	require.NotNil(t, decl.Type)
	assert.Equal(t, []ast.TypePrefixKind{ast.TypePtr, ast.TypeSlice, ast.TypeOptional}, decl.Type.Prefixes)
	assertIdent(t, decl.Type.Base, "Int")
}
