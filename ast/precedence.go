package ast

import "github.com/ccuetoh-maqui-lang-student/langfront/token"

// ChainMode selects how a precedence level folds repeated operators.
type ChainMode int

const (
	// Once is non-associative: at most one operator may appear at
	// this level before the helper returns.
	Once ChainMode = iota
	// Infinity is left-associative: operators at this level are
	// folded for as long as they keep appearing.
	Infinity
)

// OpEntry is one row of the static precedence table: a token kind, its
// binding power (higher binds tighter), and the BinaryOpKind it
// produces.
type OpEntry struct {
	Token      token.Kind
	Precedence int
	Op         BinaryOpKind
}

// PrecedenceTable is the static { token-kind, precedence, op-kind }
// mapping consulted by the generic binary-expression climbing helper.
// Assignment-style compound operators climb at the same level as their
// base arithmetic/bitwise operator, per the design's explicit
// "treated syntactically as binary operators at their level" policy.
//
// Plain '=' is not part of this table: it is consumed directly by the
// variable-declaration production, not as a general binary operator.
var PrecedenceTable = []OpEntry{
	{token.MULT, 60, OpMul},
	{token.SLASH, 60, OpDiv},
	{token.MOD, 60, OpMod},
	{token.MULT_EQUALS, 60, OpMulAssign},
	{token.SLASH_EQUALS, 60, OpDivAssign},
	{token.MOD_EQUALS, 60, OpModAssign},

	{token.PLUS, 50, OpAdd},
	{token.MINUS, 50, OpSub},
	{token.PLUS_EQUALS, 50, OpAddAssign},
	{token.MINUS_EQUALS, 50, OpSubAssign},

	{token.LBITSHIFT, 40, OpShl},
	{token.RBITSHIFT, 40, OpShr},
	{token.LBITSHIFT_EQUALS, 40, OpShlAssign},
	{token.RBITSHIFT_EQUALS, 40, OpShrAssign},

	{token.EQUALS_EQUALS, 30, OpEq},
	{token.EXCLAMATION_EQUALS, 30, OpNeq},
	{token.GREATER_THAN, 30, OpGt},
	{token.LESS_THAN, 30, OpLt},
	{token.GREATER_THAN_OR_EQUAL_TO, 30, OpGe},
	{token.LESS_THAN_OR_EQUAL_TO, 30, OpLe},

	{token.AND, 20, OpBitAnd},
	{token.AND_EQUALS, 20, OpAndAssign},

	{token.OR, 10, OpBitOr},
	{token.OR_EQUALS, 10, OpOrAssign},
}

// lookup finds the table entry for tok, if any is registered.
func lookup(tok token.Kind) (OpEntry, bool) {
	for _, e := range PrecedenceTable {
		if e.Token == tok {
			return e, true
		}
	}
	return OpEntry{}, false
}

// Levels returns the distinct precedence numbers present in the table,
// sorted from loosest (lowest number, parsed outermost) to tightest
// (highest number, parsed innermost).
func Levels() []int {
	seen := map[int]bool{}
	var levels []int
	for _, e := range PrecedenceTable {
		if !seen[e.Precedence] {
			seen[e.Precedence] = true
			levels = append(levels, e.Precedence)
		}
	}
	for i := 0; i < len(levels); i++ {
		for j := i + 1; j < len(levels); j++ {
			if levels[j] < levels[i] {
				levels[i], levels[j] = levels[j], levels[i]
			}
		}
	}
	return levels
}

// Recognizer reports whether tok is an operator at the level the
// caller is climbing, returning its OpEntry.
type Recognizer func(tok token.Kind) (OpEntry, bool)

// AtLevel builds a Recognizer that only matches operators registered
// at exactly the given precedence.
func AtLevel(precedence int) Recognizer {
	return func(tok token.Kind) (OpEntry, bool) {
		e, ok := lookup(tok)
		if !ok || e.Precedence != precedence {
			return OpEntry{}, false
		}
		return e, true
	}
}

// Climb folds a single precedence level. child parses the next
// tighter-binding production (or the primary expression, at the
// tightest level). recognize identifies whether the current lookahead
// token is an operator at this level. peek/next/arena let the helper
// stay generic over any token cursor.
//
// Once: at most one operator is folded before returning.
// Infinity: operators are folded left-associatively for as long as
// they keep appearing.
func Climb(
	a *Arena,
	mode ChainMode,
	recognize Recognizer,
	peek func() token.Token,
	next func() token.Token,
	child func() (Expr, error),
) (Expr, error) {
	lhs, err := child()
	if err != nil {
		return nil, err
	}

	folded := false
	for {
		entry, ok := recognize(peek().Kind)
		if !ok {
			return lhs, nil
		}
		if mode == Once && folded {
			return lhs, nil
		}

		startPos := peek().Position
		next() // consume the operator

		rhs, err := child()
		if err != nil {
			return nil, err
		}

		lhs = New(a, &BinaryExpr{
			StartPos: startPos,
			Op:       entry.Op,
			Left:     lhs,
			Right:    rhs,
		})
		folded = true

		if mode == Once {
			return lhs, nil
		}
	}
}
