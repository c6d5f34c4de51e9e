package ast

import (
	"fmt"
	"strings"
)

// Print renders f as source text using a naive, whitespace-happy
// pretty printer. It exists to support the round-trip testable
// property (parse -> Print -> re-parse -> structurally equal AST,
// modulo position metadata): it is not meant to reproduce the
// original formatting.
func Print(f *File) string {
	var b strings.Builder
	for _, n := range f.Decls {
		printNode(&b, n)
		b.WriteString("\n")
	}
	return b.String()
}

func printNode(b *strings.Builder, n Node) {
	switch v := n.(type) {
	case *FuncDecl:
		printFuncProto(b, v.Proto)
		printBlock(b, v.Body)
	case *VariableDecl:
		printVariableDecl(b, v)
	case Stmt:
		printStmt(b, v)
	default:
		fmt.Fprintf(b, "/* unknown node %T */", n)
	}
}

func printFuncProto(b *strings.Builder, p *FuncProto) {
	fmt.Fprintf(b, "func %s(", p.Name)
	for i, param := range p.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		if param.Variadic {
			b.WriteString("...")
		}
		b.WriteString(param.Name)
		if param.Type != nil {
			b.WriteString(" ")
			printTypeExpr(b, param.Type)
		}
	}
	b.WriteString(")")
	if p.ReturnType != nil {
		b.WriteString(" -> ")
		printTypeExpr(b, p.ReturnType)
	}
	b.WriteString(" ")
}

func printVariableDecl(b *strings.Builder, d *VariableDecl) {
	if d.Export {
		b.WriteString("export ")
	}
	if d.Mutable {
		b.WriteString("mutable ")
	}
	if d.Const {
		b.WriteString("const ")
	}
	if d.Type != nil {
		printTypeExpr(b, d.Type)
		b.WriteString(" ")
	}
	b.WriteString(d.Name)
	if d.Value != nil {
		b.WriteString(" = ")
		printExpr(b, d.Value)
	}
	b.WriteString(";")
}

func printBlock(b *strings.Builder, blk *Block) {
	b.WriteString("{ ")
	for _, s := range blk.Stmts {
		printStmt(b, s)
		b.WriteString(" ")
	}
	b.WriteString("}")
}

func printStmt(b *strings.Builder, s Stmt) {
	switch v := s.(type) {
	case *VariableDecl:
		printVariableDecl(b, v)
	case *Block:
		printBlock(b, v)
	case *IfStmt:
		b.WriteString("if (")
		printExpr(b, v.Cond)
		b.WriteString(") ")
		printStmt(b, v.Then)
		if v.HasElse {
			b.WriteString(" else ")
			printStmt(b, v.Else)
		}
	case *LoopStmt:
		printLoop(b, v)
	case *DeferStmt:
		b.WriteString("defer ")
		printStmt(b, v.Stmt)
	case *LabeledStmt:
		fmt.Fprintf(b, "%s: ", v.Label)
		printStmt(b, v.Target)
	case *ExprStmt:
		printExpr(b, v.X)
		b.WriteString(";")
	default:
		fmt.Fprintf(b, "/* unknown stmt %T */", s)
	}
}

func printLoop(b *strings.Builder, l *LoopStmt) {
	if l.Inline {
		b.WriteString("inline ")
	}
	b.WriteString("for ")
	switch l.Kind {
	case LoopC:
		if l.Init != nil {
			printStmt(b, l.Init)
		} else {
			b.WriteString(";")
		}
		b.WriteString(" ")
		if l.Cond != nil {
			printExpr(b, l.Cond)
		}
		b.WriteString("; ")
		if l.Post != nil {
			// Post is always an *ExprStmt (see parser.parseCClause);
			// print its expression bare, since the C-style loop's post
			// clause carries no trailing semicolon of its own.
			printExpr(b, l.Post.(*ExprStmt).X)
		}
		b.WriteString(" ")
	case LoopWhile:
		printExpr(b, l.Cond)
		b.WriteString(" ")
	case LoopIn:
		fmt.Fprintf(b, "%s in ", l.InName)
		printExpr(b, l.InExpr)
		b.WriteString(" ")
	}
	printBlock(b, l.Body)
}

var binaryOpText = map[BinaryOpKind]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpMod: "%",
	OpShl: "<<", OpShr: ">>",
	OpEq: "==", OpNeq: "!=", OpGt: ">", OpLt: "<", OpGe: ">=", OpLe: "<=",
	OpBitAnd: "and", OpBitOr: "or",
	OpAddAssign: "+=", OpSubAssign: "-=", OpMulAssign: "*=", OpDivAssign: "/=",
	OpModAssign: "%=", OpShlAssign: "<<=", OpShrAssign: ">>=",
	OpAndAssign: "&=", OpOrAssign: "|=",
}

var prefixOpText = map[PrefixOpKind]string{
	OpNegate: "-", OpNot: "!", OpBitComplement: "~", OpPreInc: "++", OpPreDec: "--",
}

var suffixOpText = map[SuffixOpKind]string{
	OpPostInc: "++", OpPostDec: "--",
}

func printExpr(b *strings.Builder, e Expr) {
	switch v := e.(type) {
	case *BinaryExpr:
		b.WriteString("(")
		printExpr(b, v.Left)
		fmt.Fprintf(b, " %s ", binaryOpText[v.Op])
		printExpr(b, v.Right)
		b.WriteString(")")
	case *PrefixExpr:
		b.WriteString(prefixOpText[v.Op])
		printExpr(b, v.Operand)
	case *SuffixExpr:
		printExpr(b, v.Operand)
		b.WriteString(suffixOpText[v.Op])
	case *IndexExpr:
		printExpr(b, v.Target)
		b.WriteString("[")
		printExpr(b, v.Index)
		b.WriteString("]")
	case *SliceExpr:
		printExpr(b, v.Target)
		b.WriteString("[")
		if v.Low != nil {
			printExpr(b, v.Low)
		}
		b.WriteString(":")
		if v.High != nil {
			printExpr(b, v.High)
		}
		b.WriteString("]")
	case *FuncCallExpr:
		printExpr(b, v.Callee)
		b.WriteString("(")
		for i, a := range v.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			printExpr(b, a)
		}
		b.WriteString(")")
	case *InitListExpr:
		b.WriteString("{")
		for i, el := range v.Elements {
			if i > 0 {
				b.WriteString(", ")
			}
			printExpr(b, el)
		}
		b.WriteString("}")
	case *IfExpr:
		b.WriteString("if (")
		printExpr(b, v.Cond)
		b.WriteString(") ")
		printExpr(b, v.Then)
		if v.HasElse {
			b.WriteString(" else ")
			printExpr(b, v.Else)
		}
	case *MatchExpr:
		b.WriteString("match (")
		printExpr(b, v.Subject)
		b.WriteString(") { ")
		for i, br := range v.Branches {
			if i > 0 {
				b.WriteString(", ")
			}
			printMatchBranch(b, br)
		}
		b.WriteString(" }")
	case *BlockExpr:
		printBlock(b, v.Body)
	case *BreakExpr:
		b.WriteString("break")
		if v.Label != "" {
			fmt.Fprintf(b, " %s", v.Label)
		}
		if v.Value != nil {
			b.WriteString(" ")
			printExpr(b, v.Value)
		}
	case *ContinueExpr:
		b.WriteString("continue")
		if v.Label != "" {
			fmt.Fprintf(b, " %s", v.Label)
		}
	case *ReturnExpr:
		b.WriteString("return")
		if v.Value != nil {
			b.WriteString(" ")
			printExpr(b, v.Value)
		}
	case *Identifier:
		b.WriteString(v.Name)
	case *Literal:
		printLiteral(b, v)
	case *TypeExpr:
		printTypeExpr(b, v)
	default:
		fmt.Fprintf(b, "/* unknown expr %T */", e)
	}
}

func printMatchBranch(b *strings.Builder, br *MatchBranch) {
	if br.IsElse {
		b.WriteString("else")
	} else {
		for i, item := range br.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			printExpr(b, item)
		}
	}
	if br.UsesArrow {
		b.WriteString(" => ")
	} else {
		b.WriteString(": ")
	}
	printExpr(b, br.Body)
}

func printLiteral(b *strings.Builder, l *Literal) {
	switch l.Kind {
	case LitString:
		fmt.Fprintf(b, "%q", l.Value)
	case LitChar:
		fmt.Fprintf(b, "'%s'", l.Value)
	case LitNull:
		b.WriteString("null")
	case LitUnreachable:
		b.WriteString("unreachable")
	default:
		b.WriteString(l.Value)
	}
}

func printTypeExpr(b *strings.Builder, t *TypeExpr) {
	for _, prefix := range t.Prefixes {
		switch prefix {
		case TypePtr:
			b.WriteString("*")
		case TypeSlice:
			b.WriteString("[]")
		case TypeOptional:
			b.WriteString("?")
		}
	}
	printExpr(b, t.Base)
}
