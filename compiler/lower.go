package compiler

import (
	"github.com/sstadick/erg/hir"
	"github.com/sstadick/erg/opcode"
	"github.com/sstadick/erg/value"
)

// lowerExpr is the recursive HIR dispatch driver (spec.md §4.6
// "Expression dispatch"). It records a line-table entry first, then
// switches over the HIR node's concrete type.
func (g *Generator) lowerExpr(expr hir.Expr) {
	g.recordLine(expr.LnBegin())

	switch e := expr.(type) {
	case *hir.Lit:
		g.emitLoadConstValue(litToValue(e.Data))

	case *hir.Local:
		g.emitLoadNameInstr(e.Name)

	case *hir.Attr:
		g.lowerExpr(e.Obj)
		g.emitLoadAttrInstr(e.Class, e.UniqObjName, e.Name)

	case *hir.Def:
		switch {
		case e.SubrSig != nil:
			g.lowerSubrDef(*e.SubrSig, e.Body)
		case e.VarSig != nil:
			g.lowerVarDef(*e.VarSig, e.Body)
		}

	case *hir.Lambda:
		params := g.genParamNames(e.Params)
		code := g.lowerFramedBlock(e.Body, "<lambda>", params)
		g.emitLoadConstValue(code)
		g.emitLoadConstValue(value.Str("<lambda>"))
		g.writeInstr(opMAKE_FUNCTION)
		g.writeArg(0)
		// <lambda code obj> + <name> -> <function>
		g.stackDec()

	case *hir.UnaryOp:
		g.lowerUnaryOp(e)

	case *hir.BinOp:
		g.lowerBinOp(e)

	case *hir.Call:
		g.lowerCall(e)

	case *hir.Array:
		g.lowerArray(e)

	default:
		g.Errs.Feature(expr.Loc(), "unsupported expression")
		g.Errs.Crash("lowerExpr", g.cur().ID, g.cur().StackLen, "cannot compile this expression at this time")
	}
}

// intValue builds a constant-table Int value for a compiler-synthesized
// integer, such as a match array pattern's expected element count.
func intValue(n int) value.Value {
	return value.Int(int64(n))
}

func litToValue(l hir.LitValue) value.Value {
	switch v := l.(type) {
	case hir.IntLit:
		return value.Int(v)
	case hir.FloatLit:
		return value.Float(v)
	case hir.StrLit:
		return value.Str(v)
	case hir.BoolLit:
		return value.Bool(v)
	case hir.NilLit:
		return value.Nil
	default:
		return value.Nil
	}
}

func (g *Generator) lowerUnaryOp(e *hir.UnaryOp) {
	g.lowerExpr(e.Expr)
	var op = opNOT_IMPLEMENTED
	switch e.Op {
	case hir.PrePlus:
		op = opUNARY_POSITIVE
	case hir.PreMinus:
		op = opUNARY_NEGATIVE
	case hir.Mutate:
		op = opNOP // reserved MUTATE opcode not yet emitted, see SPEC_FULL.md
	default:
		g.Errs.Feature(e.Loc(), "unary operator")
	}
	g.writeInstr(op)
	g.writeArg(e.OperandTypeCode)
}

// isRangeOp reports whether tok is one of erg's four interval
// operators, which desugar to a call to the `range` builtin rather
// than a real binary opcode (spec.md §4.6 "for range operators").
func isRangeOp(tok hir.TokenKind) bool {
	switch tok {
	case hir.LeftOpen, hir.RightOpen, hir.Closed, hir.Open:
		return true
	}
	return false
}

func (g *Generator) lowerBinOp(e *hir.BinOp) {
	if e.Op == hir.RightOpen {
		// l..<r == range(l, r): load the callee first, matching
		// codegen.rs's ordering (range is loaded before lhs/rhs).
		g.emitLoadNameInstr("range")
	} else if isRangeOp(e.Op) {
		g.Errs.Feature(e.Loc(), "open/closed range operator")
	}

	g.lowerExpr(e.Lhs)
	g.lowerExpr(e.Rhs)

	var instr = opNOT_IMPLEMENTED
	var arg uint8
	switch e.Op {
	case hir.Plus:
		instr, arg = opBINARY_ADD, typePair(e.LhsT, e.RhsT)
	case hir.Minus:
		instr, arg = opBINARY_SUBTRACT, typePair(e.LhsT, e.RhsT)
	case hir.Star:
		instr, arg = opBINARY_MULTIPLY, typePair(e.LhsT, e.RhsT)
	case hir.Slash:
		instr, arg = opBINARY_TRUE_DIVIDE, typePair(e.LhsT, e.RhsT)
	case hir.Pow:
		instr, arg = opBINARY_POWER, typePair(e.LhsT, e.RhsT)
	case hir.Mod:
		instr, arg = opBINARY_MODULO, typePair(e.LhsT, e.RhsT)
	case hir.AndOp:
		instr, arg = opBINARY_AND, typePair(e.LhsT, e.RhsT)
	case hir.OrOp:
		instr, arg = opBINARY_OR, typePair(e.LhsT, e.RhsT)
	case hir.Less:
		instr, arg = opCOMPARE_OP, opcode.CmpLT
	case hir.LessEq:
		instr, arg = opCOMPARE_OP, opcode.CmpLE
	case hir.DblEq:
		instr, arg = opCOMPARE_OP, opcode.CmpEQ
	case hir.NotEq:
		instr, arg = opCOMPARE_OP, opcode.CmpNE
	case hir.Gre:
		instr, arg = opCOMPARE_OP, opcode.CmpGT
	case hir.GreEq:
		instr, arg = opCOMPARE_OP, opcode.CmpGE
	case hir.RightOpen:
		instr, arg = opCALL_FUNCTION, 2
	case hir.LeftOpen, hir.Closed, hir.Open:
		// diagnostic recorded above; keep the NOT_IMPLEMENTED placeholder
	default:
		g.Errs.Feature(e.Loc(), "binary operator")
	}
	g.writeInstr(instr)
	g.writeArg(arg)
	g.stackDec()
	if e.Op == hir.RightOpen {
		// the range callee loaded above is consumed by the call too
		g.stackDec()
	}
}

// genParamNames gathers parameter names in declared order (non-default
// first, then default), substituting "_" for nameless ones (spec.md
// §4.5 "Gather parameter names").
func (g *Generator) genParamNames(params hir.Params) []string {
	out := make([]string, 0, params.Len())
	for _, p := range params.NonDefaults {
		out = append(out, nameOrWildcard(p.Name))
	}
	for _, p := range params.Defaults {
		out = append(out, nameOrWildcard(p.Name))
	}
	return out
}

func nameOrWildcard(name string) string {
	if name == "" {
		return "_"
	}
	return name
}
