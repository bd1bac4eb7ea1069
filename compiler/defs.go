package compiler

import (
	"github.com/sstadick/erg/hir"
	"github.com/sstadick/erg/value"
)

// lowerVarPat implements spec.md §4.5's pattern match on a variable
// definition's left-hand side: a simple name stores directly; an array
// pattern unpacks then recurses element by element. Only the
// definition operator category is supported.
func (g *Generator) lowerVarPat(loc hir.Location, pat hir.VarPattern, op hir.DefOp) {
	if op != hir.AssignDef {
		g.Errs.Feature(loc, "non-definition operator on a pattern")
		return
	}
	switch p := pat.(type) {
	case hir.VarName:
		g.emitStoreInstr(string(p), NameAccess)
	case hir.VarArrayPattern:
		g.writeInstr(opUNPACK_SEQUENCE)
		g.writeArg(uint8(len(p)))
		g.stackIncN(len(p) - 1)
		for _, sub := range p {
			g.lowerVarPat(loc, sub, op)
		}
	default:
		g.Errs.Feature(loc, "unsupported variable pattern")
	}
}

// lowerVarDef implements spec.md §4.5 "Variable definition".
func (g *Generator) lowerVarDef(sig hir.VarSignature, body hir.DefBody) {
	if body.IsType {
		g.lowerMonoTypeDef(sig, body)
		return
	}
	if len(body.Block) == 1 {
		g.lowerExpr(body.Block[0])
	} else {
		g.lowerFramelessBlock(body.Block, nil)
	}
	g.lowerVarPat(sig.Loc(), sig.Pat, body.Op)
}

// lowerSubrDef implements spec.md §4.5 "Subroutine definition".
func (g *Generator) lowerSubrDef(sig hir.SubrSignature, body hir.DefBody) {
	params := g.genParamNames(sig.Params)
	code := g.lowerFramedBlock(body.Block, sig.Name, params)
	g.emitLoadConstValue(code)

	flags := uint8(0)
	if cellvars := g.curObj().Cellvars; len(cellvars) > 0 {
		for i := range cellvars {
			g.writeInstr(opLOAD_CLOSURE)
			g.writeArg(uint8(i))
		}
		g.writeInstr(opBUILD_TUPLE)
		g.writeArg(uint8(len(cellvars)))
		flags |= 0x08 // opcode.MakeFunctionHasClosure
	}
	g.emitLoadConstValue(value.Str(sig.Name))
	g.writeInstr(opMAKE_FUNCTION)
	g.writeArg(flags)
	// <code obj> + <name> -> <function>
	g.stackDec()
	g.emitStoreInstr(sig.Name, NameAccess)
}

// lowerMonoTypeDef implements spec.md §4.5 "Monomorphic type
// definition": LOAD_BUILD_CLASS, the body's code object, the type
// name, MAKE_FUNCTION, the name again, CALL_FUNCTION 2, then store.
func (g *Generator) lowerMonoTypeDef(sig hir.VarSignature, body hir.DefBody) {
	g.writeInstr(opLOAD_BUILD_CLASS)
	g.writeArg(0)
	g.stackInc()

	name := sig.Name()
	code := g.lowerTypeDefBlock(name, body.Block)
	g.emitLoadConstValue(code)
	g.emitLoadConstValue(value.Str(name))
	g.writeInstr(opMAKE_FUNCTION)
	g.writeArg(0)
	// <code obj> + <name> -> <function>
	g.stackDec()
	g.emitLoadConstValue(value.Str(name))
	g.writeInstr(opCALL_FUNCTION)
	g.writeArg(2)
	// <build_class> + <class function> + <name> (3 operands) -> 1 class
	// object.
	g.stackDecN((1 + 2) - 1)
	g.emitStoreInstr(name, NameAccess)
}

// lowerArray implements spec.md §4.6 "Array literal".
func (g *Generator) lowerArray(e *hir.Array) {
	n := len(e.Elems)
	for _, elem := range e.Elems {
		g.lowerExpr(elem)
	}
	g.writeInstr(opBUILD_LIST)
	g.writeArg(uint8(n))
	if n == 0 {
		g.stackInc()
	} else {
		g.stackDecN(n - 1)
	}
}
