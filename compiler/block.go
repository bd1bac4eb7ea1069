package compiler

import (
	"github.com/sstadick/erg/codeobj"
	"github.com/sstadick/erg/hir"
	"github.com/sstadick/erg/value"
)

// lowerFramelessBlock implements spec.md §4.7 "Frameless block": used
// for bodies inlined into a surrounding unit (if/for/match arms).
// Parameters are stored as locals before the first expression; no new
// unit is pushed.
func (g *Generator) lowerFramelessBlock(block []hir.Expr, params []string) {
	for _, p := range params {
		g.emitStoreInstr(p, NameAccess)
	}
	for _, expr := range block {
		g.lowerExpr(expr)
		if g.cur().StackLen == 1 {
			g.emitPopTop()
		}
	}
	g.cancelPopTop()
}

// lowerFramedBlock implements spec.md §4.7 "Framed block": pushes a
// new unit, emits every expression, cancels the trailing POP_TOP so the
// last value becomes the return value, pads None if the block produced
// nothing, emits RETURN_VALUE, sets the new-locals flag, and pops the
// unit, propagating any trailing line delta to the parent.
func (g *Generator) lowerFramedBlock(block []hir.Expr, name string, params []string) *codeobj.CodeObj {
	firstline := uint32(1)
	if len(block) > 0 {
		firstline = uint32(block[0].LnBegin())
	}
	g.pushUnit(params, name, firstline)

	for _, expr := range block {
		g.lowerExpr(expr)
		if g.cur().StackLen == 1 {
			g.emitPopTop()
		}
	}
	g.cancelPopTop()

	switch {
	case g.cur().StackLen == 0:
		g.emitLoadConstValue(vNil)
	case g.cur().StackLen > 1:
		g.crashStackBug("lowerFramedBlock")
	}
	g.writeInstr(opRETURN_VALUE)
	g.writeArg(0)
	g.applyNewLocalsFlag()

	return g.popUnit().Obj
}

// lowerTypeDefBlock implements spec.md §4.5 "Monomorphic type
// definition"'s body emitter: a fresh unit that first stores
// __module__ and __qualname__ before lowering the rest of the block.
func (g *Generator) lowerTypeDefBlock(name string, block []hir.Expr) *codeobj.CodeObj {
	firstline := uint32(1)
	if len(block) > 0 {
		firstline = uint32(block[0].LnBegin())
	}
	g.pushUnit(nil, name, firstline)

	modName := g.toplevelObj().Name
	g.emitLoadConstValue(value.Str(modName))
	g.emitStoreInstr("__module__", AttrAccess)
	g.emitLoadConstValue(value.Str(name))
	g.emitStoreInstr("__qualname__", AttrAccess)

	for _, expr := range block {
		g.lowerExpr(expr)
		if g.cur().StackLen == 1 {
			g.emitPopTop()
		}
	}
	g.emitLoadConstValue(vNil)
	g.writeInstr(opRETURN_VALUE)
	g.writeArg(0)

	if g.cur().StackLen > 1 {
		g.crashStackBug("lowerTypeDefBlock")
	}
	g.applyNewLocalsFlag()

	return g.popUnit().Obj
}
