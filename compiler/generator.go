// Package compiler lowers a hir.Module into a codeobj.CodeObj for the
// stack machine described in opcode. It is the core described in
// spec.md: single-threaded, synchronous, and side-effect-free beyond
// appending to its own diagnostics (spec.md §5 "Concurrency & resource
// model").
package compiler

import (
	"github.com/sstadick/erg/codeobj"
	"github.com/sstadick/erg/config"
	"github.com/sstadick/erg/diag"
	"github.com/sstadick/erg/hir"
	"github.com/sstadick/erg/internal/codegenlog"
	"github.com/sstadick/erg/internal/interner"
)

// Generator holds all state for one lowering pass. Two Generators never
// share state; each owns its own unit stack, interner, and config.
type Generator struct {
	cfg      config.Config
	log      *codegenlog.Logger
	interner *interner.Interner
	units    codeobj.UnitStack
	unitSize int

	Errs *diag.Diagnostics
}

// New returns a Generator ready to lower one module under cfg.
func New(cfg config.Config) *Generator {
	return &Generator{
		cfg:      cfg,
		log:      codegenlog.New(cfg.Debug),
		interner: interner.New(),
		Errs:     diag.New(errOut, cfg.Debug),
	}
}

// cur returns the current (top) code unit.
func (g *Generator) cur() *codeobj.CodeUnit { return g.units.Top() }

// curObj returns the current unit's code object.
func (g *Generator) curObj() *codeobj.CodeObj { return g.cur().Obj }

// toplevelObj returns the module unit's code object.
func (g *Generator) toplevelObj() *codeobj.CodeObj { return g.units.Bottom().Obj }

// pushUnit opens a new nested lowering scope and makes it current.
func (g *Generator) pushUnit(varnames []string, name string, firstline uint32) {
	g.unitSize++
	obj := codeobj.New(g.interner.GetAll(varnames), g.cfg.Input.EnclosedName, name, firstline)
	g.units.Push(&codeobj.CodeUnit{
		ID:         g.unitSize,
		Obj:        obj,
		PrevLineno: int(firstline),
	})
	g.log.UnitPushed(g.unitSize, name, firstline)
}

// popUnit closes the current unit and propagates any remaining line
// delta into the new top (spec.md §4.3 "When a nested unit is popped
// back to its parent...").
func (g *Generator) popUnit() *codeobj.CodeUnit {
	unit := g.units.Pop()
	g.log.UnitPopped(unit.ID, unit.Obj.Name)
	if !g.units.Empty() {
		parent := g.cur()
		ld := unit.PrevLineno - parent.PrevLineno
		if ld != 0 && len(parent.Obj.Lnotab) > 0 {
			parent.Obj.Lnotab[len(parent.Obj.Lnotab)-1] += byte(ld)
			parent.PrevLineno += ld
		} else if ld != 0 {
			parent.PrevLineno += ld
		}
	}
	return unit
}

// Codegen lowers mod into the module's root code object (spec.md §6
// "Output contract"). It is the sole public entry point; errors surface
// through g.Errs, never as a returned error — a resolved HIR always
// lowers to something, even when placeholders had to be emitted.
func (g *Generator) Codegen(mod hir.Module) *codeobj.CodeObj {
	g.log.Started()
	g.unitSize++
	g.units.Push(&codeobj.CodeUnit{
		ID:         g.unitSize,
		Obj:        codeobj.New(nil, g.cfg.Input.EnclosedName, "<module>", 1),
		PrevLineno: 1,
	})

	printPoint := -1
	if g.cfg.Input.IsREPL {
		printPoint = g.cur().Lasti
		g.emitLoadNameInstr("print")
	}

	for _, expr := range mod.Exprs {
		g.lowerExpr(expr)
		if g.cur().StackLen == 1 {
			g.emitPopTop()
		}
	}
	g.cancelPopTop()

	if g.cfg.Input.IsREPL {
		if g.cur().StackLen == 1 {
			// Nothing was produced; the pre-emitted load of print (a
			// LOAD_NAME at module scope) is dead, turn it into a NOP
			// (spec.md §4.8).
			g.editCode(printPoint, uint8(opNOP))
		} else {
			g.writeInstr(opCALL_FUNCTION)
			g.writeArg(1)
		}
		g.stackDec()
	}

	if g.cur().StackLen == 0 {
		g.emitLoadConstValue(vNil)
	} else if g.cur().StackLen > 1 {
		g.crashStackBug("Codegen")
	}
	g.writeInstr(opRETURN_VALUE)
	g.writeArg(0)
	g.applyNewLocalsFlag()

	unit := g.popUnit()
	g.log.Completed()
	return unit.Obj
}
