package compiler

import "github.com/sstadick/erg/codeobj"

// stackInc and stackDec implement spec.md §4.2 "Stack simulator":
// every emitter call reports its net push/pop through these, which
// track the current unit's live height and raise Stacksize as a
// high-water mark.

func (g *Generator) stackInc() { g.stackIncN(1) }

func (g *Generator) stackIncN(n int) {
	u := g.cur()
	u.StackLen += uint32(n)
	if u.StackLen > u.Obj.Stacksize {
		u.Obj.Stacksize = u.StackLen
	}
}

// stackDec pops one value off the simulated stack. A pop of an empty
// stack is a compiler bug: it is fatal, per spec.md §4.2 "A pop of an
// empty stack is treated as a compiler bug".
func (g *Generator) stackDec() { g.stackDecN(1) }

func (g *Generator) stackDecN(n int) {
	u := g.cur()
	if n > 0 && u.StackLen < uint32(n) {
		g.Errs.Crash("stackDecN", u.ID, u.StackLen, "the stack size becomes negative")
		return
	}
	u.StackLen -= uint32(n)
}

// crashStackBug reports an invalid final stack size at unit pop
// (spec.md §7 "Internal bug": "invalid final stack size at unit pop").
func (g *Generator) crashStackBug(fn string) {
	u := g.cur()
	g.Errs.Crash(fn, u.ID, u.StackLen, "invalid stack size at unit boundary")
}

// applyNewLocalsFlag sets the "new locals frame" flag bit whenever the
// current unit allocated any fast locals (spec.md §4.7).
func (g *Generator) applyNewLocalsFlag() {
	obj := g.curObj()
	if len(obj.Varnames) > 0 {
		obj.Flags |= codeobj.FlagNewLocals
	}
}
