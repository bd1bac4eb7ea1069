package compiler

import (
	"github.com/sstadick/erg/opcode"
	"github.com/sstadick/erg/value"
)

// writeInstr appends an opcode byte to the current unit's code buffer
// and advances Lasti (spec.md §2 "Instruction emitter").
func (g *Generator) writeInstr(op opcode.Opcode) {
	u := g.cur()
	u.Obj.Code = append(u.Obj.Code, byte(op))
	u.Lasti++
}

// writeArg appends the argument byte that follows the most recently
// written opcode.
func (g *Generator) writeArg(arg uint8) {
	u := g.cur()
	u.Obj.Code = append(u.Obj.Code, arg)
	u.Lasti++
}

// editCode patches a single previously-written byte at index idx, used
// for back-patching jump arguments (spec.md §4.4) and for rewriting the
// REPL print load's opcode byte to NOP.
func (g *Generator) editCode(idx int, arg uint8) {
	g.curObj().Code[idx] = arg
}

// emitLoadConstValue emits LOAD_CONST for v, deduplicating against the
// current unit's const table per invariant (v) in spec.md §3.
func (g *Generator) emitLoadConstValue(v value.Value) {
	obj := g.curObj()
	idx := obj.IndexOfConst(v)
	if idx < 0 {
		obj.Consts = append(obj.Consts, v)
		idx = len(obj.Consts) - 1
	}
	g.writeInstr(opLOAD_CONST)
	g.writeArg(uint8(idx))
	g.stackInc()
}

// emitPopTop emits POP_TOP and pops the simulated stack.
func (g *Generator) emitPopTop() {
	g.writeInstr(opPOP_TOP)
	g.writeArg(0)
	g.stackDec()
}

// cancelPopTop rolls back the two most recently emitted bytes if they
// are exactly POP_TOP, 0 — restoring a value on the virtual stack so
// the last expression of a block can serve as its return value
// (spec.md §4.7 "cancel pop top primitive").
func (g *Generator) cancelPopTop() {
	obj := g.curObj()
	if len(obj.Code) < 2 {
		return
	}
	lastOpIdx := len(obj.Code) - 2
	if opcode.Opcode(obj.Code[lastOpIdx]) == opPOP_TOP {
		obj.Code = obj.Code[:lastOpIdx]
		g.cur().Lasti -= 2
		g.stackInc()
	}
}

// loadOpcodeFor maps a resolved Name's storage kind to the
// opcode used to load it (spec.md §4.1 "Opcode choice" table, Load
// column).
func loadOpcodeFor(kind NameKind, acc AccessKind) opcode.Opcode {
	switch kind {
	case Fast, FastConst:
		return opLOAD_FAST
	case Global, GlobalConst:
		return opLOAD_GLOBAL
	case Deref, DerefConst:
		return opLOAD_DEREF
	case Local, LocalConst:
		switch acc {
		case AttrAccess:
			return opLOAD_ATTR
		case MethodAccess:
			return opLOAD_METHOD
		default:
			return opLOAD_NAME
		}
	}
	return opNOT_IMPLEMENTED
}

// storeOpcodeFor maps a resolved Name's storage kind to the opcode used
// to store it (spec.md §4.1 "Opcode choice" table, Store column).
func storeOpcodeFor(kind NameKind, acc AccessKind) opcode.Opcode {
	switch kind {
	case Fast:
		return opSTORE_FAST
	case FastConst:
		return opSTORE_FAST_IMMUT
	case Global, GlobalConst:
		return opSTORE_GLOBAL
	case Deref, DerefConst:
		return opSTORE_DEREF
	case Local, LocalConst:
		switch acc {
		case AttrAccess, MethodAccess:
			// methods cannot be overwritten directly; fall back to a
			// plain attribute store (spec.md §4.1 table footnote).
			return opSTORE_ATTR
		default:
			return opSTORE_NAME
		}
	}
	return opNOT_IMPLEMENTED
}

// emitLoadNameInstr resolves name as an ordinary name access and emits
// the appropriate load instruction (spec.md §4.6 "Local accessor").
func (g *Generator) emitLoadNameInstr(rawName string) {
	name, ok := g.localSearch(rawName, NameAccess)
	if !ok {
		name = g.registerName(rawName)
	}
	g.writeInstr(loadOpcodeFor(name.Kind, NameAccess))
	g.writeArg(uint8(name.Index))
	g.stackInc()
}

// emitLoadAttrInstr resolves an attribute access and emits the load.
func (g *Generator) emitLoadAttrInstr(class, uniqObjName, rawName string) {
	name, ok := g.localSearch(rawName, AttrAccess)
	if !ok {
		name = g.registerAttr(class, uniqObjName, rawName)
	}
	g.writeInstr(loadOpcodeFor(name.Kind, AttrAccess))
	g.writeArg(uint8(name.Index))
	// Unlike emitLoadNameInstr, codegen.rs's emit_load_attr_instr does
	// not stack_inc: the receiver object is already on the stack and is
	// replaced in place by the attribute value.
}

// emitLoadMethodInstr resolves a method access and emits the load.
func (g *Generator) emitLoadMethodInstr(class, uniqObjName, rawName string) {
	name, ok := g.localSearch(rawName, MethodAccess)
	if !ok {
		name = g.registerMethod(class, uniqObjName, rawName)
	}
	g.writeInstr(loadOpcodeFor(name.Kind, MethodAccess))
	g.writeArg(uint8(name.Index))
}

// emitStoreInstr resolves name under acc and emits the store.
func (g *Generator) emitStoreInstr(rawName string, acc AccessKind) {
	name, ok := g.localSearch(rawName, acc)
	if !ok {
		name = g.registerName(rawName)
	}
	g.writeInstr(storeOpcodeFor(name.Kind, acc))
	g.writeArg(uint8(name.Index))
	g.stackDec()
}
