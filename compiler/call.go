package compiler

import (
	"github.com/sstadick/erg/hir"
	"github.com/sstadick/erg/value"
)

// intrinsicHandlers maps the callee spellings the compiler recognizes as
// control-flow synthesizers rather than ordinary calls (spec.md §4.4,
// testable property 7 "Intrinsic short-circuit").
var intrinsicHandlers = map[string]func(*Generator, hir.Location, *hir.Args){}

func init() {
	intrinsicHandlers["assert"] = (*Generator).lowerAssert
	intrinsicHandlers["discard"] = (*Generator).lowerDiscard
	intrinsicHandlers["for"] = (*Generator).lowerFor
	intrinsicHandlers["for!"] = (*Generator).lowerFor
	intrinsicHandlers["if"] = (*Generator).lowerIf
	intrinsicHandlers["if!"] = (*Generator).lowerIf
	intrinsicHandlers["match"] = (*Generator).lowerMatch
	intrinsicHandlers["match!"] = (*Generator).lowerMatch
}

// lowerCall implements spec.md §4.6 "Call": dispatch on the shape of
// the callee expression.
func (g *Generator) lowerCall(e *hir.Call) {
	switch callee := e.Callee.(type) {
	case *hir.Local:
		g.lowerCallName(e.Loc(), callee.Name, e.Args)
	case *hir.Attr:
		// TODO: static dispatch mode (Open Question (c) in SPEC_FULL.md);
		// every call site currently takes the dynamic LOAD_METHOD path.
		g.lowerCallMethod(e.Loc(), callee.Obj, callee.Class, callee.UniqObjName, callee.Name, e.Args, false)
	default:
		g.lowerCallCallableObj(callee, e.Args)
	}
}

// lowerCallName implements the non-intrinsic half of spec.md §4.6's
// Call dispatch plus spec.md §4.4's "intrinsic call" routing.
func (g *Generator) lowerCallName(loc hir.Location, name string, args *hir.Args) {
	if handler, ok := intrinsicHandlers[name]; ok {
		handler(g, loc, args)
		return
	}
	g.emitLoadNameInstr(name)
	g.lowerCallTail(args, 1)
}

// lowerCallMethod implements spec.md §4.6's method-call branch:
// dynamic dispatch via LOAD_METHOD/CALL_METHOD, or (reserved for a
// later static-dispatch mode) a direct name load plus CALL_FUNCTION.
func (g *Generator) lowerCallMethod(loc hir.Location, obj hir.Expr, class, uniqObjName, name string, args *hir.Args, isStatic bool) {
	if isStatic {
		g.emitLoadNameInstr(name)
		g.lowerCallTail(args, 1)
		return
	}
	g.lowerExpr(obj)
	g.emitLoadMethodInstr(class, uniqObjName, name)

	argc := args.Len()
	kws := g.lowerArgsPositionalThenKeyword(args)
	if len(kws) > 0 {
		g.emitLoadConstValue(kwTuple(kws))
		g.writeInstr(opCALL_FUNCTION_KW)
	} else {
		g.writeInstr(opCALL_METHOD)
	}
	g.writeArg(uint8(argc))
	kwsc := 0
	if len(kws) > 0 {
		kwsc = 1
	}
	// (1 method) + argc + kwsc -> 1 return value
	g.stackDecN((1 + argc + kwsc) - 1)
}

// lowerCallCallableObj implements spec.md §4.6's final Call branch:
// evaluate an arbitrary callable expression, then CALL_FUNCTION.
func (g *Generator) lowerCallCallableObj(obj hir.Expr, args *hir.Args) {
	g.lowerExpr(obj)
	g.lowerCallTail(args, 1)
}

// lowerCallTail emits argument evaluation plus the CALL_FUNCTION /
// CALL_FUNCTION_KW instruction shared by name calls and callable-object
// calls, where calleeSlots is how many stack slots the callee itself
// occupies (1 for a plain callable).
func (g *Generator) lowerCallTail(args *hir.Args, calleeSlots int) {
	argc := args.Len()
	kws := g.lowerArgsPositionalThenKeyword(args)
	if len(kws) > 0 {
		g.emitLoadConstValue(kwTuple(kws))
		g.writeInstr(opCALL_FUNCTION_KW)
	} else {
		g.writeInstr(opCALL_FUNCTION)
	}
	g.writeArg(uint8(argc))
	kwsc := 0
	if len(kws) > 0 {
		kwsc = 1
	}
	g.stackDecN((calleeSlots + argc + kwsc) - 1)
}

// lowerArgsPositionalThenKeyword lowers every positional argument (in
// order), then every keyword argument, returning the keyword names in
// the order their values were pushed (spec.md §4.6's `emit_call_name`
// argument-splitting loop).
func (g *Generator) lowerArgsPositionalThenKeyword(args *hir.Args) []string {
	var kws []string
	for {
		arg, ok := args.TryRemovePos()
		if !ok {
			break
		}
		g.lowerExpr(arg.Expr)
	}
	for {
		arg, ok := args.TryRemoveKw()
		if !ok {
			break
		}
		kws = append(kws, arg.Keyword)
		g.lowerExpr(arg.Expr)
	}
	return kws
}

func kwTuple(names []string) value.Value {
	// The keyword-name tuple is itself a constant; represented here as
	// a comma-joined Str since this generator's value table has no
	// separate tuple-of-names type (only code objects nest as constants,
	// per SPEC_FULL.md's value module entry).
	s := ""
	for i, n := range names {
		if i > 0 {
			s += ","
		}
		s += n
	}
	return value.Str(s)
}
