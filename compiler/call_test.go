package compiler

import (
	"testing"

	"github.com/sstadick/erg/hir"
)

func TestIntrinsicHandlersCoverAllSpelledNames(t *testing.T) {
	want := []string{"assert", "discard", "for", "for!", "if", "if!", "match", "match!"}
	for _, name := range want {
		if _, ok := intrinsicHandlers[name]; !ok {
			t.Errorf("intrinsicHandlers missing entry for %q", name)
		}
	}
}

func TestLowerCallNameDispatchesIntrinsicWithoutEmittingACallOpcode(t *testing.T) {
	g := newTestGenerator()
	loc := hir.Location{Line: 1}
	args := hir.NewArgs(hir.Arg{Expr: hir.NewLit(loc, hir.BoolLit(true))})

	g.lowerCallName(loc, "assert", args)

	if containsOp(g.curObj().Code, opCALL_FUNCTION) {
		t.Error("an intrinsic call must never fall through to a real CALL_FUNCTION")
	}
	if !containsOp(g.curObj().Code, opRAISE_VARARGS) {
		t.Error("expected the assert intrinsic's own bytecode shape")
	}
}

func TestLowerCallNameOrdinaryCallEmitsCallFunction(t *testing.T) {
	g := newTestGenerator()
	loc := hir.Location{Line: 1}
	args := hir.NewArgs(hir.Arg{Expr: hir.NewLit(loc, hir.IntLit(1))})

	g.lowerCallName(loc, "abs", args)

	if !containsOp(g.curObj().Code, opCALL_FUNCTION) {
		t.Error("a non-intrinsic call should emit CALL_FUNCTION")
	}
	if g.cur().StackLen != 1 {
		t.Errorf("StackLen = %d, want 1 (callee + 1 arg collapse to 1 result)", g.cur().StackLen)
	}
}

func TestLowerArgsPositionalThenKeywordReturnsKeywordNamesInOrder(t *testing.T) {
	g := newTestGenerator()
	loc := hir.Location{Line: 1}
	args := hir.NewArgs(
		hir.Arg{Expr: hir.NewLit(loc, hir.IntLit(1))},
		hir.Arg{Expr: hir.NewLit(loc, hir.IntLit(2)), Keyword: "y"},
		hir.Arg{Expr: hir.NewLit(loc, hir.IntLit(3)), Keyword: "z"},
	)

	kws := g.lowerArgsPositionalThenKeyword(args)

	if len(kws) != 2 || kws[0] != "y" || kws[1] != "z" {
		t.Fatalf("kws = %v, want [y z]", kws)
	}
	if g.cur().StackLen != 3 {
		t.Errorf("StackLen = %d, want 3 (every argument value pushed)", g.cur().StackLen)
	}
}

func TestKwTupleJoinsNamesWithComma(t *testing.T) {
	v := kwTuple([]string{"a", "b"})
	if v.String() != "a,b" {
		t.Errorf("kwTuple([a b]).String() = %q, want a,b", v.String())
	}
}
