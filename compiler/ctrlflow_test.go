package compiler

import (
	"testing"

	"github.com/sstadick/erg/hir"
	"github.com/sstadick/erg/opcode"
)

func TestLowerIfWithoutElseLeavesStackBalanced(t *testing.T) {
	g := newTestGenerator()
	loc := hir.Location{Line: 1}
	args := hir.NewArgs(
		hir.Arg{Expr: hir.NewLit(loc, hir.BoolLit(true))},
		hir.Arg{Expr: hir.NewLit(loc, hir.IntLit(1))},
	)
	g.lowerIf(loc, args)

	if g.cur().StackLen != 1 {
		t.Fatalf("StackLen after if-without-else = %d, want 1", g.cur().StackLen)
	}
	if !containsOp(g.curObj().Code, opPOP_JUMP_IF_FALSE) {
		t.Error("expected a POP_JUMP_IF_FALSE in the emitted code")
	}
}

func TestLowerIfWithElseBalancesBothBranches(t *testing.T) {
	g := newTestGenerator()
	loc := hir.Location{Line: 1}
	args := hir.NewArgs(
		hir.Arg{Expr: hir.NewLit(loc, hir.BoolLit(false))},
		hir.Arg{Expr: hir.NewLit(loc, hir.StrLit("big"))},
		hir.Arg{Expr: hir.NewLit(loc, hir.StrLit("small"))},
	)
	g.lowerIf(loc, args)

	if g.cur().StackLen != 1 {
		t.Fatalf("StackLen after if/else = %d, want 1", g.cur().StackLen)
	}
	if !containsOp(g.curObj().Code, opJUMP_FORWARD) {
		t.Error("expected a JUMP_FORWARD jumping past the else branch")
	}
}

func TestLowerForEmitsIterProtocolAndPadsNone(t *testing.T) {
	g := newTestGenerator()
	loc := hir.Location{Line: 1}
	iter := hir.NewArray(loc, []hir.Expr{hir.NewLit(loc, hir.IntLit(1))})
	body := hir.NewLambda(loc, hir.Params{NonDefaults: []hir.Param{{Name: "i"}}}, nil)
	args := hir.NewArgs(hir.Arg{Expr: iter}, hir.Arg{Expr: body})

	g.lowerFor(loc, args)

	code := g.curObj().Code
	if !containsOp(code, opGET_ITER) || !containsOp(code, opFOR_ITER) || !containsOp(code, opJUMP_ABSOLUTE) {
		t.Fatalf("missing iterator protocol opcodes in %v", code)
	}
	if g.cur().StackLen != 1 {
		t.Errorf("StackLen = %d, want 1 (the None pad value)", g.cur().StackLen)
	}
}

func TestLowerAssertWithoutMessage(t *testing.T) {
	g := newTestGenerator()
	loc := hir.Location{Line: 1}
	args := hir.NewArgs(hir.Arg{Expr: hir.NewLit(loc, hir.BoolLit(true))})
	g.lowerAssert(loc, args)

	code := g.curObj().Code
	if !containsOp(code, opLOAD_ASSERTION_ERROR) || !containsOp(code, opRAISE_VARARGS) {
		t.Fatalf("missing assertion-failure opcodes in %v", code)
	}
	if g.cur().StackLen != 0 {
		t.Errorf("StackLen = %d, want 0 (assert never leaves a value on the stack)", g.cur().StackLen)
	}
}

func TestLowerMatchPatternLiteralEmitsCompareAndPatchableJump(t *testing.T) {
	g := newTestGenerator()
	loc := hir.Location{Line: 1}
	// lowerMatchPattern assumes the subject (or its DUP_TOP'd copy) is
	// already sitting on the simulated stack, as lowerMatch guarantees;
	// seed enough height that this standalone call doesn't underflow.
	g.stackIncN(5)
	points := g.lowerMatchPattern(loc, hir.PatLit{Value: hir.IntLit(1)})

	if len(points) != 1 {
		t.Fatalf("lowerMatchPattern(PatLit) returned %d patch points, want 1", len(points))
	}
	if !containsOp(g.curObj().Code, opCOMPARE_OP) || !containsOp(g.curObj().Code, opPOP_JUMP_IF_FALSE) {
		t.Error("expected COMPARE_OP and POP_JUMP_IF_FALSE in a literal pattern's bytecode")
	}
}

func TestLowerMatchPatternArrayUnpacksAndRecurses(t *testing.T) {
	g := newTestGenerator()
	loc := hir.Location{Line: 1}
	g.stackIncN(5)
	points := g.lowerMatchPattern(loc, hir.PatArray{hir.PatVarName("head"), hir.PatVarName("tail")})

	// MATCH_SEQUENCE and the length check each contribute one patch
	// point; the two PatVarName elements contribute none.
	if len(points) != 2 {
		t.Fatalf("lowerMatchPattern(PatArray) returned %d patch points, want 2", len(points))
	}
	code := g.curObj().Code
	if !containsOp(code, opMATCH_SEQUENCE) || !containsOp(code, opGET_LEN) || !containsOp(code, opUNPACK_SEQUENCE) {
		t.Fatalf("missing array-pattern opcodes in %v", code)
	}
}

func TestLowerMatchWithMultipleArmsDuplicatesSubject(t *testing.T) {
	g := newTestGenerator()
	loc := hir.Location{Line: 1}
	subj := hir.NewLit(loc, hir.IntLit(2))
	armA := hir.NewLambda(loc, hir.Params{NonDefaults: []hir.Param{{Name: "a"}}},
		[]hir.Expr{hir.NewLit(loc, hir.StrLit("a"))})
	armB := hir.NewLambda(loc, hir.Params{NonDefaults: []hir.Param{{Name: "b"}}},
		[]hir.Expr{hir.NewLit(loc, hir.StrLit("b"))})

	args := hir.NewArgs(
		hir.Arg{Expr: subj},
		hir.Arg{Expr: armA},
		hir.Arg{Expr: armB},
	)
	g.lowerMatch(loc, args)

	if !containsOp(g.curObj().Code, opDUP_TOP) {
		t.Error("expected DUP_TOP before the non-final arm so the subject survives for the next arm")
	}
}

// TestLowerMatchLiteralArmCompilesToCompareNotNameBinding exercises the
// full match lowering path (patternOf, not a direct lowerMatchPattern
// call) for a literal arm, e.g. `match x, (0 -> "z"), (n -> "nz")`. The
// literal arm's parameter carries an explicit hir.PatLit via Param.Pat,
// so patternOf must return it rather than misreading the arm as a plain
// name binding.
func TestLowerMatchLiteralArmCompilesToCompareNotNameBinding(t *testing.T) {
	g := newTestGenerator()
	loc := hir.Location{Line: 1}
	subj := hir.NewLocal(loc, "x")
	litArm := hir.NewLambda(loc,
		hir.Params{NonDefaults: []hir.Param{{Pat: hir.PatLit{Value: hir.IntLit(0)}}}},
		[]hir.Expr{hir.NewLit(loc, hir.StrLit("z"))})
	nameArm := hir.NewLambda(loc,
		hir.Params{NonDefaults: []hir.Param{{Name: "n"}}},
		[]hir.Expr{hir.NewLit(loc, hir.StrLit("nz"))})

	args := hir.NewArgs(
		hir.Arg{Expr: subj},
		hir.Arg{Expr: litArm},
		hir.Arg{Expr: nameArm},
	)
	g.lowerMatch(loc, args)

	code := g.curObj().Code
	if !containsOp(code, opCOMPARE_OP) || !containsOp(code, opPOP_JUMP_IF_FALSE) {
		t.Fatal("literal match arm must compile to COMPARE_OP/POP_JUMP_IF_FALSE, not a name store")
	}
	for _, n := range g.curObj().Names {
		if n == "0" {
			t.Fatal("the literal arm must never register \"0\" as a bound name")
		}
	}
	if g.cur().StackLen != 1 {
		t.Errorf("StackLen = %d, want 1", g.cur().StackLen)
	}
}

func containsOp(code []byte, op opcode.Opcode) bool {
	for i := 0; i < len(code); i += 2 {
		if opcode.Opcode(code[i]) == op {
			return true
		}
	}
	return false
}
