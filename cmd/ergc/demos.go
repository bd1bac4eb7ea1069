package main

import (
	"fmt"

	"github.com/sstadick/erg/hir"
)

// demos holds the canned HIR modules ergc can compile. The module has
// no lexer or parser of its own (hir's own package doc notes the
// front end "lives upstream, in the external collaborator this core
// never imports"), so the CLI ships a small fixed set of programs to
// exercise the generator end to end.
var demos = map[string]func() hir.Module{
	"sum-range": sumRangeDemo,
	"if-else":   ifElseDemo,
	"factorial": factorialDemo,
}

func demoNames() []string {
	names := make([]string, 0, len(demos))
	for n := range demos {
		names = append(names, n)
	}
	return names
}

func loc(line int) hir.Location { return hir.Location{Line: line, Col: 1} }

// sumRangeDemo builds: for 0..<10, i -> acc = acc + i  (conceptually;
// expressed here as a direct call to the `for` intrinsic over a
// lambda, followed by a trailing reference to `acc`).
func sumRangeDemo() hir.Module {
	rangeCall := hir.NewBinOp(loc(1), hir.RightOpen,
		hir.NewLit(loc(1), hir.IntLit(0)),
		hir.NewLit(loc(1), hir.IntLit(10)),
		"Int", "Int")

	body := hir.NewBinOp(loc(1), hir.Plus,
		hir.NewLocal(loc(1), "acc"),
		hir.NewLocal(loc(1), "i"),
		"Int", "Int")
	loopBody := hir.NewLambda(loc(1), hir.Params{
		NonDefaults: []hir.Param{{Name: "i"}},
	}, []hir.Expr{
		hir.NewVarDef(loc(1), hir.VarName("acc"), hir.DefBody{
			Block: []hir.Expr{body},
			Op:    hir.AssignDef,
		}),
	})

	forCall := hir.NewCall(loc(1), hir.NewLocal(loc(1), "for"),
		hir.NewArgs(hir.Arg{Expr: rangeCall}, hir.Arg{Expr: loopBody}))

	return hir.Module{Exprs: []hir.Expr{
		hir.NewVarDef(loc(1), hir.VarName("acc"), hir.DefBody{
			Block: []hir.Expr{hir.NewLit(loc(1), hir.IntLit(0))},
			Op:    hir.AssignDef,
		}),
		forCall,
		hir.NewLocal(loc(1), "acc"),
	}}
}

// ifElseDemo builds: if x > 5, "big", "small" for a fixed x.
func ifElseDemo() hir.Module {
	cond := hir.NewBinOp(loc(1), hir.Gre,
		hir.NewLocal(loc(1), "x"),
		hir.NewLit(loc(1), hir.IntLit(5)),
		"Int", "Int")
	ifCall := hir.NewCall(loc(1), hir.NewLocal(loc(1), "if"),
		hir.NewArgs(
			hir.Arg{Expr: cond},
			hir.Arg{Expr: hir.NewLit(loc(1), hir.StrLit("big"))},
			hir.Arg{Expr: hir.NewLit(loc(1), hir.StrLit("small"))},
		))
	return hir.Module{Exprs: []hir.Expr{
		hir.NewVarDef(loc(1), hir.VarName("x"), hir.DefBody{
			Block: []hir.Expr{hir.NewLit(loc(1), hir.IntLit(7))},
			Op:    hir.AssignDef,
		}),
		ifCall,
	}}
}

// factorialDemo builds a recursive subroutine `fact n = if n < 2, 1, n * fact(n - 1)`
// followed by a call `fact(5)`.
func factorialDemo() hir.Module {
	cond := hir.NewBinOp(loc(1), hir.Less,
		hir.NewLocal(loc(1), "n"),
		hir.NewLit(loc(1), hir.IntLit(2)),
		"Int", "Int")
	recurse := hir.NewBinOp(loc(1), hir.Minus,
		hir.NewLocal(loc(1), "n"),
		hir.NewLit(loc(1), hir.IntLit(1)),
		"Int", "Int")
	recCall := hir.NewCall(loc(1), hir.NewLocal(loc(1), "fact"), hir.NewArgs(hir.Arg{Expr: recurse}))
	mulRec := hir.NewBinOp(loc(1), hir.Star,
		hir.NewLocal(loc(1), "n"),
		recCall, "Int", "Int")
	ifCall := hir.NewCall(loc(1), hir.NewLocal(loc(1), "if"),
		hir.NewArgs(
			hir.Arg{Expr: cond},
			hir.Arg{Expr: hir.NewLit(loc(1), hir.IntLit(1))},
			hir.Arg{Expr: mulRec},
		))

	factDef := hir.NewSubrDef(loc(1), "fact", hir.Params{
		NonDefaults: []hir.Param{{Name: "n"}},
	}, hir.DefBody{Block: []hir.Expr{ifCall}})

	call := hir.NewCall(loc(1), hir.NewLocal(loc(1), "fact"),
		hir.NewArgs(hir.Arg{Expr: hir.NewLit(loc(1), hir.IntLit(5))}))

	return hir.Module{Exprs: []hir.Expr{factDef, call}}
}

func demoUsageError(name string) error {
	return fmt.Errorf("unknown demo %q, available: %v", name, demoNames())
}
