package compiler

import "github.com/sstadick/erg/hir"

// lowerDiscard implements spec.md §4.4 "discard args...": evaluate
// each positional argument then immediately discard it.
func (g *Generator) lowerDiscard(_ hir.Location, args *hir.Args) {
	for {
		arg, ok := args.TryRemove()
		if !ok {
			break
		}
		g.lowerExpr(arg.Expr)
		g.emitPopTop()
	}
}

// lambdaBodyOrExpr lowers a then/else branch that may be a bare
// Lambda (inlined frameless) or any other expression (evaluated
// directly), matching codegen.rs's `match args.remove(0) { Expr::Lambda
// ... other ... }` pattern used throughout the control-flow
// synthesizers.
func (g *Generator) lambdaBodyOrExpr(e hir.Expr) {
	if lam, ok := e.(*hir.Lambda); ok {
		params := g.genParamNames(lam.Params)
		g.lowerFramelessBlock(lam.Body, params)
		return
	}
	g.lowerExpr(e)
}

// lowerIf implements spec.md §4.4 "if cond, then [, else]".
func (g *Generator) lowerIf(loc hir.Location, args *hir.Args) {
	cond, _ := args.TryRemove()
	g.lowerExpr(cond.Expr)

	idxPopJumpIfFalse := g.cur().Lasti
	g.writeInstr(opPOP_JUMP_IF_FALSE)
	g.writeArg(0) // patched below

	then, _ := args.TryRemove()
	g.lambdaBodyOrExpr(then.Expr)

	if els, hasElse := args.TryRemove(); hasElse {
		idxJumpForward := g.cur().Lasti
		g.writeInstr(opJUMP_FORWARD)
		g.writeArg(0) // patched below

		idxElseBegin := g.cur().Lasti
		g.editCode(idxPopJumpIfFalse+1, uint8(idxElseBegin/2))

		g.lambdaBodyOrExpr(els.Expr)

		idxEnd := g.cur().Lasti
		g.editCode(idxJumpForward+1, uint8((idxEnd-idxJumpForward-2)/2))

		// Both branches pushed independently into the simulator but only
		// one actually executes at runtime (Open Question (b)).
		g.stackDec()
		g.stackDec()
	} else {
		idxEnd := g.cur().Lasti
		g.editCode(idxPopJumpIfFalse+1, uint8(idxEnd/2))
		g.stackDec()
	}
	_ = loc
}

// lowerFor implements spec.md §4.4 "for iter, body".
func (g *Generator) lowerFor(_ hir.Location, args *hir.Args) {
	iter, _ := args.TryRemove()
	g.lowerExpr(iter.Expr)
	g.writeInstr(opGET_ITER)
	g.writeArg(0)

	idxForIter := g.cur().Lasti
	g.writeInstr(opFOR_ITER)
	g.writeArg(0) // patched below

	bodyArg, _ := args.TryRemove()
	lam := bodyArg.Expr.(*hir.Lambda)
	params := g.genParamNames(lam.Params)
	g.lowerFramelessBlock(lam.Body, params)

	g.writeInstr(opJUMP_ABSOLUTE)
	g.writeArg(uint8(idxForIter / 2))

	idxEnd := g.cur().Lasti
	g.editCode(idxForIter+1, uint8((idxEnd-idxForIter-2)/2))
	g.emitLoadConstValue(vNil)
}

// lowerAssert implements spec.md §4.4 "assert cond [, msg]".
func (g *Generator) lowerAssert(_ hir.Location, args *hir.Args) {
	cond, _ := args.TryRemove()
	g.lowerExpr(cond.Expr)

	popJumpPoint := g.cur().Lasti
	g.writeInstr(opPOP_JUMP_IF_TRUE)
	g.writeArg(0) // patched below
	g.stackDec()

	g.writeInstr(opLOAD_ASSERTION_ERROR)
	g.writeArg(0)

	if msg, ok := args.TryRemove(); ok {
		g.lowerExpr(msg.Expr)
		g.writeInstr(opCALL_FUNCTION)
		g.writeArg(1)
	}
	g.writeInstr(opRAISE_VARARGS)
	g.writeArg(1)

	idx := g.cur().Lasti
	g.editCode(popJumpPoint+1, uint8(idx/2))
}

// lowerMatch implements spec.md §4.4 "match subject, arms...".
func (g *Generator) lowerMatch(_ hir.Location, args *hir.Args) {
	subj, _ := args.TryRemove()
	g.lowerExpr(subj.Expr)

	total := args.Len()
	var absoluteJumpPoints []int

	i := 0
	for {
		arm, ok := args.TryRemove()
		if !ok {
			break
		}
		if total > 1 && args.Len() > 0 {
			g.writeInstr(opDUP_TOP)
			g.writeArg(0)
			g.stackInc()
		}
		lam := arm.Expr.(*hir.Lambda)
		if len(lam.Params.Defaults) > 0 {
			g.Errs.Feature(lam.Loc(), "default values in match expression")
		}
		pat := patternOf(lam.Params)
		popJumpPoints := g.lowerMatchPattern(lam.Loc(), pat)
		g.lowerFramelessBlock(lam.Body, nil)
		for _, pjp := range popJumpPoints {
			idx := g.cur().Lasti + 2
			g.editCode(pjp+1, uint8(idx/2)) // jump to the next arm's POP_TOP
			absoluteJumpPoints = append(absoluteJumpPoints, g.cur().Lasti)
			g.writeInstr(opJUMP_ABSOLUTE) // jump to the end
			g.writeArg(0)                 // patched below
		}
		i++
	}

	lasti := g.cur().Lasti
	for _, ajp := range absoluteJumpPoints {
		g.editCode(ajp+1, uint8(lasti/2))
	}
}

// patternOf extracts the single non-default parameter pattern a match
// arm's unary lambda carries (spec.md §4.4: "a lambda with a single
// parameter per branch for match"), mirroring codegen.rs:673's
// `lambda.params.non_defaults.remove(0).pat`.
func patternOf(params hir.Params) hir.ParamPattern {
	if len(params.NonDefaults) == 0 {
		return hir.PatOther{}
	}
	param := params.NonDefaults[0]
	if param.Pat != nil {
		return param.Pat
	}
	if param.Name == "" || param.Name == "_" {
		return hir.PatOther{}
	}
	return hir.PatVarName(param.Name)
}

// lowerMatchPattern implements spec.md §4.4's per-pattern dispatch and
// returns the list of POP_JUMP_IF_FALSE instruction indices that must
// be patched to the start of the next arm.
func (g *Generator) lowerMatchPattern(loc hir.Location, pat hir.ParamPattern) []int {
	var popJumpPoints []int
	switch p := pat.(type) {
	case hir.PatVarName:
		g.emitStoreInstr(string(p), NameAccess)

	case hir.PatLit:
		g.emitLoadConstValue(litToValue(p.Value))
		g.writeInstr(opCOMPARE_OP)
		g.writeArg(2) // ==
		g.stackDec()
		popJumpPoints = append(popJumpPoints, g.cur().Lasti)
		g.writeInstr(opPOP_JUMP_IF_FALSE)
		g.writeArg(0) // patched by the caller
		g.emitPopTop()
		g.stackDec()

	case hir.PatArray:
		n := len(p)
		g.writeInstr(opMATCH_SEQUENCE)
		g.writeArg(0)
		popJumpPoints = append(popJumpPoints, g.cur().Lasti)
		g.writeInstr(opPOP_JUMP_IF_FALSE)
		g.writeArg(0)
		g.stackDec()

		g.writeInstr(opGET_LEN)
		g.writeArg(0)
		g.emitLoadConstValue(intValue(n))
		g.writeInstr(opCOMPARE_OP)
		g.writeArg(2) // ==
		g.stackDec()
		popJumpPoints = append(popJumpPoints, g.cur().Lasti)
		g.writeInstr(opPOP_JUMP_IF_FALSE)
		g.writeArg(0)
		g.stackDec()

		g.writeInstr(opUNPACK_SEQUENCE)
		g.writeArg(uint8(n))
		g.stackIncN(n - 1)
		for _, elem := range p {
			popJumpPoints = append(popJumpPoints, g.lowerMatchPattern(loc, elem)...)
		}

	default:
		g.Errs.Feature(loc, "unsupported match pattern")
	}
	return popJumpPoints
}
