package compiler

// recordLine implements spec.md §4.3 "Line-number table": called
// before lowering any expression whose start line advances past the
// current unit's PrevLineno, it appends or coalesces an (sd, ld)
// lnotab pair and advances the unit's line-tracking fields.
func (g *Generator) recordLine(line int) {
	u := g.cur()
	if line <= u.PrevLineno {
		return
	}
	sd := u.Lasti - u.PrevLasti
	ld := line - u.PrevLineno
	if ld == 0 {
		// Unreachable by construction (line > PrevLineno implies ld > 0),
		// but codegen.rs treats this branch as a compiler bug rather than
		// assuming it away (Open Question (a) in SPEC_FULL.md).
		g.Errs.Crash("recordLine", u.ID, u.StackLen, "non-positive line delta on a forward step")
		return
	}
	if sd != 0 {
		u.Obj.Lnotab = append(u.Obj.Lnotab, byte(sd), byte(ld))
	} else if len(u.Obj.Lnotab) > 0 {
		// Successive emissions for the same code byte spanning multiple
		// source lines: fold into the previous pair's line delta.
		u.Obj.Lnotab[len(u.Obj.Lnotab)-1] += byte(ld)
	} else {
		// The unit begins with a blank-line gap.
		u.Obj.Lnotab = append(u.Obj.Lnotab, 0, byte(ld))
	}
	u.PrevLineno += ld
	u.PrevLasti = u.Lasti
}
