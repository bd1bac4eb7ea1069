// Package codeobj defines the bytecode module format this generator
// produces: the CodeObj record, the CodeUnit that wraps one under
// construction, and the UnitStack of nested units (spec.md §3).
package codeobj

import (
	"bytes"
	"fmt"
	"io"

	"github.com/sstadick/erg/opcode"
	"github.com/sstadick/erg/value"
)

// Flags bits on CodeObj.Flags.
const (
	// FlagNewLocals marks a code object that allocates a fresh locals
	// frame on call, set whenever Varnames is non-empty (spec.md §4.7).
	FlagNewLocals uint32 = 1 << iota
)

// CodeObj is a single loadable bytecode unit: one module, subroutine,
// lambda, or type body. It matches the target VM's layout exactly.
type CodeObj struct {
	Code   []byte
	Consts []value.Value

	Names    []string // global / attribute / name table
	Varnames []string // local fast-slot table
	Freevars []string // names bound in an enclosing cell
	Cellvars []string // names this unit exposes to inner scopes

	Stacksize uint32
	Flags     uint32

	Filename    string
	Name        string
	Firstlineno uint32

	Lnotab []byte
}

var _ value.Value = (*CodeObj)(nil)

func (c *CodeObj) String() string {
	return fmt.Sprintf("<code %s at %s:%d>", c.Name, c.Filename, c.Firstlineno)
}

// New creates an empty code object ready for a CodeUnit to emit into.
// varnames seeds the Varnames table with the unit's parameter names, in
// declared order (non-default parameters first, then default ones),
// matching codegen.rs's `CodeObj::empty`.
func New(varnames []string, filename, name string, firstlineno uint32) *CodeObj {
	return &CodeObj{
		Varnames:    append([]string(nil), varnames...),
		Filename:    filename,
		Name:        name,
		Firstlineno: firstlineno,
	}
}

// indexOf returns the index of name in table, or -1.
func indexOf(table []string, name string) int {
	for i, n := range table {
		if n == name {
			return i
		}
	}
	return -1
}

// IndexOfName, IndexOfVarname, IndexOfFreevar, IndexOfCellvar expose the
// equality search the resolver runs before every table insertion
// (invariant (v), spec.md §3).
func (c *CodeObj) IndexOfName(name string) int { return indexOf(c.Names, name) }
func (c *CodeObj) IndexOfVarname(name string) int { return indexOf(c.Varnames, name) }
func (c *CodeObj) IndexOfFreevar(name string) int { return indexOf(c.Freevars, name) }
func (c *CodeObj) IndexOfCellvar(name string) int { return indexOf(c.Cellvars, name) }

// IndexOfConst returns the index of the earliest constant equal to v,
// or -1 if none exists yet (spec.md §3: "any later lookup returns the
// earliest index whose value equals the new constant").
func (c *CodeObj) IndexOfConst(v value.Value) int {
	for i, existing := range c.Consts {
		if value.Equal(existing, v) {
			return i
		}
	}
	return -1
}

// Disassemble writes a human-readable listing of the code object: its
// constant/name/var tables followed by one line per instruction. The
// layout (a one-line header, the tables, then one opcode + operand per
// line prefixed by its byte offset) follows the teacher's
// agoraFuncVM.dump() pretty-printer.
func (c *CodeObj) Disassemble(w io.Writer) {
	fmt.Fprintf(w, "<code %s at %s:%d, stacksize=%d, flags=%#x>\n",
		c.Name, c.Filename, c.Firstlineno, c.Stacksize, c.Flags)
	fmt.Fprintln(w, "  Constants:")
	for i, v := range c.Consts {
		fmt.Fprintf(w, "    [%3d] %s\n", i, v)
	}
	fmt.Fprintln(w, "  Names:", c.Names)
	fmt.Fprintln(w, "  Varnames:", c.Varnames)
	if len(c.Freevars) > 0 {
		fmt.Fprintln(w, "  Freevars:", c.Freevars)
	}
	if len(c.Cellvars) > 0 {
		fmt.Fprintln(w, "  Cellvars:", c.Cellvars)
	}
	fmt.Fprintln(w, "  Instructions:")
	for i := 0; i+1 < len(c.Code); i += 2 {
		op := opcode.Opcode(c.Code[i])
		arg := c.Code[i+1]
		fmt.Fprintf(w, "    [%4d] %-20s %d\n", i, op, arg)
	}
}

// DisassembleString is a convenience wrapper around Disassemble for
// callers that want the listing as a string (used by CodeUnit's
// Display-equivalent).
func (c *CodeObj) DisassembleString() string {
	buf := bytes.NewBuffer(nil)
	c.Disassemble(buf)
	return buf.String()
}

// CodeUnit wraps a CodeObj under construction with the bookkeeping the
// emitter, stack simulator, and line-number mapper all need while it is
// the active unit (spec.md §3 "Code unit").
type CodeUnit struct {
	ID int

	Obj *CodeObj

	StackLen  uint32 // current virtual stack height
	Lasti     int    // index (in Obj.Code) of the next instruction to write
	PrevLasti int
	PrevLineno int
}

// Equal reports whether two units are the same unit (spec.md invariant:
// "Two units are equal if their ids match").
func (u *CodeUnit) Equal(o *CodeUnit) bool {
	return u != nil && o != nil && u.ID == o.ID
}

func (u *CodeUnit) String() string {
	return fmt.Sprintf("CodeUnit{id: %d,\ncode:\n%s}", u.ID, u.Obj.DisassembleString())
}

// UnitStack is a strictly-nested LIFO sequence of code units; the top
// is always the current emission target and the bottom is always the
// module unit (spec.md §3 "Unit stack").
type UnitStack struct {
	units []*CodeUnit
}

func (s *UnitStack) Push(u *CodeUnit) { s.units = append(s.units, u) }

// Pop removes and returns the top unit. It panics if the stack is
// empty: popping more units than were pushed is a generator bug, not a
// recoverable condition (spec.md §5 "each push is paired with exactly
// one pop").
func (s *UnitStack) Pop() *CodeUnit {
	n := len(s.units)
	u := s.units[n-1]
	s.units = s.units[:n-1]
	return u
}

func (s *UnitStack) Top() *CodeUnit { return s.units[len(s.units)-1] }
func (s *UnitStack) Bottom() *CodeUnit { return s.units[0] }
func (s *UnitStack) Len() int { return len(s.units) }
func (s *UnitStack) Empty() bool { return len(s.units) == 0 }

// IsTop reports whether u is the current (top) unit.
func (s *UnitStack) IsTop(u *CodeUnit) bool { return u.Equal(s.Top()) }

// IsToplevel reports whether u is the module (bottom) unit.
func (s *UnitStack) IsToplevel(u *CodeUnit) bool { return u.Equal(s.Bottom()) }

// Enclosing iterates units from innermost to outermost, skipping the
// current (top) unit — the search order rec_search uses in
// codegen.rs (spec.md §4.1 "Recursive search").
func (s *UnitStack) Enclosing(yield func(u *CodeUnit, isToplevel bool) bool) {
	for i := len(s.units) - 2; i >= 0; i-- {
		if !yield(s.units[i], i == 0) {
			return
		}
	}
}
