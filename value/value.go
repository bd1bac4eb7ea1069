// Package value defines the closed set of constant values a code
// object's const table may hold: HIR literals plus nested code objects.
package value

import (
	"fmt"
	"strings"
)

// Value is a constant-table entry: an HIR literal, or (from outside
// this package) a nested code object. It is deliberately a thin
// interface rather than a closed sum so that the codeobj package can
// hold *codeobj.CodeObj in a const table without an import cycle; the
// lowerer still switches exhaustively over the concrete HIR-literal
// cases it knows about and treats anything else opaquely.
type Value interface {
	fmt.Stringer
}

// Equaler is implemented by Values that support the equality-based
// dedup the const table requires (invariant (v) in spec.md §3). Code
// objects are intentionally excluded: nested code objects are never
// deduplicated against one another, even if byte-identical.
type Equaler interface {
	Equal(Value) bool
}

type Int int64

func (i Int) String() string { return fmt.Sprintf("%d", int64(i)) }
func (i Int) Equal(o Value) bool {
	j, ok := o.(Int)
	return ok && i == j
}

type Float float64

func (f Float) String() string { return fmt.Sprintf("%g", float64(f)) }
func (f Float) Equal(o Value) bool {
	g, ok := o.(Float)
	return ok && f == g
}

type Str string

func (s Str) String() string { return string(s) }
func (s Str) Equal(o Value) bool {
	t, ok := o.(Str)
	return ok && s == t
}

type Bool bool

func (b Bool) Equal(o Value) bool {
	c, ok := o.(Bool)
	return ok && b == c
}
func (b Bool) String() string {
	if b {
		return "True"
	}
	return "False"
}

type nilType struct{}

func (nilType) String() string { return "None" }
func (nilType) Equal(o Value) bool { _, ok := o.(nilType); return ok }

// Nil is the single constant representing erg's `None`.
var Nil Value = nilType{}

// List is a runtime-only sequence value produced by BUILD_LIST and
// consumed by GET_ITER/UNPACK_SEQUENCE/MATCH_SEQUENCE/GET_LEN. It never
// appears in a code object's const table: array literals are always
// built at runtime, one element at a time, never folded to a constant.
type List []Value

func (l List) String() string {
	parts := make([]string, len(l))
	for i, v := range l {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Equal reports whether a and b are the same constant-table value, per
// the equality rule each Value's Equaler implements. Values that do not
// implement Equaler (i.e. Code) are never considered equal to anything,
// including themselves, matching the "never re-deduplicated" rule in
// SPEC_FULL.md's value module entry.
func Equal(a, b Value) bool {
	ea, ok := a.(Equaler)
	if !ok {
		return false
	}
	return ea.Equal(b)
}
