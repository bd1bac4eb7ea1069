// Package hir defines the typed high-level intermediate representation
// the code generator consumes. It is intentionally minimal: just enough
// structure to drive the lowering rules in spec.md §4, with no parsing,
// resolution, or type-checking logic of its own — those live upstream,
// in the external collaborator this core never imports.
package hir

// Location is a source span, carried on every HIR node so diagnostics
// can point back at the input.
type Location struct {
	Line, Col int
}

// Module is the root of a lowered program: a flat sequence of
// top-level expressions.
type Module struct {
	Exprs []Expr
}

// Expr is any lowerable HIR node. LnBegin reports the first source
// line the node covers, consulted by the line-number mapper (spec.md
// §4.3) every time the dispatcher steps into a new expression.
type Expr interface {
	LnBegin() int
	Loc() Location
}

type base struct {
	L Location
}

func (b base) LnBegin() int { return b.L.Line }
func (b base) Loc() Location { return b.L }

// Lit is a literal constant (int, float, string, bool, nil).
type Lit struct {
	base
	Data LitValue
}

// LitValue is the closed set of literal payloads a Lit node carries.
type LitValue interface{ isLitValue() }

type (
	IntLit   int64
	FloatLit float64
	StrLit   string
	BoolLit  bool
	NilLit   struct{}
)

func (IntLit) isLitValue() {}
func (FloatLit) isLitValue() {}
func (StrLit) isLitValue() {}
func (BoolLit) isLitValue() {}
func (NilLit) isLitValue() {}

// Local is a bare name reference, e.g. `x`.
type Local struct {
	base
	Name string
}

// Attr is an attribute/method access, e.g. `obj.field`. Class and
// UniqObjName drive the builtin-remap table (spec.md §4.1, §6); UniqObjName
// is set only when Obj is a uniquely-named singleton such as an imported
// module (`random.randint!`).
type Attr struct {
	base
	Obj         Expr
	Name        string
	Class       string
	UniqObjName string // "" if none
}

// UnaryOp is a prefix operator applied to Expr, e.g. `-x`.
type UnaryOp struct {
	base
	Op       TokenKind
	Expr     Expr
	OperandTypeCode uint8
}

// BinOp is an infix operator applied to Lhs and Rhs.
type BinOp struct {
	base
	Op            TokenKind
	Lhs, Rhs      Expr
	LhsT, RhsT    string // static type names, used to compute TypePair
}

// Arg is one positional or keyword call argument.
type Arg struct {
	Expr    Expr
	Keyword string // "" for a positional argument
}

// Args is an ordered list of call arguments; positional arguments
// precede keyword ones in source order, matching the front-end's
// convention (mirrored from erg_parser::ast::Args).
type Args struct {
	items []Arg
}

func NewArgs(items ...Arg) *Args { return &Args{items: append([]Arg(nil), items...)} }

func (a *Args) Len() int { return len(a.items) }

// Remove removes and returns the argument at position 0, panicking if
// Args is empty — callers only call it after checking Len/TryRemove.
func (a *Args) Remove() Arg {
	arg := a.items[0]
	a.items = a.items[1:]
	return arg
}

// TryRemove removes and returns the argument at position 0, or
// (Arg{}, false) if Args is empty.
func (a *Args) TryRemove() (Arg, bool) {
	if len(a.items) == 0 {
		return Arg{}, false
	}
	return a.Remove(), true
}

// TryRemovePos removes and returns the next positional (non-keyword)
// argument from the front, or (Arg{}, false) if the next argument is a
// keyword argument or there are none left.
func (a *Args) TryRemovePos() (Arg, bool) {
	if len(a.items) == 0 || a.items[0].Keyword != "" {
		return Arg{}, false
	}
	return a.Remove(), true
}

// TryRemoveKw removes and returns the next keyword argument from the
// front, or (Arg{}, false) if the next argument is positional or there
// are none left.
func (a *Args) TryRemoveKw() (Arg, bool) {
	if len(a.items) == 0 || a.items[0].Keyword == "" {
		return Arg{}, false
	}
	return a.Remove(), true
}

// KwLen reports how many keyword arguments remain.
func (a *Args) KwLen() int {
	n := 0
	for _, it := range a.items {
		if it.Keyword != "" {
			n++
		}
	}
	return n
}

// Call is a function, method, or intrinsic call: `f(args...)`.
type Call struct {
	base
	Callee Expr
	Args   *Args
}

// Array is an array literal: `[e1, e2, ...]`.
type Array struct {
	base
	Elems []Expr
}

// Param is one formal parameter. Name is empty (or "_") for a nameless
// parameter; the generator substitutes "_" for an empty Name (spec.md
// §4.5 "_ for nameless"). Pat carries the parameter's full
// pattern when it is more than a bare name binding — a match arm's
// lambda parameter can be a literal or an array pattern, mirroring
// erg_parser::ast::Param's own `pat` field (codegen.rs:673 reads
// `lambda.params.non_defaults.remove(0).pat`). Pat is nil for an
// ordinary name (or nameless "_") parameter, in which case the pattern
// is derived from Name.
type Param struct {
	Name    string
	Default bool
	Pat     ParamPattern
}

// Params splits formal parameters into non-default and default groups,
// matching erg_parser::ast::Params; gen_param_names walks non-defaults
// then defaults (spec.md §4.5).
type Params struct {
	NonDefaults []Param
	Defaults    []Param
}

func (p Params) Len() int { return len(p.NonDefaults) + len(p.Defaults) }

// Lambda is an anonymous function: `params -> body`.
type Lambda struct {
	base
	Params Params
	Body   []Expr
}

// VarPattern is the left-hand side of a variable definition.
type VarPattern interface{ isVarPattern() }

type VarName string
type VarWildcard struct{} // `_`
type VarArrayPattern []VarPattern

func (VarName) isVarPattern() {}
func (VarWildcard) isVarPattern() {}
func (VarArrayPattern) isVarPattern() {}

// DefOp distinguishes a plain definition (`=`) from other assignment
// operator categories the generator does not support on patterns
// (spec.md §4.5 "Only the definition operator category is accepted").
type DefOp int

const (
	AssignDef DefOp = iota
	OtherOp
)

// DefBody is the right-hand side of a definition: a block plus, when
// it denotes a monomorphic type, the metaclass-call marker.
type DefBody struct {
	Block  []Expr
	Op     DefOp
	IsType bool
}

// VarSignature is a variable (or type) definition's left-hand side.
type VarSignature struct {
	base
	Pat VarPattern
}

func (v VarSignature) Name() string {
	if n, ok := v.Pat.(VarName); ok {
		return string(n)
	}
	return ""
}

// SubrSignature is a subroutine definition's left-hand side.
type SubrSignature struct {
	base
	Name   string
	Params Params
}

// Def is a variable or subroutine definition.
type Def struct {
	base
	VarSig  *VarSignature
	SubrSig *SubrSignature
	Body    DefBody
}

// ParamPattern is a match-arm pattern (spec.md §4.4 "match").
type ParamPattern interface{ isParamPattern() }

type PatVarName string
type PatLit struct{ Value LitValue }
type PatArray []ParamPattern
type PatOther struct{} // catch-all for unimplemented pattern shapes

func (PatVarName) isParamPattern() {}
func (PatLit) isParamPattern() {}
func (PatArray) isParamPattern() {}
func (PatOther) isParamPattern() {}

// Constructors below attach a Location to each node; they exist so
// call sites read as `hir.NewLit(loc, hir.IntLit(1))` rather than
// requiring every caller to embed `base` by hand.

func NewLit(loc Location, data LitValue) *Lit { return &Lit{base{loc}, data} }
func NewLocal(loc Location, name string) *Local { return &Local{base{loc}, name} }
func NewAttr(loc Location, obj Expr, class, uniqObjName, name string) *Attr {
	return &Attr{base{loc}, obj, name, class, uniqObjName}
}
func NewUnaryOp(loc Location, op TokenKind, operandTypeCode uint8, e Expr) *UnaryOp {
	return &UnaryOp{base{loc}, op, e, operandTypeCode}
}
func NewBinOp(loc Location, op TokenKind, lhs, rhs Expr, lhsT, rhsT string) *BinOp {
	return &BinOp{base{loc}, op, lhs, rhs, lhsT, rhsT}
}
func NewCall(loc Location, callee Expr, args *Args) *Call {
	return &Call{base{loc}, callee, args}
}
func NewArray(loc Location, elems []Expr) *Array {
	return &Array{base{loc}, elems}
}
func NewLambda(loc Location, params Params, body []Expr) *Lambda {
	return &Lambda{base{loc}, params, body}
}
func NewVarDef(loc Location, pat VarPattern, body DefBody) *Def {
	return &Def{base{loc}, &VarSignature{base{loc}, pat}, nil, body}
}
func NewSubrDef(loc Location, name string, params Params, body DefBody) *Def {
	return &Def{base{loc}, nil, &SubrSignature{base{loc}, name, params}, body}
}
