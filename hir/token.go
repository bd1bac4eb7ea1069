package hir

// TokenKind identifies the operator spelled at a unary or binary op
// node. Only the kinds the generator's lowerer understands are given a
// real opcode mapping; everything else falls through to a "feature not
// implemented" diagnostic (spec.md §4.6).
type TokenKind int

const (
	// unary
	PrePlus TokenKind = iota
	PreMinus
	Mutate // the `!` sigil as a prefix operator

	// binary arithmetic
	Plus
	Minus
	Star
	Slash
	Pow
	Mod
	AndOp
	OrOp

	// binary comparison
	Less
	LessEq
	DblEq
	NotEq
	Gre
	GreEq

	// range sugar (erg interval operators, desugar to range(l, r))
	LeftOpen  // (l, r]
	RightOpen // [l, r)
	Closed    // [l, r]
	Open      // (l, r)
)
