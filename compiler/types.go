package compiler

// typeCode assigns a small numeric code to each static type name the
// front-end may attach to a binary/unary operand, mirroring
// erg_common::ty::TypeCode. Unrecognized type names fall back to a
// shared "Obj" code: arithmetic on them still emits a BINARY_* opcode,
// just with a generic operand-type argument byte.
var typeCodes = map[string]uint8{
	"Int":   0,
	"Nat":   1,
	"Float": 2,
	"Bool":  3,
	"Str":   4,
	"Obj":   5,
}

func typeCode(name string) uint8 {
	if c, ok := typeCodes[name]; ok {
		return c
	}
	return typeCodes["Obj"]
}

// numTypeCodes is the width used to pack a TypePair into one byte;
// 6 type codes fit in a 3-bit field each, comfortably inside a byte
// (erg_common::ty::TypePair does the analogous packing for CPython's
// real type-pair dispatch table).
const numTypeCodes = 8

// typePair packs the two operand type codes of a binary operation into
// a single argument byte, matching spec.md §4.6 "the type-pair code for
// arithmetic".
func typePair(lhsT, rhsT string) uint8 {
	return typeCode(lhsT)*numTypeCodes + typeCode(rhsT)
}
