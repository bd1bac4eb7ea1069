// Package opcode defines the numeric instruction set of the target
// stack machine: a CPython-family wordcode where every instruction is
// exactly two bytes, an opcode byte followed by an argument byte.
package opcode

import "fmt"

// Opcode identifies a single instruction. Every Opcode is followed by
// exactly one argument byte in the emitted code stream, even when the
// argument is unused (by convention it is written as 0 in that case).
type Opcode uint8

const ( //nolint:revive
	NOP Opcode = iota

	// stack bookkeeping
	POP_TOP
	DUP_TOP

	// loads
	LOAD_CONST
	LOAD_NAME
	LOAD_FAST
	LOAD_GLOBAL
	LOAD_DEREF
	LOAD_CLOSURE
	LOAD_ATTR
	LOAD_METHOD
	LOAD_BUILD_CLASS
	LOAD_ASSERTION_ERROR

	// stores
	STORE_NAME
	STORE_FAST
	STORE_GLOBAL
	STORE_DEREF
	STORE_ATTR
	STORE_FAST_IMMUT // erg-specific: STORE_FAST into an immutable binding

	// sequence / aggregate building
	UNPACK_SEQUENCE
	BUILD_LIST
	BUILD_TUPLE

	// arithmetic / unary
	UNARY_POSITIVE
	UNARY_NEGATIVE
	BINARY_ADD
	BINARY_SUBTRACT
	BINARY_MULTIPLY
	BINARY_TRUE_DIVIDE
	BINARY_MODULO
	BINARY_POWER
	BINARY_AND
	BINARY_OR
	COMPARE_OP

	// calls
	CALL_FUNCTION
	CALL_FUNCTION_KW
	CALL_METHOD
	MAKE_FUNCTION

	// control flow
	GET_ITER
	FOR_ITER
	JUMP_FORWARD
	JUMP_ABSOLUTE
	POP_JUMP_IF_FALSE
	POP_JUMP_IF_TRUE

	// pattern matching
	MATCH_SEQUENCE
	GET_LEN

	// termination / exceptions
	RETURN_VALUE
	RAISE_VARARGS

	// reserved, never emitted by this version of the generator (see
	// SPEC_FULL.md's opcode module note on the `!` mutate token)
	MUTATE

	// placeholder for a feature this generator does not yet lower
	NOT_IMPLEMENTED
)

var names = [...]string{
	NOP:                  "NOP",
	POP_TOP:               "POP_TOP",
	DUP_TOP:               "DUP_TOP",
	LOAD_CONST:            "LOAD_CONST",
	LOAD_NAME:             "LOAD_NAME",
	LOAD_FAST:             "LOAD_FAST",
	LOAD_GLOBAL:           "LOAD_GLOBAL",
	LOAD_DEREF:            "LOAD_DEREF",
	LOAD_CLOSURE:          "LOAD_CLOSURE",
	LOAD_ATTR:             "LOAD_ATTR",
	LOAD_METHOD:           "LOAD_METHOD",
	LOAD_BUILD_CLASS:      "LOAD_BUILD_CLASS",
	LOAD_ASSERTION_ERROR:  "LOAD_ASSERTION_ERROR",
	STORE_NAME:            "STORE_NAME",
	STORE_FAST:            "STORE_FAST",
	STORE_GLOBAL:          "STORE_GLOBAL",
	STORE_DEREF:           "STORE_DEREF",
	STORE_ATTR:            "STORE_ATTR",
	STORE_FAST_IMMUT:      "STORE_FAST_IMMUT",
	UNPACK_SEQUENCE:       "UNPACK_SEQUENCE",
	BUILD_LIST:            "BUILD_LIST",
	BUILD_TUPLE:           "BUILD_TUPLE",
	UNARY_POSITIVE:        "UNARY_POSITIVE",
	UNARY_NEGATIVE:        "UNARY_NEGATIVE",
	BINARY_ADD:            "BINARY_ADD",
	BINARY_SUBTRACT:       "BINARY_SUBTRACT",
	BINARY_MULTIPLY:       "BINARY_MULTIPLY",
	BINARY_TRUE_DIVIDE:    "BINARY_TRUE_DIVIDE",
	BINARY_MODULO:         "BINARY_MODULO",
	BINARY_POWER:          "BINARY_POWER",
	BINARY_AND:            "BINARY_AND",
	BINARY_OR:             "BINARY_OR",
	COMPARE_OP:            "COMPARE_OP",
	CALL_FUNCTION:         "CALL_FUNCTION",
	CALL_FUNCTION_KW:      "CALL_FUNCTION_KW",
	CALL_METHOD:           "CALL_METHOD",
	MAKE_FUNCTION:         "MAKE_FUNCTION",
	GET_ITER:              "GET_ITER",
	FOR_ITER:              "FOR_ITER",
	JUMP_FORWARD:          "JUMP_FORWARD",
	JUMP_ABSOLUTE:         "JUMP_ABSOLUTE",
	POP_JUMP_IF_FALSE:     "POP_JUMP_IF_FALSE",
	POP_JUMP_IF_TRUE:      "POP_JUMP_IF_TRUE",
	MATCH_SEQUENCE:        "MATCH_SEQUENCE",
	GET_LEN:               "GET_LEN",
	RETURN_VALUE:          "RETURN_VALUE",
	RAISE_VARARGS:         "RAISE_VARARGS",
	MUTATE:                "MUTATE",
	NOT_IMPLEMENTED:       "NOT_IMPLEMENTED",
}

func (op Opcode) String() string {
	if int(op) < len(names) && names[op] != "" {
		return names[op]
	}
	return fmt.Sprintf("Opcode(%d)", uint8(op))
}

// MakeFunctionHasClosure is the MAKE_FUNCTION flag bit set when the
// function being built closes over one or more cells (spec §4.5).
const MakeFunctionHasClosure uint8 = 0x08

// Comparison-operator argument codes for COMPARE_OP (spec §4.6).
const (
	CmpLT uint8 = iota
	CmpLE
	CmpEQ
	CmpNE
	CmpGT
	CmpGE
)

// RangeArg is the COMPARE_OP-slot argument byte erg uses for its range
// sugar operators, which desugar to a call to the `range` builtin
// rather than to a real comparison (spec §4.6).
const RangeArg uint8 = 2
