package compiler

import (
	"os"

	"github.com/sstadick/erg/opcode"
	"github.com/sstadick/erg/value"
)

// Short local aliases for the opcodes this package emits, mirroring
// codegen.rs's `use Opcode::*;` so lowering code reads as a flat
// instruction sequence rather than opcode.LOAD_CONST everywhere.
const (
	opNOP                  = opcode.NOP
	opPOP_TOP              = opcode.POP_TOP
	opDUP_TOP              = opcode.DUP_TOP
	opLOAD_CONST           = opcode.LOAD_CONST
	opLOAD_NAME            = opcode.LOAD_NAME
	opLOAD_FAST            = opcode.LOAD_FAST
	opLOAD_GLOBAL          = opcode.LOAD_GLOBAL
	opLOAD_DEREF           = opcode.LOAD_DEREF
	opLOAD_CLOSURE         = opcode.LOAD_CLOSURE
	opLOAD_ATTR            = opcode.LOAD_ATTR
	opLOAD_METHOD          = opcode.LOAD_METHOD
	opLOAD_BUILD_CLASS     = opcode.LOAD_BUILD_CLASS
	opLOAD_ASSERTION_ERROR = opcode.LOAD_ASSERTION_ERROR
	opSTORE_NAME           = opcode.STORE_NAME
	opSTORE_FAST           = opcode.STORE_FAST
	opSTORE_GLOBAL         = opcode.STORE_GLOBAL
	opSTORE_DEREF          = opcode.STORE_DEREF
	opSTORE_ATTR           = opcode.STORE_ATTR
	opSTORE_FAST_IMMUT     = opcode.STORE_FAST_IMMUT
	opUNPACK_SEQUENCE      = opcode.UNPACK_SEQUENCE
	opBUILD_LIST           = opcode.BUILD_LIST
	opBUILD_TUPLE          = opcode.BUILD_TUPLE
	opUNARY_POSITIVE       = opcode.UNARY_POSITIVE
	opUNARY_NEGATIVE       = opcode.UNARY_NEGATIVE
	opBINARY_ADD           = opcode.BINARY_ADD
	opBINARY_SUBTRACT      = opcode.BINARY_SUBTRACT
	opBINARY_MULTIPLY      = opcode.BINARY_MULTIPLY
	opBINARY_TRUE_DIVIDE   = opcode.BINARY_TRUE_DIVIDE
	opBINARY_MODULO        = opcode.BINARY_MODULO
	opBINARY_POWER         = opcode.BINARY_POWER
	opBINARY_AND           = opcode.BINARY_AND
	opBINARY_OR            = opcode.BINARY_OR
	opCOMPARE_OP           = opcode.COMPARE_OP
	opCALL_FUNCTION        = opcode.CALL_FUNCTION
	opCALL_FUNCTION_KW     = opcode.CALL_FUNCTION_KW
	opCALL_METHOD          = opcode.CALL_METHOD
	opMAKE_FUNCTION        = opcode.MAKE_FUNCTION
	opGET_ITER             = opcode.GET_ITER
	opFOR_ITER             = opcode.FOR_ITER
	opJUMP_FORWARD         = opcode.JUMP_FORWARD
	opJUMP_ABSOLUTE        = opcode.JUMP_ABSOLUTE
	opPOP_JUMP_IF_FALSE    = opcode.POP_JUMP_IF_FALSE
	opPOP_JUMP_IF_TRUE     = opcode.POP_JUMP_IF_TRUE
	opMATCH_SEQUENCE       = opcode.MATCH_SEQUENCE
	opGET_LEN              = opcode.GET_LEN
	opRETURN_VALUE         = opcode.RETURN_VALUE
	opRAISE_VARARGS        = opcode.RAISE_VARARGS
	opNOT_IMPLEMENTED      = opcode.NOT_IMPLEMENTED
)

var vNil = value.Nil

// errOut is where a fatal diagnostic flush writes before the process
// exits or panics.
var errOut = os.Stderr
