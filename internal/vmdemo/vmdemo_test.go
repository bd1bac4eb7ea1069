package vmdemo

import (
	"testing"

	"github.com/sstadick/erg/codeobj"
	"github.com/sstadick/erg/opcode"
	"github.com/sstadick/erg/value"
)

func mustRun(t *testing.T, obj *codeobj.CodeObj) value.Value {
	t.Helper()
	result, err := New().Run(obj, nil)
	if err != nil {
		t.Fatalf("Run returned an error: %v", err)
	}
	return result
}

func TestRunArithmeticAddition(t *testing.T) {
	obj := codeobj.New(nil, "t.er", "<module>", 1)
	obj.Consts = []value.Value{value.Int(5), value.Int(3)}
	obj.Code = []byte{
		byte(opcode.LOAD_CONST), 0,
		byte(opcode.LOAD_CONST), 1,
		byte(opcode.BINARY_ADD), 0,
		byte(opcode.RETURN_VALUE), 0,
	}

	got := mustRun(t, obj)
	if !value.Equal(got, value.Int(8)) {
		t.Errorf("result = %v, want 8", got)
	}
}

func TestRunComparisonTakesTrueBranch(t *testing.T) {
	obj := codeobj.New(nil, "t.er", "<module>", 1)
	obj.Consts = []value.Value{value.Int(3), value.Int(5), value.Str("yes"), value.Str("no")}
	obj.Code = []byte{
		byte(opcode.LOAD_CONST), 0, // 0: push 3
		byte(opcode.LOAD_CONST), 1, // 2: push 5
		byte(opcode.COMPARE_OP), opcode.CmpLT, // 4: 3 < 5 -> true
		byte(opcode.POP_JUMP_IF_FALSE), 6, // 6: else branch at byte 12
		byte(opcode.LOAD_CONST), 2, // 8: push "yes"
		byte(opcode.JUMP_FORWARD), 1, // 10: skip the else branch, land at 14
		byte(opcode.LOAD_CONST), 3, // 12: push "no"
		byte(opcode.RETURN_VALUE), 0, // 14
	}

	got := mustRun(t, obj)
	if !value.Equal(got, value.Str("yes")) {
		t.Errorf("result = %v, want yes", got)
	}
}

func TestRunComparisonTakesFalseBranch(t *testing.T) {
	obj := codeobj.New(nil, "t.er", "<module>", 1)
	obj.Consts = []value.Value{value.Int(9), value.Int(5), value.Str("yes"), value.Str("no")}
	obj.Code = []byte{
		byte(opcode.LOAD_CONST), 0,
		byte(opcode.LOAD_CONST), 1,
		byte(opcode.COMPARE_OP), opcode.CmpLT, // 9 < 5 -> false
		byte(opcode.POP_JUMP_IF_FALSE), 6,
		byte(opcode.LOAD_CONST), 2,
		byte(opcode.JUMP_FORWARD), 1,
		byte(opcode.LOAD_CONST), 3,
		byte(opcode.RETURN_VALUE), 0,
	}

	got := mustRun(t, obj)
	if !value.Equal(got, value.Str("no")) {
		t.Errorf("result = %v, want no", got)
	}
}

// TestRunForLoopSumsListElements builds [1, 2, 3], then a GET_ITER/
// FOR_ITER loop accumulating into the "acc" fast local, the same
// iterator protocol the compiler package's lowerFor emits.
func TestRunForLoopSumsListElements(t *testing.T) {
	obj := codeobj.New([]string{"acc", "i"}, "t.er", "<module>", 1)
	obj.Consts = []value.Value{value.Int(0), value.Int(1), value.Int(2), value.Int(3)}
	obj.Code = []byte{
		byte(opcode.LOAD_CONST), 0, // 0: push 0
		byte(opcode.STORE_FAST), 0, // 2: acc = 0
		byte(opcode.LOAD_CONST), 1, // 4: push 1
		byte(opcode.LOAD_CONST), 2, // 6: push 2
		byte(opcode.LOAD_CONST), 3, // 8: push 3
		byte(opcode.BUILD_LIST), 3, // 10: [1, 2, 3]
		byte(opcode.GET_ITER), 0, // 12
		byte(opcode.FOR_ITER), 6, // 14: on exhaustion jump to byte 28
		byte(opcode.STORE_FAST), 1, // 16: i = <next>
		byte(opcode.LOAD_FAST), 0, // 18: acc
		byte(opcode.LOAD_FAST), 1, // 20: i
		byte(opcode.BINARY_ADD), 0, // 22
		byte(opcode.STORE_FAST), 0, // 24: acc = acc + i
		byte(opcode.JUMP_ABSOLUTE), 7, // 26: back to byte 14
		byte(opcode.LOAD_FAST), 0, // 28: acc
		byte(opcode.RETURN_VALUE), 0, // 30
	}

	got := mustRun(t, obj)
	if !value.Equal(got, value.Int(6)) {
		t.Errorf("result = %v, want 6 (1+2+3)", got)
	}
}

func TestRunCallsBuiltinLen(t *testing.T) {
	obj := codeobj.New(nil, "t.er", "<module>", 1)
	obj.Consts = []value.Value{value.Str("len"), value.Int(10), value.Int(20)}
	obj.Code = []byte{
		byte(opcode.LOAD_CONST), 0, // callee "len"
		byte(opcode.LOAD_CONST), 1,
		byte(opcode.LOAD_CONST), 2,
		byte(opcode.BUILD_LIST), 2,
		byte(opcode.CALL_FUNCTION), 1,
		byte(opcode.RETURN_VALUE), 0,
	}

	got := mustRun(t, obj)
	if !value.Equal(got, value.Int(2)) {
		t.Errorf("result = %v, want 2", got)
	}
}

func TestRunUnsupportedOpcodeReturnsError(t *testing.T) {
	obj := codeobj.New(nil, "t.er", "<module>", 1)
	obj.Code = []byte{byte(opcode.LOAD_ATTR), 0}

	if _, err := New().Run(obj, nil); err == nil {
		t.Fatal("expected an error for an opcode this reference executor does not implement")
	}
}

func TestRunGetIterOnNonListErrors(t *testing.T) {
	obj := codeobj.New(nil, "t.er", "<module>", 1)
	obj.Consts = []value.Value{value.Int(1)}
	obj.Code = []byte{
		byte(opcode.LOAD_CONST), 0,
		byte(opcode.GET_ITER), 0,
		byte(opcode.RETURN_VALUE), 0,
	}

	if _, err := New().Run(obj, nil); err == nil {
		t.Fatal("expected an error iterating a non-list value")
	}
}

func TestRunAssertionFailureRaisesError(t *testing.T) {
	obj := codeobj.New(nil, "t.er", "<module>", 1)
	obj.Consts = []value.Value{value.Str("AssertionError")}
	obj.Code = []byte{
		byte(opcode.LOAD_CONST), 0,
		byte(opcode.RAISE_VARARGS), 1,
	}

	if _, err := New().Run(obj, nil); err == nil {
		t.Fatal("expected RAISE_VARARGS to surface as an error")
	}
}
