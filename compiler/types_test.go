package compiler

import "testing"

func TestTypeCodeKnownAndUnknownNames(t *testing.T) {
	if typeCode("Int") != 0 {
		t.Errorf("typeCode(Int) = %d, want 0", typeCode("Int"))
	}
	if typeCode("NoSuchType") != typeCode("Obj") {
		t.Errorf("typeCode(unknown) should fall back to Obj's code")
	}
}

func TestTypePairPacksBothOperandCodes(t *testing.T) {
	got := typePair("Int", "Float")
	want := typeCode("Int")*numTypeCodes + typeCode("Float")
	if got != want {
		t.Errorf("typePair(Int, Float) = %d, want %d", got, want)
	}
	if typePair("Int", "Int") == typePair("Float", "Float") {
		t.Error("distinct operand pairs should pack to distinct bytes")
	}
}
