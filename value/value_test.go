package value

import "testing"

func TestEqualScalars(t *testing.T) {
	cases := []struct {
		name string
		a, b Value
		want bool
	}{
		{"equal ints", Int(3), Int(3), true},
		{"unequal ints", Int(3), Int(4), false},
		{"int vs float never equal", Int(3), Float(3), false},
		{"equal strings", Str("x"), Str("x"), true},
		{"equal bools", Bool(true), Bool(true), true},
		{"nil equals nil", Nil, Nil, true},
		{"nil does not equal zero int", Nil, Int(0), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Equal(c.a, c.b); got != c.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
			}
		})
	}
}

// codeStub stands in for *codeobj.CodeObj without importing codeobj
// (which would create an import cycle back into this package's test).
type codeStub struct{ name string }

func (c codeStub) String() string { return "<code " + c.name + ">" }

func TestEqualExcludesNonEqualerValues(t *testing.T) {
	a := codeStub{"f"}
	b := codeStub{"f"}
	if Equal(a, b) {
		t.Error("Equal should never report true for a Value with no Equaler implementation")
	}
	if Equal(a, a) {
		t.Error("Equal should never report true even for the same non-Equaler value")
	}
}

func TestListString(t *testing.T) {
	l := List{Int(1), Str("a"), Nil}
	got := l.String()
	want := "[1, a, None]"
	if got != want {
		t.Errorf("List.String() = %q, want %q", got, want)
	}
}

func TestBoolString(t *testing.T) {
	if Bool(true).String() != "True" {
		t.Errorf("Bool(true).String() = %q, want True", Bool(true).String())
	}
	if Bool(false).String() != "False" {
		t.Errorf("Bool(false).String() = %q, want False", Bool(false).String())
	}
}
