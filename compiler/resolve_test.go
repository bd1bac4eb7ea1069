package compiler

import (
	"testing"

	"github.com/sstadick/erg/codeobj"
	"github.com/sstadick/erg/config"
)

func newTestGenerator() *Generator {
	g := New(config.Config{Input: config.Input{EnclosedName: "t.er"}, Debug: true})
	g.unitSize++
	g.units.Push(&codeobj.CodeUnit{
		ID:         g.unitSize,
		Obj:        codeobj.New(nil, "t.er", "<module>", 1),
		PrevLineno: 1,
	})
	return g
}

func TestRegisterNameAtToplevelIsLocal(t *testing.T) {
	g := newTestGenerator()
	name := g.registerName("x")
	if name.Kind != Local {
		t.Fatalf("Kind = %v, want Local", name.Kind)
	}
	if g.curObj().Names[name.Index] != "x" {
		t.Errorf("Names[%d] = %q, want x", name.Index, g.curObj().Names[name.Index])
	}
}

func TestLocalSearchFindsRegisteredName(t *testing.T) {
	g := newTestGenerator()
	g.registerName("x")
	name, ok := g.localSearch("x", NameAccess)
	if !ok || name.Kind != Local {
		t.Fatalf("localSearch(x) = %+v, %v, want Local/true", name, ok)
	}
}

func TestLocalSearchMissReturnsFalse(t *testing.T) {
	g := newTestGenerator()
	if _, ok := g.localSearch("nope", NameAccess); ok {
		t.Fatal("localSearch should report false for an unregistered name")
	}
}

func TestEscapeNameRemapsBuiltinAndEscapesSigils(t *testing.T) {
	g := newTestGenerator()
	if got := g.escapeName("print!"); got != "print" {
		t.Errorf("escapeName(print!) = %q, want print", got)
	}
	if got := g.escapeName("x!"); got != "x__erg_proc__" {
		t.Errorf("escapeName(x!) = %q, want x__erg_proc__", got)
	}
}

func TestRegisterAttrUsesLastDottedSegmentAndRemapTable(t *testing.T) {
	g := newTestGenerator()
	name := g.registerAttr("Array!", "", "xs.push!")
	if g.curObj().Names[name.Index] != "append" {
		t.Errorf("registerAttr remap = %q, want append", g.curObj().Names[name.Index])
	}
}

func TestRegisterAttrPassThroughWhenNoRemapEntry(t *testing.T) {
	g := newTestGenerator()
	name := g.registerAttr("Widget", "", "size")
	if g.curObj().Names[name.Index] != "size" {
		t.Errorf("registerAttr(size) = %q, want size unchanged", g.curObj().Names[name.Index])
	}
}

func TestRecSearchPromotesOuterVarnameToCellvar(t *testing.T) {
	g := newTestGenerator()
	g.pushUnit([]string{"acc"}, "outer", 1)
	outerUnit := g.cur()
	g.pushUnit(nil, "inner", 1)

	kind := g.recSearch("acc")
	if kind != slDeref {
		t.Fatalf("recSearch(acc) = %v, want slDeref", kind)
	}
	if len(outerUnit.Obj.Cellvars) != 1 || outerUnit.Obj.Cellvars[0] != "acc" {
		t.Errorf("outer unit cellvars = %v, want [acc]", outerUnit.Obj.Cellvars)
	}
}

func TestRecSearchUnresolvedNameIsForwardGlobal(t *testing.T) {
	g := newTestGenerator()
	g.pushUnit(nil, "f", 1)
	if kind := g.recSearch("never_defined"); kind != slGlobal {
		t.Errorf("recSearch(never_defined) = %v, want slGlobal", kind)
	}
}

func TestIsLocalDistinguishesNameAccess(t *testing.T) {
	if !NameAccess.IsLocal() {
		t.Error("NameAccess.IsLocal() should be true")
	}
	if AttrAccess.IsLocal() || MethodAccess.IsLocal() {
		t.Error("AttrAccess/MethodAccess.IsLocal() should be false")
	}
}
