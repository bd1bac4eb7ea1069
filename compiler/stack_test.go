package compiler

import "testing"

func TestStackIncRaisesStacksizeHighWaterMark(t *testing.T) {
	g := newTestGenerator()
	g.stackInc()
	g.stackInc()
	g.stackDec()
	if g.cur().StackLen != 1 {
		t.Fatalf("StackLen = %d, want 1", g.cur().StackLen)
	}
	if g.curObj().Stacksize != 2 {
		t.Errorf("Stacksize = %d, want 2 (high-water mark, not current height)", g.curObj().Stacksize)
	}
}

func TestStackDecNPopsMultiple(t *testing.T) {
	g := newTestGenerator()
	g.stackIncN(3)
	g.stackDecN(2)
	if g.cur().StackLen != 1 {
		t.Fatalf("StackLen = %d, want 1", g.cur().StackLen)
	}
}

func TestStackDecOnEmptyStackCrashesInDebug(t *testing.T) {
	g := newTestGenerator()
	defer func() {
		if recover() == nil {
			t.Fatal("popping an empty simulated stack should crash in debug mode")
		}
	}()
	g.stackDec()
}

func TestApplyNewLocalsFlagSetOnlyWhenVarnamesPresent(t *testing.T) {
	g := newTestGenerator()
	g.applyNewLocalsFlag()
	if g.curObj().Flags != 0 {
		t.Errorf("Flags = %#x, want 0 with no varnames", g.curObj().Flags)
	}

	g.pushUnit([]string{"x"}, "f", 1)
	g.applyNewLocalsFlag()
	if g.curObj().Flags == 0 {
		t.Error("Flags should have the new-locals bit set once Varnames is non-empty")
	}
}
