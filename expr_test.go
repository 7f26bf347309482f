package peggen

import "testing"

func TestConcatFlattening(t *testing.T) {
	a, b, c := Term("A"), Term("B"), Term("C")
	e := Concat(a, Concat(b, c))
	ce, ok := e.(*ConcatExpr)
	if !ok {
		t.Fatalf("Concat() = %T, want *ConcatExpr", e)
	}
	if len(ce.Subs) != 3 {
		t.Fatalf("flattened Concat has %d subs, want 3 (A B C, not A Concat(B,C))", len(ce.Subs))
	}
}

func TestConcatSingletonUnwrapped(t *testing.T) {
	e := Concat(Term("A"))
	if _, ok := e.(*ConcatExpr); ok {
		t.Error("Concat of a single sub should be unwrapped, not wrapped in a ConcatExpr")
	}
}

func TestAltFlattening(t *testing.T) {
	e := Alt(Term("A"), Alt(Term("B"), Term("C")))
	ae, ok := e.(*AltExpr)
	if !ok {
		t.Fatalf("Alt() = %T, want *AltExpr", e)
	}
	if len(ae.Subs) != 3 {
		t.Fatalf("flattened Alt has %d subs, want 3", len(ae.Subs))
	}
}

func TestOnceOrMoreShape(t *testing.T) {
	// (X)+ => Concat(X, Repeat(X, 0)), per §4.4 translation rules — not
	// RepeatExpr{Min: 1} directly.
	e := OnceOrMore(Term("A"))
	ce, ok := e.(*ConcatExpr)
	if !ok {
		t.Fatalf("OnceOrMore() = %T, want *ConcatExpr", e)
	}
	if len(ce.Subs) != 2 {
		t.Fatalf("OnceOrMore() has %d subs, want 2", len(ce.Subs))
	}
	if _, ok := ce.Subs[0].(*TerminalExpr); !ok {
		t.Errorf("first sub = %T, want *TerminalExpr", ce.Subs[0])
	}
	repeat, ok := ce.Subs[1].(*RepeatExpr)
	if !ok {
		t.Fatalf("second sub = %T, want *RepeatExpr", ce.Subs[1])
	}
	if repeat.Min != 0 {
		t.Errorf("second sub Min = %d, want 0", repeat.Min)
	}
}
