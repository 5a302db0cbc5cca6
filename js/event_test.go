package js

import (
	"slices"
	"testing"
)

func TestRecorderStrings(t *testing.T) {
	var r Recorder
	r.VisitVariableDeclaration(Identifier{Name: "f", Span: Span{Start: 9, End: 10}}, VariableKindFunction)
	r.VisitEnterFunctionScope()
	r.VisitVariableUse(Identifier{Name: "x"})
	r.VisitVariableAssignment(Identifier{Name: "y"})
	r.VisitExitFunctionScope()
	r.VisitEndOfModule()

	want := []string{
		"variable_declaration(f, function)",
		"enter_function_scope",
		"variable_use(x)",
		"variable_assignment(y)",
		"exit_function_scope",
		"end_of_module",
	}
	if got := r.Strings(); !slices.Equal(got, want) {
		t.Errorf("Strings() = %v, want %v", got, want)
	}
	if ev := r.Events()[0]; ev.Span != (Span{Start: 9, End: 10}) {
		t.Errorf("declaration span = %v", ev.Span)
	}
}

func TestRecorderReplay(t *testing.T) {
	var src Recorder
	src.VisitEnterModule()
	src.VisitEnterNamedFunctionScope(Identifier{Name: "recur"})
	src.VisitVariableUse(Identifier{Name: "recur"})
	src.VisitExitFunctionScope()
	src.VisitPropertyDeclaration(Identifier{Name: "m"})
	src.VisitEnterClassScope()
	src.VisitExitClassScope()
	src.VisitEnterForScope()
	src.VisitExitForScope()
	src.VisitEnterBlockScope()
	src.VisitExitBlockScope()
	src.VisitDiagnostic(Diagnostic{Kind: DiagExpectedExpression})
	src.VisitEndOfModule()

	var a, b Recorder
	src.Replay(Multi(&a, &b))

	if !slices.Equal(src.Strings(), a.Strings()) || !slices.Equal(src.Strings(), b.Strings()) {
		t.Errorf("replay mismatch:\n src %v\n a   %v\n b   %v", src.Strings(), a.Strings(), b.Strings())
	}
	if len(a.Diagnostics()) != 1 || a.Diagnostics()[0].Kind != DiagExpectedExpression {
		t.Errorf("diagnostics not replayed: %v", a.Diagnostics())
	}

	a.Reset()
	if len(a.Events()) != 0 || len(a.Diagnostics()) != 0 {
		t.Error("Reset left data behind")
	}
}

type useCounter struct {
	NopVisitor
	n int
}

func (c *useCounter) VisitVariableUse(Identifier) {
	c.n++
}

func TestNopVisitorEmbedding(t *testing.T) {
	c := &useCounter{}
	var v Visitor = c
	v.VisitVariableUse(Identifier{Name: "x"})
	v.VisitEnterBlockScope()
	v.VisitVariableUse(Identifier{Name: "y"})
	if c.n != 2 {
		t.Errorf("counted %d uses, want 2", c.n)
	}
}

func TestEventKindString(t *testing.T) {
	if EventEnterNamedFunctionScope.String() != "enter_named_function_scope" {
		t.Error("name mismatch")
	}
	if EventKind(100).String() != "EventKind(100)" {
		t.Error("unknown kind name mismatch")
	}
	if EventEnterBlockScope.HasName() || !EventVariableUse.HasName() {
		t.Error("HasName mismatch")
	}
}

func TestEventKindTextRoundTrip(t *testing.T) {
	for k := EventEnterModule; k <= EventVariableUse; k++ {
		text, err := k.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var got EventKind
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if got != k {
			t.Errorf("round trip of %v gave %v", k, got)
		}
	}
	var k EventKind
	if err := k.UnmarshalText([]byte("enter_nowhere")); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestVariableKindTextRoundTrip(t *testing.T) {
	for k := VariableKindVar; k <= VariableKindImport; k++ {
		text, _ := k.MarshalText()
		var got VariableKind
		if err := got.UnmarshalText(text); err != nil || got != k {
			t.Errorf("round trip of %v gave %v, %v", k, got, err)
		}
	}
	var k VariableKind
	if err := k.UnmarshalText([]byte("dynamic")); err == nil {
		t.Error("expected error for unknown kind")
	}
}
