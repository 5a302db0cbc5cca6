package js

import "testing"

func TestDiagKindCatalog(t *testing.T) {
	seen := make(map[string]bool)
	for _, k := range AllDiagKinds() {
		info := k.Info()
		if info.Code == "" {
			t.Errorf("%v has no code", k)
		}
		if seen[info.Code] {
			t.Errorf("duplicate code %q", info.Code)
		}
		seen[info.Code] = true
		if info.Message == "" {
			t.Errorf("%v has no message", k)
		}
		if len(info.Args) == 0 {
			t.Errorf("%v has no arguments", k)
		}
		got, ok := DiagKindByCode(info.Code)
		if !ok || got != k {
			t.Errorf("DiagKindByCode(%q) = %v, %v", info.Code, got, ok)
		}
	}
	if len(seen) != DiagKindCount {
		t.Errorf("catalog has %d codes, want %d", len(seen), DiagKindCount)
	}
}

func TestDiagKindFatalLexerErrors(t *testing.T) {
	for _, k := range []DiagKind{
		DiagUnterminatedStringLiteral,
		DiagUnterminatedTemplate,
		DiagUnterminatedRegexp,
		DiagUnclosedBlockComment,
	} {
		if k.Severity() != SeverityFatal {
			t.Errorf("%v severity = %v, want fatal", k, k.Severity())
		}
		if k.Info().Phase != "lexer" {
			t.Errorf("%v phase = %q, want lexer", k, k.Info().Phase)
		}
	}
}

func TestDiagKindString(t *testing.T) {
	if got := DiagUnmatchedParenthesis.String(); got != "UnmatchedParenthesis" {
		t.Errorf("String = %q", got)
	}
	if got := DiagKind(-1).String(); got != "DiagKind(-1)" {
		t.Errorf("String = %q", got)
	}
	if got := DiagKind(DiagKindCount).Info().Severity; got != SeverityError {
		t.Errorf("unknown kind severity = %v", got)
	}
	if _, ok := DiagKindByCode("no-such-code"); ok {
		t.Error("DiagKindByCode found an unknown code")
	}
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		template string
		args     []string
		want     string
	}{
		{"plain", nil, "plain"},
		{"use of {0}", []string{"x"}, "use of x"},
		{"{0} and {1}", []string{"a", "b"}, "a and b"},
		{"missing {1}", []string{"a"}, "missing {1}"},
		{"brace {x}", []string{"a"}, "brace {x}"},
		{"open {0", []string{"a"}, "open {0"},
		{"'{0}'", []string{"}"}, "'}'"},
	}
	for _, tt := range tests {
		if got := FormatMessage(tt.template, tt.args); got != tt.want {
			t.Errorf("FormatMessage(%q, %v) = %q, want %q", tt.template, tt.args, got, tt.want)
		}
	}
}

func TestDiagnosticMessageRelated(t *testing.T) {
	src := []byte("const c = 1; c = 2;")
	d := Diagnostic{
		Kind:    DiagAssignmentToConstVariable,
		Span:    Span{Start: 13, End: 14},
		Related: Span{Start: 6, End: 7},
	}
	if got, want := d.Message(src), "assignment to const variable: c"; got != want {
		t.Errorf("Message = %q, want %q", got, want)
	}
}
