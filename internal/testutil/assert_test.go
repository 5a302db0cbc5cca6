package testutil

import (
	"fmt"
	"io/fs"
	"os"
	"strings"
	"testing"

	"github.com/jsscope/jsscope/js"
)

// recordingTB records a failure and its message instead of stopping the
// test.
type recordingTB struct {
	testing.TB // embedded for unimplemented methods
	failed     bool
	msg        string
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Fatal(args ...any) {
	r.failed = true
	r.msg = fmt.Sprint(args...)
}

func (r *recordingTB) Fatalf(format string, args ...any) {
	r.failed = true
	r.msg = fmt.Sprintf(format, args...)
}

// check runs assert against a fresh recordingTB and returns it.
func check(assert func(tb testing.TB)) *recordingTB {
	r := &recordingTB{}
	assert(r)
	return r
}

func TestEqual(t *testing.T) {
	if r := check(func(tb testing.TB) { Equal(tb, js.OutcomeOK, js.OutcomeOK) }); r.failed {
		t.Errorf("equal outcomes failed: %s", r.msg)
	}
	r := check(func(tb testing.TB) { Equal(tb, js.OutcomeOK, js.OutcomeFatal, "outcome of %s", "f.js") })
	if !r.failed {
		t.Fatal("different outcomes passed")
	}
	if !strings.HasPrefix(r.msg, "outcome of f.js") {
		t.Errorf("message %q does not start with the formatted label", r.msg)
	}
}

func TestSliceEqual(t *testing.T) {
	a := js.Event{Kind: js.EventVariableUse, Name: "x", Span: js.Span{Start: 0, End: 1}}
	b := js.Event{Kind: js.EventVariableUse, Name: "x", Span: js.Span{Start: 4, End: 5}}

	tests := []struct {
		name      string
		want, got []js.Event
		fail      bool
	}{
		{"same events", []js.Event{a, b}, []js.Event{a, b}, false},
		{"nil and empty", nil, []js.Event{}, false},
		{"same name, other span", []js.Event{a}, []js.Event{b}, true},
		{"order matters", []js.Event{a, b}, []js.Event{b, a}, true},
		{"missing event", []js.Event{a, b}, []js.Event{a}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := check(func(tb testing.TB) { SliceEqual(tb, tt.want, tt.got) })
			if r.failed != tt.fail {
				t.Errorf("failed = %v, want %v (%s)", r.failed, tt.fail, r.msg)
			}
		})
	}
}

func TestNoErrorAndError(t *testing.T) {
	wrapped := fmt.Errorf("loading config: %w", fs.ErrNotExist)
	var typedNil *fs.PathError
	var typedNilErr error = typedNil

	tests := []struct {
		name    string
		err     error
		noError bool // whether NoError passes
	}{
		{"nil", nil, true},
		{"plain", os.ErrNotExist, false},
		{"wrapped", wrapped, false},
		// a typed nil pointer is a non-nil error value
		{"typed nil", typedNilErr, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if r := check(func(tb testing.TB) { NoError(tb, tt.err) }); r.failed == tt.noError {
				t.Errorf("NoError failed = %v (%s)", r.failed, r.msg)
			}
			if r := check(func(tb testing.TB) { Error(tb, tt.err) }); r.failed != tt.noError {
				t.Errorf("Error failed = %v", r.failed)
			}
		})
	}

	r := check(func(tb testing.TB) { NoError(tb, wrapped, "reading %s", ".jsscope.yaml") })
	if !strings.Contains(r.msg, "reading .jsscope.yaml") || !strings.Contains(r.msg, "file does not exist") {
		t.Errorf("message %q lacks the label or the error", r.msg)
	}
}

func TestIsNil(t *testing.T) {
	var (
		recorder *js.Recorder
		visitor  js.Visitor = recorder
		events   []js.Event
		counts   map[js.Severity]int
		done     chan struct{}
		hook     func()
	)
	for _, v := range []any{nil, recorder, visitor, events, counts, done, hook} {
		if !isNil(v) {
			t.Errorf("isNil(%T) = false", v)
		}
	}
	for _, v := range []any{0, "", js.Event{}, &js.Recorder{}, []js.Event{}, map[js.Severity]int{}, js.NopVisitor{}} {
		if isNil(v) {
			t.Errorf("isNil(%#v) = true", v)
		}
	}

	if r := check(func(tb testing.TB) { Nil(tb, visitor) }); r.failed {
		t.Error("Nil failed for a typed nil visitor")
	}
	if r := check(func(tb testing.TB) { NotNil(tb, visitor) }); !r.failed {
		t.Error("NotNil passed for a typed nil visitor")
	}
}

func TestCollectionAssertions(t *testing.T) {
	events := []js.Event{{Kind: js.EventEnterModule}, {Kind: js.EventEndOfModule}}
	tests := []struct {
		name   string
		assert func(tb testing.TB)
		fail   bool
	}{
		{"Len", func(tb testing.TB) { Len(tb, events, 2) }, false},
		{"Len mismatch", func(tb testing.TB) { Len(tb, events, 3) }, true},
		{"NotEmpty", func(tb testing.TB) { NotEmpty(tb, events) }, false},
		{"NotEmpty nil", func(tb testing.TB) { NotEmpty[js.Event](tb, nil) }, true},
		{"True", func(tb testing.TB) { True(tb, len(events) == 2) }, false},
		{"True false", func(tb testing.TB) { True(tb, false) }, true},
		{"False", func(tb testing.TB) { False(tb, false) }, false},
		{"False true", func(tb testing.TB) { False(tb, true) }, true},
		{"Contains", func(tb testing.TB) { Contains(tb, "a.js:1:2: error", "error") }, false},
		{"Contains missing", func(tb testing.TB) { Contains(tb, "a.js", "error") }, true},
		{"Greater", func(tb testing.TB) { Greater(tb, js.SeverityInfo, js.SeverityFatal) }, false},
		{"Greater equal", func(tb testing.TB) { Greater(tb, 3, 3) }, true},
		{"Fail", func(tb testing.TB) { Fail(tb, "always") }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if r := check(tt.assert); r.failed != tt.fail {
				t.Errorf("failed = %v, want %v (%s)", r.failed, tt.fail, r.msg)
			}
		})
	}
}

func TestEventsEqualShowsDiff(t *testing.T) {
	want := []string{"enter_module", "variable_use(x)", "end_of_module"}
	if r := check(func(tb testing.TB) { EventsEqual(tb, want, want) }); r.failed {
		t.Fatalf("equal events failed: %s", r.msg)
	}

	got := []string{"enter_module", "variable_use(y)", "end_of_module"}
	r := check(func(tb testing.TB) { EventsEqual(tb, want, got, "events") })
	if !r.failed {
		t.Fatal("different events passed")
	}
	for _, line := range []string{"--- want", "+++ got", "-variable_use(x)", "+variable_use(y)"} {
		if !strings.Contains(r.msg, line) {
			t.Errorf("diff lacks %q:\n%s", line, r.msg)
		}
	}
}

func TestDiagnosticsEqual(t *testing.T) {
	diags := []js.Diagnostic{{Kind: js.DiagUnexpectedToken, Span: js.Span{Start: 1, End: 2}}}
	if got := DiagnosticStrings(diags); len(got) != 1 || got[0] != "UnexpectedToken@[1,2)" {
		t.Fatalf("DiagnosticStrings = %v", got)
	}
	if r := check(func(tb testing.TB) { DiagnosticsEqual(tb, []string{"UnexpectedToken@[1,2)"}, diags) }); r.failed {
		t.Errorf("matching diagnostics failed: %s", r.msg)
	}
	r := check(func(tb testing.TB) { DiagnosticsEqual(tb, nil, diags) })
	if !r.failed || !strings.Contains(r.msg, "+UnexpectedToken@[1,2)") {
		t.Errorf("unexpected diagnostic not shown in diff: %q", r.msg)
	}
}

func TestLineDiff(t *testing.T) {
	if d := LineDiff(nil, []string{}); d != "" {
		t.Errorf("nil and empty differ: %q", d)
	}
	if d := LineDiff(nil, []string{""}); d == "" {
		t.Error("a single empty line equals no lines")
	}
	if d := LineDiff([]string{"a", "b"}, []string{"a", "b"}); d != "" {
		t.Errorf("equal lines differ: %q", d)
	}
}

func TestFormatMsg(t *testing.T) {
	tests := []struct {
		args []any
		want string
	}{
		{nil, "assertion failed"},
		{[]any{"custom"}, "custom"},
		{[]any{"%s: %d events", "a.js", 3}, "a.js: 3 events"},
		{[]any{123}, "assertion failed"},
	}
	for _, tt := range tests {
		if got := formatMsg(tt.args); got != tt.want {
			t.Errorf("formatMsg(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}
