package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/jsscope/jsscope/js"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Dump renders v for failure messages.
func Dump(v any) string {
	return dumper.Sdump(v)
}

// EventsEqual fails the test if the recorded event strings differ from want.
// The failure message is a unified diff.
func EventsEqual(t testing.TB, want, got []string, msgAndArgs ...any) {
	t.Helper()
	if diff := LineDiff(want, got); diff != "" {
		t.Fatalf("%s: events differ (-want +got):\n%s", formatMsg(msgAndArgs), diff)
	}
}

// DiagnosticsEqual fails the test if the diagnostics do not match want,
// given as "Kind@[start,end)" strings in report order.
func DiagnosticsEqual(t testing.TB, want []string, got []js.Diagnostic, msgAndArgs ...any) {
	t.Helper()
	if diff := LineDiff(want, DiagnosticStrings(got)); diff != "" {
		t.Fatalf("%s: diagnostics differ (-want +got):\n%s\nfull:\n%s",
			formatMsg(msgAndArgs), diff, Dump(got))
	}
}

// DiagnosticStrings formats diagnostics as "Kind@[start,end)".
func DiagnosticStrings(diags []js.Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.String()
	}
	return out
}

// LineDiff returns a unified diff of two line lists, or "" if they are
// equal.
func LineDiff(want, got []string) string {
	if strings.Join(want, "\n") == strings.Join(got, "\n") && len(want) == len(got) {
		return ""
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        withNewlines(want),
		B:        withNewlines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  3,
	})
	if err != nil {
		return fmt.Sprintf("want: %v\ngot:  %v", want, got)
	}
	return diff
}

func withNewlines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l + "\n"
	}
	return out
}
