package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsscope/jsscope/internal/transport"
)

const (
	projectConfig = "../../testdata/project/.jsscope.yaml"
	projectSrc    = "../../testdata/project/src"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestLintText(t *testing.T) {
	r := runCLI(t, "", "lint", "--config", projectConfig, projectSrc)
	assert.Equal(t, exitError, r.code, r.stderr)
	assert.Contains(t, r.stdout, "bad.js:2:")
	assert.Contains(t, r.stdout, "minor [use-of-undeclared-variable] use of undeclared variable: items")
	assert.Contains(t, r.stdout, "bad.js:5:")
	assert.Contains(t, r.stdout, "error [missing-operand-for-operator]")
	assert.Contains(t, r.stdout, "Checked 4 files")
	assert.Contains(t, r.stdout, "found 2 issues")
	assert.NotContains(t, r.stdout, "node_modules")
	assert.NotContains(t, r.stdout, "\x1b[", "no color when not a terminal")
	assert.Empty(t, r.stderr)
}

func TestLintClean(t *testing.T) {
	r := runCLI(t, "", "lint", "--config", projectConfig, filepath.Join(projectSrc, "app.js"))
	assert.Equal(t, exitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "No issues found in 1 file")
}

func TestLintPathFlag(t *testing.T) {
	r := runCLI(t, "", "lint", "--config", projectConfig, "--summary",
		"-p", filepath.Join(projectSrc, "app.js"), "-p", filepath.Join(projectSrc, "lib"))
	assert.Equal(t, exitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "No issues found in 3 files")
}

func TestLintFailAt(t *testing.T) {
	lib := filepath.Join(projectSrc, "lib")
	r := runCLI(t, "", "lint", "--config", projectConfig, "--quiet", lib)
	assert.Equal(t, exitOK, r.code)
	assert.Empty(t, r.stdout)

	r = runCLI(t, "", "lint", "--config", projectConfig, "--fail-at", "minor", "--quiet", projectSrc)
	assert.Equal(t, exitError, r.code)
}

func TestLintIgnore(t *testing.T) {
	r := runCLI(t, "", "lint", "--config", projectConfig, "--format", "compact",
		"--ignore", "use-of-*", projectSrc)
	assert.Equal(t, exitError, r.code)
	assert.NotContains(t, r.stdout, "use-of-undeclared-variable")
	assert.Contains(t, r.stdout, "missing-operand-for-operator")
}

func TestLintLevelSilent(t *testing.T) {
	r := runCLI(t, "", "lint", "--config", projectConfig, "--level", "silent", projectSrc)
	assert.Equal(t, exitOK, r.code, r.stdout)
	assert.Contains(t, r.stdout, "No issues found in 4 files")
}

func TestLintJSON(t *testing.T) {
	r := runCLI(t, "", "lint", "--config", projectConfig, "--format", "json", projectSrc)
	assert.Equal(t, exitError, r.code)

	var out lintJSON
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &out))
	assert.Len(t, out.Files, 4)
	assert.Equal(t, 4, out.Summary.Files)
	assert.Equal(t, 2, out.Summary.Total)
	assert.Equal(t, 1, out.Summary.BySeverity["error"])
	assert.Equal(t, 1, out.Summary.BySeverity["minor"])
	assert.Positive(t, out.Summary.Bytes)
}

func TestLintSARIF(t *testing.T) {
	r := runCLI(t, "", "lint", "--config", projectConfig, "--format", "sarif", projectSrc)
	assert.Equal(t, exitError, r.code)

	var out sarifOutput
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &out))
	assert.Equal(t, "2.1.0", out.Version)
	require.Len(t, out.Runs, 1)
	run := out.Runs[0]
	assert.Equal(t, "jsscope", run.Tool.Driver.Name)
	require.Len(t, run.Results, 2)
	require.Len(t, run.Tool.Driver.Rules, 2)
	assert.Equal(t, "missing-operand-for-operator", run.Tool.Driver.Rules[0].ID)
	assert.Equal(t, "error", run.Tool.Driver.Rules[0].DefaultConfig.Level)

	res := run.Results[1]
	assert.Equal(t, "missing-operand-for-operator", res.RuleID)
	require.Len(t, res.Locations, 1)
	region := res.Locations[0].PhysicalLocation.Region
	require.NotNil(t, region)
	assert.Equal(t, 5, region.StartLine)
	assert.Equal(t, 1, region.ByteLength)
}

func TestLintOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	r := runCLI(t, "", "lint", "--config", projectConfig, "--format", "compact", "-o", path, projectSrc)
	assert.Equal(t, exitError, r.code)
	assert.Empty(t, r.stdout)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "bad.js:5:")
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown command", []string{"frobnicate"}, "unknown command"},
		{"unknown flag", []string{"lint", "--bogus"}, "unknown flag"},
		{"bad format", []string{"lint", "--config", projectConfig, "--format", "xml", projectSrc}, `unknown format "xml"`},
		{"bad level", []string{"lint", "--config", projectConfig, "--level", "pedantic", projectSrc}, "pedantic"},
		{"bad severity", []string{"lint", "--config", projectConfig, "--fail-at", "loud", projectSrc}, "loud"},
		{"missing argument", []string{"events"}, "accepts 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := runCLI(t, "", tt.args...)
			assert.Equal(t, exitUsage, r.code)
			assert.Contains(t, r.stderr, tt.want)
			assert.Contains(t, r.stderr, "Run 'jsscope --help' for usage.")
		})
	}
}

func TestProcessingErrors(t *testing.T) {
	r := runCLI(t, "", "lint", "--config", projectConfig, "no/such/dir")
	assert.Equal(t, exitError, r.code)
	assert.Contains(t, r.stderr, "error: ")
	assert.NotContains(t, r.stderr, "--help")

	r = runCLI(t, "", "lint", "--config", "no-such-config.yaml", projectSrc)
	assert.Equal(t, exitError, r.code)
	assert.Contains(t, r.stderr, "reading config")
}

func TestEvents(t *testing.T) {
	r := runCLI(t, "x = y;\nfunction f(a) { return a; }", "events", "-")
	assert.Equal(t, exitOK, r.code, r.stderr)
	assert.Equal(t, strings.Join([]string{
		"enter_module",
		"variable_use(y)",
		"variable_assignment(x)",
		"variable_declaration(f, function)",
		"enter_function_scope",
		"variable_declaration(a, parameter)",
		"variable_use(a)",
		"exit_function_scope",
		"end_of_module",
	}, "\n")+"\n", r.stdout)
}

func TestEventsSpans(t *testing.T) {
	r := runCLI(t, "let x = 1;", "events", "--spans", "-")
	assert.Equal(t, exitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "[4,5)")
}

func TestEventsJSON(t *testing.T) {
	r := runCLI(t, "x +;", "events", "--json", "-")
	assert.Equal(t, exitOK, r.code, r.stderr)

	var out struct {
		File    string `json:"file"`
		Outcome string `json:"outcome"`
		Events  []struct {
			Kind string `json:"kind"`
			Name string `json:"name"`
		} `json:"events"`
		Diagnostics []struct {
			Code string `json:"code"`
			Line int    `json:"line"`
		} `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &out))
	assert.Equal(t, "-", out.File)
	assert.Equal(t, "recovered", out.Outcome)
	require.Len(t, out.Events, 3)
	assert.Equal(t, "variable_use", out.Events[1].Kind)
	assert.Equal(t, "x", out.Events[1].Name)
	require.Len(t, out.Diagnostics, 1)
	assert.Equal(t, "missing-operand-for-operator", out.Diagnostics[0].Code)
	assert.Equal(t, 1, out.Diagnostics[0].Line)
}

func TestEventsFatal(t *testing.T) {
	r := runCLI(t, "a; 'open", "events", "-")
	assert.Equal(t, exitError, r.code)
	assert.Contains(t, r.stdout, "[unterminated-string-literal]")
}

func TestTokens(t *testing.T) {
	r := runCLI(t, "a +\n1", "tokens", "--json", "-")
	assert.Equal(t, exitOK, r.code, r.stderr)

	var out []struct {
		Kind    string `json:"kind"`
		Text    string `json:"text"`
		Newline bool   `json:"newline_before"`
	}
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &out))
	require.Len(t, out, 4)
	assert.Equal(t, "identifier", out[0].Kind)
	assert.Equal(t, "a", out[0].Text)
	assert.Equal(t, "+", out[1].Text)
	assert.Equal(t, "number", out[2].Kind)
	assert.True(t, out[2].Newline)
	assert.Equal(t, "end of file", out[3].Kind)

	r = runCLI(t, "a +\n1", "tokens", "-")
	assert.Equal(t, exitOK, r.code)
	assert.Contains(t, r.stdout, "(newline before)")
}

func TestDiagnosticsCatalog(t *testing.T) {
	r := runCLI(t, "", "diagnostics", "--json")
	assert.Equal(t, exitOK, r.code, r.stderr)

	var out []struct {
		Code     string `json:"code"`
		Severity string `json:"severity"`
	}
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &out))
	require.NotEmpty(t, out)
	found := false
	for _, e := range out {
		if e.Code == "use-of-undeclared-variable" {
			found = true
			assert.Equal(t, "minor", e.Severity)
		}
	}
	assert.True(t, found)

	r = runCLI(t, "", "diagnostics")
	assert.Contains(t, r.stdout, "assignment to const variable: {0}")
}

func TestVersion(t *testing.T) {
	r := runCLI(t, "", "version")
	assert.Equal(t, exitOK, r.code)
	assert.True(t, strings.HasPrefix(r.stdout, "jsscope "))
}

func TestServe(t *testing.T) {
	var in bytes.Buffer
	w := transport.NewWriter(&in)
	require.NoError(t, w.Write(transport.Request{ID: 1, Name: "buf.js", Text: "let a = b +;", Events: true}))
	require.NoError(t, w.Write(transport.Request{ID: 2, Name: "buf.js", Text: "let a = b +;"}))
	require.NoError(t, w.WriteRaw([]byte("{not json")))
	require.NoError(t, w.Write(transport.Request{ID: 4, Path: filepath.Join(projectSrc, "app.js")}))
	require.NoError(t, w.Write(transport.Request{ID: 5, Path: "no/such/file.js"}))

	var out, errs bytes.Buffer
	code := run(context.Background(), []string{"serve", "--config", projectConfig}, &in, &out, &errs)
	require.Equal(t, exitOK, code, errs.String())

	r := transport.NewReader(&out)
	var responses []transport.Response
	for range 5 {
		var resp transport.Response
		require.NoError(t, r.Read(&resp))
		responses = append(responses, resp)
	}

	first := responses[0]
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "recovered", first.Outcome)
	require.Len(t, first.Diagnostics, 2)
	assert.Equal(t, "use-of-undeclared-variable", first.Diagnostics[0].Code)
	assert.Equal(t, "buf.js", first.Diagnostics[0].File)
	assert.Equal(t, "missing-operand-for-operator", first.Diagnostics[1].Code)
	require.NotEmpty(t, first.Events)
	assert.Equal(t, "variable_use(b)", first.Events[1].String())

	second := responses[1]
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, first.Diagnostics, second.Diagnostics)
	assert.Empty(t, second.Events)

	assert.Contains(t, responses[2].Error, "decoding request")

	clean := responses[3]
	assert.Equal(t, 4, clean.ID)
	assert.Equal(t, "ok", clean.Outcome)
	assert.Empty(t, clean.Diagnostics)
	assert.Empty(t, clean.Error)

	assert.Equal(t, 5, responses[4].ID)
	assert.NotEmpty(t, responses[4].Error)
}

func TestServeEmptyInput(t *testing.T) {
	r := runCLI(t, "", "serve", "--config", projectConfig)
	assert.Equal(t, exitOK, r.code)
	assert.Empty(t, r.stdout)
}

func TestServeBadFraming(t *testing.T) {
	r := runCLI(t, "Content-Type: json\r\n\r\n{}", "serve", "--config", projectConfig)
	assert.Equal(t, exitError, r.code)
	assert.Contains(t, r.stderr, "Content-Length")
}

func TestWatchSet(t *testing.T) {
	set, err := newWatchSet([]string{"../../testdata/project", filepath.Join(projectSrc, "app.js")})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"../../testdata/project",
		"../../testdata/project/src",
		"../../testdata/project/src/lib",
	}, set.dirs)

	_, err = newWatchSet([]string{"no/such/dir"})
	assert.Error(t, err)
}

func TestWatchSetMatches(t *testing.T) {
	set, err := newWatchSet([]string{filepath.Join(projectSrc, "app.js"), filepath.Join(projectSrc, "lib")})
	require.NoError(t, err)
	assert.Equal(t, []string{projectSrc, filepath.Join(projectSrc, "lib")}, set.dirs)

	assert.True(t, set.matches(filepath.Join(projectSrc, "app.js")), "file target")
	assert.True(t, set.matches("../../testdata/project/src/./app.js"), "same file, other spelling")
	assert.False(t, set.matches(filepath.Join(projectSrc, "bad.js")), "sibling of a file target")
	assert.True(t, set.matches(filepath.Join(projectSrc, "lib", "util.mjs")), "file in a directory target")
	assert.True(t, set.matches(filepath.Join(projectSrc, "lib", "new.js")), "new file in a directory target")
	assert.False(t, set.matches(filepath.Join(projectSrc, "lib", "notes.txt")), "not JavaScript")
}

func TestIsJSFile(t *testing.T) {
	assert.True(t, isJSFile("a/b.js"))
	assert.True(t, isJSFile("b.MJS"))
	assert.True(t, isJSFile("b.cjs"))
	assert.False(t, isJSFile("notes.txt"))
	assert.False(t, isJSFile("js"))
}
