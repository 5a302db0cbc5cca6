package js

import (
	"fmt"
	"slices"
	"strings"
)

// Diagnostic is a problem found while lexing, parsing or analyzing a buffer.
type Diagnostic struct {
	Kind DiagKind
	Span Span
	// Related is an optional second location, such as the declaration an
	// analyzer diagnostic refers to. Zero when unused.
	Related Span
}

// Code returns the kebab-case diagnostic code.
func (d Diagnostic) Code() string {
	return d.Kind.Code()
}

// Severity returns the default severity of the diagnostic's kind.
func (d Diagnostic) Severity() Severity {
	return d.Kind.Severity()
}

// Message formats the kind's message template against src.
func (d Diagnostic) Message(src []byte) string {
	info := d.Kind.Info()
	args := make([]string, len(info.Args))
	for i, arg := range info.Args {
		span := d.Span
		if arg.Field == DiagFieldRelated {
			span = d.Related
		}
		args[i] = span.Text(src)
	}
	return FormatMessage(info.Message, args)
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s@[%d,%d)", d.Kind, d.Span.Start, d.Span.End)
}

// DiagnosticList is an append-only, ordered diagnostic sink.
type DiagnosticList struct {
	items []Diagnostic
}

// Add appends a diagnostic.
func (l *DiagnosticList) Add(d Diagnostic) {
	l.items = append(l.items, d)
}

// Len returns the number of diagnostics.
func (l *DiagnosticList) Len() int {
	return len(l.items)
}

// All returns a copy of the diagnostics in discovery order.
func (l *DiagnosticList) All() []Diagnostic {
	return slices.Clone(l.items)
}

// Kinds returns the kinds of all diagnostics in discovery order.
func (l *DiagnosticList) Kinds() []DiagKind {
	kinds := make([]DiagKind, len(l.items))
	for i, d := range l.items {
		kinds[i] = d.Kind
	}
	return kinds
}

// FileDiagnostic is a diagnostic resolved against a named file, ready for
// display.
type FileDiagnostic struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	File     string   `json:"file,omitempty"`
	Line     int      `json:"line,omitempty"`   // 1-based, 0 if not applicable
	Column   int      `json:"column,omitempty"` // 1-based, 0 if not applicable
	Start    uint32   `json:"start"`
	End      uint32   `json:"end"`
}

// String returns a human-readable representation of the diagnostic.
// Format: "[severity] file:line:col: message" with location parts omitted when zero.
func (d FileDiagnostic) String() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(d.Severity.String())
	b.WriteByte(']')
	b.WriteByte(' ')
	if d.File != "" {
		b.WriteString(d.File)
		if d.Line > 0 {
			fmt.Fprintf(&b, ":%d", d.Line)
			if d.Column > 0 {
				fmt.Fprintf(&b, ":%d", d.Column)
			}
		}
		b.WriteString(": ")
	}
	b.WriteString(d.Message)
	return b.String()
}

// Resolve converts d into a FileDiagnostic using loc for line and column.
// The severity reflects any override in cfg.
func Resolve(d Diagnostic, file string, src []byte, loc *Locator, cfg DiagnosticConfig) FileDiagnostic {
	fd := FileDiagnostic{
		Severity: cfg.EffectiveSeverity(d.Code(), d.Severity()),
		Code:     d.Code(),
		Message:  d.Message(src),
		File:     file,
		Start:    uint32(d.Span.Start),
		End:      uint32(d.Span.End),
	}
	if loc != nil {
		pos := loc.Position(d.Span.Start)
		fd.Line, fd.Column = pos.Line, pos.Column
	}
	return fd
}

// DiagnosticConfig controls strictness and diagnostic filtering.
type DiagnosticConfig struct {
	// Level sets the base strictness level.
	// Diagnostics with severity > Level are suppressed.
	Level StrictnessLevel `yaml:"level"`

	// FailAt sets the severity threshold for failure.
	// If any reported diagnostic has severity <= FailAt, linting fails.
	FailAt Severity `yaml:"fail-at"`

	// Overrides change severity for specific diagnostic codes.
	Overrides map[string]Severity `yaml:"overrides"`

	// Ignore lists diagnostic codes to suppress entirely.
	// Supports glob patterns (e.g., "assignment-to-*").
	Ignore []string `yaml:"ignore"`
}

// DefaultConfig returns the default diagnostic configuration (Normal strictness).
func DefaultConfig() DiagnosticConfig {
	return DiagnosticConfig{
		Level:  StrictnessNormal,
		FailAt: SeverityError,
	}
}

// StrictConfig reports every diagnostic and fails on minor issues.
func StrictConfig() DiagnosticConfig {
	return DiagnosticConfig{
		Level:  StrictnessStrict,
		FailAt: SeverityMinor,
	}
}

// PermissiveConfig fails only on fatal errors and suppresses
// undeclared-variable findings, which are common in scripts that rely on
// globals from other files.
func PermissiveConfig() DiagnosticConfig {
	return DiagnosticConfig{
		Level:  StrictnessPermissive,
		FailAt: SeverityFatal,
		Ignore: []string{
			"use-of-undeclared-variable",
			"assignment-to-undeclared-variable",
		},
	}
}

// SilentConfig reports nothing.
func SilentConfig() DiagnosticConfig {
	return DiagnosticConfig{
		Level:  StrictnessSilent,
		FailAt: SeverityFatal,
	}
}

// EffectiveSeverity returns sev, or the override configured for code.
func (c DiagnosticConfig) EffectiveSeverity(code string, sev Severity) Severity {
	if override, ok := c.Overrides[code]; ok {
		return override
	}
	return sev
}

// ShouldReport returns true if a diagnostic with the given code and severity
// should be reported under this configuration.
//
// The Level controls reporting threshold:
//   - Level 0 (Strict): Report all diagnostics (Info and above)
//   - Level 3 (Normal): Report Minor and above (0-3)
//   - Level 5 (Permissive): Report Warning and above (0-5)
//   - Level 6 (Silent): Report nothing
//
// Lower severity numbers are more severe (Fatal=0, Info=6).
func (c DiagnosticConfig) ShouldReport(code string, sev Severity) bool {
	for _, pattern := range c.Ignore {
		if matchGlob(pattern, code) {
			return false
		}
	}

	sev = c.EffectiveSeverity(code, sev)

	if c.Level >= StrictnessSilent {
		return false
	}

	if c.Level == StrictnessStrict {
		return true
	}

	return int(sev) <= int(c.Level)
}

// ShouldFail returns true if a diagnostic with the given severity should
// cause linting to fail.
func (c DiagnosticConfig) ShouldFail(sev Severity) bool {
	return sev <= c.FailAt
}

// matchGlob performs simple glob matching with * wildcard.
func matchGlob(pattern, s string) bool {
	if pattern == "*" {
		return true
	}

	if len(pattern) > 0 && pattern[len(pattern)-1] == '*' {
		prefix := pattern[:len(pattern)-1]
		return len(s) >= len(prefix) && s[:len(prefix)] == prefix
	}

	if len(pattern) > 0 && pattern[0] == '*' {
		suffix := pattern[1:]
		return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
	}

	return pattern == s
}
