// Package jsscope parses JavaScript and reports scopes, declarations and
// variable uses as a stream of events, together with diagnostics for
// malformed input and for variables used wrongly.
package jsscope

import "github.com/jsscope/jsscope/js"

// Type aliases for public API - all types come from js subpackage.

// Visitor receives parse events.
type Visitor = js.Visitor

// Event is one recorded visitor call.
type Event = js.Event

// Recorder is a Visitor that records events and diagnostics.
type Recorder = js.Recorder

// Identifier is a name with its span.
type Identifier = js.Identifier

// Span is a half-open byte range in source text.
type Span = js.Span

// Outcome classifies how a parse unit finished.
type Outcome = js.Outcome

// Diagnostic represents a parse or analysis issue.
type Diagnostic = js.Diagnostic

// FileDiagnostic is a diagnostic resolved against a file.
type FileDiagnostic = js.FileDiagnostic

// DiagKind identifies a type of diagnostic.
type DiagKind = js.DiagKind

// Severity for diagnostics.
type Severity = js.Severity

// DiagnosticConfig controls strictness and diagnostic filtering.
type DiagnosticConfig = js.DiagnosticConfig

// VariableKind tags how a name was declared.
type VariableKind = js.VariableKind
