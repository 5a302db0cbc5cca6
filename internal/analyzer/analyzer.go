// Package analyzer checks variable usage by consuming parser events.
//
// The analyzer keeps a stack of scopes that follows the enter and exit
// events. A use or assignment is resolved against the current scope only;
// whatever is still unresolved when a scope exits moves to its parent.
// This lets a declaration later in the same scope catch earlier uses, which
// is how uses before a let, const or class declaration are found, and lets
// uses inside functions refer to names declared later in any enclosing
// scope. Names still unresolved at the end of the module are checked
// against the globals.
//
// # Usage
//
//	a := analyzer.New(analyzer.DefaultGlobals(), logger)
//	parser.New(src, a, logger).ParseModule()
//	diags := a.Diagnostics()
package analyzer

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/jsscope/jsscope/internal/types"
	"github.com/jsscope/jsscope/js"
)

type declaration struct {
	kind js.VariableKind
	span js.Span
	// scopeName is set for the name of a named function expression, which
	// the function body may shadow freely.
	scopeName bool
}

// reference is a use or assignment not yet matched to a declaration.
type reference struct {
	name       js.Identifier
	assignment bool
	seq        int // creation order
	fnDepth    int // fnDepth of the scope the reference was made in
}

type scope struct {
	kind js.ScopeKind
	// fnDepth counts the function scopes enclosing this one, itself
	// included. A reference made at a greater depth than the scope that
	// declares its name was made inside a nested function, so it is not a
	// use before declaration.
	fnDepth    int
	declared   map[string]declaration
	unresolved map[string][]reference
}

func newScope(kind js.ScopeKind, fnDepth int) *scope {
	return &scope{
		kind:       kind,
		fnDepth:    fnDepth,
		declared:   make(map[string]declaration),
		unresolved: make(map[string][]reference),
	}
}

func (s *scope) isFunction() bool {
	return s.kind == js.ScopeFunction || s.kind == js.ScopeNamedFunction
}

// hoists reports whether var declarations inside the scope stop here.
func (s *scope) hoists() bool {
	switch s.kind {
	case js.ScopeModule, js.ScopeFunction, js.ScopeNamedFunction:
		return true
	}
	return false
}

// Analyzer is a js.Visitor that reports variable diagnostics.
// Diagnostics delivered to it by the parser are ignored.
type Analyzer struct {
	globals *Globals
	scopes  []*scope
	diags   []js.Diagnostic
	seq     int
	types.Logger
}

var _ js.Visitor = (*Analyzer)(nil)

// New returns an Analyzer resolving undeclared names against globals.
// A nil globals uses DefaultGlobals. Pass nil for logger to disable logging.
func New(globals *Globals, logger *slog.Logger) *Analyzer {
	if globals == nil {
		globals = DefaultGlobals()
	}
	return &Analyzer{
		globals: globals,
		Logger:  types.Logger{L: logger},
	}
}

// Diagnostics returns the diagnostics reported so far.
func (a *Analyzer) Diagnostics() []js.Diagnostic {
	return a.diags
}

func (a *Analyzer) report(kind js.DiagKind, span, related js.Span) {
	a.diags = append(a.diags, js.Diagnostic{Kind: kind, Span: span, Related: related})
	if a.TraceEnabled() {
		a.Trace("diagnostic",
			slog.String("kind", kind.String()),
			slog.Int("start", int(span.Start)))
	}
}

// current returns the innermost scope. Events that arrive before
// enter_module, as when statements are parsed one at a time, land in an
// implicit module scope.
func (a *Analyzer) current() *scope {
	if len(a.scopes) == 0 {
		a.scopes = append(a.scopes, newScope(js.ScopeModule, 0))
	}
	return a.scopes[len(a.scopes)-1]
}

func (a *Analyzer) push(kind js.ScopeKind) *scope {
	depth := 0
	if kind != js.ScopeModule {
		depth = a.current().fnDepth
	}
	if kind == js.ScopeFunction || kind == js.ScopeNamedFunction {
		depth++
	}
	s := newScope(kind, depth)
	a.scopes = append(a.scopes, s)
	if a.TraceEnabled() {
		a.Trace("enter scope", slog.String("kind", kind.String()), slog.Int("depth", len(a.scopes)))
	}
	return s
}

// pop closes the innermost scope and moves its unresolved references to
// the parent.
func (a *Analyzer) pop() {
	if len(a.scopes) < 2 {
		return
	}
	s := a.scopes[len(a.scopes)-1]
	a.scopes = a.scopes[:len(a.scopes)-1]
	parent := a.current()
	var resolved []reference
	for name, refs := range s.unresolved {
		if name == "arguments" && s.isFunction() {
			continue
		}
		if _, ok := parent.declared[name]; ok {
			resolved = append(resolved, refs...)
			continue
		}
		parent.unresolved[name] = merge(parent.unresolved[name], refs)
	}
	sortReferences(resolved)
	for _, ref := range resolved {
		a.checkAssignment(ref, parent.declared[ref.name.Name])
	}
}

// merge joins two reference lists by appending the shorter to the longer,
// so a name referenced at every level of deep nesting is not copied at
// every level.
func merge(a, b []reference) []reference {
	if len(a) < len(b) {
		a, b = b, a
	}
	return append(a, b...)
}

func sortReferences(refs []reference) {
	slices.SortFunc(refs, func(x, y reference) int {
		return cmp.Compare(x.seq, y.seq)
	})
}

func (a *Analyzer) checkAssignment(ref reference, decl declaration) {
	if ref.assignment && decl.kind.IsConst() {
		a.report(js.DiagAssignmentToConstVariable, ref.name.Span, decl.span)
	}
}

// conflicts reports whether declaring next where prev already exists in
// the same scope is a redeclaration. Function declarations never conflict.
func conflicts(prev, next js.VariableKind) bool {
	switch {
	case next.IsLexical(), next == js.VariableKindImport:
		return true
	case next == js.VariableKindVar:
		return prev.IsLexical() || prev == js.VariableKindImport
	}
	return false
}

func (a *Analyzer) declare(name js.Identifier, kind js.VariableKind) {
	target := a.current()
	if kind == js.VariableKindVar {
		for i := len(a.scopes) - 1; i >= 0; i-- {
			if a.scopes[i].hoists() {
				target = a.scopes[i]
				break
			}
		}
	}

	decl := declaration{kind: kind, span: name.Span}
	if prev, ok := target.declared[name.Name]; !ok || prev.scopeName {
		target.declared[name.Name] = decl
	} else if conflicts(prev.kind, kind) {
		a.report(js.DiagRedeclarationOfVariable, name.Span, prev.span)
	}

	refs := target.unresolved[name.Name]
	if len(refs) == 0 {
		return
	}
	delete(target.unresolved, name.Name)
	sortReferences(refs)
	for _, ref := range refs {
		if kind.IsLexical() && ref.fnDepth <= target.fnDepth {
			a.report(js.DiagVariableUsedBeforeDeclaration, ref.name.Span, name.Span)
			continue
		}
		a.checkAssignment(ref, decl)
	}
}

func (a *Analyzer) reference(name js.Identifier, assignment bool) {
	s := a.current()
	a.seq++
	ref := reference{name: name, assignment: assignment, seq: a.seq, fnDepth: s.fnDepth}
	if decl, ok := s.declared[name.Name]; ok {
		a.checkAssignment(ref, decl)
		return
	}
	s.unresolved[name.Name] = append(s.unresolved[name.Name], ref)
}

// finish closes any open scopes and checks what is left against the
// globals.
func (a *Analyzer) finish() {
	for len(a.scopes) > 1 {
		a.pop()
	}
	var refs []reference
	for _, group := range a.current().unresolved {
		refs = append(refs, group...)
	}
	sortReferences(refs)
	for _, ref := range refs {
		writable, ok := a.globals.Lookup(ref.name.Name)
		switch {
		case ok && ref.assignment && !writable:
			a.report(js.DiagAssignmentToConstGlobalVariable, ref.name.Span, js.Span{})
		case ok:
		case ref.assignment:
			a.report(js.DiagAssignmentToUndeclaredVariable, ref.name.Span, js.Span{})
		default:
			a.report(js.DiagUseOfUndeclaredVariable, ref.name.Span, js.Span{})
		}
	}
	a.Log(slog.LevelDebug, "module analyzed",
		slog.Int("unresolved", len(refs)),
		slog.Int("diagnostics", len(a.diags)))
	a.scopes = a.scopes[:0]
}

// === js.Visitor ===

func (a *Analyzer) VisitEnterModule() {
	a.scopes = a.scopes[:0]
	a.push(js.ScopeModule)
}

func (a *Analyzer) VisitEndOfModule() {
	a.finish()
}

func (a *Analyzer) VisitEnterBlockScope()    { a.push(js.ScopeBlock) }
func (a *Analyzer) VisitExitBlockScope()     { a.pop() }
func (a *Analyzer) VisitEnterClassScope()    { a.push(js.ScopeClass) }
func (a *Analyzer) VisitExitClassScope()     { a.pop() }
func (a *Analyzer) VisitEnterForScope()      { a.push(js.ScopeFor) }
func (a *Analyzer) VisitExitForScope()       { a.pop() }
func (a *Analyzer) VisitEnterFunctionScope() { a.push(js.ScopeFunction) }
func (a *Analyzer) VisitExitFunctionScope()  { a.pop() }

func (a *Analyzer) VisitEnterNamedFunctionScope(name js.Identifier) {
	s := a.push(js.ScopeNamedFunction)
	s.declared[name.Name] = declaration{kind: js.VariableKindFunction, span: name.Span, scopeName: true}
}

func (a *Analyzer) VisitPropertyDeclaration(js.Identifier) {}

func (a *Analyzer) VisitVariableDeclaration(name js.Identifier, kind js.VariableKind) {
	a.declare(name, kind)
}

func (a *Analyzer) VisitVariableUse(name js.Identifier) {
	a.reference(name, false)
}

func (a *Analyzer) VisitVariableAssignment(name js.Identifier) {
	a.reference(name, true)
}

func (a *Analyzer) VisitDiagnostic(js.Diagnostic) {}
