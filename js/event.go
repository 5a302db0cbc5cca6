package js

import (
	"fmt"
	"slices"
)

// EventKind identifies a visitor event.
type EventKind int

const (
	EventEnterModule EventKind = iota
	EventEndOfModule
	EventEnterBlockScope
	EventExitBlockScope
	EventEnterClassScope
	EventExitClassScope
	EventEnterForScope
	EventExitForScope
	EventEnterFunctionScope
	EventEnterNamedFunctionScope
	EventExitFunctionScope
	EventPropertyDeclaration
	EventVariableAssignment
	EventVariableDeclaration
	EventVariableUse
)

var eventKindNames = [...]string{
	EventEnterModule:             "enter_module",
	EventEndOfModule:             "end_of_module",
	EventEnterBlockScope:         "enter_block_scope",
	EventExitBlockScope:          "exit_block_scope",
	EventEnterClassScope:         "enter_class_scope",
	EventExitClassScope:          "exit_class_scope",
	EventEnterForScope:           "enter_for_scope",
	EventExitForScope:            "exit_for_scope",
	EventEnterFunctionScope:      "enter_function_scope",
	EventEnterNamedFunctionScope: "enter_named_function_scope",
	EventExitFunctionScope:       "exit_function_scope",
	EventPropertyDeclaration:     "property_declaration",
	EventVariableAssignment:      "variable_assignment",
	EventVariableDeclaration:     "variable_declaration",
	EventVariableUse:             "variable_use",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
	return eventKindNames[k]
}

// MarshalText encodes the kind by name.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name produced by MarshalText.
func (k *EventKind) UnmarshalText(text []byte) error {
	if i := slices.Index(eventKindNames[:], string(text)); i >= 0 {
		*k = EventKind(i)
		return nil
	}
	return fmt.Errorf("unknown event kind %q", text)
}

// HasName reports whether events of this kind carry an identifier.
func (k EventKind) HasName() bool {
	switch k {
	case EventEnterNamedFunctionScope, EventPropertyDeclaration,
		EventVariableAssignment, EventVariableDeclaration, EventVariableUse:
		return true
	default:
		return false
	}
}

// Event is the value form of one Visitor call.
type Event struct {
	Kind EventKind `json:"kind"`
	Name string    `json:"name,omitempty"`
	Span Span      `json:"span"`
	// VarKind is set for EventVariableDeclaration only.
	VarKind VariableKind `json:"var_kind"`
}

// String renders the event as kind(name) or kind(name, varkind), which is
// the form tests compare against.
func (e Event) String() string {
	switch {
	case e.Kind == EventVariableDeclaration:
		return fmt.Sprintf("%s(%s, %s)", e.Kind, e.Name, e.VarKind)
	case e.Kind.HasName():
		return fmt.Sprintf("%s(%s)", e.Kind, e.Name)
	default:
		return e.Kind.String()
	}
}

// Identifier returns the event's name and span.
func (e Event) Identifier() Identifier {
	return Identifier{Name: e.Name, Span: e.Span}
}

// Apply delivers the event to v.
func (e Event) Apply(v Visitor) {
	id := e.Identifier()
	switch e.Kind {
	case EventEnterModule:
		v.VisitEnterModule()
	case EventEndOfModule:
		v.VisitEndOfModule()
	case EventEnterBlockScope:
		v.VisitEnterBlockScope()
	case EventExitBlockScope:
		v.VisitExitBlockScope()
	case EventEnterClassScope:
		v.VisitEnterClassScope()
	case EventExitClassScope:
		v.VisitExitClassScope()
	case EventEnterForScope:
		v.VisitEnterForScope()
	case EventExitForScope:
		v.VisitExitForScope()
	case EventEnterFunctionScope:
		v.VisitEnterFunctionScope()
	case EventEnterNamedFunctionScope:
		v.VisitEnterNamedFunctionScope(id)
	case EventExitFunctionScope:
		v.VisitExitFunctionScope()
	case EventPropertyDeclaration:
		v.VisitPropertyDeclaration(id)
	case EventVariableAssignment:
		v.VisitVariableAssignment(id)
	case EventVariableDeclaration:
		v.VisitVariableDeclaration(id, e.VarKind)
	case EventVariableUse:
		v.VisitVariableUse(id)
	}
}

// Recorder is a Visitor that records events and diagnostics in order.
// The zero value is ready to use.
type Recorder struct {
	events      []Event
	diagnostics DiagnosticList
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	return slices.Clone(r.events)
}

// Diagnostics returns a copy of the recorded diagnostics.
func (r *Recorder) Diagnostics() []Diagnostic {
	return r.diagnostics.All()
}

// Strings returns the String form of each recorded event.
func (r *Recorder) Strings() []string {
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.String()
	}
	return out
}

// Replay delivers the recorded diagnostics and then the recorded events
// to v.
func (r *Recorder) Replay(v Visitor) {
	for _, d := range r.diagnostics.items {
		v.VisitDiagnostic(d)
	}
	for _, e := range r.events {
		e.Apply(v)
	}
}

// Reset discards everything recorded so far.
func (r *Recorder) Reset() {
	r.events = r.events[:0]
	r.diagnostics.items = r.diagnostics.items[:0]
}

func (r *Recorder) add(kind EventKind) {
	r.events = append(r.events, Event{Kind: kind})
}

func (r *Recorder) addName(kind EventKind, name Identifier) {
	r.events = append(r.events, Event{Kind: kind, Name: name.Name, Span: name.Span})
}

func (r *Recorder) VisitEnterModule() {
	r.add(EventEnterModule)
}

func (r *Recorder) VisitEndOfModule() {
	r.add(EventEndOfModule)
}

func (r *Recorder) VisitEnterBlockScope() {
	r.add(EventEnterBlockScope)
}

func (r *Recorder) VisitExitBlockScope() {
	r.add(EventExitBlockScope)
}

func (r *Recorder) VisitEnterClassScope() {
	r.add(EventEnterClassScope)
}

func (r *Recorder) VisitExitClassScope() {
	r.add(EventExitClassScope)
}

func (r *Recorder) VisitEnterForScope() {
	r.add(EventEnterForScope)
}

func (r *Recorder) VisitExitForScope() {
	r.add(EventExitForScope)
}

func (r *Recorder) VisitEnterFunctionScope() {
	r.add(EventEnterFunctionScope)
}

func (r *Recorder) VisitEnterNamedFunctionScope(name Identifier) {
	r.addName(EventEnterNamedFunctionScope, name)
}

func (r *Recorder) VisitExitFunctionScope() {
	r.add(EventExitFunctionScope)
}

func (r *Recorder) VisitPropertyDeclaration(name Identifier) {
	r.addName(EventPropertyDeclaration, name)
}

func (r *Recorder) VisitVariableAssignment(name Identifier) {
	r.addName(EventVariableAssignment, name)
}

func (r *Recorder) VisitVariableDeclaration(name Identifier, kind VariableKind) {
	r.events = append(r.events, Event{
		Kind:    EventVariableDeclaration,
		Name:    name.Name,
		Span:    name.Span,
		VarKind: kind,
	})
}

func (r *Recorder) VisitVariableUse(name Identifier) {
	r.addName(EventVariableUse, name)
}

func (r *Recorder) VisitDiagnostic(d Diagnostic) {
	r.diagnostics.Add(d)
}
