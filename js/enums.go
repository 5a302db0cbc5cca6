// Package js provides the public types of the jsscope analyzer: spans,
// visitor events, diagnostics and their configuration.
package js

import (
	"fmt"
	"strings"
)

// Severity levels for diagnostics.
// Lower values are more severe.
type Severity int

const (
	SeverityFatal   Severity = 0 // Cannot continue parsing the unit
	SeveritySevere  Severity = 1 // Semantics changed to continue, must correct
	SeverityError   Severity = 2 // Able to continue, should correct
	SeverityMinor   Severity = 3 // Minor issue, should correct
	SeverityStyle   Severity = 4 // Style recommendation
	SeverityWarning Severity = 5 // Might be correct under some circumstances
	SeverityInfo    Severity = 6 // Informational notice
)

func (s Severity) String() string {
	switch s {
	case SeverityFatal:
		return "fatal"
	case SeveritySevere:
		return "severe"
	case SeverityError:
		return "error"
	case SeverityMinor:
		return "minor"
	case SeverityStyle:
		return "style"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return fmt.Sprintf("Severity(%d)", s)
	}
}

// ParseSeverity converts a severity name (case-insensitive) or digit to a
// Severity.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fatal", "0":
		return SeverityFatal, nil
	case "severe", "1":
		return SeveritySevere, nil
	case "error", "2":
		return SeverityError, nil
	case "minor", "3":
		return SeverityMinor, nil
	case "style", "4":
		return SeverityStyle, nil
	case "warning", "5":
		return SeverityWarning, nil
	case "info", "6":
		return SeverityInfo, nil
	}
	return 0, fmt.Errorf("unknown severity %q", s)
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	v, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// StrictnessLevel defines preset strictness configurations.
type StrictnessLevel int

const (
	StrictnessStrict     StrictnessLevel = 0 // Report everything
	StrictnessNormal     StrictnessLevel = 3 // Default, report minor and above
	StrictnessPermissive StrictnessLevel = 5 // Report warnings and above
	StrictnessSilent     StrictnessLevel = 6 // Report nothing
)

func (l StrictnessLevel) String() string {
	switch l {
	case StrictnessStrict:
		return "strict"
	case StrictnessNormal:
		return "normal"
	case StrictnessPermissive:
		return "permissive"
	case StrictnessSilent:
		return "silent"
	default:
		return fmt.Sprintf("StrictnessLevel(%d)", l)
	}
}

// ParseStrictnessLevel converts a preset name to a StrictnessLevel.
func ParseStrictnessLevel(s string) (StrictnessLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return StrictnessStrict, nil
	case "normal", "":
		return StrictnessNormal, nil
	case "permissive":
		return StrictnessPermissive, nil
	case "silent":
		return StrictnessSilent, nil
	}
	return 0, fmt.Errorf("unknown strictness level %q", s)
}

// MarshalText encodes the level by name.
func (l StrictnessLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText decodes a level name.
func (l *StrictnessLevel) UnmarshalText(text []byte) error {
	v, err := ParseStrictnessLevel(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// VariableKind tags how a name was declared.
type VariableKind int

const (
	VariableKindVar VariableKind = iota
	VariableKindLet
	VariableKindConst
	VariableKindFunction
	VariableKindParameter
	VariableKindClass
	VariableKindCatch
	VariableKindImport
)

func (k VariableKind) String() string {
	switch k {
	case VariableKindVar:
		return "var"
	case VariableKindLet:
		return "let"
	case VariableKindConst:
		return "const"
	case VariableKindFunction:
		return "function"
	case VariableKindParameter:
		return "parameter"
	case VariableKindClass:
		return "class"
	case VariableKindCatch:
		return "catch"
	case VariableKindImport:
		return "import"
	default:
		return fmt.Sprintf("VariableKind(%d)", k)
	}
}

// MarshalText encodes the kind by name.
func (k VariableKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name produced by MarshalText.
func (k *VariableKind) UnmarshalText(text []byte) error {
	for c := VariableKindVar; c <= VariableKindImport; c++ {
		if c.String() == string(text) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("unknown variable kind %q", text)
}

// IsLexical reports whether the binding is block scoped and subject to the
// temporal dead zone.
func (k VariableKind) IsLexical() bool {
	return k == VariableKindLet || k == VariableKindConst || k == VariableKindClass
}

// IsConst reports whether the binding cannot be reassigned.
func (k VariableKind) IsConst() bool {
	return k == VariableKindConst || k == VariableKindImport
}

// ScopeKind identifies the kind of a lexical scope.
type ScopeKind int

const (
	ScopeModule ScopeKind = iota
	ScopeFunction
	ScopeNamedFunction
	ScopeBlock
	ScopeClass
	ScopeFor
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeModule:
		return "module"
	case ScopeFunction:
		return "function"
	case ScopeNamedFunction:
		return "named-function"
	case ScopeBlock:
		return "block"
	case ScopeClass:
		return "class"
	case ScopeFor:
		return "for-head"
	default:
		return fmt.Sprintf("ScopeKind(%d)", k)
	}
}

// Outcome classifies how a parse unit finished.
type Outcome int

const (
	// OutcomeOK means the unit parsed without diagnostics.
	OutcomeOK Outcome = iota
	// OutcomeRecovered means at least one recoverable diagnostic was
	// reported and placeholders were synthesized to continue.
	OutcomeRecovered
	// OutcomeFatal means a fatal lexical error stopped the unit.
	OutcomeFatal
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeRecovered:
		return "recovered"
	case OutcomeFatal:
		return "fatal"
	default:
		return fmt.Sprintf("Outcome(%d)", o)
	}
}
