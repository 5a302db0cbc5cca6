package js

// Visitor receives the structural events and diagnostics produced while
// parsing. Methods are called synchronously, in source evaluation order.
// Return values do not exist; a Visitor cannot influence parsing.
type Visitor interface {
	VisitEnterModule()
	VisitEndOfModule()

	VisitEnterBlockScope()
	VisitExitBlockScope()
	VisitEnterClassScope()
	VisitExitClassScope()
	VisitEnterForScope()
	VisitExitForScope()
	VisitEnterFunctionScope()
	VisitEnterNamedFunctionScope(name Identifier)
	VisitExitFunctionScope()

	VisitPropertyDeclaration(name Identifier)
	VisitVariableAssignment(name Identifier)
	VisitVariableDeclaration(name Identifier, kind VariableKind)
	VisitVariableUse(name Identifier)

	VisitDiagnostic(d Diagnostic)
}

// NopVisitor ignores every event. Embed it to implement a subset of Visitor.
type NopVisitor struct{}

func (NopVisitor) VisitEnterModule()                                 {}
func (NopVisitor) VisitEndOfModule()                                 {}
func (NopVisitor) VisitEnterBlockScope()                             {}
func (NopVisitor) VisitExitBlockScope()                              {}
func (NopVisitor) VisitEnterClassScope()                             {}
func (NopVisitor) VisitExitClassScope()                              {}
func (NopVisitor) VisitEnterForScope()                               {}
func (NopVisitor) VisitExitForScope()                                {}
func (NopVisitor) VisitEnterFunctionScope()                          {}
func (NopVisitor) VisitEnterNamedFunctionScope(Identifier)           {}
func (NopVisitor) VisitExitFunctionScope()                           {}
func (NopVisitor) VisitPropertyDeclaration(Identifier)               {}
func (NopVisitor) VisitVariableAssignment(Identifier)                {}
func (NopVisitor) VisitVariableDeclaration(Identifier, VariableKind) {}
func (NopVisitor) VisitVariableUse(Identifier)                       {}
func (NopVisitor) VisitDiagnostic(Diagnostic)                        {}

// Multi returns a Visitor that forwards every call to each of vs in order.
func Multi(vs ...Visitor) Visitor {
	return multiVisitor(vs)
}

type multiVisitor []Visitor

func (m multiVisitor) VisitEnterModule() {
	for _, v := range m {
		v.VisitEnterModule()
	}
}

func (m multiVisitor) VisitEndOfModule() {
	for _, v := range m {
		v.VisitEndOfModule()
	}
}

func (m multiVisitor) VisitEnterBlockScope() {
	for _, v := range m {
		v.VisitEnterBlockScope()
	}
}

func (m multiVisitor) VisitExitBlockScope() {
	for _, v := range m {
		v.VisitExitBlockScope()
	}
}

func (m multiVisitor) VisitEnterClassScope() {
	for _, v := range m {
		v.VisitEnterClassScope()
	}
}

func (m multiVisitor) VisitExitClassScope() {
	for _, v := range m {
		v.VisitExitClassScope()
	}
}

func (m multiVisitor) VisitEnterForScope() {
	for _, v := range m {
		v.VisitEnterForScope()
	}
}

func (m multiVisitor) VisitExitForScope() {
	for _, v := range m {
		v.VisitExitForScope()
	}
}

func (m multiVisitor) VisitEnterFunctionScope() {
	for _, v := range m {
		v.VisitEnterFunctionScope()
	}
}

func (m multiVisitor) VisitEnterNamedFunctionScope(name Identifier) {
	for _, v := range m {
		v.VisitEnterNamedFunctionScope(name)
	}
}

func (m multiVisitor) VisitExitFunctionScope() {
	for _, v := range m {
		v.VisitExitFunctionScope()
	}
}

func (m multiVisitor) VisitPropertyDeclaration(name Identifier) {
	for _, v := range m {
		v.VisitPropertyDeclaration(name)
	}
}

func (m multiVisitor) VisitVariableAssignment(name Identifier) {
	for _, v := range m {
		v.VisitVariableAssignment(name)
	}
}

func (m multiVisitor) VisitVariableDeclaration(name Identifier, kind VariableKind) {
	for _, v := range m {
		v.VisitVariableDeclaration(name, kind)
	}
}

func (m multiVisitor) VisitVariableUse(name Identifier) {
	for _, v := range m {
		v.VisitVariableUse(name)
	}
}

func (m multiVisitor) VisitDiagnostic(d Diagnostic) {
	for _, v := range m {
		v.VisitDiagnostic(d)
	}
}
