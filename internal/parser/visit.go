package parser

import (
	"github.com/jsscope/jsscope/internal/lexer"
	"github.com/jsscope/jsscope/js"
)

// binding says what reaching a name in a pattern means: an assignment, or
// a declaration of the given kind.
type binding struct {
	declare bool
	kind    js.VariableKind
}

var assignBinding = binding{}

func declareBinding(kind js.VariableKind) binding {
	return binding{declare: true, kind: kind}
}

// visitExpression emits the events of evaluating the expression id.
func (p *Parser) visitExpression(id nodeID) {
	if id == noNode || p.fatal {
		return
	}
	n := p.arena.get(id)
	switch n.kind {
	case nodeInvalid, nodeLiteral:
	case nodeVariable:
		p.use(p.ident(n.span))
	case nodeFunction:
		p.replay(n.first, n.count)
	case nodeAssign:
		p.visitAssignment(n)
	case nodeUpdate:
		operand := p.arena.get(p.arena.child(n, 0))
		if operand.kind == nodeVariable {
			name := p.ident(operand.span)
			p.use(name)
			p.assign(name)
			return
		}
		p.visitExpression(p.arena.child(n, 0))
	case nodeProperty:
		p.visitExpression(p.arena.child(n, 0))
		p.visitExpression(p.arena.child(n, 1))
	default:
		for _, kid := range p.arena.children(n) {
			p.visitExpression(kid)
		}
	}
}

// visitAssignment emits the events of an assignment. For '=' the target's
// own subexpressions are evaluated first, then the value, then defaults
// and assignments in textual order. Compound assignments read the target
// before evaluating the value.
func (p *Parser) visitAssignment(n node) {
	target, value := p.arena.child(n, 0), p.arena.child(n, 1)
	if n.op == lexer.TokEqual {
		p.visitPatternPrefix(target)
		p.visitExpression(value)
		p.visitPatternBindings(target, assignBinding)
		return
	}
	t := p.arena.get(target)
	if t.kind != nodeVariable {
		p.visitExpression(target)
		p.visitExpression(value)
		return
	}
	name := p.ident(t.span)
	p.use(name)
	p.visitExpression(value)
	p.assign(name)
}

// visitPatternPrefix emits the uses inside an assignment target that are
// evaluated before the assigned value: computed keys, and the object and
// index of member targets.
func (p *Parser) visitPatternPrefix(id nodeID) {
	if id == noNode {
		return
	}
	n := p.arena.get(id)
	switch n.kind {
	case nodeObject, nodeArray:
		for _, kid := range p.arena.children(n) {
			p.visitPatternPrefix(kid)
		}
	case nodeProperty:
		p.visitExpression(p.arena.child(n, 0))
		p.visitPatternPrefix(p.arena.child(n, 1))
	case nodeSpread:
		p.visitPatternPrefix(p.arena.child(n, 0))
	case nodeAssign:
		if n.op == lexer.TokEqual {
			p.visitPatternPrefix(p.arena.child(n, 0))
		}
	case nodeMember, nodeIndex:
		for _, kid := range p.arena.children(n) {
			p.visitExpression(kid)
		}
	}
}

// visitPatternBindings emits the defaults and the bound names of a target
// after its value has been evaluated.
func (p *Parser) visitPatternBindings(id nodeID, b binding) {
	if id == noNode || p.fatal {
		return
	}
	n := p.arena.get(id)
	switch n.kind {
	case nodeVariable:
		name := p.ident(n.span)
		if b.declare {
			p.declare(name, b.kind)
		} else {
			p.assign(name)
		}
	case nodeObject, nodeArray:
		for _, kid := range p.arena.children(n) {
			p.visitPatternBindings(kid, b)
		}
	case nodeProperty:
		p.visitPatternBindings(p.arena.child(n, 1), b)
	case nodeSpread:
		p.visitPatternBindings(p.arena.child(n, 0), b)
	case nodeAssign:
		if n.op == lexer.TokEqual {
			p.visitExpression(p.arena.child(n, 1))
			p.visitPatternBindings(p.arena.child(n, 0), b)
		}
	}
}

// visitBinding emits the events of a declaration or parameter: the
// target's computed keys, the initializer, then defaults and declarations.
func (p *Parser) visitBinding(target, init nodeID, kind js.VariableKind) {
	p.visitPatternPrefix(target)
	p.visitExpression(init)
	p.visitPatternBindings(target, declareBinding(kind))
}
