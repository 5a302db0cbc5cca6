package parser

import (
	"github.com/jsscope/jsscope/internal/lexer"
	"github.com/jsscope/jsscope/internal/types"
	"github.com/jsscope/jsscope/js"
)

// nodeID indexes arena.nodes.
type nodeID int32

const noNode nodeID = -1

type nodeKind uint8

const (
	nodeInvalid        nodeKind = iota // placeholder for a missing operand
	nodeVariable                       // identifier reference
	nodeLiteral                        // number, string, regexp, this, ...
	nodeTemplate                       // kids: substitutions
	nodeArray                          // kids: elements
	nodeObject                         // kids: properties and spreads
	nodeProperty                       // kids: [computed key or noNode, value]
	nodeSpread                         // kids: [operand]
	nodeUnary                          // kids: [operand]
	nodeUpdate                         // kids: [operand]
	nodeBinary                         // kids: [left, right]; includes comma
	nodeConditional                    // kids: [test, consequent, alternate]
	nodeAssign                         // kids: [target, value]; op is the operator
	nodeCall                           // kids: [callee, args...]
	nodeNew                            // kids: [callee, args...]
	nodeMember                         // kids: [object]
	nodeIndex                          // kids: [object, index]
	nodeFunction                       // buffered events of a nested body
	nodeTaggedTemplate                 // kids: [tag, substitutions...]
	nodeYield                          // kids: [operand] or none
)

// node is one expression in the arena. first and count locate its
// children in arena.kids, or its buffered events in arena.log for
// nodeFunction.
type node struct {
	kind  nodeKind
	op    lexer.TokenKind
	span  types.Span
	first int32
	count int32
}

type logOp uint8

const (
	logEvent logOp = iota
	logRef         // the events at log[first:first+count]
	logSkip        // the next count entries belong to a nested body
)

// logEntry is one entry of the event log. Bodies are buffered in place: a
// skip entry hides a nested body from the body around it, and a reference
// entry marks where the nested body is replayed. Nothing is copied, so
// deep nesting stays linear.
type logEntry struct {
	op    logOp
	first int32
	count int32
	event js.Event
}

// arena holds the expression trees and the buffered events of the current
// top-level statement.
type arena struct {
	nodes []node
	kids  []nodeID
	log   []logEntry
}

func (a *arena) reset() {
	a.nodes = a.nodes[:0]
	a.kids = a.kids[:0]
	clear(a.log)
	a.log = a.log[:0]
}

func (a *arena) add(kind nodeKind, op lexer.TokenKind, span types.Span, kids ...nodeID) nodeID {
	id := nodeID(len(a.nodes))
	a.nodes = append(a.nodes, node{
		kind:  kind,
		op:    op,
		span:  span,
		first: int32(len(a.kids)),
		count: int32(len(kids)),
	})
	a.kids = append(a.kids, kids...)
	return id
}

func (a *arena) leaf(kind nodeKind, span types.Span) nodeID {
	return a.add(kind, 0, span)
}

// function adds a node whose events are log[first:first+count].
func (a *arena) function(span types.Span, first, count int32) nodeID {
	id := nodeID(len(a.nodes))
	a.nodes = append(a.nodes, node{
		kind:  nodeFunction,
		span:  span,
		first: first,
		count: count,
	})
	return id
}

func (a *arena) get(id nodeID) node {
	return a.nodes[id]
}

// children returns the child IDs of n. The slice must not be modified.
func (a *arena) children(n node) []nodeID {
	return a.kids[n.first : n.first+n.count]
}

func (a *arena) child(n node, i int) nodeID {
	if i >= int(n.count) {
		return noNode
	}
	return a.kids[int(n.first)+i]
}

// beginBody starts buffering a nested body and returns the index of its
// skip entry.
func (a *arena) beginBody() int32 {
	a.log = append(a.log, logEntry{op: logSkip})
	return int32(len(a.log) - 1)
}

// endBody closes the body begun at open and returns its range.
func (a *arena) endBody(open int32) (first, count int32) {
	count = int32(len(a.log)) - open - 1
	a.log[open].count = count
	return open + 1, count
}

func (a *arena) record(e js.Event) {
	a.log = append(a.log, logEntry{event: e})
}

func (a *arena) reference(first, count int32) {
	a.log = append(a.log, logEntry{op: logRef, first: first, count: count})
}

// emit delivers the events of log[first:first+count] to v, expanding
// references and leaving out nested bodies.
func (a *arena) emit(first, count int32, v js.Visitor) {
	for i, end := first, first+count; i < end; i++ {
		switch e := &a.log[i]; e.op {
		case logSkip:
			i += e.count
		case logRef:
			a.emit(e.first, e.count, v)
		default:
			e.event.Apply(v)
		}
	}
}
