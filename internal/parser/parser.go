// Package parser parses JavaScript and reports program structure to a
// js.Visitor.
//
// The parser does not build a syntax tree for the caller. Each expression
// is parsed into a small temporary tree held in an arena, then walked to
// emit variable uses, assignments and declarations in evaluation order.
// The arena is reset before each top-level statement.
//
// Parsing never stops on a syntax error: the error is reported as a
// diagnostic, a placeholder is synthesized where needed and parsing
// continues. Only fatal lexical errors (unterminated strings, templates,
// regular expressions and block comments) end the current parse unit.
package parser

import (
	"log/slog"

	"github.com/jsscope/jsscope/internal/lexer"
	"github.com/jsscope/jsscope/internal/types"
	"github.com/jsscope/jsscope/js"
)

// functionContext tracks what the innermost enclosing function allows.
type functionContext struct {
	async     bool
	generator bool
}

// Parser reads tokens from a lexer and reports structure to a visitor.
type Parser struct {
	source []byte
	lex    *lexer.Lexer

	// out receives diagnostics, and events unless the body of a function,
	// arrow or class expression is being buffered in the arena.
	out       js.Visitor
	buffering int

	arena arena
	// arrows caches arrowAhead verdicts by the offset of the '('.
	arrows   map[types.ByteOffset]bool
	lastSpan types.Span
	fn       functionContext
	fatal    bool
	reported int
	types.Logger
}

// New returns a Parser over source that reports to v.
// Pass nil for logger to disable logging.
func New(source []byte, v js.Visitor, logger *slog.Logger) *Parser {
	var lexLogger *slog.Logger
	if logger != nil {
		lexLogger = logger.With(slog.String("component", "lexer"))
	}
	p := &Parser{
		source: source,
		lex:    lexer.New(source, lexLogger),
		out:    v,
		arrows: make(map[types.ByteOffset]bool),
		Logger: types.Logger{L: logger},
	}
	p.Log(slog.LevelDebug, "parser initialized", slog.Int("bytes", len(source)))
	return p
}

// ParseModule parses statements until end of input. The events are
// bracketed by enter_module and end_of_module.
func (p *Parser) ParseModule() js.Outcome {
	before := p.reported
	p.enterScope(js.ScopeModule, js.Identifier{})
	statements := 0
	for !p.peek().Kind.IsEnd() {
		p.parseTopLevelStatement()
		statements++
	}
	p.exitScope(js.ScopeModule)
	outcome := p.outcome(before)
	p.Log(slog.LevelDebug, "module parsed",
		slog.Int("statements", statements),
		slog.Int("diagnostics", p.reported-before),
		slog.String("outcome", outcome.String()))
	return outcome
}

// ParseStatement parses a single statement. At end of input it does
// nothing and returns OutcomeOK, or OutcomeFatal after a fatal error.
func (p *Parser) ParseStatement() js.Outcome {
	before := p.reported
	if !p.peek().Kind.IsEnd() {
		p.parseTopLevelStatement()
	}
	return p.outcome(before)
}

// ParseExpression parses one expression, including comma expressions, and
// emits its events.
func (p *Parser) ParseExpression() js.Outcome {
	before := p.reported
	p.resetStatement()
	tree := p.parseExpression(precComma, flagTopLevel)
	p.visitExpression(tree)
	return p.outcome(before)
}

// AtEOF reports whether the parser has consumed all input or stopped on a
// fatal error.
func (p *Parser) AtEOF() bool {
	return p.peek().Kind.IsEnd()
}

func (p *Parser) outcome(before int) js.Outcome {
	switch {
	case p.fatal:
		return js.OutcomeFatal
	case p.reported > before:
		return js.OutcomeRecovered
	default:
		return js.OutcomeOK
	}
}

// resetStatement drops the per-statement state.
func (p *Parser) resetStatement() {
	p.arena.reset()
	clear(p.arrows)
}

func (p *Parser) parseTopLevelStatement() {
	p.resetStatement()
	start := p.peek()
	p.parseStatement()
	if tok := p.peek(); !tok.Kind.IsEnd() && tok.Span == start.Span {
		p.report(js.DiagUnexpectedToken, tok.Span)
		p.advance()
	}
}

// === Token helpers ===

// peek returns the current token. Diagnostics the lexer produced while
// scanning it are reported first.
func (p *Parser) peek() lexer.Token {
	if p.lex.HasDiagnostics() {
		for _, d := range p.lex.TakeDiagnostics() {
			p.report(d.Kind, d.Span)
		}
	}
	tok := p.lex.Peek()
	if tok.Kind == lexer.TokFatal && !p.fatal {
		p.fatal = true
		p.Log(slog.LevelDebug, "fatal lexical error",
			slog.Int("offset", int(tok.Span.Start)))
	}
	return tok
}

// advance consumes the current token and returns it.
func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if tok.Kind == lexer.TokFatal {
		return tok
	}
	p.lastSpan = tok.Span
	p.lex.Skip()
	return tok
}

func (p *Parser) check(kind lexer.TokenKind) bool {
	return p.peek().Kind == kind
}

// match consumes the current token if it has the given kind.
func (p *Parser) match(kind lexer.TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of the given kind or reports an unexpected
// token without consuming anything.
func (p *Parser) expect(kind lexer.TokenKind) bool {
	if p.match(kind) {
		return true
	}
	p.report(js.DiagUnexpectedToken, p.errorSpan())
	return false
}

// expectClose consumes a closing parenthesis. A missing one is reported
// at the opening parenthesis.
func (p *Parser) expectClose(open lexer.Token) {
	if !p.match(lexer.TokRParen) {
		p.report(js.DiagUnmatchedParenthesis, open.Span)
	}
}

// peekNext returns the token after the current one without consuming
// either.
func (p *Parser) peekNext() lexer.Token {
	p.peek()
	cp := p.lex.Checkpoint()
	p.lex.Skip()
	tok := p.lex.Peek()
	p.lex.Restore(cp)
	return tok
}

// peekSecond returns the token two positions ahead.
func (p *Parser) peekSecond() lexer.Token {
	p.peek()
	cp := p.lex.Checkpoint()
	p.lex.Skip()
	p.lex.Skip()
	tok := p.lex.Peek()
	p.lex.Restore(cp)
	return tok
}

// errorSpan is where a diagnostic about the current position goes: the
// current token, or the last consumed token at end of input.
func (p *Parser) errorSpan() types.Span {
	tok := p.peek()
	if tok.Kind == lexer.TokEOF && !p.lastSpan.IsEmpty() {
		return p.lastSpan
	}
	return tok.Span
}

// spanFrom returns the span from start to the end of the last consumed
// token.
func (p *Parser) spanFrom(start types.ByteOffset) types.Span {
	end := p.lastSpan.End
	if end < start {
		end = start
	}
	return types.NewSpan(start, end)
}

// ident returns the identifier at span. Escapes in the name are decoded;
// the span still covers the text as written.
func (p *Parser) ident(span types.Span) js.Identifier {
	return js.Identifier{Name: lexer.DecodeIdentifier(span.Bytes(p.source)), Span: span}
}

// === Reporting ===

func (p *Parser) report(kind js.DiagKind, span types.Span) {
	if p.fatal {
		return
	}
	p.reported++
	if p.TraceEnabled() {
		p.Trace("diagnostic",
			slog.String("kind", kind.String()),
			slog.Int("start", int(span.Start)),
			slog.Int("end", int(span.End)))
	}
	p.out.VisitDiagnostic(js.Diagnostic{Kind: kind, Span: span})
}

// emit delivers an event, or buffers it while a nested body is parsed.
func (p *Parser) emit(e js.Event) {
	if p.fatal {
		return
	}
	if p.TraceEnabled() {
		p.Trace("event",
			slog.String("kind", e.Kind.String()),
			slog.String("name", e.Name))
	}
	if p.buffering > 0 {
		p.arena.record(e)
		return
	}
	e.Apply(p.out)
}

func (p *Parser) emitName(kind js.EventKind, name js.Identifier) {
	p.emit(js.Event{Kind: kind, Name: name.Name, Span: name.Span})
}

var (
	enterEvents = map[js.ScopeKind]js.EventKind{
		js.ScopeModule:        js.EventEnterModule,
		js.ScopeFunction:      js.EventEnterFunctionScope,
		js.ScopeNamedFunction: js.EventEnterNamedFunctionScope,
		js.ScopeBlock:         js.EventEnterBlockScope,
		js.ScopeClass:         js.EventEnterClassScope,
		js.ScopeFor:           js.EventEnterForScope,
	}
	exitEvents = map[js.ScopeKind]js.EventKind{
		js.ScopeModule:        js.EventEndOfModule,
		js.ScopeFunction:      js.EventExitFunctionScope,
		js.ScopeNamedFunction: js.EventExitFunctionScope,
		js.ScopeBlock:         js.EventExitBlockScope,
		js.ScopeClass:         js.EventExitClassScope,
		js.ScopeFor:           js.EventExitForScope,
	}
)

func (p *Parser) enterScope(kind js.ScopeKind, name js.Identifier) {
	if kind == js.ScopeNamedFunction {
		p.emitName(js.EventEnterNamedFunctionScope, name)
		return
	}
	if ev, ok := enterEvents[kind]; ok {
		p.emit(js.Event{Kind: ev})
	}
}

func (p *Parser) exitScope(kind js.ScopeKind) {
	if ev, ok := exitEvents[kind]; ok {
		p.emit(js.Event{Kind: ev})
	}
}

func (p *Parser) declare(name js.Identifier, kind js.VariableKind) {
	p.emit(js.Event{Kind: js.EventVariableDeclaration, Name: name.Name, Span: name.Span, VarKind: kind})
}

func (p *Parser) use(name js.Identifier) {
	p.emitName(js.EventVariableUse, name)
}

func (p *Parser) assign(name js.Identifier) {
	p.emitName(js.EventVariableAssignment, name)
}

func (p *Parser) property(name js.Identifier) {
	p.emitName(js.EventPropertyDeclaration, name)
}

// replay delivers the events buffered for a nested body. Inside another
// buffered body it only records a reference to them.
func (p *Parser) replay(first, count int32) {
	if p.fatal {
		return
	}
	if p.buffering > 0 {
		p.arena.reference(first, count)
		return
	}
	p.arena.emit(first, count, p.out)
}

// buffer runs parse with events held in the arena and returns the range
// they occupy. Diagnostics still go straight to the output.
func (p *Parser) buffer(parse func()) (first, count int32) {
	open := p.arena.beginBody()
	p.buffering++
	parse()
	p.buffering--
	return p.arena.endBody(open)
}
