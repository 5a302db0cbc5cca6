package parser

import (
	"github.com/jsscope/jsscope/internal/lexer"
	"github.com/jsscope/jsscope/internal/types"
	"github.com/jsscope/jsscope/js"
)

// parseStatement parses one statement. Unless the current token is '}'
// or the end of input, it consumes at least one token.
func (p *Parser) parseStatement() {
	tok := p.peek()
	switch tok.Kind {
	case lexer.TokEOF, lexer.TokFatal:
		return

	case lexer.TokSemicolon:
		p.advance()

	case lexer.TokLBrace:
		p.parseBlock()

	case lexer.TokKwVar:
		p.parseVariableStatement(js.VariableKindVar)
	case lexer.TokKwConst:
		p.parseVariableStatement(js.VariableKindConst)
	case lexer.TokKwLet:
		if p.letStartsDeclaration() {
			p.parseVariableStatement(js.VariableKindLet)
			return
		}
		p.parseExpressionStatement()

	case lexer.TokKwFunction:
		p.parseFunctionDeclaration(false, true)
	case lexer.TokKwAsync:
		if next := p.peekNext(); next.Kind == lexer.TokKwFunction && !next.NewlineBefore {
			p.advance()
			p.parseFunctionDeclaration(true, true)
			return
		}
		p.parseExpressionStatement()
	case lexer.TokKwClass:
		p.parseClassDeclaration(true)

	case lexer.TokKwIf:
		p.parseIf()
	case lexer.TokKwDo:
		p.parseDoWhile()
	case lexer.TokKwWhile:
		p.parseWhile()
	case lexer.TokKwFor:
		p.parseFor()
	case lexer.TokKwSwitch:
		p.parseSwitch()
	case lexer.TokKwTry:
		p.parseTry()
	case lexer.TokKwWith:
		p.parseWith()

	case lexer.TokKwReturn:
		p.advance()
		if next := p.peek(); !next.NewlineBefore && !endsStatement(next.Kind) {
			p.visitExpression(p.parseExpression(precComma, flagTopLevel))
		}
		p.consumeSemicolon(js.DiagMissingSemicolonAfterStatement)
	case lexer.TokKwThrow:
		p.advance()
		p.visitExpression(p.parseExpression(precComma, flagTopLevel))
		p.consumeSemicolon(js.DiagMissingSemicolonAfterStatement)
	case lexer.TokKwBreak, lexer.TokKwContinue:
		p.advance()
		if label := p.peek(); label.Kind.IsIdentifierLike() && !label.NewlineBefore {
			p.advance()
		}
		p.consumeSemicolon(js.DiagMissingSemicolonAfterStatement)
	case lexer.TokKwDebugger:
		p.advance()
		p.consumeSemicolon(js.DiagMissingSemicolonAfterStatement)

	case lexer.TokKwImport:
		if next := p.peekNext(); next.Kind == lexer.TokLParen || next.Kind == lexer.TokDot {
			p.parseExpressionStatement()
			return
		}
		p.parseImport()
	case lexer.TokKwExport:
		p.parseExport()

	default:
		switch {
		case tok.Kind.IsIdentifierLike() && p.peekNext().Kind == lexer.TokColon:
			// label
			p.advance()
			p.advance()
			p.parseStatement()
		case canStartExpression(tok.Kind) || isOperator(tok.Kind):
			p.parseExpressionStatement()
		default:
			p.report(js.DiagUnexpectedToken, tok.Span)
			p.advance()
		}
	}
}

func endsStatement(k lexer.TokenKind) bool {
	return k == lexer.TokSemicolon || k == lexer.TokRBrace || k.IsEnd()
}

func (p *Parser) parseExpressionStatement() {
	p.visitExpression(p.parseExpression(precComma, flagTopLevel))
	p.consumeSemicolon(js.DiagMissingSemicolonAfterExpression)
}

// consumeSemicolon ends a statement. A semicolon is inserted before '}',
// at end of input and after a line break; anywhere else its absence is
// reported as a zero-width diagnostic after the previous token.
func (p *Parser) consumeSemicolon(kind js.DiagKind) {
	tok := p.peek()
	switch {
	case tok.Kind == lexer.TokSemicolon:
		p.advance()
	case tok.Kind == lexer.TokRBrace, tok.Kind.IsEnd(), tok.NewlineBefore:
	default:
		at := p.lastSpan.End
		p.report(kind, types.NewSpan(at, at))
	}
}

// parseBlock parses a braced statement list in a new block scope.
func (p *Parser) parseBlock() {
	open := p.advance()
	p.enterScope(js.ScopeBlock, js.Identifier{})
	p.parseStatementList(open)
	p.exitScope(js.ScopeBlock)
}

// parseStatementList parses statements up to and including the '}'
// matching open.
func (p *Parser) parseStatementList(open lexer.Token) {
	for {
		tok := p.peek()
		switch {
		case tok.Kind == lexer.TokRBrace:
			p.advance()
			return
		case tok.Kind.IsEnd():
			p.report(js.DiagUnclosedCodeBlock, open.Span)
			return
		}
		p.parseStatement()
		if next := p.peek(); next.Span == tok.Span && !next.Kind.IsEnd() {
			p.report(js.DiagUnexpectedToken, next.Span)
			p.advance()
		}
	}
}

// parseBody parses the body of an if, loop, with or labeled statement.
func (p *Parser) parseBody() {
	if tok := p.peek(); tok.Kind == lexer.TokRBrace || tok.Kind.IsEnd() {
		p.report(js.DiagExpectedExpression, p.errorSpan())
		return
	}
	p.parseStatement()
}

// === Variable declarations ===

// letStartsDeclaration reports whether the let at the current position
// begins a declaration rather than an expression using a variable named
// let.
func (p *Parser) letStartsDeclaration() bool {
	next := p.peekNext()
	switch next.Kind {
	case lexer.TokDot, lexer.TokQuestionDot, lexer.TokLParen, lexer.TokArrow,
		lexer.TokQuestion, lexer.TokComma:
		return false
	case lexer.TokPlusPlus, lexer.TokMinusMinus:
		return next.NewlineBefore
	case lexer.TokKwIn, lexer.TokKwOf:
		return false
	}
	if next.Kind.IsAssignmentOperator() {
		return false
	}
	_, binary := binaryPrecedence(next.Kind, 0)
	return !binary
}

func (p *Parser) parseVariableStatement(kind js.VariableKind) {
	kw := p.advance()
	p.parseDeclarators(kw, kind, 0, true)
	p.consumeSemicolon(js.DiagMissingSemicolonAfterStatement)
}

// declarator is one binding of a var, let or const.
type declarator struct {
	target nodeID
	init   nodeID
}

// parseDeclarators parses the comma-separated bindings after kw. With
// visit set, each binding's events are emitted as soon as it is parsed;
// otherwise the declarators are returned for the caller to visit.
func (p *Parser) parseDeclarators(kw lexer.Token, kind js.VariableKind, flags exprFlags, visit bool) []declarator {
	var decls []declarator
	count := 0
	for {
		tok := p.peek()
		target, ok := p.parseBindingTarget()
		if !ok {
			if count == 0 && (endsStatement(tok.Kind) || tok.NewlineBefore) {
				p.report(js.DiagLetWithNoBindings, kw.Span)
				return decls
			}
			p.report(js.DiagInvalidBindingInLetStatement, tok.Span)
			if !endsStatement(tok.Kind) {
				p.advance()
			}
			return decls
		}
		p.checkBindingPattern(target)
		init := noNode
		if p.match(lexer.TokEqual) {
			init = p.parseExpression(precAssign, flags)
		}
		count++
		d := declarator{target: target, init: init}
		if visit {
			p.visitBinding(d.target, d.init, kind)
		} else {
			decls = append(decls, d)
		}

		comma := p.peek()
		if comma.Kind != lexer.TokComma {
			return decls
		}
		p.advance()
		if next := p.peek(); endsStatement(next.Kind) {
			p.report(js.DiagStrayCommaInLetStatement, comma.Span)
			return decls
		}
	}
}

// parseBindingTarget parses a binding identifier or a destructuring
// pattern. It consumes nothing and returns false for anything else.
func (p *Parser) parseBindingTarget() (nodeID, bool) {
	tok := p.peek()
	switch {
	case tok.Kind.IsIdentifierLike():
		p.advance()
		return p.arena.leaf(nodeVariable, tok.Span), true
	case tok.Kind == lexer.TokLBrace:
		return p.parseObjectLiteral(), true
	case tok.Kind == lexer.TokLBracket:
		return p.parseArrayLiteral(), true
	}
	return noNode, false
}

// checkBindingPattern reports pattern elements that cannot be declared.
func (p *Parser) checkBindingPattern(id nodeID) {
	n := p.arena.get(id)
	switch n.kind {
	case nodeInvalid, nodeVariable:
	case nodeObject, nodeArray:
		for _, kid := range p.arena.children(n) {
			p.checkBindingPattern(kid)
		}
	case nodeProperty:
		p.checkBindingPattern(p.arena.child(n, 1))
	case nodeSpread:
		p.checkBindingPattern(p.arena.child(n, 0))
	case nodeAssign:
		if n.op == lexer.TokEqual {
			p.checkBindingPattern(p.arena.child(n, 0))
			return
		}
		p.report(js.DiagInvalidBindingInLetStatement, n.span)
	default:
		p.report(js.DiagInvalidBindingInLetStatement, n.span)
	}
}

// === Control flow ===

// parseCondition parses a parenthesized expression and emits its events.
func (p *Parser) parseCondition() {
	open := p.peek()
	if open.Kind != lexer.TokLParen {
		p.report(js.DiagUnexpectedToken, p.errorSpan())
		p.visitExpression(p.parseExpression(precComma, 0))
		return
	}
	p.advance()
	p.visitExpression(p.parseExpression(precComma, 0))
	p.expectClose(open)
}

func (p *Parser) parseIf() {
	p.advance()
	p.parseCondition()
	p.parseBody()
	if p.match(lexer.TokKwElse) {
		p.parseBody()
	}
}

func (p *Parser) parseDoWhile() {
	p.advance()
	p.parseBody()
	if !p.expect(lexer.TokKwWhile) {
		return
	}
	p.parseCondition()
	p.match(lexer.TokSemicolon)
}

func (p *Parser) parseWhile() {
	p.advance()
	p.parseCondition()
	p.parseBody()
}

func (p *Parser) parseWith() {
	p.advance()
	p.parseCondition()
	p.parseBody()
}

func (p *Parser) parseFor() {
	p.advance()
	p.match(lexer.TokKwAwait)
	open := p.peek()
	if !p.expect(lexer.TokLParen) {
		return
	}

	tok := p.peek()
	switch {
	case tok.Kind == lexer.TokSemicolon:
		p.advance()
		p.parseForRest(open)

	case tok.Kind == lexer.TokKwVar, tok.Kind == lexer.TokKwConst,
		tok.Kind == lexer.TokKwLet && p.letStartsDeclaration():
		kind := js.VariableKindVar
		switch tok.Kind {
		case lexer.TokKwLet:
			kind = js.VariableKindLet
		case lexer.TokKwConst:
			kind = js.VariableKindConst
		}
		lexical := kind != js.VariableKindVar
		if lexical {
			p.enterScope(js.ScopeFor, js.Identifier{})
		}
		kw := p.advance()
		decls := p.parseDeclarators(kw, kind, flagNoIn, false)
		if next := p.peek(); (next.Kind == lexer.TokKwIn || next.Kind == lexer.TokKwOf) && len(decls) == 1 {
			p.advance()
			iterated := p.parseExpression(precAssign, 0)
			p.expectClose(open)
			p.visitExpression(iterated)
			p.visitBinding(decls[0].target, decls[0].init, kind)
			p.parseBody()
		} else {
			for _, d := range decls {
				p.visitBinding(d.target, d.init, kind)
			}
			p.expect(lexer.TokSemicolon)
			p.parseForRest(open)
		}
		if lexical {
			p.exitScope(js.ScopeFor)
		}

	default:
		init := p.parseExpression(precComma, flagNoIn)
		if next := p.peek(); next.Kind == lexer.TokKwIn || next.Kind == lexer.TokKwOf {
			p.advance()
			p.checkAssignmentTarget(init, lexer.TokEqual)
			iterated := p.parseExpression(precAssign, 0)
			p.expectClose(open)
			p.visitExpression(iterated)
			p.visitPatternPrefix(init)
			p.visitPatternBindings(init, assignBinding)
			p.parseBody()
			return
		}
		p.visitExpression(init)
		p.expect(lexer.TokSemicolon)
		p.parseForRest(open)
	}
}

// parseForRest parses the condition, update and body of a C-style for
// loop. The update is evaluated after the body.
func (p *Parser) parseForRest(open lexer.Token) {
	if !p.check(lexer.TokSemicolon) {
		p.visitExpression(p.parseExpression(precComma, 0))
	}
	p.expect(lexer.TokSemicolon)
	update := noNode
	if tok := p.peek(); tok.Kind != lexer.TokRParen && !tok.Kind.IsEnd() {
		update = p.parseExpression(precComma, 0)
	}
	p.expectClose(open)
	p.parseBody()
	p.visitExpression(update)
}

func (p *Parser) parseSwitch() {
	p.advance()
	p.parseCondition()
	open := p.peek()
	if !p.expect(lexer.TokLBrace) {
		return
	}
	p.enterScope(js.ScopeBlock, js.Identifier{})
	defer p.exitScope(js.ScopeBlock)
	for {
		tok := p.peek()
		switch {
		case tok.Kind == lexer.TokRBrace:
			p.advance()
			return
		case tok.Kind.IsEnd():
			p.report(js.DiagUnclosedCodeBlock, open.Span)
			return
		case tok.Kind == lexer.TokKwCase:
			p.advance()
			p.visitExpression(p.parseExpression(precComma, 0))
			p.expect(lexer.TokColon)
		case tok.Kind == lexer.TokKwDefault:
			p.advance()
			p.expect(lexer.TokColon)
		default:
			p.parseStatement()
			if next := p.peek(); next.Span == tok.Span && !next.Kind.IsEnd() {
				p.report(js.DiagUnexpectedToken, next.Span)
				p.advance()
			}
		}
	}
}

func (p *Parser) parseTry() {
	p.advance()
	p.parseBlockOrReport()
	handled := false
	if p.match(lexer.TokKwCatch) {
		handled = true
		if open := p.peek(); open.Kind == lexer.TokLParen {
			p.advance()
			p.enterScope(js.ScopeBlock, js.Identifier{})
			if target, ok := p.parseBindingTarget(); ok {
				p.checkBindingPattern(target)
				p.visitBinding(target, noNode, js.VariableKindCatch)
			} else {
				p.report(js.DiagUnexpectedToken, p.errorSpan())
			}
			p.expectClose(open)
			if brace := p.peek(); brace.Kind == lexer.TokLBrace {
				p.advance()
				p.parseStatementList(brace)
			} else {
				p.report(js.DiagUnexpectedToken, p.errorSpan())
			}
			p.exitScope(js.ScopeBlock)
		} else {
			p.parseBlockOrReport()
		}
	}
	if p.match(lexer.TokKwFinally) {
		handled = true
		p.parseBlockOrReport()
	}
	if !handled {
		p.report(js.DiagUnexpectedToken, p.errorSpan())
	}
}

func (p *Parser) parseBlockOrReport() {
	if !p.check(lexer.TokLBrace) {
		p.report(js.DiagUnexpectedToken, p.errorSpan())
		return
	}
	p.parseBlock()
}
