package parser

import (
	"github.com/jsscope/jsscope/internal/lexer"
	"github.com/jsscope/jsscope/internal/types"
	"github.com/jsscope/jsscope/js"
)

// parseFunctionDeclaration parses a function statement. The current token
// is the function keyword; for async functions, async has been consumed.
func (p *Parser) parseFunctionDeclaration(async, requireName bool) {
	kw := p.advance()
	ctx := functionContext{async: async, generator: p.match(lexer.TokStar)}
	if name := p.peek(); name.Kind.IsIdentifierLike() {
		p.advance()
		p.declare(p.ident(name.Span), js.VariableKindFunction)
	} else if requireName {
		p.report(js.DiagMissingNameInFunctionStatement, kw.Span)
	}
	p.parseFunctionRest(js.ScopeFunction, js.Identifier{}, ctx)
}

// parseFunctionExpression parses a function expression into a node that
// replays its events. The current token is the function keyword.
func (p *Parser) parseFunctionExpression(async bool, start types.ByteOffset) nodeID {
	first, count := p.buffer(func() {
		p.advance()
		ctx := functionContext{async: async, generator: p.match(lexer.TokStar)}
		if name := p.peek(); name.Kind.IsIdentifierLike() {
			p.advance()
			p.parseFunctionRest(js.ScopeNamedFunction, p.ident(name.Span), ctx)
			return
		}
		p.parseFunctionRest(js.ScopeFunction, js.Identifier{}, ctx)
	})
	return p.arena.function(p.spanFrom(start), first, count)
}

// parseFunctionRest parses a parameter list and body inside a new
// function scope.
func (p *Parser) parseFunctionRest(scope js.ScopeKind, name js.Identifier, ctx functionContext) {
	saved := p.fn
	p.fn = ctx
	p.enterScope(scope, name)
	if p.check(lexer.TokLParen) {
		p.parseParameters()
	} else {
		p.report(js.DiagUnexpectedToken, p.errorSpan())
	}
	p.parseFunctionBody()
	p.exitScope(scope)
	p.fn = saved
}

// parseParameters parses a parenthesized parameter list and declares each
// parameter. Defaults are evaluated in order, so a default may use the
// parameters before it.
func (p *Parser) parseParameters() {
	open := p.advance()
	for {
		tok := p.peek()
		if tok.Kind == lexer.TokRParen || tok.Kind.IsEnd() {
			break
		}
		p.match(lexer.TokDotDotDot)
		target, ok := p.parseBindingTarget()
		if !ok {
			p.report(js.DiagUnexpectedToken, p.errorSpan())
			if next := p.peek(); next.Kind != lexer.TokComma && next.Kind != lexer.TokRParen && !next.Kind.IsEnd() {
				p.advance()
			}
		} else {
			p.checkBindingPattern(target)
			init := noNode
			if p.match(lexer.TokEqual) {
				init = p.parseExpression(precAssign, 0)
			}
			// a default is evaluated before the name is bound
			p.visitPatternPrefix(target)
			p.visitExpression(init)
			p.visitPatternBindings(target, declareBinding(js.VariableKindParameter))
		}
		if !p.match(lexer.TokComma) {
			break
		}
	}
	p.expectClose(open)
}

// parseFunctionBody parses a braced function body. It opens no block
// scope of its own.
func (p *Parser) parseFunctionBody() {
	open := p.peek()
	if open.Kind != lexer.TokLBrace {
		p.report(js.DiagUnexpectedToken, p.errorSpan())
		return
	}
	p.advance()
	p.parseStatementList(open)
}

// parseArrowFunction parses an arrow function starting at its parameters.
// With parens set the parameters are a parenthesized list; otherwise the
// current token is the single parameter name.
func (p *Parser) parseArrowFunction(ctx functionContext, parens bool, start types.ByteOffset) nodeID {
	first, count := p.buffer(func() {
		saved := p.fn
		p.fn = ctx
		p.enterScope(js.ScopeFunction, js.Identifier{})
		if parens {
			p.parseParameters()
		} else {
			param := p.advance()
			p.declare(p.ident(param.Span), js.VariableKindParameter)
		}
		p.expect(lexer.TokArrow)
		if p.check(lexer.TokLBrace) {
			p.parseFunctionBody()
		} else {
			p.visitExpression(p.parseExpression(precAssign, 0))
		}
		p.exitScope(js.ScopeFunction)
		p.fn = saved
	})
	return p.arena.function(p.spanFrom(start), first, count)
}

// === Classes ===

func (p *Parser) parseClassDeclaration(requireName bool) {
	kw := p.advance()
	name, named := p.parseClassName()
	if !named && requireName {
		p.report(js.DiagMissingNameInClassStatement, kw.Span)
	}
	p.parseClassHeritage()
	if named {
		p.declare(name, js.VariableKindClass)
	}
	p.enterScope(js.ScopeClass, js.Identifier{})
	p.parseClassBody()
	p.exitScope(js.ScopeClass)
}

// parseClassExpression parses a class expression. Its name, if any, is
// declared inside the class scope.
func (p *Parser) parseClassExpression() nodeID {
	start := p.peek().Span.Start
	first, count := p.buffer(func() {
		p.advance()
		name, named := p.parseClassName()
		p.parseClassHeritage()
		p.enterScope(js.ScopeClass, js.Identifier{})
		if named {
			p.declare(name, js.VariableKindClass)
		}
		p.parseClassBody()
		p.exitScope(js.ScopeClass)
	})
	return p.arena.function(p.spanFrom(start), first, count)
}

func (p *Parser) parseClassName() (js.Identifier, bool) {
	if tok := p.peek(); tok.Kind.IsIdentifierLike() {
		p.advance()
		return p.ident(tok.Span), true
	}
	return js.Identifier{}, false
}

func (p *Parser) parseClassHeritage() {
	kw := p.peek()
	if kw.Kind != lexer.TokKwExtends {
		return
	}
	p.advance()
	p.visitExpression(p.parseUnary(&kw, 0))
}

func (p *Parser) parseClassBody() {
	open := p.peek()
	if open.Kind != lexer.TokLBrace {
		p.report(js.DiagUnexpectedToken, p.errorSpan())
		return
	}
	p.advance()
	for {
		tok := p.peek()
		switch {
		case tok.Kind == lexer.TokRBrace:
			p.advance()
			return
		case tok.Kind.IsEnd():
			p.report(js.DiagUnclosedCodeBlock, open.Span)
			return
		case tok.Kind == lexer.TokSemicolon:
			p.advance()
		default:
			p.parseClassMember()
		}
	}
}

// parseClassMember parses a method, accessor, field or static block. It
// always consumes at least one token.
func (p *Parser) parseClassMember() {
	if tok := p.peek(); tok.Kind == lexer.TokKwStatic && p.peekNext().Kind == lexer.TokLBrace {
		p.advance()
		p.parseBlock()
		return
	}

	ctx := functionContext{}
	var tok lexer.Token
	for {
		tok = p.peek()
		if tok.Kind == lexer.TokStar {
			p.advance()
			ctx.generator = true
			continue
		}
		switch tok.Kind {
		case lexer.TokKwStatic, lexer.TokKwGet, lexer.TokKwSet, lexer.TokKwAsync:
			if p.isMemberModifier() {
				p.advance()
				if tok.Kind == lexer.TokKwAsync {
					ctx.async = true
				}
				continue
			}
		}
		break
	}

	named := false
	switch {
	case tok.Kind == lexer.TokLBracket:
		p.advance()
		p.visitExpression(p.parseExpression(precAssign, 0))
		p.expect(lexer.TokRBracket)
	case tok.Kind == lexer.TokIdentifier || tok.Kind == lexer.TokPrivateName || tok.Kind.IsKeyword():
		p.advance()
		named = true
	case tok.Kind == lexer.TokString || tok.Kind == lexer.TokNumber:
		p.advance()
	default:
		p.report(js.DiagUnexpectedToken, tok.Span)
		p.advance()
		return
	}
	if named {
		p.property(p.ident(tok.Span))
	}

	if p.check(lexer.TokLParen) {
		p.parseFunctionRest(js.ScopeFunction, js.Identifier{}, ctx)
		return
	}
	if p.match(lexer.TokEqual) {
		p.visitExpression(p.parseExpression(precAssign, 0))
	}
	p.consumeSemicolon(js.DiagMissingSemicolonAfterStatement)
}
