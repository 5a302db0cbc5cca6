package parser

import (
	"github.com/jsscope/jsscope/internal/lexer"
	"github.com/jsscope/jsscope/js"
)

// parseImport parses an import declaration. Every local binding is
// declared with VariableKindImport.
func (p *Parser) parseImport() {
	p.advance()
	if p.check(lexer.TokString) {
		p.advance()
		p.parseImportAttributes()
		p.consumeSemicolon(js.DiagMissingSemicolonAfterStatement)
		return
	}

	if tok := p.peek(); tok.Kind.IsIdentifierLike() {
		p.advance()
		p.declare(p.ident(tok.Span), js.VariableKindImport)
		if !p.match(lexer.TokComma) {
			p.parseModuleSource()
			return
		}
	}

	switch tok := p.peek(); tok.Kind {
	case lexer.TokStar:
		p.advance()
		if !p.expect(lexer.TokKwAs) {
			break
		}
		if name := p.peek(); name.Kind.IsIdentifierLike() {
			p.advance()
			p.declare(p.ident(name.Span), js.VariableKindImport)
		} else {
			p.report(js.DiagUnexpectedToken, p.errorSpan())
		}
	case lexer.TokLBrace:
		p.parseImportSpecifiers()
	default:
		p.report(js.DiagUnexpectedToken, p.errorSpan())
	}
	p.parseModuleSource()
}

// parseImportSpecifiers parses { a, b as c, "d" as e }.
func (p *Parser) parseImportSpecifiers() {
	open := p.advance()
	for {
		tok := p.peek()
		switch {
		case tok.Kind == lexer.TokRBrace:
			p.advance()
			return
		case tok.Kind.IsEnd():
			p.report(js.DiagUnclosedCodeBlock, open.Span)
			return
		case tok.Kind == lexer.TokComma:
			p.advance()
			continue
		case tok.Kind == lexer.TokString || tok.Kind == lexer.TokIdentifier || tok.Kind.IsKeyword():
		default:
			p.report(js.DiagUnexpectedToken, tok.Span)
			p.advance()
			continue
		}

		local := p.advance()
		if p.match(lexer.TokKwAs) {
			alias := p.peek()
			if !alias.Kind.IsIdentifierLike() {
				p.report(js.DiagUnexpectedToken, p.errorSpan())
				continue
			}
			local = p.advance()
		}
		if local.Kind.IsIdentifierLike() {
			p.declare(p.ident(local.Span), js.VariableKindImport)
		} else {
			p.report(js.DiagUnexpectedToken, local.Span)
		}
	}
}

// parseModuleSource parses from "module" and the statement end.
func (p *Parser) parseModuleSource() {
	if p.expect(lexer.TokKwFrom) {
		p.expect(lexer.TokString)
	}
	p.parseImportAttributes()
	p.consumeSemicolon(js.DiagMissingSemicolonAfterStatement)
}

// parseImportAttributes skips a with { ... } or assert { ... } clause.
func (p *Parser) parseImportAttributes() {
	tok := p.peek()
	if tok.NewlineBefore {
		return
	}
	if tok.Kind != lexer.TokKwWith && !(tok.Kind == lexer.TokIdentifier && tok.Text(p.source) == "assert") {
		return
	}
	p.advance()
	open := p.peek()
	if !p.expect(lexer.TokLBrace) {
		return
	}
	for {
		tok := p.advance()
		switch {
		case tok.Kind == lexer.TokRBrace:
			return
		case tok.Kind.IsEnd():
			p.report(js.DiagUnclosedCodeBlock, open.Span)
			return
		}
	}
}

// parseExport parses an export declaration. Exported declarations are
// parsed as ordinary statements; a local export list uses its names.
func (p *Parser) parseExport() {
	p.advance()
	tok := p.peek()
	switch tok.Kind {
	case lexer.TokKwDefault:
		p.advance()
		p.parseExportDefault()

	case lexer.TokStar:
		p.advance()
		if p.match(lexer.TokKwAs) {
			if name := p.peek(); name.Kind == lexer.TokString || name.Kind == lexer.TokIdentifier || name.Kind.IsKeyword() {
				p.advance()
			} else {
				p.report(js.DiagUnexpectedToken, p.errorSpan())
			}
		}
		p.parseModuleSource()

	case lexer.TokLBrace:
		p.parseExportSpecifiers()

	case lexer.TokKwVar, lexer.TokKwLet, lexer.TokKwConst, lexer.TokKwFunction,
		lexer.TokKwAsync, lexer.TokKwClass:
		p.parseStatement()

	default:
		p.report(js.DiagUnexpectedToken, p.errorSpan())
		if !tok.Kind.IsEnd() {
			p.advance()
		}
	}
}

func (p *Parser) parseExportDefault() {
	tok := p.peek()
	switch tok.Kind {
	case lexer.TokKwFunction:
		p.parseFunctionDeclaration(false, false)
		return
	case lexer.TokKwClass:
		p.parseClassDeclaration(false)
		return
	case lexer.TokKwAsync:
		if next := p.peekNext(); next.Kind == lexer.TokKwFunction && !next.NewlineBefore {
			p.advance()
			p.parseFunctionDeclaration(true, false)
			return
		}
	}
	p.visitExpression(p.parseExpression(precAssign, 0))
	p.consumeSemicolon(js.DiagMissingSemicolonAfterStatement)
}

// parseExportSpecifiers parses { a, b as c } with an optional from
// clause. Without one, each local name is used.
func (p *Parser) parseExportSpecifiers() {
	open := p.advance()
	var locals []lexer.Token
loop:
	for {
		tok := p.peek()
		switch {
		case tok.Kind == lexer.TokRBrace:
			p.advance()
			break loop
		case tok.Kind.IsEnd():
			p.report(js.DiagUnclosedCodeBlock, open.Span)
			break loop
		case tok.Kind == lexer.TokComma:
			p.advance()
			continue
		case tok.Kind == lexer.TokString || tok.Kind == lexer.TokIdentifier || tok.Kind.IsKeyword():
		default:
			p.report(js.DiagUnexpectedToken, tok.Span)
			p.advance()
			continue
		}
		locals = append(locals, p.advance())
		if p.match(lexer.TokKwAs) {
			if alias := p.peek(); alias.Kind == lexer.TokString || alias.Kind == lexer.TokIdentifier || alias.Kind.IsKeyword() {
				p.advance()
			} else {
				p.report(js.DiagUnexpectedToken, p.errorSpan())
			}
		}
	}

	if p.check(lexer.TokKwFrom) {
		p.parseModuleSource()
		return
	}
	for _, local := range locals {
		if local.Kind.IsIdentifierLike() {
			p.use(p.ident(local.Span))
		}
	}
	p.consumeSemicolon(js.DiagMissingSemicolonAfterStatement)
}
