package parser

import (
	"github.com/jsscope/jsscope/internal/lexer"
	"github.com/jsscope/jsscope/internal/types"
	"github.com/jsscope/jsscope/js"
)

// precedence is the binding strength of a binary operator. Higher binds
// tighter.
type precedence int

const (
	precNone precedence = iota
	precComma
	precAssign
	precConditional
	precNullish
	precLogicalOr
	precLogicalAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precExponent
)

type exprFlags uint8

const (
	// flagNoIn stops at the in operator, for for-statement heads.
	flagNoIn exprFlags = 1 << iota
	// flagTopLevel marks the outermost expression of a statement, where a
	// stray ')' is reported and skipped.
	flagTopLevel
)

// binaryPrecedence returns the precedence of k as a binary operator.
func binaryPrecedence(k lexer.TokenKind, flags exprFlags) (precedence, bool) {
	switch k {
	case lexer.TokQuestionQuestion:
		return precNullish, true
	case lexer.TokPipePipe:
		return precLogicalOr, true
	case lexer.TokAmpAmp:
		return precLogicalAnd, true
	case lexer.TokPipe:
		return precBitOr, true
	case lexer.TokCaret:
		return precBitXor, true
	case lexer.TokAmp:
		return precBitAnd, true
	case lexer.TokEqualEqual, lexer.TokBangEqual, lexer.TokEqualEqualEqual, lexer.TokBangEqualEqual:
		return precEquality, true
	case lexer.TokLess, lexer.TokLessEqual, lexer.TokGreater, lexer.TokGreaterEqual, lexer.TokKwInstanceof:
		return precRelational, true
	case lexer.TokKwIn:
		if flags&flagNoIn != 0 {
			return precNone, false
		}
		return precRelational, true
	case lexer.TokLessLess, lexer.TokGreaterGreater, lexer.TokGreaterGreaterGreater:
		return precShift, true
	case lexer.TokPlus, lexer.TokMinus:
		return precAdditive, true
	case lexer.TokStar, lexer.TokSlash, lexer.TokPercent:
		return precMultiplicative, true
	case lexer.TokStarStar:
		return precExponent, true
	default:
		return precNone, false
	}
}

// isOperator reports whether k is an infix operator that cannot begin an
// expression.
func isOperator(k lexer.TokenKind) bool {
	if _, ok := binaryPrecedence(k, 0); ok {
		return k != lexer.TokPlus && k != lexer.TokMinus && k != lexer.TokSlash
	}
	switch k {
	case lexer.TokComma, lexer.TokQuestion:
		return true
	}
	return k.IsAssignmentOperator() && k != lexer.TokSlashEqual
}

// canStartExpression reports whether an expression can begin with k.
func canStartExpression(k lexer.TokenKind) bool {
	switch k {
	case lexer.TokIdentifier, lexer.TokPrivateName, lexer.TokNumber, lexer.TokString,
		lexer.TokRegexp, lexer.TokCompleteTemplate, lexer.TokIncompleteTemplate,
		lexer.TokLParen, lexer.TokLBracket, lexer.TokLBrace,
		lexer.TokPlus, lexer.TokMinus, lexer.TokBang, lexer.TokTilde,
		lexer.TokPlusPlus, lexer.TokMinusMinus, lexer.TokSlash, lexer.TokSlashEqual,
		lexer.TokKwThis, lexer.TokKwSuper, lexer.TokKwNull, lexer.TokKwTrue, lexer.TokKwFalse,
		lexer.TokKwFunction, lexer.TokKwClass, lexer.TokKwNew, lexer.TokKwImport,
		lexer.TokKwTypeof, lexer.TokKwVoid, lexer.TokKwDelete:
		return true
	}
	return k.IsContextualKeyword()
}

// parseExpression parses an expression whose operators all bind at least
// as tightly as minPrec.
func (p *Parser) parseExpression(minPrec precedence, flags exprFlags) nodeID {
	left := p.parseUnary(nil, flags)
	return p.parseInfix(left, minPrec, flags)
}

// parseInfix extends left with binary, conditional, assignment and comma
// operators using precedence climbing.
func (p *Parser) parseInfix(left nodeID, minPrec precedence, flags exprFlags) nodeID {
	inner := flags &^ flagTopLevel
	for {
		tok := p.peek()
		switch {
		case tok.Kind == lexer.TokRParen && flags&flagTopLevel != 0:
			p.report(js.DiagUnmatchedParenthesis, tok.Span)
			p.advance()
			continue

		case tok.Kind == lexer.TokComma:
			if minPrec > precComma {
				return left
			}
			p.advance()
			right := p.parseUnary(&tok, inner)
			right = p.parseInfix(right, precAssign, inner)
			left = p.binary(tok.Kind, left, right)
			continue

		case tok.Kind.IsAssignmentOperator():
			if minPrec > precAssign {
				return left
			}
			p.advance()
			p.checkAssignmentTarget(left, tok.Kind)
			right := p.parseUnary(&tok, inner)
			right = p.parseInfix(right, precAssign, inner)
			start := p.arena.get(left).span.Start
			left = p.arena.add(nodeAssign, tok.Kind, p.spanFrom(start), left, right)
			continue

		case tok.Kind == lexer.TokQuestion:
			if minPrec > precConditional {
				return left
			}
			left = p.parseConditional(left, tok, inner)
			continue
		}

		prec, ok := binaryPrecedence(tok.Kind, flags)
		if !ok || prec < minPrec {
			return left
		}
		p.advance()
		next := prec + 1
		if tok.Kind == lexer.TokStarStar {
			next = prec
		}
		right := p.parseUnary(&tok, inner)
		right = p.parseInfix(right, next, inner)
		left = p.binary(tok.Kind, left, right)
	}
}

func (p *Parser) binary(op lexer.TokenKind, left, right nodeID) nodeID {
	start := p.arena.get(left).span.Start
	return p.arena.add(nodeBinary, op, p.spanFrom(start), left, right)
}

func (p *Parser) parseConditional(test nodeID, question lexer.Token, flags exprFlags) nodeID {
	p.advance()
	consequent := p.parseUnary(&question, flags&^flagNoIn)
	consequent = p.parseInfix(consequent, precAssign, flags&^flagNoIn)
	var alternate nodeID
	if colon := p.peek(); colon.Kind == lexer.TokColon {
		p.advance()
		alternate = p.parseUnary(&colon, flags)
		alternate = p.parseInfix(alternate, precAssign, flags)
	} else {
		p.report(js.DiagUnexpectedToken, p.errorSpan())
		alternate = p.placeholder()
	}
	start := p.arena.get(test).span.Start
	return p.arena.add(nodeConditional, 0, p.spanFrom(start), test, consequent, alternate)
}

// parseUnary parses prefix operators, a primary expression, its member,
// call and template suffixes, and a postfix update. prev is the operator
// that needs this operand, if any.
func (p *Parser) parseUnary(prev *lexer.Token, flags exprFlags) nodeID {
	tok := p.peek()
	switch tok.Kind {
	case lexer.TokBang, lexer.TokTilde, lexer.TokPlus, lexer.TokMinus,
		lexer.TokKwTypeof, lexer.TokKwVoid, lexer.TokKwDelete:
		return p.parsePrefix(nodeUnary, flags)
	case lexer.TokPlusPlus, lexer.TokMinusMinus:
		return p.parsePrefix(nodeUpdate, flags)
	case lexer.TokKwAwait:
		if p.awaitIsOperator() {
			return p.parsePrefix(nodeUnary, flags)
		}
	case lexer.TokKwYield:
		if p.fn.generator {
			return p.parseYield(flags)
		}
	}

	if !canStartExpression(tok.Kind) {
		return p.missingOperand(prev)
	}
	left := p.parsePrimary(flags)
	left = p.parseSuffixes(left, true)
	if post := p.peek(); (post.Kind == lexer.TokPlusPlus || post.Kind == lexer.TokMinusMinus) && !post.NewlineBefore {
		p.advance()
		p.checkUpdateTarget(left)
		start := p.arena.get(left).span.Start
		left = p.arena.add(nodeUpdate, post.Kind, p.spanFrom(start), left)
	}
	return left
}

func (p *Parser) parsePrefix(kind nodeKind, flags exprFlags) nodeID {
	op := p.advance()
	operand := p.parseUnary(&op, flags)
	if kind == nodeUpdate {
		p.checkUpdateTarget(operand)
	}
	return p.arena.add(kind, op.Kind, p.spanFrom(op.Span.Start), operand)
}

// awaitIsOperator decides whether await at the current position is the
// operator or an identifier. Outside async functions it is the operator
// only when an operand follows on the same line.
func (p *Parser) awaitIsOperator() bool {
	if p.fn.async {
		return true
	}
	next := p.peekNext()
	if next.NewlineBefore || next.Kind == lexer.TokLParen {
		return false
	}
	return canStartExpression(next.Kind) && !isOperator(next.Kind)
}

func (p *Parser) parseYield(flags exprFlags) nodeID {
	tok := p.advance()
	p.match(lexer.TokStar)
	next := p.peek()
	if next.NewlineBefore || !canStartExpression(next.Kind) {
		return p.arena.add(nodeYield, tok.Kind, tok.Span)
	}
	operand := p.parseExpression(precAssign, flags&^flagTopLevel)
	return p.arena.add(nodeYield, tok.Kind, p.spanFrom(tok.Span.Start), operand)
}

// missingOperand reports an operand missing at the current token and
// returns a placeholder without consuming anything.
func (p *Parser) missingOperand(prev *lexer.Token) nodeID {
	tok := p.peek()
	switch {
	case prev != nil:
		p.report(js.DiagMissingOperandForOperator, prev.Span)
	case isOperator(tok.Kind):
		p.report(js.DiagMissingOperandForOperator, tok.Span)
	default:
		p.report(js.DiagExpectedExpression, p.errorSpan())
	}
	return p.placeholder()
}

func (p *Parser) placeholder() nodeID {
	at := p.peek().Span.Start
	return p.arena.leaf(nodeInvalid, types.NewSpan(at, at))
}

func (p *Parser) parsePrimary(flags exprFlags) nodeID {
	tok := p.peek()
	switch tok.Kind {
	case lexer.TokNumber, lexer.TokString, lexer.TokCompleteTemplate, lexer.TokPrivateName,
		lexer.TokKwThis, lexer.TokKwSuper, lexer.TokKwNull, lexer.TokKwTrue, lexer.TokKwFalse:
		p.advance()
		return p.arena.leaf(nodeLiteral, tok.Span)

	case lexer.TokSlash, lexer.TokSlashEqual:
		p.lex.ReparseAsRegexp()
		re := p.advance()
		if re.Kind != lexer.TokRegexp {
			return p.placeholder()
		}
		return p.arena.leaf(nodeLiteral, re.Span)

	case lexer.TokIncompleteTemplate:
		return p.parseTemplate(noNode)

	case lexer.TokLParen:
		return p.parseParenthesized(flags)

	case lexer.TokLBracket:
		return p.parseArrayLiteral()

	case lexer.TokLBrace:
		return p.parseObjectLiteral()

	case lexer.TokKwFunction:
		return p.parseFunctionExpression(false, tok.Span.Start)

	case lexer.TokKwClass:
		return p.parseClassExpression()

	case lexer.TokKwNew:
		return p.parseNew()

	case lexer.TokKwImport:
		// import(...) and import.meta
		p.advance()
		if p.match(lexer.TokDot) {
			if name := p.peek(); name.Kind.IsIdentifierLike() {
				p.advance()
			}
		}
		return p.arena.leaf(nodeLiteral, p.spanFrom(tok.Span.Start))

	case lexer.TokKwAsync:
		if id := p.parseAsyncPrimary(); id != noNode {
			return id
		}
	}

	if tok.Kind.IsIdentifierLike() {
		if next := p.peekNext(); next.Kind == lexer.TokArrow && !next.NewlineBefore {
			return p.parseArrowFunction(functionContext{}, false, tok.Span.Start)
		}
		p.advance()
		return p.arena.leaf(nodeVariable, tok.Span)
	}

	p.report(js.DiagUnexpectedToken, tok.Span)
	p.advance()
	return p.placeholder()
}

// parseAsyncPrimary handles async function expressions and async arrow
// functions. It returns noNode when async is a plain identifier.
func (p *Parser) parseAsyncPrimary() nodeID {
	async := p.peek()
	next := p.peekNext()
	if next.NewlineBefore {
		return noNode
	}
	switch {
	case next.Kind == lexer.TokKwFunction:
		p.advance()
		return p.parseFunctionExpression(true, async.Span.Start)
	case next.Kind.IsIdentifierLike():
		if p.peekSecond().Kind != lexer.TokArrow {
			return noNode
		}
		p.advance()
		return p.parseArrowFunction(functionContext{async: true}, false, async.Span.Start)
	case next.Kind == lexer.TokLParen:
		cp := p.lex.Checkpoint()
		p.lex.Skip()
		arrow := p.arrowAhead()
		p.lex.Restore(cp)
		if !arrow {
			return noNode
		}
		p.advance()
		return p.parseArrowFunction(functionContext{async: true}, true, async.Span.Start)
	}
	return noNode
}

func (p *Parser) parseParenthesized(flags exprFlags) nodeID {
	open := p.peek()
	if p.arrowAhead() {
		return p.parseArrowFunction(functionContext{}, true, open.Span.Start)
	}
	p.advance()
	if p.check(lexer.TokRParen) {
		p.report(js.DiagExpectedExpression, p.peek().Span)
		p.advance()
		return p.placeholder()
	}
	inner := p.parseExpression(precComma, flags&^(flagNoIn|flagTopLevel))
	p.expectClose(open)
	return inner
}

// arrowAhead reports whether the parenthesized list at the current '('
// is followed by '=>'. It reads ahead with the lexer and restores it.
//
// The verdict for every '(' nested in the list is recorded on the way, so
// nested groups are scanned once per statement.
func (p *Parser) arrowAhead() bool {
	open := p.lex.Peek().Span.Start
	if arrow, ok := p.arrows[open]; ok {
		return arrow
	}
	cp := p.lex.Checkpoint()
	defer p.lex.Restore(cp)

	type group struct {
		start types.ByteOffset
		paren bool
	}
	var groups []group
	var closed *group // group closed by the previous token
	braces := 0
	var holes []int // brace depth at each open template substitution
	prev := lexer.TokEOF
	for {
		tok := p.lex.Peek()
		if (tok.Kind == lexer.TokSlash || tok.Kind == lexer.TokSlashEqual) && lexer.RegexpAllowedAfter(prev) {
			p.lex.ReparseAsRegexp()
			tok = p.lex.Peek()
		}
		if closed != nil {
			if closed.paren {
				p.arrows[closed.start] = tok.Kind == lexer.TokArrow && !tok.NewlineBefore
			}
			closed = nil
		}
		switch tok.Kind {
		case lexer.TokFatal, lexer.TokEOF:
			return false
		case lexer.TokLParen, lexer.TokLBracket:
			groups = append(groups, group{start: tok.Span.Start, paren: tok.Kind == lexer.TokLParen})
		case lexer.TokRParen, lexer.TokRBracket:
			if len(groups) == 0 {
				return false
			}
			g := groups[len(groups)-1]
			groups = groups[:len(groups)-1]
			if len(groups) == 0 {
				p.lex.Skip()
				next := p.lex.Peek()
				arrow := next.Kind == lexer.TokArrow && !next.NewlineBefore
				p.arrows[open] = arrow
				return arrow
			}
			closed = &g
		case lexer.TokLBrace:
			braces++
		case lexer.TokIncompleteTemplate:
			holes = append(holes, braces)
		case lexer.TokRBrace:
			if n := len(holes); n > 0 && holes[n-1] == braces {
				holes = holes[:n-1]
				p.lex.SkipInTemplate(tok.Span.Start)
				tok = p.lex.Peek()
				if tok.Kind == lexer.TokIncompleteTemplate {
					holes = append(holes, braces)
				}
			} else {
				braces--
			}
		}
		prev = tok.Kind
		p.lex.Skip()
	}
}

// parseSuffixes parses member access, indexing, optional chaining, tagged
// templates and, if calls is set, call arguments after left.
func (p *Parser) parseSuffixes(left nodeID, calls bool) nodeID {
	for {
		tok := p.peek()
		start := p.arena.get(left).span.Start
		switch tok.Kind {
		case lexer.TokDot:
			p.advance()
			p.parseMemberName()
			left = p.arena.add(nodeMember, 0, p.spanFrom(start), left)

		case lexer.TokQuestionDot:
			if !calls {
				return left
			}
			p.advance()
			switch p.peek().Kind {
			case lexer.TokLParen:
				args := p.parseArguments()
				left = p.arena.add(nodeCall, 0, p.spanFrom(start), append([]nodeID{left}, args...)...)
			case lexer.TokLBracket:
				left = p.parseIndex(left, start)
			default:
				p.parseMemberName()
				left = p.arena.add(nodeMember, 0, p.spanFrom(start), left)
			}

		case lexer.TokLBracket:
			left = p.parseIndex(left, start)

		case lexer.TokLParen:
			if !calls {
				return left
			}
			args := p.parseArguments()
			left = p.arena.add(nodeCall, 0, p.spanFrom(start), append([]nodeID{left}, args...)...)

		case lexer.TokCompleteTemplate:
			p.advance()
			left = p.arena.add(nodeTaggedTemplate, 0, p.spanFrom(start), left)

		case lexer.TokIncompleteTemplate:
			left = p.parseTemplate(left)

		default:
			return left
		}
	}
}

func (p *Parser) parseMemberName() {
	tok := p.peek()
	if tok.Kind == lexer.TokIdentifier || tok.Kind == lexer.TokPrivateName || tok.Kind.IsKeyword() {
		p.advance()
		return
	}
	p.report(js.DiagUnexpectedToken, p.errorSpan())
}

func (p *Parser) parseIndex(object nodeID, start types.ByteOffset) nodeID {
	p.advance()
	index := p.parseExpression(precComma, 0)
	p.expect(lexer.TokRBracket)
	return p.arena.add(nodeIndex, 0, p.spanFrom(start), object, index)
}

// parseArguments parses a parenthesized argument list.
func (p *Parser) parseArguments() []nodeID {
	open := p.advance()
	var args []nodeID
	for {
		tok := p.peek()
		if tok.Kind == lexer.TokRParen || tok.Kind.IsEnd() {
			break
		}
		if tok.Kind == lexer.TokDotDotDot {
			p.advance()
			operand := p.parseExpression(precAssign, 0)
			args = append(args, p.arena.add(nodeSpread, 0, p.spanFrom(tok.Span.Start), operand))
		} else if canStartExpression(tok.Kind) || isOperator(tok.Kind) {
			args = append(args, p.parseExpression(precAssign, 0))
		} else {
			p.report(js.DiagUnexpectedToken, tok.Span)
			p.advance()
			continue
		}
		if !p.match(lexer.TokComma) {
			break
		}
	}
	p.expectClose(open)
	return args
}

func (p *Parser) parseNew() nodeID {
	kw := p.advance()
	if p.match(lexer.TokDot) {
		// new.target
		p.parseMemberName()
		return p.arena.leaf(nodeLiteral, p.spanFrom(kw.Span.Start))
	}
	var callee nodeID
	switch tok := p.peek(); {
	case tok.Kind == lexer.TokKwNew:
		callee = p.parseNew()
	case canStartExpression(tok.Kind):
		callee = p.parsePrimary(0)
		callee = p.parseSuffixes(callee, false)
	default:
		callee = p.missingOperand(&kw)
	}
	kids := []nodeID{callee}
	if p.check(lexer.TokLParen) {
		kids = append(kids, p.parseArguments()...)
	}
	return p.arena.add(nodeNew, 0, p.spanFrom(kw.Span.Start), kids...)
}

// parseTemplate parses a template with substitutions. The current token
// is the head ending in "${". tag is the tag expression, or noNode.
func (p *Parser) parseTemplate(tag nodeID) nodeID {
	head := p.advance()
	start := head.Span.Start
	kind := nodeTemplate
	var kids []nodeID
	if tag != noNode {
		kind = nodeTaggedTemplate
		start = p.arena.get(tag).span.Start
		kids = append(kids, tag)
	}
	for {
		kids = append(kids, p.parseExpression(precComma, 0))
		if !p.skipToSubstitutionEnd(head.Span.Start) {
			break
		}
		p.lex.SkipInTemplate(head.Span.Start)
		tail := p.advance()
		if tail.Kind != lexer.TokIncompleteTemplate {
			break
		}
	}
	return p.arena.add(kind, 0, p.spanFrom(start), kids...)
}

// skipToSubstitutionEnd moves to the '}' closing a template substitution.
// Unexpected tokens before it are reported once and skipped. At end of
// input the template is unterminated, which is fatal.
func (p *Parser) skipToSubstitutionEnd(templateStart types.ByteOffset) bool {
	reported := false
	for {
		tok := p.peek()
		switch {
		case tok.Kind == lexer.TokRBrace:
			return true
		case tok.Kind == lexer.TokEOF:
			p.lex.FailTemplate(templateStart)
			p.peek()
			return false
		case tok.Kind == lexer.TokFatal:
			return false
		}
		if !reported {
			p.report(js.DiagUnexpectedToken, tok.Span)
			reported = true
		}
		p.advance()
	}
}

func (p *Parser) parseArrayLiteral() nodeID {
	open := p.advance()
	var kids []nodeID
	for {
		tok := p.peek()
		switch {
		case tok.Kind == lexer.TokRBracket:
			p.advance()
			return p.arena.add(nodeArray, 0, p.spanFrom(open.Span.Start), kids...)
		case tok.Kind.IsEnd():
			p.report(js.DiagUnexpectedToken, p.errorSpan())
			return p.arena.add(nodeArray, 0, p.spanFrom(open.Span.Start), kids...)
		case tok.Kind == lexer.TokComma:
			p.advance()
			continue
		case tok.Kind == lexer.TokDotDotDot:
			p.advance()
			operand := p.parseExpression(precAssign, 0)
			kids = append(kids, p.arena.add(nodeSpread, 0, p.spanFrom(tok.Span.Start), operand))
		case canStartExpression(tok.Kind) || isOperator(tok.Kind):
			kids = append(kids, p.parseExpression(precAssign, 0))
		default:
			p.report(js.DiagUnexpectedToken, tok.Span)
			p.advance()
			continue
		}
		// A token that cannot start an element is reported by the next
		// iteration.
		if next := p.peek(); canStartExpression(next.Kind) {
			p.report(js.DiagUnexpectedToken, next.Span)
		}
	}
}

func (p *Parser) parseObjectLiteral() nodeID {
	open := p.advance()
	var kids []nodeID
	for {
		tok := p.peek()
		switch {
		case tok.Kind == lexer.TokRBrace:
			p.advance()
			return p.arena.add(nodeObject, 0, p.spanFrom(open.Span.Start), kids...)
		case tok.Kind.IsEnd():
			p.report(js.DiagUnclosedCodeBlock, open.Span)
			return p.arena.add(nodeObject, 0, p.spanFrom(open.Span.Start), kids...)
		case tok.Kind == lexer.TokComma:
			p.advance()
			continue
		}
		kids = append(kids, p.parseObjectMember())
		if next := p.peek(); isMemberStart(next.Kind) {
			p.report(js.DiagUnexpectedToken, next.Span)
		}
	}
}

// isPropertyName reports whether k can name a property without brackets.
func isPropertyName(k lexer.TokenKind) bool {
	switch k {
	case lexer.TokIdentifier, lexer.TokString, lexer.TokNumber, lexer.TokPrivateName:
		return true
	}
	return k.IsKeyword()
}

// isMemberStart reports whether an object literal member can begin with k.
func isMemberStart(k lexer.TokenKind) bool {
	switch k {
	case lexer.TokLBracket, lexer.TokDotDotDot, lexer.TokStar:
		return true
	}
	return isPropertyName(k)
}

// parseObjectMember parses one property, method, accessor or spread of an
// object literal. It always consumes at least one token.
func (p *Parser) parseObjectMember() nodeID {
	tok := p.peek()
	start := tok.Span.Start
	if tok.Kind == lexer.TokDotDotDot {
		p.advance()
		operand := p.parseExpression(precAssign, 0)
		return p.arena.add(nodeSpread, 0, p.spanFrom(start), operand)
	}

	ctx := functionContext{}
	for {
		tok = p.peek()
		switch {
		case tok.Kind == lexer.TokStar:
			p.advance()
			ctx.generator = true
			continue
		case (tok.Kind == lexer.TokKwGet || tok.Kind == lexer.TokKwSet || tok.Kind == lexer.TokKwAsync) && p.isMemberModifier():
			p.advance()
			if tok.Kind == lexer.TokKwAsync {
				ctx.async = true
			}
			continue
		}
		break
	}

	key := noNode
	var name lexer.Token
	switch {
	case tok.Kind == lexer.TokLBracket:
		p.advance()
		key = p.parseExpression(precAssign, 0)
		p.expect(lexer.TokRBracket)
	case isPropertyName(tok.Kind):
		name = p.advance()
	default:
		p.report(js.DiagUnexpectedToken, tok.Span)
		p.advance()
		return p.placeholder()
	}

	var value nodeID
	switch next := p.peek(); {
	case next.Kind == lexer.TokColon:
		p.advance()
		value = p.parseExpression(precAssign, 0)
	case next.Kind == lexer.TokLParen:
		first, count := p.buffer(func() {
			p.parseFunctionRest(js.ScopeFunction, js.Identifier{}, ctx)
		})
		value = p.arena.function(p.spanFrom(next.Span.Start), first, count)
	case key == noNode && name.Kind.IsIdentifierLike():
		// shorthand, optionally with a default in a pattern
		value = p.arena.leaf(nodeVariable, name.Span)
		if eq := p.peek(); eq.Kind == lexer.TokEqual {
			p.advance()
			def := p.parseExpression(precAssign, 0)
			value = p.arena.add(nodeAssign, eq.Kind, p.spanFrom(start), value, def)
		}
	default:
		p.report(js.DiagUnexpectedToken, p.errorSpan())
		value = p.placeholder()
	}
	return p.arena.add(nodeProperty, 0, p.spanFrom(start), key, value)
}

// isMemberModifier reports whether the get, set, async or static at the
// current position modifies the member name that follows it.
func (p *Parser) isMemberModifier() bool {
	next := p.peekNext()
	switch next.Kind {
	case lexer.TokLParen, lexer.TokEqual, lexer.TokSemicolon, lexer.TokRBrace,
		lexer.TokComma, lexer.TokColon, lexer.TokEOF, lexer.TokFatal:
		return false
	}
	if p.peek().Kind == lexer.TokKwAsync && next.NewlineBefore {
		return false
	}
	return true
}

// checkAssignmentTarget reports an invalid left side of an assignment.
func (p *Parser) checkAssignmentTarget(id nodeID, op lexer.TokenKind) {
	n := p.arena.get(id)
	switch n.kind {
	case nodeInvalid, nodeVariable, nodeMember, nodeIndex:
		return
	case nodeObject, nodeArray:
		if op == lexer.TokEqual {
			p.checkPattern(id)
			return
		}
	}
	p.report(js.DiagInvalidAssignmentTarget, n.span)
}

// checkPattern reports elements of a destructuring assignment that cannot
// be assigned to.
func (p *Parser) checkPattern(id nodeID) {
	n := p.arena.get(id)
	switch n.kind {
	case nodeInvalid, nodeVariable, nodeMember, nodeIndex:
	case nodeObject, nodeArray:
		for _, kid := range p.arena.children(n) {
			p.checkPattern(kid)
		}
	case nodeProperty:
		p.checkPattern(p.arena.child(n, 1))
	case nodeSpread:
		p.checkPattern(p.arena.child(n, 0))
	case nodeAssign:
		if n.op == lexer.TokEqual {
			p.checkPattern(p.arena.child(n, 0))
			return
		}
		p.report(js.DiagInvalidAssignmentTarget, n.span)
	default:
		p.report(js.DiagInvalidAssignmentTarget, n.span)
	}
}

func (p *Parser) checkUpdateTarget(id nodeID) {
	n := p.arena.get(id)
	switch n.kind {
	case nodeInvalid, nodeVariable, nodeMember, nodeIndex:
		return
	}
	p.report(js.DiagInvalidAssignmentTarget, n.span)
}
