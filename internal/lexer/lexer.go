package lexer

import (
	"bytes"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jsscope/jsscope/internal/types"
	"github.com/jsscope/jsscope/js"
)

// Lexer tokenizes JavaScript source text. It holds a single current token;
// Peek returns it and Skip advances.
//
// Whether '/' starts a regular expression or is a division operator, and
// where a template substitution ends, depend on grammatical position. The
// lexer produces the operator reading by default and the parser asks for
// the other one with ReparseAsRegexp and SkipInTemplate.
type Lexer struct {
	source  []byte
	pos     int
	tok     Token
	prevEnd types.ByteOffset
	pending []js.Diagnostic
	types.Logger
}

// Checkpoint is a saved lexer position. Restore rewinds to it.
type Checkpoint struct {
	pos     int
	tok     Token
	prevEnd types.ByteOffset
	pending int
}

// New returns a Lexer positioned on the first token of source.
func New(source []byte, logger *slog.Logger) *Lexer {
	l := &Lexer{
		source: source,
		Logger: types.Logger{L: logger},
	}
	l.skipHashbang()
	l.tok = l.lex()
	l.Log(slog.LevelDebug, "lexer initialized", slog.Int("bytes", len(source)))
	return l
}

// Source returns the buffer being tokenized.
func (l *Lexer) Source() []byte {
	return l.source
}

// Peek returns the current token.
func (l *Lexer) Peek() Token {
	return l.tok
}

// Skip advances to the next token. Once a fatal token is reached the lexer
// stays on it.
func (l *Lexer) Skip() {
	if l.tok.Kind == TokFatal {
		return
	}
	l.prevEnd = l.tok.Span.End
	l.tok = l.lex()
}

// PrevEnd returns the end offset of the most recently skipped token.
func (l *Lexer) PrevEnd() types.ByteOffset {
	return l.prevEnd
}

// Checkpoint saves the current position, token and diagnostic count.
func (l *Lexer) Checkpoint() Checkpoint {
	return Checkpoint{
		pos:     l.pos,
		tok:     l.tok,
		prevEnd: l.prevEnd,
		pending: len(l.pending),
	}
}

// Restore rewinds to cp, discarding diagnostics recorded after it. The
// caller must not have taken diagnostics since cp was saved.
func (l *Lexer) Restore(cp Checkpoint) {
	l.pos = cp.pos
	l.tok = cp.tok
	l.prevEnd = cp.prevEnd
	if cp.pending <= len(l.pending) {
		l.pending = l.pending[:cp.pending]
	}
	if l.TraceEnabled() {
		l.Trace("restore", slog.Int("offset", int(cp.tok.Span.Start)))
	}
}

// HasDiagnostics reports whether diagnostics are waiting to be taken.
func (l *Lexer) HasDiagnostics() bool {
	return len(l.pending) > 0
}

// TakeDiagnostics returns the diagnostics recorded since the last call.
func (l *Lexer) TakeDiagnostics() []js.Diagnostic {
	diags := slices.Clone(l.pending)
	l.pending = l.pending[:0]
	return diags
}

// ReparseAsRegexp re-lexes the current '/' or '/=' token as a regular
// expression literal.
func (l *Lexer) ReparseAsRegexp() {
	if l.tok.Kind != TokSlash && l.tok.Kind != TokSlashEqual {
		return
	}
	start := int(l.tok.Span.Start)
	newline := l.tok.NewlineBefore
	l.pos = start + 1
	inClass := false
	for {
		if l.pos >= len(l.source) || l.atLineTerminator() {
			l.tok = l.fatal(js.DiagUnterminatedRegexp, start)
			return
		}
		switch l.source[l.pos] {
		case '\\':
			l.pos++
			if l.pos < len(l.source) && !l.atLineTerminator() {
				l.advanceRune()
			}
			continue
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				l.pos++
				l.skipIdentifierPart()
				tok := l.token(TokRegexp, start)
				tok.NewlineBefore = newline
				l.tok = tok
				return
			}
		}
		l.pos++
	}
}

// SkipInTemplate resumes a template literal after a substitution. The
// current token must be the '}' closing the substitution; templateStart is
// the offset of the template's opening backtick, used to report an
// unterminated template.
func (l *Lexer) SkipInTemplate(templateStart types.ByteOffset) {
	if l.tok.Kind != TokRBrace {
		return
	}
	start := int(l.tok.Span.Start)
	newline := l.tok.NewlineBefore
	l.pos = start + 1
	tok := l.scanTemplateBody(start, int(templateStart))
	tok.NewlineBefore = newline
	l.tok = tok
}

// FailTemplate reports an unterminated template starting at templateStart
// and makes the current token fatal. The parser calls it when input ends
// inside a substitution.
func (l *Lexer) FailTemplate(templateStart types.ByteOffset) {
	l.pos = len(l.source)
	l.tok = l.fatal(js.DiagUnterminatedTemplate, int(templateStart))
}

// Tokenize consumes all source text and returns the token stream along
// with any diagnostics generated during lexing. A '/' is read as a regular
// expression wherever the previous token cannot end an expression, and
// template substitutions are tracked by brace depth.
func (l *Lexer) Tokenize() ([]Token, []js.Diagnostic) {
	estimatedTokens := max(len(l.source)/6, 64)
	tokens := make([]Token, 0, estimatedTokens)
	var diags []js.Diagnostic

	type hole struct {
		depth int
		start types.ByteOffset
	}
	var holes []hole
	var templateStart types.ByteOffset
	depth := 0
	prev := TokEOF
	for {
		tok := l.Peek()
		switch tok.Kind {
		case TokSlash, TokSlashEqual:
			if RegexpAllowedAfter(prev) {
				l.ReparseAsRegexp()
				tok = l.Peek()
			}
		case TokLBrace:
			depth++
		case TokRBrace:
			if n := len(holes); n > 0 && holes[n-1].depth == depth {
				templateStart = holes[n-1].start
				holes = holes[:n-1]
				l.SkipInTemplate(templateStart)
				tok = l.Peek()
			} else {
				depth--
			}
		}
		if tok.Kind == TokIncompleteTemplate {
			if tok.Span.Start < types.ByteOffset(len(l.source)) && l.source[tok.Span.Start] == '`' {
				templateStart = tok.Span.Start
			}
			holes = append(holes, hole{depth: depth, start: templateStart})
		}
		tokens = append(tokens, tok)
		diags = append(diags, l.TakeDiagnostics()...)
		if tok.Kind.IsEnd() {
			break
		}
		prev = tok.Kind
		l.Skip()
	}
	l.Log(slog.LevelDebug, "tokenization complete",
		slog.Int("tokens", len(tokens)),
		slog.Int("diagnostics", len(diags)))
	return tokens, diags
}

// RegexpAllowedAfter reports whether a '/' following a token of kind k
// starts a regular expression.
func RegexpAllowedAfter(k TokenKind) bool {
	switch k {
	case TokIdentifier, TokPrivateName, TokNumber, TokString, TokRegexp,
		TokCompleteTemplate, TokRParen, TokRBracket, TokRBrace,
		TokPlusPlus, TokMinusMinus, TokKwThis, TokKwSuper, TokKwTrue,
		TokKwFalse, TokKwNull:
		return false
	}
	return !k.IsContextualKeyword()
}

func (l *Lexer) traceToken(tok Token) {
	if l.TraceEnabled() {
		l.Trace("token",
			slog.String("kind", tok.Kind.String()),
			slog.Int("start", int(tok.Span.Start)),
			slog.Int("end", int(tok.Span.End)))
	}
}

func (l *Lexer) byteAt(i int) byte {
	if i >= len(l.source) {
		return 0
	}
	return l.source[i]
}

func (l *Lexer) match(b byte) bool {
	if l.byteAt(l.pos) == b && l.pos < len(l.source) {
		l.pos++
		return true
	}
	return false
}

func (l *Lexer) advanceRune() {
	_, size := utf8.DecodeRune(l.source[l.pos:])
	l.pos += size
}

// atLineTerminator reports whether a line terminator starts at pos.
func (l *Lexer) atLineTerminator() bool {
	return lineTerminatorLen(l.source, l.pos) > 0
}

func lineTerminatorLen(src []byte, i int) int {
	if i >= len(src) {
		return 0
	}
	switch src[i] {
	case '\n':
		return 1
	case '\r':
		if i+1 < len(src) && src[i+1] == '\n' {
			return 2
		}
		return 1
	case 0xe2:
		if i+2 < len(src) && src[i+1] == 0x80 && (src[i+2] == 0xa8 || src[i+2] == 0xa9) {
			return 3
		}
	}
	return 0
}

func (l *Lexer) report(kind js.DiagKind, span types.Span) {
	l.pending = append(l.pending, js.Diagnostic{Kind: kind, Span: span})
	l.Log(slog.LevelDebug, "lexer diagnostic",
		slog.String("code", kind.Code()),
		slog.Int("start", int(span.Start)))
}

func (l *Lexer) spanFrom(start int) types.Span {
	return types.Span{
		Start: types.ByteOffset(start),
		End:   types.ByteOffset(l.pos),
	}
}

func (l *Lexer) token(kind TokenKind, start int) Token {
	tok := Token{
		Kind: kind,
		Span: l.spanFrom(start),
	}
	l.traceToken(tok)
	return tok
}

// fatal records a fatal diagnostic covering [start, pos) and returns a
// TokFatal token.
func (l *Lexer) fatal(kind js.DiagKind, start int) Token {
	span := l.spanFrom(start)
	l.report(kind, span)
	return Token{Kind: TokFatal, Span: span}
}

func (l *Lexer) skipHashbang() {
	if bytes.HasPrefix(l.source, []byte("#!")) {
		for l.pos < len(l.source) && !l.atLineTerminator() {
			l.pos++
		}
	}
}

// lex scans the next token, skipping whitespace and comments.
func (l *Lexer) lex() Token {
	newline := false
	for {
		nl, ok := l.skipTrivia()
		newline = newline || nl
		if !ok {
			// Unclosed block comment.
			return Token{Kind: TokFatal, Span: l.pending[len(l.pending)-1].Span}
		}
		start := l.pos
		if l.pos >= len(l.source) {
			tok := l.token(TokEOF, start)
			tok.NewlineBefore = newline
			return tok
		}
		tok, ok := l.scan(start)
		if !ok {
			continue
		}
		tok.NewlineBefore = newline
		return tok
	}
}

// skipTrivia skips whitespace, line terminators and comments. It reports
// whether a line terminator was seen, and false for ok if a block comment
// was left unclosed.
func (l *Lexer) skipTrivia() (newline, ok bool) {
	for l.pos < len(l.source) {
		b := l.source[l.pos]
		switch {
		case b == ' ' || b == '\t' || b == '\v' || b == '\f':
			l.pos++
		case b == '\n' || b == '\r':
			newline = true
			l.pos++
		case b == '/' && l.byteAt(l.pos+1) == '/':
			for l.pos < len(l.source) && !l.atLineTerminator() {
				l.pos++
			}
		case b == '/' && l.byteAt(l.pos+1) == '*':
			nl, closed := l.skipBlockComment()
			if !closed {
				return newline, false
			}
			newline = newline || nl
		case b >= utf8.RuneSelf:
			if n := lineTerminatorLen(l.source, l.pos); n > 0 {
				newline = true
				l.pos += n
				continue
			}
			r, size := utf8.DecodeRune(l.source[l.pos:])
			if r == '\ufeff' || unicode.Is(unicode.Zs, r) {
				l.pos += size
				continue
			}
			return newline, true
		default:
			return newline, true
		}
	}
	return newline, true
}

func (l *Lexer) skipBlockComment() (newline, closed bool) {
	start := l.pos
	l.pos += 2
	for l.pos < len(l.source) {
		if l.source[l.pos] == '*' && l.byteAt(l.pos+1) == '/' {
			l.pos += 2
			return newline, true
		}
		if n := lineTerminatorLen(l.source, l.pos); n > 0 {
			newline = true
			l.pos += n
			continue
		}
		l.pos++
	}
	l.report(js.DiagUnclosedBlockComment, types.Span{
		Start: types.ByteOffset(start),
		End:   types.ByteOffset(start + 2),
	})
	return newline, false
}

// scan scans one token starting at start. It returns false when an
// unexpected character was skipped and the caller should retry.
func (l *Lexer) scan(start int) (Token, bool) {
	b := l.source[l.pos]

	switch b {
	case '{':
		l.pos++
		return l.token(TokLBrace, start), true
	case '}':
		l.pos++
		return l.token(TokRBrace, start), true
	case '(':
		l.pos++
		return l.token(TokLParen, start), true
	case ')':
		l.pos++
		return l.token(TokRParen, start), true
	case '[':
		l.pos++
		return l.token(TokLBracket, start), true
	case ']':
		l.pos++
		return l.token(TokRBracket, start), true
	case ';':
		l.pos++
		return l.token(TokSemicolon, start), true
	case ',':
		l.pos++
		return l.token(TokComma, start), true
	case ':':
		l.pos++
		return l.token(TokColon, start), true
	case '~':
		l.pos++
		return l.token(TokTilde, start), true
	case '@':
		l.pos++
		return l.token(TokAt, start), true
	case '"', '\'':
		return l.scanString(start), true
	case '`':
		l.pos++
		return l.scanTemplateBody(start, start), true
	}

	if b == '.' {
		if isDigit(l.byteAt(l.pos + 1)) {
			l.pos++
			l.skipDigits(isDigit)
			l.scanExponent()
			return l.token(TokNumber, start), true
		}
		l.pos++
		if l.byteAt(l.pos) == '.' && l.byteAt(l.pos+1) == '.' {
			l.pos += 2
			return l.token(TokDotDotDot, start), true
		}
		return l.token(TokDot, start), true
	}

	if isDigit(b) {
		return l.scanNumber(start), true
	}

	if isIdentStartASCII(b) {
		return l.scanIdentifier(start), true
	}

	if b == '\\' {
		if n := unicodeEscapeLen(l.source, l.pos); n > 0 {
			return l.scanIdentifier(start), true
		}
	}

	if b == '#' && l.pos+1 < len(l.source) && l.identStartAt(l.pos+1) {
		l.pos++
		tok := l.scanIdentifier(start)
		tok.Kind = TokPrivateName
		return tok, true
	}

	if kind, ok := l.scanPunctuator(b); ok {
		return l.token(kind, start), true
	}

	if b >= utf8.RuneSelf && l.identStartAt(l.pos) {
		return l.scanIdentifier(start), true
	}

	l.advanceRune()
	l.report(js.DiagUnexpectedCharacter, l.spanFrom(start))
	return Token{}, false
}

// scanPunctuator consumes the longest operator starting with b.
func (l *Lexer) scanPunctuator(b byte) (TokenKind, bool) {
	switch b {
	case '?':
		l.pos++
		if l.byteAt(l.pos) == '.' && !isDigit(l.byteAt(l.pos+1)) {
			l.pos++
			return TokQuestionDot, true
		}
		if l.match('?') {
			if l.match('=') {
				return TokQuestionQuestionEqual, true
			}
			return TokQuestionQuestion, true
		}
		return TokQuestion, true
	case '=':
		l.pos++
		if l.match('>') {
			return TokArrow, true
		}
		if l.match('=') {
			if l.match('=') {
				return TokEqualEqualEqual, true
			}
			return TokEqualEqual, true
		}
		return TokEqual, true
	case '!':
		l.pos++
		if l.match('=') {
			if l.match('=') {
				return TokBangEqualEqual, true
			}
			return TokBangEqual, true
		}
		return TokBang, true
	case '<':
		l.pos++
		if l.match('<') {
			if l.match('=') {
				return TokLessLessEqual, true
			}
			return TokLessLess, true
		}
		if l.match('=') {
			return TokLessEqual, true
		}
		return TokLess, true
	case '>':
		l.pos++
		if l.match('>') {
			if l.match('>') {
				if l.match('=') {
					return TokGreaterGreaterGreaterEqual, true
				}
				return TokGreaterGreaterGreater, true
			}
			if l.match('=') {
				return TokGreaterGreaterEqual, true
			}
			return TokGreaterGreater, true
		}
		if l.match('=') {
			return TokGreaterEqual, true
		}
		return TokGreater, true
	case '+':
		l.pos++
		if l.match('+') {
			return TokPlusPlus, true
		}
		if l.match('=') {
			return TokPlusEqual, true
		}
		return TokPlus, true
	case '-':
		l.pos++
		if l.match('-') {
			return TokMinusMinus, true
		}
		if l.match('=') {
			return TokMinusEqual, true
		}
		return TokMinus, true
	case '*':
		l.pos++
		if l.match('*') {
			if l.match('=') {
				return TokStarStarEqual, true
			}
			return TokStarStar, true
		}
		if l.match('=') {
			return TokStarEqual, true
		}
		return TokStar, true
	case '/':
		l.pos++
		if l.match('=') {
			return TokSlashEqual, true
		}
		return TokSlash, true
	case '%':
		l.pos++
		if l.match('=') {
			return TokPercentEqual, true
		}
		return TokPercent, true
	case '&':
		l.pos++
		if l.match('&') {
			if l.match('=') {
				return TokAmpAmpEqual, true
			}
			return TokAmpAmp, true
		}
		if l.match('=') {
			return TokAmpEqual, true
		}
		return TokAmp, true
	case '|':
		l.pos++
		if l.match('|') {
			if l.match('=') {
				return TokPipePipeEqual, true
			}
			return TokPipePipe, true
		}
		if l.match('=') {
			return TokPipeEqual, true
		}
		return TokPipe, true
	case '^':
		l.pos++
		if l.match('=') {
			return TokCaretEqual, true
		}
		return TokCaret, true
	}
	return 0, false
}

func (l *Lexer) scanString(start int) Token {
	quote := l.source[start]
	l.pos++
	for {
		if l.pos >= len(l.source) || l.atLineTerminator() {
			return l.fatal(js.DiagUnterminatedStringLiteral, start)
		}
		c := l.source[l.pos]
		switch c {
		case quote:
			l.pos++
			return l.token(TokString, start)
		case '\\':
			l.pos++
			if n := lineTerminatorLen(l.source, l.pos); n > 0 {
				// Line continuation.
				l.pos += n
			} else if l.pos < len(l.source) {
				l.advanceRune()
			}
		default:
			l.pos++
		}
	}
}

// scanTemplateBody scans template text from pos up to and including the
// closing backtick or the next "${". tokStart is the token's start offset
// and diagStart the offset reported if the template is unterminated.
func (l *Lexer) scanTemplateBody(tokStart, diagStart int) Token {
	for {
		if l.pos >= len(l.source) {
			return l.fatal(js.DiagUnterminatedTemplate, diagStart)
		}
		switch l.source[l.pos] {
		case '`':
			l.pos++
			return l.token(TokCompleteTemplate, tokStart)
		case '\\':
			l.pos++
			if l.pos < len(l.source) {
				l.advanceRune()
			}
		case '$':
			l.pos++
			if l.match('{') {
				return l.token(TokIncompleteTemplate, tokStart)
			}
		default:
			l.pos++
		}
	}
}

func (l *Lexer) scanNumber(start int) Token {
	if l.source[l.pos] == '0' {
		var digit func(byte) bool
		switch l.byteAt(l.pos+1) | 0x20 {
		case 'x':
			digit = isHexDigit
		case 'o':
			digit = isOctalDigit
		case 'b':
			digit = isBinaryDigit
		}
		if digit != nil {
			l.pos += 2
			l.skipDigits(digit)
			l.match('n')
			return l.token(TokNumber, start)
		}
	}
	l.skipDigits(isDigit)
	if l.match('n') {
		return l.token(TokNumber, start)
	}
	if l.byteAt(l.pos) == '.' {
		l.pos++
		l.skipDigits(isDigit)
	}
	l.scanExponent()
	return l.token(TokNumber, start)
}

func (l *Lexer) skipDigits(digit func(byte) bool) {
	for l.pos < len(l.source) {
		b := l.source[l.pos]
		if !digit(b) && b != '_' {
			return
		}
		l.pos++
	}
}

func (l *Lexer) scanExponent() {
	if l.byteAt(l.pos)|0x20 != 'e' {
		return
	}
	next := l.byteAt(l.pos + 1)
	switch {
	case isDigit(next):
		l.pos++
	case (next == '+' || next == '-') && isDigit(l.byteAt(l.pos+2)):
		l.pos += 2
	default:
		return
	}
	l.skipDigits(isDigit)
}

func (l *Lexer) scanIdentifier(start int) Token {
	l.skipIdentifierPart()
	text := l.source[start:l.pos]
	kind := TokIdentifier
	if bytes.IndexByte(text, '\\') < 0 {
		kind = LookupKeyword(text)
	}
	return l.token(kind, start)
}

func (l *Lexer) skipIdentifierPart() {
	for l.pos < len(l.source) {
		b := l.source[l.pos]
		switch {
		case isIdentPartASCII(b):
			l.pos++
		case b == '\\':
			n := unicodeEscapeLen(l.source, l.pos)
			if n == 0 {
				return
			}
			l.pos += n
		case b >= utf8.RuneSelf:
			r, size := utf8.DecodeRune(l.source[l.pos:])
			if !isIdentPartRune(r) {
				return
			}
			l.pos += size
		default:
			return
		}
	}
}

func (l *Lexer) identStartAt(i int) bool {
	b := l.byteAt(i)
	if b < utf8.RuneSelf {
		return isIdentStartASCII(b) || (b == '\\' && unicodeEscapeLen(l.source, i) > 0)
	}
	r, _ := utf8.DecodeRune(l.source[i:])
	return unicode.IsLetter(r) || unicode.Is(unicode.Nl, r)
}

// unicodeEscapeLen returns the length of a \uXXXX or \u{X...} escape at
// i, or 0 if there is none.
func unicodeEscapeLen(src []byte, i int) int {
	if i+1 >= len(src) || src[i] != '\\' || src[i+1] != 'u' {
		return 0
	}
	j := i + 2
	if j < len(src) && src[j] == '{' {
		j++
		digits := 0
		for j < len(src) && isHexDigit(src[j]) {
			j++
			digits++
		}
		if digits == 0 || j >= len(src) || src[j] != '}' {
			return 0
		}
		return j + 1 - i
	}
	for k := 0; k < 4; k++ {
		if j+k >= len(src) || !isHexDigit(src[j+k]) {
			return 0
		}
	}
	return 6
}

// DecodeIdentifier returns the name spelled by the source text of an
// identifier, with \uXXXX and \u{X...} escapes replaced by the characters
// they denote. An escape naming no valid code point is kept as written.
func DecodeIdentifier(text []byte) string {
	if bytes.IndexByte(text, '\\') < 0 {
		return string(text)
	}
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		n := unicodeEscapeLen(text, i)
		if n == 0 {
			b.WriteByte(text[i])
			i++
			continue
		}
		digits := text[i+2 : i+n]
		if digits[0] == '{' {
			digits = digits[1 : len(digits)-1]
		}
		r, err := strconv.ParseUint(string(digits), 16, 32)
		if err != nil || r > unicode.MaxRune || (r >= 0xD800 && r <= 0xDFFF) {
			b.Write(text[i : i+n])
		} else {
			b.WriteRune(rune(r))
		}
		i += n
	}
	return b.String()
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b|0x20 >= 'a' && b|0x20 <= 'f')
}

func isOctalDigit(b byte) bool {
	return b >= '0' && b <= '7'
}

func isBinaryDigit(b byte) bool {
	return b == '0' || b == '1'
}

func isIdentStartASCII(b byte) bool {
	return (b|0x20 >= 'a' && b|0x20 <= 'z') || b == '$' || b == '_'
}

func isIdentPartASCII(b byte) bool {
	return isIdentStartASCII(b) || isDigit(b)
}

func isIdentPartRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) ||
		unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nl, unicode.Pc) ||
		r == '\u200c' || r == '\u200d'
}
