package lexer

import (
	"testing"

	"github.com/jsscope/jsscope/internal/testutil"
	"github.com/jsscope/jsscope/internal/types"
	"github.com/jsscope/jsscope/js"
)

func tokenKinds(source string) []TokenKind {
	lexer := New([]byte(source), nil)
	tokens, _ := lexer.Tokenize()
	kinds := make([]TokenKind, len(tokens))
	for i, t := range tokens {
		kinds[i] = t.Kind
	}
	return kinds
}

func tokenTexts(source string) []string {
	lexer := New([]byte(source), nil)
	tokens, _ := lexer.Tokenize()
	var texts []string
	for _, t := range tokens {
		if t.Kind != TokEOF {
			texts = append(texts, source[t.Span.Start:t.Span.End])
		}
	}
	return texts
}

func tokenDiagnostics(source string) []js.Diagnostic {
	lexer := New([]byte(source), nil)
	_, diags := lexer.Tokenize()
	return diags
}

func span(start, end int) types.Span {
	return types.NewSpan(types.ByteOffset(start), types.ByteOffset(end))
}

func TestEmptyInput(t *testing.T) {
	kinds := tokenKinds("")
	testutil.SliceEqual(t, []TokenKind{TokEOF}, kinds, "empty input")
}

func TestPunctuation(t *testing.T) {
	kinds := tokenKinds("{ } ( ) [ ] ; , : ? ?. ?? ??= . ... => @ ~")
	expected := []TokenKind{
		TokLBrace, TokRBrace, TokLParen, TokRParen,
		TokLBracket, TokRBracket, TokSemicolon, TokComma,
		TokColon, TokQuestion, TokQuestionDot, TokQuestionQuestion,
		TokQuestionQuestionEqual, TokDot, TokDotDotDot, TokArrow,
		TokAt, TokTilde, TokEOF,
	}
	testutil.SliceEqual(t, expected, kinds, "token kinds")
}

func TestOperators(t *testing.T) {
	kinds := tokenKinds("= == === ! != !== < <= << <<= > >= >> >>= >>> >>>= " +
		"+ += ++ - -= -- * *= ** **= % %= & &= && &&= | |= || ||= ^ ^=")
	expected := []TokenKind{
		TokEqual, TokEqualEqual, TokEqualEqualEqual,
		TokBang, TokBangEqual, TokBangEqualEqual,
		TokLess, TokLessEqual, TokLessLess, TokLessLessEqual,
		TokGreater, TokGreaterEqual, TokGreaterGreater, TokGreaterGreaterEqual,
		TokGreaterGreaterGreater, TokGreaterGreaterGreaterEqual,
		TokPlus, TokPlusEqual, TokPlusPlus,
		TokMinus, TokMinusEqual, TokMinusMinus,
		TokStar, TokStarEqual, TokStarStar, TokStarStarEqual,
		TokPercent, TokPercentEqual,
		TokAmp, TokAmpEqual, TokAmpAmp, TokAmpAmpEqual,
		TokPipe, TokPipeEqual, TokPipePipe, TokPipePipeEqual,
		TokCaret, TokCaretEqual, TokEOF,
	}
	testutil.SliceEqual(t, expected, kinds, "token kinds")
}

func TestDivision(t *testing.T) {
	kinds := tokenKinds("a / b /= c")
	expected := []TokenKind{
		TokIdentifier, TokSlash, TokIdentifier, TokSlashEqual, TokIdentifier, TokEOF,
	}
	testutil.SliceEqual(t, expected, kinds, "token kinds")
}

func TestNumbers(t *testing.T) {
	texts := tokenTexts("0 42 3.14 .5 1e10 1E-7 2.5e+3 0x1F 0o17 0b1010 1_000_000 10n 0xFFn")
	expectedTexts := []string{
		"0", "42", "3.14", ".5", "1e10", "1E-7", "2.5e+3",
		"0x1F", "0o17", "0b1010", "1_000_000", "10n", "0xFFn",
	}
	testutil.SliceEqual(t, expectedTexts, texts, "token texts")
}

func TestOptionalChainVersusConditional(t *testing.T) {
	kinds := tokenKinds("a?.5:b")
	expected := []TokenKind{
		TokIdentifier, TokQuestion, TokNumber, TokColon, TokIdentifier, TokEOF,
	}
	testutil.SliceEqual(t, expected, kinds, "token kinds")
}

func TestIdentifiers(t *testing.T) {
	source := `foo $bar _baz café abc x1 \u{69}f`
	texts := tokenTexts(source)
	expectedTexts := []string{"foo", "$bar", "_baz", "café", `abc`, "x1", `\u{69}f`}
	testutil.SliceEqual(t, expectedTexts, texts, "token texts")

	for _, k := range tokenKinds(source)[:len(expectedTexts)] {
		testutil.Equal(t, TokIdentifier, k, "escaped names are never keywords")
	}
}

func TestDecodeIdentifier(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"foo", "foo"},
		{`\u0061`, "a"},
		{`\u{62}ar`, "bar"},
		{`x\u{1F600}`, "x\U0001F600"},
		{`caf\u00e9`, "café"},
		{`\u{110000}`, `\u{110000}`},
		{`\uD800`, `\uD800`},
		{`a\b`, `a\b`},
	}
	for _, tt := range tests {
		testutil.Equal(t, tt.want, DecodeIdentifier([]byte(tt.text)), "DecodeIdentifier(%q)", tt.text)
	}
}

func TestRegexpAllowedAfter(t *testing.T) {
	for _, k := range []TokenKind{TokEOF, TokLParen, TokEqual, TokComma, TokKwReturn, TokLBracket} {
		testutil.True(t, RegexpAllowedAfter(k), "regexp after %v", k)
	}
	for _, k := range []TokenKind{TokIdentifier, TokRParen, TokRBracket, TokNumber, TokKwThis} {
		testutil.False(t, RegexpAllowedAfter(k), "division after %v", k)
	}
}

func TestKeywords(t *testing.T) {
	kinds := tokenKinds("if else let const class function return of")
	expected := []TokenKind{
		TokKwIf, TokKwElse, TokKwLet, TokKwConst,
		TokKwClass, TokKwFunction, TokKwReturn, TokKwOf, TokEOF,
	}
	testutil.SliceEqual(t, expected, kinds, "token kinds")
}

func TestPrivateName(t *testing.T) {
	kinds := tokenKinds("this.#count")
	expected := []TokenKind{TokKwThis, TokDot, TokPrivateName, TokEOF}
	testutil.SliceEqual(t, expected, kinds, "token kinds")
	testutil.SliceEqual(t, []string{"this", ".", "#count"}, tokenTexts("this.#count"), "token texts")
}

func TestStrings(t *testing.T) {
	texts := tokenTexts(`"hello" 'world' "esc\"aped" 'it\'s' "a\
b"`)
	expectedTexts := []string{`"hello"`, `'world'`, `"esc\"aped"`, `'it\'s'`, "\"a\\\nb\""}
	testutil.SliceEqual(t, expectedTexts, texts, "token texts")
}

func TestUnterminatedString(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   types.Span
	}{
		{"newline", "\"abc\ndef\"", span(0, 4)},
		{"eof", "x = 'abc", span(4, 8)},
		{"escaped eof", `'abc\`, span(0, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kinds := tokenKinds(tt.source)
			testutil.Equal(t, TokFatal, kinds[len(kinds)-1], "last token")
			diags := tokenDiagnostics(tt.source)
			testutil.Len(t, diags, 1, "diagnostics")
			testutil.Equal(t, js.DiagUnterminatedStringLiteral, diags[0].Kind, "kind")
			testutil.Equal(t, tt.want, diags[0].Span, "span")
		})
	}
}

func TestTemplates(t *testing.T) {
	tests := []struct {
		source string
		want   []string
	}{
		{"`hello`", []string{"`hello`"}},
		{"`a${b}c`", []string{"`a${", "b", "}c`"}},
		{"`${a}${b}`", []string{"`${", "a", "}${", "b", "}`"}},
		{"`${ {a} }`", []string{"`${", "{", "a", "}", "}`"}},
		{"`$notahole \\${x}`", []string{"`$notahole \\${x}`"}},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			testutil.SliceEqual(t, tt.want, tokenTexts(tt.source), "token texts")
		})
	}

	kinds := tokenKinds("`a${b}c`")
	expected := []TokenKind{TokIncompleteTemplate, TokIdentifier, TokCompleteTemplate, TokEOF}
	testutil.SliceEqual(t, expected, kinds, "token kinds")
}

func TestUnterminatedTemplate(t *testing.T) {
	diags := tokenDiagnostics("x = `abc")
	testutil.Len(t, diags, 1, "diagnostics")
	testutil.Equal(t, js.DiagUnterminatedTemplate, diags[0].Kind, "kind")
	testutil.Equal(t, span(4, 8), diags[0].Span, "span")

	// The tail after a substitution reports from the opening backtick.
	diags = tokenDiagnostics("`a${b} c")
	testutil.Len(t, diags, 1, "diagnostics")
	testutil.Equal(t, span(0, 8), diags[0].Span, "span")
}

func TestFailTemplate(t *testing.T) {
	l := New([]byte("`a${b"), nil)
	testutil.Equal(t, TokIncompleteTemplate, l.Peek().Kind, "head")
	l.Skip()
	l.Skip()
	testutil.Equal(t, TokEOF, l.Peek().Kind, "eof inside hole")
	l.FailTemplate(0)
	testutil.Equal(t, TokFatal, l.Peek().Kind, "fatal")
	diags := l.TakeDiagnostics()
	testutil.Len(t, diags, 1, "diagnostics")
	testutil.Equal(t, span(0, 5), diags[0].Span, "span")
}

func TestRegexp(t *testing.T) {
	tests := []struct {
		source string
		want   []string
	}{
		{"x = /ab+c/gi", []string{"x", "=", "/ab+c/gi"}},
		{"/[/]/.test(s)", []string{"/[/]/", ".", "test", "(", "s", ")"}},
		{`f(/a\/b/)`, []string{"f", "(", `/a\/b/`, ")"}},
		{"return /=/", []string{"return", "/=/"}},
		{"a / b / c", []string{"a", "/", "b", "/", "c"}},
		{"(a) / 2", []string{"(", "a", ")", "/", "2"}},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			testutil.SliceEqual(t, tt.want, tokenTexts(tt.source), "token texts")
		})
	}
}

func TestUnterminatedRegexp(t *testing.T) {
	diags := tokenDiagnostics("x = /abc\nfoo")
	testutil.Len(t, diags, 1, "diagnostics")
	testutil.Equal(t, js.DiagUnterminatedRegexp, diags[0].Kind, "kind")
	testutil.Equal(t, span(4, 8), diags[0].Span, "span")
}

func TestReparseAsRegexpIgnoresOtherTokens(t *testing.T) {
	l := New([]byte("a"), nil)
	l.ReparseAsRegexp()
	testutil.Equal(t, TokIdentifier, l.Peek().Kind, "unchanged")
}

func TestComments(t *testing.T) {
	l := New([]byte("a // c\nb /* x */ c /* \n */ d"), nil)
	tokens, diags := l.Tokenize()
	testutil.Len(t, diags, 0, "diagnostics")
	testutil.Len(t, tokens, 5, "tokens")
	testutil.False(t, tokens[0].NewlineBefore, "a")
	testutil.True(t, tokens[1].NewlineBefore, "b after line comment")
	testutil.False(t, tokens[2].NewlineBefore, "c after inline block comment")
	testutil.True(t, tokens[3].NewlineBefore, "d after multi-line block comment")
}

func TestUnclosedBlockComment(t *testing.T) {
	kinds := tokenKinds("a /* oops")
	testutil.SliceEqual(t, []TokenKind{TokIdentifier, TokFatal}, kinds, "token kinds")
	diags := tokenDiagnostics("a /* oops")
	testutil.Len(t, diags, 1, "diagnostics")
	testutil.Equal(t, js.DiagUnclosedBlockComment, diags[0].Kind, "kind")
	testutil.Equal(t, span(2, 4), diags[0].Span, "span")
}

func TestUnexpectedCharacter(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   types.Span
	}{
		{"snowman", "a ☃ b", span(2, 5)},
		{"hash", "a # b", span(2, 3)},
		{"bad escape", `a \x b`, span(2, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kinds := tokenKinds(tt.source)
			testutil.Equal(t, TokEOF, kinds[len(kinds)-1], "recovered to end of file")
			diags := tokenDiagnostics(tt.source)
			testutil.NotEmpty(t, diags, "diagnostics")
			testutil.Equal(t, js.DiagUnexpectedCharacter, diags[0].Kind, "kind")
			testutil.Equal(t, tt.want, diags[0].Span, "span")
			testutil.Equal(t, js.SeverityError, diags[0].Severity(), "not fatal")
		})
	}
}

func TestLineTerminators(t *testing.T) {
	for _, source := range []string{"a\nb", "a\rb", "a\r\nb", "a\u2028b", "a\u2029b"} {
		l := New([]byte(source), nil)
		tokens, _ := l.Tokenize()
		testutil.Len(t, tokens, 3, "tokens in %q", source)
		testutil.True(t, tokens[1].NewlineBefore, "newline before b in %q", source)
	}
}

func TestUnicodeWhitespace(t *testing.T) {
	kinds := tokenKinds("\ufeff\u00a0a\u3000\tb\v\f")
	testutil.SliceEqual(t, []TokenKind{TokIdentifier, TokIdentifier, TokEOF}, kinds, "token kinds")
}

func TestHashbang(t *testing.T) {
	l := New([]byte("#!/usr/bin/env node\nx"), nil)
	tok := l.Peek()
	testutil.Equal(t, TokIdentifier, tok.Kind, "first token")
	testutil.Equal(t, "x", tok.Text(l.Source()), "text")
	testutil.True(t, tok.NewlineBefore, "newline before x")
}

func TestPrevEnd(t *testing.T) {
	l := New([]byte("ab  cd"), nil)
	testutil.Equal(t, types.ByteOffset(0), l.PrevEnd(), "before any skip")
	l.Skip()
	testutil.Equal(t, types.ByteOffset(2), l.PrevEnd(), "after ab")
	testutil.Equal(t, span(4, 6), l.Peek().Span, "cd span")
}

func TestCheckpointRestore(t *testing.T) {
	l := New([]byte("a ☃ b c"), nil)
	cp := l.Checkpoint()
	l.Skip()
	l.Skip()
	testutil.Equal(t, "c", l.Peek().Text(l.Source()), "after two skips")
	testutil.True(t, l.HasDiagnostics(), "unexpected character recorded")

	l.Restore(cp)
	testutil.Equal(t, "a", l.Peek().Text(l.Source()), "restored token")
	testutil.Equal(t, types.ByteOffset(0), l.PrevEnd(), "restored prev end")
	testutil.False(t, l.HasDiagnostics(), "diagnostics after checkpoint discarded")

	l.Skip()
	testutil.Equal(t, "b", l.Peek().Text(l.Source()), "relexed")
	testutil.Len(t, l.TakeDiagnostics(), 1, "diagnostic recorded again")
	testutil.False(t, l.HasDiagnostics(), "taken")
}

func TestFatalIsSticky(t *testing.T) {
	l := New([]byte("'abc"), nil)
	testutil.Equal(t, TokFatal, l.Peek().Kind, "fatal")
	l.Skip()
	l.Skip()
	testutil.Equal(t, TokFatal, l.Peek().Kind, "still fatal")
	testutil.Len(t, l.TakeDiagnostics(), 1, "reported once")
}

func TestTokenSpansCoverText(t *testing.T) {
	source := "let x = a?.b ?? `t${y}` + /re/g;"
	l := New([]byte(source), nil)
	tokens, diags := l.Tokenize()
	testutil.Len(t, diags, 0, "diagnostics")
	prev := types.ByteOffset(0)
	for _, tok := range tokens {
		testutil.True(t, tok.Span.Start >= prev, "token %v starts before previous end", tok.Kind)
		testutil.True(t, tok.Span.End <= types.ByteOffset(len(source)), "token %v past end", tok.Kind)
		prev = tok.Span.End
	}
}

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		text string
		want TokenKind
	}{
		{"if", TokKwIf},
		{"instanceof", TokKwInstanceof},
		{"yield", TokKwYield},
		{"iff", TokIdentifier},
		{"If", TokIdentifier},
		{"x", TokIdentifier},
		{"constructor", TokIdentifier},
	}
	for _, tt := range tests {
		testutil.Equal(t, tt.want, LookupKeyword([]byte(tt.text)), "LookupKeyword(%q)", tt.text)
	}
}

func TestKeywordTable(t *testing.T) {
	for i := 1; i < len(keywords); i++ {
		testutil.True(t, keywords[i-1].text < keywords[i].text, "table unsorted at %q", keywords[i].text)
	}
	for _, kw := range keywords {
		testutil.Equal(t, kw.text, kw.kind.String(), "String() of keyword")
		testutil.True(t, kw.kind.IsKeyword(), "%s is a keyword", kw.text)
	}
	testutil.Equal(t, int(TokKwYield-TokKwAs+1), len(keywords), "every keyword kind has an entry")
}

func TestTokenKindPredicates(t *testing.T) {
	testutil.Equal(t, "=>", TokArrow.String(), "arrow")
	testutil.Equal(t, "end of file", TokEOF.String(), "eof")
	testutil.True(t, TokKwLet.IsIdentifierLike(), "let")
	testutil.False(t, TokKwIf.IsIdentifierLike(), "if")
	testutil.True(t, TokQuestionQuestionEqual.IsAssignmentOperator(), "??=")
	testutil.False(t, TokEqualEqual.IsAssignmentOperator(), "==")
	testutil.True(t, TokFatal.IsEnd(), "fatal ends input")
}
