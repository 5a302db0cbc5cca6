// Package lexer provides tokenization for JavaScript source text.
package lexer

import (
	"fmt"

	"github.com/jsscope/jsscope/internal/types"
)

// Token is a token with kind and source span.
type Token struct {
	Kind TokenKind
	Span types.Span
	// NewlineBefore is set when a line terminator occurs between the
	// previous token and this one. Automatic semicolon insertion needs it.
	NewlineBefore bool
}

// NewToken creates a new token.
func NewToken(kind TokenKind, span types.Span) Token {
	return Token{Kind: kind, Span: span}
}

// Text returns the token's source text.
func (t Token) Text(source []byte) string {
	return t.Span.Text(source)
}

// TokenKind identifies a token type.
type TokenKind int

const (
	// === Special ===

	// TokFatal marks a fatal lexical error. It behaves like end of input.
	TokFatal TokenKind = iota
	// TokEOF is end of input.
	TokEOF

	// === Names and literals ===

	// TokIdentifier is a name that is not a keyword.
	TokIdentifier
	// TokPrivateName is a class private name (#x).
	TokPrivateName
	// TokNumber is a numeric or BigInt literal.
	TokNumber
	// TokString is a single- or double-quoted string literal.
	TokString
	// TokRegexp is a regular expression literal. Only produced by
	// ReparseAsRegexp.
	TokRegexp
	// TokCompleteTemplate is a template literal, or the tail of one, with
	// no further substitutions.
	TokCompleteTemplate
	// TokIncompleteTemplate is template text ending in "${".
	TokIncompleteTemplate

	// === Punctuators ===

	TokLBrace                     // {
	TokRBrace                     // }
	TokLParen                     // (
	TokRParen                     // )
	TokLBracket                   // [
	TokRBracket                   // ]
	TokSemicolon                  // ;
	TokComma                      // ,
	TokColon                      // :
	TokQuestion                   // ?
	TokQuestionDot                // ?.
	TokQuestionQuestion           // ??
	TokQuestionQuestionEqual      // ??=
	TokDot                        // .
	TokDotDotDot                  // ...
	TokArrow                      // =>
	TokAt                         // @
	TokEqual                      // =
	TokEqualEqual                 // ==
	TokEqualEqualEqual            // ===
	TokBang                       // !
	TokBangEqual                  // !=
	TokBangEqualEqual             // !==
	TokLess                       // <
	TokLessEqual                  // <=
	TokLessLess                   // <<
	TokLessLessEqual              // <<=
	TokGreater                    // >
	TokGreaterEqual               // >=
	TokGreaterGreater             // >>
	TokGreaterGreaterEqual        // >>=
	TokGreaterGreaterGreater      // >>>
	TokGreaterGreaterGreaterEqual // >>>=
	TokPlus                       // +
	TokPlusEqual                  // +=
	TokPlusPlus                   // ++
	TokMinus                      // -
	TokMinusEqual                 // -=
	TokMinusMinus                 // --
	TokStar                       // *
	TokStarEqual                  // *=
	TokStarStar                   // **
	TokStarStarEqual              // **=
	TokSlash                      // /
	TokSlashEqual                 // /=
	TokPercent                    // %
	TokPercentEqual               // %=
	TokAmp                        // &
	TokAmpEqual                   // &=
	TokAmpAmp                     // &&
	TokAmpAmpEqual                // &&=
	TokPipe                       // |
	TokPipeEqual                  // |=
	TokPipePipe                   // ||
	TokPipePipeEqual              // ||=
	TokCaret                      // ^
	TokCaretEqual                 // ^=
	TokTilde                      // ~

	// === Keywords ===
	// Keep in sync with the keywords table.

	TokKwAs
	TokKwAsync
	TokKwAwait
	TokKwBreak
	TokKwCase
	TokKwCatch
	TokKwClass
	TokKwConst
	TokKwContinue
	TokKwDebugger
	TokKwDefault
	TokKwDelete
	TokKwDo
	TokKwElse
	TokKwEnum
	TokKwExport
	TokKwExtends
	TokKwFalse
	TokKwFinally
	TokKwFor
	TokKwFrom
	TokKwFunction
	TokKwGet
	TokKwIf
	TokKwImport
	TokKwIn
	TokKwInstanceof
	TokKwLet
	TokKwNew
	TokKwNull
	TokKwOf
	TokKwReturn
	TokKwSet
	TokKwStatic
	TokKwSuper
	TokKwSwitch
	TokKwThis
	TokKwThrow
	TokKwTrue
	TokKwTry
	TokKwTypeof
	TokKwVar
	TokKwVoid
	TokKwWhile
	TokKwWith
	TokKwYield

	tokKindCount
)

var tokenNames = [tokKindCount]string{
	TokFatal:                      "fatal",
	TokEOF:                        "end of file",
	TokIdentifier:                 "identifier",
	TokPrivateName:                "private name",
	TokNumber:                     "number",
	TokString:                     "string",
	TokRegexp:                     "regexp",
	TokCompleteTemplate:           "template",
	TokIncompleteTemplate:         "template head",
	TokLBrace:                     "{",
	TokRBrace:                     "}",
	TokLParen:                     "(",
	TokRParen:                     ")",
	TokLBracket:                   "[",
	TokRBracket:                   "]",
	TokSemicolon:                  ";",
	TokComma:                      ",",
	TokColon:                      ":",
	TokQuestion:                   "?",
	TokQuestionDot:                "?.",
	TokQuestionQuestion:           "??",
	TokQuestionQuestionEqual:      "??=",
	TokDot:                        ".",
	TokDotDotDot:                  "...",
	TokArrow:                      "=>",
	TokAt:                         "@",
	TokEqual:                      "=",
	TokEqualEqual:                 "==",
	TokEqualEqualEqual:            "===",
	TokBang:                       "!",
	TokBangEqual:                  "!=",
	TokBangEqualEqual:             "!==",
	TokLess:                       "<",
	TokLessEqual:                  "<=",
	TokLessLess:                   "<<",
	TokLessLessEqual:              "<<=",
	TokGreater:                    ">",
	TokGreaterEqual:               ">=",
	TokGreaterGreater:             ">>",
	TokGreaterGreaterEqual:        ">>=",
	TokGreaterGreaterGreater:      ">>>",
	TokGreaterGreaterGreaterEqual: ">>>=",
	TokPlus:                       "+",
	TokPlusEqual:                  "+=",
	TokPlusPlus:                   "++",
	TokMinus:                      "-",
	TokMinusEqual:                 "-=",
	TokMinusMinus:                 "--",
	TokStar:                       "*",
	TokStarEqual:                  "*=",
	TokStarStar:                   "**",
	TokStarStarEqual:              "**=",
	TokSlash:                      "/",
	TokSlashEqual:                 "/=",
	TokPercent:                    "%",
	TokPercentEqual:               "%=",
	TokAmp:                        "&",
	TokAmpEqual:                   "&=",
	TokAmpAmp:                     "&&",
	TokAmpAmpEqual:                "&&=",
	TokPipe:                       "|",
	TokPipeEqual:                  "|=",
	TokPipePipe:                   "||",
	TokPipePipeEqual:              "||=",
	TokCaret:                      "^",
	TokCaretEqual:                 "^=",
	TokTilde:                      "~",
}

func (k TokenKind) String() string {
	if k >= 0 && k < tokKindCount {
		if name := tokenNames[k]; name != "" {
			return name
		}
	}
	if k.IsKeyword() {
		for _, kw := range keywords {
			if kw.kind == k {
				return kw.text
			}
		}
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// IsKeyword returns true if this token is a reserved or contextual keyword.
func (k TokenKind) IsKeyword() bool {
	return k >= TokKwAs && k <= TokKwYield
}

// IsContextualKeyword returns true for keywords that may also be used as
// identifiers (let, async, of, get, ...).
func (k TokenKind) IsContextualKeyword() bool {
	switch k {
	case TokKwAs, TokKwAsync, TokKwAwait, TokKwFrom, TokKwGet, TokKwLet,
		TokKwOf, TokKwSet, TokKwStatic, TokKwYield:
		return true
	default:
		return false
	}
}

// IsIdentifierLike returns true for identifiers and contextual keywords,
// which can both name a variable.
func (k TokenKind) IsIdentifierLike() bool {
	return k == TokIdentifier || k.IsContextualKeyword()
}

// IsAssignmentOperator returns true for = and the compound assignment
// operators.
func (k TokenKind) IsAssignmentOperator() bool {
	switch k {
	case TokEqual, TokPlusEqual, TokMinusEqual, TokStarEqual, TokSlashEqual,
		TokPercentEqual, TokStarStarEqual, TokLessLessEqual,
		TokGreaterGreaterEqual, TokGreaterGreaterGreaterEqual, TokAmpEqual,
		TokPipeEqual, TokCaretEqual, TokAmpAmpEqual, TokPipePipeEqual,
		TokQuestionQuestionEqual:
		return true
	default:
		return false
	}
}

// IsEnd returns true for TokEOF and TokFatal.
func (k TokenKind) IsEnd() bool {
	return k == TokEOF || k == TokFatal
}
