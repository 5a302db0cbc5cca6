package lexer

import "sort"

// keywords is the sorted keyword table for binary search.
// IMPORTANT: This slice MUST remain sorted by text.
var keywords = []struct {
	text string
	kind TokenKind
}{
	{"as", TokKwAs},
	{"async", TokKwAsync},
	{"await", TokKwAwait},
	{"break", TokKwBreak},
	{"case", TokKwCase},
	{"catch", TokKwCatch},
	{"class", TokKwClass},
	{"const", TokKwConst},
	{"continue", TokKwContinue},
	{"debugger", TokKwDebugger},
	{"default", TokKwDefault},
	{"delete", TokKwDelete},
	{"do", TokKwDo},
	{"else", TokKwElse},
	{"enum", TokKwEnum},
	{"export", TokKwExport},
	{"extends", TokKwExtends},
	{"false", TokKwFalse},
	{"finally", TokKwFinally},
	{"for", TokKwFor},
	{"from", TokKwFrom},
	{"function", TokKwFunction},
	{"get", TokKwGet},
	{"if", TokKwIf},
	{"import", TokKwImport},
	{"in", TokKwIn},
	{"instanceof", TokKwInstanceof},
	{"let", TokKwLet},
	{"new", TokKwNew},
	{"null", TokKwNull},
	{"of", TokKwOf},
	{"return", TokKwReturn},
	{"set", TokKwSet},
	{"static", TokKwStatic},
	{"super", TokKwSuper},
	{"switch", TokKwSwitch},
	{"this", TokKwThis},
	{"throw", TokKwThrow},
	{"true", TokKwTrue},
	{"try", TokKwTry},
	{"typeof", TokKwTypeof},
	{"var", TokKwVar},
	{"void", TokKwVoid},
	{"while", TokKwWhile},
	{"with", TokKwWith},
	{"yield", TokKwYield},
}

// LookupKeyword returns the token kind for a keyword, or TokIdentifier.
func LookupKeyword(text []byte) TokenKind {
	// Keywords are 2 to 10 lowercase ASCII letters.
	if len(text) < 2 || len(text) > 10 || text[0] < 'a' || text[0] > 'z' {
		return TokIdentifier
	}
	s := string(text)
	idx := sort.Search(len(keywords), func(i int) bool {
		return keywords[i].text >= s
	})
	if idx < len(keywords) && keywords[idx].text == s {
		return keywords[idx].kind
	}
	return TokIdentifier
}
