package lexer

import "testing"

func tokenTypes(t *testing.T, src string, allowRegexFirst bool) []TokenType {
	t.Helper()
	l := NewLexer(src)
	var got []TokenType
	allowRegex := allowRegexFirst
	for {
		tok := l.Next(allowRegex)
		got = append(got, tok.Type)
		if tok.Type == TokenEOF || tok.Type == TokenError {
			break
		}
		// After a value-ish token, '/' means divide; after an operator or
		// opening delimiter, '/' can start a regex. This mirrors how the
		// parser itself tracks the distinction.
		allowRegex = !isValueEnd(tok.Type)
	}
	return got
}

func isValueEnd(tt TokenType) bool {
	switch tt {
	case TokenNumber, TokenString, TokenName, TokenRBracket, TokenRParen, TokenRBrace, TokenTrue, TokenFalse, TokenNull:
		return true
	default:
		return false
	}
}

func TestLexerDelimitersAndIndexer(t *testing.T) {
	got := tokenTypes(t, "@.a[0]", true)
	want := []TokenType{TokenAt, TokenDot, TokenName, TokenLBracket, TokenNumber, TokenRBracket, TokenEOF}
	assertTokenTypes(t, got, want)
}

func TestLexerTwoCharOperators(t *testing.T) {
	got := tokenTypes(t, "a**b//c==d!=e<=f>=g", true)
	want := []TokenType{
		TokenName, TokenStarStar, TokenName, TokenSlashSlash, TokenName,
		TokenEqEq, TokenName, TokenNotEq, TokenName, TokenLtEq, TokenName,
		TokenGtEq, TokenName, TokenEOF,
	}
	assertTokenTypes(t, got, want)
}

func TestLexerRegexVsDivide(t *testing.T) {
	l := NewLexer("/abc/ / 2")
	first := l.Next(true)
	if first.Type != TokenRegex || first.Value != "abc" {
		t.Fatalf("want regex token \"abc\", got %v", first)
	}
	second := l.Next(false)
	if second.Type != TokenSlash {
		t.Fatalf("want division operator, got %v", second)
	}
}

func TestLexerStringEscapes(t *testing.T) {
	l := NewLexer(`"a\"b"`)
	tok := l.Next(true)
	if tok.Type != TokenString {
		t.Fatalf("want string token, got %v", tok)
	}
}

func TestLexerNumberStopsAtRecursiveDescent(t *testing.T) {
	got := tokenTypes(t, "1..a", true)
	want := []TokenType{TokenNumber, TokenDot, TokenDot, TokenName, TokenEOF}
	assertTokenTypes(t, got, want)
}

func TestLexerKeywordLiterals(t *testing.T) {
	got := tokenTypes(t, "true false null", true)
	want := []TokenType{TokenTrue, TokenFalse, TokenNull, TokenEOF}
	assertTokenTypes(t, got, want)
}

func TestLexerUnterminatedStringIsError(t *testing.T) {
	l := NewLexer(`"abc`)
	tok := l.Next(true)
	if tok.Type != TokenError {
		t.Fatalf("want error token, got %v", tok)
	}
	if l.Error() == nil {
		t.Fatal("want Error() to report the failure")
	}
}

func assertTokenTypes(t *testing.T, got, want []TokenType) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v (full: got=%v want=%v)", i, got[i], want[i], got, want)
		}
	}
}
