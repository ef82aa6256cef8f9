// Package parser implements the top-down recursive-descent parser that
// IS the compiler: each parse function returns a compiled value.Value
// (concrete or Deferred) rather than building an intermediate generic
// AST. The functions are free functions over a shared cursor, mutually
// recursive, with no class hierarchy standing in for the grammar.
package parser

import (
	"github.com/chcg/jsonql/pkg/function"
	"github.com/chcg/jsonql/pkg/lexer"
	"github.com/chcg/jsonql/pkg/types"
)

// cursor is the shared state threaded through every parse* function: the
// token stream position and the function registry the applier needs to
// resolve call names.
type cursor struct {
	lex    *lexer.Lexer
	tok    lexer.Token
	funcs  *function.Registry
	tokens int
}

func newCursor(src string, funcs *function.Registry) *cursor {
	c := &cursor{lex: lexer.NewLexer(src), funcs: funcs}
	c.advance()
	return c
}

// advance fetches the next token. Whether a leading '/' should be read as
// a regex literal or a division operator depends only on the token that
// was just current: a value-ending token (a literal, a name, or a closing
// delimiter) means '/' divides; anything else means '/' can start a
// regex, since a division operator never appears with no left operand.
func (c *cursor) advance() {
	c.tok = c.lex.Next(!endsValue(c.tok.Type))
	c.tokens++
}

func endsValue(tt lexer.TokenType) bool {
	switch tt {
	case lexer.TokenNumber, lexer.TokenString, lexer.TokenRegex, lexer.TokenName,
		lexer.TokenTrue, lexer.TokenFalse, lexer.TokenNull,
		lexer.TokenRBracket, lexer.TokenRParen, lexer.TokenRBrace, lexer.TokenAt:
		return true
	default:
		return false
	}
}

func (c *cursor) at(tt lexer.TokenType) bool {
	return c.tok.Type == tt
}

// peek reports the token that follows the current one, without consuming
// it. It runs the lexical scan on a throwaway copy of the lexer, which is
// a plain value type, so the real cursor position is untouched.
func (c *cursor) peek() lexer.Token {
	clone := *c.lex
	return clone.Next(!endsValue(c.tok.Type))
}

// expect consumes the current token if it matches tt, else returns a
// parse error naming what was expected.
func (c *cursor) expect(tt lexer.TokenType) (lexer.Token, error) {
	if c.tok.Type != tt {
		return lexer.Token{}, types.Parsef("expected %s, got %s", tt, c.tok.Type).WithToken(c.tok.Value, c.tok.Position)
	}
	t := c.tok
	c.advance()
	return t, nil
}

func (c *cursor) errorf(format string, a ...interface{}) error {
	return types.Parsef(format, a...).WithToken(c.tok.Value, c.tok.Position)
}
