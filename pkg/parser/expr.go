package parser

import (
	"github.com/chcg/jsonql/pkg/binop"
	"github.com/chcg/jsonql/pkg/indexer"
	"github.com/chcg/jsonql/pkg/lexer"
	"github.com/chcg/jsonql/pkg/value"
)

// parseExprOrScalarFunc is the top-level expression entry point: a signed
// atom followed by zero or more (binop, signed atom) pairs, resolved into
// a single compiled value by the precedence-climbing builder. An atom
// followed directly by an expression terminator is returned as is,
// without starting a builder.
func parseExprOrScalarFunc(c *cursor) (value.Value, error) {
	atom, err := parseSignedAtom(c)
	if err != nil {
		return nil, err
	}
	if c.tok.Type.IsExprTerminator() {
		return atom, nil
	}

	b := binop.NewBuilder(atom)
	for {
		def, ok := binopTable[c.tok.Type]
		if !ok {
			break
		}
		c.advance()
		next, err := parseSignedAtom(c)
		if err != nil {
			return nil, err
		}
		b.Push(def, next)
		if c.tok.Type.IsExprTerminator() {
			break
		}
	}
	return binop.Resolve(b.Finish())
}

// parseSignedAtom parses one atom, honoring a leading unary minus. A
// minus immediately followed by an atom that is itself immediately
// followed by `**` fuses into a single negpow node so that `-x ** y`
// parses as `-(x ** y)`, per the exponent right-associativity rule;
// any other leading minus negates its atom outright. This is recursive
// so the fusion applies no matter where the signed atom occurs — the
// first operand of an expression, a function argument, or the
// right-hand side of any other binop.
func parseSignedAtom(c *cursor) (value.Value, error) {
	negate := false
	if c.at(lexer.TokenMinus) {
		negate = true
		c.advance()
	}
	atom, err := parseExprOrScalar(c)
	if err != nil {
		return nil, err
	}
	if !negate {
		return atom, nil
	}
	if c.at(lexer.TokenStarStar) {
		c.advance()
		rhs, err := parseSignedAtom(c)
		if err != nil {
			return nil, err
		}
		return binop.Resolve(&binop.Node{Op: binop.NegPow, Left: atom, Right: rhs})
	}
	return binop.Negate(atom)
}

// parseExprOrScalar parses one atom, then — if an indexer starter
// follows — the chain of indexers applied to it, composing the whole
// thing into the indexer pipeline.
func parseExprOrScalar(c *cursor) (value.Value, error) {
	atom, err := parseAtom(c)
	if err != nil {
		return nil, err
	}
	if !startsIndexer(c.tok.Type) {
		return atom, nil
	}

	var steps []indexer.Step
	for startsIndexer(c.tok.Type) {
		step, err := parseIndexerStarter(c)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return composePipeline(atom, steps)
}

func startsIndexer(tt lexer.TokenType) bool {
	switch tt {
	case lexer.TokenDot, lexer.TokenLBracket, lexer.TokenLBrace:
		return true
	default:
		return false
	}
}

// parseAtom parses a parenthesized sub-expression, the current-input
// sigil, a literal, or a call to a known arg function.
func parseAtom(c *cursor) (value.Value, error) {
	switch c.tok.Type {
	case lexer.TokenLParen:
		c.advance()
		expr, err := parseExprOrScalarFunc(c)
		if err != nil {
			return nil, err
		}
		if _, err := c.expect(lexer.TokenRParen); err != nil {
			return nil, err
		}
		return expr, nil

	case lexer.TokenAt:
		c.advance()
		return value.Identity, nil

	case lexer.TokenNumber:
		tok := c.tok
		c.advance()
		return parseNumberLiteral(tok)

	case lexer.TokenString:
		tok := c.tok
		c.advance()
		return parseStringLiteral(tok)

	case lexer.TokenRegex:
		tok := c.tok
		c.advance()
		return parseRegexLiteral(tok)

	case lexer.TokenTrue:
		c.advance()
		return true, nil

	case lexer.TokenFalse:
		c.advance()
		return false, nil

	case lexer.TokenNull:
		c.advance()
		return value.TheNull, nil

	case lexer.TokenName:
		name, pos := c.tok.Value, c.tok.Position
		c.advance()
		if c.at(lexer.TokenLParen) {
			return parseArgFunction(c, name, pos)
		}
		return nil, newError("unknown identifier %q", name).WithToken(name, pos)

	default:
		return nil, c.errorf("unexpected %s, expected an expression", c.tok.Type)
	}
}

// composePipeline wraps steps around atom: a concrete atom is
// folded immediately, since its indexer results cannot depend on a
// runtime input the parser does not yet have; a Deferred atom re-wraps
// the whole pipeline as a new Deferred that resolves the atom first.
func composePipeline(atom value.Value, steps []indexer.Step) (value.Value, error) {
	if !value.IsDeferred(atom) {
		return indexer.Apply(steps, atom)
	}
	d := atom.(*value.Deferred)
	return value.Defer(value.Unknown, func(input value.Value) (value.Value, error) {
		resolved, err := d.Fn(input)
		if err != nil {
			return nil, err
		}
		return indexer.Apply(steps, resolved)
	}), nil
}
