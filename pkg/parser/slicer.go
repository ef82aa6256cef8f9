package parser

import (
	"github.com/chcg/jsonql/pkg/indexer"
	"github.com/chcg/jsonql/pkg/lexer"
	"github.com/chcg/jsonql/pkg/value"
)

// parseSlicer consumes a single `[…]` bracket entry that starts with a
// number, a minus sign, or a colon: either a bare integer index, or a
// `start?:stop?:step?` slice triple with up to two colons.
func parseSlicer(c *cursor) (indexer.SliceEntry, error) {
	var start *int64
	if !c.at(lexer.TokenColon) {
		v, err := parseSignedInt(c)
		if err != nil {
			return indexer.SliceEntry{}, err
		}
		start = &v
	}

	if !c.at(lexer.TokenColon) {
		if start == nil {
			return indexer.SliceEntry{}, c.errorf("expected an integer or a slice")
		}
		return indexer.SliceEntry{Index: start}, nil
	}

	triple := &value.SliceTriple{Start: start}
	c.advance() // first ':'
	if isSliceBoundStart(c) {
		v, err := parseSignedInt(c)
		if err != nil {
			return indexer.SliceEntry{}, err
		}
		triple.Stop = &v
	}
	if c.at(lexer.TokenColon) {
		c.advance()
		if isSliceBoundStart(c) {
			v, err := parseSignedInt(c)
			if err != nil {
				return indexer.SliceEntry{}, err
			}
			triple.Step = &v
		}
	}
	return indexer.SliceEntry{Triple: triple}, nil
}

func isSliceBoundStart(c *cursor) bool {
	return c.at(lexer.TokenNumber) || c.at(lexer.TokenMinus)
}

func parseSignedInt(c *cursor) (int64, error) {
	neg := false
	if c.at(lexer.TokenMinus) {
		neg = true
		c.advance()
	}
	tok, err := c.expect(lexer.TokenNumber)
	if err != nil {
		return 0, err
	}
	v, err := parseNumberLiteral(tok)
	if err != nil {
		return 0, err
	}
	i, ok := v.(int64)
	if !ok {
		return 0, newError("expected an integer slice bound, got a float").WithToken(tok.Value, tok.Position)
	}
	if neg {
		i = -i
	}
	return i, nil
}
