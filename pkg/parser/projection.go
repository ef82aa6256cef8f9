package parser

import (
	"github.com/chcg/jsonql/pkg/indexer"
	"github.com/chcg/jsonql/pkg/lexer"
	"github.com/chcg/jsonql/pkg/value"
)

// parseProjection parses `{expr, expr, …}` (array projection) or
// `{"k": expr, …}` (object projection), already at the opening brace.
// Mixing the two forms in one projection is rejected. A string entry is
// only an object key when it is immediately followed by a colon;
// otherwise it is itself the first array expression.
func parseProjection(c *cursor) (indexer.Step, error) {
	if _, err := c.expect(lexer.TokenLBrace); err != nil {
		return indexer.Step{}, err
	}

	if c.at(lexer.TokenRBrace) {
		c.advance()
		return indexer.Step{Indexer: &indexer.Projection{ArrayExprs: []value.Value{}}, IsProjection: true}, nil
	}

	var objEntries []indexer.ProjEntry
	var arrExprs []value.Value

	for {
		if c.at(lexer.TokenString) && c.peek().Type == lexer.TokenColon {
			if arrExprs != nil {
				return indexer.Step{}, c.errorf("cannot mix array and object projection entries")
			}
			keyTok := c.tok
			c.advance()
			key, err := parseStringLiteral(keyTok)
			if err != nil {
				return indexer.Step{}, err
			}
			if _, err := c.expect(lexer.TokenColon); err != nil {
				return indexer.Step{}, err
			}
			expr, err := parseExprOrScalarFunc(c)
			if err != nil {
				return indexer.Step{}, err
			}
			objEntries = append(objEntries, indexer.ProjEntry{Key: key.(string), Expr: expr})
		} else {
			if objEntries != nil {
				return indexer.Step{}, c.errorf("cannot mix array and object projection entries")
			}
			expr, err := parseExprOrScalarFunc(c)
			if err != nil {
				return indexer.Step{}, err
			}
			arrExprs = append(arrExprs, expr)
		}

		if !c.at(lexer.TokenComma) {
			break
		}
		c.advance()
	}

	if _, err := c.expect(lexer.TokenRBrace); err != nil {
		return indexer.Step{}, err
	}

	if objEntries != nil {
		return indexer.Step{Indexer: &indexer.Projection{ObjectEntries: objEntries}, IsProjection: true, IsDict: true}, nil
	}
	return indexer.Step{Indexer: &indexer.Projection{ArrayExprs: arrExprs}, IsProjection: true}, nil
}
