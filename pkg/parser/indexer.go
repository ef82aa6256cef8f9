package parser

import (
	"regexp"

	"github.com/chcg/jsonql/pkg/indexer"
	"github.com/chcg/jsonql/pkg/lexer"
	"github.com/chcg/jsonql/pkg/value"
)

// parseIndexerStarter dispatches on the token that opens an indexer: `.`
// (possibly doubled, for recursive descent), `[`, or `{` (a projection,
// reachable directly with no leading dot).
func parseIndexerStarter(c *cursor) (indexer.Step, error) {
	switch c.tok.Type {
	case lexer.TokenLBrace:
		return parseProjection(c)

	case lexer.TokenLBracket:
		return parseBracket(c, false)

	case lexer.TokenDot:
		c.advance()
		recursive := false
		if c.at(lexer.TokenDot) {
			recursive = true
			c.advance()
		}
		if c.at(lexer.TokenLBracket) {
			return parseBracket(c, recursive)
		}
		return parseDotName(c, recursive)

	default:
		return indexer.Step{}, c.errorf("expected an indexer")
	}
}

// parseDotName parses `.name` or `.*` (already past the dot(s)).
func parseDotName(c *cursor, recursive bool) (indexer.Step, error) {
	if c.at(lexer.TokenStar) {
		c.advance()
		return indexer.Step{Indexer: &indexer.Star{Recursive: recursive}, IsRecursive: recursive, DynamicShape: !recursive}, nil
	}
	tok, err := c.expect(lexer.TokenName)
	if err != nil {
		return indexer.Step{}, err
	}
	nl := &indexer.NameList{Entries: []indexer.NameEntry{{Literal: tok.Value}}, Recursive: recursive}
	// A single literal name selects at most one entry when the search is
	// flat; a recursive search may find the same name at several nodes,
	// and yields bare values rather than (key, value) pairs, so it is
	// never dict-shaped.
	return indexer.Step{Indexer: nl, HasOneOption: !recursive, IsDict: !recursive, IsRecursive: recursive}, nil
}

// bracketEntry is the classified result of parsing one `[…]` list member:
// exactly one of its fields is populated.
type bracketEntry struct {
	name  *indexer.NameEntry
	slice *indexer.SliceEntry
	expr  value.Value
}

// parseBracket parses a `[…]` indexer, already past the leading dot(s) if
// any. `[*]` is Star; otherwise the first entry's kind (key-like,
// index-like, or a general expression) decides whether the bracket is a
// NameList, a SliceList, or a Boolean predicate, and every subsequent
// comma-separated entry must agree.
func parseBracket(c *cursor, recursive bool) (indexer.Step, error) {
	if _, err := c.expect(lexer.TokenLBracket); err != nil {
		return indexer.Step{}, err
	}

	if c.at(lexer.TokenStar) {
		c.advance()
		if _, err := c.expect(lexer.TokenRBracket); err != nil {
			return indexer.Step{}, err
		}
		return indexer.Step{Indexer: &indexer.Star{Recursive: recursive}, IsRecursive: recursive, DynamicShape: !recursive}, nil
	}

	first, err := parseBracketEntry(c)
	if err != nil {
		return indexer.Step{}, err
	}

	switch {
	case first.name != nil:
		entries := []indexer.NameEntry{*first.name}
		for c.at(lexer.TokenComma) {
			c.advance()
			e, err := parseBracketEntry(c)
			if err != nil {
				return indexer.Step{}, err
			}
			if e.name == nil {
				return indexer.Step{}, newIndexingError(c, "cannot mix key-like and index-like entries in one indexer")
			}
			entries = append(entries, *e.name)
		}
		if _, err := c.expect(lexer.TokenRBracket); err != nil {
			return indexer.Step{}, err
		}
		hasOne := !recursive && len(entries) == 1 && entries[0].Regex == nil
		return indexer.Step{
			Indexer:      &indexer.NameList{Entries: entries, Recursive: recursive},
			HasOneOption: hasOne,
			IsDict:       !recursive,
			IsRecursive:  recursive,
		}, nil

	case first.slice != nil:
		if recursive {
			return indexer.Step{}, newIndexingError(c, "recursive slicing is not supported")
		}
		entries := []indexer.SliceEntry{*first.slice}
		for c.at(lexer.TokenComma) {
			c.advance()
			e, err := parseBracketEntry(c)
			if err != nil {
				return indexer.Step{}, err
			}
			if e.slice == nil {
				return indexer.Step{}, newIndexingError(c, "cannot mix key-like and index-like entries in one indexer")
			}
			entries = append(entries, *e.slice)
		}
		if _, err := c.expect(lexer.TokenRBracket); err != nil {
			return indexer.Step{}, err
		}
		hasOne := len(entries) == 1 && entries[0].Index != nil
		return indexer.Step{Indexer: &indexer.SliceList{Entries: entries}, HasOneOption: hasOne}, nil

	default:
		if recursive {
			return indexer.Step{}, newIndexingError(c, "recursive boolean indexing is not supported")
		}
		if _, err := c.expect(lexer.TokenRBracket); err != nil {
			return indexer.Step{}, err
		}
		return indexer.Step{Indexer: &indexer.Boolean{Index: first.expr}, DynamicShape: true}, nil
	}
}

func parseBracketEntry(c *cursor) (bracketEntry, error) {
	switch c.tok.Type {
	case lexer.TokenString:
		tok := c.tok
		c.advance()
		s, err := parseStringLiteral(tok)
		if err != nil {
			return bracketEntry{}, err
		}
		return bracketEntry{name: &indexer.NameEntry{Literal: s.(string)}}, nil

	case lexer.TokenRegex:
		tok := c.tok
		c.advance()
		re, err := parseRegexLiteral(tok)
		if err != nil {
			return bracketEntry{}, err
		}
		return bracketEntry{name: &indexer.NameEntry{Regex: re.(*regexp.Regexp)}}, nil

	case lexer.TokenNumber, lexer.TokenColon, lexer.TokenMinus:
		entry, err := parseSlicer(c)
		if err != nil {
			return bracketEntry{}, err
		}
		return bracketEntry{slice: &entry}, nil

	default:
		expr, err := parseExprOrScalarFunc(c)
		if err != nil {
			return bracketEntry{}, err
		}
		return bracketEntry{expr: expr}, nil
	}
}
