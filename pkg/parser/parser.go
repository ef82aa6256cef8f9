package parser

import (
	"github.com/chcg/jsonql/pkg/function"
	"github.com/chcg/jsonql/pkg/indexer"
	"github.com/chcg/jsonql/pkg/lexer"
	"github.com/chcg/jsonql/pkg/value"
)

// Compiled is the result of compiling a query: a selector, and,
// if the query carries a mutator half, its compiled form too. Both are
// value.Value — concrete or *value.Deferred — per the parser's
// parse-is-compile architecture; there is no separate AST to walk later.
//
// SelectorPath is populated only alongside a mutator: it is the selector's
// indexer pipeline, kept unfolded so the mutator package can walk it
// against the input to find the positions to write back through, instead
// of the collapsed value.Value a plain read uses.
type Compiled struct {
	Selector     value.Value
	SelectorPath []indexer.Step
	Mutator      value.Value
}

type options struct {
	funcs *function.Registry
}

// Option configures Compile.
type Option func(*options)

// WithRegistry overrides the default built-in function registry, e.g. to
// add application-specific arg functions.
func WithRegistry(r *function.Registry) Option {
	return func(o *options) { o.funcs = r }
}

// Compile compiles selectorSrc, and mutatorSrc if non-empty, returning
// their compiled forms under a shared function registry.
func Compile(selectorSrc, mutatorSrc string, opts ...Option) (Compiled, error) {
	o := &options{funcs: function.DefaultRegistry()}
	for _, opt := range opts {
		opt(o)
	}

	sel, err := parseOne(selectorSrc, o.funcs)
	if err != nil {
		return Compiled{}, err
	}

	if mutatorSrc == "" {
		return Compiled{Selector: sel}, nil
	}

	path, err := parsePath(selectorSrc, o.funcs)
	if err != nil {
		return Compiled{}, err
	}
	mut, err := parseOne(mutatorSrc, o.funcs)
	if err != nil {
		return Compiled{}, err
	}
	return Compiled{Selector: sel, SelectorPath: path, Mutator: mut}, nil
}

func parseOne(src string, funcs *function.Registry) (value.Value, error) {
	logger.Debug("parse start", "len", len(src))
	c := newCursor(src, funcs)
	if err := c.lex.Error(); err != nil {
		return nil, err
	}

	expr, err := parseExprOrScalarFunc(c)
	if err != nil {
		return nil, err
	}
	if err := c.lex.Error(); err != nil {
		return nil, err
	}
	if !c.at(lexer.TokenEOF) {
		return nil, c.errorf("unexpected trailing input")
	}
	logger.Debug("parse end", "len", len(src), "tokens", c.tokens)
	return expr, nil
}

// parsePath compiles src as a mutator's selector half: the current-input
// sigil `@` followed by zero or more indexer steps, and nothing else. A
// selector built from a general expression, a literal, or a function call
// has no single well-defined position in the input to write a mutation
// back through, so those are rejected here even though parseOne accepts
// them for a plain read.
func parsePath(src string, funcs *function.Registry) ([]indexer.Step, error) {
	c := newCursor(src, funcs)
	if err := c.lex.Error(); err != nil {
		return nil, err
	}
	if _, err := c.expect(lexer.TokenAt); err != nil {
		return nil, err
	}

	var steps []indexer.Step
	for startsIndexer(c.tok.Type) {
		step, err := parseIndexerStarter(c)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	if err := c.lex.Error(); err != nil {
		return nil, err
	}
	if !c.at(lexer.TokenEOF) {
		return nil, c.errorf("a mutator selector must be @ followed only by indexer steps")
	}
	return steps, nil
}
