// Package jsonql compiles and evaluates a small query/transform language
// over JSON trees: selectors built from dotted and bracketed indexers,
// arithmetic and comparison binops vectorized over arrays and objects, a
// library of arg-functions, and projections, plus an optional mutator half
// that writes a computed value back into a structural copy of the input.
//
//	result, err := jsonql.Eval("@.prices[@ > 100]", data)
//
//	expr, err := jsonql.Compile("@.prices[@ > 100]")
//	result1, _ := evaluator.New().Eval(ctx, expr, data1)
//
//	out, err := jsonql.Mutate("@.items[0].price", "@ * 1.1", data)
package jsonql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chcg/jsonql/pkg/evaluator"
	"github.com/chcg/jsonql/pkg/mutator"
	"github.com/chcg/jsonql/pkg/parser"
	"github.com/chcg/jsonql/pkg/types"
	"github.com/chcg/jsonql/pkg/value"
)

// Version returns the current version of the engine.
func Version() string {
	return "v0.1.0-dev"
}

// Compile compiles query as a selector with no mutator half.
//
// The compiled expression can be evaluated multiple times against
// different data with an evaluator.Evaluator's Eval method. Eval and
// EvalWithContext take query text and compile it on every call.
func Compile(query string, opts ...parser.Option) (*types.Expression, error) {
	c, err := parser.Compile(query, "", opts...)
	if err != nil {
		return nil, err
	}
	return &types.Expression{Selector: c.Selector, SelectorSource: query}, nil
}

// MustCompile is like Compile but panics if query cannot be compiled. It
// simplifies safe initialization of package-level expressions.
func MustCompile(query string) *types.Expression {
	expr, err := Compile(query)
	if err != nil {
		panic(fmt.Sprintf("jsonql: Compile(%q): %v", query, err))
	}
	return expr
}

// Eval compiles and evaluates query against data in a single call, bounded
// by a 30-second default timeout. For repeated evaluations of the same
// query, compile once with Compile and evaluate the result with an
// evaluator.Evaluator.
func Eval(query string, data value.Value, opts ...evaluator.EvalOption) (value.Value, error) {
	expr, err := Compile(query)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return evaluator.New(opts...).Eval(ctx, expr, data)
}

// EvalWithContext evaluates query under the caller-supplied ctx. The
// evaluator's own timeout (30 seconds unless opts sets another with
// evaluator.WithTimeout) still applies on top of ctx.
func EvalWithContext(ctx context.Context, query string, data value.Value, opts ...evaluator.EvalOption) (value.Value, error) {
	expr, err := Compile(query)
	if err != nil {
		return nil, err
	}
	return evaluator.New(opts...).Eval(ctx, expr, data)
}

// Mutate compiles selectorQuery and mutatorQuery as a pair and returns a
// structural copy of data with the mutator's result spliced in at every
// position selectorQuery addresses. data itself is never modified.
//
// selectorQuery must be the current-input sigil `@` followed only by
// indexer steps (no binops, literals, or function calls, and no Star,
// Boolean, or Projection step): those selectors have no single, stable
// position in data to write back through.
func Mutate(selectorQuery, mutatorQuery string, data value.Value, opts ...parser.Option) (value.Value, error) {
	c, err := parser.Compile(selectorQuery, mutatorQuery, opts...)
	if err != nil {
		return nil, err
	}
	return mutator.Apply(c.SelectorPath, c.Mutator, data)
}

var kindLabels = map[types.Kind]string{
	types.KindParse:                "parse error",
	types.KindIndexing:             "indexing error",
	types.KindVectorizedArithmetic: "vectorized-arithmetic error",
	types.KindType:                 "type error",
	types.KindInvalidMutation:      "invalid-mutation error",
	types.KindInternalCast:         "internal cast error",
}

// Prettify renders err as the single-line, human-readable message the
// error-handling design promises at the API boundary: the structured
// *types.Error underneath every compile/eval failure is not meant to be
// shown to a user as-is. Any other error is rendered via its own
// Error() method.
func Prettify(err error) string {
	if err == nil {
		return ""
	}
	e, ok := err.(*types.Error)
	if !ok {
		return err.Error()
	}
	label, ok := kindLabels[e.Kind]
	if !ok {
		label = string(e.Kind)
	}
	msg := strings.ToUpper(label[:1]) + label[1:] + ": " + e.Message
	if e.Token != "" {
		msg += fmt.Sprintf(" (near %q)", e.Token)
	}
	return msg
}
