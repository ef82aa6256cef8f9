// Package evaluator runs a compiled selector against input data under a
// shared timeout and logging policy.
//
// The parser's parse-is-compile architecture already reduces a selector to
// a value.Value — concrete, or a *value.Deferred closing over the whole
// indexer/binop/function pipeline — so there is no separate tree to walk
// here: this package exists to give callers one place to set a timeout
// and a logger, not to add a second evaluation pass.
package evaluator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chcg/jsonql/pkg/binop"
	"github.com/chcg/jsonql/pkg/function"
	"github.com/chcg/jsonql/pkg/parser"
	"github.com/chcg/jsonql/pkg/types"
	"github.com/chcg/jsonql/pkg/value"
)

// EvalOptions configures an Evaluator.
type EvalOptions struct {
	// Timeout bounds a single Eval call. Zero disables it.
	Timeout time.Duration
	// Debug installs Logger into the parser, binop and function packages
	// for their parse, vectorization-fallback and non-determinism traces.
	Debug bool
	// Logger receives those traces when Debug is set, and this package's
	// own eval start/end lines (at Debug level) whether or not it is.
	// Defaults to slog.Default().
	Logger *slog.Logger
}

// EvalOption configures evaluation behavior.
type EvalOption func(*EvalOptions)

// WithTimeout sets the evaluation timeout.
func WithTimeout(d time.Duration) EvalOption {
	return func(o *EvalOptions) { o.Timeout = d }
}

// WithDebug enables or disables debug logging.
func WithDebug(enabled bool) EvalOption {
	return func(o *EvalOptions) { o.Debug = enabled }
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EvalOption {
	return func(o *EvalOptions) { o.Logger = l }
}

// Evaluator evaluates a compiled selector against data.
type Evaluator struct {
	opts   EvalOptions
	logger *slog.Logger
}

// New builds an Evaluator. When Debug is set, its logger is also installed
// into the binop and function packages so their own traces land in the
// same sink.
func New(opts ...EvalOption) *Evaluator {
	o := EvalOptions{Timeout: 30 * time.Second}
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if o.Debug {
		parser.SetLogger(logger)
		binop.SetLogger(logger)
		function.SetLogger(logger)
	}
	return &Evaluator{opts: o, logger: logger}
}

// Eval resolves expr's selector against data, bounded by the configured
// timeout. ctx cancellation races the resolution in a goroutine since
// value.Resolve has no cancellation points of its own to check
// mid-recursion.
func (e *Evaluator) Eval(ctx context.Context, expr *types.Expression, data value.Value) (value.Value, error) {
	if expr == nil {
		return nil, fmt.Errorf("jsonql: nil expression")
	}
	if e.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.Timeout)
		defer cancel()
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("jsonql: evaluation of %q: %w", expr.SelectorSource, err)
	}

	e.logger.Debug("eval start", "source", expr.SelectorSource, "input_type", fmt.Sprintf("%T", data))

	type outcome struct {
		v   value.Value
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		v, err := value.Resolve(expr.Selector, data)
		done <- outcome{v, err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("jsonql: evaluation of %q: %w", expr.SelectorSource, ctx.Err())
	case o := <-done:
		e.logger.Debug("eval end", "source", expr.SelectorSource, "err", o.err)
		return o.v, o.err
	}
}
