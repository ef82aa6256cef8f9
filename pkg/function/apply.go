package function

import "github.com/chcg/jsonql/pkg/value"

// Apply calls def with args, implementing the dispatch: Deferred
// re-wrap, vectorization over the first argument's container, the plain
// synchronous path, and non-deterministic re-wrap, in that order. args
// has already been padded to def.MaxArgs (when finite) with the typed
// null sentinel for missing optional arguments.
func Apply(def *Def, args []value.Value) (value.Value, error) {
	for _, a := range args {
		if value.IsDeferred(a) {
			return deferredCall(def, args), nil
		}
	}
	result, err := dispatch(def, args)
	if err != nil {
		return nil, err
	}
	if !def.IsDeterministic {
		return redraw(def, args), nil
	}
	return result, nil
}

// deferredCall builds the Deferred that re-evaluates args against the
// current input and then runs the ordinary synchronous path.
func deferredCall(def *Def, args []value.Value) *value.Deferred {
	arg0Tag := value.Unknown
	if len(args) > 0 {
		arg0Tag = value.TagOf(args[0])
	}
	outTag := def.EffectiveReturn(arg0Tag)
	return value.Defer(outTag, func(input value.Value) (value.Value, error) {
		resolved := make([]value.Value, len(args))
		for i, a := range args {
			v, err := value.Resolve(a, input)
			if err != nil {
				return nil, err
			}
			resolved[i] = v
		}
		// A resolved Deferred argument might itself resolve to another
		// Deferred (e.g. a non-deterministic function nested inside this
		// call's argument); Apply re-enters to keep unwrapping.
		return Apply(def, resolved)
	})
}

// redraw wraps a non-deterministic function's call in a Deferred that
// re-invokes the function on every resolution rather than keeping the
// first draw.
func redraw(def *Def, args []value.Value) *value.Deferred {
	arg0Tag := value.Unknown
	if len(args) > 0 {
		arg0Tag = value.TagOf(args[0])
	}
	return value.Defer(def.EffectiveReturn(arg0Tag), func(value.Value) (value.Value, error) {
		logger.Debug("invoking non-deterministic function", "fn", def.Name)
		return dispatch(def, args)
	})
}

func dispatch(def *Def, args []value.Value) (value.Value, error) {
	if !def.IsVectorized || len(args) == 0 {
		return def.Fn(args)
	}
	switch a0 := args[0].(type) {
	case *value.Object:
		logger.Debug("vectorizing arg-function over object, per-element fallback", "fn", def.Name, "len", a0.Len())
		out := value.NewObject()
		for _, pair := range a0.Pairs() {
			callArgs := append([]value.Value{pair.Value}, args[1:]...)
			v, err := def.Fn(callArgs)
			if err != nil {
				return nil, err
			}
			out.Set(pair.Key, v)
		}
		return out, nil
	case []value.Value:
		logger.Debug("vectorizing arg-function over array, per-element fallback", "fn", def.Name, "len", len(a0))
		out := make([]value.Value, len(a0))
		for i, elem := range a0 {
			callArgs := append([]value.Value{elem}, args[1:]...)
			v, err := def.Fn(callArgs)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	default:
		return def.Fn(args)
	}
}

// PadOptional appends the typed null sentinel for every optional argument
// the call site omitted, when def.MaxArgs is finite.
func PadOptional(def *Def, args []value.Value) []value.Value {
	if def.MaxArgs == Unbounded {
		return args
	}
	for len(args) < def.MaxArgs {
		args = append(args, value.TheNull)
	}
	return args
}
