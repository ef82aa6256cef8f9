package function

import (
	"math"

	"github.com/chcg/jsonql/pkg/types"
	"github.com/chcg/jsonql/pkg/value"
)

func registerNumeric(r *Registry) {
	r.Register(&Def{
		Name: "abs", MinArgs: 1, MaxArgs: 1,
		ArgMasks: []value.Tag{value.Num}, Return: value.Float,
		IsVectorized: true, IsDeterministic: true,
		Fn: func(args []value.Value) (value.Value, error) {
			switch x := args[0].(type) {
			case int64:
				if x < 0 {
					return -x, nil
				}
				return x, nil
			case float64:
				return math.Abs(x), nil
			default:
				return nil, types.Typef("abs requires a numeric argument")
			}
		},
	})

	r.Register(&Def{
		Name: "floor", MinArgs: 1, MaxArgs: 1,
		ArgMasks: []value.Tag{value.Num}, Return: value.Int,
		IsVectorized: true, IsDeterministic: true,
		Fn: numericUnary(func(f float64) float64 { return math.Floor(f) }, true),
	})

	r.Register(&Def{
		Name: "ceil", MinArgs: 1, MaxArgs: 1,
		ArgMasks: []value.Tag{value.Num}, Return: value.Int,
		IsVectorized: true, IsDeterministic: true,
		Fn: numericUnary(func(f float64) float64 { return math.Ceil(f) }, true),
	})

	r.Register(&Def{
		Name: "round", MinArgs: 1, MaxArgs: 2,
		ArgMasks: []value.Tag{value.Num, value.Int}, Return: value.Float,
		IsVectorized: true, IsDeterministic: true,
		Fn: fnRound,
	})

	r.Register(&Def{
		Name: "sum", MinArgs: 1, MaxArgs: 1,
		ArgMasks: []value.Tag{value.Arr}, Return: value.Float,
		IsVectorized: false, IsDeterministic: true,
		Fn: fnSum,
	})

	r.Register(&Def{
		Name: "sqrt", MinArgs: 1, MaxArgs: 1,
		ArgMasks: []value.Tag{value.Num}, Return: value.Float,
		IsVectorized: true, IsDeterministic: true,
		Fn: func(args []value.Value) (value.Value, error) {
			f, ok := asFloat(args[0])
			if !ok {
				return nil, types.Typef("sqrt requires a numeric argument")
			}
			if f < 0 {
				return nil, types.Typef("sqrt of a negative number")
			}
			return math.Sqrt(f), nil
		},
	})
}

func asFloat(v value.Value) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}

// numericUnary builds a Fn applying f to any numeric argument. asInt
// controls whether the result is cast back to int64 (floor/ceil always
// return Int per the declared return type).
func numericUnary(f func(float64) float64, asInt bool) Body {
	return func(args []value.Value) (value.Value, error) {
		x, ok := asFloat(args[0])
		if !ok {
			return nil, types.Typef("expected a numeric argument, got %T", args[0])
		}
		r := f(x)
		if asInt {
			return int64(r), nil
		}
		return r, nil
	}
}

func fnRound(args []value.Value) (value.Value, error) {
	x, ok := asFloat(args[0])
	if !ok {
		return nil, types.Typef("round requires a numeric argument")
	}
	digits := int64(0)
	if len(args) > 1 {
		if n, ok := args[1].(int64); ok {
			digits = n
		}
	}
	scale := math.Pow(10, float64(digits))
	// Banker's rounding (round-half-to-even), matching the library's
	// general preference for IEEE-754-compatible rounding over
	// round-half-away-from-zero.
	scaled := x * scale
	floor := math.Floor(scaled)
	diff := scaled - floor
	var rounded float64
	switch {
	case diff < 0.5:
		rounded = floor
	case diff > 0.5:
		rounded = floor + 1
	default:
		if math.Mod(floor, 2) == 0 {
			rounded = floor
		} else {
			rounded = floor + 1
		}
	}
	return rounded / scale, nil
}

func fnSum(args []value.Value) (value.Value, error) {
	arr, ok := args[0].([]value.Value)
	if !ok {
		return nil, types.Typef("sum requires an array argument")
	}
	var total float64
	allInt := true
	for _, e := range arr {
		f, ok := asFloat(e)
		if !ok {
			return nil, types.Typef("sum requires a numeric array")
		}
		if _, isInt := e.(int64); !isInt {
			allInt = false
		}
		total += f
	}
	if allInt {
		return int64(total), nil
	}
	return total, nil
}
