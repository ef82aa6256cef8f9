package function

import (
	"math/rand"
	"strconv"

	"github.com/chcg/jsonql/pkg/types"
	"github.com/chcg/jsonql/pkg/value"
)

func registerTypes(r *Registry) {
	r.Register(&Def{
		Name: "number", MinArgs: 1, MaxArgs: 1,
		ArgMasks: []value.Tag{value.Str | value.Num}, Return: value.Float,
		IsVectorized: true, IsDeterministic: true,
		Fn: func(args []value.Value) (value.Value, error) {
			switch x := args[0].(type) {
			case int64, float64:
				return x, nil
			case string:
				if i, err := strconv.ParseInt(x, 10, 64); err == nil {
					return i, nil
				}
				f, err := strconv.ParseFloat(x, 64)
				if err != nil {
					return nil, types.Typef("number: cannot parse %q as a number", x)
				}
				return f, nil
			default:
				return nil, types.Typef("number requires a string or numeric argument")
			}
		},
	})
	r.Register(&Def{
		Name: "boolean", MinArgs: 1, MaxArgs: 1,
		ArgMasks: []value.Tag{value.Unknown}, Return: value.Bool,
		IsVectorized: true, IsDeterministic: true,
		Fn: func(args []value.Value) (value.Value, error) {
			return truthy(args[0]), nil
		},
	})
	r.Register(&Def{
		Name: "type", MinArgs: 1, MaxArgs: 1,
		ArgMasks: []value.Tag{value.Unknown}, Return: value.Str,
		IsVectorized: false, IsDeterministic: true,
		Fn: func(args []value.Value) (value.Value, error) {
			return value.TagOf(args[0]).String(), nil
		},
	})
	r.Register(&Def{
		Name: "rand", MinArgs: 0, MaxArgs: 0,
		Return: value.Float,
		IsVectorized: false, IsDeterministic: false,
		Fn: func([]value.Value) (value.Value, error) {
			return rand.Float64(), nil
		},
	})
}

func truthy(v value.Value) bool {
	switch x := v.(type) {
	case bool:
		return x
	case value.NullValue:
		return false
	case int64:
		return x != 0
	case float64:
		return x != 0
	case string:
		return x != ""
	case []value.Value:
		return len(x) > 0
	case *value.Object:
		return x.Len() > 0
	default:
		return false
	}
}
