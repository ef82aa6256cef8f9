package function

import (
	"strconv"
	"strings"

	"github.com/chcg/jsonql/pkg/types"
	"github.com/chcg/jsonql/pkg/value"
)

func registerString(r *Registry) {
	r.Register(&Def{
		Name: "uppercase", MinArgs: 1, MaxArgs: 1,
		ArgMasks: []value.Tag{value.Str}, Return: value.Str,
		IsVectorized: true, IsDeterministic: true,
		Fn: stringUnary(strings.ToUpper),
	})
	r.Register(&Def{
		Name: "lowercase", MinArgs: 1, MaxArgs: 1,
		ArgMasks: []value.Tag{value.Str}, Return: value.Str,
		IsVectorized: true, IsDeterministic: true,
		Fn: stringUnary(strings.ToLower),
	})
	r.Register(&Def{
		Name: "trim", MinArgs: 1, MaxArgs: 1,
		ArgMasks: []value.Tag{value.Str}, Return: value.Str,
		IsVectorized: true, IsDeterministic: true,
		Fn: stringUnary(strings.TrimSpace),
	})
	r.Register(&Def{
		Name: "s_mul", MinArgs: 2, MaxArgs: 2,
		ArgMasks: []value.Tag{value.Str, value.Int}, Return: value.Str,
		IsVectorized: true, IsDeterministic: true,
		Fn: func(args []value.Value) (value.Value, error) {
			s, ok := args[0].(string)
			if !ok {
				return nil, types.Typef("s_mul requires a string first argument")
			}
			n, ok := args[1].(int64)
			if !ok || n < 0 {
				return nil, types.Typef("s_mul requires a non-negative int second argument")
			}
			return strings.Repeat(s, int(n)), nil
		},
	})
	r.Register(&Def{
		Name: "split", MinArgs: 2, MaxArgs: 2,
		ArgMasks: []value.Tag{value.Str, value.Str}, Return: value.Arr,
		IsVectorized: false, IsDeterministic: true,
		Fn: func(args []value.Value) (value.Value, error) {
			s, ok1 := args[0].(string)
			sep, ok2 := args[1].(string)
			if !ok1 || !ok2 {
				return nil, types.Typef("split requires two string arguments")
			}
			parts := strings.Split(s, sep)
			out := make([]value.Value, len(parts))
			for i, p := range parts {
				out[i] = p
			}
			return out, nil
		},
	})
	r.Register(&Def{
		Name: "join", MinArgs: 1, MaxArgs: 2,
		ArgMasks: []value.Tag{value.Arr, value.Str}, Return: value.Str,
		IsVectorized: false, IsDeterministic: true,
		Fn: func(args []value.Value) (value.Value, error) {
			arr, ok := args[0].([]value.Value)
			if !ok {
				return nil, types.Typef("join requires an array first argument")
			}
			sep := ""
			if len(args) > 1 {
				if s, ok := args[1].(string); ok {
					sep = s
				}
			}
			parts := make([]string, len(arr))
			for i, e := range arr {
				s, ok := e.(string)
				if !ok {
					return nil, types.Typef("join requires an array of strings")
				}
				parts[i] = s
			}
			return strings.Join(parts, sep), nil
		},
	})
	r.Register(&Def{
		Name: "len", MinArgs: 1, MaxArgs: 1,
		ArgMasks: []value.Tag{value.Str | value.Iterable}, Return: value.Int,
		IsVectorized: false, IsDeterministic: true,
		Fn: fnLen,
	})
	r.Register(&Def{
		Name: "str", MinArgs: 1, MaxArgs: 1,
		ArgMasks: []value.Tag{value.Unknown}, Return: value.Str,
		IsVectorized: true, IsDeterministic: true,
		Fn: fnStr,
	})
}

func stringUnary(f func(string) string) Body {
	return func(args []value.Value) (value.Value, error) {
		s, ok := args[0].(string)
		if !ok {
			return nil, types.Typef("expected a string argument, got %T", args[0])
		}
		return f(s), nil
	}
}

func fnLen(args []value.Value) (value.Value, error) {
	switch x := args[0].(type) {
	case string:
		return int64(len([]rune(x))), nil
	case []value.Value:
		return int64(len(x)), nil
	case *value.Object:
		return int64(x.Len()), nil
	default:
		return nil, types.Typef("len requires a string, array, or object")
	}
}

func fnStr(args []value.Value) (value.Value, error) {
	switch x := args[0].(type) {
	case string:
		return x, nil
	case value.NullValue:
		return "null", nil
	case bool:
		return strconv.FormatBool(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	default:
		return nil, types.Typef("str does not accept a container argument")
	}
}
