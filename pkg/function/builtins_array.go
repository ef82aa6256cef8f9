package function

import (
	"sort"

	"github.com/chcg/jsonql/pkg/types"
	"github.com/chcg/jsonql/pkg/value"
)

func registerArray(r *Registry) {
	r.Register(&Def{
		Name: "append", MinArgs: 2, MaxArgs: 2,
		ArgMasks: []value.Tag{value.Arr, value.Arr}, Return: value.Arr,
		IsVectorized: false, IsDeterministic: true,
		Fn: func(args []value.Value) (value.Value, error) {
			a, ok1 := args[0].([]value.Value)
			b, ok2 := args[1].([]value.Value)
			if !ok1 || !ok2 {
				return nil, types.Typef("append requires two array arguments")
			}
			out := make([]value.Value, 0, len(a)+len(b))
			out = append(out, a...)
			out = append(out, b...)
			return out, nil
		},
	})
	r.Register(&Def{
		Name: "reverse", MinArgs: 1, MaxArgs: 1,
		ArgMasks: []value.Tag{value.Arr}, Return: value.Arr,
		IsVectorized: false, IsDeterministic: true,
		Fn: func(args []value.Value) (value.Value, error) {
			a, ok := args[0].([]value.Value)
			if !ok {
				return nil, types.Typef("reverse requires an array argument")
			}
			out := make([]value.Value, len(a))
			for i := range a {
				out[i] = a[len(a)-1-i]
			}
			return out, nil
		},
	})
	r.Register(&Def{
		Name: "distinct", MinArgs: 1, MaxArgs: 1,
		ArgMasks: []value.Tag{value.Arr}, Return: value.Arr,
		IsVectorized: false, IsDeterministic: true,
		Fn: func(args []value.Value) (value.Value, error) {
			a, ok := args[0].([]value.Value)
			if !ok {
				return nil, types.Typef("distinct requires an array argument")
			}
			var out []value.Value
			for _, e := range a {
				dup := false
				for _, seen := range out {
					if value.Equal(e, seen) {
						dup = true
						break
					}
				}
				if !dup {
					out = append(out, e)
				}
			}
			if out == nil {
				out = []value.Value{}
			}
			return out, nil
		},
	})
	r.Register(&Def{
		Name: "sort", MinArgs: 1, MaxArgs: 1,
		ArgMasks: []value.Tag{value.Arr}, Return: value.Arr,
		IsVectorized: false, IsDeterministic: true,
		Fn: fnSort,
	})
	r.Register(&Def{
		Name: "keys", MinArgs: 1, MaxArgs: 1,
		ArgMasks: []value.Tag{value.Obj}, Return: value.Arr,
		IsVectorized: false, IsDeterministic: true,
		Fn: func(args []value.Value) (value.Value, error) {
			o, ok := args[0].(*value.Object)
			if !ok {
				return nil, types.Typef("keys requires an object argument")
			}
			out := make([]value.Value, len(o.Keys))
			for i, k := range o.Keys {
				out[i] = k
			}
			return out, nil
		},
	})
	r.Register(&Def{
		Name: "values", MinArgs: 1, MaxArgs: 1,
		ArgMasks: []value.Tag{value.Obj}, Return: value.Arr,
		IsVectorized: false, IsDeterministic: true,
		Fn: func(args []value.Value) (value.Value, error) {
			o, ok := args[0].(*value.Object)
			if !ok {
				return nil, types.Typef("values requires an object argument")
			}
			out := make([]value.Value, o.Len())
			for i, k := range o.Keys {
				out[i] = o.Values[k]
			}
			return out, nil
		},
	})
}

func fnSort(args []value.Value) (value.Value, error) {
	a, ok := args[0].([]value.Value)
	if !ok {
		return nil, types.Typef("sort requires an array argument")
	}
	out := make([]value.Value, len(a))
	copy(out, a)
	var sortErr error
	sort.SliceStable(out, func(i, j int) bool {
		less, err := lessValue(out[i], out[j])
		if err != nil {
			sortErr = err
		}
		return less
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return out, nil
}

func lessValue(a, b value.Value) (bool, error) {
	switch x := a.(type) {
	case int64:
		switch y := b.(type) {
		case int64:
			return x < y, nil
		case float64:
			return float64(x) < y, nil
		}
	case float64:
		switch y := b.(type) {
		case int64:
			return x < float64(y), nil
		case float64:
			return x < y, nil
		}
	case string:
		if y, ok := b.(string); ok {
			return x < y, nil
		}
	}
	return false, types.Typef("sort requires an array of mutually comparable scalars, got %T and %T", a, b)
}
