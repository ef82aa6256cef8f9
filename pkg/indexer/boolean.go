package indexer

import (
	"github.com/chcg/jsonql/pkg/types"
	"github.com/chcg/jsonql/pkg/value"
)

// Boolean selects elements of the current container by a per-element (or
// whole-container) predicate. Index is resolved against the container
// being indexed before the predicate is applied.
type Boolean struct {
	Index value.Value
}

func (b *Boolean) String() string {
	return "[pred]"
}

func (b *Boolean) Eval(input value.Value) Seq {
	idx, err := value.Resolve(b.Index, input)
	if err != nil {
		return fail(err)
	}

	if scalar, ok := idx.(bool); ok {
		if !scalar {
			return empty()
		}
		return (&Star{}).Eval(input)
	}

	switch data := input.(type) {
	case *value.Object:
		idxObj, ok := idx.(*value.Object)
		if !ok {
			return fail(types.VectorizedArithmeticf("boolean index for an object must itself be an object, got %s", value.TagOf(idx)))
		}
		if data.Len() != idxObj.Len() || !value.SameKeySet(data, idxObj) {
			return fail(types.VectorizedArithmeticf("boolean index object must have the same key set as its target"))
		}
		return func(yield func(Element, error) bool) {
			for _, pair := range data.Pairs() {
				flag, ok := idxObj.Values[pair.Key].(bool)
				if !ok {
					if !yield(Element{}, types.VectorizedArithmeticf("boolean index entry for %q is not a bool", pair.Key)) {
						return
					}
					return
				}
				if flag {
					if !yield(Element{Key: pair.Key, HasKey: true, Value: pair.Value}, nil) {
						return
					}
				}
			}
		}
	case []value.Value:
		idxArr, ok := idx.([]value.Value)
		if !ok {
			return fail(types.VectorizedArithmeticf("boolean index for an array must itself be an array, got %s", value.TagOf(idx)))
		}
		if len(data) != len(idxArr) {
			return fail(types.VectorizedArithmeticf("boolean index array length %d does not match target length %d", len(idxArr), len(data)))
		}
		return func(yield func(Element, error) bool) {
			for i, v := range data {
				flag, ok := idxArr[i].(bool)
				if !ok {
					if !yield(Element{}, types.VectorizedArithmeticf("boolean index entry at position %d is not a bool", i)) {
						return
					}
					return
				}
				if flag {
					if !yield(Element{Value: v}, nil) {
						return
					}
				}
			}
		}
	default:
		if value.TagOf(input) == value.Unknown {
			return empty()
		}
		return fail(typeError("a Boolean indexer requires an array or object target, got %s", value.TagOf(input)))
	}
}
