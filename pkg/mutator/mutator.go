// Package mutator implements the selector/mutator contract: given a
// compiled selector pipeline and a compiled mutator expression, it rebuilds
// a structural copy of the input with every position the selector would
// read from replaced by the mutator evaluated against that position's
// original value as its current input.
//
// Only NameList and SliceList steps are addressable in this sense: a Star,
// Boolean or Projection step synthesizes or discards positions that have no
// single, stable location in the original input to write back through, so
// a pipeline containing one is rejected with an invalid-mutation error
// rather than guessed at.
package mutator

import (
	"github.com/chcg/jsonql/pkg/indexer"
	"github.com/chcg/jsonql/pkg/types"
	"github.com/chcg/jsonql/pkg/value"
)

// Apply walks steps against input exactly as a selector read would, except
// that at each matched position it calls mutatorExpr instead of collecting
// the original value, and splices the result back into a structural copy.
// Unmatched positions, and the parts of input the pipeline never visits,
// are shared with the input unchanged.
func Apply(steps []indexer.Step, mutatorExpr value.Value, input value.Value) (value.Value, error) {
	if len(steps) == 0 {
		return value.Resolve(mutatorExpr, input)
	}
	return apply(steps, 0, mutatorExpr, input)
}

func apply(steps []indexer.Step, i int, mutatorExpr value.Value, val value.Value) (value.Value, error) {
	step := steps[i]
	last := i == len(steps)-1

	rewrite := func(old value.Value) (value.Value, error) {
		if last {
			return value.Resolve(mutatorExpr, old)
		}
		return apply(steps, i+1, mutatorExpr, old)
	}

	switch idx := step.Indexer.(type) {
	case *indexer.NameList:
		if idx.Recursive {
			return nil, types.InvalidMutationf("cannot mutate through a recursive name selector")
		}
		return rewriteObject(idx, val, rewrite)
	case *indexer.SliceList:
		return rewriteArray(idx, val, rewrite)
	default:
		return nil, types.InvalidMutationf("mutation supports only name and slice selectors, not a %T", idx)
	}
}

func rewriteObject(nl *indexer.NameList, val value.Value, rewrite func(value.Value) (value.Value, error)) (value.Value, error) {
	obj, ok := val.(*value.Object)
	if !ok {
		return nil, types.InternalCastf("a name selector requires an object, got %s", value.TagOf(val))
	}

	out := value.NewObject()
	matched := false
	for _, pair := range obj.Pairs() {
		if nameListMatches(nl, pair.Key) {
			matched = true
			newVal, err := rewrite(pair.Value)
			if err != nil {
				return nil, err
			}
			out.Set(pair.Key, newVal)
			continue
		}
		out.Set(pair.Key, pair.Value)
	}
	if !matched {
		return nil, types.InvalidMutationf("selector matched no key in the input")
	}
	return out, nil
}

func nameListMatches(nl *indexer.NameList, key string) bool {
	for _, entry := range nl.Entries {
		if entry.Regex != nil {
			if entry.Regex.MatchString(key) {
				return true
			}
			continue
		}
		if entry.Literal == key {
			return true
		}
	}
	return false
}

func rewriteArray(sl *indexer.SliceList, val value.Value, rewrite func(value.Value) (value.Value, error)) (value.Value, error) {
	arr, ok := val.([]value.Value)
	if !ok {
		return nil, types.InternalCastf("a slice selector requires an array, got %s", value.TagOf(val))
	}

	out := make([]value.Value, len(arr))
	copy(out, arr)

	matched := false
	for _, entry := range sl.Entries {
		for _, i := range indexer.ResolveIndices(entry, len(arr)) {
			matched = true
			newVal, err := rewrite(arr[i])
			if err != nil {
				return nil, err
			}
			out[i] = newVal
		}
	}
	if !matched {
		return nil, types.InvalidMutationf("selector matched no index in the input")
	}
	return out, nil
}
