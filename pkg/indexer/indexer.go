// Package indexer implements the five indexer variants that select
// sub-values from a JSON container (NameList, SliceList, Star, Boolean,
// Projection), and the pipeline that composes a sequence of compiled
// IndexerSteps into a single shape-preserving Value-to-Value function.
package indexer

import (
	"fmt"
	"iter"
	"strings"

	"github.com/chcg/jsonql/pkg/types"
	"github.com/chcg/jsonql/pkg/value"
)

// Element is one item of an indexer's lazy output: either a (key, value)
// pair, for an object-shaped result, or a bare value, for an array-shaped
// result.
type Element struct {
	Key    string
	HasKey bool
	Value  value.Value
}

// Seq is the lazy sequence an Indexer produces. Each step carries either
// an Element or an error; a consumer that receives a non-nil error must
// stop ranging immediately, mirroring the "errors are thrown synchronously
// at the point of detection" policy.
type Seq = iter.Seq2[Element, error]

// Indexer is a compiled selector over a single Value.
type Indexer interface {
	Eval(input value.Value) Seq
}

// one builds a single-element Seq, the common case for error propagation
// and for scalar results.
func one(el Element) Seq {
	return func(yield func(Element, error) bool) {
		yield(el, nil)
	}
}

func fail(err error) Seq {
	return func(yield func(Element, error) bool) {
		yield(Element{}, err)
	}
}

func empty() Seq {
	return func(func(Element, error) bool) {}
}

// Step is a compiled indexer plus its shape-classification flags.
type Step struct {
	Indexer      Indexer
	HasOneOption bool
	IsProjection bool
	IsDict       bool
	IsRecursive  bool
	// DynamicShape marks a step whose result shape tracks the type of the
	// container it is evaluated against rather than the selector syntax
	// (Star and Boolean: the same `.*` or `[pred]` indexer is dict-shaped
	// over an Object and array-shaped over an array). IsDict is the right
	// answer only when the step actually yielded elements to read a key
	// off of; when it yields none, apply falls back to the input's own
	// type for these steps instead of the meaningless static IsDict.
	DynamicShape bool
}

// String renders the step for debugging a compiled pipeline, e.g.
// `["a"]` or `[*]` or `{arr-projection}`. The Indexer itself supplies the
// bracketed form; String just reports whether a Stringer was wired for it.
func (s Step) String() string {
	if str, ok := s.Indexer.(fmt.Stringer); ok {
		return str.String()
	}
	return fmt.Sprintf("%T", s.Indexer)
}

// PipelineString renders a compiled selector pipeline as its steps'
// String forms joined in source order, for logging and test failure
// messages.
func PipelineString(steps []Step) string {
	parts := make([]string, len(steps))
	for i, s := range steps {
		parts[i] = s.String()
	}
	return strings.Join(parts, "")
}

// collect drains a Step's sequence into a slice, stopping at the first
// error.
func collect(seq Seq) ([]Element, error) {
	var out []Element
	var ferr error
	seq(func(el Element, err error) bool {
		if err != nil {
			ferr = err
			return false
		}
		out = append(out, el)
		return true
	})
	if ferr != nil {
		return nil, ferr
	}
	return out, nil
}

// materialize builds an Object (dict-shaped) or Array (array-shaped) from
// elements, per the pipeline's join-point rule.
func materialize(elements []Element, dict bool) value.Value {
	if dict {
		obj := value.NewObject()
		for _, el := range elements {
			obj.Set(el.Key, el.Value)
		}
		return obj
	}
	arr := make([]value.Value, len(elements))
	for i, el := range elements {
		arr[i] = el.Value
	}
	return arr
}

// Apply runs the full pipeline of steps over value: the
// pipeline is a shape-preserving function, materializing containers only
// at the documented join points, and unwrapping single-option results to
// a bare scalar.
func Apply(steps []Step, input value.Value) (value.Value, error) {
	return apply(steps, 0, input)
}

func apply(steps []Step, i int, val value.Value) (value.Value, error) {
	step := steps[i]
	elements, err := collect(step.Indexer.Eval(val))
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		if emptyIsDict(step, val) {
			return value.NewObject(), nil
		}
		return []value.Value{}, nil
	}

	last := i == len(steps)-1

	if last {
		if step.HasOneOption {
			return elements[0].Value, nil
		}
		return materialize(elements, shapeIsDict(elements, step.IsDict)), nil
	}

	if step.IsProjection {
		container := materialize(elements, shapeIsDict(elements, step.IsDict))
		return apply(steps, i+1, container)
	}

	var survivors []Element
	for _, el := range elements {
		sub, err := apply(steps, i+1, el.Value)
		if err != nil {
			return nil, err
		}
		if isEmptyContainer(sub) {
			continue
		}
		survivors = append(survivors, Element{Key: el.Key, HasKey: el.HasKey, Value: sub})
	}

	if step.HasOneOption {
		if len(survivors) == 0 {
			if emptyIsDict(step, val) {
				return value.NewObject(), nil
			}
			return []value.Value{}, nil
		}
		return survivors[0].Value, nil
	}
	return materialize(survivors, shapeIsDict(elements, step.IsDict)), nil
}

// emptyIsDict decides the result shape for a step that matched nothing.
// For a step whose shape is fixed by selector syntax (NameList, SliceList,
// Projection), that is step.IsDict. For Star and Boolean, which can run
// against either an Object or an array, it is whatever val itself is.
func emptyIsDict(step Step, val value.Value) bool {
	if step.DynamicShape {
		_, ok := val.(*value.Object)
		return ok
	}
	return step.IsDict
}

// shapeIsDict determines a step's result shape. A non-empty sequence's
// actual shape is read off its first element (whether it carries a key);
// an empty sequence falls back to the step's declared intent, since
// indexers like Star and Boolean have a shape that depends on the runtime
// container they were evaluated against, not on the indexer definition
// alone.
func shapeIsDict(elements []Element, fallback bool) bool {
	if len(elements) > 0 {
		return elements[0].HasKey
	}
	return fallback
}

func isEmptyContainer(v value.Value) bool {
	switch x := v.(type) {
	case []value.Value:
		return len(x) == 0
	case *value.Object:
		return x.Len() == 0
	default:
		return false
	}
}

// typeError is a convenience constructor for the homogeneity/shape
// invariants of the indexer algebra.
func typeError(format string, a ...interface{}) error {
	return types.Indexingf(format, a...)
}
