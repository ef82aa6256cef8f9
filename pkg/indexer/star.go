package indexer

import "github.com/chcg/jsonql/pkg/value"

// Star selects all children of the current container. A recursive Star
// (`..*`/`..[*]`) instead yields every scalar leaf, in document order,
// skipping interior containers and keys entirely.
type Star struct {
	Recursive bool
}

func (s *Star) String() string {
	if s.Recursive {
		return "..*"
	}
	return "[*]"
}

func (s *Star) Eval(input value.Value) Seq {
	if s.Recursive {
		return func(yield func(Element, error) bool) {
			walkRecursiveStar(input, yield)
		}
	}
	switch x := input.(type) {
	case *value.Object:
		return func(yield func(Element, error) bool) {
			for _, pair := range x.Pairs() {
				if !yield(Element{Key: pair.Key, HasKey: true, Value: pair.Value}, nil) {
					return
				}
			}
		}
	case []value.Value:
		return func(yield func(Element, error) bool) {
			for _, v := range x {
				if !yield(Element{Value: v}, nil) {
					return
				}
			}
		}
	default:
		if value.TagOf(input) == value.Unknown {
			return empty()
		}
		return fail(typeError("a Star indexer requires an array or object, got %s", value.TagOf(input)))
	}
}

func walkRecursiveStar(node value.Value, yield func(Element, error) bool) bool {
	switch x := node.(type) {
	case *value.Object:
		for _, pair := range x.Pairs() {
			if !walkRecursiveStar(pair.Value, yield) {
				return false
			}
		}
		return true
	case []value.Value:
		for _, v := range x {
			if !walkRecursiveStar(v, yield) {
				return false
			}
		}
		return true
	default:
		return yield(Element{Value: node}, nil)
	}
}
