package indexer

import (
	"strconv"
	"strings"

	"github.com/chcg/jsonql/pkg/value"
)

// SliceEntry is one member of a SliceList: either a single integer index
// or a [start:stop:step] triple.
type SliceEntry struct {
	Index  *int64
	Triple *value.SliceTriple
}

// SliceList selects positions from an Array, in the order its entries
// appear in the source. Recursive SliceLists are not implemented:
// the parser rejects them before a SliceList with Recursive set to true
// can ever reach Eval.
type SliceList struct {
	Entries   []SliceEntry
	Recursive bool
}

func (s *SliceList) String() string {
	parts := make([]string, len(s.Entries))
	for i, e := range s.Entries {
		parts[i] = sliceEntryString(e)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func sliceEntryString(e SliceEntry) string {
	if e.Index != nil {
		return strconv.FormatInt(*e.Index, 10)
	}
	t := e.Triple
	return intOrEmpty(t.Start) + ":" + intOrEmpty(t.Stop) + ":" + intOrEmpty(t.Step)
}

func intOrEmpty(p *int64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatInt(*p, 10)
}

func (s *SliceList) Eval(input value.Value) Seq {
	arr, ok := input.([]value.Value)
	if !ok {
		if value.TagOf(input) == value.Unknown {
			return empty()
		}
		return fail(typeError("a SliceList indexer requires an array, got %s", value.TagOf(input)))
	}
	return func(yield func(Element, error) bool) {
		for _, entry := range s.Entries {
			if entry.Index != nil {
				i, ok := normalizeIndex(*entry.Index, len(arr))
				if !ok {
					continue // out-of-range indices are silently skipped
				}
				if !yield(Element{Value: arr[i]}, nil) {
					return
				}
				continue
			}
			for _, i := range sliceIndices(*entry.Triple, len(arr)) {
				if !yield(Element{Value: arr[i]}, nil) {
					return
				}
			}
		}
	}
}

// ResolveIndices returns the array positions entry selects out of an array
// of length n, in source order. Exported for the mutator package, which
// walks the same SliceList a selector would read from to decide which
// positions to write back through.
func ResolveIndices(entry SliceEntry, n int) []int {
	if entry.Index != nil {
		i, ok := normalizeIndex(*entry.Index, n)
		if !ok {
			return nil
		}
		return []int{i}
	}
	return sliceIndices(*entry.Triple, n)
}

// normalizeIndex applies Python-style negative indexing; it reports false
// for any index that, after normalization, still falls outside [0,n).
func normalizeIndex(i int64, n int) (int, bool) {
	if i < 0 {
		i += int64(n)
	}
	if i < 0 || i >= int64(n) {
		return 0, false
	}
	return int(i), true
}

// sliceIndices computes the sequence of positions a Python-style
// [start:stop:step] selects from an array of length n, including for
// negative step.
func sliceIndices(t value.SliceTriple, n int) []int {
	step := int64(1)
	if t.Step != nil {
		step = *t.Step
	}
	if step == 0 {
		return nil
	}

	var start, stop int64
	if step > 0 {
		start, stop = 0, int64(n)
	} else {
		start, stop = int64(n)-1, -1
	}
	if t.Start != nil {
		start = clampSliceBound(*t.Start, n, step > 0)
	}
	if t.Stop != nil {
		stop = clampSliceBound(*t.Stop, n, step > 0)
	}

	var out []int
	if step > 0 {
		for i := start; i < stop; i += step {
			out = append(out, int(i))
		}
	} else {
		for i := start; i > stop; i += step {
			out = append(out, int(i))
		}
	}
	return out
}

// clampSliceBound converts a possibly-negative Python-style bound into an
// absolute position clamped to a range appropriate for the slice's
// direction.
func clampSliceBound(v int64, n int, forward bool) int64 {
	if v < 0 {
		v += int64(n)
	}
	if forward {
		if v < 0 {
			return 0
		}
		if v > int64(n) {
			return int64(n)
		}
		return v
	}
	if v < -1 {
		return -1
	}
	if v >= int64(n) {
		return int64(n) - 1
	}
	return v
}
