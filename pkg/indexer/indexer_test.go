package indexer

import (
	"testing"

	"github.com/chcg/jsonql/pkg/value"
)

func mustObject(pairs ...value.Pair) *value.Object {
	o := value.NewObject()
	for _, p := range pairs {
		o.Set(p.Key, p.Value)
	}
	return o
}

func TestNameListFlatPresentAndAbsent(t *testing.T) {
	obj := mustObject(value.Pair{Key: "a", Value: int64(1)}, value.Pair{Key: "b", Value: int64(2)})
	nl := &NameList{Entries: []NameEntry{{Literal: "a"}, {Literal: "missing"}}}
	got, err := collect(nl.Eval(obj))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Key != "a" || got[0].Value.(int64) != 1 {
		t.Errorf("got %v", got)
	}
}

func TestNameListRejectsNonObject(t *testing.T) {
	nl := &NameList{Entries: []NameEntry{{Literal: "a"}}}
	_, err := collect(nl.Eval([]value.Value{int64(1)}))
	if err == nil {
		t.Error("want a type error against a non-object")
	}
}

func TestNameListRecursiveNoDuplicates(t *testing.T) {
	inner := mustObject(value.Pair{Key: "a", Value: int64(1)})
	input := mustObject(value.Pair{Key: "a", Value: inner})
	nl := &NameList{Entries: []NameEntry{{Literal: "a"}}, Recursive: true}
	got, err := collect(nl.Eval(input))
	if err != nil {
		t.Fatal(err)
	}
	// The outer "a" matches, so its value is emitted and not searched
	// below; the inner "a" is never reached.
	if len(got) != 1 {
		t.Fatalf("want 1 node for {\"a\":{\"a\":1}} .. a, got %d: %v", len(got), got)
	}
}

func TestSliceListIndexAndSlice(t *testing.T) {
	arr := []value.Value{int64(10), int64(20), int64(30), int64(40)}
	neg1 := int64(-1)
	start := int64(1)
	sl := &SliceList{Entries: []SliceEntry{
		{Index: &neg1},
		{Triple: &value.SliceTriple{Start: &start}},
	}}
	got, err := collect(sl.Eval(arr))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 4 {
		t.Fatalf("got %d elements: %v", len(got), got)
	}
	if got[0].Value.(int64) != 40 {
		t.Errorf("first entry should be the last element via -1, got %v", got[0].Value)
	}
}

func TestSliceListOutOfRangeIsSkippedNotError(t *testing.T) {
	arr := []value.Value{int64(1)}
	idx := int64(99)
	sl := &SliceList{Entries: []SliceEntry{{Index: &idx}}}
	got, err := collect(sl.Eval(arr))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("want silent skip of an out-of-range index, got %v", got)
	}
}

func TestStarOverObjectAndArray(t *testing.T) {
	s := &Star{}
	arr := []value.Value{int64(1), int64(2)}
	got, err := collect(s.Eval(arr))
	if err != nil || len(got) != 2 {
		t.Fatalf("got %v, err %v", got, err)
	}
}

func TestRecursiveStarYieldsOnlyLeaves(t *testing.T) {
	input := mustObject(value.Pair{Key: "x", Value: mustObject(value.Pair{Key: "y", Value: []value.Value{int64(1), int64(2)}})})
	s := &Star{Recursive: true}
	got, err := collect(s.Eval(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].HasKey || got[1].HasKey {
		t.Errorf("recursive star must yield bare leaves, got %v", got)
	}
}

func TestBooleanScalarTrueFalse(t *testing.T) {
	arr := []value.Value{int64(1), int64(2)}
	bTrue := &Boolean{Index: true}
	got, err := collect(bTrue.Eval(arr))
	if err != nil || len(got) != 2 {
		t.Fatalf("got %v, err %v", got, err)
	}
	bFalse := &Boolean{Index: false}
	got, err = collect(bFalse.Eval(arr))
	if err != nil || len(got) != 0 {
		t.Fatalf("got %v, err %v", got, err)
	}
}

func TestBooleanArrayShapeMismatchIsVectorizedArithmetic(t *testing.T) {
	arr := []value.Value{int64(1), int64(2), int64(3)}
	b := &Boolean{Index: []value.Value{true, false}}
	_, err := collect(b.Eval(arr))
	if err == nil {
		t.Error("want a vectorized-arithmetic error on length mismatch")
	}
}

func TestBooleanOverObjectEmptyResultStaysDict(t *testing.T) {
	// @.obj[@ > 1000] where every value in @.obj is below threshold must
	// still produce an empty object, not an empty array, since the
	// Boolean ran against an Object.
	obj := mustObject(value.Pair{Key: "a", Value: int64(1)}, value.Pair{Key: "b", Value: int64(2)})
	idx := mustObject(value.Pair{Key: "a", Value: false}, value.Pair{Key: "b", Value: false})
	steps := []Step{
		{Indexer: &Boolean{Index: idx}, DynamicShape: true},
	}
	got, err := Apply(steps, obj)
	if err != nil {
		t.Fatal(err)
	}
	out, ok := got.(*value.Object)
	if !ok || out.Len() != 0 {
		t.Fatalf("want an empty object, got %v (%T)", got, got)
	}
}

func TestBooleanOverArrayEmptyResultStaysArray(t *testing.T) {
	arr := []value.Value{int64(1), int64(2)}
	steps := []Step{
		{Indexer: &Boolean{Index: []value.Value{false, false}}, DynamicShape: true},
	}
	got, err := Apply(steps, arr)
	if err != nil {
		t.Fatal(err)
	}
	out, ok := got.([]value.Value)
	if !ok || len(out) != 0 {
		t.Fatalf("want an empty array, got %v (%T)", got, got)
	}
}

func TestPipelineShapePreservationScalarIndex(t *testing.T) {
	// @.a[0] on {"a":[1]} must return 1, not {"a":[1]}.
	input := mustObject(value.Pair{Key: "a", Value: []value.Value{int64(1)}})
	zero := int64(0)
	steps := []Step{
		{Indexer: &NameList{Entries: []NameEntry{{Literal: "a"}}}, HasOneOption: true, IsDict: true},
		{Indexer: &SliceList{Entries: []SliceEntry{{Index: &zero}}}, HasOneOption: true, IsDict: false},
	}
	got, err := Apply(steps, input)
	if err != nil {
		t.Fatal(err)
	}
	if n, ok := got.(int64); !ok || n != 1 {
		t.Fatalf("want 1, got %v (%T)", got, got)
	}
}
