package binop

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/chcg/jsonql/pkg/value"
)

func resolveInt(t *testing.T, l Leaf) int64 {
	t.Helper()
	v, err := Resolve(l)
	if err != nil {
		t.Fatal(err)
	}
	n, ok := v.(int64)
	if !ok {
		t.Fatalf("want int64, got %T(%v)", v, v)
	}
	return n
}

func resolveFloat(t *testing.T, l Leaf) float64 {
	t.Helper()
	v, err := Resolve(l)
	if err != nil {
		t.Fatal(err)
	}
	switch x := v.(type) {
	case float64:
		return x
	case int64:
		return float64(x)
	default:
		t.Fatalf("want a number, got %T(%v)", v, v)
		return 0
	}
}

// a + b * c == a + (b * c)
func TestPrecedenceMultiplicationBindsTighterThanAddition(t *testing.T) {
	b := NewBuilder(int64(1))
	b.Push(Add, int64(2))
	b.Push(Mul, int64(3))
	got := resolveInt(t, b.Finish())
	if got != 7 {
		t.Errorf("got %d, want 7 (1 + 2*3)", got)
	}
}

// a - b - c == (a - b) - c
func TestSubtractionIsLeftAssociative(t *testing.T) {
	b := NewBuilder(int64(10))
	b.Push(Sub, int64(3))
	b.Push(Sub, int64(2))
	got := resolveInt(t, b.Finish())
	if got != 5 {
		t.Errorf("got %d, want 5 ((10-3)-2)", got)
	}
}

// a ** b ** c == a ** (b ** c)
func TestExponentiationIsRightAssociative(t *testing.T) {
	b := NewBuilder(2.0)
	b.Push(Pow, 2.0)
	b.Push(Pow, 3.0)
	got := resolveFloat(t, b.Finish())
	// 2 ** (2 ** 3) = 2 ** 8 = 256, vs the wrong left-assoc (2**2)**3 = 64.
	if got != 256 {
		t.Errorf("got %v, want 256 (right-assoc 2**(2**3))", got)
	}
}

// -x ** y == -(x ** y): fused into a single negpow node whose left operand
// is NOT pre-negated.
func TestNegPowFusion(t *testing.T) {
	b := NewBuilder(2.0)
	b.Push(NegPow, 2.0)
	got := resolveFloat(t, b.Finish())
	if got != -4 {
		t.Errorf("got %v, want -4", got)
	}
}

func TestVectorizationContainerContainer(t *testing.T) {
	a := []value.Value{int64(1), int64(2), int64(3)}
	c := []value.Value{int64(10), int64(20), int64(30)}
	got, err := Apply(Add, a, c)
	if err != nil {
		t.Fatal(err)
	}
	want := []value.Value{int64(11), int64(22), int64(33)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected vectorized result (-want +got):\n%s", diff)
	}
}

func TestVectorizationContainerContainerLengthMismatch(t *testing.T) {
	a := []value.Value{int64(1)}
	c := []value.Value{int64(1), int64(2)}
	_, err := Apply(Add, a, c)
	if err == nil {
		t.Error("want a vectorized-arithmetic error on length mismatch")
	}
}

func TestVectorizationScalarContainerSymmetry(t *testing.T) {
	c := []value.Value{int64(1), int64(2)}
	left, err := Apply(Add, int64(10), c)
	if err != nil {
		t.Fatal(err)
	}
	right, err := Apply(Add, c, int64(10))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(left, right); diff != "" {
		t.Errorf("scalar+container should commute (-left +right):\n%s", diff)
	}
}

func TestDeferredPropagation(t *testing.T) {
	d := value.Defer(value.Int, func(input value.Value) (value.Value, error) {
		return input.(int64) + int64(1), nil
	})
	got, err := Apply(Add, d, int64(10))
	if err != nil {
		t.Fatal(err)
	}
	if !value.IsDeferred(got) {
		t.Fatal("want a Deferred result when an operand is Deferred")
	}
	resolved, err := value.Resolve(got, int64(4))
	if err != nil {
		t.Fatal(err)
	}
	if resolved.(int64) != 15 {
		t.Errorf("got %v, want 15", resolved)
	}
}

func TestOutTypeStringPlusNumberIsTypeError(t *testing.T) {
	_, err := OutType(Add, value.Str, value.Int)
	if err == nil {
		t.Error("want a type error for string + number")
	}
}

func TestOutTypeFloorDivIsInt(t *testing.T) {
	tag, err := OutType(FloorDiv, value.Int, value.Int)
	if err != nil {
		t.Fatal(err)
	}
	if tag != value.Int {
		t.Errorf("got %v, want Int", tag)
	}
}
