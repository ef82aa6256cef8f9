package parser

import (
	"testing"

	"github.com/chcg/jsonql/pkg/value"
)

func mustInput(t *testing.T, src string) value.Value {
	t.Helper()
	v, err := value.FromJSON([]byte(src))
	if err != nil {
		t.Fatalf("FromJSON(%q): %v", src, err)
	}
	return v
}

func evalSelector(t *testing.T, query, inputJSON string) value.Value {
	t.Helper()
	compiled, err := Compile(query, "")
	if err != nil {
		t.Fatalf("Compile(%q): %v", query, err)
	}
	out, err := value.Resolve(compiled.Selector, mustInput(t, inputJSON))
	if err != nil {
		t.Fatalf("Resolve(%q) against %q: %v", query, inputJSON, err)
	}
	return out
}

// diff compares via their JSON rendering, sidestepping *value.Object's
// unexported fields.
func diff(t *testing.T, got, want value.Value) {
	t.Helper()
	gotJSON, err := value.ToJSON(got, "")
	if err != nil {
		t.Fatalf("ToJSON(got): %v", err)
	}
	wantJSON, err := value.ToJSON(want, "")
	if err != nil {
		t.Fatalf("ToJSON(want): %v", err)
	}
	if string(gotJSON) != string(wantJSON) {
		t.Errorf("got %s, want %s", gotJSON, wantJSON)
	}
}

func TestScenarioOne(t *testing.T) {
	got := evalSelector(t, "@.a[1]", `{"a":[1,2,3]}`)
	diff(t, got, int64(2))
}

func TestScenarioTwoVectorizedAdd(t *testing.T) {
	got := evalSelector(t, "@.a + @.b", `{"a":[1,2,3],"b":[10,20,30]}`)
	want := []value.Value{int64(11), int64(22), int64(33)}
	diff(t, got, want)
}

func TestScenarioThreeBooleanIndex(t *testing.T) {
	got := evalSelector(t, "@[@ > 2]", `[1,2,3,4]`)
	want := []value.Value{int64(3), int64(4)}
	diff(t, got, want)
}

func TestScenarioFourRecursiveNameList(t *testing.T) {
	got := evalSelector(t, "@..z", `{"x":{"y":{"z":5}}}`)
	want := []value.Value{int64(5)}
	diff(t, got, want)
}

func TestScenarioFiveArrayProjection(t *testing.T) {
	got := evalSelector(t, "@{@.a + @.b, @.a * @.b}", `{"a":1,"b":2}`)
	want := []value.Value{int64(3), int64(2)}
	diff(t, got, want)
}

func TestScenarioSixNegPowVectorized(t *testing.T) {
	got := evalSelector(t, "-@ ** 2", `[1,2,3]`)
	want := []value.Value{float64(-1), float64(-4), float64(-9)}
	diff(t, got, want)
}

func TestHasOneOptionUnwrapsSingleKey(t *testing.T) {
	got := evalSelector(t, `@["k"]`, `{"k":42,"other":1}`)
	diff(t, got, int64(42))
}

func TestPrecedenceMulBeforeAdd(t *testing.T) {
	got := evalSelector(t, "1 + 2 * 3", `null`)
	diff(t, got, int64(7))
}

func TestExponentRightAssociative(t *testing.T) {
	got := evalSelector(t, "2 ** 2 ** 3", `null`)
	diff(t, got, float64(256))
}

func TestMixedBracketEntriesRejected(t *testing.T) {
	_, err := Compile(`@[1,"a"]`, "")
	if err == nil {
		t.Fatal("expected a homogeneity error, got nil")
	}
}

func TestUnknownFunctionRejected(t *testing.T) {
	_, err := Compile(`nope(1)`, "")
	if err == nil {
		t.Fatal("expected a parse error for an unknown function, got nil")
	}
}

func TestArityErrorIsExplicit(t *testing.T) {
	_, err := Compile(`len()`, "")
	if err == nil {
		t.Fatal("expected an arity error, got nil")
	}
}

func TestRecursiveSliceListRejected(t *testing.T) {
	_, err := Compile(`@..[0]`, "")
	if err == nil {
		t.Fatal("expected recursive slicing to be rejected, got nil")
	}
}

func TestProjectionMixtureRejected(t *testing.T) {
	_, err := Compile(`@{"a": @.a, @.b}`, "")
	if err == nil {
		t.Fatal("expected a projection mixture error, got nil")
	}
}

func TestArgFunctionCall(t *testing.T) {
	got := evalSelector(t, `sum(@.a)`, `{"a":[1,2,3]}`)
	diff(t, got, int64(6))
}
