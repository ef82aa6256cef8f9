package mutator_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/chcg/jsonql/pkg/mutator"
	"github.com/chcg/jsonql/pkg/parser"
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

func mutate(t *testing.T, selectorSrc, mutatorSrc, inputJSON string) (value.Value, error) {
	t.Helper()
	compiled, err := parser.Compile(selectorSrc, mutatorSrc)
	if err != nil {
		t.Fatalf("Compile(%q, %q): %v", selectorSrc, mutatorSrc, err)
	}
	return mutator.Apply(compiled.SelectorPath, compiled.Mutator, mustInput(t, inputJSON))
}

func diff(t *testing.T, got, want value.Value) {
	t.Helper()
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("unexpected result (-want +got):\n%s", d)
	}
}

func TestMutateObjectKey(t *testing.T) {
	got, err := mutate(t, "@.a", "@ * 2", `{"a":5,"b":1}`)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	diff(t, got, mustInput(t, `{"a":10,"b":1}`))
}

func TestMutateArrayIndex(t *testing.T) {
	got, err := mutate(t, "@.items[1]", "@ + 100", `{"items":[1,2,3]}`)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	diff(t, got, mustInput(t, `{"items":[1,102,3]}`))
}

func TestMutateNestedPath(t *testing.T) {
	got, err := mutate(t, "@.a.b", `"replaced"`, `{"a":{"b":1,"c":2},"d":3}`)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	diff(t, got, mustInput(t, `{"a":{"b":"replaced","c":2},"d":3}`))
}

func TestMutateSliceRange(t *testing.T) {
	got, err := mutate(t, "@[0:2]", "0", `[1,2,3,4]`)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	diff(t, got, mustInput(t, `[0,0,3,4]`))
}

func TestMutateUnmatchedKeyErrors(t *testing.T) {
	_, err := mutate(t, "@.missing", "1", `{"a":1}`)
	if err == nil {
		t.Fatal("expected an error for an unmatched selector key, got nil")
	}
}

func TestMutateThroughStarRejected(t *testing.T) {
	_, err := mutate(t, "@.*", "1", `{"a":1,"b":2}`)
	if err == nil {
		t.Fatal("expected a star selector to be rejected, got nil")
	}
}

func TestMutateThroughRecursiveNameRejected(t *testing.T) {
	_, err := mutate(t, "@..z", "1", `{"x":{"z":1}}`)
	if err == nil {
		t.Fatal("expected a recursive name selector to be rejected, got nil")
	}
}

func TestMutateThroughBooleanRejected(t *testing.T) {
	_, err := mutate(t, "@[@ > 1]", "0", `[1,2,3]`)
	if err == nil {
		t.Fatal("expected a boolean selector to be rejected, got nil")
	}
}

func TestMutateGeneralExpressionSelectorRejected(t *testing.T) {
	_, err := parser.Compile("@.a + @.b", "1")
	if err == nil {
		t.Fatal("expected a general-expression selector to be rejected at compile time, got nil")
	}
}

func TestMutateBareIdentity(t *testing.T) {
	got, err := mutate(t, "@", `"whole"`, `{"a":1}`)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	diff(t, got, "whole")
}
