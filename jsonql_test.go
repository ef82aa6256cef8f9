package jsonql_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/chcg/jsonql/pkg/value"

	"github.com/chcg/jsonql"
)

func mustInput(t *testing.T, src string) value.Value {
	t.Helper()
	v, err := value.FromJSON([]byte(src))
	if err != nil {
		t.Fatalf("FromJSON(%q): %v", src, err)
	}
	return v
}

func diff(t *testing.T, got, want value.Value) {
	t.Helper()
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("unexpected result (-want +got):\n%s", d)
	}
}

func TestEvalSimpleSelector(t *testing.T) {
	got, err := jsonql.Eval("@.a[1]", mustInput(t, `{"a":[1,2,3]}`))
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	diff(t, got, int64(2))
}

func TestCompileAndEvalWithContext(t *testing.T) {
	expr, err := jsonql.Compile("@.a + @.b")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	got, err := jsonql.EvalWithContext(ctx, expr.SelectorSource, mustInput(t, `{"a":[1,2],"b":[10,20]}`))
	if err != nil {
		t.Fatalf("EvalWithContext: %v", err)
	}
	diff(t, got, []value.Value{int64(11), int64(22)})
}

func TestMustCompilePanicsOnBadQuery(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected MustCompile to panic on an invalid query")
		}
	}()
	jsonql.MustCompile("@[1,\"a\"]")
}

func TestMutate(t *testing.T) {
	got, err := jsonql.Mutate("@.items[1]", "@ * 10", mustInput(t, `{"items":[1,2,3]}`))
	if err != nil {
		t.Fatalf("Mutate: %v", err)
	}
	diff(t, got, mustInput(t, `{"items":[1,20,3]}`))
}

func TestMutateRejectsNonPathSelector(t *testing.T) {
	_, err := jsonql.Mutate("@.a + 1", "2", mustInput(t, `{"a":1}`))
	if err == nil {
		t.Fatal("expected an error for a non-path mutator selector, got nil")
	}
}

func TestPrettifyStructuredError(t *testing.T) {
	_, err := jsonql.Compile("@[1,\"a\"]")
	if err == nil {
		t.Fatal("expected a compile error, got nil")
	}
	msg := jsonql.Prettify(err)
	if msg == "" {
		t.Fatal("expected a non-empty prettified message")
	}
	if msg == err.Error() {
		t.Fatalf("expected Prettify to reformat the raw error, got the same string: %q", msg)
	}
}

func TestEvalTimeout(t *testing.T) {
	expr, err := jsonql.Compile("@")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()
	<-ctx.Done()
	_, err = jsonql.EvalWithContext(ctx, expr.SelectorSource, mustInput(t, `1`))
	if err == nil {
		t.Fatal("expected an already-expired context to produce a timeout error")
	}
}
