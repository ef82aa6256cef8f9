package value

import "testing"

func TestTagOf(t *testing.T) {
	cases := []struct {
		v    Value
		want Tag
	}{
		{TheNull, Null},
		{true, Bool},
		{int64(3), Int},
		{3.5, Float},
		{"x", Str},
		{[]Value{int64(1)}, Arr},
		{NewObject(), Obj},
	}
	for _, c := range cases {
		if got := TagOf(c.v); got != c.want {
			t.Errorf("TagOf(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestTagHasUnknownWildcard(t *testing.T) {
	if !Num.Has(Unknown) {
		t.Error("a mask must accept an Unknown operand")
	}
	if !Unknown.Has(Str) {
		t.Error("an Unknown mask must accept anything")
	}
	if Str.Has(Int) {
		t.Error("Str mask must not accept Int")
	}
}

func TestDeferredResolve(t *testing.T) {
	d := Defer(Int, func(input Value) (Value, error) {
		n := input.(int64)
		return n * 2, nil
	})
	got, err := Resolve(d, int64(21))
	if err != nil {
		t.Fatal(err)
	}
	if got.(int64) != 42 {
		t.Errorf("got %v, want 42", got)
	}
}

func TestResolveNonDeferredIsNoop(t *testing.T) {
	got, err := Resolve(int64(7), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.(int64) != 7 {
		t.Errorf("got %v, want 7", got)
	}
}

func TestIdentityResolvesToInput(t *testing.T) {
	got, err := Resolve(Identity, "hello")
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello" {
		t.Errorf("got %v, want hello", got)
	}
}
