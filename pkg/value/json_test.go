package value

import "testing"

func TestFromJSONPreservesKeyOrderAndNumberKind(t *testing.T) {
	v, err := FromJSON([]byte(`{"b":1,"a":2.5,"c":[1,2,3]}`))
	if err != nil {
		t.Fatal(err)
	}
	obj, ok := v.(*Object)
	if !ok {
		t.Fatalf("want *Object, got %T", v)
	}
	if got := obj.Keys; len(got) != 3 || got[0] != "b" || got[1] != "a" || got[2] != "c" {
		t.Errorf("key order not preserved: %v", got)
	}
	if bv, _ := obj.Get("b"); bv.(int64) != 1 {
		t.Errorf("b should decode as int64, got %T(%v)", bv, bv)
	}
	if av, _ := obj.Get("a"); av.(float64) != 2.5 {
		t.Errorf("a should decode as float64, got %T(%v)", av, av)
	}
}

func TestToJSONRoundTripsCompact(t *testing.T) {
	v, err := FromJSON([]byte(`{"a":[1,2,3],"b":null,"c":"x"}`))
	if err != nil {
		t.Fatal(err)
	}
	out, err := ToJSON(v, "")
	if err != nil {
		t.Fatal(err)
	}
	want := `{"a":[1,2,3],"b":null,"c":"x"}`
	if string(out) != want {
		t.Errorf("got %s, want %s", out, want)
	}
}

func TestToJSONPretty(t *testing.T) {
	v, _ := FromJSON([]byte(`{"a":1}`))
	out, err := ToJSON(v, "  ")
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"a\": 1\n}"
	if string(out) != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestToJSONRejectsUnresolvedDeferred(t *testing.T) {
	_, err := ToJSON(Identity, "")
	if err == nil {
		t.Error("expected an error encoding an unresolved Deferred")
	}
}
