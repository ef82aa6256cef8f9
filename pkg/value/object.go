package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Object is a JSON object: insertion order matters for iteration, but
// lookup is by unique key. Adapted from the engine's plain
// map[string]interface{} representation, which cannot preserve key order
// on its own.
type Object struct {
	Keys   []string
	Values map[string]Value
}

func NewObject() *Object {
	return &Object{Values: make(map[string]Value)}
}

// Get returns the value at key and whether it was present.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.Values[key]
	return v, ok
}

// Set appends key to the iteration order the first time it is seen, and
// always overwrites its value.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.Values[key]; !ok {
		o.Keys = append(o.Keys, key)
	}
	o.Values[key] = v
}

func (o *Object) Len() int {
	return len(o.Keys)
}

// Pair is an object entry as produced by an indexer's lazy sequence.
type Pair struct {
	Key   string
	Value Value
}

// Pairs returns the object's entries in insertion order.
func (o *Object) Pairs() []Pair {
	pairs := make([]Pair, len(o.Keys))
	for i, k := range o.Keys {
		pairs[i] = Pair{Key: k, Value: o.Values[k]}
	}
	return pairs
}

// KeySet returns o's keys as a set.
func (o *Object) KeySet() map[string]struct{} {
	s := make(map[string]struct{}, len(o.Keys))
	for _, k := range o.Keys {
		s[k] = struct{}{}
	}
	return s
}

// SameKeySet reports whether a and b have identical key sets, regardless
// of order or associated values. Used by the binop engine's
// container/container vectorization check.
func SameKeySet(a, b *Object) bool {
	if len(a.Keys) != len(b.Keys) {
		return false
	}
	for _, k := range a.Keys {
		if _, ok := b.Values[k]; !ok {
			return false
		}
	}
	return true
}

// String renders a compact, order-preserving JSON-ish representation for
// debugging and error messages. It is not a substitute for the encoder.
func (o *Object) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range o.Keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(k))
		b.WriteByte(':')
		b.WriteString(describe(o.Values[k]))
	}
	b.WriteByte('}')
	return b.String()
}

func describe(v Value) string {
	switch x := v.(type) {
	case NullValue:
		return "null"
	case string:
		return strconv.Quote(x)
	case *Object:
		return x.String()
	case []Value:
		var b strings.Builder
		b.WriteByte('[')
		for i, e := range x {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(describe(e))
		}
		b.WriteByte(']')
		return b.String()
	case *Deferred:
		return "<deferred:" + x.OutTag.String() + ">"
	default:
		return fmt.Sprintf("%v", x)
	}
}
