// Package value implements the tagged JSON value model: the set of
// concrete representations a compiled query can produce or consume, the
// bit-flag type-tag classification used throughout the indexer, binop and
// function packages, and the Deferred variant that stands for "a function
// of the current input."
package value

import "regexp"

// Tag is a bit-flag classification of a Value's shape. Composite tags are
// unions of the primitive ones and are used wherever an operand is
// classified by category rather than by exact type (e.g. "any numeric
// operand").
type Tag uint16

const (
	Int     Tag = 1 << iota
	Float
	Str
	Bool
	Null
	Arr
	Obj
	Regex
	Slice
	Unknown
)

const (
	Num         = Int | Float
	Iterable    = Arr | Obj
	StrOrRegex  = Str | Regex
	IntOrSlice  = Int | Slice
)

// Has reports whether mask accepts tag, treating Unknown as a wildcard in
// either direction: an Unknown operand or an Unknown mask never fails a
// static type check, since its real shape can only be known at eval time.
func (mask Tag) Has(tag Tag) bool {
	if mask == Unknown || tag == Unknown {
		return true
	}
	return mask&tag != 0
}

func (t Tag) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case Str:
		return "string"
	case Bool:
		return "bool"
	case Null:
		return "null"
	case Arr:
		return "array"
	case Obj:
		return "object"
	case Regex:
		return "regex"
	case Slice:
		return "slice"
	case Num:
		return "number"
	case Iterable:
		return "iterable"
	case Unknown:
		return "unknown"
	default:
		return "value"
	}
}

// Value is the representation used everywhere a JSON-derived value flows:
// a query's compiled output, an indexer's input, a binop's operand, a
// function argument. It is one of:
//
//	NullValue{}       JSON null
//	bool              JSON bool
//	int64             JSON integer
//	float64           JSON float
//	string            JSON string
//	*regexp.Regexp    a compiled regex literal
//	SliceTriple       a [start:stop:step] slice literal
//	[]Value           a JSON array
//	*Object           a JSON object
//	*Deferred         a thunk standing for "a function of the current input"
type Value = interface{}

// NullValue is the concrete representation of JSON null. It is distinct
// from a Go nil interface, which this package never produces or accepts as
// a Value.
type NullValue struct{}

// TheNull is the single Value representing JSON null.
var TheNull Value = NullValue{}

// SliceTriple is the compiled form of a `[start:stop:step]` slice literal.
// A nil component means the component was omitted from the source.
type SliceTriple struct {
	Start *int64
	Stop  *int64
	Step  *int64
}

// TagOf classifies v by its dynamic type. For a Deferred it returns the
// declared OutTag, which is Unknown when the runtime shape cannot be
// inferred statically (Identity, for one); for a concrete value of this
// package it never returns Unknown.
func TagOf(v Value) Tag {
	switch x := v.(type) {
	case NullValue:
		return Null
	case bool:
		return Bool
	case int64:
		return Int
	case float64:
		return Float
	case string:
		return Str
	case *regexp.Regexp:
		return Regex
	case SliceTriple:
		return Slice
	case []Value:
		return Arr
	case *Object:
		return Obj
	case *Deferred:
		return x.OutTag
	default:
		return Unknown
	}
}

// IsDeferred reports whether v is a Deferred thunk.
func IsDeferred(v Value) bool {
	_, ok := v.(*Deferred)
	return ok
}

// AsDeferred returns v's Deferred form, wrapping it as an already-resolved
// constant thunk if it is not already one.
func AsDeferred(v Value) *Deferred {
	if d, ok := v.(*Deferred); ok {
		return d
	}
	tag := TagOf(v)
	return &Deferred{OutTag: tag, Fn: func(Value) (Value, error) { return v, nil }}
}
