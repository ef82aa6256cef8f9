// Package function implements the argument-function applier: a registry
// of library functions declared by name, arity, per-argument type masks,
// a return type, and the is_vectorized/is_deterministic flags that drive
// the four dispatch paths. Function bodies are supplied as a
// representative library here, not an exhaustive one.
package function

import "github.com/chcg/jsonql/pkg/value"

// Unbounded marks a function with no upper arity limit.
const Unbounded = -1

// Body is a function's synchronous, non-vectorized, non-Deferred core: it
// is never called with a Deferred or (for a vectorized function) with a
// top-level container argument, since Apply strips both layers first.
type Body func(args []value.Value) (value.Value, error)

// Def declares one library function.
type Def struct {
	Name            string
	MinArgs         int
	MaxArgs         int // Unbounded for variadic-with-no-ceiling
	ArgMasks        []value.Tag // last mask repeats for positions beyond len(ArgMasks)
	Return          value.Tag
	IsVectorized    bool
	IsDeterministic bool
	Fn              Body
}

// ArgMask returns the accepted type mask for argument position i,
// repeating the last declared mask for variadic positions.
func (d *Def) ArgMask(i int) value.Tag {
	if len(d.ArgMasks) == 0 {
		return value.Unknown
	}
	if i < len(d.ArgMasks) {
		return d.ArgMasks[i]
	}
	return d.ArgMasks[len(d.ArgMasks)-1]
}

// EffectiveReturn computes the return type used for static type
// inference at a call site, given the statically known tag of the first
// argument (Unknown if not yet known).
func (d *Def) EffectiveReturn(arg0Tag value.Tag) value.Tag {
	if d.IsVectorized && (arg0Tag == value.Arr || arg0Tag == value.Obj) {
		return arg0Tag
	}
	return d.Return
}
