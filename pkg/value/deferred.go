package value

// Deferred stands for "a function of the current input." Every operator
// and function tests for it before doing anything else: if any operand is
// Deferred, the whole operation re-wraps itself as a new Deferred closing
// over the original operand closures, rather than being evaluated now.
type Deferred struct {
	// OutTag is the declared output type, Unknown if it cannot be inferred
	// statically.
	OutTag Tag
	// Fn computes the value given the current input. It must be pure: the
	// same input must always produce the same output, unless the closure
	// was built by a function flagged non-deterministic.
	Fn func(input Value) (Value, error)
}

// Resolve evaluates v against input if it is Deferred, otherwise returns v
// unchanged. Every package that consumes a Value calls this first.
func Resolve(v Value, input Value) (Value, error) {
	d, ok := v.(*Deferred)
	if !ok {
		return v, nil
	}
	return d.Fn(input)
}

// Defer wraps fn as a Deferred with the given declared output tag.
func Defer(outTag Tag, fn func(input Value) (Value, error)) *Deferred {
	return &Deferred{OutTag: outTag, Fn: fn}
}

// Const returns a Deferred that ignores its input and always returns v.
func Const(v Value) *Deferred {
	return Defer(TagOf(v), func(Value) (Value, error) { return v, nil })
}

// Identity is the Deferred bound to the current-input sigil: evaluating it
// returns its argument unchanged.
var Identity = Defer(Unknown, func(input Value) (Value, error) { return input, nil })
