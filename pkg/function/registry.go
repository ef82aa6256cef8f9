package function

import (
	"github.com/chcg/jsonql/pkg/types"
	"github.com/chcg/jsonql/pkg/value"
)

// Registry is a name-keyed table of function declarations; signatures are
// data, not virtual methods, per the engine's design notes.
type Registry struct {
	defs map[string]*Def
}

func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Def)}
}

// Register adds def to the registry, replacing any prior definition under
// the same name.
func (r *Registry) Register(def *Def) {
	r.defs[def.Name] = def
}

// Lookup returns the Def for name, and whether it was found.
func (r *Registry) Lookup(name string) (*Def, bool) {
	d, ok := r.defs[name]
	return d, ok
}

// CheckArity validates argCount against def's declared range, producing
// an explicit min/max parse error.
func CheckArity(def *Def, argCount int) error {
	if argCount < def.MinArgs {
		return types.Parsef("%s expects at least %d argument(s), got %d", def.Name, def.MinArgs, argCount)
	}
	if def.MaxArgs != Unbounded && argCount > def.MaxArgs {
		return types.Parsef("%s expects at most %d argument(s), got %d", def.Name, def.MaxArgs, argCount)
	}
	return nil
}

// CheckArgType validates a statically known argument tag against def's
// mask for position i. An Unknown tag is never rejected, since the real
// shape can only be known once the Deferred argument is resolved.
func CheckArgType(def *Def, i int, tag value.Tag) error {
	mask := def.ArgMask(i)
	if !mask.Has(tag) {
		return types.Parsef("%s argument %d: expected %s, got %s", def.Name, i, mask, tag)
	}
	return nil
}
