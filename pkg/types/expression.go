package types

import "github.com/chcg/jsonql/pkg/value"

// Expression is a compiled query: its selector (always present), its
// mutator (present only for a selector/mutator pair), and the source text
// each was compiled from, kept for error messages and re-display.
type Expression struct {
	Selector value.Value
	Mutator  value.Value

	SelectorSource string
	MutatorSource  string
}

// HasMutator reports whether e carries a compiled mutator half.
func (e *Expression) HasMutator() bool {
	return e.Mutator != nil
}
