package indexer

import "github.com/chcg/jsonql/pkg/value"

// ProjEntry is one `key: expr` pair of an object projection. The key is
// always a literal from the source text; only the expression side can be
// Deferred.
type ProjEntry struct {
	Key  string
	Expr value.Value
}

// Projection synthesizes a new Object or Array from arbitrary expressions
// evaluated against the enclosing current-input, per `{expr, …}` /
// `{"k": expr, …}` syntax. Precisely one of ArrayExprs or ObjectEntries is
// populated, matching the grammar's rejection of mixed projections at
// parse time.
type Projection struct {
	ArrayExprs    []value.Value
	ObjectEntries []ProjEntry
}

func (p *Projection) String() string {
	if p.ObjectEntries != nil {
		return "{obj-projection}"
	}
	return "{arr-projection}"
}

func (p *Projection) Eval(input value.Value) Seq {
	if p.ObjectEntries != nil {
		return func(yield func(Element, error) bool) {
			for _, entry := range p.ObjectEntries {
				v, err := value.Resolve(entry.Expr, input)
				if err != nil {
					yield(Element{}, err)
					return
				}
				if !yield(Element{Key: entry.Key, HasKey: true, Value: v}, nil) {
					return
				}
			}
		}
	}
	return func(yield func(Element, error) bool) {
		for _, expr := range p.ArrayExprs {
			v, err := value.Resolve(expr, input)
			if err != nil {
				yield(Element{}, err)
				return
			}
			if !yield(Element{Value: v}, nil) {
				return
			}
		}
	}
}
