package binop

import (
	"github.com/chcg/jsonql/pkg/types"
	"github.com/chcg/jsonql/pkg/value"
)

// Apply evaluates op over a and b, applying Deferred propagation and
// container vectorization. It is the single entry point every
// resolved binop expression and every container element recursion goes
// through.
func Apply(op *Def, a, b value.Value) (value.Value, error) {
	if value.IsDeferred(a) || value.IsDeferred(b) {
		da, db := value.AsDeferred(a), value.AsDeferred(b)
		outTag, _ := OutType(op, da.OutTag, db.OutTag)
		return value.Defer(outTag, func(input value.Value) (value.Value, error) {
			ra, err := da.Fn(input)
			if err != nil {
				return nil, err
			}
			rb, err := db.Fn(input)
			if err != nil {
				return nil, err
			}
			return Apply(op, ra, rb)
		}), nil
	}

	aArr, aIsArr := a.([]value.Value)
	bArr, bIsArr := b.([]value.Value)
	aObj, aIsObj := a.(*value.Object)
	bObj, bIsObj := b.(*value.Object)

	switch {
	case aIsArr && bIsArr:
		if len(aArr) != len(bArr) {
			return nil, types.VectorizedArithmeticf("%s: array operands have different lengths (%d vs %d)", op.Name, len(aArr), len(bArr))
		}
		out := make([]value.Value, len(aArr))
		for i := range aArr {
			v, err := Apply(op, aArr[i], bArr[i])
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case aIsObj && bIsObj:
		if aObj.Len() != bObj.Len() || !value.SameKeySet(aObj, bObj) {
			return nil, types.VectorizedArithmeticf("%s: object operands do not have matching key sets", op.Name)
		}
		out := value.NewObject()
		for _, pair := range aObj.Pairs() {
			v, err := Apply(op, pair.Value, bObj.Values[pair.Key])
			if err != nil {
				return nil, err
			}
			out.Set(pair.Key, v)
		}
		return out, nil

	case aIsArr:
		logger.Debug("binop vectorizing array against scalar", "op", op.Name, "len", len(aArr))
		out := make([]value.Value, len(aArr))
		for i, v := range aArr {
			r, err := Apply(op, v, b)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	case bIsArr:
		logger.Debug("binop vectorizing scalar against array", "op", op.Name, "len", len(bArr))
		out := make([]value.Value, len(bArr))
		for i, v := range bArr {
			r, err := Apply(op, a, v)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil

	case aIsObj:
		logger.Debug("binop vectorizing object against scalar", "op", op.Name, "len", aObj.Len())
		out := value.NewObject()
		for _, pair := range aObj.Pairs() {
			r, err := Apply(op, pair.Value, b)
			if err != nil {
				return nil, err
			}
			out.Set(pair.Key, r)
		}
		return out, nil
	case bIsObj:
		logger.Debug("binop vectorizing scalar against object", "op", op.Name, "len", bObj.Len())
		out := value.NewObject()
		for _, pair := range bObj.Pairs() {
			r, err := Apply(op, a, pair.Value)
			if err != nil {
				return nil, err
			}
			out.Set(pair.Key, r)
		}
		return out, nil

	default:
		return op.Scalar(a, b)
	}
}

// Negate applies unary minus, vectorizing over containers and
// propagating Deferred the same way Apply does for binary operators.
func Negate(v value.Value) (value.Value, error) {
	if value.IsDeferred(v) {
		d := value.AsDeferred(v)
		return value.Defer(d.OutTag, func(input value.Value) (value.Value, error) {
			r, err := d.Fn(input)
			if err != nil {
				return nil, err
			}
			return Negate(r)
		}), nil
	}
	switch x := v.(type) {
	case []value.Value:
		out := make([]value.Value, len(x))
		for i, e := range x {
			r, err := Negate(e)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	case *value.Object:
		out := value.NewObject()
		for _, pair := range x.Pairs() {
			r, err := Negate(pair.Value)
			if err != nil {
				return nil, err
			}
			out.Set(pair.Key, r)
		}
		return out, nil
	default:
		return negateScalar(v)
	}
}
