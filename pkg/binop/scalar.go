package binop

import (
	"math"

	"github.com/chcg/jsonql/pkg/types"
	"github.com/chcg/jsonql/pkg/value"
)

func asFloat(v value.Value) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}

func bothInt(a, b value.Value) (int64, int64, bool) {
	x, ok1 := a.(int64)
	y, ok2 := b.(int64)
	return x, y, ok1 && ok2
}

func scalarAdd(a, b value.Value) (value.Value, error) {
	if sa, ok := a.(string); ok {
		sb, ok := b.(string)
		if !ok {
			return nil, types.Typef("string concatenation requires both operands to be strings")
		}
		return sa + sb, nil
	}
	if x, y, ok := bothInt(a, b); ok {
		return x + y, nil
	}
	fa, ok1 := asFloat(a)
	fb, ok2 := asFloat(b)
	if !ok1 || !ok2 {
		return nil, types.Typef("+ requires numeric or string operands")
	}
	return fa + fb, nil
}

func scalarSub(a, b value.Value) (value.Value, error) {
	if x, y, ok := bothInt(a, b); ok {
		return x - y, nil
	}
	fa, fb, err := numericPair(a, b, "-")
	if err != nil {
		return nil, err
	}
	return fa - fb, nil
}

func scalarMul(a, b value.Value) (value.Value, error) {
	if x, y, ok := bothInt(a, b); ok {
		return x * y, nil
	}
	fa, fb, err := numericPair(a, b, "*")
	if err != nil {
		return nil, err
	}
	return fa * fb, nil
}

func scalarDiv(a, b value.Value) (value.Value, error) {
	fa, fb, err := numericPair(a, b, "/")
	if err != nil {
		return nil, err
	}
	if fb == 0 {
		return nil, types.Typef("division by zero")
	}
	return fa / fb, nil
}

func scalarFloorDiv(a, b value.Value) (value.Value, error) {
	fa, fb, err := numericPair(a, b, "//")
	if err != nil {
		return nil, err
	}
	if fb == 0 {
		return nil, types.Typef("division by zero")
	}
	return int64(math.Floor(fa / fb)), nil
}

func scalarMod(a, b value.Value) (value.Value, error) {
	if x, y, ok := bothInt(a, b); ok {
		if y == 0 {
			return nil, types.Typef("modulo by zero")
		}
		m := x % y
		if m != 0 && (m < 0) != (y < 0) {
			m += y
		}
		return m, nil
	}
	fa, fb, err := numericPair(a, b, "%")
	if err != nil {
		return nil, err
	}
	if fb == 0 {
		return nil, types.Typef("modulo by zero")
	}
	return math.Mod(math.Mod(fa, fb)+fb, fb), nil
}

func scalarPow(a, b value.Value) (value.Value, error) {
	fa, fb, err := numericPair(a, b, "**")
	if err != nil {
		return nil, err
	}
	return math.Pow(fa, fb), nil
}

func numericPair(a, b value.Value, op string) (float64, float64, error) {
	fa, ok1 := asFloat(a)
	fb, ok2 := asFloat(b)
	if !ok1 || !ok2 {
		return 0, 0, types.Typef("%s requires numeric operands, got %T and %T", op, a, b)
	}
	return fa, fb, nil
}

func scalarEq(a, b value.Value) (value.Value, error) {
	return value.Equal(a, b), nil
}

func scalarNe(a, b value.Value) (value.Value, error) {
	return !value.Equal(a, b), nil
}

// compare returns -1, 0, 1 for ordered scalars, and an error for operands
// that have no defined order.
func compare(a, b value.Value) (int, error) {
	if fa, ok1 := asFloat(a); ok1 {
		if fb, ok2 := asFloat(b); ok2 {
			switch {
			case fa < fb:
				return -1, nil
			case fa > fb:
				return 1, nil
			default:
				return 0, nil
			}
		}
	}
	if sa, ok1 := a.(string); ok1 {
		if sb, ok2 := b.(string); ok2 {
			switch {
			case sa < sb:
				return -1, nil
			case sa > sb:
				return 1, nil
			default:
				return 0, nil
			}
		}
	}
	return 0, types.Typef("cannot order %T against %T", a, b)
}

func scalarCompare(pred func(int) bool) Scalar {
	return func(a, b value.Value) (value.Value, error) {
		c, err := compare(a, b)
		if err != nil {
			return nil, err
		}
		return pred(c), nil
	}
}

func scalarBitwise(boolOp func(a, b bool) bool, intOp func(a, b int64) int64) Scalar {
	return func(a, b value.Value) (value.Value, error) {
		if x, y, ok := bothInt(a, b); ok {
			return intOp(x, y), nil
		}
		if x, ok1 := a.(bool); ok1 {
			if y, ok2 := b.(bool); ok2 {
				return boolOp(x, y), nil
			}
		}
		return nil, types.Typef("bitwise operator requires both int or both bool operands")
	}
}

func negateScalar(v value.Value) (value.Value, error) {
	switch x := v.(type) {
	case int64:
		return -x, nil
	case float64:
		return -x, nil
	default:
		return nil, types.Typef("unary minus requires a numeric operand, got %T", v)
	}
}
