package value

// Equal performs a structural comparison of two resolved (non-Deferred)
// values: arrays compare element by element in order, objects compare by
// key regardless of key order. It is used by the equality binops and by
// the distinct function.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case NullValue:
		_, ok := b.(NullValue)
		return ok
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	case int64:
		switch y := b.(type) {
		case int64:
			return x == y
		case float64:
			return float64(x) == y
		default:
			return false
		}
	case float64:
		switch y := b.(type) {
		case int64:
			return x == float64(y)
		case float64:
			return x == y
		default:
			return false
		}
	case string:
		y, ok := b.(string)
		return ok && x == y
	case []Value:
		y, ok := b.([]Value)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case *Object:
		y, ok := b.(*Object)
		if !ok || len(x.Keys) != len(y.Keys) {
			return false
		}
		for _, k := range x.Keys {
			yv, ok := y.Values[k]
			if !ok || !Equal(x.Values[k], yv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
