// Package binop implements the binary-operator engine: output-type
// inference, vectorization of a scalar operator across containers, and
// the precedence-climbing tree builder and resolver that the parser
// drives token by token.
package binop

import (
	"github.com/chcg/jsonql/pkg/types"
	"github.com/chcg/jsonql/pkg/value"
)

// Scalar is a binop's body, defined only on non-container, non-Deferred
// operands. Vectorization and Deferred propagation happen above it, in
// Apply.
type Scalar func(a, b value.Value) (value.Value, error)

// Def is one binary operator: a name, a precedence (exponent parsing uses
// a fractional bump, handled by the tree Builder, not stored here), and
// its scalar body.
type Def struct {
	Name       string
	Precedence float64
	Scalar     Scalar
}

// NegPow is the operator fused from a leading unary minus immediately
// followed by `**`, so that `-2**2` parses as `-(2**2)` rather than
// `(-2)**2`. It is not reachable from surface syntax directly; the parser
// substitutes it for Pow when it detects the fusion.
var NegPow = &Def{Name: "negpow", Precedence: 6, Scalar: func(a, b value.Value) (value.Value, error) {
	v, err := Pow.Scalar(a, b)
	if err != nil {
		return nil, err
	}
	return negateScalar(v)
}}

var (
	Add = &Def{Name: "+", Precedence: 4, Scalar: scalarAdd}
	Sub = &Def{Name: "-", Precedence: 4, Scalar: scalarSub}
	Mul = &Def{Name: "*", Precedence: 5, Scalar: scalarMul}
	Div = &Def{Name: "/", Precedence: 5, Scalar: scalarDiv}
	Mod = &Def{Name: "%", Precedence: 5, Scalar: scalarMod}
	FloorDiv = &Def{Name: "//", Precedence: 5, Scalar: scalarFloorDiv}
	Pow = &Def{Name: "**", Precedence: 6, Scalar: scalarPow}

	Eq = &Def{Name: "==", Precedence: 2, Scalar: scalarEq}
	Ne = &Def{Name: "!=", Precedence: 2, Scalar: scalarNe}
	Lt = &Def{Name: "<", Precedence: 3, Scalar: scalarCompare(func(c int) bool { return c < 0 })}
	Le = &Def{Name: "<=", Precedence: 3, Scalar: scalarCompare(func(c int) bool { return c <= 0 })}
	Gt = &Def{Name: ">", Precedence: 3, Scalar: scalarCompare(func(c int) bool { return c > 0 })}
	Ge = &Def{Name: ">=", Precedence: 3, Scalar: scalarCompare(func(c int) bool { return c >= 0 })}

	BitAnd = &Def{Name: "&", Precedence: 1, Scalar: scalarBitwise(func(a, b bool) bool { return a && b }, func(a, b int64) int64 { return a & b })}
	BitOr  = &Def{Name: "|", Precedence: 1, Scalar: scalarBitwise(func(a, b bool) bool { return a || b }, func(a, b int64) int64 { return a | b })}
	BitXor = &Def{Name: "^", Precedence: 1, Scalar: scalarBitwise(func(a, b bool) bool { return a != b }, func(a, b int64) int64 { return a ^ b })}
)

// OutType implements the output-type inference table. Apply uses it to
// declare the output tag of a Deferred result.
func OutType(op *Def, t1, t2 value.Tag) (value.Tag, error) {
	if t1 == value.Unknown || t2 == value.Unknown {
		return value.Unknown, nil
	}
	if t1 == value.Obj || t2 == value.Obj {
		if t1 == value.Arr || t2 == value.Arr {
			return 0, types.Typef("cannot mix an object operand with an array operand in %s", op.Name)
		}
		return value.Obj, nil
	}
	if t1 == value.Arr || t2 == value.Arr {
		return value.Arr, nil
	}
	switch op {
	case Eq, Ne, Lt, Le, Gt, Ge:
		return value.Bool, nil
	}
	if op == Add && (t1 == value.Str || t2 == value.Str) {
		if t1 != value.Str || t2 != value.Str {
			return 0, types.Typef("string concatenation requires both operands to be strings")
		}
		return value.Str, nil
	}
	if op == BitAnd || op == BitOr || op == BitXor {
		if t1 == value.Int && t2 == value.Int {
			return value.Int, nil
		}
		if t1 == value.Bool && t2 == value.Bool {
			return value.Bool, nil
		}
		return 0, types.Typef("%s requires both operands to be int or both bool", op.Name)
	}
	if t1 == value.Bool || t2 == value.Bool {
		return 0, types.Typef("%s does not accept a bool operand", op.Name)
	}
	if !t1.Has(value.Num) || !t2.Has(value.Num) {
		return 0, types.Typef("%s requires numeric operands, got %s and %s", op.Name, t1, t2)
	}
	switch op {
	case FloorDiv:
		return value.Int, nil
	case Div, Pow, NegPow:
		return value.Float, nil
	}
	if t1 == value.Int && t2 == value.Int {
		return value.Int, nil
	}
	return value.Float, nil
}
