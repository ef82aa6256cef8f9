package binop

import (
	"fmt"

	"github.com/chcg/jsonql/pkg/value"
)

// Leaf is either a resolved or Deferred value.Value, or a *Node: the two
// things a tree position can hold. It exists only for documentation; Go
// has no sum types, so it is an alias for interface{}.
type Leaf = interface{}

// Node is an (op, left, right) binop-tree node, built directly rather
// than via a Shunting-yard stack so that error positions stay close to
// the source.
type Node struct {
	Op          *Def
	Left, Right Leaf
}

// String renders the tree rooted at n as a fully-parenthesized
// infix expression, for debugging a compiled pipeline.
func (n *Node) String() string {
	return "(" + leafString(n.Left) + " " + n.Op.Name + " " + leafString(n.Right) + ")"
}

func leafString(l Leaf) string {
	if node, ok := l.(*Node); ok {
		return node.String()
	}
	if d, ok := l.(*value.Deferred); ok {
		return "<deferred:" + d.OutTag.String() + ">"
	}
	return fmt.Sprintf("%v", l)
}

// Resolve recursively evaluates a tree built by Builder, applying the
// vectorization rules (via Apply) at every internal node.
func Resolve(l Leaf) (value.Value, error) {
	node, ok := l.(*Node)
	if !ok {
		return l.(value.Value), nil
	}
	left, err := Resolve(node.Left)
	if err != nil {
		return nil, err
	}
	right, err := Resolve(node.Right)
	if err != nil {
		return nil, err
	}
	return Apply(node.Op, left, right)
}

// Builder implements the precedence-climbing tree construction:
// a running root and leaf, extended one (op, atom) pair at a time as the
// parser consumes the token stream. It holds no reference to tokens or
// the cursor; the parser supplies already-compiled atoms and Defs.
type Builder struct {
	root, leaf *Node
	pending    value.Value
	prevPrec   float64
	havePrev   bool
}

// NewBuilder starts a tree with expr's first atom as the pending left
// operand.
func NewBuilder(firstAtom value.Value) *Builder {
	return &Builder{pending: firstAtom}
}

// Push extends the tree with the next (op, atom) pair: op sits between
// the previously pending atom and nextAtom, which becomes the new
// pending atom.
func (b *Builder) Push(op *Def, nextAtom value.Value) {
	effective := op.Precedence
	if op == Pow || op == NegPow {
		effective += 0.1
	}

	switch {
	case !b.havePrev:
		node := &Node{Op: op, Left: b.pending}
		b.root, b.leaf = node, node
	case b.prevPrec >= effective:
		b.leaf.Right = b.pending
		node := &Node{Op: op, Left: b.root}
		b.root, b.leaf = node, node
	default:
		node := &Node{Op: op, Left: b.pending}
		b.leaf.Right = node
		b.leaf = node
	}

	b.pending = nextAtom
	b.prevPrec = op.Precedence
	b.havePrev = true
}

// Finish closes the tree off with the last pending atom and returns the
// root Leaf: a *Node if any operator was pushed, or the bare atom if the
// expression was a single operand.
func (b *Builder) Finish() Leaf {
	if b.root == nil {
		return b.pending
	}
	b.leaf.Right = b.pending
	return b.root
}
