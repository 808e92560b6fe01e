package formula

import (
	"log/slog"
	"math"
	"strings"
)

// node is the common behavior of every AST node. Bind and resolve return
// the node that replaces the receiver in the tree; nodes that need no
// replacement return themselves. Name references change identity on every
// phase transition (name → linked → ref), modeling a one-way state machine
// per node.
type node interface {
	bind(*Scope) (node, error)
	resolve() (node, error)
	eval() float64
	deps(*[]*Dependent) error
}

// literalNode holds a numeric constant.
type literalNode struct {
	value float64
}

func (n *literalNode) bind(*Scope) (node, error) { return n, nil }
func (n *literalNode) resolve() (node, error)    { return n, nil }
func (n *literalNode) eval() float64             { return n.value }
func (n *literalNode) deps(*[]*Dependent) error  { return nil }

// negNode is unary negation, the only unary operator in the grammar.
// Negations nest, so "--5" evaluates to 5.
type negNode struct {
	operand node
}

func (n *negNode) bind(s *Scope) (node, error) {
	operand, err := n.operand.bind(s)
	if err != nil {
		return nil, err
	}

	n.operand = operand

	return n, nil
}

func (n *negNode) resolve() (node, error) {
	operand, err := n.operand.resolve()
	if err != nil {
		return nil, err
	}

	n.operand = operand

	return n, nil
}

func (n *negNode) eval() float64 { return -n.operand.eval() }

func (n *negNode) deps(out *[]*Dependent) error { return n.operand.deps(out) }

// binaryNode holds a binary operator and its two operands.
type binaryNode struct {
	op  Kind
	lhs node
	rhs node
}

func (n *binaryNode) bind(s *Scope) (node, error) {
	lhs, err := n.lhs.bind(s)
	if err != nil {
		return nil, err
	}

	rhs, err := n.rhs.bind(s)
	if err != nil {
		return nil, err
	}

	n.lhs, n.rhs = lhs, rhs

	return n, nil
}

func (n *binaryNode) resolve() (node, error) {
	lhs, err := n.lhs.resolve()
	if err != nil {
		return nil, err
	}

	rhs, err := n.rhs.resolve()
	if err != nil {
		return nil, err
	}

	n.lhs, n.rhs = lhs, rhs

	return n, nil
}

// eval applies the operator with float64 semantics. Division and modulo by
// zero propagate Inf and NaN.
func (n *binaryNode) eval() float64 {
	l, r := n.lhs.eval(), n.rhs.eval()

	switch n.op {
	case KindPlus:
		return l + r
	case KindMinus:
		return l - r
	case KindStar:
		return l * r
	case KindSlash:
		return l / r
	case KindPercent:
		return math.Mod(l, r)
	default:
		return math.NaN()
	}
}

func (n *binaryNode) deps(out *[]*Dependent) error {
	if err := n.lhs.deps(out); err != nil {
		return err
	}

	return n.rhs.deps(out)
}

// nameNode is a symbolic reference, alive only in the unbound phase.
// It holds the ordered identifier parts of a dotted chain ("a.b.c" is
// ["a","b","c"]) and the source offset of the first part.
type nameNode struct {
	parts  []string
	offset int
}

func (n *nameNode) bind(s *Scope) (node, error) {
	access, err := s.Lookup(n.parts, SymbolValue)
	if err != nil {
		return nil, err
	}

	return &linkedNode{access: access}, nil
}

func (n *nameNode) resolve() (node, error) {
	return nil, ErrNotBound.With(slog.String("name", strings.Join(n.parts, ".")))
}

func (n *nameNode) eval() float64 {
	panic("formula: evaluate unbound name " + strings.Join(n.parts, "."))
}

// deps on an unbound name is a contract violation: the reference must be
// bound before its dependency can be known.
func (n *nameNode) deps(*[]*Dependent) error {
	return ErrNotBound.With(slog.String("name", strings.Join(n.parts, ".")))
}

// linkedNode is a bound reference, alive only between bind and resolve.
// The deferred accessor must not be invoked until every expression in the
// batch exists; the handle it returns is memoized on first access.
type linkedNode struct {
	access Accessor
	target *Dependent
}

func (n *linkedNode) dep() *Dependent {
	if n.target == nil {
		n.target = n.access()
	}

	return n.target
}

func (n *linkedNode) bind(*Scope) (node, error) {
	return nil, ErrAlreadyBound
}

func (n *linkedNode) resolve() (node, error) {
	d := n.dep()
	if d.resolved == nil {
		return nil, ErrUnresolvedDeps
	}

	return &refNode{target: d.resolved}, nil
}

func (n *linkedNode) eval() float64 {
	panic("formula: evaluate unresolved reference")
}

func (n *linkedNode) deps(out *[]*Dependent) error {
	*out = append(*out, n.dep())

	return nil
}

// refNode is a resolved reference holding the final evaluable target.
type refNode struct {
	target *Resolved
}

func (n *refNode) bind(*Scope) (node, error) { return nil, ErrAlreadyBound }
func (n *refNode) resolve() (node, error)    { return nil, ErrAlreadyResolved }
func (n *refNode) eval() float64             { return n.target.Evaluate() }
func (n *refNode) deps(*[]*Dependent) error  { return nil }

// nativeNode wraps a host-provided numeric callback. It has no
// dependencies and passes through bind and resolve unchanged; eval invokes
// the callback on every call.
type nativeNode struct {
	fn func() float64
}

func (n *nativeNode) bind(*Scope) (node, error) { return n, nil }
func (n *nativeNode) resolve() (node, error)    { return n, nil }
func (n *nativeNode) eval() float64             { return n.fn() }
func (n *nativeNode) deps(*[]*Dependent) error  { return nil }
