// Package query provides a small predicate algebra over an arbitrary target
// type: operator leaves, AND/OR/NOT composites, a text query grammar that
// compiles into predicate trees, and a structural rewriter that replaces
// recognised subtrees with cheaper equivalents.
package query

import (
	"context"
	"strconv"
	"strings"
)

// Predicate is a node in a boolean expression tree over T.
//
// Leaves report a field name as Operator and its argument as Value.
// Composites report "AND", "OR" or "NOT" and expose their Children.
type Predicate[T any] interface {
	Match(ctx context.Context, obj T) (bool, error)
	// Cost orders evaluation: 0 is free, 1 is an indexed lookup,
	// 2 needs auxiliary collections loaded.
	Cost() int
	Operator() string
	Value() string
	Children() []Predicate[T]
	String() string
}

// Equal reports whether a and b are structurally the same predicate: same
// operator and value, and pairwise equal children in the same order.
func Equal[T any](a, b Predicate[T]) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Operator() != b.Operator() || a.Value() != b.Value() {
		return false
	}
	ac, bc := a.Children(), b.Children()
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if !Equal(ac[i], bc[i]) {
			return false
		}
	}
	return true
}

// Key returns a canonical string for p. Equal predicates have equal keys, so
// Key can be used wherever a hash of a predicate is needed.
func Key[T any](p Predicate[T]) string {
	return p.String()
}

// ---------------------------------------------------------------------------
// Operator leaves
// ---------------------------------------------------------------------------

// OperatorPredicate carries the field/value pair of a leaf. Concrete leaves
// embed it and add Match and Cost.
type OperatorPredicate[T any] struct {
	name  string
	value string
}

// NewOperatorPredicate returns the field/value part of a leaf predicate.
func NewOperatorPredicate[T any](name, value string) OperatorPredicate[T] {
	return OperatorPredicate[T]{name: name, value: value}
}

func (p OperatorPredicate[T]) Operator() string { return p.name }

func (p OperatorPredicate[T]) Value() string { return p.value }

func (p OperatorPredicate[T]) Children() []Predicate[T] { return nil }

func (p OperatorPredicate[T]) String() string {
	return p.name + ":" + quoteValue(p.value)
}

// quoteValue quotes values the query grammar would otherwise split.
func quoteValue(v string) string {
	if v == "" || strings.ContainsAny(v, " \t\n\"():") {
		return strconv.Quote(v)
	}
	return v
}

// IntPredicate is an operator leaf with an integer argument that matches
// every object. It carries settings such as a result limit through the tree.
type IntPredicate[T any] struct {
	OperatorPredicate[T]
	n int
}

// NewIntPredicate returns a match-all leaf named name with argument n.
func NewIntPredicate[T any](name string, n int) *IntPredicate[T] {
	return &IntPredicate[T]{
		OperatorPredicate: NewOperatorPredicate[T](name, strconv.Itoa(n)),
		n:                 n,
	}
}

// IntValue returns the integer argument.
func (p *IntPredicate[T]) IntValue() int { return p.n }

func (p *IntPredicate[T]) Match(context.Context, T) (bool, error) { return true, nil }

func (p *IntPredicate[T]) Cost() int { return 0 }

// ---------------------------------------------------------------------------
// Tree search
// ---------------------------------------------------------------------------

// Find returns the first leaf in p (depth first) whose operator is name,
// or nil.
func Find[T any](p Predicate[T], name string) Predicate[T] {
	if p == nil {
		return nil
	}
	children := p.Children()
	if len(children) == 0 {
		if p.Operator() == name {
			return p
		}
		return nil
	}
	for _, c := range children {
		if found := Find(c, name); found != nil {
			return found
		}
	}
	return nil
}
