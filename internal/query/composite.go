package query

import (
	"context"
	"slices"
	"strings"
)

const (
	OpAnd = "AND"
	OpOr  = "OR"
	OpNot = "NOT"
)

// AndPredicate matches when every child matches.
type AndPredicate[T any] struct {
	children []Predicate[T]
}

// And returns the conjunction of ps. Nested conjunctions are flattened and a
// single operand is returned unchanged.
func And[T any](ps ...Predicate[T]) Predicate[T] {
	flat := make([]Predicate[T], 0, len(ps))
	for _, p := range ps {
		if a, ok := p.(*AndPredicate[T]); ok {
			flat = append(flat, a.children...)
			continue
		}
		flat = append(flat, p)
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return &AndPredicate[T]{children: flat}
}

func (p *AndPredicate[T]) Match(ctx context.Context, obj T) (bool, error) {
	for _, c := range p.children {
		ok, err := c.Match(ctx, obj)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func (p *AndPredicate[T]) Cost() int { return sumCost(p.children) }

func (p *AndPredicate[T]) Operator() string { return OpAnd }

func (p *AndPredicate[T]) Value() string { return "" }

func (p *AndPredicate[T]) Children() []Predicate[T] { return slices.Clone(p.children) }

func (p *AndPredicate[T]) String() string { return joinChildren(p.children, " ") }

// OrPredicate matches when any child matches.
type OrPredicate[T any] struct {
	children []Predicate[T]
}

// Or returns the disjunction of ps. Nested disjunctions are flattened and a
// single operand is returned unchanged.
func Or[T any](ps ...Predicate[T]) Predicate[T] {
	flat := make([]Predicate[T], 0, len(ps))
	for _, p := range ps {
		if o, ok := p.(*OrPredicate[T]); ok {
			flat = append(flat, o.children...)
			continue
		}
		flat = append(flat, p)
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return &OrPredicate[T]{children: flat}
}

func (p *OrPredicate[T]) Match(ctx context.Context, obj T) (bool, error) {
	for _, c := range p.children {
		ok, err := c.Match(ctx, obj)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (p *OrPredicate[T]) Cost() int { return sumCost(p.children) }

func (p *OrPredicate[T]) Operator() string { return OpOr }

func (p *OrPredicate[T]) Value() string { return "" }

func (p *OrPredicate[T]) Children() []Predicate[T] { return slices.Clone(p.children) }

func (p *OrPredicate[T]) String() string { return joinChildren(p.children, " OR ") }

// NotPredicate inverts its child.
type NotPredicate[T any] struct {
	child Predicate[T]
}

// Not returns the negation of p. Double negation is removed.
func Not[T any](p Predicate[T]) Predicate[T] {
	if n, ok := p.(*NotPredicate[T]); ok {
		return n.child
	}
	return &NotPredicate[T]{child: p}
}

func (p *NotPredicate[T]) Match(ctx context.Context, obj T) (bool, error) {
	ok, err := p.child.Match(ctx, obj)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

func (p *NotPredicate[T]) Cost() int { return p.child.Cost() }

func (p *NotPredicate[T]) Operator() string { return OpNot }

func (p *NotPredicate[T]) Value() string { return "" }

func (p *NotPredicate[T]) Children() []Predicate[T] { return []Predicate[T]{p.child} }

func (p *NotPredicate[T]) String() string { return "-" + p.child.String() }

func sumCost[T any](ps []Predicate[T]) int {
	total := 0
	for _, p := range ps {
		total += p.Cost()
	}
	return total
}

func joinChildren[T any](ps []Predicate[T], sep string) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, sep) + ")"
}
