package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/heartmarshall/topicreview-backend/internal/domain"
)

// OperatorFunc compiles the value of one field:value term.
type OperatorFunc[T any] func(ctx context.Context, value string) (Predicate[T], error)

// Builder compiles query text into a predicate tree using a table of named
// field operators. Terms without a field go to the default field.
type Builder[T any] struct {
	operators    map[string]OperatorFunc[T]
	defaultField OperatorFunc[T]
}

// NewBuilder creates a Builder. Operator names are matched case-insensitively
// and must be registered in lower case. defaultField may be nil, in which
// case bare terms are rejected.
func NewBuilder[T any](operators map[string]OperatorFunc[T], defaultField OperatorFunc[T]) *Builder[T] {
	return &Builder[T]{operators: operators, defaultField: defaultField}
}

// Parse compiles text. Syntax errors, unknown fields and operator failures are
// returned as *domain.QueryParseError; other errors (store failures during
// name resolution) are returned wrapped.
func (b *Builder[T]) Parse(ctx context.Context, text string) (Predicate[T], error) {
	n, err := parse(text)
	if err != nil {
		return nil, withQuery(err, text)
	}
	p, err := b.build(ctx, n)
	if err != nil {
		return nil, withQuery(err, text)
	}
	return p, nil
}

func (b *Builder[T]) build(ctx context.Context, n *node) (Predicate[T], error) {
	switch n.kind {
	case nodeAnd, nodeOr:
		children := make([]Predicate[T], 0, len(n.children))
		for _, c := range n.children {
			p, err := b.build(ctx, c)
			if err != nil {
				return nil, err
			}
			children = append(children, p)
		}
		if n.kind == nodeAnd {
			return And(children...), nil
		}
		return Or(children...), nil
	case nodeNot:
		p, err := b.build(ctx, n.children[0])
		if err != nil {
			return nil, err
		}
		return Not(p), nil
	default:
		return b.term(ctx, n.field, n.value)
	}
}

func (b *Builder[T]) term(ctx context.Context, field, value string) (Predicate[T], error) {
	if field == "" {
		if b.defaultField == nil {
			return nil, domain.NewQueryParseError("Unsupported query:%s", value)
		}
		return b.defaultField(ctx, value)
	}
	op, ok := b.operators[field]
	if !ok {
		return nil, domain.NewQueryParseError("Unsupported operator %s", field)
	}
	p, err := op(ctx, value)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func withQuery(err error, text string) error {
	var pe *domain.QueryParseError
	if errors.As(err, &pe) {
		if pe.Query == "" {
			pe.Query = text
		}
		return err
	}
	return fmt.Errorf("parse query: %w", err)
}
