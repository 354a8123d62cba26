package query

// Bindings maps the names declared by Capture elements to the leaves they
// matched.
type Bindings[T any] map[string]Predicate[T]

// Element is one conjunct of a rewrite pattern: either a literal predicate
// that must appear verbatim, or a named capture of any leaf with a given
// operator.
type Element[T any] struct {
	literal  Predicate[T]
	name     string
	operator string
}

// Literal matches a conjunct structurally equal to p.
func Literal[T any](p Predicate[T]) Element[T] {
	return Element[T]{literal: p}
}

// Capture matches any leaf whose operator is operator and binds it as name.
func Capture[T any](name, operator string) Element[T] {
	return Element[T]{name: name, operator: operator}
}

func (e Element[T]) matches(p Predicate[T]) bool {
	if e.literal != nil {
		return Equal(e.literal, p)
	}
	return len(p.Children()) == 0 && p.Operator() == e.operator
}

// Rule replaces a set of conjuncts matching Pattern with the predicate
// returned by Build. Build may decline a match by returning false.
type Rule[T any] struct {
	Name    string
	Pattern []Element[T]
	Build   func(b Bindings[T]) (Predicate[T], bool)
}

// Combiner joins rewritten operands back into a composite.
type Combiner[T any] func(ps []Predicate[T]) Predicate[T]

// Rewriter applies an ordered list of rules to predicate trees.
type Rewriter[T any] struct {
	rules []Rule[T]
	and   Combiner[T]
	or    Combiner[T]
}

// RewriterOption configures a Rewriter.
type RewriterOption[T any] func(*Rewriter[T])

// WithAnd replaces the default And combiner used after rewriting.
func WithAnd[T any](fn Combiner[T]) RewriterOption[T] {
	return func(r *Rewriter[T]) { r.and = fn }
}

// WithOr replaces the default Or combiner used after rewriting.
func WithOr[T any](fn Combiner[T]) RewriterOption[T] {
	return func(r *Rewriter[T]) { r.or = fn }
}

// NewRewriter creates a rewriter evaluating rules in the given order.
func NewRewriter[T any](rules []Rule[T], opts ...RewriterOption[T]) *Rewriter[T] {
	r := &Rewriter[T]{
		rules: rules,
		and:   func(ps []Predicate[T]) Predicate[T] { return And(ps...) },
		or:    func(ps []Predicate[T]) Predicate[T] { return Or(ps...) },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rewrite returns p with every matching conjunction replaced according to
// the rules. Operands are rewritten bottom-up. A rule fires at most once per
// conjunction.
func (r *Rewriter[T]) Rewrite(p Predicate[T]) Predicate[T] {
	switch n := p.(type) {
	case *AndPredicate[T]:
		kids := make([]Predicate[T], len(n.children))
		for i, c := range n.children {
			kids[i] = r.Rewrite(c)
		}
		return r.rewriteConjunction(kids)
	case *OrPredicate[T]:
		kids := make([]Predicate[T], len(n.children))
		for i, c := range n.children {
			kids[i] = r.Rewrite(c)
		}
		return r.or(kids)
	case *NotPredicate[T]:
		return Not(r.Rewrite(n.child))
	default:
		return r.rewriteConjunction([]Predicate[T]{p})
	}
}

func (r *Rewriter[T]) rewriteConjunction(kids []Predicate[T]) Predicate[T] {
	fired := make([]bool, len(r.rules))
	for changed := true; changed; {
		changed = false
		for i, rule := range r.rules {
			if fired[i] {
				continue
			}
			used, bindings, ok := match(rule.Pattern, kids)
			if !ok {
				continue
			}
			replacement, ok := rule.Build(bindings)
			if !ok {
				continue
			}
			fired[i] = true
			kids = replace(kids, used, replacement)
			changed = true
			break
		}
	}
	if len(kids) == 1 {
		return kids[0]
	}
	return r.and(kids)
}

// match assigns every pattern element to a distinct conjunct, in pattern
// order, picking the first unused conjunct that fits.
func match[T any](pattern []Element[T], kids []Predicate[T]) ([]bool, Bindings[T], bool) {
	if len(pattern) == 0 || len(pattern) > len(kids) {
		return nil, nil, false
	}
	used := make([]bool, len(kids))
	bindings := make(Bindings[T])
	for _, e := range pattern {
		found := false
		for i, k := range kids {
			if used[i] || !e.matches(k) {
				continue
			}
			used[i] = true
			if e.name != "" {
				bindings[e.name] = k
			}
			found = true
			break
		}
		if !found {
			return nil, nil, false
		}
	}
	return used, bindings, true
}

// replace drops the used conjuncts and appends p in place of the first one.
func replace[T any](kids []Predicate[T], used []bool, p Predicate[T]) []Predicate[T] {
	out := make([]Predicate[T], 0, len(kids))
	placed := false
	for i, k := range kids {
		if !used[i] {
			out = append(out, k)
			continue
		}
		if !placed {
			out = append(out, p)
			placed = true
		}
	}
	return out
}
