package space

import (
	"github.com/eaburns/sift/types"
)

// Logic is the oracle interface injected into the algebra.
// The algebra never hard-codes a type system;
// every type question goes through a Logic.
type Logic interface {
	// IsSubType returns whether every value of a is a value of b.
	IsSubType(a, b types.Type) bool
	// IsEqualType returns whether a and b are the same type.
	IsEqualType(a, b types.Type) bool
	// CanDecompose returns whether a type can be split
	// into a finite, exhaustive list of component spaces.
	CanDecompose(t types.Type) bool
	// Decompose splits a decomposable type into its component spaces.
	Decompose(t types.Type) []Space
	// Signature resolves the field types of an extractor applied at fun
	// for the requested arity.
	Signature(fun types.Type, sym *types.Extractor, arity int) []types.Type
	// IntersectUnrelated resolves the intersection of two unrelated,
	// non-decomposable atomic types: Empty if no subtype could
	// implement both.
	IntersectUnrelated(a, b *Typ) Space
}

// aggressiveMax is the union size below which aggressive simplification
// attempts member-subsumption removal. Larger unions are left alone:
// the pass is quadratic in calls to IsSubspace and is noise reduction
// for human-facing counterexamples, never a correctness step.
const aggressiveMax = 5

// An Algebra evaluates space operations against a Logic,
// memoizing IsSubspace, Intersect, and Minus within one analysis.
// An Algebra is for a single match expression; the memo tables
// must not be shared across selector types.
type Algebra struct {
	Logic

	subMemo   map[[2]string]bool
	isectMemo map[[2]string]Space
	minusMemo map[[2]string]Space
}

// New returns an Algebra over the given Logic.
func New(l Logic) *Algebra {
	return &Algebra{
		Logic:     l,
		subMemo:   make(map[[2]string]bool),
		isectMemo: make(map[[2]string]Space),
		minusMemo: make(map[[2]string]Space),
	}
}

// Simplify returns an equivalent space in simplified form:
// a Prod with any Empty component is Empty, one level of Or nesting is
// inlined, Empty union members are dropped, a singleton union collapses
// to its member, and a Typ whose type is decomposable into zero
// components is Empty.
//
// When aggressive, unions with fewer than aggressiveMax members also
// drop any member that is a subspace of the union of the others,
// to a fixed point. Aggressive simplification is used only when
// producing human-facing counterexamples; subtraction never relies on it.
func (g *Algebra) Simplify(s Space, aggressive bool) Space {
	switch s := s.(type) {
	case *Empty:
		return s
	case *Typ:
		if g.CanDecompose(s.T) && len(g.Decompose(s.T)) == 0 {
			return &Empty{}
		}
		return s
	case *Prod:
		args := make([]Space, len(s.Args))
		for i, a := range s.Args {
			args[i] = g.Simplify(a, false)
			if IsEmpty(args[i]) {
				return &Empty{}
			}
		}
		if g.CanDecompose(s.T) && len(g.Decompose(s.T)) == 0 {
			return &Empty{}
		}
		return &Prod{T: s.T, Fun: s.Fun, Sym: s.Sym, Args: args, Full: s.Full}
	case *Or:
		var members []Space
		for _, m := range s.Spaces {
			switch m := g.Simplify(m, aggressive).(type) {
			case *Empty:
			case *Or:
				members = append(members, m.Spaces...)
			default:
				members = append(members, m)
			}
		}
		switch {
		case len(members) == 0:
			return &Empty{}
		case len(members) == 1:
			return members[0]
		}
		if aggressive && len(s.Spaces) < aggressiveMax {
			for i, m := range members {
				rest := make([]Space, 0, len(members)-1)
				rest = append(rest, members[:i]...)
				rest = append(rest, members[i+1:]...)
				if g.IsSubspace(m, &Or{Spaces: rest}) {
					return g.Simplify(&Or{Spaces: rest}, aggressive)
				}
			}
		}
		return &Or{Spaces: members}
	default:
		panic("impossible Space type")
	}
}

// Flatten expands s into a list of Or-free spaces whose union equals s:
// nested Ors are inlined and a Prod distributes over its components'
// unions by Cartesian expansion. Flatten is for enumeration and display
// only; the algebra itself never needs it.
func (g *Algebra) Flatten(s Space) []Space {
	switch s := s.(type) {
	case *Prod:
		combos := [][]Space{nil}
		for _, a := range s.Args {
			alts := g.Flatten(a)
			next := make([][]Space, 0, len(combos)*len(alts))
			for _, c := range combos {
				for _, alt := range alts {
					row := make([]Space, len(c), len(c)+1)
					copy(row, c)
					next = append(next, append(row, alt))
				}
			}
			combos = next
		}
		flat := make([]Space, len(combos))
		for i, c := range combos {
			flat[i] = &Prod{T: s.T, Fun: s.Fun, Sym: s.Sym, Args: c, Full: s.Full}
		}
		return flat
	case *Or:
		var flat []Space
		for _, m := range s.Spaces {
			flat = append(flat, g.Flatten(m)...)
		}
		return flat
	default:
		return []Space{s}
	}
}

// IsSubspace returns whether every value in a is also in b.
func (g *Algebra) IsSubspace(a, b Space) bool {
	key := keyOf(a, b)
	if r, ok := g.subMemo[key]; ok {
		return r
	}
	// Seed with false so that a recursion back to the same pair
	// (possible through decomposition of recursive hierarchies)
	// is answered conservatively rather than looping.
	g.subMemo[key] = false
	r := g.isSubspace(a, b)
	g.subMemo[key] = r
	return r
}

func (g *Algebra) isSubspace(a, b Space) bool {
	a = g.Simplify(a, false)
	if IsEmpty(a) {
		return true
	}
	if IsEmpty(g.Simplify(b, false)) {
		return false
	}
	if or, ok := a.(*Or); ok {
		for _, m := range or.Spaces {
			if !g.IsSubspace(m, b) {
				return false
			}
		}
		return true
	}
	switch b := b.(type) {
	case *Typ:
		switch a := a.(type) {
		case *Typ:
			if g.IsSubType(a.T, b.T) {
				return true
			}
			return g.CanDecompose(a.T) &&
				g.IsSubspace(&Or{Spaces: g.Decompose(a.T)}, b)
		case *Prod:
			return g.IsSubType(a.T, b.T)
		}
	case *Or:
		if a, ok := a.(*Typ); ok {
			// Try direct membership before falling back to subtraction.
			for _, m := range b.Spaces {
				if g.IsSubspace(a, m) {
					return true
				}
			}
			if g.CanDecompose(a.T) {
				return g.IsSubspace(&Or{Spaces: g.Decompose(a.T)}, b)
			}
		}
		return IsEmpty(g.Simplify(g.Minus(a, b), false))
	case *Prod:
		switch a := a.(type) {
		case *Typ:
			// Approximation: a type can never be fully matched
			// by a partial extractor.
			return b.Full && g.IsSubType(a.T, b.Fun) &&
				g.IsSubspace(g.expand(a.T, b), b)
		case *Prod:
			if a.Sym != b.Sym || !g.IsEqualType(a.Fun, b.Fun) {
				return false
			}
			for i := range a.Args {
				if !g.IsSubspace(a.Args[i], b.Args[i]) {
					return false
				}
			}
			return true
		}
	}
	return false
}

// expand rewrites the set of all values of typ as the irrefutable
// extractor product of b's shape with wildcard components.
func (g *Algebra) expand(typ types.Type, b *Prod) *Prod {
	sig := g.Signature(b.Fun, b.Sym, len(b.Args))
	args := make([]Space, len(sig))
	for i, t := range sig {
		args[i] = &Typ{T: t}
	}
	return &Prod{T: typ, Fun: b.Fun, Sym: b.Sym, Args: args, Full: b.Full}
}

// Intersect returns the space of values in both a and b.
func (g *Algebra) Intersect(a, b Space) Space {
	key := keyOf(a, b)
	if r, ok := g.isectMemo[key]; ok {
		return r
	}
	r := g.intersect(a, b)
	g.isectMemo[key] = r
	return r
}

func (g *Algebra) intersect(a, b Space) Space {
	if IsEmpty(a) || IsEmpty(b) {
		return &Empty{}
	}
	if or, ok := b.(*Or); ok {
		return g.intersectUnion(a, or, func(x, m Space) Space { return g.Intersect(x, m) })
	}
	if or, ok := a.(*Or); ok {
		return g.intersectUnion(b, or, func(x, m Space) Space { return g.Intersect(m, x) })
	}
	switch a := a.(type) {
	case *Typ:
		switch b := b.(type) {
		case *Typ:
			switch {
			case g.IsSubType(a.T, b.T):
				return a
			case g.IsSubType(b.T, a.T):
				return b
			case g.CanDecompose(a.T):
				return g.Intersect(&Or{Spaces: g.Decompose(a.T)}, b)
			case g.CanDecompose(b.T):
				return g.Intersect(a, &Or{Spaces: g.Decompose(b.T)})
			default:
				return g.IntersectUnrelated(a, b)
			}
		case *Prod:
			return g.intersectTypProd(a, b)
		}
	case *Prod:
		switch b := b.(type) {
		case *Typ:
			return g.intersectTypProd(b, a)
		case *Prod:
			if a.Sym != b.Sym || !g.IsEqualType(a.Fun, b.Fun) {
				return &Empty{}
			}
			args := make([]Space, len(a.Args))
			for i := range a.Args {
				args[i] = g.Intersect(a.Args[i], b.Args[i])
				if IsEmpty(g.Simplify(args[i], false)) {
					return &Empty{}
				}
			}
			return &Prod{T: a.T, Fun: a.Fun, Sym: a.Sym, Args: args, Full: a.Full}
		}
	}
	panic("impossible Space type")
}

func (g *Algebra) intersectUnion(x Space, or *Or, f func(x, m Space) Space) Space {
	var members []Space
	for _, m := range or.Spaces {
		if i := f(x, m); !IsEmpty(i) {
			members = append(members, i)
		}
	}
	if len(members) == 0 {
		return &Empty{}
	}
	return &Or{Spaces: members}
}

// intersectTypProd intersects the set of all values of a type with an
// extractor product. The extractor side is preferred for a better
// approximation; the type side wins only when it is a strict supertype
// of the extractor's declared type. This is a documented approximate
// corner: a type that transitively inherits a nominal case shape can
// make either answer wrong, and tightening the rule risks both false
// positives and false negatives.
func (g *Algebra) intersectTypProd(a *Typ, b *Prod) Space {
	if b.Full {
		switch {
		case g.IsSubType(b.Fun, a.T):
			return b
		case g.IsSubType(a.T, b.Fun):
			// The type side wins here: a.T may transitively inherit
			// the extractor's nominal case shape.
			return a
		case g.CanDecompose(a.T):
			return g.Intersect(&Or{Spaces: g.Decompose(a.T)}, b)
		default:
			return &Empty{}
		}
	}
	if g.IsSubType(a.T, b.Fun) || g.IsSubType(b.Fun, a.T) {
		return b
	}
	if g.CanDecompose(a.T) {
		return g.Intersect(&Or{Spaces: g.Decompose(a.T)}, b)
	}
	return &Empty{}
}

// Minus returns the space of values of a not covered by b.
func (g *Algebra) Minus(a, b Space) Space {
	key := keyOf(a, b)
	if r, ok := g.minusMemo[key]; ok {
		return r
	}
	// Seed with a: recursion back to the same pair through
	// decomposition answers "nothing subtracted", which is sound.
	g.minusMemo[key] = a
	r := g.minus(a, b)
	g.minusMemo[key] = r
	return r
}

func (g *Algebra) minus(a, b Space) Space {
	if IsEmpty(a) {
		return &Empty{}
	}
	if IsEmpty(b) {
		return a
	}
	// A union subtrahend is repeated subtraction: left-associative,
	// and order-independent, since subtracting a union is the
	// intersection of the sequential subtractions.
	if or, ok := b.(*Or); ok {
		r := a
		for _, m := range or.Spaces {
			r = g.Minus(r, m)
		}
		return r
	}
	if or, ok := a.(*Or); ok {
		members := make([]Space, len(or.Spaces))
		for i, m := range or.Spaces {
			members[i] = g.Minus(m, b)
		}
		return &Or{Spaces: members}
	}
	switch a := a.(type) {
	case *Typ:
		switch b := b.(type) {
		case *Typ:
			switch {
			case g.IsSubType(a.T, b.T):
				return &Empty{}
			case g.CanDecompose(a.T):
				return g.Minus(&Or{Spaces: g.Decompose(a.T)}, b)
			case g.CanDecompose(b.T):
				return g.Minus(a, &Or{Spaces: g.Decompose(b.T)})
			default:
				return a
			}
		case *Prod:
			if !b.Full {
				// A partial extractor covers no type completely.
				return a
			}
			switch {
			case g.IsSubType(a.T, b.Fun):
				// Every value of a.T is the extractor shape applied to
				// its full signature; subtract component-wise.
				return g.Minus(g.expand(a.T, b), b)
			case g.CanDecompose(a.T):
				return g.Minus(&Or{Spaces: g.Decompose(a.T)}, b)
			default:
				return a
			}
		}
	case *Prod:
		switch b := b.(type) {
		case *Typ:
			// Uncovered corner case: b.T strictly between a's
			// extractor type and a's component constraints.
			if g.IsSubType(a.T, b.T) {
				return &Empty{}
			}
			return a
		case *Prod:
			if a.Sym != b.Sym || !g.IsEqualType(a.Fun, b.Fun) {
				return a
			}
			allCovered := true
			for i := range a.Args {
				if IsEmpty(g.Simplify(g.Intersect(a.Args[i], b.Args[i]), false)) {
					return a
				}
				if !g.IsSubspace(a.Args[i], b.Args[i]) {
					allCovered = false
				}
			}
			if allCovered {
				return &Empty{}
			}
			// Tuple-pattern case split: the remainder is a union over
			// positions, each term subtracting at one component and
			// keeping the rest, eg `(_, _, _) - (Some, None, _)` is
			// `(None, _, _) | (_, Some, _) | (_, _, Empty)`;
			// Empty-component terms are dropped by Simplify.
			members := make([]Space, len(a.Args))
			for i := range a.Args {
				args := make([]Space, len(a.Args))
				copy(args, a.Args)
				args[i] = g.Minus(a.Args[i], b.Args[i])
				members[i] = &Prod{T: a.T, Fun: a.Fun, Sym: a.Sym, Args: args, Full: a.Full}
			}
			return &Or{Spaces: members}
		}
	}
	panic("impossible Space type")
}
