package types

import (
	"github.com/hashicorp/go-set/v3"
)

// CanIntersect reports whether two unrelated atomic types could have a
// common, instantiable subtype. It classifies each nominal operand as
// unimplementable (final classes, objects, literal singletons),
// freely implementable (traits), or class-constrained,
// and combines the classifications across And/Or structure:
// a class can implement an intersection only if it is a subclass of every
// class-constrained side, and the class constraints must themselves be
// mutually related, since classes have single inheritance.
func CanIntersect(a, b Type) bool {
	if SubType(a, b) || SubType(b, a) {
		return true
	}
	// Distribute over unions first: a value inhabits a union
	// if it inhabits either side.
	if ao, ok := a.(*OrType); ok {
		return CanIntersect(ao.Left, b) || CanIntersect(ao.Right, b)
	}
	if bo, ok := b.(*OrType); ok {
		return CanIntersect(a, bo.Left) || CanIntersect(a, bo.Right)
	}

	atoms := conjuncts(a, conjuncts(b, nil))
	classes := set.New[*TypeDef](len(atoms))
	for _, t := range atoms {
		if unimplementable(t) {
			// A singleton is implemented by nothing else: every other
			// conjunct must already be a supertype of it.
			for _, o := range atoms {
				if o != t && !SubType(t, o) {
					return false
				}
			}
			continue
		}
		if d, ok := t.(*DefType); ok && d.Def.Kind != Trait {
			classes.Insert(d.Def)
		}
	}
	// All class constraints must lie on one inheritance chain.
	cs := classes.Slice()
	for i, c := range cs {
		for _, o := range cs[i+1:] {
			if !derivesFrom(c, o) && !derivesFrom(o, c) {
				return false
			}
		}
	}
	return true
}

// derivesFrom reports whether def d names p anywhere on its parent chain.
func derivesFrom(d, p *TypeDef) bool {
	if d == p {
		return true
	}
	for _, parent := range d.Parents {
		if pd, ok := parent.(*DefType); ok && derivesFrom(pd.Def, p) {
			return true
		}
	}
	return false
}

// conjuncts appends the atomic conjuncts of t to out,
// flattening nested intersections.
func conjuncts(t Type, out []Type) []Type {
	if and, ok := t.(*AndType); ok {
		return conjuncts(and.Right, conjuncts(and.Left, out))
	}
	return append(out, t)
}

// unimplementable reports whether no type other than t's own
// subtypes-by-identity could ever produce a value of t.
func unimplementable(t Type) bool {
	switch t := t.(type) {
	case *ConstType:
		return true
	case *DefType:
		return t.Def.Final || t.Def.Kind == Object
	default:
		return false
	}
}

// Inhabited reports whether the type denotes at least one value.
// It specifically rejects vacuous intersections formed during refinement:
// a singleton type intersected with an unrelated, non-supertype type
// denotes no values.
func Inhabited(t Type) bool {
	switch t := t.(type) {
	case nil:
		return true
	case *BasicType:
		return t.Kind != Nothing
	case *AndType:
		return Inhabited(t.Left) && Inhabited(t.Right) && CanIntersect(t.Left, t.Right)
	case *OrType:
		return Inhabited(t.Left) || Inhabited(t.Right)
	default:
		return true
	}
}
