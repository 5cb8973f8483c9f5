package cover

import (
	"github.com/eaburns/sift/space"
	"github.com/eaburns/sift/types"
)

// satisfiable reports whether the type constraints implied by a
// candidate counterexample space can hold simultaneously.
//
// The pure space algebra is a sound over-approximation for generic
// selector types: it can suggest counterexamples whose type arguments
// are not jointly realizable. This walk collects, for every extractor
// component, the component's declared type against the actual component
// space's type as a subtype obligation, with one fresh unification
// variable per free type parameter, and checks the obligations under
// one consistent substitution. The whole check runs in a single
// unifier scope, so no constraints outlive it.
func (e *Engine) satisfiable(s space.Space) bool {
	u := types.NewUnifier()
	fresh := make(map[*types.TypeParm]*types.TypeVar)

	// generalize replaces free type variables with unification
	// variables, one per underlying parameter.
	var generalize func(t types.Type) types.Type
	generalize = func(t types.Type) types.Type {
		switch t := t.(type) {
		case nil:
			return nil
		case *types.TypeVar:
			v, ok := fresh[t.Def]
			if !ok {
				v = u.Fresh(t.Def.Name, t.Def.Bound)
				fresh[t.Def] = v
			}
			return v
		case *types.DefType:
			d := *t
			d.Args = make([]types.Type, len(t.Args))
			for i, a := range t.Args {
				d.Args[i] = generalize(a)
			}
			return &d
		case *types.OrType:
			return &types.OrType{Left: generalize(t.Left), Right: generalize(t.Right)}
		case *types.AndType:
			return &types.AndType{Left: generalize(t.Left), Right: generalize(t.Right)}
		case *types.ArrayType:
			return &types.ArrayType{Elem: generalize(t.Elem)}
		default:
			return t
		}
	}

	var check func(s space.Space) bool
	check = func(s space.Space) bool {
		switch s := s.(type) {
		case *space.Prod:
			sig := e.Signature(s.Fun, s.Sym, len(s.Args))
			for i, arg := range s.Args {
				want := generalize(sig[i])
				if got := spaceType(arg); got != nil {
					if !u.SubUnify(generalize(got), want) {
						return false
					}
				}
				if !check(arg) {
					return false
				}
			}
			return true
		case *space.Or:
			for _, m := range s.Spaces {
				if !check(m) {
					return false
				}
			}
			return true
		default:
			return true
		}
	}

	return u.Scope(func() bool { return check(s) })
}

// spaceType returns the declared type of a Typ or Prod space,
// or nil if the space has no single declared type.
func spaceType(s space.Space) types.Type {
	switch s := s.(type) {
	case *space.Typ:
		return s.T
	case *space.Prod:
		return s.T
	default:
		return nil
	}
}
