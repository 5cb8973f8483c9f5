// Package cover analyzes match expressions for exhaustiveness and
// unreachable cases. It projects case patterns into spaces,
// subtracts their union from the selector type's space,
// and reports the survivors as missing cases.
package cover

import (
	"github.com/eaburns/sift/space"
	"github.com/eaburns/sift/types"
)

// An Engine analyzes the match expressions of one compilation unit.
// It implements space.Logic over the types package.
// Engines are not safe for concurrent use; each analysis is one
// synchronous pass, and algebra state is reset per match.
type Engine struct {
	alg *space.Algebra
}

// New returns a new Engine.
func New() *Engine {
	e := &Engine{}
	e.alg = space.New(e)
	return e
}

func (e *Engine) IsSubType(a, b types.Type) bool   { return types.SubType(a, b) }
func (e *Engine) IsEqualType(a, b types.Type) bool { return types.EqType(a, b) }

// CanDecompose returns whether a type splits into a finite,
// exhaustive list of component spaces: sealed trait hierarchies,
// union types, Bool, and intersections with a decomposable operand.
func (e *Engine) CanDecompose(t types.Type) bool {
	switch t := t.(type) {
	case *types.BasicType:
		return t.Kind == types.Bool
	case *types.OrType:
		return true
	case *types.AndType:
		return e.CanDecompose(t.Left) || e.CanDecompose(t.Right)
	case *types.DefType:
		return t.Def.Sealed && t.Def.Kind == types.Trait
	default:
		return false
	}
}

// Decompose splits a decomposable type into its component spaces.
// Sealed hierarchy children are refined to the most specific applied
// form consistent with the decomposed type; children that cannot
// produce such a value are dropped.
func (e *Engine) Decompose(t types.Type) []space.Space {
	tr := trEnter("decompose %s", t)
	defer tr.done()

	switch t := t.(type) {
	case *types.AndType:
		i := e.alg.Intersect(&space.Typ{T: t.Left, Decomposed: true}, &space.Typ{T: t.Right, Decomposed: true})
		switch i := e.alg.Simplify(i, false).(type) {
		case *space.Empty:
			return nil
		case *space.Or:
			return i.Spaces
		default:
			return []space.Space{i}
		}
	case *types.OrType:
		return []space.Space{
			&space.Typ{T: t.Left, Decomposed: true},
			&space.Typ{T: t.Right, Decomposed: true},
		}
	case *types.BasicType:
		if t.Kind != types.Bool {
			panic("impossible decomposition")
		}
		return []space.Space{
			&space.Typ{T: types.BoolConst(true), Decomposed: true},
			&space.Typ{T: types.BoolConst(false), Decomposed: true},
		}
	case *types.DefType:
		var spaces []space.Space
		for _, child := range t.Def.Children {
			refined, ok := e.refine(child, t)
			if !ok {
				continue
			}
			tr.trace("child %s refines to %s", child.Name, refined)
			spaces = append(spaces, &space.Typ{T: refined, Decomposed: true})
		}
		return spaces
	default:
		panic("impossible decomposition")
	}
}

// refine computes the most specific applied form of child consistent
// with being a subtype of parent. Fresh unification variables stand for
// the child's free type parameters; variables still undetermined after
// solving resolve to the open Any wildcard, widening the result rather
// than rejecting it.
func (e *Engine) refine(child *types.TypeDef, parent types.Type) (types.Type, bool) {
	if len(child.Parms) == 0 {
		// A singleton or unparameterized case matches as-is.
		t := child.Inst()
		if !types.SubType(t, parent) && !types.CanIntersect(t, parent) {
			return nil, false
		}
		return t, true
	}

	u := types.NewUnifier()
	var refined types.Type
	ok := u.Scope(func() bool {
		args := make([]types.Type, len(child.Parms))
		for i := range child.Parms {
			args[i] = u.Fresh(child.Parms[i].Name, child.Parms[i].Bound)
		}
		applied := child.Inst(args...)
		if !u.SubUnify(applied, parent) {
			return false
		}
		refined = u.ResolveOrAny(applied)
		return true
	})
	if !ok {
		// Symmetric direction: the parent's own parameter bounds,
		// not the child's, may be what must be solved.
		if pd, isDef := parent.(*types.DefType); isDef && len(pd.Def.Parms) > 0 {
			ok = u.Scope(func() bool {
				pargs := make([]types.Type, len(pd.Def.Parms))
				for i := range pd.Def.Parms {
					pargs[i] = u.Fresh(pd.Def.Parms[i].Name, pd.Def.Parms[i].Bound)
				}
				openParent := pd.Def.Inst(pargs...)
				args := make([]types.Type, len(child.Parms))
				for i := range child.Parms {
					args[i] = u.Fresh(child.Parms[i].Name, child.Parms[i].Bound)
				}
				applied := child.Inst(args...)
				if !u.SubUnify(applied, openParent) {
					return false
				}
				refined = u.ResolveOrAny(applied)
				return true
			})
		}
	}
	if !ok {
		return nil, false
	}
	// Guard against vacuous intersections formed during refinement.
	if !types.Inhabited(&types.AndType{Left: refined, Right: parent}) {
		return nil, false
	}
	return refined, true
}

func (e *Engine) Signature(fun types.Type, sym *types.Extractor, arity int) []types.Type {
	return types.Signature(fun, sym, arity)
}

// IntersectUnrelated resolves the intersection of two unrelated,
// non-decomposable atomic types via the implementability analysis:
// Empty unless some instantiable subtype could implement both.
func (e *Engine) IntersectUnrelated(a, b *space.Typ) space.Space {
	if !types.CanIntersect(a.T, b.T) {
		return &space.Empty{}
	}
	return &space.Typ{T: &types.AndType{Left: a.T, Right: b.T}, Decomposed: true}
}
