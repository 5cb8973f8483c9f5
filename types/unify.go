package types

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/go-set/v3"
)

// A Unifier is an explicit, scoped constraint store.
// Fresh unification variables and bindings are introduced inside a Scope
// and are rolled back when the scope exits, regardless of outcome,
// so constraints never leak between independent checks.
type Unifier struct {
	parms *set.Set[*TypeParm]
	bind  map[*TypeParm]Type

	// trail records parameters introduced or bound, newest last,
	// so Scope can undo them.
	trail []trailEntry

	nextVar int
}

type trailEntry struct {
	parm  *TypeParm
	fresh bool
}

// NewUnifier returns an empty Unifier.
func NewUnifier() *Unifier {
	return &Unifier{
		parms: set.New[*TypeParm](8),
		bind:  make(map[*TypeParm]Type),
	}
}

// Scope runs f with transactional semantics:
// variables and bindings introduced by f are discarded when Scope returns.
// Scope returns f's result. Results that must survive the scope
// must be resolved (see Resolve, ResolveOrAny) before f returns.
func (u *Unifier) Scope(f func() bool) bool {
	mark := len(u.trail)
	defer func() {
		for i := len(u.trail) - 1; i >= mark; i-- {
			e := u.trail[i]
			if e.fresh {
				u.parms.Remove(e.parm)
			}
			delete(u.bind, e.parm)
		}
		u.trail = u.trail[:mark]
	}()
	return f()
}

// Fresh introduces a new unification variable with the given
// name hint and upper bound (nil for Any).
func (u *Unifier) Fresh(name string, bound Type) *TypeVar {
	u.nextVar++
	p := &TypeParm{Name: "$" + name + strconv.Itoa(u.nextVar), Bound: bound}
	u.parms.Insert(p)
	u.trail = append(u.trail, trailEntry{parm: p, fresh: true})
	return &TypeVar{Def: p}
}

func (u *Unifier) isVar(t Type) (*TypeParm, bool) {
	v, ok := t.(*TypeVar)
	if !ok || !u.parms.Contains(v.Def) {
		return nil, false
	}
	return v.Def, true
}

func (u *Unifier) bindVar(p *TypeParm, t Type) bool {
	if prev, ok := u.bind[p]; ok {
		return u.Unify(prev, t)
	}
	if v, ok := t.(*TypeVar); ok && v.Def == p {
		return true
	}
	if p.Bound != nil && !SubType(u.Resolve(t), p.Bound) {
		return false
	}
	u.bind[p] = t
	u.trail = append(u.trail, trailEntry{parm: p})
	return true
}

// walk resolves the head of t through current bindings.
func (u *Unifier) walk(t Type) Type {
	for {
		v, ok := t.(*TypeVar)
		if !ok {
			return t
		}
		b, ok := u.bind[v.Def]
		if !ok {
			return t
		}
		t = b
	}
}

// Unify attempts first-order unification of a and b,
// binding variables registered with the Unifier on either side.
func (u *Unifier) Unify(a, b Type) bool {
	a, b = u.walk(a), u.walk(b)
	if p, ok := u.isVar(a); ok {
		return u.bindVar(p, b)
	}
	if p, ok := u.isVar(b); ok {
		return u.bindVar(p, a)
	}
	switch a := a.(type) {
	case nil:
		return true
	case *BasicType:
		return EqType(a, b)
	case *ConstType:
		return EqType(a, b)
	case *TypeVar:
		return EqType(a, b)
	case *DefType:
		o, ok := b.(*DefType)
		if !ok || a.Def != o.Def {
			return false
		}
		for i := range a.Args {
			if !u.Unify(a.Args[i], o.Args[i]) {
				return false
			}
		}
		return true
	case *OrType:
		o, ok := b.(*OrType)
		return ok && u.Unify(a.Left, o.Left) && u.Unify(a.Right, o.Right)
	case *AndType:
		o, ok := b.(*AndType)
		return ok && u.Unify(a.Left, o.Left) && u.Unify(a.Right, o.Right)
	case *ArrayType:
		o, ok := b.(*ArrayType)
		return ok && u.Unify(a.Elem, o.Elem)
	default:
		panic(fmt.Sprintf("impossible Type type: %T", a))
	}
}

// SubUnify attempts to solve the subtype obligation a <: b,
// binding variables registered with the Unifier as needed.
// It is a practical first-order approximation:
// a variable meeting a concrete type on either side is bound to it,
// and nominal obligations walk a's parents.
func (u *Unifier) SubUnify(a, b Type) bool {
	a, b = u.walk(a), u.walk(b)
	if p, ok := u.isVar(a); ok {
		return u.bindVar(p, b)
	}
	if p, ok := u.isVar(b); ok {
		return u.bindVar(p, a)
	}
	if ao, ok := a.(*OrType); ok {
		return u.SubUnify(ao.Left, b) && u.SubUnify(ao.Right, b)
	}
	if bo, ok := b.(*OrType); ok {
		return u.SubUnify(a, bo.Left) || u.SubUnify(a, bo.Right)
	}
	if ba, ok := b.(*AndType); ok {
		return u.SubUnify(a, ba.Left) && u.SubUnify(a, ba.Right)
	}
	if aa, ok := a.(*AndType); ok {
		return u.SubUnify(aa.Left, b) || u.SubUnify(aa.Right, b)
	}
	if ad, ok := a.(*DefType); ok {
		if bd, ok := b.(*DefType); ok {
			if ad.Def == bd.Def {
				return u.subUnifyArgs(ad.Args, bd.Args)
			}
			sub := parmMap(ad)
			for _, p := range ad.Def.Parents {
				if u.SubUnify(SubMap(sub, p), b) {
					return true
				}
			}
			return false
		}
	}
	return SubType(u.Resolve(a), u.Resolve(b))
}

func (u *Unifier) subUnifyArgs(as, bs []Type) bool {
	for i := range as {
		a, b := u.walk(as[i]), u.walk(bs[i])
		if p, ok := u.isVar(a); ok {
			if !u.bindVar(p, b) {
				return false
			}
			continue
		}
		if p, ok := u.isVar(b); ok {
			if !u.bindVar(p, a) {
				return false
			}
			continue
		}
		if !argsConform([]Type{u.Resolve(a)}, []Type{u.Resolve(b)}) && !u.Unify(a, b) {
			return false
		}
	}
	return true
}

// Resolve substitutes current bindings into t.
// Unbound variables are left in place.
func (u *Unifier) Resolve(t Type) Type {
	switch t := t.(type) {
	case nil:
		return nil
	case *TypeVar:
		if b, ok := u.bind[t.Def]; ok {
			return u.Resolve(b)
		}
		return t
	case *DefType:
		d := *t
		d.Args = make([]Type, len(t.Args))
		for i, arg := range t.Args {
			d.Args[i] = u.Resolve(arg)
		}
		return &d
	case *OrType:
		return &OrType{Left: u.Resolve(t.Left), Right: u.Resolve(t.Right)}
	case *AndType:
		return &AndType{Left: u.Resolve(t.Left), Right: u.Resolve(t.Right)}
	case *ArrayType:
		return &ArrayType{Elem: u.Resolve(t.Elem)}
	default:
		return t
	}
}

// ResolveOrAny substitutes current bindings into t,
// resolving variables that remain undetermined to the open Any wildcard.
// This widens the result rather than rejecting it.
func (u *Unifier) ResolveOrAny(t Type) Type {
	switch t := t.(type) {
	case nil:
		return nil
	case *TypeVar:
		if b, ok := u.bind[t.Def]; ok {
			return u.ResolveOrAny(b)
		}
		if u.parms.Contains(t.Def) {
			return AnyType
		}
		return t
	case *DefType:
		d := *t
		d.Args = make([]Type, len(t.Args))
		for i, arg := range t.Args {
			d.Args[i] = u.ResolveOrAny(arg)
		}
		return &d
	case *OrType:
		return &OrType{Left: u.ResolveOrAny(t.Left), Right: u.ResolveOrAny(t.Right)}
	case *AndType:
		return &AndType{Left: u.ResolveOrAny(t.Left), Right: u.ResolveOrAny(t.Right)}
	case *ArrayType:
		return &ArrayType{Elem: u.ResolveOrAny(t.Elem)}
	default:
		return t
	}
}
