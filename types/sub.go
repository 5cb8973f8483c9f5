package types

import "fmt"

// SubType returns whether a is a subtype of b.
// A nil type indicates an upstream error and is a subtype of anything.
func SubType(a, b Type) bool {
	if a == nil || b == nil {
		return true
	}
	if EqType(a, b) {
		return true
	}
	if bb, ok := b.(*BasicType); ok && bb.Kind == Any {
		return true
	}
	if ab, ok := a.(*BasicType); ok && ab.Kind == Nothing {
		return true
	}

	// Union and intersection rules come before nominal rules
	// so that either side's structure is split first.
	if ao, ok := a.(*OrType); ok {
		return SubType(ao.Left, b) && SubType(ao.Right, b)
	}
	if aa, ok := a.(*AndType); ok {
		if SubType(aa.Left, b) || SubType(aa.Right, b) {
			return true
		}
	}
	if bo, ok := b.(*OrType); ok {
		return SubType(a, bo.Left) || SubType(a, bo.Right)
	}
	if ba, ok := b.(*AndType); ok {
		return SubType(a, ba.Left) && SubType(a, ba.Right)
	}

	switch a := a.(type) {
	case *BasicType:
		return false
	case *ConstType:
		return SubType(a.Under, b)
	case *ArrayType:
		// Arrays are invariant.
		o, ok := b.(*ArrayType)
		return ok && EqType(a.Elem, o.Elem)
	case *TypeVar:
		bound := a.Def.Bound
		if bound == nil {
			return false
		}
		return SubType(bound, b)
	case *DefType:
		if o, ok := b.(*DefType); ok && a.Def == o.Def {
			return argsConform(a.Args, o.Args)
		}
		sub := parmMap(a)
		for _, p := range a.Def.Parents {
			if SubType(SubMap(sub, p), b) {
				return true
			}
		}
		return false
	case *AndType:
		return false
	default:
		panic(fmt.Sprintf("impossible Type type: %T", a))
	}
}

// argsConform returns whether type arguments as conform to bs.
// Arguments are invariant, except that Any on the right
// acts as an open wildcard (the result of erasure)
// and Nothing on the left conforms to anything.
func argsConform(as, bs []Type) bool {
	for i, a := range as {
		b := bs[i]
		if EqType(a, b) {
			continue
		}
		if bb, ok := b.(*BasicType); ok && bb.Kind == Any {
			continue
		}
		if ab, ok := a.(*BasicType); ok && ab.Kind == Nothing {
			continue
		}
		return false
	}
	return true
}

func parmMap(d *DefType) map[*TypeParm]Type {
	sub := make(map[*TypeParm]Type, len(d.Args))
	for i := range d.Def.Parms {
		sub[&d.Def.Parms[i]] = d.Args[i]
	}
	return sub
}

// SubMap returns typ with type variables substituted
// according to sub. Unmapped variables are left in place.
func SubMap(sub map[*TypeParm]Type, typ Type) Type {
	switch typ := typ.(type) {
	case nil:
		return nil
	case *BasicType:
		return typ
	case *ConstType:
		return typ
	case *DefType:
		d := *typ
		d.Args = make([]Type, len(typ.Args))
		for i, arg := range typ.Args {
			d.Args[i] = SubMap(sub, arg)
		}
		return &d
	case *TypeVar:
		if s, ok := sub[typ.Def]; ok {
			return s
		}
		return typ
	case *OrType:
		return &OrType{Left: SubMap(sub, typ.Left), Right: SubMap(sub, typ.Right)}
	case *AndType:
		return &AndType{Left: SubMap(sub, typ.Left), Right: SubMap(sub, typ.Right)}
	case *ArrayType:
		return &ArrayType{Elem: SubMap(sub, typ.Elem)}
	default:
		panic(fmt.Sprintf("impossible Type type: %T", typ))
	}
}

// Erase models runtime-erasure pattern-match semantics:
// type arguments are replaced with the open Any wildcard,
// except inside array types, whose element types are preserved.
func Erase(typ Type) Type {
	switch typ := typ.(type) {
	case nil:
		return nil
	case *DefType:
		d := *typ
		d.Args = make([]Type, len(typ.Args))
		for i := range typ.Args {
			d.Args[i] = AnyType
		}
		return &d
	case *ArrayType:
		return typ
	case *OrType:
		return &OrType{Left: Erase(typ.Left), Right: Erase(typ.Right)}
	case *AndType:
		return &AndType{Left: Erase(typ.Left), Right: Erase(typ.Right)}
	default:
		return typ
	}
}

// HasFreeVar returns whether the type mentions any type variable.
func HasFreeVar(typ Type) bool {
	switch typ := typ.(type) {
	case nil:
		return false
	case *TypeVar:
		return true
	case *DefType:
		for _, arg := range typ.Args {
			if HasFreeVar(arg) {
				return true
			}
		}
		return false
	case *OrType:
		return HasFreeVar(typ.Left) || HasFreeVar(typ.Right)
	case *AndType:
		return HasFreeVar(typ.Left) || HasFreeVar(typ.Right)
	case *ArrayType:
		return HasFreeVar(typ.Elem)
	default:
		return false
	}
}
