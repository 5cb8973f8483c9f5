package types

// EqType returns whether two types are equal.
// A nil type indicates an upstream error; it is equal to anything
// so that one error does not cascade.
func EqType(a, b Type) bool {
	if a == nil || b == nil {
		return true
	}
	return a.eq(b)
}

func (t *BasicType) eq(other Type) bool {
	o, ok := other.(*BasicType)
	return ok && t.Kind == o.Kind
}

func (t *ConstType) eq(other Type) bool {
	o, ok := other.(*ConstType)
	if !ok || t.Under.Kind != o.Under.Kind {
		return false
	}
	switch t.Under.Kind {
	case Bool:
		return t.Bool == o.Bool
	case Int:
		return t.Int == o.Int
	case String:
		return t.Str == o.Str
	default:
		panic("impossible const kind")
	}
}

func (t *DefType) eq(other Type) bool {
	o, ok := other.(*DefType)
	if !ok || o.Def != t.Def || len(o.Args) != len(t.Args) {
		return false
	}
	for i, tArg := range t.Args {
		if !EqType(tArg, o.Args[i]) {
			return false
		}
	}
	return true
}

func (t *TypeVar) eq(other Type) bool {
	o, ok := other.(*TypeVar)
	return ok && t.Def == o.Def
}

func (t *OrType) eq(other Type) bool {
	o, ok := other.(*OrType)
	return ok && EqType(t.Left, o.Left) && EqType(t.Right, o.Right)
}

func (t *AndType) eq(other Type) bool {
	o, ok := other.(*AndType)
	return ok && EqType(t.Left, o.Left) && EqType(t.Right, o.Right)
}

func (t *ArrayType) eq(other Type) bool {
	o, ok := other.(*ArrayType)
	return ok && EqType(t.Elem, o.Elem)
}
