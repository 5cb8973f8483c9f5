package types

import "strconv"

// Built-in definitions available to every program:
// Option with Some and None, List with Cons and Nil,
// and the cached family of tuple case classes.
var (
	OptionDef *TypeDef
	SomeDef   *TypeDef
	NoneDef   *TypeDef

	ListDef *TypeDef
	ConsDef *TypeDef
	NilDef  *TypeDef
)

var tupleDefs = map[int]*TypeDef{}

func init() {
	OptionDef = &TypeDef{
		Name:   "Option",
		Parms:  []TypeParm{{Name: "T"}},
		Kind:   Trait,
		Sealed: true,
	}
	SomeDef = &TypeDef{
		Name:  "Some",
		Parms: []TypeParm{{Name: "T"}},
		Kind:  CaseClass,
		Final: true,
	}
	SomeDef.Fields = []Field{{Name: "value", Type: &TypeVar{Def: &SomeDef.Parms[0]}}}
	Implement(SomeDef, OptionDef.Inst(&TypeVar{Def: &SomeDef.Parms[0]}))
	NoneDef = &TypeDef{Name: "None", Kind: Object, Final: true}
	Implement(NoneDef, OptionDef.Inst(NothingType))

	ListDef = &TypeDef{
		Name:   "List",
		Parms:  []TypeParm{{Name: "T"}},
		Kind:   Trait,
		Sealed: true,
	}
	ConsDef = &TypeDef{
		Name:  "Cons",
		Parms: []TypeParm{{Name: "T"}},
		Kind:  CaseClass,
		Final: true,
	}
	elem := &TypeVar{Def: &ConsDef.Parms[0]}
	ConsDef.Fields = []Field{
		{Name: "head", Type: elem},
		{Name: "tail", Type: ListDef.Inst(elem)},
	}
	Implement(ConsDef, ListDef.Inst(elem))
	NilDef = &TypeDef{Name: "Nil", Kind: Object, Final: true}
	Implement(NilDef, ListDef.Inst(NothingType))
}

// OptionOf returns Option[t].
func OptionOf(t Type) *DefType { return OptionDef.Inst(t) }

// SomeOf returns Some[t].
func SomeOf(t Type) *DefType { return SomeDef.Inst(t) }

// ListOf returns List[t].
func ListOf(t Type) *DefType { return ListDef.Inst(t) }

// ConsOf returns Cons[t].
func ConsOf(t Type) *DefType { return ConsDef.Inst(t) }

// NilType returns the Nil object's type.
func NilType() *DefType { return NilDef.Inst() }

// TupleDef returns the canonical n-ary tuple case class.
func TupleDef(n int) *TypeDef {
	if n < 2 {
		panic("impossible tuple arity")
	}
	if d, ok := tupleDefs[n]; ok {
		return d
	}
	d := &TypeDef{
		Name:  "Tuple" + strconv.Itoa(n),
		Kind:  CaseClass,
		Final: true,
	}
	for i := 0; i < n; i++ {
		d.Parms = append(d.Parms, TypeParm{Name: "T" + strconv.Itoa(i+1)})
	}
	for i := 0; i < n; i++ {
		d.Fields = append(d.Fields, Field{
			Name: "_" + strconv.Itoa(i+1),
			Type: &TypeVar{Def: &d.Parms[i]},
		})
	}
	tupleDefs[n] = d
	return d
}

// TupleOf returns the tuple type of the given element types.
func TupleOf(elems ...Type) *DefType {
	return TupleDef(len(elems)).Inst(elems...)
}

// TupleArity returns the arity of a tuple def, or false if d is not one.
func TupleArity(d *TypeDef) (int, bool) {
	n := len(d.Parms)
	if n >= 2 && tupleDefs[n] == d {
		return n, true
	}
	return 0, false
}
