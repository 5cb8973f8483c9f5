// Package types implements the nominal type system consumed by the
// pattern-match coverage analyzer: sealed hierarchies of traits,
// classes, case classes, and objects, with generic type parameters,
// union and intersection types, literal singleton types,
// and extractor-based deconstruction.
package types

import (
	"strings"
)

// Type is the interface of all types.
type Type interface {
	// String returns a human-readable string representation
	// appropriate for diagnostic messages.
	String() string
	buildString(w *strings.Builder) *strings.Builder

	eq(Type) bool
}

// BasicKind identifies a built-in type.
type BasicKind int

const (
	Any BasicKind = iota + 1
	Nothing
	Bool
	Int
	String
	Unit
)

// A BasicType is a built-in, non-composite type.
type BasicType struct {
	Kind BasicKind
}

var (
	AnyType     = &BasicType{Kind: Any}
	NothingType = &BasicType{Kind: Nothing}
	BoolType    = &BasicType{Kind: Bool}
	IntType     = &BasicType{Kind: Int}
	StringType  = &BasicType{Kind: String}
	UnitType    = &BasicType{Kind: Unit}
)

// A ConstType is the singleton type of a single literal value.
// Exactly one of the value fields is meaningful,
// determined by Under.Kind.
type ConstType struct {
	Under *BasicType
	Bool  bool
	Int   int64
	Str   string
}

// BoolConst returns the singleton type of a boolean literal.
func BoolConst(b bool) *ConstType {
	return &ConstType{Under: BoolType, Bool: b}
}

// IntConst returns the singleton type of an integer literal.
func IntConst(i int64) *ConstType {
	return &ConstType{Under: IntType, Int: i}
}

// StrConst returns the singleton type of a string literal.
func StrConst(s string) *ConstType {
	return &ConstType{Under: StringType, Str: s}
}

// DefKind identifies what sort of definition a TypeDef is.
type DefKind int

const (
	// Trait is an abstract type with no constructor.
	Trait DefKind = iota + 1
	// Class is a concrete, constructible type.
	Class
	// CaseClass is a class with compiler-synthesized fields
	// and an irrefutable, synthesized extractor.
	CaseClass
	// Object is a singleton value definition.
	Object
)

// A TypeDef is a nominal type definition.
type TypeDef struct {
	Name   string
	Parms  []TypeParm
	Kind   DefKind
	Sealed bool
	Final  bool

	// Parents are the definition's declared supertypes,
	// written in terms of Parms.
	Parents []Type

	// Children are the registered direct structural subtypes.
	// It is populated for every def named as a parent via Implement;
	// decomposition of a Sealed def enumerates it.
	Children []*TypeDef

	// Fields are the case-class fields, in terms of Parms.
	Fields []Field

	// Unapply is the def's custom extractor, if any.
	Unapply *Extractor

	caseExtractor *Extractor
}

// A Field is a named component of a case class.
type Field struct {
	Name string
	Type Type
}

// A TypeParm is a type parameter of a TypeDef or a unification variable.
type TypeParm struct {
	Name string
	// Bound is the parameter's upper bound; nil means Any.
	Bound Type
}

// A TypeVar is a reference to a type parameter.
type TypeVar struct {
	Def *TypeParm
}

// A DefType is an instance of a TypeDef applied to type arguments.
type DefType struct {
	Def  *TypeDef
	Args []Type
}

// Inst returns the def applied to the given type arguments.
// Inst panics if the number of arguments mismatches
// the number of parameters.
func (d *TypeDef) Inst(args ...Type) *DefType {
	if len(args) != len(d.Parms) {
		panic("wrong number of type arguments: " + d.Name)
	}
	return &DefType{Def: d, Args: args}
}

// SelfType returns the def applied to its own parameters' variables.
func (d *TypeDef) SelfType() *DefType {
	args := make([]Type, len(d.Parms))
	for i := range d.Parms {
		args[i] = &TypeVar{Def: &d.Parms[i]}
	}
	return &DefType{Def: d, Args: args}
}

// Implement declares parent as a supertype of child,
// registering child in the parent def's Children.
func Implement(child *TypeDef, parents ...Type) *TypeDef {
	for _, p := range parents {
		child.Parents = append(child.Parents, p)
		if d, ok := p.(*DefType); ok {
			d.Def.Children = append(d.Def.Children, child)
		}
	}
	return child
}

// An OrType is the union of its two operands.
type OrType struct {
	Left, Right Type
}

// An AndType is the intersection of its two operands.
type AndType struct {
	Left, Right Type
}

// An ArrayType is a mutable, fixed-element-type array.
// Array element types survive erasure.
type ArrayType struct {
	Elem Type
}

// ResultShape identifies the shape of an extractor's declared result type.
type ResultShape int

const (
	// BoolResult extractors match or not and bind nothing.
	BoolResult ResultShape = iota + 1
	// OptionResult extractors return an option of the bound components.
	OptionResult
	// SomeResult extractors have a statically Some-shaped result,
	// so they always match when type-correct.
	SomeResult
)

// An Extractor is a named deconstruction used by patterns
// to match and bind a value's components.
type Extractor struct {
	Name string
	// Def is the definition whose type parameters scope
	// Parm and Results.
	Def *TypeDef
	// Parm is the extractor's declared input type, in terms of Def's parms.
	Parm Type
	// Results are the bound component types, in terms of Def's parms.
	// Empty for BoolResult extractors.
	Results []Type
	Shape   ResultShape
	// Seq marks an unapplySeq-style sequence extractor;
	// Results then holds the single element type.
	Seq bool
	// Synthesized marks a compiler-synthesized case-class extractor.
	Synthesized bool
}

// CaseExtractor returns the canonical synthesized extractor of a case class
// (or object). The result is cached so that two patterns naming the same
// case class compare equal by extractor identity.
func CaseExtractor(d *TypeDef) *Extractor {
	if d.caseExtractor == nil {
		ex := &Extractor{
			Name:        d.Name,
			Def:         d,
			Parm:        d.SelfType(),
			Shape:       SomeResult,
			Synthesized: true,
		}
		for _, f := range d.Fields {
			ex.Results = append(ex.Results, f.Type)
		}
		d.caseExtractor = ex
	}
	return d.caseExtractor
}

// Signature resolves the field types of an extractor applied at funTyp
// for the requested arity.
//   - Boolean-returning extractors have an empty signature.
//   - Option-returning (and Some-returning) extractors yield the component
//     types of the wrapped product, or the single wrapped type.
//   - Sequence extractors yield a singleton list of the element type.
//
// funTyp must be an instance of the extractor's definition;
// its type arguments ground the declared component types.
func Signature(funTyp Type, sym *Extractor, arity int) []Type {
	if sym.Shape == BoolResult {
		return nil
	}
	sub := make(map[*TypeParm]Type)
	if d, ok := funTyp.(*DefType); ok && d.Def == sym.Def {
		for i := range d.Def.Parms {
			sub[&d.Def.Parms[i]] = d.Args[i]
		}
	}
	if sym.Seq {
		return []Type{SubMap(sub, sym.Results[0])}
	}
	if len(sym.Results) == 1 && arity > 1 {
		// A single wrapped tuple deconstructed into its components.
		if t, ok := SubMap(sub, sym.Results[0]).(*DefType); ok {
			if n, isTuple := TupleArity(t.Def); isTuple && n == arity {
				return t.Args
			}
		}
	}
	sig := make([]Type, len(sym.Results))
	for i, r := range sym.Results {
		sig[i] = SubMap(sub, r)
	}
	return sig
}
