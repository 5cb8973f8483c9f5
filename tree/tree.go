// Package tree defines the typed match trees checked by the cover package.
// The parser and typer that produce these trees are outside this module;
// tests construct them directly.
package tree

import (
	"github.com/eaburns/sift/loc"
	"github.com/eaburns/sift/types"
)

// A Match is a match expression: a selector and its cases, in source order.
type Match struct {
	// Sel is the static type of the selector expression.
	Sel   types.Type
	Cases []*Case
	L     loc.Loc
}

func (m *Match) Loc() loc.Loc { return m.L }

// A Case is one case of a Match.
type Case struct {
	Pat Pat
	// Guard is whether the case has a guard expression.
	// Guard expressions are not analyzed; a guarded case
	// cannot be proven to always succeed.
	Guard bool
	L     loc.Loc
}

func (c *Case) Loc() loc.Loc { return c.L }

// Pat is the interface of all patterns.
type Pat interface {
	Loc() loc.Loc
}

// A LitPat matches a literal constant.
type LitPat struct {
	Val *types.ConstType
	L   loc.Loc
}

func (p *LitPat) Loc() loc.Loc { return p.L }

// A VarPat is a variable or wildcard pattern;
// it matches any value of its static type.
type VarPat struct {
	Name string
	Type types.Type
	L    loc.Loc
}

func (p *VarPat) Loc() loc.Loc { return p.L }

// Wild returns a wildcard pattern of the given static type.
func Wild(typ types.Type) *VarPat {
	return &VarPat{Name: "_", Type: typ}
}

// A StablePat is a backquoted identifier or selector pattern:
// a stable reference compared by equality, never decomposed.
type StablePat struct {
	Type types.Type
	L    loc.Loc
}

func (p *StablePat) Loc() loc.Loc { return p.L }

// A BindPat binds a name to the value matched by its inner pattern.
// The bound name carries no coverage information.
type BindPat struct {
	Name string
	Pat  Pat
	L    loc.Loc
}

func (p *BindPat) Loc() loc.Loc { return p.L }

// An AltPat matches if any alternative matches.
type AltPat struct {
	Pats []Pat
	L    loc.Loc
}

func (p *AltPat) Loc() loc.Loc { return p.L }

// An ApplyPat is an extractor application Fun(p1, …, pn).
type ApplyPat struct {
	// Fun is the extractor's applied type at this use.
	Fun types.Type
	Sym *types.Extractor
	// Type is the static type of values the pattern matches.
	Type types.Type
	Args []Pat
	// Rest is whether the last argument of a sequence pattern
	// is a rest binder (`xs*`).
	Rest bool
	L    loc.Loc
}

func (p *ApplyPat) Loc() loc.Loc { return p.L }

// A TypedPat is a type test p: T.
type TypedPat struct {
	Pat  Pat
	Type types.Type
	L    loc.Loc
}

func (p *TypedPat) Loc() loc.Loc { return p.L }

// CasePat returns the synthesized case-class extractor pattern
// Name(args…) for a case class applied at typ.
func CasePat(typ *types.DefType, args ...Pat) *ApplyPat {
	return &ApplyPat{
		Fun:  typ,
		Sym:  types.CaseExtractor(typ.Def),
		Type: typ,
		Args: args,
	}
}

// TuplePat returns the tuple pattern (p1, …, pn) whose elements
// have the given static types.
func TuplePat(elems []types.Type, args ...Pat) *ApplyPat {
	return CasePat(types.TupleOf(elems...), args...)
}
