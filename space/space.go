// Package space implements the set algebra underlying pattern-match
// coverage analysis. A Space is a symbolic set of runtime values:
// the values reachable by some pattern or inhabiting some type.
// The algebra is oracle-agnostic: every type-system question is asked
// through the injected Logic interface.
package space

import (
	"strings"

	"github.com/eaburns/sift/types"
)

// Space is the interface of all spaces.
type Space interface {
	String() string
	buildString(w *strings.Builder) *strings.Builder

	eq(Space) bool
	key(w *strings.Builder)
}

// Empty is the empty set of values.
// It is absorbing for intersection and removable in unions.
type Empty struct{}

// A Typ is the set of all values of a type.
type Typ struct {
	T types.Type
	// Decomposed is a display hint only: it marks a Typ that arose
	// from splitting a parent type, and does not affect the algebra.
	Decomposed bool
}

// A Prod is the set of values matched by an extractor applied to
// component subspaces, one per extracted field.
type Prod struct {
	// T is the type of values in the set.
	T types.Type
	// Fun is the extractor's type at this use; two Prods are
	// comparable only if their Syms are identical and Funs equal.
	Fun  types.Type
	Sym  *types.Extractor
	Args []Space
	// Full marks an irrefutable extractor: one that always matches
	// when the scrutinee is type-correct.
	Full bool
}

// An Or is the union of its member spaces.
type Or struct {
	Spaces []Space
}

func (*Empty) eq(o Space) bool {
	_, ok := o.(*Empty)
	return ok
}

func (s *Typ) eq(o Space) bool {
	t, ok := o.(*Typ)
	return ok && types.EqType(s.T, t.T)
}

func (s *Prod) eq(o Space) bool {
	p, ok := o.(*Prod)
	if !ok || s.Sym != p.Sym || len(s.Args) != len(p.Args) ||
		!types.EqType(s.Fun, p.Fun) || !types.EqType(s.T, p.T) {
		return false
	}
	for i, a := range s.Args {
		if !a.eq(p.Args[i]) {
			return false
		}
	}
	return true
}

func (s *Or) eq(o Space) bool {
	u, ok := o.(*Or)
	if !ok || len(s.Spaces) != len(u.Spaces) {
		return false
	}
	for i, a := range s.Spaces {
		if !a.eq(u.Spaces[i]) {
			return false
		}
	}
	return true
}

// Eq returns whether two spaces are structurally equal.
func Eq(a, b Space) bool { return a.eq(b) }

// IsEmpty returns whether s is the Empty space.
func IsEmpty(s Space) bool {
	_, ok := s.(*Empty)
	return ok
}

func (s *Empty) String() string { return s.buildString(new(strings.Builder)).String() }
func (s *Typ) String() string   { return s.buildString(new(strings.Builder)).String() }
func (s *Prod) String() string  { return s.buildString(new(strings.Builder)).String() }
func (s *Or) String() string    { return s.buildString(new(strings.Builder)).String() }

func (s *Empty) buildString(w *strings.Builder) *strings.Builder {
	w.WriteString("Empty")
	return w
}

func (s *Typ) buildString(w *strings.Builder) *strings.Builder {
	w.WriteString("Typ(")
	w.WriteString(s.T.String())
	w.WriteRune(')')
	return w
}

func (s *Prod) buildString(w *strings.Builder) *strings.Builder {
	w.WriteString(s.Sym.Name)
	w.WriteRune('(')
	for i, a := range s.Args {
		if i > 0 {
			w.WriteString(", ")
		}
		a.buildString(w)
	}
	w.WriteRune(')')
	return w
}

func (s *Or) buildString(w *strings.Builder) *strings.Builder {
	for i, a := range s.Spaces {
		if i > 0 {
			w.WriteString(" | ")
		}
		a.buildString(w)
	}
	return w
}
