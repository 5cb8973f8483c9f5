package cover

import (
	"github.com/eaburns/sift/space"
	"github.com/eaburns/sift/tree"
	"github.com/eaburns/sift/types"
)

// project maps a surface pattern into the space of values it matches.
// Unrecognized pattern shapes project to Empty: a fail-safe that can
// only cause missed reports, never spurious ones.
func (e *Engine) project(p tree.Pat) space.Space {
	switch p := p.(type) {
	case *tree.LitPat:
		return &space.Typ{T: p.Val}
	case *tree.VarPat:
		return &space.Typ{T: p.Type}
	case *tree.StablePat:
		return &space.Typ{T: p.Type}
	case *tree.BindPat:
		return e.project(p.Pat)
	case *tree.AltPat:
		members := make([]space.Space, len(p.Pats))
		for i, alt := range p.Pats {
			members[i] = e.project(alt)
		}
		return &space.Or{Spaces: members}
	case *tree.ApplyPat:
		if p.Sym.Seq {
			return e.projectSeq(p)
		}
		args := make([]space.Space, len(p.Args))
		for i, arg := range p.Args {
			args[i] = e.project(arg)
		}
		return &space.Prod{
			T:    p.Type,
			Fun:  p.Fun,
			Sym:  p.Sym,
			Args: args,
			Full: irrefutable(p),
		}
	case *tree.TypedPat:
		if inner, ok := p.Pat.(*tree.ApplyPat); ok {
			// A type ascription directly wrapping an extractor
			// adds no coverage information.
			return e.project(inner)
		}
		return &space.Typ{T: types.Erase(p.Type), Decomposed: true}
	default:
		return &space.Empty{}
	}
}

// projectSeq projects a sequence pattern p1, …, pn, rest* as a
// right-fold of cons-shaped products: Cons(p1, Cons(p2, …, zero)),
// terminated by the empty sequence or, given a trailing rest binder,
// by the space of every list of the element type.
func (e *Engine) projectSeq(p *tree.ApplyPat) space.Space {
	sig := types.Signature(p.Fun, p.Sym, len(p.Args))
	elem := sig[0]

	pats := p.Args
	var zero space.Space
	if p.Rest {
		pats = pats[:len(pats)-1]
		zero = &space.Typ{T: types.ListOf(elem)}
	} else {
		zero = &space.Typ{T: types.NilType()}
	}

	s := zero
	for i := len(pats) - 1; i >= 0; i-- {
		cons := types.ConsOf(elem)
		s = &space.Prod{
			T:    cons,
			Fun:  cons,
			Sym:  types.CaseExtractor(types.ConsDef),
			Args: []space.Space{e.project(pats[i]), s},
			Full: true,
		}
	}
	return s
}

// irrefutable returns whether an extractor always matches values of its
// declared input type: its static result type is Some-shaped or it is a
// compiler-synthesized case-class extractor. An option-returning
// extractor may fail however many components it binds, so its products
// are never full.
func irrefutable(p *tree.ApplyPat) bool {
	return p.Sym.Synthesized || p.Sym.Shape == types.SomeResult
}
