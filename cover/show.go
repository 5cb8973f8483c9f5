package cover

import (
	"strings"

	"github.com/eaburns/sift/space"
	"github.com/eaburns/sift/types"
)

// Show renders a space as a human-readable example pattern:
// tuples as (_, _, …), cons chains through List(…) sugar with a
// trailing empty list collapsed, case-class products as constructor
// syntax, a decomposed bare type as _: TypeName, and otherwise _.
//
// Show must be called on flattened spaces only. A union here is an
// internal invariant violation, fatal to the analysis of this match;
// it is not a recoverable condition.
func (e *Engine) Show(s space.Space) string {
	return e.show(s, false)
}

func (e *Engine) show(s space.Space, flattenList bool) string {
	switch s := s.(type) {
	case *space.Empty:
		return ""
	case *space.Typ:
		return e.showTyp(s, flattenList)
	case *space.Prod:
		if d, ok := s.T.(*types.DefType); ok {
			if _, isTuple := types.TupleArity(d.Def); isTuple {
				return "(" + e.showArgs(s.Args, false) + ")"
			}
			if d.Def == types.ConsDef {
				inner := e.showConsArgs(s.Args)
				if flattenList {
					return inner
				}
				return "List(" + inner + ")"
			}
		}
		// Constructor syntax for synthesized case-class extractors;
		// generic owner-name rendering for custom extractors.
		return s.Sym.Def.Name + "(" + e.showArgs(s.Args, false) + ")"
	default:
		panic("unflattened union in show")
	}
}

func (e *Engine) showTyp(s *space.Typ, flattenList bool) string {
	switch t := s.T.(type) {
	case *types.ConstType:
		return t.String()
	case *types.DefType:
		switch {
		case t.Def.Kind == types.Object:
			if t.Def == types.NilDef && !flattenList {
				return "List()"
			}
			if t.Def == types.NilDef {
				return ""
			}
			return t.Def.Name
		case t.Def == types.ListDef:
			if flattenList {
				return "_*"
			}
			return "_: " + t.String()
		case t.Def == types.ConsDef:
			if flattenList {
				return "_, _*"
			}
			return "List(_, _*)"
		}
		if n, isTuple := types.TupleArity(t.Def); isTuple {
			return "(" + strings.Repeat("_, ", n-1) + "_)"
		}
	}
	if s.Decomposed {
		return "_: " + s.T.String()
	}
	return "_"
}

func (e *Engine) showArgs(args []space.Space, flattenList bool) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, e.show(a, flattenList))
	}
	return strings.Join(parts, ", ")
}

// showConsArgs renders the head and tail of a cons product,
// flattening the tail into the enclosing List(…) and dropping
// a trailing empty list.
func (e *Engine) showConsArgs(args []space.Space) string {
	head := e.show(args[0], false)
	tail := e.show(args[1], true)
	if tail == "" {
		return head
	}
	return head + ", " + tail
}
