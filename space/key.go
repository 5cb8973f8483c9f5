package space

import (
	"fmt"
	"strings"

	"github.com/eaburns/sift/types"
)

// Memoization keys are structural hashes of spaces.
// Nominal definitions and extractors are keyed by identity,
// not by name, so distinct defs never collide.

func (*Empty) key(w *strings.Builder) {
	w.WriteRune('e')
}

func (s *Typ) key(w *strings.Builder) {
	w.WriteRune('t')
	keyType(w, s.T)
}

func (s *Prod) key(w *strings.Builder) {
	fmt.Fprintf(w, "p%p(", s.Sym)
	keyType(w, s.T)
	w.WriteRune(';')
	keyType(w, s.Fun)
	w.WriteRune(';')
	for _, a := range s.Args {
		a.key(w)
		w.WriteRune(',')
	}
	w.WriteRune(')')
}

func (s *Or) key(w *strings.Builder) {
	w.WriteString("o(")
	for _, a := range s.Spaces {
		a.key(w)
		w.WriteRune(',')
	}
	w.WriteRune(')')
}

func keyType(w *strings.Builder, t types.Type) {
	switch t := t.(type) {
	case nil:
		w.WriteRune('n')
	case *types.BasicType:
		fmt.Fprintf(w, "b%d", t.Kind)
	case *types.ConstType:
		w.WriteRune('c')
		w.WriteString(t.String())
	case *types.DefType:
		fmt.Fprintf(w, "d%p[", t.Def)
		for _, a := range t.Args {
			keyType(w, a)
			w.WriteRune(',')
		}
		w.WriteRune(']')
	case *types.TypeVar:
		fmt.Fprintf(w, "v%p", t.Def)
	case *types.OrType:
		w.WriteString("or(")
		keyType(w, t.Left)
		w.WriteRune(',')
		keyType(w, t.Right)
		w.WriteRune(')')
	case *types.AndType:
		w.WriteString("and(")
		keyType(w, t.Left)
		w.WriteRune(',')
		keyType(w, t.Right)
		w.WriteRune(')')
	case *types.ArrayType:
		w.WriteString("a(")
		keyType(w, t.Elem)
		w.WriteRune(')')
	default:
		panic(fmt.Sprintf("impossible Type type: %T", t))
	}
}

func keyOf(a, b Space) [2]string {
	var wa, wb strings.Builder
	a.key(&wa)
	b.key(&wb)
	return [2]string{wa.String(), wb.String()}
}
