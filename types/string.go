package types

import (
	"strconv"
	"strings"
)

func (t *BasicType) String() string { return t.buildString(new(strings.Builder)).String() }
func (t *ConstType) String() string { return t.buildString(new(strings.Builder)).String() }
func (t *DefType) String() string   { return t.buildString(new(strings.Builder)).String() }
func (t *TypeVar) String() string   { return t.buildString(new(strings.Builder)).String() }
func (t *OrType) String() string    { return t.buildString(new(strings.Builder)).String() }
func (t *AndType) String() string   { return t.buildString(new(strings.Builder)).String() }
func (t *ArrayType) String() string { return t.buildString(new(strings.Builder)).String() }

func (t *BasicType) buildString(w *strings.Builder) *strings.Builder {
	switch t.Kind {
	case Any:
		w.WriteString("Any")
	case Nothing:
		w.WriteString("Nothing")
	case Bool:
		w.WriteString("Bool")
	case Int:
		w.WriteString("Int")
	case String:
		w.WriteString("String")
	case Unit:
		w.WriteString("Unit")
	default:
		panic("impossible basic kind")
	}
	return w
}

func (t *ConstType) buildString(w *strings.Builder) *strings.Builder {
	switch t.Under.Kind {
	case Bool:
		w.WriteString(strconv.FormatBool(t.Bool))
	case Int:
		w.WriteString(strconv.FormatInt(t.Int, 10))
	case String:
		w.WriteString(strconv.Quote(t.Str))
	default:
		panic("impossible const kind")
	}
	return w
}

func (t *DefType) buildString(w *strings.Builder) *strings.Builder {
	w.WriteString(t.Def.Name)
	if len(t.Args) > 0 {
		w.WriteRune('[')
		for i, a := range t.Args {
			if i > 0 {
				w.WriteString(", ")
			}
			a.buildString(w)
		}
		w.WriteRune(']')
	}
	return w
}

func (t *TypeVar) buildString(w *strings.Builder) *strings.Builder {
	w.WriteString(t.Def.Name)
	return w
}

func (t *OrType) buildString(w *strings.Builder) *strings.Builder {
	t.Left.buildString(w)
	w.WriteString(" | ")
	t.Right.buildString(w)
	return w
}

func (t *AndType) buildString(w *strings.Builder) *strings.Builder {
	t.Left.buildString(w)
	w.WriteString(" & ")
	t.Right.buildString(w)
	return w
}

func (t *ArrayType) buildString(w *strings.Builder) *strings.Builder {
	w.WriteString("Array[")
	t.Elem.buildString(w)
	w.WriteRune(']')
	return w
}
