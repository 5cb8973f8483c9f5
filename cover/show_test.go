package cover

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eaburns/sift/space"
	"github.com/eaburns/sift/types"
)

func consProd(elem types.Type, head, tail space.Space) *space.Prod {
	cons := types.ConsOf(elem)
	return &space.Prod{
		T:    cons,
		Fun:  cons,
		Sym:  types.CaseExtractor(types.ConsDef),
		Args: []space.Space{head, tail},
		Full: true,
	}
}

func tupleProd(elems []types.Type, args ...space.Space) *space.Prod {
	tup := types.TupleOf(elems...)
	return &space.Prod{
		T:    tup,
		Fun:  tup,
		Sym:  types.CaseExtractor(tup.Def),
		Args: args,
		Full: true,
	}
}

func TestShow(t *testing.T) {
	shape, circle, _ := shapes()
	one := &space.Typ{T: types.IntConst(1)}
	two := &space.Typ{T: types.IntConst(2)}
	wildInt := &space.Typ{T: types.IntType}
	tests := []struct {
		s    space.Space
		want string
	}{
		{&space.Empty{}, ""},
		{&space.Typ{T: types.BoolConst(true)}, "true"},
		{&space.Typ{T: types.IntConst(3)}, "3"},
		{&space.Typ{T: types.StrConst("hi")}, `"hi"`},
		{&space.Typ{T: shape.Inst()}, "_"},
		{&space.Typ{T: shape.Inst(), Decomposed: true}, "_: Shape"},
		{&space.Typ{T: types.NilType()}, "List()"},
		{&space.Typ{T: types.NoneDef.Inst()}, "None"},
		{&space.Typ{T: types.ListOf(types.IntType)}, "_: List[Int]"},
		{&space.Typ{T: types.ConsOf(types.IntType)}, "List(_, _*)"},
		{&space.Typ{T: types.TupleOf(types.IntType, types.BoolType)}, "(_, _)"},
		{
			tupleProd([]types.Type{types.BoolType, types.IntType},
				&space.Typ{T: types.BoolConst(true)}, wildInt),
			"(true, _)",
		},
		{
			consProd(types.IntType, one,
				consProd(types.IntType, two, &space.Typ{T: types.NilType()})),
			"List(1, 2)",
		},
		{
			consProd(types.IntType, one, &space.Typ{T: types.ListOf(types.IntType)}),
			"List(1, _*)",
		},
		{
			consProd(types.IntType, one,
				consProd(types.IntType, two, &space.Typ{T: types.ListOf(types.IntType)})),
			"List(1, 2, _*)",
		},
		{
			&space.Prod{
				T:    circle.Inst(),
				Fun:  circle.Inst(),
				Sym:  types.CaseExtractor(circle),
				Args: []space.Space{one},
				Full: true,
			},
			"Circle(1)",
		},
	}
	e := New()
	for _, test := range tests {
		require.Equal(t, test.want, e.Show(test.s), "Show(%s)", test.s)
	}
}

func TestShowPanicsOnUnion(t *testing.T) {
	e := New()
	u := &space.Or{Spaces: []space.Space{
		&space.Typ{T: types.BoolConst(true)},
		&space.Typ{T: types.BoolConst(false)},
	}}
	require.Panics(t, func() { e.Show(u) })
}
