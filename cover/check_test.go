package cover

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eaburns/sift/loc"
	"github.com/eaburns/sift/space"
	"github.com/eaburns/sift/tree"
	"github.com/eaburns/sift/types"
)

// shapes returns sealed trait Shape with case classes Circle and Square.
func shapes() (shape, circle, square *types.TypeDef) {
	shape = &types.TypeDef{Name: "Shape", Kind: types.Trait, Sealed: true}
	circle = &types.TypeDef{Name: "Circle", Kind: types.CaseClass, Final: true,
		Fields: []types.Field{{Name: "r", Type: types.IntType}}}
	square = &types.TypeDef{Name: "Square", Kind: types.CaseClass, Final: true,
		Fields: []types.Field{{Name: "s", Type: types.IntType}}}
	types.Implement(circle, shape.Inst())
	types.Implement(square, shape.Inst())
	return shape, circle, square
}

func typedWild(t types.Type) tree.Pat {
	return &tree.TypedPat{Pat: tree.Wild(t), Type: t}
}

func lit(c *types.ConstType) tree.Pat { return &tree.LitPat{Val: c} }

// listSeq is the unapplySeq-style extractor behind List(…) patterns.
func listSeq() *types.Extractor {
	return &types.Extractor{
		Name:    "List",
		Def:     types.ListDef,
		Parm:    types.ListDef.SelfType(),
		Results: []types.Type{&types.TypeVar{Def: &types.ListDef.Parms[0]}},
		Shape:   types.SomeResult,
		Seq:     true,
	}
}

func matchOf(sel types.Type, pats ...tree.Pat) *tree.Match {
	m := &tree.Match{Sel: sel}
	for _, p := range pats {
		m.Cases = append(m.Cases, &tree.Case{Pat: p})
	}
	return m
}

func TestExhaustivitySealedTrait(t *testing.T) {
	shape, circle, _ := shapes()
	// match (s: Shape) { case _: Circle => } misses Square.
	m := matchOf(shape.Inst(), typedWild(circle.Inst()))
	w := New().CheckExhaustivity(m)
	require.NotNil(t, w)
	require.Contains(t, w.Msg, "non-exhaustive match")
	require.Contains(t, w.Msg, "Square")
	require.NotContains(t, w.Msg, "Circle")
}

func TestExhaustivitySealedTraitCovered(t *testing.T) {
	shape, circle, square := shapes()
	m := matchOf(shape.Inst(), typedWild(circle.Inst()), typedWild(square.Inst()))
	require.Nil(t, New().CheckExhaustivity(m))
}

func TestExhaustivityDecomposePartition(t *testing.T) {
	// The decomposition of a sealed trait is covered by the trait itself.
	shape, _, _ := shapes()
	e := New()
	sel := shape.Inst()
	parts := e.Decompose(sel)
	require.Len(t, parts, 2)
	require.True(t, e.alg.IsSubspace(&space.Or{Spaces: parts}, &space.Typ{T: sel}))
}

func TestExhaustivityBoolean(t *testing.T) {
	m := matchOf(types.BoolType, lit(types.BoolConst(true)), lit(types.BoolConst(false)))
	require.Nil(t, New().CheckExhaustivity(m))
}

func TestExhaustivityBooleanMissing(t *testing.T) {
	m := matchOf(types.BoolType, lit(types.BoolConst(true)))
	w := New().CheckExhaustivity(m)
	require.NotNil(t, w)
	require.Contains(t, w.Msg, "false")
}

func TestExhaustivityGuardedCaseCoversNothing(t *testing.T) {
	m := matchOf(types.BoolType, lit(types.BoolConst(true)), lit(types.BoolConst(false)))
	m.Cases[1].Guard = true
	w := New().CheckExhaustivity(m)
	require.NotNil(t, w)
	require.Contains(t, w.Msg, "false")
}

func TestExhaustivityTuple(t *testing.T) {
	// (Bool, Bool) matched by (true, _), (false, true), (false, false).
	bb := []types.Type{types.BoolType, types.BoolType}
	sel := types.TupleOf(bb...)
	m := matchOf(sel,
		tree.TuplePat(bb, lit(types.BoolConst(true)), tree.Wild(types.BoolType)),
		tree.TuplePat(bb, lit(types.BoolConst(false)), lit(types.BoolConst(true))),
		tree.TuplePat(bb, lit(types.BoolConst(false)), lit(types.BoolConst(false))),
	)
	require.Nil(t, New().CheckExhaustivity(m))
	require.Empty(t, New().CheckRedundancy(m))

	// Reordering the last two arms changes nothing.
	m.Cases[1], m.Cases[2] = m.Cases[2], m.Cases[1]
	require.Nil(t, New().CheckExhaustivity(m))
	require.Empty(t, New().CheckRedundancy(m))
}

func TestExhaustivityTupleMissing(t *testing.T) {
	bb := []types.Type{types.BoolType, types.BoolType}
	sel := types.TupleOf(bb...)
	m := matchOf(sel,
		tree.TuplePat(bb, lit(types.BoolConst(true)), tree.Wild(types.BoolType)),
		tree.TuplePat(bb, lit(types.BoolConst(false)), lit(types.BoolConst(true))),
	)
	w := New().CheckExhaustivity(m)
	require.NotNil(t, w)
	require.Contains(t, w.Msg, "(false, false)")
}

func TestExhaustivitySequence(t *testing.T) {
	// List(1, 2, _*) against List[Int] misses the empty list
	// and lists not starting 1, 2.
	sel := types.ListOf(types.IntType)
	seq := &tree.ApplyPat{
		Fun:  sel,
		Sym:  listSeq(),
		Type: sel,
		Args: []tree.Pat{
			lit(types.IntConst(1)),
			lit(types.IntConst(2)),
			tree.Wild(sel),
		},
		Rest: true,
	}
	w := New().CheckExhaustivity(matchOf(sel, seq))
	require.NotNil(t, w)
	require.Contains(t, w.Msg, "List()")
}

func TestExhaustivitySequenceWildcardRest(t *testing.T) {
	// List(_*) covers every list.
	sel := types.ListOf(types.IntType)
	seq := &tree.ApplyPat{
		Fun:  sel,
		Sym:  listSeq(),
		Type: sel,
		Args: []tree.Pat{tree.Wild(sel)},
		Rest: true,
	}
	require.Nil(t, New().CheckExhaustivity(matchOf(sel, seq)))
}

func TestExhaustivityOrType(t *testing.T) {
	_, circle, square := shapes()
	sel := &types.OrType{Left: circle.Inst(), Right: square.Inst()}
	m := matchOf(sel, typedWild(circle.Inst()))
	w := New().CheckExhaustivity(m)
	require.NotNil(t, w)
	require.Contains(t, w.Msg, "Square")

	m = matchOf(sel, typedWild(circle.Inst()), typedWild(square.Inst()))
	require.Nil(t, New().CheckExhaustivity(m))
}

func TestExhaustivityAlternative(t *testing.T) {
	shape, circle, square := shapes()
	alt := &tree.AltPat{Pats: []tree.Pat{typedWild(circle.Inst()), typedWild(square.Inst())}}
	require.Nil(t, New().CheckExhaustivity(matchOf(shape.Inst(), alt)))
}

func TestExhaustivityGADT(t *testing.T) {
	// sealed trait Expr[T]; IntLit <: Expr[Int]; BoolLit <: Expr[Bool].
	expr := &types.TypeDef{Name: "Expr", Parms: []types.TypeParm{{Name: "T"}}, Kind: types.Trait, Sealed: true}
	intLit := &types.TypeDef{Name: "IntLit", Kind: types.CaseClass, Final: true,
		Fields: []types.Field{{Name: "v", Type: types.IntType}}}
	boolLit := &types.TypeDef{Name: "BoolLit", Kind: types.CaseClass, Final: true,
		Fields: []types.Field{{Name: "v", Type: types.BoolType}}}
	types.Implement(intLit, expr.Inst(types.IntType))
	types.Implement(boolLit, expr.Inst(types.BoolType))

	// Matching an Expr[Int] needs only IntLit: BoolLit cannot inhabit it.
	m := matchOf(expr.Inst(types.IntType), typedWild(intLit.Inst()))
	require.Nil(t, New().CheckExhaustivity(m))

	// Matching an Expr[Bool] with only IntLit misses BoolLit.
	m = matchOf(expr.Inst(types.BoolType), typedWild(intLit.Inst()))
	w := New().CheckExhaustivity(m)
	require.NotNil(t, w)
	require.Contains(t, w.Msg, "BoolLit")
}

func TestExhaustivityGenericRefinement(t *testing.T) {
	// sealed trait Tree[T]; case class Leaf[T](v T) <: Tree[T];
	// object Stump <: Tree[Nothing].
	treeDef := &types.TypeDef{Name: "Tree", Parms: []types.TypeParm{{Name: "T"}}, Kind: types.Trait, Sealed: true}
	leaf := &types.TypeDef{Name: "Leaf", Parms: []types.TypeParm{{Name: "T"}}, Kind: types.CaseClass, Final: true}
	leaf.Fields = []types.Field{{Name: "v", Type: &types.TypeVar{Def: &leaf.Parms[0]}}}
	types.Implement(leaf, treeDef.Inst(&types.TypeVar{Def: &leaf.Parms[0]}))
	stump := &types.TypeDef{Name: "Stump", Kind: types.Object, Final: true}
	types.Implement(stump, treeDef.Inst(types.NothingType))

	sel := treeDef.Inst(types.IntType)
	// Only Leaf covered: Stump missing.
	m := matchOf(sel, typedWild(types.Erase(leaf.Inst(types.IntType))))
	w := New().CheckExhaustivity(m)
	require.NotNil(t, w)
	require.Contains(t, w.Msg, "Stump")

	// Both covered: exhaustive. The Leaf child must refine to Leaf[Int].
	m = matchOf(sel, typedWild(types.Erase(leaf.Inst(types.IntType))), typedWild(stump.Inst()))
	require.Nil(t, New().CheckExhaustivity(m))
}

func TestExhaustivityPartialExtractorNeverCovers(t *testing.T) {
	// Small is an option-returning extractor over Circle: it binds a
	// component when it matches, but it may fail. Matching Shape by
	// Small(_) and _: Square must still report the Circles that
	// Small rejects.
	shape, circle, square := shapes()
	small := &types.Extractor{
		Name:    "Small",
		Def:     circle,
		Parm:    circle.SelfType(),
		Results: []types.Type{types.IntType},
		Shape:   types.OptionResult,
	}
	m := matchOf(shape.Inst(),
		&tree.ApplyPat{
			Fun:  circle.Inst(),
			Sym:  small,
			Type: circle.Inst(),
			Args: []tree.Pat{tree.Wild(types.IntType)},
		},
		typedWild(square.Inst()),
	)
	w := New().CheckExhaustivity(m)
	require.NotNil(t, w)
	require.Contains(t, w.Msg, "Circle")
}

func TestRedundancyWildcardFirst(t *testing.T) {
	shape, circle, _ := shapes()
	m := matchOf(shape.Inst(), tree.Wild(shape.Inst()), typedWild(circle.Inst()))
	ws := New().CheckRedundancy(m)
	require.Len(t, ws, 1)
	require.Equal(t, "unreachable case", ws[0].Msg)
}

func TestRedundancyDuplicateCase(t *testing.T) {
	shape, circle, square := shapes()
	m := matchOf(shape.Inst(),
		typedWild(circle.Inst()),
		typedWild(square.Inst()),
		typedWild(circle.Inst()),
	)
	ws := New().CheckRedundancy(m)
	require.Len(t, ws, 1)
}

func TestRedundancyGuardedCaseDoesNotCover(t *testing.T) {
	shape, circle, _ := shapes()
	m := matchOf(shape.Inst(), typedWild(circle.Inst()), typedWild(circle.Inst()))
	m.Cases[0].Guard = true
	// The guarded first case cannot be proven to always succeed,
	// so the second is not unreachable.
	require.Empty(t, New().CheckRedundancy(m))
}

func TestRedundancyNone(t *testing.T) {
	shape, circle, square := shapes()
	m := matchOf(shape.Inst(), typedWild(circle.Inst()), typedWild(square.Inst()))
	require.Empty(t, New().CheckRedundancy(m))
}

func TestCheckable(t *testing.T) {
	shape, circle, _ := shapes()
	e := New()
	require.True(t, e.Checkable(shape.Inst()))
	require.True(t, e.Checkable(types.BoolType))
	require.True(t, e.Checkable(&types.OrType{Left: circle.Inst(), Right: shape.Inst()}))
	require.True(t, e.Checkable(types.TupleOf(types.IntType, types.BoolType)))
	require.False(t, e.Checkable(types.IntType))
	require.False(t, e.Checkable(types.StringType))
	require.False(t, e.Checkable(types.TupleOf(types.IntType, types.StringType)))

	// Unchecked selector types produce no warnings and no cost.
	m := matchOf(types.IntType, lit(types.IntConst(1)))
	require.Nil(t, e.CheckExhaustivity(m))
	require.Empty(t, e.CheckRedundancy(m))
}

func TestProjectFailSafe(t *testing.T) {
	// An unrecognized pattern shape projects to Empty: it never
	// contributes coverage, so no spurious exhaustiveness claims.
	shape, circle, _ := shapes()
	m := matchOf(shape.Inst(), unknownPat{}, typedWild(circle.Inst()))
	w := New().CheckExhaustivity(m)
	require.NotNil(t, w)
	require.Contains(t, w.Msg, "Square")
}

type unknownPat struct{}

func (unknownPat) Loc() loc.Loc { return loc.Loc{} }

func TestWarningRendersThroughFile(t *testing.T) {
	shape, circle, _ := shapes()
	src := "match s {\n  case c: Circle =>\n}\n"
	f := loc.NewFile("shapes.vn", src)
	m := matchOf(shape.Inst(), typedWild(circle.Inst()))
	m.L = loc.Span(0, 5)
	w := New().CheckExhaustivity(m)
	require.NotNil(t, w)
	require.Equal(t, "shapes.vn:1.1-1.6", f.Location(w.L).String())
	require.False(t, strings.Contains(w.Msg, "\n"))
}
