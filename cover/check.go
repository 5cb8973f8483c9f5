package cover

import (
	"strings"

	"github.com/eaburns/sift/loc"
	"github.com/eaburns/sift/space"
	"github.com/eaburns/sift/tree"
	"github.com/eaburns/sift/types"
)

// maxShown bounds how many missing-case examples one warning renders.
// It limits display only; the uncovered space itself is computed fully.
const maxShown = 6

// A Warning is an advisory diagnostic. Coverage analysis never fails
// compilation: missing-case and unreachable-case reports are warnings.
type Warning struct {
	Msg string
	L   loc.Loc
}

func (w *Warning) Loc() loc.Loc   { return w.L }
func (w *Warning) String() string { return w.Msg }

// Checkable returns whether coverage analysis is worth running for a
// selector type at all: sealed hierarchies, union types, Bool, and
// tuples with at least one checkable component. Other selector types
// are skipped entirely, with no warnings possible and no cost incurred.
func (e *Engine) Checkable(sel types.Type) bool {
	if e.CanDecompose(sel) {
		return true
	}
	if d, ok := sel.(*types.DefType); ok {
		if _, isTuple := types.TupleArity(d.Def); isTuple {
			for _, arg := range d.Args {
				if e.Checkable(arg) {
					return true
				}
			}
		}
	}
	return false
}

// CheckExhaustivity returns a warning if the match's cases do not cover
// every value of the selector type, or nil if they do (or if the
// selector type is not checkable). The warning's text renders a minimal
// example for each missing combination.
func (e *Engine) CheckExhaustivity(m *tree.Match) *Warning {
	if !e.Checkable(m.Sel) {
		return nil
	}
	e.alg = space.New(e) // fresh memo tables per match

	tr := trEnter("exhaustivity %s", m.Sel)
	defer tr.done()

	members := make([]space.Space, 0, len(m.Cases))
	for _, c := range m.Cases {
		// A guard cannot be proven to always succeed, so a guarded
		// case covers nothing for exhaustivity purposes.
		if c.Guard {
			continue
		}
		members = append(members, e.project(c.Pat))
	}
	covered := &space.Or{Spaces: members}
	tr.traceSpace("covered", covered)

	uncovered := e.alg.Simplify(e.alg.Minus(&space.Typ{T: m.Sel, Decomposed: true}, covered), true)
	tr.traceSpace("uncovered", uncovered)
	if space.IsEmpty(uncovered) {
		return nil
	}

	var missing []space.Space
	for _, frag := range e.alg.Flatten(uncovered) {
		if space.IsEmpty(e.alg.Simplify(frag, false)) {
			continue
		}
		if types.HasFreeVar(m.Sel) && !e.satisfiable(frag) {
			continue
		}
		missing = append(missing, frag)
	}
	if len(missing) == 0 {
		return nil
	}

	var w strings.Builder
	w.WriteString("non-exhaustive match, missing cases: ")
	for i, frag := range missing {
		if i == maxShown {
			w.WriteString(", …")
			break
		}
		if i > 0 {
			w.WriteString(", ")
		}
		w.WriteString(e.Show(frag))
	}
	return &Warning{Msg: w.String(), L: m.L}
}

// CheckRedundancy returns one warning per case that is unreachable
// because the union of the strictly earlier cases already covers its
// pattern. Cases are checked in source order; a guarded earlier case
// never makes a later case unreachable.
func (e *Engine) CheckRedundancy(m *tree.Match) []*Warning {
	if !e.Checkable(m.Sel) {
		return nil
	}
	e.alg = space.New(e)

	tr := trEnter("redundancy %s", m.Sel)
	defer tr.done()

	var warnings []*Warning
	prevs := make([]space.Space, 0, len(m.Cases))
	for i, c := range m.Cases {
		if i > 0 {
			curr := e.project(c.Pat)
			prior := &space.Or{Spaces: prevs}
			if e.alg.IsSubspace(curr, prior) {
				tr.trace("case %d unreachable", i)
				warnings = append(warnings, &Warning{Msg: "unreachable case", L: c.L})
			}
		}
		if c.Guard {
			prevs = append(prevs, &space.Empty{})
		} else {
			prevs = append(prevs, e.project(c.Pat))
		}
	}
	return warnings
}
