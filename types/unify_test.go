package types

import (
	"testing"
)

func TestUnifierScopeRollsBack(t *testing.T) {
	u := NewUnifier()
	var v *TypeVar
	ok := u.Scope(func() bool {
		v = u.Fresh("T", nil)
		if !u.Unify(v, IntType) {
			t.Fatalf("cannot bind fresh var")
		}
		if got := u.Resolve(v); !EqType(got, IntType) {
			t.Fatalf("Resolve(v)=%s inside scope, want Int", got)
		}
		return true
	})
	if !ok {
		t.Fatalf("scope failed")
	}
	// Everything introduced in the scope is discarded on exit.
	if got := u.Resolve(v); !EqType(got, v) {
		t.Errorf("binding leaked out of scope: %s", got)
	}
	if _, isVar := u.isVar(v); isVar {
		t.Errorf("fresh var leaked out of scope")
	}
}

func TestUnifierScopeRollsBackOnFailure(t *testing.T) {
	u := NewUnifier()
	outer := u.Scope(func() bool {
		v := u.Fresh("T", nil)
		inner := u.Scope(func() bool {
			if !u.Unify(v, IntType) {
				t.Fatalf("cannot bind")
			}
			return false
		})
		if inner {
			t.Fatalf("inner scope should report failure")
		}
		// The inner scope's binding must be gone; v can rebind.
		return u.Unify(v, StringType) && EqType(u.Resolve(v), StringType)
	})
	if !outer {
		t.Errorf("rebinding after rollback failed")
	}
}

func TestSubUnify(t *testing.T) {
	u := NewUnifier()
	ok := u.Scope(func() bool {
		v := u.Fresh("T", nil)
		// Cons[$T] <: List[Int] must bind $T to Int through the parent walk.
		if !u.SubUnify(ConsOf(v), ListOf(IntType)) {
			t.Fatalf("Cons[$T] <: List[Int] failed")
		}
		if got := u.Resolve(v); !EqType(got, IntType) {
			t.Fatalf("$T resolved to %s, want Int", got)
		}
		return true
	})
	if !ok {
		t.Errorf("scope failed")
	}
}

func TestSubUnifyConflict(t *testing.T) {
	u := NewUnifier()
	u.Scope(func() bool {
		v := u.Fresh("T", nil)
		if !u.SubUnify(ConsOf(v), ListOf(IntType)) {
			t.Fatalf("first obligation failed")
		}
		if u.SubUnify(ConsOf(v), ListOf(StringType)) {
			t.Errorf("conflicting obligations should not both hold")
		}
		return true
	})
}

func TestResolveOrAny(t *testing.T) {
	u := NewUnifier()
	u.Scope(func() bool {
		v := u.Fresh("T", nil)
		// An undetermined variable widens to the open wildcard.
		if got := u.ResolveOrAny(ListOf(v)); !EqType(got, ListOf(AnyType)) {
			t.Errorf("ResolveOrAny=%s, want List[Any]", got)
		}
		return true
	})
}
