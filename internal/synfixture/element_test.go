package synfixture

import (
	"testing"

	"github.com/spork3dm/pcsmerge/internal/syntax"
)

func TestCloneCopiesValuesIndependently(t *testing.T) {
	e := New("Name", "NAME")
	e.SetValueByRole("VALUE", "hello")

	clone := e.Clone().(*Element)
	clone.SetValueByRole("VALUE", "changed")

	if e.ValueByRole("VALUE") != "hello" {
		t.Errorf("mutating a clone must not affect the original")
	}
}

func TestDetachChildrenDropsOnlyChildShapedRoles(t *testing.T) {
	e := New("Block", "")
	child := New("Stmt", "TYPE_MEMBER")
	e.SetValueByRole("TYPE_MEMBER", syntax.Element(child))
	e.SetValueByRole("NAME", "kept")

	e.DetachChildren()

	if e.ValueByRole("TYPE_MEMBER") != nil {
		t.Errorf("expected the child-shaped slot to be dropped")
	}
	if e.ValueByRole("NAME") != "kept" {
		t.Errorf("expected the scalar slot to survive DetachChildren")
	}
}

func TestRolesListsOnlyPopulatedSlots(t *testing.T) {
	e := New("Name", "NAME")
	e.SetValueByRole("VALUE", "x")
	e.SetValueByRole("MODIFIER", nil)

	roles := e.Roles()
	if len(roles) != 2 {
		t.Fatalf("Roles() = %v, want 2 entries", roles)
	}
}

func TestVarKeywordAndParameterReferenceFlags(t *testing.T) {
	e := New("VarType", "TYPE")
	if e.IsVarKeyword() {
		t.Errorf("IsVarKeyword should default to false")
	}
	e.VarKeyword = true
	if !e.IsVarKeyword() {
		t.Errorf("IsVarKeyword should reflect the VarKeyword field")
	}

	p := New("ParamRef", "TYPE")
	p.ParameterReference = true
	if !p.IsParameterReference() {
		t.Errorf("IsParameterReference should reflect the ParameterReference field")
	}
}
