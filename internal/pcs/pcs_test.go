package pcs

import (
	"testing"

	"github.com/spork3dm/pcsmerge/internal/syntax"
	"github.com/spork3dm/pcsmerge/internal/synfixture"
)

func node(kind string, rev syntax.Revision) syntax.Node {
	return syntax.Wrap(synfixture.New(kind, ""), rev)
}

func TestIsRootConflict(t *testing.T) {
	root1 := node("typeA", syntax.Left)
	root2 := node("typeB", syntax.Right)
	shared := node("method", syntax.Left)

	a := Triple{Root: root1, Predecessor: shared, Successor: node("x", syntax.Left), Revision: syntax.Left}
	b := Triple{Root: root2, Predecessor: shared, Successor: node("y", syntax.Right), Revision: syntax.Right}

	if !IsRootConflict(a, b) {
		t.Errorf("expected a root conflict when two triples disagree on the root of a shared predecessor")
	}
	if IsPredecessorConflict(a, b) || IsSuccessorConflict(a, b) {
		t.Errorf("a root conflict must not also classify as predecessor/successor conflict")
	}
}

func TestIsPredecessorConflict(t *testing.T) {
	root := node("block", syntax.Base)
	successor := node("stmt3", syntax.Left)

	a := Triple{Root: root, Predecessor: node("stmt1", syntax.Left), Successor: successor, Revision: syntax.Left}
	b := Triple{Root: root, Predecessor: node("stmt2", syntax.Right), Successor: successor, Revision: syntax.Right}

	if !IsPredecessorConflict(a, b) {
		t.Errorf("expected a predecessor conflict: same root and successor, different predecessor")
	}
}

func TestIsSuccessorConflict(t *testing.T) {
	root := node("block", syntax.Base)
	predecessor := node("stmt0", syntax.Left)

	a := Triple{Root: root, Predecessor: predecessor, Successor: node("stmt1", syntax.Left), Revision: syntax.Left}
	b := Triple{Root: root, Predecessor: predecessor, Successor: node("stmt2", syntax.Right), Revision: syntax.Right}

	if !IsSuccessorConflict(a, b) {
		t.Errorf("expected a successor conflict: same root and predecessor, different successor")
	}
}

func TestRootToChildrenGroupsByRootThenPredecessor(t *testing.T) {
	root := node("block", syntax.Base)
	other := node("otherblock", syntax.Base)

	start := syntax.StartOfList(root)
	a := node("a", syntax.Base)

	triples := []Triple{
		{Root: root, Predecessor: start, Successor: a, Revision: syntax.Base},
		{Root: other, Predecessor: syntax.StartOfList(other), Successor: node("b", syntax.Base), Revision: syntax.Base},
	}

	byRoot := RootToChildren(triples)
	if len(byRoot) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(byRoot))
	}
	children, ok := byRoot[root.Key()]
	if !ok {
		t.Fatalf("missing children map for root")
	}
	got, ok := children[start.Key()]
	if !ok || got.Successor.Key() != a.Key() {
		t.Errorf("expected predecessor->triple lookup to recover successor a, got %+v ok=%v", got, ok)
	}
}
