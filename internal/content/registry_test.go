package content

import "testing"

func TestNewSentinelIsSequentialAndRegistered(t *testing.T) {
	g := NewGlobalRegistry()

	s0 := g.NewSentinel("foo", "bar")
	s1 := g.NewSentinel("baz", "qux")

	if s0 == s1 {
		t.Fatalf("expected distinct sentinels, got %q twice", s0)
	}
	if g.Count() != 2 {
		t.Errorf("Count() = %d, want 2", g.Count())
	}

	snap := g.Snapshot()
	if snap[s0] != [2]string{"foo", "bar"} {
		t.Errorf("snapshot[%s] = %v, want [foo bar]", s0, snap[s0])
	}
	if snap[s1] != [2]string{"baz", "qux"} {
		t.Errorf("snapshot[%s] = %v, want [baz qux]", s1, snap[s1])
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	g := NewGlobalRegistry()
	g.NewSentinel("a", "b")

	snap := g.Snapshot()
	snap["__injected"] = [2]string{"x", "y"}

	if _, ok := g.Snapshot()["__injected"]; ok {
		t.Errorf("mutating a snapshot must not affect the registry's own state")
	}
}
