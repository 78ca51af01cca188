package content

import "fmt"

// GlobalRegistry is the conflict-id counter and sentinel dictionary owned by
// a single interpreter instance (spec.md §5): every NAME/VALUE content
// conflict allocates the next sentinel from here, and the full dictionary is
// attached to every merged node as a read-only snapshot under the
// GLOBAL_CONFLICT_MAP metadata key.
type GlobalRegistry struct {
	next    int
	entries map[string][2]string
	order   []string
}

// NewGlobalRegistry creates an empty registry. One must be created per merge
// run; registries are never shared across merges.
func NewGlobalRegistry() *GlobalRegistry {
	return &GlobalRegistry{entries: make(map[string][2]string)}
}

// NewSentinel allocates the next "__SPORK_CONFLICT_<n>" sentinel, registers
// its left/right literal expansion, and returns the sentinel string.
func (g *GlobalRegistry) NewSentinel(left, right string) string {
	sentinel := fmt.Sprintf("__SPORK_CONFLICT_%d", g.next)
	g.next++
	g.entries[sentinel] = [2]string{left, right}
	g.order = append(g.order, sentinel)
	return sentinel
}

// Snapshot returns a read-only copy of the dictionary accumulated so far,
// suitable for attaching to a node as GLOBAL_CONFLICT_MAP metadata.
func (g *GlobalRegistry) Snapshot() map[string][2]string {
	snap := make(map[string][2]string, len(g.entries))
	for k, v := range g.entries {
		snap[k] = v
	}
	return snap
}

// Count returns the number of sentinels allocated so far.
func (g *GlobalRegistry) Count() int { return g.next }
