// Package mapping defines the tree-matching collaborator contract the core
// depends on: BASE<->LEFT and BASE<->RIGHT node correspondences produced by
// an upstream matcher (GumTree or similar). Matching itself is out of scope
// for this repository.
package mapping

import "github.com/spork3dm/pcsmerge/internal/syntax"

// TreeMapping exposes the two directions of a BASE<->other correspondence.
// GetSrc/GetDst mirror the contract spec.md §6 requires of the upstream
// matcher: Src is the BASE-side node, Dst is the other revision's node.
type TreeMapping interface {
	GetSrc(other syntax.Node) (syntax.Node, bool)
	GetDst(base syntax.Node) (syntax.Node, bool)
}

// Static is a simple two-way map implementation, sufficient for tests and
// for the fixture-driven CLI; a real deployment would get a TreeMapping from
// its GumTree-style matcher instead.
type Static struct {
	srcByDst map[syntax.Key]syntax.Node
	dstBySrc map[syntax.Key]syntax.Node
}

// NewStatic builds a TreeMapping from a slice of (base, other) correspondence
// pairs.
func NewStatic(pairs [][2]syntax.Node) *Static {
	s := &Static{
		srcByDst: make(map[syntax.Key]syntax.Node, len(pairs)),
		dstBySrc: make(map[syntax.Key]syntax.Node, len(pairs)),
	}
	for _, pair := range pairs {
		base, other := pair[0], pair[1]
		s.dstBySrc[base.Key()] = other
		s.srcByDst[other.Key()] = base
	}
	return s
}

func (s *Static) GetSrc(other syntax.Node) (syntax.Node, bool) {
	n, ok := s.srcByDst[other.Key()]
	return n, ok
}

func (s *Static) GetDst(base syntax.Node) (syntax.Node, bool) {
	n, ok := s.dstBySrc[base.Key()]
	return n, ok
}
