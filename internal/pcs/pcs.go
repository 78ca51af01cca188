// Package pcs defines the Parent-Child-Successor relation and the merged
// change set the interpreter walks: grounded directly on the upstream
// se.kth.spork.base3dm model (Pcs, ChangeSet) referenced by PcsInterpreter.
package pcs

import (
	"github.com/spork3dm/pcsmerge/internal/content"
	"github.com/spork3dm/pcsmerge/internal/syntax"
)

// Triple is the relation "under Root, Predecessor is immediately followed by
// Successor", tagged with the revision it came from.
type Triple struct {
	Root        syntax.Node
	Predecessor syntax.Node
	Successor   syntax.Node
	Revision    syntax.Revision
}

// sameNode compares two nodes by the identity rules in package syntax.
func sameNode(a, b syntax.Node) bool { return a.Key() == b.Key() }

// IsRootConflict reports whether a and b disagree on which parent a shared
// predecessor or successor node belongs to. This is the one conflict class
// the interpreter cannot recover from.
func IsRootConflict(a, b Triple) bool {
	return !sameNode(a.Root, b.Root) &&
		(sameNode(a.Predecessor, b.Predecessor) || sameNode(a.Successor, b.Successor))
}

// IsPredecessorConflict reports whether a and b are triples under the same
// root that agree on the successor but disagree on which node precedes it.
func IsPredecessorConflict(a, b Triple) bool {
	return !sameNode(a.Predecessor, b.Predecessor) &&
		sameNode(a.Successor, b.Successor) &&
		sameNode(a.Root, b.Root)
}

// IsSuccessorConflict reports whether a and b are triples under the same
// root that agree on the predecessor but disagree on what follows it.
func IsSuccessorConflict(a, b Triple) bool {
	return !sameNode(a.Successor, b.Successor) &&
		sameNode(a.Predecessor, b.Predecessor) &&
		sameNode(a.Root, b.Root)
}

// ChangeSet bundles the post-merge PCS triples, the per-node content
// candidates, and the conflict relation between triples, as produced by an
// upstream PCS extractor/merger (out of scope for this repository).
type ChangeSet struct {
	PCSSet              []Triple
	Contents            map[syntax.Key][]content.Candidate
	StructuralConflicts map[Triple][]Triple
}

// RootToChildren groups a change set's PCS triples by root, then by
// predecessor, mirroring se.kth.spork.spoon.PcsInterpreter.buildRootToChildren:
// following Predecessor -> Successor from the start-of-list sentinel
// recovers the root's ordered child list.
func RootToChildren(triples []Triple) map[syntax.Key]map[syntax.Key]Triple {
	rootToChildren := make(map[syntax.Key]map[syntax.Key]Triple)
	for _, t := range triples {
		children, ok := rootToChildren[t.Root.Key()]
		if !ok {
			children = make(map[syntax.Key]Triple)
			rootToChildren[t.Root.Key()] = children
		}
		children[t.Predecessor.Key()] = t
	}
	return rootToChildren
}
