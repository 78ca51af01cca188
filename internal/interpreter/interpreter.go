// Package interpreter implements spec.md §4.2: walking a merged PCS
// structure into an ordered child-list traversal, resolving successor
// conflicts into either an auto-resolved order or a structural conflict
// node, and driving package builder to materialize the result. Grounded
// directly on se.kth.spork's PcsInterpreter.java (traversePcs,
// traverseConflict, extractConflictList, tryResolveConflict).
package interpreter

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/spork3dm/pcsmerge/internal/builder"
	"github.com/spork3dm/pcsmerge/internal/content"
	"github.com/spork3dm/pcsmerge/internal/contentmerge"
	"github.com/spork3dm/pcsmerge/internal/mapping"
	"github.com/spork3dm/pcsmerge/internal/metadata"
	"github.com/spork3dm/pcsmerge/internal/pcs"
	"github.com/spork3dm/pcsmerge/internal/syntax"
)

// Result is the outcome of one interpreter run.
type Result struct {
	Root         syntax.Element
	HasConflicts bool

	// RunID correlates this run's log lines and diagnostics; it carries no
	// merge semantics.
	RunID uuid.UUID
}

// Interpret converts changeSet into a merged Element tree. baseLeft and
// baseRight are the tree mappings role resolution needs; lineMerge backs
// COMMENT_CONTENT reconciliation (see package linemerge for the default).
func Interpret(changeSet pcs.ChangeSet, baseLeft, baseRight mapping.TreeMapping, lineMerge contentmerge.LineMerge) (Result, error) {
	runID := uuid.New()

	if err := checkRootConflicts(changeSet.StructuralConflicts); err != nil {
		return Result{}, fmt.Errorf("interpreter: run %s: %w", runID, err)
	}

	registry := content.NewGlobalRegistry()
	merger := contentmerge.New(registry, lineMerge)
	b := builder.New(changeSet.Contents, baseLeft, baseRight, merger, registry)

	interp := &interpreter{
		rootToChildren:      pcs.RootToChildren(changeSet.PCSSet),
		structuralConflicts: changeSet.StructuralConflicts,
		contents:            changeSet.Contents,
		builder:             b,
	}

	if _, err := interp.traverse(syntax.VirtualRoot); err != nil {
		return Result{}, fmt.Errorf("interpreter: run %s: %w", runID, err)
	}

	return Result{
		Root:         b.Root(),
		HasConflicts: interp.hasStructuralConflicts || b.HasConflict(),
		RunID:        runID,
	}, nil
}

// checkRootConflicts rejects a change set upfront if it contains a root
// conflict: two triples that disagree on which parent a shared predecessor
// or successor belongs to. The interpreter has no recovery strategy for
// this class, so it is reported before any tree construction begins rather
// than discovered mid-traversal.
func checkRootConflicts(structuralConflicts map[pcs.Triple][]pcs.Triple) error {
	for t, conflicts := range structuralConflicts {
		for _, c := range conflicts {
			if pcs.IsRootConflict(t, c) {
				return fmt.Errorf("root conflict detected between %s and %s", t.Root, c.Root)
			}
		}
	}
	return nil
}

type interpreter struct {
	rootToChildren      map[syntax.Key]map[syntax.Key]pcs.Triple
	structuralConflicts map[pcs.Triple][]pcs.Triple
	contents            map[syntax.Key][]content.Candidate
	builder             *builder.Builder

	hasStructuralConflicts bool
}

// traverse walks currentRoot's ordered child list (following Predecessor ->
// Successor from the start-of-list sentinel), visiting every child through
// the builder and recursing into each child's own subtree. It returns the
// set of revisions present anywhere in currentRoot's subtree, which the
// caller uses to tag single-revision subtrees for the pretty-printer.
func (i *interpreter) traverse(currentRoot syntax.Node) (map[syntax.Revision]struct{}, error) {
	children := i.rootToChildren[currentRoot.Key()]
	revisions := map[syntax.Revision]struct{}{}

	if !currentRoot.IsVirtualRoot() {
		revisions[currentRoot.Revision()] = struct{}{}
		for _, c := range i.contents[currentRoot.Key()] {
			revisions[c.Revision] = struct{}{}
		}
	}

	if children == nil {
		return revisions, nil
	}

	next := syntax.StartOfList(currentRoot)
	var sortedChildren []syntax.Node

	for {
		nextTriple, ok := children[next.Key()]
		if !ok {
			return nil, fmt.Errorf("interpreter: no PCS triple for predecessor %s under root %s", next, currentRoot)
		}
		revisions[nextTriple.Revision] = struct{}{}

		next = nextTriple.Successor
		if next.IsEndOfList() {
			break
		}

		successorConflict, found := firstMatching(i.structuralConflicts[nextTriple], nextTriple, pcs.IsSuccessorConflict)
		if found {
			revisions[syntax.Left] = struct{}{}
			revisions[syntax.Right] = struct{}{}

			resumed, err := i.traverseConflict(nextTriple, successorConflict, currentRoot, children)
			if err != nil {
				return nil, err
			}
			next = resumed
			continue
		}

		if err := i.builder.Visit(currentRoot, next); err != nil {
			return nil, err
		}
		sortedChildren = append(sortedChildren, next)
	}

	for _, child := range sortedChildren {
		subtreeRevisions, err := i.traverse(child)
		if err != nil {
			return nil, err
		}
		if len(subtreeRevisions) == 1 {
			mergedChild, ok := i.builder.MergedNode(child)
			if ok {
				var only syntax.Revision
				for r := range subtreeRevisions {
					only = r
				}
				mergedChild.Element().SetMetadata(metadata.SingleRevision, only)
			}
		}
		for r := range subtreeRevisions {
			revisions[r] = struct{}{}
		}
	}

	return revisions, nil
}

// traverseConflict resolves one successor conflict: it reconstructs the two
// candidate orderings either side proposes, tries the TYPE_MEMBER
// auto-resolution heuristic, and falls back to recording an unresolved
// structural conflict. It returns the node traversal should resume from.
func (i *interpreter) traverseConflict(nextTriple, conflicting pcs.Triple, currentRoot syntax.Node, children map[syntax.Key]pcs.Triple) (syntax.Node, error) {
	resumeAt := nextTriple.Successor

	leftTriple, rightTriple := conflicting, nextTriple
	if nextTriple.Revision == syntax.Left {
		leftTriple, rightTriple = nextTriple, conflicting
	}

	leftNodes, err := i.extractConflictList(leftTriple, children)
	if err != nil {
		return syntax.Node{}, err
	}
	rightNodes, err := i.extractConflictList(rightTriple, children)
	if err != nil {
		return syntax.Node{}, err
	}

	if resolved, ok := tryResolveConflict(leftNodes, rightNodes); ok {
		for _, node := range resolved {
			if err := i.builder.Visit(currentRoot, node); err != nil {
				return syntax.Node{}, err
			}
			if _, err := i.traverse(node); err != nil {
				return syntax.Node{}, err
			}
		}
	} else {
		i.hasStructuralConflicts = true
		if err := i.builder.VisitConflicting(currentRoot, leftNodes, rightNodes); err != nil {
			return syntax.Node{}, err
		}
	}

	if len(leftNodes) == 0 {
		return resumeAt, nil
	}
	return leftNodes[len(leftNodes)-1], nil
}

// extractConflictList scans ahead along pcs's successor chain, collecting
// nodes until it hits a predecessor conflict, which must terminate the
// scan. Reaching the end of the child list first means the PCS structure is
// malformed: every conflict region must close with a predecessor conflict.
func (i *interpreter) extractConflictList(t pcs.Triple, siblings map[syntax.Key]pcs.Triple) ([]syntax.Node, error) {
	var nodes []syntax.Node
	for {
		if _, found := firstMatching(i.structuralConflicts[t], t, pcs.IsPredecessorConflict); found {
			return nodes, nil
		}

		next := t.Successor
		if next.IsEndOfList() {
			return nil, fmt.Errorf("interpreter: reached end of child list without finding a predecessor conflict")
		}
		nodes = append(nodes, next)

		successor, found := siblings[next.Key()]
		if !found {
			return nil, fmt.Errorf("interpreter: no PCS triple for predecessor %s", next)
		}
		t = successor
	}
}

func firstMatching(candidates []pcs.Triple, t pcs.Triple, pred func(a, b pcs.Triple) bool) (pcs.Triple, bool) {
	for _, c := range candidates {
		if pred(t, c) {
			return c, true
		}
	}
	return pcs.Triple{}, false
}

// tryResolveConflict implements the one auto-resolution heuristic spec.md
// §4.2 keeps from the original: if every conflicting node occupies the
// TYPE_MEMBER role, concatenate both orderings (left's members, then
// right's) instead of reporting a structural conflict. This is intentionally
// permissive — member declarations are treated as unordered for this
// purpose — and is noted as a known imprecision rather than a general
// ordering rule.
func tryResolveConflict(leftNodes, rightNodes []syntax.Node) ([]syntax.Node, bool) {
	if len(leftNodes)+len(rightNodes) == 0 {
		return nil, false
	}
	for _, nodes := range [][]syntax.Node{leftNodes, rightNodes} {
		for _, n := range nodes {
			if n.Element().RoleInParent() != content.RoleTypeMember {
				return nil, false
			}
		}
	}

	result := make([]syntax.Node, 0, len(leftNodes)+len(rightNodes))
	result = append(result, leftNodes...)
	result = append(result, rightNodes...)
	return result, true
}
