// Package builder implements spec.md §4.3: turning a resolved PCS structure
// plus per-node reconciled content into an actual merged tree of Elements.
// Grounded directly on the inner Builder class of se.kth.spork's
// PcsInterpreter.java (visit, visitConflicting, resolveRole, withSiblings,
// resolveAnnotationMap).
package builder

import (
	"fmt"

	"github.com/spork3dm/pcsmerge/internal/content"
	"github.com/spork3dm/pcsmerge/internal/contentmerge"
	"github.com/spork3dm/pcsmerge/internal/mapping"
	"github.com/spork3dm/pcsmerge/internal/metadata"
	"github.com/spork3dm/pcsmerge/internal/syntax"
)

// varKeywordElement and parameterReferenceElement are optional capabilities a
// front-end Element may implement. They exist only to preserve one narrow
// workaround noted in spec.md's open questions: a "var" pseudo-type attached
// to a parameter reference must never be assigned a TYPE role on the merged
// parameter, or pretty-printers downstream render literal "var" where the
// original source had an explicit type. Most Elements implement neither, and
// the check below is then always false.
type varKeywordElement interface {
	IsVarKeyword() bool
}

type parameterReferenceElement interface {
	IsParameterReference() bool
}

// Builder turns an already-classified traversal (regular nodes visited one
// at a time, conflicting siblings visited as a batch) into a merged Element
// tree, by cloning each original node's owning Element, writing the content
// merger's reconciled attribute values onto the clone, and inserting the
// clone into its merged parent under the role the original node occupied.
//
// A Builder is owned by a single interpreter run; it is not safe for
// concurrent use.
type Builder struct {
	contents  map[syntax.Key][]content.Candidate
	baseLeft  mapping.TreeMapping
	baseRight mapping.TreeMapping
	merger    *contentmerge.Merger
	registry  *content.GlobalRegistry

	merged      map[syntax.Key]syntax.Node
	topLevel    syntax.Element
	actualRoot  syntax.Element
	hasConflict bool
}

// New constructs a Builder. contents maps an original node's Key to the
// content candidates recorded for it by the interpreter's traversal;
// baseLeft/baseRight are the BASE<->LEFT and BASE<->RIGHT tree mappings role
// resolution needs.
func New(contents map[syntax.Key][]content.Candidate, baseLeft, baseRight mapping.TreeMapping, merger *contentmerge.Merger, registry *content.GlobalRegistry) *Builder {
	return &Builder{
		contents:  contents,
		baseLeft:  baseLeft,
		baseRight: baseRight,
		merger:    merger,
		registry:  registry,
		merged:    map[syntax.Key]syntax.Node{},
	}
}

// Root returns the merged tree's root Element once the traversal driving
// Visit/VisitConflicting has finished. This is actualRoot, discovered from a
// grandchild's attach, whenever the top-level node has children of its own;
// for the degenerate case of a top-level node with no children, it falls
// back to that node's own merged clone, recorded directly by Visit/attach
// when parentOrig is the virtual root.
func (b *Builder) Root() syntax.Element {
	if b.actualRoot != nil {
		return b.actualRoot
	}
	return b.topLevel
}

// HasConflict reports whether any node visited so far carried an unresolved
// content conflict.
func (b *Builder) HasConflict() bool { return b.hasConflict }

// MergedNode returns the merged Node standing in for orig, if orig has
// already been visited.
func (b *Builder) MergedNode(orig syntax.Node) (syntax.Node, bool) {
	n, ok := b.merged[orig.Key()]
	return n, ok
}

// Visit reconciles orig's own content and inserts the resulting clone under
// parentOrig's already-merged counterpart (or records it as the tree's root
// when parentOrig is the virtual root). Grounded on Builder.visit.
func (b *Builder) Visit(parentOrig, orig syntax.Node) error {
	if _, seen := b.merged[orig.Key()]; seen {
		return fmt.Errorf("builder: %s visited more than once (move conflict)", orig)
	}

	clone, err := b.reconcile(orig)
	if err != nil {
		return err
	}

	if err := b.attach(parentOrig, orig, clone); err != nil {
		return err
	}

	b.merged[orig.Key()] = syntax.Wrap(clone, orig.Revision())
	return nil
}

// VisitConflicting records a structural conflict: leftNodes and rightNodes
// are two orderings of the same sibling set that could not be linearized
// into one sequence. A single placeholder, cloned from whichever side is
// non-empty, is inserted under parentOrig's merged counterpart carrying both
// orderings as metadata. Grounded on Builder.visitConflicting.
//
// Unlike the original, the placeholder is a clone rather than the original
// element reused in place: inputs stay immutable for the whole interpreter
// run, matching spec.md §3's lifecycle invariant.
func (b *Builder) VisitConflicting(parentOrig syntax.Node, leftNodes, rightNodes []syntax.Node) error {
	var placeholder syntax.Node
	switch {
	case len(leftNodes) > 0:
		placeholder = leftNodes[0]
	case len(rightNodes) > 0:
		placeholder = rightNodes[0]
	default:
		return fmt.Errorf("builder: VisitConflicting called with no nodes on either side")
	}

	clone := placeholder.Element().Clone()
	clone.DetachChildren()
	clone.SetMetadata(metadata.StructuralConflict, metadata.StructuralConflictPayload{
		Left:  elementsOf(leftNodes),
		Right: elementsOf(rightNodes),
	})
	clone.SetMetadata(metadata.GlobalConflictMap, b.registry.Snapshot())

	b.hasConflict = true
	return b.attach(parentOrig, placeholder, clone)
}

func elementsOf(nodes []syntax.Node) []syntax.Element {
	out := make([]syntax.Element, len(nodes))
	for i, n := range nodes {
		out[i] = n.Element()
	}
	return out
}

// reconcile runs the content merger over orig's recorded candidates and
// returns a clone of orig's Element carrying the reconciled attribute values
// and whatever conflict metadata the merge produced.
func (b *Builder) reconcile(orig syntax.Node) (syntax.Element, error) {
	result, err := b.merger.Merge(b.contents[orig.Key()])
	if err != nil {
		return nil, fmt.Errorf("builder: reconciling %s: %w", orig, err)
	}

	clone := orig.Element().Clone()
	clone.DetachChildren()
	for _, rv := range result.Merged {
		clone.SetValueByRole(rv.Role, rv.Value)
	}

	clone.SetMetadata(metadata.OriginalNode, orig.Element())
	if len(result.Conflicts) > 0 {
		clone.SetMetadata(metadata.ContentConflict, result.Conflicts)
	}
	if len(result.LocalConflicts) > 0 {
		clone.SetMetadata(metadata.LocalConflictMap, result.LocalConflicts)
	}
	if result.CommentConflict != nil {
		clone.SetMetadata(metadata.CommentConflict, *result.CommentConflict)
	}
	clone.SetMetadata(metadata.GlobalConflictMap, b.registry.Snapshot())

	if result.HasConflict() {
		b.hasConflict = true
	}

	return clone, nil
}

// attach inserts clone (already reconciled/placeholder-built) into the
// merged parent under the role orig occupied, or records clone as the
// overall merge root when parentOrig is the virtual root.
//
// actualRoot is set from the merged parent's Element the first time attach
// runs with a non-virtual parent, mirroring how PcsInterpreter.Builder
// discovers its root: the top-level declaration itself is visited with the
// virtual root as its parent (no insertion happens), and its first child's
// visit is what supplies a non-nil merged parent to latch onto.
func (b *Builder) attach(parentOrig, orig syntax.Node, clone syntax.Element) error {
	if parentOrig.IsVirtualRoot() {
		if b.topLevel == nil {
			b.topLevel = clone
		}
		return nil
	}

	mergedParentNode, ok := b.merged[parentOrig.Key()]
	if !ok {
		return fmt.Errorf("builder: parent %s of %s has not been visited yet", parentOrig, orig)
	}
	mergedParent := mergedParentNode.Element()

	role, err := b.resolveRole(orig)
	if err != nil {
		return err
	}

	inserted, err := b.withSiblings(mergedParent, parentOrig.Element(), orig.Element(), clone, role)
	if err != nil {
		return err
	}

	if !skipAssignment(mergedParent, clone, role) {
		mergedParent.SetValueByRole(role, inserted)
	}

	if b.actualRoot == nil {
		b.actualRoot = mergedParent
	}
	return nil
}

// skipAssignment implements the "var" workaround: a TYPE role value that is
// itself the implicit var pseudo-type must not be written onto a parameter
// reference, since the pretty-printer would then render the literal keyword
// "var" in place of the type the declaration actually carries.
func skipAssignment(mergedParent, clone syntax.Element, role syntax.Role) bool {
	if role != content.RoleType {
		return false
	}
	varNode, ok := clone.(varKeywordElement)
	if !ok || !varNode.IsVarKeyword() {
		return false
	}
	paramRef, ok := mergedParent.(parameterReferenceElement)
	return ok && paramRef.IsParameterReference()
}

// resolveRole implements spec.md §4.3's role resolution algorithm: collect
// orig's own role, add the role of its counterpart in the opposite-side BASE
// mapping (if any), drop the BASE-side role from the candidate set, and
// require exactly one candidate to remain.
func (b *Builder) resolveRole(orig syntax.Node) (syntax.Role, error) {
	candidates := []syntax.Role{orig.Element().RoleInParent()}
	var base *syntax.Node

	switch orig.Revision() {
	case syntax.Base:
		base = &orig
		if dst, ok := b.baseLeft.GetDst(orig); ok {
			candidates = append(candidates, dst.Element().RoleInParent())
		}
		if dst, ok := b.baseRight.GetDst(orig); ok {
			candidates = append(candidates, dst.Element().RoleInParent())
		}
	case syntax.Left:
		if src, ok := b.baseLeft.GetSrc(orig); ok {
			base = &src
			candidates = append(candidates, src.Element().RoleInParent())
		}
	case syntax.Right:
		if src, ok := b.baseRight.GetSrc(orig); ok {
			base = &src
			candidates = append(candidates, src.Element().RoleInParent())
		}
	}

	if base != nil {
		baseRole := base.Element().RoleInParent()
		filtered := candidates[:0]
		for _, role := range candidates {
			if role != baseRole {
				filtered = append(filtered, role)
			}
		}
		candidates = filtered
		if len(candidates) == 0 {
			return baseRole, nil
		}
	}

	if len(candidates) != 1 {
		return "", fmt.Errorf("builder: role resolution for %s produced %d candidate roles, want exactly 1", orig, len(candidates))
	}
	return candidates[0], nil
}

// withSiblings computes the new value to write into mergedParent's role slot
// after adding clone. The slot's kind (scalar, sequence, set, or keyed map)
// is read from origParent's own untouched value, never from mergedParent's:
// mergedParent is a clone whose child slots were wiped by DetachChildren, so
// every role reads back nil there until something is written to it, and a
// nil slot can't tell a not-yet-populated sequence apart from a genuinely
// scalar one. origParent is the real, never-cloned parent from whichever
// revision orig came from, so its slot already carries the role's true
// shape regardless of how much of the merge has landed in mergedParent so
// far. Grounded on Builder.withSiblings/resolveAnnotationMap.
func (b *Builder) withSiblings(mergedParent, origParent, origTree, clone syntax.Element, role syntax.Role) (any, error) {
	switch origParent.ValueByRole(role).(type) {
	case nil, syntax.Element:
		return clone, nil

	case []syntax.Element:
		current, _ := mergedParent.ValueByRole(role).([]syntax.Element)
		next := make([]syntax.Element, len(current), len(current)+1)
		copy(next, current)
		return append(next, clone), nil

	case map[syntax.Element]struct{}:
		current, _ := mergedParent.ValueByRole(role).(map[syntax.Element]struct{})
		next := make(map[syntax.Element]struct{}, len(current)+1)
		for k := range current {
			next[k] = struct{}{}
		}
		next[clone] = struct{}{}
		return next, nil

	case map[string]syntax.Element:
		current, _ := mergedParent.ValueByRole(role).(map[string]syntax.Element)
		return b.resolveAnnotationMap(current, origParent, origTree, clone, role)

	default:
		return nil, fmt.Errorf("builder: role %q holds unsupported value type %T", role, origParent.ValueByRole(role))
	}
}

// resolveAnnotationMap finds the key origTree was bound under in origParent's
// own (unmodified) copy of role's map and inserts clone under that same key
// in a copy of the merge-in-progress map. Fails fatally if the key cannot be
// found, per spec.md §4.3.
func (b *Builder) resolveAnnotationMap(mergedSoFar map[string]syntax.Element, origParent, origTree syntax.Element, clone syntax.Element, role syntax.Role) (map[string]syntax.Element, error) {
	originalMap, ok := origParent.ValueByRole(role).(map[string]syntax.Element)
	if !ok {
		return nil, fmt.Errorf("builder: role %q not a keyed map on original parent", role)
	}

	key, found := "", false
	for k, v := range originalMap {
		if v == origTree {
			key, found = k, true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("builder: could not locate original annotation key for role %q", role)
	}

	next := make(map[string]syntax.Element, len(mergedSoFar)+1)
	for k, v := range mergedSoFar {
		next[k] = v
	}
	next[key] = clone
	return next, nil
}
