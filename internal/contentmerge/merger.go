// Package contentmerge implements spec.md §4.1: reconciling the candidate
// attribute values recorded for a single node into a merged attribute set
// plus a list of unresolved content conflicts. Grounded on the three-way
// classification in se.kth.spork's ContentMerger (referenced from
// PcsInterpreter.Builder.visit) and on the generic three-way Compare helper
// pattern seen across the example corpus (base/local/remote, equal-by-func).
package contentmerge

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/spork3dm/pcsmerge/internal/content"
	"github.com/spork3dm/pcsmerge/internal/syntax"
)

// LineMerge reconciles the raw text of a COMMENT_CONTENT candidate across
// BASE/LEFT/RIGHT. It returns the merged (possibly conflict-marked) text and
// whether the merge left unresolved conflict markers in it.
type LineMerge func(base, left, right string) (merged string, conflicted bool, err error)

// Result is the output of merging one node's candidates.
type Result struct {
	Merged         content.RoledValues
	Conflicts      []content.Conflict
	LocalConflicts map[string][2]string
	CommentConflict *string
}

// HasConflict reports whether this node carries any unresolved disagreement
// under spec.md §8's conflict-detection-completeness property.
func (r Result) HasConflict() bool {
	return len(r.Conflicts) > 0 || len(r.LocalConflicts) > 0 || r.CommentConflict != nil
}

// Merger reconciles per-node candidate sets. A single Merger is owned by one
// interpreter run and shares its GlobalRegistry so sentinel numbering stays
// contiguous and deterministic across the whole traversal.
type Merger struct {
	registry  *content.GlobalRegistry
	lineMerge LineMerge
}

func New(registry *content.GlobalRegistry, lineMerge LineMerge) *Merger {
	return &Merger{registry: registry, lineMerge: lineMerge}
}

// Merge reconciles every role present among candidates (all of which belong
// to the same node) into merged attribute values plus whatever conflicts
// fell out of the reconciliation.
func (m *Merger) Merge(candidates []content.Candidate) (Result, error) {
	result := Result{LocalConflicts: map[string][2]string{}}

	ordered := make([]content.Candidate, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Revision < ordered[j].Revision })

	var roleOrder []content.Role
	grouped := map[content.Role][]content.Candidate{}
	for _, c := range ordered {
		if _, seen := grouped[c.Role]; !seen {
			roleOrder = append(roleOrder, c.Role)
		}
		grouped[c.Role] = append(grouped[c.Role], c)
	}

	for _, role := range roleOrder {
		if err := m.reconcileRole(&result, role, grouped[role]); err != nil {
			return Result{}, err
		}
	}

	return result, nil
}

func (m *Merger) reconcileRole(result *Result, role content.Role, present []content.Candidate) error {
	var base, left, right *content.Candidate
	for i := range present {
		switch present[i].Revision {
		case syntax.Base:
			base = &present[i]
		case syntax.Left:
			left = &present[i]
		case syntax.Right:
			right = &present[i]
		}
	}

	// Two candidates agree only if both the value and the raw text match:
	// COMMENT_CONTENT carries its body and OPERATOR_KIND its symbol there.
	same := func(a, b *content.Candidate) bool {
		return valuesEqual(a.Value, b.Value) && a.RawText == b.RawText
	}

	switch {
	case len(present) == 1:
		result.Merged = append(result.Merged, content.RoledValue{Role: role, Value: present[0].Value})
		return nil

	case base != nil && left != nil && right != nil:
		switch {
		case same(left, right):
			if same(base, left) {
				result.Merged = append(result.Merged, content.RoledValue{Role: role, Value: base.Value})
			} else {
				result.Merged = append(result.Merged, content.RoledValue{Role: role, Value: left.Value})
			}
			return nil
		case same(base, left):
			result.Merged = append(result.Merged, content.RoledValue{Role: role, Value: right.Value})
			return nil
		case same(base, right):
			result.Merged = append(result.Merged, content.RoledValue{Role: role, Value: left.Value})
			return nil
		default:
			return m.resolveConflict(result, role, left, right, base)
		}

	case left != nil && right != nil:
		if same(left, right) {
			result.Merged = append(result.Merged, content.RoledValue{Role: role, Value: left.Value})
			return nil
		}
		return m.resolveConflict(result, role, left, right, nil)

	case base != nil && left != nil:
		if same(base, left) {
			result.Merged = append(result.Merged, content.RoledValue{Role: role, Value: base.Value})
		} else {
			result.Merged = append(result.Merged, content.RoledValue{Role: role, Value: left.Value})
		}
		return nil

	case base != nil && right != nil:
		if same(base, right) {
			result.Merged = append(result.Merged, content.RoledValue{Role: role, Value: base.Value})
		} else {
			result.Merged = append(result.Merged, content.RoledValue{Role: role, Value: right.Value})
		}
		return nil
	}

	return fmt.Errorf("contentmerge: role %q has no usable candidates", role)
}

// resolveConflict dispatches the role-specific sub-policy for a genuine
// three-way disagreement (spec.md §4.1's "both LEFT and RIGHT differ from
// BASE and from each other" case, including the baseless two-sided variant).
func (m *Merger) resolveConflict(result *Result, role content.Role, left, right, base *content.Candidate) error {
	hasBase := base != nil
	var baseVal content.Candidate
	if hasBase {
		baseVal = *base
	}

	switch role {
	case content.RoleName, content.RoleValue:
		sentinel := m.registry.NewSentinel(fmt.Sprint(left.Value), fmt.Sprint(right.Value))
		result.Merged = append(result.Merged, content.RoledValue{Role: role, Value: sentinel})
		result.Conflicts = append(result.Conflicts, content.Conflict{
			Role: role, Left: *left, Right: *right, HasBase: hasBase, Base: baseVal,
		})
		return nil

	case content.RoleCommentContent:
		baseText := ""
		if hasBase {
			baseText = baseVal.RawText
		}
		merged, conflicted, err := m.lineMerge(baseText, left.RawText, right.RawText)
		if err != nil {
			return fmt.Errorf("contentmerge: comment line merge failed: %w", err)
		}
		result.Merged = append(result.Merged, content.RoledValue{Role: role, Value: merged})
		if conflicted {
			result.CommentConflict = &merged
		}
		return nil

	case content.RoleModifier:
		return m.resolveModifiers(result, left, right, base)

	case content.RoleOperatorKind:
		return m.resolveOperatorKind(result, left, right)

	case content.RoleIsUpper:
		return m.resolveIsUpper(result, left, right)

	default:
		return fmt.Errorf("contentmerge: role %q reached an unresolvable disagreement with no merge policy", role)
	}
}

func (m *Merger) resolveModifiers(result *Result, left, right, base *content.Candidate) error {
	leftSet, ok := left.Value.([]content.Modifier)
	if !ok {
		return fmt.Errorf("contentmerge: MODIFIER candidate has non-[]Modifier value %T", left.Value)
	}
	rightSet, ok := right.Value.([]content.Modifier)
	if !ok {
		return fmt.Errorf("contentmerge: MODIFIER candidate has non-[]Modifier value %T", right.Value)
	}
	var baseSet []content.Modifier
	if base != nil {
		baseSet, ok = base.Value.([]content.Modifier)
		if !ok {
			return fmt.Errorf("contentmerge: MODIFIER candidate has non-[]Modifier value %T", base.Value)
		}
	}

	union := map[string]content.Modifier{}
	addNonVisibility := func(set []content.Modifier) {
		for _, mod := range set {
			if mod.Category != content.ModifierVisibility {
				union[mod.Text] = mod
			}
		}
	}
	addNonVisibility(baseSet)
	addNonVisibility(leftSet)
	addNonVisibility(rightSet)

	visibilityOf := func(set []content.Modifier) string {
		for _, mod := range set {
			if mod.Category == content.ModifierVisibility {
				return mod.Text
			}
		}
		return ""
	}
	leftVis := visibilityOf(leftSet)
	rightVis := visibilityOf(rightSet)

	chosenVis := leftVis
	if chosenVis == "" {
		chosenVis = rightVis
	}
	if leftVis != rightVis {
		result.LocalConflicts[chosenVis] = [2]string{leftVis, rightVis}
	}

	merged := make([]content.Modifier, 0, len(union)+1)
	for _, mod := range union {
		merged = append(merged, mod)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Text < merged[j].Text })
	if chosenVis != "" {
		merged = append([]content.Modifier{{Text: chosenVis, Category: content.ModifierVisibility}}, merged...)
	}

	result.Merged = append(result.Merged, content.RoledValue{Role: content.RoleModifier, Value: merged})
	return nil
}

func (m *Merger) resolveOperatorKind(result *Result, left, right *content.Candidate) error {
	if !valuesEqual(left.Value, right.Value) {
		return fmt.Errorf("contentmerge: OPERATOR_KIND candidates disagree on operator category (%v vs %v)", left.Value, right.Value)
	}

	leftSym, rightSym := left.RawText, right.RawText
	if left.CompoundAssign {
		leftSym += "="
	}
	if right.CompoundAssign {
		rightSym += "="
	}
	if leftSym != rightSym {
		result.LocalConflicts[leftSym] = [2]string{leftSym, rightSym}
	}

	result.Merged = append(result.Merged, content.RoledValue{Role: content.RoleOperatorKind, Value: left.Value})
	return nil
}

func (m *Merger) resolveIsUpper(result *Result, left, right *content.Candidate) error {
	leftBool, ok := left.Value.(bool)
	if !ok {
		return fmt.Errorf("contentmerge: IS_UPPER candidate has non-bool value %T", left.Value)
	}
	rightBool, ok := right.Value.(bool)
	if !ok {
		return fmt.Errorf("contentmerge: IS_UPPER candidate has non-bool value %T", right.Value)
	}

	leftKeyword := isUpperKeyword(leftBool)
	rightKeyword := isUpperKeyword(rightBool)
	if leftKeyword != rightKeyword {
		result.LocalConflicts[leftKeyword] = [2]string{leftKeyword, rightKeyword}
	}

	result.Merged = append(result.Merged, content.RoledValue{Role: content.RoleIsUpper, Value: leftBool})
	return nil
}

func isUpperKeyword(isUpper bool) string {
	if isUpper {
		return "extends"
	}
	return "super"
}

func valuesEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
