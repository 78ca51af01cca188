// Package content defines the heterogeneous, typed attribute values a node
// can carry across BASE/LEFT/RIGHT and the reconciled form the merger
// produces, grounded on se.kth.spork's RoledValues/Content model referenced
// throughout PcsInterpreter.
package content

import "github.com/spork3dm/pcsmerge/internal/syntax"

// Role tags which syntactic attribute a candidate value belongs to. It is
// the same Role type Element.RoleInParent reports: content roles and child
// roles share one namespace, since a node's content candidates and its slot
// in its parent are both just "which attribute is this". The set of content
// roles is fixed and small enough that merger policy can switch on it
// directly rather than via reflection.
type Role = syntax.Role

const (
	RoleName            Role = "NAME"
	RoleValue           Role = "VALUE"
	RoleCommentContent  Role = "COMMENT_CONTENT"
	RoleModifier        Role = "MODIFIER"
	RoleOperatorKind    Role = "OPERATOR_KIND"
	RoleIsUpper         Role = "IS_UPPER"
	RoleTypeMember      Role = "TYPE_MEMBER"
	RoleAnnotationValue Role = "ANNOTATION_VALUE"
	RoleType            Role = "TYPE"
)

// ModifierCategory partitions MODIFIER tokens the way spec.md §4.1 requires:
// visibility modifiers are reconciled by picking one side and flagging the
// other as a textual alternative; every other modifier is reconciled by set
// union.
type ModifierCategory int

const (
	ModifierVisibility ModifierCategory = iota
	ModifierKind
	ModifierOther
)

// Modifier is a single modifier token, e.g. "public" or "static".
type Modifier struct {
	Text     string
	Category ModifierCategory
}

// OperatorKind is the category an operator belongs to (e.g. arithmetic,
// relational); the textual symbol rendered for it is carried separately
// since the two sides of a conflict may use different symbols for the same
// kind (think "&=" vs "|=" on a compound assignment).
type OperatorKind string

// Candidate is one (role, value, revision) assignment recorded by the
// upstream content store for a single node, plus optional raw-text metadata
// (used by COMMENT_CONTENT to carry the original, unparsed comment body for
// line-based merging, and by OPERATOR_KIND to carry the operator's rendered
// symbol) and whether the enclosing node is a compound
// assignment (used by OPERATOR_KIND to decide whether "=" is appended).
type Candidate struct {
	Role           Role
	Value          any
	Revision       syntax.Revision
	RawText        string
	CompoundAssign bool
}

// RoledValue is one reconciled (role, value) pair in a merged node's
// attribute set.
type RoledValue struct {
	Role  Role
	Value any
}

// RoledValues is the reconciled attribute set of a merged node, produced by
// the content merger. Order follows the order roles were first seen among
// the candidates (BASE, then LEFT, then RIGHT) to keep output deterministic.
type RoledValues []RoledValue

// Conflict is an unresolved content disagreement on a single role: both
// LEFT and RIGHT differ from BASE (when BASE contributed a candidate) and
// from each other.
type Conflict struct {
	Role    Role
	Left    Candidate
	Right   Candidate
	HasBase bool
	Base    Candidate
}
