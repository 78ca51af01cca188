// Package synfixture provides a minimal in-memory syntax.Element so the core
// packages' tests, and the YAML fixture loader in internal/fixture, have a
// concrete type to build trees out of without a real front-end parser. It is
// not part of the merge core; nothing under internal/pcs, internal/content,
// internal/contentmerge, internal/builder, or internal/interpreter imports
// it.
package synfixture

import "github.com/spork3dm/pcsmerge/internal/syntax"

// Element is a generic, untyped syntax tree node: a Kind label for
// readability plus a free-form role->value map that doubles as both its
// content candidates (e.g. NAME, MODIFIER) and its child slots (a single
// Element, an ordered []Element, a set, or a keyed map for annotations).
type Element struct {
	Kind string
	Role syntax.Role

	// VarKeyword and ParameterReference back the two optional capability
	// interfaces builder.Builder checks for the "var" parameter-type
	// workaround; real front-end types would derive these from their own
	// node kind instead of carrying them as plain fields.
	VarKeyword         bool
	ParameterReference bool

	values map[syntax.Role]any
	meta   map[string]any
}

// New creates an empty Element of the given kind, occupying role under
// whatever parent it is later attached to.
func New(kind string, role syntax.Role) *Element {
	return &Element{Kind: kind, Role: role, values: map[syntax.Role]any{}, meta: map[string]any{}}
}

func (e *Element) Clone() syntax.Element {
	clone := &Element{
		Kind:               e.Kind,
		Role:               e.Role,
		VarKeyword:         e.VarKeyword,
		ParameterReference: e.ParameterReference,
		values:             make(map[syntax.Role]any, len(e.values)),
		meta:               map[string]any{},
	}
	for role, v := range e.values {
		clone.values[role] = v
	}
	return clone
}

// DetachChildren drops every role slot holding a child reference (a single
// Element, a sequence, a set, or a keyed map), leaving scalar content
// candidates (strings, bools, []content.Modifier, ...) untouched.
func (e *Element) DetachChildren() {
	for role, v := range e.values {
		switch v.(type) {
		case syntax.Element, []syntax.Element, map[syntax.Element]struct{}, map[string]syntax.Element:
			delete(e.values, role)
		}
	}
}

func (e *Element) RoleInParent() syntax.Role { return e.Role }

func (e *Element) ValueByRole(role syntax.Role) any { return e.values[role] }

func (e *Element) SetValueByRole(role syntax.Role, value any) { e.values[role] = value }

func (e *Element) Roles() []syntax.Role {
	roles := make([]syntax.Role, 0, len(e.values))
	for role := range e.values {
		roles = append(roles, role)
	}
	return roles
}

func (e *Element) Metadata(key string) (any, bool) {
	v, ok := e.meta[key]
	return v, ok
}

func (e *Element) SetMetadata(key string, value any) { e.meta[key] = value }

func (e *Element) IsVarKeyword() bool         { return e.VarKeyword }
func (e *Element) IsParameterReference() bool { return e.ParameterReference }

func (e *Element) String() string { return e.Kind }
