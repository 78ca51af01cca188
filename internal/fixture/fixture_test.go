package fixture

import (
	"testing"

	"github.com/spork3dm/pcsmerge/internal/content"
	"github.com/spork3dm/pcsmerge/internal/syntax"
)

const renameConflictFixture = `
nodes:
  decl:
    revision: BASE
    kind: TypeDecl
    role: ""
  name_base:
    revision: BASE
    kind: Name
    role: NAME
  name_left:
    revision: LEFT
    kind: Name
    role: NAME
  name_right:
    revision: RIGHT
    kind: Name
    role: NAME

pcs:
  - {root: VROOT, predecessor: "START:VROOT", successor: decl, revision: BASE}
  - {root: VROOT, predecessor: decl, successor: "END:VROOT", revision: BASE}

contents:
  decl:
    - {role: NAME, revision: BASE, value: "Old"}
    - {role: NAME, revision: LEFT, value: "Left"}
    - {role: NAME, revision: RIGHT, value: "Right"}

base_left:
  - {base: name_base, other: name_left}
base_right:
  - {base: name_base, other: name_right}
`

func TestParseResolvesNodesAndReferences(t *testing.T) {
	doc, err := Parse([]byte(renameConflictFixture))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if doc.NodeCount != 4 {
		t.Errorf("NodeCount = %d, want 4", doc.NodeCount)
	}
	if doc.PCSCount != 2 {
		t.Errorf("PCSCount = %d, want 2", doc.PCSCount)
	}
	if len(doc.ChangeSet.PCSSet) != 2 {
		t.Fatalf("PCSSet has %d entries, want 2", len(doc.ChangeSet.PCSSet))
	}

	var declKey syntax.Key
	for k, candidates := range doc.ChangeSet.Contents {
		if len(candidates) == 3 {
			declKey = k
		}
	}
	candidates := doc.ChangeSet.Contents[declKey]
	if len(candidates) != 3 {
		t.Fatalf("expected 3 content candidates on decl, got %d", len(candidates))
	}
	for _, c := range candidates {
		if c.Role != content.RoleName {
			t.Errorf("candidate role = %s, want NAME", c.Role)
		}
	}
}

func TestParseRejectsUnknownNodeReference(t *testing.T) {
	_, err := Parse([]byte(`
nodes: {}
pcs:
  - {root: VROOT, predecessor: "START:missing", successor: missing, revision: BASE}
`))
	if err == nil {
		t.Errorf("expected an error when a PCS triple references an undeclared node")
	}
}

func TestParseRejectsInvalidRevision(t *testing.T) {
	_, err := Parse([]byte(`
nodes:
  a:
    revision: SIDEWAYS
    kind: Foo
    role: ""
`))
	if err == nil {
		t.Errorf("expected an error for an invalid revision string")
	}
}
