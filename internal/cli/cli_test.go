package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

const minimalFixture = `
nodes:
  decl: {revision: BASE, kind: TypeDecl, role: ""}

pcs:
  - {root: VROOT, predecessor: "START:VROOT", successor: decl, revision: BASE}
  - {root: VROOT, predecessor: decl, successor: "END:VROOT", revision: BASE}

contents:
  decl:
    - {role: NAME, revision: BASE, value: "Foo"}
`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	if err := os.WriteFile(path, []byte(minimalFixture), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestMergeCommandRequiresFixtureFlag(t *testing.T) {
	var out bytes.Buffer
	root := NewRootCommand(&out)
	root.SetArgs([]string{"merge"})
	root.SetOut(&out)
	root.SetErr(&out)

	if err := root.Execute(); err == nil {
		t.Errorf("expected an error when --fixture is omitted")
	}
}

func TestMergeCommandPrintsTextSummary(t *testing.T) {
	var out bytes.Buffer
	root := NewRootCommand(&out)
	root.SetArgs([]string{"merge", "--fixture", writeFixture(t)})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("no conflicts found")) {
		t.Errorf("output = %q, want it to report no conflicts", out.String())
	}
}

func TestMergeCommandPrintsJSON(t *testing.T) {
	var out bytes.Buffer
	root := NewRootCommand(&out)
	root.SetArgs([]string{"merge", "--fixture", writeFixture(t), "--json"})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte(`"has_conflicts"`)) {
		t.Errorf("output = %q, want JSON with has_conflicts", out.String())
	}
}

func TestInspectCommandReportsCounts(t *testing.T) {
	var out bytes.Buffer
	root := NewRootCommand(&out)
	root.SetArgs([]string{"inspect", "--fixture", writeFixture(t)})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("nodes:")) {
		t.Errorf("output = %q, want node count line", out.String())
	}
}
