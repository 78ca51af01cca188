// Package run orchestrates a single invocation: load a fixture, drive the
// interpreter, and hand back a Summary the CLI can print as text/JSON or
// pass to the TUI conflict browser. Grounded on the teacher's own
// internal/run package, which played the same "load input, drive the core,
// shape the result for main" role around its merge engine.
package run

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/spork3dm/pcsmerge/internal/contentmerge"
	"github.com/spork3dm/pcsmerge/internal/fixture"
	"github.com/spork3dm/pcsmerge/internal/interpreter"
	"github.com/spork3dm/pcsmerge/internal/linemerge"
)

// Summary is the shape of one interpreter run, independent of how it's
// rendered (text, JSON, or the TUI).
type Summary struct {
	RunID        uuid.UUID `json:"run_id"`
	HasConflicts bool      `json:"has_conflicts"`
	NodeCount    int       `json:"fixture_node_count"`
	PCSCount     int       `json:"fixture_pcs_count"`
	Findings     []Finding `json:"findings"`
}

// Merge loads the fixture at path and runs it through the interpreter.
func Merge(path string) (Summary, error) {
	doc, err := fixture.Load(path)
	if err != nil {
		return Summary{}, err
	}
	return MergeDocument(doc)
}

// MergeDocument runs an already-loaded fixture through the interpreter,
// using linemerge.Merge as the COMMENT_CONTENT line-merge backend.
func MergeDocument(doc fixture.Document) (Summary, error) {
	result, err := interpreter.Interpret(doc.ChangeSet, doc.BaseLeft, doc.BaseRight, contentmerge.LineMerge(linemerge.Merge))
	if err != nil {
		return Summary{}, fmt.Errorf("run: %w", err)
	}

	return Summary{
		RunID:        result.RunID,
		HasConflicts: result.HasConflicts,
		NodeCount:    doc.NodeCount,
		PCSCount:     doc.PCSCount,
		Findings:     collectFindings(result.Root),
	}, nil
}

// InspectSummary is the shape-only sanity check `pcsmerge inspect` reports,
// without running the interpreter.
type InspectSummary struct {
	NodeCount               int `json:"node_count"`
	PCSCount                int `json:"pcs_count"`
	ContentCandidateCount   int `json:"content_candidate_count"`
	StructuralConflictCount int `json:"structural_conflict_count"`
}

// Inspect loads the fixture at path and reports its shape without merging.
func Inspect(path string) (InspectSummary, error) {
	doc, err := fixture.Load(path)
	if err != nil {
		return InspectSummary{}, err
	}

	candidates := 0
	for _, c := range doc.ChangeSet.Contents {
		candidates += len(c)
	}

	return InspectSummary{
		NodeCount:               doc.NodeCount,
		PCSCount:                doc.PCSCount,
		ContentCandidateCount:   candidates,
		StructuralConflictCount: len(doc.ChangeSet.StructuralConflicts),
	}, nil
}
