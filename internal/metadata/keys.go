// Package metadata names the metadata keys attached to merged elements —
// the contract between the merge interpreter and whatever pretty-printer
// consumes its output (spec.md §6). The keys themselves are part of that
// contract and must not change shape; only this repository's core packages
// write them.
package metadata

import "github.com/spork3dm/pcsmerge/internal/syntax"

const (
	OriginalNode       = "ORIGINAL_NODE"
	SingleRevision     = "SINGLE_REVISION"
	ContentConflict    = "CONTENT_CONFLICT"
	StructuralConflict = "STRUCTURAL_CONFLICT"
	LocalConflictMap   = "LOCAL_CONFLICT_MAP"
	GlobalConflictMap  = "GLOBAL_CONFLICT_MAP"
	CommentConflict    = "COMMENT_CONFLICT"
)

// StructuralConflictPayload is the value stored under StructuralConflict: two
// ordered sequences of original (pre-merge) elements that could not be
// reconciled into a single order.
type StructuralConflictPayload struct {
	Left  []syntax.Element
	Right []syntax.Element
}
