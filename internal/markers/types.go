// Package markers decomposes diff3-style conflict-marker text
// (<<<<<<</|||||||/=======/>>>>>>>) into its ours/base/theirs segments.
// Grounded on the teacher's own marker parser, which did the same
// decomposition for whole merge-tool input files; here it backs the
// conflict reporter's rendering of an unresolved COMMENT_CONFLICT, whose
// merged text carries exactly this marker format courtesy of
// internal/linemerge.
package markers

// Document is a conflict-marker file split into alternating text and
// conflict segments, in original order.
type Document struct {
	Segments  []Segment
	Conflicts []ConflictRef
}

type Segment interface{ isSegment() }

type TextSegment struct{ Bytes []byte }

func (TextSegment) isSegment() {}

// ConflictSegment is one <<<<<<< ... ||||||| ... ======= ... >>>>>>> block.
// Base is nil when the input had no diff3 base section.
type ConflictSegment struct {
	Ours   []byte
	Base   []byte
	Theirs []byte
}

func (ConflictSegment) isSegment() {}

// ConflictRef points to a conflict segment inside Document.Segments.
//
// We keep an index list for convenient iteration and stable ordering.
type ConflictRef struct {
	SegmentIndex int
}
