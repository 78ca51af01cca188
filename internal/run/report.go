package run

import (
	"fmt"
	"sort"

	"github.com/spork3dm/pcsmerge/internal/content"
	"github.com/spork3dm/pcsmerge/internal/markers"
	"github.com/spork3dm/pcsmerge/internal/metadata"
	"github.com/spork3dm/pcsmerge/internal/syntax"
)

// Finding is one unresolved conflict surfaced on the merged tree, flattened
// out of whatever metadata package builder attached, for the CLI/TUI to
// render without having to know the metadata contract itself.
type Finding struct {
	Kind   string // STRUCTURAL_CONFLICT | CONTENT_CONFLICT | LOCAL_CONFLICT_MAP | COMMENT_CONFLICT
	Role   syntax.Role
	Detail string

	// Ours/Base/Theirs are populated only for COMMENT_CONFLICT findings,
	// decomposed out of the marker text with package markers.
	Ours, Base, Theirs string
}

// collectFindings walks the merged tree depth-first, collecting every
// conflict-bearing node's metadata into a flat, deterministically ordered
// list.
func collectFindings(root syntax.Element) []Finding {
	if root == nil {
		return nil
	}

	var findings []Finding
	visited := map[syntax.Element]bool{}

	var walk func(el syntax.Element)
	walk = func(el syntax.Element) {
		if el == nil || visited[el] {
			return
		}
		visited[el] = true

		findings = append(findings, findingsForElement(el)...)

		roles := el.Roles()
		sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
		for _, role := range roles {
			switch v := el.ValueByRole(role).(type) {
			case syntax.Element:
				walk(v)
			case []syntax.Element:
				for _, c := range v {
					walk(c)
				}
			case map[syntax.Element]struct{}:
				children := make([]syntax.Element, 0, len(v))
				for c := range v {
					children = append(children, c)
				}
				sort.Slice(children, func(i, j int) bool { return fmt.Sprint(children[i]) < fmt.Sprint(children[j]) })
				for _, c := range children {
					walk(c)
				}
			case map[string]syntax.Element:
				keys := make([]string, 0, len(v))
				for k := range v {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					walk(v[k])
				}
			}
		}
	}
	walk(root)

	return findings
}

func findingsForElement(el syntax.Element) []Finding {
	var findings []Finding

	if payload, ok := el.Metadata(metadata.StructuralConflict); ok {
		sc, ok := payload.(metadata.StructuralConflictPayload)
		if ok {
			findings = append(findings, Finding{
				Kind:   "STRUCTURAL_CONFLICT",
				Role:   el.RoleInParent(),
				Detail: fmt.Sprintf("%d node(s) on the left, %d on the right could not be linearized into one order", len(sc.Left), len(sc.Right)),
			})
		}
	}

	if raw, ok := el.Metadata(metadata.ContentConflict); ok {
		if conflicts, ok := raw.([]content.Conflict); ok {
			for _, c := range conflicts {
				findings = append(findings, Finding{
					Kind:   "CONTENT_CONFLICT",
					Role:   c.Role,
					Detail: fmt.Sprintf("left=%v right=%v (sentinel placed pending manual resolution)", c.Left.Value, c.Right.Value),
				})
			}
		}
	}

	if raw, ok := el.Metadata(metadata.LocalConflictMap); ok {
		if local, ok := raw.(map[string][2]string); ok {
			keys := make([]string, 0, len(local))
			for k := range local {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, chosen := range keys {
				alt := local[chosen]
				findings = append(findings, Finding{
					Kind:   "LOCAL_CONFLICT_MAP",
					Role:   el.RoleInParent(),
					Detail: fmt.Sprintf("kept %q (left=%q, right=%q)", chosen, alt[0], alt[1]),
				})
			}
		}
	}

	if raw, ok := el.Metadata(metadata.CommentConflict); ok {
		if text, ok := raw.(string); ok {
			f := Finding{Kind: "COMMENT_CONFLICT", Role: el.RoleInParent(), Detail: "comment body could not be line-merged"}
			if doc, err := markers.Parse([]byte(text)); err == nil {
				for _, seg := range doc.Segments {
					if cs, ok := seg.(markers.ConflictSegment); ok {
						f.Ours = string(cs.Ours)
						f.Base = string(cs.Base)
						f.Theirs = string(cs.Theirs)
						break
					}
				}
			}
			findings = append(findings, f)
		}
	}

	return findings
}
