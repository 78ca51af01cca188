// Package fixture implements spec.md's (NEW) §4.4: a YAML serialization of a
// ChangeSet plus its two tree mappings, used only by the CLI/demo driver.
// Nothing under internal/pcs, internal/content, internal/contentmerge,
// internal/builder, or internal/interpreter depends on this package; it
// exists purely to get a ChangeSet onto disk without a real front-end,
// matcher, and PCS extractor pipeline.
package fixture

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spork3dm/pcsmerge/internal/content"
	"github.com/spork3dm/pcsmerge/internal/mapping"
	"github.com/spork3dm/pcsmerge/internal/pcs"
	"github.com/spork3dm/pcsmerge/internal/syntax"
	"github.com/spork3dm/pcsmerge/internal/synfixture"
)

type document struct {
	Nodes               map[string]nodeYAML      `yaml:"nodes"`
	PCS                 []pcsYAML                `yaml:"pcs"`
	Contents            map[string][]contentYAML `yaml:"contents"`
	StructuralConflicts []structuralConflictYAML `yaml:"structural_conflicts"`
	BaseLeft            []mappingPairYAML        `yaml:"base_left"`
	BaseRight           []mappingPairYAML        `yaml:"base_right"`
}

type nodeYAML struct {
	Revision           string `yaml:"revision"`
	Kind               string `yaml:"kind"`
	Role               string `yaml:"role"`
	VarKeyword         bool   `yaml:"var_keyword,omitempty"`
	ParameterReference bool   `yaml:"parameter_reference,omitempty"`
}

// pcsYAML is both a PCS triple and, under structural_conflicts, a reference
// to one: the two need the same three node refs plus a revision.
type pcsYAML struct {
	Root        string `yaml:"root"`
	Predecessor string `yaml:"predecessor"`
	Successor   string `yaml:"successor"`
	Revision    string `yaml:"revision"`
}

type contentYAML struct {
	Role           string         `yaml:"role"`
	Revision       string         `yaml:"revision"`
	Value          any            `yaml:"value,omitempty"`
	RawText        string         `yaml:"raw_text,omitempty"`
	CompoundAssign bool           `yaml:"compound_assign,omitempty"`
	Modifiers      []modifierYAML `yaml:"modifiers,omitempty"`
}

type modifierYAML struct {
	Text     string `yaml:"text"`
	Category string `yaml:"category"`
}

type structuralConflictYAML struct {
	Triple        pcsYAML   `yaml:"triple"`
	ConflictsWith []pcsYAML `yaml:"conflicts_with"`
}

type mappingPairYAML struct {
	Base  string `yaml:"base"`
	Other string `yaml:"other"`
}

// Document is a loaded fixture: the ChangeSet the interpreter consumes plus
// the two tree mappings role resolution needs.
type Document struct {
	ChangeSet pcs.ChangeSet
	BaseLeft  mapping.TreeMapping
	BaseRight mapping.TreeMapping

	// NodeCount and PCSCount back `pcsmerge inspect`'s sanity-check output.
	NodeCount int
	PCSCount  int
}

// Load reads and resolves a YAML fixture file at path.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("fixture: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse resolves a YAML fixture already read into memory.
func Parse(data []byte) (Document, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("fixture: parse yaml: %w", err)
	}

	r := &resolver{
		nodes: make(map[string]syntax.Node, len(doc.Nodes)),
	}

	for id, n := range doc.Nodes {
		rev, err := parseRevision(n.Revision)
		if err != nil {
			return Document{}, fmt.Errorf("fixture: node %q: %w", id, err)
		}
		el := synfixture.New(n.Kind, syntax.Role(n.Role))
		el.VarKeyword = n.VarKeyword
		el.ParameterReference = n.ParameterReference
		r.nodes[id] = syntax.Wrap(el, rev)
	}

	triples := make([]pcs.Triple, 0, len(doc.PCS))
	for i, p := range doc.PCS {
		t, err := r.resolveTriple(p)
		if err != nil {
			return Document{}, fmt.Errorf("fixture: pcs[%d]: %w", i, err)
		}
		triples = append(triples, t)
	}

	contents := make(map[syntax.Key][]content.Candidate, len(doc.Contents))
	for id, entries := range doc.Contents {
		node, ok := r.nodes[id]
		if !ok {
			return Document{}, fmt.Errorf("fixture: contents reference unknown node %q", id)
		}
		candidates := make([]content.Candidate, 0, len(entries))
		for _, c := range entries {
			cand, err := parseCandidate(c)
			if err != nil {
				return Document{}, fmt.Errorf("fixture: contents[%q]: %w", id, err)
			}
			candidates = append(candidates, cand)
		}
		contents[node.Key()] = candidates
	}

	structuralConflicts := make(map[pcs.Triple][]pcs.Triple, len(doc.StructuralConflicts))
	for i, sc := range doc.StructuralConflicts {
		t, err := r.resolveTriple(sc.Triple)
		if err != nil {
			return Document{}, fmt.Errorf("fixture: structural_conflicts[%d].triple: %w", i, err)
		}
		others := make([]pcs.Triple, 0, len(sc.ConflictsWith))
		for j, ref := range sc.ConflictsWith {
			other, err := r.resolveTriple(ref)
			if err != nil {
				return Document{}, fmt.Errorf("fixture: structural_conflicts[%d].conflicts_with[%d]: %w", i, j, err)
			}
			others = append(others, other)
		}
		structuralConflicts[t] = others
	}

	baseLeft, err := r.resolveMapping(doc.BaseLeft)
	if err != nil {
		return Document{}, fmt.Errorf("fixture: base_left: %w", err)
	}
	baseRight, err := r.resolveMapping(doc.BaseRight)
	if err != nil {
		return Document{}, fmt.Errorf("fixture: base_right: %w", err)
	}

	return Document{
		ChangeSet: pcs.ChangeSet{
			PCSSet:              triples,
			Contents:            contents,
			StructuralConflicts: structuralConflicts,
		},
		BaseLeft:  baseLeft,
		BaseRight: baseRight,
		NodeCount: len(doc.Nodes),
		PCSCount:  len(triples),
	}, nil
}

type resolver struct {
	nodes map[string]syntax.Node
}

// resolveRef resolves one of three reference forms a fixture can use for a
// PCS endpoint: "VROOT" for the virtual root, "START:<id>"/"END:<id>" for a
// parent's list-edge sentinels, or a plain node id.
func (r *resolver) resolveRef(ref string) (syntax.Node, error) {
	switch {
	case ref == "VROOT":
		return syntax.VirtualRoot, nil
	case strings.HasPrefix(ref, "START:"):
		parent, err := r.resolveRef(strings.TrimPrefix(ref, "START:"))
		if err != nil {
			return syntax.Node{}, err
		}
		return syntax.StartOfList(parent), nil
	case strings.HasPrefix(ref, "END:"):
		parent, err := r.resolveRef(strings.TrimPrefix(ref, "END:"))
		if err != nil {
			return syntax.Node{}, err
		}
		return syntax.EndOfList(parent), nil
	default:
		node, ok := r.nodes[ref]
		if !ok {
			return syntax.Node{}, fmt.Errorf("unknown node reference %q", ref)
		}
		return node, nil
	}
}

func (r *resolver) resolveTriple(p pcsYAML) (pcs.Triple, error) {
	root, err := r.resolveRef(p.Root)
	if err != nil {
		return pcs.Triple{}, fmt.Errorf("root: %w", err)
	}
	pred, err := r.resolveRef(p.Predecessor)
	if err != nil {
		return pcs.Triple{}, fmt.Errorf("predecessor: %w", err)
	}
	succ, err := r.resolveRef(p.Successor)
	if err != nil {
		return pcs.Triple{}, fmt.Errorf("successor: %w", err)
	}
	rev, err := parseRevision(p.Revision)
	if err != nil {
		return pcs.Triple{}, err
	}
	return pcs.Triple{Root: root, Predecessor: pred, Successor: succ, Revision: rev}, nil
}

func (r *resolver) resolveMapping(pairs []mappingPairYAML) (mapping.TreeMapping, error) {
	resolved := make([][2]syntax.Node, 0, len(pairs))
	for i, p := range pairs {
		base, err := r.resolveRef(p.Base)
		if err != nil {
			return nil, fmt.Errorf("[%d].base: %w", i, err)
		}
		other, err := r.resolveRef(p.Other)
		if err != nil {
			return nil, fmt.Errorf("[%d].other: %w", i, err)
		}
		resolved = append(resolved, [2]syntax.Node{base, other})
	}
	return mapping.NewStatic(resolved), nil
}

func parseRevision(s string) (syntax.Revision, error) {
	switch strings.ToUpper(s) {
	case "BASE":
		return syntax.Base, nil
	case "LEFT":
		return syntax.Left, nil
	case "RIGHT":
		return syntax.Right, nil
	default:
		return 0, fmt.Errorf("invalid revision %q (want BASE, LEFT, or RIGHT)", s)
	}
}

func parseCandidate(c contentYAML) (content.Candidate, error) {
	rev, err := parseRevision(c.Revision)
	if err != nil {
		return content.Candidate{}, err
	}

	role := syntax.Role(c.Role)
	cand := content.Candidate{
		Role:           role,
		Revision:       rev,
		RawText:        c.RawText,
		CompoundAssign: c.CompoundAssign,
	}

	switch role {
	case content.RoleModifier:
		mods := make([]content.Modifier, 0, len(c.Modifiers))
		for _, m := range c.Modifiers {
			cat, err := parseModifierCategory(m.Category)
			if err != nil {
				return content.Candidate{}, err
			}
			mods = append(mods, content.Modifier{Text: m.Text, Category: cat})
		}
		cand.Value = mods
	case content.RoleOperatorKind:
		cand.Value = content.OperatorKind(fmt.Sprint(c.Value))
	default:
		cand.Value = c.Value
	}

	return cand, nil
}

func parseModifierCategory(s string) (content.ModifierCategory, error) {
	switch strings.ToLower(s) {
	case "visibility":
		return content.ModifierVisibility, nil
	case "kind":
		return content.ModifierKind, nil
	case "other", "":
		return content.ModifierOther, nil
	default:
		return 0, fmt.Errorf("invalid modifier category %q", s)
	}
}
