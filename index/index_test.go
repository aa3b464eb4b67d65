package index_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/rstdoc/index"
	"github.com/signadot/rstdoc/ir"
	"github.com/signadot/rstdoc/parse"
)

const twoSections = `Alpha
=====

Go to Beta_.

Beta
====

Back to Alpha_ and ` + "`Beta`_" + `.
`

func build(t *testing.T, src string) (*ir.Tree, *index.Index) {
	t.Helper()
	tree, _, err := parse.Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	return tree, index.Build(tree)
}

func ofKind(tree *ir.Tree, k ir.Kind) []ir.NodeID {
	var res []ir.NodeID
	for _, id := range tree.All() {
		if tree.Kind(id) == k {
			res = append(res, id)
		}
	}
	return res
}

func TestNodeAt(t *testing.T) {
	tree, x := build(t, twoSections)
	refs := ofKind(tree, ir.Reference)
	tests := []struct {
		name      string
		line, col int
		kind      ir.Kind
		parent    ir.NodeID
	}{
		{name: "text in reference", line: 4, col: 7, kind: ir.Text, parent: refs[0]},
		{name: "paragraph text", line: 4, col: 0, kind: ir.Text, parent: ir.NoNode},
		{name: "blank line in section", line: 3, col: 0, kind: ir.Section, parent: ir.NoNode},
		{name: "title", line: 6, col: 1, kind: ir.Text, parent: ir.NoNode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := x.NodeAt(tt.line, tt.col)
			if !ok {
				t.Fatalf("no node at %d:%d", tt.line, tt.col)
			}
			if got := tree.Kind(id); got != tt.kind {
				t.Errorf("kind %s, want %s", got, tt.kind)
			}
			if tt.parent != ir.NoNode && tree.Node(id).Parent != tt.parent {
				t.Errorf("parent %d, want %d", tree.Node(id).Parent, tt.parent)
			}
		})
	}
	if id, _ := x.NodeAt(4, 0); tree.Kind(tree.Node(id).Parent) != ir.Paragraph {
		t.Errorf("leading text not in paragraph")
	}
	if x.Len() != len(tree.All()) {
		t.Errorf("indexed %d of %d nodes", x.Len(), len(tree.All()))
	}
}

func TestReferencesTo(t *testing.T) {
	tree, x := build(t, twoSections)
	refs := ofKind(tree, ir.Reference)
	if len(refs) != 3 {
		t.Fatalf("got %d references", len(refs))
	}
	got, err := x.ReferencesTo("beta")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]ir.NodeID{refs[0], refs[2]}, got); diff != "" {
		t.Errorf("references to beta (-want +got):\n%s", diff)
	}
	got, err = x.ReferencesTo("alpha")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]ir.NodeID{refs[1]}, got); diff != "" {
		t.Errorf("references to alpha (-want +got):\n%s", diff)
	}
	if _, err := x.ReferencesTo("gamma"); !errors.Is(err, index.ErrNoSuchID) {
		t.Errorf("got error %v", err)
	}
}

func TestDefinitionOf(t *testing.T) {
	tree, x := build(t, twoSections)
	refs := ofKind(tree, ir.Reference)
	secs := ofKind(tree, ir.Section)
	tests := []struct {
		name string
		from ir.NodeID
		want ir.NodeID
	}{
		{"reference", refs[0], secs[1]},
		{"text in reference", tree.Node(refs[1]).Children[0], secs[0]},
		{"phrase reference", refs[2], secs[1]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := x.DefinitionOf(tt.from)
			if !ok || got != tt.want {
				t.Errorf("got %d, %v want %d", got, ok, tt.want)
			}
		})
	}
	if _, ok := x.DefinitionOf(secs[0]); ok {
		t.Errorf("section resolved to a definition")
	}
}

func TestExternalAndSubstitution(t *testing.T) {
	tree, x := build(t, "See x_ and |x|.\n\n.. _x: http://a\n.. |x| replace:: X\n")
	targets := ofKind(tree, ir.Target)
	defs := ofKind(tree, ir.SubstitutionDefinition)
	if len(targets) != 1 || len(defs) != 1 {
		t.Fatalf("got %d targets and %d definitions", len(targets), len(defs))
	}
	refs := ofKind(tree, ir.Reference)
	if d, ok := x.DefinitionOf(refs[0]); !ok || d != targets[0] {
		t.Errorf("x_ resolved to %d, %v", d, ok)
	}
	subs := ofKind(tree, ir.SubstitutionReference)
	if d, ok := x.DefinitionOf(subs[0]); !ok || d != defs[0] {
		t.Errorf("|x| resolved to %d, %v", d, ok)
	}
	got, err := x.ReferencesTo(tree.Node(targets[0]).FirstID())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]ir.NodeID{refs[0]}, got); diff != "" {
		t.Errorf("references to x (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]ir.NodeID{targets[0], defs[0]}, x.Declarations("X")); diff != "" {
		t.Errorf("declarations (-want +got):\n%s", diff)
	}
	if ds := x.Declarations("none"); len(ds) != 0 {
		t.Errorf("declarations of an unknown name: %v", ds)
	}
}

const outline = `Alpha
=====

.. _top: http://x

Beta
====

.. [1] note

.. |s| replace:: S
`

type sym struct {
	Name     string
	Kind     ir.Kind
	Children []sym
}

func simplify(ss []index.Symbol) []sym {
	var res []sym
	for _, s := range ss {
		res = append(res, sym{Name: s.Name, Kind: s.Kind, Children: simplify(s.Children)})
	}
	return res
}

func TestSymbols(t *testing.T) {
	tree, x := build(t, outline)
	got := x.Symbols()
	want := []sym{
		{Name: "Alpha", Kind: ir.Section, Children: []sym{
			{Name: "_top", Kind: ir.Target},
		}},
		{Name: "Beta", Kind: ir.Section, Children: []sym{
			{Name: "[1]", Kind: ir.Footnote},
			{Name: "|s|", Kind: ir.SubstitutionDefinition},
		}},
	}
	if diff := cmp.Diff(want, simplify(got)); diff != "" {
		t.Fatalf("symbols (-want +got):\n%s", diff)
	}
	if got[0].Detail != "alpha" || got[0].Children[0].Detail != "http://x" {
		t.Errorf("details %q %q", got[0].Detail, got[0].Children[0].Detail)
	}
	title := tree.Node(got[0].Node).Children[0]
	if got[0].Selection != tree.Node(title).Span {
		t.Errorf("section selection %s", got[0].Selection)
	}
}

func TestFoldingRanges(t *testing.T) {
	_, x := build(t, outline)
	want := []index.FoldRange{
		{StartLine: 1, EndLine: 4, Kind: ir.Section},
		{StartLine: 6, EndLine: 11, Kind: ir.Section},
	}
	if diff := cmp.Diff(want, x.FoldingRanges()); diff != "" {
		t.Errorf("folding ranges (-want +got):\n%s", diff)
	}
}

func TestFilter(t *testing.T) {
	tree, x := build(t, twoSections)
	refs := ofKind(tree, ir.Reference)
	paras := ofKind(tree, ir.Paragraph)
	tests := []struct {
		expr string
		want []ir.NodeID
		err  error
	}{
		{expr: `kind == "reference"`, want: refs},
		{expr: `refid == "beta"`, want: []ir.NodeID{refs[0], refs[2]}},
		{expr: `kind == "paragraph" && "section" in ancestors`, want: paras},
		{expr: `kind == "reference" && norm(text) == "beta"`, want: []ir.NodeID{refs[0], refs[2]}},
		{expr: `isref(kind) && line > 4`, want: refs[1:]},
		{expr: `kind +`, err: index.ErrBadFilter},
		{expr: `1`, err: index.ErrBadFilter},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := x.Filter(tt.expr)
			if !errors.Is(err, tt.err) {
				t.Fatalf("got error %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("matches (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompile(t *testing.T) {
	q, err := index.Compile(`generated`)
	if err != nil {
		t.Fatal(err)
	}
	if q.String() != "generated" {
		t.Errorf("query source %q", q.String())
	}
	tree, x := build(t, "[#]_\n\n.. [#] auto\n")
	got, err := x.Match(q)
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range got {
		if !tree.Node(id).Generated {
			t.Errorf("node %d is not generated", id)
		}
	}
	if len(got) == 0 {
		t.Errorf("no generated nodes for an autonumbered footnote reference")
	}
}
