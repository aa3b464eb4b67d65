package transform_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/rstdoc/encode"
	"github.com/signadot/rstdoc/ir"
	"github.com/signadot/rstdoc/parse"
	"github.com/signadot/rstdoc/transform"
)

const richDoc = `Guide
=====

:author: Someone
:version: $Revision: 3 $

See ` + "`the site`_" + `, Later_, |sub| and [#]_ or [*]_ and [CIT]_.
Also ` + "`first`__ and `indirect`_" + `.

.. _the site: http://example.org
.. |sub| replace:: *replaced*
.. _indirect: later_
.. __: http://anon.example.org
.. a comment

Later
-----

Body [1]_.

----

More text.

.. [1] Manual footnote.
.. [#] Auto footnote.
.. [*] Symbol footnote.
.. [CIT] A citation.

Last
----

Final words.
`

func mustParse(t *testing.T, src string, opts ...parse.ParseOption) *ir.Tree {
	t.Helper()
	tree, _, err := parse.Parse(src, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return tree
}

func ofKind(t *ir.Tree, k ir.Kind) []ir.NodeID {
	var res []ir.NodeID
	for _, id := range t.All() {
		if t.Kind(id) == k {
			res = append(res, id)
		}
	}
	return res
}

func TestIdempotent(t *testing.T) {
	tree := mustParse(t, richDoc)
	before := encode.MustString(tree)
	if err := transform.Run(context.Background(), tree); err != nil {
		t.Fatal(err)
	}
	if diff := encode.Diff(before, encode.MustString(tree)); diff != "" {
		t.Errorf("second run changed the tree:\n%s", diff)
	}
}

func TestInvariants(t *testing.T) {
	tree := mustParse(t, richDoc)
	seen := map[string]ir.NodeID{}
	for _, id := range tree.All() {
		n := tree.Node(id)
		for _, s := range n.Attrs.IDs {
			if other, dup := seen[s]; dup {
				t.Errorf("id %q on nodes %d and %d", s, other, id)
			}
			seen[s] = id
		}
		if n.Kind.IsReference() && n.Attrs.Refid != "" {
			holder, ok := tree.ByID(n.Attrs.Refid)
			if !ok {
				t.Errorf("%s %d refers to missing id %q", n.Kind, id, n.Attrs.Refid)
				continue
			}
			if !slices.Contains(tree.Node(holder).Attrs.Backrefs, n.FirstID()) {
				t.Errorf("%s %d missing from the backrefs of %q", n.Kind, id, n.Attrs.Refid)
			}
		}
		if n.Parent != ir.NoNode && !n.Generated {
			if p := tree.Node(n.Parent); !p.Span.Contains(n.Span) {
				t.Errorf("%s %s escapes its parent %s %s", n.Kind, n.Span, p.Kind, p.Span)
			}
		}
	}
}

func TestRichDocument(t *testing.T) {
	tree, ds, err := parse.Parse(richDoc)
	if err != nil {
		t.Fatal(err)
	}
	if sev := ir.MaxSeverity(ds); sev >= ir.Warning {
		t.Errorf("unexpected diagnostics %v", ds)
	}
	root := tree.Node(tree.Root)
	if got := root.Attrs.Get("title"); got != "Guide" {
		t.Errorf("document title %q", got)
	}
	if diff := cmp.Diff(map[string]string{"author": "Someone", "version": "3"}, tree.DocInfo); diff != "" {
		t.Errorf("docinfo (-want +got):\n%s", diff)
	}
	if n := len(ofKind(tree, ir.Comment)); n != 0 {
		t.Errorf("%d comments left", n)
	}
	var uris []string
	for _, ref := range ofKind(tree, ir.Reference) {
		if u := tree.Node(ref).Attrs.Refuri; u != "" {
			uris = append(uris, u)
		}
	}
	want := []string{"http://example.org", "http://anon.example.org"}
	if diff := cmp.Diff(want, uris); diff != "" {
		t.Errorf("external references (-want +got):\n%s", diff)
	}
}

func TestFootnotes(t *testing.T) {
	src := "[#]_ and [*]_ and [1]_\n" +
		"\n" +
		".. [1] manual\n" +
		".. [#] auto\n" +
		".. [*] sym\n"
	tree := mustParse(t, src)
	refs := ofKind(tree, ir.FootnoteReference)
	if len(refs) != 3 {
		t.Fatalf("got %d footnote references", len(refs))
	}
	var labels []string
	for _, r := range refs {
		labels = append(labels, tree.Text(r))
		if tree.Node(r).Attrs.Refid == "" {
			t.Errorf("footnote reference %d unresolved", r)
		}
	}
	if diff := cmp.Diff([]string{"2", "*", "1"}, labels); diff != "" {
		t.Errorf("labels (-want +got):\n%s", diff)
	}
	fns := ofKind(tree, ir.Footnote)
	if got, _ := tree.ByID(tree.Node(refs[2]).Attrs.Refid); got != fns[0] {
		t.Errorf("[1]_ resolves to %d, want %d", got, fns[0])
	}
}

func TestTooManyFootnoteReferences(t *testing.T) {
	tree, ds, err := parse.Parse("[#]_ [#]_\n\n.. [#] only\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(ds) != 1 || ds[0].Message != "Too many autonumbered footnote references: only 1 corresponding footnotes available." {
		t.Fatalf("diagnostics %v", ds)
	}
	if n := len(ofKind(tree, ir.Problematic)); n != 1 {
		t.Errorf("got %d problematic nodes", n)
	}
}

func TestIndirectTargets(t *testing.T) {
	tree, ds, err := parse.Parse("See a_.\n\n.. _a: b_\n.. _b: http://x\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(ds) != 0 {
		t.Errorf("unexpected diagnostics %v", ds)
	}
	refs := ofKind(tree, ir.Reference)
	if len(refs) != 1 || tree.Node(refs[0]).Attrs.Refuri != "http://x" {
		t.Errorf("reference not resolved through the chain")
	}

	_, ds, err = parse.Parse(".. _a: b_\n.. _b: a_\n")
	if err != nil {
		t.Fatal(err)
	}
	var errs []string
	for _, d := range ds {
		if d.Severity == ir.Error {
			errs = append(errs, d.Message)
		}
	}
	want := []string{
		`Indirect hyperlink target "a" refers to target "b", forming a circular reference.`,
		`Indirect hyperlink target "b" refers to target "a", forming a circular reference.`,
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Errorf("errors (-want +got):\n%s", diff)
	}
}

func TestTransitions(t *testing.T) {
	src := "Title\n" +
		"=====\n" +
		"\n" +
		"Para.\n" +
		"\n" +
		"----\n" +
		"\n" +
		"Other\n" +
		"=====\n" +
		"\n" +
		"Text.\n"
	tree, ds, err := parse.Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(ds) != 0 {
		t.Errorf("unexpected diagnostics %v", ds)
	}
	trs := ofKind(tree, ir.Transition)
	if len(trs) != 1 || tree.Node(trs[0]).Parent != tree.Root {
		t.Fatalf("transition not moved out of its section")
	}
	secs := ofKind(tree, ir.Section)
	if end := tree.Node(secs[0]).Span.End.Line; end != 4 {
		t.Errorf("first section ends on line %d", end)
	}

	tests := []struct {
		src string
		msg string
	}{
		{"----\n\nPara.\n", "Document or section may not begin with a transition."},
		{"Para.\n\n----\n", "Document may not end with a transition."},
		{"Para.\n\n----\n\n----\n\nPara.\n", "At least one body element must separate transitions; adjacent transitions are not allowed."},
	}
	for _, tt := range tests {
		_, ds, err := parse.Parse(tt.src)
		if err != nil {
			t.Fatal(err)
		}
		if len(ds) != 1 || ds[0].Message != tt.msg || ds[0].Severity != ir.Error {
			t.Errorf("Parse(%q) diagnostics %v", tt.src, ds)
		}
	}
}

func TestOnly(t *testing.T) {
	tree := mustParse(t, "`a`_\n\n.. _a: http://x\n", parse.WithoutTransforms())
	if err := transform.Run(context.Background(), tree, transform.Only("internal-targets")); err != nil {
		t.Fatal(err)
	}
	ref := ofKind(tree, ir.Reference)[0]
	if tree.Node(ref).Attrs.Refuri != "" {
		t.Errorf("internal-targets resolved an external target")
	}
	if err := transform.Run(context.Background(), tree, transform.Only("external-targets")); err != nil {
		t.Fatal(err)
	}
	if tree.Node(ref).Attrs.Refuri != "http://x" {
		t.Errorf("external-targets left the reference unresolved")
	}
	if err := transform.Run(context.Background(), tree, transform.Only("bogus")); !errors.Is(err, transform.ErrUnknownPass) {
		t.Errorf("Run with unknown pass: %v", err)
	}
}

func TestPipeline(t *testing.T) {
	var names []string
	for _, p := range transform.Pipeline() {
		names = append(names, p.Name)
		if _, err := transform.Lookup(p.Name); err != nil {
			t.Error(err)
		}
	}
	if names[0] != "substitutions" || names[len(names)-1] != "transitions" {
		t.Errorf("pipeline order %v", names)
	}
}

func TestCanceledRun(t *testing.T) {
	tree := mustParse(t, "text\n", parse.WithoutTransforms())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := transform.Run(ctx, tree); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v", err)
	}
}

func TestNestedSubstitutions(t *testing.T) {
	tests := []struct {
		name string
		src  string
		text string
		errs []string
	}{
		{
			name: "nested",
			src:  "|a|\n\n.. |a| replace:: x |b|\n.. |b| replace:: y\n",
			text: "x y",
		},
		{
			name: "circular",
			src:  "|a|\n\n.. |a| replace:: |b|\n.. |b| replace:: |a|\n",
			errs: []string{`Circular substitution definition referenced: "a".`},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tree, ds, err := parse.Parse(tc.src)
			if err != nil {
				t.Fatal(err)
			}
			var errs []string
			for _, d := range ds {
				if d.Severity >= ir.Error {
					errs = append(errs, d.Message)
				}
			}
			if diff := cmp.Diff(tc.errs, errs); diff != "" {
				t.Errorf("errors (-want +got):\n%s", diff)
			}
			if tc.text == "" {
				return
			}
			para := ofKind(tree, ir.Paragraph)[0]
			if got := tree.Text(para); got != tc.text {
				t.Errorf("text %q, want %q", got, tc.text)
			}
		})
	}
}

func TestPropagateChain(t *testing.T) {
	tree, ds, err := parse.Parse(".. _a:\n.. _b:\n\nSee a_ and b_.\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(ds) != 0 {
		t.Errorf("unexpected diagnostics %v", ds)
	}
	para := tree.Node(ofKind(tree, ir.Paragraph)[0])
	if diff := cmp.Diff([]string{"a", "b"}, para.Attrs.IDs); diff != "" {
		t.Errorf("paragraph ids (-want +got):\n%s", diff)
	}
	var refids []string
	for _, tg := range ofKind(tree, ir.Target) {
		refids = append(refids, tree.Node(tg).Attrs.Refid)
	}
	if diff := cmp.Diff([]string{"a", "b"}, refids); diff != "" {
		t.Errorf("target refids (-want +got):\n%s", diff)
	}
	refids = nil
	for _, ref := range ofKind(tree, ir.Reference) {
		refids = append(refids, tree.Node(ref).Attrs.Refid)
	}
	if diff := cmp.Diff([]string{"a", "b"}, refids); diff != "" {
		t.Errorf("reference refids (-want +got):\n%s", diff)
	}
}
