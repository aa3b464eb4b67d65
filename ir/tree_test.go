package ir

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func buildTree() (*Tree, NodeID, NodeID, NodeID) {
	tr := New("hello world")
	p := tr.NewNode(Paragraph, tr.Doc.Span(0, 11))
	tr.Append(tr.Root, p)
	a := tr.NewText("hello ", tr.Doc.Span(0, 6))
	tr.Append(p, a)
	em := tr.NewNode(Emphasis, tr.Doc.Span(6, 11))
	tr.Append(p, em)
	tr.Append(em, tr.NewText("world", tr.Doc.Span(6, 11)))
	return tr, p, a, em
}

func TestTreeWalk(t *testing.T) {
	tr, p, a, em := buildTree()
	want := []NodeID{tr.Root, p, a, em, em + 1}
	if diff := cmp.Diff(want, tr.All()); diff != "" {
		t.Errorf("All (-want +got):\n%s", diff)
	}
	if got := tr.Text(p); got != "hello world" {
		t.Errorf("Text = %q", got)
	}
	if got := tr.Slice(em); got != "world" {
		t.Errorf("Slice = %q", got)
	}
	if got := tr.Ancestor(em+1, Paragraph); got != p {
		t.Errorf("Ancestor = %d, want %d", got, p)
	}
	if got := tr.NextSibling(a); got != em {
		t.Errorf("NextSibling = %d", got)
	}
	if got := tr.PrevSibling(a); got != NoNode {
		t.Errorf("PrevSibling = %d", got)
	}
}

func TestTreeEdit(t *testing.T) {
	tr, p, a, em := buildTree()
	w := tr.Wrap(em, Strong)
	if diff := cmp.Diff([]NodeID{a, w}, tr.Node(p).Children); diff != "" {
		t.Errorf("after Wrap (-want +got):\n%s", diff)
	}
	if tr.Node(w).Span != tr.Node(em).Span {
		t.Errorf("wrapper span %s", tr.Node(w).Span)
	}
	tr.Remove(a)
	if tr.Reachable(a) {
		t.Errorf("removed node still reachable")
	}
	if tr.Index(a) != -1 || tr.Index(w) != 0 {
		t.Errorf("indices after Remove: %d %d", tr.Index(a), tr.Index(w))
	}
	tr.Insert(p, 0, a)
	if got := tr.Text(p); got != "hello world" {
		t.Errorf("Text after Insert = %q", got)
	}
}

func TestTreeIDs(t *testing.T) {
	tr, p, _, em := buildTree()
	if got := tr.EnsureID(p, "Some Title"); got != "some-title" {
		t.Errorf("EnsureID = %q", got)
	}
	if tr.SetID(em, "some-title") {
		t.Errorf("SetID reused an id")
	}
	if got := tr.EnsureID(em, "some title"); got != "id1" {
		t.Errorf("EnsureID fallback = %q", got)
	}
	if got := tr.GenID(em); got != "id1" {
		t.Errorf("GenID on a node with an id = %q", got)
	}
	tr.Node(p).Attrs.Names = []string{"some title"}
	tr.MoveIDs(p, em)
	if got, _ := tr.ByID("some-title"); got != em {
		t.Errorf("ByID after MoveIDs = %d", got)
	}
	if diff := cmp.Diff([]string{"id1", "some-title"}, tr.Node(em).Attrs.IDs); diff != "" {
		t.Errorf("ids (-want +got):\n%s", diff)
	}
	tr.Drop(em)
	if _, ok := tr.ByID("id1"); ok {
		t.Errorf("dropped id still registered")
	}
}

func TestTreeClone(t *testing.T) {
	tr, p, _, _ := buildTree()
	tr.GenID(p)
	c := tr.Clone(p)
	if tr.Node(c).Parent != NoNode || len(tr.Node(c).Attrs.IDs) != 0 {
		t.Errorf("clone should be detached without ids: %+v", tr.Node(c))
	}
	if got := tr.Text(c); got != "hello world" {
		t.Errorf("clone text = %q", got)
	}
}

func TestProblematic(t *testing.T) {
	tr, _, a, _ := buildTree()
	diag := tr.Report(Error, tr.Node(a).Span, "bad")
	p := tr.MakeProblematic(a, diag)
	if tr.Kind(p) != Problematic || tr.Node(p).Attrs.Refid != diag {
		t.Fatalf("problematic %+v", tr.Node(p))
	}
	if diff := cmp.Diff([]NodeID{p}, tr.Diagnostics[0].Nodes); diff != "" {
		t.Errorf("attached nodes (-want +got):\n%s", diff)
	}
	if got := MaxSeverity(tr.Diagnostics); got != Error {
		t.Errorf("MaxSeverity = %s", got)
	}
}

func TestRefState(t *testing.T) {
	tr, p, _, _ := buildTree()
	ref := tr.NewNode(Reference, tr.Node(p).Span)
	tr.Append(p, ref)
	if got := tr.State(ref); got != Unresolved {
		t.Errorf("State = %s", got)
	}
	tr.Node(ref).Attrs.Refid = "x"
	if got := tr.State(ref); got != ResolvedInternal {
		t.Errorf("State = %s", got)
	}
	tr.Node(ref).Attrs.Refuri = "http://x"
	if got := tr.State(ref); got != ResolvedExternal {
		t.Errorf("State = %s", got)
	}
	tr.MakeProblematic(ref, tr.Report(Error, tr.Node(ref).Span, "dangling"))
	if got := tr.State(ref); got != Dangling {
		t.Errorf("State = %s", got)
	}
}

func TestKinds(t *testing.T) {
	for k, name := range kindNames {
		got, ok := KindOf(name)
		if !ok || got != k {
			t.Errorf("KindOf(%q) = %v %v, want %v", name, got, ok, k)
		}
	}
	if !Reference.IsInline() || !Reference.IsReference() {
		t.Errorf("reference kind predicates")
	}
	if Paragraph.IsInline() || Target.IsReference() {
		t.Errorf("block kind predicates")
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want Severity
		err  error
	}{
		{"info", Info, nil},
		{"WARNING", Warning, nil},
		{"Error", Error, nil},
		{"severe", Severe, nil},
		{"loud", 0, ErrBadSeverity},
	}
	for _, tt := range tests {
		got, err := ParseSeverity(tt.in)
		if !errors.Is(err, tt.err) || got != tt.want {
			t.Errorf("ParseSeverity(%q) = %v, %v", tt.in, got, err)
		}
	}
}
