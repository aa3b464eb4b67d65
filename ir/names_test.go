package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Foo", "foo"},
		{"  Foo\n   Bar ", "foo bar"},
		{"Straße", "strasse"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMakeID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Hello World", "hello-world"},
		{"a  --  b", "a-b"},
		{"1st Place!", "st-place"},
		{"Ünïcödé", "unicode"},
		{"section 2", "section-2"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := MakeID(tt.in); got != tt.want {
			t.Errorf("MakeID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildNames(t *testing.T) {
	tr := New("")
	span := tr.Node(tr.Root).Span
	add := func(k Kind, refuri string, names ...string) NodeID {
		id := tr.NewNode(k, span)
		tr.Node(id).Attrs.Names = names
		tr.Node(id).Attrs.Refuri = refuri
		tr.Append(tr.Root, id)
		return id
	}
	sec := add(Section, "", "Intro")
	tgt := add(Target, "", "intro")
	a1 := add(Target, "http://a", "dup")
	a2 := add(Target, "http://b", "dup")
	s1 := add(SubstitutionDefinition, "", "x")
	s2 := add(SubstitutionDefinition, "", "X")
	BuildNames(tr)

	names := tr.Names
	if got, ok := names.Target("INTRO"); !ok || got != tgt {
		t.Errorf("Target(intro) = %d %v, want %d", got, ok, tgt)
	}
	if got, _ := names.TargetID("intro"); got != "id1" {
		t.Errorf("TargetID(intro) = %q", got)
	}
	if diff := cmp.Diff([]string{"Intro"}, tr.Node(sec).Attrs.DupNames); diff != "" {
		t.Errorf("section dupnames (-want +got):\n%s", diff)
	}
	if !names.Ambiguous("dup") {
		t.Errorf("dup should be ambiguous")
	}
	if _, ok := names.Target("dup"); ok {
		t.Errorf("ambiguous name has a holder")
	}
	if diff := cmp.Diff([]NodeID{a1, a2}, names.Targets("dup")); diff != "" {
		t.Errorf("Targets(dup) (-want +got):\n%s", diff)
	}
	if got, ok := names.Substitution("x"); !ok || got != s1 {
		t.Errorf("Substitution(x) = %d, want %d", got, s1)
	}
	if diff := cmp.Diff([]string{"X"}, tr.Node(s2).Attrs.DupNames); diff != "" {
		t.Errorf("substitution dupnames (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"dup", "intro", "x"}, names.All()); diff != "" {
		t.Errorf("All (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]NodeID{s1}, names.Lookup("X")); diff != "" {
		t.Errorf("Lookup(X) (-want +got):\n%s", diff)
	}

	type diag struct {
		Severity Severity
		Message  string
	}
	var got []diag
	for _, d := range tr.Diagnostics {
		got = append(got, diag{d.Severity, d.Message})
	}
	want := []diag{
		{Info, `Duplicate implicit target name: "intro".`},
		{Warning, `Duplicate explicit target name: "dup".`},
		{Error, `Duplicate substitution definition name: "X".`},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("diagnostics (-want +got):\n%s", diff)
	}
}

func TestBuildNamesSameURI(t *testing.T) {
	tr := New("")
	span := tr.Node(tr.Root).Span
	var ids []NodeID
	for range 2 {
		id := tr.NewNode(Target, span)
		tr.Node(id).Attrs.Names = []string{"home"}
		tr.Node(id).Attrs.Refuri = "http://example.org"
		tr.Append(tr.Root, id)
		ids = append(ids, id)
	}
	BuildNames(tr)
	if got, ok := tr.Names.Target("home"); !ok || got != ids[0] {
		t.Errorf("Target(home) = %d %v, want %d", got, ok, ids[0])
	}
	if len(tr.Diagnostics) != 1 || tr.Diagnostics[0].Severity != Info {
		t.Errorf("diagnostics: %v", tr.Diagnostics)
	}
}

func TestRoles(t *testing.T) {
	names := NewNames()
	names.AddRole("Custom", 3)
	if got, ok := names.Role("custom"); !ok || got != 3 {
		t.Errorf("Role(custom) = %d %v", got, ok)
	}
	if diff := cmp.Diff([]NodeID{3}, names.Lookup("CUSTOM")); diff != "" {
		t.Errorf("Lookup (-want +got):\n%s", diff)
	}
	names.AddRole("Another", 5)
	if diff := cmp.Diff([]string{"another", "custom"}, names.Roles()); diff != "" {
		t.Errorf("Roles (-want +got):\n%s", diff)
	}
}
