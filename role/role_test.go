package role

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/rstdoc/ir"
	"github.com/signadot/rstdoc/token"
)

// input returns interpreted text whose content is src[i:j].
func input(src string, i, j int) Input {
	t := ir.New(src)
	all := token.Join(token.NewScanner(src).Lines())
	c := all.Slice(i, j)
	return Input{Tree: t, Span: t.Doc.Span(0, len(src)), Content: c, Raw: c.S}
}

func TestLookup(t *testing.T) {
	reg := NewRegistry()
	tests := []struct {
		name string
		want Behavior
		how  Lookup
	}{
		{"emphasis", Emphasis, Found},
		{" Sup ", Superscript, Found},
		{"PEP", PEP, Found},
		{"title", TitleReference, Found},
	}
	for _, tt := range tests {
		r, how := reg.Lookup(tt.name)
		if r == nil || r.Behavior != tt.want || how != tt.how {
			t.Errorf("Lookup(%q) = %v %v", tt.name, r, how)
		}
	}
	if r, how := reg.Lookup("nosuch"); r != nil || how != NotFound {
		t.Errorf("Lookup(nosuch) = %v %v", r, how)
	}
}

func TestNumbered(t *testing.T) {
	tests := []struct {
		name   string
		role   string
		src    string
		i, j   int
		refuri string
		text   string
		err    string
	}{
		{
			name:   "pep zero",
			role:   "pep",
			src:    ":PEP:`0`",
			i:      6,
			j:      7,
			refuri: "http://www.python.org/dev/peps/pep-0000",
			text:   "PEP 0",
		},
		{
			name:   "rfc with fragment",
			role:   "rfc",
			src:    ":RFC:`2822#section-1`",
			i:      6,
			j:      20,
			refuri: "http://tools.ietf.org/html/rfc2822#section-1",
			text:   "RFC 2822#section-1",
		},
		{
			name: "negative pep",
			role: "pep",
			src:  ":PEP:`-1`",
			i:    6,
			j:    8,
			err:  `PEP number must be a number from 0 to 9999; "-1" is invalid.`,
		},
		{
			name: "signed pep",
			role: "pep",
			src:  ":PEP:`+5`",
			i:    6,
			j:    8,
			err:  `PEP number must be a number from 0 to 9999; "+5" is invalid.`,
		},
		{
			name: "signed rfc",
			role: "rfc",
			src:  ":RFC:`+822`",
			i:    6,
			j:    10,
			err:  `RFC number must be a number greater than or equal to 1; "+822" is invalid.`,
		},
		{
			name: "rfc zero",
			role: "rfc",
			src:  ":RFC:`0`",
			i:    6,
			j:    7,
			err:  `RFC number must be a number greater than or equal to 1; "0" is invalid.`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			r, _ := reg.Lookup(tt.role)
			in := input(tt.src, tt.i, tt.j)
			id, err := r.Apply(in, reg)
			if tt.err != "" {
				if err == nil || err.Error() != tt.err {
					t.Fatalf("got error %v, want %q", err, tt.err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			n := in.Tree.Node(id)
			if n.Kind != ir.Reference || n.Attrs.Refuri != tt.refuri {
				t.Errorf("got %s refuri %q", n.Kind, n.Attrs.Refuri)
			}
			if got := in.Tree.Text(id); got != tt.text {
				t.Errorf("text %q, want %q", got, tt.text)
			}
		})
	}
}

func TestCustomRoles(t *testing.T) {
	reg := NewRegistry()
	base, _, err := reg.Define("custom", "emphasis", nil, 3)
	if err != nil {
		t.Fatal(err)
	}
	if base.Behavior != Emphasis || !base.Custom() {
		t.Errorf("custom role %v", base)
	}
	derived, _, err := reg.Define("Derived", "custom", map[string]string{"class": "A b"}, 4)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b", "custom"}, derived.EffectiveClasses()); diff != "" {
		t.Errorf("classes (-want +got):\n%s", diff)
	}
	in := input("`x`", 1, 2)
	id, err := derived.Apply(in, reg)
	if err != nil {
		t.Fatal(err)
	}
	n := in.Tree.Node(id)
	if n.Kind != ir.Emphasis || n.Attrs.Get("role") != "derived" {
		t.Errorf("applied node %s role %q", n.Kind, n.Attrs.Get("role"))
	}
	if in.Tree.Text(id) != "x" {
		t.Errorf("text %q", in.Tree.Text(id))
	}
	if _, _, err := reg.Define("broken", "nosuch", nil, 5); !errors.Is(err, ErrUnknownRole) {
		t.Errorf("Define with unknown base: %v", err)
	}
	var names []string
	for _, r := range reg.Customs() {
		names = append(names, r.Name)
	}
	if diff := cmp.Diff([]string{"custom", "derived"}, names); diff != "" {
		t.Errorf("customs (-want +got):\n%s", diff)
	}
	if c := reg.Clone(); len(c.Customs()) != 2 {
		t.Errorf("clone lost custom roles")
	}
}

func TestRaw(t *testing.T) {
	reg := NewRegistry()
	raw, _ := reg.Lookup("raw")
	if _, err := raw.Apply(input("`x`", 1, 2), reg); err == nil {
		t.Errorf("raw without format should fail")
	}
	html, _, err := reg.Define("html", "raw", map[string]string{"format": "html"}, 1)
	if err != nil {
		t.Fatal(err)
	}
	in := input("`<b>`", 1, 4)
	id, err := html.Apply(in, reg)
	if err != nil {
		t.Fatal(err)
	}
	n := in.Tree.Node(id)
	if n.Kind != ir.Raw || n.Text != "<b>" || n.Attrs.Get("format") != "html" {
		t.Errorf("raw node %+v", n)
	}
}

func TestDefault(t *testing.T) {
	reg := NewRegistry()
	if reg.Default().Behavior != TitleReference {
		t.Fatalf("default %v", reg.Default())
	}
	if _, err := reg.SetDefault("strong"); err != nil {
		t.Fatal(err)
	}
	if reg.Default().Behavior != Strong {
		t.Errorf("default %v", reg.Default())
	}
	if _, err := reg.SetDefault("nosuch"); !errors.Is(err, ErrUnknownRole) {
		t.Errorf("SetDefault(nosuch) = %v", err)
	}
	if _, err := reg.SetDefault(""); err != nil || reg.Default().Behavior != TitleReference {
		t.Errorf("reset default: %v %v", err, reg.Default())
	}
}

func TestTokens(t *testing.T) {
	if Tokens("x := 1", "") != nil || Tokens("x := 1", "no-such-language") != nil {
		t.Errorf("unknown language should not highlight")
	}
	src := "x := 1"
	runs := Tokens(src, "go")
	if len(runs) == 0 {
		t.Fatal("no runs for go")
	}
	var b strings.Builder
	off := 0
	for _, r := range runs {
		if r.Start != off {
			t.Fatalf("gap before %+v", r)
		}
		b.WriteString(src[r.Start:r.End])
		off = r.End
	}
	if b.String() != src {
		t.Errorf("runs cover %q", b.String())
	}
}

func TestCodeRole(t *testing.T) {
	reg := NewRegistry()
	code, _, err := reg.Define("go", "code", map[string]string{"language": "go"}, 1)
	if err != nil {
		t.Fatal(err)
	}
	in := input("`x := 1`", 1, 7)
	id, err := code.Apply(in, reg)
	if err != nil {
		t.Fatal(err)
	}
	n := in.Tree.Node(id)
	if n.Kind != ir.Literal {
		t.Fatalf("kind %s", n.Kind)
	}
	if diff := cmp.Diff([]string{"code", "go"}, n.Attrs.Classes); diff != "" {
		t.Errorf("classes (-want +got):\n%s", diff)
	}
	if got := in.Tree.Text(id); got != "x := 1" {
		t.Errorf("text %q", got)
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if !slices.IsSorted(names) {
		t.Errorf("names not sorted: %v", names)
	}
	for _, n := range []string{"emphasis", "pep", "t", "raw"} {
		if !slices.Contains(names, n) {
			t.Errorf("missing %q", n)
		}
		if _, how := NewRegistry().Lookup(n); how != Found {
			t.Errorf("listed name %q not found", n)
		}
	}
	if slices.Contains(names, "inline") {
		t.Errorf("generic behavior listed")
	}
}
