package encode_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
	"github.com/signadot/rstdoc/encode"
	"github.com/signadot/rstdoc/ir"
	"github.com/signadot/rstdoc/parse"
)

func mustParse(t *testing.T, src string) (*ir.Tree, []ir.Diagnostic) {
	t.Helper()
	tree, ds, err := parse.Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	return tree, ds
}

func TestPseudoXML(t *testing.T) {
	tree, _ := mustParse(t, "`interpreted`")
	tests := []struct {
		name string
		opts []encode.EncodeOption
		want string
	}{
		{
			name: "plain",
			want: "<document>\n" +
				"    <paragraph>\n" +
				"        <title_reference>\n" +
				"            interpreted\n",
		},
		{
			name: "indent and depth",
			opts: []encode.EncodeOption{encode.Indent(2), encode.Depth(1)},
			want: "<document>\n" +
				"  <paragraph>\n" +
				"    ...\n",
		},
		{
			name: "spans",
			opts: []encode.EncodeOption{encode.EncodeSpans(true), encode.Depth(1)},
			want: "<document span=\"1:0-1:13\">\n" +
				"    <paragraph span=\"1:0-1:13\">\n" +
				"        ...\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, encode.MustString(tree, tt.opts...)); diff != "" {
				t.Errorf("pseudo-XML (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSystemMessages(t *testing.T) {
	tree, ds := mustParse(t, ":PEP:`-1`")
	out := encode.MustString(tree, encode.EncodeDiagnostics(true))
	prob := ""
	for _, id := range tree.All() {
		if tree.Kind(id) == ir.Problematic {
			prob = tree.Node(id).FirstID()
		}
	}
	head := `<system_message ids="` + ds[0].ID + `" level="3" line="1" type="ERROR" backrefs="` + prob + `">`
	if !strings.Contains(out, head) {
		t.Errorf("missing %s in\n%s", head, out)
	}
	if !strings.Contains(out, "PEP number must be a number from 0 to 9999") {
		t.Errorf("missing message in\n%s", out)
	}
}

func TestAttrs(t *testing.T) {
	n := &ir.Node{Kind: ir.Target}
	n.Attrs.IDs = []string{"a-b"}
	n.Attrs.Names = []string{"a b"}
	n.Attrs.Refuri = "http://x"
	n.Attrs.Set("zeta", "2")
	n.Attrs.Set("alpha", "1")
	n.Directive = &ir.DirectiveInfo{
		Name:        "image",
		Args:        "pic.png",
		Options:     map[string]string{"alt": "A picture"},
		OptionOrder: []string{"alt"},
	}
	want := []encode.Attr{
		{Name: "ids", Value: "a-b"},
		{Name: "names", Value: `a\ b`},
		{Name: "refuri", Value: "http://x"},
		{Name: "alpha", Value: "1"},
		{Name: "zeta", Value: "2"},
		{Name: "directive", Value: "image"},
		{Name: "arguments", Value: "pic.png"},
		{Name: "option-alt", Value: "A picture"},
	}
	if diff := cmp.Diff(want, encode.Attrs(n)); diff != "" {
		t.Errorf("attrs (-want +got):\n%s", diff)
	}
}

func TestValue(t *testing.T) {
	tree, _ := mustParse(t, "`x`")
	text := yaml.MapSlice{{Key: "kind", Value: "#text"}, {Key: "text", Value: "x"}}
	tr := yaml.MapSlice{{Key: "kind", Value: "title_reference"}, {Key: "children", Value: []yaml.MapSlice{text}}}
	para := yaml.MapSlice{{Key: "kind", Value: "paragraph"}, {Key: "children", Value: []yaml.MapSlice{tr}}}
	want := yaml.MapSlice{{Key: "kind", Value: "document"}, {Key: "children", Value: []yaml.MapSlice{para}}}
	if diff := cmp.Diff(want, encode.Value(tree, tree.Root)); diff != "" {
		t.Errorf("value (-want +got):\n%s", diff)
	}
	shallow := encode.Value(tree, tree.Root, encode.Depth(1))
	if diff := cmp.Diff(yaml.MapSlice{{Key: "kind", Value: "paragraph"}, {Key: "children", Value: 1}},
		shallow[1].Value.([]yaml.MapSlice)[0]); diff != "" {
		t.Errorf("depth limited value (-want +got):\n%s", diff)
	}
}

func TestYAML(t *testing.T) {
	tree, _ := mustParse(t, "`x`")
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(buf, tree, tree.Root, encode.YAMLFormat); err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("%v in\n%s", err, buf)
	}
	if got["kind"] != "document" {
		t.Errorf("decoded %v", got)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want encode.Format
		err  error
	}{
		{"", encode.PseudoXMLFormat, nil},
		{"pxml", encode.PseudoXMLFormat, nil},
		{"XML", encode.PseudoXMLFormat, nil},
		{"y", encode.YAMLFormat, nil},
		{"yaml", encode.YAMLFormat, nil},
		{"html", 0, encode.ErrUnknownFormat},
	}
	for _, tt := range tests {
		got, err := encode.ParseFormat(tt.in)
		if got != tt.want || !errors.Is(err, tt.err) {
			t.Errorf("ParseFormat(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestWriteDiagnostics(t *testing.T) {
	_, ds := mustParse(t, "text\n\n:PEP:`-1`\n")
	buf := bytes.NewBuffer(nil)
	if err := encode.WriteDiagnostics(buf, "doc.rst", ds, nil); err != nil {
		t.Fatal(err)
	}
	want := "doc.rst:3:1: ERROR: PEP number must be a number from 0 to 9999; \"-1\" is invalid.\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("diagnostics (-want +got):\n%s", diff)
	}

	ds = []ir.Diagnostic{{Severity: ir.Info, Message: "two\nlines"}}
	buf.Reset()
	if err := encode.WriteDiagnostics(buf, "", ds, nil); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "1:1: INFO: two\n    lines\n" {
		t.Errorf("got %q", got)
	}
}

func TestDiff(t *testing.T) {
	if d := encode.Diff("same\n", "same\n"); d != "" {
		t.Errorf("diff of equal texts %q", d)
	}
	d := encode.Diff("a\nb\n", "a\nc\n")
	for _, want := range []string{"  a\n", "- b\n", "+ c\n"} {
		if !strings.Contains(d, want) {
			t.Errorf("diff lacks %q:\n%s", want, d)
		}
	}
	from, _ := mustParse(t, "`x`")
	to, _ := mustParse(t, "*x*")
	td := encode.TreeDiff(from, to)
	if !strings.Contains(td, "- ") || !strings.Contains(td, "<emphasis>") {
		t.Errorf("tree diff:\n%s", td)
	}
}

func TestColors(t *testing.T) {
	c := encode.NewColors()
	if got := c.Color(encode.ElementColor, "<x>"); !strings.Contains(got, "<x>") {
		t.Errorf("colored %q", got)
	}
	if got := c.Severity(ir.Error, "100%"); !strings.Contains(got, "100%") {
		t.Errorf("colored severity %q", got)
	}
	if got := c.Color(encode.TextColor, "plain"); got != "plain" {
		t.Errorf("uncolored attribute changed to %q", got)
	}
}
