package encode

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/signadot/rstdoc/ir"
)

type EncState struct {
	indent      int
	maxDepth    int
	spans       bool
	diagnostics bool

	Color func(ColorAttr, string) string
}

func newState(opts []EncodeOption) *EncState {
	es := &EncState{indent: 4}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

func (es *EncState) color(a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(a, s)
}

// Attr is a rendered attribute.
type Attr struct {
	Name, Value string
}

// Attrs lists the attributes of a node the way they are rendered: the
// common attributes in a fixed order, then the others sorted by name.
// Empty attributes are left out.
func Attrs(n *ir.Node) []Attr {
	var res []Attr
	list := func(name string, vs []string) {
		if len(vs) == 0 {
			return
		}
		esc := make([]string, len(vs))
		for i, v := range vs {
			esc[i] = strings.ReplaceAll(v, " ", `\ `)
		}
		res = append(res, Attr{name, strings.Join(esc, " ")})
	}
	str := func(name, v string) {
		if v != "" {
			res = append(res, Attr{name, v})
		}
	}
	a := &n.Attrs
	if a.Anonymous {
		str("anonymous", "1")
	}
	str("auto", a.Auto.String())
	list("backrefs", a.Backrefs)
	list("classes", a.Classes)
	list("dupnames", a.DupNames)
	list("ids", a.IDs)
	list("names", a.Names)
	str("refid", a.Refid)
	str("refname", a.Refname)
	str("refuri", a.Refuri)
	keys := make([]string, 0, len(a.Extra))
	for k := range a.Extra {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		res = append(res, Attr{k, a.Extra[k]})
	}
	if d := n.Directive; d != nil {
		str("directive", d.Name)
		if d.Args != "" {
			str("arguments", d.Args)
		}
		for _, o := range d.OptionOrder {
			res = append(res, Attr{"option-" + o, d.Options[o]})
		}
	}
	return res
}

// PseudoXML writes the subtree at id as indented pseudo-XML: one element
// per line, attributes inline, text indented below its element.
func PseudoXML(w io.Writer, t *ir.Tree, id ir.NodeID, opts ...EncodeOption) error {
	es := newState(opts)
	buf := bytes.NewBuffer(nil)
	es.element(buf, t, id, 0)
	if es.diagnostics && id == t.Root {
		for i := range t.Diagnostics {
			es.diagnostic(buf, t, &t.Diagnostics[i], 1)
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// MustString returns the pseudo-XML of the whole tree.
func MustString(t *ir.Tree, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := PseudoXML(buf, t, t.Root, opts...); err != nil {
		panic(err)
	}
	return buf.String()
}

func (es *EncState) pad(depth int) string {
	return strings.Repeat(" ", depth*es.indent)
}

func (es *EncState) text(buf *bytes.Buffer, s string, depth int) {
	for _, l := range strings.Split(s, "\n") {
		buf.WriteString(es.pad(depth))
		buf.WriteString(es.color(TextColor, l))
		buf.WriteByte('\n')
	}
}

func (es *EncState) element(buf *bytes.Buffer, t *ir.Tree, id ir.NodeID, depth int) {
	n := t.Node(id)
	if n.Kind == ir.Text {
		es.text(buf, n.Text, depth)
		return
	}
	buf.WriteString(es.pad(depth))
	buf.WriteString(es.color(ElementColor, "<"+n.Kind.String()))
	attrs := Attrs(n)
	if es.spans {
		attrs = append(attrs, Attr{"span", n.Span.String()})
	}
	if n.Generated {
		attrs = append(attrs, Attr{"generated", "1"})
	}
	for _, a := range attrs {
		buf.WriteByte(' ')
		buf.WriteString(es.color(AttrColor, a.Name))
		buf.WriteByte('=')
		buf.WriteString(es.color(ValueColor, strconv.Quote(a.Value)))
	}
	buf.WriteString(es.color(ElementColor, ">"))
	buf.WriteByte('\n')
	if es.maxDepth > 0 && depth >= es.maxDepth {
		if len(n.Children) > 0 {
			buf.WriteString(es.pad(depth + 1))
			buf.WriteString("...\n")
		}
		return
	}
	if n.Text != "" {
		es.text(buf, n.Text, depth+1)
	}
	for _, c := range n.Children {
		es.element(buf, t, c, depth+1)
	}
}

func (es *EncState) diagnostic(buf *bytes.Buffer, t *ir.Tree, d *ir.Diagnostic, depth int) {
	var backrefs []string
	for _, nid := range d.Nodes {
		if n := t.Node(nid); n != nil && n.Kind == ir.Problematic {
			if s := n.FirstID(); s != "" {
				backrefs = append(backrefs, s)
			}
		}
	}
	head := fmt.Sprintf("<system_message ids=%q level=\"%d\" line=\"%d\" type=%q",
		d.ID, int(d.Severity), d.Span.Start.Line, d.Severity.String())
	if len(backrefs) > 0 {
		head += fmt.Sprintf(" backrefs=%q", strings.Join(backrefs, " "))
	}
	buf.WriteString(es.pad(depth))
	buf.WriteString(es.color(ElementColor, head+">"))
	buf.WriteByte('\n')
	buf.WriteString(es.pad(depth + 1))
	buf.WriteString(es.color(ElementColor, "<paragraph>"))
	buf.WriteByte('\n')
	es.text(buf, d.Message, depth+2)
}
