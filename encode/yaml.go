package encode

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/signadot/rstdoc/ir"
)

// Value returns the subtree at id as ordered YAML data: a mapping with
// the node kind, its span, attributes, text and children.
func Value(t *ir.Tree, id ir.NodeID, opts ...EncodeOption) yaml.MapSlice {
	es := newState(opts)
	return es.value(t, id, 0)
}

func (es *EncState) value(t *ir.Tree, id ir.NodeID, depth int) yaml.MapSlice {
	n := t.Node(id)
	res := yaml.MapSlice{{Key: "kind", Value: n.Kind.String()}}
	if es.spans {
		res = append(res, yaml.MapItem{Key: "span", Value: n.Span.String()})
	}
	if n.Generated {
		res = append(res, yaml.MapItem{Key: "generated", Value: true})
	}
	if attrs := Attrs(n); len(attrs) > 0 {
		m := make(yaml.MapSlice, len(attrs))
		for i, a := range attrs {
			m[i] = yaml.MapItem{Key: a.Name, Value: a.Value}
		}
		res = append(res, yaml.MapItem{Key: "attrs", Value: m})
	}
	if n.Text != "" {
		res = append(res, yaml.MapItem{Key: "text", Value: n.Text})
	}
	if len(n.Children) == 0 {
		return res
	}
	if es.maxDepth > 0 && depth >= es.maxDepth {
		return append(res, yaml.MapItem{Key: "children", Value: len(n.Children)})
	}
	cs := make([]yaml.MapSlice, len(n.Children))
	for i, c := range n.Children {
		cs[i] = es.value(t, c, depth+1)
	}
	return append(res, yaml.MapItem{Key: "children", Value: cs})
}

// YAML writes the subtree at id as YAML.
func YAML(w io.Writer, t *ir.Tree, id ir.NodeID, opts ...EncodeOption) error {
	v := Value(t, id, opts...)
	enc := yaml.NewEncoder(w, yaml.Indent(2), yaml.UseLiteralStyleIfMultiline(true))
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding node %d: %w", id, err)
	}
	return nil
}

// DiagnosticValues returns diagnostics as YAML data.
func DiagnosticValues(ds []ir.Diagnostic) []yaml.MapSlice {
	res := make([]yaml.MapSlice, len(ds))
	for i := range ds {
		d := &ds[i]
		res[i] = yaml.MapSlice{
			{Key: "id", Value: d.ID},
			{Key: "severity", Value: d.Severity.String()},
			{Key: "span", Value: d.Span.String()},
			{Key: "message", Value: d.Message},
		}
	}
	return res
}
