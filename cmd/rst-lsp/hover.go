package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/signadot/rstdoc/encode"
	"github.com/signadot/rstdoc/ir"
	"github.com/signadot/rstdoc/workspace"
	"go.lsp.dev/protocol"
)

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	snap := s.snapshot(params.TextDocument.URI)
	if snap == nil {
		return nil, nil
	}
	line, col := fromPosition(snap.Tree, params.Position)
	id, ok := snap.Index.NodeAt(line, col)
	if !ok {
		return nil, nil
	}
	// text leaves say little on their own
	if snap.Tree.Kind(id) == ir.Text && snap.Tree.Node(id).Parent != ir.NoNode {
		id = snap.Tree.Node(id).Parent
	}
	hoverText := buildHoverText(snap, id)
	if hoverText == "" {
		return nil, nil
	}
	rng := toRange(snap.Tree, snap.Tree.Node(id).Span)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: hoverText,
		},
		Range: &rng,
	}, nil
}

func buildHoverText(snap *workspace.Snapshot, id ir.NodeID) string {
	t := snap.Tree
	n := t.Node(id)
	var parts []string
	parts = append(parts, fmt.Sprintf("**%s**", n.Kind))
	if v := hoverValue(t, n); len(v) > 0 {
		parts = append(parts, "```yaml\n"+yamlString(v)+"```")
	}
	if def, ok := snap.Index.DefinitionOf(id); ok && def != id {
		d := t.Node(def)
		parts = append(parts, fmt.Sprintf("resolves to **%s** at line %d", d.Kind, d.Span.Start.Line))
	}
	if n.Kind == ir.Problematic {
		for _, d := range snap.Diagnostics {
			if d.ID == n.Attrs.Refid {
				parts = append(parts, fmt.Sprintf("%s: %s", d.Severity, d.Message))
			}
		}
	}
	if len(n.Attrs.Backrefs) > 0 {
		parts = append(parts, fmt.Sprintf("%d reference(s)", len(n.Attrs.Backrefs)))
	}
	return strings.Join(parts, "\n\n")
}

// hoverValue lists a node's attributes, along with how it was written
// when it comes from a directive.
func hoverValue(t *ir.Tree, n *ir.Node) yaml.MapSlice {
	var res yaml.MapSlice
	for _, a := range encode.Attrs(n) {
		res = append(res, yaml.MapItem{Key: a.Name, Value: a.Value})
	}
	if n.Kind == ir.Reference || n.Kind == ir.Target {
		if txt := strings.TrimSpace(t.Text(n.ID)); txt != "" {
			res = append(res, yaml.MapItem{Key: "text", Value: txt})
		}
	}
	return res
}

func yamlString(v any) string {
	buf := bytes.NewBuffer(nil)
	enc := yaml.NewEncoder(buf, yaml.Indent(2), yaml.UseLiteralStyleIfMultiline(true))
	if err := enc.Encode(v); err != nil {
		return err.Error() + "\n"
	}
	return buf.String()
}
