package transform

import (
	"github.com/signadot/rstdoc/ir"
)

// invisible kinds are skipped when looking for the element a target
// propagates to.
func invisible(k ir.Kind) bool {
	switch k {
	case ir.Target, ir.Comment, ir.SubstitutionDefinition:
		return true
	}
	return false
}

// PropagateTargets moves the ids and names of internal block targets onto
// the element that follows them. The target keeps a refid to its first
// id.
func PropagateTargets(t *ir.Tree) {
	for _, tg := range collect(t, ir.Target) {
		n := t.Node(tg)
		if n.Parent == ir.NoNode || t.Kind(n.Parent).IsInline() || textElement(t.Kind(n.Parent)) {
			continue
		}
		if n.Attrs.Refid != "" || n.Attrs.Refuri != "" || n.Attrs.Refname != "" {
			continue
		}
		next := following(t, tg)
		if next == ir.NoNode {
			continue
		}
		id := t.GenID(tg)
		if len(n.Attrs.Names) > 0 {
			n.Attrs.Set("name", n.Attrs.Names[0])
		}
		t.MoveIDs(tg, next)
		n.Attrs.Refid = id
	}
}

// following returns the first visible element after id, ascending out of
// containers that end.
func following(t *ir.Tree, id ir.NodeID) ir.NodeID {
	for cur := id; cur != t.Root; cur = t.Node(cur).Parent {
		for s := t.NextSibling(cur); s != ir.NoNode; s = t.NextSibling(s) {
			if !invisible(t.Kind(s)) {
				return s
			}
		}
	}
	return ir.NoNode
}

// textElement kinds hold inline content.
func textElement(k ir.Kind) bool {
	switch k {
	case ir.Paragraph, ir.Title, ir.Subtitle, ir.Term, ir.FieldName, ir.Rubric, ir.Caption, ir.LiteralBlock:
		return true
	}
	return false
}
