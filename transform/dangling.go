package transform

import (
	"github.com/signadot/rstdoc/ir"
)

// DanglingReferences reports references that are still unresolved and
// targets and substitution definitions nothing refers to. Reference
// problems are informational since other documents may supply the
// names; an undefined substitution is an error. The tree is not changed.
func DanglingReferences(t *ir.Tree) {
	t.Walk(t.Root, func(id ir.NodeID) bool {
		n := t.Node(id)
		if n.Generated || n.Kind == ir.Problematic {
			return false
		}
		switch n.Kind {
		case ir.Reference, ir.FootnoteReference, ir.CitationReference:
			if resolved(n) || n.Attrs.Refname == "" {
				return true
			}
			t.Reportf(ir.Info, n.Span, []ir.NodeID{id}, "Unknown target name: %q.", n.Attrs.Refname)
		case ir.SubstitutionReference:
			if resolved(n) {
				return true
			}
			t.Reportf(ir.Error, n.Span, []ir.NodeID{id}, "Undefined substitution referenced: %q.", n.Attrs.Refname)
		case ir.Target:
			if n.Attrs.Anonymous || t.Kind(n.Parent) == ir.Reference || referenced(t, n) {
				return true
			}
			name := n.Attrs.Get("name")
			if len(n.Attrs.Names) > 0 {
				name = n.Attrs.Names[0]
			}
			if name == "" {
				return true
			}
			t.Reportf(ir.Info, n.Span, []ir.NodeID{id}, "Hyperlink target %q is not referenced.", name)
		case ir.SubstitutionDefinition:
			if len(n.Attrs.Backrefs) == 0 && len(n.Attrs.Names) > 0 {
				t.Reportf(ir.Info, n.Span, []ir.NodeID{id}, "Substitution definition %q is not referenced.", n.Attrs.Names[0])
			}
			return false
		}
		return true
	})
}

// referenced reports whether a target, or the element that took over its
// ids, has backrefs.
func referenced(t *ir.Tree, n *ir.Node) bool {
	if len(n.Attrs.Backrefs) > 0 {
		return true
	}
	if n.Attrs.Refid == "" || len(n.Attrs.IDs) > 0 {
		return false
	}
	h, ok := t.ByID(n.Attrs.Refid)
	return ok && len(t.Node(h).Attrs.Backrefs) > 0
}
