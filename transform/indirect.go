package transform

import (
	"slices"

	"github.com/signadot/rstdoc/ir"
)

// IndirectHyperlinks resolves targets that refer to other targets by
// name. Every target along a chain ends up pointing at the chain's
// terminal URI or id. Chains that loop or lead nowhere are reported and
// left unresolved.
func IndirectHyperlinks(t *ir.Tree) {
	for _, tg := range collect(t, ir.Target) {
		if t.Node(tg).Attrs.Refname == "" {
			continue
		}
		resolveIndirect(t, tg, nil)
	}
}

func resolveIndirect(t *ir.Tree, tg ir.NodeID, chain []ir.NodeID) bool {
	n := t.Node(tg)
	if n.Attrs.Refname == "" {
		return resolved(n)
	}
	refname := n.Attrs.Refname
	if slices.Contains(chain, tg) {
		t.Reportf(ir.Error, n.Span, chain,
			"Indirect hyperlink target %s refers to target %q, forming a circular reference.", describe(n), refname)
		return false
	}
	if t.Names.Ambiguous(refname) {
		t.Reportf(ir.Error, n.Span, []ir.NodeID{tg},
			"Indirect hyperlink target %s refers to target %q, which is a duplicate, and cannot be used as a unique reference.",
			describe(n), refname)
		return false
	}
	tid, ok := t.Names.TargetID(refname)
	if !ok {
		t.Reportf(ir.Error, n.Span, []ir.NodeID{tg},
			"Indirect hyperlink target %s refers to target %q, which does not exist.", describe(n), refname)
		return false
	}
	holder, ok := t.ByID(tid)
	if !ok {
		return false
	}
	if h := t.Node(holder); h.Kind == ir.Target && h.Attrs.Refname != "" {
		if !resolveIndirect(t, holder, append(chain, tg)) {
			return false
		}
	}
	return link(t, tg, tid)
}

func describe(n *ir.Node) string {
	if len(n.Attrs.Names) > 0 {
		return `"` + n.Attrs.Names[0] + `"`
	}
	if id := n.FirstID(); id != "" {
		return `(id="` + id + `")`
	}
	return "(anonymous)"
}
