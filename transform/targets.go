package transform

import (
	"github.com/signadot/rstdoc/ir"
)

// ExternalTargets resolves named references whose target carries a URI.
func ExternalTargets(t *ir.Tree) {
	resolveNamed(t, true)
}

// InternalTargets resolves the remaining named references to the id of
// their target.
func InternalTargets(t *ir.Tree) {
	resolveNamed(t, false)
}

func resolveNamed(t *ir.Tree, external bool) {
	for _, ref := range collect(t, ir.Reference) {
		r := t.Node(ref)
		if resolved(r) || r.Attrs.Refname == "" || inProblematic(t, ref) {
			continue
		}
		name := r.Attrs.Refname
		if t.Names.Ambiguous(name) {
			if external {
				continue
			}
			diag := t.Reportf(ir.Error, r.Span, []ir.NodeID{ref},
				"Duplicate target name, cannot be used as a unique reference: %q.", name)
			problematic(t, ref, diag)
			continue
		}
		tid, ok := t.Names.TargetID(name)
		if !ok {
			continue
		}
		holder, ok := t.ByID(tid)
		if !ok || isExternal(t, holder) != external {
			continue
		}
		link(t, ref, tid)
	}
}

// isExternal reports whether links to id end at a URI.
func isExternal(t *ir.Tree, id ir.NodeID) bool {
	n := t.Node(id)
	return n.Kind == ir.Target && n.Attrs.Refuri != ""
}
