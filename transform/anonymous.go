package transform

import (
	"github.com/signadot/rstdoc/ir"
)

// AnonymousHyperlinks pairs anonymous references with anonymous targets
// in document order. When the counts differ nothing is paired and every
// anonymous reference becomes problematic.
func AnonymousHyperlinks(t *ir.Tree) {
	var refs, targets []ir.NodeID
	t.Walk(t.Root, func(id ir.NodeID) bool {
		n := t.Node(id)
		if !n.Attrs.Anonymous {
			return true
		}
		switch n.Kind {
		case ir.Reference:
			refs = append(refs, id)
		case ir.Target:
			targets = append(targets, id)
		}
		return true
	})
	if len(refs) != len(targets) {
		span := t.Node(t.Root).Span
		if len(refs) > 0 {
			span = t.Node(refs[0]).Span
		}
		diag := t.Reportf(ir.Error, span, nil,
			"Anonymous hyperlink mismatch: %d references but %d targets.\nSee \"backrefs\" attribute for IDs.",
			len(refs), len(targets))
		for _, r := range refs {
			problematic(t, r, diag)
		}
		return
	}
	for i, r := range refs {
		rn := t.Node(r)
		if resolved(rn) || rn.Attrs.Refname != "" || inProblematic(t, r) {
			continue
		}
		// indirect targets are resolved by name later
		if tg := t.Node(targets[i]); tg.Attrs.Refname != "" {
			rn.Attrs.Refname = tg.Attrs.Refname
			continue
		}
		link(t, r, targetID(t, targets[i]))
	}
}
