package transform

import (
	"slices"

	"github.com/signadot/rstdoc/ir"
)

// Substitutions fills every substitution reference with generated copies
// of its definition's content. Undefined names are left for
// DanglingReferences.
func Substitutions(t *ir.Tree) {
	for _, ref := range collect(t, ir.SubstitutionReference) {
		substitute(t, ref, nil)
	}
}

func substitute(t *ir.Tree, ref ir.NodeID, chain []string) {
	r := t.Node(ref)
	if r.Attrs.Refid != "" {
		return
	}
	name := ir.NormalizeName(r.Attrs.Refname)
	def, ok := t.Names.Substitution(name)
	if !ok || !t.Reachable(def) {
		return
	}
	if slices.Contains(chain, name) {
		t.Reportf(ir.Error, r.Span, []ir.NodeID{ref},
			"Circular substitution definition referenced: %q.", r.Attrs.Refname)
		return
	}
	d := t.Node(def)
	for _, c := range slices.Clone(r.Children) {
		t.Drop(c)
	}
	var nested []ir.NodeID
	for _, c := range d.Children {
		cp := t.Clone(c)
		t.Walk(cp, func(id ir.NodeID) bool {
			n := t.Node(id)
			n.Generated = true
			n.Span = r.Span
			if n.Kind == ir.SubstitutionReference && n.Attrs.Refid == "" {
				nested = append(nested, id)
			}
			return true
		})
		t.Append(ref, cp)
	}
	did := t.GenID(def)
	r.Attrs.Refid = did
	d.Attrs.AddBackref(t.GenID(ref))
	chain = append(chain, name)
	for _, n := range nested {
		substitute(t, n, chain)
	}
}
