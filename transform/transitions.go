package transform

import (
	"github.com/signadot/rstdoc/ir"
)

// Transitions checks the placement of transitions. A transition ending a
// section is moved after the section, out of as many sections as it
// ends.
func Transitions(t *ir.Tree) {
	for _, tr := range collect(t, ir.Transition) {
		transition(t, tr)
	}
}

func transition(t *ir.Tree, tr ir.NodeID) {
	n := t.Node(tr)
	parent := n.Parent
	cs := t.Node(parent).Children
	i := t.Index(tr)
	first := 0
	for first < len(cs) && (t.Kind(cs[first]) == ir.Title || t.Kind(cs[first]) == ir.Subtitle) {
		first++
	}
	switch {
	case i <= first:
		t.Reportf(ir.Error, n.Span, []ir.NodeID{tr}, "Document or section may not begin with a transition.")
	case t.Kind(cs[i-1]) == ir.Transition:
		t.Reportf(ir.Error, n.Span, []ir.NodeID{tr},
			"At least one body element must separate transitions; adjacent transitions are not allowed.")
	}
	if i != len(cs)-1 {
		return
	}
	sibling := tr
	for t.Index(sibling) == len(t.Node(t.Node(sibling).Parent).Children)-1 {
		sibling = t.Node(sibling).Parent
		if sibling == t.Root {
			t.Reportf(ir.Error, n.Span, []ir.NodeID{tr}, "Document may not end with a transition.")
			return
		}
	}
	for p := parent; p != t.Node(sibling).Parent; p = t.Node(p).Parent {
		t.Remove(tr)
		t.Refit(p)
	}
	sp := t.Node(sibling).Parent
	t.Insert(sp, t.Index(sibling)+1, tr)
}
