package transform

import (
	"github.com/signadot/rstdoc/ir"
)

// collect returns the reachable nodes of kind k in document order.
func collect(t *ir.Tree, k ir.Kind) []ir.NodeID {
	var res []ir.NodeID
	t.Walk(t.Root, func(id ir.NodeID) bool {
		if t.Kind(id) == k {
			res = append(res, id)
		}
		return true
	})
	return res
}

func resolved(n *ir.Node) bool {
	return n.Attrs.Refuri != "" || n.Attrs.Refid != ""
}

func inProblematic(t *ir.Tree, id ir.NodeID) bool {
	return t.Ancestor(id, ir.Problematic) != ir.NoNode
}

// link points ref at the node holding target id tid, or at its URI when
// that node is an external target. Resolved indirect targets are
// followed to their terminal. Every target passed records ref in its
// backrefs. It reports false when the holder is still an unresolved
// indirect target.
func link(t *ir.Tree, ref ir.NodeID, tid string) bool {
	holder, ok := t.ByID(tid)
	if !ok {
		return false
	}
	h := t.Node(holder)
	a := &t.Node(ref).Attrs
	if h.Kind == ir.Target {
		switch {
		case h.Attrs.Refname != "":
			return false
		case h.Attrs.Refuri != "":
			a.Refuri = h.Attrs.Refuri
			a.Refname = ""
			h.Attrs.AddBackref(t.GenID(ref))
			return true
		case h.Attrs.Refid != "" && h.Attrs.Refid != tid:
			if !link(t, ref, h.Attrs.Refid) {
				return false
			}
			h.Attrs.AddBackref(t.GenID(ref))
			return true
		}
	}
	a.Refid = tid
	a.Refname = ""
	h.Attrs.AddBackref(t.GenID(ref))
	return true
}

// targetID returns the id under which a target can be linked to.
// Propagated targets point at the element that took over their ids.
func targetID(t *ir.Tree, tg ir.NodeID) string {
	n := t.Node(tg)
	if n.Attrs.Refid != "" && len(n.Attrs.IDs) == 0 {
		return n.Attrs.Refid
	}
	return t.GenID(tg)
}

// problematic wraps id in a problematic node for the diagnostic diag.
func problematic(t *ir.Tree, id ir.NodeID, diag string) {
	if inProblematic(t, id) {
		t.Attach(diag, t.Ancestor(id, ir.Problematic))
		return
	}
	t.MakeProblematic(id, diag)
}

// prebibliographic kinds may precede the document title and docinfo.
func prebibliographic(k ir.Kind) bool {
	switch k {
	case ir.Comment, ir.Target, ir.SubstitutionDefinition, ir.Directive, ir.Title, ir.Subtitle, ir.Docinfo:
		return true
	}
	return false
}

// firstBody returns the index among the children of id of the first
// child that is not prebibliographic, or -1.
func firstBody(t *ir.Tree, id ir.NodeID, from int) int {
	cs := t.Node(id).Children
	for i := from; i < len(cs); i++ {
		if !prebibliographic(t.Kind(cs[i])) {
			return i
		}
	}
	return -1
}
