package index

import (
	"fmt"
	"slices"
	"sort"

	"github.com/signadot/rstdoc/debug"
	"github.com/signadot/rstdoc/ir"
)

// Index is a read only view of a tree sorted by position. It must not be
// used after the tree is modified.
type Index struct {
	t *ir.Tree

	// nodes reachable from the root, sorted by start offset with
	// ancestors before descendants
	nodes []ir.NodeID
	depth map[ir.NodeID]int
	// position of every node in nodes
	order map[ir.NodeID]int
	// declaring node of every backref id
	holders map[string][]ir.NodeID
}

// Build indexes every node reachable from the root of t.
func Build(t *ir.Tree) *Index {
	x := &Index{
		t:       t,
		depth:   map[ir.NodeID]int{},
		order:   map[ir.NodeID]int{},
		holders: map[string][]ir.NodeID{},
	}
	var walk func(id ir.NodeID, d int)
	walk = func(id ir.NodeID, d int) {
		n := t.Node(id)
		x.nodes = append(x.nodes, id)
		x.depth[id] = d
		for _, b := range n.Attrs.Backrefs {
			x.holders[b] = append(x.holders[b], id)
		}
		for _, c := range n.Children {
			walk(c, d+1)
		}
	}
	walk(t.Root, 0)
	slices.SortStableFunc(x.nodes, func(a, b ir.NodeID) int {
		sa, sb := t.Node(a).Span.Start.Offset, t.Node(b).Span.Start.Offset
		if sa != sb {
			return sa - sb
		}
		return x.depth[a] - x.depth[b]
	})
	for i, id := range x.nodes {
		x.order[id] = i
	}
	if debug.Index() {
		debug.Logf("index: %d nodes, %d backref ids\n", len(x.nodes), len(x.holders))
	}
	return x
}

func (x *Index) Tree() *ir.Tree {
	return x.t
}

// Len returns the number of indexed nodes.
func (x *Index) Len() int {
	return len(x.nodes)
}

// NodeAt returns the innermost node covering line and col.
func (x *Index) NodeAt(line, col int) (ir.NodeID, bool) {
	return x.NodeAtOffset(x.t.Doc.Offset(line, col))
}

// NodeAtOffset is NodeAt for a byte offset.
func (x *Index) NodeAtOffset(off int) (ir.NodeID, bool) {
	i := sort.Search(len(x.nodes), func(i int) bool {
		return x.t.Node(x.nodes[i]).Span.Start.Offset > off
	})
	best := ir.NoNode
	if i > 0 {
		// the last node starting at or before off lies inside the
		// innermost node covering off, as sibling spans do not overlap
		for id := x.nodes[i-1]; id != ir.NoNode; id = x.t.Node(id).Parent {
			if x.t.Node(id).Span.ContainsOffset(off) {
				best = id
				break
			}
		}
	}
	if debug.Index() {
		debug.Logf("index: offset %d -> %d\n", off, best)
	}
	return best, best != ir.NoNode
}

// ReferencesTo returns the nodes resolved to the node declaring id, in
// document order.
func (x *Index) ReferencesTo(id string) ([]ir.NodeID, error) {
	decl, ok := x.t.ByID(id)
	if !ok || !x.t.Reachable(decl) {
		return nil, fmt.Errorf("%w: %q", ErrNoSuchID, id)
	}
	var res []ir.NodeID
	for _, b := range x.t.Node(decl).Attrs.Backrefs {
		if r, ok := x.t.ByID(b); ok && x.t.Reachable(r) {
			res = append(res, r)
		}
	}
	x.sortDocOrder(res)
	return res, nil
}

// Holders returns the nodes listing id among their backrefs.
func (x *Index) Holders(id string) []ir.NodeID {
	return slices.Clone(x.holders[id])
}

// DefinitionOf returns the node id resolves to. id may be a reference
// or any node inside one. Unresolved references fall back to the
// identifier table.
func (x *Index) DefinitionOf(id ir.NodeID) (ir.NodeID, bool) {
	ref := x.referenceAt(id)
	if ref == ir.NoNode {
		return ir.NoNode, false
	}
	n := x.t.Node(ref)
	if n.Attrs.Refid != "" {
		if d, ok := x.t.ByID(n.Attrs.Refid); ok && x.t.Reachable(d) {
			return d, true
		}
	}
	for _, s := range n.Attrs.IDs {
		for _, h := range x.holders[s] {
			return h, true
		}
	}
	if n.Attrs.Refname == "" {
		return ir.NoNode, false
	}
	if n.Kind == ir.SubstitutionReference {
		d, ok := x.t.Names.Substitution(n.Attrs.Refname)
		return d, ok && x.t.Reachable(d)
	}
	d, ok := x.t.Names.Target(n.Attrs.Refname)
	return d, ok && x.t.Reachable(d)
}

// referenceAt returns the closest node at or above id that points
// elsewhere.
func (x *Index) referenceAt(id ir.NodeID) ir.NodeID {
	for id != ir.NoNode {
		n := x.t.Node(id)
		switch {
		case n.Kind == ir.Problematic:
		case n.Kind.IsReference():
			return id
		case n.Kind == ir.Target && (n.Attrs.Refname != "" || n.Attrs.Refid != ""):
			return id
		}
		id = n.Parent
	}
	return ir.NoNode
}

// Declarations returns the reachable nodes declaring name in any
// namespace: targets, substitution definitions and custom roles.
func (x *Index) Declarations(name string) []ir.NodeID {
	var res []ir.NodeID
	for _, id := range x.t.Names.Lookup(name) {
		if x.t.Reachable(id) && !slices.Contains(res, id) {
			res = append(res, id)
		}
	}
	x.sortDocOrder(res)
	return res
}

func (x *Index) sortDocOrder(ids []ir.NodeID) {
	slices.SortStableFunc(ids, func(a, b ir.NodeID) int {
		return x.order[a] - x.order[b]
	})
}
