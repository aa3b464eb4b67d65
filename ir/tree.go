package ir

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/signadot/rstdoc/token"
)

// Tree is a document tree. It owns every node in an arena; parent links
// are arena indices.
type Tree struct {
	Root   NodeID
	Source string
	Doc    *token.PosDoc

	// Names is the identifier table.
	Names *Names
	// DocInfo holds bibliographic fields promoted from the first field
	// list.
	DocInfo map[string]string

	Diagnostics []Diagnostic

	nodes []*Node
	ids   map[string]NodeID
	genID int
}

// New returns a tree holding an empty document spanning src.
func New(src string) *Tree {
	t := &Tree{
		Source: src,
		Doc:    token.NewPosDoc(src),
		Names:  NewNames(),
		ids:    map[string]NodeID{},
	}
	t.Root = t.NewNode(Document, t.Doc.Span(0, len(src)))
	return t
}

func (t *Tree) Len() int {
	return len(t.nodes)
}

func (t *Tree) NewNode(k Kind, span Span) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, &Node{ID: id, Kind: k, Span: span, Parent: NoNode})
	return id
}

// NewText returns a text leaf.
func (t *Tree) NewText(s string, span Span) NodeID {
	id := t.NewNode(Text, span)
	t.nodes[id].Text = s
	return id
}

func (t *Tree) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

func (t *Tree) Kind(id NodeID) Kind {
	return t.nodes[id].Kind
}

// Append adds child as the last child of parent, detaching it first.
func (t *Tree) Append(parent, child NodeID) {
	t.Remove(child)
	p := t.nodes[parent]
	p.Children = append(p.Children, child)
	t.nodes[child].Parent = parent
}

// Insert adds child at position i among parent's children.
func (t *Tree) Insert(parent NodeID, i int, child NodeID) {
	t.Remove(child)
	p := t.nodes[parent]
	i = min(max(i, 0), len(p.Children))
	p.Children = slices.Insert(p.Children, i, child)
	t.nodes[child].Parent = parent
}

// Remove detaches id from its parent. The node and its ids stay in the
// arena.
func (t *Tree) Remove(id NodeID) {
	n := t.nodes[id]
	if n.Parent == NoNode {
		return
	}
	p := t.nodes[n.Parent]
	if i := slices.Index(p.Children, id); i >= 0 {
		p.Children = slices.Delete(p.Children, i, i+1)
	}
	n.Parent = NoNode
}

// Drop detaches id and unregisters every id declared in its subtree.
func (t *Tree) Drop(id NodeID) {
	t.Remove(id)
	t.Walk(id, func(c NodeID) bool {
		for _, s := range t.nodes[c].Attrs.IDs {
			if t.ids[s] == c {
				delete(t.ids, s)
			}
		}
		return true
	})
}

// Replace puts repl where old is. old is detached.
func (t *Tree) Replace(old, repl NodeID) {
	p := t.nodes[old].Parent
	if p == NoNode {
		return
	}
	i := t.Index(old)
	t.Remove(old)
	t.Insert(p, i, repl)
}

// Wrap makes id the only child of a new node of kind k placed where id
// was. The wrapper takes id's span.
func (t *Tree) Wrap(id NodeID, k Kind) NodeID {
	w := t.NewNode(k, t.nodes[id].Span)
	if t.nodes[id].Parent != NoNode {
		t.Replace(id, w)
	}
	t.Append(w, id)
	return w
}

// Index returns the position of id among its siblings, or -1.
func (t *Tree) Index(id NodeID) int {
	p := t.nodes[id].Parent
	if p == NoNode {
		return -1
	}
	return slices.Index(t.nodes[p].Children, id)
}

func (t *Tree) NextSibling(id NodeID) NodeID {
	p := t.nodes[id].Parent
	if p == NoNode {
		return NoNode
	}
	cs := t.nodes[p].Children
	i := slices.Index(cs, id)
	if i < 0 || i+1 >= len(cs) {
		return NoNode
	}
	return cs[i+1]
}

func (t *Tree) PrevSibling(id NodeID) NodeID {
	p := t.nodes[id].Parent
	if p == NoNode {
		return NoNode
	}
	cs := t.nodes[p].Children
	i := slices.Index(cs, id)
	if i <= 0 {
		return NoNode
	}
	return cs[i-1]
}

// Walk visits id and its descendants in document order. Returning false
// from f skips the children of the visited node.
func (t *Tree) Walk(id NodeID, f func(NodeID) bool) {
	if !f(id) {
		return
	}
	// children may be edited by f on deeper nodes, iterate a copy
	for _, c := range slices.Clone(t.nodes[id].Children) {
		t.Walk(c, f)
	}
}

// All returns the nodes reachable from the root in document order.
func (t *Tree) All() []NodeID {
	var res []NodeID
	t.Walk(t.Root, func(id NodeID) bool {
		res = append(res, id)
		return true
	})
	return res
}

// Reachable reports whether id is attached to the root.
func (t *Tree) Reachable(id NodeID) bool {
	for id != NoNode {
		if id == t.Root {
			return true
		}
		id = t.nodes[id].Parent
	}
	return false
}

// Ancestor returns the nearest ancestor of id of kind k.
func (t *Tree) Ancestor(id NodeID, k Kind) NodeID {
	for p := t.nodes[id].Parent; p != NoNode; p = t.nodes[p].Parent {
		if t.nodes[p].Kind == k {
			return p
		}
	}
	return NoNode
}

// Clone deep copies id into the arena, detached. Copies carry no ids,
// names or backrefs.
func (t *Tree) Clone(id NodeID) NodeID {
	src := t.nodes[id]
	c := t.NewNode(src.Kind, src.Span)
	n := t.nodes[c]
	n.Attrs = src.Attrs.clone()
	n.Attrs.IDs = nil
	n.Attrs.Names = nil
	n.Attrs.DupNames = nil
	n.Attrs.Backrefs = nil
	n.Text = src.Text
	n.Generated = src.Generated
	if src.Directive != nil {
		d := *src.Directive
		n.Directive = &d
	}
	for _, ch := range src.Children {
		t.Append(c, t.Clone(ch))
	}
	return c
}

// SetID registers s as an id of node id. It returns false if s is already
// used by another node.
func (t *Tree) SetID(id NodeID, s string) bool {
	if other, ok := t.ids[s]; ok {
		return other == id
	}
	t.ids[s] = id
	n := t.nodes[id]
	n.Attrs.IDs = append(n.Attrs.IDs, s)
	return true
}

// GenID gives id a fresh "idN" id unless it already has one, returning
// its first id.
func (t *Tree) GenID(id NodeID) string {
	if s := t.nodes[id].FirstID(); s != "" {
		return s
	}
	for {
		t.genID++
		s := "id" + strconv.Itoa(t.genID)
		if t.SetID(id, s) {
			return s
		}
	}
}

// EnsureID assigns an id derived from name, falling back to GenID.
func (t *Tree) EnsureID(id NodeID, name string) string {
	if s := t.nodes[id].FirstID(); s != "" {
		return s
	}
	if s := MakeID(name); s != "" && t.SetID(id, s) {
		return s
	}
	return t.GenID(id)
}

// ByID returns the node declaring id s.
func (t *Tree) ByID(s string) (NodeID, bool) {
	id, ok := t.ids[s]
	return id, ok
}

// MoveIDs transfers ids and names of from onto to.
func (t *Tree) MoveIDs(from, to NodeID) {
	f, d := t.nodes[from], t.nodes[to]
	for _, s := range f.Attrs.IDs {
		t.ids[s] = to
		if !slices.Contains(d.Attrs.IDs, s) {
			d.Attrs.IDs = append(d.Attrs.IDs, s)
		}
	}
	for _, s := range f.Attrs.Names {
		if !slices.Contains(d.Attrs.Names, s) {
			d.Attrs.Names = append(d.Attrs.Names, s)
		}
	}
	f.Attrs.IDs = nil
	f.Attrs.Names = nil
}

// Text returns the rendered text of id.
func (t *Tree) Text(id NodeID) string {
	var b strings.Builder
	t.Walk(id, func(c NodeID) bool {
		b.WriteString(t.nodes[c].Text)
		return true
	})
	return b.String()
}

// Refit shrinks or grows the span of id to end where its last
// non-generated child ends.
func (t *Tree) Refit(id NodeID) {
	n := t.nodes[id]
	for i := len(n.Children) - 1; i >= 0; i-- {
		c := t.nodes[n.Children[i]]
		if c.Generated {
			continue
		}
		n.Span.End = c.Span.End
		return
	}
}

// Slice returns the source text under id's span.
func (t *Tree) Slice(id NodeID) string {
	return t.Doc.Slice(t.nodes[id].Span)
}

func (t *Tree) String() string {
	return fmt.Sprintf("Tree(%d nodes, %d diagnostics)", len(t.nodes), len(t.Diagnostics))
}
