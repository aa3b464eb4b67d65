package ir

import (
	"slices"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

// NormalizeName collapses whitespace and case folds a reference name.
func NormalizeName(s string) string {
	return folder.String(strings.Join(strings.Fields(s), " "))
}

// MakeID derives an id from a name: accents are decomposed and dropped,
// leaving lower case ASCII letters and digits with runs of anything else
// folded into single hyphens. Leading characters that are not letters are
// dropped.
func MakeID(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range norm.NFKD.String(folder.String(name)) {
		switch {
		case unicode.Is(unicode.Mn, r):
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9' && b.Len() > 0:
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		default:
			dash = true
		}
	}
	return b.String()
}

// Names is the identifier table of a document: normalized names mapped
// to the nodes declaring them.
type Names struct {
	targets   map[string][]NodeID
	explicit  map[NodeID]bool
	ambiguous map[string]bool
	holder    map[string]NodeID
	holderID  map[string]string
	subs      map[string]NodeID
	roles     map[string]NodeID
}

func NewNames() *Names {
	return &Names{
		targets:   map[string][]NodeID{},
		explicit:  map[NodeID]bool{},
		ambiguous: map[string]bool{},
		holder:    map[string]NodeID{},
		holderID:  map[string]string{},
		subs:      map[string]NodeID{},
		roles:     map[string]NodeID{},
	}
}

// Target returns the node holding name. Ambiguous names have no holder.
func (n *Names) Target(name string) (NodeID, bool) {
	id, ok := n.holder[NormalizeName(name)]
	return id, ok
}

// TargetID returns the id given to the node holding name when the table
// was built. Nodes may later hand their ids over to others; the id keeps
// pointing at whoever holds it.
func (n *Names) TargetID(name string) (string, bool) {
	id, ok := n.holderID[NormalizeName(name)]
	return id, ok
}

func (n *Names) Ambiguous(name string) bool {
	return n.ambiguous[NormalizeName(name)]
}

// Targets returns every node that declared name, including demoted
// duplicates.
func (n *Names) Targets(name string) []NodeID {
	return slices.Clone(n.targets[NormalizeName(name)])
}

func (n *Names) Substitution(name string) (NodeID, bool) {
	id, ok := n.subs[NormalizeName(name)]
	return id, ok
}

// Substitutions returns the substitution definitions in arena order.
func (n *Names) Substitutions() []NodeID {
	res := make([]NodeID, 0, len(n.subs))
	for _, id := range n.subs {
		res = append(res, id)
	}
	slices.Sort(res)
	return res
}

// AddRole records the directive that declared a custom role.
func (n *Names) AddRole(name string, decl NodeID) {
	n.roles[NormalizeName(name)] = decl
}

func (n *Names) Role(name string) (NodeID, bool) {
	id, ok := n.roles[NormalizeName(name)]
	return id, ok
}

// Roles returns the names of the custom roles, sorted.
func (n *Names) Roles() []string {
	res := make([]string, 0, len(n.roles))
	for k := range n.roles {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}

// Lookup returns the declarations of name in every namespace.
func (n *Names) Lookup(name string) []NodeID {
	name = NormalizeName(name)
	res := slices.Clone(n.targets[name])
	if id, ok := n.subs[name]; ok {
		res = append(res, id)
	}
	if id, ok := n.roles[name]; ok {
		res = append(res, id)
	}
	return res
}

// All returns every declared name, sorted.
func (n *Names) All() []string {
	set := map[string]bool{}
	for k := range n.targets {
		set[k] = true
	}
	for k := range n.subs {
		set[k] = true
	}
	for k := range n.roles {
		set[k] = true
	}
	res := make([]string, 0, len(set))
	for k := range set {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}

func isExplicitKind(k Kind) bool {
	return k != Section
}

// BuildNames fills t.Names from the names declared in t, in document
// order, and gives every named node an id. Duplicates are reported and
// demoted to dupnames.
func BuildNames(t *Tree) {
	names := t.Names
	t.Walk(t.Root, func(id NodeID) bool {
		node := t.nodes[id]
		if node.Kind == SubstitutionDefinition {
			buildSub(t, id)
			return true
		}
		for _, name := range slices.Clone(node.Attrs.Names) {
			sid := t.EnsureID(id, name)
			key := NormalizeName(name)
			prev := names.targets[key]
			names.targets[key] = append(prev, id)
			names.explicit[id] = isExplicitKind(node.Kind)
			if len(prev) == 0 {
				names.holder[key] = id
				names.holderID[key] = sid
				continue
			}
			declareDuplicate(t, key, name, id)
		}
		return true
	})
}

func buildSub(t *Tree, id NodeID) {
	node := t.nodes[id]
	for _, name := range slices.Clone(node.Attrs.Names) {
		t.EnsureID(id, name)
		key := NormalizeName(name)
		if _, ok := t.Names.subs[key]; ok {
			demote(t, id, name)
			t.Reportf(Error, node.Span, []NodeID{id},
				"Duplicate substitution definition name: %q.", name)
			continue
		}
		t.Names.subs[key] = id
	}
}

func declareDuplicate(t *Tree, key, name string, id NodeID) {
	names := t.Names
	node := t.nodes[id]
	explicit := names.explicit[id]
	holder, held := names.holder[key]
	if !held {
		// only ambiguous names lose their holder
		demote(t, id, name)
		sev, msg := Info, "Duplicate implicit target name: %q."
		if explicit {
			sev, msg = Warning, "Duplicate explicit target name: %q."
		}
		t.Reportf(sev, node.Span, []NodeID{id}, msg, name)
		return
	}
	hexplicit := names.explicit[holder]
	switch {
	case hexplicit && explicit:
		h := t.nodes[holder]
		if h.Attrs.Refuri != "" && h.Attrs.Refuri == node.Attrs.Refuri {
			demote(t, id, name)
			t.Reportf(Info, node.Span, []NodeID{id}, "Duplicate explicit target name: %q.", name)
			return
		}
		demote(t, holder, name)
		demote(t, id, name)
		names.setAmbiguous(key)
		t.Reportf(Warning, node.Span, []NodeID{holder, id}, "Duplicate explicit target name: %q.", name)
	case hexplicit:
		demote(t, id, name)
		t.Reportf(Info, node.Span, []NodeID{id}, "Duplicate implicit target name: %q.", name)
	case explicit:
		demote(t, holder, name)
		names.holder[key] = id
		names.holderID[key] = node.FirstID()
		t.Reportf(Info, node.Span, []NodeID{holder}, "Duplicate implicit target name: %q.", name)
	default:
		demote(t, holder, name)
		demote(t, id, name)
		names.setAmbiguous(key)
		t.Reportf(Info, node.Span, []NodeID{holder, id}, "Duplicate implicit target name: %q.", name)
	}
}

func (n *Names) setAmbiguous(key string) {
	n.ambiguous[key] = true
	delete(n.holder, key)
	delete(n.holderID, key)
}

func demote(t *Tree, id NodeID, name string) {
	a := &t.nodes[id].Attrs
	key := NormalizeName(name)
	for i, n := range a.Names {
		if NormalizeName(n) == key {
			a.Names = slices.Delete(a.Names, i, i+1)
			a.DupNames = append(a.DupNames, n)
			return
		}
	}
}
