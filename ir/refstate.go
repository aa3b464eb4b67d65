package ir

type RefState int

const (
	Unresolved RefState = iota
	ResolvedInternal
	ResolvedExternal
	Dangling
)

func (s RefState) String() string {
	switch s {
	case ResolvedInternal:
		return "internal"
	case ResolvedExternal:
		return "external"
	case Dangling:
		return "dangling"
	}
	return "unresolved"
}

// State reports the resolution state of reference node id.
func (t *Tree) State(id NodeID) RefState {
	n := t.nodes[id]
	if p := n.Parent; p != NoNode && t.nodes[p].Kind == Problematic {
		return Dangling
	}
	switch {
	case n.Attrs.Refuri != "":
		return ResolvedExternal
	case n.Attrs.Refid != "":
		return ResolvedInternal
	}
	return Unresolved
}
