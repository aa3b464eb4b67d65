package ir

import (
	"slices"

	"github.com/signadot/rstdoc/token"
)

type (
	Pos  = token.Pos
	Span = token.Span
)

// NodeID addresses a node in its Tree's arena.
type NodeID int32

const NoNode NodeID = -1

type Auto int

const (
	AutoNone Auto = iota
	AutoNumber
	AutoSymbol
)

func (a Auto) String() string {
	switch a {
	case AutoNumber:
		return "1"
	case AutoSymbol:
		return "*"
	}
	return ""
}

type Attrs struct {
	IDs      []string
	Names    []string
	DupNames []string
	Refid    string
	Refname  string
	Refuri   string
	Backrefs []string
	Classes  []string

	Anonymous bool
	Auto      Auto

	Extra map[string]string
}

func (a *Attrs) Get(k string) string {
	return a.Extra[k]
}

func (a *Attrs) Set(k, v string) {
	if a.Extra == nil {
		a.Extra = map[string]string{}
	}
	a.Extra[k] = v
}

// AddBackref appends id unless it is already present.
func (a *Attrs) AddBackref(id string) bool {
	if id == "" || slices.Contains(a.Backrefs, id) {
		return false
	}
	a.Backrefs = append(a.Backrefs, id)
	return true
}

func (a *Attrs) AddClass(cs ...string) {
	for _, c := range cs {
		if c != "" && !slices.Contains(a.Classes, c) {
			a.Classes = append(a.Classes, c)
		}
	}
}

func (a Attrs) clone() Attrs {
	res := a
	res.IDs = slices.Clone(a.IDs)
	res.Names = slices.Clone(a.Names)
	res.DupNames = slices.Clone(a.DupNames)
	res.Backrefs = slices.Clone(a.Backrefs)
	res.Classes = slices.Clone(a.Classes)
	if a.Extra != nil {
		res.Extra = make(map[string]string, len(a.Extra))
		for k, v := range a.Extra {
			res.Extra[k] = v
		}
	}
	return res
}

// DirectiveInfo records how a directive was written.
type DirectiveInfo struct {
	Name    string
	Args    string
	Options map[string]string
	// OptionOrder keeps the order options appeared in.
	OptionOrder []string
}

type Node struct {
	ID       NodeID
	Kind     Kind
	Span     Span
	Parent   NodeID
	Children []NodeID
	Attrs    Attrs

	// Text is the rendered content of leaves: text, literal blocks,
	// comments and raw nodes.
	Text string

	// Generated marks copies made by substitution. Their spans are the
	// span of the substitution reference they replaced.
	Generated bool

	Directive *DirectiveInfo
}

// HasID reports whether id is among n's ids.
func (n *Node) HasID(id string) bool {
	return slices.Contains(n.Attrs.IDs, id)
}

func (n *Node) FirstID() string {
	if len(n.Attrs.IDs) == 0 {
		return ""
	}
	return n.Attrs.IDs[0]
}
