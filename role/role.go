package role

import (
	"fmt"
	"slices"

	"github.com/signadot/rstdoc/ir"
	"github.com/signadot/rstdoc/token"
)

// Behavior is the closed set of things a role can do with interpreted
// text. Custom roles reuse the behavior of their base.
type Behavior int

const (
	TitleReference Behavior = iota
	Emphasis
	Strong
	Literal
	Code
	Subscript
	Superscript
	Abbreviation
	Acronym
	PEP
	RFC
	Raw
	// Generic is the behavior of a custom role without a base.
	Generic
)

var behaviorNames = map[Behavior]string{
	TitleReference: "title-reference",
	Emphasis:       "emphasis",
	Strong:         "strong",
	Literal:        "literal",
	Code:           "code",
	Subscript:      "subscript",
	Superscript:    "superscript",
	Abbreviation:   "abbreviation",
	Acronym:        "acronym",
	PEP:            "pep-reference",
	RFC:            "rfc-reference",
	Raw:            "raw",
	Generic:        "inline",
}

// String returns the canonical role name.
func (b Behavior) String() string {
	return behaviorNames[b]
}

var behaviorKinds = map[Behavior]ir.Kind{
	TitleReference: ir.TitleReference,
	Emphasis:       ir.Emphasis,
	Strong:         ir.Strong,
	Literal:        ir.Literal,
	Code:           ir.Literal,
	Subscript:      ir.Subscript,
	Superscript:    ir.Superscript,
	Abbreviation:   ir.Abbreviation,
	Acronym:        ir.Acronym,
	PEP:            ir.Reference,
	RFC:            ir.Reference,
	Raw:            ir.Raw,
	Generic:        ir.Inline,
}

// Kind is the kind of node the behavior produces.
func (b Behavior) Kind() ir.Kind {
	return behaviorKinds[b]
}

// Role is a named role. Canonical roles have no Base; roles declared
// in a document derive from a Base (or from nothing, with Generic
// behavior).
type Role struct {
	Name     string
	Behavior Behavior
	Base     *Role
	// Classes are the role's own classes.
	Classes  []string
	Language string
	Format   string
	// Decl is the directive declaring a custom role.
	Decl ir.NodeID

	custom bool
}

func (r *Role) Custom() bool {
	return r.custom
}

// EffectiveClasses are the role's own classes followed by those of its
// custom bases.
func (r *Role) EffectiveClasses() []string {
	var res []string
	for x := r; x != nil && x.custom; x = x.Base {
		for _, c := range x.Classes {
			if !slices.Contains(res, c) {
				res = append(res, c)
			}
		}
	}
	return res
}

// language returns the nearest language along the base chain.
func (r *Role) language() string {
	for x := r; x != nil; x = x.Base {
		if x.Language != "" {
			return x.Language
		}
	}
	return ""
}

func (r *Role) format() string {
	for x := r; x != nil; x = x.Base {
		if x.Format != "" {
			return x.Format
		}
	}
	return ""
}

func (r *Role) String() string {
	if r.Base != nil {
		return fmt.Sprintf("%s(%s)", r.Name, r.Base.Name)
	}
	return r.Name
}

// Input is interpreted text handed to a role.
type Input struct {
	Tree *ir.Tree
	// Span covers the whole markup including role and delimiters.
	Span ir.Span
	// Content is the escape processed content with source offsets.
	Content token.Text
	// Raw is the content as written.
	Raw string
}

func (in Input) contentSpan() ir.Span {
	return in.Content.FullSpan(in.Tree.Doc)
}

func (in Input) text(s string, span ir.Span) ir.NodeID {
	return in.Tree.NewText(s, span)
}

// Apply builds the node for in. A non-nil error means the content is
// invalid for the role; its message is meant for a diagnostic.
func (r *Role) Apply(in Input, reg *Registry) (ir.NodeID, error) {
	t := in.Tree
	switch r.Behavior {
	case PEP, RFC:
		return reg.applyNumbered(r, in)
	case Code:
		return reg.applyCode(r, in), nil
	case Raw:
		f := r.format()
		if f == "" {
			return ir.NoNode, fmt.Errorf("No format (Writer name) is associated with this role: %q", r.Name)
		}
		id := t.NewNode(ir.Raw, in.Span)
		n := t.Node(id)
		n.Text = in.Content.S
		n.Attrs.Set("format", f)
		n.Attrs.AddClass(r.EffectiveClasses()...)
		return id, nil
	}
	id := t.NewNode(r.Behavior.Kind(), in.Span)
	n := t.Node(id)
	n.Attrs.AddClass(r.EffectiveClasses()...)
	if r.custom {
		n.Attrs.Set("role", r.Name)
	}
	if in.Content.Len() > 0 {
		t.Append(id, in.text(in.Content.S, in.contentSpan()))
	}
	return id, nil
}
