package index

import (
	"strings"

	"github.com/signadot/rstdoc/ir"
)

// Symbol is an outline entry.
type Symbol struct {
	Name   string
	Detail string
	Kind   ir.Kind
	Node   ir.NodeID
	Span   ir.Span
	// Selection is the span of the symbol's name: a section title, or
	// the whole node otherwise.
	Selection ir.Span
	Children  []Symbol
}

// Symbols returns the outline of the document: sections, directives,
// footnotes, citations, named targets and substitution definitions,
// nested as in the tree.
func (x *Index) Symbols() []Symbol {
	return x.symbols(x.t.Root)
}

func (x *Index) symbols(id ir.NodeID) []Symbol {
	var res []Symbol
	for _, c := range x.t.Node(id).Children {
		sym, ok := x.symbol(c)
		if !ok {
			res = append(res, x.symbols(c)...)
			continue
		}
		sym.Children = x.symbols(c)
		res = append(res, sym)
	}
	return res
}

func (x *Index) symbol(id ir.NodeID) (Symbol, bool) {
	n := x.t.Node(id)
	sym := Symbol{Kind: n.Kind, Node: id, Span: n.Span, Selection: n.Span}
	switch {
	case n.Generated:
		return sym, false
	case n.Kind == ir.Section:
		if len(n.Children) == 0 || x.t.Kind(n.Children[0]) != ir.Title {
			return sym, false
		}
		title := n.Children[0]
		sym.Name = oneLine(x.t.Text(title))
		sym.Selection = x.t.Node(title).Span
		sym.Detail = n.FirstID()
	case n.Kind == ir.SubstitutionDefinition:
		if len(n.Attrs.Names) == 0 {
			return sym, false
		}
		sym.Name = "|" + n.Attrs.Names[0] + "|"
		if len(n.Children) > 0 {
			if d := x.t.Node(n.Children[0]).Directive; d != nil {
				sym.Detail = d.Name
			}
		}
	case n.Directive != nil:
		sym.Name = n.Directive.Name
		sym.Detail = oneLine(n.Directive.Args)
	case n.Kind == ir.Footnote, n.Kind == ir.Citation:
		sym.Name = "[" + footnoteLabel(n) + "]"
		if len(n.Attrs.Names) > 0 {
			sym.Detail = n.Attrs.Names[0]
		}
	case n.Kind == ir.Target:
		if x.t.Node(n.Parent).Kind.IsInline() || len(n.Attrs.Names)+len(n.Attrs.DupNames) == 0 {
			return sym, false
		}
		names := append(append([]string{}, n.Attrs.Names...), n.Attrs.DupNames...)
		sym.Name = "_" + names[0]
		switch {
		case n.Attrs.Refuri != "":
			sym.Detail = n.Attrs.Refuri
		case n.Attrs.Refname != "":
			sym.Detail = n.Attrs.Refname + "_"
		}
	default:
		return sym, false
	}
	return sym, true
}

func footnoteLabel(n *ir.Node) string {
	if l := n.Attrs.Get("label"); l != "" {
		return l
	}
	switch n.Attrs.Auto {
	case ir.AutoSymbol:
		return "*"
	case ir.AutoNumber:
		if len(n.Attrs.Names) > 0 {
			return "#" + n.Attrs.Names[0]
		}
		return "#"
	}
	return ""
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FoldRange is a foldable region of lines, both 1-based and inclusive.
type FoldRange struct {
	StartLine int
	EndLine   int
	Kind      ir.Kind
}

// FoldingRanges returns the sections, directives and other block
// containers spanning more than one line, in document order.
func (x *Index) FoldingRanges() []FoldRange {
	var res []FoldRange
	for _, id := range x.nodes {
		n := x.t.Node(id)
		if n.Generated || !foldable(n) {
			continue
		}
		start, end := n.Span.Start.Line, n.Span.End.Line
		if n.Span.End.Col == 0 {
			// ends on the newline of the previous line
			end--
		}
		if end <= start {
			continue
		}
		res = append(res, FoldRange{StartLine: start, EndLine: end, Kind: n.Kind})
	}
	return res
}

func foldable(n *ir.Node) bool {
	if n.Directive != nil {
		return true
	}
	switch n.Kind {
	case ir.Section, ir.Footnote, ir.Citation, ir.Comment, ir.LiteralBlock,
		ir.BlockQuote, ir.BulletList, ir.EnumeratedList, ir.DefinitionList,
		ir.FieldList, ir.Docinfo, ir.SubstitutionDefinition:
		return true
	}
	return false
}
