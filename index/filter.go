package index

import (
	"fmt"
	"maps"
	"slices"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/signadot/rstdoc/ir"
)

type nodeEnv struct {
	Kind      string            `expr:"kind"`
	IDs       []string          `expr:"ids"`
	Names     []string          `expr:"names"`
	Refname   string            `expr:"refname"`
	Refuri    string            `expr:"refuri"`
	Refid     string            `expr:"refid"`
	Classes   []string          `expr:"classes"`
	Backrefs  []string          `expr:"backrefs"`
	Text      string            `expr:"text"`
	Line      int               `expr:"line"`
	Generated bool              `expr:"generated"`
	Attrs     map[string]string `expr:"attrs"`
	// kinds of the ancestors, innermost first
	Ancestors []string `expr:"ancestors"`
}

// Query is a compiled filter expression.
type Query struct {
	src  string
	prog *vm.Program
}

func (q *Query) String() string {
	return q.src
}

// Compile checks that src is a boolean expression over node attributes.
func Compile(src string) (*Query, error) {
	prog, err := expr.Compile(src, append(exprOpts(), expr.Env(nodeEnv{}), expr.AsBool())...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadFilter, err)
	}
	return &Query{src: src, prog: prog}, nil
}

func exprOpts() []expr.Option {
	return []expr.Option{
		expr.Function("norm", func(params ...any) (any, error) {
			return ir.NormalizeName(params[0].(string)), nil
		},
			new(func(string) string)),
		expr.Function("isref", func(params ...any) (any, error) {
			k, ok := ir.KindOf(params[0].(string))
			return ok && k.IsReference(), nil
		},
			new(func(string) bool)),
	}
}

// Filter returns the nodes, in document order, for which src holds.
func (x *Index) Filter(src string) ([]ir.NodeID, error) {
	q, err := Compile(src)
	if err != nil {
		return nil, err
	}
	return x.Match(q)
}

// Match runs a compiled query over the index.
func (x *Index) Match(q *Query) ([]ir.NodeID, error) {
	var res []ir.NodeID
	var vmach vm.VM
	for _, id := range x.nodes {
		env := x.env(id)
		out, err := vmach.Run(q.prog, env)
		if err != nil {
			return nil, fmt.Errorf("%w: %s at node %d: %w", ErrBadFilter, q.src, id, err)
		}
		if out.(bool) {
			res = append(res, id)
		}
	}
	return res, nil
}

func (x *Index) env(id ir.NodeID) nodeEnv {
	n := x.t.Node(id)
	attrs := maps.Clone(n.Attrs.Extra)
	if attrs == nil {
		attrs = map[string]string{}
	}
	var ancestors []string
	for p := n.Parent; p != ir.NoNode; p = x.t.Node(p).Parent {
		ancestors = append(ancestors, x.t.Kind(p).String())
	}
	return nodeEnv{
		Kind:      n.Kind.String(),
		IDs:       slices.Clone(n.Attrs.IDs),
		Names:     slices.Clone(n.Attrs.Names),
		Refname:   n.Attrs.Refname,
		Refuri:    n.Attrs.Refuri,
		Refid:     n.Attrs.Refid,
		Classes:   slices.Clone(n.Attrs.Classes),
		Backrefs:  slices.Clone(n.Attrs.Backrefs),
		Text:      x.t.Text(id),
		Line:      n.Span.Start.Line,
		Generated: n.Generated,
		Attrs:     attrs,
		Ancestors: ancestors,
	}
}
