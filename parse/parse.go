package parse

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/signadot/rstdoc/debug"
	"github.com/signadot/rstdoc/ir"
	"github.com/signadot/rstdoc/role"
	"github.com/signadot/rstdoc/token"
	"github.com/signadot/rstdoc/transform"
)

// Parse parses src into a document tree and runs the transform pipeline
// over it. Problems with the markup are reported as diagnostics, in the
// order they were found; the only error is ErrCanceled.
func Parse(src string, opts ...ParseOption) (*ir.Tree, []ir.Diagnostic, error) {
	pOpts := &parseOpts{ctx: context.Background()}
	for _, f := range opts {
		f(pOpts)
	}
	log := pOpts.logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	reg := role.NewRegistry()
	if pOpts.roles != nil {
		reg = pOpts.roles.Clone()
	}
	if pOpts.pepBase != "" {
		reg.PEPBase = pOpts.pepBase
	}
	if pOpts.rfcBase != "" {
		reg.RFCBase = pOpts.rfcBase
	}
	t := ir.New(src)
	p := &parser{
		t:     t,
		roles: reg,
		log:   log,
		ctx:   pOpts.ctx,
	}
	lines := token.NewScanner(src).Lines()
	if debug.Scan() {
		for _, l := range lines {
			debug.Logf("scan %d@%d: %q\n", l.Num, l.Offset, l.Text)
		}
	}
	p.blocks(lines, t.Root, true)
	if p.err != nil {
		return nil, nil, p.err
	}
	p.fit(t.Root)
	ir.BuildNames(t)
	if !pOpts.noTransforms {
		err := transform.Run(pOpts.ctx, t, transform.WithLogger(log))
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrCanceled, err)
		}
	}
	log.Debug("parsed document", "lines", len(lines), "nodes", t.Len(), "diagnostics", len(t.Diagnostics))
	return t, slices.Clone(t.Diagnostics), nil
}

type parser struct {
	t     *ir.Tree
	roles *role.Registry
	log   *slog.Logger
	ctx   context.Context
	err   error

	// section adornment styles in order of first use; index is level-1
	styles []style
	// open sections; index is level-1
	open []ir.NodeID

	pending     []string
	pendingFrom ir.NodeID
}

func (p *parser) ok() bool {
	if p.err != nil {
		return false
	}
	if err := p.ctx.Err(); err != nil {
		p.err = fmt.Errorf("%w: %w", ErrCanceled, err)
		return false
	}
	return true
}

// container is where top level blocks go: the innermost open section.
func (p *parser) container() ir.NodeID {
	if len(p.open) == 0 {
		return p.t.Root
	}
	return p.open[len(p.open)-1]
}

// blocks parses lines into body elements of parent. Section titles are
// only recognized when top is set.
func (p *parser) blocks(lines []token.Line, parent ir.NodeID, top bool) {
	i := 0
	for i < len(lines) && p.ok() {
		if lines[i].IsBlank() {
			i++
			continue
		}
		at := parent
		if top {
			at = p.container()
		}
		before := len(p.t.Node(at).Children)
		i = p.block(lines, i, at, top)
		p.applyPending(at, before)
	}
}

func (p *parser) block(lines []token.Line, i int, parent ir.NodeID, top bool) int {
	l := lines[i]
	if debug.Block() {
		debug.Logf("block %d: %q\n", l.Num, l.Text)
	}
	if l.Indent() > 0 {
		return p.blockQuote(lines, i, parent)
	}
	if n, ok := p.explicit(lines, i, parent); ok {
		return n
	}
	if top {
		if n, ok := p.sectionOrTransition(lines, i); ok {
			return n
		}
	}
	if n, ok := p.bulletList(lines, i, parent); ok {
		return n
	}
	if n, ok := p.enumeratedList(lines, i, parent); ok {
		return n
	}
	if n, ok := p.fieldList(lines, i, parent); ok {
		return n
	}
	if n, ok := p.definitionList(lines, i, parent); ok {
		return n
	}
	if top {
		p.shortUnderline(lines, i)
	}
	return p.paragraph(lines, i, parent)
}

// applyPending gives the classes of a preceding class directive to the
// first element added to parent after it.
func (p *parser) applyPending(parent ir.NodeID, before int) {
	if p.pending == nil {
		return
	}
	for _, c := range p.t.Node(parent).Children[before:] {
		if c == p.pendingFrom {
			continue
		}
		p.t.Node(c).Attrs.AddClass(p.pending...)
		p.pending = nil
		return
	}
}

// fit extends sections over their content.
func (p *parser) fit(id ir.NodeID) {
	n := p.t.Node(id)
	for _, c := range n.Children {
		p.fit(c)
	}
	if n.Kind == ir.Section {
		p.t.Refit(id)
	}
}

func (p *parser) span(start, end int) ir.Span {
	return p.t.Doc.Span(start, end)
}

func (p *parser) lineSpan(l token.Line) ir.Span {
	return p.span(l.Offset, l.End())
}

// blockSpan spans from the start of first to the end of the last
// non-blank line of lines.
func (p *parser) blockSpan(first token.Line, lines []token.Line) ir.Span {
	end := first.End()
	for i := len(lines) - 1; i >= 0; i-- {
		if !lines[i].IsBlank() {
			end = max(end, lines[i].TrimRight().End())
			break
		}
	}
	return p.span(first.Offset, end)
}

// indented collects the lines from i on that are blank or indented,
// stripped of their common indentation. Trailing blank lines are not
// part of the block. next is the first line not collected and
// blankFinish reports whether the block ended with a blank line or the
// end of input.
func indented(lines []token.Line, i int) (block []token.Line, next int, blankFinish bool) {
	j := i
	for j < len(lines) && (lines[j].IsBlank() || lines[j].Indent() > 0) {
		j++
	}
	end := j
	for end > i && lines[end-1].IsBlank() {
		end--
	}
	ind := -1
	for _, l := range lines[i:end] {
		if l.IsBlank() {
			continue
		}
		if w := l.Indent(); ind < 0 || w < ind {
			ind = w
		}
	}
	block = make([]token.Line, 0, end-i)
	for _, l := range lines[i:end] {
		block = append(block, l.Strip(max(ind, 0)))
	}
	return block, j, j == len(lines) || end < j
}

func (p *parser) unindentWarning(what string, lines []token.Line, next int, blankFinish bool) {
	if blankFinish || next >= len(lines) {
		return
	}
	p.t.Reportf(ir.Warning, p.lineSpan(lines[next]), nil,
		"%s ends without a blank line; unexpected unindent.", what)
}

func trimLines(lines []token.Line) []token.Line {
	res := make([]token.Line, len(lines))
	for i, l := range lines {
		res[i] = l.TrimRight()
	}
	return res
}

func (p *parser) paragraph(lines []token.Line, i int, parent ir.NodeID) int {
	j := i + 1
	for j < len(lines) && !lines[j].IsBlank() && lines[j].Indent() == 0 {
		j++
	}
	txt := token.Join(trimLines(lines[i:j])).TrimSpace()
	literal := false
	switch {
	case txt.S == "::":
		literal = true
		txt = txt.Slice(0, 0)
	case strings.HasSuffix(txt.S, "::") && !token.Escaped(txt.S, len(txt.S)-2):
		literal = true
		if k := len(txt.S) - 2; k > 0 && isSpaceByte(txt.S[k-1]) {
			txt = txt.Slice(0, k).TrimSpace()
		} else {
			txt = txt.Slice(0, len(txt.S)-1)
		}
	}
	if txt.Len() > 0 {
		para := p.t.NewNode(ir.Paragraph, p.blockSpan(lines[i], lines[i:j]))
		p.t.Append(parent, para)
		p.inline(txt, para)
	}
	if j < len(lines) && !lines[j].IsBlank() {
		p.t.Report(ir.Error, p.lineSpan(lines[j]), "Unexpected indentation.")
		return j
	}
	if !literal {
		return j
	}
	return p.literalBlock(lines, j, parent)
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n'
}

// literalBlock parses the indented block expected at or after blank line
// i.
func (p *parser) literalBlock(lines []token.Line, i int, parent ir.NodeID) int {
	k := i
	for k < len(lines) && lines[k].IsBlank() {
		k++
	}
	if k >= len(lines) || lines[k].Indent() == 0 {
		at := p.span(p.t.Doc.Len(), p.t.Doc.Len())
		if k < len(lines) {
			at = p.lineSpan(lines[k])
		}
		p.t.Report(ir.Warning, at, "Literal block expected; none found.")
		return k
	}
	block, next, _ := indented(lines, k)
	txt := token.Join(trimLines(block))
	lb := p.t.NewNode(ir.LiteralBlock, p.blockSpan(block[0], block))
	p.t.Append(parent, lb)
	p.t.Append(lb, p.t.NewText(txt.S, txt.FullSpan(p.t.Doc)))
	return next
}

func (p *parser) blockQuote(lines []token.Line, i int, parent ir.NodeID) int {
	block, next, blankFinish := indented(lines, i)
	bq := p.t.NewNode(ir.BlockQuote, p.blockSpan(block[0], block))
	p.t.Append(parent, bq)
	p.blocks(block, bq, false)
	p.unindentWarning("Block quote", lines, next, blankFinish)
	return next
}
