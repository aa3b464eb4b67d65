package transform

import (
	"strconv"
	"strings"

	"github.com/signadot/rstdoc/ir"
)

var symbols = []string{"*", "†", "‡", "§", "¶", "#", "♠", "♥", "♦", "♣"}

// symbol returns the label of the i-th symbol footnote, counting from 0.
func symbol(i int) string {
	return strings.Repeat(symbols[i%len(symbols)], i/len(symbols)+1)
}

// Footnotes numbers auto-numbered footnotes and labels symbol footnotes
// in document order, then resolves footnote and citation references.
// Labeled references resolve by name, unlabeled auto-numbered and symbol
// references by position.
func Footnotes(t *ir.Tree) {
	footnotes := collect(t, ir.Footnote)
	var numbered, symbolic []ir.NodeID
	used := map[string]bool{}
	for _, fn := range footnotes {
		if l := t.Node(fn).Attrs.Get("label"); l != "" && t.Node(fn).Attrs.Auto == ir.AutoNone {
			used[l] = true
		}
	}
	next := 1
	for _, fn := range footnotes {
		a := &t.Node(fn).Attrs
		switch a.Auto {
		case ir.AutoNumber:
			if a.Get("label") == "" {
				for used[strconv.Itoa(next)] {
					next++
				}
				a.Set("label", strconv.Itoa(next))
				used[strconv.Itoa(next)] = true
			}
			if len(a.Names) == 0 && len(a.DupNames) == 0 {
				numbered = append(numbered, fn)
			}
		case ir.AutoSymbol:
			if a.Get("label") == "" {
				a.Set("label", symbol(len(symbolic)))
			}
			symbolic = append(symbolic, fn)
		}
	}
	var autoRefs, symRefs []ir.NodeID
	for _, ref := range collect(t, ir.FootnoteReference) {
		a := &t.Node(ref).Attrs
		switch {
		case a.Auto == ir.AutoSymbol:
			symRefs = append(symRefs, ref)
		case a.Auto == ir.AutoNumber && a.Get("label") == "#":
			autoRefs = append(autoRefs, ref)
		default:
			footnoteByName(t, ref)
		}
	}
	pairFootnotes(t, autoRefs, numbered,
		"Too many autonumbered footnote references: only %d corresponding footnotes available.")
	pairFootnotes(t, symRefs, symbolic,
		"Too many symbol footnote references: only %d corresponding footnotes available.")
	for _, ref := range collect(t, ir.CitationReference) {
		footnoteByName(t, ref)
	}
}

// footnoteByName resolves a labeled footnote or citation reference.
func footnoteByName(t *ir.Tree, ref ir.NodeID) {
	r := t.Node(ref)
	if resolved(r) || r.Attrs.Refname == "" {
		return
	}
	tid, ok := t.Names.TargetID(r.Attrs.Refname)
	if !ok {
		return
	}
	fn, ok := t.ByID(tid)
	if !ok {
		return
	}
	want := ir.Footnote
	if r.Kind == ir.CitationReference {
		want = ir.Citation
	}
	if t.Kind(fn) != want {
		return
	}
	if link(t, ref, tid) && r.Attrs.Auto == ir.AutoNumber {
		show(t, ref, fn)
	}
}

// pairFootnotes links refs to fns by position. References beyond the
// available footnotes become problematic.
func pairFootnotes(t *ir.Tree, refs, fns []ir.NodeID, tooMany string) {
	var diag string
	for i, ref := range refs {
		if resolved(t.Node(ref)) {
			continue
		}
		if i >= len(fns) {
			if diag == "" {
				diag = t.Reportf(ir.Error, t.Node(ref).Span, nil, tooMany, len(fns))
			}
			problematic(t, ref, diag)
			continue
		}
		if link(t, ref, t.GenID(fns[i])) {
			show(t, ref, fns[i])
		}
	}
}

// show gives reference ref the label of footnote fn as generated text.
func show(t *ir.Tree, ref, fn ir.NodeID) {
	r := t.Node(ref)
	if len(r.Children) > 0 {
		return
	}
	txt := t.NewText(t.Node(fn).Attrs.Get("label"), r.Span)
	t.Node(txt).Generated = true
	t.Append(ref, txt)
}
