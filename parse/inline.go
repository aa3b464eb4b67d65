package parse

import (
	"strings"

	"github.com/signadot/rstdoc/debug"
	"github.com/signadot/rstdoc/ir"
	"github.com/signadot/rstdoc/role"
	"github.com/signadot/rstdoc/token"
)

// inline parses the inline markup of txt into children of parent.
func (p *parser) inline(txt token.Text, parent ir.NodeID) {
	p.inlines(txt, parent, false)
}

func (p *parser) inlines(txt token.Text, parent ir.NodeID, nested bool) {
	for _, in := range token.Tokenize(txt.S, nested) {
		if debug.Inline() {
			debug.Logf("inline %s %q\n", in.Type, txt.S[in.Start:in.End])
		}
		p.inlineToken(txt, in, parent)
	}
}

func (p *parser) inlineToken(txt token.Text, in token.Inline, parent ir.NodeID) {
	doc := p.t.Doc
	span := txt.Span(doc, in.Start, in.End)
	body := txt.Slice(in.Body[0], in.Body[1])
	switch in.Type {
	case token.IText:
		u := token.UnescapeText(body)
		if u.Len() > 0 {
			p.t.Append(parent, p.t.NewText(u.S, u.FullSpan(doc)))
		}
	case token.IEmphasis, token.IStrong:
		k := ir.Emphasis
		if in.Type == token.IStrong {
			k = ir.Strong
		}
		id := p.t.NewNode(k, span)
		p.t.Append(parent, id)
		p.inlines(body, id, true)
	case token.ILiteral:
		id := p.t.NewNode(ir.Literal, span)
		p.t.Append(parent, id)
		p.t.Append(id, p.t.NewText(body.S, body.FullSpan(doc)))
	case token.IInterpreted:
		p.interpreted(txt, in, span, body, parent)
	case token.IPhraseRef:
		p.phraseRef(in, span, body, parent)
	case token.ISimpleRef:
		id := p.t.NewNode(ir.Reference, span)
		u := token.UnescapeText(body)
		p.refTarget(id, u.S, in.Suffix)
		p.t.Append(id, p.t.NewText(u.S, u.FullSpan(doc)))
		p.t.Append(parent, id)
	case token.ITarget:
		id := p.t.NewNode(ir.Target, span)
		u := token.UnescapeText(body)
		if name := ir.NormalizeName(u.S); name != "" {
			p.t.Node(id).Attrs.Names = []string{name}
		}
		p.t.Append(id, p.t.NewText(u.S, u.FullSpan(doc)))
		p.t.Append(parent, id)
	case token.ISubstitution:
		p.substitutionRef(txt, in, span, body, parent)
	case token.IFootnoteRef:
		p.footnoteRef(body, span, parent)
	case token.ICitationRef:
		id := p.t.NewNode(ir.CitationReference, span)
		n := p.t.Node(id)
		n.Attrs.Refname = ir.NormalizeName(body.S)
		n.Attrs.Set("label", body.S)
		p.t.Append(id, p.t.NewText(body.S, body.FullSpan(doc)))
		p.t.Append(parent, id)
	case token.IURI:
		id := p.t.NewNode(ir.Reference, span)
		p.t.Node(id).Attrs.Refuri = body.S
		p.t.Append(id, p.t.NewText(body.S, body.FullSpan(doc)))
		p.t.Append(parent, id)
	case token.IUnterminated, token.IMismatch:
		diag := p.t.Report(ir.Warning, span, in.Msg)
		p.problematic(txt.Slice(in.Start, in.End), diag, parent)
	}
}

// problematic adds the raw markup raw to parent as a problematic node
// linked with diag.
func (p *parser) problematic(raw token.Text, diag string, parent ir.NodeID) {
	span := raw.FullSpan(p.t.Doc)
	pr := p.t.NewProblematic(span, diag)
	p.t.Append(pr, p.t.NewText(raw.S, span))
	p.t.Append(parent, pr)
}

func (p *parser) interpreted(txt token.Text, in token.Inline, span ir.Span, body token.Text, parent ir.NodeID) {
	raw := txt.Slice(in.Start, in.End)
	r := p.roles.Default()
	if in.Role != "" {
		var how role.Lookup
		r, how = p.roles.Lookup(in.Role)
		if diag := p.reportLookup(how, in.Role, span); diag != "" {
			p.problematic(raw, diag, parent)
			return
		}
	}
	id, err := r.Apply(role.Input{
		Tree:    p.t,
		Span:    span,
		Content: token.UnescapeText(body),
		Raw:     body.S,
	}, p.roles)
	if err != nil {
		diag := p.t.Report(ir.Error, span, err.Error())
		p.problematic(raw, diag, parent)
		return
	}
	p.t.Append(parent, id)
}

// refTarget sets how reference id finds its target.
func (p *parser) refTarget(id ir.NodeID, text, suffix string) {
	a := &p.t.Node(id).Attrs
	name := strings.Join(strings.Fields(text), " ")
	a.Set("name", name)
	if suffix == "__" {
		a.Anonymous = true
		return
	}
	a.Refname = ir.NormalizeName(name)
}

// embedded returns the offset of the "<" opening an embedded link at the
// end of a phrase reference, or -1.
func embedded(s string) int {
	if !strings.HasSuffix(s, ">") || token.Escaped(s, len(s)-1) {
		return -1
	}
	for k := len(s) - 2; k >= 0; k-- {
		if s[k] != '<' || token.Escaped(s, k) {
			continue
		}
		if k == 0 || s[k-1] == ' ' || s[k-1] == '\n' || s[k-1] == '\t' {
			return k
		}
		return -1
	}
	return -1
}

func (p *parser) phraseRef(in token.Inline, span ir.Span, body token.Text, parent ir.NodeID) {
	doc := p.t.Doc
	id := p.t.NewNode(ir.Reference, span)
	p.t.Append(parent, id)
	lt := embedded(body.S)
	if lt < 0 {
		u := token.UnescapeText(body)
		p.refTarget(id, u.S, in.Suffix)
		p.t.Append(id, p.t.NewText(u.S, u.FullSpan(doc)))
		return
	}
	shown := token.UnescapeText(body.Slice(0, lt).TrimSpace())
	linkText := body.Slice(lt, body.Len())
	link := body.Slice(lt+1, body.Len()-1)
	a := &p.t.Node(id).Attrs
	alias := strings.HasSuffix(link.S, "_") && !token.Escaped(link.S, link.Len()-1)
	var aliasName, uri string
	if alias {
		aliasName = ir.NormalizeName(token.Unescape(link.S[:link.Len()-1]))
		a.Refname = aliasName
	} else {
		uri = token.StripWhitespace(token.Unescape(link.S))
		a.Refuri = uri
	}
	display := shown
	if shown.Len() == 0 {
		display = token.UnescapeText(link)
		if alias {
			display = display.Slice(0, display.Len()-1)
		}
	}
	name := strings.Join(strings.Fields(display.S), " ")
	a.Set("name", name)
	p.t.Append(id, p.t.NewText(display.S, display.FullSpan(doc)))
	if in.Suffix == "__" {
		return
	}
	tg := p.t.NewNode(ir.Target, linkText.FullSpan(doc))
	ta := &p.t.Node(tg).Attrs
	if n := ir.NormalizeName(name); n != "" {
		ta.Names = []string{n}
	}
	if alias {
		ta.Refname = aliasName
	} else {
		ta.Refuri = uri
	}
	p.t.Append(id, tg)
}

func (p *parser) substitutionRef(txt token.Text, in token.Inline, span ir.Span, body token.Text, parent ir.NodeID) {
	doc := p.t.Doc
	name := strings.Join(strings.Fields(token.Unescape(body.S)), " ")
	subSpan := txt.Span(doc, in.Start, in.End-len(in.Suffix))
	sr := p.t.NewNode(ir.SubstitutionReference, subSpan)
	p.t.Node(sr).Attrs.Refname = name
	p.t.Append(sr, p.t.NewText(body.S, body.FullSpan(doc)))
	if in.Suffix == "" {
		p.t.Append(parent, sr)
		return
	}
	ref := p.t.NewNode(ir.Reference, span)
	p.refTarget(ref, name, in.Suffix)
	p.t.Append(parent, ref)
	p.t.Append(ref, sr)
}

func (p *parser) footnoteRef(label token.Text, span ir.Span, parent ir.NodeID) {
	id := p.t.NewNode(ir.FootnoteReference, span)
	a := &p.t.Node(id).Attrs
	l := label.S
	a.Set("label", l)
	switch {
	case l == "*":
		a.Auto = ir.AutoSymbol
	case strings.HasPrefix(l, "#"):
		a.Auto = ir.AutoNumber
		if name := l[1:]; name != "" {
			a.Refname = ir.NormalizeName(name)
		}
	default:
		a.Refname = l
		p.t.Append(id, p.t.NewText(l, label.FullSpan(p.t.Doc)))
	}
	p.t.Append(parent, id)
}
