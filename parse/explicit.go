package parse

import (
	"regexp"
	"strings"

	"github.com/signadot/rstdoc/ir"
	"github.com/signadot/rstdoc/token"
)

var (
	footnoteRe  = regexp.MustCompile(`^\[(#[\p{L}\p{N}_.\-]*|\*|[0-9]+|[\p{L}\p{N}_.\-]+)\](?:[ \t]+|$)`)
	directiveRe = regexp.MustCompile(`^([\p{L}\p{N}](?:[-_.+:]?[\p{L}\p{N}])*)[ ]?::(?:[ \t]+|$)`)
	subdefRe    = regexp.MustCompile(`^\|(\S(?:.*?\S)??)\|(?:[ \t]+|$)`)
)

// explicit parses explicit markup blocks starting with "..", and
// anonymous targets written "__ uri".
func (p *parser) explicit(lines []token.Line, i int, parent ir.NodeID) (int, bool) {
	l := lines[i]
	s := l.TrimRight().Text
	var first token.Line
	switch {
	case s == "..":
		first = l.TrimRight().Cut(2)
		if i+1 >= len(lines) || lines[i+1].IsBlank() {
			p.comment(l, []token.Line{first}, parent)
			return i + 1, true
		}
	case strings.HasPrefix(s, ".. "):
		first = l.Cut(3)
		first = first.Strip(first.Indent())
	case strings.HasPrefix(s, "__ ") || s == "__":
		rest, next, blankFinish := indented(lines, i+1)
		body := append([]token.Line{l.Cut(2)}, rest...)
		p.target(l, body, "", true, parent)
		p.explicitEnd(lines, next, blankFinish)
		return next, true
	default:
		return 0, false
	}
	rest, next, blankFinish := indented(lines, i+1)
	body := append([]token.Line{first}, rest...)
	ft := first.Text
	switch {
	case footnoteRe.MatchString(ft):
		p.footnote(l, body, parent)
	case strings.HasPrefix(ft, "_"):
		if !p.explicitTarget(l, body, parent) {
			p.comment(l, body, parent)
		}
	case subdefRe.MatchString(ft):
		p.substitutionDef(l, body, parent)
	case directiveRe.MatchString(ft):
		p.directive(l, body, parent, "")
	default:
		p.comment(l, body, parent)
	}
	p.explicitEnd(lines, next, blankFinish)
	return next, true
}

// explicitEnd warns about an explicit markup block running into text.
// Explicit blocks may follow each other without blank lines.
func (p *parser) explicitEnd(lines []token.Line, next int, blankFinish bool) {
	if next < len(lines) && explicitStart(lines[next]) {
		return
	}
	p.unindentWarning("Explicit markup", lines, next, blankFinish)
}

func explicitStart(l token.Line) bool {
	s := l.TrimRight().Text
	return s == ".." || s == "__" || strings.HasPrefix(s, ".. ") || strings.HasPrefix(s, "__ ")
}

func (p *parser) comment(start token.Line, body []token.Line, parent ir.NodeID) {
	c := p.t.NewNode(ir.Comment, p.blockSpan(start, body))
	p.t.Node(c).Text = strings.TrimSpace(token.Join(trimLines(body)).S)
	p.t.Append(parent, c)
}

func (p *parser) footnote(start token.Line, body []token.Line, parent ir.NodeID) {
	m := footnoteRe.FindStringSubmatch(body[0].Text)
	label := m[1]
	body[0] = body[0].Cut(len(m[0]))
	kind := ir.Footnote
	var a ir.Attrs
	switch {
	case label == "*":
		a.Auto = ir.AutoSymbol
	case strings.HasPrefix(label, "#"):
		a.Auto = ir.AutoNumber
		if name := label[1:]; name != "" {
			a.Names = []string{ir.NormalizeName(name)}
		}
	case isDigits(label):
		a.Names = []string{label}
		a.Set("label", label)
	default:
		kind = ir.Citation
		a.Names = []string{ir.NormalizeName(label)}
		a.Set("label", label)
	}
	fn := p.t.NewNode(kind, p.blockSpan(start, body))
	p.t.Node(fn).Attrs = a
	p.t.Append(parent, fn)
	p.blocks(body, fn, false)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// explicitTarget parses ".. _name: link" with body[0] starting at "_".
func (p *parser) explicitTarget(start token.Line, body []token.Line, parent ir.NodeID) bool {
	s := body[0].Text
	var name string
	end := -1
	if strings.HasPrefix(s, "_`") {
		for k := 2; k+1 < len(s); k++ {
			if s[k] == '`' && s[k+1] == ':' && !token.Escaped(s, k) {
				name, end = s[2:k], k+2
				break
			}
		}
	} else {
		for k := 1; k < len(s); k++ {
			if s[k] != ':' || token.Escaped(s, k) {
				continue
			}
			if k+1 == len(s) || s[k+1] == ' ' || s[k+1] == '\t' {
				name, end = s[1:k], k+1
				break
			}
		}
	}
	if end < 0 {
		return false
	}
	body[0] = body[0].Cut(end)
	anonymous := name == "_"
	if anonymous {
		name = ""
	}
	p.target(start, body, token.Unescape(name), anonymous, parent)
	return true
}

var indirectRe = regexp.MustCompile("^(?:`(.+)`|(\\S+))_$")

// target builds a block level hyperlink target from its link block.
func (p *parser) target(start token.Line, body []token.Line, name string, anonymous bool, parent ir.NodeID) {
	tg := p.t.NewNode(ir.Target, p.blockSpan(start, body))
	a := &p.t.Node(tg).Attrs
	if anonymous {
		a.Anonymous = true
	} else if n := strings.Join(strings.Fields(name), " "); n != "" {
		a.Names = []string{ir.NormalizeName(n)}
	}
	var parts []string
	for _, l := range body {
		if f := strings.TrimSpace(l.Text); f != "" {
			parts = append(parts, f)
		}
	}
	link := strings.Join(parts, " ")
	switch m := indirectRe.FindStringSubmatch(link); {
	case link == "":
	case m != nil && !token.Escaped(link, len(link)-1) && (m[1] != "" || !strings.ContainsAny(m[2], " ")):
		ref := m[1] + m[2]
		a.Refname = ir.NormalizeName(token.Unescape(ref))
	default:
		a.Refuri = token.StripWhitespace(token.Unescape(link))
	}
	p.t.Append(parent, tg)
}

func (p *parser) substitutionDef(start token.Line, body []token.Line, parent ir.NodeID) {
	m := subdefRe.FindStringSubmatch(body[0].Text)
	name := strings.Join(strings.Fields(token.Unescape(m[1])), " ")
	body[0] = body[0].Cut(len(m[0]))
	span := p.blockSpan(start, body)
	invalid := func() {
		p.t.Reportf(ir.Warning, span, nil, "Substitution definition %q empty or invalid.", name)
	}
	if !directiveRe.MatchString(body[0].Text) {
		invalid()
		return
	}
	sd := p.t.NewNode(ir.SubstitutionDefinition, span)
	p.t.Node(sd).Attrs.Names = []string{name}
	p.directive(start, body, sd, name)
	if len(p.t.Node(sd).Children) == 0 {
		invalid()
		return
	}
	p.t.Append(parent, sd)
}
