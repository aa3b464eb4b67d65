package parse

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/signadot/rstdoc/ir"
	"github.com/signadot/rstdoc/token"
)

const adornmentChars = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

type style struct {
	char byte
	over bool
}

// adornment returns the trimmed line if it is a run of one punctuation
// character.
func adornment(l token.Line) (string, bool) {
	if l.Indent() > 0 {
		return "", false
	}
	s := strings.TrimRight(l.Text, " \t")
	if s == "" || !strings.ContainsRune(adornmentChars, rune(s[0])) {
		return "", false
	}
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return "", false
		}
	}
	return s, true
}

func titleWidth(s string) int {
	return runewidth.StringWidth(strings.TrimSpace(s))
}

func (p *parser) sectionOrTransition(lines []token.Line, i int) (int, bool) {
	l := lines[i]
	if over, ok := adornment(l); ok {
		return p.overlined(lines, i, over)
	}
	if i+1 >= len(lines) {
		return 0, false
	}
	under, ok := adornment(lines[i+1])
	if !ok {
		return 0, false
	}
	w := titleWidth(l.Text)
	if len(under) < w {
		if len(under) < 4 {
			// left to shortUnderline once the line is known to be text
			return 0, false
		}
		p.t.Report(ir.Warning, p.span(l.Offset, lines[i+1].End()), "Title underline too short.")
	}
	title := token.TextOf(l.TrimRight())
	if !p.section(style{char: under[0]}, title, p.span(l.Offset, lines[i+1].TrimRight().End())) {
		return 0, false
	}
	return i + 2, true
}

// shortUnderline notes a paragraph whose first line is followed by what
// could have been an underline, were it not shorter than both the title
// and four characters.
func (p *parser) shortUnderline(lines []token.Line, i int) {
	if i+1 >= len(lines) {
		return
	}
	under, ok := adornment(lines[i+1])
	if !ok || len(under) >= 4 || len(under) >= titleWidth(lines[i].Text) {
		return
	}
	p.t.Report(ir.Info, p.span(lines[i].Offset, lines[i+1].End()),
		"Possible title underline, too short for the title.\nTreating it as ordinary text because it's so short.")
}

func (p *parser) overlined(lines []token.Line, i int, over string) (int, bool) {
	l := lines[i]
	blankBefore := i == 0 || lines[i-1].IsBlank()
	blankAfter := i+1 >= len(lines) || lines[i+1].IsBlank()
	if blankAfter {
		if len(over) < 4 || !blankBefore {
			return 0, false
		}
		tr := p.t.NewNode(ir.Transition, p.lineSpan(l.TrimRight()))
		p.t.Append(p.container(), tr)
		return i + 1, true
	}
	if len(over) < 4 {
		return 0, false
	}
	if i+2 >= len(lines) {
		p.t.Report(ir.Severe, p.span(l.Offset, lines[len(lines)-1].End()), "Incomplete section title.")
		return 0, false
	}
	under, ok := adornment(lines[i+2])
	if !ok {
		p.t.Report(ir.Severe, p.span(l.Offset, lines[i+2].End()), "Missing matching underline for section title overline.")
		return 0, false
	}
	if under != over {
		p.t.Report(ir.Severe, p.span(l.Offset, lines[i+2].End()), "Title overline & underline mismatch.")
		return 0, false
	}
	tl := lines[i+1].TrimRight()
	tl = tl.Strip(tl.Indent())
	if titleWidth(tl.Text) > len(over) {
		p.t.Report(ir.Warning, p.span(l.Offset, lines[i+2].End()), "Title overline too short.")
	}
	if !p.section(style{char: over[0], over: true}, token.TextOf(tl), p.span(l.Offset, lines[i+2].TrimRight().End())) {
		return 0, false
	}
	return i + 3, true
}

// level returns the nesting level of a title adorned with st. A style
// seen before closes sections back to its level; a new style is only
// allowed one level below the open sections.
func (p *parser) level(st style) (int, bool) {
	for k, s := range p.styles {
		if s == st {
			if k+1 > len(p.open)+1 {
				return 0, false
			}
			return k + 1, true
		}
	}
	if len(p.styles) != len(p.open) {
		return 0, false
	}
	p.styles = append(p.styles, st)
	return len(p.styles), true
}

func (p *parser) section(st style, title token.Text, span ir.Span) bool {
	lvl, ok := p.level(st)
	if !ok {
		p.t.Report(ir.Severe, span, "Title level inconsistent:")
		return false
	}
	p.open = p.open[:lvl-1]
	parent := p.container()
	sec := p.t.NewNode(ir.Section, span)
	p.t.Append(parent, sec)
	tn := p.t.NewNode(ir.Title, span)
	p.t.Append(sec, tn)
	p.inline(title, tn)
	if name := ir.NormalizeName(p.t.Text(tn)); name != "" {
		p.t.Node(sec).Attrs.Names = []string{name}
	}
	p.open = append(p.open, sec)
	return true
}
