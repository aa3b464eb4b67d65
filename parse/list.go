package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/signadot/rstdoc/ir"
	"github.com/signadot/rstdoc/token"
)

var bulletRe = regexp.MustCompile(`^([-*+•‣⁃])(?:[ \t]+|$)`)

// item gathers the body of a list item whose marker ends at byte cut of
// lines[i].
func item(lines []token.Line, i, cut int) ([]token.Line, int, bool) {
	first := lines[i].Cut(cut)
	rest, next, blankFinish := indented(lines, i+1)
	return append([]token.Line{first}, rest...), next, blankFinish
}

func (p *parser) bulletList(lines []token.Line, i int, parent ir.NodeID) (int, bool) {
	m := bulletRe.FindStringSubmatch(lines[i].Text)
	if m == nil {
		return 0, false
	}
	bullet := m[1]
	list := p.t.NewNode(ir.BulletList, p.lineSpan(lines[i]))
	p.t.Node(list).Attrs.Set("bullet", bullet)
	p.t.Append(parent, list)
	var (
		next        = i
		blankFinish = true
	)
	for next < len(lines) {
		m := bulletRe.FindStringSubmatch(lines[next].Text)
		if m == nil || m[1] != bullet || lines[next].Indent() > 0 {
			break
		}
		var body []token.Line
		start := lines[next]
		body, next, blankFinish = item(lines, next, len(m[0]))
		li := p.t.NewNode(ir.ListItem, p.blockSpan(start, body))
		p.t.Append(list, li)
		p.blocks(body, li, false)
	}
	p.t.Refit(list)
	p.unindentWarning("Bullet list", lines, next, blankFinish)
	return next, true
}

var enumRes = []struct {
	re             *regexp.Regexp
	prefix, suffix string
}{
	{regexp.MustCompile(`^\(([0-9]+|#|[a-zA-Z]|[ivxlcdm]+|[IVXLCDM]+)\)(?:[ \t]+|$)`), "(", ")"},
	{regexp.MustCompile(`^([0-9]+|#|[a-zA-Z]|[ivxlcdm]+|[IVXLCDM]+)\)(?:[ \t]+|$)`), "", ")"},
	{regexp.MustCompile(`^([0-9]+|#|[a-zA-Z]|[ivxlcdm]+|[IVXLCDM]+)\.(?:[ \t]+|$)`), "", "."},
}

type enumerator struct {
	typ            string
	prefix, suffix string
	ordinal        int
	auto           bool
	width          int
}

func (e enumerator) sameFormat(o enumerator) bool {
	return e.prefix == o.prefix && e.suffix == o.suffix && (o.auto || e.typ == o.typ)
}

// enumeratorOf recognizes an enumerator. prev is the preceding item of
// the list, which decides between alphabetic and roman ordinals.
func enumeratorOf(s string, prev *enumerator) (enumerator, bool) {
	for _, er := range enumRes {
		m := er.re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		e := enumerator{prefix: er.prefix, suffix: er.suffix, width: len(m[0])}
		v := m[1]
		switch {
		case v == "#":
			e.auto = true
			e.typ = "arabic"
			if prev != nil {
				e.typ = prev.typ
				e.ordinal = prev.ordinal + 1
			} else {
				e.ordinal = 1
			}
		case v[0] >= '0' && v[0] <= '9':
			e.typ = "arabic"
			e.ordinal, _ = strconv.Atoi(v)
		case len(v) == 1 && (prev == nil || !strings.HasSuffix(prev.typ, "roman")) && !(prev == nil && (v == "i" || v == "I")):
			e.typ = "loweralpha"
			if v[0] < 'a' {
				e.typ = "upperalpha"
			}
			e.ordinal = int(strings.ToLower(v)[0]-'a') + 1
		default:
			n, ok := roman(strings.ToLower(v))
			if !ok {
				return enumerator{}, false
			}
			e.typ = "lowerroman"
			if v[0] < 'a' {
				e.typ = "upperroman"
			}
			e.ordinal = n
		}
		return e, true
	}
	return enumerator{}, false
}

func roman(s string) (int, bool) {
	vals := map[byte]int{'i': 1, 'v': 5, 'x': 10, 'l': 50, 'c': 100, 'd': 500, 'm': 1000}
	total := 0
	for i := 0; i < len(s); i++ {
		v := vals[s[i]]
		if i+1 < len(s) && vals[s[i+1]] > v {
			total -= v
		} else {
			total += v
		}
	}
	if total <= 0 || total >= 4000 || toRoman(total) != s {
		return 0, false
	}
	return total, true
}

func toRoman(n int) string {
	syms := []struct {
		v int
		s string
	}{{1000, "m"}, {900, "cm"}, {500, "d"}, {400, "cd"}, {100, "c"}, {90, "xc"},
		{50, "l"}, {40, "xl"}, {10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"}}
	var b strings.Builder
	for _, x := range syms {
		for n >= x.v {
			b.WriteString(x.s)
			n -= x.v
		}
	}
	return b.String()
}

func (p *parser) enumeratedList(lines []token.Line, i int, parent ir.NodeID) (int, bool) {
	e, ok := enumeratorOf(lines[i].Text, nil)
	if !ok {
		return 0, false
	}
	// a one line paragraph like "A. Einstein was ..." is not a list
	if i+1 < len(lines) && !lines[i+1].IsBlank() && lines[i+1].Indent() == 0 {
		if _, ok := enumeratorOf(lines[i+1].Text, &e); !ok {
			return 0, false
		}
	}
	list := p.t.NewNode(ir.EnumeratedList, p.lineSpan(lines[i]))
	a := &p.t.Node(list).Attrs
	a.Set("enumtype", e.typ)
	a.Set("prefix", e.prefix)
	a.Set("suffix", e.suffix)
	if e.ordinal != 1 {
		a.Set("start", strconv.Itoa(e.ordinal))
		p.t.Reportf(ir.Info, p.lineSpan(lines[i]), []ir.NodeID{list},
			"Enumerated list start value not ordinal-1: %q (ordinal %d)", strings.TrimSpace(lines[i].Text[:e.width]), e.ordinal)
	}
	p.t.Append(parent, list)
	var (
		next        = i
		blankFinish = true
		prev        *enumerator
	)
	for next < len(lines) && lines[next].Indent() == 0 {
		cur, ok := enumeratorOf(lines[next].Text, prev)
		if !ok || (prev != nil && (!prev.sameFormat(cur) || cur.ordinal != prev.ordinal+1)) {
			break
		}
		var body []token.Line
		start := lines[next]
		body, next, blankFinish = item(lines, next, cur.width)
		li := p.t.NewNode(ir.ListItem, p.blockSpan(start, body))
		p.t.Append(list, li)
		p.blocks(body, li, false)
		prev = &cur
	}
	p.t.Refit(list)
	p.unindentWarning("Enumerated list", lines, next, blankFinish)
	return next, true
}

// fieldMarker returns the name of a field marker ":name:" at the start of
// s and the length of the marker with its trailing whitespace.
func fieldMarker(s string) (string, int, bool) {
	if len(s) < 3 || s[0] != ':' || s[1] == ' ' || s[1] == ':' {
		return "", 0, false
	}
	for k := 1; k < len(s); k++ {
		if s[k] != ':' || token.Escaped(s, k) {
			continue
		}
		// ":role:`text`" is interpreted text, not a field
		if k+1 < len(s) && s[k+1] == '`' {
			return "", 0, false
		}
		if k+1 < len(s) && s[k+1] != ' ' && s[k+1] != '\t' {
			continue
		}
		name := s[1:k]
		if name == "" || strings.HasSuffix(name, " ") {
			return "", 0, false
		}
		end := k + 1
		for end < len(s) && (s[end] == ' ' || s[end] == '\t') {
			end++
		}
		return name, end, true
	}
	return "", 0, false
}

func (p *parser) fieldList(lines []token.Line, i int, parent ir.NodeID) (int, bool) {
	if _, _, ok := fieldMarker(lines[i].Text); !ok {
		return 0, false
	}
	list := p.t.NewNode(ir.FieldList, p.lineSpan(lines[i]))
	p.t.Append(parent, list)
	var (
		next        = i
		blankFinish = true
	)
	for next < len(lines) && lines[next].Indent() == 0 {
		name, cut, ok := fieldMarker(lines[next].Text)
		if !ok {
			break
		}
		var body []token.Line
		start := lines[next]
		body, next, blankFinish = item(lines, next, cut)
		p.field(list, start, name, body)
	}
	p.t.Refit(list)
	p.unindentWarning("Field list", lines, next, blankFinish)
	return next, true
}

func (p *parser) field(list ir.NodeID, start token.Line, name string, body []token.Line) {
	f := p.t.NewNode(ir.Field, p.blockSpan(start, body))
	p.t.Append(list, f)
	nameText := token.TextOf(start).Slice(1, 1+len(name))
	fn := p.t.NewNode(ir.FieldName, p.span(start.Offset, start.Offset+len(name)+2))
	p.t.Append(f, fn)
	p.inline(nameText, fn)
	first := body[0]
	if first.IsBlank() && len(body) > 1 {
		first = body[1]
	}
	fb := p.t.NewNode(ir.FieldBody, p.blockSpan(first, body))
	p.t.Append(f, fb)
	p.blocks(body, fb, false)
}

// definitionList parses items made of a one line term directly followed
// by an indented definition.
func (p *parser) definitionList(lines []token.Line, i int, parent ir.NodeID) (int, bool) {
	isItem := func(k int) bool {
		return k+1 < len(lines) && !lines[k].IsBlank() && lines[k].Indent() == 0 &&
			!lines[k+1].IsBlank() && lines[k+1].Indent() > 0
	}
	if !isItem(i) {
		return 0, false
	}
	list := p.t.NewNode(ir.DefinitionList, p.lineSpan(lines[i]))
	p.t.Append(parent, list)
	var (
		next        = i
		blankFinish = true
	)
	for isItem(next) {
		termLine := lines[next].TrimRight()
		var body []token.Line
		body, next, blankFinish = indented(lines, next+1)
		item := p.t.NewNode(ir.DefinitionListItem, p.blockSpan(termLine, body))
		p.t.Append(list, item)
		term := p.t.NewNode(ir.Term, p.lineSpan(termLine))
		p.t.Append(item, term)
		termText := token.TextOf(termLine)
		if strings.HasSuffix(termText.S, "::") {
			p.t.Report(ir.Info, p.lineSpan(termLine),
				"Blank line missing before literal block (after the \"::\")? Interpreted as a definition list item.")
		}
		p.inline(termText, term)
		def := p.t.NewNode(ir.Definition, p.blockSpan(body[0], body))
		p.t.Append(item, def)
		p.blocks(body, def, false)
	}
	p.t.Refit(list)
	p.unindentWarning("Definition list", lines, next, blankFinish)
	return next, true
}
