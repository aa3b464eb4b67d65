package token

import (
	"fmt"
	"sort"
	"strconv"
	"unicode/utf8"
)

// PosDoc maps byte offsets in a document to line and column positions.
type PosDoc struct {
	d string
	n []int
}

func NewPosDoc(d string) *PosDoc {
	p := &PosDoc{d: d}
	for i := 0; i < len(d); i++ {
		if d[i] == '\n' {
			p.n = append(p.n, i)
		}
	}
	return p
}

func (p *PosDoc) Len() int {
	return len(p.d)
}

// LineCol returns the 0-based line and the 0-based rune column of off.
func (p *PosDoc) LineCol(off int) (int, int) {
	off = min(max(off, 0), len(p.d))
	di := sort.Search(len(p.n), func(i int) bool {
		return p.n[i] >= off
	})
	start := 0
	if di > 0 {
		start = p.n[di-1] + 1
	}
	return di, utf8.RuneCountInString(p.d[start:off])
}

// Offset is the inverse of Pos: line is 1-based, col a 0-based rune
// column. Columns past the end of the line clamp to the line end.
func (p *PosDoc) Offset(line, col int) int {
	if line < 1 {
		return 0
	}
	if line-1 > len(p.n) {
		return len(p.d)
	}
	start := 0
	if line > 1 {
		start = p.n[line-2] + 1
	}
	end := len(p.d)
	if line-1 < len(p.n) {
		end = p.n[line-1]
	}
	i := start
	for c := 0; c < col && i < end; c++ {
		_, sz := utf8.DecodeRuneInString(p.d[i:])
		i += sz
	}
	return i
}

func (p *PosDoc) Pos(off int) Pos {
	l, c := p.LineCol(off)
	return Pos{Offset: min(max(off, 0), len(p.d)), Line: l + 1, Col: c}
}

func (p *PosDoc) Span(start, end int) Span {
	return Span{Start: p.Pos(start), End: p.Pos(end)}
}

// Slice returns the source text covered by s.
func (p *PosDoc) Slice(s Span) string {
	a := min(max(s.Start.Offset, 0), len(p.d))
	b := min(max(s.End.Offset, a), len(p.d))
	return p.d[a:b]
}

// Pos is a position in a document: a byte offset, a 1-based line and a
// 0-based rune column.
type Pos struct {
	Offset int
	Line   int
	Col    int
}

func (p Pos) Before(o Pos) bool {
	return p.Offset < o.Offset
}

func (p Pos) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Col)
}

// Span is the half-open range [Start, End).
type Span struct {
	Start Pos
	End   Pos
}

func (s Span) Contains(o Span) bool {
	return s.Start.Offset <= o.Start.Offset && o.End.Offset <= s.End.Offset
}

func (s Span) ContainsOffset(off int) bool {
	return s.Start.Offset <= off && off < s.End.Offset
}

func (s Span) Empty() bool {
	return s.End.Offset <= s.Start.Offset
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}
