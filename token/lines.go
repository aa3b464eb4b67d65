package token

import (
	"strings"
)

// TabWidth is the tab stop used when measuring indentation.
const TabWidth = 8

// Line is one source line without its line terminator. Offset is the
// byte offset of Text[0] in the document; after indentation has been
// stripped it still points into the original source.
type Line struct {
	Num    int
	Offset int
	Text   string
}

func (l Line) IsBlank() bool {
	return strings.TrimSpace(l.Text) == ""
}

// Indent is the width of the leading whitespace, tabs expanded.
func (l Line) Indent() int {
	w := 0
	for i := 0; i < len(l.Text); i++ {
		switch l.Text[i] {
		case ' ':
			w++
		case '\t':
			w += TabWidth - w%TabWidth
		default:
			return w
		}
	}
	return w
}

// Strip removes up to n columns of leading whitespace.
func (l Line) Strip(n int) Line {
	w, i := 0, 0
loop:
	for i < len(l.Text) && w < n {
		switch l.Text[i] {
		case ' ':
			w++
		case '\t':
			w += TabWidth - w%TabWidth
		default:
			break loop
		}
		i++
	}
	return Line{Num: l.Num, Offset: l.Offset + i, Text: l.Text[i:]}
}

// Cut drops the first i bytes of the line.
func (l Line) Cut(i int) Line {
	i = min(max(i, 0), len(l.Text))
	return Line{Num: l.Num, Offset: l.Offset + i, Text: l.Text[i:]}
}

func (l Line) TrimRight() Line {
	l.Text = strings.TrimRight(l.Text, " \t\r")
	return l
}

// End is the offset just past the last byte of the line.
func (l Line) End() int {
	return l.Offset + len(l.Text)
}

// Scanner produces positioned lines from a document. It is lazy and can be
// restarted with Reset.
type Scanner struct {
	src string
	off int
	num int
}

func NewScanner(src string) *Scanner {
	return &Scanner{src: src}
}

func (s *Scanner) Reset() {
	s.off = 0
	s.num = 0
}

func (s *Scanner) Next() (Line, bool) {
	if s.off >= len(s.src) {
		return Line{}, false
	}
	s.num++
	start := s.off
	end := strings.IndexByte(s.src[start:], '\n')
	if end < 0 {
		s.off = len(s.src)
		end = len(s.src)
	} else {
		end += start
		s.off = end + 1
	}
	text := s.src[start:end]
	text = strings.TrimSuffix(text, "\r")
	return Line{Num: s.num, Offset: start, Text: text}, true
}

// Lines scans all remaining lines.
func (s *Scanner) Lines() []Line {
	var res []Line
	for {
		l, ok := s.Next()
		if !ok {
			return res
		}
		res = append(res, l)
	}
}

// Join assembles lines into a Text, separating them with the newline that
// follows each line in the source.
func Join(lines []Line) Text {
	var b strings.Builder
	var offs []int
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
			prev := lines[i-1]
			offs = append(offs, prev.End())
		}
		b.WriteString(l.Text)
		for j := 0; j < len(l.Text); j++ {
			offs = append(offs, l.Offset+j)
		}
	}
	end := 0
	if len(lines) > 0 {
		end = lines[len(lines)-1].End()
	}
	offs = append(offs, end)
	return Text{S: b.String(), Offs: offs}
}
