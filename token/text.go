package token

import (
	"strings"
)

// Text is block content assembled from source lines. Offs holds the source
// offset of every byte of S plus one trailing entry for the end offset, so
// any sub-range maps back to a source span.
type Text struct {
	S    string
	Offs []int
}

func TextOf(l Line) Text {
	return Join([]Line{l})
}

func (t Text) Len() int {
	return len(t.S)
}

func (t Text) Slice(i, j int) Text {
	i = min(max(i, 0), len(t.S))
	j = min(max(j, i), len(t.S))
	offs := make([]int, j-i+1)
	copy(offs, t.Offs[i:j])
	if j > i {
		offs[j-i] = t.Offs[j-1] + 1
	} else {
		offs[0] = t.Offs[i]
	}
	return Text{S: t.S[i:j], Offs: offs}
}

// Off returns the source offset of byte i, or the end offset when i is
// past the end.
func (t Text) Off(i int) int {
	if len(t.Offs) == 0 {
		return 0
	}
	i = min(max(i, 0), len(t.Offs)-1)
	return t.Offs[i]
}

// End returns the source offset just past byte i-1.
func (t Text) End(i int) int {
	if i <= 0 {
		return t.Off(0)
	}
	return t.Off(i-1) + 1
}

func (t Text) Span(d *PosDoc, i, j int) Span {
	if j <= i {
		o := t.Off(i)
		return Span{Start: d.Pos(o), End: d.Pos(o)}
	}
	return Span{Start: d.Pos(t.Off(i)), End: d.Pos(t.End(j))}
}

func (t Text) FullSpan(d *PosDoc) Span {
	return t.Span(d, 0, len(t.S))
}

// TrimSpace trims surrounding whitespace while keeping offsets aligned.
func (t Text) TrimSpace() Text {
	i, j := 0, len(t.S)
	for i < j && isSpace(t.S[i]) {
		i++
	}
	for j > i && isSpace(t.S[j-1]) {
		j--
	}
	return t.Slice(i, j)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// Escaped reports whether byte i of s is escaped by an unescaped backslash.
func Escaped(s string, i int) bool {
	n := 0
	for k := i - 1; k >= 0 && s[k] == '\\'; k-- {
		n++
	}
	return n%2 == 1
}

// Unescape removes backslash escapes. Escaped whitespace is removed along
// with its backslash.
func Unescape(s string) string {
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(s) {
			break
		}
		i++
		if isSpace(s[i]) {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// StripWhitespace removes all whitespace, as URIs split over lines are
// joined.
func StripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// UnescapeText is Unescape keeping every remaining byte mapped to its
// source offset.
func UnescapeText(t Text) Text {
	s := t.S
	if strings.IndexByte(s, '\\') < 0 {
		return t
	}
	var b strings.Builder
	offs := make([]int, 0, len(s)+1)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' {
			if i+1 >= len(s) {
				break
			}
			i++
			if isSpace(s[i]) {
				continue
			}
			c = s[i]
		}
		b.WriteByte(c)
		offs = append(offs, t.Off(i))
	}
	offs = append(offs, t.End(len(s)))
	return Text{S: b.String(), Offs: offs}
}
