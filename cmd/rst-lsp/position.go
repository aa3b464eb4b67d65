package main

import (
	"strings"
	"unicode/utf8"

	"github.com/signadot/rstdoc/ir"
	"go.lsp.dev/protocol"
)

// Tree positions count runes; the protocol counts UTF-16 code units.

func lineText(t *ir.Tree, line int) string {
	start := t.Doc.Offset(line, 0)
	rest := t.Source[start:]
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		return rest[:i]
	}
	return rest
}

func toUTF16(s string, runes int) uint32 {
	n := 0
	for _, r := range s {
		if runes == 0 {
			break
		}
		runes--
		n++
		if r >= 0x10000 {
			n++
		}
	}
	return uint32(n)
}

func fromUTF16(s string, units int) int {
	n := 0
	for len(s) > 0 && units > 0 {
		r, sz := utf8.DecodeRuneInString(s)
		s = s[sz:]
		units--
		if r >= 0x10000 {
			units--
		}
		n++
	}
	return n
}

func toPosition(t *ir.Tree, p ir.Pos) protocol.Position {
	return protocol.Position{
		Line:      uint32(p.Line - 1),
		Character: toUTF16(lineText(t, p.Line), p.Col),
	}
}

func toRange(t *ir.Tree, s ir.Span) protocol.Range {
	return protocol.Range{Start: toPosition(t, s.Start), End: toPosition(t, s.End)}
}

// fromPosition returns the 1-based line and rune column of p.
func fromPosition(t *ir.Tree, p protocol.Position) (int, int) {
	line := int(p.Line) + 1
	return line, fromUTF16(lineText(t, line), int(p.Character))
}

func location(uri protocol.DocumentURI, t *ir.Tree, s ir.Span) protocol.Location {
	return protocol.Location{URI: uri, Range: toRange(t, s)}
}
