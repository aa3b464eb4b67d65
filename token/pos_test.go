package token

import (
	"testing"
)

func TestPosDoc(t *testing.T) {
	d := NewPosDoc("héllo\nx\n")
	tests := []struct {
		off  int
		line int
		col  int
	}{
		{0, 1, 0},
		{3, 1, 2},
		{6, 1, 5},
		{7, 2, 0},
		{9, 3, 0},
		{99, 3, 0},
	}
	for _, tt := range tests {
		p := d.Pos(tt.off)
		if p.Line != tt.line || p.Col != tt.col {
			t.Errorf("Pos(%d) = %s, want %d:%d", tt.off, p, tt.line, tt.col)
		}
	}
}

func TestPosDocOffset(t *testing.T) {
	d := NewPosDoc("héllo\nx\n")
	tests := []struct {
		line, col int
		want      int
	}{
		{1, 0, 0},
		{1, 2, 3},
		{1, 99, 6},
		{2, 0, 7},
		{2, 1, 8},
		{0, 4, 0},
		{7, 0, 9},
	}
	for _, tt := range tests {
		if got := d.Offset(tt.line, tt.col); got != tt.want {
			t.Errorf("Offset(%d, %d) = %d, want %d", tt.line, tt.col, got, tt.want)
		}
	}
}

func TestSpan(t *testing.T) {
	d := NewPosDoc("one two")
	outer, inner := d.Span(0, 7), d.Span(4, 7)
	if !outer.Contains(inner) || inner.Contains(outer) {
		t.Errorf("containment wrong for %s and %s", outer, inner)
	}
	if !inner.ContainsOffset(4) || inner.ContainsOffset(7) {
		t.Errorf("ContainsOffset wrong for %s", inner)
	}
	if !d.Span(3, 3).Empty() {
		t.Errorf("expected empty span")
	}
	if got := d.Slice(inner); got != "two" {
		t.Errorf("Slice = %q", got)
	}
}
