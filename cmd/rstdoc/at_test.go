package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/scott-cotton/cli"
	"github.com/signadot/rstdoc/index"
	"github.com/signadot/rstdoc/ir"
)

func TestParseLineCol(t *testing.T) {
	tests := []struct {
		in        string
		line, col int
		err       bool
	}{
		{in: "1:1", line: 1, col: 0},
		{in: "12:7", line: 12, col: 6},
		{in: "12", err: true},
		{in: "0:1", err: true},
		{in: "1:0", err: true},
		{in: "a:b", err: true},
	}
	for _, tt := range tests {
		line, col, err := parseLineCol(tt.in)
		if tt.err {
			if !errors.Is(err, cli.ErrUsage) {
				t.Errorf("%q: got error %v", tt.in, err)
			}
			continue
		}
		if err != nil || line != tt.line || col != tt.col {
			t.Errorf("%q: got %d:%d, %v", tt.in, line, col, err)
		}
	}
}

func TestWriteSymbols(t *testing.T) {
	at := func(line int) ir.Span {
		return ir.Span{Start: ir.Pos{Line: line}}
	}
	syms := []index.Symbol{
		{Name: "Intro", Detail: "intro", Kind: ir.Section, Span: at(1), Children: []index.Symbol{
			{Name: "_site", Detail: "http://x", Kind: ir.Target, Span: at(4)},
		}},
		{Name: "[1]", Kind: ir.Footnote, Span: at(9)},
	}
	buf := bytes.NewBuffer(nil)
	if err := writeSymbols(buf, syms, 0, nil); err != nil {
		t.Fatal(err)
	}
	want := "section Intro (intro) :1\n" +
		"  target _site (http://x) :4\n" +
		"footnote [1] :9\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("symbols (-want +got):\n%s", diff)
	}
}
