package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/scott-cotton/cli"
	"github.com/signadot/rstdoc/encode"
	"github.com/signadot/rstdoc/index"
)

func symbols(cfg *SymbolsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Symbols.Parse(cc, args)
	if err != nil {
		return err
	}
	docs, err := getDocs(cfg.MainConfig, cc, args)
	if err != nil {
		return err
	}
	colors := cfg.colors(cc.Out)
	for _, doc := range docs {
		x := index.Build(doc.tree)
		if len(docs) > 1 {
			fmt.Fprintf(cc.Out, "%s:\n", doc.name)
		}
		if cfg.Fold {
			for _, r := range x.FoldingRanges() {
				fmt.Fprintf(cc.Out, "%d-%d %s\n", r.StartLine, r.EndLine, r.Kind)
			}
			continue
		}
		if err := writeSymbols(cc.Out, x.Symbols(), 0, colors); err != nil {
			return err
		}
	}
	return nil
}

func writeSymbols(w io.Writer, syms []index.Symbol, depth int, colors *encode.Colors) error {
	for _, s := range syms {
		kind := s.Kind.String()
		if colors != nil {
			kind = colors.Color(encode.ElementColor, kind)
		}
		line := fmt.Sprintf("%s%s %s", strings.Repeat("  ", depth), kind, s.Name)
		if s.Detail != "" {
			line += " (" + s.Detail + ")"
		}
		if _, err := fmt.Fprintf(w, "%s :%d\n", line, s.Span.Start.Line); err != nil {
			return err
		}
		if err := writeSymbols(w, s.Children, depth+1, colors); err != nil {
			return err
		}
	}
	return nil
}
