package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/signadot/rstdoc/index"
)

func refs(cfg *RefsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Refs.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: refs requires an id and a file, got %v", cli.ErrUsage, args)
	}
	doc, err := getDoc(cfg.MainConfig, cc, args[1])
	if err != nil {
		return err
	}
	x := index.Build(doc.tree)
	ids, err := x.ReferencesTo(args[0])
	if err != nil {
		return err
	}
	for _, id := range ids {
		n := doc.tree.Node(id)
		_, err := fmt.Fprintf(cc.Out, "%s:%d:%d: %s %q\n", doc.name, n.Span.Start.Line, n.Span.Start.Col+1,
			n.Kind, doc.tree.Text(id))
		if err != nil {
			return err
		}
	}
	return nil
}
