package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/signadot/rstdoc/encode"
	"github.com/signadot/rstdoc/index"
)

func query(cfg *QueryConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Query.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: query requires an expression", cli.ErrUsage)
	}
	q, err := index.Compile(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	docs, err := getDocs(cfg.MainConfig, cc, args[1:])
	if err != nil {
		return err
	}
	for _, doc := range docs {
		ids, err := index.Build(doc.tree).Match(q)
		if err != nil {
			return fmt.Errorf("%s: %w", doc.name, err)
		}
		for _, id := range ids {
			if cfg.Y {
				fmt.Fprintf(cc.Out, "# %s\n", doc.name)
				if err := encode.YAML(cc.Out, doc.tree, id, encode.EncodeSpans(true)); err != nil {
					return err
				}
				continue
			}
			n := doc.tree.Node(id)
			fmt.Fprintf(cc.Out, "%s:%d:%d: %s %q\n", doc.name, n.Span.Start.Line, n.Span.Start.Col+1,
				n.Kind, doc.tree.Text(id))
		}
	}
	return nil
}
