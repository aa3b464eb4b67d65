package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/signadot/rstdoc/encode"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	docs, err := getDocs(cfg.MainConfig, cc, args)
	if err != nil {
		return err
	}
	opts := cfg.encOpts(cc.Out)
	for i, doc := range docs {
		if i > 0 {
			if _, err := cc.Out.Write([]byte("\n---\n")); err != nil {
				return err
			}
		}
		if err := encode.Encode(cc.Out, doc.tree, doc.tree.Root, cfg.format(), opts...); err != nil {
			return fmt.Errorf("error encoding %s: %w", doc.name, err)
		}
	}
	return nil
}
