package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/signadot/rstdoc/encode"
	"github.com/signadot/rstdoc/ir"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	least := ir.Info
	if cfg.Level != "" {
		least, err = ir.ParseSeverity(cfg.Level)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	docs, err := getDocs(cfg.MainConfig, cc, args)
	if err != nil {
		return err
	}
	colors := cfg.colors(cc.Out)
	failed := false
	for _, doc := range docs {
		var ds []ir.Diagnostic
		for _, d := range doc.diags {
			if d.Severity >= ir.Error {
				failed = true
			}
			if d.Severity >= least {
				ds = append(ds, d)
			}
		}
		if err := encode.WriteDiagnostics(cc.Out, doc.name, ds, colors); err != nil {
			return err
		}
	}
	if failed {
		return cli.ExitCodeErr(1)
	}
	return nil
}
