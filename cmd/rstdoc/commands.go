package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})
	return cli.NewCommandAt(&cfg.Main, "rstdoc").
		WithSynopsis("rstdoc [opts] command [opts]").
		WithDescription("rstdoc parses reStructuredText and answers questions about the resulting document trees.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return rstMain(cfg, cc, args)
		}).
		WithSubs(
			ViewCommand(cfg),
			CheckCommand(cfg),
			AtCommand(cfg),
			RefsCommand(cfg),
			SymbolsCommand(cfg),
			QueryCommand(cfg),
			DiffCommand(cfg))
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "O",
		Aliases:     []string{"ofmt"},
		Description: "output format: pseudoxml/x, yaml/y",
		Type:        cli.NamedFuncOpt(cfg.fmtOpt, "(format)"),
	})
	return cli.NewCommandAt(&cfg.View, "view").
		WithAliases("v").
		WithSynopsis("view [opts] [files]").
		WithDescription("show document trees as pseudo-XML or YAML").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check [opts] [files]").
		WithDescription("report diagnostics, exiting non-zero on errors").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}

func AtCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &AtConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.At, "at").
		WithSynopsis("at [opts] <line:col> file").
		WithDescription("show the node at a position and what it refers to").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return at(cfg, cc, args)
		})
}

func RefsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RefsConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Refs, "refs").
		WithAliases("r").
		WithSynopsis("refs <id> file").
		WithDescription("list the references resolved to the node with an id").
		WithRun(func(cc *cli.Context, args []string) error {
			return refs(cfg, cc, args)
		})
}

func SymbolsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SymbolsConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Symbols, "symbols").
		WithAliases("sym").
		WithSynopsis("symbols [opts] [files]").
		WithDescription("show document outlines").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return symbols(cfg, cc, args)
		})
}

func QueryCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &QueryConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Query, "query").
		WithAliases("q").
		WithSynopsis("query [opts] <expr> [files]").
		WithDescription(queryDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return query(cfg, cc, args)
		})
}

const queryDescription = `query lists the nodes for which an expression holds.

The expression is evaluated for each node with these variables:

  kind       element name, such as "reference" or "section"
  ids        list of ids
  names      list of names
  refname    unresolved reference name
  refuri     external URI
  refid      internal id referred to
  classes    list of classes
  backrefs   ids of references resolved to the node
  text       rendered text
  line       1-based starting line
  generated  whether the node was copied by substitution
  attrs      other attributes, such as attrs.language
  ancestors  element names of the ancestors, innermost first

Examples

  rstdoc query 'kind == "reference" && refuri != ""' doc.rst
  rstdoc query '"footnote" in ancestors' doc.rst
  rstdoc query 'len(backrefs) == 0 && kind == "target"' doc.rst`

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff [opts] a b").
		WithDescription("diff the document trees of two files").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}
