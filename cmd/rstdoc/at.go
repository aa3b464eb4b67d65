package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
	"github.com/signadot/rstdoc/encode"
	"github.com/signadot/rstdoc/index"
	"github.com/signadot/rstdoc/ir"
)

func parseLineCol(s string) (int, int, error) {
	l, c, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: expected line:col, got %q", cli.ErrUsage, s)
	}
	line, err := strconv.Atoi(l)
	if err != nil || line < 1 {
		return 0, 0, fmt.Errorf("%w: bad line in %q", cli.ErrUsage, s)
	}
	col, err := strconv.Atoi(c)
	if err != nil || col < 1 {
		return 0, 0, fmt.Errorf("%w: bad column in %q", cli.ErrUsage, s)
	}
	// columns are 1-based on the command line
	return line, col - 1, nil
}

func at(cfg *AtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.At.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: at requires a position and a file, got %v", cli.ErrUsage, args)
	}
	line, col, err := parseLineCol(args[0])
	if err != nil {
		return err
	}
	doc, err := getDoc(cfg.MainConfig, cc, args[1])
	if err != nil {
		return err
	}
	x := index.Build(doc.tree)
	id, ok := x.NodeAt(line, col)
	if !ok {
		return fmt.Errorf("no node at %s in %s", args[0], doc.name)
	}
	for i := 0; i < cfg.Up && doc.tree.Node(id).Parent != ir.NoNode; i++ {
		id = doc.tree.Node(id).Parent
	}
	opts := []encode.EncodeOption{encode.EncodeSpans(true), encode.Depth(1)}
	out := yaml.MapSlice{{Key: "node", Value: encode.Value(doc.tree, id, opts...)}}
	var path []string
	for p := doc.tree.Node(id).Parent; p != ir.NoNode; p = doc.tree.Node(p).Parent {
		path = append(path, doc.tree.Kind(p).String())
	}
	if len(path) > 0 {
		out = append(out, yaml.MapItem{Key: "ancestors", Value: path})
	}
	if def, ok := x.DefinitionOf(id); ok {
		out = append(out, yaml.MapItem{Key: "definition", Value: encode.Value(doc.tree, def, opts...)})
	}
	enc := yaml.NewEncoder(cc.Out, yaml.Indent(2), yaml.UseLiteralStyleIfMultiline(true))
	return enc.Encode(out)
}
