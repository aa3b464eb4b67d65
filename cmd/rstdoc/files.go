package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
	"github.com/signadot/rstdoc/ir"
	"github.com/signadot/rstdoc/parse"
)

// document is a parsed input file. name is "-" for standard input.
type document struct {
	name  string
	tree  *ir.Tree
	diags []ir.Diagnostic
}

func readFile(cc *cli.Context, path string) (string, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("error reading %q: %w", path, err)
	}
	return string(d), nil
}

func getDoc(cfg *MainConfig, cc *cli.Context, path string) (*document, error) {
	src, err := readFile(cc, path)
	if err != nil {
		return nil, err
	}
	t, diags, err := parse.Parse(src, cfg.parseOpts()...)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}
	cfg.logger().Debug("parsed", "file", path, "nodes", t.Len(), "diagnostics", len(diags))
	return &document{name: path, tree: t, diags: diags}, nil
}

// getDocs parses files, or standard input when there are none.
func getDocs(cfg *MainConfig, cc *cli.Context, files []string) ([]*document, error) {
	if len(files) == 0 {
		files = []string{"-"}
	}
	res := make([]*document, 0, len(files))
	for _, f := range files {
		d, err := getDoc(cfg, cc, f)
		if err != nil {
			return nil, err
		}
		res = append(res, d)
	}
	return res, nil
}
