package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"github.com/signadot/rstdoc/encode"
	"github.com/signadot/rstdoc/parse"
)

type MainConfig struct {
	Color   bool   `cli:"name=color desc='output with color'"`
	Raw     bool   `cli:"name=raw desc='skip reference resolution transforms'"`
	Verbose bool   `cli:"name=v aliases=verbose desc='log debug messages to stderr'"`
	PEPBase string `cli:"name=pep-base desc='base URI of PEP references'"`
	RFCBase string `cli:"name=rfc-base desc='base URI of RFC references'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
	log  *slog.Logger
}

func (cfg *MainConfig) logger() *slog.Logger {
	if cfg.log == nil {
		cfg.log = newLogger(cfg.Verbose)
	}
	return cfg.log
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	res := []parse.ParseOption{parse.WithLogger(cfg.logger())}
	if cfg.Raw {
		res = append(res, parse.WithoutTransforms())
	}
	if cfg.PEPBase != "" {
		res = append(res, parse.WithPEPBase(cfg.PEPBase))
	}
	if cfg.RFCBase != "" {
		res = append(res, parse.WithRFCBase(cfg.RFCBase))
	}
	return res
}

func (cfg *MainConfig) colors(w io.Writer) *encode.Colors {
	if cfg.Color {
		return encode.NewColors()
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return nil
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return encode.NewColors()
	}
	return nil
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	var res []encode.EncodeOption
	if c := cfg.colors(w); c != nil {
		res = append(res, encode.EncodeColors(c))
	}
	return res
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

type ViewConfig struct {
	*MainConfig

	Y           bool `cli:"name=y aliases=yaml desc='output yaml'"`
	Spans       bool `cli:"name=s aliases=spans desc='include source spans'"`
	Diagnostics bool `cli:"name=d aliases=diags desc='include system messages'"`
	Depth       int  `cli:"name=depth desc='maximum depth to show, 0 for all'"`

	Format *encode.Format
	View   *cli.Command
}

func (cfg *ViewConfig) fmtOpt(_ *cli.Context, v string) (any, error) {
	f, err := encode.ParseFormat(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.Format = &f
	return f, nil
}

func (cfg *ViewConfig) format() encode.Format {
	if cfg.Format != nil {
		return *cfg.Format
	}
	if cfg.Y {
		return encode.YAMLFormat
	}
	return encode.PseudoXMLFormat
}

func (cfg *ViewConfig) encOpts(w io.Writer) []encode.EncodeOption {
	return append(cfg.MainConfig.encOpts(w),
		encode.EncodeSpans(cfg.Spans),
		encode.EncodeDiagnostics(cfg.Diagnostics),
		encode.Depth(cfg.Depth))
}

type CheckConfig struct {
	*MainConfig

	Level string `cli:"name=level desc='least severity to report: info, warning, error, severe'"`

	Check *cli.Command
}

type AtConfig struct {
	*MainConfig

	Up int `cli:"name=up desc='show this many ancestors of the node'"`

	At *cli.Command
}

type RefsConfig struct {
	*MainConfig

	Refs *cli.Command
}

type SymbolsConfig struct {
	*MainConfig

	Fold bool `cli:"name=fold desc='list folding ranges instead'"`

	Symbols *cli.Command
}

type QueryConfig struct {
	*MainConfig

	Y bool `cli:"name=y aliases=yaml desc='output matching nodes as yaml'"`

	Query *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Spans bool `cli:"name=s aliases=spans desc='compare source spans too'"`

	Diff *cli.Command
}
