package workspace

import (
	"log/slog"

	"github.com/signadot/rstdoc/parse"
)

type wsOpts struct {
	logger    *slog.Logger
	parseOpts []parse.ParseOption
	limit     int
}

type Option func(*wsOpts)

func WithLogger(l *slog.Logger) Option {
	return func(o *wsOpts) { o.logger = l }
}

// WithParseOptions adds options to every parse. WithContext is supplied
// by the workspace and should not be given.
func WithParseOptions(opts ...parse.ParseOption) Option {
	return func(o *wsOpts) { o.parseOpts = append(o.parseOpts, opts...) }
}

// WithLimit bounds the number of documents ParseAll parses at once. The
// default is GOMAXPROCS.
func WithLimit(n int) Option {
	return func(o *wsOpts) { o.limit = n }
}
