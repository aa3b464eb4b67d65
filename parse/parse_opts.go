package parse

import (
	"context"
	"log/slog"

	"github.com/signadot/rstdoc/role"
)

type parseOpts struct {
	ctx          context.Context
	logger       *slog.Logger
	roles        *role.Registry
	pepBase      string
	rfcBase      string
	noTransforms bool
}

type ParseOption func(*parseOpts)

// WithContext makes parsing abandon its work with ErrCanceled once ctx
// is done.
func WithContext(ctx context.Context) ParseOption {
	return func(o *parseOpts) { o.ctx = ctx }
}

func WithLogger(l *slog.Logger) ParseOption {
	return func(o *parseOpts) { o.logger = l }
}

// WithRoles starts the document with the custom roles and default role
// of reg. reg itself is not modified.
func WithRoles(reg *role.Registry) ParseOption {
	return func(o *parseOpts) { o.roles = reg }
}

func WithPEPBase(base string) ParseOption {
	return func(o *parseOpts) { o.pepBase = base }
}

func WithRFCBase(base string) ParseOption {
	return func(o *parseOpts) { o.rfcBase = base }
}

// WithoutTransforms returns the tree as parsed, before any reference
// resolution.
func WithoutTransforms() ParseOption {
	return func(o *parseOpts) { o.noTransforms = true }
}
