package transform

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/signadot/rstdoc/debug"
	"github.com/signadot/rstdoc/ir"
)

// Pass is one step of the pipeline.
type Pass struct {
	Name  string
	Apply func(t *ir.Tree)
}

var pipeline = []Pass{
	{"substitutions", Substitutions},
	{"propagate-targets", PropagateTargets},
	{"doc-title", DocTitle},
	{"doc-info", DocInfo},
	{"section-subtitle", SectionSubtitle},
	{"anonymous-hyperlinks", AnonymousHyperlinks},
	{"indirect-hyperlinks", IndirectHyperlinks},
	{"footnotes", Footnotes},
	{"external-targets", ExternalTargets},
	{"internal-targets", InternalTargets},
	{"strip-comments", StripComments},
	{"dangling-references", DanglingReferences},
	{"transitions", Transitions},
}

// Pipeline returns the passes in the order Run applies them.
func Pipeline() []Pass {
	return slices.Clone(pipeline)
}

// Lookup returns the pass called name.
func Lookup(name string) (Pass, error) {
	for _, p := range pipeline {
		if p.Name == name {
			return p, nil
		}
	}
	return Pass{}, fmt.Errorf("%w: %q", ErrUnknownPass, name)
}

type RunOption func(*runOpts)

type runOpts struct {
	logger *slog.Logger
	only   []string
}

func WithLogger(l *slog.Logger) RunOption {
	return func(o *runOpts) { o.logger = l }
}

// Only restricts Run to the named passes, still applied in pipeline
// order.
func Only(names ...string) RunOption {
	return func(o *runOpts) { o.only = names }
}

// Run applies the pipeline to t. The context is checked between passes;
// a canceled run leaves t partially transformed and returns the context
// error.
func Run(ctx context.Context, t *ir.Tree, opts ...RunOption) error {
	o := &runOpts{}
	for _, f := range opts {
		f(o)
	}
	log := o.logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	for _, name := range o.only {
		if _, err := Lookup(name); err != nil {
			return err
		}
	}
	for _, p := range pipeline {
		if o.only != nil && !slices.Contains(o.only, p.Name) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		before := len(t.Diagnostics)
		p.Apply(t)
		if debug.Transform() {
			debug.Logf("after %s:\n%s\n", p.Name, t)
		}
		log.Debug("transform pass", "pass", p.Name, "diagnostics", len(t.Diagnostics)-before)
	}
	return nil
}
