package workspace

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/signadot/rstdoc/index"
	"github.com/signadot/rstdoc/ir"
	"github.com/signadot/rstdoc/parse"
	"github.com/zeebo/blake3"
	"golang.org/x/sync/errgroup"
)

// Snapshot is an immutable parse of one version of a document.
type Snapshot struct {
	ID      uuid.UUID
	URI     string
	Version int32
	Hash    [32]byte

	Tree        *ir.Tree
	Index       *index.Index
	Diagnostics []ir.Diagnostic
}

func (s *Snapshot) HashString() string {
	return hex.EncodeToString(s.Hash[:])
}

func (s *Snapshot) String() string {
	return fmt.Sprintf("%s@%d (%s)", s.URI, s.Version, s.ID)
}

type document struct {
	snap atomic.Pointer[Snapshot]

	// guarded by Workspace.mu; cancel is set while a run is in flight
	run        uint64
	runVersion int32
	cancel     context.CancelFunc
}

type Workspace struct {
	opts wsOpts
	log  *slog.Logger

	mu   sync.Mutex
	docs map[string]*document
	runs uint64
}

func New(opts ...Option) *Workspace {
	w := &Workspace{docs: map[string]*document{}}
	for _, f := range opts {
		f(&w.opts)
	}
	w.log = w.opts.logger
	if w.log == nil {
		w.log = slog.New(slog.DiscardHandler)
	}
	return w
}

// Snapshot returns the published snapshot of uri.
func (w *Workspace) Snapshot(uri string) (*Snapshot, bool) {
	w.mu.Lock()
	d := w.docs[uri]
	w.mu.Unlock()
	if d == nil {
		return nil, false
	}
	s := d.snap.Load()
	return s, s != nil
}

// URIs returns the documents with a published snapshot, sorted.
func (w *Workspace) URIs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	res := make([]string, 0, len(w.docs))
	for uri, d := range w.docs {
		if d.snap.Load() != nil {
			res = append(res, uri)
		}
	}
	slices.Sort(res)
	return res
}

// Close cancels any parse of uri and forgets it.
func (w *Workspace) Close(uri string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	d, ok := w.docs[uri]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDocument, uri)
	}
	if d.cancel != nil {
		d.cancel()
	}
	delete(w.docs, uri)
	return nil
}

// Update parses version of uri and publishes the result. An update that
// is canceled, by ctx or by a newer update of uri, publishes nothing and
// returns an error wrapping ErrStale or parse.ErrCanceled.
func (w *Workspace) Update(ctx context.Context, uri string, version int32, text string) (*Snapshot, error) {
	w.mu.Lock()
	d := w.docs[uri]
	if d == nil {
		d = &document{}
		w.docs[uri] = d
	}
	prev := d.snap.Load()
	if prev != nil && version <= prev.Version {
		w.mu.Unlock()
		return nil, fmt.Errorf("%w: %s version %d, have %d", ErrStale, uri, version, prev.Version)
	}
	if d.cancel != nil {
		if version <= d.runVersion {
			w.mu.Unlock()
			return nil, fmt.Errorf("%w: %s version %d, parsing %d", ErrStale, uri, version, d.runVersion)
		}
		d.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	w.runs++
	run := w.runs
	d.run, d.runVersion, d.cancel = run, version, cancel
	w.mu.Unlock()

	snap := &Snapshot{
		ID:      uuid.New(),
		URI:     uri,
		Version: version,
		Hash:    blake3.Sum256([]byte(text)),
	}
	log := w.log.With("uri", uri, "version", version, "snapshot", snap.ID)
	reused := prev != nil && prev.Hash == snap.Hash
	if reused {
		snap.Tree, snap.Index, snap.Diagnostics = prev.Tree, prev.Index, prev.Diagnostics
	} else {
		opts := append(slices.Clone(w.opts.parseOpts), parse.WithContext(runCtx), parse.WithLogger(log))
		t, diags, err := parse.Parse(text, opts...)
		if err != nil {
			log.Debug("parse abandoned", "error", err)
			return nil, w.abandoned(d, run, err)
		}
		snap.Tree, snap.Diagnostics = t, diags
		snap.Index = index.Build(t)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if d.run != run || runCtx.Err() != nil {
		log.Debug("parse overtaken")
		return nil, fmt.Errorf("%w: %s version %d overtaken", ErrStale, uri, version)
	}
	d.cancel = nil
	if w.docs[uri] != d {
		return nil, fmt.Errorf("%w: %s closed", ErrUnknownDocument, uri)
	}
	if cur := d.snap.Load(); cur != nil && cur.Version >= version {
		return nil, fmt.Errorf("%w: %s version %d, have %d", ErrStale, uri, version, cur.Version)
	}
	d.snap.Store(snap)
	log.Debug("published snapshot", "reused", reused, "diagnostics", len(snap.Diagnostics), "hash", snap.HashString()[:12])
	return snap, nil
}

func (w *Workspace) abandoned(d *document, run uint64, err error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if d.run == run {
		d.cancel = nil
		return err
	}
	return fmt.Errorf("%w: %w", ErrStale, err)
}

// Source is a document to parse.
type Source struct {
	URI     string
	Version int32
	Text    string
}

// ParseAll updates every source concurrently and returns the snapshots
// in the order of srcs. The first failure cancels the rest.
func (w *Workspace) ParseAll(ctx context.Context, srcs []Source) ([]*Snapshot, error) {
	limit := w.opts.limit
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	res := make([]*Snapshot, len(srcs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, src := range srcs {
		g.Go(func() error {
			s, err := w.Update(gctx, src.URI, src.Version, src.Text)
			if err != nil {
				return fmt.Errorf("%s: %w", src.URI, err)
			}
			res[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
