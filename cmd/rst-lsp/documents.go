package main

import (
	"context"
	"errors"

	"github.com/signadot/rstdoc/ir"
	"github.com/signadot/rstdoc/parse"
	"github.com/signadot/rstdoc/workspace"
	"go.lsp.dev/protocol"
)

func (s *Server) snapshot(uri protocol.DocumentURI) *workspace.Snapshot {
	snap, ok := s.ws.Snapshot(string(uri))
	if !ok {
		return nil
	}
	return snap
}

// update parses in the background so that a newer version can cancel
// it.
func (s *Server) update(uri protocol.DocumentURI, version int32, text string) {
	go func() {
		ctx := context.Background()
		snap, err := s.ws.Update(ctx, string(uri), version, text)
		switch {
		case errors.Is(err, workspace.ErrStale), errors.Is(err, parse.ErrCanceled):
			return
		case err != nil:
			s.log.Error("update failed", "uri", uri, "version", version, "error", err)
			return
		}
		s.publishDiagnostics(ctx, uri, snap)
	}()
}

func (s *Server) publishDiagnostics(ctx context.Context, uri protocol.DocumentURI, snap *workspace.Snapshot) {
	diagnostics := make([]protocol.Diagnostic, 0, len(snap.Diagnostics))
	for _, d := range snap.Diagnostics {
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    toRange(snap.Tree, d.Span),
			Severity: severity(d.Severity),
			Code:     d.ID,
			Source:   lsName,
			Message:  d.Message,
		})
	}
	if s.conn == nil {
		return
	}
	err := s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Version:     uint32(snap.Version),
		Diagnostics: diagnostics,
	})
	if err != nil {
		s.log.Warn("publishing diagnostics", "uri", uri, "error", err)
	}
}

func severity(sev ir.Severity) protocol.DiagnosticSeverity {
	switch sev {
	case ir.Info:
		return protocol.DiagnosticSeverityInformation
	case ir.Warning:
		return protocol.DiagnosticSeverityWarning
	}
	return protocol.DiagnosticSeverityError
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.update(params.TextDocument.URI, params.TextDocument.Version, params.TextDocument.Text)
	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	// full sync: the last change holds the whole text
	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	s.update(params.TextDocument.URI, params.TextDocument.Version, text)
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	if err := s.ws.Close(string(params.TextDocument.URI)); err != nil {
		s.log.Debug("close", "error", err)
	}
	return nil
}
