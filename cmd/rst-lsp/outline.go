package main

import (
	"context"

	"github.com/signadot/rstdoc/index"
	"github.com/signadot/rstdoc/ir"
	"go.lsp.dev/protocol"
)

func (s *Server) DocumentSymbol(ctx context.Context, params *protocol.DocumentSymbolParams) ([]interface{}, error) {
	snap := s.snapshot(params.TextDocument.URI)
	if snap == nil {
		return nil, nil
	}
	syms := documentSymbols(snap.Tree, snap.Index.Symbols())
	res := make([]interface{}, len(syms))
	for i := range syms {
		res[i] = syms[i]
	}
	return res, nil
}

func documentSymbols(t *ir.Tree, syms []index.Symbol) []protocol.DocumentSymbol {
	res := make([]protocol.DocumentSymbol, 0, len(syms))
	for _, sym := range syms {
		name := sym.Name
		if name == "" {
			name = sym.Kind.String()
		}
		res = append(res, protocol.DocumentSymbol{
			Name:           name,
			Detail:         sym.Detail,
			Kind:           symbolKind(sym.Kind),
			Range:          toRange(t, sym.Span),
			SelectionRange: toRange(t, sym.Selection),
			Children:       documentSymbols(t, sym.Children),
		})
	}
	return res
}

func symbolKind(k ir.Kind) protocol.SymbolKind {
	switch k {
	case ir.Section:
		return protocol.SymbolKindNamespace
	case ir.Target:
		return protocol.SymbolKindKey
	case ir.SubstitutionDefinition:
		return protocol.SymbolKindVariable
	case ir.Footnote, ir.Citation:
		return protocol.SymbolKindField
	}
	return protocol.SymbolKindObject
}

func (s *Server) FoldingRanges(ctx context.Context, params *protocol.FoldingRangeParams) ([]protocol.FoldingRange, error) {
	snap := s.snapshot(params.TextDocument.URI)
	if snap == nil {
		return nil, nil
	}
	frs := snap.Index.FoldingRanges()
	res := make([]protocol.FoldingRange, 0, len(frs))
	for _, fr := range frs {
		r := protocol.FoldingRange{
			StartLine: uint32(fr.StartLine - 1),
			EndLine:   uint32(fr.EndLine - 1),
		}
		if fr.Kind == ir.Comment {
			r.Kind = protocol.CommentFoldingRange
		} else {
			r.Kind = protocol.RegionFoldingRange
		}
		res = append(res, r)
	}
	return res, nil
}
