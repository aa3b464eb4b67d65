package main

import (
	"context"

	"github.com/signadot/rstdoc/ir"
	"go.lsp.dev/protocol"
)

func (s *Server) Definition(ctx context.Context, params *protocol.DefinitionParams) ([]protocol.Location, error) {
	uri := params.TextDocument.URI
	snap := s.snapshot(uri)
	if snap == nil {
		return nil, nil
	}
	line, col := fromPosition(snap.Tree, params.Position)
	id, ok := snap.Index.NodeAt(line, col)
	if !ok {
		return nil, nil
	}
	def, ok := snap.Index.DefinitionOf(id)
	if !ok {
		return nil, nil
	}
	return []protocol.Location{location(uri, snap.Tree, snap.Tree.Node(def).Span)}, nil
}

// References lists the references resolved to the declaration under
// the cursor, or to what the reference under the cursor resolves to.
func (s *Server) References(ctx context.Context, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	uri := params.TextDocument.URI
	snap := s.snapshot(uri)
	if snap == nil {
		return nil, nil
	}
	t := snap.Tree
	line, col := fromPosition(t, params.Position)
	id, ok := snap.Index.NodeAt(line, col)
	if !ok {
		return nil, nil
	}
	decl := declarationAt(t, id)
	if decl == ir.NoNode {
		if decl, ok = snap.Index.DefinitionOf(id); !ok {
			return nil, nil
		}
	}
	var res []protocol.Location
	if params.Context.IncludeDeclaration {
		res = append(res, location(uri, t, t.Node(decl).Span))
	}
	refs, err := snap.Index.ReferencesTo(t.Node(decl).FirstID())
	if err != nil {
		return res, nil
	}
	for _, r := range refs {
		res = append(res, location(uri, t, t.Node(r).Span))
	}
	return res, nil
}

// declarationAt returns the closest node at or above id that others may
// resolve to.
func declarationAt(t *ir.Tree, id ir.NodeID) ir.NodeID {
	for ; id != ir.NoNode; id = t.Node(id).Parent {
		n := t.Node(id)
		if n.Kind.IsReference() || n.Kind == ir.Document {
			return ir.NoNode
		}
		if len(n.Attrs.Backrefs) > 0 || len(n.Attrs.Names) > 0 {
			return id
		}
	}
	return ir.NoNode
}
