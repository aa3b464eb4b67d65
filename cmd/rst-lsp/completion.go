package main

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/signadot/rstdoc/parse"
	"github.com/signadot/rstdoc/role"
	"go.lsp.dev/protocol"
)

var (
	// ":na" where a role name is being typed
	roleCtx = regexp.MustCompile(`(?:^|[\s(\[{<'"])(:)([a-z0-9_.+-]*)$`)
	// ".. na" at the start of an explicit markup line
	directiveCtx = regexp.MustCompile(`^\s*\.\.( ?)([a-z0-9_.+-]*)$`)
)

func (s *Server) Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	snap := s.snapshot(params.TextDocument.URI)
	if snap == nil {
		return nil, nil
	}
	line := int(params.Position.Line) + 1
	text := lineText(snap.Tree, line)
	col := fromUTF16(text, int(params.Position.Character))
	before := string([]rune(text)[:min(col, len([]rune(text)))])
	items := completions(before, snap.Tree.Names.Roles())
	if len(items) == 0 {
		return nil, nil
	}
	return &protocol.CompletionList{Items: items}, nil
}

// completions offers role names after ":" and directive names after "..".
// customs are the roles declared in the document.
func completions(before string, customs []string) []protocol.CompletionItem {
	var res []protocol.CompletionItem
	if m := directiveCtx.FindStringSubmatch(before); m != nil {
		lead := " "
		if m[1] != "" {
			lead = ""
		}
		for _, name := range parse.DirectiveNames() {
			if !strings.HasPrefix(name, m[2]) {
				continue
			}
			item := protocol.CompletionItem{
				Label:            name,
				Kind:             protocol.CompletionItemKindClass,
				InsertText:       lead + name + ":: $0",
				InsertTextFormat: protocol.InsertTextFormatSnippet,
			}
			if opts, _ := parse.DirectiveOptions(name); len(opts) > 0 {
				item.Detail = "options: " + strings.Join(opts, ", ")
			}
			res = append(res, item)
		}
		return res
	}
	m := roleCtx.FindStringSubmatch(before)
	if m == nil {
		return nil
	}
	add := func(name, detail string) {
		if !strings.HasPrefix(name, m[2]) {
			return
		}
		res = append(res, protocol.CompletionItem{
			Label:            name,
			Kind:             protocol.CompletionItemKindFunction,
			Detail:           detail,
			InsertText:       name + ":`$0`",
			InsertTextFormat: protocol.InsertTextFormatSnippet,
		})
	}
	reg := role.NewRegistry()
	builtin := role.Names()
	for _, name := range builtin {
		r, _ := reg.Lookup(name)
		add(name, fmt.Sprintf("role %s", r.Behavior))
	}
	for _, name := range customs {
		if !slices.Contains(builtin, name) {
			add(name, "custom role")
		}
	}
	return res
}
