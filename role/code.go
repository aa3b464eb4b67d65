package role

import (
	"slices"
	"strings"
	"unicode"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/signadot/rstdoc/ir"
	"github.com/signadot/rstdoc/token"
)

// applyCode builds a literal tagged "code" and, when a lexer for the
// role's language exists, highlighted children.
func (r *Registry) applyCode(role *Role, in Input) ir.NodeID {
	t := in.Tree
	id := t.NewNode(ir.Literal, in.Span)
	n := t.Node(id)
	n.Attrs.AddClass("code")
	n.Attrs.AddClass(role.EffectiveClasses()...)
	lang := role.language()
	n.Attrs.AddClass(lang)
	if role.custom {
		n.Attrs.Set("role", role.Name)
	}
	if in.Content.Len() == 0 {
		return id
	}
	for _, c := range Highlight(t, in.Content, lang) {
		t.Append(id, c)
	}
	return id
}

// Run is a run of highlighted text and its classes, empty for plain
// text.
type Run struct {
	Start, End int
	Classes    []string
}

// Tokens splits s into highlighted runs for lang. Adjacent tokens of the
// same classes are merged. It returns nil when no lexer knows lang.
func Tokens(s, lang string) []Run {
	if lang == "" {
		return nil
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return nil
	}
	it, err := lexer.Tokenise(&chroma.TokeniseOptions{State: "root"}, s)
	if err != nil {
		return nil
	}
	var (
		res []Run
		off int
	)
	for _, tok := range it.Tokens() {
		if tok.Value == "" {
			continue
		}
		end := min(off+len(tok.Value), len(s))
		cls := tokenClasses(tok.Type)
		if len(res) > 0 && slices.Equal(res[len(res)-1].Classes, cls) {
			res[len(res)-1].End = end
		} else {
			res = append(res, Run{Start: off, End: end, Classes: cls})
		}
		off = end
		if off >= len(s) {
			break
		}
	}
	return res
}

// Highlight returns detached nodes for the highlighted runs of c, or a
// single text node when lang is not known.
func Highlight(t *ir.Tree, c token.Text, lang string) []ir.NodeID {
	spans := Tokens(c.S, lang)
	if spans == nil {
		return []ir.NodeID{t.NewText(c.S, c.FullSpan(t.Doc))}
	}
	res := make([]ir.NodeID, 0, len(spans))
	for _, sp := range spans {
		part := c.Slice(sp.Start, sp.End)
		txt := t.NewText(part.S, part.FullSpan(t.Doc))
		if len(sp.Classes) == 0 {
			res = append(res, txt)
			continue
		}
		in := t.NewNode(ir.Inline, t.Node(txt).Span)
		t.Node(in).Attrs.AddClass(sp.Classes...)
		t.Append(in, txt)
		res = append(res, in)
	}
	return res
}

// tokenClasses turns a token type like NameBuiltin into the classes
// "name" "builtin". Text and whitespace have none.
func tokenClasses(tt chroma.TokenType) []string {
	if tt.Category() == chroma.Text || tt == chroma.Background {
		return nil
	}
	name := tt.String()
	var (
		res []string
		b   strings.Builder
	)
	for _, r := range name {
		if unicode.IsUpper(r) && b.Len() > 0 {
			res = append(res, b.String())
			b.Reset()
		}
		b.WriteRune(unicode.ToLower(r))
	}
	if b.Len() > 0 {
		res = append(res, b.String())
	}
	return res
}
