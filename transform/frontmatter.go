package transform

import (
	"slices"
	"strings"

	"github.com/signadot/rstdoc/ir"
)

// DocTitle promotes the title of a lone top level section to the document
// title, and then the title of a lone subsection to the document
// subtitle.
func DocTitle(t *ir.Tree) {
	root := t.Root
	if hasChild(t, root, ir.Title) {
		return
	}
	if !promote(t, root, 0, ir.Title) {
		return
	}
	t.Node(root).Attrs.Set("title", t.Text(t.Node(root).Children[titleIndex(t, root)]))
	promote(t, root, titleIndex(t, root)+1, ir.Subtitle)
}

// SectionSubtitle gives a section whose only body is one subsection that
// subsection's title as its subtitle.
func SectionSubtitle(t *ir.Tree) {
	for _, sec := range collect(t, ir.Section) {
		if hasChild(t, sec, ir.Subtitle) {
			continue
		}
		promote(t, sec, 1, ir.Subtitle)
	}
}

func hasChild(t *ir.Tree, id ir.NodeID, k ir.Kind) bool {
	return slices.ContainsFunc(t.Node(id).Children, func(c ir.NodeID) bool {
		return t.Kind(c) == k
	})
}

func titleIndex(t *ir.Tree, id ir.NodeID) int {
	return slices.IndexFunc(t.Node(id).Children, func(c ir.NodeID) bool {
		return t.Kind(c) == ir.Title
	})
}

// promote replaces a lone section found among the children of parent
// from index from on by its content, its title becoming a node of kind k
// in its place. The section's ids and names go to parent for titles and
// to the subtitle for subtitles.
func promote(t *ir.Tree, parent ir.NodeID, from int, k ir.Kind) bool {
	i := firstBody(t, parent, from)
	cs := t.Node(parent).Children
	if i < 0 || i != len(cs)-1 || t.Kind(cs[i]) != ir.Section {
		return false
	}
	sec := cs[i]
	s := t.Node(sec)
	if len(s.Children) == 0 || t.Kind(s.Children[0]) != ir.Title {
		return false
	}
	title := s.Children[0]
	t.Node(title).Kind = k
	if k == ir.Title {
		t.MoveIDs(sec, parent)
	} else {
		t.MoveIDs(sec, title)
	}
	t.Replace(sec, title)
	at := t.Index(title) + 1
	for _, c := range slices.Clone(s.Children) {
		t.Insert(parent, at, c)
		at++
	}
	return true
}

// bibliographic field names with their docinfo element names.
var bibliographic = map[string]string{
	"author":       "author",
	"authors":      "authors",
	"organization": "organization",
	"address":      "address",
	"contact":      "contact",
	"version":      "version",
	"revision":     "revision",
	"status":       "status",
	"date":         "date",
	"copyright":    "copyright",
	"dedication":   "dedication",
	"abstract":     "abstract",
}

// DocInfo turns a field list that opens the document body into the
// docinfo element and records its fields in t.DocInfo.
func DocInfo(t *ir.Tree) {
	root := t.Root
	i := firstBody(t, root, 0)
	if i < 0 || hasChild(t, root, ir.Docinfo) {
		return
	}
	fl := t.Node(root).Children[i]
	if t.Kind(fl) != ir.FieldList {
		return
	}
	t.Node(fl).Kind = ir.Docinfo
	if t.DocInfo == nil {
		t.DocInfo = map[string]string{}
	}
	for _, f := range t.Node(fl).Children {
		fc := t.Node(f).Children
		if len(fc) < 2 {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(t.Text(fc[0])))
		body := strings.TrimSpace(t.Text(fc[1]))
		if b, ok := bibliographic[name]; ok {
			t.Node(f).Attrs.Set("bibliographic", b)
			body = rcsKeyword(body)
		}
		t.DocInfo[name] = body
	}
}

// rcsKeyword reduces "$Keyword: value $" to value.
func rcsKeyword(s string) string {
	if !strings.HasPrefix(s, "$") || !strings.HasSuffix(s, "$") || len(s) < 2 {
		return s
	}
	inner := strings.TrimSpace(s[1 : len(s)-1])
	if _, v, ok := strings.Cut(inner, ":"); ok {
		return strings.TrimSpace(v)
	}
	return s
}
