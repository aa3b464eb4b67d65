package encode

import (
	"bytes"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"github.com/signadot/rstdoc/ir"
)

// Diff returns a line diff from one text to another, "-" marking removed
// lines and "+" added ones. It is empty when the texts are equal.
func Diff(from, to string) string {
	if from == to {
		return ""
	}
	diffCfg := diffpatch.New()
	a, b, lines := diffCfg.DiffLinesToChars(from, to)
	diffs := diffCfg.DiffCharsToLines(diffCfg.DiffMain(a, b, false), lines)
	buf := bytes.NewBuffer(nil)
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffpatch.DiffInsert:
			prefix = "+ "
		case diffpatch.DiffDelete:
			prefix = "- "
		}
		for _, l := range strings.SplitAfter(d.Text, "\n") {
			if l == "" {
				continue
			}
			buf.WriteString(prefix)
			buf.WriteString(l)
			if !strings.HasSuffix(l, "\n") {
				buf.WriteByte('\n')
			}
		}
	}
	return buf.String()
}

// TreeDiff diffs the pseudo-XML of two trees.
func TreeDiff(from, to *ir.Tree, opts ...EncodeOption) string {
	return Diff(MustString(from, opts...), MustString(to, opts...))
}
