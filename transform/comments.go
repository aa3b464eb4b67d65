package transform

import (
	"github.com/signadot/rstdoc/ir"
)

// StripComments removes comments from the tree.
func StripComments(t *ir.Tree) {
	for _, c := range collect(t, ir.Comment) {
		t.Drop(c)
	}
}
