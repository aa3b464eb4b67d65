package debug

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/signadot/rstdoc/encode"
	"github.com/signadot/rstdoc/ir"
)

// Subtree renders a node of a tree as pseudo-XML when formatted.
type Subtree struct {
	Tree *ir.Tree
	ID   ir.NodeID
}

func (s Subtree) String() string {
	buf := bytes.NewBuffer(nil)
	if err := encode.PseudoXML(buf, s.Tree, s.ID); err != nil {
		return fmt.Sprintf("[raw node %d] %v", s.ID, s.Tree.Node(s.ID))
	}
	return buf.String()
}

func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *ir.Tree:
			args[i] = Subtree{Tree: x, ID: x.Root}.String()
		case ir.Diagnostic:
			args[i] = x.String()
		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
