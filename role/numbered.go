package role

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/rstdoc/ir"
)

// applyNumbered handles :PEP: and :RFC: references, whose content is a
// number optionally followed by "#fragment".
func (r *Registry) applyNumbered(role *Role, in Input) (ir.NodeID, error) {
	text := in.Content.S
	num, frag, hasFrag := strings.Cut(text, "#")
	if hasFrag {
		frag = "#" + frag
	}
	n, err := strconv.Atoi(num)
	var uri, display string
	switch role.Behavior {
	case PEP:
		if err != nil || !unsigned(num) || n > 9999 {
			return ir.NoNode, fmt.Errorf("PEP number must be a number from 0 to 9999; %q is invalid.", num)
		}
		uri = r.PEPBase + fmt.Sprintf("pep-%04d", n)
		display = "PEP " + num
	default:
		if err != nil || !unsigned(num) || n < 1 {
			return ir.NoNode, fmt.Errorf("RFC number must be a number greater than or equal to 1; %q is invalid.", num)
		}
		uri = r.RFCBase + fmt.Sprintf("rfc%d", n)
		display = "RFC " + num
	}
	t := in.Tree
	id := t.NewNode(ir.Reference, in.Span)
	node := t.Node(id)
	node.Attrs.Refuri = uri + frag
	node.Attrs.AddClass(role.EffectiveClasses()...)
	// the display text does not occur in the source
	txt := in.text(display+frag, in.contentSpan())
	t.Node(txt).Generated = true
	t.Append(id, txt)
	return id, nil
}

// unsigned reports whether s is a non-empty run of ASCII digits.
func unsigned(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
