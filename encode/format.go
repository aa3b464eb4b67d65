package encode

import (
	"fmt"
	"io"
	"strings"

	"github.com/signadot/rstdoc/ir"
)

type Format int

const (
	PseudoXMLFormat Format = iota
	YAMLFormat
)

func (f Format) String() string {
	switch f {
	case YAMLFormat:
		return "yaml"
	}
	return "pseudoxml"
}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "pseudoxml", "xml", "pxml":
		return PseudoXMLFormat, nil
	case "yaml", "y":
		return YAMLFormat, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Encode writes the subtree at id in format f.
func Encode(w io.Writer, t *ir.Tree, id ir.NodeID, f Format, opts ...EncodeOption) error {
	if f == YAMLFormat {
		return YAML(w, t, id, opts...)
	}
	return PseudoXML(w, t, id, opts...)
}
