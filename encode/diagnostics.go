package encode

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/signadot/rstdoc/ir"
)

// Diagnostics writes one "line:col: SEVERITY: message" line per
// diagnostic, prefixed with name when it is not empty. Multi-line
// messages continue on indented lines. Severities are colored when w is
// a terminal.
func Diagnostics(w io.Writer, name string, ds []ir.Diagnostic) error {
	var colors *Colors
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		colors = NewColors()
	}
	return WriteDiagnostics(w, name, ds, colors)
}

// WriteDiagnostics is Diagnostics with explicit colors; nil colors
// writes plain text.
func WriteDiagnostics(w io.Writer, name string, ds []ir.Diagnostic, colors *Colors) error {
	for i := range ds {
		d := &ds[i]
		// diagnostics without a position point at the first line
		pos := fmt.Sprintf("%d:%d", max(d.Span.Start.Line, 1), d.Span.Start.Col+1)
		if name != "" {
			pos = name + ":" + pos
		}
		sev := d.Severity.String()
		msg := d.Message
		if colors != nil {
			pos = colors.Color(PosColor, pos)
			sev = colors.Severity(d.Severity, sev)
		}
		if _, err := fmt.Fprintf(w, "%s: %s: %s\n", pos, sev, indentLines(msg)); err != nil {
			return err
		}
	}
	return nil
}

func indentLines(s string) string {
	out := []byte{}
	for i := 0; i < len(s); i++ {
		out = append(out, s[i])
		if s[i] == '\n' {
			out = append(out, "    "...)
		}
	}
	return string(out)
}
