package ir

import (
	"fmt"
	"strconv"
	"strings"
)

type Severity int

const (
	Info Severity = iota + 1
	Warning
	Error
	Severe
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	case Severe:
		return "SEVERE"
	}
	return "Severity(" + strconv.Itoa(int(s)) + ")"
}

// ParseSeverity accepts the upper or lower case severity names.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToUpper(s) {
	case "INFO":
		return Info, nil
	case "WARNING":
		return Warning, nil
	case "ERROR":
		return Error, nil
	case "SEVERE":
		return Severe, nil
	}
	return 0, fmt.Errorf("%w: unknown severity %q", ErrBadSeverity, s)
}

// Diagnostic is a message about a region of the source. Nodes are the
// nodes it concerns; problematic nodes point back through Refid.
type Diagnostic struct {
	ID       string
	Severity Severity
	Message  string
	Span     Span
	Nodes    []NodeID
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Span.Start, d.Severity, d.Message)
}

// Report records a diagnostic and returns its id.
func (t *Tree) Report(sev Severity, span Span, msg string, nodes ...NodeID) string {
	id := "system-message-" + strconv.Itoa(len(t.Diagnostics)+1)
	t.Diagnostics = append(t.Diagnostics, Diagnostic{
		ID:       id,
		Severity: sev,
		Message:  msg,
		Span:     span,
		Nodes:    nodes,
	})
	return id
}

func (t *Tree) Reportf(sev Severity, span Span, nodes []NodeID, format string, args ...any) string {
	return t.Report(sev, span, fmt.Sprintf(format, args...), nodes...)
}

// Attach links node to the diagnostic with id diag.
func (t *Tree) Attach(diag string, node NodeID) {
	for i := range t.Diagnostics {
		if t.Diagnostics[i].ID == diag {
			t.Diagnostics[i].Nodes = append(t.Diagnostics[i].Nodes, node)
			return
		}
	}
}

// NewProblematic returns a detached problematic node over span linked
// with diag.
func (t *Tree) NewProblematic(span Span, diag string) NodeID {
	p := t.NewNode(Problematic, span)
	t.nodes[p].Attrs.Refid = diag
	t.GenID(p)
	t.Attach(diag, p)
	return p
}

// MakeProblematic wraps id in a problematic node linked with diag.
func (t *Tree) MakeProblematic(id NodeID, diag string) NodeID {
	p := t.Wrap(id, Problematic)
	t.nodes[p].Attrs.Refid = diag
	t.GenID(p)
	t.Attach(diag, p)
	return p
}

// MaxSeverity returns the highest severity among ds, or 0.
func MaxSeverity(ds []Diagnostic) Severity {
	var m Severity
	for i := range ds {
		m = max(m, ds[i].Severity)
	}
	return m
}
