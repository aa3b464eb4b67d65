// Package encode renders document trees.
//
// # Formats
//
// PseudoXML writes the docutils-like indented element dump used for
// inspecting and comparing trees; YAML writes the same information as
// structured data. Both accept EncodeOptions to add spans, limit depth or
// color the output.
//
// # Comparing
//
// Diff and TreeDiff produce line diffs, convenient for golden tests.
//
// # Diagnostics
//
// Diagnostics prints "line:col: SEVERITY: message" lines, colored on
// terminals.
package encode
