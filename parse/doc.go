// Package parse provides reStructuredText parsing.
//
// # Overview
//
// Parse turns a document into an ir.Tree. Block structure is recognized
// line by line: sections and transitions, paragraphs and literal blocks,
// block quotes, bullet, enumerated, field and definition lists, and
// explicit markup (footnotes, citations, hyperlink targets, substitution
// definitions, directives and comments). Text-bearing blocks then have
// their inline markup parsed, interpreted text going through the role
// registry. Finally the identifier table is built and the transform
// pipeline resolves references.
//
// # Diagnostics
//
// Malformed markup never fails a parse. Problems are recorded as
// diagnostics on the tree, in the order they were found, and the
// offending inline markup is kept inside a problematic node. The only
// error Parse returns is ErrCanceled, when the context given with
// WithContext is done.
//
// # Directives
//
// Directives with known semantics build ordinary document nodes
// (admonitions, topics, code blocks, images ...). Directives whose effect
// lies outside the tree, such as include or toctree, are recorded as
// directive nodes carrying their arguments and options. The role and
// default-role directives change how later interpreted text in the same
// document is resolved.
package parse
