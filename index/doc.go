// Package index answers position and reference queries over a
// transformed document tree.
//
// # Positions
//
// Lines are 1-based and columns are 0-based rune offsets, as in
// [token.Pos]. [Index.NodeAt] returns the innermost node whose span
// covers a position.
//
// # References
//
// Resolution leaves every resolved reference's id in the backrefs of the
// node it resolved to. [Index.ReferencesTo] reads those backrefs and
// [Index.DefinitionOf] goes the other way.
//
// # Filters
//
// [Index.Filter] evaluates a boolean expr-lang expression against each
// node. Its environment has the node's kind, ids, names, refname,
// refuri, refid, classes, backrefs, text, line and generated flag, the
// other attributes as the map attrs, and the kinds of its ancestors,
// innermost first, as ancestors:
//
//	kind == "reference" && refuri startsWith "https:"
//	"section" in ancestors && attrs.language == "go"
//	norm(text) in names
//
// The functions norm (name normalization) and isref (whether a kind
// name is a reference kind) are also available.
package index
