// Package ir provides the document tree for reStructuredText documents.
//
// # Overview
//
// A Tree owns its nodes in an arena addressed by NodeID. A node's parent
// is stored as a NodeID and its children as a slice of NodeIDs in
// document order, so nodes can be moved, wrapped and detached without
// ownership cycles. Detached nodes stay in the arena but are no longer
// reachable from Root.
//
// Every node has a Kind, a Span of the source it was parsed from
// (including surrounding markup) and Attrs:
//
//   - IDs, Names, DupNames: anchors declared by the node
//   - Refname, Refid, Refuri: the resolution state of a reference
//   - Backrefs: ids of the references resolved to the node
//   - Classes, Anonymous, Auto and Extra for everything else
//
// # Identifier Table
//
// BuildNames walks a parsed tree in document order and fills Names, the
// table from normalized names to the declaring nodes. Substitution
// definitions and custom roles have namespaces of their own. Duplicate
// names are demoted to DupNames and reported; duplicate explicit target
// names become ambiguous and cannot be referenced.
//
// # Diagnostics
//
// Diagnostics are recorded on the tree with Report in emission order.
// They carry the ids of the nodes they concern, and Problematic nodes
// carry the id of their diagnostic in Refid.
//
// # Thread Safety
//
// Trees are not safe for concurrent mutation. Once transforms have run a
// tree is only read and may be shared.
package ir
