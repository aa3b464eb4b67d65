// Package transform implements the resolution passes run over a parsed
// document tree.
//
// # Pipeline
//
// The passes run in a fixed order, each relying on what earlier ones
// established:
//
//   - substitutions: substitution references receive generated copies of
//     their definition
//   - propagate-targets: internal targets hand their ids to the next
//     element
//   - doc-title, doc-info, section-subtitle: front matter promotion
//   - anonymous-hyperlinks: positional pairing of anonymous references
//     and targets
//   - indirect-hyperlinks: targets naming other targets are collapsed to
//     the chain's end
//   - footnotes: numbering, symbols and footnote/citation references
//   - external-targets, internal-targets: named references get a refuri
//     or refid
//   - strip-comments
//   - dangling-references: informational reports, no tree changes
//   - transitions: placement checks and relocation
//
// # Idempotence
//
// Passes skip nodes that are already resolved, numbered or moved, so a
// second run over a transformed tree leaves it unchanged. Diagnostics may
// be reported again.
//
// # Names
//
// Resolution looks names up in the tree's identifier table, which maps a
// name to the id given to its holder. Ids are followed through the tree
// so that targets whose ids moved to another element still resolve.
package transform
