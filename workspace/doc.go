// Package workspace keeps the latest parse of a set of documents.
//
// # Snapshots
//
// Each document has at most one published [Snapshot]: a tree, its
// diagnostics and its index. Snapshots are never modified once
// published, so readers may hold on to one while newer versions are
// being parsed.
//
// # Updates
//
// [Workspace.Update] cancels any parse still running for the same
// document and publishes its own result only if it completes and its
// version is newer than the published one. Text that hashes the same as
// the published snapshot's is not parsed again.
package workspace
