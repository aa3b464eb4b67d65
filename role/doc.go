// Package role resolves interpreted text roles.
//
// A Registry maps role names to Roles. Canonical roles have a fixed
// Behavior; roles declared with the role directive derive from a base
// role and add classes, a language for code highlighting, or a raw
// format. Names are looked up in custom roles first, then among the
// localized names, then among canonical names, which callers report as
// an informational fallback.
//
// Code roles are highlighted with chroma lexers; each highlighted run
// becomes an inline node classed after the chroma token type.
package role
