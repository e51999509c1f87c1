// Package defs tracks declared symbols and their lexical scopes: the value
// and type namespaces a checked program populates, the scope chain a name
// resolves through, and the declaration-merging groups TypeScript allows
// for interfaces, namespaces, and function overloads.
package defs

// ScopeID identifies a scope in the resolver arena.
type ScopeID uint32

// NoScopeID marks the absence of a scope reference.
const NoScopeID ScopeID = 0

// IsValid reports whether the scope ID refers to an allocated scope.
func (id ScopeID) IsValid() bool { return id != NoScopeID }

// DefID identifies a declaration inside the resolver arena.
type DefID uint32

// NoDefID marks the absence of a declaration reference.
const NoDefID DefID = 0

// IsValid reports whether the def ID refers to an allocated declaration.
func (id DefID) IsValid() bool { return id != NoDefID }
