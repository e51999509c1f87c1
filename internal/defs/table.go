package defs

import "github.com/mohsen1/tsz/internal/source"

// Hints provide optional capacity suggestions for the table's arenas.
type Hints struct{ Scopes, Defs uint }

// Table aggregates scope and def arenas plus the shared string interner.
type Table struct {
	Scopes   *Scopes
	Defs     *Defs
	Strings  *source.Interner
	fileRoot map[source.FileID]ScopeID

	// GlobalScope, if set, is the implicit parent of every file's root
	// scope — the scope chain every Resolve walk reaches last. A checker
	// wiring up its Context uses this to seed ambient declarations (the
	// primitive type keywords) that every file sees without each file
	// having to redeclare them.
	GlobalScope ScopeID
}

// NewTable builds a fresh table with optional capacity hints. If strings is
// nil a fresh interner is allocated.
func NewTable(h Hints, strings *source.Interner) *Table {
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Table{
		Scopes:   NewScopes(uint32(h.Scopes)),
		Defs:     NewDefs(uint32(h.Defs)),
		Strings:  strings,
		fileRoot: make(map[source.FileID]ScopeID),
	}
}

// FileRoot returns (and creates if needed) the file-level scope for file.
func (t *Table) FileRoot(file source.FileID) ScopeID {
	if scope, ok := t.fileRoot[file]; ok {
		return scope
	}
	scope := t.Scopes.New(ScopeFile, t.GlobalScope, ScopeOwner{SourceFile: file})
	t.fileRoot[file] = scope
	return scope
}

// Declare allocates a Def and binds it by name in scope's appropriate
// namespace (per Kind.Namespace). When the name is already bound there, the
// existing DefID is returned unchanged — callers that allow merging (see
// Merge) or need a redeclaration diagnostic inspect the returned bool.
func (t *Table) Declare(scope ScopeID, def Def) (id DefID, fresh bool) {
	id = t.Defs.New(def)
	s := t.Scopes.Get(scope)
	if s == nil {
		return id, true
	}
	ns := def.Kind.Namespace()
	existing, ok := s.Declare(ns, def.Name, id)
	if ok {
		return id, true
	}
	return existing, false
}
