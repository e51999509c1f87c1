package checker

import (
	"github.com/mohsen1/tsz/internal/defs"
	"github.com/mohsen1/tsz/internal/types"
)

// DeclarePrelude binds every primitive type keyword as a real Def in a
// fresh ambient scope and returns it. Wiring that scope in as table's
// GlobalScope (the implicit parent of every file's root scope) means a
// keyword type name resolves the same way whether it's named directly in
// a variable annotation or reached through a nested lowering path — an
// interface member's type, an array's element type, a union arm — since
// all of those ultimately go through Table.Resolve/ResolveQualified rather
// than through resolveTypeExpr's own call sites.
//
// Each Def's Type is set directly to its builtin TypeID, so LowerDecl's
// already-resolved fast path returns it without ever reaching materialize
// — these keywords have no backing statement to lower.
func DeclarePrelude(table *defs.Table, in *types.Interner) defs.ScopeID {
	scope := table.Scopes.New(defs.ScopeGlobal, defs.NoScopeID, defs.ScopeOwner{})
	b := in.Builtins()
	for _, kw := range []struct {
		name string
		typ  types.TypeID
	}{
		{"any", b.Any},
		{"unknown", b.Unknown},
		{"never", b.Never},
		{"void", b.Void},
		{"undefined", b.Undefined},
		{"null", b.Null},
		{"string", b.String},
		{"number", b.Number},
		{"boolean", b.Boolean},
		{"bigint", b.BigInt},
		{"symbol", b.Symbol},
		{"object", b.Object},
	} {
		name := table.Strings.Intern(kw.name)
		table.Declare(scope, defs.Def{
			Name:  name,
			Kind:  defs.DeclTypeAlias,
			Scope: scope,
			Type:  kw.typ,
		})
	}
	return scope
}
