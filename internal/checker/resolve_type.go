package checker

import (
	"github.com/mohsen1/tsz/internal/defs"
	"github.com/mohsen1/tsz/internal/syntax"
	"github.com/mohsen1/tsz/internal/types"
)

// resolveTypeExpr lowers a type annotation to an interned TypeID. The
// primitive keyword names (any, unknown, never, string, ...) resolve like
// any other type reference: DeclarePrelude binds each of them as a Def in
// table's GlobalScope, so Table.Resolve finds them whether the keyword
// names the type directly or is reached through a nested lowering path —
// an interface member's type, an array's element type, a union arm.
func (c *Checker) resolveTypeExpr(scope defs.ScopeID, id syntax.TypeExprID) types.TypeID {
	te := c.texprs.Get(id)
	if te == nil {
		return c.in.Builtins().Unknown
	}
	return c.lw.LowerTypeExpr(scope, id)
}
