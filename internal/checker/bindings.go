package checker

import (
	"github.com/mohsen1/tsz/internal/defs"
	"github.com/mohsen1/tsz/internal/diag"
	"github.com/mohsen1/tsz/internal/source"
	"github.com/mohsen1/tsz/internal/syntax"
	"github.com/mohsen1/tsz/internal/types"
)

// declareTopLevel registers every interface/type-alias/namespace/function
// statement directly in body so a reference earlier in the file can resolve
// a declaration that textually follows it (spec.md's forward-reference
// allowance for type- and namespace-space declarations, mirrored from how
// lowerer_test.go's fixtures build a Table before lowering). Variables are
// deliberately not hoisted here — they're declared as checkStmt reaches
// their VarDecl, matching let/const temporal-dead-zone semantics.
func (c *Checker) declareTopLevel(scope, hoistScope defs.ScopeID, body []syntax.StmtID, strict bool) {
	for _, id := range body {
		st := c.stmts.Get(id)
		if st == nil {
			continue
		}
		switch st.Kind {
		case syntax.StmtInterfaceDecl:
			c.declareInterface(scope, id, st)
		case syntax.StmtTypeAliasDecl:
			c.declareTypeAlias(scope, id, st)
		case syntax.StmtNamespaceDecl:
			c.declareNamespace(scope, id, st, strict)
		case syntax.StmtFunctionDecl:
			c.declareFunction(scope, hoistScope, id, st)
		}
	}
}

// declareOrMerge declares name in scope under kind, folding into an existing
// mergeable group (interface/namespace/function overloads) rather than
// erroring, and returns the DefID the caller should register the statement
// against — not necessarily the Def table.Declare itself allocated, since a
// merge reuses the primary declaration's DefID chain (see defs.Table.Declare
// and defs.Table.Merge's doc comments on why the caller, not the table,
// drives a duplicate occurrence's own Def allocation).
func (c *Checker) declareOrMerge(scope defs.ScopeID, def defs.Def) defs.DefID {
	id, fresh := c.table.Declare(scope, def)
	if fresh {
		return id
	}
	if !defs.Mergeable(def.Kind, def.Kind) {
		diag.ReportError(c.reporter, diag.TS2304, def.Span,
			"Cannot redeclare block-scoped name '"+c.name(def.Name)+"'.").Emit()
		return id
	}
	dup := c.table.Defs.New(def)
	c.table.Merge(id, dup)
	return dup
}

func (c *Checker) name(id source.StringID) string {
	s, _ := c.table.Strings.Lookup(id)
	return s
}

// lookupInScope looks a name up in exactly scope, without walking parents —
// used when re-opening a namespace, where only a same-scope redeclaration
// should merge.
func (c *Checker) lookupInScope(scope defs.ScopeID, ns defs.Namespace, name source.StringID) (defs.DefID, bool) {
	s := c.table.Scopes.Get(scope)
	if s == nil {
		return defs.NoDefID, false
	}
	return s.Lookup(ns, name)
}

func (c *Checker) declareInterface(scope defs.ScopeID, stmtID syntax.StmtID, st *syntax.Stmt) {
	id := c.declareOrMerge(scope, defs.Def{Name: st.Name, Kind: defs.DeclInterface, Scope: scope, Span: st.Span})
	c.lw.RegisterDecl(id, stmtID)
}

func (c *Checker) declareTypeAlias(scope defs.ScopeID, stmtID syntax.StmtID, st *syntax.Stmt) {
	id, fresh := c.table.Declare(scope, defs.Def{Name: st.Name, Kind: defs.DeclTypeAlias, Scope: scope, Span: st.Span})
	if !fresh {
		diag.ReportError(c.reporter, diag.TS2304, st.Span,
			"Cannot redeclare type alias '"+c.name(st.Name)+"'.").Emit()
		return
	}
	c.lw.RegisterDecl(id, stmtID)
}

func (c *Checker) declareNamespace(scope defs.ScopeID, stmtID syntax.StmtID, st *syntax.Stmt, strict bool) {
	// A namespace re-opened under the same name shares its inner scope
	// across occurrences, so members declared in either block see each
	// other (TypeScript's namespace-merging rule).
	existing, ok := c.lookupInScope(scope, defs.NamespaceNamespace, st.Name)
	var inner defs.ScopeID
	var id defs.DefID
	if ok {
		def := c.table.Defs.Get(existing)
		inner = def.Inner
		id = existing
		dup := c.table.Defs.New(defs.Def{Name: st.Name, Kind: defs.DeclNamespace, Scope: scope, Span: st.Span, Inner: inner})
		c.table.Merge(existing, dup)
		c.lw.RegisterDecl(dup, stmtID)
	} else {
		inner = c.table.Scopes.New(defs.ScopeModule, scope, defs.ScopeOwner{Name: st.Name})
		var fresh bool
		id, fresh = c.table.Declare(scope, defs.Def{Name: st.Name, Kind: defs.DeclNamespace, Scope: scope, Span: st.Span, Inner: inner})
		if !fresh {
			diag.ReportError(c.reporter, diag.TS2304, st.Span,
				"Cannot redeclare name '"+c.name(st.Name)+"' in a different namespace.").Emit()
			return
		}
		c.lw.RegisterDecl(id, stmtID)
	}
	c.namespaceDef[stmtID] = id
	c.declareTopLevel(inner, inner, st.Body, strict)
}

// declareFunction registers a function declaration's signature: its generic
// type parameters, parameter types (TS7006 when an unannotated parameter
// would otherwise default to Any under NoImplicitAny), and return type, and
// records the body scope for the later checking pass.
func (c *Checker) declareFunction(scope, hoistScope defs.ScopeID, stmtID syntax.StmtID, st *syntax.Stmt) {
	id := c.declareOrMerge(hoistScope, defs.Def{Name: st.Name, Kind: defs.DeclFunction, Scope: hoistScope, Span: st.Span})
	fnScope := c.table.Scopes.New(defs.ScopeFunction, scope, defs.ScopeOwner{Name: st.Name})
	c.funcScope[stmtID] = fnScope
	c.funcDef[stmtID] = id

	typeParams := c.declareFuncTypeParams(id, fnScope, st.TypeParams)

	params := make([]types.Param, len(st.Params))
	for i, p := range st.Params {
		var pt types.TypeID
		if p.Type.IsValid() {
			pt = c.resolveTypeExpr(fnScope, p.Type)
		} else {
			if c.options.NoImplicitAny {
				diag.ReportError(c.reporter, diag.TS7006, st.Span,
					"Parameter '"+c.name(p.Name)+"' implicitly has an 'any' type.").Emit()
			}
			pt = c.in.Builtins().Any
		}
		params[i] = types.Param{Name: p.Name, Type: pt, Optional: p.Optional, Rest: p.Rest}
		c.table.Declare(fnScope, defs.Def{Name: p.Name, Kind: defs.DeclParameter, Scope: fnScope, Type: pt})
	}

	var ret types.TypeID
	if st.ReturnType.IsValid() {
		ret = c.resolveTypeExpr(fnScope, st.ReturnType)
	} else {
		ret = c.in.Builtins().Unknown
	}

	fnType := c.in.RegisterFunction(types.FunctionInfo{TypeParams: typeParams, Params: params, Return: ret})
	def := c.table.Defs.Get(id)
	if def != nil {
		def.Type = fnType
	}
}

// declareFuncTypeParams mirrors lowerer.declareTypeParams for a function's
// own generic parameters (the lowerer's version is unexported and scoped to
// interface heritage resolution, so the checker keeps a small twin for its
// own declaration sites).
func (c *Checker) declareFuncTypeParams(owner defs.DefID, scope defs.ScopeID, params []syntax.TypeParam) []types.TypeID {
	if len(params) == 0 {
		return nil
	}
	ordered := make([]types.TypeID, len(params))
	for i, p := range params {
		var constraint types.TypeID
		if p.Constraint.IsValid() {
			constraint = c.resolveTypeExpr(scope, p.Constraint)
		}
		tp := c.in.RegisterTypeParameter(types.TypeParameterInfo{
			Name:       p.Name,
			Owner:      uint32(owner),
			Index:      uint32(i),
			Constraint: constraint,
		})
		c.table.Declare(scope, defs.Def{Name: p.Name, Kind: defs.DeclTypeParameter, Scope: scope, Type: tp})
		ordered[i] = tp
	}
	return ordered
}
