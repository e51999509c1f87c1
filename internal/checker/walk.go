package checker

import (
	"context"

	"github.com/mohsen1/tsz/internal/defs"
	"github.com/mohsen1/tsz/internal/diag"
	"github.com/mohsen1/tsz/internal/narrow"
	"github.com/mohsen1/tsz/internal/syntax"
	"github.com/mohsen1/tsz/internal/types"
)

// declaredOf is the DeclaredTypeOf callback the narrower falls back to when
// a Place carries no flow refinement yet. Every Place this checker ever asks
// the narrower to track is rooted at a bare binding (PlaceOf only recognizes
// identifier and property-access chains off one), so the binding's own
// Def.Type answers every query the narrower raises.
func (c *Checker) declaredOf(p narrow.Place) types.TypeID {
	def := c.table.Defs.Get(p.Base)
	if def == nil {
		return c.in.Builtins().Any
	}
	return def.Type
}

func (c *Checker) checkStmts(ctx context.Context, scope, hoistScope defs.ScopeID, body []syntax.StmtID, flow *narrow.FlowState) *narrow.FlowState {
	for _, id := range body {
		if c.cancelled(ctx) {
			return flow
		}
		flow = c.checkStmt(ctx, scope, hoistScope, id, flow)
	}
	return flow
}

func (c *Checker) checkStmt(ctx context.Context, scope, hoistScope defs.ScopeID, id syntax.StmtID, flow *narrow.FlowState) *narrow.FlowState {
	st := c.stmts.Get(id)
	if st == nil {
		return flow
	}
	switch st.Kind {
	case syntax.StmtExpr:
		c.checkExpr(scope, st.Expr, flow, types.NoTypeID)
		return flow
	case syntax.StmtVarDecl:
		return c.checkVarDecl(scope, st, flow)
	case syntax.StmtBlock:
		return c.checkBlock(ctx, scope, hoistScope, st, flow)
	case syntax.StmtIf:
		return c.checkIf(ctx, scope, hoistScope, st, flow)
	case syntax.StmtReturn:
		if st.Return.IsValid() {
			c.checkExpr(scope, st.Return, flow, c.currentReturnType())
		}
		return flow
	case syntax.StmtFunctionDecl:
		c.checkFunctionBody(ctx, id, st)
		return flow
	case syntax.StmtInterfaceDecl, syntax.StmtTypeAliasDecl:
		// Materialization happens lazily through the lowerer on first
		// reference; nothing left to walk here.
		return flow
	case syntax.StmtNamespaceDecl:
		c.checkNamespaceBody(ctx, id, st)
		return flow
	default:
		return flow
	}
}

func (c *Checker) checkBlock(ctx context.Context, scope, hoistScope defs.ScopeID, st *syntax.Stmt, flow *narrow.FlowState) *narrow.FlowState {
	blockScope := c.table.Scopes.New(defs.ScopeBlock, scope, defs.ScopeOwner{})
	c.declareBlockFunctions(blockScope, hoistScope, st.Body)
	return c.checkStmts(ctx, blockScope, hoistScope, st.Body, flow)
}

// declareBlockFunctions implements the block-scoped function hoisting
// policy: in strict mode a function declared directly inside a block stays
// scoped to that block and raises TS1252; in sloppy mode it hoists out to
// the nearest enclosing function/file/namespace scope instead, the way
// non-strict JavaScript actually resolves it.
func (c *Checker) declareBlockFunctions(blockScope, hoistScope defs.ScopeID, body []syntax.StmtID) {
	for _, id := range body {
		st := c.stmts.Get(id)
		if st == nil || st.Kind != syntax.StmtFunctionDecl {
			continue
		}
		target := hoistScope
		if c.strict {
			target = blockScope
			diag.ReportError(c.reporter, diag.TS1252, st.Span,
				"Function declarations are not allowed inside blocks in strict mode.").Emit()
		}
		c.declareFunction(target, target, id, st)
	}
}

func (c *Checker) checkIf(ctx context.Context, scope, hoistScope defs.ScopeID, st *syntax.Stmt, flow *narrow.FlowState) *narrow.FlowState {
	c.checkExprContextual(scope, st.Cond, flow, c.in.Builtins().Boolean)
	trueFlow, falseFlow := c.nw.Narrow(scope, flow, c.declaredOf, st.Cond)

	afterThen := c.checkStmt(ctx, scope, hoistScope, st.Then, trueFlow)
	afterElse := falseFlow
	if st.Else.IsValid() {
		afterElse = c.checkStmt(ctx, scope, hoistScope, st.Else, falseFlow)
	}
	return narrow.Merge(afterThen, afterElse)
}

func (c *Checker) checkVarDecl(scope defs.ScopeID, st *syntax.Stmt, flow *narrow.FlowState) *narrow.FlowState {
	var declared types.TypeID
	hasAnn := st.TypeAnn.IsValid()
	if hasAnn {
		declared = c.resolveTypeExpr(scope, st.TypeAnn)
	}

	var valueType types.TypeID
	if st.Init.IsValid() {
		if hasAnn {
			valueType = c.checkExprContextual(scope, st.Init, flow, declared)
			if !c.sv.IsAssignable(declared, valueType) {
				diag.ReportError(c.reporter, diag.TS2322, c.exprSpan(st.Init),
					"Type '"+types.Label(c.in, valueType)+"' is not assignable to type '"+types.Label(c.in, declared)+"'.").Emit()
			}
		} else {
			valueType = c.checkExpr(scope, st.Init, flow, types.NoTypeID)
			if st.VarKind != syntax.VarConst {
				valueType = c.widen(valueType)
			}
		}
	} else if hasAnn {
		valueType = declared
	} else {
		valueType = c.in.Builtins().Any
	}

	resultType := valueType
	if hasAnn {
		resultType = declared
	}

	id, fresh := c.table.Declare(scope, defs.Def{
		Name: st.VarName,
		Kind: varDeclKind(st.VarKind),
		Scope: scope,
		Span:  st.Span,
		Type:  resultType,
	})
	if !fresh {
		diag.ReportError(c.reporter, diag.TS2304, st.Span,
			"Cannot redeclare block-scoped variable '"+c.name(st.VarName)+"'.").Emit()
	}
	_ = id
	return flow
}

func varDeclKind(k syntax.VarKind) defs.DeclKind {
	switch k {
	case syntax.VarConst:
		return defs.DeclConst
	case syntax.VarLet:
		return defs.DeclLet
	default:
		return defs.DeclVar
	}
}

func (c *Checker) checkFunctionBody(ctx context.Context, stmtID syntax.StmtID, st *syntax.Stmt) {
	fnScope, ok := c.funcScope[stmtID]
	if !ok {
		return
	}
	def := c.table.Defs.Get(c.funcDef[stmtID])
	var retType types.TypeID
	if def != nil {
		if info, ok := c.in.FunctionInfo(c.in.Resolve(def.Type)); ok {
			retType = info.Return
		}
	}
	c.returnStack = append(c.returnStack, retType)
	defer func() { c.returnStack = c.returnStack[:len(c.returnStack)-1] }()

	c.checkStmts(ctx, fnScope, fnScope, st.Body, narrow.NewFlowState())
}

func (c *Checker) currentReturnType() types.TypeID {
	if len(c.returnStack) == 0 {
		return types.NoTypeID
	}
	return c.returnStack[len(c.returnStack)-1]
}

func (c *Checker) checkNamespaceBody(ctx context.Context, stmtID syntax.StmtID, st *syntax.Stmt) {
	def, ok := c.lookupRegisteredNamespace(stmtID)
	if !ok || !def.Inner.IsValid() {
		return
	}
	c.checkStmts(ctx, def.Inner, def.Inner, st.Body, narrow.NewFlowState())
}

// lookupRegisteredNamespace finds the Def the declaration pass registered
// for a namespace statement.
func (c *Checker) lookupRegisteredNamespace(stmtID syntax.StmtID) (*defs.Def, bool) {
	id, found := c.namespaceDef[stmtID]
	if !found {
		return nil, false
	}
	def := c.table.Defs.Get(id)
	if def == nil {
		return nil, false
	}
	return def, true
}
