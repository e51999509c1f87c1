package lowerer

import (
	"github.com/mohsen1/tsz/internal/defs"
	"github.com/mohsen1/tsz/internal/solver"
	"github.com/mohsen1/tsz/internal/syntax"
	"github.com/mohsen1/tsz/internal/types"
)

// LowerDecl returns the materialized type for id, lowering it on first
// demand. A def already being lowered — reached again through a direct or
// transitive self-reference — gets back the same Lazy placeholder rather
// than recursing forever: def.Type is set to that placeholder *before*
// the declaration's body is walked, so any recursive mention observes a
// non-zero Type and short-circuits (spec.md §4.2's lazy-resolution policy,
// and §9's cyclic-type design note).
func (l *Lowerer) LowerDecl(id defs.DefID) types.TypeID {
	def := l.table.Defs.Get(id)
	if def == nil {
		return l.in.Builtins().Unknown
	}
	if def.Type != types.NoTypeID {
		return def.Type
	}

	lazy := l.in.Lazy()
	def.Type = lazy
	resolved := l.materialize(id, def)
	l.in.ResolveLazy(lazy, resolved)
	return lazy
}

func (l *Lowerer) materialize(id defs.DefID, def *defs.Def) types.TypeID {
	stmtID, ok := l.declStmt[id]
	if !ok {
		return l.in.Builtins().Unknown
	}
	switch def.Kind {
	case defs.DeclInterface:
		return l.materializeInterface(id, def, stmtID)
	case defs.DeclTypeAlias:
		return l.materializeTypeAlias(def, stmtID)
	case defs.DeclNamespace:
		// A namespace has no value-position shape of its own here; its
		// members are reached through ResolveQualified against def.Inner,
		// not through this DefID's Type.
		return l.in.Builtins().Void
	default:
		return l.in.Builtins().Unknown
	}
}

// materializeInterface folds every declaration in id's merged group
// (interface merging, spec.md §4.2) into one ObjectShape, honoring the
// two-phase heritage ordering requirement: a declaration's own type
// parameters must be interned and visible in scope *before* its heritage
// clauses are resolved against that same scope, since a heritage clause may
// itself mention those type parameters (`interface Box<T> extends Container<T>`).
func (l *Lowerer) materializeInterface(id defs.DefID, def *defs.Def, stmtID syntax.StmtID) types.TypeID {
	scope := def.Inner
	if !scope.IsValid() {
		scope = def.Scope
	}

	if st := l.stmts.Get(stmtID); st != nil {
		l.declareTypeParams(id, scope, st.TypeParams) // (a)
	}

	group := l.table.MergedGroup(id)
	var props []types.Property
	var heritage []syntax.TypeExprID
	for _, member := range group {
		memberStmt, ok := l.declStmt[member]
		if !ok {
			continue
		}
		st := l.stmts.Get(memberStmt)
		if st == nil {
			continue
		}
		for _, m := range st.Members {
			props = append(props, types.Property{
				Name:     m.Name,
				Type:     l.LowerTypeExpr(scope, m.Type),
				Optional: m.Optional,
				Readonly: m.Readonly,
			})
		}
		heritage = append(heritage, st.Heritage...)
	}

	for _, h := range heritage { // (b)
		base := l.resolveHeritageShape(scope, h)
		if shape, ok := l.in.ObjectShapeInfo(base); ok {
			props = append(props, shape.Properties...)
		}
	}

	return l.in.RegisterObjectShape(types.ObjectInfo{Properties: props})
}

// resolveHeritageShape resolves a heritage clause reference (an `extends`
// entry) to its fully substituted structural shape. A plain LowerTypeExpr
// would leave a generic heritage clause (`extends Container<T>`) as an
// opaque Application TypeID — internal/types.Resolve deliberately does not
// expand Application, since doing so needs the target declaration's own
// type-parameter TypeIDs, which only this package's declareTypeParams
// tracks (via l.typeParams).
func (l *Lowerer) resolveHeritageShape(scope defs.ScopeID, h syntax.TypeExprID) types.TypeID {
	te := l.texprs.Get(h)
	if te == nil || te.Kind != syntax.TypeExprReference {
		return l.in.Resolve(l.LowerTypeExpr(scope, h))
	}
	def, ok := l.table.ResolveQualified(scope, defs.NamespaceType, te.Path)
	if !ok {
		return l.in.Builtins().Unknown
	}
	target := l.in.Resolve(l.LowerDecl(def))
	if len(te.Args) == 0 {
		return target
	}
	args := l.lowerAll(scope, te.Args)
	params := l.typeParams[def]
	bindings := make(solver.Bindings, len(params))
	for i, p := range params {
		if i >= len(args) {
			break
		}
		bindings[p] = args[i]
	}
	return l.in.Resolve(l.sv.Substitute(target, bindings))
}

func (l *Lowerer) materializeTypeAlias(def *defs.Def, stmtID syntax.StmtID) types.TypeID {
	st := l.stmts.Get(stmtID)
	if st == nil {
		return l.in.Builtins().Unknown
	}
	aliased := l.LowerTypeExpr(def.Scope, st.Alias)
	if _, ok := l.in.MappedInfo(l.in.Resolve(aliased)); ok {
		return l.RealizeMapped(aliased)
	}
	return aliased
}

// declareTypeParams interns each of a declaration's generic type
// parameters and binds it by name in scope, so both the heritage clauses
// resolved immediately afterward and the declaration's own members can
// refer to them.
func (l *Lowerer) declareTypeParams(owner defs.DefID, scope defs.ScopeID, params []syntax.TypeParam) {
	if len(params) == 0 {
		return
	}
	ordered := make([]types.TypeID, len(params))
	for i, p := range params {
		var constraint types.TypeID
		if p.Constraint != syntax.NoTypeExprID {
			constraint = l.LowerTypeExpr(scope, p.Constraint)
		}
		tp := l.in.RegisterTypeParameter(types.TypeParameterInfo{
			Name:       p.Name,
			Owner:      uint32(owner),
			Index:      uint32(i),
			Constraint: constraint,
		})
		l.table.Declare(scope, defs.Def{
			Name:  p.Name,
			Kind:  defs.DeclTypeParameter,
			Scope: scope,
			Type:  tp,
		})
		ordered[i] = tp
	}
	l.typeParams[owner] = ordered
}
