package lowerer

import (
	"github.com/mohsen1/tsz/internal/defs"
	"github.com/mohsen1/tsz/internal/syntax"
	"github.com/mohsen1/tsz/internal/types"
)

// LowerTypeExpr resolves a syntax type expression to an interned TypeID,
// looking up Reference paths through scope. A name that fails to resolve
// lowers to Unknown rather than erroring — diagnosing it (TS2304) is the
// checker's job, and every solver/lowerer query must return an answer
// (spec.md §7's total-function error-handling policy).
func (l *Lowerer) LowerTypeExpr(scope defs.ScopeID, id syntax.TypeExprID) types.TypeID {
	te := l.texprs.Get(id)
	if te == nil {
		return l.in.Builtins().Unknown
	}
	switch te.Kind {
	case syntax.TypeExprReference:
		return l.lowerReference(scope, te)
	case syntax.TypeExprArray:
		return l.in.Array(l.LowerTypeExpr(scope, te.Elem))
	case syntax.TypeExprReadonlyArray:
		return l.in.ReadonlyArray(l.LowerTypeExpr(scope, te.Elem))
	case syntax.TypeExprUnion:
		return l.in.Union(l.lowerAll(scope, te.Members)...)
	case syntax.TypeExprIntersection:
		return l.in.Intersection(l.lowerAll(scope, te.Members)...)
	case syntax.TypeExprObject:
		return l.lowerObjectType(scope, te)
	case syntax.TypeExprKeyOf:
		return l.in.KeyOf(l.LowerTypeExpr(scope, te.Operand))
	case syntax.TypeExprIndexedAccess:
		return l.in.IndexAccess(l.LowerTypeExpr(scope, te.Object), l.LowerTypeExpr(scope, te.Index))
	case syntax.TypeExprTypeQuery:
		if def, ok := l.table.Resolve(scope, defs.NamespaceValue, te.QueryName); ok {
			return l.in.TypeQuery(uint32(def))
		}
		return l.in.Builtins().Unknown
	case syntax.TypeExprThis:
		return l.in.ThisType()
	case syntax.TypeExprStringLiteral:
		return l.in.LiteralString(te.StringValue)
	case syntax.TypeExprNumberLiteral:
		return l.in.LiteralNumber(te.NumberValue)
	case syntax.TypeExprBooleanLiteral:
		return l.in.LiteralBoolean(te.BoolValue)
	default:
		return l.in.Builtins().Unknown
	}
}

func (l *Lowerer) lowerAll(scope defs.ScopeID, ids []syntax.TypeExprID) []types.TypeID {
	out := make([]types.TypeID, len(ids))
	for i, id := range ids {
		out[i] = l.LowerTypeExpr(scope, id)
	}
	return out
}

// lowerObjectType lowers a standalone object-type-literal annotation (e.g. a
// type alias's RHS or a property's inline shape). Unlike a value-position
// object literal, whose type the checker's checkObjectLiteral builds with no
// readonly properties, an object *type* literal's own `readonly` modifiers
// are real and preserved.
func (l *Lowerer) lowerObjectType(scope defs.ScopeID, te *syntax.TypeExpr) types.TypeID {
	props := make([]types.Property, len(te.Properties))
	for i, m := range te.Properties {
		props[i] = types.Property{
			Name:     m.Name,
			Type:     l.LowerTypeExpr(scope, m.Type),
			Optional: m.Optional,
			Readonly: m.Readonly,
		}
	}
	return l.in.RegisterObjectShape(types.ObjectInfo{Properties: props})
}

// lowerReference resolves a (possibly qualified, possibly generic)
// reference type expression, e.g. `JSX.Element` or `Box<string>`.
func (l *Lowerer) lowerReference(scope defs.ScopeID, te *syntax.TypeExpr) types.TypeID {
	def, ok := l.table.ResolveQualified(scope, defs.NamespaceType, te.Path)
	if !ok {
		return l.in.Builtins().Unknown
	}
	target := l.LowerDecl(def)
	if len(te.Args) == 0 {
		return target
	}
	return l.in.Application(target, l.lowerAll(scope, te.Args))
}
