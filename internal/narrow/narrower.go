package narrow

import (
	"github.com/mohsen1/tsz/internal/defs"
	"github.com/mohsen1/tsz/internal/source"
	"github.com/mohsen1/tsz/internal/syntax"
	"github.com/mohsen1/tsz/internal/types"
)

// DeclaredTypeOf resolves a Place's declared (unnarrowed) type, the
// fallback a FlowState lookup reverts to when the place carries no flow
// refinement. The checker supplies this — it owns defs.Def.Type and the
// object-shape property lookups a multi-segment Place needs.
type DeclaredTypeOf func(Place) TypeID

// Narrower computes narrowed FlowStates at branch points and assignments
// (spec component 4.6). It composes with the lowerer's Lazy/Ref/Application
// resolution by resolving every type it reads or writes through
// in.Resolve before applying a rule, per the narrower's resolve-first
// requirement.
type Narrower struct {
	in    *types.Interner
	sv    Solver
	table *defs.Table
	exprs *syntax.Exprs
	paths *PathTable
}

// New creates a Narrower over the given interner, solver, declaration
// table, and expression arena.
func New(in *types.Interner, sv Solver, table *defs.Table, exprs *syntax.Exprs) *Narrower {
	return &Narrower{in: in, sv: sv, table: table, exprs: exprs, paths: NewPathTable()}
}

// PlaceOf extracts the Place an expression addresses, if it has a stable
// one: a bare identifier, or a chain of property accesses rooted at one
// (`x`, `x.a.b`). Anything else (a call, an element access with a
// non-literal index, a literal) has no stable place to narrow.
func (nw *Narrower) PlaceOf(scope defs.ScopeID, id syntax.ExprID) (Place, bool) {
	var segments []source.StringID
	cur := id
	for {
		e := nw.exprs.Get(cur)
		if e == nil {
			return Place{}, false
		}
		switch e.Kind {
		case syntax.ExprIdent:
			def, ok := nw.table.Resolve(scope, defs.NamespaceValue, e.Name)
			if !ok {
				return Place{}, false
			}
			// segments were collected outermost-first while walking
			// inward, so reverse them back to source order.
			for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
				segments[i], segments[j] = segments[j], segments[i]
			}
			return nw.paths.Canonical(def, segments), true
		case syntax.ExprPropertyAccess:
			segments = append(segments, e.Property)
			cur = e.Object
		default:
			return Place{}, false
		}
	}
}

func (nw *Narrower) resolve(t TypeID) TypeID { return nw.in.Resolve(t) }

// currentType returns the type a Place carries in state, falling back to
// declaredOf(place) when unnarrowed.
func (nw *Narrower) currentType(state *FlowState, place Place, declaredOf DeclaredTypeOf) TypeID {
	if t, ok := state.Get(place); ok {
		return nw.resolve(t)
	}
	return nw.resolve(declaredOf(place))
}

// Narrow computes the true- and false-branch FlowStates reachable after
// evaluating cond as a boolean test, starting from base. base is left
// unmodified; the two returned states are independent clones.
func (nw *Narrower) Narrow(scope defs.ScopeID, base *FlowState, declaredOf DeclaredTypeOf, cond syntax.ExprID) (trueState, falseState *FlowState) {
	e := nw.exprs.Get(cond)
	if e == nil {
		return base.Clone(), base.Clone()
	}
	switch e.Kind {
	case syntax.ExprBinary:
		switch e.Op {
		case "&&":
			return nw.narrowAnd(scope, base, declaredOf, e.Left, e.Right)
		case "||":
			return nw.narrowOr(scope, base, declaredOf, e.Left, e.Right)
		case "===", "!==":
			ts, fs, ok := nw.narrowEquality(scope, base, declaredOf, e.Left, e.Right)
			if ok {
				if e.Op == "!==" {
					return fs, ts
				}
				return ts, fs
			}
		case "instanceof":
			return nw.narrowInstanceof(scope, base, declaredOf, e.Left, e.Right)
		}
		return base.Clone(), base.Clone()
	case syntax.ExprCall:
		if ts, fs, ok := nw.narrowPredicateCall(scope, base, declaredOf, e); ok {
			return ts, fs
		}
		return base.Clone(), base.Clone()
	default:
		return nw.narrowTruthy(scope, base, declaredOf, cond)
	}
}

func (nw *Narrower) narrowTruthy(scope defs.ScopeID, base *FlowState, declaredOf DeclaredTypeOf, operand syntax.ExprID) (trueState, falseState *FlowState) {
	trueState, falseState = base.Clone(), base.Clone()
	place, ok := nw.PlaceOf(scope, operand)
	if !ok {
		return trueState, falseState
	}
	cur := nw.currentType(base, place, declaredOf)
	truthy, falsy := Truthy(nw.in, cur)
	trueState.Set(place, truthy)
	falseState.Set(place, falsy)
	return trueState, falseState
}

func (nw *Narrower) narrowAnd(scope defs.ScopeID, base *FlowState, declaredOf DeclaredTypeOf, left, right syntax.ExprID) (trueState, falseState *FlowState) {
	trueL, falseL := nw.Narrow(scope, base, declaredOf, left)
	trueBoth, falseAfterTrueL := nw.Narrow(scope, trueL, declaredOf, right)
	return trueBoth, Merge(falseL, falseAfterTrueL)
}

func (nw *Narrower) narrowOr(scope defs.ScopeID, base *FlowState, declaredOf DeclaredTypeOf, left, right syntax.ExprID) (trueState, falseState *FlowState) {
	trueL, falseL := nw.Narrow(scope, base, declaredOf, left)
	trueAfterFalseL, falseBoth := nw.Narrow(scope, falseL, declaredOf, right)
	return Merge(trueL, trueAfterFalseL), falseBoth
}

// narrowEquality handles the two `===`/`!==`-shaped tests the narrower
// understands: a `typeof x === "tag"` guard, and a literal discriminant
// comparison `x.prop === literal`. Operand order doesn't matter — both
// `a === b` and `b === a` are tried. ok is false for an equality test of
// some other shape (e.g. comparing two arbitrary values), which the caller
// passes through unnarrowed.
func (nw *Narrower) narrowEquality(scope defs.ScopeID, base *FlowState, declaredOf DeclaredTypeOf, left, right syntax.ExprID) (trueState, falseState *FlowState, ok bool) {
	if ts, fs, ok := nw.narrowTypeofEquality(scope, base, declaredOf, left, right); ok {
		return ts, fs, true
	}
	if ts, fs, ok := nw.narrowTypeofEquality(scope, base, declaredOf, right, left); ok {
		return ts, fs, true
	}
	if ts, fs, ok := nw.narrowDiscriminantEquality(scope, base, declaredOf, left, right); ok {
		return ts, fs, true
	}
	if ts, fs, ok := nw.narrowDiscriminantEquality(scope, base, declaredOf, right, left); ok {
		return ts, fs, true
	}
	return nil, nil, false
}

func (nw *Narrower) narrowTypeofEquality(scope defs.ScopeID, base *FlowState, declaredOf DeclaredTypeOf, typeofSide, tagSide syntax.ExprID) (trueState, falseState *FlowState, ok bool) {
	typeofExpr := nw.exprs.Get(typeofSide)
	tagExpr := nw.exprs.Get(tagSide)
	if typeofExpr == nil || tagExpr == nil {
		return nil, nil, false
	}
	if typeofExpr.Kind != syntax.ExprTypeOf || tagExpr.Kind != syntax.ExprStringLiteral {
		return nil, nil, false
	}
	place, ok := nw.PlaceOf(scope, typeofExpr.TypeOfOperand)
	if !ok {
		return nil, nil, false
	}
	tag, ok := nw.in.Strings.Lookup(tagExpr.Text)
	if !ok {
		return nil, nil, false
	}
	cur := nw.currentType(base, place, declaredOf)
	truthy, falsy := Typeof(nw.in, cur, TypeofTag(tag))
	trueState, falseState = base.Clone(), base.Clone()
	trueState.Set(place, truthy)
	falseState.Set(place, falsy)
	return trueState, falseState, true
}

func (nw *Narrower) narrowDiscriminantEquality(scope defs.ScopeID, base *FlowState, declaredOf DeclaredTypeOf, propSide, literalSide syntax.ExprID) (trueState, falseState *FlowState, ok bool) {
	propExpr := nw.exprs.Get(propSide)
	literalExpr := nw.exprs.Get(literalSide)
	if propExpr == nil || literalExpr == nil || propExpr.Kind != syntax.ExprPropertyAccess {
		return nil, nil, false
	}
	if !isLiteralExpr(literalExpr.Kind) {
		return nil, nil, false
	}
	place, ok := nw.PlaceOf(scope, propExpr.Object)
	if !ok {
		return nil, nil, false
	}
	literalType, ok := nw.literalExprType(literalExpr)
	if !ok {
		return nil, nil, false
	}
	cur := nw.currentType(base, place, declaredOf)
	lookup := func(shape TypeID) (TypeID, bool) {
		p, ok := nw.in.Property(shape, propExpr.Property)
		if !ok {
			return 0, false
		}
		return nw.resolve(p.Type), true
	}
	truthy, falsy := Discriminant(nw.in, cur, lookup, literalType)
	trueState, falseState = base.Clone(), base.Clone()
	trueState.Set(place, truthy)
	falseState.Set(place, falsy)
	return trueState, falseState, true
}

func isLiteralExpr(k syntax.ExprKind) bool {
	switch k {
	case syntax.ExprStringLiteral, syntax.ExprNumberLiteral, syntax.ExprBooleanLiteral:
		return true
	default:
		return false
	}
}

func (nw *Narrower) literalExprType(e *syntax.Expr) (TypeID, bool) {
	switch e.Kind {
	case syntax.ExprStringLiteral:
		return nw.in.LiteralString(e.Text), true
	case syntax.ExprNumberLiteral:
		return nw.in.LiteralNumber(e.Number), true
	case syntax.ExprBooleanLiteral:
		return nw.in.LiteralBoolean(e.Bool), true
	default:
		return 0, false
	}
}

func (nw *Narrower) narrowInstanceof(scope defs.ScopeID, base *FlowState, declaredOf DeclaredTypeOf, left, right syntax.ExprID) (trueState, falseState *FlowState) {
	trueState, falseState = base.Clone(), base.Clone()
	place, ok := nw.PlaceOf(scope, left)
	if !ok {
		return trueState, falseState
	}
	classDef, ok := nw.PlaceOf(scope, right)
	if !ok {
		return trueState, falseState
	}
	classType := nw.resolve(declaredOf(classDef))
	cur := nw.currentType(base, place, declaredOf)
	truthy, falsy := Instanceof(nw.in, nw.sv, cur, classType)
	trueState.Set(place, truthy)
	falseState.Set(place, falsy)
	return trueState, falseState
}

// narrowPredicateCall handles a call to a user-defined type guard, e.g.
// `isFish(pet)` where isFish's return type is a `x is Fish` predicate.
func (nw *Narrower) narrowPredicateCall(scope defs.ScopeID, base *FlowState, declaredOf DeclaredTypeOf, call *syntax.Expr) (trueState, falseState *FlowState, ok bool) {
	callee := nw.exprs.Get(call.Callee)
	if callee == nil || callee.Kind != syntax.ExprIdent {
		return nil, nil, false
	}
	fnDef, ok := nw.table.Resolve(scope, defs.NamespaceValue, callee.Name)
	if !ok {
		return nil, nil, false
	}
	def := nw.table.Defs.Get(fnDef)
	if def == nil {
		return nil, nil, false
	}
	fnType := nw.resolve(def.Type)
	info, ok := nw.in.FunctionInfo(fnType)
	if !ok || info.Predicate == nil {
		return nil, nil, false
	}
	if info.Predicate.ParamIndex >= len(call.Args) {
		return nil, nil, false
	}
	place, ok := nw.PlaceOf(scope, call.Args[info.Predicate.ParamIndex])
	if !ok {
		return nil, nil, false
	}
	cur := nw.currentType(base, place, declaredOf)
	truthy, falsy := Predicate(nw.in, nw.sv, cur, nw.resolve(info.Predicate.Type))
	trueState, falseState = base.Clone(), base.Clone()
	trueState.Set(place, truthy)
	falseState.Set(place, falsy)
	return trueState, falseState, true
}

// NarrowAssign computes the FlowState following `place = value` of type
// assignedType, given place's declared type declared as the narrowing
// upper bound.
func (nw *Narrower) NarrowAssign(base *FlowState, place Place, declared, assignedType TypeID) *FlowState {
	next := base.Clone()
	next.Set(place, Assign(nw.sv, nw.resolve(declared), nw.resolve(assignedType)))
	return next
}
