package checker

import (
	"github.com/mohsen1/tsz/internal/defs"
	"github.com/mohsen1/tsz/internal/diag"
	"github.com/mohsen1/tsz/internal/narrow"
	"github.com/mohsen1/tsz/internal/source"
	"github.com/mohsen1/tsz/internal/syntax"
	"github.com/mohsen1/tsz/internal/types"
)

// checkExprContextual checks id the same way checkExpr does, under a
// contextual type the caller expects it to flow into — the name exists
// purely so call sites read as computing a contextual type rather than a
// context-free one.
func (c *Checker) checkExprContextual(scope defs.ScopeID, id syntax.ExprID, flow *narrow.FlowState, ctx types.TypeID) types.TypeID {
	return c.checkExpr(scope, id, flow, ctx)
}

// checkExpr is the post-order expression visitor: every case checks its
// children first, computes its own type from the children's types (and, for
// a literal in a contextually-typed position, from ctx), records the result
// in the TypeMap, and returns it.
func (c *Checker) checkExpr(scope defs.ScopeID, id syntax.ExprID, flow *narrow.FlowState, ctx types.TypeID) types.TypeID {
	e := c.exprs.Get(id)
	if e == nil {
		return c.in.Builtins().Any
	}

	var t types.TypeID
	switch e.Kind {
	case syntax.ExprIdent:
		t = c.checkIdent(scope, id, e, flow)
	case syntax.ExprNumberLiteral:
		t = c.in.LiteralNumber(e.Number)
	case syntax.ExprStringLiteral:
		t = c.in.LiteralString(e.Text)
	case syntax.ExprBooleanLiteral:
		t = c.in.LiteralBoolean(e.Bool)
	case syntax.ExprObjectLiteral:
		t = c.checkObjectLiteral(scope, e, flow, ctx)
	case syntax.ExprArrayLiteral:
		t = c.checkArrayLiteral(scope, e, flow, ctx)
	case syntax.ExprPropertyAccess:
		t = c.checkPropertyAccess(scope, id, e, flow)
	case syntax.ExprElementAccess:
		t = c.checkElementAccess(scope, id, e, flow)
	case syntax.ExprCall:
		t = c.checkCall(scope, e, flow)
	case syntax.ExprAssign:
		t = c.checkAssign(scope, e, flow)
	case syntax.ExprAs:
		c.checkExpr(scope, e.Operand, flow, types.NoTypeID)
		t = c.resolveTypeExpr(scope, e.AsType)
	case syntax.ExprBinary:
		t = c.checkBinary(scope, e, flow)
	case syntax.ExprTypeOf:
		c.checkExpr(scope, e.TypeOfOperand, flow, types.NoTypeID)
		t = c.in.Builtins().String
	default:
		t = c.in.Builtins().Any
	}
	c.typeMap[id] = t
	return t
}

func (c *Checker) checkIdent(scope defs.ScopeID, id syntax.ExprID, e *syntax.Expr, flow *narrow.FlowState) types.TypeID {
	def, ok := c.table.Resolve(scope, defs.NamespaceValue, e.Name)
	if !ok {
		diag.ReportError(c.reporter, diag.TS2304, e.Span, "Cannot find name '"+c.name(e.Name)+"'.").Emit()
		return c.in.Builtins().Any
	}
	if place, ok := c.nw.PlaceOf(scope, id); ok {
		if t, ok := flow.Get(place); ok {
			return c.in.Resolve(t)
		}
	}
	d := c.table.Defs.Get(def)
	if d == nil {
		return c.internalError(e.Span, "resolved name has no declaration record")
	}
	return d.Type
}

func (c *Checker) checkPropertyAccess(scope defs.ScopeID, id syntax.ExprID, e *syntax.Expr, flow *narrow.FlowState) types.TypeID {
	objType := c.in.Resolve(c.checkExpr(scope, e.Object, flow, types.NoTypeID))
	if objType == c.in.Builtins().Any {
		return c.in.Builtins().Any
	}
	if p, ok := c.in.Property(objType, e.Property); ok {
		if place, ok := c.nw.PlaceOf(scope, id); ok {
			if t, ok := flow.Get(place); ok {
				return c.in.Resolve(t)
			}
		}
		return p.Type
	}
	diag.ReportError(c.reporter, diag.TS2339, e.Span,
		"Property '"+c.name(e.Property)+"' does not exist on type '"+types.Label(c.in, objType)+"'.").Emit()
	return c.in.Builtins().Any
}

func (c *Checker) checkElementAccess(scope defs.ScopeID, id syntax.ExprID, e *syntax.Expr, flow *narrow.FlowState) types.TypeID {
	objType := c.in.Resolve(c.checkExpr(scope, e.Object, flow, types.NoTypeID))
	idx := c.exprs.Get(e.Index)
	c.checkExpr(scope, e.Index, flow, types.NoTypeID)

	if objType == c.in.Builtins().Any {
		return c.in.Builtins().Any
	}
	if idx != nil && idx.Kind == syntax.ExprStringLiteral {
		if p, ok := c.in.Property(objType, idx.Text); ok {
			return p.Type
		}
	}
	if elem, ok := c.in.ArrayElem(objType); ok {
		return elem
	}
	if tinfo, ok := c.in.TupleInfo(objType); ok {
		if idx != nil && idx.Kind == syntax.ExprNumberLiteral {
			i := int(idx.Number)
			if i >= 0 && i < len(tinfo.Elems) {
				return tinfo.Elems[i].Type
			}
		}
		return c.in.Builtins().Any
	}
	if info, ok := c.in.ObjectShapeInfo(objType); ok && info.StringIndex != nil {
		return info.StringIndex.ValueType
	}
	if c.options.NoImplicitAny {
		diag.ReportError(c.reporter, diag.TS7053, e.Span,
			"Element implicitly has an 'any' type because expression of type '"+types.Label(c.in, objType)+"' can't be used to index type '"+types.Label(c.in, objType)+"'.").Emit()
	}
	return c.in.Builtins().Any
}

// checkLValue resolves an assignment target's declared type and enforces
// readonly (TS2540) in the same walk, so the target's sub-expressions are
// visited exactly once.
func (c *Checker) checkLValue(scope defs.ScopeID, id syntax.ExprID, flow *narrow.FlowState) types.TypeID {
	e := c.exprs.Get(id)
	if e == nil {
		return types.NoTypeID
	}
	switch e.Kind {
	case syntax.ExprIdent:
		def, ok := c.table.Resolve(scope, defs.NamespaceValue, e.Name)
		if !ok {
			diag.ReportError(c.reporter, diag.TS2304, e.Span, "Cannot find name '"+c.name(e.Name)+"'.").Emit()
			return types.NoTypeID
		}
		d := c.table.Defs.Get(def)
		if d == nil {
			return types.NoTypeID
		}
		return d.Type
	case syntax.ExprPropertyAccess:
		objType := c.in.Resolve(c.checkExpr(scope, e.Object, flow, types.NoTypeID))
		p, ok := c.in.Property(objType, e.Property)
		if !ok {
			diag.ReportError(c.reporter, diag.TS2339, e.Span,
				"Property '"+c.name(e.Property)+"' does not exist on type '"+types.Label(c.in, objType)+"'.").Emit()
			return types.NoTypeID
		}
		if p.Readonly {
			diag.ReportError(c.reporter, diag.TS2540, e.Span,
				"Cannot assign to '"+c.name(e.Property)+"' because it is a read-only property.").Emit()
		}
		return p.Type
	case syntax.ExprElementAccess:
		objType := c.in.Resolve(c.checkExpr(scope, e.Object, flow, types.NoTypeID))
		idx := c.exprs.Get(e.Index)
		c.checkExpr(scope, e.Index, flow, types.NoTypeID)
		if idx != nil && idx.Kind == syntax.ExprStringLiteral {
			if p, ok := c.in.Property(objType, idx.Text); ok {
				if p.Readonly {
					diag.ReportError(c.reporter, diag.TS2540, e.Span,
						"Cannot assign to '"+c.name(idx.Text)+"' because it is a read-only property.").Emit()
				}
				return p.Type
			}
		}
		if c.in.IsReadonlyArray(objType) {
			diag.ReportError(c.reporter, diag.TS2540, e.Span,
				"Cannot assign to index because the target is a read-only array.").Emit()
		} else if tinfo, ok := c.in.TupleInfo(objType); ok && tinfo.Readonly {
			diag.ReportError(c.reporter, diag.TS2540, e.Span,
				"Cannot assign to index because the target is a read-only tuple.").Emit()
		}
		if elem, ok := c.in.ArrayElem(objType); ok {
			return elem
		}
		return types.NoTypeID
	default:
		c.checkExpr(scope, id, flow, types.NoTypeID)
		return types.NoTypeID
	}
}

func (c *Checker) checkAssign(scope defs.ScopeID, e *syntax.Expr, flow *narrow.FlowState) types.TypeID {
	declared := c.checkLValue(scope, e.Target, flow)
	valueType := c.checkExprContextual(scope, e.Value, flow, declared)
	if declared != types.NoTypeID && !c.sv.IsAssignable(declared, valueType) {
		diag.ReportError(c.reporter, diag.TS2322, e.Span,
			"Type '"+types.Label(c.in, valueType)+"' is not assignable to type '"+types.Label(c.in, declared)+"'.").Emit()
	}
	if place, ok := c.nw.PlaceOf(scope, e.Target); ok {
		next := c.nw.NarrowAssign(flow, place, declared, valueType)
		*flow = *next
	}
	return valueType
}

func (c *Checker) checkBinary(scope defs.ScopeID, e *syntax.Expr, flow *narrow.FlowState) types.TypeID {
	left := c.checkExpr(scope, e.Left, flow, types.NoTypeID)
	right := c.checkExpr(scope, e.Right, flow, types.NoTypeID)
	switch e.Op {
	case "===", "!==", "<", ">", "<=", ">=", "instanceof":
		return c.in.Builtins().Boolean
	case "&&":
		return right
	case "||":
		return c.in.Union(left, right)
	default:
		return c.in.Builtins().Any
	}
}

// checkObjectLiteral implements the object-literal side of contextual
// typing (spec.md §4.7): each property is checked against the matching
// property of ctx, if any, which is how a literal nested in a discriminated
// union assignment keeps its narrow literal type instead of widening.
func (c *Checker) checkObjectLiteral(scope defs.ScopeID, e *syntax.Expr, flow *narrow.FlowState, ctx types.TypeID) types.TypeID {
	target, hasTarget := c.selectShapeForLiteral(e, ctx)

	props := make([]types.Property, 0, len(e.Properties))
	seen := make(map[source.StringID]bool, len(e.Properties))
	for _, pi := range e.Properties {
		seen[pi.Name] = true
		var propCtx types.TypeID
		if hasTarget {
			if p, ok := c.in.Property(target, pi.Name); ok {
				propCtx = p.Type
			}
		}
		vt := c.checkPropertyValue(scope, pi.Value, flow, propCtx)
		props = append(props, types.Property{Name: pi.Name, Type: vt})
	}

	if hasTarget {
		c.checkExcessProperties(target, e, seen)
	}
	return c.in.RegisterObjectShape(types.ObjectInfo{Properties: props})
}

// selectShapeForLiteral picks the object shape (possibly one arm of a union
// contextual type) this literal should be checked against, for discriminated
// union literal preservation.
func (c *Checker) selectShapeForLiteral(e *syntax.Expr, ctx types.TypeID) (types.TypeID, bool) {
	if ctx == types.NoTypeID {
		return types.NoTypeID, false
	}
	resolved := c.in.Resolve(ctx)
	if _, ok := c.in.ObjectShapeInfo(resolved); ok {
		return resolved, true
	}
	if union, ok := c.in.UnionInfo(resolved); ok {
		for _, m := range union.Members {
			mr := c.in.Resolve(m)
			info, ok := c.in.ObjectShapeInfo(mr)
			if !ok {
				continue
			}
			if c.literalMatchesShape(e, info) {
				return mr, true
			}
		}
	}
	return types.NoTypeID, false
}

// literalMatchesShape reports whether e could be checked against info: every
// non-optional property info declares must be present, and a property whose
// declared type is itself a literal (the discriminant of a tagged union)
// must match that exact literal value rather than merely be present — this
// is what lets selectShapeForLiteral tell `{flag:false}` and `{flag:true}`
// apart instead of picking whichever arm comes first.
func (c *Checker) literalMatchesShape(e *syntax.Expr, info *types.ObjectInfo) bool {
	for _, p := range info.Properties {
		var valueExpr syntax.ExprID
		found := false
		for _, pi := range e.Properties {
			if pi.Name == p.Name {
				valueExpr = pi.Value
				found = true
				break
			}
		}
		if !found {
			if !p.Optional {
				return false
			}
			continue
		}
		if !c.literalValueMatches(valueExpr, p.Type) {
			return false
		}
	}
	return true
}

// literalValueMatches reports whether valueExpr's own literal value equals
// propType, when propType is itself a literal type; any other property
// position matches on presence alone.
func (c *Checker) literalValueMatches(valueExpr syntax.ExprID, propType types.TypeID) bool {
	switch c.in.Kind(propType) {
	case types.KindLiteralBoolean, types.KindLiteralString, types.KindLiteralNumber:
	default:
		return true
	}
	ve := c.exprs.Get(valueExpr)
	if ve == nil {
		return false
	}
	switch ve.Kind {
	case syntax.ExprBooleanLiteral:
		return propType == c.in.LiteralBoolean(ve.Bool)
	case syntax.ExprStringLiteral:
		return propType == c.in.LiteralString(ve.Text)
	case syntax.ExprNumberLiteral:
		return propType == c.in.LiteralNumber(ve.Number)
	default:
		return false
	}
}

// checkExcessProperties flags a property the literal specifies that the
// contextual shape doesn't declare (TypeScript's excess-property check on
// fresh object literals), reported as a TS2322 assignability failure since
// this diagnostic space carries no dedicated excess-property code.
func (c *Checker) checkExcessProperties(target types.TypeID, e *syntax.Expr, _ map[source.StringID]bool) {
	info, ok := c.in.ObjectShapeInfo(target)
	if !ok || info.StringIndex != nil {
		return
	}
	known := make(map[source.StringID]bool, len(info.Properties))
	for _, p := range info.Properties {
		known[p.Name] = true
	}
	for _, pi := range e.Properties {
		if !known[pi.Name] {
			diag.ReportError(c.reporter, diag.TS2322, e.Span,
				"Object literal may only specify known properties, and '"+c.name(pi.Name)+"' does not exist in type '"+types.Label(c.in, target)+"'.").Emit()
		}
	}
}

// checkArrayLiteral implements the array/tuple side of contextual typing:
// every element checks against ctx's element type, or, when ctx is a tuple,
// index-wise against the tuple element at the same position, in which case
// the literal takes a tuple type.
func (c *Checker) checkArrayLiteral(scope defs.ScopeID, e *syntax.Expr, flow *narrow.FlowState, ctx types.TypeID) types.TypeID {
	elemCtx, readonly := c.arrayElemContext(ctx)
	tuple, isTuple := c.in.TupleInfo(c.in.Resolve(ctx))

	elems := make([]types.TypeID, len(e.Elements))
	for i, el := range e.Elements {
		ctxI := elemCtx
		if isTuple && i < len(tuple.Elems) && !tuple.Elems[i].Rest {
			ctxI = tuple.Elems[i].Type
		}
		elems[i] = c.checkPropertyValue(scope, el, flow, ctxI)
	}
	if isTuple {
		tupleElems := make([]types.TupleElem, len(elems))
		for i, t := range elems {
			tupleElems[i] = types.TupleElem{Type: t}
		}
		return c.in.RegisterTuple(tupleElems)
	}

	merged := c.in.Builtins().Any
	switch {
	case len(elems) > 0:
		merged = c.in.Union(elems...)
	case elemCtx != types.NoTypeID:
		merged = elemCtx
	}

	if readonly {
		return c.in.ReadonlyArray(merged)
	}
	return c.in.Array(merged)
}

func (c *Checker) arrayElemContext(ctx types.TypeID) (types.TypeID, bool) {
	if ctx == types.NoTypeID {
		return types.NoTypeID, false
	}
	resolved := c.in.Resolve(ctx)
	if elem, ok := c.in.ArrayElem(resolved); ok {
		return elem, c.in.IsReadonlyArray(resolved)
	}
	return types.NoTypeID, false
}

// checkPropertyValue checks a single object-property or array-element value
// under its contextual type, implementing literal preservation: a literal
// nested in an object/array literal always widens to its base primitive
// (TypeScript's fresh-literal-widening rule) unless the contextual type
// itself expects that exact literal — directly, or as one member of a
// union, the discriminated-union case.
func (c *Checker) checkPropertyValue(scope defs.ScopeID, id syntax.ExprID, flow *narrow.FlowState, propCtx types.TypeID) types.TypeID {
	natural := c.checkExpr(scope, id, flow, propCtx)
	if !c.isLiteralExprKind(id) {
		return natural
	}
	if propCtx != types.NoTypeID && c.literalMatchesContext(natural, propCtx) {
		return natural
	}
	return c.widen(natural)
}

func (c *Checker) isLiteralExprKind(id syntax.ExprID) bool {
	e := c.exprs.Get(id)
	if e == nil {
		return false
	}
	switch e.Kind {
	case syntax.ExprNumberLiteral, syntax.ExprStringLiteral, syntax.ExprBooleanLiteral:
		return true
	default:
		return false
	}
}

func (c *Checker) literalMatchesContext(natural, ctx types.TypeID) bool {
	resolved := c.in.Resolve(ctx)
	if resolved == natural {
		return true
	}
	if union, ok := c.in.UnionInfo(resolved); ok {
		for _, m := range union.Members {
			if c.in.Resolve(m) == natural {
				return true
			}
		}
	}
	return false
}

// widen converts a literal type to its base primitive — the rule a fresh
// literal follows everywhere but the positions checkPropertyValue and
// checkVarDecl special-case for preservation.
func (c *Checker) widen(t types.TypeID) types.TypeID {
	b := c.in.Builtins()
	switch c.in.Kind(t) {
	case types.KindLiteralString:
		return b.String
	case types.KindLiteralNumber:
		return b.Number
	case types.KindLiteralBoolean:
		return b.Boolean
	case types.KindLiteralBigInt:
		return b.BigInt
	default:
		return t
	}
}

func (c *Checker) exprSpan(id syntax.ExprID) source.Span {
	e := c.exprs.Get(id)
	if e == nil {
		return source.Span{}
	}
	return e.Span
}
