package checker

import (
	"fmt"

	"github.com/mohsen1/tsz/internal/defs"
	"github.com/mohsen1/tsz/internal/diag"
	"github.com/mohsen1/tsz/internal/narrow"
	"github.com/mohsen1/tsz/internal/solver"
	"github.com/mohsen1/tsz/internal/syntax"
	"github.com/mohsen1/tsz/internal/types"
)

// checkCall resolves a call expression against the callee's signature,
// trying each overload in declaration order before the primary signature's
// own candidate (spec.md §4.7's overload-candidate order), inferring generic
// type arguments from the call's arguments when the matching signature is
// generic.
func (c *Checker) checkCall(scope defs.ScopeID, e *syntax.Expr, flow *narrow.FlowState) types.TypeID {
	calleeType := c.in.Resolve(c.checkExpr(scope, e.Callee, flow, types.NoTypeID))
	b := c.in.Builtins()

	if calleeType == b.Any {
		for _, a := range e.Args {
			c.checkExpr(scope, a, flow, types.NoTypeID)
		}
		return b.Any
	}

	info, ok := c.in.FunctionInfo(calleeType)
	if !ok {
		for _, a := range e.Args {
			c.checkExpr(scope, a, flow, types.NoTypeID)
		}
		diag.ReportError(c.reporter, diag.TS2769, e.Span, "This expression is not callable.").Emit()
		return b.Any
	}

	candidates := make([]*types.FunctionInfo, 0, 1+len(info.Overloads))
	for _, ov := range info.Overloads {
		if oi, ok := c.in.FunctionInfo(c.in.Resolve(ov)); ok {
			candidates = append(candidates, oi)
		}
	}
	candidates = append(candidates, info)

	argTypes := make([]types.TypeID, len(e.Args))
	for i, a := range e.Args {
		argTypes[i] = c.checkExpr(scope, a, flow, types.NoTypeID)
	}

	for _, ci := range candidates {
		if ret, ok := c.matchCallSignature(ci, argTypes); ok {
			return ret
		}
	}

	if len(candidates) > 1 {
		diag.ReportError(c.reporter, diag.TS2769, e.Span, "No overload matches this call.").Emit()
		return b.Any
	}

	c.reportSignatureMismatch(candidates[0], e, argTypes)
	return b.Any
}

// matchCallSignature tries one candidate signature against the call's
// already-checked argument types, inferring type arguments first when the
// signature is generic. It reports nothing: checkCall returns the first
// matching candidate's result, and when none matches it reports TS2769 for an
// overloaded callee or the sole signature's own mismatch otherwise.
func (c *Checker) matchCallSignature(ci *types.FunctionInfo, argTypes []types.TypeID) (types.TypeID, bool) {
	required := 0
	for _, p := range ci.Params {
		if !p.Optional && !p.Rest {
			required++
		}
	}
	if len(argTypes) < required {
		return types.NoTypeID, false
	}
	hasRest := len(ci.Params) > 0 && ci.Params[len(ci.Params)-1].Rest
	if !hasRest && len(argTypes) > len(ci.Params) {
		return types.NoTypeID, false
	}

	paramTypes := make([]types.TypeID, len(ci.Params))
	for i, p := range ci.Params {
		paramTypes[i] = p.Type
	}

	var bindings solver.Bindings
	if len(ci.TypeParams) > 0 {
		n := len(paramTypes)
		if len(argTypes) < n {
			n = len(argTypes)
		}
		bindings = c.sv.InferTypeArguments(ci.TypeParams, paramTypes[:n], argTypes[:n])
		bindings = c.resolveBindings(ci.TypeParams, bindings)
	}

	for i, p := range ci.Params {
		if i >= len(argTypes) {
			continue
		}
		pt := p.Type
		if bindings != nil {
			pt = c.sv.Evaluate(c.sv.Substitute(pt, bindings))
		}
		if !c.sv.IsAssignable(pt, argTypes[i]) {
			return types.NoTypeID, false
		}
	}

	ret := ci.Return
	if bindings != nil {
		ret = c.sv.Evaluate(c.sv.Substitute(ret, bindings))
	}
	return ret, true
}

// resolveBindings concretizes every inferred binding against the others, a
// fixed-point pass over len(typeParams) rounds so a bound type parameter
// whose solved type still mentions a sibling type parameter (e.g. K's
// `keyof T` constraint once T itself is bound) settles to its final form
// before the signature's parameter and return types substitute through it.
func (c *Checker) resolveBindings(typeParams []types.TypeID, bindings solver.Bindings) solver.Bindings {
	if bindings == nil {
		return nil
	}
	for range typeParams {
		for tp, bound := range bindings {
			bindings[tp] = c.sv.Evaluate(c.sv.Substitute(bound, bindings))
		}
	}
	return bindings
}

// reportSignatureMismatch re-walks the primary signature against the call's
// arguments to produce a concrete diagnostic once every candidate has failed
// to match.
func (c *Checker) reportSignatureMismatch(ci *types.FunctionInfo, e *syntax.Expr, argTypes []types.TypeID) {
	for i, p := range ci.Params {
		if i >= len(argTypes) {
			if !p.Optional {
				diag.ReportError(c.reporter, diag.TS2345, e.Span,
					fmt.Sprintf("Expected %d arguments, but got %d.", len(ci.Params), len(argTypes))).Emit()
				return
			}
			continue
		}
		if !c.sv.IsAssignable(p.Type, argTypes[i]) {
			diag.ReportError(c.reporter, diag.TS2345, c.exprSpan(e.Args[i]),
				"Argument of type '"+types.Label(c.in, argTypes[i])+"' is not assignable to parameter of type '"+types.Label(c.in, p.Type)+"'.").Emit()
			return
		}
	}
	if len(argTypes) > len(ci.Params) {
		diag.ReportError(c.reporter, diag.TS2345, e.Span,
			fmt.Sprintf("Expected %d arguments, but got %d.", len(ci.Params), len(argTypes))).Emit()
	}
}
