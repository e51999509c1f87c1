package solver

import "github.com/mohsen1/tsz/internal/types"

// Bindings maps a TypeParameter or Infer TypeID to the concrete type it was
// inferred to stand for.
type Bindings map[types.TypeID]types.TypeID

// InferTypeArguments infers one binding per entry in typeParams by
// structurally unifying each declared parameter's type against the
// corresponding call argument's type (spec component 4: generic
// type-argument inference via structural traversal). Params longer than
// args are ignored (missing arguments to optional parameters); extra args
// are ignored the same way overload resolution would drop them.
func (sv *Solver) InferTypeArguments(typeParams []types.TypeID, paramTypes, argTypes []types.TypeID) Bindings {
	bindings := make(Bindings)
	n := len(paramTypes)
	if len(argTypes) < n {
		n = len(argTypes)
	}
	isParam := make(map[types.TypeID]bool, len(typeParams))
	for _, tp := range typeParams {
		isParam[tp] = true
	}
	for i := 0; i < n; i++ {
		sv.unify(paramTypes[i], argTypes[i], isParam, bindings, make(map[pairKey]bool))
	}
	// Any type parameter left unbound defaults to its constraint (or
	// unknown, absent one) the way the reference compiler falls back when
	// inference can't pin a parameter down from the call site alone.
	for _, tp := range typeParams {
		if _, ok := bindings[tp]; ok {
			continue
		}
		if info, ok := sv.in.TypeParameterInfo(tp); ok && info.Constraint != types.NoTypeID {
			bindings[tp] = info.Constraint
		} else {
			bindings[tp] = sv.in.Builtins().Unknown
		}
	}
	return bindings
}

// unify walks pattern and candidate in lockstep. Whenever pattern is a type
// parameter being solved for, candidate becomes (or widens) its binding.
func (sv *Solver) unify(pattern, candidate types.TypeID, isParam map[types.TypeID]bool, bindings Bindings, seen map[pairKey]bool) {
	in := sv.in
	if pattern == types.NoTypeID || candidate == types.NoTypeID {
		return
	}
	if isParam[pattern] {
		if existing, ok := bindings[pattern]; ok {
			bindings[pattern] = in.Union(existing, candidate)
		} else {
			bindings[pattern] = candidate
		}
		return
	}
	key := pairKey{pattern, candidate}
	if seen[key] {
		return
	}
	seen[key] = true

	pInfo, pOK := in.Lookup(pattern)
	if !pOK {
		return
	}

	switch pInfo.Kind {
	case types.KindArray, types.KindReadonlyArray:
		pElem, _ := in.ArrayElem(pattern)
		if cElem, ok := in.ArrayElem(candidate); ok {
			sv.unify(pElem, cElem, isParam, bindings, seen)
		} else if cTuple, ok := in.TupleInfo(candidate); ok {
			for _, e := range cTuple.Elems {
				sv.unify(pElem, e.Type, isParam, bindings, seen)
			}
		}

	case types.KindTuple:
		pTuple, _ := in.TupleInfo(pattern)
		if cTuple, ok := in.TupleInfo(candidate); ok {
			for i, pe := range pTuple.Elems {
				if i >= len(cTuple.Elems) {
					break
				}
				sv.unify(pe.Type, cTuple.Elems[i].Type, isParam, bindings, seen)
			}
		}

	case types.KindObjectShape:
		if cShape, ok := in.ObjectShapeInfo(candidate); ok {
			pShape, _ := in.ObjectShapeInfo(pattern)
			for _, pp := range pShape.Properties {
				for _, cp := range cShape.Properties {
					if cp.Name == pp.Name {
						sv.unify(pp.Type, cp.Type, isParam, bindings, seen)
						break
					}
				}
			}
		}

	case types.KindFunction:
		if cFn, ok := in.FunctionInfo(candidate); ok {
			pFn, _ := in.FunctionInfo(pattern)
			for i, pp := range pFn.Params {
				if i >= len(cFn.Params) {
					break
				}
				sv.unify(pp.Type, cFn.Params[i].Type, isParam, bindings, seen)
			}
			sv.unify(pFn.Return, cFn.Return, isParam, bindings, seen)
		}

	case types.KindIndexAccess:
		// T[K] in parameter position: only the object side T is unified
		// against the argument; K gets no candidate from this pattern.
		if info, ok := in.IndexAccessInfo(pattern); ok {
			sv.unify(info.Object, candidate, isParam, bindings, seen)
		}

	case types.KindApplication:
		if cApp, ok := in.ApplicationInfo(candidate); ok {
			pApp, _ := in.ApplicationInfo(pattern)
			if pApp.Target == cApp.Target {
				for i := range pApp.Args {
					if i >= len(cApp.Args) {
						break
					}
					sv.unify(pApp.Args[i], cApp.Args[i], isParam, bindings, seen)
				}
			}
		}

	case types.KindUnion:
		pUnion, _ := in.UnionInfo(pattern)
		for _, m := range pUnion.Members {
			sv.unify(m, candidate, isParam, bindings, seen)
		}
	}
}

// Substitute rebuilds id with every TypeID key in bindings replaced by its
// bound value. Types with nothing to substitute are returned unchanged
// (hash-consing means this is still O(1) for the common case).
func (sv *Solver) Substitute(id types.TypeID, bindings Bindings) types.TypeID {
	if len(bindings) == 0 {
		return id
	}
	if bound, ok := bindings[id]; ok {
		return bound
	}
	in := sv.in
	info, ok := in.Lookup(id)
	if !ok {
		return id
	}
	switch info.Kind {
	case types.KindArray:
		elem, _ := in.ArrayElem(id)
		return in.Array(sv.Substitute(elem, bindings))

	case types.KindReadonlyArray:
		elem, _ := in.ArrayElem(id)
		return in.ReadonlyArray(sv.Substitute(elem, bindings))

	case types.KindTuple:
		tuple, _ := in.TupleInfo(id)
		elems := make([]types.TupleElem, len(tuple.Elems))
		for i, e := range tuple.Elems {
			elems[i] = types.TupleElem{Type: sv.Substitute(e.Type, bindings), Optional: e.Optional, Rest: e.Rest}
		}
		if tuple.Readonly {
			return in.RegisterReadonlyTuple(elems)
		}
		return in.RegisterTuple(elems)

	case types.KindObjectShape:
		shape, _ := in.ObjectShapeInfo(id)
		props := make([]types.Property, len(shape.Properties))
		for i, p := range shape.Properties {
			props[i] = types.Property{Name: p.Name, Type: sv.Substitute(p.Type, bindings), Optional: p.Optional, Readonly: p.Readonly}
		}
		return in.RegisterObjectShape(types.ObjectInfo{
			Properties:     props,
			StringIndex:    sv.substituteIndexSig(shape.StringIndex, bindings),
			NumberIndex:    sv.substituteIndexSig(shape.NumberIndex, bindings),
			CallSignatures: shape.CallSignatures,
		})

	case types.KindFunction:
		fn, _ := in.FunctionInfo(id)
		params := make([]types.Param, len(fn.Params))
		for i, p := range fn.Params {
			params[i] = types.Param{Name: p.Name, Type: sv.Substitute(p.Type, bindings), Optional: p.Optional, Rest: p.Rest}
		}
		return in.RegisterFunction(types.FunctionInfo{
			TypeParams: fn.TypeParams,
			Params:     params,
			Return:     sv.Substitute(fn.Return, bindings),
			Overloads:  fn.Overloads,
		})

	case types.KindUnion:
		union, _ := in.UnionInfo(id)
		members := make([]types.TypeID, len(union.Members))
		for i, m := range union.Members {
			members[i] = sv.Substitute(m, bindings)
		}
		return in.Union(members...)

	case types.KindIntersection:
		inter, _ := in.IntersectionInfo(id)
		members := make([]types.TypeID, len(inter.Members))
		for i, m := range inter.Members {
			members[i] = sv.Substitute(m, bindings)
		}
		return in.Intersection(members...)

	case types.KindIndexAccess:
		access, _ := in.IndexAccessInfo(id)
		return in.IndexAccess(sv.Substitute(access.Object, bindings), sv.Substitute(access.Index, bindings))

	case types.KindKeyOf:
		keyOf, _ := in.KeyOfInfo(id)
		return in.KeyOf(sv.Substitute(keyOf.Object, bindings))

	case types.KindApplication:
		app, _ := in.ApplicationInfo(id)
		args := make([]types.TypeID, len(app.Args))
		for i, a := range app.Args {
			args[i] = sv.Substitute(a, bindings)
		}
		return in.Application(sv.Substitute(app.Target, bindings), args)

	case types.KindMapped:
		mapped, _ := in.MappedInfo(id)
		// KeyParam is a binder local to this mapped type, not a free
		// variable standing for an outer type parameter — substituting
		// into it would rename the key placeholder Template still expects.
		return in.Mapped(types.MappedInfo{
			Source:      sv.Substitute(mapped.Source, bindings),
			KeyParam:    mapped.KeyParam,
			Template:    sv.Substitute(mapped.Template, bindings),
			OptionalMod: mapped.OptionalMod,
			ReadonlyMod: mapped.ReadonlyMod,
		})

	default:
		return id
	}
}

func (sv *Solver) substituteIndexSig(sig *types.IndexSignature, bindings Bindings) *types.IndexSignature {
	if sig == nil {
		return nil
	}
	return &types.IndexSignature{ValueType: sv.Substitute(sig.ValueType, bindings), Readonly: sig.Readonly}
}
