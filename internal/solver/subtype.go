package solver

import "github.com/mohsen1/tsz/internal/types"

// IsSubtype reports whether s is a structural subtype of t. For all T,
// IsSubtype(T,T) holds (spec.md §8.1's subtype-reflexivity invariant); the
// comparison is coinductive over cyclic interface graphs, treating re-entry
// on the same (s,t) pair as success rather than looping forever.
func (sv *Solver) IsSubtype(s, t types.TypeID) bool {
	return sv.isSubtype(s, t, make(map[pairKey]bool))
}

func (sv *Solver) isSubtype(s, t types.TypeID, seen map[pairKey]bool) bool {
	if s == t {
		return true
	}
	b := sv.in.Builtins()
	if t == b.Any || s == b.Any {
		return true
	}
	if t == b.Unknown {
		return true
	}
	if s == b.Never {
		return true
	}
	if t == b.Never {
		return false
	}

	key := pairKey{s, t}
	if v, ok := seen[key]; ok {
		return v
	}
	seen[key] = true // assume success for the duration of this comparison (coinduction)

	s = sv.in.Resolve(s)
	t = sv.in.Resolve(t)
	if s == t {
		return true
	}

	sInfo, sOK := sv.in.Lookup(s)
	tInfo, tOK := sv.in.Lookup(t)
	if !sOK || !tOK {
		seen[key] = false
		return false
	}

	result := sv.compare(s, t, sInfo, tInfo, seen)
	seen[key] = result
	return result
}

func (sv *Solver) compare(s, t types.TypeID, sInfo, tInfo types.Type, seen map[pairKey]bool) bool {
	in := sv.in
	b := in.Builtins()

	// A source union is a subtype of t iff every member is.
	if sUnion, ok := in.UnionInfo(s); ok {
		for _, m := range sUnion.Members {
			if !sv.isSubtype(m, t, seen) {
				return false
			}
		}
		return true
	}
	// A target union is a supertype of s iff s matches any member.
	if tUnion, ok := in.UnionInfo(t); ok {
		for _, m := range tUnion.Members {
			if sv.isSubtype(s, m, seen) {
				return true
			}
		}
		return false
	}
	// A target intersection requires s to satisfy every member.
	if tInter, ok := in.IntersectionInfo(t); ok {
		for _, m := range tInter.Members {
			if !sv.isSubtype(s, m, seen) {
				return false
			}
		}
		return true
	}
	// A source intersection satisfies t if any member does.
	if sInter, ok := in.IntersectionInfo(s); ok {
		for _, m := range sInter.Members {
			if sv.isSubtype(m, t, seen) {
				return true
			}
		}
		return false
	}

	// Literal types widen to their primitive.
	if widened, ok := widenedPrimitive(in, sInfo.Kind); ok && widened == t {
		return true
	}

	isArrayLike := func(k types.Kind) bool { return k == types.KindArray || k == types.KindReadonlyArray }

	switch {
	case isArrayLike(sInfo.Kind) && isArrayLike(tInfo.Kind):
		// A writable array satisfies a readonly target (one-way); a
		// readonly array never satisfies a writable target.
		if sInfo.Kind == types.KindReadonlyArray && tInfo.Kind == types.KindArray {
			return false
		}
		sElem, _ := in.ArrayElem(s)
		tElem, _ := in.ArrayElem(t)
		return sv.isSubtype(sElem, tElem, seen)

	case sInfo.Kind == types.KindTuple && tInfo.Kind == types.KindTuple:
		return sv.tupleSubtype(s, t, seen)

	case sInfo.Kind == types.KindTuple && isArrayLike(tInfo.Kind):
		sTuple, _ := in.TupleInfo(s)
		if tInfo.Kind == types.KindArray && sTuple.Readonly {
			return false
		}
		tElem, _ := in.ArrayElem(t)
		for _, e := range sTuple.Elems {
			if !sv.isSubtype(e.Type, tElem, seen) {
				return false
			}
		}
		return true

	case sInfo.Kind == types.KindObjectShape && tInfo.Kind == types.KindObjectShape:
		return sv.objectSubtype(s, t, seen)

	case sInfo.Kind == types.KindFunction && tInfo.Kind == types.KindFunction:
		return sv.functionSubtype(s, t, seen)

	case sInfo.Kind == types.KindApplication && tInfo.Kind == types.KindApplication:
		return sv.applicationSubtype(s, t, seen)

	case sInfo.Kind == types.KindTypeParameter:
		sParam, ok := in.TypeParameterInfo(s)
		if !ok || sParam.Constraint == types.NoTypeID {
			return t == b.Unknown
		}
		return sv.isSubtype(sParam.Constraint, t, seen)
	}

	return false
}

// widenedPrimitive maps a literal kind to the primitive it widens to, used
// both here and by the checker's literal-preservation logic.
func widenedPrimitive(in *types.Interner, k types.Kind) (types.TypeID, bool) {
	b := in.Builtins()
	switch k {
	case types.KindLiteralString:
		return b.String, true
	case types.KindLiteralNumber:
		return b.Number, true
	case types.KindLiteralBoolean:
		return b.Boolean, true
	case types.KindLiteralBigInt:
		return b.BigInt, true
	default:
		return types.NoTypeID, false
	}
}

func (sv *Solver) tupleSubtype(s, t types.TypeID, seen map[pairKey]bool) bool {
	sTuple, _ := sv.in.TupleInfo(s)
	tTuple, _ := sv.in.TupleInfo(t)
	if sTuple.Readonly && !tTuple.Readonly {
		return false // writable ≥ readonly, one-way
	}
	if len(sTuple.Elems) < requiredLen(tTuple.Elems) {
		return false
	}
	for i, te := range tTuple.Elems {
		if i >= len(sTuple.Elems) {
			if te.Optional || te.Rest {
				continue
			}
			return false
		}
		if !sv.isSubtype(sTuple.Elems[i].Type, te.Type, seen) {
			return false
		}
	}
	return true
}

func requiredLen(elems []types.TupleElem) int {
	n := 0
	for _, e := range elems {
		if !e.Optional && !e.Rest {
			n++
		}
	}
	return n
}

// objectSubtype implements structural width/depth subtyping: t's declared
// members must all be present and compatible on s (width: s may carry
// extra members freely); a readonly property on t accepts a non-readonly
// property on s, but not the reverse.
func (sv *Solver) objectSubtype(s, t types.TypeID, seen map[pairKey]bool) bool {
	in := sv.in
	tInfo, _ := in.ObjectShapeInfo(t)
	for _, tp := range tInfo.Properties {
		sp, ok := in.Property(s, tp.Name)
		if !ok {
			if tp.Optional {
				continue
			}
			return false
		}
		if !sv.isSubtype(sp.Type, tp.Type, seen) {
			return false
		}
		if tp.Readonly && !sp.Readonly {
			// A mutable source property still satisfies a readonly target
			// member: readonly only restricts what the *target* side can do.
			continue
		}
		if sp.Readonly && !tp.Readonly {
			// A readonly source property never satisfies a writable target member.
			return false
		}
	}
	if tInfo.StringIndex != nil {
		sInfo, _ := in.ObjectShapeInfo(s)
		if sInfo == nil || sInfo.StringIndex == nil {
			return false
		}
		if !sv.isSubtype(sInfo.StringIndex.ValueType, tInfo.StringIndex.ValueType, seen) {
			return false
		}
	}
	return true
}

// functionSubtype: parameters are contravariant, return types covariant.
func (sv *Solver) functionSubtype(s, t types.TypeID, seen map[pairKey]bool) bool {
	in := sv.in
	sFn, _ := in.FunctionInfo(s)
	tFn, _ := in.FunctionInfo(t)
	if requiredParamLen(sFn.Params) > len(tFn.Params) {
		return false
	}
	for i, tp := range tFn.Params {
		if i >= len(sFn.Params) {
			continue
		}
		if !sv.isSubtype(tp.Type, sFn.Params[i].Type, seen) { // contravariant
			return false
		}
	}
	return sv.isSubtype(sFn.Return, tFn.Return, seen) // covariant
}

func requiredParamLen(params []types.Param) int {
	n := 0
	for _, p := range params {
		if !p.Optional && !p.Rest {
			n++
		}
	}
	return n
}

func (sv *Solver) applicationSubtype(s, t types.TypeID, seen map[pairKey]bool) bool {
	in := sv.in
	sApp, _ := in.ApplicationInfo(s)
	tApp, _ := in.ApplicationInfo(t)
	if sApp.Target != tApp.Target || len(sApp.Args) != len(tApp.Args) {
		return false
	}
	for i := range sApp.Args {
		// Refs don't carry their defining type parameters directly (that
		// belongs to internal/defs, which owns DefID -> declaration), so
		// without that linkage every generic argument defaults to
		// covariant comparison — the common case for TypeScript's own
		// variance-unannotated generics.
		if !sv.isSubtype(sApp.Args[i], tApp.Args[i], seen) {
			return false
		}
	}
	return true
}
