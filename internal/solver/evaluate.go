package solver

import "github.com/mohsen1/tsz/internal/types"

// Evaluate resolves a deferred type-level operator the interner couldn't
// decide on its own: Conditional always arrives here (spec component 4.4),
// and a deferred IndexAccess/KeyOf becomes resolvable once Evaluate (or a
// prior Substitute) has replaced its abstract operands with concrete ones.
// Concrete types are returned unchanged.
func (sv *Solver) Evaluate(id types.TypeID) types.TypeID {
	in := sv.in
	info, ok := in.Lookup(id)
	if !ok {
		return id
	}
	switch info.Kind {
	case types.KindConditional:
		return sv.evaluateConditional(id)
	case types.KindIndexAccess:
		access, ok := in.IndexAccessInfo(id)
		if !ok {
			return id
		}
		resolved := in.IndexAccess(sv.Evaluate(access.Object), sv.Evaluate(access.Index))
		if resolved == id {
			return id // still abstract; nothing left to do
		}
		return sv.Evaluate(resolved)
	case types.KindKeyOf:
		keyOf, ok := in.KeyOfInfo(id)
		if !ok {
			return id
		}
		resolved := in.KeyOf(sv.Evaluate(keyOf.Object))
		if resolved == id {
			return id
		}
		return sv.Evaluate(resolved)
	default:
		return id
	}
}

// evaluateConditional implements `Check extends Extends ? True : False`.
// InferParams occurring in Extends are bound by structurally unifying
// Extends against Check before the extends clause itself is subtype-
// tested, so `True` can reference them (e.g. `T extends (infer U)[] ? U :
// never`). A Check that is a (possibly generic) union distributes: the
// conditional is evaluated once per member and the results unioned,
// matching the reference compiler's distributive conditional types.
func (sv *Solver) evaluateConditional(id types.TypeID) types.TypeID {
	in := sv.in
	info, ok := in.ConditionalInfo(id)
	if !ok {
		return id
	}
	if union, ok := in.UnionInfo(info.Check); ok {
		results := make([]types.TypeID, len(union.Members))
		for i, m := range union.Members {
			branch := in.Conditional(types.ConditionalInfo{
				Check: m, Extends: info.Extends, True: info.True, False: info.False, InferParams: info.InferParams,
			})
			results[i] = sv.Evaluate(branch)
		}
		return in.Union(results...)
	}

	isInfer := make(map[types.TypeID]bool, len(info.InferParams))
	for _, p := range info.InferParams {
		isInfer[p] = true
	}
	bindings := make(Bindings)
	sv.unify(info.Extends, info.Check, isInfer, bindings, make(map[pairKey]bool))

	extends := sv.Substitute(info.Extends, bindings)
	if sv.IsSubtype(info.Check, extends) {
		return sv.Evaluate(sv.Substitute(info.True, bindings))
	}
	return sv.Evaluate(info.False)
}
