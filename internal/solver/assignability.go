package solver

import "github.com/mohsen1/tsz/internal/types"

// IsAssignable reports whether a value of type source may flow into a slot
// of type target. Assignability is strictly weaker than subtyping — it
// also admits ANY on either side — and is total: every query returns a
// boolean, never an error (spec.md §7's propagation policy).
func (sv *Solver) IsAssignable(target, source types.TypeID) bool {
	b := sv.in.Builtins()
	if target == b.Any || source == b.Any {
		return true
	}
	return sv.IsSubtype(source, target)
}
