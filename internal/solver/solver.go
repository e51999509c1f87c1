// Package solver implements structural subtyping, assignability, the
// deferred type-operator evaluations the interner couldn't resolve on its
// own (Conditional, and IndexAccess/KeyOf over abstract operands), and
// generic type-argument inference.
//
// It sits one layer above internal/types so those deferred operators can
// call back into subtype judgments without the interner importing this
// package (the cycle spec.md's design notes warn against).
package solver

import "github.com/mohsen1/tsz/internal/types"

// Solver evaluates subtype/assignability/operator queries against a shared
// interner. It carries no other state — the recursion guards it needs for
// coinductive comparisons are transaction-scoped, never fields on Solver
// itself, so a single Solver is safe to reuse and to share across
// goroutines for read-only queries.
type Solver struct {
	in *types.Interner
}

// New creates a Solver over the given interner.
func New(in *types.Interner) *Solver {
	return &Solver{in: in}
}

// Interner exposes the underlying interner, mainly for callers (the
// narrower, the checker) building further types from a solve result.
func (s *Solver) Interner() *types.Interner { return s.in }

// pairKey names the coinductive-comparison memo key: spec.md's design
// notes call for treating re-entry on an (s_id, t_id) pair as success, so
// cyclic interface graphs terminate instead of looping.
type pairKey struct{ s, t types.TypeID }
