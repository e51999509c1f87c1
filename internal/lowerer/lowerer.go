// Package lowerer transforms syntactic type expressions and declarations
// into interned types (spec component 4.2): lazy resolution of forward and
// recursive references, interface declaration merging, two-phase heritage-
// clause ordering, and realization of mapped types by per-key substitution.
// It sits between internal/syntax (what was written) and internal/types
// (what it denotes), consulting internal/defs for name resolution and
// internal/solver for the substitution/evaluation machinery a mapped type's
// realization needs.
package lowerer

import (
	"github.com/mohsen1/tsz/internal/defs"
	"github.com/mohsen1/tsz/internal/solver"
	"github.com/mohsen1/tsz/internal/syntax"
	"github.com/mohsen1/tsz/internal/types"
)

// Lowerer holds the shared state a lowering pass threads through: the
// interner types are built in, the solver used to realize mapped types, the
// declaration table declarations resolve through, and the syntax arenas
// type expressions and statements are read from.
type Lowerer struct {
	in     *types.Interner
	sv     *solver.Solver
	table  *defs.Table
	texprs *syntax.TypeExprs
	stmts  *syntax.Stmts

	// declStmt associates a declaration with the statement that introduced
	// it. internal/defs deliberately carries no syntax-origin fields (see
	// its own grounding notes), so the driver that declares a Def also
	// registers which statement materializes it.
	declStmt map[defs.DefID]syntax.StmtID

	// typeParams records, per generic declaration, the ordered TypeParameter
	// TypeIDs declareTypeParams interned for it. A heritage clause with type
	// arguments (`extends Container<T>`) needs this to expand the resulting
	// Application into a real substituted shape — internal/types.Resolve
	// deliberately leaves Application untouched (see its own doc comment),
	// since only the lowerer knows which TypeIDs are that declaration's own
	// parameters.
	typeParams map[defs.DefID][]types.TypeID
}

// New constructs a Lowerer over the given interner, solver, declaration
// table, and syntax arenas.
func New(in *types.Interner, sv *solver.Solver, table *defs.Table, texprs *syntax.TypeExprs, stmts *syntax.Stmts) *Lowerer {
	return &Lowerer{
		in:       in,
		sv:       sv,
		table:    table,
		texprs:   texprs,
		stmts:    stmts,
		declStmt:   make(map[defs.DefID]syntax.StmtID),
		typeParams: make(map[defs.DefID][]types.TypeID),
	}
}

// RegisterDecl records that stmt is the syntactic declaration materializing
// id. Interface/namespace/function-overload merging registers one call per
// occurrence, each under its own DefID, with the occurrences linked into one
// group by defs.Table.Merge.
func (l *Lowerer) RegisterDecl(id defs.DefID, stmt syntax.StmtID) {
	l.declStmt[id] = stmt
}
