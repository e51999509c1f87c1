// Package engine ties the four components together into a working check
// (spec.md §5): it owns the single mutable Context a traversal threads
// through — the interner, the definition store, the narrower's flow-state
// stacks, and the diagnostic buffer — and exposes the top-level Check entry
// point the other three components have no business constructing
// themselves.
package engine

import (
	"context"

	"github.com/mohsen1/tsz/internal/checker"
	"github.com/mohsen1/tsz/internal/config"
	"github.com/mohsen1/tsz/internal/defs"
	"github.com/mohsen1/tsz/internal/diag"
	"github.com/mohsen1/tsz/internal/lowerer"
	"github.com/mohsen1/tsz/internal/narrow"
	"github.com/mohsen1/tsz/internal/solver"
	"github.com/mohsen1/tsz/internal/source"
	"github.com/mohsen1/tsz/internal/syntax"
	"github.com/mohsen1/tsz/internal/trace"
	"github.com/mohsen1/tsz/internal/types"
)

// MaxDiagnostics caps a single Context's diagnostic bag, guarding a
// pathological input against producing an unbounded diagnostic list.
const MaxDiagnostics = 4096

// Context aggregates the components one check invocation shares: the
// interner, the solver, the definition table, the lowerer, the narrower,
// and the diagnostic bag they all report into. A Context's lifetime is
// scoped to exactly one check invocation — the interner is monotonically
// growing (spec.md §5's resource policy), so a caller that wants a clean
// slate builds a new Context rather than reusing one.
type Context struct {
	Interner *types.Interner
	Solver   *solver.Solver
	Table    *defs.Table
	Lowerer  *lowerer.Lowerer
	Narrower *narrow.Narrower
	Bag      *diag.Bag

	Builder *syntax.Builder
	Files   *source.FileSet

	Options config.CheckOptions
}

// New assembles every component over builder's shared string interner, and
// a diagnostic bag capped at MaxDiagnostics.
func New(opts config.CheckOptions, builder *syntax.Builder, files *source.FileSet) *Context {
	in := types.NewInterner(builder.Strings)
	sv := solver.New(in)
	table := defs.NewTable(defs.Hints{}, builder.Strings)
	table.GlobalScope = checker.DeclarePrelude(table, in)
	lw := lowerer.New(in, sv, table, builder.Types, builder.Stmts)
	nw := narrow.New(in, sv, table, builder.Exprs)
	return &Context{
		Interner: in,
		Solver:   sv,
		Table:    table,
		Lowerer:  lw,
		Narrower: nw,
		Bag:      diag.NewBag(MaxDiagnostics),
		Builder:  builder,
		Files:    files,
		Options:  opts,
	}
}

// newChecker builds a fresh checker.Checker bound to c's components,
// reporting into c's diagnostic bag and tracing through ctx's tracer, if
// the caller attached one via trace.WithTracer.
func (c *Context) newChecker(ctx context.Context) *checker.Checker {
	return checker.New(
		c.Interner, c.Solver, c.Table, c.Narrower, c.Lowerer,
		c.Builder.Stmts, c.Builder.Exprs, c.Builder.Types, c.Builder.Files,
		diag.BagReporter{Bag: c.Bag}, trace.FromContext(ctx),
		checker.Options{
			Strict:         c.Options.Strict || c.Options.IsModule(),
			NoImplicitAny:  c.Options.NoImplicitAny,
			StrictInternal: c.Options.StrictInternal,
		},
	)
}

// IsAssignable exposes the solver's assignability query for tooling
// (spec.md §6.2), without requiring a caller to reach into c.Solver
// directly.
func (c *Context) IsAssignable(target, src types.TypeID) bool {
	return c.Solver.IsAssignable(target, src)
}
