// Package checker drives the post-order traversal that ties the other three
// components together (spec component 4.7): it resolves names through
// internal/defs, materializes annotations through internal/lowerer, asks
// internal/solver whether one type flows into another, and threads flow
// state through internal/narrow at every branch and assignment. It is the
// only component that actually walks a program and the only one that emits
// diagnostics.
package checker

import (
	"context"
	"fmt"

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

// Options configures a single check invocation. The zero value is the
// permissive default (sloppy mode, implicit any allowed).
type Options struct {
	// Strict enables strict-mode binder rules, e.g. TS1252's rejection of
	// function declarations nested directly inside a block.
	Strict bool
	// NoImplicitAny turns an inferred/defaulted Any into a diagnostic
	// (TS7006, TS7053) rather than silently accepting it.
	NoImplicitAny bool
	// StrictInternal panics on an internal contract violation instead of
	// degrading to Any plus an internal-error diagnostic (spec.md §7).
	StrictInternal bool
}

// Checker holds the state one file-set check invocation threads through its
// traversal. It owns nothing the other components don't already own —
// interner, solver, table, narrower, lowerer all outlive a single Checker
// and are supplied by the caller (internal/engine).
type Checker struct {
	in     *types.Interner
	sv     *solver.Solver
	table  *defs.Table
	nw     *narrow.Narrower
	lw     *lowerer.Lowerer
	stmts  *syntax.Stmts
	exprs  *syntax.Exprs
	texprs *syntax.TypeExprs
	files  *syntax.Files

	reporter diag.Reporter
	tracer   trace.Tracer
	options  Options

	// strict is the effective strict-mode flag for the file currently being
	// checked: options.Strict, widened by that file's own IsModule (ES
	// module bodies are implicitly strict regardless of the configured
	// default). CheckFile sets this once per file before walking it.
	strict bool

	typeMap map[syntax.ExprID]types.TypeID

	// funcScope/funcDef associate a FunctionDecl statement with the scope
	// its body checks in and the Def its signature was registered under,
	// populated by the declaration pass and consulted by the body-checking
	// pass that follows it.
	funcScope    map[syntax.StmtID]defs.ScopeID
	funcDef      map[syntax.StmtID]defs.DefID
	namespaceDef map[syntax.StmtID]defs.DefID

	// returnStack tracks the contextual return type of the function body
	// currently being checked, for `return expr` contextual typing.
	returnStack []types.TypeID
}

// New constructs a Checker over the shared components of one check
// invocation.
func New(
	in *types.Interner,
	sv *solver.Solver,
	table *defs.Table,
	nw *narrow.Narrower,
	lw *lowerer.Lowerer,
	stmts *syntax.Stmts,
	exprs *syntax.Exprs,
	texprs *syntax.TypeExprs,
	files *syntax.Files,
	reporter diag.Reporter,
	tracer trace.Tracer,
	options Options,
) *Checker {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	if tracer == nil {
		tracer = trace.Nop
	}
	return &Checker{
		in:        in,
		sv:        sv,
		table:     table,
		nw:        nw,
		lw:        lw,
		stmts:     stmts,
		exprs:     exprs,
		texprs:    texprs,
		files:     files,
		reporter:  reporter,
		tracer:    tracer,
		options:   options,
		typeMap:   make(map[syntax.ExprID]types.TypeID),
		funcScope:    make(map[syntax.StmtID]defs.ScopeID),
		funcDef:      make(map[syntax.StmtID]defs.DefID),
		namespaceDef: make(map[syntax.StmtID]defs.DefID),
	}
}

// Result is everything one CheckFile call produces: the expression-to-type
// map and the diagnostics raised along the way (spec.md §6's TypeMap and
// Diagnostic list, realized against this syntax model — only expressions
// carry a checked type here, statements and type annotations don't need
// their own TypeMap entry since they're reachable through the declarations
// and expressions that reference them).
type Result struct {
	TypeMap     map[syntax.ExprID]types.TypeID
	Diagnostics []*diag.Diagnostic
}

// CheckFile type-checks one file end to end: a declaration-collection pass
// that registers every top-level interface/type-alias/namespace/function so
// forward references resolve, followed by a statement-by-statement checking
// pass that threads flow state through control flow. file and fileID name
// the same source file in internal/source's and internal/syntax's parallel
// ID spaces — the engine assigns both in lockstep when it builds a file's
// tree, so a lookup in either arena lands on the same content.
func (c *Checker) CheckFile(ctx context.Context, file source.FileID, fileID syntax.FileID) *Result {
	f := c.files.Get(fileID)
	if f == nil {
		return &Result{TypeMap: c.typeMap}
	}

	span := trace.Begin(c.tracer, trace.ScopeFile, "check_file", 0)
	defer func() {
		if r := recover(); r != nil {
			c.reportInternalPanic(f.Span, r)
		}
		span.End("")
	}()

	c.strict = c.options.Strict || f.IsModule

	scope := c.table.FileRoot(file)
	c.declareTopLevel(scope, scope, f.Body, c.strict)

	flow := narrow.NewFlowState()
	c.checkStmts(ctx, scope, scope, f.Body, flow)

	return &Result{TypeMap: c.typeMap}
}

func (c *Checker) reportInternalPanic(span source.Span, r any) {
	if c.options.StrictInternal {
		panic(r)
	}
	diag.ReportError(c.reporter, diag.TSInternalError, span, fmt.Sprintf("internal error: %v", r)).Emit()
}

// internalError degrades an internal contract violation (e.g. a Def or Type
// this package expects to exist but doesn't) to Any plus a diagnostic,
// or panics in a debug build — spec.md §7's two-tier internal-error policy.
func (c *Checker) internalError(span source.Span, msg string) types.TypeID {
	if c.options.StrictInternal {
		panic("checker: internal error: " + msg)
	}
	diag.ReportError(c.reporter, diag.TSInternalError, span, msg).Emit()
	return c.in.Builtins().Any
}

// cancelled reports whether ctx has been cancelled, the checkpoint every
// statement boundary consults (spec.md §5's cooperative cancellation flag).
func (c *Checker) cancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
