package syntax

import "github.com/mohsen1/tsz/internal/source"

// Hints provides capacity hints for a Builder's arenas.
type Hints struct{ Files, Stmts, Exprs, Types uint }

// Builder aggregates a tree's arenas and the shared string interner. It is
// the entry point fixtures and the lowerer's test harness use to assemble
// trees directly, since this package has no parser.
type Builder struct {
	Files   *Files
	Stmts   *Stmts
	Exprs   *Exprs
	Types   *TypeExprs
	Strings *source.Interner
}

// NewBuilder creates a Builder with capacity hints and a shared string
// interner. Zero hint fields get small defaults; a nil interner gets a
// fresh one.
func NewBuilder(h Hints, strings *source.Interner) *Builder {
	if h.Files == 0 {
		h.Files = 1
	}
	if h.Stmts == 0 {
		h.Stmts = 64
	}
	if h.Exprs == 0 {
		h.Exprs = 64
	}
	if h.Types == 0 {
		h.Types = 32
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Files:   NewFiles(h.Files),
		Stmts:   NewStmts(h.Stmts),
		Exprs:   NewExprs(h.Exprs),
		Types:   NewTypeExprs(h.Types),
		Strings: strings,
	}
}
