package syntax

import "github.com/mohsen1/tsz/internal/source"

// File is a source file's top-level statement list. A file with no explicit
// strict pragma and at least one import/export is a module (spec.md's
// strict-mode trigger); IsModule lets callers model that without a real
// module-resolution pass.
type File struct {
	Span     source.Span
	Body     []StmtID
	IsModule bool
}

// Files manages allocation of File nodes.
type Files struct{ Arena *Arena[File] }

// NewFiles creates a Files arena with a capacity hint.
func NewFiles(capHint uint) *Files { return &Files{Arena: NewArena[File](capHint)} }

// New allocates a file with the given body.
func (f *Files) New(span source.Span, body []StmtID, isModule bool) FileID {
	return FileID(f.Arena.Allocate(File{Span: span, Body: body, IsModule: isModule}))
}

// Get returns the File for id, or nil if id is invalid.
func (f *Files) Get(id FileID) *File { return f.Arena.Get(uint32(id)) }
