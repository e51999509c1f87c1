// Package source provides the minimal position- and content-addressing
// primitives the checker needs to report diagnostics against program text.
// Loading source from disk, watching files, and building a module graph are
// the binder's job and are not part of this package.
package source

// FileID identifies a virtual source file within a FileSet.
type FileID uint32

// NoFileID marks the absence of a file.
const NoFileID FileID = 0

// File captures content and a precomputed line index for one source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // byte offsets of '\n', ascending
	Hash    [32]byte
}

// LineCol is a human-readable 1-based position within a file.
type LineCol struct {
	Line uint32
	Col  uint32
}
