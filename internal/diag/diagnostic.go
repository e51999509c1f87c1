package diag

import "github.com/mohsen1/tsz/internal/source"

// Note provides auxiliary context for a diagnostic message, e.g. pointing at
// the declaration a readonly violation originates from.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is the engine's externally-visible unit of output: a position,
// a stable numeric code, and a human-readable message (spec.md §6.2).
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
