// Package diag defines the diagnostic model shared by the solver, narrower
// and checker.
//
// # Purpose
//
//   - Provide a deterministic, serialisable data structure for findings
//     produced while checking a program (spec.md §6.2).
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or rendering layers.
//
// # Scope
//
// Package diag does not perform any formatting, IO, or CLI integration.
// Rendering is the embedder's job; this package only models the data and
// gives it a stable, deterministic ordering.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – TypeScript-compatible numeric identifier (see codes.go).
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//
// Notes should be used sparingly: each note must add new context (e.g.
// "property declared here") rather than repeating the diagnostic message.
//
// # Emitting diagnostics
//
// Phases should use a diag.Reporter to decouple emission from storage. The
// checker, for example, constructs a ReportBuilder via NewReportBuilder (or
// the helper functions ReportError/ReportWarning/ReportInfo) and chains
// WithNote before calling Emit.
//
// When no additional metadata is needed, phases may call Reporter.Report(...)
// directly. diag.BagReporter aggregates diagnostics into a Bag, which
// supports sorting and deduplication; DedupReporter suppresses duplicates
// before they reach the bag at all.
package diag
