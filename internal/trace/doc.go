// Package trace provides a tracing subsystem for the type-checking engine.
//
// The trace package enables tracking of checker phases, per-file traversal,
// and other operations to help diagnose performance issues and hangs.
//
// # Usage
//
// Enable tracing by building a tracer with New and attaching it to the
// context passed to the engine, whose checker reads it with FromContext:
//
//	tracer, err := trace.New(trace.Config{Level: trace.LevelPhase, Mode: trace.ModeStream, OutputPath: "-"})
//	ctx = trace.WithTracer(ctx, tracer)
//
// # Architecture
//
// The package provides several tracer implementations:
//
//   - NopTracer: Zero-overhead no-op tracer when disabled
//   - StreamTracer: Immediate write to output (file/stderr)
//   - RingTracer: Circular buffer for crash dumps
//   - MultiTracer: Combines multiple tracers
//
// # Levels
//
// Tracing verbosity is controlled by levels:
//
//   - LevelOff: No tracing
//   - LevelError: Only crash dumps
//   - LevelPhase: Engine and phase boundaries
//   - LevelDetail: File-level events
//   - LevelDebug: Everything including syntax nodes
//
// # Scopes
//
// Events are categorized by scope:
//
//   - ScopeEngine: Top-level Check() invocation
//   - ScopePhase: Checker phases (lower, solve, narrow, check)
//   - ScopeFile: Per-file processing within a phase
//   - ScopeNode: Expression/statement node level
//
// # Context Propagation
//
// Tracers are propagated through the checking pipeline via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePhase, "solve", parentID)
//	defer span.End("")
package trace
