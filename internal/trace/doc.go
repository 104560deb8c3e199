// Package trace provides a tracing subsystem for phpdrift scans.
//
// The trace package tracks scan phases, per-file checks and rule hits to
// help diagnose slow or stuck runs on large codebases.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	phpdrift check --trace=- --trace-level=file src/
//
// # Levels
//
// Tracing verbosity is controlled by levels:
//
//   - LevelOff: No tracing
//   - LevelScan: Scan boundaries only
//   - LevelPhase: Scan phases (walk, load, check)
//   - LevelFile: Per-file processing
//   - LevelDebug: Everything including individual findings
//
// # Scopes
//
// Events are categorized by scope:
//
//   - ScopeScan: Top-level scan operations
//   - ScopePhase: Scan phases (walk, load, check)
//   - ScopeFile: Per-file processing
//   - ScopeRule: Individual rule findings (most detailed)
//
// # Context Propagation
//
// Tracers are propagated through the scan pipeline via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePhase, "walk", parentID)
//	defer span.End("")
package trace
