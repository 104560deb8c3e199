// Package diag defines the core diagnostic model shared by all pipeline phases.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture findings
//     produced by the lexer, the signature extractor and the compatibility rules.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting, IO, CLI integration, or
// interactive behaviour. Rendering responsibilities live in internal/diagfmt,
// whereas orchestration lives in internal/driver and the CLI commands.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//     Broken input (unterminated strings, unreadable files) produces errors;
//     compatibility findings are warnings: the code still runs on the target
//     versions, it just behaves differently than the author likely intended.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//     Families: LEX1xxx lexical, SIG2xxx signature extraction, CMP3xxx version
//     compatibility, IO4xxx file access, PRJ5xxx project configuration,
//     OBS6xxx observability.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//
// Notes should be used sparingly: each note must add new context (e.g. “required
// parameter declared here”) rather than repeating the diagnostic message.
//
// # Emitting diagnostics
//
// Phases should use a diag.Reporter to decouple emission from storage. The
// rules engine, for example, constructs a ReportBuilder via NewReportBuilder
// (or the helper functions ReportError/ReportWarning/ReportInfo) and chains
// WithNote before calling Emit.
//
// When no additional metadata is needed, phases may call Reporter.Report(...)
// directly. For convenience, diag.BagReporter aggregates diagnostics into a Bag,
// which supports sorting, deduplication, filtering, and merging.
//
// # Consumers
//
//   - internal/diagfmt: renders Diagnostics into pretty/json/sarif/checkstyle
//     formats.
//   - internal/driver: coordinates bag collection per file and transports
//     diagnostic data to CLI commands.
//
// Keep the data model deterministic: any new fields should honour the package’s
// layering constraints and avoid side effects, so the CLI and future tooling can
// safely serialise diagnostics for caching and testing.
package diag
