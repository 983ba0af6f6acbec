// Package ensime is the semantic-query core of a language-intelligence
// backend for Go source: given a mutable working set of files and the Go
// compiler frontend, it answers point-based queries and streams compiler
// diagnostics to a report handler.
//
// # Model
//
// A Session owns a working set: every open file's identity plus either its
// on-disk contents or an in-memory override for unsaved edits. Queries
// arrive as (file, byte offset) pairs. Each query recompiles the entire
// working set as one batch, since the frontend's whole-program model is
// what makes cross-file references resolve; it then extracts the compiled
// unit for the queried file, resolves the syntactic path at the offset, and
// derives the answer from the type information bound to it. Compiled output is
// discarded after every call; there is no incremental cache and no
// invalidation logic.
//
// # Usage
//
// Create a Session, intern sources, and query:
//
//	s := ensime.NewSession(ensime.WithReportHandler(handler))
//	s.Intern(ensime.TextSource("a.go", buf))
//
//	ti, err := s.TypeAt(ctx, ensime.FileSource("a.go"), 42)
//	si, err := s.SymbolAt(ctx, ensime.FileSource("a.go"), 42)
//
// # Query API
//
// Six point queries, all returning an explicit "no result" (nil or empty)
// instead of failing on missing data:
//
//   - [Session.TypeAt] — the type bound to the node at an offset.
//   - [Session.SymbolAt] — the symbol referenced at an offset.
//   - [Session.DocSignatureAt] — the documentation signature at an offset.
//   - [Session.CompletionsAt] — bounded completion candidates at an offset.
//   - [Session.LinkAt] — the declaration site of a fully-qualified name.
//   - [Session.ImplicitInfoAt] — diagnostic-derived annotations at an offset.
//
// Two refresh operations drive the diagnostics stream: [Session.TypecheckAll]
// clears previously reported notes and recompiles everything with the
// active sink; [Session.TypecheckFiles] interns the given handles first.
// Background compiles triggered by queries use a silent sink so transient
// errors from files mid-edit never flood the report stream.
//
// # Diagnostics
//
// Raw frontend diagnostics are mapped to structured notes (fatal becomes
// error, both warning kinds become warning, everything else info) and
// forwarded to the [ReportHandler] one at a time, synchronously, in
// emission order. The handler owns storage and de-duplication.
package ensime
